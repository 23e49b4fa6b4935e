package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/donspeedie/CRM/pkg/model"
)

// InteractionStore is the append-only log of contact interactions. Records
// are created once and never updated or deleted.
type InteractionStore struct {
	client     *firestore.Client
	collection string
	contacts   *ContactStore
}

// NewInteractionStore returns an interaction store bound to the given
// collection. The contact store is needed to refresh the parent contact when
// an interaction is logged.
func NewInteractionStore(client *firestore.Client, collection string, contacts *ContactStore) *InteractionStore {
	return &InteractionStore{client: client, collection: collection, contacts: contacts}
}

// Add appends an interaction for the given contact and returns the id the
// store assigned to it. The creation time is stamped by the store; the
// interaction timestamp is taken from the input and defaults to now.
//
// Afterwards a second, independent write sets the parent contact's
// lastContact to the current time. The two writes are not atomic: a reader
// can observe the interaction before the contact reflects it, and if the
// second write fails the interaction stays in place without the lastContact
// refresh.
func (s *InteractionStore) Add(ctx context.Context, userID string, contactID string, in model.AddInteractionInput) (string, error) {
	timestamp := time.Now()
	if in.Timestamp != nil {
		timestamp = *in.Timestamp
	}
	fields := map[string]interface{}{
		"contactId": contactID,
		"userId":    userID,
		"type":      in.Type,
		"summary":   in.Summary,
		"timestamp": timestamp,
		"createdAt": firestore.ServerTimestamp,
	}
	if in.FullContent != "" {
		fields["fullContent"] = in.FullContent
	}
	if in.Sentiment != "" {
		fields["sentiment"] = in.Sentiment
	}
	if len(in.ActionItems) > 0 {
		fields["actionItems"] = in.ActionItems
	}
	ref, _, err := s.client.Collection(s.collection).Add(ctx, fields)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if err := s.contacts.Update(ctx, contactID, model.UpdateContactInput{LastContact: &now}); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// ListForContact returns all interactions of a contact, newest first by
// interaction timestamp. No owner filter is applied on this path; the caller
// is expected to hold a contact id it is entitled to.
func (s *InteractionStore) ListForContact(ctx context.Context, contactID string) ([]model.Interaction, error) {
	iter := s.client.Collection(s.collection).
		Where("contactId", "==", contactID).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()
	interactions := make([]model.Interaction, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, mapToInteraction(snap.Data(), snap.Ref.ID))
	}
	return interactions, nil
}
