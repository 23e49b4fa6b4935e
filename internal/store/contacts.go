package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/donspeedie/CRM/pkg/model"
)

// ContactStore is the query and command surface for the contacts collection.
// Store errors (connectivity, permission, quota) propagate to the caller
// unmodified; there is no retry and no partial-failure recovery here.
type ContactStore struct {
	client     *firestore.Client
	collection string
}

// NewContactStore returns a contact store bound to the given collection.
func NewContactStore(client *firestore.Client, collection string) *ContactStore {
	return &ContactStore{client: client, collection: collection}
}

// Create inserts a new contact for the given owner and returns the id that
// the store assigned to it. Omitted tags default to an empty set, an omitted
// source to "Manual Entry". Both timestamps are stamped by the store on
// write.
func (s *ContactStore) Create(ctx context.Context, userID string, in model.CreateContactInput) (string, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	source := in.Source
	if source == "" {
		source = model.SourceManualEntry
	}
	fields := map[string]interface{}{
		"name":              in.Name,
		"userId":            userID,
		"tags":              tags,
		"source":            source,
		"relationshipScore": model.DefaultRelationshipScore,
		"createdAt":         firestore.ServerTimestamp,
		"updatedAt":         firestore.ServerTimestamp,
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.Company != "" {
		fields["company"] = in.Company
	}
	if in.Role != "" {
		fields["role"] = in.Role
	}
	if in.Notes != "" {
		fields["notes"] = in.Notes
	}
	if in.NextFollowUp != nil {
		fields["nextFollowUp"] = *in.NextFollowUp
	}
	ref, _, err := s.client.Collection(s.collection).Add(ctx, fields)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Get fetches a single contact by id. A missing document yields (nil, nil).
// There is no ownership check on this path; any caller holding the id can
// read the contact.
func (s *ContactStore) Get(ctx context.Context, contactID string) (*model.Contact, error) {
	snap, err := s.client.Collection(s.collection).Doc(contactID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	contact := mapToContact(snap.Data(), snap.Ref.ID)
	return &contact, nil
}

// GetAll returns all contacts of the given owner, most recently updated
// first.
func (s *ContactStore) GetAll(ctx context.Context, userID string) ([]model.Contact, error) {
	iter := s.client.Collection(s.collection).
		Where("userId", "==", userID).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	return collectContacts(iter)
}

// GetByTag returns the owner's contacts whose tag set contains the given
// tag, most recently updated first.
func (s *ContactStore) GetByTag(ctx context.Context, userID string, tag string) ([]model.Contact, error) {
	iter := s.client.Collection(s.collection).
		Where("userId", "==", userID).
		Where("tags", "array-contains", tag).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx)
	return collectContacts(iter)
}

// GetNeedingFollowUp returns the owner's contacts whose follow-up date is at
// or before now, most overdue first. Contacts without a follow-up date are
// never included; the range filter cannot match an absent field.
func (s *ContactStore) GetNeedingFollowUp(ctx context.Context, userID string) ([]model.Contact, error) {
	iter := s.client.Collection(s.collection).
		Where("userId", "==", userID).
		Where("nextFollowUp", "<=", time.Now()).
		OrderBy("nextFollowUp", firestore.Asc).
		Documents(ctx)
	return collectContacts(iter)
}

// Update applies a partial field set to the stored contact. Fields that are
// nil in the input are left untouched. The update timestamp is refreshed by
// the store on every call, even when nothing else changed. Updating a
// missing document fails with the store's not-found error, which propagates
// to the caller.
func (s *ContactStore) Update(ctx context.Context, contactID string, in model.UpdateContactInput) error {
	updates := buildContactUpdates(in)
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	_, err := s.client.Collection(s.collection).Doc(contactID).Update(ctx, updates)
	return err
}

// buildContactUpdates translates the non-nil input fields into store update
// instructions. The id is never part of the instruction set.
func buildContactUpdates(in model.UpdateContactInput) []firestore.Update {
	var updates []firestore.Update
	if in.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *in.Name})
	}
	if in.Email != nil {
		updates = append(updates, firestore.Update{Path: "email", Value: *in.Email})
	}
	if in.Phone != nil {
		updates = append(updates, firestore.Update{Path: "phone", Value: *in.Phone})
	}
	if in.Company != nil {
		updates = append(updates, firestore.Update{Path: "company", Value: *in.Company})
	}
	if in.Role != nil {
		updates = append(updates, firestore.Update{Path: "role", Value: *in.Role})
	}
	if in.Tags != nil {
		updates = append(updates, firestore.Update{Path: "tags", Value: *in.Tags})
	}
	if in.Source != nil {
		updates = append(updates, firestore.Update{Path: "source", Value: *in.Source})
	}
	if in.Notes != nil {
		updates = append(updates, firestore.Update{Path: "notes", Value: *in.Notes})
	}
	if in.RelationshipScore != nil {
		updates = append(updates, firestore.Update{Path: "relationshipScore", Value: *in.RelationshipScore})
	}
	if in.LastContact != nil {
		updates = append(updates, firestore.Update{Path: "lastContact", Value: *in.LastContact})
	}
	if in.NextFollowUp != nil {
		updates = append(updates, firestore.Update{Path: "nextFollowUp", Value: *in.NextFollowUp})
	}
	return updates
}

// Delete removes the contact unconditionally. Deleting a missing document is
// not an error, and interactions referring to the contact are not cascaded.
func (s *ContactStore) Delete(ctx context.Context, contactID string) error {
	_, err := s.client.Collection(s.collection).Doc(contactID).Delete(ctx)
	return err
}

// Search returns the owner's contacts whose name, email, company or phone
// contains the given term. The store has no native free-text search, so this
// fetches all contacts of the owner and filters them in memory; the cost is
// O(contacts of owner) per call.
func (s *ContactStore) Search(ctx context.Context, userID string, term string) ([]model.Contact, error) {
	all, err := s.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches := make([]model.Contact, 0)
	for _, contact := range all {
		if matchesSearchTerm(contact, term) {
			matches = append(matches, contact)
		}
	}
	return matches, nil
}

// matchesSearchTerm checks a single contact against a search term. Name,
// email and company match case-insensitively; the phone number matches by
// raw substring, so "555" finds "(555) 123-4567".
func matchesSearchTerm(contact model.Contact, term string) bool {
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(contact.Name), lower) {
		return true
	}
	if contact.Email != "" && strings.Contains(strings.ToLower(contact.Email), lower) {
		return true
	}
	if contact.Company != "" && strings.Contains(strings.ToLower(contact.Company), lower) {
		return true
	}
	if contact.Phone != "" && strings.Contains(contact.Phone, term) {
		return true
	}
	return false
}

// collectContacts drains a query result into canonical contact records.
func collectContacts(iter *firestore.DocumentIterator) ([]model.Contact, error) {
	defer iter.Stop()
	contacts := make([]model.Contact, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, mapToContact(snap.Data(), snap.Ref.ID))
	}
	return contacts, nil
}
