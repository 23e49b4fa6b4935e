package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/donspeedie/CRM/pkg/model"
)

// fakeContactStore is an in-memory stand-in for the Firestore-backed contact
// store. It models the store contract the handlers rely on: opaque assigned
// ids, owner scoping, ordering, the (nil, nil) not-found result of Get, and
// the not-found error of Update.
type fakeContactStore struct {
	byID   map[string]model.Contact
	nextID int
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{byID: make(map[string]model.Contact)}
}

// put seeds a contact with caller-chosen values, bypassing Create defaults.
func (f *fakeContactStore) put(contact model.Contact) {
	f.byID[contact.Id] = contact
}

func (f *fakeContactStore) Create(_ context.Context, userID string, in model.CreateContactInput) (string, error) {
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	source := in.Source
	if source == "" {
		source = model.SourceManualEntry
	}
	now := time.Now()
	f.byID[id] = model.Contact{
		Id:                id,
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		Company:           in.Company,
		Role:              in.Role,
		Tags:              tags,
		Source:            source,
		Notes:             in.Notes,
		RelationshipScore: model.DefaultRelationshipScore,
		NextFollowUp:      in.NextFollowUp,
		CreatedAt:         now,
		UpdatedAt:         now,
		UserId:            userID,
	}
	return id, nil
}

func (f *fakeContactStore) Get(_ context.Context, contactID string) (*model.Contact, error) {
	contact, ok := f.byID[contactID]
	if !ok {
		return nil, nil
	}
	return &contact, nil
}

func (f *fakeContactStore) GetAll(_ context.Context, userID string) ([]model.Contact, error) {
	result := make([]model.Contact, 0)
	for _, contact := range f.byID {
		if contact.UserId == userID {
			result = append(result, contact)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (f *fakeContactStore) GetByTag(ctx context.Context, userID string, tag string) ([]model.Contact, error) {
	all, _ := f.GetAll(ctx, userID)
	result := make([]model.Contact, 0)
	for _, contact := range all {
		for _, t := range contact.Tags {
			if t == tag {
				result = append(result, contact)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeContactStore) GetNeedingFollowUp(_ context.Context, userID string) ([]model.Contact, error) {
	now := time.Now()
	result := make([]model.Contact, 0)
	for _, contact := range f.byID {
		if contact.UserId != userID || contact.NextFollowUp == nil {
			continue
		}
		if !contact.NextFollowUp.After(now) {
			result = append(result, contact)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].NextFollowUp.Before(*result[j].NextFollowUp)
	})
	return result, nil
}

func (f *fakeContactStore) Update(_ context.Context, contactID string, in model.UpdateContactInput) error {
	contact, ok := f.byID[contactID]
	if !ok {
		return status.Error(codes.NotFound, "no document to update")
	}
	if in.Name != nil {
		contact.Name = *in.Name
	}
	if in.Email != nil {
		contact.Email = *in.Email
	}
	if in.Phone != nil {
		contact.Phone = *in.Phone
	}
	if in.Company != nil {
		contact.Company = *in.Company
	}
	if in.Role != nil {
		contact.Role = *in.Role
	}
	if in.Tags != nil {
		contact.Tags = *in.Tags
	}
	if in.Source != nil {
		contact.Source = *in.Source
	}
	if in.Notes != nil {
		contact.Notes = *in.Notes
	}
	if in.RelationshipScore != nil {
		contact.RelationshipScore = *in.RelationshipScore
	}
	if in.LastContact != nil {
		contact.LastContact = in.LastContact
	}
	if in.NextFollowUp != nil {
		contact.NextFollowUp = in.NextFollowUp
	}
	contact.UpdatedAt = time.Now()
	f.byID[contactID] = contact
	return nil
}

func (f *fakeContactStore) Delete(_ context.Context, contactID string) error {
	delete(f.byID, contactID)
	return nil
}

func (f *fakeContactStore) Search(ctx context.Context, userID string, term string) ([]model.Contact, error) {
	all, _ := f.GetAll(ctx, userID)
	lower := strings.ToLower(term)
	result := make([]model.Contact, 0)
	for _, contact := range all {
		switch {
		case strings.Contains(strings.ToLower(contact.Name), lower),
			contact.Email != "" && strings.Contains(strings.ToLower(contact.Email), lower),
			contact.Company != "" && strings.Contains(strings.ToLower(contact.Company), lower),
			contact.Phone != "" && strings.Contains(contact.Phone, term):
			result = append(result, contact)
		}
	}
	return result, nil
}

// fakeInteractionLog is an in-memory stand-in for the interaction store,
// including the side effect of refreshing the parent contact's lastContact.
type fakeInteractionLog struct {
	entries  []model.Interaction
	contacts *fakeContactStore
	nextID   int
}

func newFakeInteractionLog(contacts *fakeContactStore) *fakeInteractionLog {
	return &fakeInteractionLog{contacts: contacts}
}

func (f *fakeInteractionLog) Add(ctx context.Context, userID string, contactID string, in model.AddInteractionInput) (string, error) {
	f.nextID++
	id := fmt.Sprintf("int-%d", f.nextID)
	now := time.Now()
	timestamp := now
	if in.Timestamp != nil {
		timestamp = *in.Timestamp
	}
	f.entries = append(f.entries, model.Interaction{
		Id:          id,
		ContactId:   contactID,
		UserId:      userID,
		Type:        in.Type,
		Summary:     in.Summary,
		FullContent: in.FullContent,
		Sentiment:   in.Sentiment,
		ActionItems: in.ActionItems,
		Timestamp:   timestamp,
		CreatedAt:   now,
	})
	if err := f.contacts.Update(ctx, contactID, model.UpdateContactInput{LastContact: &now}); err != nil {
		return "", err
	}
	return id, nil
}

func (f *fakeInteractionLog) ListForContact(_ context.Context, contactID string) ([]model.Interaction, error) {
	result := make([]model.Interaction, 0)
	for _, entry := range f.entries {
		if entry.ContactId == contactID {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}
