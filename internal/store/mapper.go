package store

import (
	"time"

	"github.com/donspeedie/CRM/pkg/model"
)

// mapToContact merges a document id into the raw field set and builds the
// canonical contact record. Fields are extracted one by one rather than
// decoded wholesale, so a document with unexpected value types degrades to
// zero values instead of failing the whole read. Absent optional timestamps
// stay absent.
func mapToContact(data map[string]interface{}, id string) model.Contact {
	contact := model.Contact{
		Id:                id,
		Name:              stringField(data, "name"),
		Email:             stringField(data, "email"),
		Phone:             stringField(data, "phone"),
		Company:           stringField(data, "company"),
		Role:              stringField(data, "role"),
		Tags:              stringSliceField(data, "tags"),
		Source:            stringField(data, "source"),
		Notes:             stringField(data, "notes"),
		RelationshipScore: intField(data, "relationshipScore"),
		LastContact:       optionalTimeField(data, "lastContact"),
		NextFollowUp:      optionalTimeField(data, "nextFollowUp"),
		UserId:            stringField(data, "userId"),
	}
	if t, ok := toTime(data["createdAt"]); ok {
		contact.CreatedAt = t
	}
	if t, ok := toTime(data["updatedAt"]); ok {
		contact.UpdatedAt = t
	}
	return contact
}

// mapToInteraction builds the canonical interaction record from a raw
// document and its id.
func mapToInteraction(data map[string]interface{}, id string) model.Interaction {
	interaction := model.Interaction{
		Id:          id,
		ContactId:   stringField(data, "contactId"),
		UserId:      stringField(data, "userId"),
		Type:        stringField(data, "type"),
		Summary:     stringField(data, "summary"),
		FullContent: stringField(data, "fullContent"),
		Sentiment:   stringField(data, "sentiment"),
		ActionItems: stringSliceField(data, "actionItems"),
	}
	if t, ok := toTime(data["timestamp"]); ok {
		interaction.Timestamp = t
	}
	if t, ok := toTime(data["createdAt"]); ok {
		interaction.CreatedAt = t
	}
	return interaction
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// stringSliceField reads an array field. Firestore decodes arrays as
// []interface{}; elements of other types are skipped. An absent field maps
// to an empty slice, never nil, so that the JSON rendering stays [].
func stringSliceField(data map[string]interface{}, key string) []string {
	values := make([]string, 0)
	raw, ok := data[key].([]interface{})
	if !ok {
		return values
	}
	for _, elem := range raw {
		if s, ok := elem.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// intField reads a numeric field. Firestore decodes integers as int64, but
// documents written through JSON tooling may carry float64.
func intField(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func optionalTimeField(data map[string]interface{}, key string) *time.Time {
	raw, present := data[key]
	if !present || raw == nil {
		return nil
	}
	if t, ok := toTime(raw); ok {
		return &t
	}
	return nil
}
