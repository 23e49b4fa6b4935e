package model

import "time"

// Tags form a closed vocabulary. A contact may carry any subset of them;
// order and duplicates are not meaningful.
const (
	TagNimbleDevelopment = "Nimble Development"
	TagRealDeal          = "Real Deal"
	TagPersonal          = "Personal"
)

// Tags lists all valid tag values.
var Tags = []string{TagNimbleDevelopment, TagRealDeal, TagPersonal}

// Sources are the acquisition channels a contact can come from. A contact
// created without a source defaults to SourceManualEntry.
const (
	SourceManualEntry  = "Manual Entry"
	SourceEmailImport  = "Email Import"
	SourceMeetingNotes = "Meeting Notes"
	SourceBusinessCard = "Business Card"
	SourceLinkedIn     = "LinkedIn"
	SourceReferral     = "Referral"
	SourceOther        = "Other"
)

// Interaction types.
const (
	InteractionEmail   = "email"
	InteractionCall    = "call"
	InteractionMeeting = "meeting"
	InteractionNote    = "note"
	InteractionText    = "text"
)

// Sentiment values for an interaction.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// DefaultRelationshipScore is assigned at creation. The score is maintained
// by an external scoring process afterwards, never recomputed here.
const DefaultRelationshipScore = 50

// Contact is the data structure for a person that we track. The id is
// assigned by the store on creation and immutable afterwards. UserId is the
// owning account; it is set once at creation and never user-editable.
type Contact struct {
	Id                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Company           string     `json:"company,omitempty"`
	Role              string     `json:"role,omitempty"`
	Tags              []string   `json:"tags"`
	Source            string     `json:"source"`
	Notes             string     `json:"notes,omitempty"`
	RelationshipScore int        `json:"relationshipScore"`
	LastContact       *time.Time `json:"lastContact,omitempty"`
	NextFollowUp      *time.Time `json:"nextFollowUp,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	UserId            string     `json:"userId"`
}

// Interaction is an append-only record of contact with a Contact. Timestamp
// is the moment the interaction occurred as reported by the caller; CreatedAt
// is assigned by the store and may differ.
type Interaction struct {
	Id          string    `json:"id"`
	ContactId   string    `json:"contactId"`
	UserId      string    `json:"userId"`
	Type        string    `json:"type"`
	Summary     string    `json:"summary"`
	FullContent string    `json:"fullContent,omitempty"`
	Sentiment   string    `json:"sentiment,omitempty"`
	ActionItems []string  `json:"actionItems,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateContactInput carries the caller-supplied fields for a new contact.
// Everything except the name is optional.
type CreateContactInput struct {
	Name         string     `json:"name" binding:"required"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company"`
	Role         string     `json:"role"`
	Tags         []string   `json:"tags"`
	Source       string     `json:"source"`
	Notes        string     `json:"notes"`
	NextFollowUp *time.Time `json:"nextFollowUp"`
}

// UpdateContactInput carries a partial field set for an update. Nil fields
// are left untouched on the stored record. The id is taken from the request
// URL and is never part of the update payload.
type UpdateContactInput struct {
	Name              *string    `json:"name,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	Company           *string    `json:"company,omitempty"`
	Role              *string    `json:"role,omitempty"`
	Tags              *[]string  `json:"tags,omitempty"`
	Source            *string    `json:"source,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	RelationshipScore *int       `json:"relationshipScore,omitempty"`
	LastContact       *time.Time `json:"lastContact,omitempty"`
	NextFollowUp      *time.Time `json:"nextFollowUp,omitempty"`
}

// AddInteractionInput carries the caller-supplied fields for a new
// interaction. Owner, contact id and creation time are filled in by the
// service. A missing timestamp means "now".
type AddInteractionInput struct {
	Type        string     `json:"type" binding:"required"`
	Summary     string     `json:"summary" binding:"required"`
	FullContent string     `json:"fullContent"`
	Sentiment   string     `json:"sentiment"`
	ActionItems []string   `json:"actionItems"`
	Timestamp   *time.Time `json:"timestamp"`
}
