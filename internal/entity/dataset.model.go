package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Dataset struct {
	gorm.Model
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Name         string        `gorm:"type:varchar(100);uniqueIndex" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	ContactEmail string        `gorm:"type:varchar(100)" json:"contact_email,omitempty"`
	File         *FileMetadata `gorm:"foreignKey:DatasetID;constraint:OnDelete:CASCADE" json:"file,omitempty"`

	SuggestedTitle       string                      `gorm:"type:text" json:"suggested_title"`
	SuggestedDescription string                      `gorm:"type:text" json:"suggested_description"`
	SuggestedTags        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"suggested_tags"`
	SuggestedCategory    string                      `gorm:"type:varchar(255)" json:"suggested_category"`

	Draft            *datatypes.JSONType[MetadataFields] `gorm:"type:jsonb" json:"draft,omitempty"`
	MetadataLanguage string                              `gorm:"type:varchar(10)" json:"metadata_language"`

	Status        string     `gorm:"type:varchar(50);index" json:"status"`
	ReviewComment *string    `gorm:"type:text" json:"review_comment,omitempty"`
	ReviewedBy    string     `gorm:"type:varchar(100)" json:"reviewed_by,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

func (d *Dataset) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// HasDraft reports whether a user-edited metadata draft has been saved.
func (d *Dataset) HasDraft() bool {
	return d.Draft != nil
}

// DraftFields returns the saved draft, or the zero value when none exists.
func (d *Dataset) DraftFields() MetadataFields {
	if d.Draft == nil {
		return MetadataFields{}
	}
	return d.Draft.Data()
}

// SetDraft replaces the draft wholesale.
func (d *Dataset) SetDraft(fields MetadataFields) {
	draft := datatypes.NewJSONType(fields)
	d.Draft = &draft
}
