// Package status owns the dataset lifecycle. It is the only code allowed to write
// Dataset.Status; handlers load a fresh record, apply a transition here and persist
// the result through the store.
package status

import (
	"errors"
	"time"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
)

type Status string

const (
	NeedsMetadata Status = "NEEDS_METADATA"
	PendingReview Status = "PENDING_REVIEW"
	Approved      Status = "APPROVED"
	Rejected      Status = "REJECTED"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCommentRequired   = errors.New("rejection requires a review comment")
)

// RecordSuggestion overwrites the suggested metadata fields. Generating a suggestion
// is informational only and never advances the lifecycle; only a human-saved draft
// enters the review pipeline.
func RecordSuggestion(ds *entity.Dataset, fields entity.MetadataFields, language string) {
	ds.SuggestedTitle = fields.Title
	ds.SuggestedDescription = fields.Description
	ds.SuggestedTags = fields.Tags
	ds.SuggestedCategory = fields.Category
	ds.MetadataLanguage = language
}

// SaveDraft replaces the draft wholesale and moves the dataset into review. Saving
// is valid from every state: it is both the first submission and the resubmission
// path. A draft saved over a reviewed dataset clears the stale review comment so
// old feedback cannot linger across a resubmission.
func SaveDraft(ds *entity.Dataset, fields entity.MetadataFields, language string) {
	prev := Status(ds.Status)
	ds.SetDraft(fields)
	ds.MetadataLanguage = language
	if prev == Approved || prev == Rejected {
		ds.ReviewComment = nil
		ds.ReviewedBy = ""
	}
	ds.Status = string(PendingReview)
}

// Approve finalizes a pending review. The comment is optional; when empty any
// existing comment is left untouched.
func Approve(ds *entity.Dataset, comment, reviewer string, now time.Time) error {
	if Status(ds.Status) != PendingReview {
		return ErrInvalidTransition
	}
	ds.Status = string(Approved)
	ds.PublishedAt = &now
	ds.ReviewedBy = reviewer
	if comment != "" {
		ds.ReviewComment = &comment
	}
	return nil
}

// Reject declines a pending review. A non-empty comment is mandatory: a rejection
// without a reason is a validation error, not a no-op.
func Reject(ds *entity.Dataset, comment, reviewer string) error {
	if Status(ds.Status) != PendingReview {
		return ErrInvalidTransition
	}
	if comment == "" {
		return ErrCommentRequired
	}
	ds.Status = string(Rejected)
	ds.ReviewComment = &comment
	ds.ReviewedBy = reviewer
	return nil
}
