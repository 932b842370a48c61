package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
)

func draftFields() entity.MetadataFields {
	return entity.MetadataFields{
		Title:       "Sales Data",
		Description: "Monthly sales figures",
		Tags:        []string{"sales", "finance"},
		Category:    "finance",
	}
}

func TestRecordSuggestionDoesNotAdvanceStatus(t *testing.T) {
	for _, from := range []Status{NeedsMetadata, PendingReview, Approved, Rejected} {
		ds := &entity.Dataset{Status: string(from)}
		RecordSuggestion(ds, draftFields(), entity.LanguageEnglish)

		assert.Equal(t, string(from), ds.Status, "suggestion must not move status from %s", from)
		assert.Equal(t, "Sales Data", ds.SuggestedTitle)
		assert.Equal(t, []string{"sales", "finance"}, []string(ds.SuggestedTags))
		assert.Equal(t, "finance", ds.SuggestedCategory)
		assert.Equal(t, entity.LanguageEnglish, ds.MetadataLanguage)
	}
}

func TestRecordSuggestionOverwritesWholesale(t *testing.T) {
	ds := &entity.Dataset{
		Status:            string(NeedsMetadata),
		SuggestedTitle:    "Old title",
		SuggestedTags:     []string{"old"},
		SuggestedCategory: "old",
	}
	RecordSuggestion(ds, entity.MetadataFields{Title: "New"}, entity.LanguageArabic)

	assert.Equal(t, "New", ds.SuggestedTitle)
	assert.Empty(t, ds.SuggestedDescription)
	assert.Empty(t, []string(ds.SuggestedTags))
	assert.Empty(t, ds.SuggestedCategory)
}

func TestSaveDraftEntersReviewFromAnyState(t *testing.T) {
	for _, from := range []Status{NeedsMetadata, PendingReview, Approved, Rejected} {
		ds := &entity.Dataset{Status: string(from)}
		SaveDraft(ds, draftFields(), entity.LanguageEnglish)

		assert.Equal(t, string(PendingReview), ds.Status)
		require.True(t, ds.HasDraft())
		assert.Equal(t, draftFields(), ds.DraftFields())
	}
}

func TestSaveDraftClearsStaleReviewComment(t *testing.T) {
	comment := "fix title"
	for _, from := range []Status{Approved, Rejected} {
		ds := &entity.Dataset{Status: string(from), ReviewComment: &comment, ReviewedBy: "reviewer"}
		SaveDraft(ds, draftFields(), entity.LanguageEnglish)

		assert.Nil(t, ds.ReviewComment, "comment must not linger across a resubmission from %s", from)
		assert.Empty(t, ds.ReviewedBy)
	}
}

func TestSaveDraftKeepsCommentWhenNotTerminal(t *testing.T) {
	comment := "note"
	ds := &entity.Dataset{Status: string(PendingReview), ReviewComment: &comment}
	SaveDraft(ds, draftFields(), entity.LanguageEnglish)

	require.NotNil(t, ds.ReviewComment)
	assert.Equal(t, "note", *ds.ReviewComment)
}

func TestApproveOnlyFromPendingReview(t *testing.T) {
	now := time.Now()
	for _, from := range []Status{NeedsMetadata, Approved, Rejected} {
		ds := &entity.Dataset{Status: string(from)}
		err := Approve(ds, "", "reviewer", now)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, string(from), ds.Status, "failed approve must not overwrite status")
		assert.Nil(t, ds.PublishedAt)
	}
}

func TestApproveSetsPublishedAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ds := &entity.Dataset{Status: string(PendingReview)}
	require.NoError(t, Approve(ds, "looks good", "reviewer", now))

	assert.Equal(t, string(Approved), ds.Status)
	require.NotNil(t, ds.PublishedAt)
	assert.Equal(t, now, *ds.PublishedAt)
	require.NotNil(t, ds.ReviewComment)
	assert.Equal(t, "looks good", *ds.ReviewComment)
	assert.Equal(t, "reviewer", ds.ReviewedBy)
}

func TestApproveWithoutCommentLeavesExistingComment(t *testing.T) {
	comment := "earlier note"
	ds := &entity.Dataset{Status: string(PendingReview), ReviewComment: &comment}
	require.NoError(t, Approve(ds, "", "reviewer", time.Now()))

	require.NotNil(t, ds.ReviewComment)
	assert.Equal(t, "earlier note", *ds.ReviewComment)
}

func TestRejectRequiresComment(t *testing.T) {
	ds := &entity.Dataset{Status: string(PendingReview)}
	err := Reject(ds, "", "reviewer")

	assert.ErrorIs(t, err, ErrCommentRequired)
	assert.Equal(t, string(PendingReview), ds.Status)
}

func TestRejectPersistsCommentVerbatim(t *testing.T) {
	ds := &entity.Dataset{Status: string(PendingReview)}
	require.NoError(t, Reject(ds, "fix title", "reviewer"))

	assert.Equal(t, string(Rejected), ds.Status)
	require.NotNil(t, ds.ReviewComment)
	assert.Equal(t, "fix title", *ds.ReviewComment)
}

func TestRejectOnlyFromPendingReview(t *testing.T) {
	for _, from := range []Status{NeedsMetadata, Approved, Rejected} {
		ds := &entity.Dataset{Status: string(from)}
		err := Reject(ds, "reason", "reviewer")

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, string(from), ds.Status)
	}
}

func TestResubmissionAfterRejection(t *testing.T) {
	ds := &entity.Dataset{Status: string(NeedsMetadata)}

	SaveDraft(ds, draftFields(), entity.LanguageEnglish)
	require.NoError(t, Reject(ds, "fix title", "reviewer"))
	SaveDraft(ds, draftFields(), entity.LanguageEnglish)

	assert.Equal(t, string(PendingReview), ds.Status)
	assert.Nil(t, ds.ReviewComment)

	require.NoError(t, Approve(ds, "", "reviewer", time.Now()))
	assert.Equal(t, string(Approved), ds.Status)
	assert.NotNil(t, ds.PublishedAt)
}
