package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
)

func TestNormalizeCanonicalPassThrough(t *testing.T) {
	for _, s := range []Status{NeedsMetadata, PendingReview, Approved, Rejected} {
		assert.Equal(t, s, Normalize(string(s)))
	}
}

func TestNormalizeLegacyVocabularies(t *testing.T) {
	cases := map[string]Status{
		"PENDING":   NeedsMetadata,
		"GENERATED": NeedsMetadata,
		"EDITED":    PendingReview,
		"DRAFT":     NeedsMetadata,
		"PUBLISHED": Approved,
		"garbage":   NeedsMetadata,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "raw=%q", raw)
	}
}

func TestDisplayApproximatesRecordsWithoutStatus(t *testing.T) {
	ds := &entity.Dataset{}
	assert.Equal(t, NeedsMetadata, Display(ds))

	ds.SetDraft(entity.MetadataFields{Title: "t"})
	assert.Equal(t, PendingReview, Display(ds))
}

func TestDisplayMapsLegacyStatus(t *testing.T) {
	ds := &entity.Dataset{Status: "GENERATED"}
	assert.Equal(t, NeedsMetadata, Display(ds))

	ds = &entity.Dataset{Status: "PUBLISHED"}
	assert.Equal(t, Approved, Display(ds))
}

func TestDisplayIsIdempotentAndPure(t *testing.T) {
	ds := &entity.Dataset{Status: "EDITED"}
	first := Display(ds)

	// Applying the derived value back and deriving again must be a fixed point.
	applied := &entity.Dataset{Status: string(first)}
	assert.Equal(t, first, Display(applied))

	// The input record is never mutated.
	assert.Equal(t, "EDITED", ds.Status)
}
