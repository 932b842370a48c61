package status

import "github.com/Madelsa/Dataset-publishing/internal/entity"

// Earlier schema revisions shipped two other status vocabularies. They are mapped
// onto the canonical four here and rewritten in place once at boot
// (store.MigrateLegacyStatuses); they are not live alternates.
var legacy = map[string]Status{
	"PENDING":   NeedsMetadata,
	"GENERATED": NeedsMetadata,
	"EDITED":    PendingReview,
	"DRAFT":     NeedsMetadata,
	"PUBLISHED": Approved,
}

// Normalize maps any persisted status value, legacy vocabularies included, onto the
// canonical four states. Unknown values fall back to NEEDS_METADATA.
func Normalize(raw string) Status {
	switch Status(raw) {
	case NeedsMetadata, PendingReview, Approved, Rejected:
		return Status(raw)
	}
	if s, ok := legacy[raw]; ok {
		return s
	}
	return NeedsMetadata
}

// LegacyVocabulary returns the legacy-to-canonical mapping for the one-time boot
// migration.
func LegacyVocabulary() map[string]Status {
	out := make(map[string]Status, len(legacy))
	for k, v := range legacy {
		out[k] = v
	}
	return out
}

// Display computes the user-facing status label for a dataset. It is a pure
// read-time derivation: records predating the status column are approximated from
// the presence of a draft, populated records pass through Normalize. It never
// mutates its input.
func Display(ds *entity.Dataset) Status {
	if ds.Status == "" {
		if ds.HasDraft() {
			return PendingReview
		}
		return NeedsMetadata
	}
	return Normalize(ds.Status)
}
