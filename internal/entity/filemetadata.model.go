package entity

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileMetadata holds the structural facts extracted from an uploaded file. It is
// created atomically with its Dataset and never updated afterwards.
type FileMetadata struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DatasetID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"dataset_id"`

	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	FileSize     int64  `gorm:"type:bigint" json:"file_size"`
	FileType     string `gorm:"type:varchar(100)" json:"file_type"`

	// RowCount is exact for fully parsed files and an estimate for large CSVs
	// sampled by byte prefix. RowCountEstimated records which of the two it is.
	RowCount          int                                 `gorm:"type:bigint" json:"row_count"`
	RowCountEstimated bool                                `gorm:"type:boolean" json:"row_count_estimated"`
	ColumnNames       datatypes.JSONSlice[string]         `gorm:"type:jsonb" json:"column_names"`
	SampleData        datatypes.JSONSlice[map[string]any] `gorm:"type:jsonb" json:"sample_data,omitempty"`
}

func (f *FileMetadata) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
