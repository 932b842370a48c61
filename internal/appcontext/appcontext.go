package appcontext

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Madelsa/Dataset-publishing/internal/search"
	"github.com/Madelsa/Dataset-publishing/internal/store"
	"github.com/Madelsa/Dataset-publishing/internal/suggest"
)

type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	Store     *store.Store
	Suggester *suggest.Client

	// SearchIndex is nil when Meilisearch is not configured; all of its methods
	// are nil-safe.
	SearchIndex *search.Index

	MaxUploadBytes int64
}
