// Package search maintains an optional Meilisearch index over datasets. Indexing
// is best-effort: failures are logged and never fail the triggering request.
package search

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
	"github.com/Madelsa/Dataset-publishing/internal/status"
)

const indexName = "datasets"

type Index struct {
	client *meilisearch.Client
	logger *zap.Logger
}

func NewIndex(client *meilisearch.Client, logger *zap.Logger) *Index {
	return &Index{client: client, logger: logger}
}

// Setup creates the index and its attribute settings. Idempotent.
func Setup(client *meilisearch.Client) error {
	_, err := client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        indexName,
		PrimaryKey: "id",
	})
	if err != nil && !meilisearchIndexExists(err) {
		return fmt.Errorf("failed to create index: %w", err)
	}

	task, err := client.Index(indexName).UpdateFilterableAttributes(&[]string{"status", "language"})
	if err != nil {
		return fmt.Errorf("failed to update filterable attributes: %w", err)
	}
	if _, err := client.WaitForTask(task.TaskUID); err != nil {
		return fmt.Errorf("failed to wait for filterable attributes update: %w", err)
	}

	task, err = client.Index(indexName).UpdateSearchableAttributes(&[]string{"name", "title", "description", "tags", "category"})
	if err != nil {
		return fmt.Errorf("failed to update searchable attributes: %w", err)
	}
	if _, err := client.WaitForTask(task.TaskUID); err != nil {
		return fmt.Errorf("failed to wait for searchable attributes update: %w", err)
	}

	return nil
}

func meilisearchIndexExists(err error) bool {
	if apiErr, ok := err.(*meilisearch.Error); ok {
		return apiErr.MeilisearchApiError.Code == "index_already_exists"
	}
	return false
}

// DatasetToDocument flattens a dataset into a search document. Draft fields win
// over suggested fields because they are what a reviewer actually sees.
func DatasetToDocument(ds *entity.Dataset) map[string]any {
	doc := map[string]any{
		"id":          ds.ID.String(),
		"name":        ds.Name,
		"description": ds.Description,
		"status":      string(status.Display(ds)),
		"language":    ds.MetadataLanguage,
		"title":       ds.SuggestedTitle,
		"tags":        []string(ds.SuggestedTags),
		"category":    ds.SuggestedCategory,
	}
	if ds.HasDraft() {
		draft := ds.DraftFields()
		doc["title"] = draft.Title
		doc["tags"] = draft.Tags
		doc["category"] = draft.Category
	}
	return doc
}

// IndexDataset upserts the dataset's search document. Nil-safe: a nil Index is a
// configured-off search backend.
func (i *Index) IndexDataset(ds *entity.Dataset) {
	if i == nil {
		return
	}
	_, err := i.client.Index(indexName).AddDocuments([]map[string]any{DatasetToDocument(ds)})
	if err != nil {
		i.logger.Warn("failed to index dataset", zap.String("dataset_id", ds.ID.String()), zap.Error(err))
	}
}

// RemoveDataset drops a dataset from the index.
func (i *Index) RemoveDataset(id uuid.UUID) {
	if i == nil {
		return
	}
	if _, err := i.client.Index(indexName).DeleteDocument(id.String()); err != nil {
		i.logger.Warn("failed to remove dataset from index", zap.String("dataset_id", id.String()), zap.Error(err))
	}
}

// Search runs a free-text query over the dataset index.
func (i *Index) Search(query string) ([]any, error) {
	if i == nil {
		return nil, fmt.Errorf("search is not configured")
	}
	result, err := i.client.Index(indexName).Search(query, &meilisearch.SearchRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to perform search: %w", err)
	}
	return result.Hits, nil
}
