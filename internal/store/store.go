package store

import (
	"context"

	"github.com/offerstack/compare-cli/internal/model"
)

// RunFilter specifies criteria for listing comparison runs.
type RunFilter struct {
	Category model.Category `json:"category,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
}

// Store defines the persistence interface for comparison history.
type Store interface {
	// Runs
	SaveRun(ctx context.Context, category model.Category, selection []string, result *model.ComparisonResult) (*model.CompareRun, error)
	GetRun(ctx context.Context, runID string) (*model.CompareRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.CompareRun, error)

	// Catalog loads
	RecordCatalogLoad(ctx context.Context, category model.Category, productCount int, editorsChoice bool) (*model.CatalogLoad, error)
	LatestCatalogLoad(ctx context.Context, category model.Category) (*model.CatalogLoad, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
