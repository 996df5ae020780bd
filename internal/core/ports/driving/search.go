package driving

import (
	"context"

	"github.com/mediadex/mediadex/internal/core/domain"
)

// SearchService answers free-text keyword queries over ingested files.
type SearchService interface {
	// Search returns ranked results for the query. An empty query or
	// empty index yields an empty slice, not an error.
	Search(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.QueryResult, error)
}
