// Package cards holds the card catalog domain: the entity and filter
// model, the SQL predicate builder, the Postgres-backed repository with
// pgvector similarity search, and the service layer the MCP and HTTP
// shells talk to.
//
// The catalog is read-only at serving time. Rows and their embeddings are
// produced by a separate ingestion pipeline; this package only ever
// SELECTs (plus idempotent schema bootstrap on startup).
package cards

import "context"

const (
	// MaxSearchLimit caps how many rows a single search may return.
	// Requests with no limit, a non-positive limit, or a larger limit
	// are clamped to it at the repository boundary.
	MaxSearchLimit = 1000

	// DefaultSearchLimit applies at the serving layer when a caller
	// leaves the search limit unset.
	DefaultSearchLimit = 10

	// DefaultSimilarLimit applies when a similarity request leaves the
	// limit unset.
	DefaultSimilarLimit = 10
)

// CardRepository is the storage boundary for the card catalog.
type CardRepository interface {
	// Get returns the card with the given id, or a NotFoundError.
	Get(ctx context.Context, id int64) (*Card, error)

	// GetByName returns the card with the given exact name. When several
	// rows share the name, the one with the lowest id wins.
	GetByName(ctx context.Context, name string) (*Card, error)

	// Search returns cards matching the filters and free-text query,
	// ordered by name, paginated by limit and offset. No matches is an
	// empty slice, not an error.
	Search(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error)

	// Count returns the total number of cards in the catalog.
	Count(ctx context.Context) (int64, error)

	// FindSimilar returns up to limit cards nearest to the given
	// embedding by cosine distance, excluding any card named
	// excludeName and any card without an embedding.
	FindSimilar(ctx context.Context, embedding []float32, excludeName string, limit int) ([]*Card, error)
}

// CardAPI is the surface the serving shells (MCP tools, HTTP handlers)
// consume. *CardService implements it.
type CardAPI interface {
	SearchCards(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error)
	GetCardByID(ctx context.Context, id int64) (*Card, error)
	GetCardCount(ctx context.Context) (int64, error)
	FindSimilarCards(ctx context.Context, name string, limit int) ([]*Card, error)
}
