package cards

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// CardService implements CardAPI on top of a CardRepository, applying
// serving-layer defaults and, when enabled, a circuit breaker around
// store calls.
type CardService struct {
	repo    CardRepository
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

var _ CardAPI = (*CardService)(nil)

// ServiceOption customizes a CardService.
type ServiceOption func(*CardService)

// WithBreaker routes every store call through cb.
func WithBreaker(cb *gobreaker.CircuitBreaker) ServiceOption {
	return func(s *CardService) {
		s.breaker = cb
	}
}

// NewCardService builds a service over the given repository. A nil
// logger falls back to slog.Default().
func NewCardService(repo CardRepository, logger *slog.Logger, opts ...ServiceOption) *CardService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CardService{
		repo:   repo,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreBreaker builds a circuit breaker tuned for database calls.
// NotFound counts as success: a missing card is a normal answer and must
// never open the circuit.
func NewStoreBreaker(name string, maxRequests uint32, interval, timeout time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		IsSuccessful: func(err error) bool {
			return err == nil || IsNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("circuit breaker state change",
					"breaker", name, "from", from.String(), "to", to.String())
			}
		},
	})
}

// execute runs op directly, or through the breaker when one is set.
func (s *CardService) execute(op func() (interface{}, error)) (interface{}, error) {
	if s.breaker == nil {
		return op()
	}
	return s.breaker.Execute(op)
}

func (s *CardService) SearchCards(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	result, err := s.execute(func() (interface{}, error) {
		return s.repo.Search(ctx, filters, query, limit, offset)
	})
	if err != nil {
		s.logger.Error("card search failed", "query", query, "error", err)
		return nil, err
	}

	cards := result.([]*Card)
	s.logger.Debug("card search", "query", query, "limit", limit, "offset", offset, "results", len(cards))
	return cards, nil
}

func (s *CardService) GetCardByID(ctx context.Context, id int64) (*Card, error) {
	result, err := s.execute(func() (interface{}, error) {
		return s.repo.Get(ctx, id)
	})
	if err != nil {
		if !IsNotFound(err) {
			s.logger.Error("card lookup failed", "id", id, "error", err)
		}
		return nil, err
	}
	return result.(*Card), nil
}

func (s *CardService) GetCardCount(ctx context.Context) (int64, error) {
	result, err := s.execute(func() (interface{}, error) {
		return s.repo.Count(ctx)
	})
	if err != nil {
		s.logger.Error("card count failed", "error", err)
		return 0, err
	}
	return result.(int64), nil
}

// FindSimilarCards resolves the source card by name, requires it to
// carry an embedding, and returns its nearest neighbours by cosine
// distance. The source card itself is excluded from the results.
func (s *CardService) FindSimilarCards(ctx context.Context, name string, limit int) ([]*Card, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	result, err := s.execute(func() (interface{}, error) {
		return s.repo.GetByName(ctx, name)
	})
	if err != nil {
		if !IsNotFound(err) {
			s.logger.Error("similar source lookup failed", "name", name, "error", err)
		}
		return nil, err
	}
	source := result.(*Card)

	if !source.HasEmbedding() {
		return nil, NotFound("card with name %s has no embedding", name)
	}

	result, err = s.execute(func() (interface{}, error) {
		return s.repo.FindSimilar(ctx, source.Embedding, source.Name, limit)
	})
	if err != nil {
		s.logger.Error("similarity search failed", "name", name, "error", err)
		return nil, err
	}

	cards := result.([]*Card)
	s.logger.Debug("similarity search", "name", name, "limit", limit, "results", len(cards))
	return cards, nil
}
