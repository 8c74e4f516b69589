package cards

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepo is a hand-rolled CardRepository that records the arguments of
// the last call and returns canned results.
type mockRepo struct {
	getFn         func(ctx context.Context, id int64) (*Card, error)
	getByNameFn   func(ctx context.Context, name string) (*Card, error)
	searchFn      func(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error)
	countFn       func(ctx context.Context) (int64, error)
	findSimilarFn func(ctx context.Context, embedding []float32, excludeName string, limit int) ([]*Card, error)
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*Card, error) {
	return m.getFn(ctx, id)
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (*Card, error) {
	return m.getByNameFn(ctx, name)
}

func (m *mockRepo) Search(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error) {
	return m.searchFn(ctx, filters, query, limit, offset)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

func (m *mockRepo) FindSimilar(ctx context.Context, embedding []float32, excludeName string, limit int) ([]*Card, error) {
	return m.findSimilarFn(ctx, embedding, excludeName, limit)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchCardsAppliesDefaults(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockRepo{
		searchFn: func(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error) {
			gotLimit, gotOffset = limit, offset
			return []*Card{}, nil
		},
	}
	svc := NewCardService(repo, testLogger())

	_, err := svc.SearchCards(context.Background(), SearchFilters{}, "bolt", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, DefaultSearchLimit, gotLimit)
	assert.Equal(t, 0, gotOffset)
}

func TestSearchCardsPassesThrough(t *testing.T) {
	expected := []*Card{{ID: 1, Name: "Lightning Bolt", MainType: TypeInstant}}
	repo := &mockRepo{
		searchFn: func(ctx context.Context, filters SearchFilters, query string, limit, offset int) ([]*Card, error) {
			return expected, nil
		},
	}
	svc := NewCardService(repo, testLogger())

	got, err := svc.SearchCards(context.Background(), SearchFilters{}, "bolt", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestGetCardByIDNotFound(t *testing.T) {
	repo := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*Card, error) {
			return nil, NotFound("card %d", id)
		},
	}
	svc := NewCardService(repo, testLogger())

	_, err := svc.GetCardByID(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "card 42")
}

func TestGetCardCount(t *testing.T) {
	repo := &mockRepo{
		countFn: func(ctx context.Context) (int64, error) {
			return 31337, nil
		},
	}
	svc := NewCardService(repo, testLogger())

	n, err := svc.GetCardCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(31337), n)
}

func TestFindSimilarCardsNoEmbedding(t *testing.T) {
	repo := &mockRepo{
		getByNameFn: func(ctx context.Context, name string) (*Card, error) {
			return &Card{ID: 1, Name: name, MainType: TypeCreature}, nil
		},
		findSimilarFn: func(ctx context.Context, embedding []float32, excludeName string, limit int) ([]*Card, error) {
			t.Fatal("FindSimilar must not be called when the source has no embedding")
			return nil, nil
		},
	}
	svc := NewCardService(repo, testLogger())

	_, err := svc.FindSimilarCards(context.Background(), "Grizzly Bears", 10)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "no embedding")
}

func TestFindSimilarCardsExcludesSourceAndDefaultsLimit(t *testing.T) {
	var gotExclude string
	var gotLimit int
	repo := &mockRepo{
		getByNameFn: func(ctx context.Context, name string) (*Card, error) {
			return &Card{ID: 1, Name: "Shock", MainType: TypeInstant, Embedding: []float32{0.1, 0.2}}, nil
		},
		findSimilarFn: func(ctx context.Context, embedding []float32, excludeName string, limit int) ([]*Card, error) {
			gotExclude, gotLimit = excludeName, limit
			return []*Card{{ID: 2, Name: "Lightning Bolt", MainType: TypeInstant}}, nil
		},
	}
	svc := NewCardService(repo, testLogger())

	got, err := svc.FindSimilarCards(context.Background(), "Shock", 0)
	require.NoError(t, err)
	assert.Equal(t, "Shock", gotExclude)
	assert.Equal(t, DefaultSimilarLimit, gotLimit)
	require.Len(t, got, 1)
	assert.Equal(t, "Lightning Bolt", got[0].Name)
}

func TestFindSimilarCardsSourceNotFound(t *testing.T) {
	repo := &mockRepo{
		getByNameFn: func(ctx context.Context, name string) (*Card, error) {
			return nil, NotFound("card with name %s", name)
		},
	}
	svc := NewCardService(repo, testLogger())

	_, err := svc.FindSimilarCards(context.Background(), "No Such Card", 5)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

// TestBreakerIgnoresNotFound verifies NotFound never opens the circuit
// while genuine store failures do.
func TestBreakerIgnoresNotFound(t *testing.T) {
	calls := 0
	repo := &mockRepo{
		getFn: func(ctx context.Context, id int64) (*Card, error) {
			calls++
			return nil, NotFound("card %d", id)
		},
	}
	cb := NewStoreBreaker("test", 1, time.Minute, time.Minute, testLogger())
	svc := NewCardService(repo, testLogger(), WithBreaker(cb))

	for i := 0; i < 20; i++ {
		_, err := svc.GetCardByID(context.Background(), int64(i))
		require.Error(t, err)
		assert.True(t, IsNotFound(err), "breaker must stay closed on NotFound")
	}
	assert.Equal(t, 20, calls)
}

func TestBreakerOpensOnStoreFailures(t *testing.T) {
	boom := internalErr(errors.New("connection refused"))
	repo := &mockRepo{
		countFn: func(ctx context.Context) (int64, error) {
			return 0, boom
		},
	}
	cb := NewStoreBreaker("test", 1, time.Minute, time.Minute, testLogger())
	svc := NewCardService(repo, testLogger(), WithBreaker(cb))

	for i := 0; i < 20; i++ {
		_, err := svc.GetCardCount(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestErrorClassification(t *testing.T) {
	nf := NotFound("card with name %s", "Shock")
	assert.True(t, IsNotFound(nf))
	assert.False(t, errors.Is(nf, ErrInternal))

	internal := internalErr(errors.New("bad row"))
	assert.True(t, errors.Is(internal, ErrInternal))
	assert.False(t, IsNotFound(internal))
	assert.Contains(t, internal.Error(), "bad row")
}
