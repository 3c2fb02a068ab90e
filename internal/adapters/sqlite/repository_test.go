package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "journal-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func sampleTrade(id string, ticket int64) *domain.Trade {
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &domain.Trade{
		ID:         id,
		Ticket:     ticket,
		Symbol:     "EURUSD",
		Direction:  domain.Buy,
		Volume:     0.5,
		EntryPrice: 1.0850,
		StopLoss:   1.0800,
		TakeProfit: 1.0950,
		EntryTime:  entry,
		Balance:    10000,
		Equity:     10000,
		Strategy:   "breakout",
		Tags:       []string{"london", "news"},
		Status:     domain.StatusOpen,
	}
}

func TestRepository_CreateAndFind(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trade := sampleTrade("01HTEST0000000000000000001", 1001)
	require.NoError(t, repo.Create(ctx, trade))

	found, err := repo.FindByTicket(ctx, 1001)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, trade.ID, found.ID)
	assert.Equal(t, trade.Symbol, found.Symbol)
	assert.Equal(t, trade.Direction, found.Direction)
	assert.Equal(t, trade.Volume, found.Volume)
	assert.Equal(t, trade.StopLoss, found.StopLoss)
	assert.Equal(t, trade.Strategy, found.Strategy)
	assert.Equal(t, trade.Tags, found.Tags)
	assert.Equal(t, domain.StatusOpen, found.Status)
	assert.True(t, found.ExitTime.IsZero(), "open trade has no exit time")
}

func TestRepository_FindByTicket_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	found, err := repo.FindByTicket(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_DuplicateTicketRejected(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleTrade("01HTEST0000000000000000001", 1001)))
	assert.Error(t, repo.Create(ctx, sampleTrade("01HTEST0000000000000000002", 1001)))
}

func TestRepository_UpdateCloseTransition(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trade := sampleTrade("01HTEST0000000000000000001", 1001)
	require.NoError(t, repo.Create(ctx, trade))

	exit := trade.EntryTime.Add(2 * time.Hour)
	require.NoError(t, trade.Close(1.0920, exit, 35.0))
	require.NoError(t, repo.Update(ctx, trade))

	found, err := repo.FindByTicket(ctx, 1001)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, domain.StatusClosed, found.Status)
	assert.Equal(t, 1.0920, found.ExitPrice)
	assert.Equal(t, 35.0, found.Profit)
	assert.True(t, exit.Equal(found.ExitTime))
}

func TestRepository_UpdateMissingTrade(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	trade := sampleTrade("01HTESTMISSING000000000001", 4242)
	assert.Error(t, repo.Update(context.Background(), trade))
}

func TestRepository_FindClosedBetween(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := int64(0); i < 5; i++ {
		trade := sampleTrade("01HTEST000000000000000000"+string(rune('1'+i)), 2000+i)
		trade.EntryTime = base.AddDate(0, 0, int(i))
		require.NoError(t, trade.Close(1.09, trade.EntryTime.Add(time.Hour), float64(10*i)))
		require.NoError(t, repo.Create(ctx, trade))
	}
	// One open trade that must never appear in closed queries.
	require.NoError(t, repo.Create(ctx, sampleTrade("01HTESTOPEN000000000000001", 3000)))

	start := base.AddDate(0, 0, 1)
	end := base.AddDate(0, 0, 4)
	trades, err := repo.FindClosedBetween(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, trades, 3)

	// Ordered by exit time ascending.
	for i := 1; i < len(trades); i++ {
		assert.True(t, !trades[i].ExitTime.Before(trades[i-1].ExitTime))
	}

	closed, err := repo.FindClosed(ctx)
	require.NoError(t, err)
	assert.Len(t, closed, 5)

	open, err := repo.FindOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(3000), open[0].Ticket)
}

func TestRepository_DistinctSymbols(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	eur := sampleTrade("01HTEST0000000000000000001", 1001)
	gbp := sampleTrade("01HTEST0000000000000000002", 1002)
	gbp.Symbol = "GBPUSD"
	gbp2 := sampleTrade("01HTEST0000000000000000003", 1003)
	gbp2.Symbol = "GBPUSD"

	require.NoError(t, repo.Create(ctx, eur))
	require.NoError(t, repo.Create(ctx, gbp))
	require.NoError(t, repo.Create(ctx, gbp2))

	symbols, err := repo.DistinctSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EURUSD", "GBPUSD"}, symbols)
}
