package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crednest-server/internal/config"
	"crednest-server/internal/model"
	"crednest-server/internal/seed"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenDatabase(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func appendTurns(t *testing.T, repo *ChatRepository, userID int64, sessionID string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, repo.AppendTurn(context.Background(), &model.ChatTurn{
			UserID:    userID,
			SessionID: sessionID,
			Message:   fmt.Sprintf("q%d", i),
			Response:  fmt.Sprintf("a%d", i),
		}))
	}
}

func TestChatRepository_RecentAndHistory(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()
	appendTurns(t, repo, 1, "s1", 8)
	appendTurns(t, repo, 2, "s1", 2)

	recent, err := repo.FindRecentTurns(ctx, 1, "s1", 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "q8", recent[0].Message)
	assert.Equal(t, "q4", recent[4].Message)

	history, err := repo.GetSessionTurns(ctx, 1, "s1")
	require.NoError(t, err)
	require.Len(t, history, 8)
	for i, turn := range history {
		assert.Equal(t, fmt.Sprintf("q%d", i+1), turn.Message)
		assert.Equal(t, int64(1), turn.UserID)
	}
}

func TestChatRepository_ToolUsedRoundTrip(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()
	tool := "calculate_emi"

	require.NoError(t, repo.AppendTurn(ctx, &model.ChatTurn{UserID: 1, SessionID: "s", Message: "m", Response: "r", ToolUsed: &tool}))
	require.NoError(t, repo.AppendTurn(ctx, &model.ChatTurn{UserID: 1, SessionID: "s", Message: "m2", Response: "r2"}))

	turns, err := repo.GetSessionTurns(ctx, 1, "s")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.NotNil(t, turns[0].ToolUsed)
	assert.Equal(t, tool, *turns[0].ToolUsed)
	assert.Nil(t, turns[1].ToolUsed)
	assert.False(t, turns[0].CreatedAt.IsZero())
}

func TestChatRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()
	appendTurns(t, repo, 1, "s1", 3)
	appendTurns(t, repo, 1, "s2", 1)

	n, err := repo.DeleteAllTurns(ctx, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.DeleteAllTurns(ctx, 1, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	left, err := repo.GetSessionTurns(ctx, 1, "s2")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestChatRepository_ListSessionSummaries(t *testing.T) {
	repo := NewChatRepository(newTestDB(t))
	ctx := context.Background()
	appendTurns(t, repo, 1, "older", 2)
	appendTurns(t, repo, 1, "newer", 3)
	appendTurns(t, repo, 2, "other-user", 1)
	require.NoError(t, repo.AppendTurn(ctx, &model.ChatTurn{
		UserID: 1, SessionID: "long", Message: strings.Repeat("₹", 150), Response: "ok",
	}))

	summaries, err := repo.ListSessionSummaries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "long", summaries[0].SessionID)
	assert.Equal(t, 100, len([]rune(summaries[0].Preview)))

	assert.Equal(t, "newer", summaries[1].SessionID)
	assert.Equal(t, int64(3), summaries[1].MessageCount)
	assert.Equal(t, "q3", summaries[1].LastMessage)
	assert.Equal(t, "a3", summaries[1].LastResponse)
	assert.Equal(t, "q3", summaries[1].Preview)

	assert.Equal(t, "older", summaries[2].SessionID)
	assert.Equal(t, int64(2), summaries[2].MessageCount)

	empty, err := repo.ListSessionSummaries(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := &model.User{Email: "asha@example.com", PasswordHash: "x", Name: "Asha"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	exists, err := repo.ExistsByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]interface{}{"city": "Pune"}))
	got, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.City)
	assert.Equal(t, "Pune", *got.City)
	assert.Equal(t, "India", got.Country)

	missing, err := repo.GetByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBudgetRepository(t *testing.T) {
	repo := NewBudgetRepository(newTestDB(t))
	ctx := context.Background()

	b := &model.Budget{UserID: 1, Category: "Food", Amount: 5000, Period: model.BudgetPeriodMonthly}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, &model.Budget{UserID: 1, Category: "Fuel", Amount: 2000, Period: model.BudgetPeriodWeekly}))

	monthly, err := repo.ListByUser(ctx, 1, model.BudgetPeriodMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 1)

	n, err := repo.UpdateFields(ctx, 2, b.ID, map[string]interface{}{"amount": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "other users cannot update")

	n, err = repo.UpdateFields(ctx, 1, b.ID, map[string]interface{}{"amount": 6000})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, got.Amount)

	n, err = repo.Delete(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = repo.GetByID(ctx, 1, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExpenseRepository(t *testing.T) {
	repo := NewExpenseRepository(newTestDB(t))
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	for _, e := range []model.Expense{
		{UserID: 1, Category: "Food", Amount: 100, Date: day(1), PaymentMethod: "UPI"},
		{UserID: 1, Category: "Food", Amount: 250, Date: day(10), PaymentMethod: "Cash"},
		{UserID: 1, Category: "Rent", Amount: 9000, Date: day(5), PaymentMethod: "Net Banking"},
		{UserID: 2, Category: "Food", Amount: 999, Date: day(5), PaymentMethod: "Cash"},
	} {
		e := e
		require.NoError(t, repo.Create(ctx, &e))
	}

	all, total, err := repo.List(ctx, 1, ExpenseFilter{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 9350.0, total)
	assert.Equal(t, 250.0, all[0].Amount, "newest first")

	start := day(2)
	food, total, err := repo.List(ctx, 1, ExpenseFilter{Category: "Food", StartDate: &start})
	require.NoError(t, err)
	assert.Len(t, food, 1)
	assert.Equal(t, 250.0, total)

	sums, err := repo.SumByCategory(ctx, 1, day(1), day(6))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Food": 100, "Rent": 9000}, sums)

	n, err := repo.Delete(ctx, 2, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBankRepository(t *testing.T) {
	repo := NewBankRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, seed.Banks()))
	require.NoError(t, repo.ReplaceAll(ctx, seed.Banks()))

	banks, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, banks, len(seed.Banks()))
	assert.Equal(t, "HDFC Bank", banks[0].Name, "highest rating first")

	home, err := repo.List(ctx, model.LoanTypeHome, 3)
	require.NoError(t, err)
	require.Len(t, home, 3)
	assert.Equal(t, 8.40, home[0].HomeLoanRate)
	assert.Equal(t, 8.40, home[1].HomeLoanRate)
	assert.GreaterOrEqual(t, home[0].Rating, home[1].Rating)
	assert.Equal(t, 8.45, home[2].HomeLoanRate)

	got, err := repo.GetByID(ctx, banks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, banks[0].Name, got.Name)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
