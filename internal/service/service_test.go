package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crednest-server/internal/assistant"
	"crednest-server/internal/cache"
	"crednest-server/internal/config"
	"crednest-server/internal/finance"
	"crednest-server/internal/logger"
	"crednest-server/internal/model"
	"crednest-server/internal/repository"
	"crednest-server/internal/seed"
	"crednest-server/pkg/jwt"
	"crednest-server/pkg/util"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.OpenDatabase(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService("0123456789abcdef0123456789abcdef", time.Hour, 24*time.Hour)
}

// ==================== 认证与用户 ====================

func TestAuthService_RegisterLoginRefresh(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestCache(t)
	j := newTestJWT()
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)), rc, j)

	reg, err := svc.Register(ctx, &RegisterRequest{Name: "Asha", Email: " Asha@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.Equal(t, "India", reg.User.Country)
	assert.NotEmpty(t, reg.AccessToken)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailExists)

	login, err := svc.Login(ctx, &LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotNil(t, login.User.LastLogin)

	_, err = svc.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordWrong)
	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrPasswordWrong)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	claims, err := j.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestCache(t)
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)), rc, newTestJWT())

	reg, err := svc.Register(ctx, &RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.AccessToken, time.Now().Add(time.Hour)))
	assert.True(t, rc.IsTokenBlacklisted(ctx, util.HashToken(reg.AccessToken)))
}

func TestUserService_ProfileAndPassword(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	rc, _ := newTestCache(t)
	users := repository.NewUserRepository(db)
	auth := NewAuthService(users, rc, newTestJWT())
	svc := NewUserService(users)

	reg, err := auth.Register(ctx, &RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)
	id := reg.User.ID

	city := "Pune"
	income := int64(85000)
	updated, err := svc.UpdateProfile(ctx, id, &UpdateProfileRequest{City: &city, MonthlyIncome: &income})
	require.NoError(t, err)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Pune", *updated.City)
	require.NotNil(t, updated.MonthlyIncome)
	assert.Equal(t, int64(85000), *updated.MonthlyIncome)

	unchanged, err := svc.UpdateProfile(ctx, id, &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Asha", unchanged.Name)

	_, err = svc.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.ChangePassword(ctx, id, &ChangePasswordRequest{OldPassword: "bad", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, ErrPasswordWrong)

	require.NoError(t, svc.ChangePassword(ctx, id, &ChangePasswordRequest{OldPassword: "secret1", NewPassword: "newsecret"}))
	_, err = auth.Login(ctx, &LoginRequest{Email: "asha@example.com", Password: "newsecret"})
	assert.NoError(t, err)
}

// ==================== 预算 ====================

func newBudgetService(t *testing.T, now time.Time) *BudgetService {
	db := newTestDB(t)
	svc := NewBudgetService(repository.NewBudgetRepository(db), repository.NewExpenseRepository(db))
	svc.now = func() time.Time { return now }
	return svc
}

func TestBudgetService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := newBudgetService(t, time.Now())

	b, err := svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Food", Amount: 8000})
	require.NoError(t, err)
	assert.Equal(t, model.BudgetPeriodMonthly, b.Period)

	_, err = svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Food", Amount: 1, Period: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err = svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Rent", Amount: 1, StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	amount := 9000.0
	updated, err := svc.UpdateBudget(ctx, 1, b.ID, &UpdateBudgetRequest{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, updated.Amount)

	_, err = svc.UpdateBudget(ctx, 2, b.ID, &UpdateBudgetRequest{Amount: &amount})
	assert.ErrorIs(t, err, ErrBudgetNotFound, "budgets are scoped to their owner")

	_, err = svc.UpdateBudget(ctx, 1, b.ID, &UpdateBudgetRequest{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	list, err := svc.ListBudgets(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteBudget(ctx, 1, b.ID))
	assert.ErrorIs(t, svc.DeleteBudget(ctx, 1, b.ID), ErrBudgetNotFound)
}

func TestBudgetService_Expenses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	svc := newBudgetService(t, now)

	e, err := svc.AddExpense(ctx, 1, &AddExpenseRequest{Category: "Food", Amount: 250})
	require.NoError(t, err)
	assert.Equal(t, "Cash", e.PaymentMethod)
	assert.True(t, e.Date.Equal(now))

	_, err = svc.AddExpense(ctx, 1, &AddExpenseRequest{Category: "Food", Amount: 1, PaymentMethod: "Cheque"})
	assert.ErrorIs(t, err, ErrInvalidPayMethod)

	for i := 0; i < 3; i++ {
		d := now.AddDate(0, 0, -i-1)
		_, err := svc.AddExpense(ctx, 1, &AddExpenseRequest{Category: "Travel", Amount: 100, Date: &d, PaymentMethod: "UPI"})
		require.NoError(t, err)
	}

	all, err := svc.ListExpenses(ctx, 1, repository.ExpenseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 550.0, all.Total)

	travel, err := svc.ListExpenses(ctx, 1, repository.ExpenseFilter{Category: "Travel", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, travel.Count)
	assert.Equal(t, 200.0, travel.Total)

	from, to := now, now.AddDate(0, 0, -1)
	_, err = svc.ListExpenses(ctx, 1, repository.ExpenseFilter{StartDate: &from, EndDate: &to})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	require.NoError(t, svc.DeleteExpense(ctx, 1, e.ID))
	assert.ErrorIs(t, svc.DeleteExpense(ctx, 1, e.ID), ErrExpenseNotFound)
}

func TestBudgetService_Summary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	svc := newBudgetService(t, now)

	_, err := svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Food", Amount: 1000})
	require.NoError(t, err)
	_, err = svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Rent", Amount: 20000})
	require.NoError(t, err)
	_, err = svc.CreateBudget(ctx, 1, &CreateBudgetRequest{Category: "Gym", Amount: 500, Period: model.BudgetPeriodYearly})
	require.NoError(t, err)

	inMonth := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2024, 4, 28, 9, 0, 0, 0, time.UTC)
	for _, req := range []AddExpenseRequest{
		{Category: "Food", Amount: 250, Date: &inMonth},
		{Category: "Food", Amount: 500, Date: &inMonth},
		{Category: "Food", Amount: 999, Date: &lastMonth},
		{Category: "Shopping", Amount: 700, Date: &inMonth},
	} {
		req := req
		_, err := svc.AddExpense(ctx, 1, &req)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summary.Categories, 2, "only monthly budgets are summarized")

	food := summary.Categories[0]
	assert.Equal(t, "Food", food.Category)
	assert.Equal(t, 750.0, food.Spent)
	assert.Equal(t, 250.0, food.Remaining)
	assert.InDelta(t, 75.0, food.Percentage, 0.001)

	rent := summary.Categories[1]
	assert.Equal(t, 0.0, rent.Spent)

	assert.Equal(t, 21000.0, summary.TotalBudgeted)
	assert.Equal(t, 750.0, summary.TotalSpent)
	assert.Equal(t, 20250.0, summary.TotalRemaining)
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

// ==================== 金融目录 ====================

func TestFinanceService_ListBanksCached(t *testing.T) {
	ctx := context.Background()
	rc, mr := newTestCache(t)
	db := newTestDB(t)
	svc := NewFinanceService(repository.NewBankRepository(db), rc, logger.Nop())
	require.NoError(t, svc.SeedBanks(ctx, seed.Banks()))

	banks, err := svc.ListBanks(ctx, model.LoanTypeHome, 3)
	require.NoError(t, err)
	require.Len(t, banks, 3)
	for i := 1; i < len(banks); i++ {
		assert.LessOrEqual(t, banks[i-1].HomeLoanRate, banks[i].HomeLoanRate)
	}
	assert.True(t, mr.Exists("banks:list:home:3"))

	// 缓存命中时不再读库
	require.NoError(t, db.Exec("DELETE FROM banks").Error)
	cached, err := svc.ListBanks(ctx, model.LoanTypeHome, 3)
	require.NoError(t, err)
	assert.Len(t, cached, 3)

	// 重新导入会清除缓存
	require.NoError(t, svc.SeedBanks(ctx, seed.Banks()[:1]))
	assert.False(t, mr.Exists("banks:list:home:3"))
	fresh, err := svc.ListBanks(ctx, model.LoanTypeHome, 3)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)

	_, err = svc.ListBanks(ctx, "boat", 3)
	assert.ErrorIs(t, err, ErrInvalidLoanType)
}

func TestFinanceService_DefaultsAndLookup(t *testing.T) {
	ctx := context.Background()
	rc, _ := newTestCache(t)
	svc := NewFinanceService(repository.NewBankRepository(newTestDB(t)), rc, logger.Nop())
	require.NoError(t, svc.SeedBanks(ctx, seed.Banks()))

	banks, err := svc.ListBanks(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, banks, len(seed.Banks()))

	bank, err := svc.GetBank(ctx, banks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, banks[0].Name, bank.Name)

	_, err = svc.GetBank(ctx, 99999)
	assert.ErrorIs(t, err, ErrBankNotFound)
}

func TestFinanceService_Calculators(t *testing.T) {
	svc := &FinanceService{}

	emi, err := svc.CalculateEMI(&EMIRequest{Principal: 500000, Rate: 8.5, Tenure: 60})
	require.NoError(t, err)
	assert.Equal(t, int64(10258), emi.EMI)

	_, err = svc.CalculateEMI(&EMIRequest{Principal: 500000, Rate: 8.5, Tenure: 0})
	assert.ErrorIs(t, err, finance.ErrInvalidTenure)

	res := svc.CheckEligibility(&EligibilityRequest{MonthlyIncome: 50000, LoanAmount: 2000000})
	assert.True(t, res.Eligible)
	assert.Equal(t, 750, res.CibilScore)
}

// ==================== 聊天 ====================

type fixedGenerator struct {
	reply string
	err   error
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

type recordingNotifier struct {
	mu      sync.Mutex
	origins []string
	err     error
}

func (n *recordingNotifier) NotifySessionUpdated(_ context.Context, _ int64, origin string, _ *assistant.Reply) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.origins = append(n.origins, origin)
	return n.err
}

func newChatService(t *testing.T, gen assistant.Generator) *ChatService {
	repo := repository.NewChatRepository(newTestDB(t))
	orch := assistant.NewOrchestrator(gen, repo, assistant.Options{Timeout: time.Second})
	return NewChatService(orch, repo, logger.Nop())
}

func TestChatService_Flow(t *testing.T) {
	ctx := context.Background()
	svc := newChatService(t, fixedGenerator{reply: "Namaste!"})
	n := &recordingNotifier{err: errors.New("redis down")}
	svc.SetNotifier(n)

	reply, err := svc.SendMessage(ctx, 1, "conn-1", &SendMessageRequest{Message: "hello"})
	require.NoError(t, err, "notifier failures do not fail the message")
	require.NotEmpty(t, reply.SessionID)
	assert.Equal(t, []string{"conn-1"}, n.origins)

	_, err = svc.SendMessage(ctx, 1, "", &SendMessageRequest{Message: "calculate emi for 5 lakh at 8.5% for 5 years", SessionID: reply.SessionID})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, 1, reply.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Nil(t, history[0].ToolUsed)
	require.NotNil(t, history[1].ToolUsed)
	assert.Equal(t, assistant.ToolCalculateEMI, *history[1].ToolUsed)

	sessions, err := svc.ListSessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(2), sessions[0].MessageCount)

	deleted, err := svc.DeleteSession(ctx, 1, reply.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	deleted, err = svc.DeleteSession(ctx, 1, reply.SessionID)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	empty, err := svc.GetHistory(ctx, 1, reply.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestChatService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newChatService(t, fixedGenerator{err: errors.New("quota exceeded")})

	_, err := svc.SendMessage(ctx, 1, "", &SendMessageRequest{Message: "hello"})
	assert.ErrorIs(t, err, assistant.ErrBackendFailed)

	_, err = svc.SendMessage(ctx, 1, "", &SendMessageRequest{Message: "   "})
	assert.ErrorIs(t, err, assistant.ErrEmptyMessage)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.SendMessage(ctx, 1, "", &SendMessageRequest{Message: "hi", SessionID: string(long)})
	assert.ErrorIs(t, err, ErrInvalidSessionID)

	sessions, err := svc.ListSessions(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
