package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"crednest-server/internal/model"
	"crednest-server/internal/repository"
)

// 预算服务相关错误
var (
	ErrBudgetNotFound   = errors.New("预算不存在")
	ErrExpenseNotFound  = errors.New("支出记录不存在")
	ErrInvalidPeriod    = errors.New("无效的预算周期")
	ErrInvalidDateRange = errors.New("开始日期不能晚于结束日期")
	ErrInvalidPayMethod = errors.New("无效的支付方式")
	ErrNothingToUpdate  = errors.New("没有需要更新的字段")
)

// 支出列表条数
const (
	defaultExpenseLimit = 50
	maxExpenseLimit     = 500
)

// BudgetService 预算与支出服务
type BudgetService struct {
	budgetRepo  *repository.BudgetRepository
	expenseRepo *repository.ExpenseRepository
	now         func() time.Time
}

// NewBudgetService 创建 BudgetService 实例
func NewBudgetService(budgetRepo *repository.BudgetRepository, expenseRepo *repository.ExpenseRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}
}

func validPeriod(p string) bool {
	switch p {
	case model.BudgetPeriodDaily, model.BudgetPeriodWeekly, model.BudgetPeriodMonthly, model.BudgetPeriodYearly:
		return true
	}
	return false
}

// ==================== 预算 ====================

// CreateBudgetRequest 创建预算请求
type CreateBudgetRequest struct {
	Category  string     `json:"category" binding:"required,max=50"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Period    string     `json:"period"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// CreateBudget 创建预算
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - req: 预算内容，period 为空时默认为 monthly
func (s *BudgetService) CreateBudget(ctx context.Context, userID int64, req *CreateBudgetRequest) (*model.Budget, error) {
	period := req.Period
	if period == "" {
		period = model.BudgetPeriodMonthly
	}
	if !validPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, ErrInvalidDateRange
	}

	budget := &model.Budget{
		UserID:    userID,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    period,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// ListBudgets 列出预算，period 为空时返回全部
func (s *BudgetService) ListBudgets(ctx context.Context, userID int64, period string) ([]model.Budget, error) {
	if period != "" && !validPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	budgets, err := s.budgetRepo.ListByUser(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		budgets = []model.Budget{}
	}
	return budgets, nil
}

// UpdateBudgetRequest 更新预算请求，nil 字段不修改
type UpdateBudgetRequest struct {
	Category  *string    `json:"category" binding:"omitempty,min=1,max=50"`
	Amount    *float64   `json:"amount" binding:"omitempty,gt=0"`
	Period    *string    `json:"period"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateBudget 更新预算
// 返回:
//   - *model.Budget: 更新后的预算
//   - error: ErrBudgetNotFound / ErrInvalidPeriod / ErrNothingToUpdate
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, budgetID int64, req *UpdateBudgetRequest) (*model.Budget, error) {
	fields := make(map[string]interface{})
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Period != nil {
		if !validPeriod(*req.Period) {
			return nil, ErrInvalidPeriod
		}
		fields["period"] = *req.Period
	}
	if req.StartDate != nil {
		fields["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	existing, err := s.budgetRepo.GetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrBudgetNotFound
	}

	if _, err := s.budgetRepo.UpdateFields(ctx, userID, budgetID, fields); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByID(ctx, userID, budgetID)
}

// DeleteBudget 删除预算
func (s *BudgetService) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	rows, err := s.budgetRepo.Delete(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// ==================== 支出 ====================

// AddExpenseRequest 新增支出请求
type AddExpenseRequest struct {
	Category      string     `json:"category" binding:"required,max=50"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Description   string     `json:"description" binding:"max=500"`
	Date          *time.Time `json:"date"`
	PaymentMethod string     `json:"payment_method"`
}

// AddExpense 新增一条支出
// date 为空时取当前时间，payment_method 为空时默认为 Cash
func (s *BudgetService) AddExpense(ctx context.Context, userID int64, req *AddExpenseRequest) (*model.Expense, error) {
	method := req.PaymentMethod
	if method == "" {
		method = model.PaymentMethods[0]
	}
	if !validPaymentMethod(method) {
		return nil, ErrInvalidPayMethod
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	expense := &model.Expense{
		UserID:        userID,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          date,
		PaymentMethod: method,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func validPaymentMethod(m string) bool {
	for _, pm := range model.PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// ExpenseListResponse 支出列表
type ExpenseListResponse struct {
	Expenses []model.Expense `json:"expenses"`
	Total    float64         `json:"total"` // 符合筛选条件的支出合计
	Count    int             `json:"count"`
}

// ListExpenses 按条件查询支出
// 参数:
//   - filter: 分类、日期范围与条数上限，上限默认 50
func (s *BudgetService) ListExpenses(ctx context.Context, userID int64, filter repository.ExpenseFilter) (*ExpenseListResponse, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultExpenseLimit
	}
	if filter.Limit > maxExpenseLimit {
		filter.Limit = maxExpenseLimit
	}

	items, total, err := s.expenseRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Expense{}
	}
	return &ExpenseListResponse{Expenses: items, Total: total, Count: len(items)}, nil
}

// DeleteExpense 删除支出记录
func (s *BudgetService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	rows, err := s.expenseRepo.Delete(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// ==================== 汇总 ====================

// MonthBounds 返回 t 所在月份的 [起始, 下月起始)
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// Summary 当月预算执行情况
// 月度预算与当月各分类支出并发读取
func (s *BudgetService) Summary(ctx context.Context, userID int64) (*model.BudgetSummary, error) {
	from, to := MonthBounds(s.now())

	var (
		budgets []model.Budget
		spent   map[string]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.ListByUser(gctx, userID, model.BudgetPeriodMonthly)
		return err
	})
	g.Go(func() error {
		var err error
		spent, err = s.expenseRepo.SumByCategory(gctx, userID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildSummary(budgets, spent), nil
}

// buildSummary 按分类合并预算与支出
// 同一分类的多条预算金额相加，没有预算的支出分类不计入
func buildSummary(budgets []model.Budget, spent map[string]float64) *model.BudgetSummary {
	budgeted := make(map[string]float64)
	for _, b := range budgets {
		budgeted[b.Category] += b.Amount
	}

	summary := &model.BudgetSummary{Categories: make([]model.BudgetCategorySummary, 0, len(budgeted))}
	for category, amount := range budgeted {
		used := spent[category]
		pct := 0.0
		if amount > 0 {
			pct = used / amount * 100
		}
		summary.Categories = append(summary.Categories, model.BudgetCategorySummary{
			Category:   category,
			Budgeted:   amount,
			Spent:      used,
			Remaining:  amount - used,
			Percentage: pct,
		})
		summary.TotalBudgeted += amount
		summary.TotalSpent += used
	}
	summary.TotalRemaining = summary.TotalBudgeted - summary.TotalSpent

	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	return summary
}
