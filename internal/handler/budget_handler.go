package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crednest-server/internal/middleware"
	"crednest-server/internal/repository"
	"crednest-server/internal/service"
	"crednest-server/pkg/response"
)

// BudgetHandler 预算与支出请求处理器
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler 创建 BudgetHandler 实例
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// parseID 解析路径中的正整数 ID
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的ID")
		return 0, false
	}
	return id, true
}

// writeBudgetError 把预算服务的错误映射为响应
func writeBudgetError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrBudgetNotFound):
		response.BudgetNotFound(c)
	case errors.Is(err, service.ErrExpenseNotFound):
		response.ExpenseNotFound(c)
	case errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidPayMethod),
		errors.Is(err, service.ErrNothingToUpdate):
		response.BadRequest(c, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, fallback)
	}
}

// ListBudgets 获取预算列表
// @Summary 获取预算列表
// @Tags 预算
// @Security Bearer
// @Produce json
// @Param period query string false "daily/weekly/monthly/yearly"
// @Success 200 {object} response.Response{data=[]model.Budget}
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), middleware.GetUserID(c), c.Query("period"))
	if err != nil {
		writeBudgetError(c, err, "获取预算列表失败")
		return
	}
	response.Success(c, budgets)
}

// CreateBudget 创建预算
// @Summary 创建预算
// @Tags 预算
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateBudgetRequest true "预算"
// @Success 201 {object} response.Response{data=model.Budget}
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req service.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeBudgetError(c, err, "创建预算失败")
		return
	}
	response.Created(c, budget)
}

// UpdateBudget 更新预算
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		writeBudgetError(c, err, "更新预算失败")
		return
	}
	response.Success(c, budget)
}

// DeleteBudget 删除预算
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		writeBudgetError(c, err, "删除预算失败")
		return
	}
	response.SuccessWithMessage(c, "预算已删除", nil)
}

// Summary 当月预算汇总
// @Summary 当月预算汇总
// @Tags 预算
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=model.BudgetSummary}
// @Router /api/v1/budgets/summary [get]
func (h *BudgetHandler) Summary(c *gin.Context) {
	summary, err := h.budgetService.Summary(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeBudgetError(c, err, "获取预算汇总失败")
		return
	}
	response.Success(c, summary)
}

// AddExpense 新增支出
// @Router /api/v1/expenses [post]
func (h *BudgetHandler) AddExpense(c *gin.Context) {
	var req service.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	expense, err := h.budgetService.AddExpense(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		writeBudgetError(c, err, "新增支出失败")
		return
	}
	response.Created(c, expense)
}

// ListExpenses 查询支出
// @Summary 查询支出
// @Tags 支出
// @Security Bearer
// @Produce json
// @Param category query string false "分类"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Param limit query int false "条数" default(50)
// @Success 200 {object} response.Response{data=service.ExpenseListResponse}
// @Router /api/v1/expenses [get]
func (h *BudgetHandler) ListExpenses(c *gin.Context) {
	filter := repository.ExpenseFilter{Category: c.Query("category")}

	if v := c.Query("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			response.BadRequest(c, "无效的开始日期")
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			response.BadRequest(c, "无效的结束日期")
			return
		}
		// 结束日期包含当天
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			response.BadRequest(c, "无效的 limit")
			return
		}
		filter.Limit = limit
	}

	result, err := h.budgetService.ListExpenses(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		writeBudgetError(c, err, "获取支出列表失败")
		return
	}
	response.Success(c, result)
}

// DeleteExpense 删除支出
// @Router /api/v1/expenses/{id} [delete]
func (h *BudgetHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.budgetService.DeleteExpense(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		writeBudgetError(c, err, "删除支出失败")
		return
	}
	response.SuccessWithMessage(c, "支出已删除", nil)
}

// parseDate 支持 YYYY-MM-DD 与 RFC3339
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
