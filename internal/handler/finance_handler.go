package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"crednest-server/internal/finance"
	"crednest-server/internal/service"
	"crednest-server/pkg/response"
)

// FinanceHandler 金融工具请求处理器
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler 创建 FinanceHandler 实例
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// ListBanks 获取银行列表
// @Summary 获取银行列表
// @Description 指定 loanType 时按该类贷款利率升序，否则按评分降序
// @Tags 金融
// @Produce json
// @Param loanType query string false "home/personal/car/education"
// @Param limit query int false "条数" default(20)
// @Success 200 {object} response.Response{data=[]model.Bank}
// @Router /api/v1/financial/banks [get]
func (h *FinanceHandler) ListBanks(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, "无效的 limit")
			return
		}
		limit = n
	}

	banks, err := h.financeService.ListBanks(c.Request.Context(), c.Query("loanType"), limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLoanType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "获取银行列表失败")
		return
	}
	response.Success(c, banks)
}

// GetBank 获取银行详情
// @Router /api/v1/financial/banks/{id} [get]
func (h *FinanceHandler) GetBank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bank, err := h.financeService.GetBank(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBankNotFound) {
			response.BankNotFound(c)
			return
		}
		response.InternalError(c, "获取银行信息失败")
		return
	}
	response.Success(c, bank)
}

// CalculateEMI 计算 EMI
// @Summary 计算 EMI
// @Tags 金融
// @Accept json
// @Produce json
// @Param body body service.EMIRequest true "本金、年利率、期数（月）"
// @Success 200 {object} response.Response{data=finance.EMIResult}
// @Router /api/v1/financial/calculate-emi [post]
func (h *FinanceHandler) CalculateEMI(c *gin.Context) {
	var req service.EMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	result, err := h.financeService.CalculateEMI(&req)
	if err != nil {
		switch {
		case errors.Is(err, finance.ErrInvalidPrincipal),
			errors.Is(err, finance.ErrInvalidRate),
			errors.Is(err, finance.ErrInvalidTenure),
			errors.Is(err, finance.ErrOutOfRange):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "计算失败")
		}
		return
	}
	response.Success(c, result)
}

// CheckEligibility 检查贷款资格
// @Summary 检查贷款资格
// @Tags 金融
// @Accept json
// @Produce json
// @Param body body service.EligibilityRequest true "月收入、贷款金额、CIBIL 分数"
// @Success 200 {object} response.Response{data=finance.EligibilityResult}
// @Router /api/v1/financial/check-eligibility [post]
func (h *FinanceHandler) CheckEligibility(c *gin.Context) {
	var req service.EligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}
	response.Success(c, h.financeService.CheckEligibility(&req))
}
