package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"crednest-server/internal/cache"
	"crednest-server/internal/finance"
	"crednest-server/internal/logger"
	"crednest-server/internal/model"
	"crednest-server/internal/repository"
)

// 金融目录相关错误
var (
	ErrBankNotFound    = errors.New("银行不存在")
	ErrInvalidLoanType = errors.New("无效的贷款类型")
)

const (
	defaultBankLimit = 20
	maxBankListLimit = 100
	bankListCacheTTL = 10 * time.Minute
)

// FinanceService 金融工具服务
// 银行目录查询与计算库的 HTTP 入口
type FinanceService struct {
	bankRepo *repository.BankRepository
	cache    *cache.RedisCache
	log      *logger.Logger
}

// NewFinanceService 创建 FinanceService 实例
func NewFinanceService(bankRepo *repository.BankRepository, cache *cache.RedisCache, log *logger.Logger) *FinanceService {
	return &FinanceService{
		bankRepo: bankRepo,
		cache:    cache,
		log:      log,
	}
}

// ListBanks 获取银行列表
// 结果按 (loanType, limit) 缓存在 Redis，缓存读写失败时直接查库
// 参数:
//   - loanType: home/personal/car/education，为空按评分排序
//   - limit: 条数上限，<=0 时为 20
func (s *FinanceService) ListBanks(ctx context.Context, loanType string, limit int) ([]model.Bank, error) {
	if loanType != "" && model.RateColumn(loanType) == "" {
		return nil, ErrInvalidLoanType
	}
	if limit <= 0 {
		limit = defaultBankLimit
	}
	if limit > maxBankListLimit {
		limit = maxBankListLimit
	}

	if data, ok := s.cache.GetBankList(ctx, loanType, limit); ok {
		var banks []model.Bank
		if err := json.Unmarshal(data, &banks); err == nil {
			return banks, nil
		}
	}

	banks, err := s.bankRepo.List(ctx, loanType, limit)
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []model.Bank{}
	}

	if data, err := json.Marshal(banks); err == nil {
		if err := s.cache.SetBankList(ctx, loanType, limit, data, bankListCacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("cache bank list failed")
		}
	}
	return banks, nil
}

// GetBank 获取银行详情
func (s *FinanceService) GetBank(ctx context.Context, id int64) (*model.Bank, error) {
	bank, err := s.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, ErrBankNotFound
	}
	return bank, nil
}

// SeedBanks 用给定数据替换整个银行目录并清除列表缓存
func (s *FinanceService) SeedBanks(ctx context.Context, banks []model.Bank) error {
	if err := s.bankRepo.ReplaceAll(ctx, banks); err != nil {
		return err
	}
	return s.cache.InvalidateBankLists(ctx)
}

// EMIRequest EMI 计算请求
type EMIRequest struct {
	Principal int64   `json:"principal" binding:"required"`
	Rate      float64 `json:"rate"`
	Tenure    int     `json:"tenure" binding:"required"` // 月数
}

// CalculateEMI 计算等额本息月供
// 返回 finance.ErrInvalidPrincipal / ErrInvalidRate / ErrInvalidTenure
func (s *FinanceService) CalculateEMI(req *EMIRequest) (*finance.EMIResult, error) {
	return finance.CalculateEMI(req.Principal, req.Rate, req.Tenure)
}

// EligibilityRequest 贷款资格检查请求
type EligibilityRequest struct {
	MonthlyIncome int64 `json:"monthlyIncome" binding:"required,gt=0,max=153722867280912930"` // 上限为 finance.MaxMonthlyIncome
	LoanAmount    int64 `json:"loanAmount" binding:"required,gt=0"`
	CibilScore    int   `json:"cibilScore" binding:"omitempty,min=300,max=900"` // 为空时取 750
}

// CheckEligibility 检查贷款资格
func (s *FinanceService) CheckEligibility(req *EligibilityRequest) *finance.EligibilityResult {
	return finance.CheckEligibility(req.MonthlyIncome, req.LoanAmount, req.CibilScore)
}
