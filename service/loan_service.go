package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/logger"
	"car-dealer/metrics"
	"car-dealer/repository"
)

const affordabilityCacheVersion = "v1"

type LoanService struct {
	repo  repository.EstimateRepository
	cache repository.CacheRepository
	log   logrus.FieldLogger
}

// NewLoanService creates a new LoanService. cache may be nil to disable
// caching.
func NewLoanService(
	repo repository.EstimateRepository,
	cache repository.CacheRepository,
	log logrus.FieldLogger,
) *LoanService {
	return &LoanService{repo: repo, cache: cache, log: log}
}

// CalculateLoan computes the level monthly payment for financing a vehicle.
func (s *LoanService) CalculateLoan(
	input domain.FinancingInput,
) (domain.FinancingResult, error) {
	if input.VehiclePrice <= 0 {
		return domain.FinancingResult{}, domain.NewValidationError("vehiclePrice", "must be greater than 0")
	}
	if input.DownPayment < 0 {
		return domain.FinancingResult{}, domain.NewValidationError("downPayment", "must not be negative")
	}
	if input.DownPayment >= input.VehiclePrice {
		return domain.FinancingResult{}, domain.NewValidationError("downPayment", "must be less than the vehicle price")
	}
	if input.InterestRate < 0 {
		return domain.FinancingResult{}, domain.NewValidationError("interestRate", "must not be negative")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.FinancingResult{}, domain.NewValidationError("interestRate",
			fmt.Sprintf("exceeds the maximum of %.2f%%", MaxInterestRate))
	}
	if input.TermMonths < MinTermMonths {
		return domain.FinancingResult{}, domain.NewValidationError("termMonths", "must be at least 1")
	}
	if input.TermMonths > MaxTermMonths {
		return domain.FinancingResult{}, domain.NewValidationError("termMonths",
			fmt.Sprintf("exceeds the maximum of %d months", MaxTermMonths))
	}

	amount := input.VehiclePrice - input.DownPayment
	if amount > MaxLoanAmount {
		return domain.FinancingResult{}, domain.NewValidationError("vehiclePrice",
			fmt.Sprintf("financed amount exceeds the maximum of $%.2f", MaxLoanAmount))
	}

	payment := amortizedPayment(amount, monthlyRate(input.InterestRate), input.TermMonths)
	total := payment * float64(input.TermMonths)

	return domain.FinancingResult{
		LoanAmount:     roundTo2Decimals(amount),
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - amount),
	}, nil
}

// EstimateAffordability runs the affordability estimator, serving repeated
// inputs from the cache. Cache and log failures never fail the estimate.
func (s *LoanService) EstimateAffordability(
	ctx context.Context,
	input domain.AffordabilityInput,
) (domain.AffordabilityResult, error) {
	log := logger.FromContext(ctx, s.log)
	key := affordabilityCacheKey(input)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result domain.AffordabilityResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				metrics.LoanCacheLookups.WithLabelValues("hit").Inc()
				return result, nil
			}
			log.WithField("key", key).Warn("Discarding undecodable cached estimate")
		}
		metrics.LoanCacheLookups.WithLabelValues("miss").Inc()
	}

	result, err := EstimateAffordability(input)
	if err != nil {
		return domain.AffordabilityResult{}, err
	}
	metrics.AffordabilityEstimates.WithLabelValues(string(result.ApprovalLikelihood.Level)).Inc()

	if s.cache != nil {
		if encoded, err := json.Marshal(result); err != nil {
			log.WithError(err).Warn("Failed to encode estimate for cache")
		} else if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
			log.WithError(err).Warn("Failed to cache estimate")
		}
	}

	if err := s.repo.Save(input, result); err != nil {
		log.WithError(err).Warn("Failed to save affordability estimate")
	}

	log.WithFields(logrus.Fields{
		"dti":      result.DebtToIncomeRatio,
		"max_loan": result.MaxLoanAmount,
		"level":    result.ApprovalLikelihood.Level,
	}).Debug("Affordability estimated")

	return result, nil
}

// affordabilityCacheKey formats floats exactly so inputs on either side of
// a band boundary never share an entry.
func affordabilityCacheKey(input domain.AffordabilityInput) string {
	parts := []string{
		"affordability",
		affordabilityCacheVersion,
		strconv.FormatFloat(input.MonthlyIncome, 'g', -1, 64),
		strconv.FormatFloat(input.MonthlyDebt, 'g', -1, 64),
		string(domain.ParseCreditTier(string(input.CreditTier))),
		strconv.FormatFloat(input.DownPayment, 'g', -1, 64),
		strconv.Itoa(input.LoanTermMonths),
	}
	return strings.Join(parts, ":")
}
