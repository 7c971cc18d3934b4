package service

import (
	"math"

	"car-dealer/domain"
)

var creditRates = map[domain.CreditTier]float64{
	domain.CreditExcellent: RateExcellent,
	domain.CreditGood:      RateGood,
	domain.CreditFair:      RateFair,
	domain.CreditPoor:      RatePoor,
	domain.CreditNone:      RateNoCredit,
}

type creditBand struct {
	points int
	factor string
}

var creditBands = map[domain.CreditTier]creditBand{
	domain.CreditExcellent: {40, "Excellent credit score"},
	domain.CreditGood:      {30, "Good credit score"},
	domain.CreditFair:      {20, "Fair credit score"},
	domain.CreditPoor:      {10, "Poor credit score"},
	domain.CreditNone:      {5, "No credit history"},
}

// RateForTier returns the annual percentage rate for a credit tier.
// Unknown tiers are priced as CreditGood.
func RateForTier(tier domain.CreditTier) float64 {
	return creditRates[domain.ParseCreditTier(string(tier))]
}

// EstimateAffordability computes the largest loan the applicant can carry
// and how likely it is to be approved. It returns a *domain.ValidationError
// when income is not positive or debt is negative.
func EstimateAffordability(input domain.AffordabilityInput) (domain.AffordabilityResult, error) {
	if math.IsNaN(input.MonthlyIncome) || math.IsInf(input.MonthlyIncome, 0) || input.MonthlyIncome <= 0 {
		return domain.AffordabilityResult{}, domain.NewValidationError("monthlyIncome", "must be greater than 0")
	}
	if math.IsNaN(input.MonthlyDebt) || math.IsInf(input.MonthlyDebt, 0) || input.MonthlyDebt < 0 {
		return domain.AffordabilityResult{}, domain.NewValidationError("monthlyDebt", "must not be negative")
	}

	tier := domain.ParseCreditTier(string(input.CreditTier))
	annualRate := creditRates[tier]
	r := monthlyRate(annualRate)
	n := input.LoanTermMonths

	dti := debtToIncome(input.MonthlyIncome, input.MonthlyDebt)
	capacity := math.Max(0, input.MonthlyIncome*PaymentCapacityRatio-input.MonthlyDebt)

	maxLoan := principalForPayment(capacity, r, n)
	payment := amortizedPayment(maxLoan, r, n)
	totalInterest := 0.0
	if n > 0 {
		totalInterest = payment*float64(n) - maxLoan
	}

	result := domain.AffordabilityResult{
		MaxLoanAmount:      roundTo2Decimals(maxLoan),
		MaxVehiclePrice:    roundTo2Decimals(maxLoan + input.DownPayment),
		MonthlyPayment:     roundTo2Decimals(payment),
		TotalInterest:      roundTo2Decimals(totalInterest),
		DebtToIncomeRatio:  roundTo2Decimals(dti),
		PaymentCapacity:    roundTo2Decimals(capacity),
		InterestRate:       annualRate,
		ApprovalLikelihood: approvalLikelihood(dti, tier, input.MonthlyIncome),
	}
	result.Recommendations = recommendations(dti, result.ApprovalLikelihood.Level, maxLoan+input.DownPayment)

	return result, nil
}

// debtToIncome multiplies before dividing so that whole-number ratios
// such as 28% come out exact.
func debtToIncome(income, debt float64) float64 {
	if income <= 0 {
		return 0
	}
	return debt * 100 / income
}

func approvalLikelihood(dti float64, tier domain.CreditTier, income float64) domain.ApprovalLikelihood {
	score := 0
	factors := make([]string, 0, 3)

	switch {
	case dti <= DTIExcellentMax:
		score += 40
		factors = append(factors, "Excellent debt-to-income ratio")
	case dti <= DTIGoodMax:
		score += 30
		factors = append(factors, "Good debt-to-income ratio")
	case dti <= DTIAcceptableMax:
		score += 20
		factors = append(factors, "Acceptable debt-to-income ratio")
	default:
		score += 5
		factors = append(factors, "High debt-to-income ratio")
	}

	band, ok := creditBands[tier]
	if !ok {
		band = creditBands[domain.CreditGood]
	}
	score += band.points
	factors = append(factors, band.factor)

	switch {
	case income >= IncomeStrongMin:
		score += 20
		factors = append(factors, "Strong income level")
	case income >= IncomeGoodMin:
		score += 15
		factors = append(factors, "Good income level")
	case income >= IncomeAdequateMin:
		score += 10
		factors = append(factors, "Adequate income level")
	default:
		score += 5
		factors = append(factors, "Low income level")
	}

	likelihood := domain.ApprovalLikelihood{Score: score, Factors: factors}
	switch {
	case score >= ApprovalHighScore:
		likelihood.Level = domain.ApprovalHigh
		likelihood.Percentage = min(ApprovalHighCap, score)
	case score >= ApprovalMediumScore:
		likelihood.Level = domain.ApprovalMedium
		likelihood.Percentage = min(ApprovalMediumCap, score)
	default:
		likelihood.Level = domain.ApprovalLow
		likelihood.Percentage = min(ApprovalLowCap, score)
	}
	return likelihood
}

func recommendations(dti float64, level domain.ApprovalLevel, maxVehiclePrice float64) []string {
	var items []string
	if dti > DTIGoodMax {
		items = append(items, "Consider paying down existing debts to improve approval odds")
	}
	if level == domain.ApprovalLow {
		items = append(items,
			"Consider a larger down payment to improve approval chances",
			"Look into shorter loan terms for better rates",
		)
	}
	if maxVehiclePrice < UsedVehiclePriceThreshold {
		items = append(items, "Consider used vehicles in your price range")
	}
	if len(items) == 0 {
		items = append(items, "You're in a good position for auto financing!")
	}
	return items
}
