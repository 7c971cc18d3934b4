package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"car-dealer/domain"
)

var ErrNoQualifyingTerm = errors.New("no term keeps the monthly payment within the maximum")

type TermRecommendationService struct {
	loanService *LoanService
	log         logrus.FieldLogger
}

func NewTermRecommendationService(loanService *LoanService, log logrus.FieldLogger) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		log:         log,
	}
}

// RecommendTerm evaluates every term in the requested range and ranks the
// affordable ones by the caller's preference.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {
	if input.VehiclePrice <= 0 {
		return domain.TermRecommendationResult{}, domain.NewValidationError("vehiclePrice", "must be greater than 0")
	}
	if input.DownPayment < 0 || input.DownPayment >= input.VehiclePrice {
		return domain.TermRecommendationResult{}, domain.NewValidationError("downPayment", "must be between 0 and the vehicle price")
	}
	if input.InterestRate < 0 {
		return domain.TermRecommendationResult{}, domain.NewValidationError("interestRate", "must not be negative")
	}
	if input.MinTermMonths <= 0 || input.MaxTermMonths <= 0 {
		return domain.TermRecommendationResult{}, domain.NewValidationError("minTermMonths", "terms must be positive")
	}
	if input.MinTermMonths > input.MaxTermMonths {
		return domain.TermRecommendationResult{}, domain.NewValidationError("minTermMonths", "must not exceed maxTermMonths")
	}
	if input.MaxTermMonths > MaxTermMonths {
		return domain.TermRecommendationResult{}, domain.NewValidationError("maxTermMonths",
			fmt.Sprintf("exceeds the limit of %d months", MaxTermMonths))
	}
	if input.MaxTermMonths-input.MinTermMonths > MaxTermRangeMonths {
		return domain.TermRecommendationResult{}, domain.NewValidationError("maxTermMonths",
			fmt.Sprintf("term range exceeds %d months", MaxTermRangeMonths))
	}
	if input.MaxMonthlyPayment <= 0 {
		return domain.TermRecommendationResult{}, domain.NewValidationError("maxMonthlyPayment", "must be greater than 0")
	}
	switch input.Preference {
	case domain.PreferMinimizeInterest, domain.PreferMinimizePayment, domain.PreferBalanced:
	default:
		return domain.TermRecommendationResult{}, domain.NewValidationError("preference", "unknown preference")
	}

	amount := input.VehiclePrice - input.DownPayment
	recommendations := []domain.TermRecommendation{}

	for term := input.MinTermMonths; term <= input.MaxTermMonths; term++ {
		result, err := s.loanService.CalculateLoan(domain.FinancingInput{
			VehiclePrice: input.VehiclePrice,
			DownPayment:  input.DownPayment,
			InterestRate: input.InterestRate,
			TermMonths:   term,
		})
		if err != nil {
			s.log.WithError(err).WithField("term", term).Warn("Failed to calculate financing for term")
			continue
		}

		if result.MonthlyPayment > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Score:          s.calculateScore(result, input, amount, term),
			Reason:         generateReason(input.Preference),
		})
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, ErrNoQualifyingTerm
	}

	// ties keep the shorter term first
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	return domain.TermRecommendationResult{
		RecommendedTerm: recommendations[0].TermMonths,
		LoanAmount:      roundTo2Decimals(amount),
		Recommendations: recommendations,
	}, nil
}

func (s *TermRecommendationService) calculateScore(
	result domain.FinancingResult,
	input domain.TermRecommendationInput,
	amount float64,
	term int,
) float64 {
	// Normalize each criterion to 0-10
	maxPossibleInterest := amount * (input.InterestRate / 100) * float64(input.MaxTermMonths) / 12
	minPossibleInterest := amount * (input.InterestRate / 100) * float64(input.MinTermMonths) / 12

	interestRange := maxPossibleInterest - minPossibleInterest
	minPayment := amount / float64(input.MaxTermMonths)
	paymentRange := input.MaxMonthlyPayment - minPayment

	interestScore := 0.0
	paymentScore := 0.0
	termScore := 10.0

	if interestRange > 0 {
		interestScore = 10.0 * (1.0 - (result.TotalInterest-minPossibleInterest)/interestRange)
	}
	if paymentRange > 0 {
		paymentScore = 10.0 * (1.0 - (result.MonthlyPayment-minPayment)/paymentRange)
	}
	if span := input.MaxTermMonths - input.MinTermMonths; span > 0 {
		termScore = 10.0 * (1.0 - float64(term-input.MinTermMonths)/float64(span))
	}

	var score float64
	switch input.Preference {
	case domain.PreferMinimizeInterest:
		score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
	case domain.PreferMinimizePayment:
		score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
	case domain.PreferBalanced:
		score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
	}

	return roundTo2Decimals(score)
}

func generateReason(preference domain.TermPreference) string {
	switch preference {
	case domain.PreferMinimizeInterest:
		return "Term chosen to minimize total interest paid"
	case domain.PreferMinimizePayment:
		return "Term chosen to minimize the monthly payment"
	case domain.PreferBalanced:
		return "Best balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}
