package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/service"
)

type LoanHandler struct {
	service *service.LoanService
	log     logrus.FieldLogger
}

func NewLoanHandler(service *service.LoanService, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{service: service, log: log}
}

type calculateLoanRequest struct {
	VehiclePrice float64 `json:"vehiclePrice" validate:"gt=0"`
	DownPayment  float64 `json:"downPayment" validate:"gte=0"`
	InterestRate float64 `json:"interestRate" validate:"gte=0"`
	TermMonths   int     `json:"termMonths" validate:"gt=0"`
}

type affordabilityRequest struct {
	MonthlyIncome  float64 `json:"monthlyIncome"`
	MonthlyDebt    float64 `json:"monthlyDebt"`
	CreditTier     string  `json:"creditTier"`
	DownPayment    float64 `json:"downPayment" validate:"gte=0"`
	LoanTermMonths int     `json:"loanTermMonths" validate:"gt=0,lte=600"`
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var req calculateLoanRequest
	if !decodeJSON(w, r, h.log, &req) {
		return
	}

	result, err := h.service.CalculateLoan(domain.FinancingInput{
		VehiclePrice: req.VehiclePrice,
		DownPayment:  req.DownPayment,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, result)
}

// EstimateAffordability accepts any credit tier string; unknown tiers are
// priced as good credit.
func (h *LoanHandler) EstimateAffordability(w http.ResponseWriter, r *http.Request) {
	var req affordabilityRequest
	if !decodeJSON(w, r, h.log, &req) {
		return
	}

	result, err := h.service.EstimateAffordability(r.Context(), domain.AffordabilityInput{
		MonthlyIncome:  req.MonthlyIncome,
		MonthlyDebt:    req.MonthlyDebt,
		CreditTier:     domain.CreditTier(req.CreditTier),
		DownPayment:    req.DownPayment,
		LoanTermMonths: req.LoanTermMonths,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, result)
}
