package http

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/logger"
	"car-dealer/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	log     logrus.FieldLogger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, log logrus.FieldLogger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, log: log}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.RecommendTerm(input)
	if errors.Is(err, service.ErrNoQualifyingTerm) {
		logger.FromContext(r.Context(), h.log).WithField("max_payment", input.MaxMonthlyPayment).Info("No term fits the payment cap")
		writeError(w, r, h.log, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, result)
}
