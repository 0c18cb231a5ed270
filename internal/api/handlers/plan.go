package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/earlysteps-ai/earlysteps/internal/api"
	"github.com/earlysteps-ai/earlysteps/internal/domain"
	"github.com/earlysteps-ai/earlysteps/internal/service"
)

type PlanService interface {
	GeneratePlan(ctx context.Context, input service.PlanInput) (*domain.Plan, error)
}

type PlanHandler struct {
	svc PlanService
}

func NewPlanHandler(svc PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// PlanRequest carries a plan generation request. AgeMonths is a pointer so a
// body that omits the field can be told apart from an explicit zero (a
// newborn); omitting it is a validation error.
type PlanRequest struct {
	AgeMonths *int   `json:"age_months"`
	Domain    string `json:"domain"`
	ExtraInfo string `json:"extra_info,omitempty"`
}

// Generate builds an intervention plan. The response body is the plan record
// itself; the "Advice for Parents" key is part of the wire contract.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AgeMonths == nil {
		api.HandleError(w, domain.ErrMissingAge)
		return
	}

	input := service.PlanInput{
		AgeMonths: *req.AgeMonths,
		Domain:    req.Domain,
		ExtraInfo: req.ExtraInfo,
	}

	plan, err := h.svc.GeneratePlan(r.Context(), input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, plan)
}
