package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
	"github.com/earlysteps-ai/earlysteps/internal/telemetry"
)

// CompletionClient abstracts the remote chat-completion call so services can
// be tested against a deterministic backend.
type CompletionClient interface {
	Complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error)
}

// ContextRetriever abstracts retrieval for the plan and chat services.
type ContextRetriever interface {
	Retrieve(query string, budget int) string
}

// PlanInput carries a plan generation request.
type PlanInput struct {
	AgeMonths int
	Domain    string
	ExtraInfo string
}

// PlanService generates structured intervention plans: validate, retrieve
// grounding context, complete in JSON mode, parse (with one repair pass).
type PlanService struct {
	retriever  ContextRetriever
	completion CompletionClient
	budget     int
}

// NewPlanService creates a PlanService using budget as the retrieval
// character limit.
func NewPlanService(retriever ContextRetriever, completion CompletionClient, budget int) *PlanService {
	return &PlanService{
		retriever:  retriever,
		completion: completion,
		budget:     budget,
	}
}

// GeneratePlan produces an intervention plan for the request. Validation
// failures surface before any retrieval or remote call.
func (s *PlanService) GeneratePlan(ctx context.Context, input PlanInput) (*domain.Plan, error) {
	if !domain.ValidAgeMonths(input.AgeMonths) {
		return nil, domain.ErrAgeOutOfRange
	}
	if strings.TrimSpace(input.Domain) == "" {
		return nil, domain.ErrMissingDomain
	}

	age := input.AgeMonths
	query := buildQuery(&age, input.Domain, input.ExtraInfo)
	ragContext := s.retriever.Retrieve(query, s.budget)

	userMsg := fmt.Sprintf("Create an intervention plan for a %d-month-old child in the %s domain.", input.AgeMonths, input.Domain)
	if input.ExtraInfo != "" {
		userMsg += fmt.Sprintf("\n\nAdditional context: %s", input.ExtraInfo)
	}

	messages := []domain.Message{
		domain.SystemMessage(planSystemPrompt(ragContext)),
		domain.UserMessage(userMsg),
	}

	spanCtx, span := telemetry.StartSpan(ctx, "plan.complete", telemetry.SpanAttributes{Domain: input.Domain})
	text, err := s.completion.Complete(spanCtx, messages, true)
	if err != nil {
		span.SetError(err)
		span.End()
		return nil, err
	}
	span.End()

	plan, err := parsePlanOutput(text)
	if err != nil {
		telemetry.CaptureError(ctx, err)
		return nil, err
	}
	return plan, nil
}
