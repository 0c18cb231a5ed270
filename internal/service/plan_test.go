package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

// MockCompletionClient is a mock completion backend
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []domain.Message, jsonMode bool) (string, error) {
	args := m.Called(ctx, messages, jsonMode)
	return args.String(0), args.Error(1)
}

// stubRetriever returns a fixed context and records the last query.
type stubRetriever struct {
	context   string
	lastQuery string
}

func (r *stubRetriever) Retrieve(query string, budget int) string {
	r.lastQuery = query
	return r.context
}

const modelPlanJSON = `{"Goals":"G","Strategies":"S","Advice for Parents":"A"}`

func TestPlanService_GeneratePlan_Success(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	retriever := &stubRetriever{context: "communication milestones at 24 months"}
	svc := NewPlanService(retriever, mockCompletion, 6000)

	mockCompletion.On("Complete", mock.Anything, mock.Anything, true).Return(modelPlanJSON, nil)

	plan, err := svc.GeneratePlan(context.Background(), PlanInput{
		AgeMonths: 24,
		Domain:    "communication",
		ExtraInfo: "bilingual home",
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.Plan{Goals: "G", Strategies: "S", AdviceForParents: "A"}, plan)
	assert.Contains(t, retriever.lastQuery, "24 months")
	assert.Contains(t, retriever.lastQuery, "communication")
	assert.Contains(t, retriever.lastQuery, "bilingual home")
	mockCompletion.AssertExpectations(t)
}

func TestPlanService_GeneratePlan_PromptCarriesContext(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	retriever := &stubRetriever{context: "responsive routines build language"}
	svc := NewPlanService(retriever, mockCompletion, 6000)

	mockCompletion.On("Complete", mock.Anything, mock.MatchedBy(func(messages []domain.Message) bool {
		if len(messages) != 2 || messages[0].Role != domain.RoleSystem || messages[1].Role != domain.RoleUser {
			return false
		}
		system := messages[0].Content
		return strings.Contains(system, "[RAG CONTEXT]") &&
			strings.Contains(system, "responsive routines build language") &&
			strings.Contains(system, "[/RAG CONTEXT]")
	}), true).Return(modelPlanJSON, nil)

	_, err := svc.GeneratePlan(context.Background(), PlanInput{AgeMonths: 18, Domain: "communication"})

	require.NoError(t, err)
	mockCompletion.AssertExpectations(t)
}

func TestPlanService_GeneratePlan_AgeOutOfRange(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	retriever := &stubRetriever{}
	svc := NewPlanService(retriever, mockCompletion, 6000)

	_, err := svc.GeneratePlan(context.Background(), PlanInput{AgeMonths: 40, Domain: "communication"})

	assert.ErrorIs(t, err, domain.ErrAgeOutOfRange)
	// Validation fails before any retrieval or remote call.
	assert.Empty(t, retriever.lastQuery)
	mockCompletion.AssertNotCalled(t, "Complete")
}

func TestPlanService_GeneratePlan_MissingDomain(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	svc := NewPlanService(&stubRetriever{}, mockCompletion, 6000)

	_, err := svc.GeneratePlan(context.Background(), PlanInput{AgeMonths: 12, Domain: "  "})

	assert.ErrorIs(t, err, domain.ErrMissingDomain)
	mockCompletion.AssertNotCalled(t, "Complete")
}

func TestPlanService_GeneratePlan_UpstreamErrorPropagates(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	svc := NewPlanService(&stubRetriever{}, mockCompletion, 6000)

	upstream := domain.NewDomainError(domain.ErrCodeUpstream, "completion failed: status 429: rate limited")
	mockCompletion.On("Complete", mock.Anything, mock.Anything, true).Return("", upstream)

	_, err := svc.GeneratePlan(context.Background(), PlanInput{AgeMonths: 24, Domain: "social"})

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeUpstream, domainErr.Code)
}

func TestPlanService_GeneratePlan_UnparsableOutputFails(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	svc := NewPlanService(&stubRetriever{}, mockCompletion, 6000)

	mockCompletion.On("Complete", mock.Anything, mock.Anything, true).Return("not json at all", nil)

	plan, err := svc.GeneratePlan(context.Background(), PlanInput{AgeMonths: 24, Domain: "social"})

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, domain.ErrUnparsableCompletion)
}

func TestPlanService_GeneratePlan_Idempotent(t *testing.T) {
	mockCompletion := new(MockCompletionClient)
	svc := NewPlanService(&stubRetriever{context: "ctx"}, mockCompletion, 6000)

	mockCompletion.On("Complete", mock.Anything, mock.Anything, true).Return(modelPlanJSON, nil)

	input := PlanInput{AgeMonths: 24, Domain: "communication", ExtraInfo: "bilingual home"}
	first, err := svc.GeneratePlan(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.GeneratePlan(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockCompletion.AssertNumberOfCalls(t, "Complete", 2)
}
