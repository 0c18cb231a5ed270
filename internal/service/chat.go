package service

import (
	"context"
	"strings"

	"github.com/earlysteps-ai/earlysteps/internal/domain"
	"github.com/earlysteps-ai/earlysteps/internal/telemetry"
)

// IDGenerator produces opaque session ids (injectable for tests).
type IDGenerator interface {
	NewString() string
}

// ChatInput carries one conversational turn.
type ChatInput struct {
	Message   string
	SessionID string
	AgeMonths *int
	Domain    string
}

// ChatResult is the outcome of a successful turn.
type ChatResult struct {
	Reply     string
	SessionID string
}

// ChatService runs multi-turn conversations with per-session memory. A turn
// retrieves context, prompts the model with the session's trailing history,
// and records the exchange only after the completion succeeds.
type ChatService struct {
	retriever  ContextRetriever
	completion CompletionClient
	sessions   *SessionStore
	budget     int
	idGen      IDGenerator
}

// NewChatService creates a ChatService using budget as the retrieval
// character limit.
func NewChatService(retriever ContextRetriever, completion CompletionClient, sessions *SessionStore, budget int) *ChatService {
	return &ChatService{
		retriever:  retriever,
		completion: completion,
		sessions:   sessions,
		budget:     budget,
		idGen:      &UUIDGenerator{},
	}
}

// NewChatServiceWithIDGen creates a ChatService with a custom session id
// generator (for testing).
func NewChatServiceWithIDGen(retriever ContextRetriever, completion CompletionClient, sessions *SessionStore, budget int, idGen IDGenerator) *ChatService {
	svc := NewChatService(retriever, completion, sessions, budget)
	svc.idGen = idGen
	return svc
}

// Chat handles one turn. A missing or blank session id starts a fresh
// session with a generated id; an unknown id starts a fresh session under
// that id. On completion failure the session history is left untouched, so
// stored state only ever reflects completed exchanges.
func (s *ChatService) Chat(ctx context.Context, input ChatInput) (*ChatResult, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.ErrMissingMessage
	}
	if input.AgeMonths != nil && !domain.ValidAgeMonths(*input.AgeMonths) {
		return nil, domain.ErrAgeOutOfRange
	}

	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = s.idGen.NewString()
	}

	query := buildQuery(input.AgeMonths, input.Domain, input.Message)
	ragContext := s.retriever.Retrieve(query, s.budget)

	// Holding the session lock across the completion call serializes
	// concurrent turns on the same session id: the second turn sees the
	// first turn's exchange in its history, and a failed turn records
	// nothing.
	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	messages := make([]domain.Message, 0, len(sess.messages)+2)
	messages = append(messages, domain.SystemMessage(chatSystemPrompt(ragContext)))
	messages = append(messages, sess.messages...)
	messages = append(messages, domain.UserMessage(input.Message))

	spanCtx, span := telemetry.StartSpan(ctx, "chat.complete", telemetry.SpanAttributes{
		SessionID: sessionID,
		Domain:    input.Domain,
	})
	reply, err := s.completion.Complete(spanCtx, messages, false)
	if err != nil {
		span.SetError(err)
		span.End()
		return nil, err
	}
	span.End()

	s.sessions.appendExchange(sess, input.Message, reply)

	return &ChatResult{Reply: reply, SessionID: sessionID}, nil
}
