package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/earlysteps-ai/earlysteps/internal/api"
	"github.com/earlysteps-ai/earlysteps/internal/service"
)

type ChatService interface {
	Chat(ctx context.Context, input service.ChatInput) (*service.ChatResult, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	AgeMonths *int   `json:"age_months,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Chat runs one conversational turn. The returned session_id identifies the
// conversation for follow-up requests.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.ChatInput{
		Message:   req.Message,
		SessionID: req.SessionID,
		AgeMonths: req.AgeMonths,
		Domain:    req.Domain,
	}

	result, err := h.svc.Chat(r.Context(), input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{
		Response:  result.Reply,
		SessionID: result.SessionID,
	})
}
