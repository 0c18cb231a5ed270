package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/earlysteps-ai/earlysteps/internal/api"
	"github.com/earlysteps-ai/earlysteps/internal/api/handlers"
	"github.com/earlysteps-ai/earlysteps/internal/api/middleware"
)

type RouterConfig struct {
	PlanHandler      *handlers.PlanHandler
	ChatHandler      *handlers.ChatHandler
	KnowledgeHandler *handlers.KnowledgeHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 5 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]interface{}{
			"name": "earlysteps",
			"endpoints": map[string]string{
				"upload_kb":     "POST /api/rag/upload",
				"generate_plan": "POST /api/plan",
				"chat":          "POST /api/chat",
			},
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/rag/upload", cfg.KnowledgeHandler.Upload)
		r.Post("/plan", cfg.PlanHandler.Generate)
		r.Post("/chat", cfg.ChatHandler.Chat)
	})

	return r
}
