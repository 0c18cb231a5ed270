package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/earlysteps-ai/earlysteps/internal/api"
	"github.com/earlysteps-ai/earlysteps/internal/domain"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 4 << 20

type KnowledgeService interface {
	Replace(content string) (string, error)
}

type KnowledgeHandler struct {
	svc KnowledgeService
}

func NewKnowledgeHandler(svc KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type UploadResponse struct {
	KBFile    string `json:"kb_file"`
	SizeBytes int    `json:"size_bytes"`
}

// Upload replaces the knowledge base with the uploaded .txt or .md file.
func (h *KnowledgeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".txt" && ext != ".md" {
		api.HandleError(w, domain.ErrInvalidKnowledgeFile)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "failed to read file")
		return
	}

	if !utf8.Valid(content) {
		api.HandleError(w, domain.ErrKnowledgeNotText)
		return
	}

	path, err := h.svc.Replace(string(content))
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, UploadResponse{
		KBFile:    path,
		SizeBytes: len(content),
	})
}
