package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/config"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/llm"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

// ChatAsk handles POST /api/chat/ask. The question goes to the configured
// text-generation backend with the current analysis as context; if that
// backend is unreachable the deterministic fallback answers instead, so
// this endpoint works fully offline.
func ChatAsk(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := currentProcessor()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Please upload data files first before asking questions")
		return
	}

	generator := llm.NewOllamaClient(config.GetOllamaURL(), config.GetOllamaModel(), config.GetLLMTimeout())
	service := llm.NewService(p, generator, config.GetLLMTimeout())

	writeJSON(w, http.StatusOK, service.AnswerQuestion(r.Context(), req.Message))
}
