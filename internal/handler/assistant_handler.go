package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arjun/bikewash/internal/service"
)

// AssistantHandler answers site-assistant chat messages.
type AssistantHandler struct {
	assistant *service.AssistantService
}

// NewAssistantHandler creates an assistant handler.
func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type assistantBody struct {
	Message string `json:"message"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

// Message handles POST /api/v1/assistant/messages
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	var body assistantBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	writeJSON(w, http.StatusOK, assistantResponse{Reply: h.assistant.Reply(body.Message)})
}
