package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/server/dto"
	answerquestion "rural-assist/internal/workers/chat/answer-question"
)

// Answerer runs the chat pipeline.
type Answerer interface {
	Answer(ctx context.Context, input *answerquestion.Input) (*answerquestion.Output, error)
}

// ChatHandler handles the chat endpoints
type ChatHandler struct {
	answerer Answerer
	intents  []answerquestion.IntentInfo
	logger   logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(answerer Answerer, intents []answerquestion.IntentInfo, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		answerer: answerer,
		intents:  intents,
		logger:   log.WithFields(map[string]interface{}{"handler": "chat"}),
	}
}

// Ask handles POST /chat/ask
func (h *ChatHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.answerer.Answer(c.Request.Context(), req.ToInput())
	if err != nil {
		h.logger.Warn("question rejected", map[string]interface{}{"error": err.Error()})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// Intents handles GET /chat/intents
func (h *ChatHandler) Intents(c *gin.Context) {
	c.JSON(http.StatusOK, dto.IntentsResponse{Intents: h.intents})
}
