package handlers

import (
	"net/http"

	request "obra_presupuestos/internal/adapter/http/dto/request"
	response "obra_presupuestos/internal/adapter/http/dto/response"
	"obra_presupuestos/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResponseHandler answers client replies to budgets.
type ResponseHandler struct {
	usecase usecase.IResponseUseCase
	logger  *zap.Logger
}

func NewResponseHandler(uc usecase.IResponseUseCase, logger *zap.Logger) *ResponseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseHandler{usecase: uc, logger: logger}
}

// DraftResponse asks the LLM for an answer to a client objection. Nothing is sent.
func (h *ResponseHandler) DraftResponse(c *gin.Context) {
	var payload request.ResponseDraftRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	text, err := h.usecase.Draft(c.Request.Context(), c.Param("id"), payload.ClientMessage)
	if err != nil {
		h.logger.Warn("[response][handler] draft failed", zap.String("budget_id", c.Param("id")), zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.ResponseDraftResponse{Content: text})
}

// SendResponse emails text written (or edited) by the user.
func (h *ResponseHandler) SendResponse(c *gin.Context) {
	var payload request.ResponseSendRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	entry, err := h.usecase.Send(c.Request.Context(), c.Param("id"), payload.Content)
	if err != nil {
		h.logger.Warn("[response][handler] send failed", zap.String("budget_id", c.Param("id")), zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.ResponseSentResponse{Content: entry.Content, Entry: response.FromEmailHistoryEntry(entry)})
}

// AutoRespond drafts and sends in one step.
func (h *ResponseHandler) AutoRespond(c *gin.Context) {
	var payload request.ResponseDraftRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	res, err := h.usecase.Respond(c.Request.Context(), c.Param("id"), payload.ClientMessage)
	if err != nil {
		h.logger.Warn("[response][handler] auto respond failed", zap.String("budget_id", c.Param("id")), zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusCreated, response.ResponseSentResponse{Content: res.Content, Entry: response.FromEmailHistoryEntry(res.Entry)})
}
