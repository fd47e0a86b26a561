package handlers

import (
	"net/http"

	request "obra_presupuestos/internal/adapter/http/dto/request"
	response "obra_presupuestos/internal/adapter/http/dto/response"
	"obra_presupuestos/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ObservationHandler struct {
	usecase usecase.IObservationUseCase
}

func NewObservationHandler(uc usecase.IObservationUseCase) *ObservationHandler {
	return &ObservationHandler{usecase: uc}
}

// AnalyzeObservations suggests a price adjustment for free-text site notes.
func (h *ObservationHandler) AnalyzeObservations(c *gin.Context) {
	var payload request.ObservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	s, err := h.usecase.Analyze(c.Request.Context(), payload.Observations, payload.BaseTotal)
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAdjustment(s))
}
