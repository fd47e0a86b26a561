package handlers

import (
	"context"
	"net/http"

	request "obra_presupuestos/internal/adapter/http/dto/request"
	response "obra_presupuestos/internal/adapter/http/dto/response"
	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase"
	"obra_presupuestos/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidBudgetPayload = pkg.NewDomainErrorSimple("INVALID_BUDGET_INPUT", "Invalid budget payload", http.StatusBadRequest)

// BudgetHandler handles HTTP requests for budgets (presupuestos).
type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
	logger  *zap.Logger
}

func NewBudgetHandler(uc usecase.IBudgetUseCase, logger *zap.Logger) *BudgetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetHandler{usecase: uc, logger: logger}
}

// CreateBudget prices, stores and emails a budget.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	payload, ok := bindBudget(c)
	if !ok {
		return
	}

	res, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		h.logger.Warn("[budget][handler] create failed", zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	h.logger.Info("[budget][handler] create success", zap.String("budget_id", res.Budget.ID), zap.Bool("email_sent", res.EmailSent))
	c.JSON(http.StatusCreated, response.FromBudgetResult(res))
}

// PreviewBudget returns the email text and printable lines without storing anything.
func (h *BudgetHandler) PreviewBudget(c *gin.Context) {
	payload, ok := bindBudget(c)
	if !ok {
		return
	}

	p, err := h.usecase.Preview(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetPreview(p))
}

func (h *BudgetHandler) PreviewBudgetPDF(c *gin.Context) {
	payload, ok := bindBudget(c)
	if !ok {
		return
	}

	doc, err := h.usecase.PreviewPDF(c.Request.Context(), payload.ToCommand())
	if err != nil {
		h.logger.Warn("[budget][handler] preview pdf failed", zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	writePDF(c, doc)
}

func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgets(list))
}

func (h *BudgetHandler) GetBudget(c *gin.Context) {
	b, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) AcceptBudget(c *gin.Context) {
	h.patchStatus(c, h.usecase.Accept)
}

func (h *BudgetHandler) RejectBudget(c *gin.Context) {
	h.patchStatus(c, h.usecase.Reject)
}

func (h *BudgetHandler) GetBudgetHistory(c *gin.Context) {
	list, err := h.usecase.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEmailHistory(list))
}

func (h *BudgetHandler) patchStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Budget, error),
) {
	b, err := updater(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	h.logger.Info("[budget][handler] status changed", zap.String("budget_id", b.ID), zap.String("status", string(b.Status)))
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func bindBudget(c *gin.Context) (request.BudgetRequest, bool) {
	var payload request.BudgetRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidBudgetPayload)
		return payload, false
	}
	return payload, true
}

func writePDF(c *gin.Context, doc usecase.RenderedDocument) {
	c.Header("Content-Disposition", `inline; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}
