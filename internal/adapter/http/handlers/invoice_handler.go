package handlers

import (
	"net/http"

	request "obra_presupuestos/internal/adapter/http/dto/request"
	response "obra_presupuestos/internal/adapter/http/dto/response"
	"obra_presupuestos/internal/usecase"
	"obra_presupuestos/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)

// InvoiceHandler handles HTTP requests for invoices (facturas).
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
	logger  *zap.Logger
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{usecase: uc, logger: logger}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.InvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	res, err := h.usecase.Create(c.Request.Context(), payload.ToCommand())
	if err != nil {
		h.logger.Warn("[invoice][handler] create failed", zap.Error(err))
		writeError(c, mapError(err))
		return
	}
	h.logger.Info("[invoice][handler] create success", zap.String("invoice_id", res.Invoice.ID), zap.Bool("email_sent", res.EmailSent))
	c.JSON(http.StatusCreated, response.FromInvoiceResult(res))
}

func (h *InvoiceHandler) PreviewInvoicePDF(c *gin.Context) {
	var payload request.InvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidInvoicePayload)
		return
	}

	doc, err := h.usecase.PreviewPDF(c.Request.Context(), payload.ToCommand())
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	writePDF(c, doc)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoices(list))
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}
