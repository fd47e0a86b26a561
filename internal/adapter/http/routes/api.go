package routes

import (
	"net/http"

	"obra_presupuestos/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	PathPing         = "/ping"
	PathServices     = "/services"
	PathBudgets      = "/budgets"
	PathObservations = "/observations"
	PathInvoices     = "/invoices"
	PathPayments     = "/payments"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addAPIRoutes(rg *gin.RouterGroup, deps *Dependencies, logger *zap.Logger) {
	serviceHandler := handlers.NewServiceHandler(deps.Services)
	budgetHandler := handlers.NewBudgetHandler(deps.Budgets, logger)
	responseHandler := handlers.NewResponseHandler(deps.Responses, logger)
	observationHandler := handlers.NewObservationHandler(deps.Observations)
	invoiceHandler := handlers.NewInvoiceHandler(deps.Invoices, logger)
	paymentHandler := handlers.NewInvoicePaymentHandler(deps.InvoicePayments, deps.PaymentMockMode, logger)

	services := rg.Group(PathServices)
	{
		services.GET("", serviceHandler.ListServices)
		services.POST("", serviceHandler.CreateService)
		services.GET("/:id", serviceHandler.GetService)
		services.PUT("/:id", serviceHandler.UpdateService)
		services.DELETE("/:id", serviceHandler.DeleteService)
	}

	budgets := rg.Group(PathBudgets)
	{
		budgets.POST("", budgetHandler.CreateBudget)
		budgets.GET("", budgetHandler.ListBudgets)
		budgets.POST("/preview", budgetHandler.PreviewBudget)
		budgets.POST("/preview/pdf", budgetHandler.PreviewBudgetPDF)
		budgets.GET("/:id", budgetHandler.GetBudget)
		budgets.PATCH("/:id/accept", budgetHandler.AcceptBudget)
		budgets.PATCH("/:id/reject", budgetHandler.RejectBudget)
		budgets.GET("/:id/history", budgetHandler.GetBudgetHistory)

		budgets.POST("/:id/responses/draft", responseHandler.DraftResponse)
		budgets.POST("/:id/responses", responseHandler.SendResponse)
		budgets.POST("/:id/responses/auto", responseHandler.AutoRespond)
	}

	observations := rg.Group(PathObservations)
	{
		observations.POST("/analyze", observationHandler.AnalyzeObservations)
	}

	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.POST("/preview/pdf", invoiceHandler.PreviewInvoicePDF)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:invoice_id", paymentHandler.CreatePaymentByInvoiceID)
		payments.GET("/:invoice_id", paymentHandler.GetPaymentByInvoiceID)
	}
}
