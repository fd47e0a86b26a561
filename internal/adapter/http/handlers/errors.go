package handlers

import (
	"errors"
	"net/http"

	"obra_presupuestos/internal/domain/pricing"
	"obra_presupuestos/internal/usecase"
	"obra_presupuestos/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func badRequest(code, message string) *pkg.AppError {
	return pkg.NewDomainErrorSimple(code, message, http.StatusBadRequest)
}

// mapError translates use case and pricing errors into API errors.
func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID),
		errors.Is(err, usecase.ErrInvalidBudgetID),
		errors.Is(err, usecase.ErrInvalidInvoiceID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentInvoiceID),
		errors.Is(err, usecase.ErrInvalidMPPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidPayload
	case errors.Is(err, usecase.ErrInvalidServiceName),
		errors.Is(err, usecase.ErrInvalidServiceUnit),
		errors.Is(err, usecase.ErrInvalidServicePrice):
		return badRequest("INVALID_SERVICE_INPUT", err.Error())
	case errors.Is(err, usecase.ErrInvalidClientName), errors.Is(err, usecase.ErrInvalidClientEmail):
		return badRequest("INVALID_CLIENT", err.Error())
	case errors.Is(err, usecase.ErrInvalidProjectName),
		errors.Is(err, usecase.ErrNoLineItems),
		errors.Is(err, usecase.ErrInvalidLocale),
		errors.Is(err, usecase.ErrInvalidDocumentNumber),
		errors.Is(err, usecase.ErrInvalidBaseTotal),
		errors.Is(err, usecase.ErrEmptyClientMessage),
		errors.Is(err, usecase.ErrEmptyResponse):
		return badRequest("INVALID_REQUEST", err.Error())
	case errors.Is(err, pricing.ErrInvalidDistance):
		return badRequest("INVALID_DISTANCE", "Distance must not be negative")
	case errors.Is(err, pricing.ErrInvalidGlobalDifficulty):
		return badRequest("INVALID_DIFFICULTY", "Global difficulty factor must be positive")
	case errors.Is(err, usecase.ErrNoPricedItems):
		return pkg.NewDomainErrorSimple("NO_PRICED_ITEMS", "No line item could be priced", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoicePaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Budget was already answered", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return badRequest("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context")
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return badRequest("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user")
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrRendererNotConfigured),
		errors.Is(err, usecase.ErrLLMNotConfigured),
		errors.Is(err, usecase.ErrEmailNotConfigured),
		errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("FEATURE_NOT_CONFIGURED", err.Error(), err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrEmailDeliveryFailed):
		return pkg.NewDomainError("EMAIL_DELIVERY_FAILED", "Email could not be delivered", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
