package interfaces

import (
	"context"

	"obra_presupuestos/internal/domain/entities"
)

//go:generate mockgen -source=invoice_payment_repository_interface.go -destination=mocks/mock_invoice_payment_repository.go -package=mock_interfaces

type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}
