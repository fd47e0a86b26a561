package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"obra_presupuestos/internal/domain/entities"
	"obra_presupuestos/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrInvoicePaymentNotFound         = errors.New("invoice payment not found")
	ErrInvalidPaymentInvoiceID        = errors.New("invalid invoice_id")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrInvoiceAlreadyPaid             = errors.New("invoice already paid")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentSettings controls the Mercado Pago integration.
type PaymentSettings struct {
	// MockMode skips the gateway and approves every payment.
	MockMode bool
	// SandboxToken reports a TEST- access token.
	SandboxToken    bool
	TestPayerEmail  string
	TestPayerUserID string
}

// IInvoicePaymentUseCase charges an invoice and records the payment.
type IInvoicePaymentUseCase interface {
	CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	repo        interfaces.IInvoicePaymentRepository
	invoiceRepo interfaces.IInvoiceRepository
	gateway     interfaces.IPaymentGateway
	settings    PaymentSettings
	logger      *zap.Logger
	now         func() time.Time
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(
	repo interfaces.IInvoicePaymentRepository,
	invoiceRepo interfaces.IInvoiceRepository,
	gateway interfaces.IPaymentGateway,
	settings PaymentSettings,
	logger *zap.Logger,
) *InvoicePaymentUseCase {
	return &InvoicePaymentUseCase{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
		settings:    settings,
		logger:      orNop(logger),
		now:         utcNow,
	}
}

func (u *InvoicePaymentUseCase) CreateAndApprove(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.InvoicePayment, error) {
	log := u.logger.With(zap.String("invoice_id", invoiceID))
	log.Info("[payment][usecase] create-and-approve start", zap.Int("payload_len", len(mpPayload)))
	mockMode := u.settings.MockMode

	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.InvoicePayment{}, ErrInvalidPaymentInvoiceID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Warn("[payment][usecase] invalid payload")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.InvoicePayment{}, ErrPaymentGatewayNotConfigured
	}
	if u.invoiceRepo == nil {
		return entities.InvoicePayment{}, errors.New("invoice repository not configured")
	}

	inv, err := u.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		log.Error("[payment][usecase] failed loading invoice", zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	if inv.ID == "" {
		return entities.InvoicePayment{}, ErrInvoiceNotFound
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return entities.InvoicePayment{}, ErrInvoiceAlreadyPaid
	}
	amount := inv.GrandTotal.Round(2).InexactFloat64()
	log.Info("[payment][usecase] invoice loaded", zap.String("status", string(inv.Status)), zap.Float64("amount", amount))

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn("[payment][usecase] missing payment_method_id")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn("[payment][usecase] missing or invalid payer")
			return entities.InvoicePayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = inv.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Factura %d", inv.Number)
	}
	// The stored invoice is the source of truth for the amount.
	reqMap["transaction_amount"] = amount
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return entities.InvoicePayment{}, err
	}

	var providerID, providerStatus string
	var providerResp json.RawMessage
	if mockMode {
		providerID, providerStatus, providerResp, err = u.mockPayment(reqMap)
	} else {
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		err = mapGatewayError(err)
	}
	if err != nil {
		log.Error("[payment][usecase] payment gateway failed", zap.Error(err))
		return entities.InvoicePayment{}, err
	}
	log.Info("[payment][usecase] payment gateway success", zap.String("provider_payment_id", providerID), zap.String("provider_status", providerStatus))

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
	}

	status := entities.PaymentStatusApproved
	switch strings.ToLower(providerStatus) {
	case "rejected", "cancelled":
		status = entities.PaymentStatusDenied
	case "pending", "in_process", "authorized":
		status = entities.PaymentStatusPending
	}

	created, err := u.repo.Create(ctx, entities.InvoicePayment{
		ID:           providerID,
		InvoiceID:    inv.ID,
		Date:         u.now(),
		Status:       status,
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	})
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", providerID), zap.Error(err))
		return entities.InvoicePayment{}, err
	}

	if status == entities.PaymentStatusApproved {
		if _, err := u.invoiceRepo.UpdateStatus(ctx, inv.ID, entities.InvoiceStatusPaid, inv.SentAt); err != nil {
			log.Error("[payment][usecase] mark invoice paid failed", zap.Error(err))
			return entities.InvoicePayment{}, err
		}
	}
	log.Info("[payment][usecase] create-and-approve done", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *InvoicePaymentUseCase) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.InvoicePayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if p.ID == "" {
		return entities.InvoicePayment{}, ErrInvoicePaymentNotFound
	}
	return p, nil
}

func (u *InvoicePaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidPaymentInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}

func (u *InvoicePaymentUseCase) mockPayment(req map[string]any) (string, string, json.RawMessage, error) {
	now := u.now()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = now.Format(time.RFC3339Nano)
	resp["date_approved"] = now.Format(time.RFC3339Nano)
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func (u *InvoicePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox either payer.id or payer.email works; fill the email only
	// when both are missing.
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.settings.TestPayerEmail != "" {
		payer["email"] = u.settings.TestPayerEmail
	} else if u.settings.SandboxToken {
		payer["email"] = "test_user_es@testuser.com"
	}
}

// normalizeSandboxPayer swaps a configured sandbox user id for its email,
// which is what the sandbox accepts.
func (u *InvoicePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	if !u.settings.SandboxToken || u.settings.TestPayerUserID == "" || u.settings.TestPayerEmail == "" {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.settings.TestPayerUserID {
		return
	}
	payer["email"] = u.settings.TestPayerEmail
	delete(payer, "id")
	u.logger.Debug("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// mapGatewayError classifies provider errors by the fragments Mercado Pago
// puts in its error bodies.
func mapGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
