package payment

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// ProtectedPaymentService gates the real payment service behind a
// permission check. The check runs on every invocation; decisions are
// never cached. When the caller lacks PAYMENT_EXECUTE the wrapped
// service is not called at all, otherwise the call delegates
// unconditionally and the result or error comes back unchanged.
type ProtectedPaymentService struct {
	inner  application.PaymentService
	access application.AccessChecker
	logger *slog.Logger
}

func NewProtectedPaymentService(
	inner application.PaymentService,
	access application.AccessChecker,
	logger *slog.Logger,
) *ProtectedPaymentService {
	return &ProtectedPaymentService{
		inner:  inner,
		access: access,
		logger: logger,
	}
}

func (p *ProtectedPaymentService) Charge(ctx context.Context, amount domain.Money, cardToken string) (string, error) {
	if !p.access.HasPermission(application.PermissionPaymentExecute) {
		p.logger.Warn("payment blocked", "permission", application.PermissionPaymentExecute)
		return "", domain.NewPermissionDeniedError(application.PermissionPaymentExecute)
	}
	return p.inner.Charge(ctx, amount, cardToken)
}
