package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
)

// Options tunes per-checkout behavior. Zero values fall back to the
// defaults (2 rounding digits, no per-call timeout).
type Options struct {
	RoundDigits int32
	CallTimeout time.Duration
}

// CheckoutService drives one checkout through its five steps in a fixed
// order: resolve and reserve line items, compute tax, capture payment,
// notify, return the result. There is no retry and no compensation:
// inventory reserved before a later failure stays reserved, and the
// caller must resubmit a fresh request to try again.
//
// The service holds no per-request state and is safe for concurrent use
// across independent requests.
type CheckoutService struct {
	catalog     application.ProductCatalog
	inventory   application.Inventory
	tax         application.TaxService
	payment     application.PaymentService
	notifier    application.Notifier
	roundDigits int32
	callTimeout time.Duration
	logger      *slog.Logger
}

func NewCheckoutService(
	catalog application.ProductCatalog,
	inventory application.Inventory,
	tax application.TaxService,
	payment application.PaymentService,
	notifier application.Notifier,
	opts Options,
	logger *slog.Logger,
) *CheckoutService {
	roundDigits := opts.RoundDigits
	if roundDigits <= 0 {
		roundDigits = 2
	}
	return &CheckoutService{
		catalog:     catalog,
		inventory:   inventory,
		tax:         tax,
		payment:     payment,
		notifier:    notifier,
		roundDigits: roundDigits,
		callTimeout: opts.CallTimeout,
		logger:      logger,
	}
}

// Checkout processes the request start to finish. Any error other than
// a notification failure aborts the checkout and is surfaced as the
// outcome; notification failures are logged and swallowed.
func (s *CheckoutService) Checkout(ctx context.Context, req application.CheckoutRequest) (*application.CheckoutResult, error) {
	// Step 1: resolve line items and reserve stock, in request order.
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	subtotal := domain.Zero
	for _, item := range req.Items {
		product, err := s.lookupProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.NewProductNotFoundError(item.ProductID)
		}
		if item.Qty <= 0 {
			return nil, domain.NewValidationError(
				fmt.Sprintf("invalid quantity %d for %s", item.Qty, item.ProductID))
		}
		ok, err := s.reserveStock(ctx, item.ProductID, item.Qty)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewInsufficientStockError(item.ProductID, item.Qty)
		}
		subtotal = subtotal.Add(product.UnitPrice.MulInt(item.Qty))
	}
	s.logger.Debug("line items resolved", "user_id", req.UserID, "subtotal", subtotal.StringFixed(s.roundDigits))

	// Step 2: tax. The rate lookup goes through the caching layer.
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	rate, err := s.taxRate(ctx, req.Country)
	if err != nil {
		return nil, err
	}
	total := subtotal.WithTax(rate).Round(s.roundDigits)

	// Step 3: payment capture through the permission gate.
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	txID, err := s.charge(ctx, total, req.CardToken)
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment captured",
		"user_id", req.UserID,
		"transaction_id", txID,
		"total", total.StringFixed(s.roundDigits),
	)

	// Step 4: best-effort confirmation. Failure never affects the outcome.
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	s.notify(ctx, req.Email, txID, total)

	return &application.CheckoutResult{
		TransactionID: txID,
		Subtotal:      subtotal,
		TaxRate:       rate,
		Total:         total,
	}, nil
}

func (s *CheckoutService) lookupProduct(ctx context.Context, productID string) (*domain.Product, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.catalog.Lookup(ctx, productID)
}

func (s *CheckoutService) reserveStock(ctx context.Context, productID string, qty int64) (bool, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.inventory.Reserve(ctx, productID, qty)
}

func (s *CheckoutService) taxRate(ctx context.Context, country string) (decimal.Decimal, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.tax.Rate(ctx, country)
}

func (s *CheckoutService) charge(ctx context.Context, total domain.Money, cardToken string) (string, error) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	return s.payment.Charge(ctx, total, cardToken)
}

func (s *CheckoutService) notify(ctx context.Context, email, txID string, total domain.Money) {
	ctx, cancel := s.callContext(ctx)
	defer cancel()
	body := fmt.Sprintf("TX: %s | Total: %s", txID, total.StringFixed(s.roundDigits))
	if err := s.notifier.Send(ctx, email, "Order confirmed", body); err != nil {
		notifyErr := domain.NewNotificationFailedError(err)
		s.logger.Warn("confirmation email failed", "email", email, "error", notifyErr)
	}
}

func (s *CheckoutService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return domain.NewCheckoutCancelledError(ctx.Err())
	default:
		return nil
	}
}
