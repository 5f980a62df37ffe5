package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest"
	"github.com/DanielPopoola/ficmart-checkout/internal/pricing"
)

type Handlers struct {
	checkoutService *services.CheckoutService
	priceEngine     *pricing.Engine
	validate        *validator.Validate
	logger          *slog.Logger
}

func NewHandlers(checkoutService *services.CheckoutService, priceEngine *pricing.Engine, logger *slog.Logger) *Handlers {
	return &Handlers{
		checkoutService: checkoutService,
		priceEngine:     priceEngine,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Register mounts the checkout routes on the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/checkout", h.Checkout)
	mux.HandleFunc("POST /v1/quote", h.Quote)
}

type checkoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int64  `json:"qty" validate:"required"`
}

type checkoutRequest struct {
	Country   string         `json:"country" validate:"required"`
	UserID    string         `json:"user_id" validate:"required"`
	Items     []checkoutItem `json:"items" validate:"required,min=1,dive"`
	CardToken string         `json:"card_token" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
}

type checkoutResponse struct {
	Success bool         `json:"success"`
	Data    checkoutData `json:"data"`
}

type checkoutData struct {
	TransactionID string `json:"transaction_id"`
	Subtotal      string `json:"subtotal"`
	TaxRate       string `json:"tax_rate"`
	Total         string `json:"total"`
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewValidationError("malformed request body"), h.logger)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, domain.NewValidationError(err.Error()), h.logger)
		return
	}

	items := make([]application.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, application.CartItem{ProductID: item.ProductID, Qty: item.Qty})
	}

	result, err := h.checkoutService.Checkout(r.Context(), application.CheckoutRequest{
		Country:   req.Country,
		UserID:    req.UserID,
		Items:     items,
		CardToken: req.CardToken,
		Email:     req.Email,
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Success: true,
		Data: checkoutData{
			TransactionID: result.TransactionID,
			Subtotal:      result.Subtotal.StringFixed(2),
			TaxRate:       result.TaxRate.String(),
			Total:         result.Total.StringFixed(2),
		},
	}, h.logger)
}

type quoteItem struct {
	Name      string `json:"name" validate:"required"`
	UnitPrice string `json:"unit_price" validate:"required"`
	Qty       int64  `json:"qty" validate:"required"`
}

type quoteBundle struct {
	Name     string        `json:"name" validate:"required"`
	Discount string        `json:"discount"`
	Items    []quoteItem   `json:"items" validate:"dive"`
	Bundles  []quoteBundle `json:"bundles" validate:"dive"`
}

type quoteRequest struct {
	Country string      `json:"country" validate:"required"`
	Order   quoteBundle `json:"order" validate:"required"`
}

type quoteResponse struct {
	Success bool      `json:"success"`
	Data    quoteData `json:"data"`
}

type quoteData struct {
	Subtotal string `json:"subtotal"`
	Total    string `json:"total"`
	Listing  string `json:"listing"`
}

// Quote prices a nested bundle structure without touching inventory or
// payment.
func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewValidationError("malformed request body"), h.logger)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rest.WriteError(w, domain.NewValidationError(err.Error()), h.logger)
		return
	}

	root, err := buildBundle(req.Order)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	order := pricing.Order{Country: req.Country, Root: root}
	total, err := h.priceEngine.Total(order)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Success: true,
		Data: quoteData{
			Subtotal: root.Subtotal().StringFixed(2),
			Total:    total.StringFixed(2),
			Listing:  root.Render(0),
		},
	}, h.logger)
}

func buildBundle(dto quoteBundle) (*pricing.Bundle, error) {
	fraction := decimal.Zero
	if dto.Discount != "" {
		var err error
		fraction, err = decimal.NewFromString(dto.Discount)
		if err != nil {
			return nil, domain.NewValidationError("invalid discount " + dto.Discount)
		}
	}

	bundle, err := pricing.NewBundle(dto.Name, fraction)
	if err != nil {
		return nil, err
	}

	for _, itemDTO := range dto.Items {
		unitPrice, err := domain.MoneyFromString(itemDTO.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := pricing.NewItem(itemDTO.Name, unitPrice, itemDTO.Qty)
		if err != nil {
			return nil, err
		}
		if err := bundle.Add(item); err != nil {
			return nil, err
		}
	}

	for _, child := range dto.Bundles {
		nested, err := buildBundle(child)
		if err != nil {
			return nil, err
		}
		if err := bundle.Add(nested); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
