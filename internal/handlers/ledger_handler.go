package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/venturelink/backend/internal/ledger"
	"github.com/venturelink/backend/internal/services"
)

// AmountRequest carries the amount typed into a payment form.
// @Description Payment form submission
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"250.00"`
}

// TransferRequest is a transfer form submission. Receiver defaults to the
// entrepreneur.
// @Description Transfer form submission
type TransferRequest struct {
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"1000"`
	Receiver string          `json:"receiver,omitempty" validate:"omitempty,role" example:"investor"`
}

// BalancesResponse lists the balance of every role.
// @Description Balance table
type BalancesResponse struct {
	Balances map[ledger.Role]decimal.Decimal `json:"balances" swaggertype:"object,string"`
}

type LedgerHandler struct {
	service   *services.LedgerService
	validator *services.ValidationHelper
}

func NewLedgerHandler(service *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// Deposit credits the caller from the bank
// @Summary Deposit funds
// @Description Record a deposit from the bank into the caller's balance (entrepreneurs only)
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Deposit amount"
// @Success 201 {object} ledger.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /ledger/deposit [post]
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	tx, err := h.service.Deposit(r.Context(), role, req.Amount)
	h.respond(w, tx, err)
}

// Withdraw debits the caller to the bank
// @Summary Withdraw funds
// @Description Record a withdrawal from the caller's balance to the bank (entrepreneurs only)
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Withdrawal amount"
// @Success 201 {object} ledger.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /ledger/withdraw [post]
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	tx, err := h.service.Withdraw(r.Context(), role, req.Amount)
	h.respond(w, tx, err)
}

// Transfer moves funds from the caller to another role
// @Summary Transfer funds
// @Description Record a transfer from the caller's role to the receiver role
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferRequest true "Transfer"
// @Success 201 {object} ledger.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Router /ledger/transfer [post]
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	tx, err := h.service.Transfer(r.Context(), role, ledger.Role(req.Receiver), req.Amount)
	h.respond(w, tx, err)
}

// Fund moves funds from the investor to the entrepreneur
// @Summary Fund a startup
// @Description Record investor funding of the entrepreneur (investors only)
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AmountRequest true "Funding amount"
// @Success 201 {object} ledger.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Router /ledger/funding [post]
func (h *LedgerHandler) Fund(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req AmountRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	tx, err := h.service.Fund(r.Context(), role, req.Amount)
	h.respond(w, tx, err)
}

// Balances returns the balance table
// @Summary Get balances
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalancesResponse
// @Router /ledger/balances [get]
func (h *LedgerHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := currentUser(w, r); !ok {
		return
	}
	services.SendJSON(w, http.StatusOK, BalancesResponse{Balances: h.service.Balances()})
}

// History returns the transactions visible to the caller's role
// @Summary Transaction history
// @Description Investors see transactions they sent or received; entrepreneurs see all
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ledger.Transaction
// @Router /ledger/history [get]
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(w, r)
	if !ok {
		return
	}
	services.SendJSON(w, http.StatusOK, h.service.History(role))
}

// Reconcile reports balance drift against the transaction list
// @Summary Reconcile balances
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{balanced=bool,drift=object}
// @Router /ledger/reconcile [get]
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := currentUser(w, r); !ok {
		return
	}
	drift := h.service.Reconcile()
	services.SendJSON(w, http.StatusOK, map[string]any{
		"balanced": len(drift) == 0,
		"drift":    drift,
	})
}

func (h *LedgerHandler) respond(w http.ResponseWriter, tx ledger.Transaction, err error) {
	if err != nil {
		sendServiceError(w, "LEDGER", err)
		return
	}
	services.SendJSON(w, http.StatusCreated, tx)
}
