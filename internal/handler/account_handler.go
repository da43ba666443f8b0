package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/account"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/command"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/middleware"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/query"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	OpenAccount(ctx context.Context, cmd command.OpenAccountCommand) (*models.Account, error)
	ChangeState(ctx context.Context, accountNumber string, event account.LifecycleEvent) (*models.Account, bool, error)
	AccrueInterest(ctx context.Context, accountNumber string) (*models.Transaction, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(ctx context.Context, q query.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(ctx context.Context, q query.ListAccountsQuery) ([]models.AccountView, error)
	ListAllAccounts(ctx context.Context) ([]models.AccountView, error)
}

type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type OpenAccountRequest struct {
	Kind           string          `json:"kind" validate:"required,oneof=savings checking loan investment"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	LoanPrincipal  decimal.Decimal `json:"loanPrincipal"`
	RiskLevel      string          `json:"riskLevel" validate:"omitempty,oneof=low medium high"`
}

type ChangeStateRequest struct {
	Event string `json:"event" validate:"required,oneof=freeze suspend activate close"`
}

type ChangeStateResponse struct {
	Account *models.Account `json:"account"`
	Changed bool            `json:"changed"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) OpenAccount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	opened, err := h.commands.OpenAccount(c.Request.Context(), command.OpenAccountCommand{
		OwnerID:        userID,
		Kind:           models.AccountKind(req.Kind),
		OverdraftLimit: req.OverdraftLimit,
		LoanPrincipal:  req.LoanPrincipal,
		RiskLevel:      models.RiskLevel(req.RiskLevel),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, opened)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	view, err := h.queries.GetAccount(c.Request.Context(), query.GetAccountQuery{
		AccountNumber:    accountNumber,
		RequestingUserID: userID,
		RequestingRole:   role,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListAccounts returns the caller's own accounts for customers and every
// account for tellers and managers.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	var (
		views []models.AccountView
		err   error
	)
	if role == events.RoleCustomer {
		views, err = h.queries.ListAccounts(c.Request.Context(), query.ListAccountsQuery{OwnerID: userID})
	} else {
		views, err = h.queries.ListAllAccounts(c.Request.Context())
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) ChangeState(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	changedAccount, changed, err := h.commands.ChangeState(c.Request.Context(), accountNumber, account.LifecycleEvent(req.Event))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChangeStateResponse{Account: changedAccount, Changed: changed})
}

// AccrueInterest applies the account's current interest amount. A 204 means
// the calculation came out to zero and nothing was applied.
func (h *AccountHandler) AccrueInterest(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	transaction, err := h.commands.AccrueInterest(c.Request.Context(), accountNumber)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if transaction == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, transaction)
}
