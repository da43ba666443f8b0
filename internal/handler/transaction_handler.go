package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/command"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/middleware"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/query"
)

// TransactionCommander defines the write-side operations used by
// TransactionHandler.
type TransactionCommander interface {
	ProcessTransaction(ctx context.Context, cmd command.ProcessTransactionCommand) (*models.Transaction, error)
	Approve(ctx context.Context, transactionID, managerID string) error
	Reject(ctx context.Context, transactionID, managerID string) error
}

// TransactionQuerier defines the read-side operations used by
// TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(ctx context.Context, q query.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(ctx context.Context, q query.ListTransactionsQuery) ([]models.TransactionView, error)
	ListPendingApprovals(ctx context.Context) ([]models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

type ProcessTransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=deposit withdraw transfer"`
	Amount      decimal.Decimal `json:"amount"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Description string          `json:"description"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

// ProcessTransaction accepts a money movement. The response carries the
// resulting audit record: completed for auto-approved amounts, pending for
// amounts that need a manager. A failed execution responds 422 alongside the
// persisted failed record.
func (h *TransactionHandler) ProcessTransaction(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req ProcessTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.commands.ProcessTransaction(c.Request.Context(), command.ProcessTransactionCommand{
		Type:        models.TransactionType(req.Type),
		Amount:      req.Amount,
		From:        req.From,
		To:          req.To,
		PerformedBy: userID,
		Description: req.Description,
	})
	if err != nil {
		if transaction == nil {
			respondDomainError(c, err)
			return
		}
		// Execution failed after classification; the failed record exists.
		c.JSON(http.StatusUnprocessableEntity, transaction)
		return
	}

	if transaction.Status == models.StatusPendingManagerApproval {
		c.JSON(http.StatusAccepted, transaction)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("transactionId")

	view, err := h.queries.GetTransaction(c.Request.Context(), query.GetTransactionQuery{
		TransactionID: transactionID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetRole(c)

	views, err := h.queries.ListTransactions(c.Request.Context(), query.ListTransactionsQuery{
		AccountNumber:    accountNumber,
		RequestingUserID: userID,
		RequestingRole:   role,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

// ListPendingApprovals returns the manager's approval queue, newest first.
func (h *TransactionHandler) ListPendingApprovals(c *gin.Context) {
	views, err := h.queries.ListPendingApprovals(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

// Approve records a manager decision and triggers the deferred execution.
func (h *TransactionHandler) Approve(c *gin.Context) {
	transactionID := c.Param("transactionId")
	managerID, _ := middleware.GetUserID(c)

	if err := h.commands.Approve(c.Request.Context(), transactionID, managerID); err != nil {
		respondDecisionError(c, err)
		return
	}

	view, err := h.queries.GetTransaction(c.Request.Context(), query.GetTransactionQuery{TransactionID: transactionID})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Reject records a manager decision to refuse the transaction.
func (h *TransactionHandler) Reject(c *gin.Context) {
	transactionID := c.Param("transactionId")
	managerID, _ := middleware.GetUserID(c)

	if err := h.commands.Reject(c.Request.Context(), transactionID, managerID); err != nil {
		respondDecisionError(c, err)
		return
	}

	view, err := h.queries.GetTransaction(c.Request.Context(), query.GetTransactionQuery{TransactionID: transactionID})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// respondDecisionError handles manager decisions on transactions that are no
// longer pending, which come back as plain errors rather than sentinels.
func respondDecisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrTransactionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	default:
		middleware.RespondWithError(c, http.StatusConflict, err.Error())
	}
}
