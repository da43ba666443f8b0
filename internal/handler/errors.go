package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/account"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/middleware"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// respondDomainError maps domain errors to HTTP codes. Unrecognised errors
// surface as 500 without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	var overdraft *account.OverdraftLimitExceededError
	switch {
	case errors.Is(err, models.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, models.ErrTransactionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, models.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, "Amount must be greater than zero")
	case errors.Is(err, models.ErrUnknownAccountType),
		errors.Is(err, models.ErrUnknownTransactionType),
		errors.Is(err, models.ErrMissingAccountNumber),
		errors.Is(err, models.ErrSameAccount):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidStateTransition):
		middleware.RespondWithError(c, http.StatusConflict, "Operation not permitted in the account's current state")
	case errors.Is(err, models.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient funds")
	case errors.As(err, &overdraft):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, overdraft.Error())
	case err.Error() == "forbidden":
		middleware.RespondWithError(c, http.StatusForbidden, "You can only access your own accounts")
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
