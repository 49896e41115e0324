// Package common provides shared HTTP handler utilities.
package common

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/licensehub/licensehub/internal/infrastructure/lock"
	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/errors"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// BindJSON decodes the request body into req. Decode and binding failures are
// returned as validation errors so they render as 400.
func BindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, formatFieldError(fe))
		}
		return errors.NewValidationError("invalid request body", strings.Join(msgs, "; "))
	}
	return errors.NewValidationError("invalid request body", err.Error())
}

// RespondError writes err as an error envelope. A customer lock that could not
// be taken in time is reported as a conflict the caller can retry.
func RespondError(c *gin.Context, err error) {
	if stderrors.Is(err, lock.ErrLockTimeout) {
		err = errors.NewConflictError("another change for this customer is in progress, retry later")
	}
	utils.ErrorResponseWithError(c, err)
}

// CustomerID returns the customer resolved by the customer middleware.
func CustomerID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(constants.ContextKeyCustomerID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// RequireCustomerID is CustomerID that writes the 401 itself.
func RequireCustomerID(c *gin.Context) (uint, bool) {
	id, ok := CustomerID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
	}
	return id, ok
}
