package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/licensehub/licensehub/internal/domain/customer"
	"github.com/licensehub/licensehub/internal/shared/constants"
	"github.com/licensehub/licensehub/internal/shared/logger"
	"github.com/licensehub/licensehub/internal/shared/utils"
)

// CustomerMiddleware maps the authenticated user to its customer record.
type CustomerMiddleware struct {
	customerRepo customer.Repository
	logger       logger.Interface
}

func NewCustomerMiddleware(customerRepo customer.Repository, logger logger.Interface) *CustomerMiddleware {
	return &CustomerMiddleware{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// RequireCustomer must run after RequireAuth. It aborts with 403 when the
// user has no customer profile.
func (m *CustomerMiddleware) RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(constants.ContextKeyUserID)
		if userID == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, constants.ErrMsgUnauthorized)
			c.Abort()
			return
		}

		cust, err := m.customerRepo.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to resolve customer", "user_id", userID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
			return
		}
		if cust == nil {
			m.logger.Warnw("user has no customer profile", "user_id", userID)
			utils.ErrorResponse(c, http.StatusForbidden, "customer profile not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCustomerID, cust.ID())
		c.Next()
	}
}
