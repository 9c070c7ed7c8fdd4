package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/mazout/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/mazout/internal/customer/domain"
	orderdomain "github.com/smallbiznis/mazout/internal/order/domain"
	pricingdomain "github.com/smallbiznis/mazout/internal/pricing/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "authentication required"}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: "resource not found"}
	case errors.Is(err, customerdomain.ErrAccountExists):
		return http.StatusConflict, errorPayload{Type: "conflict", Message: "account already exists"}
	case errors.Is(err, customerdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "invalid credentials"}
	case errors.Is(err, customerdomain.ErrInvalidSession):
		return http.StatusUnauthorized, errorPayload{Type: "unauthorized", Message: "invalid session"}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, pricingdomain.ErrInvalidQuantity),
		errors.Is(err, pricingdomain.ErrUnknownPostalCode),
		errors.Is(err, orderdomain.ErrInvalidProduct),
		errors.Is(err, orderdomain.ErrInvalidCustomer):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal server error"}
	}
}
