package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"auction-market/internal/auctionerrors"
	"auction-market/internal/auth"
	"auction-market/internal/models"
	"auction-market/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Validation and access failures carry the violated rule in the message.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bidding history found"
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrSellerNotFound):
		return http.StatusInternalServerError, "seller account missing"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid),
		errors.Is(err, auctionerrors.ErrBidTooLow),
		errors.Is(err, auctionerrors.ErrListingSoldOut),
		errors.Is(err, auctionerrors.ErrListingNotVerified),
		errors.Is(err, auctionerrors.ErrNoWinningBid),
		errors.Is(err, auctionerrors.ErrInvalidCommission),
		errors.Is(err, auctionerrors.ErrInvalidListing),
		errors.Is(err, auctionerrors.ErrInvalidUser),
		errors.Is(err, auctionerrors.ErrInvalidMessage),
		errors.Is(err, auctionerrors.ErrEmailTaken),
		errors.Is(err, auctionerrors.ErrUnknownEmail):
		return http.StatusBadRequest, ruleMessage(err)
	case errors.Is(err, auctionerrors.ErrUnauthorized),
		errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, ruleMessage(err)
	case errors.Is(err, auctionerrors.ErrForbidden):
		return http.StatusForbidden, ruleMessage(err)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ruleMessage strips the layer prefix from a service error
func ruleMessage(err error) string {
	return strings.TrimPrefix(err.Error(), "service: ")
}

// RespondError writes the mapped error response and logs it at a level matching the status
func RespondError(c *gin.Context, handlerName, action string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, err, message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+action, fields)
		return
	}
	utils.Warn(handlerName+": "+action, fields)
}

// RequireIdentity returns the authenticated caller or writes a 401
func RequireIdentity(c *gin.Context, handlerName string) (models.Identity, bool) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "authentication required")
		utils.Warn(handlerName+": missing identity", map[string]any{"path": c.Request.URL.Path})
		return models.Identity{}, false
	}
	return identity, true
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
