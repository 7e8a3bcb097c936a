package v1

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ImranQ74/todo-phase2/internal/services"
)

const userIDCtxKey = "user_id"

const userIDParam = "userID"

// HandleAuthMiddleware authenticates the request from the Authorization
// header and stores the verified user id in the request context. Any
// failure to establish an identity is a 401.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Warn().Msg("authorization header required")
		abort(c, newUnauthorizedError("authorization header required"))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Warn().Msg("invalid authorization header")
		abort(c, newUnauthorizedError("invalid authorization header"))
		return
	}

	userID, err := h.auth.VerifyToken(parts[1])
	if err != nil {
		if errors.Is(err, services.ErrMissingTokenSubject) {
			h.logger.Warn().Msg("token has no subject")
			abort(c, newUnauthorizedError("invalid token: missing user id"))
			return
		}

		h.logger.Warn().
			Err(err).
			Msg("failed to verify token")
		abort(c, newUnauthorizedError("invalid or expired token"))
		return
	}

	c.Set(userIDCtxKey, userID)
	c.Next()
}

// HandleUserScopeMiddleware checks that the user id segment of the path
// matches the authenticated caller. The path segment is untrusted input,
// so a mismatch is a 403, not a 404.
func (h *handlerImpl) HandleUserScopeMiddleware(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		abort(c, newUnauthorizedError("not authenticated"))
		return
	}

	pathUserID := c.Param(userIDParam)
	if pathUserID != userID {
		h.logger.Warn().
			Str("path_user_id", pathUserID).
			Str("user_id", userID).
			Msg("path user id mismatch")
		abort(c, newForbiddenError("cannot access another user's tasks"))
		return
	}

	c.Next()
}

func userIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return "", false
	}

	userID, ok := value.(string)
	return userID, ok && userID != ""
}
