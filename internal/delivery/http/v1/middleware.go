package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shantnusharma/storyboard/internal/access"
	"github.com/shantnusharma/storyboard/internal/models"
)

const principalCtxKey = "principal"

// HandleAuthMiddleware authenticates the request from its bearer
// token, transparently refreshing an expired access token from the
// refresh cookie, and stores the resolved principal on the context.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	accessToken := parts[1]
	claims, err := h.parseJWTToken(accessToken)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Error().
				Err(err).
				Msg("failed to parse token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		h.HandleRefresh(c)
		if c.IsAborted() {
			return
		}

		accessToken, _ = c.Cookie(accessTokenCookie)
		claims, err = h.parseJWTToken(accessToken)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	}

	principal, err := h.sessions.GetPrincipalBySessionID(c, claims.Subject)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to resolve session principal")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to fetch session")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	browserFingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if browserFingerprint != session.Fingerprint {
		h.logger.Error().Msg("fingerprint mismatch")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(principalCtxKey, *principal)
	c.Next()
}

// RequireCapability gates a route on the principal's role. It must
// run after HandleAuthMiddleware in the chain.
func (h *handlerImpl) RequireCapability(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := getPrincipal(c)
		if !ok {
			h.logger.Error().Msg("no principal found in context")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if !access.Allows(principal.Role, capability) {
			h.logger.Warn().
				Str("user_id", principal.UserID).
				Str("role", string(principal.Role)).
				Str("capability", string(capability)).
				Msg("capability denied")
			abort(c, newForbiddenError(http.StatusText(http.StatusForbidden)))
			return
		}
		c.Next()
	}
}

func getPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalCtxKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// mustPrincipal fetches the principal or aborts with 401. Handlers
// behind the auth middleware use it as their first statement.
func (h *handlerImpl) mustPrincipal(c *gin.Context) (models.Principal, bool) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.logger.Error().Msg("no principal found in context")
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	return principal, ok
}

func (h *handlerImpl) parseJWTToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.jwtSigningKey, nil
	}, jwt.WithIssuer(h.jwtIssuer))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse token claims")
	}
	return claims, nil
}
