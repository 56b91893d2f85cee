package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farstack/heimdall/config"
	"github.com/farstack/heimdall/core"
	"github.com/farstack/heimdall/ports"
	"github.com/farstack/heimdall/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	statuses    ports.StatusProvider
	cfg         *config.Config
	logger      *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, statuses ports.StatusProvider, cfg *config.Config, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		statuses:    statuses,
		cfg:         cfg,
		logger:      logger,
	}
}

// SignIn verifies a wallet-signed sign-in message and mints a session token.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		Nonce     string `json:"nonce" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		// A body that never parsed as JSON is an unexpected failure;
		// a parsed body with fields missing is the client's error.
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
			errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "message, signature and nonce are required"})
		return
	}

	domain := core.ResolveDomain(h.cfg.Production(), h.cfg.CanonicalDomain, c.Request.Host, c.GetHeader("Origin"))

	token, identity, err := h.authService.SignIn(c.Request.Context(), core.VerificationRequest{
		Message:   req.Message,
		Signature: req.Signature,
		Nonce:     req.Nonce,
		Domain:    domain,
	})
	if err != nil {
		if errors.Is(err, core.ErrAuthenticationFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in verification failed"})
			return
		}
		h.logger.Error("sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"fid":     identity.Fid,
			"address": identity.Address,
		},
	})
}

// Status serves the per-account status resource. The session must belong
// to the fid in the path; a valid session for another account is
// forbidden, not unauthorized.
func (h *AuthHandlers) Status(c *gin.Context) {
	fid, err := strconv.ParseInt(c.Param("fid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fid"})
		return
	}

	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if !h.authService.Authorize(identity, fid) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	status, err := h.statuses.Status(c.Request.Context(), fid)
	if err != nil {
		h.logger.Error("status fetch failed", zap.Int64("fid", fid), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Me returns information about the authenticated user
func (h *AuthHandlers) Me(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fid":     identity.Fid,
		"address": identity.Address,
	})
}
