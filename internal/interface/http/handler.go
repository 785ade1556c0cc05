package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/accounts/internal/domain/account"
)

// AccountHandler wires the HTTP transport to the account manager.
type AccountHandler struct {
	manager *account.Manager
	logger  *slog.Logger
}

// NewAccountHandler constructs the account HTTP handler.
func NewAccountHandler(manager *account.Manager, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		manager: manager,
		logger:  logger.With("component", "http.handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAccount registers a new account.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	record, err := h.manager.Service().CreateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record.View())
}

// Authenticate checks an email and password pair.
func (h *AccountHandler) Authenticate(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	record, err := h.manager.Service().Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, record.View())
}

// Health reports liveness.
func (h *AccountHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large", "request body too large", err))
			return credentialsRequest{}, false
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return credentialsRequest{}, false
	}
	return req, true
}
