package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"kakeibo/internal/config"
	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/middleware"
)

// AuthHandler handles authentication-related requests. The household shares
// a single passphrase; a successful login yields a session token.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

// AuthResponse represents the authentication response with token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login authenticates the household passphrase and issues a session token.
// @Summary     Login
// @Description Authenticate with the household passphrase and get a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Household passphrase"
// @Success     200 {object} AuthResponse "Session token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid passphrase"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.PassphraseHash), []byte(req.Passphrase)); err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, expiresAt, err := middleware.GenerateSessionToken()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}
