package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/evotodo/task-tracker-api/internal/config"
	"github.com/evotodo/task-tracker-api/internal/constants"
	"github.com/evotodo/task-tracker-api/internal/dto"
	apierrors "github.com/evotodo/task-tracker-api/internal/errors"
	"github.com/evotodo/task-tracker-api/internal/identity"
	"github.com/evotodo/task-tracker-api/internal/middleware"
	"github.com/evotodo/task-tracker-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers. In token
// mode a successful login issues a bearer token; in session mode it
// populates the session store the identity resolver reads from.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *identity.TokenResolver
	mode        string
}

// NewAuthHandler creates a new AuthHandler. tokens may be nil in session mode.
func NewAuthHandler(authService *services.AuthService, tokens *identity.TokenResolver, mode string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		mode:        mode,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and establishes the credential for the
// configured mode.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.UnprocessableEntity(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if h.mode == config.AuthModeToken {
		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			apierrors.InternalError(c, "Failed to issue token")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":         dto.ToUserDTO(*user),
			"access_token": token,
			"token_type":   "bearer",
			"expires_in":   int64(h.tokens.TTL().Seconds()),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout clears the session. Bearer tokens are stateless, so in token mode
// this only acknowledges the request.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.mode == config.AuthModeSession {
		session := sessions.Default(c)
		session.Clear()
		if err := session.Save(); err != nil {
			apierrors.InternalError(c, "Failed to logout")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.UnprocessableEntity(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
