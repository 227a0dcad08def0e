package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dzavadskis/minimart/internal/common"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleRegister creates a new account. The plaintext password only exists
// for the duration of the request.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "username, email and password are required",
		})
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    "CONFLICT",
				"message": "username already taken",
			})
			return
		}
		if errors.Is(err, common.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    "CONFLICT",
				"message": "email already registered",
			})
			return
		}
		s.logger.Error(c.Request.Context(), "registration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"id":      user.ID,
	})
}

// handleLogin verifies credentials from a form-encoded body and, on success,
// sets the session cookie. The cookie MaxAge equals the token TTL, so both
// expire together. Unknown usernames and wrong passwords produce the same
// response.
func (s *Server) handleLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "username and password are required",
		})
		return
	}

	token, err := s.users.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "AUTH_FAILED",
				"message": "invalid username or password",
			})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, token,
		int(s.users.TokenTTL().Seconds()), "/", "", s.cfg.GinMode == gin.ReleaseMode, true)

	s.logger.Info(c.Request.Context(), "user logged in", "username", username)
	c.JSON(http.StatusOK, gin.H{"message": "login successful"})
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// handleMe returns the authenticated user's record. A valid token whose
// subject no longer exists (deleted account) yields not-found, not success.
func (s *Server) handleMe(c *gin.Context) {
	subject := c.GetString(ContextSubjectKey)

	user, err := s.users.GetByUsername(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    "NOT_FOUND",
				"message": "user not found",
			})
			return
		}
		s.logger.Error(c.Request.Context(), "current user lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
