package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"vidgate/internal/apperr"
	"vidgate/internal/assets"
	"vidgate/internal/auth"
	"vidgate/internal/config"
	"vidgate/internal/logging"
	"vidgate/internal/metrics"
	"vidgate/internal/middleware"
	"vidgate/pkg/models"
)

// healthStore is the slice of the repository the health check needs
type healthStore interface {
	Health(ctx context.Context) error
	UsersTableExists(ctx context.Context) (bool, error)
}

// API bundles the handlers' dependencies
type API struct {
	cfg      *config.Config
	log      *logging.Logger
	auth     *auth.Service
	users    middleware.UserResolver
	db       healthStore
	newStore func() (assets.ObjectStore, error)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// establishSession mints a session token and attaches it to the response
func (api *API) establishSession(c *gin.Context, user *models.User) bool {
	token, err := middleware.NewSessionToken(user.ID, user.Email, api.cfg.Auth.SessionTTL)
	if err != nil {
		api.log.WithError(err).Error("failed to mint session token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal error occurred."})
		return false
	}

	middleware.SetSessionCookie(c, token, api.cfg.Auth.SessionTTL)
	return true
}

// Signup endpoint
func (api *API) signup(c *gin.Context) {
	var req credentialsRequest
	// A malformed or missing body leaves the fields empty and falls into
	// the validation error below.
	_ = c.ShouldBindJSON(&req)

	user, err := api.auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		case errors.Is(err, apperr.ErrAccountExists):
			c.JSON(http.StatusConflict, gin.H{"message": "An account with this email may already exist."})
		default:
			api.log.WithError(err).Error("database error during signup")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "A database error occurred during signup."})
		}
		return
	}

	if !api.establishSession(c, user) {
		return
	}

	metrics.SignupsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful.",
		"user":    gin.H{"email": user.Email},
	})
}

// Login endpoint
func (api *API) login(c *gin.Context) {
	var req credentialsRequest
	_ = c.ShouldBindJSON(&req)

	user, err := api.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
			return
		}
		api.log.WithError(err).Error("database error during login")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal error occurred."})
		return
	}

	if !api.establishSession(c, user) {
		return
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"user":    gin.H{"email": user.Email},
	})
}

// Logout endpoint
func (api *API) logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}

// Check-auth endpoint. Reaching the handler means the session resolved.
func (api *API) checkAuth(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User is authenticated.",
		"user":    gin.H{"email": user.Email},
	})
}

// List videos endpoint
func (api *API) listVideos(c *gin.Context) {
	store, ok := api.openStore(c)
	if !ok {
		return
	}

	aggregator := assets.New(store, api.log, api.cfg.Storage.PresignTTL)

	records, err := aggregator.ListVideos(c.Request.Context())
	if err != nil {
		api.log.WithError(err).Error("object store listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error accessing object storage."})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Stream endpoint: issues a delegated read URL for a single object
func (api *API) streamVideo(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	store, ok := api.openStore(c)
	if !ok {
		return
	}

	url, err := store.PresignedGetURL(c.Request.Context(), key, api.cfg.Storage.PresignTTL)
	if err != nil {
		api.log.WithError(err).Errorf("presign failed for %s", key)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating stream URL."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// openStore acquires a request-scoped object store client and translates
// construction failures into the configuration-error response
func (api *API) openStore(c *gin.Context) (assets.ObjectStore, bool) {
	store, err := api.newStore()
	if err != nil {
		if errors.Is(err, apperr.ErrStoreCredentials) {
			api.log.Error("object storage credentials not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Object storage credentials not configured."})
		} else {
			api.log.WithError(err).Error("failed to create object store client")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error accessing object storage."})
		}
		return nil, false
	}
	return store, true
}

// Health check endpoint: verifies database connectivity and that the users
// table exists
func (api *API) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := api.db.Health(ctx); err != nil {
		api.log.WithError(err).Error("health check: database unreachable")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection failed.",
		})
		return
	}

	exists, err := api.db.UsersTableExists(ctx)
	if err != nil {
		api.log.WithError(err).Error("health check: table lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "An unexpected error occurred.",
		})
		return
	}

	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database connection successful, but 'users' table not found.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Database connection and 'users' table check successful.",
	})
}
