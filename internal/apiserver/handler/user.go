package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListUsers returns all users, optionally filtered by role
func (h *Handler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		users []*database.User
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.store.ListUsersByRole(ctx, database.UserRole(role))
	} else {
		users, err = h.store.ListUsers(ctx)
	}
	if err != nil {
		h.respondStoreError(c, err, "users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListUsersByRole returns the users holding the role named in the path.
func (h *Handler) ListUsersByRole(c *gin.Context) {
	users, err := h.store.ListUsersByRole(c.Request.Context(), database.UserRole(c.Param("role")))
	if err != nil {
		h.respondStoreError(c, err, "users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user by id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers a staff member. Passwords are stored bcrypt-hashed.
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetUserByUsername(ctx, req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user := &database.User{
		Username: req.Username,
		Password: string(hash),
		Name:     req.Name,
		Role:     database.UserRole(req.Role),
		Email:    req.Email,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		h.respondStoreError(c, err, "user")
		return
	}
	c.JSON(http.StatusCreated, user)
}
