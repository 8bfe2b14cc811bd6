package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListCities returns all cities
func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.store.ListCities(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "cities")
		return
	}
	c.JSON(http.StatusOK, cities)
}

// GetCity returns a single city by id
func (h *Handler) GetCity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	city, err := h.store.GetCity(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "city")
		return
	}
	c.JSON(http.StatusOK, city)
}

// CreateCity adds a city
func (h *Handler) CreateCity(c *gin.Context) {
	var req dto.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	city := &database.City{
		Name:    req.Name,
		State:   req.State,
		Country: req.Country,
	}
	if err := h.store.CreateCity(c.Request.Context(), city); err != nil {
		h.respondStoreError(c, err, "city")
		return
	}
	c.JSON(http.StatusCreated, city)
}
