package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListBuildings returns all buildings, optionally filtered by ?cityId
func (h *Handler) ListBuildings(c *gin.Context) {
	var cityID *int64
	if raw := c.Query("cityId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cityId"})
			return
		}
		cityID = &id
	}

	buildings, err := h.store.ListBuildings(c.Request.Context(), cityID)
	if err != nil {
		h.respondStoreError(c, err, "buildings")
		return
	}
	c.JSON(http.StatusOK, buildings)
}

// GetBuilding returns a single building by id
func (h *Handler) GetBuilding(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	building, err := h.store.GetBuilding(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "building")
		return
	}
	c.JSON(http.StatusOK, building)
}

// CreateBuilding adds a building. The referenced city must exist.
func (h *Handler) CreateBuilding(c *gin.Context) {
	var req dto.CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetCity(ctx, req.CityID); err != nil {
		h.respondStoreError(c, err, "city")
		return
	}

	building := &database.Building{
		Name:       req.Name,
		Address:    req.Address,
		CityID:     req.CityID,
		TotalUnits: req.TotalUnits,
	}
	if err := h.store.CreateBuilding(ctx, building); err != nil {
		h.respondStoreError(c, err, "building")
		return
	}
	c.JSON(http.StatusCreated, building)
}
