package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListApartments returns all apartments with their building and city
// embedded, optionally filtered by ?buildingId.
func (h *Handler) ListApartments(c *gin.Context) {
	var buildingID *int64
	if raw := c.Query("buildingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid buildingId"})
			return
		}
		buildingID = &id
	}

	ctx := c.Request.Context()
	apartments, err := h.store.ListApartments(ctx, buildingID)
	if err != nil {
		h.respondStoreError(c, err, "apartments")
		return
	}

	out := make([]gin.H, 0, len(apartments))
	for _, a := range apartments {
		out = append(out, h.expandApartment(ctx, a))
	}
	c.JSON(http.StatusOK, out)
}

// GetApartment returns a single apartment with its building, city and task
// history embedded.
func (h *Handler) GetApartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	apartment, err := h.store.GetApartment(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "apartment")
		return
	}

	out := h.expandApartment(ctx, apartment)
	tasks, err := h.store.ListTasks(ctx, database.TaskFilter{ApartmentID: &id})
	if err != nil {
		h.respondStoreError(c, err, "tasks")
		return
	}
	out["tasks"] = tasks
	c.JSON(http.StatusOK, out)
}

// CreateApartment adds an apartment. The referenced building must exist.
func (h *Handler) CreateApartment(c *gin.Context) {
	var req dto.CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetBuilding(ctx, req.BuildingID); err != nil {
		h.respondStoreError(c, err, "building")
		return
	}

	apartment := &database.Apartment{
		ApartmentNumber: req.ApartmentNumber,
		BuildingID:      req.BuildingID,
		Status:          database.ApartmentStatus(req.Status),
		LastMaintenance: req.LastMaintenance,
		NextMaintenance: req.NextMaintenance,
		BedroomCount:    req.BedroomCount,
		BathroomCount:   req.BathroomCount,
		SquareMeters:    req.SquareMeters,
		Notes:           req.Notes,
		ImageURL:        req.ImageURL,
	}
	if err := h.store.CreateApartment(ctx, apartment); err != nil {
		h.respondStoreError(c, err, "apartment")
		return
	}
	c.JSON(http.StatusCreated, apartment)
}

// UpdateApartment applies a partial update to an apartment
func (h *Handler) UpdateApartment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var upd database.ApartmentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apartment, err := h.store.UpdateApartment(c.Request.Context(), id, upd)
	if err != nil {
		h.respondStoreError(c, err, "apartment")
		return
	}
	c.JSON(http.StatusOK, apartment)
}
