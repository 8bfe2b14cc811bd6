package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListMaterials returns the full inventory
func (h *Handler) ListMaterials(c *gin.Context) {
	materials, err := h.store.ListMaterials(c.Request.Context())
	if err != nil {
		h.respondStoreError(c, err, "materials")
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterial returns a single inventory item by id
func (h *Handler) GetMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	material, err := h.store.GetMaterial(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "material")
		return
	}
	c.JSON(http.StatusOK, material)
}

// CreateMaterial adds an inventory item
func (h *Handler) CreateMaterial(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material := &database.Material{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}
	if err := h.store.CreateMaterial(c.Request.Context(), material); err != nil {
		h.respondStoreError(c, err, "material")
		return
	}
	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial applies a partial update to an inventory item
func (h *Handler) UpdateMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var upd database.MaterialUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	material, err := h.store.UpdateMaterial(c.Request.Context(), id, upd)
	if err != nil {
		h.respondStoreError(c, err, "material")
		return
	}
	c.JSON(http.StatusOK, material)
}
