package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListPurchaseOrders returns all purchase orders with their creator and
// line items embedded
func (h *Handler) ListPurchaseOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.store.ListPurchaseOrders(ctx)
	if err != nil {
		h.respondStoreError(c, err, "purchase orders")
		return
	}

	out := make([]gin.H, 0, len(orders))
	for _, po := range orders {
		out = append(out, h.expandPurchaseOrder(ctx, po))
	}
	c.JSON(http.StatusOK, out)
}

// GetPurchaseOrder returns a single purchase order with its creator and
// line items embedded
func (h *Handler) GetPurchaseOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	po, err := h.store.GetPurchaseOrder(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "purchase order")
		return
	}
	c.JSON(http.StatusOK, h.expandPurchaseOrder(ctx, po))
}

// CreatePurchaseOrder opens a purchase order. The creating user must exist
// and the order number must be unique.
func (h *Handler) CreatePurchaseOrder(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetUser(ctx, req.CreatedBy); err != nil {
		h.respondStoreError(c, err, "user")
		return
	}

	po := &database.PurchaseOrder{
		PONumber:  req.PONumber,
		CreatedBy: req.CreatedBy,
		Status:    database.PurchaseOrderStatus(req.Status),
		Notes:     req.Notes,
	}
	if err := h.store.CreatePurchaseOrder(ctx, po); err != nil {
		h.respondStoreError(c, err, "purchase order")
		return
	}
	c.JSON(http.StatusCreated, po)
}

// UpdatePurchaseOrder applies a partial update to a purchase order. The
// total amount is derived from line items and cannot be patched.
func (h *Handler) UpdatePurchaseOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var upd database.PurchaseOrderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	po, err := h.store.UpdatePurchaseOrder(c.Request.Context(), id, upd)
	if err != nil {
		h.respondStoreError(c, err, "purchase order")
		return
	}
	c.JSON(http.StatusOK, po)
}

// CreatePurchaseOrderItem adds a line to a purchase order. The line total
// and the order's total amount are computed server-side.
func (h *Handler) CreatePurchaseOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetMaterial(ctx, req.MaterialID); err != nil {
		h.respondStoreError(c, err, "material")
		return
	}

	item := &database.PurchaseOrderItem{
		PurchaseOrderID: id,
		MaterialID:      req.MaterialID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
	}
	if err := h.store.CreatePurchaseOrderItem(ctx, item); err != nil {
		h.respondStoreError(c, err, "purchase order")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListPurchaseOrderItems returns the lines of a purchase order
func (h *Handler) ListPurchaseOrderItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetPurchaseOrder(ctx, id); err != nil {
		h.respondStoreError(c, err, "purchase order")
		return
	}

	items, err := h.store.ListPurchaseOrderItems(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "purchase order items")
		return
	}
	c.JSON(http.StatusOK, items)
}
