package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/auth/jwt"
	"github.com/airmaint/airmaint/internal/common/config"
	"github.com/airmaint/airmaint/internal/common/dto"
	"github.com/airmaint/airmaint/pkg/metrics"
)

var startTime = time.Now()

// Handler serves the maintenance REST API
type Handler struct {
	store      database.Store
	logger     *zap.Logger
	jwtService *jwt.Service
	cfg        *config.APIServerConfig
	metrics    *metrics.Metrics
}

// NewHandler creates a new API handler
func NewHandler(store database.Store, logger *zap.Logger, jwtService *jwt.Service, cfg *config.APIServerConfig) *Handler {
	return &Handler{
		store:      store,
		logger:     logger,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// WithMetrics enables task lifecycle counters on the handler.
func (h *Handler) WithMetrics(m *metrics.Metrics) *Handler {
	h.metrics = m
	return h
}

// Root confirms the server is up.
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "App is running")
}

// Health reports liveness plus the state of the backing store and how long
// the process has been up.
func (h *Handler) Health(c *gin.Context) {
	db := gin.H{}
	if _, ok := h.store.(*database.Memory); ok {
		db["status"] = "memory"
		db["details"] = gin.H{"type": "memory"}
	} else if users, err := h.store.ListUsers(c.Request.Context()); err != nil {
		db["status"] = "error"
		db["details"] = gin.H{"type": h.cfg.Database.Type}
	} else {
		db["status"] = "connected"
		db["details"] = gin.H{"type": h.cfg.Database.Type, "userCount": len(users)}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  db,
		"uptime":    int64(time.Since(startTime).Seconds()),
	})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondStoreError maps storage errors onto HTTP statuses.
func (h *Handler) respondStoreError(c *gin.Context, err error, what string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
		return
	}
	h.logger.Error("storage error", zap.String("what", what), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func userInfo(u *database.User) *dto.UserInfo {
	if u == nil {
		return nil
	}
	return &dto.UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
	}
}

// expandBuilding returns a building with its city embedded. Lookup failures
// degrade to a nil field rather than failing the whole response.
func (h *Handler) expandBuilding(ctx context.Context, b *database.Building) gin.H {
	out := gin.H{
		"id":         b.ID,
		"name":       b.Name,
		"address":    b.Address,
		"cityId":     b.CityID,
		"totalUnits": b.TotalUnits,
	}
	if city, err := h.store.GetCity(ctx, b.CityID); err == nil {
		out["city"] = city
	} else {
		out["city"] = nil
	}
	return out
}

// expandApartment returns an apartment with its building and city embedded.
func (h *Handler) expandApartment(ctx context.Context, a *database.Apartment) gin.H {
	out := gin.H{
		"id":              a.ID,
		"apartmentNumber": a.ApartmentNumber,
		"buildingId":      a.BuildingID,
		"status":          a.Status,
		"lastMaintenance": a.LastMaintenance,
		"nextMaintenance": a.NextMaintenance,
		"bedroomCount":    a.BedroomCount,
		"bathroomCount":   a.BathroomCount,
		"squareMeters":    a.SquareMeters,
		"notes":           a.Notes,
		"imageUrl":        a.ImageURL,
	}
	if building, err := h.store.GetBuilding(ctx, a.BuildingID); err == nil {
		out["building"] = h.expandBuilding(ctx, building)
	} else {
		out["building"] = nil
	}
	return out
}

// expandTask returns a task with its apartment chain and assignee embedded.
func (h *Handler) expandTask(ctx context.Context, t *database.Task) gin.H {
	out := gin.H{
		"id":                t.ID,
		"taskId":            t.TaskID,
		"type":              t.Type,
		"apartmentId":       t.ApartmentID,
		"issue":             t.Issue,
		"description":       t.Description,
		"reportedBy":        t.ReportedBy,
		"reportedAt":        t.ReportedAt,
		"scheduledFor":      t.ScheduledFor,
		"assignedTo":        t.AssignedTo,
		"priority":          t.Priority,
		"status":            t.Status,
		"estimatedDuration": t.EstimatedDuration,
		"completedAt":       t.CompletedAt,
		"verifiedBy":        t.VerifiedBy,
		"verifiedAt":        t.VerifiedAt,
		"evidencePhotos":    t.EvidencePhotos,
	}
	if apartment, err := h.store.GetApartment(ctx, t.ApartmentID); err == nil {
		out["apartment"] = h.expandApartment(ctx, apartment)
	} else {
		out["apartment"] = nil
	}
	if t.AssignedTo != nil {
		if u, err := h.store.GetUser(ctx, *t.AssignedTo); err == nil {
			out["assignedUser"] = userInfo(u)
		} else {
			out["assignedUser"] = nil
		}
	} else {
		out["assignedUser"] = nil
	}
	return out
}

// expandTaskMaterial returns a task-material link with its material embedded.
func (h *Handler) expandTaskMaterial(ctx context.Context, tm *database.TaskMaterial) gin.H {
	out := gin.H{
		"id":         tm.ID,
		"taskId":     tm.TaskID,
		"materialId": tm.MaterialID,
		"quantity":   tm.Quantity,
		"status":     tm.Status,
	}
	if m, err := h.store.GetMaterial(ctx, tm.MaterialID); err == nil {
		out["material"] = m
	} else {
		out["material"] = nil
	}
	return out
}

// expandPurchaseOrder returns an order with its creator and lines embedded.
func (h *Handler) expandPurchaseOrder(ctx context.Context, po *database.PurchaseOrder) gin.H {
	out := gin.H{
		"id":          po.ID,
		"poNumber":    po.PONumber,
		"createdBy":   po.CreatedBy,
		"createdAt":   po.CreatedAt,
		"status":      po.Status,
		"totalAmount": po.TotalAmount,
		"notes":       po.Notes,
	}
	if u, err := h.store.GetUser(ctx, po.CreatedBy); err == nil {
		out["createdByUser"] = userInfo(u)
	} else {
		out["createdByUser"] = nil
	}
	items, err := h.store.ListPurchaseOrderItems(ctx, po.ID)
	if err != nil {
		out["items"] = []gin.H{}
		return out
	}
	expanded := make([]gin.H, 0, len(items))
	for _, item := range items {
		line := gin.H{
			"id":              item.ID,
			"purchaseOrderId": item.PurchaseOrderID,
			"materialId":      item.MaterialID,
			"quantity":        item.Quantity,
			"unitPrice":       item.UnitPrice,
			"totalPrice":      item.TotalPrice,
		}
		if m, err := h.store.GetMaterial(ctx, item.MaterialID); err == nil {
			line["material"] = m
		} else {
			line["material"] = nil
		}
		expanded = append(expanded, line)
	}
	out["items"] = expanded
	return out
}
