package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on r. auth guards everything under /api
// except login; pass nil to mount without authentication (tests).
func (h *Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/login", h.Login)

	protected := api.Group("")
	if auth != nil {
		protected.Use(auth)
	}

	protected.GET("/auth/me", h.CurrentUser)

	protected.GET("/users", h.ListUsers)
	protected.GET("/users/role/:role", h.ListUsersByRole)
	protected.GET("/users/:id", h.GetUser)
	protected.POST("/users", h.CreateUser)

	protected.GET("/cities", h.ListCities)
	protected.GET("/cities/:id", h.GetCity)
	protected.POST("/cities", h.CreateCity)

	protected.GET("/buildings", h.ListBuildings)
	protected.GET("/buildings/:id", h.GetBuilding)
	protected.POST("/buildings", h.CreateBuilding)

	protected.GET("/apartments", h.ListApartments)
	protected.GET("/apartments/:id", h.GetApartment)
	protected.POST("/apartments", h.CreateApartment)
	protected.PATCH("/apartments/:id", h.UpdateApartment)

	protected.GET("/tasks", h.ListTasks)
	protected.GET("/tasks/:id", h.GetTask)
	protected.POST("/tasks", h.CreateTask)
	protected.PATCH("/tasks/:id", h.UpdateTask)
	protected.POST("/tasks/:id/evidence", h.UploadEvidence)

	protected.GET("/tasks/:id/materials", h.ListTaskMaterials)
	protected.POST("/tasks/:id/materials", h.CreateTaskMaterial)
	protected.PATCH("/task-materials/:id", h.UpdateTaskMaterial)

	protected.GET("/materials", h.ListMaterials)
	protected.GET("/materials/:id", h.GetMaterial)
	protected.POST("/materials", h.CreateMaterial)
	protected.PATCH("/materials/:id", h.UpdateMaterial)

	protected.GET("/purchase-orders", h.ListPurchaseOrders)
	protected.GET("/purchase-orders/:id", h.GetPurchaseOrder)
	protected.POST("/purchase-orders", h.CreatePurchaseOrder)
	protected.PATCH("/purchase-orders/:id", h.UpdatePurchaseOrder)
	protected.GET("/purchase-orders/:id/items", h.ListPurchaseOrderItems)
	protected.POST("/purchase-orders/:id/items", h.CreatePurchaseOrderItem)

	protected.GET("/dashboard/stats", h.DashboardStats)
}
