package dto

import "time"

// Creation payloads. Server-assigned fields (ids, computed totals, completion
// timestamps) are deliberately absent; enum values are validated by gin's
// oneof bindings before they reach storage.

// CreateUserRequest represents a request to register a staff member
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=control_center maintenance_agent purchasing_agent"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

// CreateCityRequest represents a request to add a city
type CreateCityRequest struct {
	Name    string `json:"name" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country"`
}

// CreateBuildingRequest represents a request to add a building
type CreateBuildingRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	CityID     int64  `json:"cityId" binding:"required"`
	TotalUnits int    `json:"totalUnits" binding:"required,gt=0"`
}

// CreateApartmentRequest represents a request to add an apartment
type CreateApartmentRequest struct {
	ApartmentNumber string     `json:"apartmentNumber" binding:"required"`
	BuildingID      int64      `json:"buildingId" binding:"required"`
	Status          string     `json:"status" binding:"omitempty,oneof=active maintenance inactive"`
	LastMaintenance *time.Time `json:"lastMaintenance"`
	NextMaintenance *time.Time `json:"nextMaintenance"`
	BedroomCount    int        `json:"bedroomCount" binding:"required,gt=0"`
	BathroomCount   int        `json:"bathroomCount" binding:"required,gt=0"`
	SquareMeters    float64    `json:"squareMeters"`
	Notes           string     `json:"notes"`
	ImageURL        string     `json:"imageUrl"`
}

// CreateTaskRequest represents a request to open a maintenance task
type CreateTaskRequest struct {
	TaskID            string     `json:"taskId" binding:"required"`
	Type              string     `json:"type" binding:"required,oneof=corrective preventive"`
	ApartmentID       int64      `json:"apartmentId" binding:"required"`
	Issue             string     `json:"issue" binding:"required"`
	Description       string     `json:"description"`
	ReportedBy        string     `json:"reportedBy"`
	ScheduledFor      *time.Time `json:"scheduledFor"`
	AssignedTo        *int64     `json:"assignedTo"`
	Priority          string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status            string     `json:"status" binding:"omitempty,oneof=pending in_progress scheduled complete verified"`
	EstimatedDuration string     `json:"estimatedDuration"`
}

// CreateMaterialRequest represents a request to add an inventory item
type CreateMaterialRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Unit     string `json:"unit" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateTaskMaterialRequest links a material requirement to a task. The task
// id comes from the URL, not the body.
type CreateTaskMaterialRequest struct {
	MaterialID int64  `json:"materialId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Status     string `json:"status" binding:"omitempty,oneof=needed ordered received"`
}

// CreatePurchaseOrderRequest represents a request to open a purchase order
type CreatePurchaseOrderRequest struct {
	PONumber  string `json:"poNumber" binding:"required"`
	CreatedBy int64  `json:"createdBy" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=draft submitted received"`
	Notes     string `json:"notes"`
}

// CreatePurchaseOrderItemRequest adds a line to a purchase order. The order
// id comes from the URL; the line and order totals are computed server-side.
type CreatePurchaseOrderItemRequest struct {
	MaterialID int64   `json:"materialId" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64 `json:"unitPrice" binding:"gte=0"`
}
