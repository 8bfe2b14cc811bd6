package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleControlCenter    UserRole = "control_center"
	RoleMaintenanceAgent UserRole = "maintenance_agent"
	RolePurchasingAgent  UserRole = "purchasing_agent"
)

// ApartmentStatus represents the occupancy/maintenance state of an apartment
type ApartmentStatus string

const (
	ApartmentActive      ApartmentStatus = "active"
	ApartmentMaintenance ApartmentStatus = "maintenance"
	ApartmentInactive    ApartmentStatus = "inactive"
)

// TaskType distinguishes reactive repairs from scheduled upkeep
type TaskType string

const (
	TaskCorrective TaskType = "corrective"
	TaskPreventive TaskType = "preventive"
)

// TaskPriority represents task urgency
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskScheduled  TaskStatus = "scheduled"
	TaskComplete   TaskStatus = "complete"
	TaskVerified   TaskStatus = "verified"
)

// TaskMaterialStatus tracks procurement state of a material required by a task
type TaskMaterialStatus string

const (
	MaterialNeeded   TaskMaterialStatus = "needed"
	MaterialOrdered  TaskMaterialStatus = "ordered"
	MaterialReceived TaskMaterialStatus = "received"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	OrderDraft     PurchaseOrderStatus = "draft"
	OrderSubmitted PurchaseOrderStatus = "submitted"
	OrderReceived  PurchaseOrderStatus = "received"
)

// PhotoList is a list of evidence-photo paths, stored as a JSON text column.
type PhotoList []string

// Value implements driver.Valuer
func (p PhotoList) Value() (driver.Value, error) {
	if p == nil {
		p = PhotoList{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *PhotoList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*p = PhotoList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*p = PhotoList{}
			return nil
		}
		return json.Unmarshal(v, p)
	case string:
		if v == "" {
			*p = PhotoList{}
			return nil
		}
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported evidence photos column type %T", value)
	}
}

// User represents a staff member
type User struct {
	ID       int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string   `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"` // bcrypt hash, never exposed in JSON
	Name     string   `json:"name" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"type:varchar(32);not null"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
}

// City represents a city in which managed buildings exist
type City struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"not null"`
	State   string `json:"state" gorm:"not null"`
	Country string `json:"country" gorm:"not null;default:'Mexico'"`
}

// Building represents a managed building
type Building struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name" gorm:"not null"`
	Address    string `json:"address" gorm:"not null"`
	CityID     int64  `json:"cityId" gorm:"index;not null"`
	TotalUnits int    `json:"totalUnits" gorm:"not null"`
}

// Apartment represents a unit within a building. Apartment numbers are only
// unique within a building and this is not enforced.
type Apartment struct {
	ID              int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	ApartmentNumber string          `json:"apartmentNumber" gorm:"not null"`
	BuildingID      int64           `json:"buildingId" gorm:"index;not null"`
	Status          ApartmentStatus `json:"status" gorm:"type:varchar(32);not null;default:'active'"`
	LastMaintenance *time.Time      `json:"lastMaintenance"`
	NextMaintenance *time.Time      `json:"nextMaintenance"`
	BedroomCount    int             `json:"bedroomCount" gorm:"not null"`
	BathroomCount   int             `json:"bathroomCount" gorm:"not null"`
	SquareMeters    float64         `json:"squareMeters,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty" gorm:"column:image_url"`
}

// Task represents a maintenance task, corrective or preventive
type Task struct {
	ID                int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID            string       `json:"taskId" gorm:"column:task_id;uniqueIndex;not null"` // MT-XXXX
	Type              TaskType     `json:"type" gorm:"type:varchar(32);not null"`
	ApartmentID       int64        `json:"apartmentId" gorm:"index;not null"`
	Issue             string       `json:"issue" gorm:"not null"`
	Description       string       `json:"description,omitempty"`
	ReportedBy        string       `json:"reportedBy,omitempty"`
	ReportedAt        time.Time    `json:"reportedAt" gorm:"not null"`
	ScheduledFor      *time.Time   `json:"scheduledFor"`
	AssignedTo        *int64       `json:"assignedTo" gorm:"index"`
	Priority          TaskPriority `json:"priority" gorm:"type:varchar(16);not null;default:'medium'"`
	Status            TaskStatus   `json:"status" gorm:"type:varchar(32);not null;default:'pending'"`
	EstimatedDuration string       `json:"estimatedDuration,omitempty"`
	CompletedAt       *time.Time   `json:"completedAt"`
	VerifiedBy        *int64       `json:"verifiedBy"`
	VerifiedAt        *time.Time   `json:"verifiedAt"`
	EvidencePhotos    PhotoList    `json:"evidencePhotos" gorm:"type:text"`
}

// Material represents an inventory item
type Material struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"not null"`
	Quantity int    `json:"quantity" gorm:"not null;default:0"`
	Unit     string `json:"unit" gorm:"not null"` // each, kg, liter
	Notes    string `json:"notes,omitempty"`
}

// TaskMaterial links a task to a material it requires
type TaskMaterial struct {
	ID         int64              `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID     int64              `json:"taskId" gorm:"index;not null"`
	MaterialID int64              `json:"materialId" gorm:"not null"`
	Quantity   int                `json:"quantity" gorm:"not null"`
	Status     TaskMaterialStatus `json:"status" gorm:"type:varchar(32);not null;default:'needed'"`
}

// PurchaseOrder represents a request for materials from a supplier
type PurchaseOrder struct {
	ID          int64               `json:"id" gorm:"primaryKey;autoIncrement"`
	PONumber    string              `json:"poNumber" gorm:"column:po_number;uniqueIndex;not null"`
	CreatedBy   int64               `json:"createdBy" gorm:"not null"`
	CreatedAt   time.Time           `json:"createdAt" gorm:"not null"`
	Status      PurchaseOrderStatus `json:"status" gorm:"type:varchar(32);not null;default:'draft'"`
	TotalAmount float64             `json:"totalAmount"`
	Notes       string              `json:"notes,omitempty"`
}

// PurchaseOrderItem is a single line of a purchase order
type PurchaseOrderItem struct {
	ID              int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	PurchaseOrderID int64   `json:"purchaseOrderId" gorm:"index;not null"`
	MaterialID      int64   `json:"materialId" gorm:"not null"`
	Quantity        int     `json:"quantity" gorm:"not null"`
	UnitPrice       float64 `json:"unitPrice"`
	TotalPrice      float64 `json:"totalPrice"`
}

// allModels is the automigrate set shared by the SQL backends.
func allModels() []any {
	return []any{
		&User{}, &City{}, &Building{}, &Apartment{}, &Task{},
		&Material{}, &TaskMaterial{}, &PurchaseOrder{}, &PurchaseOrderItem{},
	}
}

const maintenanceInterval = 6 * 30 * 24 * time.Hour // next review roughly six months out

// normalizeNewCity applies creation defaults shared by all backends.
func normalizeNewCity(c *City) {
	if c.Country == "" {
		c.Country = "Mexico"
	}
}

func normalizeNewApartment(a *Apartment, now time.Time) {
	if a.Status == "" {
		a.Status = ApartmentActive
	}
	if a.LastMaintenance == nil {
		t := now
		a.LastMaintenance = &t
	}
	if a.NextMaintenance == nil {
		t := now.Add(maintenanceInterval)
		a.NextMaintenance = &t
	}
}

func normalizeNewTask(t *Task, now time.Time) {
	if t.ReportedAt.IsZero() {
		t.ReportedAt = now
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = TaskPending
	}
	if t.EvidencePhotos == nil {
		t.EvidencePhotos = PhotoList{}
	}
}

func normalizeNewTaskMaterial(tm *TaskMaterial) {
	if tm.Status == "" {
		tm.Status = MaterialNeeded
	}
}

func normalizeNewPurchaseOrder(po *PurchaseOrder, now time.Time) {
	if po.CreatedAt.IsZero() {
		po.CreatedAt = now
	}
	if po.Status == "" {
		po.Status = OrderDraft
	}
}
