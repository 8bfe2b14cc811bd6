package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an operation references an id that does not
// exist. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// TaskFilter narrows ListTasks. All set predicates must match.
type TaskFilter struct {
	ApartmentID *int64
	Status      *TaskStatus
	Type        *TaskType
	AssignedTo  *int64
}

// Store defines entity access independent of the backing mechanism. Create
// assigns the next identifier and applies defaults; Update shallow-merges the
// typed partial over the stored record and returns the merged result, or
// ErrNotFound if the id is absent.
type Store interface {
	// Close closes the underlying connection, if any.
	Close() error

	// User operations
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	ListUsersByRole(ctx context.Context, role UserRole) ([]*User, error)
	CreateUser(ctx context.Context, user *User) error

	// City operations
	GetCity(ctx context.Context, id int64) (*City, error)
	ListCities(ctx context.Context) ([]*City, error)
	CreateCity(ctx context.Context, city *City) error

	// Building operations
	GetBuilding(ctx context.Context, id int64) (*Building, error)
	ListBuildings(ctx context.Context, cityID *int64) ([]*Building, error)
	CreateBuilding(ctx context.Context, building *Building) error

	// Apartment operations
	GetApartment(ctx context.Context, id int64) (*Apartment, error)
	ListApartments(ctx context.Context, buildingID *int64) ([]*Apartment, error)
	CreateApartment(ctx context.Context, apartment *Apartment) error
	UpdateApartment(ctx context.Context, id int64, upd ApartmentUpdate) (*Apartment, error)

	// Task operations. UpdateTask transitioning into "complete" stamps
	// CompletedAt once and propagates it to the apartment's lastMaintenance.
	GetTask(ctx context.Context, id int64) (*Task, error)
	GetTaskByTaskID(ctx context.Context, taskID string) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	CreateTask(ctx context.Context, task *Task) error
	UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*Task, error)

	// Material operations
	GetMaterial(ctx context.Context, id int64) (*Material, error)
	ListMaterials(ctx context.Context) ([]*Material, error)
	CreateMaterial(ctx context.Context, material *Material) error
	UpdateMaterial(ctx context.Context, id int64, upd MaterialUpdate) (*Material, error)

	// Task material operations
	GetTaskMaterial(ctx context.Context, id int64) (*TaskMaterial, error)
	ListTaskMaterials(ctx context.Context, taskID int64) ([]*TaskMaterial, error)
	CreateTaskMaterial(ctx context.Context, tm *TaskMaterial) error
	UpdateTaskMaterial(ctx context.Context, id int64, upd TaskMaterialUpdate) (*TaskMaterial, error)

	// Purchase order operations. CreatePurchaseOrderItem recomputes the line
	// total and the owning order's totalAmount.
	GetPurchaseOrder(ctx context.Context, id int64) (*PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error
	UpdatePurchaseOrder(ctx context.Context, id int64, upd PurchaseOrderUpdate) (*PurchaseOrder, error)
	ListPurchaseOrderItems(ctx context.Context, purchaseOrderID int64) ([]*PurchaseOrderItem, error)
	CreatePurchaseOrderItem(ctx context.Context, item *PurchaseOrderItem) error
}
