package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChain(t *testing.T, m *Memory) (*City, *Building, *Apartment) {
	t.Helper()
	ctx := context.Background()

	city := &City{Name: "Testville", State: "TS"}
	require.NoError(t, m.CreateCity(ctx, city))

	building := &Building{Name: "Test Tower", Address: "Calle 1", CityID: city.ID, TotalUnits: 10}
	require.NoError(t, m.CreateBuilding(ctx, building))

	apartment := &Apartment{ApartmentNumber: "101", BuildingID: building.ID, BedroomCount: 2, BathroomCount: 1}
	require.NoError(t, m.CreateApartment(ctx, apartment))

	return city, building, apartment
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	city, building, apartment := newTestChain(t, m)

	gotCity, err := m.GetCity(ctx, city.ID)
	require.NoError(t, err)
	assert.Equal(t, city, gotCity)
	// Country default applied on create
	assert.Equal(t, "Mexico", gotCity.Country)

	gotBuilding, err := m.GetBuilding(ctx, building.ID)
	require.NoError(t, err)
	assert.Equal(t, building, gotBuilding)

	gotApartment, err := m.GetApartment(ctx, apartment.ID)
	require.NoError(t, err)
	assert.Equal(t, apartment, gotApartment)
	assert.Equal(t, ApartmentActive, gotApartment.Status)
	assert.NotNil(t, gotApartment.LastMaintenance)
	assert.NotNil(t, gotApartment.NextMaintenance)
}

func TestIDsAreMonotonic(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var prev int64
	for i := 0; i < 5; i++ {
		c := &City{Name: "C", State: "S"}
		require.NoError(t, m.CreateCity(ctx, c))
		assert.Greater(t, c.ID, prev)
		prev = c.ID
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.GetApartment(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.UpdateTask(ctx, 99, TaskUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskDefaults(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_, _, apartment := newTestChain(t, m)

	task := &Task{TaskID: "MT-1001", Type: TaskCorrective, ApartmentID: apartment.ID, Issue: "Leak"}
	require.NoError(t, m.CreateTask(ctx, task))

	assert.False(t, task.ReportedAt.IsZero())
	assert.Equal(t, TaskPending, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.NotNil(t, task.EvidencePhotos)
}

func TestTaskCompletionCascade(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_, _, apartment := newTestChain(t, m)

	task := &Task{TaskID: "MT-1002", Type: TaskCorrective, ApartmentID: apartment.ID, Issue: "No hot water"}
	require.NoError(t, m.CreateTask(ctx, task))
	require.Nil(t, task.CompletedAt)

	status := TaskComplete
	updated, err := m.UpdateTask(ctx, task.ID, TaskUpdate{Status: &status})
	require.NoError(t, err)

	require.NotNil(t, updated.CompletedAt)
	assert.False(t, updated.CompletedAt.Before(task.ReportedAt))

	apt, err := m.GetApartment(ctx, apartment.ID)
	require.NoError(t, err)
	require.NotNil(t, apt.LastMaintenance)
	assert.Equal(t, *updated.CompletedAt, *apt.LastMaintenance)

	// A second transition to complete must not move the timestamp.
	first := *updated.CompletedAt
	time.Sleep(5 * time.Millisecond)
	again, err := m.UpdateTask(ctx, task.ID, TaskUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, first, *again.CompletedAt)
}

func TestListApartmentsByBuilding(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_, building, _ := newTestChain(t, m)

	other := &Building{Name: "Other", Address: "Calle 2", CityID: 1, TotalUnits: 5}
	require.NoError(t, m.CreateBuilding(ctx, other))
	require.NoError(t, m.CreateApartment(ctx, &Apartment{ApartmentNumber: "201", BuildingID: other.ID, BedroomCount: 1, BathroomCount: 1}))

	apartments, err := m.ListApartments(ctx, &building.ID)
	require.NoError(t, err)
	require.Len(t, apartments, 1)
	assert.Equal(t, building.ID, apartments[0].BuildingID)

	all, err := m.ListApartments(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListTasksCombinedFilters(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	_, _, apartment := newTestChain(t, m)

	mk := func(taskID string, typ TaskType, status TaskStatus) {
		require.NoError(t, m.CreateTask(ctx, &Task{
			TaskID: taskID, Type: typ, ApartmentID: apartment.ID, Issue: "x", Status: status,
		}))
	}
	mk("MT-0001", TaskPreventive, TaskScheduled)
	mk("MT-0002", TaskPreventive, TaskPending)
	mk("MT-0003", TaskCorrective, TaskScheduled)

	typ := TaskPreventive
	status := TaskScheduled
	tasks, err := m.ListTasks(ctx, TaskFilter{Type: &typ, Status: &status})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "MT-0001", tasks[0].TaskID)
}

func TestPurchaseOrderTotals(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	user := &User{Username: "pedro", Password: "x", Name: "Pedro", Role: RolePurchasingAgent}
	require.NoError(t, m.CreateUser(ctx, user))
	material := &Material{Name: "AC filter", Quantity: 10, Unit: "each"}
	require.NoError(t, m.CreateMaterial(ctx, material))

	po := &PurchaseOrder{PONumber: "PO-100", CreatedBy: user.ID}
	require.NoError(t, m.CreatePurchaseOrder(ctx, po))
	assert.Equal(t, OrderDraft, po.Status)
	assert.False(t, po.CreatedAt.IsZero())

	item1 := &PurchaseOrderItem{PurchaseOrderID: po.ID, MaterialID: material.ID, Quantity: 3, UnitPrice: 10.00}
	require.NoError(t, m.CreatePurchaseOrderItem(ctx, item1))
	assert.Equal(t, 30.00, item1.TotalPrice)

	item2 := &PurchaseOrderItem{PurchaseOrderID: po.ID, MaterialID: material.ID, Quantity: 1, UnitPrice: 5.00}
	require.NoError(t, m.CreatePurchaseOrderItem(ctx, item2))

	got, err := m.GetPurchaseOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.00, got.TotalAmount)

	// Line totals are recomputed regardless of what the caller supplied.
	item3 := &PurchaseOrderItem{PurchaseOrderID: po.ID, MaterialID: material.ID, Quantity: 2, UnitPrice: 1.50, TotalPrice: 999}
	require.NoError(t, m.CreatePurchaseOrderItem(ctx, item3))
	assert.Equal(t, 3.00, item3.TotalPrice)
}

func TestSeededMemory(t *testing.T) {
	m, err := NewSeededMemory()
	require.NoError(t, err)
	ctx := context.Background()

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 6)

	agents, err := m.ListUsersByRole(ctx, RoleMaintenanceAgent)
	require.NoError(t, err)
	assert.Len(t, agents, 4)

	tasks, err := m.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 5)

	task, err := m.GetTaskByTaskID(ctx, "MT-2023")
	require.NoError(t, err)
	assert.Equal(t, TaskInProgress, task.Status)

	orders, err := m.ListPurchaseOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.InDelta(t, 250.74, orders[0].TotalAmount, 0.001) // 2*85.5 + 3*12.25 + 3*14.33
}
