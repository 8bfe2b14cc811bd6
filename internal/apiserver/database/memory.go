package database

import (
	"context"
	"sync"
	"time"
)

// Memory implements Store with plain maps and per-entity counters. It exists
// as the fallback backend when no SQL database is reachable and as the test
// fixture. All access is serialized by one RWMutex, which also makes the
// task-completion cascade atomic on this backend.
type Memory struct {
	mu sync.RWMutex

	users              map[int64]User
	cities             map[int64]City
	buildings          map[int64]Building
	apartments         map[int64]Apartment
	tasks              map[int64]Task
	materials          map[int64]Material
	taskMaterials      map[int64]TaskMaterial
	purchaseOrders     map[int64]PurchaseOrder
	purchaseOrderItems map[int64]PurchaseOrderItem

	// next id per entity; ids are monotonic and never reused in-process
	nextID map[string]int64
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:              make(map[int64]User),
		cities:             make(map[int64]City),
		buildings:          make(map[int64]Building),
		apartments:         make(map[int64]Apartment),
		tasks:              make(map[int64]Task),
		materials:          make(map[int64]Material),
		taskMaterials:      make(map[int64]TaskMaterial),
		purchaseOrders:     make(map[int64]PurchaseOrder),
		purchaseOrderItems: make(map[int64]PurchaseOrderItem),
		nextID:             make(map[string]int64),
	}
}

// NewSeededMemory creates an in-memory store loaded with the demo dataset
func NewSeededMemory() (*Memory, error) {
	m := NewMemory()
	if err := SeedDemoData(context.Background(), m); err != nil {
		return nil, err
	}
	return m, nil
}

// Close is a no-op for the memory backend
func (m *Memory) Close() error { return nil }

func (m *Memory) allocID(entity string) int64 {
	m.nextID[entity]++
	return m.nextID[entity]
}

func (m *Memory) GetUser(_ context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*User, 0, len(m.users))
	for id := int64(1); id <= m.nextID["user"]; id++ {
		if u, ok := m.users[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

func (m *Memory) ListUsersByRole(ctx context.Context, role UserRole) ([]*User, error) {
	users, _ := m.ListUsers(ctx)
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Memory) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.allocID("user")
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) GetCity(_ context.Context, id int64) (*City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListCities(_ context.Context) ([]*City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*City, 0, len(m.cities))
	for id := int64(1); id <= m.nextID["city"]; id++ {
		if c, ok := m.cities[id]; ok {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *Memory) CreateCity(_ context.Context, city *City) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizeNewCity(city)
	city.ID = m.allocID("city")
	m.cities[city.ID] = *city
	return nil
}

func (m *Memory) GetBuilding(_ context.Context, id int64) (*Building, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.buildings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *Memory) ListBuildings(_ context.Context, cityID *int64) ([]*Building, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Building, 0, len(m.buildings))
	for id := int64(1); id <= m.nextID["building"]; id++ {
		b, ok := m.buildings[id]
		if !ok {
			continue
		}
		if cityID != nil && b.CityID != *cityID {
			continue
		}
		out = append(out, &b)
	}
	return out, nil
}

func (m *Memory) CreateBuilding(_ context.Context, building *Building) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	building.ID = m.allocID("building")
	m.buildings[building.ID] = *building
	return nil
}

func (m *Memory) GetApartment(_ context.Context, id int64) (*Apartment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.apartments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *Memory) ListApartments(_ context.Context, buildingID *int64) ([]*Apartment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Apartment, 0, len(m.apartments))
	for id := int64(1); id <= m.nextID["apartment"]; id++ {
		a, ok := m.apartments[id]
		if !ok {
			continue
		}
		if buildingID != nil && a.BuildingID != *buildingID {
			continue
		}
		out = append(out, &a)
	}
	return out, nil
}

func (m *Memory) CreateApartment(_ context.Context, apartment *Apartment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizeNewApartment(apartment, time.Now())
	apartment.ID = m.allocID("apartment")
	m.apartments[apartment.ID] = *apartment
	return nil
}

func (m *Memory) UpdateApartment(_ context.Context, id int64, upd ApartmentUpdate) (*Apartment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apartments[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.apply(&a)
	m.apartments[id] = a
	return &a, nil
}

func (m *Memory) GetTask(_ context.Context, id int64) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) GetTaskByTaskID(_ context.Context, taskID string) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tasks {
		if t.TaskID == taskID {
			t := t
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListTasks(_ context.Context, filter TaskFilter) ([]*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Task, 0, len(m.tasks))
	for id := int64(1); id <= m.nextID["task"]; id++ {
		t, ok := m.tasks[id]
		if !ok {
			continue
		}
		if filter.ApartmentID != nil && t.ApartmentID != *filter.ApartmentID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
			continue
		}
		out = append(out, &t)
	}
	return out, nil
}

func (m *Memory) CreateTask(_ context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizeNewTask(task, time.Now())
	task.ID = m.allocID("task")
	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) UpdateTask(_ context.Context, id int64, upd TaskUpdate) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	completing := upd.Status != nil && *upd.Status == TaskComplete && t.CompletedAt == nil
	upd.apply(&t)

	if completing {
		now := time.Now()
		t.CompletedAt = &now
		if a, ok := m.apartments[t.ApartmentID]; ok {
			a.LastMaintenance = &now
			m.apartments[a.ID] = a
		}
	}

	m.tasks[id] = t
	return &t, nil
}

func (m *Memory) GetMaterial(_ context.Context, id int64) (*Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mat, ok := m.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &mat, nil
}

func (m *Memory) ListMaterials(_ context.Context) ([]*Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Material, 0, len(m.materials))
	for id := int64(1); id <= m.nextID["material"]; id++ {
		if mat, ok := m.materials[id]; ok {
			mat := mat
			out = append(out, &mat)
		}
	}
	return out, nil
}

func (m *Memory) CreateMaterial(_ context.Context, material *Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	material.ID = m.allocID("material")
	m.materials[material.ID] = *material
	return nil
}

func (m *Memory) UpdateMaterial(_ context.Context, id int64, upd MaterialUpdate) (*Material, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mat, ok := m.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.apply(&mat)
	m.materials[id] = mat
	return &mat, nil
}

func (m *Memory) GetTaskMaterial(_ context.Context, id int64) (*TaskMaterial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tm, ok := m.taskMaterials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &tm, nil
}

func (m *Memory) ListTaskMaterials(_ context.Context, taskID int64) ([]*TaskMaterial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*TaskMaterial, 0)
	for id := int64(1); id <= m.nextID["task_material"]; id++ {
		tm, ok := m.taskMaterials[id]
		if !ok || tm.TaskID != taskID {
			continue
		}
		out = append(out, &tm)
	}
	return out, nil
}

func (m *Memory) CreateTaskMaterial(_ context.Context, tm *TaskMaterial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizeNewTaskMaterial(tm)
	tm.ID = m.allocID("task_material")
	m.taskMaterials[tm.ID] = *tm
	return nil
}

func (m *Memory) UpdateTaskMaterial(_ context.Context, id int64, upd TaskMaterialUpdate) (*TaskMaterial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tm, ok := m.taskMaterials[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.apply(&tm)
	m.taskMaterials[id] = tm
	return &tm, nil
}

func (m *Memory) GetPurchaseOrder(_ context.Context, id int64) (*PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	po, ok := m.purchaseOrders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &po, nil
}

func (m *Memory) ListPurchaseOrders(_ context.Context) ([]*PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*PurchaseOrder, 0, len(m.purchaseOrders))
	for id := int64(1); id <= m.nextID["purchase_order"]; id++ {
		if po, ok := m.purchaseOrders[id]; ok {
			po := po
			out = append(out, &po)
		}
	}
	return out, nil
}

func (m *Memory) CreatePurchaseOrder(_ context.Context, po *PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalizeNewPurchaseOrder(po, time.Now())
	po.ID = m.allocID("purchase_order")
	m.purchaseOrders[po.ID] = *po
	return nil
}

func (m *Memory) UpdatePurchaseOrder(_ context.Context, id int64, upd PurchaseOrderUpdate) (*PurchaseOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.purchaseOrders[id]
	if !ok {
		return nil, ErrNotFound
	}
	upd.apply(&po)
	m.purchaseOrders[id] = po
	return &po, nil
}

func (m *Memory) ListPurchaseOrderItems(_ context.Context, purchaseOrderID int64) ([]*PurchaseOrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*PurchaseOrderItem, 0)
	for id := int64(1); id <= m.nextID["purchase_order_item"]; id++ {
		item, ok := m.purchaseOrderItems[id]
		if !ok || item.PurchaseOrderID != purchaseOrderID {
			continue
		}
		out = append(out, &item)
	}
	return out, nil
}

func (m *Memory) CreatePurchaseOrderItem(_ context.Context, item *PurchaseOrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.purchaseOrders[item.PurchaseOrderID]
	if !ok {
		return ErrNotFound
	}

	item.TotalPrice = float64(item.Quantity) * item.UnitPrice
	item.ID = m.allocID("purchase_order_item")
	m.purchaseOrderItems[item.ID] = *item

	var total float64
	for _, it := range m.purchaseOrderItems {
		if it.PurchaseOrderID == item.PurchaseOrderID {
			total += it.TotalPrice
		}
	}
	po.TotalAmount = total
	m.purchaseOrders[po.ID] = po
	return nil
}
