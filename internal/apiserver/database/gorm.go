package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// gormStore implements Store on top of a gorm connection. The SQL backends
// (sqlite, postgres, mysql) differ only in how the connection is opened.
type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) (*gormStore, error) {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (s *gormStore) ListUsersByRole(ctx context.Context, role UserRole) ([]*User, error) {
	var users []*User
	err := s.db.WithContext(ctx).Where("role = ?", role).Order("id asc").Find(&users).Error
	return users, err
}

func (s *gormStore) CreateUser(ctx context.Context, user *User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) GetCity(ctx context.Context, id int64) (*City, error) {
	var city City
	if err := s.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, translate(err)
	}
	return &city, nil
}

func (s *gormStore) ListCities(ctx context.Context) ([]*City, error) {
	var cities []*City
	err := s.db.WithContext(ctx).Order("id asc").Find(&cities).Error
	return cities, err
}

func (s *gormStore) CreateCity(ctx context.Context, city *City) error {
	normalizeNewCity(city)
	return s.db.WithContext(ctx).Create(city).Error
}

func (s *gormStore) GetBuilding(ctx context.Context, id int64) (*Building, error) {
	var building Building
	if err := s.db.WithContext(ctx).First(&building, id).Error; err != nil {
		return nil, translate(err)
	}
	return &building, nil
}

func (s *gormStore) ListBuildings(ctx context.Context, cityID *int64) ([]*Building, error) {
	q := s.db.WithContext(ctx).Order("id asc")
	if cityID != nil {
		q = q.Where("city_id = ?", *cityID)
	}
	var buildings []*Building
	err := q.Find(&buildings).Error
	return buildings, err
}

func (s *gormStore) CreateBuilding(ctx context.Context, building *Building) error {
	return s.db.WithContext(ctx).Create(building).Error
}

func (s *gormStore) GetApartment(ctx context.Context, id int64) (*Apartment, error) {
	var apartment Apartment
	if err := s.db.WithContext(ctx).First(&apartment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &apartment, nil
}

func (s *gormStore) ListApartments(ctx context.Context, buildingID *int64) ([]*Apartment, error) {
	q := s.db.WithContext(ctx).Order("id asc")
	if buildingID != nil {
		q = q.Where("building_id = ?", *buildingID)
	}
	var apartments []*Apartment
	err := q.Find(&apartments).Error
	return apartments, err
}

func (s *gormStore) CreateApartment(ctx context.Context, apartment *Apartment) error {
	normalizeNewApartment(apartment, time.Now())
	return s.db.WithContext(ctx).Create(apartment).Error
}

func (s *gormStore) UpdateApartment(ctx context.Context, id int64, upd ApartmentUpdate) (*Apartment, error) {
	var apartment Apartment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&apartment, id).Error; err != nil {
			return translate(err)
		}
		upd.apply(&apartment)
		return tx.Save(&apartment).Error
	})
	if err != nil {
		return nil, err
	}
	return &apartment, nil
}

func (s *gormStore) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := s.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (s *gormStore) GetTaskByTaskID(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	err := s.db.WithContext(ctx).Where("task_id = ?", taskID).First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (s *gormStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error) {
	q := s.db.WithContext(ctx).Order("id asc")
	if filter.ApartmentID != nil {
		q = q.Where("apartment_id = ?", *filter.ApartmentID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}
	var tasks []*Task
	err := q.Find(&tasks).Error
	return tasks, err
}

func (s *gormStore) CreateTask(ctx context.Context, task *Task) error {
	normalizeNewTask(task, time.Now())
	return s.db.WithContext(ctx).Create(task).Error
}

// UpdateTask merges the partial update and, on the first transition into
// "complete", stamps completedAt and propagates it to the owning apartment's
// lastMaintenance. Both writes share one transaction.
func (s *gormStore) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*Task, error) {
	var task Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, id).Error; err != nil {
			return translate(err)
		}

		completing := upd.Status != nil && *upd.Status == TaskComplete && task.CompletedAt == nil
		upd.apply(&task)

		if completing {
			now := time.Now()
			task.CompletedAt = &now
			err := tx.Model(&Apartment{}).
				Where("id = ?", task.ApartmentID).
				Update("last_maintenance", now).Error
			if err != nil {
				return err
			}
		}

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *gormStore) GetMaterial(ctx context.Context, id int64) (*Material, error) {
	var material Material
	if err := s.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, translate(err)
	}
	return &material, nil
}

func (s *gormStore) ListMaterials(ctx context.Context) ([]*Material, error) {
	var materials []*Material
	err := s.db.WithContext(ctx).Order("id asc").Find(&materials).Error
	return materials, err
}

func (s *gormStore) CreateMaterial(ctx context.Context, material *Material) error {
	return s.db.WithContext(ctx).Create(material).Error
}

func (s *gormStore) UpdateMaterial(ctx context.Context, id int64, upd MaterialUpdate) (*Material, error) {
	var material Material
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&material, id).Error; err != nil {
			return translate(err)
		}
		upd.apply(&material)
		return tx.Save(&material).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *gormStore) GetTaskMaterial(ctx context.Context, id int64) (*TaskMaterial, error) {
	var tm TaskMaterial
	if err := s.db.WithContext(ctx).First(&tm, id).Error; err != nil {
		return nil, translate(err)
	}
	return &tm, nil
}

func (s *gormStore) ListTaskMaterials(ctx context.Context, taskID int64) ([]*TaskMaterial, error) {
	var tms []*TaskMaterial
	err := s.db.WithContext(ctx).Where("task_id = ?", taskID).Order("id asc").Find(&tms).Error
	return tms, err
}

func (s *gormStore) CreateTaskMaterial(ctx context.Context, tm *TaskMaterial) error {
	normalizeNewTaskMaterial(tm)
	return s.db.WithContext(ctx).Create(tm).Error
}

func (s *gormStore) UpdateTaskMaterial(ctx context.Context, id int64, upd TaskMaterialUpdate) (*TaskMaterial, error) {
	var tm TaskMaterial
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tm, id).Error; err != nil {
			return translate(err)
		}
		upd.apply(&tm)
		return tx.Save(&tm).Error
	})
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func (s *gormStore) GetPurchaseOrder(ctx context.Context, id int64) (*PurchaseOrder, error) {
	var po PurchaseOrder
	if err := s.db.WithContext(ctx).First(&po, id).Error; err != nil {
		return nil, translate(err)
	}
	return &po, nil
}

func (s *gormStore) ListPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error) {
	var pos []*PurchaseOrder
	err := s.db.WithContext(ctx).Order("id asc").Find(&pos).Error
	return pos, err
}

func (s *gormStore) CreatePurchaseOrder(ctx context.Context, po *PurchaseOrder) error {
	normalizeNewPurchaseOrder(po, time.Now())
	return s.db.WithContext(ctx).Create(po).Error
}

func (s *gormStore) UpdatePurchaseOrder(ctx context.Context, id int64, upd PurchaseOrderUpdate) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&po, id).Error; err != nil {
			return translate(err)
		}
		upd.apply(&po)
		return tx.Save(&po).Error
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (s *gormStore) ListPurchaseOrderItems(ctx context.Context, purchaseOrderID int64) ([]*PurchaseOrderItem, error) {
	var items []*PurchaseOrderItem
	err := s.db.WithContext(ctx).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("id asc").
		Find(&items).Error
	return items, err
}

// CreatePurchaseOrderItem inserts the item with its line total recomputed and
// refreshes the owning order's totalAmount in the same transaction.
func (s *gormStore) CreatePurchaseOrderItem(ctx context.Context, item *PurchaseOrderItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po PurchaseOrder
		if err := tx.First(&po, item.PurchaseOrderID).Error; err != nil {
			return translate(err)
		}

		item.TotalPrice = float64(item.Quantity) * item.UnitPrice
		if err := tx.Create(item).Error; err != nil {
			return err
		}

		var total float64
		err := tx.Model(&PurchaseOrderItem{}).
			Where("purchase_order_id = ?", item.PurchaseOrderID).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&total).Error
		if err != nil {
			return err
		}

		return tx.Model(&PurchaseOrder{}).
			Where("id = ?", item.PurchaseOrderID).
			Update("total_amount", total).Error
	})
}
