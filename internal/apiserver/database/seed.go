package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// EnsureDefaultAdmin creates the bootstrap control-center user when the store
// has no user with that username yet. Used by the SQL backends, which start
// empty.
func EnsureDefaultAdmin(ctx context.Context, s Store, username, password string) error {
	if _, err := s.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.CreateUser(ctx, &User{
		Username: username,
		Password: string(hash),
		Name:     "System Administrator",
		Role:     RoleControlCenter,
	})
}

// SeedDemoData loads the demo dataset the in-memory backend starts with. All
// demo accounts share the password "password".
func SeedDemoData(ctx context.Context, s Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	pw := string(hash)

	users := []*User{
		{Username: "miguel", Password: pw, Name: "Miguel Rodriguez", Role: RoleControlCenter, Email: "miguel@airmaint.com"},
		{Username: "carlos", Password: pw, Name: "Carlos Ortiz", Role: RoleMaintenanceAgent, Email: "carlos@airmaint.com"},
		{Username: "ana", Password: pw, Name: "Ana Morales", Role: RoleMaintenanceAgent, Email: "ana@airmaint.com"},
		{Username: "roberto", Password: pw, Name: "Roberto Vega", Role: RoleMaintenanceAgent, Email: "roberto@airmaint.com"},
		{Username: "maria", Password: pw, Name: "Maria Jimenez", Role: RoleMaintenanceAgent, Email: "maria@airmaint.com"},
		{Username: "pedro", Password: pw, Name: "Pedro Sanchez", Role: RolePurchasingAgent, Email: "pedro@airmaint.com"},
	}
	for _, u := range users {
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	cities := []*City{
		{Name: "Mexico City", State: "CDMX"},
		{Name: "Cancún", State: "Quintana Roo"},
		{Name: "Guadalajara", State: "Jalisco"},
		{Name: "Monterrey", State: "Nuevo Leon"},
	}
	for _, c := range cities {
		if err := s.CreateCity(ctx, c); err != nil {
			return fmt.Errorf("seed city %s: %w", c.Name, err)
		}
	}

	buildings := []*Building{
		{Name: "Torre Blanca", Address: "Av. Reforma 123", CityID: cities[0].ID, TotalUnits: 50},
		{Name: "Vista del Mar", Address: "Blvd. Kukulcán 45", CityID: cities[1].ID, TotalUnits: 80},
		{Name: "Jardines", Address: "Av. Chapultepec 789", CityID: cities[2].ID, TotalUnits: 40},
		{Name: "Bosques", Address: "Paseo de los Robles 567", CityID: cities[3].ID, TotalUnits: 60},
		{Name: "Sol y Playa", Address: "Zona Hotelera 234", CityID: cities[1].ID, TotalUnits: 70},
	}
	for _, b := range buildings {
		if err := s.CreateBuilding(ctx, b); err != nil {
			return fmt.Errorf("seed building %s: %w", b.Name, err)
		}
	}

	apartments := []*Apartment{
		{ApartmentNumber: "203", BuildingID: buildings[0].ID, BedroomCount: 2, BathroomCount: 2, SquareMeters: 75},
		{ApartmentNumber: "310", BuildingID: buildings[1].ID, BedroomCount: 1, BathroomCount: 1, SquareMeters: 60},
		{ApartmentNumber: "512", BuildingID: buildings[2].ID, Status: ApartmentMaintenance, BedroomCount: 3, BathroomCount: 2, SquareMeters: 95},
		{ApartmentNumber: "721", BuildingID: buildings[3].ID, BedroomCount: 2, BathroomCount: 2, SquareMeters: 80},
		{ApartmentNumber: "118", BuildingID: buildings[4].ID, BedroomCount: 1, BathroomCount: 1, SquareMeters: 55},
	}
	for _, a := range apartments {
		if err := s.CreateApartment(ctx, a); err != nil {
			return fmt.Errorf("seed apartment %s: %w", a.ApartmentNumber, err)
		}
	}

	now := time.Now()
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	in := func(n int) *time.Time { t := now.AddDate(0, 0, n); return &t }
	past := func(n int) *time.Time { t := days(n); return &t }

	tasks := []*Task{
		{
			TaskID: "MT-2023", Type: TaskCorrective, ApartmentID: apartments[0].ID,
			Issue: "No hot water", Description: "Guest reported no hot water in the bathroom. Issue appeared this morning.",
			ReportedBy: "Guest (Maria Lopez)", ReportedAt: days(1), AssignedTo: &users[1].ID,
			Priority: PriorityHigh, Status: TaskInProgress, ScheduledFor: in(1),
		},
		{
			TaskID: "MT-2022", Type: TaskPreventive, ApartmentID: apartments[1].ID,
			Issue: "6-month review", Description: "Regular 6-month maintenance review",
			ReportedBy: "System", ReportedAt: days(3), AssignedTo: &users[2].ID,
			Priority: PriorityMedium, Status: TaskComplete, ScheduledFor: past(3), CompletedAt: past(3),
		},
		{
			TaskID: "MT-2021", Type: TaskCorrective, ApartmentID: apartments[2].ID,
			Issue: "Broken AC", Description: "Air conditioner is not cooling properly",
			ReportedBy: "Staff", ReportedAt: days(4), AssignedTo: &users[3].ID,
			Priority: PriorityHigh, Status: TaskComplete, ScheduledFor: past(4), CompletedAt: past(4),
		},
		{
			TaskID: "MT-2020", Type: TaskCorrective, ApartmentID: apartments[3].ID,
			Issue: "Electrical failure", Description: "Power outlets in living room not working",
			ReportedBy: "Guest", ReportedAt: days(5),
			Priority: PriorityHigh, Status: TaskPending, ScheduledFor: past(5),
		},
		{
			TaskID: "MT-2019", Type: TaskPreventive, ApartmentID: apartments[4].ID,
			Issue: "Annual maintenance", Description: "Annual maintenance check of all systems",
			ReportedBy: "System", ReportedAt: days(6), AssignedTo: &users[4].ID,
			Priority: PriorityLow, Status: TaskScheduled, ScheduledFor: in(3),
		},
	}
	for _, t := range tasks {
		if err := s.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("seed task %s: %w", t.TaskID, err)
		}
	}

	materials := []*Material{
		{Name: "Light bulb (LED)", Quantity: 50, Unit: "each"},
		{Name: "Water heater thermostat", Quantity: 5, Unit: "each"},
		{Name: "Paint (white, 4L)", Quantity: 20, Unit: "each"},
		{Name: "AC filter", Quantity: 30, Unit: "each"},
		{Name: "Electrical outlet", Quantity: 25, Unit: "each"},
		{Name: "Pipe sealant", Quantity: 10, Unit: "each"},
		{Name: "Connection valve", Quantity: 8, Unit: "each"},
	}
	for _, mat := range materials {
		if err := s.CreateMaterial(ctx, mat); err != nil {
			return fmt.Errorf("seed material %s: %w", mat.Name, err)
		}
	}

	taskMaterials := []*TaskMaterial{
		{TaskID: tasks[0].ID, MaterialID: materials[1].ID, Quantity: 1},
		{TaskID: tasks[0].ID, MaterialID: materials[5].ID, Quantity: 1},
		{TaskID: tasks[0].ID, MaterialID: materials[6].ID, Quantity: 1},
		{TaskID: tasks[1].ID, MaterialID: materials[0].ID, Quantity: 4, Status: MaterialReceived},
		{TaskID: tasks[1].ID, MaterialID: materials[2].ID, Quantity: 1, Status: MaterialReceived},
		{TaskID: tasks[2].ID, MaterialID: materials[3].ID, Quantity: 1, Status: MaterialReceived},
		{TaskID: tasks[4].ID, MaterialID: materials[0].ID, Quantity: 2, Status: MaterialOrdered},
		{TaskID: tasks[4].ID, MaterialID: materials[2].ID, Quantity: 1, Status: MaterialOrdered},
		{TaskID: tasks[4].ID, MaterialID: materials[3].ID, Quantity: 1, Status: MaterialOrdered},
	}
	for _, tm := range taskMaterials {
		if err := s.CreateTaskMaterial(ctx, tm); err != nil {
			return fmt.Errorf("seed task material: %w", err)
		}
	}

	orders := []*PurchaseOrder{
		{PONumber: "PO-001", CreatedBy: users[5].ID, Status: OrderSubmitted, Notes: "Emergency order for water heater parts"},
		{PONumber: "PO-002", CreatedBy: users[5].ID, Status: OrderReceived, Notes: "Monthly supply order"},
	}
	for _, po := range orders {
		if err := s.CreatePurchaseOrder(ctx, po); err != nil {
			return fmt.Errorf("seed purchase order %s: %w", po.PONumber, err)
		}
	}

	items := []*PurchaseOrderItem{
		{PurchaseOrderID: orders[0].ID, MaterialID: materials[1].ID, Quantity: 2, UnitPrice: 85.5},
		{PurchaseOrderID: orders[0].ID, MaterialID: materials[5].ID, Quantity: 3, UnitPrice: 12.25},
		{PurchaseOrderID: orders[0].ID, MaterialID: materials[6].ID, Quantity: 3, UnitPrice: 14.33},
		{PurchaseOrderID: orders[1].ID, MaterialID: materials[0].ID, Quantity: 20, UnitPrice: 4.75},
		{PurchaseOrderID: orders[1].ID, MaterialID: materials[2].ID, Quantity: 8, UnitPrice: 29.50},
		{PurchaseOrderID: orders[1].ID, MaterialID: materials[3].ID, Quantity: 15, UnitPrice: 16.75},
	}
	for _, item := range items {
		if err := s.CreatePurchaseOrderItem(ctx, item); err != nil {
			return fmt.Errorf("seed purchase order item: %w", err)
		}
	}

	return nil
}
