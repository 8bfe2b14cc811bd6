package database

import "time"

// Typed partial updates. Each type enumerates exactly the fields a PATCH may
// change; nil pointers leave the stored value alone. Timestamps owned by the
// store (completedAt, reportedAt, createdAt) are deliberately absent.

// ApartmentUpdate is the mutable subset of Apartment
type ApartmentUpdate struct {
	ApartmentNumber *string          `json:"apartmentNumber"`
	BuildingID      *int64           `json:"buildingId"`
	Status          *ApartmentStatus `json:"status"`
	LastMaintenance *time.Time       `json:"lastMaintenance"`
	NextMaintenance *time.Time       `json:"nextMaintenance"`
	BedroomCount    *int             `json:"bedroomCount"`
	BathroomCount   *int             `json:"bathroomCount"`
	SquareMeters    *float64         `json:"squareMeters"`
	Notes           *string          `json:"notes"`
	ImageURL        *string          `json:"imageUrl"`
}

func (u ApartmentUpdate) apply(a *Apartment) {
	if u.ApartmentNumber != nil {
		a.ApartmentNumber = *u.ApartmentNumber
	}
	if u.BuildingID != nil {
		a.BuildingID = *u.BuildingID
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.LastMaintenance != nil {
		a.LastMaintenance = u.LastMaintenance
	}
	if u.NextMaintenance != nil {
		a.NextMaintenance = u.NextMaintenance
	}
	if u.BedroomCount != nil {
		a.BedroomCount = *u.BedroomCount
	}
	if u.BathroomCount != nil {
		a.BathroomCount = *u.BathroomCount
	}
	if u.SquareMeters != nil {
		a.SquareMeters = *u.SquareMeters
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	if u.ImageURL != nil {
		a.ImageURL = *u.ImageURL
	}
}

// TaskUpdate is the mutable subset of Task. Transitioning Status to
// "complete" makes the store stamp CompletedAt (first transition only) and
// propagate it to the owning apartment's lastMaintenance.
type TaskUpdate struct {
	Type              *TaskType     `json:"type"`
	Issue             *string       `json:"issue"`
	Description       *string       `json:"description"`
	ReportedBy        *string       `json:"reportedBy"`
	ScheduledFor      *time.Time    `json:"scheduledFor"`
	AssignedTo        *int64        `json:"assignedTo"`
	Priority          *TaskPriority `json:"priority"`
	Status            *TaskStatus   `json:"status"`
	EstimatedDuration *string       `json:"estimatedDuration"`
	VerifiedBy        *int64        `json:"verifiedBy"`
	VerifiedAt        *time.Time    `json:"verifiedAt"`
	EvidencePhotos    *PhotoList    `json:"evidencePhotos"`
}

func (u TaskUpdate) apply(t *Task) {
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Issue != nil {
		t.Issue = *u.Issue
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.ReportedBy != nil {
		t.ReportedBy = *u.ReportedBy
	}
	if u.ScheduledFor != nil {
		t.ScheduledFor = u.ScheduledFor
	}
	if u.AssignedTo != nil {
		t.AssignedTo = u.AssignedTo
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.EstimatedDuration != nil {
		t.EstimatedDuration = *u.EstimatedDuration
	}
	if u.VerifiedBy != nil {
		t.VerifiedBy = u.VerifiedBy
	}
	if u.VerifiedAt != nil {
		t.VerifiedAt = u.VerifiedAt
	}
	if u.EvidencePhotos != nil {
		t.EvidencePhotos = *u.EvidencePhotos
	}
}

// MaterialUpdate is the mutable subset of Material
type MaterialUpdate struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Unit     *string `json:"unit"`
	Notes    *string `json:"notes"`
}

func (u MaterialUpdate) apply(m *Material) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Quantity != nil {
		m.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		m.Unit = *u.Unit
	}
	if u.Notes != nil {
		m.Notes = *u.Notes
	}
}

// TaskMaterialUpdate is the mutable subset of TaskMaterial
type TaskMaterialUpdate struct {
	Quantity *int                `json:"quantity"`
	Status   *TaskMaterialStatus `json:"status"`
}

func (u TaskMaterialUpdate) apply(tm *TaskMaterial) {
	if u.Quantity != nil {
		tm.Quantity = *u.Quantity
	}
	if u.Status != nil {
		tm.Status = *u.Status
	}
}

// PurchaseOrderUpdate is the mutable subset of PurchaseOrder. TotalAmount is
// store-computed from line items and cannot be patched directly.
type PurchaseOrderUpdate struct {
	Status *PurchaseOrderStatus `json:"status"`
	Notes  *string              `json:"notes"`
}

func (u PurchaseOrderUpdate) apply(po *PurchaseOrder) {
	if u.Status != nil {
		po.Status = *u.Status
	}
	if u.Notes != nil {
		po.Notes = *u.Notes
	}
}
