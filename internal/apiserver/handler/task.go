package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/common/dto"
)

// ListTasks returns all tasks with their apartment chain and assignee
// embedded. Query filters (apartmentId, status, type, assignedTo) combine.
func (h *Handler) ListTasks(c *gin.Context) {
	var filter database.TaskFilter

	if raw := c.Query("apartmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid apartmentId"})
			return
		}
		filter.ApartmentID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := database.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("type"); raw != "" {
		typ := database.TaskType(raw)
		filter.Type = &typ
	}
	if raw := c.Query("assignedTo"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignedTo"})
			return
		}
		filter.AssignedTo = &id
	}

	ctx := c.Request.Context()
	tasks, err := h.store.ListTasks(ctx, filter)
	if err != nil {
		h.respondStoreError(c, err, "tasks")
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, h.expandTask(ctx, t))
	}
	c.JSON(http.StatusOK, out)
}

// GetTask returns a single task with its apartment chain, assignee and
// material requirements embedded.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	task, err := h.store.GetTask(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "task")
		return
	}

	out := h.expandTask(ctx, task)
	materials, err := h.store.ListTaskMaterials(ctx, task.ID)
	if err != nil {
		h.respondStoreError(c, err, "task materials")
		return
	}
	expanded := make([]gin.H, 0, len(materials))
	for _, tm := range materials {
		expanded = append(expanded, h.expandTaskMaterial(ctx, tm))
	}
	out["materials"] = expanded
	c.JSON(http.StatusOK, out)
}

// CreateTask opens a maintenance task. The referenced apartment must exist
// and the human-readable task id must be unique.
func (h *Handler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetApartment(ctx, req.ApartmentID); err != nil {
		h.respondStoreError(c, err, "apartment")
		return
	}
	if _, err := h.store.GetTaskByTaskID(ctx, req.TaskID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "task id already exists"})
		return
	}

	task := &database.Task{
		TaskID:            req.TaskID,
		Type:              database.TaskType(req.Type),
		ApartmentID:       req.ApartmentID,
		Issue:             req.Issue,
		Description:       req.Description,
		ReportedBy:        req.ReportedBy,
		ScheduledFor:      req.ScheduledFor,
		AssignedTo:        req.AssignedTo,
		Priority:          database.TaskPriority(req.Priority),
		Status:            database.TaskStatus(req.Status),
		EstimatedDuration: req.EstimatedDuration,
	}
	if err := h.store.CreateTask(ctx, task); err != nil {
		h.respondStoreError(c, err, "task")
		return
	}
	if h.metrics != nil {
		h.metrics.TaskTransition(string(task.Type), string(task.Status))
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task. Transitioning to complete
// stamps completedAt and advances the apartment's lastMaintenance.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var upd database.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.store.UpdateTask(c.Request.Context(), id, upd)
	if err != nil {
		h.respondStoreError(c, err, "task")
		return
	}
	if h.metrics != nil && upd.Status != nil {
		h.metrics.TaskTransition(string(task.Type), string(task.Status))
	}
	c.JSON(http.StatusOK, task)
}

// UploadEvidence attaches photos to a task. Files arrive as multipart
// form-data under the "photos" field and are served back under /uploads.
func (h *Handler) UploadEvidence(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	task, err := h.store.GetTask(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "task")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no photos provided"})
		return
	}
	if len(files) > h.cfg.Upload.MaxPerBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d photos per upload", h.cfg.Upload.MaxPerBatch)})
		return
	}

	maxSize := h.cfg.Upload.MaxSizeMB << 20
	photos := task.EvidencePhotos
	for _, file := range files {
		if file.Size > maxSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s exceeds the %dMB limit", file.Filename, h.cfg.Upload.MaxSizeMB)})
			return
		}
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is not an image", file.Filename)})
			return
		}

		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Upload.Dir, name)); err != nil {
			h.logger.Error("failed to save upload", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
			return
		}
		photos = append(photos, "/uploads/"+name)
	}

	updated, err := h.store.UpdateTask(ctx, task.ID, database.TaskUpdate{EvidencePhotos: &photos})
	if err != nil {
		h.respondStoreError(c, err, "task")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListTaskMaterials returns the material requirements of a task
func (h *Handler) ListTaskMaterials(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetTask(ctx, id); err != nil {
		h.respondStoreError(c, err, "task")
		return
	}

	materials, err := h.store.ListTaskMaterials(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "task materials")
		return
	}
	out := make([]gin.H, 0, len(materials))
	for _, tm := range materials {
		out = append(out, h.expandTaskMaterial(ctx, tm))
	}
	c.JSON(http.StatusOK, out)
}

// CreateTaskMaterial records that a task needs a material
func (h *Handler) CreateTaskMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTaskMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.store.GetTask(ctx, id); err != nil {
		h.respondStoreError(c, err, "task")
		return
	}
	if _, err := h.store.GetMaterial(ctx, req.MaterialID); err != nil {
		h.respondStoreError(c, err, "material")
		return
	}

	tm := &database.TaskMaterial{
		TaskID:     id,
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
		Status:     database.TaskMaterialStatus(req.Status),
	}
	if err := h.store.CreateTaskMaterial(ctx, tm); err != nil {
		h.respondStoreError(c, err, "task material")
		return
	}
	c.JSON(http.StatusCreated, tm)
}

// UpdateTaskMaterial applies a partial update to a material requirement
func (h *Handler) UpdateTaskMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var upd database.TaskMaterialUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tm, err := h.store.UpdateTaskMaterial(c.Request.Context(), id, upd)
	if err != nil {
		h.respondStoreError(c, err, "task material")
		return
	}
	c.JSON(http.StatusOK, tm)
}
