package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airmaint/airmaint/internal/common/dto"
)

// TestMaintenanceWorkflow walks the whole chain: city, building, apartment,
// corrective task, completion, and checks the maintenance dates moved.
func TestMaintenanceWorkflow(t *testing.T) {
	e := newEmptyEnv(t)

	w := e.do(t, "POST", "/api/cities", dto.CreateCityRequest{Name: "Testville", State: "TS"})
	require.Equal(t, http.StatusCreated, w.Code)
	city := decode[map[string]any](t, w)

	w = e.do(t, "POST", "/api/buildings", dto.CreateBuildingRequest{
		Name: "Test Tower", Address: "Calle 1", CityID: int64(city["id"].(float64)), TotalUnits: 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	building := decode[map[string]any](t, w)

	w = e.do(t, "POST", "/api/apartments", dto.CreateApartmentRequest{
		ApartmentNumber: "101", BuildingID: int64(building["id"].(float64)),
		BedroomCount: 2, BathroomCount: 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	apartment := decode[map[string]any](t, w)
	assert.Equal(t, "active", apartment["status"])
	aptID := int64(apartment["id"].(float64))

	w = e.do(t, "POST", "/api/tasks", dto.CreateTaskRequest{
		TaskID: "MT-3001", Type: "corrective", ApartmentID: aptID, Issue: "Leaking faucet",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode[map[string]any](t, w)
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, "medium", task["priority"])
	assert.Nil(t, task["completedAt"])
	taskID := int64(task["id"].(float64))

	w = e.do(t, "PATCH", fmt.Sprintf("/api/tasks/%d", taskID), map[string]string{"status": "complete"})
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[map[string]any](t, w)
	assert.Equal(t, "complete", done["status"])
	require.NotNil(t, done["completedAt"])

	w = e.do(t, "GET", fmt.Sprintf("/api/apartments/%d", aptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)
	assert.Equal(t, done["completedAt"], got["lastMaintenance"])

	tasks, ok := got["tasks"].([]any)
	require.True(t, ok)
	assert.Len(t, tasks, 1)
}

func TestListTasksExpandsRelations(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode[[]map[string]any](t, w)
	require.Len(t, tasks, 5)

	first := tasks[0]
	apartment, ok := first["apartment"].(map[string]any)
	require.True(t, ok)
	building, ok := apartment["building"].(map[string]any)
	require.True(t, ok)
	_, ok = building["city"].(map[string]any)
	require.True(t, ok)

	assigned, ok := first["assignedUser"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, assigned["username"])
	assert.NotContains(t, w.Body.String(), `"password"`)
}

func TestListTasksFiltersCombine(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/tasks?type=preventive&status=scheduled", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode[[]map[string]any](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, "MT-2019", tasks[0]["taskId"])

	w = e.do(t, "GET", "/api/tasks?type=preventive", nil)
	tasks = decode[[]map[string]any](t, w)
	assert.Len(t, tasks, 2)

	w = e.do(t, "GET", "/api/tasks?status=complete", nil)
	tasks = decode[[]map[string]any](t, w)
	assert.Len(t, tasks, 2)
}

func TestGetTaskIncludesMaterials(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := decode[map[string]any](t, w)
	materials, ok := task["materials"].([]any)
	require.True(t, ok)
	require.Len(t, materials, 3)
	line := materials[0].(map[string]any)
	_, ok = line["material"].(map[string]any)
	assert.True(t, ok)
}

func TestCreateTaskValidation(t *testing.T) {
	e := newSeededEnv(t)

	// Unknown apartment.
	w := e.do(t, "POST", "/api/tasks", dto.CreateTaskRequest{
		TaskID: "MT-9999", Type: "corrective", ApartmentID: 999, Issue: "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Duplicate human-readable id.
	w = e.do(t, "POST", "/api/tasks", dto.CreateTaskRequest{
		TaskID: "MT-2023", Type: "corrective", ApartmentID: 1, Issue: "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bad enum value is rejected by binding.
	w = e.do(t, "POST", "/api/tasks", map[string]any{
		"taskId": "MT-9998", "type": "destructive", "apartmentId": 1, "issue": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskMaterialLifecycle(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "POST", "/api/tasks/1/materials", dto.CreateTaskMaterialRequest{MaterialID: 1, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code)
	tm := decode[map[string]any](t, w)
	assert.Equal(t, "needed", tm["status"])
	id := int64(tm["id"].(float64))

	w = e.do(t, "PATCH", fmt.Sprintf("/api/task-materials/%d", id), map[string]string{"status": "ordered"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, "ordered", updated["status"])

	w = e.do(t, "GET", "/api/tasks/1/materials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	assert.Len(t, list, 4) // 3 seeded + 1 new
}

func multipartPhoto(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadEvidence(t *testing.T) {
	e := newSeededEnv(t)

	body, contentType := multipartPhoto(t, "photos", "leak.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	req := httptest.NewRequest("POST", "/api/tasks/1/evidence", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	task := decode[map[string]any](t, w)
	photos, ok := task["evidencePhotos"].([]any)
	require.True(t, ok)
	require.Len(t, photos, 1)
	assert.Contains(t, photos[0].(string), "/uploads/")
}

func TestUploadEvidenceRejectsNonImage(t *testing.T) {
	e := newSeededEnv(t)

	body, contentType := multipartPhoto(t, "photos", "notes.txt", "text/plain", []byte("not an image"))
	req := httptest.NewRequest("POST", "/api/tasks/1/evidence", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
