package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airmaint/airmaint/internal/common/dto"
)

func TestListCities(t *testing.T) {
	e := newSeededEnv(t)
	w := e.do(t, "GET", "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cities := decode[[]map[string]any](t, w)
	require.Len(t, cities, 4)
	assert.Equal(t, "Mexico City", cities[0]["name"])
	assert.Equal(t, "Mexico", cities[0]["country"])
}

func TestListBuildingsByCity(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/buildings?cityId=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	buildings := decode[[]map[string]any](t, w)
	require.Len(t, buildings, 2) // Cancún has two seeded buildings

	w = e.do(t, "GET", "/api/buildings", nil)
	buildings = decode[[]map[string]any](t, w)
	assert.Len(t, buildings, 5)

	w = e.do(t, "GET", "/api/buildings?cityId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBuildingUnknownCity(t *testing.T) {
	e := newSeededEnv(t)
	w := e.do(t, "POST", "/api/buildings", dto.CreateBuildingRequest{
		Name: "Ghost", Address: "Nowhere 1", CityID: 999, TotalUnits: 5,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListApartmentsExpanded(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/apartments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	apartments := decode[[]map[string]any](t, w)
	require.Len(t, apartments, 5)

	building, ok := apartments[0]["building"].(map[string]any)
	require.True(t, ok)
	city, ok := building["city"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Mexico City", city["name"])

	w = e.do(t, "GET", "/api/apartments?buildingId=2", nil)
	apartments = decode[[]map[string]any](t, w)
	require.Len(t, apartments, 1)
	assert.Equal(t, "310", apartments[0]["apartmentNumber"])
}

func TestUpdateApartmentStatus(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "PATCH", "/api/apartments/1", map[string]string{"status": "maintenance"})
	require.Equal(t, http.StatusOK, w.Code)
	apt := decode[map[string]any](t, w)
	assert.Equal(t, "maintenance", apt["status"])
	// Untouched fields survive a partial update.
	assert.Equal(t, "203", apt["apartmentNumber"])

	w = e.do(t, "PATCH", "/api/apartments/999", map[string]string{"status": "active"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialInventory(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/materials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	materials := decode[[]map[string]any](t, w)
	require.Len(t, materials, 7)

	w = e.do(t, "POST", "/api/materials", dto.CreateMaterialRequest{Name: "Door hinge", Quantity: 12, Unit: "each"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[map[string]any](t, w)

	w = e.do(t, "PATCH", fmt.Sprintf("/api/materials/%d", int64(created["id"].(float64))), map[string]int{"quantity": 9})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 9, decode[map[string]any](t, w)["quantity"])
}

func TestUserEndpoints(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]map[string]any](t, w)
	require.Len(t, users, 6)
	assert.NotContains(t, w.Body.String(), `"password"`)

	w = e.do(t, "GET", "/api/users/role/purchasing_agent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users = decode[[]map[string]any](t, w)
	require.Len(t, users, 1)
	assert.Equal(t, "pedro", users[0]["username"])

	// The query form is kept as a convenience alias.
	w = e.do(t, "GET", "/api/users?role=purchasing_agent", nil)
	users = decode[[]map[string]any](t, w)
	require.Len(t, users, 1)

	w = e.do(t, "GET", "/api/users/role/unknown_role", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 0)

	w = e.do(t, "POST", "/api/users", dto.CreateUserRequest{
		Username: "lucia", Password: "secret123", Name: "Lucia Flores", Role: "maintenance_agent",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret123")

	// Duplicate usernames are rejected.
	w = e.do(t, "POST", "/api/users", dto.CreateUserRequest{
		Username: "lucia", Password: "secret123", Name: "Lucia Flores", Role: "maintenance_agent",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown roles are rejected by binding.
	w = e.do(t, "POST", "/api/users", dto.CreateUserRequest{
		Username: "eve", Password: "secret123", Name: "Eve", Role: "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
