package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	e := newSeededEnv(t)

	w := e.do(t, "GET", "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)

	// Seeded tasks: 1 in_progress, 2 complete, 1 pending, 1 scheduled.
	assert.EqualValues(t, 3, stats["pendingTasks"])
	assert.EqualValues(t, 3, stats["correctiveTasks"])
	assert.EqualValues(t, 2, stats["preventiveTasks"])
	// One seeded apartment is under maintenance.
	assert.EqualValues(t, 4, stats["activeApartments"])

	byStatus := stats["tasksByStatus"].(map[string]any)
	assert.EqualValues(t, 1, byStatus["pending"])
	assert.EqualValues(t, 1, byStatus["inProgress"])
	assert.EqualValues(t, 1, byStatus["scheduled"])
	assert.EqualValues(t, 2, byStatus["complete"])
	assert.EqualValues(t, 0, byStatus["verified"])

	byCity := stats["tasksByCity"].([]any)
	require.Len(t, byCity, 4)
	total := 0.0
	for _, entry := range byCity {
		e := entry.(map[string]any)
		assert.NotEmpty(t, e["name"])
		total += e["count"].(float64)
	}
	assert.EqualValues(t, 5, total)

	recentTasks := stats["recentTasks"].([]any)
	require.Len(t, recentTasks, 5)
	first := recentTasks[0].(map[string]any)
	assert.Equal(t, "MT-2023", first["taskId"])
	_, hasApartment := first["apartment"].(map[string]any)
	assert.True(t, hasApartment)

	recentApartments := stats["recentApartments"].([]any)
	require.Len(t, recentApartments, 3)
	firstApt := recentApartments[0].(map[string]any)
	_, hasRecentTask := firstApt["recentTask"].(map[string]any)
	assert.True(t, hasRecentTask)
}

func TestDashboardStatsEmptyStore(t *testing.T) {
	e := newEmptyEnv(t)

	w := e.do(t, "GET", "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)

	assert.EqualValues(t, 0, stats["pendingTasks"])
	assert.EqualValues(t, 0, stats["activeApartments"])
	assert.Empty(t, stats["recentTasks"])
	assert.Empty(t, stats["recentApartments"])
}
