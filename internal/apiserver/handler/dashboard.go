package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/airmaint/airmaint/internal/apiserver/database"
)

// DashboardStats aggregates the numbers behind the operations dashboard:
// open-task and apartment counts, task breakdowns by status and by city, the
// five most recently reported tasks and the three most recently maintained
// apartments.
func (h *Handler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	tasks, err := h.store.ListTasks(ctx, database.TaskFilter{})
	if err != nil {
		h.respondStoreError(c, err, "tasks")
		return
	}
	apartments, err := h.store.ListApartments(ctx, nil)
	if err != nil {
		h.respondStoreError(c, err, "apartments")
		return
	}
	cities, err := h.store.ListCities(ctx)
	if err != nil {
		h.respondStoreError(c, err, "cities")
		return
	}

	var pendingTasks, correctiveTasks, preventiveTasks int
	byStatus := map[database.TaskStatus]int{}
	for _, t := range tasks {
		switch t.Status {
		case database.TaskPending, database.TaskInProgress, database.TaskScheduled:
			pendingTasks++
		}
		switch t.Type {
		case database.TaskCorrective:
			correctiveTasks++
		case database.TaskPreventive:
			preventiveTasks++
		}
		byStatus[t.Status]++
	}

	activeApartments := 0
	for _, a := range apartments {
		if a.Status == database.ApartmentActive {
			activeApartments++
		}
	}

	// Count tasks per city by walking apartment -> building -> city.
	cityCounts := make(map[int64]int, len(cities))
	for _, t := range tasks {
		apartment, err := h.store.GetApartment(ctx, t.ApartmentID)
		if err != nil {
			continue
		}
		building, err := h.store.GetBuilding(ctx, apartment.BuildingID)
		if err != nil {
			continue
		}
		cityCounts[building.CityID]++
	}
	tasksByCity := make([]gin.H, 0, len(cities))
	for _, city := range cities {
		tasksByCity = append(tasksByCity, gin.H{
			"id":    city.ID,
			"name":  city.Name,
			"count": cityCounts[city.ID],
		})
	}

	recent := make([]*database.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ReportedAt.After(recent[j].ReportedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentTasks := make([]gin.H, 0, len(recent))
	for _, t := range recent {
		recentTasks = append(recentTasks, h.expandTask(ctx, t))
	}

	maintained := make([]*database.Apartment, 0, len(apartments))
	for _, a := range apartments {
		if a.LastMaintenance != nil {
			maintained = append(maintained, a)
		}
	}
	sort.SliceStable(maintained, func(i, j int) bool {
		return maintained[i].LastMaintenance.After(*maintained[j].LastMaintenance)
	})
	if len(maintained) > 3 {
		maintained = maintained[:3]
	}
	recentApartments := make([]gin.H, 0, len(maintained))
	for _, a := range maintained {
		entry := h.expandApartment(ctx, a)
		aptTasks, err := h.store.ListTasks(ctx, database.TaskFilter{ApartmentID: &a.ID})
		if err == nil && len(aptTasks) > 0 {
			sort.SliceStable(aptTasks, func(i, j int) bool {
				return aptTasks[i].ReportedAt.After(aptTasks[j].ReportedAt)
			})
			entry["recentTask"] = aptTasks[0]
		} else {
			entry["recentTask"] = nil
		}
		recentApartments = append(recentApartments, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"pendingTasks":     pendingTasks,
		"correctiveTasks":  correctiveTasks,
		"preventiveTasks":  preventiveTasks,
		"activeApartments": activeApartments,
		"tasksByStatus": gin.H{
			"pending":    byStatus[database.TaskPending],
			"inProgress": byStatus[database.TaskInProgress],
			"scheduled":  byStatus[database.TaskScheduled],
			"complete":   byStatus[database.TaskComplete],
			"verified":   byStatus[database.TaskVerified],
		},
		"tasksByCity":      tasksByCity,
		"recentTasks":      recentTasks,
		"recentApartments": recentApartments,
	})
}
