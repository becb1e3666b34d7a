package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pizza-club-api/models"
	"pizza-club-api/schedule"
	"pizza-club-api/statemachine"
)

// GetMenu returns the active pizza catalog (public)
func GetMenu(c *gin.Context) {
	var pizzas []models.Pizza
	query := db.Where("is_active = ?", true)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query.Order("name asc").Find(&pizzas)
	c.JSON(http.StatusOK, gin.H{"count": len(pizzas), "menu": pizzas})
}

// GetNights returns the currently offerable nights: the upcoming Friday and
// Saturday pair, rolled forward once the weekend is spent.
func GetNights(c *gin.Context) {
	refs := schedule.CurrentNights(time.Now(), roster)

	out := make([]gin.H, 0, len(refs))
	for _, ref := range refs {
		entry := gin.H{"date": ref.Date, "day": ref.Day, "provisioned": false}
		var night models.Night
		if err := db.Where("date = ? AND is_active = ?", ref.Date, true).First(&night).Error; err == nil {
			entry["provisioned"] = true
			entry["night_id"] = night.ID
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "nights": out})
}

// GetNightSlots returns the bookable slots for a night (public). The list is
// a snapshot: submission re-verifies the chosen slot, so a stale render can
// never double-book.
func GetNightSlots(c *gin.Context) {
	date := c.Param("date")

	var night models.Night
	if err := db.Where("date = ? AND is_active = ?", date, true).First(&night).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pizza night scheduled for " + date})
		return
	}

	slots, err := resolver.AvailableSlots(c.Request.Context(), night, time.Now())
	if err != nil {
		// Fail closed: a lookup failure must read as "no slots", not as
		// "nothing taken".
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Could not compute availability, please retry",
			"slots": []models.TimeSlot{},
		})
		return
	}

	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.StartTime
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"day":   night.Day,
		"count": len(slots),
		"times": times,
		"slots": slots,
	})
}

// GetStateMachineInfo returns the kitchen order lifecycle for docs/clients
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{string(models.StatusPickedUp), string(models.StatusCancelled)},
		"description":     "Pizza Club Kitchen Order Lifecycle",
	})
}
