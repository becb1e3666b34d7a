package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pizza-club-api/models"
	"pizza-club-api/service"
	"pizza-club-api/statemachine"
)

// Admin requests carry the admin username explicitly; the service re-checks
// it against the registry on every call rather than trusting the session.

type SlotLockRequest struct {
	AdminUsername string `json:"admin_username" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Locked        *bool  `json:"locked" binding:"required"`
}

// SetSlotLock locks or unlocks a (date, time) slot. Idempotent both ways
func SetSlotLock(c *gin.Context) {
	var req SlotLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := admins.SetSlotLock(c.Request.Context(), req.AdminUsername, req.Date, req.Time, *req.Locked); err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}

	state := "unlocked"
	if *req.Locked {
		state = "locked"
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot " + req.Time + " on " + req.Date + " " + state})
}

// AdminCancelOrder hard-deletes an order; its slot reopens on the next
// availability computation
func AdminCancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	adminUsername := c.Query("admin_username")
	if adminUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admin_username is required"})
		return
	}

	if err := admins.CancelOrder(c.Request.Context(), adminUsername, uint(orderID)); err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": orderID})
}

// KitchenDisplay returns a night's orders in slot order with a status summary
func KitchenDisplay(c *gin.Context) {
	date := c.Param("date")
	list, err := admins.OrdersForDate(c.Request.Context(), date)
	if err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}

	summary := map[string]int{}
	for _, o := range list {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          date,
		"order_summary": summary,
		"count":         len(list),
		"orders":        list,
	})
}

type OrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through the kitchen lifecycle after the
// state machine validates the transition for the acting role
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := db.First(&order, uint(orderID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "kitchen"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot update order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	updated, err := admins.UpdateOrderStatus(c.Request.Context(), uint(orderID), req.Status)
	if err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        updated.ID,
		"previous_status": order.Status,
		"new_status":      req.Status,
	})
}

type ProvisionNightRequest struct {
	AdminUsername string `json:"admin_username" binding:"required"`
	Date          string `json:"date"`
}

// ProvisionNight creates a night and its slot roster. Without a date it
// provisions both currently offerable nights. Idempotent.
func ProvisionNight(c *gin.Context) {
	var req ProvisionNightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := admins.VerifyAdmin(c.Request.Context(), req.AdminUsername); err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}

	if req.Date != "" {
		night, err := provisioner.EnsureNight(c.Request.Context(), req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Night provisioned", "night": night})
		return
	}

	nights, err := provisioner.EnsureCurrent(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Current nights provisioned", "nights": nights})
}

type PizzaRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreatePizza adds a pizza to the catalog
func CreatePizza(c *gin.Context) {
	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pizza := models.Pizza{Name: req.Name, Description: req.Description, IsActive: true}
	if req.IsActive != nil {
		pizza.IsActive = *req.IsActive
	}
	if err := db.Create(&pizza).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A pizza named '" + req.Name + "' already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pizza added", "pizza": pizza})
}

// UpdatePizza edits a catalog entry
func UpdatePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := db.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}

	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pizza.Name = req.Name
	pizza.Description = req.Description
	if req.IsActive != nil {
		pizza.IsActive = *req.IsActive
	}
	if err := db.Save(&pizza).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pizza"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pizza updated", "pizza": pizza})
}

// DeactivatePizza takes a pizza off the menu without breaking old orders
func DeactivatePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := db.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	db.Model(&pizza).Update("is_active", false)
	c.JSON(http.StatusOK, gin.H{"message": "Pizza removed from menu", "pizza_id": pizza.ID})
}

// ListMembers returns the member roster
func ListMembers(c *gin.Context) {
	var members []models.Member
	query := db.Order("last_name asc")
	if admin := c.Query("is_admin"); admin == "true" {
		query = query.Where("is_admin = ?", true)
	}
	query.Find(&members)
	c.JSON(http.StatusOK, gin.H{"count": len(members), "members": members})
}
