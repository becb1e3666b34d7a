package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-club-api/middleware"
	"pizza-club-api/service"
)

type SubmitOrderRequest struct {
	Phone      string `json:"phone"`
	PizzaName  string `json:"pizza_name" binding:"required"`
	PickupDate string `json:"pickup_date" binding:"required"`
	PickupTime string `json:"pickup_time" binding:"required"`
}

// SubmitOrder places an order for the authenticated member. The response
// always carries success plus either the order reference or a stable error
// code the terminal UI can switch on.
func SubmitOrder(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"error_code":    "BadRequest",
			"error_message": err.Error(),
		})
		return
	}

	order, err := orders.Submit(c.Request.Context(), service.SubmitRequest{
		MemberID:   memberID,
		Phone:      req.Phone,
		PizzaName:  req.PizzaName,
		PickupDate: req.PickupDate,
		PickupTime: req.PickupTime,
	})
	if err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{
			"success":       false,
			"error_code":    code,
			"error_message": service.MessageOf(err),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"order_id":    order.Reference,
		"pickup_date": req.PickupDate,
		"pickup_time": req.PickupTime,
		"status":      order.Status,
	})
}

// GetMyOrders returns all orders for the logged-in member
func GetMyOrders(c *gin.Context) {
	memberID := middleware.GetMemberID(c)
	list, err := orders.ForMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.MessageOf(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "orders": list})
}

// GetOrderDetail returns a single order by its reference
func GetOrderDetail(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	order, err := orders.ByReference(c.Request.Context(), c.Param("ref"))
	if err != nil {
		code := service.CodeOf(err)
		c.JSON(statusFor(code), gin.H{"error": service.MessageOf(err)})
		return
	}
	if order.MemberID != memberID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// statusFor maps service error codes onto HTTP statuses: conflicts are
// distinct from not-found so the UI can offer "pick another slot" instead of
// a generic failure.
func statusFor(code service.Code) int {
	switch code {
	case service.CodeMemberNotFound, service.CodePizzaNotFound,
		service.CodeNightNotFound, service.CodeOrderNotFound:
		return http.StatusNotFound
	case service.CodeSlotUnavailable:
		return http.StatusConflict
	case service.CodeNotAuthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
