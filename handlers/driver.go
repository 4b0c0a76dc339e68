package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/middleware"
	"quickbite/models"
	"quickbite/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AvailableOrders shows confirmed orders that have no driver assigned
func AvailableOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items").
		Where("status = ? AND driver_id IS NULL", models.StatusConfirmed).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// MyDeliveries returns all orders assigned to the logged-in driver
func MyDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var orders []models.Order
	if err := config.DB.Preload("Items").
		Where("driver_id = ?", driverID).
		Order("updated_at desc").
		Find(&orders).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdvanceOrder moves an order one step along the fulfillment chain
// (confirmed → preparing → ready → picked_up → on_way → delivered).
// The update is conditional on the status the driver saw, so a stale
// dashboard cannot skip a state.
func AdvanceOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.DriverID == nil || *order.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this order"})
		return
	}

	next, ok := statemachine.NextStatus(order.Status)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	res := config.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", next)
	if res.Error != nil {
		internalError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, refresh and retry"})
		return
	}

	// Delivering the order pays the driver and frees them for the next claim
	if next == models.StatusDelivered {
		if err := config.DB.Model(&models.User{}).Where("id = ?", driverID).
			Updates(map[string]interface{}{
				"is_available": true,
				"earnings":     gorm.Expr("earnings + ?", order.DeliveryFee),
			}).Error; err != nil {
			internalError(c, err)
			return
		}
	}

	order.Status = next
	Notifier.StatusChanged(&order, next)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order status updated",
		"order_id": order.ID,
		"status":   next,
	})
}

type AvailabilityRequest struct {
	Available *bool   `json:"available" binding:"required"`
	Location  *string `json:"location"`
}

// SetAvailability toggles the logged-in driver's availability flag and
// optionally updates their free-text location
func SetAvailability(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "available is required"})
		return
	}

	updates := map[string]interface{}{"is_available": *req.Available}
	if req.Location != nil {
		updates["current_location"] = *req.Location
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", driverID).
		Updates(updates).Error; err != nil {
		internalError(c, err)
		return
	}

	var driver models.User
	config.DB.First(&driver, driverID)
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}
