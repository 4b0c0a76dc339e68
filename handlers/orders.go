package handlers

import (
	"errors"
	"math"
	"net/http"
	"sync"

	"quickbite/config"
	"quickbite/models"
	"quickbite/notify"
	"quickbite/pricing"
	"quickbite/statemachine"
	"quickbite/tracking"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Notifier handles best-effort notification records; wired in main.
var Notifier *notify.Emitter

// orderLocks serializes driver assignment per order id. The conditional
// UPDATE is what guarantees exclusivity; the lock keeps concurrent claims
// from fighting over the SQLite write lock.
var orderLocks sync.Map

func lockOrder(id string) func() {
	v, _ := orderLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type CreateOrderRequest struct {
	CustomerID      *uint    `json:"customer_id"`
	CustomerName    string   `json:"customer_name" binding:"required"`
	CustomerPhone   string   `json:"customer_phone" binding:"required"`
	CustomerEmail   string   `json:"customer_email"`
	DeliveryAddress string   `json:"delivery_address" binding:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Items           []struct {
		Name         string  `json:"name" binding:"required"`
		Quantity     int     `json:"quantity" binding:"required,min=1"`
		UnitPrice    float64 `json:"unit_price"`
		RestaurantID uint    `json:"restaurant_id"`
	} `json:"items" binding:"required,min=1,dive"`
	Subtotal      float64  `json:"subtotal"`
	DeliveryFee   *float64 `json:"delivery_fee"`
	Total         *float64 `json:"total"`
	PaymentMethod string   `json:"payment_method"`
	RestaurantID  uint     `json:"restaurant_id"`
	Notes         string   `json:"notes"`
}

// CreateOrder persists a new order. The delivery fee is recomputed
// server-side when the payload carries a coordinate; a client fee that
// disagrees is rejected rather than trusted.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fee := pricing.DefaultPolicy.FlatDefault
	if req.Latitude != nil && req.Longitude != nil {
		fee = pricing.DefaultPolicy.FeeBetween(
			config.RestaurantLat, config.RestaurantLng, *req.Latitude, *req.Longitude)
		if req.DeliveryFee != nil && math.Abs(*req.DeliveryFee-fee) > 0.009 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery fee does not match the delivery location"})
			return
		}
	} else if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	}

	total := req.Subtotal + fee
	if req.Total != nil && math.Abs(*req.Total-total) > 0.009 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Total does not equal subtotal plus delivery fee"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			Name:         it.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			RestaurantID: it.RestaurantID,
		})
	}

	order := models.Order{
		OrderNumber:     models.NewOrderNumber(),
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Items:           items,
		Subtotal:        req.Subtotal,
		DeliveryFee:     fee,
		Total:           total,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
		RestaurantID:    req.RestaurantID,
		Notes:           req.Notes,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	Notifier.OrderCreated(&order)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns all orders matching every provided filter, newest first
func ListOrders(c *gin.Context) {
	query := config.DB.Preload("Items").Preload("Driver")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns a single order by id
func GetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").Preload("Driver").Preload("Restaurant").
		Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderRequest struct {
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerEmail   *string `json:"customer_email"`
	DeliveryAddress *string `json:"delivery_address"`
	PaymentMethod   *string `json:"payment_method"`
	Notes           *string `json:"notes"`
}

// UpdateOrder applies a partial update to contact and delivery fields
func UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		updates["customer_email"] = *req.CustomerEmail
	}
	if req.DeliveryAddress != nil {
		updates["delivery_address"] = *req.DeliveryAddress
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = *req.PaymentMethod
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
			internalError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": order})
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus sets an order's status. Unknown statuses are rejected,
// transitions out of terminal states are refused, everything else is allowed
// (the driver dashboard uses the stricter advance path instead).
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	if !statemachine.Known(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if req.Status == order.Status {
		c.JSON(http.StatusOK, gin.H{"message": "Order status unchanged", "order": order})
		return
	}
	if req.Status == models.StatusCancelled {
		if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "admin"); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "current_status": order.Status})
			return
		}
	} else if statemachine.IsTerminal(order.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Order is in a terminal state",
			"current_status": order.Status,
		})
		return
	}

	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		internalError(c, err)
		return
	}
	order.Status = req.Status
	Notifier.StatusChanged(&order, req.Status)

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

type AssignDriverRequest struct {
	DriverID uint `json:"driver_id" binding:"required"`
}

var errAlreadyAssigned = errors.New("order already assigned")

// AssignDriver lets a driver claim an unassigned order. The claim is a
// conditional UPDATE on driver_id IS NULL; of two concurrent claims exactly
// one wins, the other gets 409. The winning claim forces status to preparing
// and marks the driver unavailable in the same transaction.
func AssignDriver(c *gin.Context) {
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driver_id is required"})
		return
	}

	orderID := c.Param("id")
	unlock := lockOrder(orderID)
	defer unlock()

	var order models.Order
	if err := config.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.DriverID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already assigned to a driver"})
		return
	}

	var driver models.User
	if err := config.DB.Where("id = ? AND role = ?", req.DriverID, models.RoleDriver).
		First(&driver).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND driver_id IS NULL", order.ID).
			Updates(map[string]interface{}{
				"driver_id": driver.ID,
				"status":    models.StatusPreparing,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyAssigned
		}
		return tx.Model(&models.User{}).Where("id = ?", driver.ID).
			Update("is_available", false).Error
	})
	if errors.Is(err, errAlreadyAssigned) {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already assigned to a driver"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	config.DB.Preload("Items").Preload("Driver").Where("id = ?", order.ID).First(&order)
	Notifier.DriverAssigned(&order, &driver)

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// TrackOrder returns the order together with its synthesized timeline and a
// driver summary. The timeline is recomputed from (status, created_at) on
// every call.
func TrackOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items").Preload("Driver").
		Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	steps := tracking.Timeline(order.Status, order.CreatedAt)

	var driver interface{}
	if order.Driver != nil {
		driver = gin.H{
			"id":               order.Driver.ID,
			"name":             order.Driver.Name,
			"phone":            order.Driver.Phone,
			"current_location": order.Driver.CurrentLocation,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order":    order,
		"tracking": steps,
		"driver":   driver,
	})
}

// CustomerOrders returns a customer's order history, newest first
func CustomerOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.DB.Preload("Items").Preload("Driver").
		Where("customer_id = ?", c.Param("customerId")).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// DeleteOrder removes an order and its items (admin only, peripheral)
func DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")
	var order models.Order
	if err := config.DB.Where("id = ?", orderID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	}); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted", "order_id": orderID})
}

// GetStateMachineInfo exposes the transition table for docs and clients
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transitions": statemachine.GetAllTransitions()})
}
