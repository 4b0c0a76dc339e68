package handlers

import (
	"net/http"

	"quickbite/config"
	"quickbite/models"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns notification records for the admin panel,
// newest first, optionally filtered by recipient type and read flag
func ListNotifications(c *gin.Context) {
	query := config.DB
	if rt := c.Query("recipient_type"); rt != "" {
		query = query.Where("recipient_type = ?", rt)
	}
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Find(&notifications).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(notifications), "notifications": notifications})
}

// MarkNotificationRead flags one notification as read
func MarkNotificationRead(c *gin.Context) {
	res := config.DB.Model(&models.Notification{}).
		Where("id = ?", c.Param("id")).
		Update("read", true)
	if res.Error != nil {
		internalError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
