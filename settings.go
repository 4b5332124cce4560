package main

import (
	"fmt"
	"net/http"
	"strconv"

	"gjl/models"

	"github.com/gin-gonic/gin"
)

// monthlyFee reads the configured dues amount. The payment flow calls this
// in-process instead of fetching its own settings endpoint.
func monthlyFee() (int64, error) {
	var s models.Setting
	if err := db.Where("key = ?", models.SettingMonthlyFee).First(&s).Error; err != nil {
		return 0, fmt.Errorf("setting %s missing: %w", models.SettingMonthlyFee, err)
	}
	fee, err := strconv.ParseInt(s.Value, 10, 64)
	if err != nil || fee <= 0 {
		return 0, fmt.Errorf("setting %s is not a positive amount: %q", models.SettingMonthlyFee, s.Value)
	}
	return fee, nil
}

func listSettingsHandler(c *gin.Context) {
	var settings []models.Setting
	if err := db.Order("key").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// updateSettingHandler upserts one key/value pair (admin only).
func updateSettingHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Key == models.SettingMonthlyFee {
		if fee, err := strconv.ParseInt(req.Value, 10, 64); err != nil || fee <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "monthly_fee must be a positive whole amount"})
			return
		}
	}
	var s models.Setting
	if err := db.Where(models.Setting{Key: req.Key}).FirstOrCreate(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	if err := db.Model(&s).Update("value", req.Value).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
}
