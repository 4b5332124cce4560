package main

import (
	"net/http"

	"gjl/models"

	"github.com/gin-gonic/gin"
)

// Organizational directory: who holds which community role, ordered by rank.

func listPositionsHandler(c *gin.Context) {
	var items []models.Position
	if err := db.Order("rank asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func createPositionHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Title      string `json:"title" binding:"required"`
		HouseBlock string `json:"house_block"`
		Phone      string `json:"phone"`
		Rank       int    `json:"rank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := models.Position{Name: req.Name, Title: req.Title, HouseBlock: req.HouseBlock, Phone: req.Phone, Rank: req.Rank}
	if err := db.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID})
}

func updatePositionHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var p models.Position
	if err := db.First(&p, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Title      *string `json:"title"`
		HouseBlock *string `json:"house_block"`
		Phone      *string `json:"phone"`
		Rank       *int    `json:"rank"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.HouseBlock != nil {
		p.HouseBlock = *req.HouseBlock
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Rank != nil {
		p.Rank = *req.Rank
	}
	if err := db.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func deletePositionHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	res := db.Delete(&models.Position{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "position deleted"})
}
