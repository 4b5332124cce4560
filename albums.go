package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gjl/models"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxUploadBytes = 5 * 1024 * 1024
	thumbWidth     = 480
)

func listAlbumsHandler(c *gin.Context) {
	var albums []models.Album
	if err := db.Order("id desc").Limit(100).Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, albums)
}

func createAlbumHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok || !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := models.Album{Title: req.Title, Description: req.Description, CreatedBy: user.ID}
	if err := db.Create(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": a.ID})
}

func getAlbumHandler(c *gin.Context) {
	var a models.Album
	if err := db.Preload("Photos").First(&a, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func deleteAlbumHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	res := db.Delete(&models.Album{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "album deleted"})
}

// uploadPhotoHandler stores a gallery image under a uuid-prefixed name and
// writes a resized thumbnail next to it.
func uploadPhotoHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var album models.Album
	if err := db.First(&album, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	ct := file.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
		return
	}

	dir := filepath.Join(uploadBaseDir(), "albums")
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	stored := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	fullPath := filepath.Join(dir, stored)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	thumbPath := ""
	if img, err := imaging.Open(fullPath); err == nil {
		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
		tp := filepath.Join(dir, "thumb_"+stored)
		if err := imaging.Save(thumb, tp); err == nil {
			thumbPath = filepath.Join("albums", "thumb_"+stored)
		}
	}

	photo := models.Photo{
		AlbumID:     album.ID,
		Caption:     c.PostForm("caption"),
		FileName:    file.Filename,
		StorePath:   filepath.Join("albums", stored),
		ThumbPath:   thumbPath,
		ContentType: ct,
	}
	if err := db.Create(&photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": photo.ID, "store_path": photo.StorePath, "thumb_path": photo.ThumbPath})
}
