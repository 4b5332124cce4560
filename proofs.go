package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gjl/models"
	"gjl/pkg/ocr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// minProofConfidence gates the OCR result; below it the amount is kept at 0
// and the admin reads the receipt by hand.
const minProofConfidence = 0.15

// uploadPaymentProofHandler stores a resident's transfer receipt and tries to
// read the transferred amount off the image.
func uploadPaymentProofHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile missing"})
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

	dir := filepath.Join(uploadBaseDir(), "proofs")
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

	proof := models.PaymentProof{
		ProfileID:   profile.ID,
		FileName:    file.Filename,
		StorePath:   filepath.Join("proofs", stored),
		ContentType: ct,
	}
	amt, conf, _, err := ocr.ExtractAmountFromImage(fullPath)
	switch {
	case err == nil && amt > 0 && conf > minProofConfidence:
		proof.Amount = amt
	case errors.Is(err, ocr.ErrNoAmount):
		proof.Failed = true
		proof.FailedReason = "no amount detected"
	case err != nil:
		proof.Failed = true
		proof.FailedReason = "ocr failed"
	default:
		proof.Failed = true
		proof.FailedReason = "low confidence"
	}
	if err := db.Create(&proof).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": proof.ID, "store_path": proof.StorePath, "amount": proof.Amount, "failed": proof.Failed})
}

// listPaymentProofsHandler returns receipts; admin sees all, resident only their own.
func listPaymentProofsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.PaymentProof{})
	if !isAdmin(c) {
		var profile models.Profile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "profile missing"})
			return
		}
		q = q.Where("profile_id = ?", profile.ID)
	}
	var proofs []models.PaymentProof
	if err := q.Order("id desc").Limit(100).Find(&proofs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, proofs)
}

// linkPaymentProofHandler attaches a reviewed receipt to the ledger row it
// settles (admin only).
func linkPaymentProofHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var proof models.PaymentProof
	if err := db.First(&proof, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req struct {
		RecordID uint `json:"record_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var rec models.FinancialRecord
	if err := db.First(&rec, req.RecordID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "financial record not found"})
		return
	}
	proof.RecordID = &rec.ID
	if err := db.Save(&proof).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "link failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": proof.ID, "record_id": rec.ID})
}
