package main

import (
	"net/http"
	"strconv"
	"time"

	"gjl/models"

	"github.com/gin-gonic/gin"
)

// listPaymentStatusHandler returns manual mark-as-paid rows; residents see
// their own, admins can filter by user/month/year.
func listPaymentStatusHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.PaymentStatus{})
	if !isAdmin(c) {
		q = q.Where("user_id = ?", user.ID)
	} else if uid := c.Query("user_id"); uid != "" {
		q = q.Where("user_id = ?", uid)
	}
	if m := c.Query("month"); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			q = q.Where("month = ?", n)
		}
	}
	if y := c.Query("year"); y != "" {
		if n, err := strconv.Atoi(y); err == nil {
			q = q.Where("year = ?", n)
		}
	}
	var rows []models.PaymentStatus
	if err := q.Order("year desc, month desc, user_id").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// createPaymentStatusHandler marks one resident's month as paid (admin only).
func createPaymentStatusHandler(c *gin.Context) {
	admin, ok := getUserFromContext(c)
	if !ok || !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Month  string `json:"month" binding:"required"`
		Year   string `json:"year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	months, err := parseDuesMonths([]string{req.Month})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	year, err := parseDuesYear(req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ps := models.PaymentStatus{UserID: req.UserID, Month: months[0], Year: year, CreatedBy: admin.ID}
	var existing models.PaymentStatus
	if err := db.Where("user_id = ? AND month = ? AND year = ?", ps.UserID, ps.Month, ps.Year).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already marked as paid"})
		return
	}
	if err := db.Create(&ps).Error; err != nil {
		if isUniqueConstraintError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "already marked as paid"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ps.ID})
}

func deletePaymentStatusHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	res := db.Delete(&models.PaymentStatus{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment status deleted"})
}

// paymentStatusStatsHandler aggregates paid/unpaid counts per month for a
// year, counting every active resident profile as owing dues.
func paymentStatusStatsHandler(c *gin.Context) {
	year, err := parseDuesYear(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var residents int64
	if err := db.Model(&models.Profile{}).Where("active = ?", true).Count(&residents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	type monthCount struct {
		Month int
		Paid  int64
	}
	var counts []monthCount
	if err := db.Model(&models.PaymentStatus{}).
		Select("month, COUNT(*) AS paid").
		Where("year = ?", year).
		Group("month").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	paidByMonth := map[int]int64{}
	for _, mc := range counts {
		paidByMonth[mc.Month] = mc.Paid
	}
	stats := make([]gin.H, 0, 12)
	for m := 1; m <= 12; m++ {
		paid := paidByMonth[m]
		unpaid := residents - paid
		if unpaid < 0 {
			unpaid = 0
		}
		stats = append(stats, gin.H{"month": m, "paid": paid, "unpaid": unpaid})
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "residents": residents, "months": stats})
}

// bulkCreatePaymentStatusHandler marks many (user, month) pairs paid at once,
// skipping pairs that already exist.
func bulkCreatePaymentStatusHandler(c *gin.Context) {
	admin, ok := getUserFromContext(c)
	if !ok || !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		UserIDs []uint   `json:"user_ids" binding:"required"`
		Months  []string `json:"months" binding:"required"`
		Year    string   `json:"year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.UserIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_ids must not be empty"})
		return
	}
	months, err := parseDuesMonths(req.Months)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	year, err := parseDuesYear(req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var created int64
	for _, uid := range req.UserIDs {
		for _, m := range months {
			ps := models.PaymentStatus{UserID: uid, Month: m, Year: year, CreatedBy: admin.ID}
			res := db.Where("user_id = ? AND month = ? AND year = ?", uid, m, year).FirstOrCreate(&ps)
			if res.Error != nil {
				if isUniqueConstraintError(res.Error) {
					continue
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk insert failed"})
				return
			}
			created += res.RowsAffected
		}
	}
	c.JSON(http.StatusOK, gin.H{"created": created})
}
