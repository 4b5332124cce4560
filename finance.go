package main

import (
	"net/http"
	"strconv"
	"time"

	"gjl/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pendingTTL is how long a gateway-initiated ledger row may stay pending
// before the sweep marks it expired.
const pendingTTL = 24 * time.Hour

// recordSummary totals only flow through status=done rows unless the caller
// asked for all statuses; pending or expired money is never real income.
type recordSummary struct {
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	NetBalance   int64 `json:"net_balance"`
}

// listFinancialRecordsHandler returns the caller's ledger rows (admin sees
// all), filtered, paginated and summarized.
func listFinancialRecordsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	admin := isAdmin(c)

	scope := func() *gorm.DB {
		q := db.Model(&models.FinancialRecord{})
		if !admin {
			q = q.Where("user_id = ?", user.ID)
		}
		if t := c.Query("type"); t != "" {
			q = q.Where("type = ?", t)
		}
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		if hb := c.Query("house_block"); hb != "" {
			q = q.Where("house_block = ?", hb)
		}
		if m := c.Query("month"); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 12 {
				q = q.Where("EXTRACT(MONTH FROM date) = ?", n)
			}
		}
		if y := c.Query("year"); y != "" {
			if n, err := strconv.Atoi(y); err == nil {
				q = q.Where("EXTRACT(YEAR FROM date) = ?", n)
			}
		}
		if c.Query("show_all_status") != "true" {
			q = q.Where("status = ?", models.StatusDone)
		}
		return q
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var records []models.FinancialRecord
	if err := scope().Order("date desc, id desc").Offset((page - 1) * limit).Limit(limit).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	var summary recordSummary
	row := scope().Select(
		"COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income, " +
			"COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense").
		Row()
	if err := row.Scan(&summary.TotalIncome, &summary.TotalExpense); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	summary.NetBalance = summary.TotalIncome - summary.TotalExpense

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"page":    page,
		"limit":   limit,
		"total":   total,
		"summary": summary,
	})
}

// createFinancialRecordHandler records a manual admin entry; unlike the
// gateway flow these rows are done immediately.
func createFinancialRecordHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok || !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var req struct {
		Type        string `json:"type" binding:"required"`
		Category    string `json:"category" binding:"required"`
		Amount      int64  `json:"amount" binding:"required"`
		Description string `json:"description"`
		Date        string `json:"date"` // optional ISO8601
		HouseBlock  string `json:"house_block"`
		UserID      *uint  `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt := models.RecordType(req.Type)
	if rt != models.RecordIncome && rt != models.RecordExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	rec := models.FinancialRecord{
		Type:        rt,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		HouseBlock:  req.HouseBlock,
		UserID:      req.UserID,
		CreatedBy:   user.ID,
		Status:      models.StatusDone,
		Date:        time.Now(),
	}
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
			return
		}
		rec.Date = t
	}
	if err := db.Create(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID})
}

func updateFinancialRecordHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	var rec models.FinancialRecord
	if err := db.First(&rec, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req struct {
		Category    *string `json:"category"`
		Amount      *int64  `json:"amount"`
		Description *string `json:"description"`
		HouseBlock  *string `json:"house_block"`
		Date        *string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
			return
		}
		rec.Amount = *req.Amount
	}
	if req.Category != nil {
		rec.Category = *req.Category
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.HouseBlock != nil {
		rec.HouseBlock = *req.HouseBlock
	}
	if req.Date != nil {
		t, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
			return
		}
		rec.Date = t
	}
	if err := db.Save(&rec).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func deleteFinancialRecordHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	res := db.Delete(&models.FinancialRecord{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
}

// expirePendingHandler transitions pending rows older than 24h to expired.
// Running it twice in a row changes nothing the second time.
func expirePendingHandler(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	n, err := ExpireStalePending(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": n})
}

// ExpireStalePending flips stale pending rows to expired and reports how many changed.
func ExpireStalePending(gdb *gorm.DB) (int64, error) {
	cutoff := time.Now().Add(-pendingTTL)
	res := gdb.Model(&models.FinancialRecord{}).
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Update("status", models.StatusExpired)
	return res.RowsAffected, res.Error
}
