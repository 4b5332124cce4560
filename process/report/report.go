package report

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"gjl/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

// RunReport prints dues collection for one month (YYYY-MM): settled income
// per house block plus how much is still pending, and optionally the rows.
func RunReport(month string, list bool) {
	gdb := mustDBFromEnv()

	t, err := time.Parse("2006-01", month)
	if err != nil {
		log.Fatalf("invalid month format, expected YYYY-MM: %v", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	type blockRow struct {
		HouseBlock string
		Total      sql.NullInt64
		Cnt        int64
	}
	var blocks []blockRow
	if err := gdb.Raw(`SELECT house_block, COALESCE(SUM(amount),0) AS total, COUNT(*) AS cnt
		FROM financial_records
		WHERE type = 'income' AND status = 'done' AND date >= ? AND date < ?
		GROUP BY house_block ORDER BY house_block`, start, end).Scan(&blocks).Error; err != nil {
		log.Fatalf("query failed: %v", err)
	}

	var pendingTotal sql.NullInt64
	var pendingCnt int64
	if err := gdb.Raw(`SELECT COALESCE(SUM(amount),0) AS total, COUNT(*) AS cnt
		FROM financial_records
		WHERE type = 'income' AND status = 'pending' AND date >= ? AND date < ?`,
		start, end).Row().Scan(&pendingTotal, &pendingCnt); err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("Dues report for %s (UTC):\n", month)
	var grand int64
	for _, b := range blocks {
		fmt.Printf("  block=%-6s records=%d total=%d\n", b.HouseBlock, b.Cnt, b.Total.Int64)
		grand += b.Total.Int64
	}
	fmt.Printf("  settled_total=%d pending_records=%d pending_total=%d\n", grand, pendingCnt, pendingTotal.Int64)

	if list {
		var rows []models.FinancialRecord
		if err := gdb.Where("type = ? AND date >= ? AND date < ?", models.RecordIncome, start, end).
			Order("house_block, id").Find(&rows).Error; err != nil {
			log.Fatalf("fetch rows failed: %v", err)
		}
		for _, r := range rows {
			fmt.Printf("%d|%s|%s|%d|%s|%s\n", r.ID, r.HouseBlock, r.Status, r.Amount, r.ReferenceID, r.Date.Format(time.RFC3339))
		}
	}
}
