// Expires stale pending ledger rows; intended to run from cron. The same
// transition is available to admins via POST /api/financial-records/expire.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"gjl/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	res := gdb.Model(&models.FinancialRecord{}).
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Update("status", models.StatusExpired)
	if res.Error != nil {
		log.Fatalf("sweep failed: %v", res.Error)
	}
	fmt.Printf("expired %d pending records\n", res.RowsAffected)
}
