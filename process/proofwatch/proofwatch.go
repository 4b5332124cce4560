// Package proofwatch ingests transfer receipts dropped directly into the
// proofs directory (e.g. synced from a shared phone folder) without going
// through the upload endpoint: each new image is OCR'd and recorded as a
// PaymentProof for the configured profile.
package proofwatch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gjl/models"
	"gjl/pkg/ocr"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Options struct {
	Dir       string
	ProfileID uint // 0 means the seeded admin profile
	MinConf   float64
	DryRun    bool
	Watch     bool
}

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

// Run processes every image already in the directory and, with Watch set,
// keeps watching for new ones until interrupted.
func Run(opts Options) error {
	gdb := mustDBFromEnv()
	profile, err := resolveProfile(gdb, opts.ProfileID)
	if err != nil {
		return err
	}
	for _, name := range listImageFiles(opts.Dir) {
		processFile(gdb, opts, profile, name)
	}
	if !opts.Watch {
		return nil
	}
	return watchDirectory(gdb, opts, profile)
}

func resolveProfile(gdb *gorm.DB, id uint) (models.Profile, error) {
	var p models.Profile
	if id != 0 {
		if err := gdb.First(&p, id).Error; err != nil {
			return p, fmt.Errorf("profile %d not found: %w", id, err)
		}
		return p, nil
	}
	var admin models.User
	if err := gdb.Where("username = ?", "admin").First(&admin).Error; err != nil {
		return p, fmt.Errorf("no --profile-id provided and admin user not found: %w", err)
	}
	if err := gdb.Where("user_id = ?", admin.ID).First(&p).Error; err != nil {
		return p, fmt.Errorf("admin profile not found: %w", err)
	}
	return p, nil
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// processFile is idempotent: a receipt already recorded under the same stored
// path is skipped, so rescans after a restart do not duplicate rows.
func processFile(gdb *gorm.DB, opts Options, profile models.Profile, name string) {
	storePath := filepath.Join("proofs", name)
	var existing models.PaymentProof
	if err := gdb.Where("store_path = ?", storePath).First(&existing).Error; err == nil {
		return
	}
	full := filepath.Join(opts.Dir, name)
	proof := models.PaymentProof{ProfileID: profile.ID, FileName: name, StorePath: storePath}

	amt, conf, found, err := ocr.ExtractAmountFromImage(full)
	switch {
	case err != nil:
		log.Printf("ocr error %s: %v", name, err)
		proof.Failed = true
		proof.FailedReason = "ocr failed"
	case amt <= 0 || conf < opts.MinConf:
		log.Printf("ocr skipped %s amt=%d conf=%.2f (min=%.2f)", name, amt, conf, opts.MinConf)
		proof.Failed = true
		proof.FailedReason = "low confidence"
	default:
		proof.Amount = amt
		log.Printf("ocr %s amount=%d conf=%.2f raw=%q", name, amt, conf, found)
	}

	if opts.DryRun {
		fmt.Printf("DRY: would record proof file=%s amount=%d failed=%v\n", name, proof.Amount, proof.Failed)
		return
	}
	if err := gdb.Create(&proof).Error; err != nil {
		log.Printf("failed to record proof %s: %v", name, err)
		return
	}
	fmt.Printf("recorded proof id=%d file=%s amount=%d\n", proof.ID, name, proof.Amount)
}

func watchDirectory(gdb *gorm.DB, opts Options, profile models.Profile) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(opts.Dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", opts.Dir)

	// debounce: a file is processed once it has been quiet for a moment,
	// so half-written copies are not OCR'd
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
				name := filepath.Base(ev.Name)
				if isSupportedExt(name) {
					pending[name] = time.Now()
				}
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond { // stable
					delete(pending, name)
					processFile(gdb, opts, profile, name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
