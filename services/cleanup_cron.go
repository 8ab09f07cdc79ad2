package services

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// TempFileMaxAge is how long uploaded images and generated banners may sit
// on disk before the sweeper removes them. Normal requests delete their own
// files; the sweep only catches leftovers from failed sends.
const TempFileMaxAge = time.Hour

// StartCleanupCron schedules an hourly sweep of the given temp directories
// and returns the running scheduler.
func StartCleanupCron(dirs ...string) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@hourly", func() {
		for _, dir := range dirs {
			sweepDir(dir, TempFileMaxAge)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule temp-file cleanup: %v", err)
		return c
	}
	c.Start()
	return c
}

func sweepDir(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Cleanup: failed to read %s: %v", dir, err)
		}
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("Cleanup: failed to remove %s: %v", path, err)
			}
		}
	}
}
