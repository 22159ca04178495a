package gateway

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TempPrefix names every staged upload so the janitor only touches its own files.
const TempPrefix = "upload-"

// Janitor periodically deletes staged uploads that outlived their request,
// e.g. after a crash between staging and cleanup.
type Janitor struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

func NewJanitor(dir string, maxAge time.Duration, schedule string, logger *zap.Logger) (*Janitor, error) {
	j := &Janitor{
		dir:    dir,
		maxAge: maxAge,
		cron:   cron.New(),
		logger: logger.Named("janitor"),
		now:    time.Now,
	}
	if _, err := j.cron.AddFunc(schedule, func() {
		if _, err := j.Sweep(); err != nil {
			j.logger.Warn("sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep removes staged uploads older than maxAge and reports how many went.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), TempPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("swept stale uploads", zap.Int("removed", removed), zap.String("dir", j.dir))
	}
	return removed, errors.Join(errs...)
}
