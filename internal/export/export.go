// Package export writes weekly Markdown reports into a user-chosen folder,
// at most once per day.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"life-os/internal/calendar"
	"life-os/internal/database"
	"life-os/internal/rules"
)

// ErrNoFolder is returned by a forced export when no folder is configured.
var ErrNoFolder = errors.New("export folder not configured")

// Report is the input for one weekly export.
type Report struct {
	Week        calendar.Week
	Phase       calendar.Phase
	Logs        []database.DailyLog
	Decision    database.Decision
	GeneratedAt time.Time
}

type Result struct {
	Exported bool                   `json:"exported"`
	Reason   string                 `json:"reason,omitempty"`
	Record   *database.ExportRecord `json:"record,omitempty"`
}

type Composer struct {
	repo   *database.Repository
	logger *zap.Logger
}

func NewComposer(store database.Store, logger *zap.Logger) *Composer {
	return &Composer{repo: database.NewRepository(store), logger: logger}
}

func checkmark(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Render builds the Markdown document for r.
func Render(r Report) string {
	summary := rules.Summarize(r.Week, database.RulesLogs(r.Logs))

	var b strings.Builder
	fmt.Fprintf(&b, "# Week %d - Life OS Export\n\n", r.Week)
	fmt.Fprintf(&b, "**Phase:** %s\n", r.Phase)
	fmt.Fprintf(&b, "**Date:** %s\n\n", r.GeneratedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))

	b.WriteString("## Pillar Status\n\n")
	for _, p := range rules.Pillars {
		status := summary.PillarStatus[p]
		count := summary.Flags[p]
		plural := "s"
		if count == 1 {
			plural = ""
		}
		fmt.Fprintf(&b, "%s **%s**: %s (%d flag%s)\n", status.Icon(), p, status, count, plural)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Weekly Logs (%d entries)\n\n", len(r.Logs))
	for i, l := range r.Logs {
		sleep := "N/A"
		if l.SleepHours > 0 {
			sleep = strconv.FormatFloat(l.SleepHours, 'f', -1, 64)
		}
		fmt.Fprintf(&b, "### Day %d\n", i+1)
		fmt.Fprintf(&b, "- Workout: %s\n", checkmark(l.WorkoutDone))
		fmt.Fprintf(&b, "- Protein Met: %s\n", checkmark(l.ProteinMet))
		fmt.Fprintf(&b, "- Sleep Hours: %s\n", sleep)
		fmt.Fprintf(&b, "- Soreness >72h: %s\n\n", checkmark(l.Soreness72h))
	}

	b.WriteString("## Weekly Decisions\n\n")
	fmt.Fprintf(&b, "- **Training Focus:** %s\n", orDefault(r.Decision.Training, "Not set"))
	fmt.Fprintf(&b, "- **Nutrition Focus:** %s\n", orDefault(r.Decision.Nutrition, "Not set"))
	fmt.Fprintf(&b, "- **Optional Focus:** %s\n\n", orDefault(r.Decision.Optional, "Balanced"))

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "**Overall Status:** %s\n", summary.Overall)
	fmt.Fprintf(&b, "**Recommendation:** %s\n", summary.Recommendation)
	fmt.Fprintf(&b, "**Total Logs:** %d\n", len(r.Logs))

	return b.String()
}

// Filename is Week_NN_YYYY-MM-DD.md.
func Filename(week calendar.Week, now time.Time) string {
	return fmt.Sprintf("Week_%02d_%s.md", week, now.Format(database.DateLayout))
}

func (c *Composer) SetFolder(ctx context.Context, folder string) error {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return errors.New("export folder must not be empty")
	}
	if err := c.repo.Store.Set(ctx, database.KeyExportFolderPath, folder); err != nil {
		return err
	}
	c.logger.Info("export folder set", zap.String("folder", folder))
	return nil
}

// Folder returns the configured folder, or "" when none is set.
func (c *Composer) Folder(ctx context.Context) (string, error) {
	folder, _, err := c.repo.Store.Get(ctx, database.KeyExportFolderPath)
	return folder, err
}

// ShouldExport reports whether a folder is configured and no export has run
// on today's date yet.
func (c *Composer) ShouldExport(ctx context.Context, today time.Time) (bool, error) {
	folder, err := c.Folder(ctx)
	if err != nil || folder == "" {
		return false, err
	}
	done, err := c.ExportedToday(ctx, today)
	return !done, err
}

// Run writes r to the export folder unless an export already ran today.
// force skips the once-per-day gate but still needs a folder.
func (c *Composer) Run(ctx context.Context, r Report, force bool) (Result, error) {
	now := r.GeneratedAt

	folder, err := c.Folder(ctx)
	if err != nil {
		return Result{}, err
	}
	if folder == "" {
		if force {
			return Result{}, ErrNoFolder
		}
		return Result{Reason: "Export folder not configured"}, nil
	}

	if !force {
		should, err := c.ShouldExport(ctx, now)
		if err != nil {
			return Result{}, err
		}
		if !should {
			return Result{Reason: "Already exported today"}, nil
		}
	}

	filename := Filename(r.Week, now)
	path := filepath.Join(folder, filename)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export folder: %w", err)
	}
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return Result{}, fmt.Errorf("write export: %w", err)
	}

	record := database.ExportRecord{
		ID:        uuid.NewString(),
		Filename:  filename,
		Path:      path,
		Timestamp: now,
		Week:      r.Week,
	}
	if err := c.repo.Store.Set(ctx, database.KeyLastExportDate, now.Format(database.DateLayout)); err != nil {
		return Result{}, err
	}
	if err := c.repo.SetJSON(ctx, database.KeyLastExport, record); err != nil {
		return Result{}, err
	}

	c.logger.Info("export written",
		zap.String("path", path),
		zap.Int("week", int(r.Week)),
		zap.Int("logs", len(r.Logs)))
	return Result{Exported: true, Record: &record}, nil
}

// LastExport returns the most recent export record, or nil if none ran yet.
func (c *Composer) LastExport(ctx context.Context) (*database.ExportRecord, error) {
	var record database.ExportRecord
	err := c.repo.GetJSON(ctx, database.KeyLastExport, &record)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ExportedToday reports whether the last export ran on today's date.
func (c *Composer) ExportedToday(ctx context.Context, today time.Time) (bool, error) {
	last, ok, err := c.repo.Store.Get(ctx, database.KeyLastExportDate)
	if err != nil {
		return false, err
	}
	return ok && last == today.Format(database.DateLayout), nil
}
