package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/clio-assist/clio/internal/infrastructure/logging"
)

// Extractor reads a browser's history database without touching the live
// file: the store is snapshot-copied to a private temp file first, because
// browsers hold locking handles on their databases and a live read risks
// contention or a torn page.
type Extractor struct {
	log *logging.Logger

	// tempDir overrides the snapshot location; empty means the OS default.
	tempDir string
}

// NewExtractor creates an extractor.
func NewExtractor(log *logging.Logger) *Extractor {
	return &Extractor{log: log}
}

// WithTempDir directs snapshot copies into dir.
func (e *Extractor) WithTempDir(dir string) *Extractor {
	e.tempDir = dir
	return e
}

// Fetch snapshots the store at path and returns matching records, newest
// first. The authorized flag must reflect the current request's grant.
// All failures come back as one of the package's classified errors.
func (e *Extractor) Fetch(ctx context.Context, path string, spec QuerySpec, authorized bool) ([]Record, error) {
	if !authorized {
		return nil, ErrPermissionDenied
	}

	snapshot, err := e.snapshot(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer func() {
		if rmErr := os.Remove(snapshot); rmErr != nil {
			e.log.Warn("failed to remove history snapshot", zap.Error(rmErr))
		} else {
			e.log.Debug("history snapshot removed", zap.String("path", snapshot))
		}
	}()

	records, err := e.query(ctx, snapshot, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailure, err)
	}

	e.log.Debug("history extracted",
		zap.String("store", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// snapshot copies the live store to a uniquely named temp file, preserving
// mode and modification time, and returns the copy's path. The copy happens
// before any read of the database.
func (e *Extractor) snapshot(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat store: %w", err)
	}

	dst, err := os.CreateTemp(e.tempDir, "clio-history-*.db")
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy store: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close snapshot: %w", err)
	}

	// Preserve source metadata on the copy.
	if err := os.Chmod(dst.Name(), info.Mode()); err != nil {
		e.log.Warn("failed to preserve snapshot mode", zap.Error(err))
	}
	if err := os.Chtimes(dst.Name(), info.ModTime(), info.ModTime()); err != nil {
		e.log.Warn("failed to preserve snapshot mtime", zap.Error(err))
	}

	return dst.Name(), nil
}

// query runs a single read against the snapshot's urls table.
func (e *Extractor) query(ctx context.Context, snapshot string, spec QuerySpec) ([]Record, error) {
	db, err := sql.Open("sqlite", snapshot)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	q := "SELECT url, title, last_visit_time FROM urls"
	var (
		conditions []string
		params     []interface{}
	)

	if spec.Keyword != "" {
		pattern := "%" + spec.Keyword + "%"
		conditions = append(conditions, "(title LIKE ? OR url LIKE ?)")
		params = append(params, pattern, pattern)
	}
	if !spec.Since.IsZero() {
		conditions = append(conditions, "last_visit_time >= ?")
		params = append(params, toChromiumMicros(spec.Since))
	}
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	q += " ORDER BY last_visit_time DESC"

	rows, err := db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, fmt.Errorf("query urls: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			url, title string
			visitTime  int64
		)
		if err := rows.Scan(&url, &title, &visitTime); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, Record{
			URL:           url,
			Title:         title,
			LastVisitedAt: fromChromiumMicros(visitTime),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}
