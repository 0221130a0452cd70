package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vidconv/internal/presets"
)

// Add appends sourcePath to the end of the queue. The path is made absolute
// before it is stored so the same file cannot be queued twice under different
// spellings.
func (s *Store) Add(ctx context.Context, sourcePath string) (*Item, error) {
	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return nil, validationError("add", "source path is empty", ErrUnsupported)
	}
	if abs, err := filepath.Abs(sourcePath); err == nil {
		sourcePath = abs
	}
	if !presets.IsVideoFile(sourcePath) {
		return nil, validationError("add", fmt.Sprintf("%q (accepted: %s)", sourcePath, strings.Join(presets.VideoExtensions, " ")), ErrUnsupported)
	}

	now := time.Now().UTC()
	res, err := s.execWithRetry(ctx,
		`INSERT INTO queue_items (source_path, created_at) VALUES (?, ?)`,
		sourcePath,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, validationError("add", fmt.Sprintf("%q", sourcePath), ErrDuplicate)
		}
		return nil, fmt.Errorf("insert queue item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	// Rows inserted after this one by another writer must not shift its position.
	var position int
	ctx = ensureContext(ctx)
	if err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM queue_items WHERE id <= ?`, id).Scan(&position)
	}); err != nil {
		return nil, fmt.Errorf("queue position: %w", err)
	}
	return &Item{ID: id, Position: position, SourcePath: sourcePath, CreatedAt: now}, nil
}

// List returns every queued item in insertion order.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT id, source_path, created_at FROM queue_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list queue: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		item.Position = len(items) + 1
		items = append(items, item)
	}
	return items, rows.Err()
}

// Paths returns the queued source paths in order. This is the snapshot handed
// to conversion and authoring runs.
func (s *Store) Paths(ctx context.Context) ([]string, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.SourcePath)
	}
	return paths, nil
}

// Count returns the number of queued items.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM queue_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count queue: %w", err)
	}
	return count, nil
}

// Remove deletes the item at the 1-based position and returns it.
func (s *Store) Remove(ctx context.Context, position int) (*Item, error) {
	ctx = ensureContext(ctx)
	if position < 1 {
		return nil, validationError("remove", fmt.Sprintf("position %d", position), ErrPosition)
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source_path, created_at FROM queue_items ORDER BY id LIMIT 1 OFFSET ?`,
		position-1,
	)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, validationError("remove", fmt.Sprintf("position %d", position), ErrPosition)
	}
	if err != nil {
		return nil, err
	}
	item.Position = position

	if _, err := s.execWithRetry(ctx, `DELETE FROM queue_items WHERE id = ?`, item.ID); err != nil {
		return nil, fmt.Errorf("delete queue item %d: %w", item.ID, err)
	}
	return &item, nil
}

// Clear removes every queued item and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM queue_items`)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (Item, error) {
	var (
		item       Item
		createdRaw sql.NullString
	)
	if err := scanner.Scan(&item.ID, &item.SourcePath, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("scan queue item: %w", err)
	}
	if createdRaw.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, createdRaw.String); err == nil {
			item.CreatedAt = ts
		}
	}
	return item, nil
}
