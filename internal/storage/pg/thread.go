package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/itchan-dev/minichan/shared/domain"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"
)

func (s *Storage) CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.Thread, error) {
	lastUpdated := creationData.CreatedAt.Unix()
	var id domain.ThreadId
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO threads (title, message, last_updated)
        VALUES ($1, $2, $3)
        RETURNING id
    `, creationData.Title, creationData.Message, lastUpdated).Scan(&id)
	if err != nil {
		return domain.Thread{}, storeFailure("failed to insert thread", err)
	}

	return domain.Thread{
		Id:           id,
		Title:        creationData.Title,
		Message:      creationData.Message,
		LastActivity: time.Unix(lastUpdated, 0).UTC(),
	}, nil
}

// ThreadsPage returns up to limit threads starting at offset, most recently active first.
func (s *Storage) ThreadsPage(ctx context.Context, offset, limit int) ([]domain.Thread, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, title, message, last_updated
        FROM threads
        ORDER BY last_updated DESC, id DESC
        LIMIT $1 OFFSET $2
    `, limit, offset)
	if err != nil {
		return nil, storeFailure("failed to fetch threads page", err)
	}
	defer rows.Close()

	threads := make([]domain.Thread, 0, limit)
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, storeFailure("failed to scan thread", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("rows iteration error", err)
	}
	return threads, nil
}

func (s *Storage) ThreadCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM threads").Scan(&count); err != nil {
		return 0, storeFailure("failed to count threads", err)
	}
	return count, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, title, message, last_updated
        FROM threads
        WHERE id = $1
    `, id)
	thread, err := scanThread(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, storeFailure("failed to fetch thread", err)
	}
	return thread, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanThread(row scanner) (domain.Thread, error) {
	var (
		thread      domain.Thread
		lastUpdated int64
	)
	if err := row.Scan(&thread.Id, &thread.Title, &thread.Message, &lastUpdated); err != nil {
		return domain.Thread{}, err
	}
	thread.LastActivity = time.Unix(lastUpdated, 0).UTC()
	return thread, nil
}
