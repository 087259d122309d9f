package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/itchan-dev/minichan/shared/domain"
	internal_errors "github.com/itchan-dev/minichan/shared/errors"

	"github.com/lib/pq"
)

const foreignKeyViolation pq.ErrorCode = "23503"

// CreateReply inserts the reply and bumps its parent thread in one transaction,
// so a reply never exists without the matching last_updated advance.
func (s *Storage) CreateReply(ctx context.Context, creationData domain.ReplyCreationData) (domain.Reply, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Reply{}, storeFailure("failed to begin transaction", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	reply, err := insertReply(ctx, tx, creationData)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := bumpThread(ctx, tx, creationData.ParentId, creationData.CreatedAt.Unix()); err != nil {
		return domain.Reply{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Reply{}, storeFailure("failed to commit transaction", err)
	}
	return reply, nil
}

func insertReply(ctx context.Context, tx *sql.Tx, creationData domain.ReplyCreationData) (domain.Reply, error) {
	var id domain.ReplyId
	err := tx.QueryRowContext(ctx, `
        INSERT INTO replies (parent_id, message)
        VALUES ($1, $2)
        RETURNING id
    `, creationData.ParentId, creationData.Message).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return domain.Reply{}, internal_errors.InvalidParent("Thread does not exist")
		}
		return domain.Reply{}, storeFailure("failed to insert reply", err)
	}
	return domain.Reply{Id: id, ParentId: creationData.ParentId, Message: creationData.Message}, nil
}

// bumpThread advances last_updated to ts unless a concurrent reply already
// moved it further; the value never decreases.
func bumpThread(ctx context.Context, tx *sql.Tx, id domain.ThreadId, ts int64) error {
	result, err := tx.ExecContext(ctx, `
        UPDATE threads
        SET last_updated = GREATEST(last_updated, $1)
        WHERE id = $2
    `, ts, id)
	if err != nil {
		return storeFailure("failed to update thread activity", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.InvalidParent("Thread does not exist")
	}
	return nil
}

// GetReplies returns every reply of the thread in ascending id order.
func (s *Storage) GetReplies(ctx context.Context, parentId domain.ThreadId) ([]domain.Reply, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, parent_id, message
        FROM replies
        WHERE parent_id = $1
        ORDER BY id ASC
    `, parentId)
	if err != nil {
		return nil, storeFailure("failed to fetch replies", err)
	}
	defer rows.Close()

	replies := []domain.Reply{}
	for rows.Next() {
		var reply domain.Reply
		if err := rows.Scan(&reply.Id, &reply.ParentId, &reply.Message); err != nil {
			return nil, storeFailure("failed to scan reply", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("rows iteration error", err)
	}
	return replies, nil
}
