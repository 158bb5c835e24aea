package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// PostgresNotificationRepo est un journal append-only : INSERT, lecture par
// destinataire, flag de lecture, purge par destinataire. Jamais d'UPDATE sur
// le contenu d'un enregistrement.
type PostgresNotificationRepo struct {
	db *pgxpool.Pool
}

func NewPostgresNotificationRepo(db *pgxpool.Pool) *PostgresNotificationRepo {
	return &PostgresNotificationRepo{db: db}
}

func (r *PostgresNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	q := `
		INSERT INTO notifications (id, from_id, to_id, kind, post_id, read, created_at)
		VALUES (@id, @from_id, @to_id, @kind, @post_id, @read, @created_at)
	`
	args := pgx.NamedArgs{
		"id":         n.ID,
		"from_id":    n.FromID,
		"to_id":      n.ToID,
		"kind":       string(n.Kind),
		"post_id":    n.PostID,
		"read":       n.Read,
		"created_at": n.CreatedAt,
	}
	_, err := r.db.Exec(ctx, q, args)
	return err
}

func (r *PostgresNotificationRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	q := `
		SELECT id, from_id, to_id, kind, post_id, read, created_at
		FROM notifications
		WHERE to_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var kind string
		if err := rows.Scan(&n.ID, &n.FromID, &n.ToID, &kind, &n.PostID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Kind = domain.NotificationKind(kind)
		items = append(items, &n)
	}
	return items, rows.Err()
}

func (r *PostgresNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE to_id = $1 AND read = FALSE`, userID)
	return err
}

func (r *PostgresNotificationRepo) DeleteForUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE to_id = $1`, userID)
	return err
}
