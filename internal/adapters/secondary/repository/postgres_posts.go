package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webwebweb5/societify/internal/core/domain"
)

const postColumns = `id, author_id, text, image_url, likes, comments, created_at`

// PostgresPostRepo garde le set de likes en TEXT[] (séquence stable pour les
// payloads) et les commentaires en JSONB append-only : l'ordre d'insertion
// est l'ordre chronologique et il n'est jamais réécrit.
type PostgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(db *pgxpool.Pool) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

func (r *PostgresPostRepo) Save(ctx context.Context, post *domain.Post) error {
	q := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	commentsJSON, err := json.Marshal(post.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}

	_, err = r.db.Exec(ctx, q,
		post.ID, post.AuthorID, post.Text, post.ImageURL,
		post.Likes, commentsJSON, post.CreatedAt,
	)
	return err
}

func (r *PostgresPostRepo) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.db.QueryRow(ctx, q, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("db: find post: %w", err)
	}
	return p, nil
}

func (r *PostgresPostRepo) Delete(ctx context.Context, postID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	return err
}

// AddLike préserve l'ordre d'insertion du set (append en fin), sans doublon.
func (r *PostgresPostRepo) AddLike(ctx context.Context, postID, userID string) error {
	q := `
		UPDATE posts SET likes = array_append(likes, $2)
		WHERE id = $1 AND NOT ($2 = ANY(likes))
	`
	_, err := r.db.Exec(ctx, q, postID, userID)
	return err
}

func (r *PostgresPostRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	q := `UPDATE posts SET likes = array_remove(likes, $2) WHERE id = $1`
	_, err := r.db.Exec(ctx, q, postID, userID)
	return err
}

// AppendComment concatène en fin de tableau JSONB, jamais de réécriture.
func (r *PostgresPostRepo) AppendComment(ctx context.Context, postID string, comment domain.Comment) error {
	payload, err := json.Marshal([]domain.Comment{comment})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	q := `UPDATE posts SET comments = comments || $2::jsonb WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, postID, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// --- LECTURES (toutes triées created_at DESC) ---

func (r *PostgresPostRepo) ListAll(ctx context.Context) ([]*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	return r.queryPosts(ctx, q)
}

func (r *PostgresPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryPosts(ctx, q, authorID)
}

func (r *PostgresPostRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE author_id = ANY($1) ORDER BY created_at DESC`
	return r.queryPosts(ctx, q, authorIDs)
}

func (r *PostgresPostRepo) ListByIDs(ctx context.Context, postIDs []string) ([]*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts WHERE id = ANY($1) ORDER BY created_at DESC`
	return r.queryPosts(ctx, q, postIDs)
}

// --- HELPERS ---

func (r *PostgresPostRepo) queryPosts(ctx context.Context, q string, args ...any) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var commentsJSON []byte

	if err := row.Scan(&p.ID, &p.AuthorID, &p.Text, &p.ImageURL, &p.Likes, &commentsJSON, &p.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(commentsJSON, &p.Comments); err != nil {
		// Une colonne comments illisible est une corruption, pas un cas vide.
		return nil, fmt.Errorf("db: unmarshal comments for post %s: %w", p.ID, err)
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	return &p, nil
}
