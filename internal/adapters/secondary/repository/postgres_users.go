package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webwebweb5/societify/internal/core/domain"
)

const userColumns = `id, email, username, password_hash, full_name, bio, link, profile_img, cover_img, following, followers, liked_posts, created_at, updated_at`

// PostgresUserRepo stocke les ensembles (following, followers, liked_posts)
// dans des colonnes TEXT[] mutées par array_append/array_remove gardés.
// Chaque mutation d'ensemble est un UPDATE unitaire sur une seule ligne : les
// deux côtés d'une arête follow restent deux statements séparés, sans
// transaction, conformément au modèle de cohérence documenté du coeur.
type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) Save(ctx context.Context, user *domain.User) error {
	q := `
		INSERT INTO users (` + userColumns + `)
		VALUES (@id, @email, @username, @password_hash, @full_name, @bio, @link, @profile_img, @cover_img, @following, @followers, @liked_posts, @created_at, @updated_at)
	`
	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"full_name":     user.FullName,
		"bio":           user.Bio,
		"link":          user.Link,
		"profile_img":   user.ProfileImg,
		"cover_img":     user.CoverImg,
		"following":     user.Following,
		"followers":     user.Followers,
		"liked_posts":   user.LikedPosts,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return r.handleError(err)
	}
	return nil
}

func (r *PostgresUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *PostgresUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PostgresUserRepo) Update(ctx context.Context, user *domain.User) error {
	q := `
		UPDATE users
		SET email = @email, username = @username, password_hash = @password_hash,
		    full_name = @full_name, bio = @bio, link = @link,
		    profile_img = @profile_img, cover_img = @cover_img, updated_at = @updated_at
		WHERE id = @id
	`
	args := pgx.NamedArgs{
		"id":            user.ID,
		"email":         user.Email,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"full_name":     user.FullName,
		"bio":           user.Bio,
		"link":          user.Link,
		"profile_img":   user.ProfileImg,
		"cover_img":     user.CoverImg,
		"updated_at":    user.UpdatedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return r.handleError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// --- MUTATIONS D'ENSEMBLE ---
// La garde NOT (… = ANY(…)) donne la sémantique "set" : pas de doublon même
// sous requêtes concurrentes. 0 ligne affectée = déjà membre (ou déjà retiré),
// ce qui est un no-op valide pour un toggle.

func (r *PostgresUserRepo) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.addToSet(ctx, "followers", userID, followerID)
}

func (r *PostgresUserRepo) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.removeFromSet(ctx, "followers", userID, followerID)
}

func (r *PostgresUserRepo) AddFollowing(ctx context.Context, userID, targetID string) error {
	return r.addToSet(ctx, "following", userID, targetID)
}

func (r *PostgresUserRepo) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return r.removeFromSet(ctx, "following", userID, targetID)
}

func (r *PostgresUserRepo) AddLikedPost(ctx context.Context, userID, postID string) error {
	return r.addToSet(ctx, "liked_posts", userID, postID)
}

func (r *PostgresUserRepo) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return r.removeFromSet(ctx, "liked_posts", userID, postID)
}

func (r *PostgresUserRepo) GetProfiles(ctx context.Context, ids []string) (map[string]domain.Profile, error) {
	q := `SELECT id, username, full_name, profile_img FROM users WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make(map[string]domain.Profile, len(ids))
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.FullName, &p.ProfileImg); err != nil {
			return nil, err
		}
		profiles[p.ID] = p
	}
	return profiles, rows.Err()
}

// Sample tire un échantillon uniforme du pool éligible au moment de l'appel.
// ORDER BY random() suffit à cette échelle ; à revoir si la table users
// dépasse quelques millions de lignes.
func (r *PostgresUserRepo) Sample(ctx context.Context, excludeIDs []string, size int) ([]*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE NOT (id = ANY($1)) ORDER BY random() LIMIT $2`

	rows, err := r.db.Query(ctx, q, excludeIDs, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- HELPERS ---

func (r *PostgresUserRepo) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	q := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	u, err := scanUser(r.db.QueryRow(ctx, q, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db: get user by %s: %w", column, err)
	}
	return u, nil
}

func (r *PostgresUserRepo) addToSet(ctx context.Context, column, userID, value string) error {
	q := fmt.Sprintf(`
		UPDATE users SET %s = array_append(%s, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(%s))
	`, column, column, column)
	_, err := r.db.Exec(ctx, q, userID, value)
	return err
}

func (r *PostgresUserRepo) removeFromSet(ctx context.Context, column, userID, value string) error {
	q := fmt.Sprintf(`
		UPDATE users SET %s = array_remove(%s, $2), updated_at = now()
		WHERE id = $1
	`, column, column)
	_, err := r.db.Exec(ctx, q, userID, value)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName,
		&u.Bio, &u.Link, &u.ProfileImg, &u.CoverImg,
		&u.Following, &u.Followers, &u.LikedPosts,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// handleError traduit les codes d'erreur PostgreSQL en erreurs du domaine.
func (r *PostgresUserRepo) handleError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return domain.ErrUsernameAlreadyTaken
		}
		return domain.ErrEmailAlreadyExists
	}
	return err
}
