package ports

import (
	"context"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// --- PERSISTANCE (DB) ---

// UserRepository expose du CRUD par identifiant plus des mutations "ensemble"
// (ajout/retrait d'une valeur dans un set) et un échantillonnage aléatoire.
// Les mutations d'ensemble sont unitaires par enregistrement : les deux côtés
// d'une arête follow sont deux appels distincts, volontairement non
// transactionnels (voir la doc du Social Graph Engine).
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	AddFollowing(ctx context.Context, userID, targetID string) error
	RemoveFollowing(ctx context.Context, userID, targetID string) error
	AddLikedPost(ctx context.Context, userID, postID string) error
	RemoveLikedPost(ctx context.Context, userID, postID string) error

	// GetProfiles hydrate les projections publiques en batch (clef = user ID).
	GetProfiles(ctx context.Context, ids []string) (map[string]domain.Profile, error)

	// Sample tire un échantillon uniforme parmi tous les users sauf excludeIDs.
	Sample(ctx context.Context, excludeIDs []string, size int) ([]*domain.User, error)
}

type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, postID string) error

	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AppendComment(ctx context.Context, postID string, comment domain.Comment) error

	// Toutes les listes sont triées par created_at décroissant.
	ListAll(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]*domain.Post, error)
	ListByIDs(ctx context.Context, postIDs []string) ([]*domain.Post, error)
}

// NotificationRepository est un journal append-only : pas d'update hormis le
// flag de lecture, pas de rétractation lors d'un unfollow/unlike.
type NotificationRepository interface {
	Save(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// --- CACHE ---

// FeedCache est un cache court-TTL en lecture pour les feeds chauds.
// Un miss ou une erreur cache ne doit jamais faire échouer la lecture.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]*domain.FeedPost, error)
	Set(ctx context.Context, key string, items []*domain.FeedPost) error
}

// --- MESSAGERIE (BROKER) ---

// EventPublisher notifie les consommateurs externes (analytics, push).
// Tous les appels sont best-effort côté services : une erreur est loggée,
// jamais propagée.
type EventPublisher interface {
	PublishUserFollowed(ctx context.Context, actorID, targetID string) error
	PublishPostLiked(ctx context.Context, actorID, postID, authorID string) error
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostDeleted(ctx context.Context, postID string) error
}

// --- BLOB STORE (IMAGES) ---

// BlobStore accepte une image brute et retourne une URL stable dont le
// dernier segment de chemin (extension retirée) sert de clef de suppression.
type BlobStore interface {
	Upload(ctx context.Context, image string) (url string, err error)
	Delete(ctx context.Context, publicID string) error
}

// --- SÉCURITÉ (CRYPTO) ---

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenProvider interface {
	Generate(user *domain.User) (string, error)
	Validate(token string) (userID string, err error)
}
