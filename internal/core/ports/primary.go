package ports

import (
	"context"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---
// Des structs plutôt que des listes d'arguments : on peut ajouter des champs
// optionnels plus tard sans casser la signature.

type RegisterCmd struct {
	Email    string
	Password string
	Username string
	FullName string
}

type LoginCmd struct {
	Email    string
	Password string
}

// UpdateProfileCmd utilise des pointeurs pour distinguer "pas de changement"
// (nil) de "mettre à vide".
type UpdateProfileCmd struct {
	UserID          string
	FullName        *string
	Email           *string
	Username        *string
	Bio             *string
	Link            *string
	CurrentPassword *string
	NewPassword     *string
	ProfileImg      *string // image brute (data URI), uploadée vers le blob store
	CoverImg        *string
}

// --- OUTPUTS ---

type AuthResult struct {
	User  *domain.User
	Token string
}

// --- PORTS PRIMAIRES (Driving) ---

// IdentityService couvre l'authentification et le profil.
type IdentityService interface {
	Register(ctx context.Context, cmd RegisterCmd) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCmd) (*AuthResult, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, cmd UpdateProfileCmd) (*domain.User, error)
}

// SocialGraphService maintient les arêtes follow/followers en miroir sur les
// deux enregistrements User concernés.
type SocialGraphService interface {
	// ToggleFollow inverse la relation courante. Deux appels successifs
	// ramènent à l'état initial : c'est un toggle, pas un set.
	ToggleFollow(ctx context.Context, actorID, targetID string) (domain.FollowState, error)
}

// EngagementService mute likes et commentaires d'un post.
type EngagementService interface {
	// ToggleLike retourne l'ensemble de likes résultant.
	ToggleLike(ctx context.Context, actorID, postID string) ([]string, error)
	AddComment(ctx context.Context, actorID, postID, text string) (*domain.Post, error)
}

// PostService gère le cycle de vie des posts (création, suppression).
type PostService interface {
	CreatePost(ctx context.Context, authorID, text, image string) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, actorID string) error
}

// FeedService compose des projections en lecture seule, triées par date de
// création décroissante et enrichies des profils publics.
type FeedService interface {
	GlobalFeed(ctx context.Context) ([]*domain.FeedPost, error)
	FollowingFeed(ctx context.Context, viewerID string) ([]*domain.FeedPost, error)
	UserFeed(ctx context.Context, username string) ([]*domain.FeedPost, error)
	LikedFeed(ctx context.Context, userID string) ([]*domain.FeedPost, error)
}

// SuggestionService échantillonne des profils à suivre.
type SuggestionService interface {
	// SuggestUsers exclut l'acteur et tout son ensemble following, puis tronque
	// au nombre d'affichage configuré. Pool vide => liste vide, jamais d'erreur.
	SuggestUsers(ctx context.Context, actorID string) ([]*domain.User, error)
}

// NotificationService expose le journal d'interactions du viewer.
type NotificationService interface {
	// List retourne les notifications du viewer (émetteur enrichi) et les
	// marque lues.
	List(ctx context.Context, userID string) ([]*domain.NotificationView, error)
	Clear(ctx context.Context, userID string) error
}
