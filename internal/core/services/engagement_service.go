package services

import (
	"context"
	"log/slog"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// EngagementService mute le set de likes d'un post et le set likedPosts de
// l'utilisateur en tandem, et attache les commentaires. Même modèle que le
// graphe social : deux enregistrements, deux écritures, pas de transaction.
type EngagementService struct {
	posts         ports.PostRepository
	users         ports.UserRepository
	notifications ports.NotificationRepository
	events        ports.EventPublisher
}

func NewEngagementService(
	posts ports.PostRepository,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	events ports.EventPublisher,
) *EngagementService {
	return &EngagementService{posts: posts, users: users, notifications: notifications, events: events}
}

// ToggleLike inverse le like courant et retourne le set de likes résultant.
func (s *EngagementService) ToggleLike(ctx context.Context, actorID, postID string) ([]string, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	switch domain.DecideToggle(post.Likes, actorID) {
	case domain.ToggleRemove:
		// Unlike : aucune notification, le journal n'est pas rétracté non plus.
		if err := s.posts.RemoveLike(ctx, postID, actorID); err != nil {
			return nil, err
		}
		if err := s.users.RemoveLikedPost(ctx, actorID, postID); err != nil {
			return nil, err
		}
		return domain.Without(post.Likes, actorID), nil

	default:
		if err := s.posts.AddLike(ctx, postID, actorID); err != nil {
			return nil, err
		}
		if err := s.users.AddLikedPost(ctx, actorID, postID); err != nil {
			return nil, err
		}

		// Un self-like ne notifie jamais.
		if post.AuthorID != actorID {
			if err := s.notifications.Save(ctx, domain.NewLikeNotification(actorID, post.AuthorID, postID)); err != nil {
				slog.Error("like notification write failed", "from", actorID, "post", postID, "error", err)
			}
		}
		if err := s.events.PublishPostLiked(ctx, actorID, postID, post.AuthorID); err != nil {
			slog.Warn("post.liked event publish failed", "error", err)
		}

		return append(post.Likes, actorID), nil
	}
}

// AddComment ajoute un commentaire horodaté en fin de séquence.
// Pas de notification pour les commentaires : comportement produit assumé.
func (s *EngagementService) AddComment(ctx context.Context, actorID, postID, text string) (*domain.Post, error) {
	comment, err := domain.NewComment(actorID, text)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.posts.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	post.Comments = append(post.Comments, comment)
	return post, nil
}
