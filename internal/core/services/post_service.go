package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// PostService gère le cycle de vie des posts. Les images passent par le blob
// store ; seule l'URL stable est persistée.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	blobs  ports.BlobStore
	events ports.EventPublisher
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	blobs ports.BlobStore,
	events ports.EventPublisher,
) *PostService {
	return &PostService{posts: posts, users: users, blobs: blobs, events: events}
}

// CreatePost valide l'invariant texte-ou-image, uploade l'image éventuelle
// puis persiste. L'upload précède la sauvegarde : pas de post sans son blob.
func (s *PostService) CreatePost(ctx context.Context, authorID, text, image string) (*domain.Post, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	if text == "" && image == "" {
		return nil, domain.ErrEmptyPost
	}

	imageURL := ""
	if image != "" {
		url, err := s.blobs.Upload(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("%w: image upload: %v", domain.ErrDependencyUnavailable, err)
		}
		imageURL = url
	}

	post, err := domain.NewPost(authorID, text, imageURL)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	if err := s.events.PublishPostCreated(ctx, post); err != nil {
		slog.Warn("post.created event publish failed", "post_id", post.ID, "error", err)
	}
	return post, nil
}

// DeletePost supprime un post de son auteur uniquement. Le blob part d'abord :
// si sa suppression échoue, le post reste et l'opération remonte l'échec.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return domain.ErrNotPostOwner
	}

	if post.ImageURL != "" {
		publicID := domain.BlobPublicID(post.ImageURL)
		if err := s.blobs.Delete(ctx, publicID); err != nil {
			return fmt.Errorf("%w: image delete: %v", domain.ErrDependencyUnavailable, err)
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	if err := s.events.PublishPostDeleted(ctx, postID); err != nil {
		slog.Warn("post.deleted event publish failed", "post_id", postID, "error", err)
	}
	return nil
}
