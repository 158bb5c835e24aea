package services

import (
	"context"
	"log/slog"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

const globalFeedKey = "feed:global"

// FeedService compose les feeds en lecture seule : jointure Content Store +
// Identity Store, tri par date décroissante, hydratation des profils publics.
// Aucune mutation ici ; les lectures observent chaque enregistrement tel quel,
// sans isolation snapshot inter-enregistrements.
type FeedService struct {
	posts ports.PostRepository
	users ports.UserRepository
	cache ports.FeedCache // optionnel (nil = pas de cache)
}

func NewFeedService(posts ports.PostRepository, users ports.UserRepository, cache ports.FeedCache) *FeedService {
	return &FeedService{posts: posts, users: users, cache: cache}
}

// GlobalFeed retourne tous les posts, cache court-TTL en lecture.
func (s *FeedService) GlobalFeed(ctx context.Context) ([]*domain.FeedPost, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, globalFeedKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	feed, err := s.enrich(ctx, posts)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, globalFeedKey, feed); err != nil {
			slog.Warn("global feed cache write failed", "error", err)
		}
	}
	return feed, nil
}

// FollowingFeed retourne les posts des auteurs suivis par le viewer.
// Ne suivre personne est un résultat vide, pas une erreur.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID string) ([]*domain.FeedPost, error) {
	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(viewer.Following) == 0 {
		return []*domain.FeedPost{}, nil
	}

	posts, err := s.posts.ListByAuthors(ctx, viewer.Following)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// UserFeed résout d'abord le username, puis liste l'historique de l'auteur.
func (s *FeedService) UserFeed(ctx context.Context, username string) ([]*domain.FeedPost, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// LikedFeed résout le set likedPosts du user puis hydrate les posts.
// Seul un user inexistant est une erreur ; un set vide donne un feed vide.
func (s *FeedService) LikedFeed(ctx context.Context, userID string) ([]*domain.FeedPost, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.LikedPosts) == 0 {
		return []*domain.FeedPost{}, nil
	}

	posts, err := s.posts.ListByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// enrich hydrate en batch la projection publique de chaque auteur de post et
// de commentaire. Un profil introuvable (user supprimé entre-temps) dégrade en
// projection vide avec l'ID conservé plutôt que de faire échouer le feed.
func (s *FeedService) enrich(ctx context.Context, posts []*domain.Post) ([]*domain.FeedPost, error) {
	ids := make(map[string]struct{})
	for _, p := range posts {
		ids[p.AuthorID] = struct{}{}
		for _, c := range p.Comments {
			ids[c.AuthorID] = struct{}{}
		}
	}

	authorIDs := make([]string, 0, len(ids))
	for id := range ids {
		authorIDs = append(authorIDs, id)
	}

	profiles := map[string]domain.Profile{}
	if len(authorIDs) > 0 {
		var err error
		profiles, err = s.users.GetProfiles(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	lookup := func(id string) domain.Profile {
		if p, ok := profiles[id]; ok {
			return p
		}
		return domain.Profile{ID: id}
	}

	feed := make([]*domain.FeedPost, len(posts))
	for i, p := range posts {
		comments := make([]domain.FeedComment, len(p.Comments))
		for j, c := range p.Comments {
			comments[j] = domain.FeedComment{
				ID:        c.ID,
				Author:    lookup(c.AuthorID),
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			}
		}
		feed[i] = &domain.FeedPost{
			ID:        p.ID,
			Author:    lookup(p.AuthorID),
			Text:      p.Text,
			ImageURL:  p.ImageURL,
			Likes:     p.Likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
		}
	}
	return feed, nil
}
