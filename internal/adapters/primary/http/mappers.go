package http

import (
	"time"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// --- DTOs JSON ---
// Le domaine reste sans tags JSON (hormis Comment, persisté en JSONB) ; le
// mapping protocolaire vit ici, comme les mappers des adapters gRPC.

type userResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	Link       string    `json:"link"`
	ProfileImg string    `json:"profileImg"`
	CoverImg   string    `json:"coverImg"`
	Following  []string  `json:"following"`
	Followers  []string  `json:"followers"`
	LikedPosts []string  `json:"likedPosts"`
	CreatedAt  time.Time `json:"createdAt"`
}

type profileResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	ProfileImg string `json:"profileImg"`
}

// postResponse est la projection brute d'un post (création, commentaire) :
// pas d'auteur hydraté, seulement son ID.
type postResponse struct {
	ID        string            `json:"id"`
	AuthorID  string            `json:"authorId"`
	Text      string            `json:"text"`
	Img       string            `json:"img,omitempty"`
	Likes     []string          `json:"likes"`
	Comments  []commentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type feedCommentResponse struct {
	ID        string          `json:"id"`
	User      profileResponse `json:"user"`
	Text      string          `json:"text"`
	CreatedAt time.Time       `json:"createdAt"`
}

type feedPostResponse struct {
	ID        string                `json:"id"`
	User      profileResponse       `json:"user"`
	Text      string                `json:"text"`
	Img       string                `json:"img,omitempty"`
	Likes     []string              `json:"likes"`
	Comments  []feedCommentResponse `json:"comments"`
	CreatedAt time.Time             `json:"createdAt"`
}

type notificationResponse struct {
	ID        string          `json:"id"`
	From      profileResponse `json:"from"`
	Type      string          `json:"type"`
	Post      string          `json:"post,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"createdAt"`
}

// --- MAPPERS ---

func mapUser(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Email:      u.Email,
		Bio:        u.Bio,
		Link:       u.Link,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
		Following:  emptyIfNil(u.Following),
		Followers:  emptyIfNil(u.Followers),
		LikedPosts: emptyIfNil(u.LikedPosts),
		CreatedAt:  u.CreatedAt,
	}
}

func mapPost(p *domain.Post) postResponse {
	comments := make([]commentResponse, len(p.Comments))
	for i, c := range p.Comments {
		comments[i] = commentResponse{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		}
	}
	return postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Text:      p.Text,
		Img:       p.ImageURL,
		Likes:     emptyIfNil(p.Likes),
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func mapProfile(p domain.Profile) profileResponse {
	return profileResponse{
		ID:         p.ID,
		Username:   p.Username,
		FullName:   p.FullName,
		ProfileImg: p.ProfileImg,
	}
}

func mapFeed(posts []*domain.FeedPost) []feedPostResponse {
	out := make([]feedPostResponse, len(posts))
	for i, p := range posts {
		comments := make([]feedCommentResponse, len(p.Comments))
		for j, c := range p.Comments {
			comments[j] = feedCommentResponse{
				ID:        c.ID,
				User:      mapProfile(c.Author),
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			}
		}
		out[i] = feedPostResponse{
			ID:        p.ID,
			User:      mapProfile(p.Author),
			Text:      p.Text,
			Img:       p.ImageURL,
			Likes:     emptyIfNil(p.Likes),
			Comments:  comments,
			CreatedAt: p.CreatedAt,
		}
	}
	return out
}

func mapNotifications(items []*domain.NotificationView) []notificationResponse {
	out := make([]notificationResponse, len(items))
	for i, n := range items {
		out[i] = notificationResponse{
			ID:        n.ID,
			From:      mapProfile(n.From),
			Type:      string(n.Kind),
			Post:      n.PostID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
