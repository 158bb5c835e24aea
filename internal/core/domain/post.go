package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post appartient à son auteur pour la suppression ; les likes et commentaires
// sont mutés par n'importe quel utilisateur via l'Engagement Engine.
// Likes est un ensemble dont l'ordre d'insertion est conservé pour les payloads.
// Comments est une séquence append-only (ordre d'insertion = chronologique).
type Post struct {
	ID        string
	AuthorID  string
	Text      string
	ImageURL  string
	Likes     []string
	Comments  []Comment
	CreatedAt time.Time
}

// Comment est immuable une fois ajouté (pas d'édition ni de suppression).
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost valide l'invariant : texte et image ne peuvent pas être absents tous les deux.
func NewPost(authorID, text, imageURL string) (*Post, error) {
	if text == "" && imageURL == "" {
		return nil, ErrEmptyPost
	}
	return &Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Text:      text,
		ImageURL:  imageURL,
		Likes:     []string{},
		Comments:  []Comment{},
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewComment trim le texte et rejette les commentaires vides.
func NewComment(authorID, text string) (Comment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Comment{}, ErrEmptyComment
	}
	return Comment{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Text:      trimmed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// --- PROJECTIONS FEED ---

// FeedPost est un Post enrichi de la projection publique de son auteur
// et de celle de chaque auteur de commentaire.
type FeedPost struct {
	ID        string
	Author    Profile
	Text      string
	ImageURL  string
	Likes     []string
	Comments  []FeedComment
	CreatedAt time.Time
}

type FeedComment struct {
	ID        string
	Author    Profile
	Text      string
	CreatedAt time.Time
}
