package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationFollow NotificationKind = "follow"
	NotificationLike   NotificationKind = "like"
)

// Notification est un enregistrement append-only, créé uniquement par le
// Social Graph Engine (follow) et l'Engagement Engine (like).
// Ni unfollow, ni unlike, ni comment ne notifient : décision produit assumée.
type Notification struct {
	ID        string
	FromID    string
	ToID      string
	Kind      NotificationKind
	PostID    string // renseigné pour "like", vide pour "follow"
	Read      bool
	CreatedAt time.Time
}

func NewFollowNotification(fromID, toID string) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Kind:      NotificationFollow,
		CreatedAt: time.Now().UTC(),
	}
}

// NotificationView est la notification enrichie de la projection publique de
// son émetteur, servie au viewer.
type NotificationView struct {
	ID        string
	From      Profile
	Kind      NotificationKind
	PostID    string
	Read      bool
	CreatedAt time.Time
}

func NewLikeNotification(fromID, toID, postID string) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Kind:      NotificationLike,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
}
