package services

import (
	"context"
	"log/slog"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// SocialGraphService réconcilie la paire d'ensembles following/followers des
// deux Users concernés en une seule opération logique. Les deux UPDATE ne sont
// pas transactionnels entre eux : un état transitoire (arête posée d'un côté
// seulement) est accepté tant qu'un store transactionnel n'est pas introduit.
type SocialGraphService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
	events        ports.EventPublisher
}

func NewSocialGraphService(
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	events ports.EventPublisher,
) *SocialGraphService {
	return &SocialGraphService{users: users, notifications: notifications, events: events}
}

// ToggleFollow inverse la relation courante entre actor et target.
// Deux appels successifs ramènent les deux users à leur état initial : c'est
// la sémantique voulue (toggle), pas un bug.
func (s *SocialGraphService) ToggleFollow(ctx context.Context, actorID, targetID string) (domain.FollowState, error) {
	if actorID == targetID {
		return "", domain.ErrSelfReference
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return "", err
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return "", err
	}

	// Décision pure : l'état courant se lit côté actor.
	switch domain.DecideToggle(actor.Following, targetID) {
	case domain.ToggleRemove:
		// Unfollow : retrait des deux côtés, aucune notification.
		if err := s.users.RemoveFollower(ctx, targetID, actorID); err != nil {
			return "", err
		}
		if err := s.users.RemoveFollowing(ctx, actorID, targetID); err != nil {
			return "", err
		}
		return domain.StateUnfollowed, nil

	default:
		if err := s.users.AddFollower(ctx, targetID, actorID); err != nil {
			return "", err
		}
		if err := s.users.AddFollowing(ctx, actorID, targetID); err != nil {
			return "", err
		}

		// Side effects APRÈS la mutation d'arête, et best-effort : un échec de
		// notification ne doit jamais annuler le follow ni remonter au caller.
		if err := s.notifications.Save(ctx, domain.NewFollowNotification(actorID, targetID)); err != nil {
			slog.Error("follow notification write failed", "from", actorID, "to", targetID, "error", err)
		}
		if err := s.events.PublishUserFollowed(ctx, actorID, targetID); err != nil {
			slog.Warn("user.followed event publish failed", "error", err)
		}

		return domain.StateFollowed, nil
	}
}
