package services

import (
	"context"
	"log/slog"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// NotificationService lit le journal d'interactions du viewer.
// Le journal lui-même n'est alimenté que par les engines follow/like.
type NotificationService struct {
	notifications ports.NotificationRepository
	users         ports.UserRepository
}

func NewNotificationService(notifications ports.NotificationRepository, users ports.UserRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

// List retourne les notifications du viewer, enrichies de la projection
// publique de l'émetteur, puis les marque toutes lues. Le marquage est
// best-effort : la liste part même si l'update échoue.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*domain.NotificationView, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fromIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, n := range items {
		if _, ok := seen[n.FromID]; !ok {
			seen[n.FromID] = struct{}{}
			fromIDs = append(fromIDs, n.FromID)
		}
	}

	profiles := map[string]domain.Profile{}
	if len(fromIDs) > 0 {
		profiles, err = s.users.GetProfiles(ctx, fromIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]*domain.NotificationView, len(items))
	for i, n := range items {
		from, ok := profiles[n.FromID]
		if !ok {
			from = domain.Profile{ID: n.FromID}
		}
		views[i] = &domain.NotificationView{
			ID:        n.ID,
			From:      from,
			Kind:      n.Kind,
			PostID:    n.PostID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}

	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		slog.Warn("mark notifications read failed", "user_id", userID, "error", err)
	}
	return views, nil
}

func (s *NotificationService) Clear(ctx context.Context, userID string) error {
	return s.notifications.DeleteForUser(ctx, userID)
}
