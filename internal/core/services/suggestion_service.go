package services

import (
	"context"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// SuggestionService tire un échantillon aléatoire uniforme dans le pool des
// users que l'acteur ne suit pas déjà (lui-même exclu). Aucun état "déjà
// suggéré" n'est persisté : deux appels peuvent retourner des résultats
// différents.
type SuggestionService struct {
	users ports.UserRepository

	poolSize     int // sur-échantillon tiré au store
	displayCount int // troncature finale renvoyée au client
}

func NewSuggestionService(users ports.UserRepository, poolSize, displayCount int) *SuggestionService {
	if poolSize <= 0 {
		poolSize = 10
	}
	if displayCount <= 0 {
		displayCount = 4
	}
	return &SuggestionService{users: users, poolSize: poolSize, displayCount: displayCount}
}

// SuggestUsers retourne au plus displayCount profils sans champs privés.
// Un pool éligible vide donne une liste vide, jamais une erreur.
func (s *SuggestionService) SuggestUsers(ctx context.Context, actorID string) ([]*domain.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	exclude := append([]string{actor.ID}, actor.Following...)
	sampled, err := s.users.Sample(ctx, exclude, s.poolSize)
	if err != nil {
		return nil, err
	}

	if len(sampled) > s.displayCount {
		sampled = sampled[:s.displayCount]
	}

	suggestions := make([]*domain.User, len(sampled))
	for i, u := range sampled {
		suggestions[i] = u.Sanitized()
	}
	return suggestions, nil
}
