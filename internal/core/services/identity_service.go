package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// IdentityService couvre l'authentification (signup/login) et le profil.
// La logique applicative vit ici ; hachage et tokens sont des ports.
type IdentityService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenProvider
	blobs  ports.BlobStore
}

func NewIdentityService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenProvider,
	blobs ports.BlobStore,
) *IdentityService {
	return &IdentityService{users: users, hasher: hasher, tokens: tokens, blobs: blobs}
}

func (s *IdentityService) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResult, error) {
	// Vérification "soft" d'unicité ; la contrainte UNIQUE de la DB reste la
	// garantie ultime en cas de course.
	if existing, err := s.users.GetByEmail(ctx, cmd.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, err := s.users.GetByUsername(ctx, cmd.Username); err == nil && existing != nil {
		return nil, domain.ErrUsernameAlreadyTaken
	}

	if len(cmd.Password) < 6 {
		return nil, domain.ErrPasswordTooShort
	}
	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}

	user, err := domain.NewUser(cmd.Email, cmd.Username, hash, cmd.FullName)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("repository save failed: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		// User créé mais token échoué : le client devra retenter un login.
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *IdentityService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// On ne révèle pas si c'est l'email ou le mot de passe qui est faux.
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("login token gen failed: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *IdentityService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *IdentityService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// UpdateProfile applique les champs présents (pointeur non-nil). Changement de
// mot de passe : l'ancien doit être fourni et correct. Nouvelle image : upload
// d'abord, puis suppression best-effort de l'ancien blob.
func (s *IdentityService) UpdateProfile(ctx context.Context, cmd ports.UpdateProfileCmd) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.CurrentPassword != nil || cmd.NewPassword != nil {
		if cmd.CurrentPassword == nil || cmd.NewPassword == nil {
			return nil, fmt.Errorf("%w: both current and new password are required", domain.ErrInvalidCredentials)
		}
		if err := s.hasher.Compare(user.PasswordHash, *cmd.CurrentPassword); err != nil {
			return nil, domain.ErrInvalidCredentials
		}
		if len(*cmd.NewPassword) < 6 {
			return nil, domain.ErrPasswordTooShort
		}
		newHash, err := s.hasher.Hash(*cmd.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hashing failed: %w", err)
		}
		user.UpdatePassword(newHash)
	}

	if cmd.ProfileImg != nil {
		url, err := s.replaceImage(ctx, user.ProfileImg, *cmd.ProfileImg)
		if err != nil {
			return nil, err
		}
		user.ProfileImg = url
	}
	if cmd.CoverImg != nil {
		url, err := s.replaceImage(ctx, user.CoverImg, *cmd.CoverImg)
		if err != nil {
			return nil, err
		}
		user.CoverImg = url
	}

	if cmd.Email != nil {
		// Même normalisation qu'à l'inscription, sinon le lookup par email ne
		// retrouve plus le compte. L'unicité ignore le propre enregistrement du
		// user (changement de casse de sa propre adresse).
		email := strings.ToLower(strings.TrimSpace(*cmd.Email))
		if email != user.Email {
			if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil && existing.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		if err := user.ChangeEmail(email); err != nil {
			return nil, err
		}
	}
	if cmd.Username != nil {
		username := strings.TrimSpace(*cmd.Username)
		if username != user.Username {
			if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil && existing.ID != user.ID {
				return nil, domain.ErrUsernameAlreadyTaken
			}
		}
		if err := user.ChangeUsername(username); err != nil {
			return nil, err
		}
	}
	if cmd.FullName != nil {
		user.FullName = *cmd.FullName
	}
	if cmd.Bio != nil {
		user.Bio = *cmd.Bio
	}
	if cmd.Link != nil {
		user.Link = *cmd.Link
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile failed: %w", err)
	}
	return user, nil
}

// replaceImage uploade la nouvelle image puis supprime l'ancienne best-effort.
func (s *IdentityService) replaceImage(ctx context.Context, oldURL, image string) (string, error) {
	url, err := s.blobs.Upload(ctx, image)
	if err != nil {
		return "", fmt.Errorf("%w: image upload: %v", domain.ErrDependencyUnavailable, err)
	}
	if oldURL != "" {
		if err := s.blobs.Delete(ctx, domain.BlobPublicID(oldURL)); err != nil {
			slog.Warn("old image delete failed", "url", oldURL, "error", err)
		}
	}
	return url, nil
}
