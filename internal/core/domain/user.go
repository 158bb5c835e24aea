package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User est l'agrégat central : profil + arêtes sociales + posts aimés.
// Following/Followers/LikedPosts sont des ensembles (pas de doublons, ordre
// indifférent). Invariant : un user n'apparaît jamais dans ses propres
// Following/Followers — garanti par le Social Graph Engine, pas par la struct.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	Bio          string
	Link         string
	ProfileImg   string
	CoverImg     string
	Following    []string
	Followers    []string
	LikedPosts   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile est la projection publique injectée dans les feeds et suggestions.
// Jamais de PasswordHash ni d'email ici.
type Profile struct {
	ID         string
	Username   string
	FullName   string
	ProfileImg string
}

// NewUser crée une nouvelle instance valide.
// C'est le SEUL moyen de créer un user proprement (avec ID et validation).
func NewUser(email, username, passwordHash, fullName string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(username)) < 3 {
		return nil, ErrInvalidUsername
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(), // l'identité est générée ICI, pas en DB
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(fullName),
		Following:    []string{},
		Followers:    []string{},
		LikedPosts:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// PublicProfile projette les seuls champs exposables aux autres utilisateurs.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		ProfileImg: u.ProfileImg,
	}
}

// Sanitized retourne une copie sans le hash, pour les réponses API.
func (u *User) Sanitized() *User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// UpdatePassword change le hash et met à jour le timestamp.
func (u *User) UpdatePassword(newHash string) {
	u.PasswordHash = newHash
	u.touch()
}

// ChangeEmail applique la même normalisation qu'à l'inscription : les lookups
// par email supposent une adresse en minuscules.
func (u *User) ChangeEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.touch()
	return nil
}

// ChangeUsername applique la même règle de longueur qu'à l'inscription.
func (u *User) ChangeUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < 3 {
		return ErrInvalidUsername
	}
	u.Username = trimmed
	u.touch()
	return nil
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
