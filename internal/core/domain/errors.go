package domain

import "errors"

// --- ERREURS DU DOMAINE ---
// Les adapters (HTTP, repos) traduisent vers/depuis ces sentinelles ; le coeur
// ne manipule jamais de codes HTTP ou d'erreurs pgx directement.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrSelfReference        = errors.New("cannot follow or unfollow yourself")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidUsername      = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")
	ErrEmptyPost            = errors.New("post must contain either text or an image")
	ErrEmptyComment         = errors.New("comment text is required")
	ErrNotPostOwner         = errors.New("you are not authorized to delete this post")
	ErrUnauthenticated      = errors.New("unauthorized")

	// ErrDependencyUnavailable couvre les collaborateurs externes (blob store,
	// persistance) momentanément indisponibles. Toujours wrappée avec le détail.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
