package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwebweb5/societify/internal/core/domain"
)

func TestSuggestUsers_ExcludesSelfAndFollowing(t *testing.T) {
	alice := mustUser("alice")
	alice.Following = []string{"u1", "u2"}
	users := newFakeUserRepo(alice)
	svc := NewSuggestionService(users, 10, 4)

	_, err := svc.SuggestUsers(context.Background(), alice.ID)

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{alice.ID, "u1", "u2"}, users.lastExclude)
	assert.Equal(t, 10, users.lastSize)
}

func TestSuggestUsers_TruncatesToDisplayCount(t *testing.T) {
	alice := mustUser("alice")
	users := newFakeUserRepo(alice)
	for _, name := range []string{"usr1", "usr2", "usr3", "usr4", "usr5", "usr6"} {
		users.sampleResult = append(users.sampleResult, mustUser(name))
	}
	svc := NewSuggestionService(users, 10, 4)

	out, err := svc.SuggestUsers(context.Background(), alice.ID)

	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestSuggestUsers_SanitizesProfiles(t *testing.T) {
	alice := mustUser("alice")
	bob := mustUser("bob")
	users := newFakeUserRepo(alice)
	users.sampleResult = []*domain.User{bob}
	svc := NewSuggestionService(users, 10, 4)

	out, err := svc.SuggestUsers(context.Background(), alice.ID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].PasswordHash)
	assert.Equal(t, bob.Username, out[0].Username)
	// L'original n'est pas muté.
	assert.NotEmpty(t, bob.PasswordHash)
}

func TestSuggestUsers_EmptyPoolIsEmptyResult(t *testing.T) {
	alice := mustUser("alice")
	users := newFakeUserRepo(alice)
	svc := NewSuggestionService(users, 10, 4)

	out, err := svc.SuggestUsers(context.Background(), alice.ID)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSuggestUsers_UnknownActor(t *testing.T) {
	svc := NewSuggestionService(newFakeUserRepo(), 10, 4)

	_, err := svc.SuggestUsers(context.Background(), "ghost")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
