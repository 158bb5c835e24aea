package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webwebweb5/societify/internal/core/domain"
	"github.com/webwebweb5/societify/internal/core/ports"
)

// Stubs des ports primaires : chaque champ non-nil court-circuite la réponse.

type stubTokens struct{}

func (stubTokens) Generate(user *domain.User) (string, error) { return "token-" + user.ID, nil }

func (stubTokens) Validate(token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", errors.New("invalid token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

type stubIdentity struct {
	user *domain.User
	err  error
}

func (s *stubIdentity) Register(ctx context.Context, cmd ports.RegisterCmd) (*ports.AuthResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.AuthResult{User: s.user, Token: "token-" + s.user.ID}, nil
}

func (s *stubIdentity) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.AuthResult{User: s.user, Token: "token-" + s.user.ID}, nil
}

func (s *stubIdentity) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubIdentity) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubIdentity) UpdateProfile(ctx context.Context, cmd ports.UpdateProfileCmd) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

type stubSocial struct {
	state domain.FollowState
	err   error

	lastActor, lastTarget string
}

func (s *stubSocial) ToggleFollow(ctx context.Context, actorID, targetID string) (domain.FollowState, error) {
	s.lastActor, s.lastTarget = actorID, targetID
	return s.state, s.err
}

type stubEngagement struct {
	likes []string
	post  *domain.Post
	err   error
}

func (s *stubEngagement) ToggleLike(ctx context.Context, actorID, postID string) ([]string, error) {
	return s.likes, s.err
}

func (s *stubEngagement) AddComment(ctx context.Context, actorID, postID, text string) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

type stubPosts struct {
	post *domain.Post
	err  error
}

func (s *stubPosts) CreatePost(ctx context.Context, authorID, text, image string) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPosts) DeletePost(ctx context.Context, postID, actorID string) error { return s.err }

type stubFeeds struct {
	feed []*domain.FeedPost
	err  error
}

func (s *stubFeeds) GlobalFeed(ctx context.Context) ([]*domain.FeedPost, error) {
	return s.feed, s.err
}

func (s *stubFeeds) FollowingFeed(ctx context.Context, viewerID string) ([]*domain.FeedPost, error) {
	return s.feed, s.err
}

func (s *stubFeeds) UserFeed(ctx context.Context, username string) ([]*domain.FeedPost, error) {
	return s.feed, s.err
}

func (s *stubFeeds) LikedFeed(ctx context.Context, userID string) ([]*domain.FeedPost, error) {
	return s.feed, s.err
}

type stubSuggestions struct {
	users []*domain.User
	err   error
}

func (s *stubSuggestions) SuggestUsers(ctx context.Context, actorID string) ([]*domain.User, error) {
	return s.users, s.err
}

type stubNotifications struct {
	views   []*domain.NotificationView
	err     error
	cleared bool
}

func (s *stubNotifications) List(ctx context.Context, userID string) ([]*domain.NotificationView, error) {
	return s.views, s.err
}

func (s *stubNotifications) Clear(ctx context.Context, userID string) error {
	s.cleared = true
	return s.err
}

type stubs struct {
	identity      *stubIdentity
	social        *stubSocial
	engagement    *stubEngagement
	posts         *stubPosts
	feeds         *stubFeeds
	suggestions   *stubSuggestions
	notifications *stubNotifications
}

func newStubs() *stubs {
	user, err := domain.NewUser("alice@example.com", "alice", "hash", "Alice")
	if err != nil {
		panic(err)
	}
	post, err := domain.NewPost(user.ID, "hello", "")
	if err != nil {
		panic(err)
	}
	return &stubs{
		identity:      &stubIdentity{user: user},
		social:        &stubSocial{state: domain.StateFollowed},
		engagement:    &stubEngagement{likes: []string{}, post: post},
		posts:         &stubPosts{post: post},
		feeds:         &stubFeeds{feed: []*domain.FeedPost{}},
		suggestions:   &stubSuggestions{},
		notifications: &stubNotifications{},
	}
}

func newTestRouter(s *stubs) http.Handler {
	tokens := stubTokens{}
	return NewRouter("test", "societify-test", tokens, Handlers{
		Auth:          NewAuthHandler(s.identity, tokens, false),
		Users:         NewUserHandler(s.identity, s.social, s.suggestions),
		Posts:         NewPostHandler(s.posts, s.engagement, s.feeds),
		Notifications: NewNotificationHandler(s.notifications),
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "token-viewer-1"})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RejectsMissingCookie(t *testing.T) {
	router := newTestRouter(newStubs())

	for _, path := range []string{
		"/api/users/suggested",
		"/api/posts/all",
		"/api/notifications",
	} {
		rec := doRequest(t, router, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path=%s", path)
	}
}

func TestRouter_RejectsInvalidToken(t *testing.T) {
	router := newTestRouter(newStubs())

	req := httptest.NewRequest(http.MethodGet, "/api/posts/all", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: "forged"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignUp_SetsAuthCookie(t *testing.T) {
	s := newStubs()
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/sign-up",
		`{"username":"alice","fullName":"Alice","email":"alice@example.com","password":"secret123"}`, false)

	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "passwordHash")
}

func TestSignUp_MissingFields(t *testing.T) {
	router := newTestRouter(newStubs())

	rec := doRequest(t, router, http.MethodPost, "/api/auth/sign-up", `{"username":"alice"}`, false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newStubs()
	s.identity.err = domain.ErrInvalidCredentials
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestToggleFollow_ReturnsState(t *testing.T) {
	s := newStubs()
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/users/follow/bob-2", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"followed"}`, rec.Body.String())
	assert.Equal(t, "viewer-1", s.social.lastActor)
	assert.Equal(t, "bob-2", s.social.lastTarget)
}

func TestToggleFollow_SelfReference(t *testing.T) {
	s := newStubs()
	s.social.err = domain.ErrSelfReference
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/users/follow/viewer-1", "", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleLike_ReturnsLikeSet(t *testing.T) {
	s := newStubs()
	s.engagement.likes = []string{"viewer-1"}
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/posts/like/p1", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["viewer-1"]`, rec.Body.String())
}

func TestToggleLike_UnknownPost(t *testing.T) {
	s := newStubs()
	s.engagement.err = domain.ErrPostNotFound
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/posts/like/ghost", "", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGlobalFeed_MapsDTO(t *testing.T) {
	s := newStubs()
	s.feeds.feed = []*domain.FeedPost{{
		ID:     "p1",
		Author: domain.Profile{ID: "u1", Username: "bob"},
		Text:   "hello",
		Likes:  nil,
	}}
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodGet, "/api/posts/all", "", true)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "p1", body[0]["id"])
	assert.Equal(t, "bob", body[0]["user"].(map[string]any)["username"])
	// Les sets nil sortent en [] pour le client, jamais en null.
	assert.Equal(t, []any{}, body[0]["likes"])
}

func TestCreatePost_ResponseUsesJSONKeys(t *testing.T) {
	s := newStubs()
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/posts/create", `{"text":"hello"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "id")
	assert.Contains(t, body, "authorId")
	assert.Contains(t, body, "likes")
	assert.Contains(t, body, "createdAt")
	// Jamais les noms de champs Go bruts.
	assert.NotContains(t, body, "ID")
	assert.NotContains(t, body, "AuthorID")
	assert.NotContains(t, body, "ImageURL")
	assert.Equal(t, []any{}, body["likes"])
}

func TestAddComment_ResponseUsesJSONKeys(t *testing.T) {
	s := newStubs()
	comment, err := domain.NewComment("viewer-1", "bien vu")
	require.NoError(t, err)
	s.engagement.post.Comments = append(s.engagement.post.Comments, comment)
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/posts/comment/p1", `{"text":"bien vu"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "authorId")
	assert.NotContains(t, body, "Comments")

	comments, ok := body["comments"].([]any)
	require.True(t, ok)
	require.Len(t, comments, 1)
	first := comments[0].(map[string]any)
	assert.Equal(t, "bien vu", first["text"])
	assert.Equal(t, "viewer-1", first["authorId"])
	assert.NotContains(t, first, "author_id")
}

func TestDeletePost_NotOwner(t *testing.T) {
	s := newStubs()
	s.posts.err = domain.ErrNotPostOwner
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodDelete, "/api/posts/p1", "", true)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreatePost_DependencyDown(t *testing.T) {
	s := newStubs()
	s.posts.err = domain.ErrDependencyUnavailable
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodPost, "/api/posts/create", `{"text":"hi","img":"data:..."}`, true)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNotifications_ListAndClear(t *testing.T) {
	s := newStubs()
	s.notifications.views = []*domain.NotificationView{{
		ID:   "n1",
		From: domain.Profile{ID: "u1", Username: "bob"},
		Kind: domain.NotificationFollow,
	}}
	router := newTestRouter(s)

	rec := doRequest(t, router, http.MethodGet, "/api/notifications", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "follow", body[0]["type"])
	assert.Equal(t, "bob", body[0]["from"].(map[string]any)["username"])

	rec = doRequest(t, router, http.MethodDelete, "/api/notifications", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.notifications.cleared)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(newStubs())

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
}
