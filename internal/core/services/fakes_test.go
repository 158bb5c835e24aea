package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/webwebweb5/societify/internal/core/domain"
)

// Fakes en mémoire pour tester les services sans infrastructure.
// Les erreurs injectables permettent de vérifier les chemins best-effort.

type fakeUserRepo struct {
	users map[string]*domain.User

	sampleResult []*domain.User
	lastExclude  []string
	lastSize     int

	getErr    error
	updateErr error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.addToSet(userID, followerID, func(u *domain.User) *[]string { return &u.Followers })
}

func (r *fakeUserRepo) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.removeFromSet(userID, followerID, func(u *domain.User) *[]string { return &u.Followers })
}

func (r *fakeUserRepo) AddFollowing(ctx context.Context, userID, targetID string) error {
	return r.addToSet(userID, targetID, func(u *domain.User) *[]string { return &u.Following })
}

func (r *fakeUserRepo) RemoveFollowing(ctx context.Context, userID, targetID string) error {
	return r.removeFromSet(userID, targetID, func(u *domain.User) *[]string { return &u.Following })
}

func (r *fakeUserRepo) AddLikedPost(ctx context.Context, userID, postID string) error {
	return r.addToSet(userID, postID, func(u *domain.User) *[]string { return &u.LikedPosts })
}

func (r *fakeUserRepo) RemoveLikedPost(ctx context.Context, userID, postID string) error {
	return r.removeFromSet(userID, postID, func(u *domain.User) *[]string { return &u.LikedPosts })
}

func (r *fakeUserRepo) addToSet(userID, value string, field func(*domain.User) *[]string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	set := field(u)
	if !domain.Contains(*set, value) {
		*set = append(*set, value)
	}
	return nil
}

func (r *fakeUserRepo) removeFromSet(userID, value string, field func(*domain.User) *[]string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	set := field(u)
	*set = domain.Without(*set, value)
	return nil
}

func (r *fakeUserRepo) GetProfiles(ctx context.Context, ids []string) (map[string]domain.Profile, error) {
	out := map[string]domain.Profile{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.PublicProfile()
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Sample(ctx context.Context, excludeIDs []string, size int) ([]*domain.User, error) {
	r.lastExclude = excludeIDs
	r.lastSize = size
	out := r.sampleResult
	if len(out) > size {
		out = out[:size]
	}
	return out, nil
}

type fakePostRepo struct {
	posts map[string]*domain.Post
}

func newFakePostRepo(posts ...*domain.Post) *fakePostRepo {
	r := &fakePostRepo{posts: map[string]*domain.Post{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Save(ctx context.Context, post *domain.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, postID string) error {
	if _, ok := r.posts[postID]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, postID)
	return nil
}

func (r *fakePostRepo) AddLike(ctx context.Context, postID, userID string) error {
	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	if !domain.Contains(p.Likes, userID) {
		p.Likes = append(p.Likes, userID)
	}
	return nil
}

func (r *fakePostRepo) RemoveLike(ctx context.Context, postID, userID string) error {
	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Likes = domain.Without(p.Likes, userID)
	return nil
}

func (r *fakePostRepo) AppendComment(ctx context.Context, postID string, comment domain.Comment) error {
	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

func (r *fakePostRepo) ListAll(ctx context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return r.ListByAuthors(ctx, []string{authorID})
}

func (r *fakePostRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]*domain.Post, error) {
	out := []*domain.Post{}
	for _, p := range r.posts {
		if domain.Contains(authorIDs, p.AuthorID) {
			out = append(out, p)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakePostRepo) ListByIDs(ctx context.Context, postIDs []string) ([]*domain.Post, error) {
	out := []*domain.Post{}
	for _, id := range postIDs {
		if p, ok := r.posts[id]; ok {
			out = append(out, p)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func sortByCreatedDesc(posts []*domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type fakeNotificationRepo struct {
	saved []*domain.Notification

	saveErr error
	markErr error
	cleared []string
}

func (r *fakeNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, n)
	return nil
}

func (r *fakeNotificationRepo) ListForUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	out := []*domain.Notification{}
	for _, n := range r.saved {
		if n.ToID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	if r.markErr != nil {
		return r.markErr
	}
	for _, n := range r.saved {
		if n.ToID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteForUser(ctx context.Context, userID string) error {
	r.cleared = append(r.cleared, userID)
	kept := r.saved[:0]
	for _, n := range r.saved {
		if n.ToID != userID {
			kept = append(kept, n)
		}
	}
	r.saved = kept
	return nil
}

type fakeEvents struct {
	followed []string
	liked    []string
	created  []string
	deleted  []string

	err error
}

func (e *fakeEvents) PublishUserFollowed(ctx context.Context, actorID, targetID string) error {
	if e.err != nil {
		return e.err
	}
	e.followed = append(e.followed, actorID+">"+targetID)
	return nil
}

func (e *fakeEvents) PublishPostLiked(ctx context.Context, actorID, postID, authorID string) error {
	if e.err != nil {
		return e.err
	}
	e.liked = append(e.liked, actorID+">"+postID)
	return nil
}

func (e *fakeEvents) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	if e.err != nil {
		return e.err
	}
	e.created = append(e.created, post.ID)
	return nil
}

func (e *fakeEvents) PublishPostDeleted(ctx context.Context, postID string) error {
	if e.err != nil {
		return e.err
	}
	e.deleted = append(e.deleted, postID)
	return nil
}

type fakeFeedCache struct {
	entries map[string][]*domain.FeedPost

	getErr error
	setErr error
	sets   int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{entries: map[string][]*domain.FeedPost{}}
}

func (c *fakeFeedCache) Get(ctx context.Context, key string) ([]*domain.FeedPost, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[key], nil
}

func (c *fakeFeedCache) Set(ctx context.Context, key string, items []*domain.FeedPost) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.sets++
	c.entries[key] = items
	return nil
}

type fakeBlobStore struct {
	uploads int
	deleted []string

	uploadErr error
	deleteErr error
}

func (b *fakeBlobStore) Upload(ctx context.Context, image string) (string, error) {
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	b.uploads++
	return fmt.Sprintf("https://cdn.example.com/demo/image/upload/v1/blob%d.png", b.uploads), nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, publicID string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, publicID)
	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(user *domain.User) (string, error) { return "token-" + user.ID, nil }

func (fakeTokens) Validate(token string) (string, error) {
	if !strings.HasPrefix(token, "token-") {
		return "", errors.New("invalid token")
	}
	return strings.TrimPrefix(token, "token-"), nil
}

// mustUser construit un user valide pour les tests.
func mustUser(username string) *domain.User {
	u, err := domain.NewUser(username+"@example.com", username, "hashed:secret123", strings.ToUpper(username[:1])+username[1:])
	if err != nil {
		panic(err)
	}
	return u
}

// mustPost construit un post valide pour les tests.
func mustPost(authorID, text string) *domain.Post {
	p, err := domain.NewPost(authorID, text, "")
	if err != nil {
		panic(err)
	}
	return p
}
