package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/webwebweb5/societify/internal/core/domain"
)

const (
	StreamName     = "SOCIAL"
	SubjectPattern = "social.>"
)

// NatsBroker publie les événements sociaux sur JetStream. Les services
// l'appellent en best-effort : un broker indisponible se logue, ne bloque rien.
type NatsBroker struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewNatsBroker initialise la connexion et s'assure que le Stream existe (idempotent).
func NewNatsBroker(url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPattern},
		Storage:  jetstream.FileStorage,
		Replicas: 1, // mettre 3 en cluster
	})
	if err != nil {
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{nc: nc, js: js}, nil
}

// Close draine la connexion (flush des publications en attente).
func (n *NatsBroker) Close() {
	_ = n.nc.Drain()
}

// --- PAYLOADS (contrat implicite avec les consommateurs) ---

type UserFollowedEvent struct {
	ActorID   string    `json:"actor_id"`
	TargetID  string    `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PostLikedEvent struct {
	ActorID   string    `json:"actor_id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PostCreatedEvent struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	HasImage  bool      `json:"has_image"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *NatsBroker) PublishUserFollowed(ctx context.Context, actorID, targetID string) error {
	return n.publish(ctx, "social.user.followed", UserFollowedEvent{
		ActorID:   actorID,
		TargetID:  targetID,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NatsBroker) PublishPostLiked(ctx context.Context, actorID, postID, authorID string) error {
	return n.publish(ctx, "social.post.liked", PostLikedEvent{
		ActorID:   actorID,
		PostID:    postID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	})
}

func (n *NatsBroker) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	return n.publish(ctx, "social.post.created", PostCreatedEvent{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Text:      post.Text,
		HasImage:  post.ImageURL != "",
		CreatedAt: post.CreatedAt,
	})
}

func (n *NatsBroker) PublishPostDeleted(ctx context.Context, postID string) error {
	return n.publish(ctx, "social.post.deleted", map[string]string{"post_id": postID})
}

func (n *NatsBroker) publish(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := n.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}
