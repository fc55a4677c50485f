package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item mirrors the /items resource. Timestamps travel as RFC 3339 strings.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewItem returns an item with a fresh id and both timestamps set to now.
func NewItem(title, subtitle, category string) Item {
	now := time.Now().UTC()
	return Item{
		ID:        uuid.New(),
		Title:     title,
		Subtitle:  subtitle,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ItemService defines item operations. Implemented by *Items and used by the
// UI and poller so tests can substitute a fake.
type ItemService interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (Item, error)
	SaveItem(ctx context.Context, item Item) (Item, error)
	UpdateItem(ctx context.Context, item Item) (Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// Ensure Items implements ItemService at compile time.
var _ ItemService = (*Items)(nil)

// Items talks to the /items endpoints through a shared Client.
type Items struct {
	client *Client
}

// NewItems wraps client.
func NewItems(client *Client) *Items {
	return &Items{client: client}
}

// ListItems retrieves every item.
func (s *Items) ListItems(ctx context.Context) ([]Item, error) {
	return Execute[[]Item](ctx, s.client, ListItems())
}

// GetItem retrieves one item by id.
func (s *Items) GetItem(ctx context.Context, id uuid.UUID) (Item, error) {
	return Execute[Item](ctx, s.client, GetItem(id.String()))
}

// SaveItem creates item and returns the stored representation.
func (s *Items) SaveItem(ctx context.Context, item Item) (Item, error) {
	body, err := encodeItem(item)
	if err != nil {
		return Item{}, err
	}
	return Execute[Item](ctx, s.client, CreateItem(body))
}

// UpdateItem replaces the stored item with the same id.
func (s *Items) UpdateItem(ctx context.Context, item Item) (Item, error) {
	body, err := encodeItem(item)
	if err != nil {
		return Item{}, err
	}
	return Execute[Item](ctx, s.client, UpdateItem(item.ID.String(), body))
}

// DeleteItem removes an item.
func (s *Items) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := Execute[NoContent](ctx, s.client, DeleteItem(id.String()))
	return err
}

func encodeItem(item Item) ([]byte, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, newError(KindEncodingError, err)
	}
	return body, nil
}
