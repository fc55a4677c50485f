package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_CRUD(t *testing.T) {
	t.Parallel()

	stored := NewItem("Sample Item 1", "This is a sample item", "General")
	var gotMethods []string
	var created Item

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, "list")
		_ = json.NewEncoder(w).Encode([]Item{stored})
	})
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, "get")
		if r.PathValue("id") != stored.ID.String() {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(stored)
	})
	mux.HandleFunc("POST /items", func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, "create")
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "content type", http.StatusUnsupportedMediaType)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})
	mux.HandleFunc("PUT /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, "update")
		var item Item
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PathValue("id") != item.ID.String() || r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "route does not match body", http.StatusBadRequest)
			return
		}
		item.Title = item.Title + " (edited)"
		_ = json.NewEncoder(w).Encode(item)
	})
	mux.HandleFunc("DELETE /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, "delete")
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc := NewItems(newTestClient(t, server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, stored.ID, items[0].ID)
	assert.True(t, stored.CreatedAt.Equal(items[0].CreatedAt))

	got, err := svc.GetItem(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample Item 1", got.Title)

	_, err = svc.GetItem(ctx, uuid.New())
	assert.ErrorIs(t, err, &Error{Kind: KindHTTPError, StatusCode: http.StatusNotFound})

	fresh := NewItem("Sample Item 2", "Another sample item", "Work")
	saved, err := svc.SaveItem(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, saved.ID)
	assert.Equal(t, "Work", created.Category)

	updated, err := svc.UpdateItem(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, "Sample Item 2 (edited)", updated.Title)

	require.NoError(t, svc.DeleteItem(ctx, saved.ID))

	assert.Equal(t, []string{"list", "get", "get", "create", "update", "delete"}, gotMethods)
}
