package placeholder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daylog/internal/models"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		users := make([]models.User, 15)
		for i := range users {
			users[i] = models.User{ID: i + 1, Name: "user", Company: models.Company{Name: "acme"}}
		}
		_ = json.NewEncoder(w).Encode(users)
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Post{{ID: 1, UserID: 3, Title: "t", Body: "b"}})
	})
	mux.HandleFunc("/photos", func(w http.ResponseWriter, r *http.Request) {
		photos := make([]models.Photo, 20)
		for i := range photos {
			photos[i] = models.Photo{ID: i + 1, AlbumID: 1}
		}
		_ = json.NewEncoder(w).Encode(photos)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListsAreTruncated(t *testing.T) {
	c := New(newServer(t).URL, time.Second)
	ctx := context.Background()

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, "acme", users[0].Company.Name)

	posts, err := c.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 3, posts[0].UserID)

	photos, err := c.Photos(ctx)
	require.NoError(t, err)
	assert.Len(t, photos, 12)
	assert.Equal(t, 12, photos[11].ID)
}

func TestHTTPErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Posts(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Failed to fetch posts: HTTP error! status: 503", err.Error())
}

func TestLimit(t *testing.T) {
	assert.Equal(t, 10, Limit(EndpointUsers))
	assert.Equal(t, 10, Limit(EndpointPosts))
	assert.Equal(t, 12, Limit(EndpointPhotos))
}
