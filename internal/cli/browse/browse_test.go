package browse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/config"
	"github.com/julianstephens/daylog/internal/models"
)

func TestRenderUsers(t *testing.T) {
	out := RenderUsers([]models.User{{
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "leanne@example.com",
		Company:  models.Company{Name: "Romaguera-Crona"},
		Address:  models.Address{City: "Gwenborough"},
	}})

	for _, want := range []string{"Leanne Graham", "Username: Bret", "Company: Romaguera-Crona", "City: Gwenborough"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPostsAndPhotos(t *testing.T) {
	posts := RenderPosts([]models.Post{{ID: 3, UserID: 1, Title: "qui est esse", Body: "est rerum"}})
	if !strings.Contains(posts, "Post ID: 3") || !strings.Contains(posts, "User ID: 1") {
		t.Errorf("unexpected posts output:\n%s", posts)
	}

	photos := RenderPhotos([]models.Photo{{ID: 1, AlbumID: 9, Title: "accusamus", ThumbnailURL: "https://via.placeholder.com/150"}})
	if !strings.Contains(photos, "Album ID: 9") {
		t.Errorf("unexpected photos output:\n%s", photos)
	}
}

func TestBrowseUsesConfiguredDirectory(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]models.Post{{ID: 1, Title: "t"}})
	}))
	defer srv.Close()

	ctx := cli.NewContext(&config.Config{PlaceholderURL: srv.URL, HTTPTimeout: time.Second})
	if err := (&BrowseCmd{Endpoint: "posts"}).Run(ctx); err != nil {
		t.Fatalf("browse failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected one request, got %d", hits)
	}

	if _, err := ctx.Directory().Posts(context.Background()); err != nil {
		t.Fatalf("direct fetch failed: %v", err)
	}
}
