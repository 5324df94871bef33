package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"creationity/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListContent_QueryOmitsEmptyFilters(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/content", r.URL.Path)
		writeJSON(w, http.StatusOK, ListPage{Content: []models.ContentItem{}, Page: 1, TotalPages: 1})
	})

	_, err := client.ListContent(context.Background(), ListOptions{Type: "joke", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, "page=2&type=joke", gotQuery)

	_, err = client.ListContent(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "zero-valued filters must not appear in the URL")
}

func TestListContent_ParsesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []map[string]any{
				{
					"_id":       5,
					"type":      "joke",
					"title":     "Atoms",
					"content":   "I don't trust atoms.",
					"author":    map[string]any{"_id": 10, "username": "gopherfan"},
					"likes":     []uint{2, 3},
					"likeCount": 2,
					"views":     40,
				},
			},
			"page":       1,
			"totalPages": 3,
			"total":      25,
		})
	})

	page, err := client.ListContent(context.Background(), ListOptions{Type: "joke"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(25), page.Total)
	require.Len(t, page.Content, 1)

	item := page.Content[0]
	assert.Equal(t, uint(5), item.ID)
	assert.Equal(t, "gopherfan", item.Author.Username)
	assert.Equal(t, []uint{2, 3}, item.Likes)
	assert.Equal(t, 2, item.LikeCount)
}

func TestAuthHeaderAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, models.ContentItem{ID: 1})
	}, WithTokenSource(staticToken("tok123")))

	_, err := client.ToggleLike(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestNoAuthHeaderWhenTokenEmpty(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, ListPage{})
	}, WithTokenSource(staticToken("")))

	_, err := client.ListContent(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       map[string]string
		checkError func(t *testing.T, err error)
	}{
		{
			name:   "400 is a ValidationError with the server message",
			status: http.StatusBadRequest,
			body:   map[string]string{"error": "Title is required"},
			checkError: func(t *testing.T, err error) {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Title is required", verr.Message)
			},
		},
		{
			name:   "401 is an AuthError",
			status: http.StatusUnauthorized,
			body:   map[string]string{"error": "Invalid or expired token"},
			checkError: func(t *testing.T, err error) {
				var aerr *AuthError
				require.ErrorAs(t, err, &aerr)
			},
		},
		{
			name:   "403 is an AuthError",
			status: http.StatusForbidden,
			body:   map[string]string{"error": "Only the author can edit this content"},
			checkError: func(t *testing.T, err error) {
				var aerr *AuthError
				require.ErrorAs(t, err, &aerr)
				assert.Equal(t, "Only the author can edit this content", aerr.Message)
			},
		},
		{
			name:   "404 is a NotFoundError",
			status: http.StatusNotFound,
			body:   map[string]string{"error": "Content with ID 99 not found"},
			checkError: func(t *testing.T, err error) {
				var nerr *NotFoundError
				require.ErrorAs(t, err, &nerr)
			},
		},
		{
			name:   "500 is a ServerError",
			status: http.StatusInternalServerError,
			body:   map[string]string{"error": "Internal server error"},
			checkError: func(t *testing.T, err error) {
				var serr *ServerError
				require.ErrorAs(t, err, &serr)
				assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := client.GetContent(context.Background(), 99)
			require.Error(t, err)
			tt.checkError(t, err)
		})
	}
}

func TestAuthFailureHookFiresOn401Only(t *testing.T) {
	status := http.StatusUnauthorized
	fired := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, map[string]string{"error": "nope"})
	}, WithAuthFailureHandler(func() { fired++ }))

	_, _ = client.Me(context.Background())
	assert.Equal(t, 1, fired)

	status = http.StatusForbidden
	_, _ = client.Me(context.Background())
	assert.Equal(t, 1, fired, "403 must not invalidate the session")
}

func TestNetworkErrorOnUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL)
	srv.Close()

	_, err := client.ListContent(context.Background(), ListOptions{})
	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
}

func TestSignupAndLoginDecodeAuthResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/signup":
			writeJSON(w, http.StatusCreated, map[string]any{
				"token": "tok-signup",
				"user":  map[string]any{"_id": 1, "username": "gopher"},
			})
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, map[string]any{
				"token": "tok-login",
				"user":  map[string]any{"_id": 1, "username": "gopher"},
			})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		}
	})

	out, err := client.Signup(context.Background(), SignupRequest{Username: "gopher", Email: "g@e.com", Password: "Password1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-signup", out.Token)
	assert.Equal(t, uint(1), out.User.ID)

	out, err = client.Login(context.Background(), LoginRequest{Email: "g@e.com", Password: "Password1"})
	require.NoError(t, err)
	assert.Equal(t, "tok-login", out.Token)
}

func TestListByTypeAndCategoryEscapesPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content/joke/Formal%20Jokes", r.URL.EscapedPath())
		assert.Equal(t, "page=3", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []any{}, "page": 3, "totalPages": 3, "total": 21,
		})
	})

	page, err := client.ListByTypeAndCategory(context.Background(), "joke", "Formal Jokes", ListOptions{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, int64(21), page.Total)
}

func TestTrendingUsesTypeSegment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content/trending/poem", r.URL.Path)
		assert.Equal(t, "limit=3", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{
			"content": []any{map[string]any{"_id": 4, "type": "poem"}},
		})
	})

	items, err := client.Trending(context.Background(), "poem", 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, uint(4), items[0].ID)
}

func TestMyStatsUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"stats": map[string]any{
				"totalContent":  5,
				"totalLikes":    11,
				"totalViews":    42,
				"contentByType": map[string]int64{"joke": 3, "poem": 2},
			},
		})
	})

	stats, err := client.MyStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalContent)
	assert.Equal(t, int64(3), stats.ContentByType["joke"])
}
