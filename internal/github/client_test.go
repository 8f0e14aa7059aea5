package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Repos(t *testing.T) {
	var gotQuery, gotAgent, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"hello-world","html_url":"https://github.com/octocat/hello-world","stargazers_count":3,"created_at":"2011-01-26T19:01:12Z"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "secret")
	repos, err := client.Repos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "hello-world", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, 2011, repos[0].CreatedAt.Year())

	assert.Equal(t, "direction=asc&per_page=5&sort=created", gotQuery)
	assert.Equal(t, userAgent, gotAgent)
	assert.Equal(t, "token secret", gotAuth)
}

func TestClient_ReposNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Repos(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
