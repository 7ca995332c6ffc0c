//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/github"
)

func newProviderSettings(baseURL string) *entities.Settings {
	return &entities.Settings{
		GitHub: entities.GitHubSettings{
			Token:      "ghp_testtoken",
			APIBaseURL: baseURL,
		},
		BaseFolder: "/srv/repos",
		Protocol:   entities.ProtocolHTTPS,
		Workers:    2,
		MaxRetries: 2,
	}
}

func pageOf(names ...string) []map[string]any {
	page := make([]map[string]any, 0, len(names))
	for _, name := range names {
		page = append(page, map[string]any{
			"name":           name,
			"clone_url":      "https://github.com/acme/" + name + ".git",
			"ssh_url":        "git@github.com:acme/" + name + ".git",
			"default_branch": "main",
		})
	}
	return page
}

func TestGitHubProviderListRepositories(t *testing.T) {
	t.Run("should walk every page until an empty one", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orgs/acme/repos", r.URL.Path)
			assert.Equal(t, "Bearer ghp_testtoken", r.Header.Get("Authorization"))

			switch r.URL.Query().Get("page") {
			case "1":
				require.NoError(t, json.NewEncoder(w).Encode(pageOf("one", "two")))
			case "2":
				require.NoError(t, json.NewEncoder(w).Encode(pageOf("three")))
			default:
				fmt.Fprint(w, "[]")
			}
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		infos, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "acme")

		// then
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, "one", infos[0].Name)
		assert.Equal(t, "https://github.com/acme/one.git", infos[0].CloneURL)
		assert.Equal(t, "main", infos[0].DefaultBranch)
	})

	t.Run("should use the user listing endpoint for user accounts", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/octocat/repos", r.URL.Path)
			fmt.Fprint(w, "[]")
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		infos, err := provider.ListRepositories(context.Background(), entities.EntityUser, "octocat")

		// then
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("should default the branch when the API omits it", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "1" {
				fmt.Fprint(w, `[{"name":"bare","clone_url":"https://github.com/acme/bare.git","ssh_url":"git@github.com:acme/bare.git"}]`)
				return
			}
			fmt.Fprint(w, "[]")
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		infos, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "acme")

		// then
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "main", infos[0].DefaultBranch)
	})

	t.Run("should retry rate-limited responses and succeed", func(t *testing.T) {
		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusForbidden)
				return
			}
			fmt.Fprint(w, "[]")
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		infos, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "acme")

		// then
		require.NoError(t, err)
		assert.Empty(t, infos)
		assert.GreaterOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("should fail with a hosting API error when retries are exhausted", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		_, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "acme")

		// then
		var apiErr *entities.HostingAPIError
		require.ErrorAs(t, err, &apiErr)
	})

	t.Run("should fail immediately on non-retryable errors", func(t *testing.T) {
		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		_, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "missing")

		// then
		var apiErr *entities.HostingAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, int32(1), calls.Load(), "a 404 must not be retried")
	})

	t.Run("should treat a 403 without rate-limit markers as fatal", func(t *testing.T) {
		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"Bad credentials"}`)
		}))
		defer server.Close()

		provider := github.NewGitHubProviderRepository(newProviderSettings(server.URL))

		// when
		_, err := provider.ListRepositories(context.Background(), entities.EntityOrganization, "acme")

		// then
		var apiErr *entities.HostingAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, int32(1), calls.Load())
	})
}
