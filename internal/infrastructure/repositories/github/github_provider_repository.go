package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100

	retryWaitMin = 1 * time.Second
	retryWaitMax = 30 * time.Second
)

// GitHubProviderRepository implements repositories.ProviderRepository against
// the GitHub REST API. Rate-limit responses are retried with backoff; every
// other failure surfaces immediately.
type GitHubProviderRepository struct {
	token   string
	baseURL string
	client  *retryablehttp.Client
}

// NewGitHubProviderRepository creates a new GitHub provider from the settings.
func NewGitHubProviderRepository(settings *entities.Settings) repositories.ProviderRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.MaxRetries
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = logger.StandardLogger()
	client.CheckRetry = checkRateLimitRetry

	return &GitHubProviderRepository{
		token:   settings.GitHub.Token,
		baseURL: settings.GitHub.APIBaseURL,
		client:  client,
	}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// ListRepositories walks the paginated listing endpoint until it returns an
// empty page and maps every entry into the domain shape.
func (p *GitHubProviderRepository) ListRepositories(
	ctx context.Context,
	kind entities.EntityKind,
	name string,
) ([]entities.RepositoryInfo, error) {
	var all []entities.RepositoryInfo

	for page := 1; ; page++ {
		repos, err := p.fetchPage(ctx, kind, name, page)
		if err != nil {
			return nil, err
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			all = append(all, r.toInfo())
		}
	}

	logger.Debugf("Listed %d repositories for %s %q", len(all), kind, name)
	return all, nil
}

// apiRepository is the subset of the GitHub repository payload kept by the
// cache contract.
type apiRepository struct {
	Name          string `json:"name"`
	CloneURL      string `json:"clone_url"`
	SSHURL        string `json:"ssh_url"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
}

func (r apiRepository) toInfo() entities.RepositoryInfo {
	branch := r.DefaultBranch
	if branch == "" {
		branch = "main"
	}
	return entities.RepositoryInfo{
		Name:          r.Name,
		CloneURL:      r.CloneURL,
		SSHURL:        r.SSHURL,
		DefaultBranch: branch,
		Private:       r.Private,
		Fork:          r.Fork,
		Archived:      r.Archived,
	}
}

func (p *GitHubProviderRepository) fetchPage(
	ctx context.Context,
	kind entities.EntityKind,
	name string,
	page int,
) ([]apiRepository, error) {
	url := fmt.Sprintf(
		"%s/%s/%s/repos?per_page=%d&page=%d",
		p.baseURL, listSegment(kind), name, perPage, page,
	)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &entities.HostingAPIError{Operation: "list repositories", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &entities.HostingAPIError{Operation: "list repositories", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entities.HostingAPIError{Operation: "list repositories", StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.HostingAPIError{
			Operation:  "list repositories",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var repos []apiRepository
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, &entities.HostingAPIError{Operation: "decode listing", StatusCode: resp.StatusCode, Err: err}
	}

	return repos, nil
}

func listSegment(kind entities.EntityKind) string {
	if kind == entities.EntityUser {
		return "users"
	}
	return "orgs"
}

// checkRateLimitRetry retries only rate-limit responses. Transport errors and
// every other HTTP status fail immediately so a bad token or a missing org is
// reported on the first attempt.
func checkRateLimitRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil || resp == nil {
		return false, err
	}
	return isRateLimited(resp), nil
}

func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	if resp.Header.Get("Retry-After") != "" {
		return true
	}
	remaining, convErr := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	return convErr == nil && remaining == 0
}
