// Package github wraps the GitHub REST API calls the pipeline needs:
// repository metadata, a recursive file listing, and raw file contents.
//
// A token is optional. Unauthenticated requests work but are limited to 60
// per hour; a bearer token raises the quota to 5000 per hour.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/DG1001/code-to-music/internal/classify"
	"github.com/DG1001/code-to-music/internal/models"
)

const defaultBaseURL = "https://api.github.com"

var (
	// ErrInvalidURL means the repository URL could not be parsed. It is
	// returned before any network call is made.
	ErrInvalidURL = errors.New("invalid GitHub repository URL")

	// ErrNotFound means the repository or path does not exist (or is private).
	ErrNotFound = errors.New("repository not found")

	// ErrRateLimited means the API request quota is exhausted.
	ErrRateLimited = errors.New("GitHub API rate limit exhausted")
)

var repoURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?/?$`)

// ParseRepoURL extracts owner and repo from a GitHub repository URL.
// Accepted forms: https://github.com/owner/repo, github.com/owner/repo,
// with an optional .git suffix or trailing slash.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return m[1], m[2], nil
}

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a client for the given API base URL (empty means
// api.github.com). token may be empty for unauthenticated access.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type repoResponse struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description *string  `json:"description"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// GetRepo fetches the repository's descriptive metadata.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*models.RepoMetadata, error) {
	var data repoResponse
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	if err := c.doJSON(ctx, url, &data); err != nil {
		return nil, fmt.Errorf("fetching metadata for %s/%s: %w", owner, repo, err)
	}

	meta := &models.RepoMetadata{
		Owner:       data.Owner.Login,
		Name:        data.Name,
		FullName:    data.FullName,
		Description: data.Description,
		Language:    data.Language,
		Topics:      data.Topics,
		Stars:       data.Stars,
		Forks:       data.Forks,
	}
	if meta.Owner == "" {
		meta.Owner = owner
	}
	if meta.Name == "" {
		meta.Name = repo
	}
	if meta.FullName == "" {
		meta.FullName = owner + "/" + repo
	}
	if meta.Topics == nil {
		meta.Topics = []string{}
	}
	return meta, nil
}

type treeResponse struct {
	Truncated bool `json:"truncated"`
	Tree      []struct {
		Path string `json:"path"`
		Type string `json:"type"`
		Size int    `json:"size"`
		URL  string `json:"url"`
	} `json:"tree"`
}

// ListFiles returns every file in the repository's default branch, with the
// category already assigned. Directories are skipped; the order is the git
// tree order of the recursive listing.
func (c *Client) ListFiles(ctx context.Context, owner, repo string) ([]models.FileEntry, error) {
	var tree treeResponse
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/HEAD?recursive=1", c.baseURL, owner, repo)
	if err := c.doJSON(ctx, url, &tree); err != nil {
		return nil, fmt.Errorf("listing files for %s/%s: %w", owner, repo, err)
	}
	if tree.Truncated {
		slog.Warn("file listing truncated by GitHub", "repo", owner+"/"+repo)
	}

	files := make([]models.FileEntry, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		if entry.Type != "blob" {
			continue
		}
		name := path.Base(entry.Path)
		files = append(files, models.FileEntry{
			Path:     entry.Path,
			Name:     name,
			Size:     entry.Size,
			URL:      entry.URL,
			Category: classify.Classify(name, entry.Path),
		})
	}
	return files, nil
}

type blobResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetFileContent downloads the raw text behind a file's retrieval URL.
func (c *Client) GetFileContent(ctx context.Context, url string) (string, error) {
	var blob blobResponse
	if err := c.doJSON(ctx, url, &blob); err != nil {
		return "", fmt.Errorf("fetching content: %w", err)
	}
	if blob.Encoding != "base64" {
		return blob.Content, nil
	}
	// GitHub wraps base64 content with newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decoding content: %w", err)
	}
	return string(decoded), nil
}

func (c *Client) doJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "code-to-music")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) &&
		resp.Header.Get("X-RateLimit-Remaining") == "0":
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
