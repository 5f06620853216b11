package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beanbot-dev/beanbot/ast"
)

const defaultAPIBaseURL = "https://api.github.com"

// GitHubStore appends entries to a file in a GitHub repository through the
// contents API. Each Save reads the current file to obtain its blob SHA,
// appends the entry and writes the file back as a single commit.
type GitHubStore struct {
	Owner string
	Repo  string

	// BaseURL overrides the GitHub API endpoint, used in tests.
	BaseURL string

	token  string
	client *http.Client
}

// NewGitHubStore creates a store committing to github.com/{owner}/{repo}.
func NewGitHubStore(owner, repo, token string) (*GitHubStore, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("github store requires an owner and a repository")
	}
	if token == "" {
		return nil, fmt.Errorf("github store requires an access token")
	}

	return &GitHubStore{
		Owner:   owner,
		Repo:    repo,
		BaseURL: defaultAPIBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

var _ Store = (*GitHubStore)(nil)

// contentsResponse is the subset of the contents API response we need.
type contentsResponse struct {
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

// contentsRequest is the PUT body for creating or updating a file.
type contentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// Save appends the entry to {year}.bean, creating the file at the turn of a
// year.
func (s *GitHubStore) Save(ctx context.Context, tx *ast.Transaction, entry string) error {
	path := ledgerFile(tx)

	existing, sha, err := s.fetch(ctx, path)
	if err != nil {
		return err
	}

	body := contentsRequest{
		Message: fmt.Sprintf("Add transaction: %s %s", tx.Date.Format(), tx.Payee),
		Content: base64.StdEncoding.EncodeToString([]byte(appendEntry(existing, entry))),
		SHA:     sha,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding contents request: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("updating %s: unexpected status %s", path, resp.Status)
	}

	return nil
}

// fetch reads the current file content and its blob SHA. A missing file is
// not an error; it returns empty content and no SHA.
func (s *GitHubStore) fetch(ctx context.Context, path string) (content, sha string, err error) {
	req, err := s.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetching %s: unexpected status %s", path, resp.Status)
	}

	var contents contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return "", "", fmt.Errorf("decoding contents of %s: %w", path, err)
	}

	// The API wraps base64 content at 60 characters.
	decoded, err := base64.StdEncoding.DecodeString(stripNewlines(contents.Content))
	if err != nil {
		return "", "", fmt.Errorf("decoding contents of %s: %w", path, err)
	}

	return string(decoded), contents.SHA, nil
}

func (s *GitHubStore) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.BaseURL, s.Owner, s.Repo, path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func stripNewlines(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' && s[i] != '\r' {
			buf = append(buf, s[i])
		}
	}
	return string(buf)
}
