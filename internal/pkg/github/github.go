package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/econlab/hypothesis-core/internal/config"
)

// ErrNotConfigured is returned when no token is set.
var ErrNotConfigured = errors.New("github token is not configured")

const defaultBaseURL = "https://api.github.com"

// Client is a minimal GitHub Issues API client.
type Client struct {
	baseURL string
	token   string
	owner   string
	repo    string
	http    *http.Client
}

// Issue is the subset of the GitHub issue payload this service reads.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Labels    []Label   `json:"labels"`
}

type Label struct {
	Name string `json:"name"`
}

func New(cfg config.GitHubConfig) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   cfg.Token,
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

// Configured reports whether a token is available.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.token) != ""
}

// CreateIssue opens a new issue and returns it.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (*Issue, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"title":  title,
		"body":   body,
		"labels": labels,
	})

	url := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("github api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var issue Issue
	if err := json.Unmarshal(respBody, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListIssues fetches issues carrying all of the given labels,
// every state, newest first, up to 100 entries.
func (c *Client) ListIssues(ctx context.Context, labels []string) ([]Issue, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := neturl.Values{}
	params.Set("labels", strings.Join(labels, ","))
	params.Set("state", "all")
	params.Set("sort", "created")
	params.Set("direction", "desc")
	params.Set("per_page", "100")

	url := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.baseURL, c.owner, c.repo, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var issues []Issue
	if err := json.Unmarshal(respBody, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+strings.TrimSpace(c.token))
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")
}
