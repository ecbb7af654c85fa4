// Package ado lists team projects, repositories and branch policy
// configurations from the Azure DevOps REST API.
package ado

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"k8s.io/client-go/util/flowcontrol"

	"ado-policy-report/internal/model"
)

const (
	DefaultBaseURL = "https://dev.azure.com"
	apiVersion     = "7.1"

	continuationHeader = "X-Ms-Continuationtoken"
)

type Options struct {
	BaseURL string
	PAT     string
	// QPS and Burst bound the request rate. Zero values use 10 and 20.
	QPS   float32
	Burst int
	// CacheSize is the number of team projects whose policy configurations are kept.
	CacheSize  int
	HTTPClient *http.Client
}

// Client is a read-only Azure DevOps REST client.
type Client struct {
	baseURL  string
	pat      string
	http     *http.Client
	limiter  flowcontrol.RateLimiter
	policies *lru.Cache[string, []policyConfiguration]
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("ado base url %q: %w", base, err)
	}
	if strings.TrimSpace(opts.PAT) == "" {
		return nil, errors.New("ado personal access token is required")
	}
	qps := opts.QPS
	if qps <= 0 {
		qps = 10
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 20
	}
	size := opts.CacheSize
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, []policyConfiguration](size)
	if err != nil {
		return nil, fmt.Errorf("policy cache: %w", err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:  base,
		pat:      opts.PAT,
		http:     hc,
		limiter:  flowcontrol.NewTokenBucketRateLimiter(qps, burst),
		policies: cache,
	}, nil
}

// ListTeamProjects returns the names of all team projects in org.
func (c *Client) ListTeamProjects(ctx context.Context, org string) ([]string, error) {
	var names []string
	err := c.list(ctx, c.endpoint(org, "", "_apis/projects"), func(raw json.RawMessage) error {
		var p struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		names = append(names, p.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list team projects of %s: %w", org, err)
	}
	return names, nil
}

// ListRepositories returns every Git repository of a team project, disabled ones included.
func (c *Client) ListRepositories(ctx context.Context, org, project string) ([]model.Repository, error) {
	var repos []model.Repository
	err := c.list(ctx, c.endpoint(org, project, "_apis/git/repositories"), func(raw json.RawMessage) error {
		var r model.Repository
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		repos = append(repos, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list repositories of %s/%s: %w", org, project, err)
	}
	return repos, nil
}

// ListPolicies returns the branch policies that apply to one repository,
// including project-wide policies. Configurations are fetched once per team
// project and served from cache afterwards.
func (c *Client) ListPolicies(ctx context.Context, org, project, repoID string) ([]model.RawPolicy, error) {
	configs, err := c.projectPolicies(ctx, org, project)
	if err != nil {
		return nil, fmt.Errorf("list policies of %s/%s: %w", org, project, err)
	}
	var out []model.RawPolicy
	for _, cfg := range configs {
		if cfg.IsDeleted || !cfg.appliesTo(repoID) {
			continue
		}
		out = append(out, cfg.toRawPolicy())
	}
	return out, nil
}

func (c *Client) projectPolicies(ctx context.Context, org, project string) ([]policyConfiguration, error) {
	key := org + "/" + project
	if configs, ok := c.policies.Get(key); ok {
		return configs, nil
	}
	var configs []policyConfiguration
	err := c.list(ctx, c.endpoint(org, project, "_apis/policy/configurations"), func(raw json.RawMessage) error {
		var cfg policyConfiguration
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return err
		}
		configs = append(configs, cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.policies.Add(key, configs)
	return configs, nil
}

func (c *Client) endpoint(org, project, resource string) string {
	parts := []string{c.baseURL, url.PathEscape(org)}
	if project != "" {
		parts = append(parts, url.PathEscape(project))
	}
	return strings.Join(append(parts, resource), "/")
}

// list pages through a collection endpoint, following continuation tokens,
// and calls each for every element of "value".
func (c *Client) list(ctx context.Context, endpoint string, each func(json.RawMessage) error) error {
	token := ""
	for {
		q := url.Values{}
		q.Set("api-version", apiVersion)
		if token != "" {
			q.Set("continuationToken", token)
		}
		var page struct {
			Value []json.RawMessage `json:"value"`
		}
		next, err := c.get(ctx, endpoint+"?"+q.Encode(), &page)
		if err != nil {
			return err
		}
		for _, raw := range page.Value {
			if err := each(raw); err != nil {
				return fmt.Errorf("decode %s: %w", endpoint, err)
			}
		}
		if next == "" || next == token {
			return nil
		}
		token = next
	}
}

func (c *Client) get(ctx context.Context, u string, into any) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		// the limiter refuses early when the next token lands after the deadline
		if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
			return "", fmt.Errorf("throttle: %v: %w", err, context.DeadlineExceeded)
		}
		return "", fmt.Errorf("throttle: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth("", c.pat)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return "", fmt.Errorf("decode %s: %w", u, err)
	}
	return resp.Header.Get(continuationHeader), nil
}

// StatusError is returned for non-200 responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// IsTimeout reports whether err is a request timeout, an expired deadline or a cancellation.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && (se.StatusCode == http.StatusRequestTimeout || se.StatusCode == http.StatusGatewayTimeout)
}
