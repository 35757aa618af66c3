package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

type ManagedClient struct {
	Client    *gh.Client
	Token     string
	Proxy     string
	remaining int
	resetAt   time.Time
	mu        sync.Mutex
}

func (mc *ManagedClient) UpdateRateLimit(remaining int, resetAt time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.remaining = remaining
	mc.resetAt = resetAt
}

// Track records the rate headers of resp, if any.
func (mc *ManagedClient) Track(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	mc.UpdateRateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
}

func (mc *ManagedClient) Remaining() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.remaining
}

func (mc *ManagedClient) ResetAt() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.resetAt
}

type ClientPool struct {
	clients []*ManagedClient
	mu      sync.Mutex
}

func NewClientPool(tokens []string, proxies []string) (*ClientPool, error) {
	if len(tokens) == 0 {
		return &ClientPool{
			clients: []*ManagedClient{{
				Client:    gh.NewClient(nil),
				remaining: 60,
			}},
		}, nil
	}

	pool := &ClientPool{
		clients: make([]*ManagedClient, 0, len(tokens)),
	}

	for i, token := range tokens {
		var proxyURL string
		if i < len(proxies) {
			proxyURL = proxies[i]
		}

		client, err := createClientWithProxy(token, proxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for token %d: %w", i+1, err)
		}

		remaining := 5000
		if token == "" {
			remaining = 60
		}
		pool.clients = append(pool.clients, &ManagedClient{
			Client:    client,
			Token:     token,
			Proxy:     proxyURL,
			remaining: remaining,
		})
	}

	return pool, nil
}

func createClientWithProxy(token, proxyURL string) (*gh.Client, error) {
	transport := &http.Transport{}

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
		}
		transport.Proxy = http.ProxyURL(parsed)
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   transport,
			},
		}
	} else {
		httpClient = &http.Client{Transport: transport}
	}

	return gh.NewClient(httpClient), nil
}

// UseEnterprise points every client at a GitHub Enterprise API root.
func (p *ClientPool) UseEnterprise(baseURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, mc := range p.clients {
		client, err := mc.Client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return fmt.Errorf("failed to set API URL for client %d: %w", i+1, err)
		}
		mc.Client = client
	}
	return nil
}

// GetClient prefers the client with the most remaining requests. When every
// client is nearly exhausted it returns the one whose window resets first.
func (p *ClientPool) GetClient() *ManagedClient {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.clients) == 1 {
		return p.clients[0]
	}

	var best *ManagedClient
	bestRemaining := -1

	for _, mc := range p.clients {
		rem := mc.Remaining()
		if rem > bestRemaining {
			bestRemaining = rem
			best = mc
		}
	}

	if bestRemaining < 100 {
		var earliest *ManagedClient
		earliestReset := time.Now().Add(24 * time.Hour)

		for _, mc := range p.clients {
			reset := mc.ResetAt()
			if reset.Before(earliestReset) {
				earliestReset = reset
				earliest = mc
			}
		}

		if earliest != nil {
			return earliest
		}
	}

	return best
}

func (p *ClientPool) Size() int {
	return len(p.clients)
}

func (p *ClientPool) AllClients() []*ManagedClient {
	return p.clients
}

func GetRateLimit(ctx context.Context, client *gh.Client) (*gh.Rate, error) {
	limits, _, err := client.RateLimits(ctx)
	if err != nil {
		return nil, err
	}
	if limits == nil || limits.Core == nil {
		return nil, fmt.Errorf("rate limit response has no core section")
	}
	return limits.Core, nil
}

func printRate(w io.Writer, label string, rate *gh.Rate) {
	percentage := 0.0
	if rate.Limit > 0 {
		percentage = float64(rate.Remaining) / float64(rate.Limit) * 100
	}

	c := color.New(color.FgRed)
	if percentage > 50 {
		c = color.New(color.FgGreen)
	} else if percentage > 20 {
		c = color.New(color.FgYellow)
	}
	c.Fprintf(w, "%s: %d/%d (%.1f%%), resets %s\n", label, rate.Remaining, rate.Limit, percentage,
		rate.Reset.Time.Format(time.Kitchen))
}

func (p *ClientPool) DisplayPoolRateLimit(ctx context.Context, w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	color.New(color.FgCyan).Fprintf(w, "API rate limits (%d tokens):\n", p.Size())

	for i, mc := range p.clients {
		label := fmt.Sprintf("  Token %d", i+1)
		if mc.Token == "" {
			label = "  Anonymous"
		}
		if mc.Proxy != "" {
			label += " (proxied)"
		}

		rate, err := GetRateLimit(ctx, mc.Client)
		if err != nil {
			color.New(color.FgYellow).Fprintf(w, "%s: could not fetch rate limit: %v\n", label, err)
			continue
		}
		printRate(w, label, rate)
	}
}
