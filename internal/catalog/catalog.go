package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FileName         = "games.json"
	DefaultRemoteURL = "https://raw.githubusercontent.com/LottieVixen/GamePortal/main/games.json"
	DefaultTimeout   = 5 * time.Minute
)

var (
	ErrUnavailable    = errors.New("game catalog unavailable")
	ErrDownloadFailed = errors.New("download failed")
	ErrInvalidTitle   = errors.New("invalid game title")
	ErrUnsafeArchive  = errors.New("unsafe archive entry")
)

// Game is one downloadable entry of the catalog.
type Game struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon,omitempty"`
	DownloadURL string `json:"downloadUrl"`
}

type Option func(*Client)

// WithHTTPClient replaces the client used for the remote catalog and
// downloads.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client reads the game catalog and installs its entries.
type Client struct {
	local   string
	remote  string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a client that prefers the catalog file at local and falls
// back to the one served at remote. Either may be empty.
func New(local, remote string, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		local:   local,
		remote:  remote,
		http:    http.DefaultClient,
		timeout: DefaultTimeout,
		log:     log.With().Str("component", "catalog").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout bounds one catalog lookup or installation.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Games returns the catalog entries, read from the local file when it can
// be parsed and fetched from the remote URL otherwise.
func (c *Client) Games(ctx context.Context) ([]Game, error) {
	games, err := readLocal(c.local)
	if err == nil {
		c.log.Debug().Str("path", c.local).Int("games", len(games)).Msg("local catalog loaded")
		return games, nil
	}
	c.log.Warn().Err(err).Str("path", c.local).Msg("local catalog unavailable, fetching remote")

	games, err = c.fetchRemote(ctx)
	if err != nil {
		c.log.Error().Err(err).Str("url", c.remote).Msg("remote catalog unavailable")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	c.log.Info().Str("url", c.remote).Int("games", len(games)).Msg("remote catalog loaded")
	return games, nil
}

func readLocal(path string) ([]Game, error) {
	if path == "" {
		return nil, errors.New("no local catalog configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return games, nil
}

func (c *Client) fetchRemote(ctx context.Context) ([]Game, error) {
	if c.remote == "" {
		return nil, errors.New("no remote catalog configured")
	}
	resp, err := c.get(ctx, c.remote)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var games []Game
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.remote, err)
	}
	return games, nil
}

// get issues a GET and returns the response only for status 200.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}

// save writes the body of url to path.
func (c *Client) save(ctx context.Context, url, path string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
