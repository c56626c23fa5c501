// Package sports exposes the scraper-backed sports data feed. Scraping is
// delegated to an external process; results are cached so bursts of requests
// do not re-run the scraper.
package sports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"kasrah-cms/internal/cache"
	"kasrah-cms/internal/config"
	"kasrah-cms/internal/logger"
)

// ErrInvalidDate is returned for date arguments not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

// ErrTeamNameTooShort is returned for team searches shorter than two characters.
var ErrTeamNameTooShort = errors.New("team name must be at least two characters")

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Match is one fixture as reported by the scraper. All fields are optional;
// the scraper emits whatever it managed to extract.
type Match struct {
	Tournament string `json:"tournament,omitempty"`
	HomeTeam   string `json:"home_team,omitempty"`
	AwayTeam   string `json:"away_team,omitempty"`
	HomeScore  string `json:"home_score,omitempty"`
	AwayScore  string `json:"away_score,omitempty"`
	MatchTime  string `json:"match_time,omitempty"`
	Status     string `json:"status,omitempty"`
	MatchURL   string `json:"match_url,omitempty"`
	IsLive     bool   `json:"is_live,omitempty"`
}

// NewsItem is one scraped sports headline.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Image string `json:"image,omitempty"`
}

// TeamSearchResult holds the fixtures found for a team name.
type TeamSearchResult struct {
	TeamName     string  `json:"team_name"`
	Matches      []Match `json:"matches"`
	TotalMatches int     `json:"total_matches"`
}

// Client runs the external scraper and caches its JSON output.
type Client struct {
	command string
	args    []string
	cache   *cache.Cache
	ttl     time.Duration
	log     logger.Logger

	// execRun performs the actual process execution. Tests replace it.
	execRun func(ctx context.Context, command string, args ...string) ([]byte, error)
}

// NewClient creates a sports data client. The cache may be shared with other
// components; entries are namespaced by scraper method.
func NewClient(cfg config.SportsConfig, c *cache.Cache, log logger.Logger) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Client{
		command: cfg.ScraperCommand,
		args:    cfg.ScraperArgs,
		cache:   c,
		ttl:     ttl,
		log:     log,
		execRun: runProcess,
	}
}

// TodayMatches returns today's fixtures.
func (c *Client) TodayMatches(ctx context.Context) ([]Match, error) {
	return c.matches(ctx, "get_today_matches")
}

// YesterdayMatches returns yesterday's fixtures.
func (c *Client) YesterdayMatches(ctx context.Context) ([]Match, error) {
	return c.matches(ctx, "get_yesterday_matches")
}

// TomorrowMatches returns tomorrow's fixtures.
func (c *Client) TomorrowMatches(ctx context.Context) ([]Match, error) {
	return c.matches(ctx, "get_tomorrow_matches")
}

// LiveMatches returns fixtures currently in play.
func (c *Client) LiveMatches(ctx context.Context) ([]Match, error) {
	return c.matches(ctx, "get_live_matches")
}

// MatchesByDate returns fixtures for a specific YYYY-MM-DD date. The date is
// validated before any scrape is attempted.
func (c *Client) MatchesByDate(ctx context.Context, date string) ([]Match, error) {
	if !datePattern.MatchString(date) {
		return nil, ErrInvalidDate
	}
	return c.matches(ctx, "get_matches_by_date", date)
}

// News returns the latest sports headlines.
func (c *Client) News(ctx context.Context) ([]NewsItem, error) {
	var items []NewsItem
	if err := c.cached(ctx, "get_news", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []NewsItem{}
	}
	return items, nil
}

// SearchTeam returns fixtures involving the named team.
func (c *Client) SearchTeam(ctx context.Context, teamName string) (*TeamSearchResult, error) {
	name := strings.TrimSpace(teamName)
	if utf8.RuneCountInString(name) < 2 {
		return nil, ErrTeamNameTooShort
	}
	var result TeamSearchResult
	if err := c.cached(ctx, "search_team", []string{name}, &result); err != nil {
		return nil, err
	}
	if result.Matches == nil {
		result.Matches = []Match{}
	}
	return &result, nil
}

func (c *Client) matches(ctx context.Context, method string, params ...string) ([]Match, error) {
	var matches []Match
	if err := c.cached(ctx, method, params, &matches); err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches, nil
}

// cached serves a scraper method from the cache, running the scraper on a
// miss and storing the raw JSON payload under the method+params key.
func (c *Client) cached(ctx context.Context, method string, params []string, out interface{}) error {
	key := method
	if len(params) > 0 {
		key += ":" + strings.Join(params, ":")
	}

	if c.cache != nil {
		if b, err := c.cache.Get(key); err != nil {
			c.log.Error(err, "sports cache read failed")
		} else if b != nil {
			return json.Unmarshal(b, out)
		}
	}

	b, err := c.run(ctx, method, params)
	if err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.Set(key, b, c.ttl); err != nil {
			c.log.Error(err, "sports cache write failed")
		}
	}
	return json.Unmarshal(b, out)
}

// run executes the external scraper with the method name and parameters as
// trailing arguments and returns its stdout, which must be a single JSON
// document.
func (c *Client) run(ctx context.Context, method string, params []string) ([]byte, error) {
	args := append(append([]string{}, c.args...), method)
	args = append(args, params...)

	out, err := c.execRun(ctx, c.command, args...)
	if err != nil {
		return nil, fmt.Errorf("scraper %s failed: %w", method, err)
	}

	// The scraper reports its own failures as {"error": "..."} on stdout.
	var failure struct {
		Error string `json:"error"`
	}
	payload := bytes.TrimSpace(out)
	if json.Unmarshal(payload, &failure) == nil && failure.Error != "" {
		return nil, fmt.Errorf("scraper %s reported error: %s", method, failure.Error)
	}
	return payload, nil
}

func runProcess(ctx context.Context, command string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
