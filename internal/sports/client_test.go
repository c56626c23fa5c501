//go:build unit

package sports

import (
	"context"
	"errors"
	"testing"

	"kasrah-cms/internal/config"
	"kasrah-cms/internal/logger"
)

func newTestClient(t *testing.T, execRun func(ctx context.Context, command string, args ...string) ([]byte, error)) *Client {
	t.Helper()
	cfg := config.SportsConfig{
		ScraperCommand: "python3",
		ScraperArgs:    []string{"scrapers/yallakora_scraper.py"},
	}
	log := logger.New(config.LogConfig{Level: "error", Format: "json"}, nil)
	c := NewClient(cfg, nil, log)
	c.execRun = execRun
	return c
}

func TestTodayMatchesPassesMethodArgument(t *testing.T) {
	var gotCommand string
	var gotArgs []string
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		gotCommand = command
		gotArgs = args
		return []byte(`[{"home_team":"الأهلي","away_team":"الزمالك","status":"انتهت","is_live":false}]`), nil
	})

	matches, err := c.TodayMatches(context.Background())
	if err != nil {
		t.Fatalf("TodayMatches: %v", err)
	}
	if gotCommand != "python3" {
		t.Errorf("command = %q, want python3", gotCommand)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "scrapers/yallakora_scraper.py" || gotArgs[1] != "get_today_matches" {
		t.Errorf("args = %v, want [scrapers/yallakora_scraper.py get_today_matches]", gotArgs)
	}
	if len(matches) != 1 || matches[0].HomeTeam != "الأهلي" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestMatchesByDateValidatesFormat(t *testing.T) {
	called := false
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		called = true
		return []byte(`[]`), nil
	})

	for _, date := range []string{"2025-1-05", "20250105", "2025/01/05", "tomorrow", ""} {
		if _, err := c.MatchesByDate(context.Background(), date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("MatchesByDate(%q) err = %v, want ErrInvalidDate", date, err)
		}
	}
	if called {
		t.Error("scraper ran despite invalid date")
	}

	if _, err := c.MatchesByDate(context.Background(), "2025-01-05"); err != nil {
		t.Fatalf("valid date: %v", err)
	}
	if !called {
		t.Error("scraper did not run for valid date")
	}
}

func TestMatchesByDateAppendsDateParameter(t *testing.T) {
	var gotArgs []string
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte(`[]`), nil
	})

	if _, err := c.MatchesByDate(context.Background(), "2025-06-30"); err != nil {
		t.Fatalf("MatchesByDate: %v", err)
	}
	if len(gotArgs) != 3 || gotArgs[1] != "get_matches_by_date" || gotArgs[2] != "2025-06-30" {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestSearchTeamRejectsShortNames(t *testing.T) {
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		t.Fatal("scraper should not run")
		return nil, nil
	})

	for _, name := range []string{"", "a", " x ", "م"} {
		if _, err := c.SearchTeam(context.Background(), name); !errors.Is(err, ErrTeamNameTooShort) {
			t.Errorf("SearchTeam(%q) err = %v, want ErrTeamNameTooShort", name, err)
		}
	}
}

func TestSearchTeamParsesResult(t *testing.T) {
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		return []byte(`{"team_name":"الهلال","matches":[{"home_team":"الهلال","away_team":"النصر"}],"total_matches":1}`), nil
	})

	result, err := c.SearchTeam(context.Background(), "الهلال")
	if err != nil {
		t.Fatalf("SearchTeam: %v", err)
	}
	if result.TeamName != "الهلال" || result.TotalMatches != 1 || len(result.Matches) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestScraperErrorPayloadIsSurfaced(t *testing.T) {
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		return []byte(`{"error": "تعذر الاتصال بالموقع"}`), nil
	})

	if _, err := c.LiveMatches(context.Background()); err == nil {
		t.Fatal("expected error from scraper error payload")
	}
}

func TestScraperProcessFailure(t *testing.T) {
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})

	if _, err := c.News(context.Background()); err == nil {
		t.Fatal("expected error from failed process")
	}
}

func TestEmptyResultsAreNonNil(t *testing.T) {
	c := newTestClient(t, func(ctx context.Context, command string, args ...string) ([]byte, error) {
		return []byte(`[]`), nil
	})

	matches, err := c.TomorrowMatches(context.Background())
	if err != nil {
		t.Fatalf("TomorrowMatches: %v", err)
	}
	if matches == nil {
		t.Error("matches should be an empty slice, not nil")
	}
}
