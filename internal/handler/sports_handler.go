package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"kasrah-cms/internal/logger"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/sports"

	"github.com/go-chi/chi/v5"
)

// SportsFeed defines the sports data operations the handlers depend on.
type SportsFeed interface {
	TodayMatches(ctx context.Context) ([]sports.Match, error)
	YesterdayMatches(ctx context.Context) ([]sports.Match, error)
	TomorrowMatches(ctx context.Context) ([]sports.Match, error)
	MatchesByDate(ctx context.Context, date string) ([]sports.Match, error)
	LiveMatches(ctx context.Context) ([]sports.Match, error)
	News(ctx context.Context) ([]sports.NewsItem, error)
	SearchTeam(ctx context.Context, name string) (*sports.TeamSearchResult, error)
}

// SportsHandler holds the dependencies for the sports handlers. Scraper
// failures degrade to empty payloads so the public site keeps working when
// the upstream source is down.
type SportsHandler struct {
	feed SportsFeed
	log  logger.Logger
}

// NewSportsHandler creates a new SportsHandler.
func NewSportsHandler(feed SportsFeed, log logger.Logger) *SportsHandler {
	return &SportsHandler{feed: feed, log: log}
}

func (h *SportsHandler) todayHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	respondJSON(w, http.StatusOK, h.softMatches(r.Context(), "today", h.feed.TodayMatches))
	return nil
}

func (h *SportsHandler) yesterdayHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	respondJSON(w, http.StatusOK, h.softMatches(r.Context(), "yesterday", h.feed.YesterdayMatches))
	return nil
}

func (h *SportsHandler) tomorrowHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	respondJSON(w, http.StatusOK, h.softMatches(r.Context(), "tomorrow", h.feed.TomorrowMatches))
	return nil
}

func (h *SportsHandler) liveHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	respondJSON(w, http.StatusOK, h.softMatches(r.Context(), "live", h.feed.LiveMatches))
	return nil
}

// byDateHandler serves fixtures for one day. The date must be YYYY-MM-DD;
// anything else is rejected before the scraper runs.
func (h *SportsHandler) byDateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	date := chi.URLParam(r, "date")
	matches, err := h.feed.MatchesByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, sports.ErrInvalidDate) {
			return &middleware.AppError{Error: err, Message: "Date must be in YYYY-MM-DD format", Code: http.StatusBadRequest}
		}
		h.log.Error(err, "Sports scrape failed for date "+date)
		matches = []sports.Match{}
	}
	respondJSON(w, http.StatusOK, matches)
	return nil
}

func (h *SportsHandler) newsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	items, err := h.feed.News(r.Context())
	if err != nil {
		h.log.Error(err, "Sports news scrape failed")
		items = []sports.NewsItem{}
	}
	respondJSON(w, http.StatusOK, items)
	return nil
}

// searchHandler finds fixtures for the team named in the URL.
func (h *SportsHandler) searchHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	team := chi.URLParam(r, "team")
	result, err := h.feed.SearchTeam(r.Context(), team)
	if err != nil {
		if errors.Is(err, sports.ErrTeamNameTooShort) {
			return &middleware.AppError{Error: err, Message: "Team name must be at least two characters", Code: http.StatusBadRequest}
		}
		h.log.Error(err, "Team search scrape failed")
		result = &sports.TeamSearchResult{TeamName: team, Matches: []sports.Match{}}
	}
	respondJSON(w, http.StatusOK, result)
	return nil
}

// dashboardHandler aggregates today's fixtures, live fixtures, and headlines
// in one response. The three scrapes run concurrently and each degrades to an
// empty list on failure.
func (h *SportsHandler) dashboardHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()
	var (
		wg    sync.WaitGroup
		today []sports.Match
		live  []sports.Match
		news  []sports.NewsItem
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		today = h.softMatches(ctx, "today", h.feed.TodayMatches)
	}()
	go func() {
		defer wg.Done()
		live = h.softMatches(ctx, "live", h.feed.LiveMatches)
	}()
	go func() {
		defer wg.Done()
		items, err := h.feed.News(ctx)
		if err != nil {
			h.log.Error(err, "Sports news scrape failed")
			items = []sports.NewsItem{}
		}
		news = items
	}()
	wg.Wait()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"today_matches": today,
		"live_matches":  live,
		"news":          news,
	})
	return nil
}

// statsHandler reports match counts for today, live play, and tomorrow. The
// three scrapes run concurrently and a failed scrape counts as zero.
func (h *SportsHandler) statsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()
	var (
		wg       sync.WaitGroup
		today    []sports.Match
		live     []sports.Match
		tomorrow []sports.Match
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		today = h.softMatches(ctx, "today", h.feed.TodayMatches)
	}()
	go func() {
		defer wg.Done()
		live = h.softMatches(ctx, "live", h.feed.LiveMatches)
	}()
	go func() {
		defer wg.Done()
		tomorrow = h.softMatches(ctx, "tomorrow", h.feed.TomorrowMatches)
	}()
	wg.Wait()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"today_matches_count":    len(today),
		"live_matches_count":     len(live),
		"tomorrow_matches_count": len(tomorrow),
		"total_matches_count":    len(today) + len(tomorrow),
	})
	return nil
}

func (h *SportsHandler) softMatches(ctx context.Context, label string, fetch func(context.Context) ([]sports.Match, error)) []sports.Match {
	matches, err := fetch(ctx)
	if err != nil {
		h.log.Error(err, "Sports scrape failed for "+label+" matches")
		return []sports.Match{}
	}
	return matches
}
