package handler

import (
	"net/http"

	appmw "kasrah-cms/internal/middleware"
	"kasrah-cms/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Articles *ArticleHandler
	Auth     *AuthHandler
	Settings *SettingsHandler
	Ads      *AdsHandler
	Sports   *SportsHandler
	Seo      *SeoHandler
	Static   *StaticHandler
	Generate *GenerateHandler
}

// NewRouter creates and configures a new chi router.
func NewRouter(h Handlers, authzMiddleware func(http.Handler) http.Handler, errorMiddleware func(appmw.AppHandler) http.Handler, sm session.Manager) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Generated site files. These stay outside the authorizer so crawlers
	// and visitors never need a session.
	r.Get("/", h.Static.homeHandler)
	r.Get("/articles/{file}", h.Static.articleHandler)
	r.Get("/pages/*", h.Static.pagesHandler)
	r.Get("/sitemap.xml", h.Seo.sitemapHandler)
	r.Get("/robots.txt", h.Seo.robotsHandler)

	// JSON API. Sessions and Casbin policies apply to everything below.
	r.Route("/api", func(r chi.Router) {
		r.Use(sm.LoadAndSave)
		r.Use(authzMiddleware)

		r.Method(http.MethodPost, "/auth/login", errorMiddleware(h.Auth.loginHandler))
		r.Method(http.MethodPost, "/auth/logout", errorMiddleware(h.Auth.logoutHandler))
		r.Method(http.MethodGet, "/auth/status", errorMiddleware(h.Auth.statusHandler))

		r.Method(http.MethodGet, "/articles", errorMiddleware(h.Articles.listHandler))
		r.Method(http.MethodGet, "/articles/{slug}", errorMiddleware(h.Articles.getHandler))
		r.Method(http.MethodGet, "/settings", errorMiddleware(h.Settings.getHandler))
		r.Method(http.MethodGet, "/ads/active", errorMiddleware(h.Ads.activeHandler))

		r.Route("/sports", func(r chi.Router) {
			r.Method(http.MethodGet, "/matches/today", errorMiddleware(h.Sports.todayHandler))
			r.Method(http.MethodGet, "/matches/yesterday", errorMiddleware(h.Sports.yesterdayHandler))
			r.Method(http.MethodGet, "/matches/tomorrow", errorMiddleware(h.Sports.tomorrowHandler))
			r.Method(http.MethodGet, "/matches/live", errorMiddleware(h.Sports.liveHandler))
			r.Method(http.MethodGet, "/matches/date/{date}", errorMiddleware(h.Sports.byDateHandler))
			r.Method(http.MethodGet, "/news", errorMiddleware(h.Sports.newsHandler))
			r.Method(http.MethodGet, "/team/{team}", errorMiddleware(h.Sports.searchHandler))
			r.Method(http.MethodGet, "/dashboard", errorMiddleware(h.Sports.dashboardHandler))
			r.Method(http.MethodGet, "/stats", errorMiddleware(h.Sports.statsHandler))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Method(http.MethodGet, "/articles", errorMiddleware(h.Articles.adminListHandler))
			r.Method(http.MethodPost, "/articles", errorMiddleware(h.Articles.createHandler))
			r.Method(http.MethodGet, "/articles/{id}", errorMiddleware(h.Articles.adminGetHandler))
			r.Method(http.MethodPut, "/articles/{id}", errorMiddleware(h.Articles.updateHandler))
			r.Method(http.MethodDelete, "/articles/{id}", errorMiddleware(h.Articles.deleteHandler))

			r.Method(http.MethodPut, "/settings", errorMiddleware(h.Settings.updateHandler))

			r.Method(http.MethodGet, "/ads", errorMiddleware(h.Ads.adminListHandler))
			r.Method(http.MethodPost, "/ads", errorMiddleware(h.Ads.createHandler))
			r.Method(http.MethodPut, "/ads/{id}", errorMiddleware(h.Ads.updateHandler))
			r.Method(http.MethodDelete, "/ads/{id}", errorMiddleware(h.Ads.deleteHandler))

			r.Method(http.MethodPost, "/generate-all-articles", errorMiddleware(h.Generate.allArticlesHandler))
			r.Method(http.MethodPost, "/generate-index", errorMiddleware(h.Generate.indexHandler))
			r.Method(http.MethodPost, "/generate-sitemap", errorMiddleware(h.Generate.sitemapHandler))
		})
	})

	return r
}
