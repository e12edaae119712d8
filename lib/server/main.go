// Package server exposes the Trakt client over HTTP and journals the ratings
// submitted through it.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etherlabsio/healthcheck"
	"github.com/goccy/go-json"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xanderstrike/traktkit/lib/common"
	"github.com/xanderstrike/traktkit/lib/logging"
	"github.com/xanderstrike/traktkit/lib/store"
	"github.com/xanderstrike/traktkit/lib/trakt"
)

type Server struct {
	trakt   *trakt.Trakt
	storage store.Store
	logger  zerolog.Logger
}

// Overview bundles what a show page needs
type Overview struct {
	Show    common.Show     `json:"show"`
	Seasons []common.Season `json:"seasons"`
	Ratings common.Ratings  `json:"ratings"`
}

type errorBody struct {
	Error string `json:"error"`
}

func New(client *trakt.Trakt, storage store.Store, logger zerolog.Logger) *Server {
	return &Server{trakt: client, storage: storage, logger: logger}
}

// Router registers every route. Fixed paths come before /shows/{id}.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Handle("/healthcheck", healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker("storage", healthcheck.CheckerFunc(func(ctx context.Context) error {
			return s.storage.Ping(ctx)
		})),
	))

	shows := router.PathPrefix("/shows").Methods(http.MethodGet).Subrouter()
	shows.HandleFunc("/popular", s.popular)
	shows.HandleFunc("/trending", s.trending)
	shows.HandleFunc("/{id}", s.summary)
	shows.HandleFunc("/{id}/overview", s.overview)
	shows.HandleFunc("/{id}/comments", s.showComments)
	shows.HandleFunc("/{id}/ratings", s.showRatings)
	shows.HandleFunc("/{id}/seasons", s.seasons)
	shows.HandleFunc("/{id}/seasons/{season:[0-9]+}", s.seasonEpisodes)
	shows.HandleFunc("/{id}/seasons/{season:[0-9]+}/episodes/{episode:[0-9]+}/comments", s.episodeComments)
	shows.HandleFunc("/{id}/seasons/{season:[0-9]+}/episodes/{episode:[0-9]+}/ratings", s.episodeRatings)

	router.HandleFunc("/users/{username}/ratings", s.addRatings).Methods(http.MethodPost)
	router.HandleFunc("/users/{username}/ratings", s.ratingsJournal).Methods(http.MethodGet)
	return router
}

// Handler is the router wrapped with access logs and panic recovery
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.logger}))
	return handlers.CombinedLoggingHandler(logging.Writer{Logger: s.logger}, recovery(s.Router()))
}

type recoveryLogger struct {
	logger zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error().Interface("panic", v).Msg("handler panicked")
}

func (s *Server) popular(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	shows, err := s.trakt.PopularShows(r.Context(), page, limit)
	s.respond(w, shows, err)
}

func (s *Server) trending(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pageParams(w, r)
	if !ok {
		return
	}
	shows, err := s.trakt.TrendingShows(r.Context(), page, limit)
	s.respond(w, shows, err)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	show, err := s.trakt.ShowSummary(r.Context(), mux.Vars(r)["id"], extended(r))
	s.respond(w, show, err)
}

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var overview Overview
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		overview.Show, err = s.trakt.ShowSummary(ctx, id, extended(r))
		return
	})
	g.Go(func() (err error) {
		overview.Seasons, err = s.trakt.Seasons(ctx, id, trakt.ExtendedMin)
		return
	})
	g.Go(func() (err error) {
		overview.Ratings, err = s.trakt.ShowRatings(ctx, id)
		return
	})
	s.respond(w, overview, g.Wait())
}

func (s *Server) showComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.trakt.ShowComments(r.Context(), mux.Vars(r)["id"])
	s.respond(w, comments, err)
}

func (s *Server) showRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.trakt.ShowRatings(r.Context(), mux.Vars(r)["id"])
	s.respond(w, ratings, err)
}

func (s *Server) seasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.trakt.Seasons(r.Context(), mux.Vars(r)["id"], extended(r))
	s.respond(w, seasons, err)
}

func (s *Server) seasonEpisodes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, ok := pathInts(w, vars, "season")
	if !ok {
		return
	}
	episodes, err := s.trakt.SeasonEpisodes(r.Context(), vars["id"], n[0], extended(r))
	s.respond(w, episodes, err)
}

func (s *Server) episodeComments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, ok := pathInts(w, vars, "season", "episode")
	if !ok {
		return
	}
	comments, err := s.trakt.EpisodeComments(r.Context(), vars["id"], n[0], n[1])
	s.respond(w, comments, err)
}

func (s *Server) episodeRatings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	n, ok := pathInts(w, vars, "season", "episode")
	if !ok {
		return
	}
	ratings, err := s.trakt.EpisodeRatings(r.Context(), vars["id"], n[0], n[1])
	s.respond(w, ratings, err)
}

func (s *Server) addRatings(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
		return
	}

	var body common.RatingsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid ratings body"})
		return
	}

	result, err := s.trakt.AddRatings(r.Context(), token, body)
	if err != nil {
		s.respond(w, nil, err)
		return
	}

	entry := common.NewRatingsEntry(username, result)
	if err := s.storage.WriteRatingsEntry(entry); err != nil {
		// the ratings are on Trakt already, only the journal is missing them
		s.logger.Error().Err(err).Str("username", entry.Username).Msg("journal write failed")
	} else {
		s.logger.Info().Str("username", entry.Username).Stringer("result", result).Msg("ratings added")
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) ratingsJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := s.storage.GetRatingsEntries(mux.Vars(r)["username"])
	if err != nil {
		s.logger.Error().Err(err).Msg("journal read failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "journal unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) respond(w http.ResponseWriter, v interface{}, err error) {
	if err != nil {
		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			s.logger.Warn().Err(err).Msg("trakt call failed")
		}
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// errorStatus maps a client error to the status returned to our caller
func errorStatus(err error) int {
	switch {
	case errors.Is(err, trakt.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, trakt.ErrStatus):
		if code := trakt.StatusCode(err); code >= 400 && code < 600 {
			return code
		}
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func extended(r *http.Request) trakt.Extended {
	return trakt.Extended(r.URL.Query().Get("extended"))
}

func pageParams(w http.ResponseWriter, r *http.Request) (page, limit int, ok bool) {
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page}, {"limit", &limit}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid " + p.name})
			return 0, 0, false
		}
		*p.dst = n
	}
	return page, limit, true
}

// pathInts parses numeric route variables; the route pattern lets through
// numbers too large for an int
func pathInts(w http.ResponseWriter, vars map[string]string, names ...string) ([]int, bool) {
	values := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(vars[name])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid " + name})
			return nil, false
		}
		values[i] = n
	}
	return values, true
}
