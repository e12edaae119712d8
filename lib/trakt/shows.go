package trakt

import (
	"context"
	"net/url"
	"strconv"

	"github.com/xanderstrike/traktkit/lib/common"
)

var (
	popularShows    = endpoint{name: "popular shows", path: "/shows/popular", shape: shapeArray}
	trendingShows   = endpoint{name: "trending shows", path: "/shows/trending", shape: shapeArray}
	showSummary     = endpoint{name: "show summary", path: "/shows/%s", shape: shapeObject}
	showComments    = endpoint{name: "show comments", path: "/shows/%s/comments", shape: shapeArray}
	showRatings     = endpoint{name: "show ratings", path: "/shows/%s/ratings", shape: shapeObject}
	seasons         = endpoint{name: "seasons", path: "/shows/%s/seasons", shape: shapeArray}
	seasonEpisodes  = endpoint{name: "season episodes", path: "/shows/%s/seasons/%s", shape: shapeArray}
	episodeComments = endpoint{name: "episode comments", path: "/shows/%s/seasons/%s/episodes/%s/comments", shape: shapeArray}
	episodeRatings  = endpoint{name: "episode ratings", path: "/shows/%s/seasons/%s/episodes/%s/ratings", shape: shapeObject}
)

func pageQuery(ep endpoint, page, limit int) (url.Values, error) {
	if err := validateArgs(ep, pagination{Page: page, Limit: limit}); err != nil {
		return nil, err
	}
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query, nil
}

func extendedQuery(ep endpoint, extended Extended) (url.Values, error) {
	if err := validateArgs(ep, extendedParam{Level: extended}); err != nil {
		return nil, err
	}
	if extended == "" {
		extended = ExtendedMin
	}
	return url.Values{"extended": {string(extended)}}, nil
}

// PopularShows returns the most popular shows, ranked by rating percentage and
// number of ratings. A zero page or limit leaves the server default.
func (t *Trakt) PopularShows(ctx context.Context, page, limit int) ([]common.Show, error) {
	query, err := pageQuery(popularShows, page, limit)
	if err != nil {
		return nil, err
	}
	return do[[]common.Show](ctx, t, call{ep: popularShows, query: query})
}

// TrendingShows returns the shows being watched right now, most watchers first
func (t *Trakt) TrendingShows(ctx context.Context, page, limit int) ([]common.TrendingShow, error) {
	query, err := pageQuery(trendingShows, page, limit)
	if err != nil {
		return nil, err
	}
	return do[[]common.TrendingShow](ctx, t, call{ep: trendingShows, query: query})
}

// ShowSummary returns a single show. id is a Trakt id, slug or IMDb id.
func (t *Trakt) ShowSummary(ctx context.Context, id string, extended Extended) (common.Show, error) {
	query, err := extendedQuery(showSummary, extended)
	if err != nil {
		return common.Show{}, err
	}
	return do[common.Show](ctx, t, call{ep: showSummary, args: []interface{}{id}, query: query})
}

// ShowComments returns the top level comments of a show, most recent first
func (t *Trakt) ShowComments(ctx context.Context, id string) ([]common.Comment, error) {
	return do[[]common.Comment](ctx, t, call{ep: showComments, args: []interface{}{id}})
}

// ShowRatings returns the rating (0 to 10) and vote distribution of a show
func (t *Trakt) ShowRatings(ctx context.Context, id string) (common.Ratings, error) {
	return do[common.Ratings](ctx, t, call{ep: showRatings, args: []interface{}{id}})
}

// Seasons returns every season of a show, specials included
func (t *Trakt) Seasons(ctx context.Context, id string, extended Extended) ([]common.Season, error) {
	query, err := extendedQuery(seasons, extended)
	if err != nil {
		return nil, err
	}
	return do[[]common.Season](ctx, t, call{ep: seasons, args: []interface{}{id}, query: query})
}

// SeasonEpisodes returns the episodes of one season
func (t *Trakt) SeasonEpisodes(ctx context.Context, id string, season int, extended Extended) ([]common.Episode, error) {
	query, err := extendedQuery(seasonEpisodes, extended)
	if err != nil {
		return nil, err
	}
	return do[[]common.Episode](ctx, t, call{ep: seasonEpisodes, args: []interface{}{id, season}, query: query})
}

// EpisodeComments returns the top level comments of one episode, most recent first
func (t *Trakt) EpisodeComments(ctx context.Context, id string, season, episode int) ([]common.Comment, error) {
	return do[[]common.Comment](ctx, t, call{ep: episodeComments, args: []interface{}{id, season, episode}})
}

// EpisodeRatings returns the rating (0 to 10) and vote distribution of one episode
func (t *Trakt) EpisodeRatings(ctx context.Context, id string, season, episode int) (common.Ratings, error) {
	return do[common.Ratings](ctx, t, call{ep: episodeRatings, args: []interface{}{id, season, episode}})
}
