package trakt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xanderstrike/traktkit/lib/common"
)

const (
	showJSON     = `{"title":"Game of Thrones","year":2011,"ids":{"trakt":1390,"slug":"game-of-thrones","tvdb":121361,"imdb":"tt0944947","tmdb":1399}}`
	commentsJSON = `[{"id":8,"parent_id":0,"created_at":"2011-03-25T22:35:17.000Z","comment":"Great show!","spoiler":false,"review":false,"replies":1,"likes":0,"user_stats":{"rating":8,"play_count":1,"completed_count":1},"user":{"username":"sean","private":false,"name":"Sean Rudford","vip":true,"vip_ep":false,"ids":{"slug":"sean"}}}]`
	ratingsJSON  = `{"rating":9.38,"votes":51065,"distribution":{"1":320,"2":77,"10":29749}}`
)

type endpointCase struct {
	name   string
	route  string
	shape  shape
	body   string
	invoke func(context.Context, *Trakt) (interface{}, error)
}

var endpointCases = []endpointCase{
	{
		name:  "popular shows",
		route: "/shows/popular",
		shape: shapeArray,
		body:  "[" + showJSON + "]",
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.PopularShows(ctx, 1, 10)
		},
	},
	{
		name:  "trending shows",
		route: "/shows/trending",
		shape: shapeArray,
		body:  `[{"watchers":21,"show":` + showJSON + `}]`,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.TrendingShows(ctx, 1, 10)
		},
	},
	{
		name:  "show summary",
		route: "/shows/{id}",
		shape: shapeObject,
		body:  showJSON,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.ShowSummary(ctx, "1390", ExtendedMin)
		},
	},
	{
		name:  "show comments",
		route: "/shows/{id}/comments",
		shape: shapeArray,
		body:  commentsJSON,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.ShowComments(ctx, "1390")
		},
	},
	{
		name:  "show ratings",
		route: "/shows/{id}/ratings",
		shape: shapeObject,
		body:  ratingsJSON,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.ShowRatings(ctx, "1390")
		},
	},
	{
		name:  "seasons",
		route: "/shows/{id}/seasons",
		shape: shapeArray,
		body:  `[{"number":0,"ids":{"trakt":1}},{"number":1,"ids":{"trakt":2}}]`,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.Seasons(ctx, "1390", ExtendedMin)
		},
	},
	{
		name:  "season episodes",
		route: "/shows/{id}/seasons/{season}",
		shape: shapeArray,
		body:  `[{"season":1,"number":1,"title":"Winter Is Coming","ids":{"trakt":36440}}]`,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.SeasonEpisodes(ctx, "1390", 1, ExtendedMin)
		},
	},
	{
		name:  "episode comments",
		route: "/shows/{id}/seasons/{season}/episodes/{episode}/comments",
		shape: shapeArray,
		body:  commentsJSON,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.EpisodeComments(ctx, "1390", 1, 1)
		},
	},
	{
		name:  "episode ratings",
		route: "/shows/{id}/seasons/{season}/episodes/{episode}/ratings",
		shape: shapeObject,
		body:  ratingsJSON,
		invoke: func(ctx context.Context, c *Trakt) (interface{}, error) {
			return c.EpisodeRatings(ctx, "1390", 1, 1)
		},
	},
}

func TestEndpointsSuccess(t *testing.T) {
	for _, tc := range endpointCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeTrakt(t)
			f.reply(tc.route, http.StatusOK, tc.body)

			value, err := tc.invoke(context.Background(), f.client())
			require.NoError(t, err)
			assert.NotEmpty(t, value)
			assert.EqualValues(t, 1, atomic.LoadInt32(&f.hits))
		})
	}
}

func TestEndpointsStatusFailure(t *testing.T) {
	for _, tc := range endpointCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeTrakt(t)
			f.reply(tc.route, http.StatusServiceUnavailable, `{"error":"down"}`)

			value, err := tc.invoke(context.Background(), f.client())
			require.Error(t, err)
			assert.Empty(t, value)
			assert.True(t, errors.Is(err, ErrStatus))
			assert.False(t, errors.Is(err, ErrParse))
			assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))

			var traktErr *Error
			require.True(t, errors.As(err, &traktErr))
			assert.Equal(t, tc.name, traktErr.Endpoint)
		})
	}
}

func TestEndpointsParseFailure(t *testing.T) {
	for _, tc := range endpointCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeTrakt(t)
			f.reply(tc.route, http.StatusOK, `{"title": "Game of`)

			value, err := tc.invoke(context.Background(), f.client())
			assert.Empty(t, value)
			assert.True(t, errors.Is(err, ErrParse))
		})
	}
}

func TestEndpointsShapeFailure(t *testing.T) {
	for _, tc := range endpointCases {
		t.Run(tc.name, func(t *testing.T) {
			wrong := `[]`
			if tc.shape == shapeArray {
				wrong = `{}`
			}
			f := newFakeTrakt(t)
			f.reply(tc.route, http.StatusOK, wrong)

			value, err := tc.invoke(context.Background(), f.client())
			assert.Empty(t, value)
			assert.True(t, errors.Is(err, ErrShape))
		})
	}
}

func TestEndpointsTransportFailure(t *testing.T) {
	for _, tc := range endpointCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeTrakt(t)
			client := f.client()
			f.Close()

			value, err := tc.invoke(context.Background(), client)
			assert.Empty(t, value)
			assert.True(t, errors.Is(err, ErrTransport))
			assert.Zero(t, StatusCode(err))
		})
	}
}

func TestPopularShowsPage(t *testing.T) {
	expected := make([]common.Show, 10)
	for i := range expected {
		title := fmt.Sprintf("Show %d", i)
		year := 2000 + i
		id := 100 + i
		expected[i] = common.Show{Title: &title, Year: &year, Ids: common.Ids{Trakt: &id}}
	}
	body, err := json.Marshal(expected)
	require.NoError(t, err)

	f := newFakeTrakt(t)
	f.router.HandleFunc("/shows/popular", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write(body)
	})

	shows, err := f.client().PopularShows(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, shows, 10)
	assert.Equal(t, expected, shows)
}

func TestPaginationOmittedWhenZero(t *testing.T) {
	f := newFakeTrakt(t)
	f.router.HandleFunc("/shows/trending", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	})

	shows, err := f.client().TrendingShows(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestInvalidArgumentsSendNothing(t *testing.T) {
	f := newFakeTrakt(t)
	client := f.client()
	ctx := context.Background()

	_, err := client.PopularShows(ctx, -1, 10)
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = client.TrendingShows(ctx, 1, -5)
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = client.ShowSummary(ctx, "1390", Extended("everything"))
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = client.ShowSummary(ctx, "", ExtendedMin)
	assert.True(t, errors.Is(err, ErrInvalid))

	assert.Zero(t, atomic.LoadInt32(&f.hits))
}

func TestShowSummaryNotFound(t *testing.T) {
	f := newFakeTrakt(t)
	f.reply("/shows/{id}", http.StatusNotFound, ``)

	show, err := f.client().ShowSummary(context.Background(), "1390", ExtendedMin)
	assert.Empty(t, show)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, "trakt show summary: unexpected status 404", err.Error())
}

func TestShowSummaryDefaultsToMin(t *testing.T) {
	f := newFakeTrakt(t)
	f.router.HandleFunc("/shows/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "min", r.URL.Query().Get("extended"))
		_, _ = w.Write([]byte(showJSON))
	})

	show, err := f.client().ShowSummary(context.Background(), "game-of-thrones", "")
	require.NoError(t, err)
	assert.Equal(t, 1390, *show.Ids.Trakt)
	assert.Equal(t, "tt0944947", *show.Ids.Imdb)
}

func TestSeasonsWithEpisodes(t *testing.T) {
	f := newFakeTrakt(t)
	f.router.HandleFunc("/shows/{id}/seasons", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "episodes", r.URL.Query().Get("extended"))
		_, _ = w.Write([]byte(`[{"number":1,"ids":{"trakt":61430},"episodes":[
			{"season":1,"number":1,"title":"Winter Is Coming","ids":{"trakt":73640}},
			{"season":1,"number":2,"title":"The Kingsroad","ids":{"trakt":73641}}]}]`))
	})

	seasons, err := f.client().Seasons(context.Background(), "1390", ExtendedEpisodes)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, 1, seasons[0].Number)
	require.Len(t, seasons[0].Episodes, 2)
	assert.Equal(t, "S01E02 The Kingsroad", seasons[0].Episodes[1].String())
}

func TestCommentsAndRatingsDecode(t *testing.T) {
	f := newFakeTrakt(t)
	f.reply("/shows/{id}/comments", http.StatusOK, commentsJSON)
	f.reply("/shows/{id}/seasons/{season}/episodes/{episode}/ratings", http.StatusOK, ratingsJSON)
	client := f.client()

	comments, err := client.ShowComments(context.Background(), "1390")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 8, comments[0].ID)
	assert.Equal(t, "sean", comments[0].User.Username)
	assert.Equal(t, 8, *comments[0].UserStats.Rating)
	assert.Equal(t, 2011, comments[0].CreatedAt.Year())

	ratings, err := client.EpisodeRatings(context.Background(), "1390", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 9.38, ratings.Rating)
	assert.Equal(t, 51065, ratings.Votes)
	assert.Equal(t, 29749, ratings.Distribution["10"])
}

func TestContextCanceled(t *testing.T) {
	f := newFakeTrakt(t)
	f.reply("/shows/popular", http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client().PopularShows(ctx, 1, 10)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConcurrentEndpoints(t *testing.T) {
	f := newFakeTrakt(t)
	f.reply("/shows/popular", http.StatusOK, "["+showJSON+"]")
	f.reply("/shows/{id}/ratings", http.StatusOK, ratingsJSON)
	client := f.client()

	var shows []common.Show
	var ratings common.Ratings
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 5; i++ {
		i := i
		g.Go(func() error {
			res, err := client.PopularShows(ctx, 1, 10)
			if err == nil && i == 0 {
				shows = res
			}
			return err
		})
		g.Go(func() error {
			res, err := client.ShowRatings(ctx, "1390")
			if err == nil && i == 0 {
				ratings = res
			}
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, shows, 1)
	assert.Equal(t, 51065, ratings.Votes)
	assert.EqualValues(t, 10, atomic.LoadInt32(&f.hits))
}
