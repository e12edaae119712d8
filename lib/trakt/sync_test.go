package trakt

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xanderstrike/traktkit/lib/common"
)

const addRatingsJSON = `{
	"added": {"movies": 0, "shows": 1, "seasons": 0, "episodes": 2},
	"not_found": {
		"movies": [],
		"shows": [],
		"seasons": [],
		"episodes": [{"ids": {"trakt": 999999999}}]
	}
}`

func ratingsBody() common.RatingsBody {
	show, first, second, missing := 1390, 73640, 73641, 999999999
	return common.RatingsBody{
		Shows: []common.RatedItem{{Rating: 10, Ids: common.Ids{Trakt: &show}}},
		Episodes: []common.RatedItem{
			{Rating: 9, Ids: common.Ids{Trakt: &first}},
			{Rating: 8, Ids: common.Ids{Trakt: &second}},
			{Rating: 7, Ids: common.Ids{Trakt: &missing}},
		},
	}
}

func TestAddRatings(t *testing.T) {
	f := newFakeTrakt(t)
	f.router.HandleFunc("/sync/ratings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, testClientId, r.Header.Get("trakt-api-key"))

		var body common.RatingsBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body.Shows, 1)
		assert.Len(t, body.Episodes, 3)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(addRatingsJSON))
	}).Methods(http.MethodPost)

	result, err := f.client().AddRatings(context.Background(), "secret-token", ratingsBody())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added.Shows)
	assert.Equal(t, 2, result.Added.Episodes)
	require.Len(t, result.NotFound.Episodes, 1)
	assert.Equal(t, 999999999, *result.NotFound.Episodes[0].Ids.Trakt)
	assert.Empty(t, result.NotFound.Movies)
}

func TestAddRatingsRejectedLocally(t *testing.T) {
	f := newFakeTrakt(t)
	client := f.client()
	ctx := context.Background()

	_, err := client.AddRatings(ctx, "", ratingsBody())
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = client.AddRatings(ctx, "secret-token", common.RatingsBody{})
	assert.True(t, errors.Is(err, ErrInvalid))

	body := ratingsBody()
	body.Shows[0].Rating = 0
	_, err = client.AddRatings(ctx, "secret-token", body)
	assert.True(t, errors.Is(err, ErrInvalid))

	assert.Zero(t, atomic.LoadInt32(&f.hits))
}

func TestAddRatingsUnauthorized(t *testing.T) {
	f := newFakeTrakt(t)
	f.reply("/sync/ratings", http.StatusUnauthorized, ``)

	result, err := f.client().AddRatings(context.Background(), "expired", ratingsBody())
	assert.Empty(t, result)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}
