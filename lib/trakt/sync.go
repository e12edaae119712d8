package trakt

import (
	"context"
	"errors"
	"net/http"

	"github.com/xanderstrike/traktkit/lib/common"
)

var addRatings = endpoint{
	name:    "add ratings",
	method:  http.MethodPost,
	path:    "/sync/ratings",
	shape:   shapeObject,
	auth:    true,
	success: []int{http.StatusOK, http.StatusCreated},
}

// AddRatings rates movies, shows, seasons and episodes on behalf of the user
// owning accessToken. Items Trakt cannot match come back in NotFound.
func (t *Trakt) AddRatings(ctx context.Context, accessToken string, body common.RatingsBody) (common.AddRatingsResult, error) {
	if body.Empty() {
		return common.AddRatingsResult{}, newError(KindInvalid, addRatings, 0, errors.New("nothing to rate"))
	}
	if err := body.Validate(); err != nil {
		return common.AddRatingsResult{}, newError(KindInvalid, addRatings, 0, err)
	}
	return do[common.AddRatingsResult](ctx, t, call{ep: addRatings, token: accessToken, body: body})
}
