package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var validate = validator.New()

func (show Show) String() string {
	var title string
	if show.Title != nil {
		title = *show.Title
	} else if show.Ids.Slug != nil {
		title = *show.Ids.Slug
	}
	if show.Year != nil {
		return fmt.Sprintf("%s (%d)", title, *show.Year)
	}
	return title
}

func (episode Episode) String() string {
	var season, number int
	if episode.Season != nil {
		season = *episode.Season
	}
	if episode.Number != nil {
		number = *episode.Number
	}
	code := fmt.Sprintf("S%02dE%02d", season, number)
	if episode.Title != nil {
		return fmt.Sprintf("%s %s", code, *episode.Title)
	}
	return code
}

// Total is the number of items that were rated
func (added AddedCounts) Total() int {
	return added.Movies + added.Shows + added.Seasons + added.Episodes
}

// Total is the number of items that were not recognized
func (notFound NotFoundItems) Total() int {
	return len(notFound.Movies) + len(notFound.Shows) + len(notFound.Seasons) + len(notFound.Episodes)
}

// MarshalJSON encodes missing categories as empty lists, never null
func (notFound NotFoundItems) MarshalJSON() ([]byte, error) {
	type plain NotFoundItems
	out := plain(notFound)
	for _, list := range []*[]NotFoundIds{&out.Movies, &out.Shows, &out.Seasons, &out.Episodes} {
		if *list == nil {
			*list = []NotFoundIds{}
		}
	}
	return json.Marshal(out)
}

func (result AddRatingsResult) String() string {
	return fmt.Sprintf("%d rated, %d not found", result.Added.Total(), result.NotFound.Total())
}

// Validate reports negative counts
func (result AddRatingsResult) Validate() error {
	return validate.Struct(result)
}

// Validate checks every rating is between 1 and 10
func (body RatingsBody) Validate() error {
	return validate.Struct(body)
}

// Empty is true when the body has nothing to rate
func (body RatingsBody) Empty() bool {
	return len(body.Movies)+len(body.Shows)+len(body.Seasons)+len(body.Episodes) == 0
}

// NewRatingsEntry wraps a result for the ratings journal
func NewRatingsEntry(username string, result AddRatingsResult) RatingsEntry {
	return RatingsEntry{
		ID:          uuid.NewString(),
		Username:    strings.ToLower(username),
		SubmittedAt: time.Now().UTC(),
		Result:      result,
	}
}
