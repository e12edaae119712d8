package common

import "time"

// Ids represent the IDs representing a media item accross the metadata providers
type Ids struct {
	Trakt  *int    `json:"trakt,omitempty"`
	Slug   *string `json:"slug,omitempty"`
	Tvdb   *int    `json:"tvdb,omitempty"`
	Imdb   *string `json:"imdb,omitempty"`
	Tmdb   *int    `json:"tmdb,omitempty"`
	Tvrage *int    `json:"tvrage,omitempty"`
}

// Airs is the weekly air slot of a show
type Airs struct {
	Day      *string `json:"day,omitempty"`
	Time     *string `json:"time,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// Show represent a show. Everything but the title, year and ids is only sent
// with extended=full.
type Show struct {
	Title *string `json:"title,omitempty"`
	Year  *int    `json:"year,omitempty"`
	Ids   Ids     `json:"ids"`

	Overview              *string    `json:"overview,omitempty"`
	Tagline               *string    `json:"tagline,omitempty"`
	FirstAired            *time.Time `json:"first_aired,omitempty"`
	Airs                  *Airs      `json:"airs,omitempty"`
	Runtime               *int       `json:"runtime,omitempty"`
	Certification         *string    `json:"certification,omitempty"`
	Network               *string    `json:"network,omitempty"`
	Country               *string    `json:"country,omitempty"`
	Trailer               *string    `json:"trailer,omitempty"`
	Homepage              *string    `json:"homepage,omitempty"`
	Status                *string    `json:"status,omitempty"`
	Rating                *float64   `json:"rating,omitempty"`
	Votes                 *int       `json:"votes,omitempty"`
	CommentCount          *int       `json:"comment_count,omitempty"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
	Language              *string    `json:"language,omitempty"`
	AvailableTranslations []string   `json:"available_translations,omitempty"`
	Genres                []string   `json:"genres,omitempty"`
	AiredEpisodes         *int       `json:"aired_episodes,omitempty"`
}

// TrendingShow is a show with the number of users currently watching it
type TrendingShow struct {
	Watchers int  `json:"watchers"`
	Show     Show `json:"show"`
}

// Episode represent an episode
type Episode struct {
	Season *int    `json:"season,omitempty"`
	Number *int    `json:"number,omitempty"`
	Title  *string `json:"title,omitempty"`
	Ids    *Ids    `json:"ids,omitempty"`

	NumberAbs    *int       `json:"number_abs,omitempty"`
	Overview     *string    `json:"overview,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	Votes        *int       `json:"votes,omitempty"`
	CommentCount *int       `json:"comment_count,omitempty"`
	FirstAired   *time.Time `json:"first_aired,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Runtime      *int       `json:"runtime,omitempty"`
}

// Season represent a season. Episodes are only present with extended=episodes.
type Season struct {
	Number int  `json:"number"`
	Ids    *Ids `json:"ids,omitempty"`

	Title         *string    `json:"title,omitempty"`
	Overview      *string    `json:"overview,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	Votes         *int       `json:"votes,omitempty"`
	EpisodeCount  *int       `json:"episode_count,omitempty"`
	AiredEpisodes *int       `json:"aired_episodes,omitempty"`
	FirstAired    *time.Time `json:"first_aired,omitempty"`
	Network       *string    `json:"network,omitempty"`
	Episodes      []Episode  `json:"episodes,omitempty"`
}

// User is the public profile attached to a comment
type User struct {
	Username string  `json:"username"`
	Private  bool    `json:"private"`
	Name     *string `json:"name,omitempty"`
	VIP      bool    `json:"vip"`
	VIPEP    bool    `json:"vip_ep"`
	Ids      *Ids    `json:"ids,omitempty"`
}

// CommentUserStats is what the author did with the commented item
type CommentUserStats struct {
	Rating         *int `json:"rating,omitempty"`
	PlayCount      int  `json:"play_count"`
	CompletedCount int  `json:"completed_count"`
}

// Comment represent a top level comment or a reply
type Comment struct {
	ID        int               `json:"id"`
	ParentID  int               `json:"parent_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
	Comment   string            `json:"comment"`
	Spoiler   bool              `json:"spoiler"`
	Review    bool              `json:"review"`
	Replies   int               `json:"replies"`
	Likes     int               `json:"likes"`
	UserStats *CommentUserStats `json:"user_stats,omitempty"`
	User      User              `json:"user"`
}

// Ratings is the average rating (0 to 10) and the vote distribution of an item
type Ratings struct {
	Rating       float64        `json:"rating"`
	Votes        int            `json:"votes"`
	Distribution map[string]int `json:"distribution"`
}

// RatedItem is one item of a ratings submission
type RatedItem struct {
	Rating  int        `json:"rating" validate:"min=1,max=10"`
	RatedAt *time.Time `json:"rated_at,omitempty"`
	Ids     Ids        `json:"ids"`
}

// RatingsBody represent the payload sent to /sync/ratings
type RatingsBody struct {
	Movies   []RatedItem `json:"movies,omitempty" validate:"dive"`
	Shows    []RatedItem `json:"shows,omitempty" validate:"dive"`
	Seasons  []RatedItem `json:"seasons,omitempty" validate:"dive"`
	Episodes []RatedItem `json:"episodes,omitempty" validate:"dive"`
}

// NotFoundIds is an item Trakt could not match when adding ratings
type NotFoundIds struct {
	Ids Ids `json:"ids"`
}

// AddedCounts counts the items rated by a ratings submission
type AddedCounts struct {
	Movies   int `json:"movies" validate:"gte=0"`
	Shows    int `json:"shows" validate:"gte=0"`
	Seasons  int `json:"seasons" validate:"gte=0"`
	Episodes int `json:"episodes" validate:"gte=0"`
}

// NotFoundItems lists the items of a ratings submission Trakt did not recognize
type NotFoundItems struct {
	Movies   []NotFoundIds `json:"movies"`
	Shows    []NotFoundIds `json:"shows"`
	Seasons  []NotFoundIds `json:"seasons"`
	Episodes []NotFoundIds `json:"episodes"`
}

// AddRatingsResult represent the outcome of a ratings submission
type AddRatingsResult struct {
	Added    AddedCounts   `json:"added"`
	NotFound NotFoundItems `json:"not_found"`
}

// RatingsEntry represent an AddRatingsResult kept in the ratings journal
type RatingsEntry struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Result      AddRatingsResult `json:"result"`
}
