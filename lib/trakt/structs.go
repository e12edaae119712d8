package trakt

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Trakt is a client for the Trakt v2 API. It is safe for concurrent use.
type Trakt struct {
	clientId   string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Extended selects how much data Trakt includes in a response
type Extended string

const (
	ExtendedMin      Extended = "min"
	ExtendedFull     Extended = "full"
	ExtendedEpisodes Extended = "episodes"
)

type shape int

const (
	shapeObject shape = iota
	shapeArray
)

func (s shape) String() string {
	if s == shapeArray {
		return "array"
	}
	return "object"
}

// endpoint describes one Trakt route. path is a fmt template whose verbs are
// filled with the escaped path parameters.
type endpoint struct {
	name   string
	method string
	path   string
	shape  shape
	// auth sends the caller's bearer token
	auth bool
	// success lists the accepted statuses, 200 only when empty
	success []int
}

type pagination struct {
	Page  int `validate:"gte=0"`
	Limit int `validate:"gte=0"`
}

type extendedParam struct {
	Level Extended `validate:"omitempty,oneof=min full episodes"`
}
