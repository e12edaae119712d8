package trakt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.trakt.tv"
	apiVersion     = "2"
)

var validate = validator.New()

// Option customizes a Trakt client
type Option func(*Trakt)

// WithBaseURL points the client at another host, a proxy or a test server
func WithBaseURL(baseURL string) Option {
	return func(t *Trakt) {
		if baseURL != "" {
			t.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeouts apply unmodified.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Trakt) {
		if client != nil {
			t.httpClient = client
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trakt) {
		t.logger = logger
	}
}

func New(clientId string, opts ...Option) *Trakt {
	t := &Trakt{
		clientId:   clientId,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// call is one request against an endpoint
type call struct {
	ep    endpoint
	args  []interface{}
	query url.Values
	token string
	body  interface{}
}

func (t *Trakt) buildURL(c call) (string, error) {
	escaped := make([]interface{}, len(c.args))
	for i, arg := range c.args {
		s := fmt.Sprint(arg)
		if s == "" {
			return "", errors.New("empty path parameter")
		}
		escaped[i] = url.PathEscape(s)
	}
	u := t.baseURL + fmt.Sprintf(c.ep.path, escaped...)
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}
	return u, nil
}

func (ep endpoint) accepts(status int) bool {
	if len(ep.success) == 0 {
		return status == http.StatusOK
	}
	for _, s := range ep.success {
		if s == status {
			return true
		}
	}
	return false
}

// do sends c and decodes the response into T. It returns exactly once with
// either the decoded record or an *Error.
func do[T any](ctx context.Context, t *Trakt, c call) (T, error) {
	var result T
	ep := c.ep
	URL, err := t.buildURL(c)
	if err != nil {
		return result, newError(KindInvalid, ep, 0, err)
	}
	logger := t.logger.With().Str("endpoint", ep.name).Logger()

	var reader io.Reader = http.NoBody
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return result, newError(KindInvalid, ep, 0, err)
		}
		reader = bytes.NewReader(b)
	}

	method := ep.method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, URL, reader)
	if err != nil {
		return result, newError(KindInvalid, ep, 0, err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("trakt-api-version", apiVersion)
	req.Header.Add("trakt-api-key", t.clientId)
	if ep.auth {
		if c.token == "" {
			return result, newError(KindInvalid, ep, 0, errors.New("missing access token"))
		}
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", URL).Msg("request failed")
		return result, newError(KindTransport, ep, 0, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Str("url", URL).Msg("reading response failed")
		return result, newError(KindTransport, ep, resp.StatusCode, err)
	}
	logger.Debug().
		Str("url", URL).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request done")

	if !ep.accepts(resp.StatusCode) {
		logger.Warn().
			Str("url", URL).
			Int("status", resp.StatusCode).
			Bytes("body", truncate(respBody, 256)).
			Msg("unexpected status")
		return result, newError(KindStatus, ep, resp.StatusCode, nil)
	}

	if kind, err := decode(ep.shape, respBody, &result); err != nil {
		logger.Warn().Err(err).Str("url", URL).Msg("decoding response failed")
		var zero T
		return zero, newError(kind, ep, resp.StatusCode, err)
	}
	return result, nil
}

func decode(s shape, body []byte, v interface{}) (Kind, error) {
	if !json.Valid(body) {
		return KindParse, errors.New("body is not valid JSON")
	}
	body = bytes.TrimSpace(body)
	open := byte('{')
	if s == shapeArray {
		open = '['
	}
	if body[0] != open {
		return KindShape, fmt.Errorf("expected a JSON %s", s)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return KindShape, err
	}
	return 0, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

func validateArgs(ep endpoint, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return newError(KindInvalid, ep, 0, err)
	}
	return nil
}
