package closure

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"closure-minify/internal/memory"
	"closure-minify/internal/validation"
)

// DefaultURL is the public compilation endpoint. It is plain HTTP.
const DefaultURL = "http://closure-compiler.appspot.com/compile"

// errorPrefix marks a failed compilation. The service has no structured
// error response, so a successful compile whose output happens to start with
// these bytes is also reported as a failure.
var errorPrefix = []byte("Error")

type CompilationLevel string

const (
	WhitespaceOnly        CompilationLevel = "WHITESPACE_ONLY"
	SimpleOptimizations   CompilationLevel = "SIMPLE_OPTIMIZATIONS"
	AdvancedOptimizations CompilationLevel = "ADVANCED_OPTIMIZATIONS"
)

type Config struct {
	// The endpoint the form is posted to, defaults to DefaultURL.
	URL string `validate:"required,url"`
	// How aggressively the service rewrites the source, defaults to
	// SimpleOptimizations.
	CompilationLevel CompilationLevel `validate:"required,oneof=WHITESPACE_ONLY SIMPLE_OPTIMIZATIONS ADVANCED_OPTIMIZATIONS"`
	// Upper bound for a single request including reading the body. Zero
	// leaves the request bounded only by the callers context.
	Timeout time.Duration `validate:"gte=0"`
	// The transport, defaults to a new *http.Client that does not follow
	// redirects.
	HTTPClient HTTPClient `validate:"-"`
	// Where the timing line and request details are written, defaults to the
	// global zerolog logger.
	Logger *zerolog.Logger `validate:"-"`
}

// DefaultConfig returns the configuration matching the public service: simple
// optimizations against DefaultURL.
func DefaultConfig() *Config {
	return &Config{
		URL:              DefaultURL,
		CompilationLevel: SimpleOptimizations,
	}
}

// Client submits source to the compilation service. It holds no mutable
// state and can be shared between goroutines.
type Client struct {
	url        string
	level      CompilationLevel
	timeout    time.Duration
	httpClient HTTPClient
	logger     zerolog.Logger
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	resolved := *config

	if resolved.URL == "" {
		resolved.URL = DefaultURL
	}

	if resolved.CompilationLevel == "" {
		resolved.CompilationLevel = SimpleOptimizations
	}

	if err := validation.Struct(&resolved); err != nil {
		return nil, errors.Wrap(err, "invalid closure configuration")
	}

	client := &Client{
		url:        resolved.URL,
		level:      resolved.CompilationLevel,
		timeout:    resolved.Timeout,
		httpClient: resolved.HTTPClient,
		logger:     log.Logger,
	}

	if client.httpClient == nil {
		client.httpClient = newHTTPClient()
	}

	if resolved.Logger != nil {
		client.logger = *resolved.Logger
	}

	return client, nil
}

// Minify posts the source to the service and returns the compiled output.
// Failures are always an *Error, either RemoteCompilation carrying the body
// the service sent back, or Transport wrapping the cause. Exactly one request
// is made.
func (c *Client) Minify(ctx context.Context, source string) ([]byte, error) {
	logger := c.logger.With().Str("id", uuid.NewString()).Logger()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body := newRequest(source, c.level).encode()
	timeAtRequest := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))

	if err != nil {
		return nil, newTransportError(err, "failed to create compile request")
	}

	req.Header.Set("Content-Type", formURLEncodedMediaType)

	// one connection per call, released once the body has been read.
	req.Close = true

	logger.Debug().
		Str("url", c.url).
		Str("compilation_level", string(c.level)).
		Stringer("source", memory.Memory(len(source))).
		Msg("submitting compile request")

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, newTransportError(err, "failed to send compile request")
	}

	if resp == nil || resp.Body == nil {
		return nil, &Error{Kind: Transport, Err: errors.New("compile request returned no response")}
	}

	data, err := readBody(resp.Body)

	if err != nil {
		return nil, newTransportError(err, "failed to read compile response")
	}

	if bytes.HasPrefix(data, errorPrefix) {
		logger.Debug().Int("status", resp.StatusCode).Msg("compile request rejected")
		return nil, &Error{Kind: RemoteCompilation, Body: data}
	}

	logger.Info().
		Stringer("output", memory.Memory(len(data))).
		Msgf("%.3f seconds to compile", time.Since(timeAtRequest).Seconds())

	return data, nil
}

// newHTTPClient never follows redirects, a redirect response is read and
// returned like any other body so each call stays a single request.
func newHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(body io.ReadCloser) ([]byte, error) {
	defer body.Close()
	return io.ReadAll(body)
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Minify compiles the source with a client built from DefaultConfig.
func Minify(ctx context.Context, source string) ([]byte, error) {
	defaultOnce.Do(func() {
		// the default configuration is always valid.
		defaultClient, _ = NewClient(DefaultConfig())
	})

	return defaultClient.Minify(ctx, source)
}
