package gosoup

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Parser selects the strategy used to turn markup bytes into a document tree.
type Parser string

const (
	// ParserNetHTML feeds the input directly to the HTML5 tree builder. It is
	// the fast default, recovers from malformed markup, and assumes the input
	// is already UTF-8.
	ParserNetHTML Parser = "net/html"

	// ParserCharset sniffs the document's declared encoding (Content-Type
	// header, meta tags, BOM) and transcodes to UTF-8 before building the
	// tree. Slower, but survives legacy-encoded pages.
	ParserCharset Parser = "charset"
)

const (
	// DefaultTimeout bounds a fetch when no WithTimeout option is given.
	DefaultTimeout = 3 * time.Second

	// DefaultUserAgent is a browser-style User-Agent; some sites refuse
	// obviously non-browser agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36"

	// DefaultConcurrency bounds GetAll when no WithConcurrency option is given.
	DefaultConcurrency = 4
)

type options struct {
	parser       Parser
	timeout      time.Duration
	userAgent    string
	headers      map[string]string
	insecure     bool
	httpClient   *http.Client
	maxRedirects int
	concurrency  int
	logger       zerolog.Logger
}

// Option configures a single call; none of them carry state across calls.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		parser:      ParserNetHTML,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		concurrency: DefaultConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithParser selects the parser backend. Unknown names are rejected at parse
// time.
func WithParser(p Parser) Option {
	return func(o *options) { o.parser = p }
}

// WithTimeout bounds the whole request. Zero disables the bound; the caller's
// context still applies.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUserAgent replaces the default browser-style User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithHeaders sets extra request headers verbatim.
func WithHeaders(h map[string]string) Option {
	return func(o *options) { o.headers = h }
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(insecure bool) Option {
	return func(o *options) { o.insecure = insecure }
}

// WithHTTPClient uses the given client for transport instead of a fresh
// default one. The client is copied before the redirect policy is attached.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithMaxRedirects caps redirect following. Zero means the default of 5.
func WithMaxRedirects(n int) Option {
	return func(o *options) { o.maxRedirects = n }
}

// WithConcurrency bounds the number of in-flight requests in GetAll.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger attaches a structured logger; fetches emit debug events on it.
// The default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
