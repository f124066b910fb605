// Package gosoup fetches web pages and turns them into queryable document
// trees. It is a thin convenience layer: HTTP retrieval is delegated to
// net/http, parsing to golang.org/x/net/html behind goquery, and the three
// entry points (Get, GetAsync, Parse) only unify their call signatures.
package gosoup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/gosoup/extract"
	"github.com/hyperifyio/gosoup/internal/fetch"
)

// Result carries the outcome of an asynchronous fetch. Exactly one of
// Document and Err is set.
type Result struct {
	Document *goquery.Document
	Err      error
}

// Get performs a blocking GET on rawURL and parses the response body into a
// document tree. Transport errors and non-2xx statuses surface unchanged;
// there is no retry and no caching. The URL must be http or https.
func Get(ctx context.Context, rawURL string, opts ...Option) (*goquery.Document, error) {
	o := newOptions(opts)
	return fetchAndParse(ctx, rawURL, o)
}

// GetAsync is Get without blocking the caller: the request runs in its own
// goroutine and the returned channel receives exactly one Result. Cancelling
// ctx aborts the in-flight request.
func GetAsync(ctx context.Context, rawURL string, opts ...Option) <-chan Result {
	o := newOptions(opts)
	ch := make(chan Result, 1)
	go func() {
		doc, err := fetchAndParse(ctx, rawURL, o)
		ch <- Result{Document: doc, Err: err}
		close(ch)
	}()
	return ch
}

// GetAll fetches several URLs concurrently and returns their trees in input
// order. The number of in-flight requests is bounded by WithConcurrency; the
// first error cancels the remaining fetches and is returned.
func GetAll(ctx context.Context, urls []string, opts ...Option) ([]*goquery.Document, error) {
	o := newOptions(opts)
	docs := make([]*goquery.Document, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			doc, err := fetchAndParse(ctx, u, o)
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Parse builds a document tree from raw markup with no network access.
// Malformed markup does not fail under the default backend; the HTML5 tree
// builder recovers best-effort.
func Parse(markup string, opts ...Option) (*goquery.Document, error) {
	o := newOptions(opts)
	return parseTree(strings.NewReader(markup), "", o.parser)
}

// GetForm fetches a page and returns the name/value pairs of its first form,
// hidden fields included, ready to be filled in and posted back.
func GetForm(ctx context.Context, rawURL string, opts ...Option) (url.Values, error) {
	doc, err := Get(ctx, rawURL, opts...)
	if err != nil {
		return nil, err
	}
	forms := extract.Forms(doc)
	if len(forms) == 0 {
		return nil, fmt.Errorf("no form found at %s", rawURL)
	}
	return forms[0].Values(), nil
}

// fetchAndParse is the single helper behind Get, GetAsync and GetAll: one
// GET, then one parse of the body with the selected backend.
func fetchAndParse(ctx context.Context, rawURL string, o options) (*goquery.Document, error) {
	client := &fetch.Client{
		HTTPClient:         o.httpClient,
		UserAgent:          o.userAgent,
		Headers:            o.headers,
		Timeout:            o.timeout,
		RedirectMaxHops:    o.maxRedirects,
		InsecureSkipVerify: o.insecure,
		Logger:             o.logger,
	}
	body, contentType, err := client.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return parseTree(bytes.NewReader(body), contentType, o.parser)
}

func parseTree(r io.Reader, contentType string, p Parser) (*goquery.Document, error) {
	switch p {
	case ParserNetHTML, "":
		node, err := html.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		return goquery.NewDocumentFromNode(node), nil
	case ParserCharset:
		decoded, err := charset.NewReader(r, contentType)
		if err != nil {
			return nil, fmt.Errorf("detect charset: %w", err)
		}
		node, err := html.Parse(decoded)
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		return goquery.NewDocumentFromNode(node), nil
	default:
		return nil, fmt.Errorf("unknown parser backend: %q", p)
	}
}
