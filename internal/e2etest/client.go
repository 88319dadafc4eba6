package e2etest

import (
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/swhawkins/LAPOK/internal/errors"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

// Client is an HTTP client with a cookie jar that keeps the session and CSRF cookies of the server.
type Client struct {
	client *http.Client
	jar    *sessionJar
	url    string
}

// NewClient creates a client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newSessionJar()
	if err != nil {
		return nil, errors.Wrap(err, "create session jar")
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests
		jar:    jar,
		url:    url,
	}, nil
}

// Cookie returns the value of the named cookie the client sends to the server.
func (c *Client) Cookie(name string) (string, bool) {
	u, err := neturl.Parse(c.url)
	if err != nil {
		return "", false
	}
	return c.jar.cookie(u, name)
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			status := resp.StatusCode
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if status == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready", slog.String("path", urlPath))
			}
			time.Sleep(50 * time.Millisecond) //nolint:mnd // 50ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url+urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return documentFromResponse(resp)
}

// Post submits values as an urlencoded form to urlPath together with csrfToken and returns the response. Redirects
// are followed.
func (c *Client) Post(
	ctx context.Context,
	urlPath string,
	csrfToken string,
	values neturl.Values,
) (*http.Response, error) {
	form := neturl.Values{}
	for k, v := range values {
		form[k] = v
	}
	form.Set("csrf_token", csrfToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+urlPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// SubmitForm loads the page at formURLPath, fills the form with action formActionURLPath with values and the CSRF
// token found in that form, submits it and returns the response document.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, formURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}

	var csrfToken string
	if csrfToken, err = ExtractCSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	var resp *http.Response
	if resp, err = c.Post(ctx, formActionURLPath, csrfToken, values); err != nil {
		return nil, errors.Wrap(err, "post form", slog.String("action", formActionURLPath))
	}
	return documentFromResponse(resp)
}

// ExtractCSRFToken returns the CSRF token of the form with the given action.
func ExtractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	if form.Length() == 0 {
		return "", errors.New("form not found", slog.String("selector", formSelector))
	}
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("selector", formSelector))
	}
	return csrfToken, nil
}

func documentFromResponse(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}
