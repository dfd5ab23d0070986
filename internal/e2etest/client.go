package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/biosecure/internal/errors"
)

const (
	answerActionURLPath = "/assessment/answer"
	maxQuestions        = 100
)

// Client is a cookie-keeping HTTP client that drives the server like a browser would.
type Client struct {
	client *http.Client
	url    string
}

func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	for {
		resp, err := c.Get(ctx, urlPath)
		if err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	req, err := c.NewRequest(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return readDoc(resp)
}

// NewRequest creates a new HTTP request to the server that respects the given context.
func (c *Client) NewRequest(ctx context.Context, method, urlPath string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request", slog.String("path", urlPath))
	}
	return req, nil
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request", slog.String("path", req.URL.Path))
	}
	return resp, nil
}

func readDoc(resp *http.Response) (*goquery.Document, error) {
	defer func() {
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

func extractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	if form.Length() == 0 {
		return "", errors.New("form not found", slog.String("selector", formSelector))
	}
	csrfToken, ok := form.First().Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("selector", formSelector))
	}
	return csrfToken, nil
}

// PostForm submits the form with action formActionURLPath found in doc, adding values to its CSRF token.
//
// Redirects are followed. The caller closes the response body.
func (c *Client) PostForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	values neturl.Values,
) (*http.Response, error) {
	return c.postForm(ctx, doc, formActionURLPath, values, false)
}

// PostFormHX submits the form like htmx does, with the HX-Request header set.
func (c *Client) PostFormHX(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	values neturl.Values,
) (*http.Response, error) {
	return c.postForm(ctx, doc, formActionURLPath, values, true)
}

func (c *Client) postForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	values neturl.Values,
	hx bool,
) (*http.Response, error) {
	csrfToken, err := extractCSRFToken(doc, formActionURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}
	formData := neturl.Values{}
	for k, v := range values {
		formData[k] = append([]string(nil), v...)
	}
	formData.Set("csrf_token", csrfToken)

	req, err := c.NewRequest(ctx, http.MethodPost, formActionURLPath, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	return c.Do(req)
}

// SubmitForm submits a form at formURLPath with action formActionURLPath and returns the response document.
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
	resp, err := c.PostForm(ctx, doc, formActionURLPath, values)
	if err != nil {
		return nil, errors.Wrap(err, "post form")
	}
	return readDoc(resp)
}

// PostJSON sends body as JSON and decodes the response into out when out is not nil.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, errors.Wrap(err, "marshal body")
	}
	req, err := c.NewRequest(ctx, http.MethodPost, urlPath, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, errors.Wrap(err, "decode response", slog.Int("status", resp.StatusCode))
		}
	}
	return resp.StatusCode, nil
}

// CompleteAssessment answers every question of the web assessment and returns the result page.
//
// pick chooses the submitted value among the option values of a question. Nil picks the first option.
func (c *Client) CompleteAssessment(
	ctx context.Context,
	pick func(questionID string, values []string) string,
) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, "/assessment")
	if err != nil {
		return nil, errors.Wrap(err, "get assessment")
	}
	for range maxQuestions {
		form := doc.Find(fmt.Sprintf("form[action='%s']", answerActionURLPath))
		if form.Length() == 0 {
			return doc, nil
		}
		questionID, _ := form.Find("input[name=question]").Attr("value")
		var values []string
		form.Find("input[name=value]").Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr("value"); ok {
				values = append(values, v)
			}
		})
		if len(values) == 0 {
			return nil, errors.New("question without options", slog.String("question", questionID))
		}
		value := values[0]
		if pick != nil {
			value = pick(questionID, values)
		}

		var resp *http.Response
		if resp, err = c.PostForm(ctx, doc, answerActionURLPath, neturl.Values{
			"question":  {questionID},
			"value":     {value},
			"direction": {"next"},
		}); err != nil {
			return nil, errors.Wrap(err, "answer question", slog.String("question", questionID))
		}
		if doc, err = readDoc(resp); err != nil {
			return nil, errors.Wrap(err, "read answer response", slog.String("question", questionID))
		}
	}
	return nil, errors.New("assessment did not finish", slog.Int("max_questions", maxQuestions))
}
