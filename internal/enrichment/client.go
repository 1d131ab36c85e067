package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"lendingapi/internal/book"
)

// Client fetches enrichment data from the book data service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	userAgent  string
	limiter    *rate.Limiter
}

func NewClient(baseURL, username, password, userAgent string, rps int) *Client {
	if rps < 1 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		username:  username,
		password:  password,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// responseBody matches the book data service payload.
type responseBody struct {
	Pages   *int `json:"pages"`
	Authors []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"authors"`
}

// ByISBN performs GET {base}/api/books/{isbn}. A 200 carries data, a 204
// means the service knows nothing about the ISBN. Any other status is an
// error so that an outage is never mistaken for a permanent absence.
func (c *Client) ByISBN(ctx context.Context, isbn book.ISBN) (*Data, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/books/%s", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return c.readData(isbn, resp)
	case http.StatusNoContent:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

func (c *Client) readData(isbn book.ISBN, resp *http.Response) (*Data, error) {
	var body responseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode enrichment response: %w", err)
	}

	data := &Data{ISBN: isbn}
	if body.Pages != nil {
		pages, err := book.NewNumberOfPages(*body.Pages)
		if err == nil {
			data.NumberOfPages = &pages
		}
	}
	authors := make([]book.Author, 0, len(body.Authors))
	for _, a := range body.Authors {
		authors = append(authors, book.Author(a.Name))
	}
	data.Authors = book.NormalizeAuthors(authors)
	return data, nil
}
