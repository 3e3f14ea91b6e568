package wpsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	DefaultBaseURL = "https://momentumrg.com/wp-json/wp/v2"

	// Taxonomy listings are fetched unpaginated. Terms past this cap are
	// not seen, a known limitation of the source catalog.
	termsPerPage = 100

	pageSize            = 100
	recordFetchTimeout  = 10 * time.Second
	listingFetchTimeout = 30 * time.Second
)

// Client talks to the remote WordPress catalog API.
type Client struct {
	baseURL    string
	uploadBase string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		baseURL:    baseURL,
		uploadBase: deriveUploadBase(baseURL),
		httpClient: &http.Client{Timeout: listingFetchTimeout},
	}
}

// deriveUploadBase turns ".../wp-json/wp/v2" into the site's media upload
// root, used to reconstruct image URLs from relative file paths.
func deriveUploadBase(baseURL string) string {
	if idx := strings.Index(baseURL, "/wp-json"); idx > 0 {
		return baseURL[:idx] + "/wp-content/uploads/"
	}
	return baseURL + "/wp-content/uploads/"
}

func (c *Client) UploadBase() string {
	return c.uploadBase
}

// FetchTaxonomy returns the full term id to name map for one taxonomy.
func (c *Client) FetchTaxonomy(taxonomy string) (map[int]string, error) {
	body, _, err := c.get(fmt.Sprintf("%s/%s?per_page=%d", c.baseURL, taxonomy, termsPerPage))
	if err != nil {
		return nil, fmt.Errorf("fetch taxonomy %s: %w", taxonomy, err)
	}

	var terms []Term
	if err := sonic.Unmarshal(body, &terms); err != nil {
		return nil, fmt.Errorf("decode taxonomy %s: %w", taxonomy, err)
	}

	out := make(map[int]string, len(terms))
	for _, t := range terms {
		out[t.ID] = t.Name
	}
	return out, nil
}

// FetchPageInfo reads the listing's total page and record counts from the
// first page's response headers.
func (c *Client) FetchPageInfo() (totalPages, total int, err error) {
	_, header, err := c.get(c.listingURL(1))
	if err != nil {
		return 0, 0, fmt.Errorf("fetch page info: %w", err)
	}

	totalPages, err = strconv.Atoi(header.Get("x-wp-totalpages"))
	if err != nil || totalPages < 1 {
		totalPages = 1
	}
	total, err = strconv.Atoi(header.Get("x-wp-total"))
	if err != nil {
		total = 0
	}
	return totalPages, total, nil
}

// FetchPage returns one page of records. A non-success status yields an
// empty page rather than an error so a bad page never aborts a run.
func (c *Client) FetchPage(page int) ([]Record, error) {
	resp, err := c.httpClient.Get(c.listingURL(page))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return []Record{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchRecord fetches a single record by remote id with a bounded timeout.
func (c *Client) FetchRecord(wpID int) (*Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), recordFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/properties/%d", c.baseURL, wpID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch record %d: status %d", wpID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var record Record
	if err := sonic.Unmarshal(body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) listingURL(page int) string {
	return fmt.Sprintf("%s/properties?per_page=%d&page=%d&_embed=false", c.baseURL, pageSize, page)
}

func (c *Client) get(url string) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return body, resp.Header, nil
}
