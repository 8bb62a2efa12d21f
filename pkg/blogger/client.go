package blogger

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bloglinks/pkg/config"
	"bloglinks/pkg/errors"
	"bloglinks/pkg/logger"
)

// Client talks to the Blogger v3 JSON API and fetches raw resources. It is
// the single boundary every network call in the crawl goes through.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	apiBase    string
	apiKey     string
	logger     logger.Logger
}

// NewClient creates a new Blogger API client
func NewClient(cfg *config.BloggerConfig, log logger.Logger) *Client {
	// Use default logger if none provided
	if log == nil {
		log = logger.GetLogger()
	}

	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: map[string]string{
			"User-Agent": "bloglinks/1.0",
			"Accept":     "*/*",
		},
		apiBase: apiBase,
		apiKey:  cfg.APIKey,
		logger:  log,
	}
}

// SetHTTPClient replaces the underlying HTTP client. Tests use this to
// install a stub transport.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// Get performs a GET request to the specified URL
func (c *Client) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}

	return c.doRequest(req)
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(url string, target interface{}) error {
	resp, err := c.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		// Keep a preview of the body for debugging
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// checkResponseStatus checks the HTTP response status and returns appropriate errors
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		c.logger.WarnWithFields("request rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: "API key rejected",
			Code:    resp.StatusCode,
		}
	case http.StatusNotFound:
		c.logger.WarnWithFields("resource not found", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		c.logger.ErrorWithFields("server error", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &errors.Error{
			Type:    errors.ErrorTypeServerError,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		if resp.StatusCode >= 400 {
			c.logger.ErrorWithFields("unexpected API error", map[string]interface{}{
				"status": resp.StatusCode,
				"url":    resp.Request.URL.String(),
			})
			return &errors.Error{
				Type:    errors.ErrorTypeUnknown,
				Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
				Code:    resp.StatusCode,
			}
		}
		return nil
	}
}

// LookupBlog resolves a blog's public URL to its API resource
func (c *Client) LookupBlog(blogURL string) (*Blog, error) {
	url := BlogByURLEndpoint(c.apiBase, blogURL, c.apiKey)

	c.logger.DebugWithFields("looking up blog", map[string]interface{}{
		"blog_url": blogURL,
		"url":      url,
	})

	var blog Blog
	if err := c.GetJSON(url, &blog); err != nil {
		c.logger.ErrorWithFields("failed to look up blog", map[string]interface{}{
			"blog_url": blogURL,
			"error":    err.Error(),
		})
		return nil, err
	}

	if blog.ID == "" {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: fmt.Sprintf("blog lookup for %s returned no id", blogURL),
			Code:    0,
		}
	}

	return &blog, nil
}

// FetchPostsPage fetches one page of a blog's posts listing. pageToken is
// empty for the first page.
func (c *Client) FetchPostsPage(blogID, pageToken string) (*PostList, error) {
	url := PostsEndpoint(c.apiBase, blogID, c.apiKey, pageToken)

	c.logger.DebugWithFields("fetching posts page", map[string]interface{}{
		"blog_id":    blogID,
		"page_token": pageToken,
	})

	var page PostList
	if err := c.GetJSON(url, &page); err != nil {
		c.logger.ErrorWithFields("failed to fetch posts page", map[string]interface{}{
			"blog_id":    blogID,
			"page_token": pageToken,
			"error":      err.Error(),
		})
		return nil, err
	}

	// An empty items array is fine; the field being absent is not.
	if page.Items == nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "posts listing missing items",
			Code:    0,
		}
	}

	return &page, nil
}

// FetchAllPosts walks the paginated posts listing and concatenates every
// page's items in page order. A missing nextPageToken marks the final page;
// any transport or decode failure aborts the walk with no partial result.
func (c *Client) FetchAllPosts(blogID string) ([]Post, error) {
	page, err := c.FetchPostsPage(blogID, "")
	if err != nil {
		return nil, err
	}
	posts := page.Items

	for page.NextPageToken != "" {
		page, err = c.FetchPostsPage(blogID, page.NextPageToken)
		if err != nil {
			return nil, err
		}
		posts = append(posts, page.Items...)
	}

	c.logger.DebugWithFields("fetched all posts", map[string]interface{}{
		"blog_id": blogID,
		"count":   len(posts),
	})

	return posts, nil
}

// FetchResource downloads the resource at url fully into memory
func (c *Client) FetchResource(url string) ([]byte, error) {
	resp, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorWithFields("failed to read resource", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to fetch resource: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("fetched resource", map[string]interface{}{
		"url":  url,
		"size": len(data),
	})

	return data, nil
}
