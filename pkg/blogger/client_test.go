package blogger

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglinks/pkg/config"
	"bloglinks/pkg/errors"
	"bloglinks/pkg/logger"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	requests []*http.Request
	handler  func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	return m.handler(req)
}

// Helper function to create a response
func newResponse(req *http.Request, statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

// Helper function to create a client backed by a stub transport
func newTestClient(handler func(req *http.Request) (*http.Response, error)) (*Client, *mockRoundTripper) {
	transport := &mockRoundTripper{handler: handler}

	client := NewClient(&config.BloggerConfig{
		APIBase: "https://api.test/blogger/v3",
		APIKey:  "test-key",
		Timeout: 30 * time.Second,
	}, logger.NewTestLogger())
	client.SetHTTPClient(&http.Client{Transport: transport})

	return client, transport
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(&config.BloggerConfig{APIKey: "k", Timeout: time.Second}, logger.NewTestLogger())

	assert.NotNil(t, client.httpClient)
	assert.Equal(t, DefaultAPIBase, client.apiBase)
}

func TestBlogByURLEndpoint(t *testing.T) {
	url := BlogByURLEndpoint("https://api.test/blogger/v3", "http://myblog.blogspot.com", "k")

	assert.Equal(t, "https://api.test/blogger/v3/blogs/byurl?key=k&url=http%3A%2F%2Fmyblog.blogspot.com", url)
}

func TestPostsEndpoint(t *testing.T) {
	t.Run("first page", func(t *testing.T) {
		url := PostsEndpoint("https://api.test/blogger/v3", "42", "k", "")
		assert.Equal(t, "https://api.test/blogger/v3/blogs/42/posts?key=k", url)
	})

	t.Run("with page token", func(t *testing.T) {
		url := PostsEndpoint("https://api.test/blogger/v3", "42", "k", "tok")
		assert.Equal(t, "https://api.test/blogger/v3/blogs/42/posts?key=k&pageToken=tok", url)
	})
}

func TestLookupBlog(t *testing.T) {
	client, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"id": "8070105920543249955", "name": "My Blog"}`), nil
	})

	blog, err := client.LookupBlog("http://myblog.blogspot.com")

	require.NoError(t, err)
	assert.Equal(t, "8070105920543249955", blog.ID)

	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Equal(t, "/blogger/v3/blogs/byurl", req.URL.Path)
	assert.Equal(t, "http://myblog.blogspot.com", req.URL.Query().Get("url"))
	assert.Equal(t, "test-key", req.URL.Query().Get("key"))
}

func TestRequestHeaders(t *testing.T) {
	client, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"id": "42"}`), nil
	})

	_, err := client.LookupBlog("http://myblog.blogspot.com")

	require.NoError(t, err)
	require.Len(t, transport.requests, 1)
	req := transport.requests[0]
	assert.Equal(t, "bloglinks/1.0", req.Header.Get("User-Agent"))
	assert.Equal(t, "*/*", req.Header.Get("Accept"))
}

func TestLookupBlogMissingID(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"kind": "blogger#blog"}`), nil
	})

	_, err := client.LookupBlog("http://myblog.blogspot.com")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}

func TestLookupBlogMalformedJSON(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `<html>not json</html>`), nil
	})

	_, err := client.LookupBlog("http://myblog.blogspot.com")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}

func TestFetchPostsPageMissingItems(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"kind": "blogger#postList"}`), nil
	})

	_, err := client.FetchPostsPage("42", "")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeParsing))
}

func TestFetchPostsPageEmptyItems(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, `{"items": []}`), nil
	})

	page, err := client.FetchPostsPage("42", "")

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextPageToken)
}

func TestFetchAllPostsThreePages(t *testing.T) {
	pages := map[string]string{
		"":   `{"items": [{"title": "A", "content": "a"}, {"title": "B", "content": "b"}], "nextPageToken": "t2"}`,
		"t2": `{"items": [{"title": "C", "content": "c"}], "nextPageToken": "t3"}`,
		"t3": `{"items": [{"title": "D", "content": "d"}]}`,
	}

	client, transport := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, ok := pages[req.URL.Query().Get("pageToken")]
		if !ok {
			return newResponse(req, http.StatusNotFound, ""), nil
		}
		return newResponse(req, http.StatusOK, body), nil
	})

	posts, err := client.FetchAllPosts("42")

	require.NoError(t, err)
	require.Len(t, posts, 4)

	var titles []string
	for _, post := range posts {
		titles = append(titles, post.Title)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles)
	assert.Len(t, transport.requests, 3)
}

func TestFetchAllPostsAbortsOnPageError(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("pageToken") == "" {
			return newResponse(req, http.StatusOK, `{"items": [{"title": "A"}], "nextPageToken": "t2"}`), nil
		}
		return newResponse(req, http.StatusInternalServerError, ""), nil
	})

	posts, err := client.FetchAllPosts("42")

	require.Error(t, err)
	assert.Nil(t, posts)
	assert.True(t, errors.IsType(err, errors.ErrorTypeServerError))
}

func TestCheckResponseStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		errType    errors.ErrorType
	}{
		{http.StatusUnauthorized, errors.ErrorTypeAuth},
		{http.StatusForbidden, errors.ErrorTypeAuth},
		{http.StatusNotFound, errors.ErrorTypeNotFound},
		{http.StatusInternalServerError, errors.ErrorTypeServerError},
		{http.StatusBadGateway, errors.ErrorTypeServerError},
		{http.StatusTeapot, errors.ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.statusCode), func(t *testing.T) {
			client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
				return newResponse(req, tt.statusCode, ""), nil
			})

			var target Blog
			err := client.GetJSON("https://api.test/blogger/v3/blogs/byurl", &target)

			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType))
		})
	}
}

func TestGetTransportError(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	})

	_, err := client.Get("https://api.test/down")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNetwork))
}

func TestFetchResource(t *testing.T) {
	client, _ := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newResponse(req, http.StatusOK, "image bytes"), nil
	})

	data, err := client.FetchResource("http://x/a.png")

	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)
}
