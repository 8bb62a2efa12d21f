package blogger

import (
	"fmt"
	"net/url"
)

// DefaultAPIBase is the root of the Blogger v3 JSON API.
const DefaultAPIBase = "https://www.googleapis.com/blogger/v3"

// BlogByURLEndpoint constructs the blog identity lookup URL.
func BlogByURLEndpoint(apiBase, blogURL, apiKey string) string {
	params := url.Values{}
	params.Set("url", blogURL)
	params.Set("key", apiKey)

	return fmt.Sprintf("%s/blogs/byurl?%s", apiBase, params.Encode())
}

// PostsEndpoint constructs the posts listing URL. pageToken is empty for the
// first page.
func PostsEndpoint(apiBase, blogID, apiKey, pageToken string) string {
	params := url.Values{}
	params.Set("key", apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	return fmt.Sprintf("%s/blogs/%s/posts?%s", apiBase, blogID, params.Encode())
}
