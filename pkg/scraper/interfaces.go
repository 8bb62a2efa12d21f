package scraper

import "bloglinks/pkg/blogger"

// BloggerClient defines the API surface the scraper needs from the Blogger
// client
type BloggerClient interface {
	LookupBlog(blogURL string) (*blogger.Blog, error)
	FetchAllPosts(blogID string) ([]blogger.Post, error)
	FetchResource(url string) ([]byte, error)
}

// ImageResolver resolves a link target to an image URL
type ImageResolver interface {
	Resolve(url string) (string, error)
}
