// Package scraper provides the core crawl pipeline for extracting a blog's
// linked images.
//
// The Scraper struct composes the other packages into one pipeline:
//   - Resolves the blog's public URL to its API identifier
//   - Walks the paginated posts listing through the Blogger client
//   - Scans each post's HTML for images wrapped in anchors that point at
//     image files
//   - Resolves each link target, hopping once through HTML pages to the
//     first image they embed
//
// The pipeline's output is a lazy iter.Seq2 of (url, error) pairs: no
// network call happens until the consumer pulls an element, and the caller
// decides whether to abort on the first error. Execution is strictly
// sequential; there is no concurrent fetching, retrying, or rate limiting.
//
// Usage:
//
//	s, err := scraper.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for url, err := range s.LinkedImageURLs("http://myblog.blogspot.com") {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(url)
//	}
package scraper
