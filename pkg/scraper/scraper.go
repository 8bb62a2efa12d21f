package scraper

import (
	"fmt"
	"io"
	"iter"

	"bloglinks/pkg/blogger"
	"bloglinks/pkg/config"
	"bloglinks/pkg/logger"
	"bloglinks/pkg/resolver"
	"bloglinks/pkg/scanner"
	"bloglinks/pkg/storage"
	"bloglinks/pkg/ui"
)

// Scraper orchestrates the blog crawl: pagination, linked-image scanning,
// link resolution, and the optional download sink.
type Scraper struct {
	client   BloggerClient
	resolver ImageResolver
	config   *config.Config
	logger   logger.Logger
}

// New creates a new Scraper instance
func New(cfg *config.Config) (*Scraper, error) {
	log := logger.GetLogger()

	client := blogger.NewClient(&cfg.Blogger, log)

	return &Scraper{
		client:   client,
		resolver: resolver.New(client, log),
		config:   cfg,
		logger:   log,
	}, nil
}

// LinkedImageURLs returns the crawl output as a lazy sequence of resolved
// image URLs in post order, then within-post link order. Nothing is fetched
// until the caller starts ranging, and ranging again repeats every network
// call. Each element carries its own error; a failed element ends the
// sequence, so a caller that keeps ranging past an error gets nothing more.
func (s *Scraper) LinkedImageURLs(blogURL string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		blog, err := s.client.LookupBlog(blogURL)
		if err != nil {
			yield("", err)
			return
		}

		s.logger.InfoWithFields("blog resolved", map[string]interface{}{
			"blog_url": blogURL,
			"blog_id":  blog.ID,
		})

		posts, err := s.client.FetchAllPosts(blog.ID)
		if err != nil {
			yield("", err)
			return
		}

		s.logger.InfoWithFields("posts fetched", map[string]interface{}{
			"blog_id": blog.ID,
			"count":   len(posts),
		})

		for _, post := range posts {
			for _, link := range scanner.LinkedImages(post.Content) {
				resolved, err := s.resolver.Resolve(link)
				if !yield(resolved, err) {
					return
				}
				if err != nil {
					return
				}
			}
		}
	}
}

// Print writes each resolved image URL to w, one per line, stopping at the
// first failed element.
func (s *Scraper) Print(blogURL string, w io.Writer) error {
	for url, err := range s.LinkedImageURLs(blogURL) {
		if err != nil {
			return err
		}
		fmt.Fprintln(w, url)
	}
	return nil
}

// Download fetches each resolved image into destDir, reporting the URL and
// written size per line on w. The first failure stops the batch; files
// already written stay on disk.
func (s *Scraper) Download(blogURL, destDir string, w io.Writer) error {
	store, err := storage.NewManager(destDir)
	if err != nil {
		return err
	}

	for url, err := range s.LinkedImageURLs(blogURL) {
		if err != nil {
			return err
		}

		data, err := s.client.FetchResource(url)
		if err != nil {
			return err
		}

		size, err := store.Save(url, data)
		if err != nil {
			return err
		}

		s.logger.DebugWithFields("image saved", map[string]interface{}{
			"url":  url,
			"size": size,
		})

		fmt.Fprintln(w, url, ":", ui.FormatByteSize(size))
	}

	return nil
}
