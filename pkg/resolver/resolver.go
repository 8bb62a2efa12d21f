// Package resolver follows one level of indirection from a linked resource to
// an image URL, using the response's declared media type to decide whether a
// hop is needed.
package resolver

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"bloglinks/pkg/errors"
	"bloglinks/pkg/logger"
	"bloglinks/pkg/scanner"
)

// Getter is the fetch boundary the resolver needs.
type Getter interface {
	Get(url string) (*http.Response, error)
}

// Resolver classifies linked resources and hops through HTML pages to the
// first image they embed.
type Resolver struct {
	client Getter
	logger logger.Logger
}

// New creates a new Resolver
func New(client Getter, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Resolver{
		client: client,
		logger: log,
	}
}

// Resolve returns the image URL a link target stands for. A resource whose
// media type is an image resolves to itself; anything else is read as an HTML
// page and resolves to the first image it embeds. Only one hop is taken: if
// that first image source is itself another page, it is returned as-is.
func (r *Resolver) Resolve(rawURL string) (string, error) {
	resp, err := r.client.Get(rawURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(rawURL, resp.StatusCode); err != nil {
		r.logger.WarnWithFields("link target fetch failed", map[string]interface{}{
			"url":    rawURL,
			"status": resp.StatusCode,
		})
		return "", err
	}

	if isImageType(resp.Header.Get("Content-Type")) {
		r.logger.DebugWithFields("link resolves to itself", map[string]interface{}{
			"url": rawURL,
		})
		return rawURL, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read %s: %v", rawURL, err),
			Code:    resp.StatusCode,
		}
	}

	sources := scanner.ImageSources(bytes.NewReader(body))
	if len(sources) == 0 {
		return "", &errors.Error{
			Type:    errors.ErrorTypeNoImage,
			Message: fmt.Sprintf("no image found in %s", rawURL),
			Code:    resp.StatusCode,
		}
	}

	r.logger.DebugWithFields("link resolved through page", map[string]interface{}{
		"url":      rawURL,
		"resolved": sources[0],
	})

	return sources[0], nil
}

// checkStatus rejects link targets that did not fetch cleanly. A 404 or 500
// error page must not be classified and scanned as if it were the linked
// resource.
func checkStatus(rawURL string, statusCode int) error {
	switch {
	case statusCode == http.StatusOK:
		return nil
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: fmt.Sprintf("access denied fetching %s", rawURL),
			Code:    statusCode,
		}
	case statusCode == http.StatusNotFound:
		return &errors.Error{
			Type:    errors.ErrorTypeNotFound,
			Message: fmt.Sprintf("link target not found: %s", rawURL),
			Code:    statusCode,
		}
	case statusCode >= 500:
		return &errors.Error{
			Type:    errors.ErrorTypeServerError,
			Message: fmt.Sprintf("server error fetching %s", rawURL),
			Code:    statusCode,
		}
	case statusCode >= 400:
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: fmt.Sprintf("unexpected status code %d fetching %s", statusCode, rawURL),
			Code:    statusCode,
		}
	default:
		return nil
	}
}

// isImageType reports whether the declared media type's top-level token is
// "image". A missing or unparseable Content-Type classifies as non-image and
// falls through to the body scan.
func isImageType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	top, _, _ := strings.Cut(mediaType, "/")
	return top == "image"
}
