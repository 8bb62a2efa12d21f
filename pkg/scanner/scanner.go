// Package scanner provides single-pass HTML tag scanning for image discovery.
//
// Both scanners stream over the markup with x/net/html's tokenizer: no DOM is
// built, each tag is seen exactly once in document order, and markup that does
// not tokenize as a tag is skipped rather than failing the scan.
package scanner

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// imageExtensions are the filename suffixes treated as image files.
var imageExtensions = []string{"png", "gif", "jpg", "jpeg"}

// IsImageFilename reports whether s names an image file by extension.
// The check is a plain case-sensitive suffix match on the whole string, so a
// query string after the extension defeats it ("image.jpg?x=1" does not
// match). That mirrors what Blogger post markup actually contains.
func IsImageFilename(s string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}

// attrVal returns the value of the named attribute of a tag, if present.
func attrVal(t html.Token, name string) (string, bool) {
	for _, a := range t.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ImageSources collects the src of every img tag in document order. Tags
// without a src are skipped. The result may be empty.
func ImageSources(r io.Reader) []string {
	var sources []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or unrecoverable markup; either way the scan is done
			return sources
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if t.Data != "img" {
				continue
			}
			if src, ok := attrVal(t, "src"); ok {
				sources = append(sources, src)
			}
		}
	}
}

// LinkedImages returns the href of every anchor that wraps an img element and
// whose href names an image file, in document order.
//
// A stack of open anchor hrefs is maintained: push on <a href=...>, pop on
// </a>. When an img opens while the stack is non-empty, the top entry is
// recorded if it passes IsImageFilename. Nesting depth between the anchor and
// the image is not inspected, so an image separated from its anchor by divs
// or lists still counts; that imprecision is accepted. Closing an anchor when
// the stack is empty is a no-op, so unbalanced markup cannot underflow.
func LinkedImages(content string) []string {
	var (
		linkStack []string
		images    []string
	)

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return images
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "a":
				if href, ok := attrVal(t, "href"); ok {
					linkStack = append(linkStack, href)
				}
			case "img":
				if len(linkStack) == 0 {
					continue
				}
				if link := linkStack[len(linkStack)-1]; IsImageFilename(link) {
					images = append(images, link)
				}
			}
		case html.EndTagToken:
			if t := z.Token(); t.Data == "a" && len(linkStack) > 0 {
				linkStack = linkStack[:len(linkStack)-1]
			}
		}
	}
}
