// Package collect implements the side-channel observers the converter feeds
// while it walks the tree: a metadata collector and an inline image
// collector. Observers never write Markdown. The converter calls them at the
// same dispatch points where it emits output, so collection is part of the
// single traversal.
package collect

import "golang.org/x/net/html"

// MetadataObserver receives document facts as the walker meets them.
type MetadataObserver interface {
	// OnRoot is called with the <html> element.
	OnRoot(n *html.Node)
	// OnHead is called with the <head> element, which the walker does not
	// render.
	OnHead(head *html.Node)
	OnHeader(level int, text, id string)
	OnLink(href, text, title, rel string)
	OnImage(src, alt, title string)
	// OnJSONLD is called with the body of a <script type="application/ld+json">
	// outside <head>.
	OnJSONLD(raw string)
	// OnMicrodata is called with every element carrying itemscope.
	OnMicrodata(n *html.Node)
}

// ImageObserver receives inline image candidates. A candidate that is
// captured returns the filename the Markdown should reference and true; a
// skipped one returns false and the walker falls back to its normal output.
type ImageObserver interface {
	OnDataURI(src, alt, title string, attrs map[string]string) (ref string, ok bool)
	OnSVG(markup, description string, attrs map[string]string) (ref string, ok bool)
}

// NopMetadata ignores everything.
type NopMetadata struct{}

func (NopMetadata) OnRoot(*html.Node) {}
func (NopMetadata) OnHead(*html.Node) {}
func (NopMetadata) OnHeader(int, string, string) {}
func (NopMetadata) OnLink(string, string, string, string) {}
func (NopMetadata) OnImage(string, string, string) {}
func (NopMetadata) OnJSONLD(string) {}
func (NopMetadata) OnMicrodata(*html.Node) {}

// NopImages captures nothing.
type NopImages struct{}

func (NopImages) OnDataURI(string, string, string, map[string]string) (string, bool) {
	return "", false
}

func (NopImages) OnSVG(string, string, map[string]string) (string, bool) {
	return "", false
}
