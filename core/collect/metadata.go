package collect

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/html2md/core"
)

// MetadataCollector accumulates metadata for one conversion. It is owned by
// a single call and handed back by value with Finish.
type MetadataCollector struct {
	cfg  core.MetadataConfig
	meta core.Metadata
}

// NewMetadataCollector creates a collector honoring cfg's toggles.
func NewMetadataCollector(cfg core.MetadataConfig) *MetadataCollector {
	if cfg.MaxStructuredDataSize <= 0 {
		cfg.MaxStructuredDataSize = core.DefaultMaxStructuredDataSize
	}
	return &MetadataCollector{cfg: cfg}
}

// Finish returns everything collected. Sequences are never nil so the JSON
// form always carries arrays.
func (c *MetadataCollector) Finish() core.Metadata {
	m := c.meta
	if m.Headers == nil {
		m.Headers = []core.HeaderMetadata{}
	}
	if m.Links == nil {
		m.Links = []core.LinkMetadata{}
	}
	if m.Images == nil {
		m.Images = []core.ImageMetadata{}
	}
	if m.StructuredData == nil {
		m.StructuredData = []core.StructuredData{}
	}
	c.meta = core.Metadata{}
	return m
}

func (c *MetadataCollector) OnRoot(n *html.Node) {
	if !c.cfg.ExtractDocument {
		return
	}
	sel := goquery.NewDocumentFromNode(n).Selection
	if lang, ok := sel.Attr("lang"); ok {
		c.meta.Document.Language = strings.TrimSpace(lang)
	}
	if dir, ok := sel.Attr("dir"); ok {
		c.meta.Document.TextDirection = strings.ToLower(strings.TrimSpace(dir))
	}
}

func (c *MetadataCollector) OnHead(head *html.Node) {
	doc := goquery.NewDocumentFromNode(head)
	if c.cfg.ExtractStructuredData {
		doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
			c.OnJSONLD(s.Text())
		})
	}
	if !c.cfg.ExtractDocument {
		return
	}
	d := &c.meta.Document
	if t := doc.Find("title").First(); t.Length() > 0 {
		d.Title = collapse(t.Text())
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		d.BaseHref = strings.TrimSpace(href)
	}
	doc.Find("link[rel][href]").Each(func(_ int, s *goquery.Selection) {
		for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
			if rel == "canonical" && d.CanonicalURL == "" {
				d.CanonicalURL = strings.TrimSpace(s.AttrOr("href", ""))
			}
		}
	})
	doc.Find("meta[content]").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		key := strings.ToLower(strings.TrimSpace(s.AttrOr("name", s.AttrOr("property", ""))))
		if key == "" || content == "" {
			return
		}
		switch {
		case key == "description":
			d.Description = content
		case key == "keywords":
			d.Keywords = splitKeywords(content)
		case key == "author":
			d.Author = content
		case strings.HasPrefix(key, "og:"):
			d.OpenGraph = put(d.OpenGraph, strings.TrimPrefix(key, "og:"), content)
		case strings.HasPrefix(key, "twitter:"):
			d.TwitterCard = put(d.TwitterCard, strings.TrimPrefix(key, "twitter:"), content)
		default:
			d.MetaTags = put(d.MetaTags, key, content)
		}
	})
}

func (c *MetadataCollector) OnHeader(level int, text, id string) {
	if !c.cfg.ExtractHeaders {
		return
	}
	c.meta.Headers = append(c.meta.Headers, core.HeaderMetadata{
		Level: level,
		Text:  collapse(text),
		ID:    id,
	})
}

func (c *MetadataCollector) OnLink(href, text, title, rel string) {
	if !c.cfg.ExtractLinks {
		return
	}
	c.meta.Links = append(c.meta.Links, core.LinkMetadata{
		Href:  href,
		Text:  collapse(text),
		Title: title,
		Type:  ClassifyLink(href),
		Rel:   strings.Fields(rel),
	})
}

func (c *MetadataCollector) OnImage(src, alt, title string) {
	if !c.cfg.ExtractImages {
		return
	}
	typ := core.ImageExternal
	if isDataURI(src) {
		typ = core.ImageDataURI
	}
	c.meta.Images = append(c.meta.Images, core.ImageMetadata{
		Src:   src,
		Alt:   alt,
		Title: title,
		Type:  typ,
	})
}

func (c *MetadataCollector) OnJSONLD(raw string) {
	if !c.cfg.ExtractStructuredData {
		return
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || int64(len(raw)) > c.cfg.MaxStructuredDataSize {
		return
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return
	}
	c.meta.StructuredData = append(c.meta.StructuredData, core.StructuredData{
		Type:       core.StructuredJSONLD,
		SchemaType: schemaType(v),
		RawJSON:    raw,
	})
}

// OnMicrodata records top-level items only. Properties of nested items are
// folded into the outermost item.
func (c *MetadataCollector) OnMicrodata(n *html.Node) {
	if !c.cfg.ExtractStructuredData {
		return
	}
	item := goquery.NewDocumentFromNode(n).Selection
	if item.ParentsFiltered("[itemscope]").Length() > 0 {
		return
	}
	itemType := strings.TrimSpace(item.AttrOr("itemtype", ""))
	props := map[string]any{}
	if itemType != "" {
		props["@type"] = itemType
	}
	item.Find("[itemprop]").Each(func(_ int, s *goquery.Selection) {
		for _, name := range strings.Fields(s.AttrOr("itemprop", "")) {
			props[name] = appendValue(props[name], propValue(s))
		}
	})
	raw, err := json.Marshal(props)
	if err != nil || int64(len(raw)) > c.cfg.MaxStructuredDataSize {
		return
	}
	c.meta.StructuredData = append(c.meta.StructuredData, core.StructuredData{
		Type:       core.StructuredMicrodata,
		SchemaType: itemType,
		RawJSON:    string(raw),
	})
}

// ClassifyLink sorts an href into anchor, external or internal.
func ClassifyLink(href string) core.LinkType {
	h := strings.TrimSpace(href)
	switch {
	case strings.HasPrefix(h, "#"):
		return core.LinkAnchor
	case strings.HasPrefix(h, "//"), hasScheme(h):
		return core.LinkExternal
	default:
		return core.LinkInternal
	}
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case i > 0 && ((c >= '0' && c <= '9') || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return false
}

func isDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}

func propValue(s *goquery.Selection) string {
	for _, attr := range []string{"content", "href", "src", "datetime"} {
		if v, ok := s.Attr(attr); ok {
			return strings.TrimSpace(v)
		}
	}
	return collapse(s.Text())
}

func appendValue(cur any, v string) any {
	switch c := cur.(type) {
	case nil:
		return v
	case string:
		return []string{c, v}
	case []string:
		return append(c, v)
	}
	return cur
}

func schemaType(v any) string {
	switch t := v.(type) {
	case map[string]any:
		switch st := t["@type"].(type) {
		case string:
			return st
		case []any:
			var names []string
			for _, x := range st {
				if s, ok := x.(string); ok {
					names = append(names, s)
				}
			}
			return strings.Join(names, ",")
		}
		if graph, ok := t["@graph"].([]any); ok && len(graph) > 0 {
			return schemaType(graph[0])
		}
	case []any:
		if len(t) > 0 {
			return schemaType(t[0])
		}
	}
	return ""
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func put(m map[string]string, k, v string) map[string]string {
	if m == nil {
		m = make(map[string]string)
	}
	m[k] = v
	return m
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
