package core

// LinkType classifies a hyperlink target.
type LinkType string

const (
	LinkExternal LinkType = "external"
	LinkInternal LinkType = "internal"
	LinkAnchor   LinkType = "anchor"
)

// ImageType classifies an image source.
type ImageType string

const (
	ImageExternal ImageType = "external"
	ImageDataURI  ImageType = "data-uri"
)

// StructuredDataType is the encoding a structured data block was found in.
type StructuredDataType string

const (
	StructuredJSONLD    StructuredDataType = "json-ld"
	StructuredMicrodata StructuredDataType = "microdata"
)

// HeaderMetadata records one heading in document order.
type HeaderMetadata struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id,omitempty"`
}

// LinkMetadata records one hyperlink in document order.
type LinkMetadata struct {
	Href  string   `json:"href"`
	Text  string   `json:"text"`
	Title string   `json:"title,omitempty"`
	Type  LinkType `json:"type"`
	Rel   []string `json:"rel,omitempty"`
}

// ImageMetadata records one image in document order.
type ImageMetadata struct {
	Src   string    `json:"src"`
	Alt   string    `json:"alt"`
	Title string    `json:"title,omitempty"`
	Type  ImageType `json:"type"`
}

// StructuredData is one structured data block, raw JSON included.
type StructuredData struct {
	Type       StructuredDataType `json:"type"`
	SchemaType string             `json:"schema_type,omitempty"`
	RawJSON    string             `json:"raw_json"`
}

// DocumentMetadata holds document-level facts taken from <html> and <head>.
type DocumentMetadata struct {
	Title         string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Keywords      []string          `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Author        string            `json:"author,omitempty" yaml:"author,omitempty"`
	CanonicalURL  string            `json:"canonical_url,omitempty" yaml:"canonical_url,omitempty"`
	BaseHref      string            `json:"base_href,omitempty" yaml:"base_href,omitempty"`
	Language      string            `json:"language,omitempty" yaml:"language,omitempty"`
	TextDirection string            `json:"text_direction,omitempty" yaml:"text_direction,omitempty"`
	OpenGraph     map[string]string `json:"open_graph,omitempty" yaml:"open_graph,omitempty"`
	TwitterCard   map[string]string `json:"twitter_card,omitempty" yaml:"twitter_card,omitempty"`
	MetaTags      map[string]string `json:"meta_tags,omitempty" yaml:"meta_tags,omitempty"`
}

// IsZero reports whether no document metadata was found.
func (d DocumentMetadata) IsZero() bool {
	return d.Title == "" && d.Description == "" && len(d.Keywords) == 0 &&
		d.Author == "" && d.CanonicalURL == "" && d.BaseHref == "" &&
		d.Language == "" && d.TextDirection == "" && len(d.OpenGraph) == 0 &&
		len(d.TwitterCard) == 0 && len(d.MetaTags) == 0
}

// Metadata is everything the metadata collector saw during one conversion.
type Metadata struct {
	Document       DocumentMetadata `json:"document"`
	Headers        []HeaderMetadata `json:"headers"`
	Links          []LinkMetadata   `json:"links"`
	Images         []ImageMetadata  `json:"images"`
	StructuredData []StructuredData `json:"structured_data"`
}

// MetadataResult is returned by ConvertWithMetadata.
type MetadataResult struct {
	Markdown string
	Metadata Metadata
}
