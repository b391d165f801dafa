// Package core defines the conversion data model and the pipeline interfaces
// for html2md. Each stage of the pipeline is a clean, testable interface.
package core

// Document is one HTML input handed to the pipeline.
type Document struct {
	Source string // file path, or "-" for stdin
	HTML   string
}

// Conversion is the outcome of the normalize stage for one document.
// Metadata and InlineImages are only populated when their collectors ran.
type Conversion struct {
	Source       string
	Markdown     string
	Metadata     *Metadata
	InlineImages []InlineImage
	Warnings     []InlineImageWarning
}

// ConversionJSON is the complete JSON output for a single document.
type ConversionJSON struct {
	Source    string               `json:"source"`
	Markdown  string               `json:"markdown"`
	Metadata  *Metadata            `json:"metadata,omitempty"`
	Images    []InlineImageSummary `json:"inline_images,omitempty"`
	Warnings  []InlineImageWarning `json:"warnings,omitempty"`
	Structure DocumentStructure    `json:"structure"`
}

// InlineImageSummary describes a captured image without its bytes.
type InlineImageSummary struct {
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	Size        int    `json:"size"`
	Description string `json:"description,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Source      string `json:"source"`
}

// DocumentStructure counts structural elements in the produced Markdown.
type DocumentStructure struct {
	Headings   int `json:"headings"`
	CodeBlocks int `json:"code_blocks"`
	Tables     int `json:"tables"`
	ListItems  int `json:"list_items"`
}

// Sanitizer pre-cleans raw HTML before it is parsed.
type Sanitizer interface {
	Sanitize(html string) (string, error)
}

// Normalizer converts HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(doc Document) (*Conversion, error)
}

// Renderer converts a Conversion into a final output format.
type Renderer interface {
	Render(conv *Conversion) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
