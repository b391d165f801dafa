package core

// InlineImageSource tells where an inline image came from.
type InlineImageSource string

const (
	SourceImgDataURI InlineImageSource = "img_data_uri"
	SourceSVGElement InlineImageSource = "svg_element"
)

// InlineImage is one captured image.
type InlineImage struct {
	Data        []byte
	Format      string
	Filename    string
	Description string
	Width       int
	Height      int
	Source      InlineImageSource
	Attributes  map[string]string
}

// HasDimensions reports whether both width and height are known.
func (i InlineImage) HasDimensions() bool {
	return i.Width > 0 && i.Height > 0
}

// InlineImageWarning reports an image that was skipped. Index is the image's
// zero-based position among inline image candidates in document order.
type InlineImageWarning struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// InlineImageResult is returned by ConvertWithInlineImages.
type InlineImageResult struct {
	Markdown     string
	InlineImages []InlineImage
	Warnings     []InlineImageWarning
}
