package collect

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gaurav-prasanna/html2md/core"
)

const defaultFilenamePrefix = "embedded_image"

var mediaFormats = map[string]string{
	"image/png":                "png",
	"image/apng":               "png",
	"image/jpeg":               "jpeg",
	"image/jpg":                "jpeg",
	"image/pjpeg":              "jpeg",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/bmp":                "bmp",
	"image/x-ms-bmp":           "bmp",
	"image/tiff":               "tiff",
	"image/svg+xml":            "svg",
	"image/avif":               "avif",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

var extensions = map[string]string{
	"jpeg": "jpg",
	"tiff": "tif",
}

// ImageCollector decodes inline images for one conversion. Every candidate
// it is offered takes the next index, whether it is captured or skipped, so
// warning indexes match document order.
type ImageCollector struct {
	cfg      core.InlineImageConfig
	next     int
	images   []core.InlineImage
	warnings []core.InlineImageWarning
}

// NewImageCollector creates a collector. A non-positive size cap falls back
// to core.DefaultMaxDecodedSize.
func NewImageCollector(cfg core.InlineImageConfig) *ImageCollector {
	if cfg.MaxDecodedSize <= 0 {
		cfg.MaxDecodedSize = core.DefaultMaxDecodedSize
	}
	if cfg.FilenamePrefix == "" {
		cfg.FilenamePrefix = defaultFilenamePrefix
	}
	return &ImageCollector{cfg: cfg}
}

// Finish hands over the captured images and warnings and resets the
// collector.
func (c *ImageCollector) Finish() ([]core.InlineImage, []core.InlineImageWarning) {
	images, warnings := c.images, c.warnings
	if images == nil {
		images = []core.InlineImage{}
	}
	if warnings == nil {
		warnings = []core.InlineImageWarning{}
	}
	c.images, c.warnings, c.next = nil, nil, 0
	return images, warnings
}

func (c *ImageCollector) OnDataURI(src, alt, title string, attrs map[string]string) (string, bool) {
	index := c.next
	c.next++

	mediaType, data, err := decodeDataURI(src)
	if err != nil {
		c.warn(index, err.Error())
		return "", false
	}
	if int64(len(data)) > c.cfg.MaxDecodedSize {
		c.warn(index, fmt.Sprintf("decoded size %d bytes exceeds limit of %d bytes", len(data), c.cfg.MaxDecodedSize))
		return "", false
	}

	format, known := mediaFormats[mediaType]
	if !known && !strings.HasPrefix(mediaType, "image/") {
		format = ""
	} else if !known {
		format = strings.TrimPrefix(mediaType, "image/")
	}

	img := core.InlineImage{
		Data:        data,
		Format:      format,
		Description: describe(alt, title),
		Source:      core.SourceImgDataURI,
		Attributes:  attrs,
	}
	if format != "svg" && (c.cfg.InferDimensions || format == "") {
		cfg, sniffed, err := image.DecodeConfig(bytes.NewReader(data))
		switch {
		case err == nil:
			if format == "" {
				img.Format = sniffed
			}
			if c.cfg.InferDimensions {
				img.Width, img.Height = cfg.Width, cfg.Height
			}
		case format == "":
			c.warn(index, fmt.Sprintf("unsupported media type %q", mediaType))
			return "", false
		}
	}
	fillDimensions(&img, attrs)
	return c.add(img), true
}

func (c *ImageCollector) OnSVG(markup, description string, attrs map[string]string) (string, bool) {
	if !c.cfg.CaptureSVG {
		return "", false
	}
	index := c.next
	c.next++
	if int64(len(markup)) > c.cfg.MaxDecodedSize {
		c.warn(index, fmt.Sprintf("svg size %d bytes exceeds limit of %d bytes", len(markup), c.cfg.MaxDecodedSize))
		return "", false
	}
	img := core.InlineImage{
		Data:        []byte(markup),
		Format:      "svg",
		Description: description,
		Source:      core.SourceSVGElement,
		Attributes:  attrs,
	}
	fillDimensions(&img, attrs)
	return c.add(img), true
}

func (c *ImageCollector) add(img core.InlineImage) string {
	ext := img.Format
	if e, ok := extensions[ext]; ok {
		ext = e
	}
	if ext == "" {
		ext = "bin"
	}
	img.Filename = fmt.Sprintf("%s_%d.%s", c.cfg.FilenamePrefix, len(c.images)+1, ext)
	c.images = append(c.images, img)
	return img.Filename
}

func (c *ImageCollector) warn(index int, msg string) {
	c.warnings = append(c.warnings, core.InlineImageWarning{Index: index, Message: msg})
}

// decodeDataURI splits "data:[<media type>][;base64],<data>" and decodes the
// payload. The media type is lowercased without parameters.
func decodeDataURI(src string) (string, []byte, error) {
	if !isDataURI(src) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return "", nil, fmt.Errorf("invalid data URI: missing ','")
	}
	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if !isBase64 {
		data, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decoding percent-encoded payload: %w", err)
		}
		return mediaType, []byte(data), nil
	}

	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, payload)
	if strings.Contains(clean, "%") {
		if unescaped, err := url.PathUnescape(clean); err == nil {
			clean = unescaped
		}
	}
	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(clean, "="))
	}
	if err != nil {
		return "", nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return mediaType, data, nil
}

func describe(alt, title string) string {
	if alt = strings.TrimSpace(alt); alt != "" {
		return alt
	}
	return strings.TrimSpace(title)
}

// fillDimensions uses width and height attributes when decoding did not
// yield dimensions.
func fillDimensions(img *core.InlineImage, attrs map[string]string) {
	if img.Width == 0 {
		img.Width = pixels(attrs["width"])
	}
	if img.Height == 0 {
		img.Height = pixels(attrs["height"])
	}
}

func pixels(v string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
