package core

import (
	"errors"
	"fmt"
	"strings"
)

// HeadingStyle selects how headings are written.
type HeadingStyle string

const (
	HeadingUnderlined HeadingStyle = "underlined"
	HeadingATX        HeadingStyle = "atx"
	HeadingATXClosed  HeadingStyle = "atx-closed"
)

// ListIndentType selects the character used to indent nested lists.
type ListIndentType string

const (
	IndentSpaces ListIndentType = "spaces"
	IndentTabs   ListIndentType = "tabs"
)

// HighlightStyle selects how <mark> is written.
type HighlightStyle string

const (
	HighlightDoubleEqual HighlightStyle = "double-equal"
	HighlightHTML        HighlightStyle = "html"
	HighlightBold        HighlightStyle = "bold"
	HighlightNone        HighlightStyle = "none"
)

// WhitespaceMode selects how text node whitespace is treated.
type WhitespaceMode string

const (
	// WhitespaceNormalized collapses runs of spaces and tabs to one space and
	// keeps newlines.
	WhitespaceNormalized WhitespaceMode = "normalized"
	// WhitespaceStrict keeps text whitespace as written.
	WhitespaceStrict WhitespaceMode = "strict"
)

// NewlineStyle selects how a <br> is written.
type NewlineStyle string

const (
	NewlineSpaces    NewlineStyle = "two-trailing-spaces"
	NewlineBackslash NewlineStyle = "backslash"
)

// PreprocessingPreset selects how much the sanitizer removes.
type PreprocessingPreset string

const (
	PresetMinimal    PreprocessingPreset = "minimal"
	PresetStandard   PreprocessingPreset = "standard"
	PresetAggressive PreprocessingPreset = "aggressive"
)

// Preprocessing configures the sanitizer that runs before parsing. When
// Enabled is false the input is parsed as given.
type Preprocessing struct {
	Enabled          bool                `yaml:"enabled" json:"enabled"`
	Preset           PreprocessingPreset `yaml:"preset" json:"preset"`
	RemoveNavigation bool                `yaml:"remove_navigation" json:"remove_navigation"`
	RemoveForms      bool                `yaml:"remove_forms" json:"remove_forms"`
}

// Options is the configuration snapshot for one conversion call.
type Options struct {
	HeadingStyle       HeadingStyle   `yaml:"heading_style" json:"heading_style"`
	ListIndentType     ListIndentType `yaml:"list_indent_type" json:"list_indent_type"`
	ListIndentWidth    int            `yaml:"list_indent_width" json:"list_indent_width"`
	Bullets            string         `yaml:"bullets" json:"bullets"`
	StrongEmSymbol     string         `yaml:"strong_em_symbol" json:"strong_em_symbol"`
	EscapeMisc         bool           `yaml:"escape_misc" json:"escape_misc"`
	EscapeAsterisks    bool           `yaml:"escape_asterisks" json:"escape_asterisks"`
	EscapeUnderscores  bool           `yaml:"escape_underscores" json:"escape_underscores"`
	CodeLanguage       string         `yaml:"code_language" json:"code_language"`
	Autolinks          bool           `yaml:"autolinks" json:"autolinks"`
	DefaultTitle       bool           `yaml:"default_title" json:"default_title"`
	BrInTables         bool           `yaml:"br_in_tables" json:"br_in_tables"`
	HighlightStyle     HighlightStyle `yaml:"highlight_style" json:"highlight_style"`
	ExtractMetadata    bool           `yaml:"extract_metadata" json:"extract_metadata"`
	WhitespaceMode     WhitespaceMode `yaml:"whitespace_mode" json:"whitespace_mode"`
	StripNewlines      bool           `yaml:"strip_newlines" json:"strip_newlines"`
	Wrap               bool           `yaml:"wrap" json:"wrap"`
	WrapWidth          int            `yaml:"wrap_width" json:"wrap_width"`
	ConvertAsInline    bool           `yaml:"convert_as_inline" json:"convert_as_inline"`
	SubSymbol          string         `yaml:"sub_symbol" json:"sub_symbol"`
	SupSymbol          string         `yaml:"sup_symbol" json:"sup_symbol"`
	NewlineStyle       NewlineStyle   `yaml:"newline_style" json:"newline_style"`
	KeepInlineImagesIn []string       `yaml:"keep_inline_images_in" json:"keep_inline_images_in"`
	Preprocessing      Preprocessing  `yaml:"preprocessing" json:"preprocessing"`
	HOCRSpatialTables  bool           `yaml:"hocr_spatial_tables" json:"hocr_spatial_tables"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		HeadingStyle:      HeadingUnderlined,
		ListIndentType:    IndentSpaces,
		ListIndentWidth:   4,
		Bullets:           "*+-",
		StrongEmSymbol:    "*",
		EscapeMisc:        true,
		EscapeAsterisks:   true,
		EscapeUnderscores: true,
		Autolinks:         true,
		HighlightStyle:    HighlightDoubleEqual,
		ExtractMetadata:   true,
		WhitespaceMode:    WhitespaceNormalized,
		WrapWidth:         80,
		NewlineStyle:      NewlineSpaces,
		Preprocessing: Preprocessing{
			Preset: PresetStandard,
		},
		HOCRSpatialTables: true,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	switch o.HeadingStyle {
	case HeadingUnderlined, HeadingATX, HeadingATXClosed:
	default:
		return fmt.Errorf("invalid heading style %q", o.HeadingStyle)
	}
	switch o.ListIndentType {
	case IndentSpaces, IndentTabs:
	default:
		return fmt.Errorf("invalid list indent type %q", o.ListIndentType)
	}
	if o.ListIndentWidth <= 0 {
		return fmt.Errorf("list indent width must be positive, got %d", o.ListIndentWidth)
	}
	if o.Bullets == "" {
		return errors.New("bullets must not be empty")
	}
	if o.StrongEmSymbol != "*" && o.StrongEmSymbol != "_" {
		return fmt.Errorf("strong/em symbol must be %q or %q, got %q", "*", "_", o.StrongEmSymbol)
	}
	switch o.HighlightStyle {
	case HighlightDoubleEqual, HighlightHTML, HighlightBold, HighlightNone:
	default:
		return fmt.Errorf("invalid highlight style %q", o.HighlightStyle)
	}
	switch o.WhitespaceMode {
	case WhitespaceNormalized, WhitespaceStrict:
	default:
		return fmt.Errorf("invalid whitespace mode %q", o.WhitespaceMode)
	}
	switch o.NewlineStyle {
	case NewlineSpaces, NewlineBackslash:
	default:
		return fmt.Errorf("invalid newline style %q", o.NewlineStyle)
	}
	if o.Wrap && o.WrapWidth <= 0 {
		return fmt.Errorf("wrap width must be positive, got %d", o.WrapWidth)
	}
	if o.Preprocessing.Enabled {
		switch o.Preprocessing.Preset {
		case PresetMinimal, PresetStandard, PresetAggressive:
		default:
			return fmt.Errorf("invalid preprocessing preset %q", o.Preprocessing.Preset)
		}
	}
	return nil
}

// IndentUnit returns the prefix added per list nesting level.
func (o Options) IndentUnit() string {
	if o.ListIndentType == IndentTabs {
		return "\t"
	}
	n := o.ListIndentWidth
	if n <= 0 {
		n = 4
	}
	return strings.Repeat(" ", n)
}

// KeepsInlineImagesIn reports whether images inside tag stay as image syntax.
func (o Options) KeepsInlineImagesIn(tag string) bool {
	for _, t := range o.KeepInlineImagesIn {
		if t == tag {
			return true
		}
	}
	return false
}

// InlineImageConfig configures inline image capture.
type InlineImageConfig struct {
	MaxDecodedSize  int64  `yaml:"max_decoded_size" json:"max_decoded_size"`
	FilenamePrefix  string `yaml:"filename_prefix" json:"filename_prefix"`
	CaptureSVG      bool   `yaml:"capture_svg" json:"capture_svg"`
	InferDimensions bool   `yaml:"infer_dimensions" json:"infer_dimensions"`
}

// DefaultMaxDecodedSize is the default cap on one decoded inline image.
const DefaultMaxDecodedSize = 5 * 1024 * 1024

// DefaultInlineImageConfig returns the documented defaults.
func DefaultInlineImageConfig() InlineImageConfig {
	return InlineImageConfig{
		MaxDecodedSize: DefaultMaxDecodedSize,
		CaptureSVG:     true,
	}
}

// MetadataConfig selects what the metadata collector records.
type MetadataConfig struct {
	ExtractDocument       bool  `yaml:"extract_document" json:"extract_document"`
	ExtractHeaders        bool  `yaml:"extract_headers" json:"extract_headers"`
	ExtractLinks          bool  `yaml:"extract_links" json:"extract_links"`
	ExtractImages         bool  `yaml:"extract_images" json:"extract_images"`
	ExtractStructuredData bool  `yaml:"extract_structured_data" json:"extract_structured_data"`
	MaxStructuredDataSize int64 `yaml:"max_structured_data_size" json:"max_structured_data_size"`
}

// DefaultMaxStructuredDataSize caps one structured data blob.
const DefaultMaxStructuredDataSize = 1_000_000

// DefaultMetadataConfig enables every extractor.
func DefaultMetadataConfig() MetadataConfig {
	return MetadataConfig{
		ExtractDocument:       true,
		ExtractHeaders:        true,
		ExtractLinks:          true,
		ExtractImages:         true,
		ExtractStructuredData: true,
		MaxStructuredDataSize: DefaultMaxStructuredDataSize,
	}
}
