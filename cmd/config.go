package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/html2md/core"
)

// configEnv names the environment variable consulted when --config is unset.
const configEnv = "HTML2MD_CONFIG"

// fileConfig is the layout of a --config YAML file.
type fileConfig struct {
	Options      core.Options           `yaml:"options"`
	Metadata     core.MetadataConfig    `yaml:"metadata"`
	InlineImages core.InlineImageConfig `yaml:"inline_images"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Options:      core.DefaultOptions(),
		Metadata:     core.DefaultMetadataConfig(),
		InlineImages: core.DefaultInlineImageConfig(),
	}
}

// loadConfig reads path on top of the defaults. An empty path yields the
// defaults unchanged. Keys missing from the file keep their default.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// optionFlags binds conversion option flags and remembers how to copy each
// one into an Options value. Only flags set on the command line are copied,
// so they override the config file without resetting its other keys.
type optionFlags struct {
	cmd   *cobra.Command
	apply map[string]func(*core.Options)
}

func newOptionFlags(cmd *cobra.Command) *optionFlags {
	return &optionFlags{cmd: cmd, apply: make(map[string]func(*core.Options))}
}

func (f *optionFlags) str(name, def, usage string, set func(*core.Options, string)) {
	v := new(string)
	f.cmd.Flags().StringVar(v, name, def, usage)
	f.apply[name] = func(o *core.Options) { set(o, *v) }
}

func (f *optionFlags) boolean(name string, def bool, usage string, set func(*core.Options, bool)) {
	v := new(bool)
	f.cmd.Flags().BoolVar(v, name, def, usage)
	f.apply[name] = func(o *core.Options) { set(o, *v) }
}

func (f *optionFlags) integer(name string, def int, usage string, set func(*core.Options, int)) {
	v := new(int)
	f.cmd.Flags().IntVar(v, name, def, usage)
	f.apply[name] = func(o *core.Options) { set(o, *v) }
}

func (f *optionFlags) strings(name string, usage string, set func(*core.Options, []string)) {
	v := new([]string)
	f.cmd.Flags().StringSliceVar(v, name, nil, usage)
	f.apply[name] = func(o *core.Options) { set(o, *v) }
}

// applyChanged copies every explicitly set flag into o.
func (f *optionFlags) applyChanged(o *core.Options) {
	for name, set := range f.apply {
		if f.cmd.Flags().Changed(name) {
			set(o)
		}
	}
}

// registerOptionFlags declares one flag per conversion option.
func registerOptionFlags(cmd *cobra.Command) *optionFlags {
	d := core.DefaultOptions()
	f := newOptionFlags(cmd)

	f.str("heading_style", string(d.HeadingStyle), "Heading style: underlined, atx, atx-closed",
		func(o *core.Options, v string) { o.HeadingStyle = core.HeadingStyle(v) })
	f.str("list_indent_type", string(d.ListIndentType), "List indent: spaces or tabs",
		func(o *core.Options, v string) { o.ListIndentType = core.ListIndentType(v) })
	f.integer("list_indent_width", d.ListIndentWidth, "Spaces per list nesting level",
		func(o *core.Options, v int) { o.ListIndentWidth = v })
	f.str("bullets", d.Bullets, "Bullet characters, cycled by nesting depth",
		func(o *core.Options, v string) { o.Bullets = v })
	f.str("strong_em_symbol", d.StrongEmSymbol, "Symbol for strong and emphasis: * or _",
		func(o *core.Options, v string) { o.StrongEmSymbol = v })
	f.boolean("escape_misc", d.EscapeMisc, "Escape Markdown-significant punctuation",
		func(o *core.Options, v bool) { o.EscapeMisc = v })
	f.boolean("escape_asterisks", d.EscapeAsterisks, "Escape asterisks in text",
		func(o *core.Options, v bool) { o.EscapeAsterisks = v })
	f.boolean("escape_underscores", d.EscapeUnderscores, "Escape underscores in text",
		func(o *core.Options, v bool) { o.EscapeUnderscores = v })
	f.str("code_language", d.CodeLanguage, "Default fenced code block language",
		func(o *core.Options, v string) { o.CodeLanguage = v })
	f.boolean("autolinks", d.Autolinks, "Write <url> for links whose text is their URL",
		func(o *core.Options, v bool) { o.Autolinks = v })
	f.boolean("default_title", d.DefaultTitle, "Use the href as link title when none is given",
		func(o *core.Options, v bool) { o.DefaultTitle = v })
	f.boolean("br_in_tables", d.BrInTables, "Join multi-line table cells with <br>",
		func(o *core.Options, v bool) { o.BrInTables = v })
	f.str("highlight_style", string(d.HighlightStyle), "Highlight style: double-equal, html, bold, none",
		func(o *core.Options, v string) { o.HighlightStyle = core.HighlightStyle(v) })
	f.boolean("metadata", d.ExtractMetadata, "Collect document metadata",
		func(o *core.Options, v bool) { o.ExtractMetadata = v })
	f.str("whitespace_mode", string(d.WhitespaceMode), "Whitespace mode: normalized or strict",
		func(o *core.Options, v string) { o.WhitespaceMode = core.WhitespaceMode(v) })
	f.boolean("strip_newlines", d.StripNewlines, "Replace input newlines with spaces before parsing",
		func(o *core.Options, v bool) { o.StripNewlines = v })
	f.boolean("wrap", d.Wrap, "Wrap paragraphs",
		func(o *core.Options, v bool) { o.Wrap = v })
	f.integer("wrap_width", d.WrapWidth, "Wrap column",
		func(o *core.Options, v int) { o.WrapWidth = v })
	f.boolean("inline", d.ConvertAsInline, "Convert the input as inline content",
		func(o *core.Options, v bool) { o.ConvertAsInline = v })
	f.str("sub_symbol", d.SubSymbol, "Symbol around subscript text (default <sub>)",
		func(o *core.Options, v string) { o.SubSymbol = v })
	f.str("sup_symbol", d.SupSymbol, "Symbol around superscript text (default <sup>)",
		func(o *core.Options, v string) { o.SupSymbol = v })
	f.str("newline_style", string(d.NewlineStyle), "Line break style: two-trailing-spaces or backslash",
		func(o *core.Options, v string) { o.NewlineStyle = core.NewlineStyle(v) })
	f.strings("keep_inline_images_in", "Tags whose images stay as image syntax",
		func(o *core.Options, v []string) { o.KeepInlineImagesIn = v })
	f.boolean("preprocess", d.Preprocessing.Enabled, "Sanitize the HTML before conversion",
		func(o *core.Options, v bool) { o.Preprocessing.Enabled = v })
	f.str("preset", string(d.Preprocessing.Preset), "Sanitizer preset: minimal, standard, aggressive",
		func(o *core.Options, v string) { o.Preprocessing.Preset = core.PreprocessingPreset(v) })
	f.boolean("remove_navigation", d.Preprocessing.RemoveNavigation, "Sanitizer removes navigation",
		func(o *core.Options, v bool) { o.Preprocessing.RemoveNavigation = v })
	f.boolean("remove_forms", d.Preprocessing.RemoveForms, "Sanitizer removes forms",
		func(o *core.Options, v bool) { o.Preprocessing.RemoveForms = v })
	f.boolean("hocr_tables", d.HOCRSpatialTables, "Rebuild tables from hOCR word positions",
		func(o *core.Options, v bool) { o.HOCRSpatialTables = v })

	return f
}
