// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// read → sanitize → normalize → render → write.
//
// Sanitizing runs inside the converter when --preprocess is set. The command
// handles flag validation, config loading, renderer selection, and the flat
// versus mirrored output layouts.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/convert"
	"github.com/gaurav-prasanna/html2md/core/normalize"
	"github.com/gaurav-prasanna/html2md/core/output"
	"github.com/gaurav-prasanna/html2md/core/render"
)

// Flag variables.
var (
	flagPDF          bool
	flagMarkdown     bool
	flagJSON         bool
	flagFrontMatter  bool
	flagInlineImages bool
	flagMaxImageSize int64
	flagStdout       bool
	flagConfig       string
	flagOutputDir    string

	optFlags *optionFlags
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|dir|-]...",
	Short: "Convert HTML files to the specified output format",
	Long: `Convert reads HTML from files, directories, or stdin, converts it to
Markdown, and writes it in the specified output format (Markdown, JSON, or PDF).

A single file is written as <name><ext> in the output directory. Directories
are walked for .html and .htm files and mirrored under the output directory.
With no arguments, or "-", HTML is read from stdin.

Examples:
  html2md convert page.html --markdown
  html2md convert site/ --json --output_dir ./out
  cat page.html | html2md convert --markdown --stdout --heading_style atx
  html2md convert page.html --pdf --config html2md.yaml`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	convertCmd.Flags().BoolVar(&flagFrontMatter, "front_matter", false, "Prefix Markdown output with YAML front matter from metadata")
	convertCmd.Flags().BoolVar(&flagInlineImages, "inline_images", false, "Capture data URI and inline SVG images and write them to disk")
	convertCmd.Flags().Int64Var(&flagMaxImageSize, "max_image_size", core.DefaultMaxDecodedSize, "Largest decoded inline image to capture, in bytes")
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write output to stdout instead of files")
	convertCmd.Flags().StringVar(&flagConfig, "config", envOr(configEnv, ""), "YAML options file (env "+configEnv+")")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")

	optFlags = registerOptionFlags(convertCmd)
}

// input is one HTML document to convert. Root is set for files found by
// walking a directory argument.
type input struct {
	Path string
	Root string
}

func runConvert(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	opts := cfg.Options
	optFlags.applyChanged(&opts)
	if cmd.Flags().Changed("max_image_size") {
		cfg.InlineImages.MaxDecodedSize = flagMaxImageSize
	}

	inputs, err := collectInputs(args)
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	conv, err := convert.New(&opts, logger)
	if err != nil {
		return err
	}
	normalizer := normalize.New(conv, normalize.Config{
		Metadata:     cfg.Metadata,
		InlineImages: flagInlineImages,
		Images:       cfg.InlineImages,
	})
	renderer := selectRenderer()

	var writer *output.Writer
	if !flagStdout {
		writer, err = output.New(flagOutputDir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	var errCount int
	for i, in := range inputs {
		logger.Debug("processing", "n", i+1, "total", len(inputs), "source", in.Path)

		html, err := readInput(cmd.InOrStdin(), in.Path)
		if err != nil {
			logger.Error("read failed", "source", in.Path, "err", err)
			errCount++
			continue
		}

		result, data, err := processDocument(core.Document{Source: in.Path, HTML: html}, normalizer, renderer)
		if err != nil {
			logger.Error("conversion failed", "source", in.Path, "err", err)
			errCount++
			continue
		}

		if writer == nil {
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			continue
		}

		if err := writeResult(writer, in, result, data, renderer.Extension()); err != nil {
			logger.Error("write failed", "source", in.Path, "err", err)
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d documents failed", errCount, len(inputs))
	}
	return nil
}

// processDocument runs a single document through the pipeline.
func processDocument(doc core.Document, normalizer core.Normalizer, renderer core.Renderer) (*core.Conversion, []byte, error) {
	// 1. Sanitize and normalize to Markdown
	result, err := normalizer.Normalize(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}

	// 2. Render to output format
	data, err := renderer.Render(result)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	return result, data, nil
}

// writeResult writes the rendered document and its captured images.
func writeResult(writer *output.Writer, in input, result *core.Conversion, data []byte, ext string) error {
	var (
		path string
		err  error
	)
	if in.Root != "" {
		path, err = writer.WriteMirrored(in.Root, in.Path, data, ext)
	} else {
		path, err = writer.Write(in.Path, data, ext)
	}
	if err != nil {
		return err
	}
	logger.Info("written", "path", path)

	images, err := writer.WriteImages(path, result.InlineImages)
	if err != nil {
		return err
	}
	if len(images) > 0 {
		logger.Info("images written", "count", len(images), "dir", filepath.Dir(images[0]))
	}
	for _, w := range result.Warnings {
		logger.Warn("inline image skipped", "source", in.Path, "index", w.Index, "reason", w.Message)
	}
	return nil
}

// collectInputs expands arguments into documents. Directories are walked
// for HTML files in lexical order.
func collectInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		return []input{{Path: "-"}}, nil
	}

	var inputs []input
	for _, arg := range args {
		if arg == "-" {
			inputs = append(inputs, input{Path: "-"})
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		if !info.IsDir() {
			inputs = append(inputs, input{Path: arg})
			continue
		}

		found := 0
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isHTMLFile(path) {
				return nil
			}
			inputs = append(inputs, input{Path: path, Root: arg})
			found++
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		if found == 0 {
			logger.Warn("no HTML files found", "dir", arg)
		}
	}
	return inputs, nil
}

func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// validateFlags checks that at most one output format is chosen and that
// the flags fit together.
func validateFlags() error {
	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagFrontMatter && (flagPDF || flagJSON) {
		return errors.New("--front_matter only applies to --markdown output")
	}
	if flagStdout && flagInlineImages {
		return errors.New("--inline_images writes files and cannot be combined with --stdout")
	}
	if flagMaxImageSize <= 0 {
		return fmt.Errorf("--max_image_size must be positive, got %d", flagMaxImageSize)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewMarkdownRenderer(flagFrontMatter)
	}
}
