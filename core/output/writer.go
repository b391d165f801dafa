// Package output handles file naming and writing for html2md outputs.
// A single input file is written flat, named after the input (page.html →
// page.md). Files found by walking an input directory are written under the
// same relative path, mirroring the input tree. Captured inline images are
// written to a directory named after the document.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/html2md/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write writes output for one input file.
// Filename: input base name with ext (e.g., page.md); stdin is "stdin".
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, filenameFromSource(source)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteMirrored writes output for a file found under root, mirroring its
// path relative to root.
// Example: root=site, source=site/docs/intro.html → <out>/docs/intro.md
func (w *Writer) WriteMirrored(root, source string, data []byte, ext string) (string, error) {
	rel, err := filepath.Rel(root, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is not under %s", source, root)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	fullPath := filepath.Join(w.OutputDir, rel+ext)

	// Ensure parent directories exist.
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// WriteImages writes captured inline images into a directory next to the
// document written at docPath, using the filenames the collector assigned.
// Example: docPath=<out>/docs/intro.md → <out>/docs/intro_images/embedded_image_1.png
func (w *Writer) WriteImages(docPath string, images []core.InlineImage) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	target := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + "_images"
	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", target, err)
	}

	paths := make([]string, 0, len(images))
	for _, img := range images {
		path := filepath.Join(target, filepath.Base(img.Filename))
		if err := os.WriteFile(path, img.Data, 0644); err != nil {
			return paths, fmt.Errorf("writing image %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// filenameFromSource converts an input path into a flat filename.
// Example: /tmp/My Page.html → My_Page
func filenameFromSource(source string) string {
	if source == "" || source == "-" {
		return "stdin"
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "index"
	}
	return sanitize(base)
}

// sanitize replaces characters other than letters, digits, '-' and '_'
// with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
