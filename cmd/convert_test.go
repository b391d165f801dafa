package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/html2md/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(defaultFileConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "html2md.yaml")
	writeFile(t, path, "options:\n  heading_style: atx\n  preprocessing:\n    enabled: true\n    preset: minimal\n"+
		"metadata:\n  extract_links: false\ninline_images:\n  capture_svg: false\n")

	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := defaultFileConfig()
	want.Options.HeadingStyle = core.HeadingATX
	want.Options.Preprocessing.Enabled = true
	want.Options.Preprocessing.Preset = core.PresetMinimal
	want.Metadata.ExtractLinks = false
	want.InlineImages.CaptureSVG = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "options: [")
	if _, err := loadConfig(bad); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected a read error")
	}
}

func TestOptionFlags_ApplyChanged(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	f := registerOptionFlags(c)
	if err := c.Flags().Parse([]string{"--heading_style", "atx", "--wrap", "--keep_inline_images_in", "td,th", "--escape_misc=false"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := core.DefaultOptions()
	got.Bullets = "-" // from a config file; no flag given
	f.applyChanged(&got)

	want := core.DefaultOptions()
	want.Bullets = "-"
	want.HeadingStyle = core.HeadingATX
	want.Wrap = true
	want.EscapeMisc = false
	want.KeepInlineImagesIn = []string{"td", "th"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "site", "index.html"), "<p>a</p>")
	writeFile(t, filepath.Join(dir, "site", "docs", "b.HTM"), "<p>b</p>")
	writeFile(t, filepath.Join(dir, "site", "notes.txt"), "x")
	single := filepath.Join(dir, "one.html")
	writeFile(t, single, "<p>c</p>")

	got, err := collectInputs([]string{single, filepath.Join(dir, "site"), "-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := filepath.Join(dir, "site")
	want := []input{
		{Path: single},
		{Path: filepath.Join(root, "docs", "b.HTM"), Root: root},
		{Path: filepath.Join(root, "index.html"), Root: root},
		{Path: "-"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}

	got, _ = collectInputs(nil)
	if diff := cmp.Diff([]input{{Path: "-"}}, got); diff != "" {
		t.Errorf("expected stdin by default (-want +got):\n%s", diff)
	}

	if _, err := collectInputs([]string{filepath.Join(dir, "missing.html")}); err == nil {
		t.Error("expected an error for a missing input")
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	writeFile(t, filepath.Join(site, "docs", "a.html"),
		`<html><head><title>Guide</title></head><body><h1>Hi</h1>`+
			`<p><img src="data:image/svg+xml,%3Csvg%3E%3C/svg%3E" alt="s"></p></body></html>`)
	out := filepath.Join(dir, "out")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"convert", site, "--markdown", "--front_matter", "--inline_images",
		"--heading_style", "atx", "--output_dir", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(filepath.Join(out, "docs", "a.md"))
	if err != nil {
		t.Fatalf("expected mirrored output: %v", err)
	}
	md := string(data)
	if !strings.HasPrefix(md, "---\n") || !strings.Contains(md, "title: Guide\n") {
		t.Errorf("expected front matter, got %q", md)
	}
	if !strings.Contains(md, "---\n\n# Hi\n") {
		t.Errorf("expected an ATX heading after the front matter, got %q", md)
	}
	if _, err := os.Stat(filepath.Join(out, "docs", "a_images", "embedded_image_1.svg")); err != nil {
		t.Errorf("expected captured image on disk: %v", err)
	}
	if !strings.Contains(stderr.String(), "written") {
		t.Errorf("expected progress logging, got %q", stderr.String())
	}
}

func TestValidateFlags(t *testing.T) {
	defer func() { flagPDF, flagJSON, flagFrontMatter = false, false, false }()

	flagPDF, flagJSON = true, true
	if err := validateFlags(); err == nil {
		t.Error("expected an error for two output formats")
	}
	flagJSON = false
	flagFrontMatter = true
	if err := validateFlags(); err == nil {
		t.Error("expected an error for front matter with PDF output")
	}
	flagPDF = false
	if err := validateFlags(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
