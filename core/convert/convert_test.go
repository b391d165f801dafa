package convert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/html2md/core"
)

func options(edit func(*core.Options)) *core.Options {
	o := core.DefaultOptions()
	if edit != nil {
		edit(&o)
	}
	return &o
}

func mustConvert(t *testing.T, html string, opts *core.Options) string {
	t.Helper()
	got, err := Convert(html, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

// parseMarkdown parses md as GitHub flavored Markdown.
func parseMarkdown(md string) ast.Node {
	return goldmark.New(goldmark.WithExtensions(extension.GFM)).
		Parser().Parse(gtext.NewReader([]byte(md)))
}

func collectNodes[T ast.Node](root ast.Node) []T {
	var found []T
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if v, ok := n.(T); ok && entering {
			found = append(found, v)
		}
		return ast.WalkContinue, nil
	})
	return found
}

func TestConvert_Basics(t *testing.T) {
	tests := []struct {
		name string
		html string
		opts *core.Options
		want string
	}{
		{"paragraphs", "<p>one</p>\n<p>two</p>", nil, "one\n\ntwo\n"},
		{"underlined h1", "<h1>Title</h1>", nil, "Title\n=====\n"},
		{"underlined h2", "<h2>Sub</h2>", nil, "Sub\n---\n"},
		{"underlined falls back to atx", "<h3>Deep</h3>", nil, "### Deep\n"},
		{"atx", "<h2>Sub</h2>", options(func(o *core.Options) { o.HeadingStyle = core.HeadingATX }), "## Sub\n"},
		{"atx closed", "<h2>Sub</h2>", options(func(o *core.Options) { o.HeadingStyle = core.HeadingATXClosed }), "## Sub ##\n"},
		{"strong and em", "<p><b>bold</b> and <i>it</i></p>", nil, "**bold** and *it*\n"},
		{"underscore symbol", "<p><strong>x</strong></p>", options(func(o *core.Options) { o.StrongEmSymbol = "_" }), "__x__\n"},
		{"whitespace moves outside markers", "<p>a<b> b </b>c</p>", nil, "a **b** c\n"},
		{"empty inline dropped", "<p>a<b> </b>c</p>", nil, "a c\n"},
		{"strike", "<p><del>gone</del></p>", nil, "~~gone~~\n"},
		{"inline code", "<p>run <code>ls</code> now</p>", nil, "run `ls` now\n"},
		{"inline code with backtick", "<p><code>a`b</code></p>", nil, "``a`b``\n"},
		{"code is not escaped", "<p><code>a_b*c</code></p>", nil, "`a_b*c`\n"},
		{"text is escaped", "<p>a_b*c</p>", nil, `a\_b\*c` + "\n"},
		{"quote", "<p><q>hi</q></p>", nil, "\"hi\"\n"},
		{"abbr", `<p><abbr title="HyperText">HTML</abbr></p>`, nil, "HTML (HyperText)\n"},
		{"mark", "<p><mark>hot</mark></p>", nil, "==hot==\n"},
		{"mark html", "<p><mark>hot</mark></p>", options(func(o *core.Options) { o.HighlightStyle = core.HighlightHTML }), "<mark>hot</mark>\n"},
		{"sub passthrough", "<p>H<sub>2</sub>O</p>", nil, "H<sub>2</sub>O\n"},
		{"sup symbol", "<p>x<sup>2</sup></p>", options(func(o *core.Options) { o.SupSymbol = "^" }), "x^2^\n"},
		{"rule", "<p>a</p><hr><p>b</p>", nil, "a\n\n---\n\nb\n"},
		{"script and style dropped", "<p>a</p><script>x()</script><style>p{}</style>", nil, "a\n"},
		{"unknown tag passthrough", "<p><custom-tag>kept</custom-tag></p>", nil, "kept\n"},
		{"empty document", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustConvert(t, tt.html, tt.opts); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvert_Links(t *testing.T) {
	tests := []struct {
		name string
		html string
		opts *core.Options
		want string
	}{
		{"plain", `<a href="/x">Go</a>`, nil, "[Go](/x)\n"},
		{"title", `<a href="/x" title="T">Go</a>`, nil, "[Go](/x \"T\")\n"},
		{"autolink", `<a href="https://example.com">https://example.com</a>`, nil, "<https://example.com>\n"},
		{"autolink off", `<a href="https://example.com">https://example.com</a>`, options(func(o *core.Options) { o.Autolinks = false }), "[https://example.com](https://example.com)\n"},
		{"default title", `<a href="/x">Go</a>`, options(func(o *core.Options) { o.DefaultTitle = true }), "[Go](/x \"/x\")\n"},
		{"no href", `<a name="top">Top</a>`, nil, "Top\n"},
		{"no text", `<p>a <a href="/x"></a> b</p>`, nil, "a b\n"},
		{"space in destination", `<a href="/a b">AB</a>`, nil, "[AB](</a b>)\n"},
		{"image", `<img src="i.png" alt="pic" title="t">`, nil, "![pic](i.png \"t\")\n"},
		{"video source", `<video><source src="v.mp4"></video>`, nil, "[v.mp4](v.mp4)\n"},
		{"iframe", `<iframe src="https://e.com/embed"></iframe>`, nil, "[https://e.com/embed](https://e.com/embed)\n"},
		{"picture source skipped", `<picture><source srcset="a.webp"><img src="a.png" alt="a"></picture>`, nil, "![a](a.png)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustConvert(t, tt.html, tt.opts); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvert_ImageFlattening(t *testing.T) {
	html := `<h3>Logo <img src="l.png" alt="brand"></h3>`
	opts := options(func(o *core.Options) { o.HeadingStyle = core.HeadingATX })

	if got, want := mustConvert(t, html, opts), "### Logo brand\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	opts.KeepInlineImagesIn = []string{"h3"}
	if got, want := mustConvert(t, html, opts), "### Logo ![brand](l.png)\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_CodeBlock(t *testing.T) {
	got := mustConvert(t, "<pre><code class=\"language-go\">x := 1\n  y := \"a_b\"\n</code></pre>", nil)
	want := "```go\nx := 1\n  y := \"a_b\"\n```\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = mustConvert(t, "<pre>has ``` fence</pre>", options(func(o *core.Options) { o.CodeLanguage = "txt" }))
	want = "````txt\nhas ``` fence\n````\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_Blockquote(t *testing.T) {
	got := mustConvert(t, "<blockquote><p>a</p><p>b</p></blockquote>", nil)
	if want := "> a\n>\n> b\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_LineBreaks(t *testing.T) {
	if got, want := mustConvert(t, "<p>a<br>b</p>", nil), "a  \nb\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	opts := options(func(o *core.Options) { o.NewlineStyle = core.NewlineBackslash })
	if got, want := mustConvert(t, "<p>a<br>b</p>", opts), "a\\\nb\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_DefinitionList(t *testing.T) {
	got := mustConvert(t, "<dl><dt>Term</dt><dd>Def</dd><dt>Other</dt><dd>More</dd></dl>", nil)
	want := "Term\n    Def\n\nOther\n    More\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_NestedListIndent(t *testing.T) {
	opts := options(func(o *core.Options) { o.ListIndentWidth = 2 })
	got := mustConvert(t, "<ul><li>a<ul><li>b</li></ul></li></ul>", opts)
	if want := "* a\n  + b\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	lists := collectNodes[*ast.List](parseMarkdown(got))
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	if lists[0].Marker != '*' || lists[1].Marker != '+' {
		t.Errorf("expected markers * and +, got %c and %c", lists[0].Marker, lists[1].Marker)
	}
	if lists[1].Parent() == nil || lists[1].Parent().Kind() != ast.KindListItem {
		t.Errorf("expected the inner list to be nested in a list item")
	}
}

func TestConvert_ListTightness(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		want  string
		tight bool
	}{
		{"tight", "<ul><li>a</li><li>b</li></ul>", "* a\n* b\n", true},
		{"loose", "<ul><li><p>a</p></li><li><p>b</p></li></ul>", "* a\n\n* b\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustConvert(t, tt.html, nil)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			lists := collectNodes[*ast.List](parseMarkdown(got))
			if len(lists) != 1 {
				t.Fatalf("expected 1 list, got %d", len(lists))
			}
			if lists[0].IsTight != tt.tight {
				t.Errorf("expected IsTight=%v, got %v", tt.tight, lists[0].IsTight)
			}
			if items := lists[0].ChildCount(); items != 2 {
				t.Errorf("expected 2 items, got %d", items)
			}
		})
	}
}

func TestConvert_OrderedList(t *testing.T) {
	got := mustConvert(t, `<ol start="3"><li>c</li><li>d</li><li value="9">i</li></ol>`, nil)
	if want := "3. c\n4. d\n9. i\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_ListItemContinuation(t *testing.T) {
	got := mustConvert(t, "<ol><li><p>first</p><p>second</p></li></ol>", nil)
	if want := "1. first\n\n   second\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	items := collectNodes[*ast.ListItem](parseMarkdown(got))
	if len(items) != 1 || items[0].ChildCount() != 2 {
		t.Errorf("expected one item holding two paragraphs")
	}
}

func TestConvert_TaskList(t *testing.T) {
	got := mustConvert(t, `<ul><li><input type="checkbox" checked> done</li><li><input type="checkbox"> todo</li></ul>`, nil)
	if want := "* [x] done\n* [ ] todo\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_OrphanListItem(t *testing.T) {
	if got, want := mustConvert(t, "<div><li>lone</li></div>", nil), "* lone\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_Table(t *testing.T) {
	html := `<table><caption>Stock</caption>` +
		`<thead><tr><th>Name</th><th>Qty</th></tr></thead>` +
		`<tbody><tr><td>a|b</td><td>1</td></tr><tr><td colspan="2">wide</td></tr><tr><td>short</td></tr></tbody></table>`
	got := mustConvert(t, html, nil)
	want := "Stock\n\n" +
		"| Name | Qty |\n" +
		"| --- | --- |\n" +
		"| a\\|b | 1 |\n" +
		"| wide | |\n" +
		"| short | |\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	tables := collectNodes[*east.Table](parseMarkdown(got))
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	for row := tables[0].FirstChild(); row != nil; row = row.NextSibling() {
		if row.ChildCount() != 2 {
			t.Errorf("expected 2 cells per row, got %d", row.ChildCount())
		}
	}
}

func TestConvert_TablePipeDelimiters(t *testing.T) {
	got := mustConvert(t, "<table><tr><th>h1</th><th>h2</th></tr><tr><td>a|b</td><td>c</td></tr></table>", nil)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	row := lines[2]
	if !strings.Contains(row, `a\|b`) {
		t.Errorf("expected escaped pipe in %q", row)
	}
	if n := strings.Count(row, "|") - strings.Count(row, `\|`); n != 3 {
		t.Errorf("expected 3 column delimiters in %q, got %d", row, n)
	}
}

func TestConvert_TableCellBreaks(t *testing.T) {
	html := "<table><tr><th>h</th></tr><tr><td>one<br>two<p>three</p></td></tr></table>"
	if got, want := mustConvert(t, html, nil), "| h |\n| --- |\n| one two three |\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	opts := options(func(o *core.Options) { o.BrInTables = true })
	if got, want := mustConvert(t, html, opts), "| h |\n| --- |\n| one<br>two<br>three |\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_NestedTableEmbedded(t *testing.T) {
	html := "<table><tr><th>outer</th></tr><tr><td><table><tr><th>in</th></tr><tr><td>x</td></tr></table></td></tr></table>"
	got := mustConvert(t, html, nil)
	if !strings.Contains(got, "in") || !strings.Contains(got, "x") {
		t.Fatalf("nested table content lost: %q", got)
	}
	tables := collectNodes[*east.Table](parseMarkdown(got))
	if len(tables) != 1 {
		t.Errorf("expected the nested table inside one outer table, got %d tables in %q", len(tables), got)
	}
}

func TestConvert_InlineMode(t *testing.T) {
	opts := options(func(o *core.Options) { o.ConvertAsInline = true })
	got := mustConvert(t, "<p>Hello <b>World</b></p><p>again</p>", opts)
	if want := "Hello **World** again"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_StripNewlines(t *testing.T) {
	opts := options(func(o *core.Options) { o.StripNewlines = true })
	if got, want := mustConvert(t, "<p>a\nb</p>", opts), "a b\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_Wrap(t *testing.T) {
	opts := options(func(o *core.Options) {
		o.Wrap = true
		o.WrapWidth = 10
	})
	got := mustConvert(t, "<p>aaaa bbbb cccc dddd</p>", opts)
	if want := "aaaa bbbb\ncccc dddd\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvert_LineEndings(t *testing.T) {
	a := mustConvert(t, "<pre>a\r\nb\rc</pre>", nil)
	if want := "```\na\nb\nc\n```\n"; a != want {
		t.Errorf("expected %q, got %q", want, a)
	}
}

func TestConvert_Deterministic(t *testing.T) {
	html := `<h1 id="t">T</h1><ul><li>a<ol><li>b</li></ol></li></ul><table><tr><td>x</td></tr></table>`
	first := mustConvert(t, html, nil)
	for i := 0; i < 5; i++ {
		if got := mustConvert(t, html, nil); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestConvert_InvalidUTF8(t *testing.T) {
	_, err := Convert("<p>ok\xff</p>", nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !core.IsKind(err, core.KindEncoding) {
		t.Errorf("expected an encoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), "byte offset 5") {
		t.Errorf("expected the offset in %q", err.Error())
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(options(func(o *core.Options) { o.Bullets = "" }), nil)
	if !core.IsKind(err, core.KindOther) {
		t.Errorf("expected an options error, got %v", err)
	}
}

func TestConvert_Preprocessing(t *testing.T) {
	html := `<nav><a href="/">Home</a></nav><p>Body</p><p hidden>secret</p>`
	opts := options(func(o *core.Options) {
		o.Preprocessing = core.Preprocessing{Enabled: true, Preset: core.PresetStandard, RemoveNavigation: true}
	})
	if got, want := mustConvert(t, html, opts), "Body\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvertWithMetadata(t *testing.T) {
	html := `<html lang="en"><head><title>Doc</title></head>` +
		`<body><h1 id="x">Title</h1><p><a href="https://e.com" rel="nofollow">E</a> <img src="a.png" alt="A"></p></body></html>`

	res, err := ConvertWithMetadata(html, nil, core.DefaultMetadataConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markdown != "Title\n=====\n\n[E](https://e.com) ![A](a.png)\n" {
		t.Errorf("unexpected markdown %q", res.Markdown)
	}
	if res.Metadata.Document.Title != "Doc" || res.Metadata.Document.Language != "en" {
		t.Errorf("unexpected document metadata %+v", res.Metadata.Document)
	}
	wantHeaders := []core.HeaderMetadata{{Level: 1, Text: "Title", ID: "x"}}
	if diff := cmp.Diff(wantHeaders, res.Metadata.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	wantLinks := []core.LinkMetadata{{Href: "https://e.com", Text: "E", Type: core.LinkExternal, Rel: []string{"nofollow"}}}
	if diff := cmp.Diff(wantLinks, res.Metadata.Links); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
	wantImages := []core.ImageMetadata{{Src: "a.png", Alt: "A", Type: core.ImageExternal}}
	if diff := cmp.Diff(wantImages, res.Metadata.Images); diff != "" {
		t.Errorf("images mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertWithMetadata_HeadersDisabled(t *testing.T) {
	cfg := core.DefaultMetadataConfig()
	cfg.ExtractHeaders = false

	res, err := ConvertWithMetadata(`<h1 id="x">Title</h1>`, nil, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Metadata.Headers) != 0 {
		t.Errorf("expected no headers, got %+v", res.Metadata.Headers)
	}
	if res.Markdown != "Title\n=====\n" {
		t.Errorf("heading should still be rendered, got %q", res.Markdown)
	}
}

func TestConvertWithMetadata_JSONLDInBody(t *testing.T) {
	html := `<p>x</p><script type="application/ld+json">{"@type":"Article","name":"n"}</script>`
	res, err := ConvertWithMetadata(html, nil, core.DefaultMetadataConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Metadata.StructuredData) != 1 || res.Metadata.StructuredData[0].SchemaType != "Article" {
		t.Errorf("unexpected structured data %+v", res.Metadata.StructuredData)
	}
	if res.Markdown != "x\n" {
		t.Errorf("script content leaked into markdown: %q", res.Markdown)
	}
}

const pngSignature = "iVBORw0KGgo="

func TestConvertWithInlineImages_SizeCap(t *testing.T) {
	src := "data:image/png;base64," + pngSignature
	html := fmt.Sprintf(`<p><img src="%s" alt="x"></p>`, src)

	res, err := ConvertWithInlineImages(html, nil, core.InlineImageConfig{MaxDecodedSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.InlineImages) != 0 {
		t.Errorf("expected no images, got %d", len(res.InlineImages))
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Index != 0 {
		t.Fatalf("expected one warning at index 0, got %+v", res.Warnings)
	}
	if want := "![x](" + src + ")\n"; res.Markdown != want {
		t.Errorf("expected fallback %q, got %q", want, res.Markdown)
	}
}

func TestConvertWithInlineImages_SVG(t *testing.T) {
	html := `<p>before</p><svg width="10" height="10"><title>Dot</title><circle r="4"></circle></svg>`

	res, err := ConvertWithInlineImages(html, nil, core.DefaultInlineImageConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.InlineImages) != 1 {
		t.Fatalf("expected 1 image, got %d", len(res.InlineImages))
	}
	img := res.InlineImages[0]
	if img.Source != core.SourceSVGElement || img.Filename != "embedded_image_1.svg" {
		t.Errorf("unexpected image %+v", img)
	}
	if !strings.Contains(res.Markdown, "![Dot](embedded_image_1.svg)") {
		t.Errorf("expected an image reference, got %q", res.Markdown)
	}
}

func TestConvert_SVGVerbatim(t *testing.T) {
	got := mustConvert(t, `<p>a</p><svg><circle r="4"></circle></svg>`, nil)
	if !strings.Contains(got, `<svg><circle r="4"></circle></svg>`) {
		t.Errorf("expected svg markup to be kept, got %q", got)
	}
}

func hocrWord(text string, x0, y0, x1, y1 int) string {
	return fmt.Sprintf(`<span class="ocrx_word" title="bbox %d %d %d %d">%s</span> `, x0, y0, x1, y1, text)
}

func TestConvert_HOCRTable(t *testing.T) {
	html := `<html><head><meta name="ocr-system" content="tesseract"></head><body>` +
		`<div class="ocr_page" title="bbox 0 0 400 200"><div class="ocr_carea">` +
		`<span class="ocr_line">` + hocrWord("Name", 10, 10, 60, 30) + hocrWord("Qty", 200, 10, 240, 30) + `</span>` +
		`<span class="ocr_line">` + hocrWord("Apple", 10, 40, 70, 60) + hocrWord("3", 200, 40, 210, 60) + `</span>` +
		`<span class="ocr_line">` + hocrWord("Red", 10, 70, 40, 90) + hocrWord("pear", 45, 70, 80, 90) + hocrWord("12", 200, 70, 220, 90) + `</span>` +
		`</div></div></body></html>`

	got := mustConvert(t, html, nil)
	want := "| Name | Qty |\n| --- | --- |\n| Apple | 3 |\n| Red pear | 12 |\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	opts := options(func(o *core.Options) { o.HOCRSpatialTables = false })
	if got := mustConvert(t, html, opts); strings.Contains(got, "|") {
		t.Errorf("expected no table with spatial tables disabled, got %q", got)
	}
}

func TestConvert_HOCRLinesWithoutSpatialTables(t *testing.T) {
	html := `<html><head><meta name="ocr-system" content="tesseract"></head><body>` +
		`<div class="ocr_page" title="bbox 0 0 400 200">` +
		`<span class="ocr_line"><span class="ocrx_word">hello</span> <span class="ocrx_word">world</span></span>` +
		`<span class="ocr_line"><span class="ocrx_word">second</span></span>` +
		`</div></body></html>`

	want := "hello world\nsecond\n"
	for _, spatial := range []bool{true, false} {
		opts := options(func(o *core.Options) { o.HOCRSpatialTables = spatial })
		if got := mustConvert(t, html, opts); got != want {
			t.Errorf("spatial tables %v: expected %q, got %q", spatial, want, got)
		}
	}
}

func TestConvert_Concurrent(t *testing.T) {
	c, err := New(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := "<ul><li>a<ul><li>b</li></ul></li></ul>"
	want, _ := c.Convert(html)

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, err := c.Convert(html)
			if err == nil && got != want {
				err = fmt.Errorf("expected %q, got %q", want, got)
			}
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}
