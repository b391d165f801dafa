// Package extract implements the Sanitizer interface.
// It pre-cleans raw HTML before conversion by removing elements that carry
// no document content. How much is removed depends on the preset:
//  1. minimal drops scripts, styles and other non-rendered elements
//  2. standard also drops hidden elements
//  3. aggressive also drops page chrome (navigation, footers, sidebars, ads)
//     and narrows the body to its <main> or <article> container
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/html2md/core"
)

var minimalSelectors = []string{
	"script:not([type='application/ld+json'])", "style", "noscript", "template",
}

var standardSelectors = []string{
	"[hidden]", "[aria-hidden='true']",
	"[style*='display:none']", "[style*='display: none']",
}

// aggressiveSelectors are page chrome that contributes no meaningful content.
var aggressiveSelectors = []string{
	"footer", "aside", "canvas",
	".sidebar", ".ads", ".advertisement", ".cookie-banner",
	"[role='complementary']", "[role='contentinfo']",
}

var navigationSelectors = []string{
	"nav", "[role='navigation']", ".navigation", ".menu", ".breadcrumb",
}

// Checkboxes stay so task lists survive.
var formSelectors = []string{
	"form", "button", "select", "textarea", "input:not([type='checkbox'])",
}

// HTMLSanitizer removes noise from HTML according to the preprocessing
// options.
type HTMLSanitizer struct {
	preset    core.PreprocessingPreset
	selectors []string
}

// New creates an HTMLSanitizer. An unknown preset is treated as standard.
func New(p core.Preprocessing) *HTMLSanitizer {
	preset := p.Preset
	switch preset {
	case core.PresetMinimal, core.PresetStandard, core.PresetAggressive:
	default:
		preset = core.PresetStandard
	}

	selectors := append([]string{}, minimalSelectors...)
	if preset != core.PresetMinimal {
		selectors = append(selectors, standardSelectors...)
	}
	if preset == core.PresetAggressive {
		selectors = append(selectors, aggressiveSelectors...)
	}
	if p.RemoveNavigation || preset == core.PresetAggressive {
		selectors = append(selectors, navigationSelectors...)
	}
	if p.RemoveForms {
		selectors = append(selectors, formSelectors...)
	}
	return &HTMLSanitizer{preset: preset, selectors: selectors}
}

// Sanitize takes raw HTML and returns it with noise elements removed. The
// <head> is kept so document metadata can still be collected.
func (s *HTMLSanitizer) Sanitize(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	body := doc.Find("body")
	for _, sel := range s.selectors {
		body.Find(sel).Remove()
	}

	if s.preset == core.PresetAggressive {
		// <main> is the most semantically correct container, then <article>.
		for _, tag := range []string{"main", "article"} {
			content := body.Find(tag)
			if content.Length() == 0 {
				continue
			}
			inner, err := goquery.OuterHtml(content.First())
			if err != nil {
				return "", fmt.Errorf("serializing content: %w", err)
			}
			body.SetHtml(inner)
			break
		}
	}

	result, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}
	return result, nil
}
