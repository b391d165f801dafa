package convert

import "golang.org/x/net/html/atom"

// category is the structural role of an element. Every tag name resolves to
// exactly one category through tagTable; tags missing from the table are
// passthrough: their children are converted and the tag itself dropped.
type category int

const (
	catPassthrough category = iota
	catDrop
	catRaw
	catRoot
	catHead
	catScript
	catBlock
	catHeading
	catBlockquote
	catPre
	catRule
	catBreak
	catList
	catListItem
	catDefList
	catDefTerm
	catDefDesc
	catTable
	catStrong
	catEmphasis
	catStrike
	catCode
	catQuote
	catAbbr
	catMark
	catSub
	catSup
	catLink
	catImage
	catMedia
	catSource
	catInput
	catSummary
)

var tagTable = map[atom.Atom]category{
	atom.Html: catRoot,
	atom.Head: catHead,

	atom.Style:    catDrop,
	atom.Title:    catDrop,
	atom.Meta:     catDrop,
	atom.Link:     catDrop,
	atom.Base:     catDrop,
	atom.Noscript: catDrop,
	atom.Template: catDrop,
	atom.Track:    catDrop,
	atom.Param:    catDrop,
	atom.Wbr:      catDrop,
	atom.Script:   catScript,

	atom.Svg:  catRaw,
	atom.Math: catRaw,

	atom.P:          catBlock,
	atom.Div:        catBlock,
	atom.Section:    catBlock,
	atom.Article:    catBlock,
	atom.Main:       catBlock,
	atom.Header:     catBlock,
	atom.Footer:     catBlock,
	atom.Nav:        catBlock,
	atom.Aside:      catBlock,
	atom.Address:    catBlock,
	atom.Figure:     catBlock,
	atom.Figcaption: catBlock,
	atom.Fieldset:   catBlock,
	atom.Legend:     catBlock,
	atom.Form:       catBlock,
	atom.Center:     catBlock,
	atom.Hgroup:     catBlock,
	atom.Details:    catBlock,
	atom.Dialog:     catBlock,
	atom.Caption:    catBlock,
	atom.Summary:    catSummary,

	atom.H1: catHeading,
	atom.H2: catHeading,
	atom.H3: catHeading,
	atom.H4: catHeading,
	atom.H5: catHeading,
	atom.H6: catHeading,

	atom.Blockquote: catBlockquote,
	atom.Pre:        catPre,
	atom.Listing:    catPre,
	atom.Xmp:        catPre,
	atom.Plaintext:  catPre,
	atom.Hr:         catRule,
	atom.Br:         catBreak,

	atom.Ul:   catList,
	atom.Ol:   catList,
	atom.Menu: catList,
	atom.Dir:  catList,
	atom.Li:   catListItem,
	atom.Dl:   catDefList,
	atom.Dt:   catDefTerm,
	atom.Dd:   catDefDesc,

	atom.Table: catTable,

	atom.Strong:  catStrong,
	atom.B:       catStrong,
	atom.Em:      catEmphasis,
	atom.I:       catEmphasis,
	atom.Cite:    catEmphasis,
	atom.Dfn:     catEmphasis,
	atom.Var:     catEmphasis,
	atom.Del:     catStrike,
	atom.S:       catStrike,
	atom.Strike:  catStrike,
	atom.Code:    catCode,
	atom.Kbd:     catCode,
	atom.Samp:    catCode,
	atom.Tt:      catCode,
	atom.Q:       catQuote,
	atom.Abbr:    catAbbr,
	atom.Acronym: catAbbr,
	atom.Mark:    catMark,
	atom.Sub:     catSub,
	atom.Sup:     catSup,

	atom.A:      catLink,
	atom.Img:    catImage,
	atom.Iframe: catMedia,
	atom.Video:  catMedia,
	atom.Audio:  catMedia,
	atom.Embed:  catMedia,
	atom.Object: catMedia,
	atom.Source: catSource,
	atom.Input:  catInput,
}

func categoryOf(a atom.Atom) category {
	return tagTable[a]
}

// inlineFormat reports whether c only wraps its children in markers.
func (c category) inlineFormat() bool {
	switch c {
	case catStrong, catEmphasis, catStrike, catCode, catQuote, catAbbr, catMark, catSub, catSup:
		return true
	}
	return false
}
