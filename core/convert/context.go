package convert

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core"
)

type listFrame struct {
	ordered bool
	next    int
	loose   bool
}

// Context is the state threaded by pointer through one walk. Handlers set
// flags for the duration of their subtree and restore them on return, so a
// flag is only ever visible inside the branch that set it.
type Context struct {
	lists     []listFrame
	ancestors []*html.Node

	inPre       bool
	inCode      bool
	inTableCell bool
	inHeading   bool
	inLink      bool
	inline      bool
}

func newContext(opts *core.Options) *Context {
	return &Context{inline: opts.ConvertAsInline}
}

// set assigns v to the flag and returns a func restoring the old value, for
// use as `defer set(&ctx.inPre, true)()`.
func set(flag *bool, v bool) func() {
	old := *flag
	*flag = v
	return func() { *flag = old }
}

func (c *Context) pushList(f listFrame) {
	c.lists = append(c.lists, f)
}

func (c *Context) popList() error {
	if len(c.lists) == 0 {
		return core.Errorf(core.KindInternal, "list stack underflow")
	}
	c.lists = c.lists[:len(c.lists)-1]
	return nil
}

// list returns the innermost open list, or nil.
func (c *Context) list() *listFrame {
	if len(c.lists) == 0 {
		return nil
	}
	return &c.lists[len(c.lists)-1]
}

func (c *Context) listDepth() int {
	return len(c.lists)
}

func (c *Context) enter(n *html.Node) {
	c.ancestors = append(c.ancestors, n)
}

func (c *Context) leave() {
	c.ancestors = c.ancestors[:len(c.ancestors)-1]
}

// nearest returns the closest open ancestor (the current element excluded)
// whose atom is one of atoms.
func (c *Context) nearest(atoms ...atom.Atom) *html.Node {
	for i := len(c.ancestors) - 2; i >= 0; i-- {
		a := c.ancestors[i].DataAtom
		for _, want := range atoms {
			if a == want {
				return c.ancestors[i]
			}
		}
	}
	return nil
}

func (c *Context) hasAncestor(atoms ...atom.Atom) bool {
	return c.nearest(atoms...) != nil
}
