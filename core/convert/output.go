package convert

// output is the buffer the walker appends Markdown to. Handlers that need to
// post-process their children's output (list items, cells, headings,
// emphasis) run the children against a fresh output and splice the result
// into the parent.
//
// seed is the byte that logically precedes the buffer: an inline capture
// inherits its parent's last byte so leading-whitespace decisions come out
// the same as if the children had been written in place; a block capture is
// seeded with '\n'. A zero seed means start of document.
type output struct {
	buf  []byte
	seed byte
}

func newOutput(seed byte) *output {
	return &output{seed: seed}
}

func (o *output) WriteString(s string) {
	o.buf = append(o.buf, s...)
}

func (o *output) String() string {
	return string(o.buf)
}

func (o *output) Len() int {
	return len(o.buf)
}

func (o *output) last() byte {
	if len(o.buf) == 0 {
		return o.seed
	}
	return o.buf[len(o.buf)-1]
}

func (o *output) atLineStart() bool {
	l := o.last()
	return l == 0 || l == '\n'
}

// trimTrailingSpace drops spaces and tabs at the end of the buffer.
func (o *output) trimTrailingSpace() {
	n := len(o.buf)
	for n > 0 && (o.buf[n-1] == ' ' || o.buf[n-1] == '\t') {
		n--
	}
	o.buf = o.buf[:n]
}

// space writes one separating space unless the buffer already ends in
// whitespace or is at the start of a line.
func (o *output) space() {
	switch o.last() {
	case 0, ' ', '\t', '\n':
		return
	}
	o.buf = append(o.buf, ' ')
}

// ensureNewline terminates the current line. It is a no-op on an empty
// buffer.
func (o *output) ensureNewline() {
	o.trimTrailingSpace()
	if len(o.buf) == 0 || o.buf[len(o.buf)-1] == '\n' {
		return
	}
	o.buf = append(o.buf, '\n')
}

// ensureBlankLine ends the buffer with exactly one empty line so the next
// block starts separated. It is a no-op on an empty buffer.
func (o *output) ensureBlankLine() {
	o.trimTrailingSpace()
	if len(o.buf) == 0 {
		return
	}
	newlines := 0
	for i := len(o.buf) - 1; i >= 0 && o.buf[i] == '\n'; i-- {
		newlines++
	}
	for ; newlines < 2; newlines++ {
		o.buf = append(o.buf, '\n')
	}
}
