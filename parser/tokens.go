package parser

import "strings"

// TokenBuilder accumulates the pieces of the construct currently being
// scanned: the tag name and raw attribute text of an open tag, and the
// pending text run between tags.
type TokenBuilder struct {
	name       strings.Builder
	attributes strings.Builder
	text       strings.Builder
}

// NewTokenBuilder returns an empty TokenBuilder.
func NewTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// NewTag clears the tag name and attribute buffers. The text buffer is
// cleared separately by TakeText.
func (t *TokenBuilder) NewTag() {
	t.name.Reset()
	t.attributes.Reset()
}

// WriteName appends a byte to the current tag name.
func (t *TokenBuilder) WriteName(b byte) {
	t.name.WriteByte(b)
}

// WriteAttribute appends a byte to the raw attribute buffer, preceded by a
// single space when spaced is set.
func (t *TokenBuilder) WriteAttribute(b byte, spaced bool) {
	if spaced {
		t.attributes.WriteByte(' ')
	}
	t.attributes.WriteByte(b)
}

// WriteText appends a byte to the pending text run. A token boundary becomes
// one space, except at the start of the run.
func (t *TokenBuilder) WriteText(b byte, boundary bool) {
	if boundary && t.text.Len() > 0 {
		t.text.WriteByte(' ')
	}
	t.text.WriteByte(b)
}

// Name returns the tag name scanned so far.
func (t *TokenBuilder) Name() string {
	return t.name.String()
}

// Attributes returns the raw attribute text scanned so far.
func (t *TokenBuilder) Attributes() string {
	return t.attributes.String()
}

// HasText reports whether a text run is pending.
func (t *TokenBuilder) HasText() bool {
	return t.text.Len() > 0
}

// TakeText returns the pending text run and clears it.
func (t *TokenBuilder) TakeText() string {
	s := t.text.String()
	t.text.Reset()
	return s
}

// IsDeclaration reports whether the tag being scanned is a declaration,
// comment or processing instruction (<!...> or <?...>). Those never open a
// scope.
func (t *TokenBuilder) IsDeclaration() bool {
	name := t.name.String()
	return strings.HasPrefix(name, "!") || strings.HasPrefix(name, "?")
}
