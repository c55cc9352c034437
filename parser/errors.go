package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint

const (
	// UnbalancedClose is a close tag seen while no tag is open.
	UnbalancedClose ErrorKind = iota + 1
	// StrayTagEnd is a '>' outside of any tag.
	StrayTagEnd
	// UnterminatedQuote is input ending inside a quoted attribute value.
	UnterminatedQuote
	// UnterminatedTag is input ending inside a tag.
	UnterminatedTag
	// TrailingText is text after the last tag. It is dropped.
	TrailingText
	// UnclosedElement is input ending while tags are still open.
	UnclosedElement
)

var errorKindNames = map[ErrorKind]string{
	UnbalancedClose:   "unbalanced-close",
	StrayTagEnd:       "stray-tag-end",
	UnterminatedQuote: "unterminated-quote",
	UnterminatedTag:   "unterminated-tag",
	TrailingText:      "trailing-text",
	UnclosedElement:   "unclosed-element",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint(k))
}

// ParseError describes a malformed construct. Token is the index of the token
// being processed and Offset the byte offset within it; both are -1 for
// conditions detected at end of input.
type ParseError struct {
	Kind   ErrorKind
	Token  int
	Offset int
	// Tag is the innermost open tag when the error was found.
	Tag string
}

func (e *ParseError) Error() string {
	if e.Token < 0 {
		return fmt.Sprintf("%s at end of input (in %s)", e.Kind, e.Tag)
	}
	return fmt.Sprintf("%s at token %d offset %d (in %s)", e.Kind, e.Token, e.Offset, e.Tag)
}

// ErrStopped is returned by TreeConstructor.ProcessToken after a strict-mode
// parse has already failed.
var ErrStopped = errors.New("tree construction stopped after fatal error")

// AsParseError unwraps err down to a *ParseError, if it carries one.
func AsParseError(err error) (*ParseError, bool) {
	pe, ok := errors.Cause(err).(*ParseError)
	return pe, ok
}
