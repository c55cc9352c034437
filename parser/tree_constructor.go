package parser

import (
	"strconv"

	"github.com/pkg/errors"
)

type treeState uint

const (
	tagContentState treeState = iota
	tagOpenOrCloseBeginState
	tagOpenBeginState
	tagAttributesState
	tagAttributeValueState
	tagSelfClosingState
	tagCloseBeginState
)

var treeStateNames = [...]string{
	tagContentState:          "TagContent",
	tagOpenOrCloseBeginState: "TagOpenOrCloseBegin",
	tagOpenBeginState:        "TagOpenBegin",
	tagAttributesState:       "TagAttributes",
	tagAttributeValueState:   "TagAttributeValue",
	tagSelfClosingState:      "TagSelfClosing",
	tagCloseBeginState:       "TagCloseBegin",
}

func (s treeState) String() string {
	if int(s) < len(treeStateNames) {
		return treeStateNames[s]
	}
	return "treeState(" + strconv.Itoa(int(s)) + ")"
}

type treeStateHandler func(b byte, boundary bool) treeState

// TreeConstructor is the state machine that turns tokens into a Document. It
// is fed one token at a time, in document order.
type TreeConstructor struct {
	currentState treeState
	head         int
	document     *Document
	tokenBuilder *TokenBuilder
	config       parserConfig
	mappings     map[treeState]treeStateHandler

	tokenIndex, offset int
	fatal              error
	finished           bool
}

// NewTreeConstructor creates a TreeConstructor with an empty document whose
// head is the root.
func NewTreeConstructor(opts ...Option) *TreeConstructor {
	c := &TreeConstructor{
		currentState: tagContentState,
		head:         RootIndex,
		document:     newDocument(),
		tokenBuilder: NewTokenBuilder(),
		config:       newParserConfig(opts...),
	}

	c.createMappings()
	return c
}

func (c *TreeConstructor) createMappings() {
	c.mappings = map[treeState]treeStateHandler{
		tagContentState:          c.tagContentStateHandler,
		tagOpenOrCloseBeginState: c.tagOpenOrCloseBeginStateHandler,
		tagOpenBeginState:        c.tagOpenBeginStateHandler,
		tagAttributesState:       c.tagAttributesStateHandler,
		tagAttributeValueState:   c.tagAttributeValueStateHandler,
		tagSelfClosingState:      c.tagSelfClosingStateHandler,
		tagCloseBeginState:       c.tagCloseBeginStateHandler,
	}
}

// Head returns the index of the node currently receiving children.
func (c *TreeConstructor) Head() int {
	return c.head
}

// Document returns the document built so far.
func (c *TreeConstructor) Document() *Document {
	return c.document
}

// ProcessToken runs every byte of token through the state machine. The first
// byte is treated as a token boundary. In strict mode the first problem found
// is returned and later calls return ErrStopped.
func (c *TreeConstructor) ProcessToken(token string) error {
	if c.fatal != nil || c.finished {
		return ErrStopped
	}
	defer func() { c.tokenIndex++ }()

	for i := 0; i < len(token); i++ {
		c.offset = i
		c.processByte(token[i], i == 0)
		if c.fatal != nil {
			return c.fatal
		}
	}
	return nil
}

func (c *TreeConstructor) processByte(b byte, boundary bool) {
	// declarations close on the first '>', even inside quotes
	if b == '>' && c.tokenBuilder.IsDeclaration() {
		c.currentState = tagSelfClosingState
	}
	c.currentState = c.mappings[c.currentState](b, boundary)
}

// Finish applies the end-of-input rules and returns the document. A pending
// text run is dropped.
func (c *TreeConstructor) Finish() (*Document, error) {
	if c.finished || c.fatal != nil {
		return c.document, c.fatal
	}
	c.finished = true
	c.tokenIndex, c.offset = -1, -1

	switch c.currentState {
	case tagContentState:
		if c.tokenBuilder.HasText() {
			c.tokenBuilder.TakeText()
			c.report(TrailingText)
		}
	case tagAttributeValueState:
		c.report(UnterminatedQuote)
	default:
		c.report(UnterminatedTag)
	}
	if c.fatal != nil {
		return c.document, c.fatal
	}

	if c.head != RootIndex {
		c.report(UnclosedElement)
	}
	return c.document, c.fatal
}

func (c *TreeConstructor) report(kind ErrorKind) {
	pe := &ParseError{
		Kind:   kind,
		Token:  c.tokenIndex,
		Offset: c.offset,
		Tag:    c.document.Nodes[c.head].Tag,
	}
	c.document.Diagnostics = append(c.document.Diagnostics, pe)
	if c.config.strict && c.fatal == nil {
		c.fatal = errors.WithStack(pe)
	}
}

func (c *TreeConstructor) flushText() {
	if !c.tokenBuilder.HasText() {
		return
	}
	text := c.tokenBuilder.TakeText()
	c.document.appendChild(c.head, Node{Tag: textTag, Value: &text})
}

// emitCurrentTag appends the scanned tag under head and descends into it
// unless it was self-closing.
func (c *TreeConstructor) emitCurrentTag(state treeState) treeState {
	idx := c.document.appendChild(c.head, Node{
		Tag:        c.tokenBuilder.Name(),
		Attributes: ParseAttributes(c.tokenBuilder.Attributes(), c.config.keepQuotes),
	})
	if state != tagSelfClosingState {
		c.head = idx
	}
	c.tokenBuilder.NewTag()
	return tagContentState
}

func (c *TreeConstructor) closeCurrentTag() treeState {
	if c.head == RootIndex {
		c.report(UnbalancedClose)
		return tagContentState
	}
	c.head = c.document.Nodes[c.head].Parent
	return tagContentState
}

func (c *TreeConstructor) tagContentStateHandler(b byte, boundary bool) treeState {
	switch b {
	case '<':
		c.flushText()
		return tagOpenOrCloseBeginState
	case '>':
		c.report(StrayTagEnd)
		c.tokenBuilder.WriteText(b, boundary)
		return tagContentState
	default:
		c.tokenBuilder.WriteText(b, boundary)
		return tagContentState
	}
}

func (c *TreeConstructor) tagOpenOrCloseBeginStateHandler(b byte, boundary bool) treeState {
	switch b {
	case '/':
		return tagCloseBeginState
	case '>':
		c.report(StrayTagEnd)
		return tagOpenOrCloseBeginState
	case '<', '"':
		return tagOpenOrCloseBeginState
	default:
		c.tokenBuilder.WriteName(b)
		return tagOpenBeginState
	}
}

func (c *TreeConstructor) tagOpenBeginStateHandler(b byte, boundary bool) treeState {
	switch b {
	case '/':
		return tagSelfClosingState
	case '>':
		return c.emitCurrentTag(tagOpenBeginState)
	case '<', '"':
		return tagOpenBeginState
	default:
		if boundary {
			c.tokenBuilder.WriteAttribute(b, false)
			return tagAttributesState
		}
		c.tokenBuilder.WriteName(b)
		return tagOpenBeginState
	}
}

func (c *TreeConstructor) tagAttributesStateHandler(b byte, boundary bool) treeState {
	switch b {
	case '"':
		c.tokenBuilder.WriteAttribute(b, false)
		return tagAttributeValueState
	case '/':
		return tagSelfClosingState
	case '>':
		return c.emitCurrentTag(tagAttributesState)
	case '<':
		return tagAttributesState
	default:
		c.tokenBuilder.WriteAttribute(b, boundary)
		return tagAttributesState
	}
}

// Inside quotes only '"' is special; '/', '>' and '<' are kept as written.
func (c *TreeConstructor) tagAttributeValueStateHandler(b byte, boundary bool) treeState {
	switch b {
	case '"':
		c.tokenBuilder.WriteAttribute(b, false)
		return tagAttributesState
	default:
		c.tokenBuilder.WriteAttribute(b, boundary)
		return tagAttributeValueState
	}
}

func (c *TreeConstructor) tagSelfClosingStateHandler(b byte, boundary bool) treeState {
	if b == '>' {
		return c.emitCurrentTag(tagSelfClosingState)
	}
	return tagSelfClosingState
}

func (c *TreeConstructor) tagCloseBeginStateHandler(b byte, boundary bool) treeState {
	if b == '>' {
		return c.closeCurrentTag()
	}
	return tagCloseBeginState
}
