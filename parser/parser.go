package parser

import (
	"io"
)

type parserConfig struct {
	strict     bool
	keepQuotes bool
}

// Option changes how a document is parsed.
type Option func(*parserConfig)

// Strict makes the first malformed construct fatal. Without it every problem
// is recorded in Document.Diagnostics and parsing continues.
func Strict() Option {
	return func(c *parserConfig) { c.strict = true }
}

// KeepQuotes keeps the double quotes around quoted attribute values.
func KeepQuotes() Option {
	return func(c *parserConfig) { c.keepQuotes = true }
}

func newParserConfig(opts ...Option) parserConfig {
	var c parserConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Parser connects a Tokenizer to a TreeConstructor.
type Parser struct {
	Tokenizer       *Tokenizer
	TreeConstructor *TreeConstructor
}

// NewParser creates a Parser reading the document from in.
func NewParser(in io.Reader, opts ...Option) *Parser {
	return &Parser{
		Tokenizer:       NewTokenizer(in),
		TreeConstructor: NewTreeConstructor(opts...),
	}
}

// Start consumes the whole input and returns the finished document. On a
// strict-mode failure the partial document is returned with the error; on a
// read failure the document is nil.
func (p *Parser) Start() (*Document, error) {
	for p.Tokenizer.Next() {
		if err := p.TreeConstructor.ProcessToken(p.Tokenizer.Token()); err != nil {
			return p.TreeConstructor.Document(), err
		}
	}
	if err := p.Tokenizer.Err(); err != nil {
		return nil, err
	}
	return p.TreeConstructor.Finish()
}

// Parse reads and parses a whole document.
func Parse(in io.Reader, opts ...Option) (*Document, error) {
	return NewParser(in, opts...).Start()
}

// ParseString parses a document held in memory.
func ParseString(s string, opts ...Option) (*Document, error) {
	c := NewTreeConstructor(opts...)
	for _, token := range Tokenize(s) {
		if err := c.ProcessToken(token); err != nil {
			return c.Document(), err
		}
	}
	return c.Finish()
}
