package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Tokenizer splits a document into whitespace-delimited tokens. Whitespace is
// dropped; the tree constructor recovers the single space that matters from
// token boundaries.
type Tokenizer struct {
	inputStream *bufio.Reader
	token       strings.Builder
	err         error
	done        bool
}

// NewTokenizer creates a Tokenizer reading from in.
func NewTokenizer(in io.Reader) *Tokenizer {
	return &Tokenizer{
		inputStream: bufio.NewReader(in),
	}
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

// Next advances to the next token. It returns false once the input is
// exhausted or the reader failed; check Err afterwards.
func (p *Tokenizer) Next() bool {
	if p.done {
		return false
	}
	p.token.Reset()
	for {
		b, err := p.inputStream.ReadByte()
		if err != nil {
			p.done = true
			if err != io.EOF {
				p.err = errors.Wrap(err, "read document")
				return false
			}
			return p.token.Len() > 0
		}

		if isASCIIWhitespace(b) {
			if p.token.Len() > 0 {
				return true
			}
			continue
		}
		p.token.WriteByte(b)
	}
}

// Token returns the token found by the last call to Next.
func (p *Tokenizer) Token() string {
	return p.token.String()
}

// Err returns the first non-EOF read error.
func (p *Tokenizer) Err() error {
	return p.err
}

// Tokenize splits s into its tokens. It never returns an empty token.
func Tokenize(s string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isASCIIWhitespace(s[i]) {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}
