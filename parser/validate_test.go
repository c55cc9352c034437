package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDetectsBrokenArenas(t *testing.T) {
	text := "t"
	tests := map[string]func(d *Document){
		"wrong parent": func(d *Document) { d.Nodes[2].Parent = 0 },
		"forward parent": func(d *Document) {
			d.Nodes[1].Parent = 2
		},
		"unordered children": func(d *Document) {
			d.Nodes[0].Children = []int{2, 1}
		},
		"value on a tag": func(d *Document) { d.Nodes[1].Value = &text },
		"text without value": func(d *Document) {
			d.Nodes[3].Value = nil
		},
		"renamed root": func(d *Document) { d.Nodes[0].Tag = "root" },
		"dangling child": func(d *Document) {
			d.Nodes[2].Children = append(d.Nodes[2].Children, 10)
		},
	}

	for name, corrupt := range tests {
		corrupt := corrupt
		t.Run(name, func(t *testing.T) {
			doc, err := ParseString("<a><b>t</b></a>")
			require.NoError(t, err)
			require.NoError(t, doc.Validate())

			corrupt(doc)
			assert.Error(t, doc.Validate())
		})
	}

	assert.Error(t, (&Document{}).Validate())
}

func TestParseErrorMessages(t *testing.T) {
	doc, err := ParseString("</x>tail")
	require.NoError(t, err)
	require.Len(t, doc.Diagnostics, 2)
	assert.Equal(t, "unbalanced-close at token 0 offset 3 (in #document)", doc.Diagnostics[0].Error())
	assert.Equal(t, "trailing-text at end of input (in #document)", doc.Diagnostics[1].Error())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}
