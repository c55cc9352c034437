package parser

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateMachineTestCase struct {
	in                string    // document fragment fed to a fresh constructor
	nextExpectedState treeState // state after the last byte
	expectedHead      int
}

// TestStateHandlers checks the state reached after short fragments. Like the
// tokens they stand for, fragments are split on whitespace first.
func TestStateHandlers(t *testing.T) {
	tests := []stateMachineTestCase{
		{"", tagContentState, 0},
		{"text", tagContentState, 0},
		{"<", tagOpenOrCloseBeginState, 0},
		{"</", tagCloseBeginState, 0},
		{"</a", tagCloseBeginState, 0},
		{"<a", tagOpenBeginState, 0},
		{"<a x", tagAttributesState, 0},
		{`<a x="`, tagAttributeValueState, 0},
		{`<a x="1 /`, tagAttributeValueState, 0},
		{`<a x="1"`, tagAttributesState, 0},
		{"<a/", tagSelfClosingState, 0},
		{"<a x/", tagSelfClosingState, 0},
		{"<a>", tagContentState, 1},
		{"<a/>", tagContentState, 0},
		{"<a></a>", tagContentState, 0},
		{"<a><b>", tagContentState, 2},
		{"<!x", tagOpenBeginState, 0},
		{"<!x>", tagContentState, 0},
		{`<!x "y>`, tagContentState, 0},
		{"<>", tagOpenOrCloseBeginState, 0},
		{`<"`, tagOpenOrCloseBeginState, 0},
		{`<"a`, tagOpenBeginState, 0},
		{`<a"`, tagOpenBeginState, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			c := NewTreeConstructor()
			for _, token := range Tokenize(tt.in) {
				require.NoError(t, c.ProcessToken(token))
			}
			assert.Equal(t, tt.nextExpectedState.String(), c.currentState.String())
			assert.Equal(t, tt.expectedHead, c.Head())
		})
	}
}

func TestBalancedInputReturnsToRoot(t *testing.T) {
	for _, in := range []string{
		"<a></a>",
		"<a><b><c>x</c></b><d>y</d></a>",
		"<a>\n  <b>one</b>\n  <b>two</b>\n</a>\n<z></z>",
	} {
		c := NewTreeConstructor()
		descents, ascents := 0, 0
		for _, token := range Tokenize(in) {
			before := c.Head()
			require.NoError(t, c.ProcessToken(token))
			switch {
			case c.Head() > before:
				descents++
			case c.Head() < before:
				ascents++
			}
		}
		assert.Equal(t, RootIndex, c.Head(), in)
		assert.Equal(t, descents, ascents, in)

		doc, err := c.Finish()
		require.NoError(t, err)
		assert.Empty(t, doc.Diagnostics)
	}
}

func TestSelfClosingKeepsHead(t *testing.T) {
	for _, tag := range []string{"<x/>", "<x y=1/>", "<!--c-->", "<?pi?>", "<!DOCTYPE>"} {
		c := NewTreeConstructor()
		require.NoError(t, c.ProcessToken("<r>"))
		require.Equal(t, 1, c.Head())

		for _, token := range Tokenize(tag) {
			require.NoError(t, c.ProcessToken(token))
		}
		assert.Equal(t, 1, c.Head(), tag)

		doc := c.Document()
		require.Equal(t, 3, doc.Len(), tag)
		assert.Equal(t, 1, doc.Nodes[2].Parent, tag)
		assert.Equal(t, []int{2}, doc.Nodes[1].Children, tag)
	}
}

func TestEmptyTextIsNotEmitted(t *testing.T) {
	doc, err := ParseString("<a></a><b>\n\n</b>")
	require.NoError(t, err)
	for _, n := range doc.Nodes {
		assert.False(t, n.IsText(), "unexpected text node under %s", n.Tag)
	}
}

func TestStrictStopsAtFirstError(t *testing.T) {
	c := NewTreeConstructor(Strict())
	require.NoError(t, c.ProcessToken("<a></a>"))

	err := c.ProcessToken("</b>")
	require.Error(t, err)
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, UnbalancedClose, pe.Kind)
	assert.Equal(t, 1, pe.Token)
	assert.Equal(t, 3, pe.Offset)
	assert.Equal(t, "#document", pe.Tag)

	assert.Equal(t, ErrStopped, c.ProcessToken("<c>"))
	doc, finishErr := c.Finish()
	assert.Equal(t, err, finishErr)
	assert.Equal(t, 2, doc.Len())
}

func TestLenientClampsAtRoot(t *testing.T) {
	doc, err := ParseString("</a></b><c></c>")
	require.NoError(t, err)
	require.Len(t, doc.Diagnostics, 2)
	for _, d := range doc.Diagnostics {
		assert.Equal(t, UnbalancedClose, d.Kind)
		assert.Equal(t, 0, d.Token)
	}
	assert.Equal(t, 3, doc.Diagnostics[0].Offset)
	assert.Equal(t, 7, doc.Diagnostics[1].Offset)
	assert.Equal(t, "#document\n  c", doc.String())
}

func TestFinishIsIdempotent(t *testing.T) {
	c := NewTreeConstructor()
	require.NoError(t, c.ProcessToken("<a>"))
	doc, err := c.Finish()
	require.NoError(t, err)
	require.Len(t, doc.Diagnostics, 1)

	again, err := c.Finish()
	require.NoError(t, err)
	assert.Same(t, doc, again)
	assert.Len(t, again.Diagnostics, 1)
	assert.Equal(t, ErrStopped, c.ProcessToken("</a>"))
}

// randomDocument builds a balanced document with text, attributes and
// self-closing tags.
func randomDocument(r *rand.Rand, depth int) string {
	var sb strings.Builder
	for i := r.Intn(4); i >= 0; i-- {
		name := fmt.Sprintf("t%d", r.Intn(5))
		switch r.Intn(4) {
		case 0:
			fmt.Fprintf(&sb, "<%s a=%d/>", name, r.Intn(9))
		case 1:
			fmt.Fprintf(&sb, " word%d  ", r.Intn(9))
		default:
			fmt.Fprintf(&sb, "<%s b=\"x %d\" c>", name, r.Intn(9))
			if depth > 0 {
				sb.WriteString(randomDocument(r, depth-1))
			}
			fmt.Fprintf(&sb, "</%s>\n", name)
		}
	}
	return sb.String()
}

func TestArenaInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		in := "<root>" + randomDocument(r, 4) + "</root>"
		doc, err := ParseString(in, Strict())
		require.NoError(t, err, in)
		require.NoError(t, doc.Validate(), in)

		for idx, n := range doc.Nodes {
			for j, child := range n.Children {
				assert.Equal(t, idx, doc.Nodes[child].Parent)
				if j > 0 {
					assert.Greater(t, child, n.Children[j-1])
				}
			}
			if idx != RootIndex {
				assert.Less(t, n.Parent, idx)
			}
		}
	}
}
