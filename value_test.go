package pegstack

import (
	"testing"

	"github.com/renstrom/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		parent   Range
		other    Range
		expected bool
	}{
		{
			name:     "fully contained range",
			parent:   NewRange(0, 10),
			other:    NewRange(2, 8),
			expected: true,
		},
		{
			name:     "identical ranges",
			parent:   NewRange(5, 15),
			other:    NewRange(5, 15),
			expected: true,
		},
		{
			name:     "other starts before parent",
			parent:   NewRange(5, 15),
			other:    NewRange(3, 10),
			expected: false,
		},
		{
			name:     "other ends after parent",
			parent:   NewRange(0, 10),
			other:    NewRange(5, 20),
			expected: false,
		},
		{
			name:     "empty range at the end of the parent",
			parent:   NewRange(0, 10),
			other:    NewRange(10, 10),
			expected: true,
		},
		{
			name:     "empty parent can't hold anything longer",
			parent:   NewRange(5, 5),
			other:    NewRange(5, 10),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.parent.Contains(tt.other),
				"%s.Contains(%s) should be %v", tt.parent, tt.other, tt.expected)
		})
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "3..7", NewRange(3, 7).String())
	assert.Equal(t, "4", NewRange(4, 4).String())
	assert.Equal(t, 4, NewRange(3, 7).Len())
	assert.Equal(t, "lo w", NewRange(3, 7).Str("hello world"))
}

func sampleTree() *Node {
	c := NewString("c", NewRange(4, 5))
	c.SetMeta("last", true)
	return NewNode("pair", NewRange(0, 5),
		NewString("a", NewRange(0, 1)),
		NewNode("list", NewRange(2, 5),
			NewString("b", NewRange(2, 3)),
			c,
		),
	)
}

func TestValue(t *testing.T) {
	t.Run("text concatenates the leaves", func(t *testing.T) {
		assert.Equal(t, "abc", sampleTree().Text())
		assert.Equal(t, "abcz", Text([]Value{sampleTree(), NewString("z", NewRange(5, 6))}))
	})

	t.Run("string renders the whole tree in one line", func(t *testing.T) {
		assert.Equal(t,
			`pair("a" @ 0..1, list("b" @ 2..3, "c" @ 4..5) @ 2..5) @ 0..5`,
			sampleTree().String())
	})

	t.Run("pretty renders a tree", func(t *testing.T) {
		expected := dedent.Dedent(`
			pair (0..5)
			├── "a" (0..1)
			└── list (2..5)
			    ├── "b" (2..3)
			    └── "c" (4..5) last=true
		`)[1:]

		actual := Pretty([]Value{sampleTree()}) + "\n"

		if expected != actual {
			t.Errorf("%s: wrong output:\n%s", t.Name(), diff(expected, actual))
		}
	})

	t.Run("highlight wraps tokens in colors", func(t *testing.T) {
		actual := Highlight([]Value{NewString("a", NewRange(0, 1))})

		assert.Contains(t, actual, "\033[")
		assert.Contains(t, actual, `"a"`)
	})

	t.Run("clone is deep", func(t *testing.T) {
		tree := sampleTree()
		clone := tree.Clone().(*Node)
		require.Equal(t, tree, clone)

		clone.Items[0].SetMeta("changed", 1)
		clone.Items[1].(*Node).Items[1].SetMeta("last", false)

		_, ok := tree.Items[0].Meta("changed")
		assert.False(t, ok)
		last, _ := tree.Items[1].(*Node).Items[1].Meta("last")
		assert.Equal(t, true, last)
	})

	t.Run("visitors see every kind of value", func(t *testing.T) {
		counter := &valueCounter{}
		var walk func(v Value)
		walk = func(v Value) {
			require.NoError(t, v.Accept(counter))
			if n, ok := v.(*Node); ok {
				for _, item := range n.Items {
					walk(item)
				}
			}
		}

		walk(sampleTree())

		assert.Equal(t, 3, counter.strings)
		assert.Equal(t, 2, counter.nodes)
	})
}

type valueCounter struct{ strings, nodes int }

func (c *valueCounter) VisitString(*String) error { c.strings++; return nil }
func (c *valueCounter) VisitNode(*Node) error     { c.nodes++; return nil }
