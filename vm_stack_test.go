package pegstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	t.Run("frames are handled last in first out", func(t *testing.T) {
		var s Stack
		s.Push(NewRootFrame(0, Literal("a")))
		s.Push(Frame{Kind: FrameSequence, Cursor: 3})

		require.Equal(t, 2, s.Len())
		assert.Equal(t, FrameSequence, s.Top().Kind)
		assert.Equal(t, FrameRoot, s.Peek(1).Kind)

		f := s.Pop()
		assert.Equal(t, 3, f.Cursor)
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, FrameRoot, s.Top().Kind)
	})

	t.Run("top points into the stack", func(t *testing.T) {
		var s Stack
		s.Push(NewRootFrame(2))
		s.Top().Matches++

		assert.Equal(t, 1, s.Top().Matches)
		assert.Equal(t, 2, s.Top().Start())
	})

	t.Run("root frames own their pending items", func(t *testing.T) {
		items := []Expr{Literal("a"), Literal("b")}
		f := NewRootFrame(0, items...)
		f.shift()

		assert.Len(t, f.Pending, 1)
		assert.Equal(t, Literal("a"), items[0])
	})

	t.Run("repetitions stop on zero width iterations", func(t *testing.T) {
		f := Frame{Kind: FrameZeroOrMore, item: Literal("a")}
		f.enqueue()
		assert.Equal(t, []Expr{Literal("a")}, f.Pending)

		f.shift()
		assert.False(t, f.again(5))
		assert.True(t, f.complete(5))

		f.Cursor = 1
		assert.True(t, f.again(5))
		assert.False(t, f.complete(5))
		assert.False(t, f.again(1))
	})

	t.Run("popping the root remembers its cursor", func(t *testing.T) {
		var s Stack
		s.Push(NewRootFrame(4))
		s.Push(Frame{Kind: FrameSequence, Cursor: 9})

		s.Pop()
		assert.Equal(t, 0, s.root)
		s.Pop()
		assert.Equal(t, 4, s.root)

		s.reset()
		assert.Equal(t, 0, s.root)
	})

	t.Run("kinds have names", func(t *testing.T) {
		assert.Equal(t, "zero_or_more", FrameZeroOrMore.String())
		assert.Equal(t, "bounded", FrameBounded.String())
		assert.Equal(t, "unknown", FrameKind(99).String())
	})
}
