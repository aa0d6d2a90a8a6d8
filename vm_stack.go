package pegstack

type FrameKind int

const (
	FrameRoot FrameKind = iota
	FrameSequence
	FrameChoice
	FrameZeroOrMore
	FrameOneOrMore
	FrameBounded
	FrameOptional
	FrameNot
	FrameWrap
	FrameHide
)

var frameKindNames = map[FrameKind]string{
	FrameRoot:       "root",
	FrameSequence:   "sequence",
	FrameChoice:     "choice",
	FrameZeroOrMore: "zero_or_more",
	FrameOneOrMore:  "one_or_more",
	FrameBounded:    "bounded",
	FrameOptional:   "optional",
	FrameNot:        "not",
	FrameWrap:       "wrap",
	FrameHide:       "hide",
}

func (k FrameKind) String() string {
	if name, ok := frameKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Frame is one activation of a combinator
type Frame struct {
	Kind FrameKind

	// Cursor is the index of the next unconsumed byte (or token)
	// as seen by this frame.  It only reaches the parent frame if
	// this one succeeds.
	Cursor int

	// Pending holds the sub-expressions still to be evaluated.  The
	// interpreter shifts items from its front.  It's owned by the
	// frame and never shared with the grammar.
	Pending []Expr

	// Failed is set once a child mismatches
	Failed bool

	// Matches counts the children that completed successfully
	Matches int

	// Output holds the values produced by this frame, spliced into
	// the parent's output on success
	Output []Value

	// start is the cursor the frame was pushed with
	start int

	// name is used by `FrameWrap` to name the node it produces
	name string

	// item, min and max are used by the repetition frames.  item is
	// re-enqueued for every iteration and iter holds the cursor at
	// the beginning of the current iteration.
	item     Expr
	min, max int
	iter     int
}

// NewRootFrame creates the frame that represents a whole run starting
// at `cursor`.  Host callbacks can use it to replace the stack.
func NewRootFrame(cursor int, items ...Expr) Frame {
	return Frame{
		Kind:    FrameRoot,
		Cursor:  cursor,
		Pending: append([]Expr(nil), items...),
		start:   cursor,
	}
}

// Start returns the cursor the frame was created with
func (f *Frame) Start() int { return f.start }

func (f *Frame) isRepetition() bool {
	switch f.Kind {
	case FrameZeroOrMore, FrameOneOrMore, FrameBounded:
		return true
	}
	return false
}

// complete returns true when the interpreter is done with the frame.
// `size` is the length of the input and is used by repetitions to
// decide if there's anything left to try.
func (f *Frame) complete(size int) bool {
	switch f.Kind {
	case FrameChoice:
		return f.Matches > 0 || len(f.Pending) == 0
	case FrameNot:
		return (!f.Failed && f.Matches > 0) || len(f.Pending) == 0
	case FrameZeroOrMore, FrameOneOrMore, FrameBounded:
		return f.Failed || (len(f.Pending) == 0 && !f.again(size))
	default:
		return f.Failed || len(f.Pending) == 0
	}
}

// again returns true if a repetition should try its item once more.
// An iteration that matched without consuming anything would match
// the same way forever, so it ends the repetition.
func (f *Frame) again(size int) bool {
	return f.Cursor < size && f.Cursor != f.iter
}

// enqueue starts a new iteration of a repetition frame
func (f *Frame) enqueue() {
	f.Pending = append(f.Pending[:0], f.item)
	f.iter = f.Cursor
}

// shift removes the front pending item
func (f *Frame) shift() Expr {
	item := f.Pending[0]
	f.Pending[0] = nil
	f.Pending = f.Pending[1:]
	return item
}

func (f *Frame) capture(values ...Value) {
	if len(values) == 0 {
		return
	}
	f.Output = append(f.Output, values...)
}

// Stack is the container of frames owned by a single run.  The
// interpreter only touches its top and, when popping, the frame right
// below it.
type Stack struct {
	frames []Frame

	// root is the cursor of the last root frame popped off the stack
	root int
}

func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

func (s *Stack) Pop() Frame {
	idx := len(s.frames) - 1
	f := s.frames[idx]
	if idx == 0 {
		s.root = f.Cursor
	}
	// Clear the slot so the GC can collect its slices
	s.frames[idx] = Frame{}
	s.frames = s.frames[:idx]
	return f
}

func (s *Stack) Top() *Frame {
	return s.Peek(0)
}

// Peek returns the frame `n` positions below the top
func (s *Stack) Peek(n int) *Frame {
	return &s.frames[len(s.frames)-n-1]
}

func (s *Stack) Len() int {
	return len(s.frames)
}

func (s *Stack) reset() {
	for i := range s.frames {
		s.frames[i] = Frame{}
	}
	s.frames = s.frames[:0]
	s.root = 0
}
