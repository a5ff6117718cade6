package scope

// Frame holds the let bindings of one input resolution.
type Frame map[string]any

// Stack is the stack of let binding frames active during a transform.
// Lookups search from the innermost frame outwards, so inner bindings
// shadow outer ones and top-level inputs.
type Stack struct {
	frames []Frame
}

func New() *Stack {
	return &Stack{}
}

// Push adds a frame at the top of the stack.
func (s *Stack) Push(frame Frame) {
	s.frames = append(s.frames, frame)
}

// Pop removes the top frame.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	index := len(s.frames) - 1
	frame := s.frames[index]
	s.frames = s.frames[:index]
	return frame, true
}

// Lookup returns the innermost binding for name.
func (s *Stack) Lookup(name string) (any, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *Stack) Size() int {
	return len(s.frames)
}
