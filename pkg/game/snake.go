package game

// Snake is an ordered body, head first, with its active and buffered direction
type Snake struct {
	Body    []Point   `json:"body"`
	Dir     Direction `json:"direction"`
	Pending Direction `json:"pending"`
}

// NewSnake creates a one-segment snake at pos heading in dir
func NewSnake(pos Point, dir Direction) Snake {
	return Snake{
		Body:    []Point{pos},
		Dir:     dir,
		Pending: dir,
	}
}

// Head returns the first segment
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Tail returns the last segment
func (s *Snake) Tail() Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the number of segments
func (s *Snake) Len() int {
	return len(s.Body)
}

// Contains reports whether p is any segment of the body, head included
func (s *Snake) Contains(p Point) bool {
	return containsPoint(s.Body, p)
}

// Queue buffers dir for the next tick. The exact reverse of the active
// direction is ignored.
func (s *Snake) Queue(dir Direction) bool {
	if !dir.Valid() || dir.IsReverse(s.Dir) {
		return false
	}
	s.Pending = dir
	return true
}

// Commit makes the buffered direction active
func (s *Snake) Commit() {
	if s.Pending.Valid() && !s.Pending.IsReverse(s.Dir) {
		s.Dir = s.Pending
	}
	s.Pending = s.Dir
}

// Advance prepends head and drops the tail unless grow is set
func (s *Snake) Advance(head Point, grow bool) {
	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, head)
	body = append(body, s.Body...)
	if !grow {
		body = body[:len(body)-1]
	}
	s.Body = body
}

// Clone returns a deep copy
func (s Snake) Clone() Snake {
	s.Body = append([]Point(nil), s.Body...)
	return s
}
