package placement

// ============================================================
// Drag / Resize Session
// ============================================================

// SessionState is the interaction state for the selected item.
type SessionState int

const (
	StateIdle SessionState = iota
	StateDragging
	StateResizing
)

// Session is the client-local drag/resize state machine for one selected
// item: idle → dragging → idle and idle → resizing → idle. Pointer moves
// mutate geometry locally only; exactly one update broadcast fires on
// release, which bounds network chatter to one event per gesture.
type Session struct {
	mgr   *Manager
	state SessionState

	itemID string
	moved  bool

	// pointer position at gesture start
	startX, startY float64
	// item geometry at gesture start
	origX, origY          float64
	origWidth, origHeight float64
}

// NewSession returns an idle session bound to the manager whose items it
// manipulates.
func NewSession(mgr *Manager) *Session {
	return &Session{mgr: mgr}
}

func (s *Session) State() SessionState {
	return s.state
}

// BeginDrag enters the dragging state on pointer-down over the item
// body. Returns false when the item is unknown or a gesture is already
// in progress.
func (s *Session) BeginDrag(itemID string, pointerX, pointerY float64) bool {
	if s.state != StateIdle {
		return false
	}
	item, ok := s.mgr.items.Get(itemID)
	if !ok {
		return false
	}
	s.state = StateDragging
	s.itemID = itemID
	s.moved = false
	s.startX, s.startY = pointerX, pointerY
	s.origX, s.origY = item.X, item.Y
	return true
}

// BeginResize enters the resizing state on pointer-down over a resize
// handle.
func (s *Session) BeginResize(itemID string, pointerX, pointerY float64) bool {
	if s.state != StateIdle {
		return false
	}
	item, ok := s.mgr.items.Get(itemID)
	if !ok {
		return false
	}
	s.state = StateResizing
	s.itemID = itemID
	s.moved = false
	s.startX, s.startY = pointerX, pointerY
	s.origWidth, s.origHeight = item.Width, item.Height
	return true
}

// Move applies a pointer-move to the selected item's local geometry.
// No broadcast happens per frame. Position stays within the canvas
// (coordinates never go negative); size clamps at the 50×50 floor
// regardless of pointer position.
func (s *Session) Move(pointerX, pointerY float64) {
	item, ok := s.mgr.items.Get(s.itemID)
	if !ok {
		return
	}

	switch s.state {
	case StateDragging:
		item.X = max(0, s.origX+pointerX-s.startX)
		item.Y = max(0, s.origY+pointerY-s.startY)
	case StateResizing:
		item.Width = max(MinItemSize, s.origWidth+pointerX-s.startX)
		item.Height = max(MinItemSize, s.origHeight+pointerY-s.startY)
	default:
		return
	}

	s.moved = true
	s.mgr.items.Replace(item)
}

// End transitions back to idle on pointer-up. When the gesture moved the
// item, exactly one update broadcast carries the final geometry; the
// minimum size clamp is never violated in the emitted state.
func (s *Session) End() {
	if s.state == StateIdle {
		return
	}
	itemID := s.itemID
	moved := s.moved
	s.state = StateIdle
	s.itemID = ""
	s.moved = false

	if !moved {
		return
	}
	if item, ok := s.mgr.items.Get(itemID); ok {
		s.mgr.UpdateItem(item)
	}
}
