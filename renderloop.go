package graphview

// FrameToken identifies one scheduled frame request. The zero token means
// "nothing scheduled".
type FrameToken uint64

// FrameScheduler schedules a callback for the next frame. RequestFrame must
// not invoke fn synchronously. After CancelFrame returns, the cancelled fn
// never runs; cancelling an unknown or already fired token is a no-op.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameToken
	CancelFrame(tok FrameToken)
}

type pendingFrame struct {
	tok FrameToken
	fn  func()
}

// TickScheduler is a FrameScheduler driven by explicit Tick calls. The
// ebiten renderer ticks it once per game update; tests tick it by hand.
type TickScheduler struct {
	next    FrameToken
	pending []pendingFrame
	firing  []pendingFrame
}

// NewTickScheduler creates an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// RequestFrame queues fn for the next Tick.
func (s *TickScheduler) RequestFrame(fn func()) FrameToken {
	s.next++
	s.pending = append(s.pending, pendingFrame{tok: s.next, fn: fn})
	return s.next
}

// CancelFrame removes tok from the queue. A token belonging to the batch of
// the Tick in progress is disarmed in place.
func (s *TickScheduler) CancelFrame(tok FrameToken) {
	if tok == 0 {
		return
	}
	for i := range s.firing {
		if s.firing[i].tok == tok {
			s.firing[i].fn = nil
			return
		}
	}
	for i, p := range s.pending {
		if p.tok == tok {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = pendingFrame{}
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
}

// Tick runs every callback queued before the call, in request order.
// Callbacks requested during the tick run on the next one. Returns the
// number of callbacks run.
func (s *TickScheduler) Tick() int {
	if len(s.pending) == 0 {
		return 0
	}
	s.firing = s.pending
	s.pending = nil
	ran := 0
	for i := range s.firing {
		fn := s.firing[i].fn
		if fn == nil {
			continue
		}
		s.firing[i].fn = nil
		fn()
		ran++
	}
	s.firing = nil
	return ran
}

// Pending returns the number of queued callbacks.
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}

// RenderLoop repeatedly requests frames from a scheduler and runs a frame
// function in each. At most one request is outstanding at any time.
type RenderLoop struct {
	sched FrameScheduler
	frame func()
	token FrameToken
}

// NewRenderLoop creates a stopped loop that runs frame on every tick of sched.
func NewRenderLoop(sched FrameScheduler, frame func()) *RenderLoop {
	return &RenderLoop{sched: sched, frame: frame}
}

// Start schedules the first frame. Calling Start on a running loop does
// nothing.
func (l *RenderLoop) Start() {
	if l.token != 0 {
		return
	}
	l.schedule()
}

// Stop cancels the outstanding request. A callback that fires after Stop
// neither paints nor reschedules.
func (l *RenderLoop) Stop() {
	if l.token == 0 {
		return
	}
	tok := l.token
	l.token = 0
	l.sched.CancelFrame(tok)
}

// Running reports whether a frame request is outstanding.
func (l *RenderLoop) Running() bool {
	return l.token != 0
}

// Token returns the outstanding request, or 0.
func (l *RenderLoop) Token() FrameToken {
	return l.token
}

func (l *RenderLoop) schedule() {
	var tok FrameToken
	tok = l.sched.RequestFrame(func() { l.fire(tok) })
	l.token = tok
}

func (l *RenderLoop) fire(tok FrameToken) {
	if tok != l.token {
		return
	}
	l.frame()
	// The frame may have stopped (or stopped and restarted) the loop.
	if tok != l.token {
		return
	}
	l.schedule()
}
