// Package player implements the playback state machine of the Mudra
// engine: it owns the queue of pending sign actions, drives the current
// action forward in time, cross-fades between consecutive actions and
// notifies listeners of progress and completion.
package player

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/anim"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/ayusman/mudra/internal/sequence"
)

// State is the playback state of the controller.
type State string

const (
	// StateIdle means the queue is empty and nothing is playing. Idle is
	// both the initial and the terminal state.
	StateIdle State = "idle"
	// StateTransitioning means a new action is blending in.
	StateTransitioning State = "transitioning"
	// StatePlaying means the current action is advancing normally.
	StatePlaying State = "playing"
	// StatePaused means playback is frozen until Resume.
	StatePaused State = "paused"
)

// DefaultTransitionDuration is the cross-fade window in seconds used when
// callers do not specify one.
const DefaultTransitionDuration = 0.3

// Progress is the payload delivered to progress listeners. Each
// notification carries one consistent snapshot of the playback clock.
type Progress struct {
	ActionID string  `json:"action_id"`
	Progress float64 `json:"progress"`
	Clock    float64 `json:"clock"`
	Duration float64 `json:"duration"`
}

// ProgressFunc receives progress notifications. Listeners are invoked
// synchronously from the render tick and must not block.
type ProgressFunc func(Progress)

// CompleteFunc receives the id of each action that finishes playing.
type CompleteFunc func(actionID string)

// queued is one pending playback request.
type queued struct {
	action             *pose.SignAction
	params             pose.Params
	transition         bool
	transitionDuration float64
}

// active is the playback state of one in-flight action. The action
// animates from the pose that was visible when it started toward its
// target hand pose under the resolved easing.
type active struct {
	action   *pose.SignAction
	params   pose.Params
	easing   anim.Easing
	from     pose.HandPose
	duration float64
	clock    float64
}

func (a *active) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	p := a.clock / a.duration
	if p > 1 {
		return 1
	}
	return p
}

func (a *active) pose() pose.HandPose {
	return anim.BlendHandPose(a.from, a.action.Hand, a.easing(a.progress()))
}

// Controller is the playback state machine. It is constructed explicitly
// and passed to whatever drives the render loop; there is no process-wide
// instance. Control calls may arrive from HTTP handler goroutines while a
// ticker drives Update, so shared state is guarded by a mutex; listeners
// are still invoked synchronously inside the operation that triggers
// them.
type Controller struct {
	mu sync.Mutex

	state State
	mixer Mixer
	queue []queued

	current  *active
	outgoing *active

	transitionClock  float64
	transitionWindow float64

	playbackSpeed float64
	lastFrame     pose.Keyframe
	disposed      bool

	nextListenerID int
	onProgress     []progressListener
	onComplete     []completeListener
}

type progressListener struct {
	id int
	fn ProgressFunc
}

type completeListener struct {
	id int
	fn CompleteFunc
}

// New creates an idle controller with playback speed 1.0 and no mixer
// attached.
func New() *Controller {
	return &Controller{
		state:         StateIdle,
		playbackSpeed: 1.0,
		lastFrame:     pose.Keyframe{Hand: pose.NeutralHand()},
	}
}

// SetMixer attaches the skeletal renderer collaborator. Playback
// operations before a mixer is attached log and no-op; the UI is expected
// to retry once the scene has loaded.
func (c *Controller) SetMixer(m Mixer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mixer = m
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// QueueLen returns the number of pending actions.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// PlaybackSpeed returns the global playback speed multiplier.
func (c *Controller) PlaybackSpeed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playbackSpeed
}

// Frame returns the most recently resolved keyframe and whether an action
// has ever produced one.
func (c *Controller) Frame() pose.Keyframe {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFrame
}

// Snapshot describes the controller for status endpoints.
type Snapshot struct {
	State    State   `json:"state"`
	ActionID string  `json:"action_id,omitempty"`
	Progress float64 `json:"progress"`
	Clock    float64 `json:"clock"`
	Duration float64 `json:"duration"`
	Queued   int     `json:"queued"`
	Speed    float64 `json:"speed"`
}

// Status returns a consistent snapshot of the playback state.
func (c *Controller) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:  c.state,
		Queued: len(c.queue),
		Speed:  c.playbackSpeed,
	}
	if c.current != nil {
		s.ActionID = c.current.action.ID
		s.Progress = c.current.progress()
		s.Clock = c.current.clock
		s.Duration = c.current.duration
	}
	return s
}

// OnProgress registers a progress listener and returns its removal
// handle. Listeners run synchronously in registration order and must not
// block or call back into the controller; expensive work has to be
// deferred out of band.
func (c *Controller) OnProgress(fn ProgressFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextListenerID++
	id := c.nextListenerID
	c.onProgress = append(c.onProgress, progressListener{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.onProgress {
			if l.id == id {
				c.onProgress = append(c.onProgress[:i], c.onProgress[i+1:]...)
				return
			}
		}
	}
}

// OnComplete registers a completion listener and returns its removal
// handle.
func (c *Controller) OnComplete(fn CompleteFunc) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextListenerID++
	id := c.nextListenerID
	c.onComplete = append(c.onComplete, completeListener{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, l := range c.onComplete {
			if l.id == id {
				c.onComplete = append(c.onComplete[:i], c.onComplete[i+1:]...)
				return
			}
		}
	}
}

// AddToQueue appends an action to the playback queue. If the controller
// is idle the action starts immediately.
func (c *Controller) AddToQueue(action *pose.SignAction, params pose.Params, transition bool, transitionDuration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || action == nil {
		return
	}

	c.queue = append(c.queue, queued{
		action:             action,
		params:             params,
		transition:         transition,
		transitionDuration: transitionDuration,
	})

	if c.state == StateIdle {
		if c.mixer == nil {
			// Keep the item queued so the caller can retry once the
			// renderer has loaded.
			log.Printf("player: no mixer attached, holding %q in queue", action.ID)
			return
		}
		c.dequeueLocked()
	}
}

// EnqueueSequence queues every item of a timed sequence in order,
// rejecting the whole sequence if validation fails. The per-item speed
// resolved by the sequencer or rhythm controller carries over into the
// queued parameters. Reports whether the sequence was accepted.
func (c *Controller) EnqueueSequence(seq []sequence.Item, transition bool, transitionDuration float64) bool {
	if !sequence.Validate(seq) {
		log.Printf("player: rejecting invalid sequence (%d items)", len(seq))
		return false
	}

	for _, item := range seq {
		params := item.Params
		params.Speed = item.Speed
		c.AddToQueue(item.Action, params, transition, transitionDuration)
	}
	return true
}

// PlayAction starts an action immediately. If another action is mid-
// flight and transition is set, the outgoing action keeps playing through
// the cross-fade window while the new one blends in. Fires a progress
// notification with progress 0 before returning.
func (c *Controller) PlayAction(action *pose.SignAction, params pose.Params, transition bool, transitionDuration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || action == nil {
		return
	}

	c.playLocked(queued{
		action:             action,
		params:             params,
		transition:         transition,
		transitionDuration: transitionDuration,
	})
}

// playLocked starts a queued action. Caller holds the mutex.
func (c *Controller) playLocked(q queued) {
	if c.mixer == nil {
		log.Printf("player: no mixer attached, cannot play %q", q.action.ID)
		return
	}

	params := q.params.Clamped()

	from := c.lastFrame.Hand
	if c.current != nil {
		from = c.current.pose()
	}

	// Smoothness scales the nominal cross-fade window: 0 disables the
	// blend, 0.5 keeps it nominal, 1 doubles it.
	window := q.transitionDuration * 2 * params.Smoothness

	if q.transition && c.current != nil && window > 0 {
		c.outgoing = c.current
	} else {
		c.outgoing = nil
	}

	c.current = &active{
		action:   q.action,
		params:   params,
		easing:   anim.EasingFor(params.EaseIn, params.EaseOut),
		from:     from,
		duration: q.action.Duration / params.Speed,
	}

	c.transitionClock = 0
	c.transitionWindow = window
	if q.transition && window > 0 {
		c.state = StateTransitioning
	} else {
		c.state = StatePlaying
	}

	c.notifyProgressLocked()
}

// dequeueLocked pops and starts the next queued action, or goes idle when
// the queue is empty. Caller holds the mutex.
func (c *Controller) dequeueLocked() {
	if len(c.queue) == 0 {
		c.state = StateIdle
		c.current = nil
		c.outgoing = nil
		return
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.playLocked(next)
}

// Update advances playback by delta seconds of host time. It is the
// per-tick driver, called once per render frame; the engine is frame-rate
// independent because it integrates delta rather than counting frames.
// No-op while paused or idle.
func (c *Controller) Update(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	if c.state != StatePlaying && c.state != StateTransitioning {
		return
	}
	if c.current == nil {
		return
	}
	if c.mixer == nil {
		log.Print("player: no mixer attached, skipping update")
		return
	}

	step := delta * c.playbackSpeed
	c.current.clock += step

	if c.state == StateTransitioning {
		c.transitionClock += step
		if c.outgoing != nil {
			c.outgoing.clock += step
		}
		if c.transitionClock >= c.transitionWindow {
			c.outgoing = nil
			c.state = StatePlaying
		}
	}

	hand := c.current.pose()
	if c.outgoing != nil && c.transitionWindow > 0 {
		w := c.transitionClock / c.transitionWindow
		if w > 1 {
			w = 1
		}
		hand = anim.BlendHandPose(c.outgoing.pose(), hand, w)
	}

	c.lastFrame = pose.Keyframe{Time: c.current.clock, Hand: hand}
	c.mixer.Advance(delta)
	c.mixer.Apply(c.lastFrame)

	c.notifyProgressLocked()

	if c.current.progress() >= 1 {
		if c.current.params.Loop {
			// Wrap instead of resetting to zero so no tick time is
			// dropped; the blend replays from the original start pose.
			c.current.clock -= c.current.duration
			return
		}
		c.notifyCompleteLocked(c.current.action.ID)
		c.dequeueLocked()
	}
}

// Pause freezes playback. Valid only while playing; calling it in any
// other state is a silent no-op, since double-fired UI events are
// expected.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePlaying && c.state != StateTransitioning {
		return
	}
	c.state = StatePaused
}

// Resume continues paused playback. No-op from any other state.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePaused {
		return
	}
	if c.outgoing != nil {
		c.state = StateTransitioning
	} else {
		c.state = StatePlaying
	}
}

// Stop clears the queue, resets the clock and returns to idle,
// unconditionally and from any state.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = nil
	c.current = nil
	c.outgoing = nil
	c.transitionClock = 0
	c.transitionWindow = 0
	c.state = StateIdle
}

// SeekTo moves the playback clock of the current action to the given
// time, clamped to [0, duration], and re-fires a progress notification.
// No-op when nothing is playing.
func (c *Controller) SeekTo(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return
	}
	if t < 0 {
		t = 0
	}
	if t > c.current.duration {
		t = c.current.duration
	}
	c.current.clock = t
	c.notifyProgressLocked()
}

// SetPlaybackSpeed sets the global speed multiplier, clamped to the
// parameter range. The clock itself is untouched, so the elapsed
// progress ratio is preserved and only the remaining wall time rescales;
// changing speed never teleports progress.
func (c *Controller) SetPlaybackSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playbackSpeed = pose.ClampSpeed(speed)
}

// Dispose releases the mixer and all listeners. The controller must not
// be used afterwards.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = nil
	c.current = nil
	c.outgoing = nil
	c.mixer = nil
	c.onProgress = nil
	c.onComplete = nil
	c.state = StateIdle
	c.disposed = true
}

// notifyProgressLocked delivers one consistent progress snapshot to every
// listener in registration order. A panicking listener never prevents the
// remaining listeners from running. Caller holds the mutex.
func (c *Controller) notifyProgressLocked() {
	if c.current == nil {
		return
	}
	p := Progress{
		ActionID: c.current.action.ID,
		Progress: c.current.progress(),
		Clock:    c.current.clock,
		Duration: c.current.duration,
	}
	for _, l := range c.onProgress {
		safeNotify(func() { l.fn(p) })
	}
}

// notifyCompleteLocked delivers a completion notification to every
// listener in registration order. Caller holds the mutex.
func (c *Controller) notifyCompleteLocked(actionID string) {
	for _, l := range c.onComplete {
		safeNotify(func() { l.fn(actionID) })
	}
}

func safeNotify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("player: listener panic: %v", r)
		}
	}()
	fn()
}
