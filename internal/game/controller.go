// Package game holds the gameplay flow controller: the client-side state
// machine that owns the current question, score, hint effects, and the
// transitions between answering, revealing, and the end of the game.
package game

import (
	"context"
	"sync"
	"time"

	"quizapp/internal/domain"
)

const (
	// Delay keeping the feedback on screen before the next question appears.
	defaultRevealNextDelay = 2500 * time.Millisecond
	// Delay before the end-of-game summary replaces the last feedback.
	defaultRevealEndDelay = 2 * time.Second
)

// Controller drives one player's run through a game session. All methods are
// safe for concurrent use, though the flow is single-in-flight by design: any
// action while a request is pending fails with ErrBusy.
type Controller struct {
	backend   Backend
	sessionID string
	nickname  string

	revealNextDelay time.Duration
	revealEndDelay  time.Duration
	afterFunc       func(time.Duration, func()) *time.Timer
	onChange        func(View)

	mu            sync.Mutex
	phase         Phase
	question      domain.Question
	score         int
	level         int
	selected      string
	feedback      *Feedback
	eliminated    []string
	audienceMsg   string
	assistMsg     string
	eliminateUsed bool
	inFlight      bool
	transition    *time.Timer
	epoch         int
	closed        bool
	done          chan struct{}
}

// Option customizes a Controller.
type Option func(*Controller)

// WithDelays overrides the reveal display delays.
func WithDelays(next, end time.Duration) Option {
	return func(c *Controller) {
		c.revealNextDelay = next
		c.revealEndDelay = end
	}
}

// WithObserver registers a callback invoked with a fresh snapshot after every
// state change. Called outside the controller lock.
func WithObserver(onChange func(View)) Option {
	return func(c *Controller) { c.onChange = onChange }
}

// New builds a controller from a lobby seed. A seed without a session handle
// or question is rejected with ErrNoSession.
func New(backend Backend, seed Seed, opts ...Option) (*Controller, error) {
	if seed.SessionID == "" || seed.Question.ID == "" {
		return nil, ErrNoSession
	}

	level := seed.Question.Level
	if level == 0 {
		level = seed.Question.Difficulty.Level()
	}
	if level == 0 {
		level = 1
	}

	c := &Controller{
		backend:         backend,
		sessionID:       seed.SessionID,
		nickname:        seed.Nickname,
		revealNextDelay: defaultRevealNextDelay,
		revealEndDelay:  defaultRevealEndDelay,
		afterFunc:       time.AfterFunc,
		phase:           PhaseAnswering,
		question:        seed.Question,
		level:           level,
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Snapshot returns an immutable view of the current state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// SelectAnswer submits one option. The selection is write-once per question:
// once a submission succeeds the phase leaves Answering and further calls are
// rejected without touching the network. A failed submission leaves the state
// unchanged so the user may try again.
func (c *Controller) SelectAnswer(ctx context.Context, option string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.phase != PhaseAnswering {
		c.mu.Unlock()
		return ErrNotAnswering
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.isEliminatedLocked(option) {
		c.mu.Unlock()
		return ErrOptionSuppressed
	}
	if !c.hasOptionLocked(option) {
		c.mu.Unlock()
		return ErrUnknownOption
	}
	c.inFlight = true
	epoch := c.epoch
	questionID := c.question.ID
	c.mu.Unlock()

	ctx, cancel := c.callContext(ctx)
	result, err := c.backend.SubmitAnswer(ctx, c.sessionID, questionID, option)
	cancel()

	c.mu.Lock()
	c.inFlight = false
	if c.closed || c.epoch != epoch {
		// Superseded while the request was out; drop the stale response.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.phase = PhaseRevealing
	c.selected = option
	c.feedback = &Feedback{Correct: result.Correct, Message: result.Feedback}
	c.score = result.Score

	next := result.NextQuestion
	switch {
	case result.GameOver, next == nil:
		c.scheduleLocked(c.revealEndDelay, epoch, func() { c.phase = PhaseEnded })
	default:
		adopted := *next
		c.scheduleLocked(c.revealNextDelay, epoch, func() { c.adoptQuestionLocked(adopted) })
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
	return nil
}

// RequestHint asks the backend for a hint. Only allowed while Answering with no
// request in flight; eliminate additionally carries a local once-per-question
// guard, so a repeat never reaches the network. Backend rejections (session-wide
// limits) surface as-is with no effect recorded.
func (c *Controller) RequestHint(ctx context.Context, kind domain.HintKind) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.phase != PhaseAnswering {
		c.mu.Unlock()
		return ErrHintUnavailable
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	if kind == domain.HintEliminate && c.eliminateUsed {
		c.mu.Unlock()
		return ErrEliminateUsed
	}
	c.inFlight = true
	epoch := c.epoch
	questionID := c.question.ID
	c.mu.Unlock()

	ctx, cancel := c.callContext(ctx)
	effect, err := c.backend.RequestHint(ctx, c.sessionID, kind, questionID)
	cancel()

	c.mu.Lock()
	c.inFlight = false
	if c.closed || c.epoch != epoch {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	switch effect.Kind {
	case domain.HintEliminate:
		c.eliminated = append([]string(nil), effect.Remove...)
		c.eliminateUsed = true
	case domain.HintAudience:
		c.audienceMsg = effect.Message
	case domain.HintAssist:
		c.assistMsg = effect.Message
	}
	view := c.viewLocked()
	c.mu.Unlock()

	c.notify(view)
	return nil
}

// Close tears the controller down: pending transitions are cancelled and
// in-flight requests aborted, so no state update happens after teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.epoch++
	if c.transition != nil {
		c.transition.Stop()
		c.transition = nil
	}
	c.mu.Unlock()
	close(c.done)
}

// scheduleLocked arms the single delayed transition out of Revealing. The
// callback re-checks the epoch so a transition armed for a question that has
// since been replaced (or a closed controller) is discarded.
func (c *Controller) scheduleLocked(delay time.Duration, epoch int, apply func()) {
	if c.transition != nil {
		c.transition.Stop()
	}
	c.transition = c.afterFunc(delay, func() {
		c.mu.Lock()
		if c.closed || c.epoch != epoch {
			c.mu.Unlock()
			return
		}
		apply()
		c.epoch++
		view := c.viewLocked()
		c.mu.Unlock()
		c.notify(view)
	})
}

// adoptQuestionLocked replaces the question wholesale and resets everything
// scoped to the previous one: selection, feedback, and all hint effects.
func (c *Controller) adoptQuestionLocked(next domain.Question) {
	c.question = next
	if next.Level > 0 {
		c.level = next.Level
	} else if tier := next.Difficulty.Level(); tier > 0 {
		c.level = tier
	}
	// Tier retained when the backend omits it.
	c.phase = PhaseAnswering
	c.selected = ""
	c.feedback = nil
	c.eliminated = nil
	c.audienceMsg = ""
	c.assistMsg = ""
	c.eliminateUsed = false
}

// callContext ties a request to both the caller's context and the controller's
// lifetime, so Close aborts whatever is in flight.
func (c *Controller) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := make(chan struct{})
	go func() {
		select {
		case <-c.done:
			cancel()
		case <-stop:
		}
	}()
	return ctx, func() {
		close(stop)
		cancel()
	}
}

func (c *Controller) viewLocked() View {
	var fb *Feedback
	if c.feedback != nil {
		copied := *c.feedback
		fb = &copied
	}
	return View{
		Phase:           c.phase,
		Nickname:        c.nickname,
		Question:        c.question,
		Score:           c.score,
		Level:           c.level,
		Selected:        c.selected,
		Feedback:        fb,
		Suppressed:      append([]string(nil), c.eliminated...),
		AudienceMessage: c.audienceMsg,
		AssistMessage:   c.assistMsg,
	}
}

func (c *Controller) notify(view View) {
	if c.onChange != nil {
		c.onChange(view)
	}
}

func (c *Controller) isEliminatedLocked(option string) bool {
	for _, e := range c.eliminated {
		if e == option {
			return true
		}
	}
	return false
}

func (c *Controller) hasOptionLocked(option string) bool {
	for _, o := range c.question.Options {
		if o == option {
			return true
		}
	}
	return false
}
