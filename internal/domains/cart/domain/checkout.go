package domain

import "errors"

// State is a checkout lifecycle stage.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateBlocked    State = "blocked"
	StateProcessing State = "processing"
	StateSettled    State = "settled"
)

// User-facing checkout messages.
const (
	MessageCheckingStock = "Checking stock availability..."
	MessageOutOfStock    = "Some items are out of stock. Please adjust your cart."
	MessageProcessing    = "Processing payment..."
	MessageSettled       = "✅ Payment successful! Thank you for your purchase."
	MessageFailed        = "Payment could not be completed. Please try again."
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutBlocked    = errors.New("checkout blocked by stock check")
	ErrCheckoutInProgress = errors.New("checkout already processing")
	ErrStaleAttempt       = errors.New("checkout attempt is no longer processing")
)

// Transition records one state change.
type Transition struct {
	From State
	To   State
}

// Status is a read-only view of the checkout machine.
type Status struct {
	State             State
	Attempt           int
	Message           string
	InsufficientNames []string
	LastError         string
}

// Checkout is the simulated checkout state machine. Not safe for concurrent use.
type Checkout struct {
	state        State
	attempt      int
	message      string
	insufficient []string
	lastError    string
	history      []Transition
}

// NewCheckout starts in Idle.
func NewCheckout() *Checkout {
	return &Checkout{state: StateIdle}
}

// State returns the current stage.
func (c *Checkout) State() State {
	return c.state
}

// Submit validates rec and moves to Blocked or Processing. A settled machine
// starts a fresh cycle. The returned attempt identifies the processing run.
func (c *Checkout) Submit(rec Reconciliation) (int, error) {
	switch c.state {
	case StateProcessing:
		return 0, ErrCheckoutInProgress
	case StateSettled:
		c.transition(StateIdle)
	}
	c.lastError = ""
	c.insufficient = nil
	c.transition(StateValidating)

	if rec.Blocked {
		c.transition(StateBlocked)
		c.insufficient = append([]string(nil), rec.InsufficientNames...)
		if len(c.insufficient) == 0 && rec.FetchInFlight {
			c.message = MessageCheckingStock
		} else {
			c.message = MessageOutOfStock
		}
		return 0, ErrCheckoutBlocked
	}

	c.attempt++
	c.transition(StateProcessing)
	c.message = MessageProcessing
	return c.attempt, nil
}

// Settle completes the given processing attempt.
func (c *Checkout) Settle(attempt int) error {
	if c.state != StateProcessing || attempt != c.attempt {
		return ErrStaleAttempt
	}
	c.transition(StateSettled)
	c.message = MessageSettled
	return nil
}

// Fail returns a processing attempt to Idle when the processor could not run.
func (c *Checkout) Fail(attempt int, cause error) error {
	if c.state != StateProcessing || attempt != c.attempt {
		return ErrStaleAttempt
	}
	c.transition(StateIdle)
	c.message = MessageFailed
	if cause != nil {
		c.lastError = cause.Error()
	}
	return nil
}

// CartEdited resets a Blocked or Settled machine to Idle.
func (c *Checkout) CartEdited() {
	switch c.state {
	case StateBlocked, StateSettled:
		c.transition(StateIdle)
		c.message = ""
		c.insufficient = nil
	}
}

// Status returns a copy of the current machine state.
func (c *Checkout) Status() Status {
	return Status{
		State:             c.state,
		Attempt:           c.attempt,
		Message:           c.message,
		InsufficientNames: append([]string(nil), c.insufficient...),
		LastError:         c.lastError,
	}
}

// History returns every transition taken so far.
func (c *Checkout) History() []Transition {
	return append([]Transition(nil), c.history...)
}

func (c *Checkout) transition(to State) {
	c.history = append(c.history, Transition{From: c.state, To: to})
	c.state = to
}
