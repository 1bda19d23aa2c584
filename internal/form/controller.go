// Package form drives every data-entry page: it holds the field values and
// their errors, validates synchronously and runs the submit round-trip.
package form

import (
	"context"
	"errors"
	"maps"
	"sync"

	"moneymaven/internal/log"
)

// ErrInvalid is returned by Submit when validation fails. Nothing was sent.
var ErrInvalid = errors.New("form has invalid fields")

// Errors maps a field name to its message.
type Errors map[string]string

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	return e[field]
}

// SuccessPolicy decides what happens to the values after a successful submit.
type SuccessPolicy int

const (
	// ResetValues puts the defaults back.
	ResetValues SuccessPolicy = iota
	// KeepValues leaves the submitted values in place.
	KeepValues
)

// SendFunc performs the network side of a submit with a copy of the values.
type SendFunc func(ctx context.Context, values map[string]string) error

// Options configures a Controller.
type Options struct {
	Name          string
	Defaults      map[string]string
	Rules         *Rules
	OnSuccess     SuccessPolicy
	SuccessNotice string
	// ErrorMessage turns a send failure into the page error. Defaults to err.Error().
	ErrorMessage func(error) string
	// ClearMessagesOnChange drops the page error and notice when a field changes.
	ClearMessagesOnChange bool
	Logger                *log.Logger
}

// State is a copy of the controller state for rendering.
type State struct {
	Values     map[string]string
	Errors     Errors
	Submitting bool
	Err        string
	Notice     string
}

// Controller holds one form. It is safe for concurrent use.
type Controller struct {
	opts   Options
	logger *log.Logger

	mu         sync.Mutex
	values     map[string]string
	errors     Errors
	submitting bool
	err        string
	notice     string
}

func New(opts Options) *Controller {
	if opts.ErrorMessage == nil {
		opts.ErrorMessage = func(err error) string { return err.Error() }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Controller{
		opts:   opts,
		logger: logger.WithComponent(log.ComponentForm).With(log.FieldPage, opts.Name),
		values: maps.Clone(defaultsOf(opts)),
		errors: Errors{},
	}
}

func defaultsOf(opts Options) map[string]string {
	if opts.Defaults == nil {
		return map[string]string{}
	}
	return opts.Defaults
}

// Change sets one field and clears that field's error only.
func (c *Controller) Change(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[field] = value
	delete(c.errors, field)
	if c.opts.ClearMessagesOnChange {
		c.err = ""
		c.notice = ""
	}
}

// Load replaces the values wholesale, e.g. with data fetched from the server.
// Fields missing from values fall back to the defaults.
func (c *Controller) Load(values map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := maps.Clone(defaultsOf(c.opts))
	maps.Copy(next, values)
	c.values = next
}

// Reset restores the defaults and clears every error and message.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = maps.Clone(defaultsOf(c.opts))
	c.errors = Errors{}
	c.err = ""
	c.notice = ""
}

// Value returns one field.
func (c *Controller) Value(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[field]
}

// Values returns a copy of all fields.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.values)
}

// Errors returns a copy of the field errors from the last submit.
func (c *Controller) Errors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.errors)
}

// Validate checks the current values without changing any state.
func (c *Controller) Validate() Errors {
	return c.opts.Rules.Validate(c.Values())
}

// Submitting reports whether a submit is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Err returns the page-level error.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Notice returns the page-level success message.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// SetErr sets the page-level error, for failures outside Submit.
func (c *Controller) SetErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = msg
}

// SetNotice sets the page-level success message.
func (c *Controller) SetNotice(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = msg
}

// State returns a copy of everything a view needs.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Values:     maps.Clone(c.values),
		Errors:     maps.Clone(c.errors),
		Submitting: c.submitting,
		Err:        c.err,
		Notice:     c.notice,
	}
}

// Submit validates and, when the values are valid, calls send exactly once.
// Invalid values return ErrInvalid without calling send. A send failure is
// stored as the page error and returned.
func (c *Controller) Submit(ctx context.Context, send SendFunc) error {
	c.mu.Lock()
	c.submitting = true
	c.err = ""
	c.notice = ""
	values := maps.Clone(c.values)
	errs := c.opts.Rules.Validate(values)
	c.errors = errs
	if len(errs) > 0 {
		c.submitting = false
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "Form rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldFieldCount, len(errs))
		return ErrInvalid
	}
	c.mu.Unlock()

	err := send(ctx, values)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.err = c.opts.ErrorMessage(err)
		c.logger.WarnContext(ctx, "Form submit failed",
			log.NewFields().WithOperation(log.OpSubmit).WithError(err).ToSlice()...)
		return err
	}

	if c.opts.OnSuccess == ResetValues {
		c.values = maps.Clone(defaultsOf(c.opts))
	}
	if c.notice == "" {
		c.notice = c.opts.SuccessNotice
	}
	c.logger.DebugContext(ctx, "Form submitted", log.FieldOperation, log.OpSubmit)
	return nil
}
