package ui

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/chaos-io/cutout/client"
	"github.com/chaos-io/cutout/policy"
	"github.com/chaos-io/cutout/prepare"
)

type Preparer interface {
	Prepare(img prepare.SelectedImage) (*prepare.PreparedUpload, error)
}

type Uploader interface {
	Submit(ctx context.Context, upload *prepare.PreparedUpload) client.Result
}

// Controller is the only writer of State. It is safe for concurrent use;
// the Renderer is called with the controller's lock held and must not call
// back into it.
type Controller struct {
	mu       sync.Mutex
	state    State
	selected *prepare.SelectedImage
	timer    Timer

	policy   policy.Policy
	preparer Preparer
	uploader Uploader
	renderer Renderer
	clock    Clock
	logger   *zap.Logger
}

type Option func(*Controller)

func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithPolicy(p policy.Policy) Option {
	return func(c *Controller) { c.policy = p }
}

func NewController(preparer Preparer, uploader Uploader, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		policy:   policy.Default(),
		preparer: preparer,
		uploader: uploader,
		renderer: RendererFunc(func(State) {}),
		clock:    RealClock(),
		logger:   logger.Named("ui"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the current selection, or nil before the first accepted one.
func (c *Controller) Selected() *prepare.SelectedImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil
	}
	img := *c.selected
	return &img
}

// Select replaces the selection when img passes the declared-type and size
// checks. A rejected file leaves the previous selection and phase untouched
// and raises a warning; the rejection is also returned.
func (c *Controller) Select(img prepare.SelectedImage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.policy.ValidateDeclared(img.MediaType, img.Size); err != nil {
		reason := err.Error()
		var rej *policy.Rejection
		if errors.As(err, &rej) {
			reason = rej.Reason
		}
		c.dispatchLocked(ImageRejected{Reason: reason})
		return err
	}

	c.selected = &img
	c.dispatchLocked(ImageAccepted{})
	return nil
}

// ClickTab switches the preview tab. The removed tab cannot be chosen until a result is ready.
func (c *Controller) ClickTab(t Tab) {
	c.dispatch(TabClicked{Tab: t})
}

// Submit prepares the selected image, uploads it and applies the outcome. It
// blocks until the outcome is known and returns the state after it. Loading is
// cleared on every exit path, panics included. If another image was selected
// meanwhile, the outcome is discarded.
func (c *Controller) Submit(ctx context.Context) (s State) {
	c.mu.Lock()
	if c.selected == nil {
		c.dispatchLocked(SubmitWithoutImage{})
		defer c.mu.Unlock()
		return c.state
	}
	if !c.state.CanSubmit() {
		defer c.mu.Unlock()
		return c.state
	}
	img := *c.selected
	token := c.state.Generation + 1
	c.dispatchLocked(SubmitStarted{Token: token})
	c.mu.Unlock()

	resolved := false
	defer func() {
		if !resolved {
			if r := recover(); r != nil {
				c.logger.Error("submit panicked", zap.Any("panic", r))
			}
			c.dispatch(SubmitAborted{Token: token, Message: client.MsgNetworkError})
		}
		s = c.State()
	}()

	upload, err := c.preparer.Prepare(img)
	if err != nil {
		c.logger.Warn("prepare image", zap.String("name", img.Name), zap.Error(err))
		c.dispatch(SubmitAborted{Token: token, Message: MsgUnreadable})
		resolved = true
		return
	}

	result := c.uploader.Submit(ctx, upload)
	c.dispatch(ResultArrived{Token: token, Result: result})
	resolved = true
	return
}

// Close stops a pending alert timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) dispatch(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(e)
}

func (c *Controller) dispatchLocked(e Event) {
	prev := c.state
	c.state = Reduce(prev, e)

	if c.state.Alert != prev.Alert {
		c.scheduleDismissLocked()
	}
	if c.state != prev {
		c.renderer.Render(c.state)
	}
}

func (c *Controller) scheduleDismissLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	alert := c.state.Alert
	if alert == nil || alert.Kind == AlertLoading {
		return
	}
	seq := alert.Seq
	c.timer = c.clock.AfterFunc(AlertTimeout, func() {
		c.dispatch(AlertExpired{Seq: seq})
	})
}
