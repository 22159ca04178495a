package ui

import (
	"fmt"
	"io"
	"sync"
)

// Renderer receives every State the Controller settles on.
type Renderer interface {
	Render(s State)
}

type RendererFunc func(s State)

func (f RendererFunc) Render(s State) { f(s) }

// TextRenderer prints one line per state change, e.g.
//
//	[submitting] tab=original removed=off download=off | loading: Processing your image…
type TextRenderer struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(s State) {
	v := Project(s)
	line := fmt.Sprintf("[%s] tab=%s removed=%s download=%s", s.Phase, v.ActiveTab, onOff(!v.RemovedTabDisabled), onOff(!v.DownloadDisabled))
	if v.AlertVisible {
		line += fmt.Sprintf(" | %s: %s", v.AlertKind, v.AlertMessage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if line == r.last {
		return
	}
	r.last = line
	_, _ = fmt.Fprintln(r.w, line)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
