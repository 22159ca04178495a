// Package ui holds the page state machine. Reduce is a pure transition
// function over State, Project derives what a display should show, and
// Controller drives both from user actions and pipeline results.
package ui

import "github.com/chaos-io/cutout/client"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseImageSelected
	PhaseSubmitting
	PhaseResultReady
	PhaseResultFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseImageSelected:
		return "image_selected"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResultReady:
		return "result_ready"
	case PhaseResultFailed:
		return "result_failed"
	}
	return "unknown"
}

type Tab int

const (
	TabOriginal Tab = iota
	TabRemoved
)

func (t Tab) String() string {
	if t == TabRemoved {
		return "removed"
	}
	return "original"
}

type AlertKind string

const (
	AlertInfo    AlertKind = "info"
	AlertLoading AlertKind = "loading"
	AlertSuccess AlertKind = "success"
	AlertWarning AlertKind = "warning"
	AlertDanger  AlertKind = "danger"
)

type Alert struct {
	Kind    AlertKind
	Message string
	// Seq identifies this alert so a late dismiss timer cannot clear a newer one.
	Seq uint64
}

const (
	MsgNoImage    = "Please upload an image first."
	MsgProcessing = "Processing your image…"
	MsgRemoved    = "Background removed successfully."
	MsgUnreadable = "Could not read this image. Please try another file."
)

// State is the whole page state. Only Reduce produces new values.
type State struct {
	Phase           Phase
	ActiveTab       Tab
	Loading         bool
	RemovedEnabled  bool
	DownloadEnabled bool
	DownloadURI     string
	Alert           *Alert
	// Generation increases on every accepted selection and every submit;
	// results carrying an older token are dropped.
	Generation uint64
	alertSeq   uint64
}

// Event is anything Reduce reacts to.
type Event interface {
	isEvent()
}

type (
	ImageAccepted      struct{}
	ImageRejected      struct{ Reason string }
	SubmitWithoutImage struct{}
	SubmitStarted      struct{ Token uint64 }
	ResultArrived      struct {
		Token  uint64
		Result client.Result
	}
	SubmitAborted struct {
		Token   uint64
		Message string
	}
	TabClicked   struct{ Tab Tab }
	AlertExpired struct{ Seq uint64 }
)

func (ImageAccepted) isEvent()      {}
func (ImageRejected) isEvent()      {}
func (SubmitWithoutImage) isEvent() {}
func (SubmitStarted) isEvent()      {}
func (ResultArrived) isEvent()      {}
func (SubmitAborted) isEvent()      {}
func (TabClicked) isEvent()         {}
func (AlertExpired) isEvent()       {}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	switch s.Phase {
	case PhaseImageSelected, PhaseResultReady, PhaseResultFailed:
		return true
	}
	return false
}
