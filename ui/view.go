package ui

const (
	ButtonIdle    = "Remove Background"
	ButtonLoading = "Removing…"
	DownloadName  = "removed-background.png"
)

// View is what a display shows for a State.
type View struct {
	ButtonText     string
	ButtonDisabled bool
	SpinnerVisible bool

	ActiveTab          Tab
	RemovedTabDisabled bool

	DownloadHref     string
	DownloadName     string
	DownloadDisabled bool

	AlertVisible bool
	AlertKind    AlertKind
	AlertMessage string
}

// Project derives the View for s.
func Project(s State) View {
	v := View{
		ButtonText:         ButtonIdle,
		ButtonDisabled:     !s.CanSubmit(),
		SpinnerVisible:     s.Loading,
		ActiveTab:          s.ActiveTab,
		RemovedTabDisabled: !s.RemovedEnabled,
		DownloadHref:       "#",
		DownloadDisabled:   true,
	}
	if s.Loading {
		v.ButtonText = ButtonLoading
		v.ButtonDisabled = true
	}
	if s.DownloadEnabled && s.DownloadURI != "" {
		v.DownloadHref = s.DownloadURI
		v.DownloadName = DownloadName
		v.DownloadDisabled = false
	}
	if s.Alert != nil {
		v.AlertVisible = true
		v.AlertKind = s.Alert.Kind
		v.AlertMessage = s.Alert.Message
	}
	return v
}
