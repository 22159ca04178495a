package ui

// Reduce returns the state after e. It never mutates s.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case ImageAccepted:
		s.Generation++
		s.Phase = PhaseImageSelected
		s.ActiveTab = TabOriginal
		s.Loading = false
		s.RemovedEnabled = false
		s.DownloadEnabled = false
		s.DownloadURI = ""
		if s.Alert != nil && s.Alert.Kind == AlertLoading {
			s.Alert = nil
		}

	case ImageRejected:
		s = withAlert(s, AlertWarning, e.Reason)

	case SubmitWithoutImage:
		s = withAlert(s, AlertWarning, MsgNoImage)

	case SubmitStarted:
		if !s.CanSubmit() {
			return s
		}
		s.Generation = e.Token
		s.Phase = PhaseSubmitting
		s.Loading = true
		s = withAlert(s, AlertLoading, MsgProcessing)

	case ResultArrived:
		if e.Token != s.Generation || s.Phase != PhaseSubmitting {
			return s
		}
		s.Loading = false
		if e.Result.Succeeded() {
			s.Phase = PhaseResultReady
			s.ActiveTab = TabRemoved
			s.RemovedEnabled = true
			s.DownloadEnabled = true
			s.DownloadURI = e.Result.OutputDataURI
			s = withAlert(s, AlertSuccess, MsgRemoved)
		} else {
			s = failed(s, e.Result.Message)
		}

	case SubmitAborted:
		if e.Token != s.Generation || s.Phase != PhaseSubmitting {
			return s
		}
		s.Loading = false
		s = failed(s, e.Message)

	case TabClicked:
		if e.Tab == TabRemoved && !s.RemovedEnabled {
			return s
		}
		s.ActiveTab = e.Tab

	case AlertExpired:
		if s.Alert != nil && s.Alert.Seq == e.Seq && s.Alert.Kind != AlertLoading {
			s.Alert = nil
		}
	}
	return s
}

func failed(s State, msg string) State {
	s.Phase = PhaseResultFailed
	s.ActiveTab = TabOriginal
	s.RemovedEnabled = false
	s.DownloadEnabled = false
	s.DownloadURI = ""
	return withAlert(s, AlertDanger, msg)
}

func withAlert(s State, kind AlertKind, msg string) State {
	s.alertSeq++
	s.Alert = &Alert{Kind: kind, Message: msg, Seq: s.alertSeq}
	return s
}
