package gateway

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"

	ActionRemoveBackground = "remove_bg"
	// FileField is the preferred multipart field; a lone file under any other name is accepted too.
	FileField = "compress"
)

const (
	msgInvalidMethod    = "Invalid request method."
	msgUnknownAction    = "Unknown action."
	msgUploadFailed     = "No image uploaded or upload failed."
	msgProcessingFailed = "Processing failed. Try another image or a smaller one."
	msgRemoved          = "Background removed."
)

// Response is the JSON body of every /process reply.
type Response struct {
	Status     string `json:"status"`
	Msg        string `json:"msg"`
	Output     string `json:"output,omitempty"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
}

func errorResponse(msg string) Response {
	return Response{Status: StatusError, Msg: msg}
}

func durationMs(d time.Duration) *int64 {
	ms := d.Round(time.Millisecond).Milliseconds()
	return &ms
}
