// Package client posts prepared images to the processing endpoint and turns
// whatever comes back into a Result. Submit never returns an error.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"go.uber.org/zap"

	"github.com/chaos-io/cutout/gateway"
	"github.com/chaos-io/cutout/prepare"
	nhttp "github.com/chaos-io/cutout/util/http"
)

const (
	MsgNetworkError = "Network or server error. Please try again."
	MsgGeneric      = "Something went wrong."
)

type Status int

const (
	StatusFailure Status = iota
	StatusSuccess
)

// Result is the outcome of one submission.
type Result struct {
	Status        Status
	OutputDataURI string
	Message       string
	DurationMs    *int64
}

func (r Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

func Success(outputDataURI string, durationMs *int64) Result {
	return Result{Status: StatusSuccess, OutputDataURI: outputDataURI, DurationMs: durationMs}
}

func Failure(message string, durationMs *int64) Result {
	return Result{Status: StatusFailure, Message: message, DurationMs: durationMs}
}

type Client struct {
	endpoint string
	cli      nhttp.IClient
	logger   *zap.Logger
}

func NewClient(endpoint string, cli nhttp.IClient, logger *zap.Logger) *Client {
	if cli == nil {
		cli = nhttp.NewHTTPClient()
	}
	return &Client{endpoint: endpoint, cli: cli, logger: logger.Named("upload_client")}
}

/*
Submit sends one request, equivalent to

	curl -X POST "$ENDPOINT" \
	  -F "action=remove_bg" \
	  -F "compress=@upload.png;type=image/png"

There is no retry.
*/
func (c *Client) Submit(ctx context.Context, upload *prepare.PreparedUpload) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submit panicked", zap.Any("panic", r))
			result = Failure(MsgNetworkError, nil)
		}
	}()

	if upload == nil {
		return Failure(MsgGeneric, nil)
	}

	body, contentType, err := buildBody(upload)
	if err != nil {
		c.logger.Error("build multipart body", zap.Error(err))
		return Failure(MsgGeneric, nil)
	}

	var resp gateway.Response
	reqParam := &nhttp.RequestParam{
		RequestURI: c.endpoint,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": contentType},
		Body:       body,
		Response:   &resp,
	}
	err = c.cli.DoHTTPRequest(ctx, reqParam)

	var statusErr *nhttp.StatusError
	if err != nil && !(errors.As(err, &statusErr) && resp.Status != "") {
		c.logger.Warn("processing request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return Failure(MsgNetworkError, nil)
	}

	c.logger.Debug("get the response", zap.String("status", resp.Status), zap.String("msg", resp.Msg))
	return parseResponse(resp)
}

func parseResponse(resp gateway.Response) Result {
	if resp.Status == gateway.StatusSuccess && resp.Output != "" {
		return Success(resp.Output, resp.DurationMs)
	}
	msg := resp.Msg
	if msg == "" {
		msg = MsgGeneric
	}
	return Failure(msg, resp.DurationMs)
}

func buildBody(upload *prepare.PreparedUpload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("action", gateway.ActionRemoveBackground); err != nil {
		return nil, "", fmt.Errorf("write action field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, gateway.FileField, upload.Filename))
	header.Set("Content-Type", upload.MediaType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", fmt.Errorf("copy form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
