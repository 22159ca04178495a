package gateway

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chaos-io/cutout/internal/logging"
	"github.com/chaos-io/cutout/policy"
	"github.com/chaos-io/cutout/rembg"
	"github.com/chaos-io/cutout/util"
)

// DefaultMaxBodyBytes leaves room above the 3 MiB file cap so oversized files
// still reach the size rule and get its message.
const DefaultMaxBodyBytes = 8 << 20

type Handler struct {
	policy    policy.Policy
	remover   rembg.BackgroundRemover
	uploadDir string
	maxBody   int64
	logger    *zap.Logger
}

func NewHandler(remover rembg.BackgroundRemover, uploadDir string, maxBody int64, logger *zap.Logger) *Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handler{
		policy:    policy.Default(),
		remover:   remover,
		uploadDir: uploadDir,
		maxBody:   maxBody,
		logger:    logger.Named("gateway"),
	}
}

// NewRouter builds a gin engine with recovery, request logging and the gateway routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = h.maxBody
	router.Use(RequestLogger(h.logger), gin.Recovery())
	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Any("/process", h.Process)
}

// Process validates the upload, hands it to the removal process and maps the
// outcome onto a Response. Checks run in order and the first failure ends the request.
func (h *Handler) Process(c *gin.Context) {
	requestID := RequestID(c)
	opLogger := logging.WithOperation(h.logger, "gateway.process", requestID)

	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, errorResponse(msgInvalidMethod))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	form, formErr := c.MultipartForm()

	var tooBig *http.MaxBytesError
	if errors.As(formErr, &tooBig) {
		opLogger.Info("request body over limit", zap.Int64("limit", tooBig.Limit))
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse(msgUploadFailed))
		return
	}

	if c.PostForm("action") != ActionRemoveBackground {
		c.JSON(http.StatusBadRequest, errorResponse(msgUnknownAction))
		return
	}

	fh := pickFile(form)
	if formErr != nil || fh == nil {
		opLogger.Info("no usable upload", zap.Error(formErr))
		c.JSON(http.StatusBadRequest, errorResponse(msgUploadFailed))
		return
	}

	src, err := fh.Open()
	if err != nil {
		opLogger.Warn("open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse(msgUploadFailed))
		return
	}
	defer func() {
		_ = src.Close()
	}()

	if err := h.policy.ValidateContent(src, fh.Size); err != nil {
		var rej *policy.Rejection
		if !errors.As(err, &rej) {
			opLogger.Warn("inspect upload", zap.Error(err))
			c.JSON(http.StatusBadRequest, errorResponse(msgUploadFailed))
			return
		}
		status := http.StatusUnsupportedMediaType
		if errors.Is(err, policy.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		opLogger.Info("upload rejected", zap.String("reason", rej.Reason), zap.Int64("size", fh.Size))
		c.JSON(status, errorResponse(rej.Reason))
		return
	}

	path, err := h.stage(src, requestID)
	if err != nil {
		opLogger.Error("stage upload", zap.Error(logging.NewOperationError("gateway.stage", requestID, err)))
		c.JSON(http.StatusInternalServerError, errorResponse(msgUploadFailed))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			opLogger.Warn("remove staged upload", zap.String("path", path), zap.Error(err))
		}
	}()

	res := h.remover.Remove(c.Request.Context(), path)
	if !res.OK() {
		opLogger.Info("background removal failed", zap.Error(res.Err), zap.Duration("elapsed", res.Elapsed))
		resp := errorResponse(msgProcessingFailed)
		resp.DurationMs = durationMs(res.Elapsed)
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	opLogger.Info("background removed", zap.Duration("elapsed", res.Elapsed))
	c.JSON(http.StatusOK, Response{
		Status:     StatusSuccess,
		Msg:        msgRemoved,
		Output:     util.PNGDataURI(res.Image),
		DurationMs: durationMs(res.Elapsed),
	})
}

// stage copies the upload to a file the external process can open by path.
func (h *Handler) stage(src multipart.File, requestID string) (string, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(h.uploadDir, 0o700); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(h.uploadDir, TempPrefix+requestID+extensionFor(policy.Sniff(head[:n])))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}
	return path, nil
}

// pickFile returns the FileField upload, or the only file when there is exactly one.
func pickFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if fhs := form.File[FileField]; len(fhs) > 0 {
		return fhs[0]
	}
	if len(form.File) != 1 {
		return nil
	}
	for _, fhs := range form.File {
		if len(fhs) == 1 {
			return fhs[0]
		}
	}
	return nil
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case policy.MediaTypePNG:
		return ".png"
	case policy.MediaTypeJPEG:
		return ".jpg"
	}
	return ""
}
