package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chaos-io/cutout/gateway"
	"github.com/chaos-io/cutout/internal/config"
	"github.com/chaos-io/cutout/internal/logging"
	"github.com/chaos-io/cutout/internal/server"
	"github.com/chaos-io/cutout/rembg"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the background removal gateway",
		Long: `Starts the HTTP gateway. POST /process with action=remove_bg and a
"compress" file part runs the removal script on the upload.

The interpreter is CUTOUT_INTERPRETER when set, otherwise the venv under
CUTOUT_BASE_DIR when it exists, otherwise "python" from PATH.`,
		Example: `  # Start on the default :8080
  cutout serve

  # Use a custom address and script
  CUTOUT_SCRIPT=/srv/rembg/process.py cutout serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger, err := logging.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			interpreter := cfg.Interpreter
			if interpreter == "" {
				interpreter = rembg.ResolveInterpreter(cfg.BaseDir)
			}
			remover := rembg.NewProcessRemover(interpreter, cfg.ScriptPath(), logger, rembg.WithTimeout(cfg.ProcessTimeout))

			janitor, err := gateway.NewJanitor(cfg.UploadDir, cfg.SweepMaxAge, cfg.SweepSchedule, logger)
			if err != nil {
				return err
			}
			janitor.Start()
			defer janitor.Stop()

			gin.SetMode(gin.ReleaseMode)
			router := gateway.NewRouter(gateway.NewHandler(remover, cfg.UploadDir, cfg.MaxBodyBytes, logger))
			srv := &http.Server{
				Addr:    cfg.Addr,
				Handler: router,
			}

			logger.Info("gateway listening",
				zap.String("addr", cfg.Addr),
				zap.String("interpreter", interpreter),
				zap.String("script", cfg.ScriptPath()),
				zap.String("upload_dir", cfg.UploadDir))

			return server.Serve(cmd.Context(), srv, nil, cfg.ShutdownTimeout, logger)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides CUTOUT_ADDR)")

	return cmd
}
