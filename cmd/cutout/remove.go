package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chaos-io/cutout/client"
	"github.com/chaos-io/cutout/internal/config"
	"github.com/chaos-io/cutout/internal/logging"
	"github.com/chaos-io/cutout/prepare"
	"github.com/chaos-io/cutout/ui"
	"github.com/chaos-io/cutout/util"
	nhttp "github.com/chaos-io/cutout/util/http"
)

func newRemoveCmd() *cobra.Command {
	var (
		out      string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "remove <image>",
		Short: "Upload an image to the gateway and save the cut-out",
		Long: `Runs the same steps as the web page: the file is checked, scaled down to
fit 800x600, re-encoded and posted to the gateway. Each state change is
printed; on success the PNG is written to --out.`,
		Example: `  cutout remove portrait.jpg
  cutout remove logo.png --out logo-cutout.png --endpoint http://10.0.0.5:8080/process`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.Endpoint = endpoint
			}

			logger, err := logging.NewLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()
			defer util.Trace(logger, "remove")()

			preparer := prepare.NewPreparer()
			preparer.Resample = prepare.ResamplerByName(cfg.Resampler)

			uploader := client.NewClient(cfg.Endpoint, nhttp.NewHTTPClientWithTimeout(cfg.RequestTimeout), logger)
			ctrl := ui.NewController(preparer, uploader, logger, ui.WithRenderer(ui.NewTextRenderer(cmd.OutOrStdout())))
			defer ctrl.Close()

			data, mediaType, err := util.ReadImageFile(args[0])
			if err != nil {
				return err
			}
			if err := ctrl.Select(prepare.NewSelectedImage(filepath.Base(args[0]), data, mediaType)); err != nil {
				return err
			}

			s := ctrl.Submit(cmd.Context())
			if s.Phase != ui.PhaseResultReady {
				if s.Alert != nil {
					return errors.New(s.Alert.Message)
				}
				return errors.New(client.MsgGeneric)
			}

			png, _, err := util.DecodeDataURI(s.DownloadURI)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			logger.Debug("result written", zap.String("path", out), zap.Int("bytes", len(png)))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ui.DownloadName, "Where to write the PNG")
	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "Gateway URL (overrides CUTOUT_ENDPOINT)")

	return cmd
}
