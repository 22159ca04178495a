package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cutout",
		Short: "Remove image backgrounds through a local rembg script",
		Long: `Cutout accepts PNG or JPEG images, hands them to a Python rembg script
and returns the cut-out as a PNG.

"serve" runs the HTTP gateway. "remove" uploads a local file to a running
gateway the same way the web page does.

Settings come from CUTOUT_* environment variables; a .env file in the
working directory is loaded first when present.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRemoveCmd())

	return cmd
}
