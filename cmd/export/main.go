// Command export copies an employee document to a directory, file path or
// s3:// object without starting the editor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/firepolicepension/jsoneditor/internal/config"
	"github.com/firepolicepension/jsoneditor/internal/export"
	"github.com/firepolicepension/jsoneditor/internal/storage"
	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newExportCmd(config.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <documentPath> <destination>",
		Short: "Copy the employee document to a path or s3://bucket/key",
		Example: `  export ~/Documents/employees.json ~/Library/App/Documents
  export ~/Documents/employees.json s3://pension-data/2025/`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(v, args[:1])
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := runExport(ctx, cfg, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message())
			return nil
		},
	}
	cmd.Flags().String("log-level", "", "debug|info|warn|error")
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	return cmd
}

func runExport(ctx context.Context, cfg *config.Config, dest string) (export.Result, error) {
	var uploader export.Uploader
	if storage.IsObjectURL(dest) && cfg.MinIO.Enabled() {
		store, err := storage.NewObjectStore(&cfg.MinIO)
		if err != nil {
			return export.Result{}, err
		}
		uploader = store
	}

	res, err := export.New(cfg.Document.Path, uploader).Export(ctx, dest)
	if err != nil {
		logger.Errorf("export %s -> %s (%s): %v", cfg.Document.Path, dest, export.SinkFor(dest), err)
		return res, err
	}
	logger.Infow("exported", "source", cfg.Document.Path, "sink", res.Sink, "target", res.Target)
	return res, nil
}
