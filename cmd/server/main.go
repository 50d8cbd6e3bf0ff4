package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "planboard/docs"
	"planboard/internal/config"
	"planboard/internal/server"
)

// @title           Planboard API
// @version         1.0
// @description     Project views, render frames and drag-and-drop events over HTTP.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir, port string

	cmd := &cobra.Command{
		Use:          "planboard",
		Short:        "Serve a planboard workspace loaded from JSON files",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("port") {
				cfg.ServerPort = port
			}

			s, err := server.Init(cfg)
			if err != nil {
				logrus.Errorf("❌ Server initialization failed: %v", err)
				return err
			}
			s.Run()
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "", "directory holding the workspace JSON collections (overrides DATA_DIR)")
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides SERVER_PORT)")
	return cmd
}
