package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/adapter/api"
	mcpadapter "github.com/felixgeelhaar/taskrank/adapter/mcp"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}

		cfg := api.DefaultServerConfig()
		cfg.Addr = c.Config.HTTPAddr
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		cfg.CORSOrigins = c.Config.CORSOrigins
		server := api.NewServer(cfg, c)

		errCh := make(chan error, 1)
		go func() { errCh <- server.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage the taskrank MCP interface",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}

		err = mcpadapter.Serve(cmd.Context(), mcpadapter.ServeConfig{
			Addr:      c.Config.MCPAddr,
			AuthToken: c.Config.MCPAuthToken,
			Version:   Version,
		}, mcpadapter.DependenciesFrom(c), getLogger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)

	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
