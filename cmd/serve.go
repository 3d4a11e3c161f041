package cmd

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/api"
	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/config"
)

// ServeCmd should be used to represent the 'serve' command.
type ServeCmd struct {
	*cmd.BaseCmd
	Addr string
}

// NewServeCmd creates a newly configured (Cobra) command.
func NewServeCmd(logger hclog.Logger) *cobra.Command {
	c := &ServeCmd{
		BaseCmd: &cmd.BaseCmd{Logger: logger},
	}

	cobraCommand := &cobra.Command{
		Use:   "serve [--addr]",
		Short: "Serves the aggregated entries and their health over a read-only HTTP API.",
		Long: `Serves the aggregated entries and their cached health results over a
read-only HTTP API. Toggling stays in the CLI; the API never mutates any
source file.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Addr,
		"addr",
		"",
		fmt.Sprintf("Address for the API server to bind (default %s)", config.DefaultAPIAddr),
	)

	return cobraCommand
}

// run is configured (via NewServeCmd) to be called by the Cobra framework when
// the command is executed.
func (c *ServeCmd) run(_ *cobra.Command, _ []string) error {
	settings, paths, err := loadRuntime()
	if err != nil {
		return err
	}

	logger := c.NamedLogger("serve")

	engine, err := newEngine(logger, settings)
	if err != nil {
		return err
	}

	aggregator := config.NewAggregator(logger, paths)

	apiSettings := settings.API
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		apiSettings.Addr = addr
	}

	server, err := api.NewServer(logger, aggregator, engine, apiSettings)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	serveCtx, serveCtxCancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer serveCtxCancel()

	if err := server.Start(serveCtx); err != nil && !stdErrors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
