package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
)

// EnableCmd should be used to represent the 'enable' command.
type EnableCmd struct {
	toggleCmd
}

// NewEnableCmd creates a newly configured (Cobra) command.
func NewEnableCmd(logger hclog.Logger) *cobra.Command {
	c := &EnableCmd{
		toggleCmd: toggleCmd{BaseCmd: &cmd.BaseCmd{Logger: logger}},
	}

	cobraCommand := &cobra.Command{
		Use:   "enable <server-name>",
		Short: "Enables an MCP server entry in its owning source file.",
		Long: `Enables an MCP server entry, writing the change to whichever source file
owns the entry. Administrator-managed entries cannot be toggled.`,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Scope,
		"scope",
		"",
		"Optional, disambiguate the server by scope (project, user, local)",
	)

	return cobraCommand
}

// run is configured (via NewEnableCmd) to be called by the Cobra framework
// when the command is executed.
func (c *EnableCmd) run(cobraCmd *cobra.Command, args []string) error {
	return c.runToggle(cobraCmd, args, true)
}
