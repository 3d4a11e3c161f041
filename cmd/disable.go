package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
)

// DisableCmd should be used to represent the 'disable' command.
type DisableCmd struct {
	toggleCmd
}

// NewDisableCmd creates a newly configured (Cobra) command.
func NewDisableCmd(logger hclog.Logger) *cobra.Command {
	c := &DisableCmd{
		toggleCmd: toggleCmd{BaseCmd: &cmd.BaseCmd{Logger: logger}},
	}

	cobraCommand := &cobra.Command{
		Use:   "disable <server-name>",
		Short: "Disables an MCP server entry in its owning source file.",
		Long: `Disables an MCP server entry, writing the change to whichever source file
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

// run is configured (via NewDisableCmd) to be called by the Cobra framework
// when the command is executed.
func (c *DisableCmd) run(cobraCmd *cobra.Command, args []string) error {
	return c.runToggle(cobraCmd, args, false)
}
