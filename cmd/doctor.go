package cmd

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mcpscope/mcpscope/internal/cmd"
	"github.com/mcpscope/mcpscope/internal/printer"
	"github.com/mcpscope/mcpscope/internal/validate"
)

// DoctorCmd should be used to represent the 'doctor' command.
type DoctorCmd struct {
	*cmd.BaseCmd
	Format cmd.OutputFormat
}

// NewDoctorCmd creates a newly configured (Cobra) command.
func NewDoctorCmd(logger hclog.Logger) *cobra.Command {
	c := &DoctorCmd{
		BaseCmd: &cmd.BaseCmd{Logger: logger},
	}

	cobraCommand := &cobra.Command{
		Use:   "doctor",
		Short: "Validates every source file against its expected shape.",
		Long: `Validates every configuration source file against its expected shape and
reports anything malformed. Problems reported here never stop aggregation;
a malformed file simply contributes no entries.`,
		RunE: c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand
}

// run is configured (via NewDoctorCmd) to be called by the Cobra framework
// when the command is executed.
func (c *DoctorCmd) run(cobraCmd *cobra.Command, _ []string) error {
	_, paths, err := loadRuntime()
	if err != nil {
		return err
	}

	reports := validate.CheckAll(paths)

	handler := formatHandler(c.Format, cobraCmd.OutOrStdout(), printer.NewFileReportPrinter())
	if err := handler.HandleResults(reports...); err != nil {
		return err
	}

	for _, report := range reports {
		if !report.OK() {
			return fmt.Errorf("validation found problems in %s", report.File)
		}
	}

	return nil
}
