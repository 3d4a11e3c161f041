// Package validate checks the on-disk source files against their expected
// shapes, powering the doctor command. Validation is advisory: aggregation
// remains tolerant of everything reported here.
package validate

import (
	"embed"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mcpscope/mcpscope/internal/config"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema names, resolved against the embedded schema files.
const (
	SchemaServers        = "servers"
	SchemaLocalSettings  = "local_settings"
	SchemaSharedSettings = "shared_settings"
	SchemaPluginRegistry = "plugin_registry"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem detected in a source file.
type Finding struct {
	File     string   `json:"file"     yaml:"file"`
	Severity Severity `json:"severity" yaml:"severity"`
	Field    string   `json:"field,omitempty" yaml:"field,omitempty"`
	Detail   string   `json:"detail"   yaml:"detail"`
}

// FileReport summarizes the validation of one source file.
type FileReport struct {
	File     string    `json:"file"            yaml:"file"`
	Present  bool      `json:"present"         yaml:"present"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// OK reports whether the file validated cleanly. Absent files are fine:
// every source is optional.
func (r FileReport) OK() bool {
	return len(r.Findings) == 0
}

// CheckAll validates every source file the given paths resolve to and
// returns one report per file, in a fixed order.
func CheckAll(paths config.Paths) []FileReport {
	checks := []struct {
		file   string
		schema string
	}{
		{paths.ProjectFile, SchemaServers},
		{paths.LocalSettingsFile, SchemaLocalSettings},
		{paths.UserStoreFile, SchemaServers},
		{paths.ManagedFile, SchemaServers},
		{paths.PluginRegistryFile, SchemaPluginRegistry},
		{paths.SharedSettingsFile, SchemaSharedSettings},
	}

	reports := make([]FileReport, 0, len(checks))
	for _, check := range checks {
		reports = append(reports, CheckFile(check.file, check.schema))
	}

	return reports
}

// CheckFile validates a single file against the named embedded schema.
func CheckFile(path string, schemaName string) FileReport {
	report := FileReport{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return report
		}

		report.Present = true
		report.Findings = append(report.Findings, Finding{
			File:     path,
			Severity: SeverityError,
			Detail:   fmt.Sprintf("cannot read file: %v", err),
		})

		return report
	}
	report.Present = true

	schemaData, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", schemaName))
	if err != nil {
		report.Findings = append(report.Findings, Finding{
			File:     path,
			Severity: SeverityError,
			Detail:   fmt.Sprintf("schema %q unavailable: %v", schemaName, err),
		})

		return report
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		// Validate fails outright on malformed JSON documents.
		report.Findings = append(report.Findings, Finding{
			File:     path,
			Severity: SeverityError,
			Detail:   fmt.Sprintf("not valid JSON: %v", err),
		})

		return report
	}

	for _, issue := range result.Errors() {
		report.Findings = append(report.Findings, Finding{
			File:     path,
			Severity: SeverityWarning,
			Field:    issue.Field(),
			Detail:   issue.Description(),
		})
	}

	return report
}
