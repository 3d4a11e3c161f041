// Package printer renders aggregated entries and their health for humans.
package printer

import (
	"fmt"
	"io"
	"time"

	"github.com/mcpscope/mcpscope/internal/cmd/output"
	"github.com/mcpscope/mcpscope/internal/config"
	"github.com/mcpscope/mcpscope/internal/health"
)

var _ output.Printer[EntryStatus] = (*EntryStatusPrinter)(nil)

// EntryStatus is the displayable view of one entry with its latest health
// result, shared by the text, JSON and YAML output paths.
type EntryStatus struct {
	Name     string          `json:"name"               yaml:"name"`
	Scope    config.Scope    `json:"scope"              yaml:"scope"`
	Enabled  bool            `json:"enabled"            yaml:"enabled"`
	PluginID string          `json:"pluginId,omitempty" yaml:"pluginId,omitempty"`
	Source   string          `json:"source"             yaml:"source"`
	Target   string          `json:"target"             yaml:"target"`
	Health   *health.Result  `json:"health,omitempty"   yaml:"health,omitempty"`
}

// NewEntryStatus builds the view for one entry. result may be nil when the
// entry has never been probed.
func NewEntryStatus(entry config.Entry, result *health.Result) EntryStatus {
	target := entry.Transport.URL
	if kind, err := entry.Transport.Kind(); err == nil && kind == config.TransportStdio {
		target = entry.Transport.Command
	}

	return EntryStatus{
		Name:     entry.Name,
		Scope:    entry.Scope,
		Enabled:  entry.Enabled,
		PluginID: entry.PluginID,
		Source:   entry.SourceFile,
		Target:   target,
		Health:   result,
	}
}

// EntryStatusPrinter renders EntryStatus rows as text.
type EntryStatusPrinter struct {
	headerFunc output.WriteFunc[EntryStatus]
	footerFunc output.WriteFunc[EntryStatus]

	// now is swappable for tests of the "checked Ns ago" rendering.
	now func() time.Time
}

// NewEntryStatusPrinter creates a text printer for entry status rows.
func NewEntryStatusPrinter() *EntryStatusPrinter {
	return &EntryStatusPrinter{now: time.Now}
}

func (p *EntryStatusPrinter) Header(w io.Writer, count int) {
	if p.headerFunc != nil {
		p.headerFunc(w, count)
		return
	}
	_, _ = fmt.Fprintf(w, "%d configured MCP server(s):\n\n", count)
}

func (p *EntryStatusPrinter) SetHeader(fn output.WriteFunc[EntryStatus]) {
	p.headerFunc = fn
}

func (p *EntryStatusPrinter) Item(w io.Writer, elem EntryStatus) error {
	state := "enabled"
	if !elem.Enabled {
		state = "disabled"
	}

	_, _ = fmt.Fprintf(w, "%s %s [%s, %s] %s\n", symbolFor(elem.Health), elem.Name, elem.Scope, state, elem.Target)

	if elem.PluginID != "" {
		_, _ = fmt.Fprintf(w, "    plugin: %s\n", elem.PluginID)
	}

	if elem.Health != nil {
		_, _ = fmt.Fprintf(w, "    status: %s%s (checked %s ago)\n",
			elem.Health.Status, latencySuffix(elem.Health), p.age(elem.Health.CheckedAt))

		if elem.Health.Error != "" {
			_, _ = fmt.Fprintf(w, "    error: %s\n", elem.Health.Error)
		}
	}

	return nil
}

func (p *EntryStatusPrinter) Footer(w io.Writer, count int) {
	if p.footerFunc != nil {
		p.footerFunc(w, count)
	}
}

func (p *EntryStatusPrinter) SetFooter(fn output.WriteFunc[EntryStatus]) {
	p.footerFunc = fn
}

func (p *EntryStatusPrinter) age(checkedAt time.Time) string {
	return p.now().Sub(checkedAt).Truncate(time.Second).String()
}

func symbolFor(result *health.Result) string {
	if result == nil {
		return "•"
	}

	switch {
	case result.Good():
		return "✓"
	case result.Status == health.StatusUnknown, result.Status == health.StatusChecking:
		return "•"
	default:
		return "✗"
	}
}

func latencySuffix(result *health.Result) string {
	if result.Latency == nil {
		return ""
	}
	return fmt.Sprintf(", %s", result.Latency.Truncate(time.Millisecond))
}
