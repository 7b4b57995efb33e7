package bootstrap

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/linqkit/logger"
)

// SettingInfo is one line of the startup summary.
type SettingInfo struct {
	Name    string
	Value   string
	Enabled bool
}

// PipelineInfo describes a pipeline registered for display.
type PipelineInfo struct {
	Name   string
	Stages int
}

// Summary tracks and displays the application startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	settings        []SettingInfo
	telemetry       []SettingInfo
	pipelines       []PipelineInfo
}

// NewSummary creates a new startup summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetSettings records the effective settings shown in the summary.
func (s *Summary) SetSettings(st *Settings) {
	s.settings = []SettingInfo{
		{Name: "environment", Value: st.Base.Environment, Enabled: true},
		{Name: "logger", Value: st.Logger.Level + "/" + st.Logger.Format, Enabled: true},
		{Name: "isolation", Value: st.Enumerable.Isolation, Enabled: true},
		{Name: "operation logging", Value: fmt.Sprint(st.Enumerable.LogOperations), Enabled: st.Enumerable.LogOperations},
		{Name: "loggers", Value: strings.Join(logger.Names(), ", "), Enabled: true},
	}
	obs := st.Observability
	s.telemetry = []SettingInfo{
		{Name: "tracing", Value: fmt.Sprintf("%s (sample %.2f)", obs.Endpoint, obs.TracerConfig().SampleRate), Enabled: obs.TracingEnabled},
		{Name: "metrics", Value: fmt.Sprintf("%s (every %s)", obs.Endpoint, obs.Interval), Enabled: obs.MetricsEnabled},
	}
}

// TrackPipeline records a pipeline the application will run.
func (s *Summary) TrackPipeline(name string, stages int) {
	s.pipelines = append(s.pipelines, PipelineInfo{Name: name, Stages: stages})
}

// Display writes the summary to w.
func (s *Summary) Display(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.settings) > 0 {
		fmt.Fprintf(w, "⚙️  Settings\n")
		writeTree(w, s.settings)
		fmt.Fprintf(w, "\n")
	}

	if len(s.telemetry) > 0 {
		fmt.Fprintf(w, "📊 Telemetry\n")
		writeTree(w, s.telemetry)
		fmt.Fprintf(w, "\n")
	}

	if len(s.pipelines) > 0 {
		fmt.Fprintf(w, "🔗 Pipelines (%d)\n", len(s.pipelines))
		for i, p := range s.pipelines {
			fmt.Fprintf(w, "   %s %s (%d stages)\n", treePrefix(i, len(s.pipelines)), p.Name, p.Stages)
		}
		fmt.Fprintf(w, "\n")
	}
}

func writeTree(w io.Writer, items []SettingInfo) {
	for i, item := range items {
		fmt.Fprintf(w, "   %s %s %s: %s\n", treePrefix(i, len(items)), statusIcon(item.Enabled), item.Name, item.Value)
	}
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(enabled bool) string {
	if enabled {
		return "✅"
	}
	return "⏸️"
}
