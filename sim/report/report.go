// Package report renders simulation results for the CLI.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/invsim/invsim/sim"
)

// Format names an output format accepted by Render.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ValidFormats is the set of recognized output formats.
var ValidFormats = map[Format]bool{FormatText: true, FormatJSON: true, FormatCSV: true, FormatMarkdown: true}

// Render writes c to w in the given format.
func Render(w io.Writer, c *sim.Comparison, format Format) error {
	var out string
	switch format {
	case FormatText, "":
		out = RenderText(c)
	case FormatCSV:
		out = RenderCSV(c.Traditional, c.PAA)
	case FormatMarkdown:
		out = RenderMarkdown(c)
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding comparison: %w", err)
		}
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unknown output format %q; valid: text, json, csv, markdown", format)
	}
	_, err := io.WriteString(w, out)
	return err
}

// RenderResult writes a single-policy result to w in the given format.
func RenderResult(w io.Writer, r *sim.Result, format Format) error {
	var out string
	switch format {
	case FormatText, "":
		var sb strings.Builder
		r.Metrics.Print(&sb, r.Mode)
		if log := AgentLog(r); len(log) > 0 {
			sb.WriteString("\n=== Agent Logic Log ===\n")
			for _, line := range log {
				sb.WriteString(line + "\n")
			}
		}
		out = sb.String()
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatMarkdown:
		out = RenderResultMarkdown(r)
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unknown output format %q; valid: text, json, csv, markdown", format)
	}
	_, err := io.WriteString(w, out)
	return err
}

// RenderText renders both metric blocks and the agent logic log.
func RenderText(c *sim.Comparison) string {
	var sb strings.Builder
	for _, r := range []*sim.Result{c.Traditional, c.PAA} {
		if r == nil {
			continue
		}
		r.Metrics.Print(&sb, r.Mode)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("PAA vs Traditional: service %+.2f pts, cost %+.0f, resilience %+.2f\n",
		c.Deltas.ServiceLevel, c.Deltas.TotalCost, c.Deltas.ResilienceScore))
	if log := AgentLog(c.PAA); len(log) > 0 {
		sb.WriteString("\n=== Agent Logic Log ===\n")
		for _, line := range log {
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

// AgentLog returns "Day N: action" for every day a policy acted.
func AgentLog(r *sim.Result) []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, s := range r.Snapshots {
		if s.AgentAction != "" {
			out = append(out, fmt.Sprintf("Day %d: %s", s.Day, s.AgentAction))
		}
	}
	return out
}

// csvColumns is the header row written by WriteCSV.
var csvColumns = []string{
	"mode", "day", "demand", "inventory", "backorder",
	"fulfilled", "shipped", "cost", "is_disrupted", "agent_action",
}

// WriteCSV writes the daily snapshots of each result to w, one row per
// mode-day.
func WriteCSV(w io.Writer, results ...*sim.Result) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, s := range r.Snapshots {
			row := []string{
				string(r.Mode),
				strconv.Itoa(s.Day),
				formatUnits(s.Demand),
				formatUnits(s.Inventory),
				formatUnits(s.Backorder),
				formatUnits(s.Fulfilled),
				formatUnits(s.Shipped),
				strconv.FormatFloat(s.Cost, 'f', 2, 64),
				strconv.FormatBool(s.IsDisrupted),
				s.AgentAction,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing CSV row %s day %d: %w", r.Mode, s.Day, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// RenderCSV is WriteCSV into a string.
func RenderCSV(results ...*sim.Result) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	_ = WriteCSV(&sb, results...)
	return sb.String()
}

func formatUnits(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
