package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/loader"
	"github.com/five82/pantry/internal/ui"
)

// Check loads the overview once and writes a report to w. Logs go to logw,
// or stderr when logw is nil. degraded is true when any read did not succeed.
func Check(ctx context.Context, opts Options, w, logw io.Writer) (degraded bool, err error) {
	s, err := loadSettings(opts)
	if err != nil {
		return false, err
	}
	if logw == nil {
		logw = os.Stderr
	}
	log, closeLog, err := newLogger(s.cfg, logw)
	if err != nil {
		return false, err
	}
	defer func() { _ = closeLog() }()

	client, err := newClient(s.cfg, log)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout*2)
	defer cancel()
	o := loader.LoadOverview(ctx, client, api.NewListRequest(ui.ActivityLimit))
	gate := client.Reachability()

	state := "online"
	if gate.Offline() {
		state = "offline"
	}
	if _, err := fmt.Fprintf(w, "backend  %s\nstate    %s (%s)\nhealth   %s\n\n",
		client.BaseURL(), state, gate.State, statusOr(o.Health.Value.Status)); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("READ", "OUTCOME", "DETAIL").
		Rows(
			reportRow("health", o.Health.Outcome, o.Health.Err, o.Health.Value.Version),
			reportRow("system", o.System.Outcome, o.System.Err, o.System.Value.Uptime),
			reportRow("tables", o.Tables.Outcome, o.Tables.Err, strconv.Itoa(len(o.Tables.Value))+" tables"),
			reportRow("resources", o.Resources.Outcome, o.Resources.Err, ""),
			reportRow("endpoints", o.Endpoints.Outcome, o.Endpoints.Err, endpointSummary(o.Endpoints.Value)),
			reportRow("activities", o.Activities.Outcome, o.Activities.Err, strconv.Itoa(o.Activities.Value.Total)+" total"),
		)
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}

	log.Debug().Bool("degraded", o.Degraded()).Msg("check finished")
	return o.Degraded(), nil
}

func reportRow(name string, outcome api.Outcome, err error, detail string) []string {
	if err != nil {
		detail = err.Error()
	}
	return []string{name, outcome.String(), detail}
}

func endpointSummary(endpoints []api.Endpoint) string {
	up := 0
	for _, e := range endpoints {
		if e.Up() {
			up++
		}
	}
	return fmt.Sprintf("%d/%d up", up, len(endpoints))
}

func statusOr(status string) string {
	if status == "" {
		return "unknown"
	}
	return status
}
