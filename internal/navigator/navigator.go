// Package navigator decides which workspace a next/prev keypress moves to.
//
// A run is a single linear pass:
//
//	order parsed -> state queried -> filtered -> located/unlocated -> resolved/no-op -> dispatched
//
// Every empty-data branch ends in a successful no-op. The only errors a run
// returns come from the compositor collaborator itself, so callers can tell
// "nothing to do" apart from "the compositor link is broken".
//
// Key components:
//   - Filter: restricts the declared order to active workspaces on the focused monitor
//   - Locate: finds the focused workspace in the filtered list
//   - Resolve: applies the no-wrap step policy
//   - Navigator: runs the pipeline against a StateReader and Dispatcher
package navigator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/danieljhkim/hyprnav/internal/fsops"
	"github.com/danieljhkim/hyprnav/internal/order"
)

// Navigator runs the navigation pipeline.
// It holds no state between runs.
type Navigator struct {
	fs         fsops.FS
	sources    []string
	reader     StateReader
	dispatcher Dispatcher
	logger     *slog.Logger
}

// New creates a Navigator reading workspace= rules from sources.
// A nil logger discards all output.
func New(fs fsops.FS, sources []string, reader StateReader, dispatcher Dispatcher, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Navigator{
		fs:         fs,
		sources:    sources,
		reader:     reader,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run performs one navigation step in dir.
func (n *Navigator) Run(ctx context.Context, dir Direction) (*Outcome, error) {
	out := &Outcome{Direction: dir, Index: -1}

	declared, err := order.LoadAll(n.fs, n.sources)
	if err != nil {
		n.logger.Debug("config unavailable", "error", err)
	}
	out.Order = declared

	monitor, err := n.reader.FocusedMonitor(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to query focused monitor: %w", err)
	}
	out.FocusedMonitor = monitor

	current, err := n.reader.CurrentWorkspace(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to query current workspace: %w", err)
	}
	out.Current = current

	workspaces, err := n.reader.Workspaces(ctx)
	if err != nil {
		return out, fmt.Errorf("failed to query workspaces: %w", err)
	}

	out.Filtered = Filter(declared, workspaces, monitor)
	if len(out.Filtered) == 0 {
		out.Reason = ReasonNoActiveWorkspaces
		n.logOutcome(out)
		return out, nil
	}

	out.Index, out.Located = Locate(out.Filtered, current)

	target, ok := Resolve(out.Filtered, out.Index, out.Located, dir)
	if !ok {
		out.Reason = ReasonBoundaryReached
		n.logOutcome(out)
		return out, nil
	}
	out.Target = target

	if err := n.dispatcher.FocusWorkspace(ctx, target); err != nil {
		return out, fmt.Errorf("failed to focus workspace %s: %w", target, err)
	}
	out.Dispatched = true
	n.logOutcome(out)
	return out, nil
}

func (n *Navigator) logOutcome(out *Outcome) {
	n.logger.Debug("navigation finished",
		"direction", out.Direction,
		"monitor", out.FocusedMonitor,
		"current", out.Current,
		"order", out.Order,
		"filtered", out.Filtered,
		"located", out.Located,
		"target", out.Target,
		"dispatched", out.Dispatched,
		"reason", out.Reason,
	)
}
