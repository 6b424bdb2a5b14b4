// Package hypr is hyprnav's Hyprland client.
//
// Client answers the three live-state queries the navigator needs and issues
// the single focus directive. Every call goes to the compositor; nothing is
// cached. Failures of the transport surface as *QueryError. A reply that
// arrives but cannot be decoded is treated as empty.
package hypr

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danieljhkim/hyprnav/internal/navigator"
	"github.com/danieljhkim/hyprnav/internal/order"
)

// Client implements navigator.StateReader and navigator.Dispatcher.
type Client struct {
	transport Transport
	logger    *slog.Logger
}

var (
	_ navigator.StateReader = (*Client)(nil)
	_ navigator.Dispatcher  = (*Client)(nil)
)

// NewClient creates a Client over transport. A nil logger discards output.
func NewClient(transport Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{transport: transport, logger: logger}
}

// FocusedMonitor returns the name of the monitor flagged as focused.
func (c *Client) FocusedMonitor(ctx context.Context) (string, error) {
	var monitors []monitorReply
	if err := c.queryJSON(ctx, "monitors", &monitors); err != nil {
		return "", err
	}
	for _, m := range monitors {
		if m.Focused {
			return m.Name, nil
		}
	}
	return "", nil
}

// CurrentWorkspace returns the canonical identifier of the active workspace.
func (c *Client) CurrentWorkspace(ctx context.Context) (string, error) {
	var ws workspaceReply
	if err := c.queryJSON(ctx, "activeworkspace", &ws); err != nil {
		return "", err
	}
	return workspaceID(ws.ID, ws.Name), nil
}

// Workspaces returns every workspace Hyprland knows about.
func (c *Client) Workspaces(ctx context.Context) ([]navigator.Workspace, error) {
	var replies []workspaceReply
	if err := c.queryJSON(ctx, "workspaces", &replies); err != nil {
		return nil, err
	}
	out := make([]navigator.Workspace, 0, len(replies))
	for _, ws := range replies {
		out = append(out, navigator.Workspace{
			ID:      workspaceID(ws.ID, ws.Name),
			Monitor: ws.Monitor,
			Windows: ws.Windows,
		})
	}
	return out, nil
}

// FocusWorkspace dispatches a workspace switch to id.
func (c *Client) FocusWorkspace(ctx context.Context, id string) error {
	reply, err := c.transport.Request(ctx, "dispatch workspace "+DispatchArg(id), false)
	if err != nil {
		return err
	}
	if msg := strings.TrimSpace(string(reply)); msg != "" && msg != "ok" {
		c.logger.Warn("dispatch rejected", "workspace", id, "reply", msg)
	}
	return nil
}

// queryJSON requests command and decodes the reply into v.
// Replies that are not valid JSON are logged and leave v untouched.
func (c *Client) queryJSON(ctx context.Context, command string, v any) error {
	reply, err := c.transport.Request(ctx, command, true)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(reply, v); err != nil {
		c.logger.Debug("ignoring malformed reply", "query", command, "transport", c.transport.Name(), "error", err)
	}
	return nil
}

// workspaceID returns the canonical identifier of a reported workspace.
// Numbered workspaces (id > 0) are identified by their number even when
// Hyprland reports a defaultName; named and special ones have id <= 0 and
// are identified by their canonicalized name.
func workspaceID(id int, name string) string {
	if id > 0 {
		return strconv.Itoa(id)
	}
	return order.Canonicalize(name)
}

// DispatchArg formats id for the workspace dispatcher: numeric ids are
// passed as-is, anything else is addressed by name.
func DispatchArg(id string) string {
	if _, err := strconv.Atoi(id); err == nil {
		return id
	}
	return "name:" + id
}
