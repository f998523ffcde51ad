// Package mcpserver exposes a headless demo controller as MCP tools so
// scripts and agents can drive the screens without a terminal.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"widgetdemo/internal/config"
	"widgetdemo/internal/demo"
	"widgetdemo/ui/console"
	"widgetdemo/ui/tui/styles"
	"widgetdemo/ui/tui/widget"
)

// MaxFrameSize bounds each dimension of a rendered frame.
const MaxFrameSize = 1000

// ErrFrameSize is returned when render is asked for an unusable size.
var ErrFrameSize = errors.New("frame size out of range")

// Server wraps the MCP server around one demo controller.
type Server struct {
	mcpServer *mcp.Server
	cfg       config.Config
	log       *slog.Logger

	// mu serialises tool calls; the controller is single-threaded.
	mu  sync.Mutex
	ctl *demo.Controller
}

// NewServer creates a server with a started controller and all tools
// registered.
func NewServer(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctl := demo.New(demo.Options{
		Config: cfg,
		Styles: styles.New(),
		Logger: log,
	})
	ctl.Start()

	impl := &mcp.Implementation{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}
	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		cfg:       cfg,
		log:       log,
		ctl:       ctl,
	}
	s.registerTools()
	return s
}

// StateArgs is the empty input of get_state.
type StateArgs struct{}

// RoleArgs names the widget a tool acts on.
type RoleArgs struct {
	Role string `json:"role" jsonschema:"widget role, e.g. next, back, agree"`
}

// SliderArgs defines the input for set_slider.
type SliderArgs struct {
	Value int `json:"value" jsonschema:"new slider value; clamped to the slider range"`
}

// TabArgs defines the input for select_tab.
type TabArgs struct {
	Index int `json:"index" jsonschema:"zero-based tab index"`
}

// RenderArgs sizes the rendered frame.
type RenderArgs struct {
	Width  int `json:"width,omitempty" jsonschema:"frame width in cells, 1-1000 (default 80)"`
	Height int `json:"height,omitempty" jsonschema:"frame height in rows, 1-1000 (default 24)"`
}

// validate accepts zero as "use the default".
func (a RenderArgs) validate() error {
	for _, n := range []int{a.Width, a.Height} {
		if n < 0 || n > MaxFrameSize {
			return fmt.Errorf("%dx%d not within [1,%d]: %w", a.Width, a.Height, MaxFrameSize, ErrFrameSize)
		}
	}
	return nil
}

// RenderResult is a plain-text frame.
type RenderResult struct {
	Frame string `json:"frame" jsonschema:"the active screen as plain text"`
}

// TreeResult is a widget tree outline.
type TreeResult struct {
	Tree string `json:"tree" jsonschema:"outline of the active screen's widget tree"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_state",
		Description: "Describe the active screen: kind, instance id, slider value and label, checkbox state, selected tab and whether a transition is running.",
	}, s.handleGetState)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "activate",
		Description: "Click a button on the active screen by role (next on the boot screen, back on the tabs screen). Waits for any resulting screen transition to finish.",
	}, s.handleActivate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle",
		Description: "Toggle a checkbox on the active screen by role (agree on the boot screen).",
	}, s.handleToggle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_slider",
		Description: "Drag the slider of the slider demo to a value. The companion label follows.",
	}, s.handleSetSlider)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "select_tab",
		Description: "Show a page of the tab view on the tabs screen.",
	}, s.handleSelectTab)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "render",
		Description: "Render the active screen as plain text.",
	}, s.handleRender)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dump_tree",
		Description: "Outline the widget tree of the active screen.",
	}, s.handleDumpTree)
}

// settle advances a pending transition at the animation frame rate until
// it commits or ctx expires.
func (s *Server) settle(ctx context.Context) error {
	if !s.ctl.Transitioning() {
		return nil
	}
	if s.cfg.MCP.SettleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.MCP.SettleTimeout)
		defer cancel()
	}
	fps := s.cfg.Transition.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for s.ctl.Transitioning() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("settle transition: %w", ctx.Err())
		case now := <-ticker.C:
			s.ctl.Advance(now)
		}
	}
	return nil
}

// begin locks the controller and finishes any transition left over from
// an earlier call.
func (s *Server) begin(ctx context.Context, tool string, args ...any) error {
	s.mu.Lock()
	s.log.Info("tool called", append([]any{"tool", tool}, args...)...)
	return s.settle(ctx)
}

func (s *Server) end() { s.mu.Unlock() }

func (s *Server) find(role string, want widget.Type) (*widget.Widget, error) {
	w, err := s.ctl.Find(widget.Role(role))
	if err != nil {
		return nil, err
	}
	if w.Type() != want {
		return nil, fmt.Errorf("%q is a %s, not a %s", role, w.Type(), want)
	}
	return w, nil
}

func (s *Server) handleGetState(ctx context.Context, _ *mcp.CallToolRequest, _ StateArgs) (*mcp.CallToolResult, demo.Snapshot, error) {
	defer s.end()
	if err := s.begin(ctx, "get_state"); err != nil {
		return nil, demo.Snapshot{}, err
	}
	return nil, s.ctl.Snapshot(), nil
}

func (s *Server) handleActivate(ctx context.Context, _ *mcp.CallToolRequest, args RoleArgs) (*mcp.CallToolResult, demo.Snapshot, error) {
	defer s.end()
	if err := s.begin(ctx, "activate", "role", args.Role); err != nil {
		return nil, demo.Snapshot{}, err
	}
	w, err := s.find(args.Role, widget.TypeButton)
	if err != nil {
		return nil, demo.Snapshot{}, fmt.Errorf("activate: %w", err)
	}
	s.ctl.Press(w)
	s.ctl.Click(w)
	s.ctl.Release(w)
	if err := s.settle(ctx); err != nil {
		return nil, s.ctl.Snapshot(), err
	}
	return nil, s.ctl.Snapshot(), nil
}

func (s *Server) handleToggle(ctx context.Context, _ *mcp.CallToolRequest, args RoleArgs) (*mcp.CallToolResult, demo.Snapshot, error) {
	defer s.end()
	if err := s.begin(ctx, "toggle", "role", args.Role); err != nil {
		return nil, demo.Snapshot{}, err
	}
	w, err := s.find(args.Role, widget.TypeCheckbox)
	if err != nil {
		return nil, demo.Snapshot{}, fmt.Errorf("toggle: %w", err)
	}
	s.ctl.Click(w)
	return nil, s.ctl.Snapshot(), nil
}

func (s *Server) handleSetSlider(ctx context.Context, _ *mcp.CallToolRequest, args SliderArgs) (*mcp.CallToolResult, demo.Snapshot, error) {
	defer s.end()
	if err := s.begin(ctx, "set_slider", "value", args.Value); err != nil {
		return nil, demo.Snapshot{}, err
	}
	w, err := s.find(string(widget.RoleSlider), widget.TypeSlider)
	if err != nil {
		return nil, demo.Snapshot{}, fmt.Errorf("set_slider: %w", err)
	}
	s.ctl.SetSliderValue(w, args.Value)
	return nil, s.ctl.Snapshot(), nil
}

func (s *Server) handleSelectTab(ctx context.Context, _ *mcp.CallToolRequest, args TabArgs) (*mcp.CallToolResult, demo.Snapshot, error) {
	defer s.end()
	if err := s.begin(ctx, "select_tab", "index", args.Index); err != nil {
		return nil, demo.Snapshot{}, err
	}
	tv, err := s.find(string(widget.RoleTabView), widget.TypeTabView)
	if err != nil {
		return nil, demo.Snapshot{}, fmt.Errorf("select_tab: %w", err)
	}
	if n := len(tv.Tabs()); args.Index < 0 || args.Index >= n {
		return nil, demo.Snapshot{}, fmt.Errorf("select_tab: index %d out of range [0,%d)", args.Index, n)
	}
	s.ctl.SelectTab(args.Index)
	return nil, s.ctl.Snapshot(), nil
}

func (s *Server) handleRender(ctx context.Context, _ *mcp.CallToolRequest, args RenderArgs) (*mcp.CallToolResult, RenderResult, error) {
	defer s.end()
	if err := s.begin(ctx, "render", "width", args.Width, "height", args.Height); err != nil {
		return nil, RenderResult{}, err
	}
	if err := args.validate(); err != nil {
		return nil, RenderResult{}, fmt.Errorf("render: %w", err)
	}
	frame := s.ctl.Frame(widget.RenderOptions{Width: args.Width, Height: args.Height})
	return nil, RenderResult{Frame: ansi.Strip(frame)}, nil
}

func (s *Server) handleDumpTree(ctx context.Context, _ *mcp.CallToolRequest, _ StateArgs) (*mcp.CallToolResult, TreeResult, error) {
	defer s.end()
	if err := s.begin(ctx, "dump_tree"); err != nil {
		return nil, TreeResult{}, err
	}
	return nil, TreeResult{Tree: console.Dump(s.ctl.Active())}, nil
}

// Start serves the tools on stdio until ctx is cancelled or the client
// disconnects.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("mcp server starting", "name", s.cfg.MCP.Name, "version", s.cfg.MCP.Version)
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
