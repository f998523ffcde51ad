package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"widgetdemo/internal/config"
	"widgetdemo/internal/demo"
)

func testConfig(demoName string) config.Config {
	return config.Default().
		WithDemo(demoName).
		WithTransitionTiming(20*time.Millisecond, 10*time.Millisecond)
}

func TestHandleGetState_Boot(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)

	_, snap, err := s.handleGetState(context.Background(), nil, StateArgs{})
	require.NoError(t, err)
	assert.Equal(t, "boot", snap.Screen)
	assert.False(t, snap.Transitioning)
	require.NotNil(t, snap.Agreed)
	assert.False(t, *snap.Agreed)
	assert.Equal(t, 1, snap.LiveScreens)
}

func TestHandleActivate_NextAndBack(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	ctx := context.Background()

	_, start, err := s.handleGetState(ctx, nil, StateArgs{})
	require.NoError(t, err)

	_, snap, err := s.handleActivate(ctx, nil, RoleArgs{Role: "next"})
	require.NoError(t, err)
	assert.Equal(t, "tabs", snap.Screen)
	assert.False(t, snap.Transitioning, "activate waits for the slide")
	require.NotNil(t, snap.SelectedTab)
	assert.Equal(t, 0, *snap.SelectedTab)

	_, snap, err = s.handleActivate(ctx, nil, RoleArgs{Role: "back"})
	require.NoError(t, err)
	assert.Equal(t, "boot", snap.Screen)
	assert.Equal(t, start.ScreenID, snap.ScreenID, "back returns to the same boot screen")
	assert.Equal(t, 1, snap.LiveScreens)
}

func TestHandleActivate_Errors(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	ctx := context.Background()

	_, _, err := s.handleActivate(ctx, nil, RoleArgs{Role: "back"})
	assert.ErrorIs(t, err, demo.ErrNoWidget)

	_, _, err = s.handleActivate(ctx, nil, RoleArgs{Role: "agree"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a button")
}

func TestHandleToggle(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)

	_, snap, err := s.handleToggle(context.Background(), nil, RoleArgs{Role: "agree"})
	require.NoError(t, err)
	require.NotNil(t, snap.Agreed)
	assert.True(t, *snap.Agreed)

	_, _, err = s.handleToggle(context.Background(), nil, RoleArgs{Role: "next"})
	assert.Error(t, err)
}

func TestHandleSetSlider(t *testing.T) {
	s := NewServer(testConfig(config.DemoSlider), nil)
	ctx := context.Background()

	tests := []struct {
		value int
		label string
	}{
		{57, "57"},
		{100, "100"},
		{0, "0"},
		{250, "100"},
	}
	for _, tt := range tests {
		_, snap, err := s.handleSetSlider(ctx, nil, SliderArgs{Value: tt.value})
		require.NoError(t, err)
		assert.Equal(t, tt.label, snap.SliderLabel)
		require.NotNil(t, snap.SliderValue)
	}
}

func TestHandleSetSlider_WrongDemo(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	_, _, err := s.handleSetSlider(context.Background(), nil, SliderArgs{Value: 5})
	assert.ErrorIs(t, err, demo.ErrNoWidget)
}

func TestHandleSelectTab(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	ctx := context.Background()

	_, _, err := s.handleSelectTab(ctx, nil, TabArgs{Index: 1})
	assert.Error(t, err, "boot screen has no tab view")

	_, _, err = s.handleActivate(ctx, nil, RoleArgs{Role: "next"})
	require.NoError(t, err)

	_, snap, err := s.handleSelectTab(ctx, nil, TabArgs{Index: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, *snap.SelectedTab)

	_, _, err = s.handleSelectTab(ctx, nil, TabArgs{Index: 3})
	assert.ErrorContains(t, err, "out of range")
}

func TestHandleRenderAndDump(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	ctx := context.Background()

	_, frame, err := s.handleRender(ctx, nil, RenderArgs{Width: 50, Height: 16})
	require.NoError(t, err)
	lines := strings.Split(frame.Frame, "\n")
	assert.Len(t, lines, 16)
	assert.Contains(t, frame.Frame, "I agree to terms and conditions.")
	assert.NotContains(t, frame.Frame, "\x1b[")

	_, tree, err := s.handleDumpTree(ctx, nil, StateArgs{})
	require.NoError(t, err)
	assert.Contains(t, tree.Tree, "■ BOOT SCREEN")
	assert.Contains(t, tree.Tree, "button next")
}

func TestHandleRender_RejectsOversizedFrames(t *testing.T) {
	s := NewServer(testConfig(config.DemoBoot), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		args RenderArgs
	}{
		{"huge both", RenderArgs{Width: 4000, Height: 4000}},
		{"wide", RenderArgs{Width: MaxFrameSize + 1, Height: 10}},
		{"tall", RenderArgs{Width: 10, Height: MaxFrameSize + 1}},
		{"negative", RenderArgs{Width: -1, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, frame, err := s.handleRender(ctx, nil, tt.args)
			require.ErrorIs(t, err, ErrFrameSize)
			assert.Empty(t, frame.Frame)
		})
	}

	_, frame, err := s.handleRender(ctx, nil, RenderArgs{Width: MaxFrameSize, Height: 2})
	require.NoError(t, err)
	assert.Len(t, strings.Split(frame.Frame, "\n"), 2)

	_, frame, err = s.handleRender(ctx, nil, RenderArgs{})
	require.NoError(t, err)
	assert.Len(t, strings.Split(frame.Frame, "\n"), 24, "zero size falls back to the default")
}

func TestSettleTimesOut(t *testing.T) {
	cfg := config.Default().WithTransitionTiming(time.Hour, 0)
	cfg.MCP.SettleTimeout = 30 * time.Millisecond
	s := NewServer(cfg, nil)

	_, snap, err := s.handleActivate(context.Background(), nil, RoleArgs{Role: "next"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, snap.Transitioning)
	assert.Equal(t, "boot", snap.Screen)
}

func TestToolsOverInMemoryTransport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := NewServer(testConfig(config.DemoSlider), nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_state", "activate", "toggle", "set_slider", "select_tab", "render", "dump_tree",
	}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "set_slider",
		Arguments: map[string]any{"value": 57},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	var snap demo.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text.Text), &snap))
	assert.Equal(t, "57", snap.SliderLabel)
}
