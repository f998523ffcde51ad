package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// snapshot mirrors the get_state result.
type snapshot struct {
	Screen        string `json:"screen"`
	ScreenID      string `json:"screen_id"`
	Transitioning bool   `json:"transitioning"`
	SliderLabel   string `json:"slider_label"`
	Agreed        *bool  `json:"agreed"`
	SelectedTab   *int   `json:"selected_tab"`
	LiveScreens   int    `json:"live_screens"`
}

type runner struct {
	session *mcp.ClientSession
	failed  int
}

func main() {
	binary := flag.String("server", "", "path to the widgetdemo binary (default: search ./widgetdemo)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	serverPath := *binary
	if serverPath == "" {
		serverPath = findServerBinary()
	}
	if serverPath == "" {
		log.Fatal("❌ widgetdemo binary not found. Run: go build -o widgetdemo .")
	}

	fmt.Println("🧪 Running widgetdemo scenarios over MCP")
	fmt.Println("=======================================")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	failed := 0
	failed += runDemo(ctx, serverPath, "boot", bootScenario)
	failed += runDemo(ctx, serverPath, "slider", sliderScenario)

	fmt.Println("\n=======================================")
	if failed > 0 {
		fmt.Printf("❌ %d check(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("✅ All scenarios passed!")
}

func runDemo(ctx context.Context, serverPath, demo string, scenario func(ctx context.Context, r *runner)) int {
	fmt.Printf("\n✓ Starting server with -demo %s\n", demo)
	cmd := exec.Command(serverPath, "mcp", "-demo", demo)
	cmd.Stderr = os.Stderr
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "scenario-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		fmt.Printf("  ❌ Failed to connect to MCP server: %v\n", err)
		return 1
	}
	defer session.Close()

	r := &runner{session: session}
	scenario(ctx, r)
	return r.failed
}

// bootScenario walks Boot → Next → Tabs → Back → Boot twice and checks
// that the boot screen is reused and tab screens are not leaked.
func bootScenario(ctx context.Context, r *runner) {
	start := r.call(ctx, "get_state", nil)
	r.check(start.Screen == "boot", "initial screen is boot (got %q)", start.Screen)

	agreed := r.call(ctx, "toggle", map[string]any{"role": "agree"})
	r.check(agreed.Agreed != nil && *agreed.Agreed, "checkbox toggles on")

	for round := 1; round <= 2; round++ {
		began := time.Now()
		tabs := r.call(ctx, "activate", map[string]any{"role": "next"})
		elapsed := time.Since(began)
		r.check(tabs.Screen == "tabs", "round %d: next shows tabs (got %q)", round, tabs.Screen)
		r.check(elapsed >= 400*time.Millisecond, "round %d: slide took %v (want ≥ 400ms)", round, elapsed.Round(time.Millisecond))

		sel := r.call(ctx, "select_tab", map[string]any{"index": 1})
		r.check(sel.SelectedTab != nil && *sel.SelectedTab == 1, "round %d: second tab selected", round)
		r.call(ctx, "select_tab", map[string]any{"index": 0})

		back := r.call(ctx, "activate", map[string]any{"role": "back"})
		r.check(back.Screen == "boot", "round %d: back shows boot (got %q)", round, back.Screen)
		r.check(back.ScreenID == start.ScreenID, "round %d: boot screen reused", round)
		r.check(back.LiveScreens == 1, "round %d: %d live screen(s) after settling", round, back.LiveScreens)
	}

	final := r.call(ctx, "get_state", nil)
	r.check(final.Agreed != nil && *final.Agreed, "checkbox state survives navigation")
}

// sliderScenario drags the slider and checks the label follows.
func sliderScenario(ctx context.Context, r *runner) {
	for _, v := range []int{57, 100, 0} {
		s := r.call(ctx, "set_slider", map[string]any{"value": v})
		r.check(s.SliderLabel == strconv.Itoa(v), "slider %d shows label %q", v, s.SliderLabel)
	}
}

func (r *runner) call(ctx context.Context, tool string, args map[string]any) snapshot {
	if args == nil {
		args = map[string]any{}
	}
	var snap snapshot
	res, err := r.session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		r.check(false, "%s: %v", tool, err)
		return snap
	}
	if res.IsError || len(res.Content) == 0 {
		r.check(false, "%s returned an error result", tool)
		return snap
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		r.check(false, "%s returned %T", tool, res.Content[0])
		return snap
	}
	if err := json.Unmarshal([]byte(text.Text), &snap); err != nil {
		r.check(false, "%s: decode result: %v", tool, err)
	}
	return snap
}

func (r *runner) check(ok bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if ok {
		fmt.Printf("  ✅ %s\n", msg)
		return
	}
	r.failed++
	fmt.Printf("  ❌ %s\n", msg)
}

func findServerBinary() string {
	candidates := []string{
		"./widgetdemo",
		"../../widgetdemo",
		"../../../widgetdemo",
	}
	for _, p := range candidates {
		if abs, err := filepath.Abs(p); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
	}
	return ""
}
