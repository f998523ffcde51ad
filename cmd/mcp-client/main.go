package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./widgetdemo mcp -demo slider")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "widgetdemo-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to widgetdemo MCP Server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools        - List available tools")
	fmt.Println("  /state        - Show the active screen")
	fmt.Println("  /next         - Press the boot screen button")
	fmt.Println("  /back         - Press the back button on the tabs screen")
	fmt.Println("  /agree        - Toggle the terms checkbox")
	fmt.Println("  /slider <n>   - Drag the slider to n")
	fmt.Println("  /tab <i>      - Select tab i (0-based)")
	fmt.Println("  /render [w h] - Draw the active screen")
	fmt.Println("  /tree         - Outline the widget tree")
	fmt.Println("  /exit         - Exit the client")
	fmt.Println()

	// Interactive REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch parts[0] {
		case "/exit":
			fmt.Println("Goodbye!")
			return

		case "/tools":
			listTools(ctx, session)

		case "/state":
			callTool(ctx, session, "get_state", map[string]any{})

		case "/next", "/back":
			callTool(ctx, session, "activate", map[string]any{
				"role": strings.TrimPrefix(parts[0], "/"),
			})

		case "/agree":
			callTool(ctx, session, "toggle", map[string]any{"role": "agree"})

		case "/slider":
			n, ok := intArg(parts, 1)
			if !ok {
				fmt.Println("Usage: /slider <n>")
				continue
			}
			callTool(ctx, session, "set_slider", map[string]any{"value": n})

		case "/tab":
			i, ok := intArg(parts, 1)
			if !ok {
				fmt.Println("Usage: /tab <i>")
				continue
			}
			callTool(ctx, session, "select_tab", map[string]any{"index": i})

		case "/render":
			args := map[string]any{}
			if w, ok := intArg(parts, 1); ok {
				args["width"] = w
			}
			if h, ok := intArg(parts, 2); ok {
				args["height"] = h
			}
			callField(ctx, session, "render", args, "frame")

		case "/tree":
			callField(ctx, session, "dump_tree", map[string]any{}, "tree")

		default:
			fmt.Printf("Unknown command %q\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func intArg(parts []string, i int) (int, bool) {
	if len(parts) <= i {
		return 0, false
	}
	n, err := strconv.Atoi(parts[i])
	return n, err == nil
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

// callField prints one string field of the structured result verbatim so
// multi-line frames stay readable.
func callField(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any, field string) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}
	if !result.IsError && len(result.Content) > 0 {
		if text, ok := result.Content[0].(*mcp.TextContent); ok {
			var out map[string]any
			if json.Unmarshal([]byte(text.Text), &out) == nil {
				if s, ok := out[field].(string); ok {
					fmt.Println(s)
					return
				}
			}
		}
	}
	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("❌ Error: ")
	} else {
		fmt.Printf("✅ Result: ")
	}

	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}
