// pantryctl talks to a running pantry-voice server over MCP-on-QUIC.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hazyhaar/pantry-voice/pkg/mcpquic"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "tools":
		cmdTools(os.Args[2:])
	case "resolve":
		cmdCommand("resolve_command", os.Args[2:])
	case "apply":
		cmdCommand("apply_command", os.Args[2:])
	case "items":
		cmdSimple("list_items", os.Args[2:])
	case "shopping":
		cmdSimple("shopping_list", os.Args[2:])
	case "transcript":
		cmdTranscript(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: pantryctl <command>

Commands:
  tools                             List available MCP tools
  resolve --name <n> --amount <a>   Dry-run a voice command
  apply --name <n> --amount <a>     Resolve and apply a voice command
  items                             List pantry items
  shopping                          Show the shopping list
  transcript <text>                 Normalize a spoken transcript
`)
}

func dial(addr string, insecure bool) *mcpquic.Client {
	c := mcpquic.NewClient(addr, mcpquic.ClientTLSConfig(insecure))
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := c.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", addr, err)
		os.Exit(1)
	}
	return c
}

func printResult(res *mcp.CallToolResult) {
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			fmt.Println(tc.Text)
		}
	}
	if res.IsError {
		os.Exit(1)
	}
}

func cmdTools(args []string) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8420", "server address")
	insecure := fs.Bool("insecure", true, "skip TLS verification")
	fs.Parse(args)

	c := dial(*addr, *insecure)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := c.ListTools(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list tools: %v\n", err)
		os.Exit(1)
	}
	for _, t := range res.Tools {
		fmt.Printf("%-22s %s\n", t.Name, t.Description)
	}
}

func cmdCommand(tool string, args []string) {
	fs := flag.NewFlagSet(tool, flag.ExitOnError)
	addr := fs.String("addr", "localhost:8420", "server address")
	insecure := fs.Bool("insecure", true, "skip TLS verification")
	name := fs.String("name", "", "spoken product name")
	amount := fs.String("amount", "1", "quantity")
	intent := fs.String("intent", "", "intent word (e.g. adicionar, consumir)")
	unit := fs.String("unit", "", "spoken unit")
	category := fs.String("category", "", "spoken category")
	fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "--name is required")
		os.Exit(1)
	}
	qty, err := strconv.ParseFloat(*amount, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad --amount: %v\n", err)
		os.Exit(1)
	}

	toolArgs := map[string]any{
		"product_name": *name,
		"amount":       qty,
	}
	if *intent != "" {
		toolArgs["intent"] = *intent
	}
	if *unit != "" {
		toolArgs["unit"] = *unit
	}
	if *category != "" {
		toolArgs["category"] = *category
	}

	c := dial(*addr, *insecure)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := c.CallTool(ctx, tool, toolArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", tool, err)
		os.Exit(1)
	}
	printResult(res)
}

func cmdSimple(tool string, args []string) {
	fs := flag.NewFlagSet(tool, flag.ExitOnError)
	addr := fs.String("addr", "localhost:8420", "server address")
	insecure := fs.Bool("insecure", true, "skip TLS verification")
	fs.Parse(args)

	c := dial(*addr, *insecure)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := c.CallTool(ctx, tool, map[string]any{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", tool, err)
		os.Exit(1)
	}
	printResult(res)
}

func cmdTranscript(args []string) {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8420", "server address")
	insecure := fs.Bool("insecure", true, "skip TLS verification")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pantryctl transcript [flags] <text>")
		os.Exit(1)
	}
	text := fs.Arg(0)

	c := dial(*addr, *insecure)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	res, err := c.CallTool(ctx, "normalize_transcript", map[string]any{"transcript": text})
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize_transcript: %v\n", err)
		os.Exit(1)
	}
	printResult(res)
}
