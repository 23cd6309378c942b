package api

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/pantry-voice/pkg/kit"
	"github.com/hazyhaar/pantry-voice/pkg/voice"
)

// RegisterMCPTools registers the pantry-voice MCP tools on the server.
// The tools dispatch to the same endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerResolveCommand(srv, svc)
	registerApplyCommand(srv, svc)
	registerTranscript(srv)
	registerListItems(srv, svc)
	registerShoppingList(srv, svc)
}

// commandArgs are shared by resolve_command and apply_command.
func commandArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("product_name", mcp.Required(), mcp.Description("Spoken product name, any language/plural form")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Quantity mentioned in the command")),
		mcp.WithString("intent", mcp.Description("Intent word as spoken (e.g. adicionar, consume, bought)")),
		mcp.WithString("unit", mcp.Description("Unit word as spoken (e.g. litros, kilo, boxes)")),
		mcp.WithString("category", mcp.Description("Category word as spoken (e.g. laticínios, drinks)")),
	}
}

func decodeCommand(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	args := req.GetArguments()
	action := voice.CandidateAction{}
	action.ProductName, _ = args["product_name"].(string)
	action.Amount, _ = args["amount"].(float64)
	action.Intent, _ = args["intent"].(string)
	action.Unit = args["unit"]
	action.Category = args["category"]
	return &kit.MCPDecodeResult{Request: &resolveReq{Action: action}}, nil
}

func registerResolveCommand(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Resolve a voice command against the pantry inventory: canonical intent, matched item, unit, category and the recommended mutation. Does not change the inventory."),
	}, commandArgs()...)
	tool := mcp.NewTool("resolve_command", opts...)

	kit.RegisterMCPTool(srv, tool, resolveEndpoint(svc), decodeCommand)
}

func registerApplyCommand(srv *server.MCPServer, svc *Service) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Resolve a voice command and apply it: update the matched item's quantity, create a new item, or reject the command."),
	}, commandArgs()...)
	tool := mcp.NewTool("apply_command", opts...)

	kit.RegisterMCPTool(srv, tool, applyEndpoint(svc), decodeCommand)
}

func registerTranscript(srv *server.MCPServer) {
	tool := mcp.NewTool("normalize_transcript",
		mcp.WithDescription("Normalize a raw voice transcript and fold plural product nouns to singular, preserving command verbs and quantity words."),
		mcp.WithString("transcript", mcp.Required(), mcp.Description("The raw transcribed utterance")),
	)

	kit.RegisterMCPTool(srv, tool, transcriptEndpoint(), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		transcript, _ := req.GetArguments()["transcript"].(string)
		return &kit.MCPDecodeResult{Request: &transcriptReq{Transcript: transcript}}, nil
	})
}

func registerListItems(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_items",
		mcp.WithDescription("List all pantry inventory items."),
	)

	kit.RegisterMCPTool(srv, tool, listItemsEndpoint(svc), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}

func registerShoppingList(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("shopping_list",
		mcp.WithDescription("List pantry items below their minimum quantity with the amount needed to restock."),
	)

	kit.RegisterMCPTool(srv, tool, shoppingListEndpoint(svc), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
