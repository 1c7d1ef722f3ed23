package api

import (
	"fmt"
	"strings"

	"github.com/hazyhaar/recase/pkg/kit"
	"github.com/hazyhaar/recase/pkg/recaser"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the three recase MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, holder *recaser.Holder) {
	registerRestoreText(srv, holder)
	registerClassifyToken(srv, holder)
	registerModelInfo(srv, holder)
}

func registerRestoreText(srv *server.MCPServer, holder *recaser.Holder) {
	tool := mcp.NewTool("restore_text",
		mcp.WithDescription("Restore the original letter-casing of lowercased, whitespace-tokenized text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The casefolded text to restore")),
	)

	kit.RegisterMCPTool(srv, tool, restoreEndpoint(holder), func(req mcp.CallToolRequest) (any, error) {
		text, _ := req.GetArguments()["text"].(string)
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("text is empty")
		}
		return &restoreReq{Tokens: tokens}, nil
	})
}

func registerClassifyToken(srv *server.MCPServer, holder *recaser.Holder) {
	tool := mcp.NewTool("classify_token",
		mcp.WithDescription("Classify the casing of a single token (DC, LOWER, UPPER, TITLE, or MIXED) and report any stored mixed-case pattern."),
		mcp.WithString("token", mcp.Required(), mcp.Description("The token to classify")),
	)

	kit.RegisterMCPTool(srv, tool, classifyEndpoint(holder), func(req mcp.CallToolRequest) (any, error) {
		token, _ := req.GetArguments()["token"].(string)
		if token == "" {
			return nil, fmt.Errorf("token is empty")
		}
		return &classifyReq{Token: token}, nil
	})
}

func registerModelInfo(srv *server.MCPServer, holder *recaser.Holder) {
	tool := mcp.NewTool("model_info",
		mcp.WithDescription("Describe the loaded case restoration model (labels, feature count, stored patterns)."),
	)

	kit.RegisterMCPTool(srv, tool, infoEndpoint(holder), func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
