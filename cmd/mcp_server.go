package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hoverkit/hoverkit/internal/scene"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// mcpServer wraps the MCP server with the scene session. One scene is live at
// a time; scene-load replaces it. The source document is kept so reset can
// rebuild the scene at virtual time zero.
type mcpServer struct {
	mu     sync.Mutex
	scene  *scene.Scene
	source []byte
	mcp    *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
	ScenePath string
}

// newMCPServer creates and configures an MCP server with all hoverkit tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	s := &mcpServer{}

	if cfg.ScenePath != "" {
		data, err := os.ReadFile(cfg.ScenePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read scene file: %w", err)
		}
		sc, err := scene.Parse(data)
		if err != nil {
			return nil, err
		}
		s.scene = sc
		s.source = data
	}

	s.mcp = mcpserver.NewMCPServer(
		"hoverkit",
		"1.0.0",
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	// scene-load
	s.mcp.AddTool(
		mcp.NewTool("scene-load",
			mcp.WithDescription("Load a YAML scene (elements + tooltip attachments), replacing the current session scene. Time starts at zero on a virtual clock."),
			mcp.WithString("yaml", mcp.Required(), mcp.Description("Scene document in hoverkit scene YAML format")),
		),
		s.handleSceneLoad,
	)

	// event
	s.mcp.AddTool(
		mcp.NewTool("event",
			mcp.WithDescription("Dispatch an interaction event to a scene element. Delayed reactions only fire after advance."),
			mcp.WithString("type", mcp.Required(), mcp.Description("Event kind: hover, leave, focus, blur, click")),
			mcp.WithString("target", mcp.Required(), mcp.Description("Element id, or tooltip:<id> for a tooltip's floating node")),
			mcp.WithString("to", mcp.Description("Related target the pointer moved to (leave events)")),
		),
		s.handleEvent,
	)

	// advance
	s.mcp.AddTool(
		mcp.NewTool("advance",
			mcp.WithDescription("Advance the scene's virtual clock, firing any due show/hide timers."),
			mcp.WithNumber("ms", mcp.Required(), mcp.Description("Milliseconds to advance")),
		),
		s.handleAdvance,
	)

	// state
	s.mcp.AddTool(
		mcp.NewTool("state",
			mcp.WithDescription("Return the element tree and the state of every tooltip attachment."),
		),
		s.handleState,
	)

	// tooltip operations
	for _, op := range []string{"show", "hide", "toggle", "dispose"} {
		op := op
		s.mcp.AddTool(
			mcp.NewTool(op,
				mcp.WithDescription(fmt.Sprintf("Programmatically %s the tooltip attached to an element (no delay).", op)),
				mcp.WithString("target", mcp.Required(), mcp.Description("Element id carrying the tooltip")),
			),
			func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return s.handleTooltipOp(op, request)
			},
		)
	}

	// reset
	s.mcp.AddTool(
		mcp.NewTool("reset",
			mcp.WithDescription("Rebuild the current scene from its source document, discarding all interaction state and returning virtual time to zero."),
		),
		s.handleReset,
	)

	// render
	s.mcp.AddTool(
		mcp.NewTool("render",
			mcp.WithDescription("Render the current scene to a PNG image, returned base64-encoded."),
		),
		s.handleRender,
	)
}
