package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/hoverkit/hoverkit/internal/render"
	"github.com/hoverkit/hoverkit/internal/scene"
	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

// stateToText serializes a value to YAML for an MCP tool response.
func stateToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

// withScene runs fn with the session scene under the lock, or reports that no
// scene is loaded.
func (s *mcpServer) withScene(fn func(*scene.Scene) (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene == nil {
		return mcp.NewToolResultError("no scene loaded — call scene-load first"), nil
	}
	return fn(s.scene)
}

func (s *mcpServer) handleSceneLoad(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := request.GetString("yaml", "")
	if doc == "" {
		return mcp.NewToolResultError("missing yaml argument"), nil
	}
	sc, err := scene.Parse([]byte(doc))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.mu.Lock()
	s.scene = sc
	s.source = []byte(doc)
	s.mu.Unlock()
	return mcp.NewToolResultText(stateToText(sc.Snapshot())), nil
}

func (s *mcpServer) handleReset(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return mcp.NewToolResultError("no scene loaded — call scene-load first"), nil
	}
	sc, err := scene.Parse(s.source)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.scene = sc
	return mcp.NewToolResultText(stateToText(sc.Snapshot())), nil
}

func (s *mcpServer) handleEvent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := request.GetString("type", "")
	target := request.GetString("target", "")
	to := request.GetString("to", "")
	return s.withScene(func(sc *scene.Scene) (*mcp.CallToolResult, error) {
		if err := sc.DispatchEvent(kind, target, to); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(stateToText(sc.Snapshot())), nil
	})
}

func (s *mcpServer) handleAdvance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ms := request.GetInt("ms", 0)
	if ms <= 0 {
		return mcp.NewToolResultError("ms must be positive"), nil
	}
	return s.withScene(func(sc *scene.Scene) (*mcp.CallToolResult, error) {
		sc.Advance(time.Duration(ms) * time.Millisecond)
		return mcp.NewToolResultText(stateToText(sc.Snapshot())), nil
	})
}

func (s *mcpServer) handleState(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withScene(func(sc *scene.Scene) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(stateToText(InspectResult{
			Elements: sc.Tree(),
			Tooltips: sc.Snapshot(),
		})), nil
	})
}

func (s *mcpServer) handleTooltipOp(op string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := request.GetString("target", "")
	return s.withScene(func(sc *scene.Scene) (*mcp.CallToolResult, error) {
		if _, err := sc.Apply(op, target); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(stateToText(sc.Snapshot())), nil
	})
}

func (s *mcpServer) handleRender(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withScene(func(sc *scene.Scene) (*mcp.CallToolResult, error) {
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, sc); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
		return mcp.NewToolResultImage("scene render", encoded, "image/png"), nil
	})
}
