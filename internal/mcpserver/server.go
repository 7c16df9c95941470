// Package mcpserver exposes the calculator as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"go-chi-calculator/internal/calculator"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Sessions is the subset of the session manager the tools need.
type Sessions interface {
	DispatchOrStart(ctx context.Context, sessionID string, actions ...calculator.Action) (calculator.State, error)
	Reset(ctx context.Context, sessionID string) (calculator.State, error)
}

// DefaultSession is used when a tool call names no session.
const DefaultSession = "mcp"

// Result is the structured payload of every state-returning tool.
type Result struct {
	SessionID string           `json:"session_id"`
	State     calculator.State `json:"state"`
	Display   calculator.View  `json:"display"`
}

// Server wraps an MCP server bound to a session service.
type Server struct {
	sessions  Sessions
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// New creates the server and registers its tools.
func New(sessions Sessions, version string, logger *zap.Logger) *Server {
	s := &Server{
		sessions:  sessions,
		logger:    logger,
		mcpServer: server.NewMCPServer("calculator", version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("press_keys",
		mcp.WithDescription("Press calculator buttons in order, e.g. \"12 + 3 =\". Keys: digits, '.', + - * / ÷, '=' to evaluate, AC to clear, DEL for backspace."),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Space separated or compact key sequence")),
		mcp.WithString("session_id", mcp.Description("Calculator session; defaults to a shared session")),
		mcp.WithOutputSchema[Result](),
	), mcp.NewStructuredToolHandler(s.handlePressKeys))

	s.mcpServer.AddTool(mcp.NewTool("evaluate",
		mcp.WithDescription("Apply one operation to two numeric operands without touching any session."),
		mcp.WithString("previous", mcp.Required(), mcp.Description("Left operand")),
		mcp.WithString("operation", mcp.Required(), mcp.Description("One of + - * ÷ (or /)")),
		mcp.WithString("current", mcp.Required(), mcp.Description("Right operand")),
	), s.handleEvaluate)

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Clear a calculator session back to its empty state, like pressing AC."),
		mcp.WithString("session_id", mcp.Description("Calculator session; defaults to the shared session")),
	), s.handleReset)
}

// PressKeysArgs are the arguments of the press_keys tool.
type PressKeysArgs struct {
	Keys      string `json:"keys"`
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handlePressKeys(ctx context.Context, request mcp.CallToolRequest, args PressKeysArgs) (Result, error) {
	sessionID := args.SessionID
	if sessionID == "" {
		sessionID = DefaultSession
	}

	actions, err := calculator.ParseKeys(args.Keys)
	if err != nil {
		return Result{}, err
	}
	if len(actions) == 0 {
		return Result{}, errors.New("no keys provided")
	}

	state, err := s.sessions.DispatchOrStart(ctx, sessionID, actions...)
	if err != nil {
		s.logger.Error("press_keys failed", zap.String("session_id", sessionID), zap.Error(err))
		return Result{}, fmt.Errorf("dispatch failed: %w", err)
	}

	s.logger.Debug("press_keys", zap.String("session_id", sessionID), zap.Int("actions", len(actions)))
	return Result{SessionID: sessionID, State: state, Display: calculator.Render(state)}, nil
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	previous, err := request.RequireString("previous")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	current, err := request.RequireString("current")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	symbol, err := request.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	op, ok := calculator.ParseOperation(symbol)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported operation %q", symbol)), nil
	}

	return mcp.NewToolResultText(calculator.Compute(previous, current, op)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", DefaultSession)
	if _, err := s.sessions.Reset(ctx, sessionID); err != nil {
		if errors.Is(err, calculator.ErrSessionNotFound) {
			return mcp.NewToolResultText("session " + sessionID + " has not been started"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText("session " + sessionID + " cleared"), nil
}
