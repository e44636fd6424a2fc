// Package mcpserver exposes the drill loop as Model Context Protocol tools
// over stdio.
package mcpserver

import (
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/drillq/drillq/internal/logging"
	"github.com/drillq/drillq/internal/practice"
)

const instructions = `
drillq runs situational defense drills for baseball and softball fielders.

1. Call next_scenario and read the situation and the three lettered options to
   the player. Do not say which option is best.
2. Let the player pick. If they cannot decide in time, submit "timeout".
3. Call submit_answer with the scenario id and the letter they chose, then
   share the coaching cue that comes back.
4. When next_scenario reports that nothing is available, offer drill_stats or
   reset_session.
`

// Server wires a practice service to MCP tool handlers. Tool calls are
// serialized with a mutex since the drill core is single-threaded.
type Server struct {
	mu        sync.Mutex
	svc       *practice.Service
	logger    *zap.Logger
	now       func() time.Time
	presented map[string]time.Time
	mcp       *server.MCPServer
}

// New builds the MCP server and registers its tools.
func New(svc *practice.Service, logger *zap.Logger, version string) *Server {
	s := &Server{
		svc:       svc,
		logger:    logging.OrNop(logger),
		now:       time.Now,
		presented: make(map[string]time.Time),
	}

	s.mcp = server.NewMCPServer(
		"drillq",
		version,
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)

	filterArgs := []mcp.ToolOption{
		mcp.WithString("sport", mcp.Description("Only drill this sport: baseball or softball")),
		mcp.WithString("level", mcp.Description("Only drill this level: youth, high_school, college or adult")),
		mcp.WithString("category", mcp.Description("Only drill this category, e.g. cutoffs")),
		mcp.WithString("position", mcp.Description("Only drill this position, e.g. SS or CF")),
	}

	nextTool := mcp.NewTool("next_scenario",
		append([]mcp.ToolOption{
			mcp.WithDescription("Get the next situational scenario to drill, with three lettered options."),
		}, filterArgs...)...,
	)
	submitTool := mcp.NewTool("submit_answer",
		mcp.WithDescription("Submit the player's choice for a scenario and get the coaching feedback."),
		mcp.WithString("scenario_id",
			mcp.Required(),
			mcp.Description("The id returned by next_scenario"),
		),
		mcp.WithString("choice",
			mcp.Required(),
			mcp.Description("The chosen letter A, B or C, or timeout"),
		),
	)
	statsTool := mcp.NewTool("drill_stats",
		append([]mcp.ToolOption{
			mcp.WithDescription("Summary statistics for the current drill session."),
		}, filterArgs...)...,
	)
	resetTool := mcp.NewTool("reset_session",
		mcp.WithDescription("Start a fresh drill session. Previous progress is kept in history only."),
	)

	s.mcp.AddTool(nextTool, s.handleNextScenario)
	s.mcp.AddTool(submitTool, s.handleSubmitAnswer)
	s.mcp.AddTool(statsTool, s.handleDrillStats)
	s.mcp.AddTool(resetTool, s.handleResetSession)

	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves tool calls on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("mcp server listening on stdio")
	return server.ServeStdio(s.mcp)
}
