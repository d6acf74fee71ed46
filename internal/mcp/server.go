package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
)

// StreakService defines streak operations needed by MCP.
type StreakService interface {
	Record(ctx context.Context) (*streak.Record, error)
}

// CheckLogService defines check log operations needed by MCP.
type CheckLogService interface {
	Recent(ctx context.Context, opts checklog.ListOptions) ([]checklog.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Streaks StreakService
	Checks  CheckLogService
	Policy  *reminder.Policy
}

// Config contains server configuration.
type Config struct {
	Services Services
	Mode     reminder.Mode
	Clock    streak.Clock
	Version  string
	Logger   *slog.Logger
}

// NewServer creates an MCP server exposing read-only streak tools.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "streakwatch",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, newHandler(cfg))

	return server
}

// Run serves MCP over stdio until ctx is cancelled or stdin closes.
func Run(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}
