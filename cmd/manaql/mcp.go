package manaql

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/manaql/manaql-mcp/pkg/config"
	"github.com/manaql/manaql-mcp/pkg/logger"
	"github.com/manaql/manaql-mcp/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the ManaQL MCP server on stdio",
	Long: `Start the ManaQL MCP server speaking JSON-RPC 2.0 over stdio.

Tools: search_cards, get_card_by_id, get_card_count, find_similar_cards.
All log output goes to stderr; stdout carries protocol frames only.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// stdout belongs to the protocol, so logging must stay on stderr.
	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, repo, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	sessionID := uuid.New().String()
	srv := mcp.NewServer(mcp.NewToolHandler(svc), log, sessionID)

	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
