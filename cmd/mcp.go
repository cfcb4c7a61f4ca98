/*
Copyright © 2026 The tdl Authors
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/taskdeck/tdl/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI tool integration",
	Long: `Start a Model Context Protocol server over stdio. Tools like Claude
Desktop or Cursor can then manage your task list: adding, listing, updating,
completing and restoring tasks through the same store the CLI uses.`,
	Run: func(cmd *cobra.Command, args []string) {
		taskStore, err := GetStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the task store.", err)
		}
		defer func() { _ = taskStore.Close() }()

		historyStore, err := GetHistoryStore()
		if err != nil {
			HandleFatalError("Error: Could not initialize the history store.", err)
		}
		defer func() { _ = historyStore.Close() }()

		server := mcp.NewServer(version, taskStore, historyStore)

		ctx := context.Background()
		if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
