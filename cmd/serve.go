package cmd

import (
	"fmt"
	"log"

	mcpserver "github.com/lukman83/vinted-relist/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting vinted-relist MCP server on stdio...")

	if err := mcpserver.Serve(a); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return nil
}
