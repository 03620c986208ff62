package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lukman83/vinted-relist/internal/app"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(s *server.MCPServer, a *app.App) {
	// extract_template
	extractTool := mcp.NewTool("extract_template",
		mcp.WithDescription("Save a Vinted listing as a reusable template. The listing must belong to the logged-in account unless dom_only is set."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Listing page URL"),
		),
		mcp.WithBoolean("dom_only",
			mcp.Description("Build the template from the page alone, skip the API record (default: false)"),
		),
	)
	s.AddTool(extractTool, handleExtractTemplate(a))

	// list_templates
	listTool := mcp.NewTool("list_templates",
		mcp.WithDescription("List all saved listing templates"),
	)
	s.AddTool(listTool, handleListTemplates(a))

	// delete_template
	deleteTool := mcp.NewTool("delete_template",
		mcp.WithDescription("Delete a saved template by its position in the list"),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Template position as shown by list_templates"),
		),
	)
	s.AddTool(deleteTool, handleDeleteTemplate(a))

	// relist_item
	relistTool := mcp.NewTool("relist_item",
		mcp.WithDescription("Duplicate one of the logged-in account's listings: re-uploads its photos and creates a fresh copy"),
		mcp.WithNumber("item_id",
			mcp.Required(),
			mcp.Description("Numeric id of the listing to duplicate"),
		),
		mcp.WithBoolean("delete_source",
			mcp.Description("Delete the original after the copy is created (default: false)"),
		),
		mcp.WithBoolean("reuse_photos",
			mcp.Description("Reference the original photos instead of re-uploading (default: false)"),
		),
	)
	s.AddTool(relistTool, handleRelistItem(a))
}

func handleExtractTemplate(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := request.GetString("url", "")
		if url == "" {
			return mcp.NewToolResultError("url is required"), nil
		}
		domOnly := request.GetBool("dom_only", false)

		tpl, err := a.ExtractTemplate(ctx, url, domOnly)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extract error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(tpl, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleListTemplates(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		templates, err := a.Store().All()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("store error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(templates, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func handleDeleteTemplate(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := request.GetInt("index", -1)
		if index < 0 {
			return mcp.NewToolResultError("index is required"), nil
		}

		if err := a.Store().Delete(index); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("store error: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(`{"deleted":%d}`, index)), nil
	}
}

func handleRelistItem(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		itemID := request.GetInt("item_id", 0)
		if itemID <= 0 {
			return mcp.NewToolResultError("item_id is required"), nil
		}

		result, err := a.Relist(ctx, int64(itemID), app.RelistFlags{
			DeleteSource: request.GetBool("delete_source", false),
			ReusePhotos:  request.GetBool("reuse_photos", false),
		})
		if err != nil {
			// Surface a partial result: the copy may exist even if a
			// later step (source delete) failed.
			if result != nil && result.NewID != 0 {
				data, _ := json.MarshalIndent(result, "", "  ")
				return mcp.NewToolResultError(fmt.Sprintf("relist error: %v\npartial result: %s", err, data)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("relist error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}
