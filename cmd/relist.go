package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/lukman83/vinted-relist/internal/app"
	"github.com/lukman83/vinted-relist/internal/extract"
	"github.com/lukman83/vinted-relist/internal/progress"
	"github.com/lukman83/vinted-relist/internal/ui"
	"github.com/spf13/cobra"
)

var relistCmd = &cobra.Command{
	Use:   "relist [item-id or listing-url]",
	Short: "Duplicate one of your listings through the API",
	Long:  "Fetches the listing's item record, re-uploads its photos and creates a fresh copy. With --delete-source the original is removed after the copy is live.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRelist,
}

func init() {
	relistCmd.Flags().Bool("delete-source", false, "Delete the original listing after the copy is created")
	relistCmd.Flags().Bool("reuse-photos", false, "Reference the original photos instead of re-uploading them")
	relistCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(relistCmd)
}

func runRelist(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	itemID, err := parseItemArg(args[0])
	if err != nil {
		return err
	}

	deleteSource, _ := cmd.Flags().GetBool("delete-source")
	reusePhotos, _ := cmd.Flags().GetBool("reuse-photos")
	format, _ := cmd.Flags().GetString("format")

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Relisting item %d...", itemID))
	ctx := progress.WithReporter(context.Background(), spin.Update)
	result, err := a.Relist(ctx, itemID, app.RelistFlags{
		DeleteSource: deleteSource,
		ReusePhotos:  reusePhotos,
	})
	if err != nil {
		spin.Fail("relist failed")
		// A created copy may still exist even when a later step failed.
		if result != nil && result.NewID != 0 {
			fmt.Fprintf(os.Stderr, "New listing was created: %s\n", result.NewURL)
		}
		return err
	}
	spin.Succeed(fmt.Sprintf("Created listing %d", result.NewID))

	switch format {
	case "table":
		printRelistResult(result)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result)
	}
	return nil
}

// parseItemArg accepts either a bare numeric item id or a full listing URL.
func parseItemArg(arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}
	if extract.IsListingPage(arg) {
		return extract.ItemIDFromURL(arg)
	}
	return 0, fmt.Errorf("expected an item id or listing url, got %q", arg)
}
