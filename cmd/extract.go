package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lukman83/vinted-relist/internal/progress"
	"github.com/lukman83/vinted-relist/internal/ui"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [listing-url]",
	Short: "Save a listing as a reusable template",
	Long:  "Scrapes the listing page, fetches the item record from the API and saves the reconciled template. The listing must belong to the logged-in account unless --dom-only is set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().Bool("dom-only", false, "Build the template from the page alone, skip the API record")
	extractCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	listingURL := args[0]
	domOnly, _ := cmd.Flags().GetBool("dom-only")
	format, _ := cmd.Flags().GetString("format")

	spin := ui.NewSpinner()
	spin.Start("Extracting listing...")
	ctx := progress.WithReporter(context.Background(), spin.Update)
	tpl, err := a.ExtractTemplate(ctx, listingURL, domOnly)
	if err != nil {
		spin.Fail("extraction failed")
		return err
	}
	spin.Succeed(fmt.Sprintf("Saved template %q", tpl.Name))

	switch format {
	case "table":
		printTemplateCard(tpl, -1)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(tpl)
	}
	return nil
}
