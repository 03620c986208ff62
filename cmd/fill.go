package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/lukman83/vinted-relist/internal/ui"
	"github.com/spf13/cobra"
)

var fillCmd = &cobra.Command{
	Use:   "fill [template-index]",
	Short: "Replay a template into the live create form",
	Long:  "Opens the marketplace's new-listing form in a visible browser window and fills it from the saved template. Photos cannot be filled; review the form and submit it yourself.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().String("url", "", "Create-form URL (default <base-url>/items/new)")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid template index %q", args[0])
	}
	createURL, _ := cmd.Flags().GetString("url")

	spin := ui.NewSpinner()
	spin.Start("Filling the create form...")
	result, err := a.FillForm(context.Background(), index, createURL)
	spin.Stop()
	if err != nil {
		return err
	}

	if result.Success {
		fmt.Fprintf(os.Stdout, "Filled: %v\n", result.Filled)
	} else {
		fmt.Fprintln(os.Stdout, "Form fill failed on the required text fields.")
	}
	for _, fe := range result.Errors {
		fmt.Fprintf(os.Stdout, "  %s: %s\n", fe.Field, fe.Error)
	}
	fmt.Fprintln(os.Stdout, "The browser window stays open: add photos, review and submit.")
	return nil
}
