package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List saved templates",
	RunE:  runTemplatesList,
}

var templatesShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Show one template in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete [index]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesDelete,
}

func init() {
	templatesCmd.Flags().String("format", "table", "Output format: json, table")
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	templates, err := a.Store().All()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(templates)
	default:
		if len(templates) == 0 {
			fmt.Fprintln(os.Stdout, "No templates saved yet. Run 'extract' on one of your listings first.")
			return nil
		}
		printTemplatesTable(templates)
	}
	return nil
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	tpl, err := a.Store().Get(index)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(tpl)
	return nil
}

func runTemplatesDelete(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	if err := a.Store().Delete(index); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted template %d\n", index)
	return nil
}
