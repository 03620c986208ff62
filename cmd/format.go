package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lukman83/vinted-relist/internal/models"
	"github.com/lukman83/vinted-relist/internal/vinted"
)

// printTemplatesTable prints templates in a human-friendly card layout.
func printTemplatesTable(templates []models.Template) {
	for i, tpl := range templates {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		printTemplateCard(tpl, i)
	}
}

func printTemplateCard(tpl models.Template, index int) {
	if index >= 0 {
		fmt.Fprintf(os.Stdout, " %d. %s\n", index, tpl.Name)
	} else {
		fmt.Fprintf(os.Stdout, " %s\n", tpl.Name)
	}

	d := tpl.Data
	line := "    "
	if d.Price != "" {
		line += fmt.Sprintf("Price: %s %s", d.Price, d.Currency)
	} else {
		line += "Price: -"
	}
	if d.Brand != "" {
		line += "  |  Brand: " + d.Brand
	}
	if d.Size != "" {
		line += "  |  Size: " + d.Size
	}
	fmt.Fprintln(os.Stdout, line)

	if d.Category != "" {
		fmt.Fprintf(os.Stdout, "    Category: %s\n", d.Category)
	}
	var tags []string
	if d.Status != "" {
		tags = append(tags, "["+d.Status+"]")
	}
	if d.Colors != "" {
		tags = append(tags, "["+d.Colors+"]")
	}
	if d.IsUnisex {
		tags = append(tags, "[Unisex]")
	}
	if len(tags) > 0 {
		fmt.Fprintf(os.Stdout, "    %s\n", strings.Join(tags, " "))
	}
	if d.Description != "" {
		fmt.Fprintf(os.Stdout, "    %s\n", truncate(d.Description, 80))
	}
	fmt.Fprintf(os.Stdout, "    Saved: %s\n", tpl.CreatedAt.Format("2006-01-02 15:04"))
}

func printRelistResult(r *vinted.RelistResult) {
	fmt.Fprintf(os.Stdout, " Source item:  %d\n", r.SourceID)
	fmt.Fprintf(os.Stdout, " New listing:  %d\n", r.NewID)
	if r.NewURL != "" {
		fmt.Fprintf(os.Stdout, " URL:          %s\n", r.NewURL)
	}
	fmt.Fprintf(os.Stdout, " Photos:       %d uploaded", r.PhotosUploaded)
	if r.PhotosFailed > 0 {
		fmt.Fprintf(os.Stdout, ", %d failed", r.PhotosFailed)
	}
	fmt.Fprintln(os.Stdout)
	if r.SourceDeleted {
		fmt.Fprintln(os.Stdout, " Source listing deleted.")
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
