package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"playstore-analytics/models"
)

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	sectionColor = color.New(color.FgYellow, color.Bold)
	valueColor   = color.New(color.FgGreen, color.Bold)
)

// Print renders the report as console tables.
func (s *QueryService) Print(w io.Writer, r *models.Report) {
	sep := strings.Repeat("═", 60)

	titleColor.Fprintf(w, "\n%s\n  PLAY STORE CATALOG INSIGHTS (%d apps)\n%s\n\n", sep, r.TotalApps, sep)

	section(w, "Most reviewed apps")
	appTable(w, r.TopReviewed)

	section(w, "Apps per category")
	table := newTable(w, []string{"Category", "Apps"})
	for _, c := range r.Categories {
		table.Append([]string{c.Category, strconv.Itoa(c.Count)})
	}
	table.Render()

	section(w, "Most expensive apps")
	appTable(w, r.MostExpensive)

	single(w, "Most expensive game", r.MostExpensiveGame)
	single(w, "Most popular finance app", r.MostPopularFinance)
	single(w, "Teen game with the most reviews", r.TopTeenGame)
	single(w, "Free game with the most reviews", r.TopFreeGame)

	section(w, "Data transferred by the most popular lifestyle app")
	if r.LifestyleTransfer == nil {
		fmt.Fprintln(w, "  No matching apps")
	} else {
		t := r.LifestyleTransfer
		fmt.Fprintf(w, "  %s: %s installs × %s\n  ", t.App.App,
			humanize.Comma(t.App.Installs), humanize.IBytes(uint64(t.App.Size)))
		valueColor.Fprintf(w, "%.2f TiB\n", t.TiB)
	}
	fmt.Fprintln(w)
}

func section(w io.Writer, title string) {
	sectionColor.Fprintf(w, "\n  %s\n", title)
}

func single(w io.Writer, title string, a *models.App) {
	section(w, title)
	if a == nil {
		fmt.Fprintln(w, "  No matching apps")
		return
	}
	appTable(w, []*models.App{a})
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func appTable(w io.Writer, apps []*models.App) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "  No matching apps")
		return
	}
	table := newTable(w, []string{"App", "Category", "Rating", "Reviews", "Installs", "Size", "Price", "Content Rating"})
	for _, a := range apps {
		table.Append([]string{
			truncate(a.App, 40),
			a.Category,
			fmt.Sprintf("%.1f", a.Rating),
			humanize.Comma(a.Reviews),
			humanize.Comma(a.Installs),
			humanize.IBytes(uint64(a.Size)),
			formatPrice(a.Price),
			a.ContentRating,
		})
	}
	table.Render()
}

func formatPrice(p float64) string {
	if p == 0 {
		return models.DistributionFree
	}
	return fmt.Sprintf("$%.2f", p)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
