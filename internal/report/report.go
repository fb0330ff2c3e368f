// Package report reshapes model output into indexed tabular form for
// display. It consumes the ordered-label plus label-to-values shape the
// gtex models return.
package report

import (
	"fmt"
	"io"

	linq "github.com/ahmetb/go-linq"

	"github.com/w-gao/gtex-go/pkg/gtex"
)

// Table is a gene-by-tissue grid of median expression values, the same
// shape a heatmap or grouped bar chart consumes.
type Table struct {
	Index   []string    // row labels, one per gene
	Columns []string    // column labels, one per tissue
	Cells   [][]float64 // Cells[i][j] is the value of Index[i] in Columns[j]
}

// MedianHeatmap arranges per-tissue median columns into a gene-by-tissue
// table. genes and tissues fix the row and column order; medians maps each
// tissue to its per-gene values in gene order.
func MedianHeatmap(genes, tissues []string, medians map[string][]float64) Table {
	cells := make([][]float64, len(genes))
	for i := range cells {
		cells[i] = make([]float64, len(tissues))
	}
	for j, tissue := range tissues {
		column := medians[tissue]
		for i := range genes {
			if i < len(column) {
				cells[i][j] = column[i]
			}
		}
	}
	return Table{
		Index:   append([]string(nil), genes...),
		Columns: append([]string(nil), tissues...),
		Cells:   cells,
	}
}

// SortExpression orders expression summaries by tissue, then subset group,
// then median, the ordering used for stratified expression listings.
func SortExpression(records []gtex.TissueExpression) []gtex.TissueExpression {
	var sorted []gtex.TissueExpression
	linq.From(records).
		OrderByT(func(r gtex.TissueExpression) string { return r.TissueSiteDetailID }).
		ThenByT(func(r gtex.TissueExpression) string { return r.SubsetGroup }).
		ThenByT(func(r gtex.TissueExpression) float64 { return r.Median }).
		ToSlice(&sorted)
	return sorted
}

// Render writes the table as aligned text.
func Render(w io.Writer, table Table) error {
	if _, err := fmt.Fprintf(w, "%-20s", ""); err != nil {
		return err
	}
	for _, column := range table.Columns {
		if _, err := fmt.Fprintf(w, "\t%s", column); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for i, label := range table.Index {
		if _, err := fmt.Fprintf(w, "%-20s", label); err != nil {
			return err
		}
		for _, value := range table.Cells[i] {
			if _, err := fmt.Fprintf(w, "\t%.3f", value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
