package accel

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render a table with one row per structure.
func StatsTable(w io.Writer, stats ...Stats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Structure", "Primitives", "Nodes", "Leaves", "Empty leaves", "References", "Refs/prim", "Max depth", "Build time"})
	for _, st := range stats {
		refsPerPrim := 0.0
		if st.Primitives > 0 {
			refsPerPrim = float64(st.References) / float64(st.Primitives)
		}
		table.Append([]string{
			st.Kind.String(),
			fmt.Sprintf("%d", st.Primitives),
			fmt.Sprintf("%d", st.Nodes),
			fmt.Sprintf("%d", st.Leaves),
			fmt.Sprintf("%d", st.EmptyLeaves),
			fmt.Sprintf("%d", st.References),
			fmt.Sprintf("%.2f", refsPerPrim),
			fmt.Sprintf("%d", st.MaxDepth),
			st.BuildTime.String(),
		})
	}
	table.Render()
}
