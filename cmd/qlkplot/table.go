package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/Masterhazi/quicklearnkit/src/plotting"
)

// printAnnotations draws one row per annotation with its anchor in data coordinates.
func printAnnotations(w io.Writer, c *plotting.Chart) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Text", "X", "Y", "Kind"})
	for i, a := range c.Annotations {
		role := "value"
		if a.Role == plotting.RoleMean {
			role = "mean"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			a.Text,
			strconv.FormatFloat(a.X, 'g', 6, 64),
			strconv.FormatFloat(a.Y, 'g', 6, 64),
			role,
		})
	}
	table.Render()
}
