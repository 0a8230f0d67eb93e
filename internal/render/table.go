package render

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// Table renders shows as a rounded terminal table.
func Table(shows []models.Show) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "Episodes", "Watched"})

	for i, show := range shows {
		watched := "no"
		if show.IsWatched {
			watched = "yes"
		}
		tw.AppendRow(table.Row{i + 1, show.Title, show.Episodes.String(), watched})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
