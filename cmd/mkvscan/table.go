package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mkvscan/internal/language"
	"mkvscan/internal/media/info"
)

// renderScanTable renders the session records as a rounded table. Failed rows
// keep their place with dashes and the error in the last column.
func renderScanTable(records []info.Record, languageNames bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Resolution", "FPS", "Codec", "Audio", "Subtitles", "Size", "Tier", "Error"})

	for _, record := range records {
		if record.Failed() {
			tw.AppendRow(table.Row{
				filepath.Base(record.Path), "-", "-", "-", "-", "-", "-", record.Tier.String(), record.Err,
			})
			continue
		}
		tw.AppendRow(table.Row{
			filepath.Base(record.Path),
			record.Resolution(),
			formatFrameRate(record.FrameRate),
			record.VideoCodec,
			formatLanguages(record.AudioLanguages, languageNames),
			formatLanguages(record.SubtitleLanguages, languageNames),
			formatSize(record.SizeBytes),
			record.Tier.String(),
			"",
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	return tw.Render()
}

func formatFrameRate(rate float64) string {
	if rate <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", rate)
}

func formatLanguages(tags []string, displayNames bool) string {
	if len(tags) == 0 {
		return "-"
	}
	if displayNames {
		return strings.Join(language.DisplayNames(tags), ", ")
	}
	return strings.Join(tags, ", ")
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bytes))
}
