// package formatter exports catalog and error log data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/repositories"
)

// ExportVideosCSV converts a video listing to CSV with columns: ID, Title, Channel, Duration, Published, Tags
func ExportVideosCSV(videos []*models.Video) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Channel", "Duration", "Published", "Tags"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		published := ""
		if !video.PublishedAt.IsZero() {
			published = video.PublishedAt.Format(time.RFC3339)
		}
		record := []string{
			video.ID,
			video.Title,
			video.ChannelID,
			strconv.Itoa(video.Duration),
			published,
			strings.Join(video.Tags, ";"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportErrorsCSV converts error log records to CSV with columns: RecordedAt, ItemType, ItemID, Operation, Message
func ExportErrorsCSV(records []repositories.ErrorRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"RecordedAt", "ItemType", "ItemID", "Operation", "Message"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		record := []string{
			rec.RecordedAt.Format(time.RFC3339),
			rec.ItemType,
			rec.ItemID,
			rec.Operation,
			rec.Message,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportChannelMarkdown renders a channel and its imported videos as Markdown
func ExportChannelMarkdown(channel *models.Channel, videos []*models.Video) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", channel.Name))

	if channel.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", channel.Description))
	}
	if channel.URL != "" {
		buf.WriteString(fmt.Sprintf("**URL**: %s\n", channel.URL))
	}
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(videos)))

	buf.WriteString("## Videos\n\n")
	for i, video := range videos {
		tagPart := ""
		if len(video.Tags) > 0 {
			tagPart = fmt.Sprintf(" (%s)", strings.Join(video.Tags, ", "))
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s]\n", i+1, video.Title, tagPart, formatDuration(video.Duration)))
	}

	return buf.Bytes()
}

// WriteChannelExport exports a channel's videos to CSV and Markdown files.
//
// Defaults to the channel ID as the base filename & creates {base}_videos.csv and {base}.md
func WriteChannelExport(channel *models.Channel, videos []*models.Video, baseFilepath string) ([]string, error) {
	if baseFilepath == "" {
		baseFilepath = channel.ID
	}

	csvData, err := ExportVideosCSV(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	csvFile := baseFilepath + "_videos.csv"
	if err := os.WriteFile(csvFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	mdFile := baseFilepath + ".md"
	if err := os.WriteFile(mdFile, ExportChannelMarkdown(channel, videos), 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return []string{csvFile, mdFile}, nil
}

// formatDuration renders a second count as m:ss.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
