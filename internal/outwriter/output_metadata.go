package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/akbargherbal/git-viz-sub001/internal/contract"
	"github.com/akbargherbal/git-viz-sub001/schema"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMetadata outputs the repository metadata, dispatching based on the output format configured.
func PrintMetadata(md *schema.RepositoryMetadata, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeMetadataJSONResults(md, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeMetadataCSVResults(md, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable sections
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetadataText(md, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote metadata")
	}
	return nil
}

// writeMetadataJSONResults handles opening the file and dumping the metadata.
func writeMetadataJSONResults(md *schema.RepositoryMetadata, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, md)
	}, "Wrote JSON")
}

// writeMetadataCSVResults handles opening the file and calling the CSV writer.
func writeMetadataCSVResults(md *schema.RepositoryMetadata, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForMetadata(csvWriter, md, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeCSVResultsForMetadata writes the per-directory statistics in CSV form.
// The scalar repository fields do not flatten into rows, so CSV output
// carries the directory table only.
func writeCSVResultsForMetadata(w *csv.Writer, md *schema.RepositoryMetadata, fmtFloat func(float64) string, intFmt string) error {
	// 1. Write Header Row
	header := []string{
		"rank",
		"directory",
		"dir_id",
		"commits",
		"activity_score",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for i, d := range md.Directories {
		row := []string{
			strconv.Itoa(i + 1),            // Rank
			d.Path,                         // Directory Path
			fmt.Sprintf(intFmt, d.DirID),   // Directory Identifier
			fmt.Sprintf(intFmt, d.Commits), // Commits
			fmtFloat(d.ActivityScore),      // Activity Score
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeMetadataText generates and writes the human-readable metadata view.
func writeMetadataText(md *schema.RepositoryMetadata, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	// Identity and date range first
	days := contract.CalculateDaysBetween(md.FirstCommit, md.LastCommit)
	if _, err := fmt.Fprintf(writer, "Repository: %s\n", md.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Generated:  %s\n", md.GeneratedAt.Format(contract.DateTimeFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "History:    %s to %s (%d days)\n",
		md.FirstCommit.Format(contract.DateOnlyFormat),
		md.LastCommit.Format(contract.DateOnlyFormat),
		days,
	); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Totals:     %s commits, %s files, %s authors\n",
		humanize.Comma(int64(md.TotalCommits)),
		humanize.Comma(int64(md.TotalFiles)),
		humanize.Comma(int64(md.TotalAuthors)),
	); err != nil {
		return err
	}

	// Authors in source order
	if _, err := fmt.Fprintf(writer, "\nAuthors:\n"); err != nil {
		return err
	}
	for _, a := range md.Authors {
		line := a.Name
		if a.Email != "" {
			line = fmt.Sprintf("%s <%s>", a.Name, a.Email)
		}
		if _, err := fmt.Fprintf(writer, "  %s: %d commits\n", line, a.Commits); err != nil {
			return err
		}
	}

	// File-type histogram table
	if _, err := fmt.Fprintf(writer, "\nFile types:\n"); err != nil {
		return err
	}
	if err := writeExtensionTable(md.Extensions, intFmt, writer); err != nil {
		return err
	}

	// Directory statistics table
	if _, err := fmt.Fprintf(writer, "\nDirectories:\n"); err != nil {
		return err
	}
	if err := writeDirectoryTable(md.Directories, cfg, fmtFloat, intFmt, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Load completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeExtensionTable renders the file-type histogram.
func writeExtensionTable(extensions []schema.ExtensionCount, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Extension", "Files"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, e := range extensions {
		data = append(data, []string{
			strconv.Itoa(i + 1),          // Rank
			e.Extension,                  // Extension
			fmt.Sprintf(intFmt, e.Files), // Files
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeDirectoryTable renders the directory statistics that matched the tree.
func writeDirectoryTable(dirs []schema.DirectoryStat, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Directory", "ID", "Commits", "Score"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxPathWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, d := range dirs {
		data = append(data, []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(d.Path, maxPathWidth), // Directory
			fmt.Sprintf(intFmt, d.DirID),   // Directory Identifier
			fmt.Sprintf(intFmt, d.Commits), // Commits
			fmtFloat(d.ActivityScore),      // Activity Score
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
