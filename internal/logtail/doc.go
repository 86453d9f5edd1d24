// Package logtail reads and formats the Sanctuary log file.
//
// Read returns the last N lines using a ring buffer, so memory stays
// proportional to N rather than the file size. Parse understands both the
// hclog text and JSON formats written by the logging package, and Format
// renders an entry on one line with lipgloss colors for the terminal.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	for _, line := range logtail.Filter(lines, "warn") {
//		if e, ok := logtail.Parse(line); ok {
//			fmt.Println(logtail.Format(e, true))
//		}
//	}
//
// A missing log file is not an error; Read returns no lines.
package logtail
