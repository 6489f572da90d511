// Command gen_snapshots_table lists the integration golden snapshots as a
// markdown table inside README.md, between the SNAPSHOTS markers.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli"
)

const (
	startMarker = "<!-- SNAPSHOTS:START -->"
	endMarker   = "<!-- SNAPSHOTS:END -->"
)

var errMarkersMissing = errors.New("snapshot markers not found")

type snapshot struct {
	Name    string
	Encoded string
}

func main() {
	app := cli.NewApp()
	app.Name = "gen_snapshots_table"
	app.Usage = "update the README snapshot table from the integration golden images"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "readme",
			Value: "README.md",
			Usage: "README file to update in place",
		},
		cli.StringFlag{
			Name:  "snapshots",
			Value: filepath.Join("test", "integration", "testdata", "snapshots"),
			Usage: "directory holding the golden PNG snapshots",
		},
		cli.IntFlag{
			Name:  "cols",
			Value: 3,
			Usage: "number of snapshots per row",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 256,
			Usage: "image width in pixels",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Failed to update snapshot table", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	dir := c.String("snapshots")
	items, err := collectSnapshots(dir)
	if err != nil {
		return err
	}

	readme := c.String("readme")
	content, err := os.ReadFile(readme)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", readme, err)
	}

	updated, err := splice(string(content), renderTable(items, filepath.ToSlash(dir), c.Int("cols"), c.Int("width")))
	if err != nil {
		return fmt.Errorf("%s: %w", readme, err)
	}

	if err := os.WriteFile(readme, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", readme, err)
	}

	slog.Info("Snapshot table updated", "readme", readme, "snapshots", len(items))
	return nil
}

// collectSnapshots returns the golden PNGs in dir sorted by name. Mismatch
// dumps written by failing tests (*_actual.png) are skipped.
func collectSnapshots(dir string) ([]snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var items []snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".png") {
			continue
		}
		if strings.Contains(name, "_actual.") {
			continue
		}
		items = append(items, snapshot{
			Name:    strings.TrimSuffix(name, filepath.Ext(name)),
			Encoded: url.PathEscape(name),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func renderTable(items []snapshot, dir string, cols, width int) string {
	if cols <= 0 {
		cols = 3
	}

	var b strings.Builder
	b.WriteString("<table>\n")
	for i := 0; i < len(items); i += cols {
		b.WriteString("  <tr>\n")
		for c := 0; c < cols; c++ {
			if i+c >= len(items) {
				b.WriteString("    <td></td>\n")
				continue
			}
			it := items[i+c]
			fmt.Fprintf(&b, "    <td align=\"center\"><img src=\"%s\" width=\"%d\" /><br><sub>%s</sub></td>\n",
				path.Join(dir, it.Encoded), width, it.Name)
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

// splice replaces everything between the markers with table.
func splice(content, table string) (string, error) {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return "", errMarkersMissing
	}

	after := content[end:]
	var b strings.Builder
	b.WriteString(content[:start+len(startMarker)])
	b.WriteString("\n")
	b.WriteString(table)
	if !strings.HasPrefix(after, "\n") && !strings.HasSuffix(table, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(after)
	return b.String(), nil
}
