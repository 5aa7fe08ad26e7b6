package printer

import (
	"io"

	"github.com/blang/semver"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/hostapklok/flare-bypasser/models"
)

// Versions renders the numbered release menu the interactive mode selects
// from. Rows keep the API order, newest release first.
func Versions(out io.Writer, releases []models.Release) {

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("#", "Version", "Published", "Notes")
	tbl.WithWriter(out).WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for i, r := range releases {
		notes := ""
		if r.Prerelease {
			notes = "pre-release"
		} else if v, err := semver.ParseTolerant(r.Tag); err == nil && len(v.Pre) > 0 {
			notes = "pre-release"
		}

		published := ""
		if !r.PublishedAt.IsZero() {
			published = r.PublishedAt.Format("2006-01-02")
		}
		tbl.AddRow(i+1, r.Tag, published, notes)
	}

	tbl.Print()
}
