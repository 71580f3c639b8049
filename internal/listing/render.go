package listing

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"fileshare/pkg/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	folderStyle = cellStyle.Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render draws the view as a table, groups first. Empty, error and loading views render
// their placeholder message.
func Render(v View) string {
	switch v.State {
	case StateLoading:
		return mutedStyle.Render("Loading...")
	case StateEmpty:
		return mutedStyle.Render(EmptyMessage)
	case StateError:
		return errorStyle.Render(ErrorMessage)
	}

	rows := make([][]string, 0, len(v.Groups)+len(v.Files))
	for _, g := range v.Groups {
		rows = append(rows, []string{
			"dir",
			g.Name + "/",
			strconv.Itoa(g.MemberCount),
			utils.FormatFileSize(g.TotalBytes),
			humanize.Time(g.LastUploadedAt),
			g.ZipURL,
		})
	}
	for _, f := range v.Files {
		rows = append(rows, []string{
			"file",
			f.Name,
			"",
			utils.FormatFileSize(f.SizeBytes),
			humanize.Time(f.UploadedAt),
			f.DownloadURL,
		})
	}

	groupRows := len(v.Groups)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("TYPE", "NAME", "FILES", "SIZE", "UPLOADED", "LINK").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < groupRows:
				return folderStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// RenderJSON encodes the view for scripts
func RenderJSON(v View) ([]byte, error) {
	if v.Groups == nil {
		v.Groups = []DirectoryGroup{}
	}
	if v.Files == nil {
		v.Files = []RootFile{}
	}
	return utils.EncodeJSON(v)
}
