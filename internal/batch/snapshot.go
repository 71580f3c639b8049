package batch

import (
	"fmt"
	"strings"

	"fileshare/pkg/utils"
)

// Snapshot is an immutable copy of a batch for observers
type Snapshot struct {
	Generation string
	Folder     bool
	Phase      Phase
	Counters   Counters
	Items      []Item
}

// Snapshot returns a copy of the batch state
func (b *Batch) Snapshot() Snapshot {
	items := make([]Item, len(b.items))
	copy(items, b.items)
	return Snapshot{
		Generation: b.generation,
		Folder:     b.folder,
		Phase:      b.phase,
		Counters:   b.counters,
		Items:      items,
	}
}

// Current returns the item being uploaded, if any
func (s Snapshot) Current() (Item, bool) {
	for _, item := range s.Items {
		if item.Status == StatusUploading {
			return item, true
		}
	}
	return Item{}, false
}

// Line is the rendered form of one item
type Line struct {
	ID     string
	Path   string
	Size   string
	Status Status
	Label  string
}

// Render projects a snapshot into display lines in item order
func Render(s Snapshot) []Line {
	lines := make([]Line, len(s.Items))
	for i, item := range s.Items {
		lines[i] = Line{
			ID:     item.ID,
			Path:   item.DisplayPath,
			Size:   utils.FormatFileSize(item.SizeBytes),
			Status: item.Status,
			Label:  label(item),
		}
	}
	return lines
}

func label(item Item) string {
	switch item.Status {
	case StatusUploading:
		return fmt.Sprintf("%d%%", item.ProgressPercent)
	case StatusFailed:
		if item.ErrorMessage != "" {
			return "Failed: " + item.ErrorMessage
		}
		return "Failed"
	default:
		return item.Status.String()
	}
}

// Summary renders the counters line. An item still in flight is shown as Uploading.
func Summary(c Counters) string {
	parts := []string{fmt.Sprintf("Pending: %d", c.Pending)}
	if c.Uploading > 0 {
		parts = append(parts, fmt.Sprintf("Uploading: %d", c.Uploading))
	}
	parts = append(parts,
		fmt.Sprintf("Success: %d", c.Success),
		fmt.Sprintf("Failed: %d", c.Failed),
	)
	return strings.Join(parts, "  ")
}
