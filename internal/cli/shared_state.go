package cli

import (
	"github.com/lakewatch/lakewatch/internal/dataset"
)

// SharedState carries cross-view state: the wired App and the
// currently selected upload. Views hold a pointer and read the live
// values.
type SharedState struct {
	App *App

	// Terminal dimensions, updated by the root model on resize.
	Width  int
	Height int

	// Currently selected upload; nil until one is picked on the
	// preview tab.
	Filename string
	Table    *dataset.Table
}

// chromeHeight is the vertical space taken by the tab bar and the help
// bar around the content area.
const chromeHeight = 4

// ContentHeight returns the height available for view content.
func (s *SharedState) ContentHeight() int {
	h := s.Height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

// HasDataset reports whether an upload has been selected.
func (s *SharedState) HasDataset() bool {
	return s.Table != nil && s.Table.NumCols() > 0
}
