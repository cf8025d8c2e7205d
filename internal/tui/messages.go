package tui

import "github.com/Veraticus/sapra/internal/feed"

// secondaryLoadedMsg carries one finished secondary feed.
type secondaryLoadedMsg struct {
	secondary feed.Secondary
}

// secondaryDoneMsg reports that every secondary feed has finished.
type secondaryDoneMsg struct{}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	err  error
	rows int
}

// exportedMsg reports the outcome of an export.
type exportedMsg struct {
	err   error
	sheet string
	rows  int
}
