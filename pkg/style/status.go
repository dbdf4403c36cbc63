package style

import (
	"github.com/pterm/pterm"
)

// Status classifies a line of release output.
type Status string

const (
	StatusActive  Status = "active"  // a watched symlink points at this release
	StatusKept    Status = "kept"    // present and untouched
	StatusRemoved Status = "removed" // deleted by a clean
	StatusPlanned Status = "planned" // would be deleted, dry-run only
	StatusBroken  Status = "broken"  // watched symlink did not resolve
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusActive:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case StatusRemoved:
		return pterm.NewStyle(pterm.FgRed)
	case StatusPlanned:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusBroken:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusBadge renders the one-character marker shown before a line.
func StatusBadge(status Status) string {
	switch status {
	case StatusActive:
		return StatusStyle(status).Sprint("●")
	case StatusRemoved:
		return StatusStyle(status).Sprint("✗")
	case StatusPlanned:
		return StatusStyle(status).Sprint("~")
	case StatusBroken:
		return StatusStyle(status).Sprint("!")
	default:
		return StatusStyle(status).Sprint("·")
	}
}
