package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconDuplicate = "≈" // Almost equal (added more than once)
	IconMissing   = "✗" // Thin X (directory does not exist)
	IconOK        = " " // Space (OK - no icon to reduce noise)
)
