// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Thys1a/WebAccounting/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#6C8EEF") // Indigo
	// SuccessColor indicates successful operations and positive balances.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors and negative balances.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text such as record ids.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// FormatAmount renders a signed amount, teal for money in, red for money
// out.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	if amount.IsNegative() {
		return ErrorStyle.Render(s)
	}
	return SuccessStyle.Render("+" + s)
}

// FormatBalance renders a derived balance, red when in deficit.
func FormatBalance(balance decimal.Decimal) string {
	s := balance.StringFixed(2)
	if balance.IsNegative() {
		return ErrorStyle.Render(s)
	}
	return BoldStyle.Render(s)
}

// FormatStatus renders a board status badge.
func FormatStatus(status model.BoardStatus) string {
	if status == model.BoardClosed {
		return SubtleStyle.Render("closed")
	}
	return SuccessStyle.Render("active")
}
