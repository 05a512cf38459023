package colour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const defaultWidth = 8

// ParseHex parses a hex colour with or without the '#' prefix.
// Supports formats: #RRGGBB, RRGGBB, #RGB, RGB.
func ParseHex(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return colorful.Color{}, fmt.Errorf("invalid hex colour length: %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return c, nil
}

// ColourPreviewWithText returns a colour block with the text centred on it.
// The text colour is chosen to contrast with the background.
func ColourPreviewWithText(hex, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	c, err := ParseHex(hex)
	if err != nil {
		return text
	}

	// Light background, use dark text.
	fg := "#ffffff"
	if l, _, _ := c.Lab(); l > 0.5 {
		fg = "#000000"
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg)).
		Width(width).
		MaxWidth(width).
		Align(lipgloss.Center).
		Render(text)
}

// SignatureSwatches renders one labelled block per colour in a signature.
func SignatureSwatches(signature string) string {
	colours := SplitSignature(signature)
	if len(colours) == 0 {
		return "(no colours)"
	}

	blocks := make([]string, len(colours))
	for i, hex := range colours {
		blocks[i] = ColourPreviewWithText(hex, hex, defaultWidth)
	}
	return strings.Join(blocks, " ")
}
