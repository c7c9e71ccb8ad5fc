package format

// Badge colours.
const (
	ColorSuccess   = "success"
	ColorDanger    = "danger"
	ColorWarning   = "warning"
	ColorInfo      = "info"
	ColorSecondary = "secondary"
)

var statusColors = map[string]string{
	"ACTIVE":      ColorSuccess,
	"BLOCKED":     ColorDanger,
	"EXPIRED":     ColorWarning,
	"COMPLETED":   ColorSuccess,
	"IN_PROGRESS": ColorWarning,
	"CANCELLED":   ColorDanger,
	"SUCCESS":     ColorSuccess,
	"FAILED":      ColorDanger,
	"PENDING":     ColorInfo,
}

var ansiCodes = map[string]string{
	ColorSuccess:   "32",
	ColorDanger:    "31",
	ColorWarning:   "33",
	ColorInfo:      "36",
	ColorSecondary: "90",
}

// Badge is a status label with its colour.
type Badge struct {
	Label string
	Color string
}

// StatusBadge maps a status to its colour; unknown statuses are secondary.
func StatusBadge[S ~string](status S) Badge {
	color, ok := statusColors[string(status)]
	if !ok {
		color = ColorSecondary
	}
	return Badge{Label: string(status), Color: color}
}

// Render returns the label, wrapped in ANSI colour codes when ansi is set.
func (b Badge) Render(ansi bool) string {
	if !ansi {
		return b.Label
	}
	return Paint(b.Color, b.Label)
}

// Paint wraps s in the ANSI colour for the named badge colour.
func Paint(color, s string) string {
	code, ok := ansiCodes[color]
	if !ok {
		code = ansiCodes[ColorSecondary]
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
