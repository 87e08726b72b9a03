package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/tomz197/colorguess/internal/color"
)

// Channel accent colors.
var channelHex = [3]string{
	color.Red:   "#ff5f5f",
	color.Green: "#5fd75f",
	color.Blue:  "#5f87ff",
}

// cueFloor is the dimmest shade a closeness cue fades to.
var cueFloor = colorful.Color{R: 0.2, G: 0.2, B: 0.2}

// Slider glyphs.
const (
	sliderFilled = '━'
	sliderEmpty  = '─'
	sliderKnob   = '●'
)

// ParseProfile maps a configured profile name to a termenv profile.
// ok is false for "auto", meaning the profile should be detected.
func ParseProfile(name string) (p termenv.Profile, ok bool) {
	switch strings.ToLower(name) {
	case "truecolor":
		return termenv.TrueColor, true
	case "ansi256":
		return termenv.ANSI256, true
	case "ansi":
		return termenv.ANSI, true
	case "ascii":
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}

// Painter turns game values into styled strings for one output.
type Painter struct {
	r       *lipgloss.Renderer
	label   lipgloss.Style
	faint   lipgloss.Style
	bold    lipgloss.Style
	dialog  lipgloss.Style
	channel [3]lipgloss.Style
}

// NewPainter creates a painter for w. profile is a name accepted by
// ParseProfile; "auto" detects the profile using opts.
func NewPainter(w io.Writer, profile string, opts ...termenv.OutputOption) *Painter {
	r := lipgloss.NewRenderer(w, opts...)
	if p, ok := ParseProfile(profile); ok {
		r.SetColorProfile(p)
	}

	p := &Painter{
		r:     r,
		label: r.NewStyle().Bold(true),
		faint: r.NewStyle().Faint(true),
		bold:  r.NewStyle().Bold(true),
		dialog: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#a8a8a8")).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
	for _, ch := range color.Channels {
		p.channel[ch] = r.NewStyle().Foreground(lipgloss.Color(channelHex[ch]))
	}
	return p
}

// Swatch renders a solid block of c, width columns by height rows.
func (p *Painter) Swatch(c color.Color3, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	row := p.r.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", width))
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// Slider renders one channel slider: marker, channel letter, the 0..255
// scale with its knob at v, and the current 0..255 value.
func (p *Painter) Slider(ch color.Channel, v float64, width int, selected bool) string {
	if width < 3 {
		width = 3
	}
	pos := int(math.Round(color.Clamp(v) * float64(width-1)))

	var filled, empty strings.Builder
	for i := 0; i < pos; i++ {
		filled.WriteRune(sliderFilled)
	}
	filled.WriteRune(sliderKnob)
	for i := pos + 1; i < width; i++ {
		empty.WriteRune(sliderEmpty)
	}

	marker := "  "
	if selected {
		marker = p.bold.Render("› ")
	}
	name := strings.ToUpper(ch.String()[:1])
	return marker +
		p.channel[ch].Bold(selected).Render(name) + " " +
		p.channel[ch].Render("0 ") +
		p.channel[ch].Render(filled.String()) +
		p.faint.Render(empty.String()) +
		p.channel[ch].Render(" 255") +
		fmt.Sprintf("  %3d", color.To255(v))
}

// Cue renders the per-channel closeness indicator shown after a reveal.
// The block fades from gray toward the channel color as closeness nears 1.
func (p *Painter) Cue(ch color.Channel, closeness float64) string {
	base, _ := colorful.Hex(channelHex[ch])
	shade := cueFloor.BlendRgb(base, color.Clamp(closeness)).Clamped()
	block := p.r.NewStyle().Foreground(lipgloss.Color(shade.Hex())).Render("██")
	return fmt.Sprintf("%s %3.0f%%", block, closeness*100)
}

// Label renders emphasized text.
func (p *Painter) Label(s string) string {
	return p.label.Render(s)
}

// Faint renders de-emphasized text.
func (p *Painter) Faint(s string) string {
	return p.faint.Render(s)
}

// Dialog renders a bordered, centered box with a bold title line.
func (p *Painter) Dialog(title string, lines ...string) string {
	body := append([]string{p.bold.Render(title), ""}, lines...)
	return p.dialog.Render(lipgloss.JoinVertical(lipgloss.Center, body...))
}

// BlockSize returns the printable width and height of a rendered block.
func BlockSize(block string) (width, height int) {
	return lipgloss.Width(block), lipgloss.Height(block)
}
