package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/manifest"
	"github.com/arthur-debert/dotsync/pkg/materialize"
	"github.com/arthur-debert/dotsync/pkg/output/styles"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// statusStyles maps each materialization status to its style name
var statusStyles = map[materialize.Status]string{
	materialize.StatusCopied:         "Success",
	materialize.StatusHardlinked:     "Success",
	materialize.StatusSymlinked:      "Success",
	materialize.StatusPlanned:        "Info",
	materialize.StatusSkippedMissing: "Warning",
	materialize.StatusSkippedExists:  "Warning",
	materialize.StatusFailed:         "Error",
}

// Renderer writes command results to the terminal using the embedded
// templates. Templates call {{style "Name" value}} to apply a style from the
// registry; in no-color mode the value is written as is.
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	noColor   bool
}

// NewRenderer creates a Renderer writing to w.
//
// Color is disabled when noColor is set, when NO_COLOR is present in the
// environment, or when w is not a terminal.
func NewRenderer(w io.Writer, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("output.Renderer")

	noColor = !SetupColor(w, noColor)
	log.Debug().
		Bool("noColor", noColor).
		Str("TERM", os.Getenv("TERM")).
		Msg("Creating renderer")

	r := &Renderer{writer: w, noColor: noColor}
	tmpl, err := template.New("output").Funcs(template.FuncMap{
		"style":  r.style,
		"status": r.status,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

// SetupColor sets the global lipgloss color profile for output written to
// w and reports whether color is on.
func SetupColor(w io.Writer, noColor bool) bool {
	if noColor || !ColorEnabled(w) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	}
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	return true
}

// ColorEnabled reports whether w is a terminal that should receive color
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderList writes one tracked path per line
func (r *Renderer) RenderList(entries []types.TrackedPath) error {
	return r.execute("list.tmpl", entries)
}

// RenderTrack writes the outcome of an add
func (r *Renderer) RenderTrack(result *manifest.TrackResult) error {
	return r.execute("track.tmpl", result)
}

// RenderUntrack writes the outcome of a remove
func (r *Renderer) RenderUntrack(result *manifest.UntrackResult) error {
	return r.execute("untrack.tmpl", result)
}

// RenderReport writes one line per manifest entry followed by a summary
func (r *Renderer) RenderReport(report *materialize.Report) error {
	return r.execute("report.tmpl", report)
}

// RenderError renders an error message with the Error style
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.style("Error", "Error:"), err)
	return writeErr
}

// RenderMessage renders a single line with the named style
func (r *Renderer) RenderMessage(style, message string) error {
	_, err := fmt.Fprintln(r.writer, r.style(style, message))
	return err
}

func (r *Renderer) execute(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	_, err := r.writer.Write(buf.Bytes())
	return err
}

func (r *Renderer) style(name string, value interface{}) string {
	text := fmt.Sprint(value)
	if r.noColor {
		return text
	}
	return styles.GetStyle(name).Render(text)
}

func (r *Renderer) status(s materialize.Status) string {
	return r.style(statusStyles[s], fmt.Sprintf("%-17s", s))
}
