package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signintech/gopdf"
	"go.uber.org/zap"

	"mellow/internal/dailylog"
	"mellow/internal/pregnancy"
	"mellow/internal/profile"
)

// DefaultFontPaths are tried in order when no font is configured.
var DefaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

const (
	fontFamily = "Body"
	textWidth  = 500.0
)

// Summary is everything a provider report shows.
type Summary struct {
	GeneratedAt time.Time
	Profile     *profile.Profile
	Timeline    pregnancy.Timeline
	Logs        []dailylog.DailyLog
	Contacts    []profile.Contact
}

type Service struct {
	fontPaths []string
	outputDir string
	logger    *zap.Logger
}

// NewService uses fontPath when set and DefaultFontPaths otherwise. With an
// outputDir every export is also written there.
func NewService(fontPath, outputDir string, logger *zap.Logger) *Service {
	paths := DefaultFontPaths
	if fontPath != "" {
		paths = []string{fontPath}
	}
	return &Service{
		fontPaths: paths,
		outputDir: outputDir,
		logger:    logger,
	}
}

func (s *Service) BuildPDF(ctx context.Context, sum Summary) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := s.loadFont(&pdf); err != nil {
		return nil, err
	}

	w := &pdfWriter{pdf: &pdf}
	w.heading(20, "Pregnancy Summary")
	w.br(10)
	w.line(10, "Generated: "+sum.GeneratedAt.Format("02 Jan 2006 15:04"))
	w.br(15)

	w.heading(14, "Profile")
	p := sum.Profile
	if p == nil {
		p = profile.Default()
	}
	w.line(11, "Name: "+orDash(p.Name))
	w.line(11, "Due date: "+orDash(p.DueDate))
	w.line(11, "Last period: "+orDash(p.LastPeriodDate))
	if age := sum.Timeline.GestationalAge; age != nil {
		w.line(11, fmt.Sprintf("Gestational age: %d weeks %d days (trimester %d)", age.Week, age.Day, sum.Timeline.Trimester))
	}
	if d := sum.Timeline.DaysUntilDue; d != nil {
		w.line(11, fmt.Sprintf("Days until due: %d", *d))
	}
	if sum.Timeline.BabySize != "" {
		w.line(11, sum.Timeline.BabySize)
	}
	w.br(10)

	w.heading(14, "Daily Logs")
	if len(sum.Logs) == 0 {
		w.line(11, "- No logs recorded.")
	}
	for _, l := range sum.Logs {
		w.wrapped(11, "- "+describeLog(l))
	}
	w.br(10)

	w.heading(14, "Emergency Contacts")
	if len(sum.Contacts) == 0 {
		w.line(11, "- None added.")
	}
	for _, c := range sum.Contacts {
		line := fmt.Sprintf("- %s: %s", c.Name, c.Number)
		if c.Relationship != "" {
			line += " (" + c.Relationship + ")"
		}
		w.line(11, line)
	}

	w.br(20)
	w.wrapped(9, "This summary is self-reported and is not a medical record.")

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	s.logger.Info("PDF report generated", zap.Int("logs", len(sum.Logs)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Save writes data under the output directory, if one is configured, and
// returns the path written.
func (s *Service) Save(name string, data []byte) (string, error) {
	if s.outputDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	s.logger.Info("Report saved", zap.String("path", path))
	return path, nil
}

func (s *Service) loadFont(pdf *gopdf.GoPdf) error {
	var fontErr error
	for _, path := range s.fontPaths {
		err := pdf.AddTTFFont(fontFamily, path)
		if err == nil {
			s.logger.Debug("Loaded report font", zap.String("path", path))
			return nil
		}
		fontErr = err
	}
	return fmt.Errorf("failed to load font for PDF from %s: %w", strings.Join(s.fontPaths, ", "), fontErr)
}

// pdfWriter keeps the first error so the layout code reads top to bottom.
type pdfWriter struct {
	pdf *gopdf.GoPdf
	err error
}

func (w *pdfWriter) setSize(size float64) bool {
	if w.err != nil {
		return false
	}
	w.err = w.pdf.SetFont(fontFamily, "", size)
	return w.err == nil
}

func (w *pdfWriter) heading(size float64, text string) {
	if w.setSize(size) {
		w.pdf.Cell(nil, text)
		w.pdf.Br(size + 6)
	}
}

func (w *pdfWriter) line(size float64, text string) {
	if w.setSize(size) {
		w.breakPage()
		w.pdf.Cell(nil, text)
		w.pdf.Br(size + 4)
	}
}

func (w *pdfWriter) wrapped(size float64, text string) {
	if !w.setSize(size) {
		return
	}
	lines, err := w.pdf.SplitText(text, textWidth)
	if err != nil {
		lines = []string{text}
	}
	for _, l := range lines {
		w.breakPage()
		w.pdf.Cell(nil, l)
		w.pdf.Br(size + 4)
	}
}

func (w *pdfWriter) breakPage() {
	if w.pdf.GetY() > gopdf.PageSizeA4.H-60 {
		w.pdf.AddPage()
	}
}

func (w *pdfWriter) br(h float64) {
	w.pdf.Br(h)
}

func describeLog(l dailylog.DailyLog) string {
	parts := []string{l.Date}
	if l.Mood != "" {
		parts = append(parts, "mood "+string(l.Mood))
	}
	if l.Weight != nil {
		parts = append(parts, fmt.Sprintf("weight %.1f", *l.Weight))
	}
	if bp := l.BloodPressure; bp != nil {
		parts = append(parts, fmt.Sprintf("BP %d/%d", bp.Systolic, bp.Diastolic))
	}
	if len(l.Symptoms) > 0 {
		parts = append(parts, "symptoms: "+strings.Join(l.Symptoms, ", "))
	}
	if l.Notes != "" {
		parts = append(parts, "notes: "+l.Notes)
	}
	return strings.Join(parts, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
