// Package sheet renders room attendance sheets as PDF files laid out as
// <date>/<session>/attendance_<room>.pdf under an output root.
package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/rhyrak/go-seating/pkg/model"
)

// Page layout in points, measured from the top left corner of a Letter page.
const (
	marginLeft     = 30.0
	nameColumn     = 30.0
	rollColumn     = 200.0
	signColumn     = 350.0
	titleY         = 40.0
	roomY          = 60.0
	headerY        = 100.0
	firstRowY      = 120.0
	rowHeight      = 20.0
	bottomMargin   = 100.0
	footerGap      = 30.0
	signatureBlank = "____________________"

	coreFamily = "Helvetica"
	utf8Family = "SheetFont"
)

type Renderer struct {
	fs   afero.Fs
	root string
	font []byte
	log  *zap.Logger
}

func NewRenderer(fs afero.Fs, root string) *Renderer {
	return &Renderer{fs: fs, root: root, log: zap.NewNop()}
}

// WithFont makes sheets use a UTF-8 TrueType font instead of the built-in
// Helvetica, which only covers Windows-1252.
func (r *Renderer) WithFont(ttf []byte) *Renderer {
	r.font = ttf
	return r
}

func (r *Renderer) WithLogger(log *zap.Logger) *Renderer {
	if log != nil {
		r.log = log
	}
	return r
}

// Path returns where the sheet of a room is written.
func (r *Renderer) Path(s *model.RoomSheet) string {
	return filepath.Join(r.root, safeName(s.Date), safeName(string(s.Session)), "attendance_"+safeName(s.Room)+".pdf")
}

// Render writes one sheet and returns its path.
func (r *Renderer) Render(s *model.RoomSheet) (string, error) {
	path := r.Path(s)
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	pdf, lossy := build(s, r.font)
	for _, text := range lossy {
		r.log.Warn("text cannot be printed with the built-in font, configure output.font",
			zap.String("text", text),
			zap.String("date", s.Date),
			zap.String("session", string(s.Session)),
			zap.String("room", s.Room))
	}
	out, err := r.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := pdf.Output(out); err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, nil
}

// RenderAll writes every sheet and stops at the first failure.
func (r *Renderer) RenderAll(sheets []*model.RoomSheet) ([]string, error) {
	paths := make([]string, 0, len(sheets))
	for _, s := range sheets {
		path, err := r.Render(s)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// build lays out the sheet. Without a UTF-8 font it returns the texts that do
// not fit Windows-1252; those print with substituted characters.
func build(s *model.RoomSheet, font []byte) (*fpdf.Fpdf, []string) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	_, height := pdf.GetPageSize()

	family := coreFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	var lossy []string
	if len(font) > 0 {
		pdf.AddUTF8FontFromBytes(utf8Family, "", font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", font)
		family = utf8Family
		tr = func(text string) string { return text }
	}
	text := func(x, y float64, t string) {
		if len(font) == 0 && !encodable(t) {
			lossy = append(lossy, t)
		}
		pdf.Text(x, y, tr(t))
	}

	pdf.AddPage()
	pdf.SetFont(family, "B", 14)
	text(marginLeft, titleY, fmt.Sprintf("Attendance Sheet - %s (%s)", s.Day, s.Session))
	text(marginLeft, roomY, "Room No.: "+s.Room)

	pdf.SetFont(family, "B", 10)
	pdf.Text(nameColumn, headerY, "Student Name")
	pdf.Text(rollColumn, headerY, "Roll No.")
	pdf.Text(signColumn, headerY, "Signature of Student")

	y := firstRowY
	pdf.SetFont(family, "", 10)
	for _, student := range s.Students {
		text(nameColumn, y, student.Name)
		text(rollColumn, y, student.RollNo)
		pdf.Text(signColumn, y, signatureBlank)

		y += rowHeight
		if y > height-bottomMargin {
			pdf.AddPage()
			pdf.SetFont(family, "", 10)
			y = titleY
		}
	}

	pdf.SetFont(family, "B", 10)
	pdf.Text(marginLeft, y+footerGap, "Invigilator's Signature: "+signatureBlank)
	return pdf, lossy
}

// encodable reports whether the built-in fonts can print t unchanged.
func encodable(t string) bool {
	_, err := charmap.Windows1252.NewEncoder().String(t)
	return err == nil
}

// safeName keeps path separators out of directory and file names.
func safeName(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}
