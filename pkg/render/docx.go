package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	docx "github.com/lukasjarosch/go-docx"
)

// Context carries every placeholder the SKA certificate template binds. The
// schema is fixed: a change to the template means a change here, not a
// runtime surprise.
type Context struct {
	Name       string
	NIM        string
	BirthPlace string
	BirthDate  string
	Program    string
	Semester   string
	Address    string

	AcademicYear string
	MonthRoman   string
	Year         int
	IssuedDate   string
}

func (c Context) placeholders() docx.PlaceholderMap {
	return docx.PlaceholderMap{
		"nama":              c.Name,
		"nim":               c.NIM,
		"tempat_lahir":      c.BirthPlace,
		"tanggal_lahir":     c.BirthDate,
		"program_studi":     c.Program,
		"semester":          c.Semester,
		"alamat":            c.Address,
		"tahun_akademik":    c.AcademicYear,
		"bulan":             c.MonthRoman,
		"tahun":             c.Year,
		"tanggal_pembuatan": c.IssuedDate,
	}
}

// DocxRenderer fills the pre-authored certificate template and serialises
// the result to an in-memory buffer. Rendering is deterministic for the
// same template and context.
type DocxRenderer struct {
	templatePath string
}

// NewDocxRenderer constructs a renderer bound to one template file.
func NewDocxRenderer(templatePath string) *DocxRenderer {
	return &DocxRenderer{templatePath: templatePath}
}

// Render substitutes every placeholder and returns the document bytes.
// A missing template or a placeholder mismatch in either direction (schema
// key absent from the template, template placeholder unknown to the schema)
// aborts the render; callers must not dispatch a partial document.
func (r *DocxRenderer) Render(ctx Context) ([]byte, error) {
	doc, err := docx.Open(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", r.templatePath, err)
	}

	// Replace is called per key: ReplaceAll swallows ErrPlaceholderNotFound
	// and would let a stale template render without its schema fields.
	for key, value := range ctx.placeholders() {
		if err := doc.Replace(key, fmt.Sprint(value)); err != nil {
			return nil, fmt.Errorf("fill template: placeholder %q: %w", key, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := doc.Write(buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	leftover, err := unboundPlaceholders(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("inspect rendered document: %w", err)
	}
	if len(leftover) > 0 {
		return nil, fmt.Errorf("template binds unknown placeholders: %s", strings.Join(leftover, ", "))
	}

	return buf.Bytes(), nil
}

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z0-9_]+\}`)

// unboundPlaceholders scans the rendered archive for placeholders the
// schema did not bind.
func unboundPlaceholders(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, f := range zr.File {
		if !isDocumentPart(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}
		for _, match := range placeholderPattern.FindAllString(string(content), -1) {
			seen[match] = struct{}{}
		}
	}

	leftover := make([]string, 0, len(seen))
	for match := range seen {
		leftover = append(leftover, match)
	}
	sort.Strings(leftover)
	return leftover, nil
}

func isDocumentPart(name string) bool {
	return name == "word/document.xml" ||
		strings.HasPrefix(name, "word/header") ||
		strings.HasPrefix(name, "word/footer")
}
