package render

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	docx "github.com/lukasjarosch/go-docx"
	"github.com/stretchr/testify/require"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const fullDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>SURAT KETERANGAN AKTIF KULIAH</w:t></w:r></w:p>
<w:p><w:r><w:t>Nama: {nama}</w:t></w:r></w:p>
<w:p><w:r><w:t>NIM: {nim}</w:t></w:r></w:p>
<w:p><w:r><w:t>Tempat/Tgl Lahir: {tempat_lahir}, {tanggal_lahir}</w:t></w:r></w:p>
<w:p><w:r><w:t>Program Studi: {program_studi}</w:t></w:r></w:p>
<w:p><w:r><w:t>Semester: {semester}</w:t></w:r></w:p>
<w:p><w:r><w:t>Alamat: {alamat}</w:t></w:r></w:p>
<w:p><w:r><w:t>Tahun Akademik {tahun_akademik}</w:t></w:r></w:p>
<w:p><w:r><w:t>Nomor: {bulan}/{tahun}</w:t></w:r></w:p>
<w:p><w:r><w:t>Sungai Penuh, {tanggal_pembuatan}</w:t></w:r></w:p>
</w:body></w:document>`

// writeTemplate builds a minimal docx on disk containing the given
// document.xml body.
func writeTemplate(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template_ska.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
		"word/document.xml":   documentXML,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func testContext() Context {
	return Context{
		Name:         "BUDI SANTOSO",
		NIM:          "2023123456",
		BirthPlace:   "Kerinci",
		BirthDate:    "17 Mei 2003",
		Program:      "Pendidikan Agama Islam",
		Semester:     "V",
		Address:      "Jl. Muradi, Sungai Penuh",
		AcademicYear: "2024/2025",
		MonthRoman:   "IX",
		Year:         2024,
		IssuedDate:   "5 September 2024",
	}
}

func TestDocxRendererRender(t *testing.T) {
	renderer := NewDocxRenderer(writeTemplate(t, fullDocumentXML))

	data, err := renderer.Render(testContext())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// The output is still a zip archive; the filled document must carry the
	// context values and no leftover placeholders.
	doc := readDocumentXML(t, data)
	require.Contains(t, doc, "BUDI SANTOSO")
	require.Contains(t, doc, "2023123456")
	require.Contains(t, doc, "2024/2025")
	require.NotContains(t, doc, "{nama}")
	require.NotContains(t, doc, "{tahun_akademik}")
}

func TestDocxRendererDeterministic(t *testing.T) {
	renderer := NewDocxRenderer(writeTemplate(t, fullDocumentXML))

	first, err := renderer.Render(testContext())
	require.NoError(t, err)
	second, err := renderer.Render(testContext())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDocxRendererPlaceholderMismatch(t *testing.T) {
	// Template only binds a subset of the schema; the render must fail
	// rather than produce a partially filled certificate.
	partial := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Nama: {nama}</w:t></w:r></w:p>
</w:body></w:document>`
	renderer := NewDocxRenderer(writeTemplate(t, partial))

	_, err := renderer.Render(testContext())
	require.Error(t, err)
	require.ErrorIs(t, err, docx.ErrPlaceholderNotFound)
}

func TestDocxRendererUnknownPlaceholder(t *testing.T) {
	// Template carries a placeholder the schema does not know about; the
	// certificate would go out with a literal {jabatan} left in the text.
	extended := strings.Replace(fullDocumentXML, "</w:body>",
		`<w:p><w:r><w:t>Jabatan: {jabatan}</w:t></w:r></w:p></w:body>`, 1)
	renderer := NewDocxRenderer(writeTemplate(t, extended))

	_, err := renderer.Render(testContext())
	require.Error(t, err)
	require.Contains(t, err.Error(), "{jabatan}")
}

func TestDocxRendererMissingTemplate(t *testing.T) {
	renderer := NewDocxRenderer(filepath.Join(t.TempDir(), "missing.docx"))
	_, err := renderer.Render(testContext())
	require.Error(t, err)
}

func readDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			buf, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(buf)
		}
	}
	t.Fatalf("word/document.xml not found in rendered output")
	return ""
}
