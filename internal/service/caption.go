package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// AdminCaption is the one internal representation of the message that
// accompanies the certificate. Both caption variants derive from it: Rich
// for Telegram's HTML parse mode, Plain for the formatting fallback.
type AdminCaption struct {
	StudentName  string
	Program      string
	WhatsAppLink string
}

var plainPolicy = bluemonday.StrictPolicy()

// Rich renders the HTML caption. User-provided values are escaped so a name
// containing markup characters cannot break the parse.
func (c AdminCaption) Rich() string {
	b := &strings.Builder{}
	b.WriteString("<b>SK AKTIF BARU</b>\n")
	fmt.Fprintf(b, "Nama: %s\n", html.EscapeString(c.StudentName))
	fmt.Fprintf(b, "Prodi: %s\n\n", html.EscapeString(c.Program))
	fmt.Fprintf(b, "Link WA Mahasiswa:\n<a href=%q>%s</a>", c.WhatsAppLink, c.WhatsAppLink)
	return b.String()
}

// Plain renders the caption with every tag stripped.
func (c AdminCaption) Plain() string {
	return html.UnescapeString(plainPolicy.Sanitize(c.Rich()))
}
