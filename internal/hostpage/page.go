package hostpage

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Host page element ids. These track the SEI markup and are not expected to
// vary between installations.
const (
	selUserLink   = "#lnkUsuarioSistema"
	selUnitLink   = "#lnkInfraUnidade"
	selTreeFrame  = "#ifrArvore"
	selBreadcrumb = "#divInfraBarraLocalizacao"
)

var parenSegment = regexp.MustCompile(`\(([^)]+)\)`)

// Page holds everything the capture workflow needs from the host document.
// Fields are empty when the corresponding element is missing or unparsable;
// the workflow treats empty values as "context not ready".
type Page struct {
	UserLabel     string `json:"user_label"`
	ShortName     string `json:"short_name"`
	UnitLabel     string `json:"unit_label"`
	ProcedureID   string `json:"procedure_id"`
	ProcessNumber string `json:"process_number"`
}

// Parse extracts a Page from an HTML snapshot of the host document.
func Parse(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse host page: %w", err)
	}

	p := &Page{}

	if title, ok := doc.Find(selUserLink).Attr("title"); ok {
		p.UserLabel = title
		p.ShortName = ShortName(title)
	}

	if title, ok := doc.Find(selUnitLink).Attr("title"); ok {
		p.UnitLabel = strings.TrimSpace(title)
	}

	if src, ok := doc.Find(selTreeFrame).Attr("src"); ok {
		p.ProcedureID = procedureID(src)
	}

	if crumb := doc.Find(selBreadcrumb); crumb.Length() > 0 {
		p.ProcessNumber = TrimProcessNumber(crumb.Text())
	}

	return p, nil
}

// ShortName extracts the login short name from a user label title such as
// "Fulano de Tal (jdoe/ORGAO)". It returns the first slash-delimited token
// of the parenthesized segment, or "" when the label does not match.
func ShortName(label string) string {
	m := parenSegment.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	return strings.SplitN(m[1], "/", 2)[0]
}

// TrimProcessNumber normalizes the breadcrumb text into a process number:
// surrounding whitespace and at most one trailing period are removed,
// nothing else is altered.
func TrimProcessNumber(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasSuffix(s, ".") {
		s = s[:len(s)-1]
	}
	return s
}

// procedureID pulls the id_procedimento parameter off the tree iframe URL.
func procedureID(src string) string {
	u, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return u.Query().Get("id_procedimento")
}
