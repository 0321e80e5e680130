package wizard

import (
	"fmt"
	"strings"
	"time"
)

// boilerplateFragment is the municipal letterhead the host system prepends
// to rendered documents. It is stripped byte-for-byte before resubmission;
// everything else in the content passes through untouched.
const boilerplateFragment = `<div style="text-align:center"><span style="font-size:14px"><strong>PREFEITURA MUNICIPAL DE JARU - RO</strong></span></div>`

// StripBoilerplate removes every occurrence of the fixed letterhead
// fragment from content.
func StripBoilerplate(content string) string {
	return strings.ReplaceAll(content, boilerplateFragment, "")
}

// FormatRefDate converts an ISO date (yyyy-mm-dd) into the dd/mm/yyyy form
// the integration service expects. Non-ISO input is rejected.
func FormatRefDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("%w: reference date %q is not yyyy-mm-dd", ErrInvalidInput, iso)
	}
	return t.Format("02/01/2006"), nil
}
