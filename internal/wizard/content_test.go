package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRefDate(t *testing.T) {
	got, err := FormatRefDate("2024-05-07")
	require.NoError(t, err)
	assert.Equal(t, "07/05/2024", got)
}

func TestFormatRefDateRejectsNonISO(t *testing.T) {
	for _, in := range []string{"07/05/2024", "2024-5-7", "yesterday", "", "2024-13-01"} {
		_, err := FormatRefDate(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", in)
	}
}

func TestStripBoilerplate(t *testing.T) {
	body := `<p>Empenho 123</p>` + boilerplateFragment + `<p>Valor: 1.000,00</p>`
	assert.Equal(t, "<p>Empenho 123</p><p>Valor: 1.000,00</p>", StripBoilerplate(body))
}

func TestStripBoilerplateNoFragment(t *testing.T) {
	body := `<p>Sem cabeçalho</p>`
	assert.Equal(t, body, StripBoilerplate(body))
}

func TestStripBoilerplateAllOccurrences(t *testing.T) {
	body := boilerplateFragment + "<p>a</p>" + boilerplateFragment
	assert.Equal(t, "<p>a</p>", StripBoilerplate(body))
}

func TestAccessLevelValid(t *testing.T) {
	assert.True(t, AccessRestricted.Valid())
	assert.True(t, AccessConfidential.Valid())
	assert.False(t, AccessLevel("3").Valid())
	assert.False(t, AccessLevel("").Valid())
}

func TestStepValid(t *testing.T) {
	for _, s := range []Step{StepSearch, StepSelect, StepMetadata, StepFinalize, StepClosed} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Step("review").Valid())
}
