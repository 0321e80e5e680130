package hostpage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHost = `
<!DOCTYPE html>
<html>
<body>
	<div id="divInfraBarraSistema">
		<a id="lnkUsuarioSistema" title="Fulano de Tal (jdoe/ORGAO)">jdoe</a>
		<a id="lnkInfraUnidade" title="DTI - Diretoria de Tecnologia">DTI</a>
	</div>
	<div id="divInfraBarraLocalizacao">0.000000010/2024-2.</div>
	<iframe id="ifrArvore" src="arvore.php?acao=arvore_visualizar&id_procedimento=12345&infra_sistema=100000100"></iframe>
</body>
</html>
`

func TestParse(t *testing.T) {
	p, err := Parse(sampleHost)
	require.NoError(t, err)

	assert.Equal(t, "Fulano de Tal (jdoe/ORGAO)", p.UserLabel)
	assert.Equal(t, "jdoe", p.ShortName)
	assert.Equal(t, "DTI - Diretoria de Tecnologia", p.UnitLabel)
	assert.Equal(t, "12345", p.ProcedureID)
	assert.Equal(t, "0.000000010/2024-2", p.ProcessNumber)
}

func TestParseMissingElements(t *testing.T) {
	p, err := Parse("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)

	assert.Empty(t, p.UserLabel)
	assert.Empty(t, p.ShortName)
	assert.Empty(t, p.UnitLabel)
	assert.Empty(t, p.ProcedureID)
	assert.Empty(t, p.ProcessNumber)
}

func TestShortName(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"standard label", "Fulano (jdoe/ORGAO)", "jdoe"},
		{"no organ suffix", "Fulano (jdoe)", "jdoe"},
		{"no parentheses", "Fulano de Tal", ""},
		{"empty label", "", ""},
		{"multiple slashes", "Fulano (jdoe/ORGAO/EXTRA)", "jdoe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortName(tt.label))
		})
	}
}

func TestTrimProcessNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing period", "0.000000010/2024-2.", "0.000000010/2024-2"},
		{"no trailing period", "0.000000010/2024-2", "0.000000010/2024-2"},
		{"surrounding whitespace", "  0.000000010/2024-2. \n", "0.000000010/2024-2"},
		{"only one period trimmed", "0.000000010/2024-2..", "0.000000010/2024-2."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimProcessNumber(tt.in))
		})
	}
}

func TestProcedureIDBadURL(t *testing.T) {
	assert.Empty(t, procedureID("://not a url"))
	assert.Empty(t, procedureID("arvore.php?acao=arvore_visualizar"))
}
