package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtidevpmj/seidev/internal/config"
	"github.com/dtidevpmj/seidev/internal/httpx"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	hc := httpx.FromConfig("seiws", srv.URL, config.OutboundConfig{TimeoutSeconds: 5}, nil)
	return New(hc, config.Default().SEI)
}

func TestListUnitsEnvelope(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/listar_unidades", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"unidades":[
			{"IdUnidade":{"IdUnidade":"110000935"},"Descricao":{"Descricao":"DTI - Diretoria de Tecnologia da Informacao"}},
			{"IdUnidade":{"IdUnidade":"110000936"},"Descricao":{"Descricao":"DTI - Suporte"}}
		]}`)
	})

	units, err := c.ListUnits(context.Background(), "DTI")
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "110000935", units[0].ID.IDUnidade)
	assert.Equal(t, "DTI - Diretoria de Tecnologia da Informacao", units[0].Description.Description)

	// Authentication envelope plus fixed first-page pagination.
	assert.Equal(t, "APIWSSEI", got["SiglaSistema"])
	assert.Equal(t, "consultarSEIJARU", got["IdentificacaoServico"])
	assert.Equal(t, "DTI", got["query"])
	assert.Equal(t, float64(1), got["page"])
	assert.Equal(t, float64(10), got["per_page"])
}

func TestListUnitsEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"unidades":[]}`)
	})

	units, err := c.ListUnits(context.Background(), "nada")
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestListUnitsRemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListUnits(context.Background(), "DTI")
	var remote *httpx.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "/listar_unidades", remote.Endpoint)
}

func TestIncludeDocumentFillsEnvelope(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/incluir_documento", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sucesso":true}`)
	})

	err := c.IncludeDocument(context.Background(), IncludeDocumentRequest{
		UnitID:      "110000935",
		ProcedureID: "12345",
		Number:      "0.000000010/2024-2",
		Observation: "obs",
		FileName:    "doc.html",
		Content:     "<p>corpo</p>",
		AccessLevel: "1",
	})
	require.NoError(t, err)

	assert.Equal(t, "APIWSSEI", got["SiglaSistema"])
	assert.Equal(t, "consultarSEIJARU", got["IdentificacaoServico"])
	assert.Equal(t, "G", got["Tipo"])
	assert.Equal(t, "622", got["IdSerie"])
	assert.Equal(t, "110000935", got["IdUnidade"])
	assert.Equal(t, "12345", got["IdProcedimento"])
	assert.Equal(t, "0.000000010/2024-2", got["Numero"])
	assert.Equal(t, "<p>corpo</p>", got["Conteudo"])
	assert.Equal(t, "1", got["NivelAcesso"])
}

func TestIncludeDocumentKeepsExplicitSeries(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sucesso":true}`)
	})

	err := c.IncludeDocument(context.Background(), IncludeDocumentRequest{
		UnitID:   "110000935",
		SeriesID: "900",
	})
	require.NoError(t, err)
	assert.Equal(t, "900", got["IdSerie"])
}
