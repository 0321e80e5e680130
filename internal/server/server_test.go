package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtidevpmj/seidev/internal/config"
	"github.com/dtidevpmj/seidev/internal/httpx"
	"github.com/dtidevpmj/seidev/internal/logging"
	"github.com/dtidevpmj/seidev/internal/wizard"
)

const hostSnapshot = `
<html><body>
	<a id="lnkUsuarioSistema" title="Fulano (jdoe/ORGAO)">jdoe</a>
	<a id="lnkInfraUnidade" title="DTI">DTI</a>
	<div id="divInfraBarraLocalizacao">0.000000010/2024-2.</div>
	<iframe id="ifrArvore" src="arvore.php?id_procedimento=12345"></iframe>
</body></html>`

func fakeUserAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user/cpf/jdoe" {
			fmt.Fprint(w, "04870016214")
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fakeSEIWS(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/listar_unidades":
			fmt.Fprint(w, `{"unidades":[{"IdUnidade":{"IdUnidade":"110000935"},"Descricao":{"Descricao":"DTI"}}]}`)
		case "/incluir_documento":
			fmt.Fprint(w, `{"sucesso":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fakeIntegration(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/unid_gestoras_list":
			fmt.Fprint(w, `{"result":[{"unidGestorasWs":[{"cdUnidGestora":"DTI","dcUnidGestora":"Diretoria de TI"}]}]}`)
		case "/doctos_tipos_list":
			fmt.Fprint(w, `{"result":[{"doctoTiposWs":[{"cdTipoDocto":"5","dcTipoDocto":"Nota de Empenho"}]}]}`)
		case "/integracao_scpi_list":
			fmt.Fprint(w, `{"result":[{"cdInteressado":42,"dadosIntegracoes":[
				{"integracaoSequencia":1,"integracaoAno":2024,"integracaoNumero":"101","integracaoValor":1500.5},
				{"integracaoSequencia":2,"integracaoAno":2024,"integracaoNumero":"102","integracaoValor":99.9}
			]}]}`)
		case "/docto_view":
			fmt.Fprint(w, `{"result":[{"cdDocto":2498640}]}`)
		case "/ver_doc_capturado":
			fmt.Fprint(w, `{"result":[{"conteudoDocto":"<p>corpo</p>"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

// Metrics register on the process-global Prometheus registry, so the whole
// API surface is exercised against one server instance.
func TestServerAPI(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoints.UserAPI = fakeUserAPI(t).URL
	cfg.Endpoints.SEIWS = fakeSEIWS(t).URL
	cfg.Endpoints.Integration = fakeIntegration(t).URL
	cfg.RateLimit.Enabled = false

	s := New(cfg, logging.NewNop())

	var sessionID string

	t.Run("root", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "seidev capture assistant", body["service"])
	})

	t.Run("health", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body["upstreams"], "integra")
	})

	t.Run("create session requires page_html", func(t *testing.T) {
		rec, _ := doJSON(t, s, http.MethodPost, "/sessions", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create session", func(t *testing.T) {
		payload, err := json.Marshal(map[string]string{"page_html": hostSnapshot})
		require.NoError(t, err)

		rec, body := doJSON(t, s, http.MethodPost, "/sessions", string(payload))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "search", body["step"])
		assert.Equal(t, true, body["cpf_resolved"])

		sessionID = body["id"].(string)
		require.NotEmpty(t, sessionID)
	})

	t.Run("unknown session", func(t *testing.T) {
		rec, _ := doJSON(t, s, http.MethodGet, "/sessions/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("search units", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/search/units", `{"query":"DTI"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		units := body["units"].([]interface{})
		require.Len(t, units, 1)
		assert.Equal(t, "DTI", units[0].(map[string]interface{})["cdUnidGestora"])
	})

	t.Run("search doctypes", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/search/doctypes", `{"query":"empenho"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		types := body["doc_types"].([]interface{})
		require.Len(t, types, 1)
	})

	t.Run("submit before query is a conflict", func(t *testing.T) {
		rec, _ := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/submit", `{"indices":[0]}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("query rejects bad date", func(t *testing.T) {
		rec, _ := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/query",
			`{"unit_code":"DTI","doc_type_code":"5","ref_date":"07/05/2024"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("query", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/query",
			`{"unit_code":"DTI","doc_type_code":"5","ref_date":"2024-05-07"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(42), body["interested_party_id"])
		assert.Len(t, body["records"].([]interface{}), 2)
	})

	t.Run("submit", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/submit", `{"indices":[0,1]}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(2498640), body["document_id"])
	})

	t.Run("search departments", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/search/departments", `{"query":"DTI"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, body["departments"].([]interface{}), 1)
	})

	t.Run("finalize", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/finalize",
			`{"observation":"obs","file_name":"doc.html","access_level":"1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["included"])
	})

	t.Run("note closes the wizard", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodPost, "/sessions/"+sessionID+"/note",
			`{"block_id":"7","annotation":"ok"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["done"])
		assert.Equal(t, true, body["reload"])

		_, snap := doJSON(t, s, http.MethodGet, "/sessions/"+sessionID, "")
		assert.Equal(t, "closed", snap["step"])
	})

	t.Run("delete session", func(t *testing.T) {
		rec, body := doJSON(t, s, http.MethodDelete, "/sessions/"+sessionID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["closed"])

		rec, _ = doJSON(t, s, http.MethodGet, "/sessions/"+sessionID, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("fail maps workflow errors to statuses", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		h := newHandlers(nil, nil, logging.NewNop())

		tests := []struct {
			name string
			err  error
			want int
		}{
			{"missing field", wizard.ErrMissingField, http.StatusBadRequest},
			{"invalid input", wizard.ErrInvalidInput, http.StatusBadRequest},
			{"unparsable snapshot", fmt.Errorf("%w: parse host page", wizard.ErrInvalidInput), http.StatusBadRequest},
			{"no selection", wizard.ErrNoSelection, http.StatusBadRequest},
			{"wrong step", wizard.ErrWrongStep, http.StatusConflict},
			{"identity pending", wizard.ErrIdentityPending, http.StatusConflict},
			{"superseded query", wizard.ErrSupersededQuery, http.StatusConflict},
			{"session not found", wizard.ErrSessionNotFound, http.StatusNotFound},
			{"remote error", &httpx.RemoteError{Upstream: "integra", Endpoint: "/x", Status: 500}, http.StatusBadGateway},
			{"unclassified", errors.New("boom"), http.StatusBadGateway},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				c, _ := gin.CreateTestContext(rec)
				h.fail(c, tt.err)
				assert.Equal(t, tt.want, rec.Code)
			})
		}
	})

	t.Run("metrics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "seidev_sessions_opened_total")
	})
}
