// Package ws is a client for the SEI web-service API: organizational unit
// search and document inclusion. Every request carries the fixed system
// acronym / service id envelope the web service authenticates by.
package ws

import (
	"context"
	"fmt"

	"github.com/dtidevpmj/seidev/internal/config"
	"github.com/dtidevpmj/seidev/internal/httpx"
)

// Fixed page size of the unit search; the UI only ever shows the first page.
const unitPageSize = 10

// Client talks to the SEI web-service API.
type Client struct {
	http *httpx.Client
	env  config.SEIConfig
}

// New creates a SEI web-service client.
func New(http *httpx.Client, env config.SEIConfig) *Client {
	return &Client{http: http, env: env}
}

// Unit is one organizational unit returned by the unit search. The web
// service nests each field under an object of the same name.
type Unit struct {
	ID          IDUnidade   `json:"IdUnidade"`
	Description Description `json:"Descricao"`
}

// IDUnidade carries the unit id.
type IDUnidade struct {
	IDUnidade string `json:"IdUnidade"`
}

// Description carries the unit description.
type Description struct {
	Description string `json:"Descricao"`
}

type listUnitsRequest struct {
	SystemAcronym   string `json:"SiglaSistema"`
	ServiceID       string `json:"IdentificacaoServico"`
	ProcedureTypeID string `json:"IdTipoProcedimento"`
	SeriesID        string `json:"IdSerie"`
	Query           string `json:"query"`
	Page            int    `json:"page"`
	PerPage         int    `json:"per_page"`
}

type listUnitsResponse struct {
	Units []Unit `json:"unidades"`
}

// ListUnits searches organizational units by free text. Only the first page
// (10 entries) is returned.
func (c *Client) ListUnits(ctx context.Context, query string) ([]Unit, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return nil, err
	}

	var out listUnitsResponse
	resp, err := req.
		SetBody(listUnitsRequest{
			SystemAcronym: c.env.SystemAcronym,
			ServiceID:     c.env.ServiceID,
			Query:         query,
			Page:          1,
			PerPage:       unitPageSize,
		}).
		SetResult(&out).
		Post("/listar_unidades")
	c.http.Finish(resp, err)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if err := c.http.CheckStatus("/listar_unidades", resp); err != nil {
		return nil, err
	}

	return out.Units, nil
}

// IncludeDocumentRequest is the payload of the document inclusion endpoint.
// The envelope fields are filled in by the client.
type IncludeDocumentRequest struct {
	SystemAcronym string `json:"SiglaSistema"`
	ServiceID     string `json:"IdentificacaoServico"`
	UnitID        string `json:"IdUnidade"`
	Kind          string `json:"Tipo"`
	ProcedureID   string `json:"IdProcedimento"`
	SeriesID      string `json:"IdSerie"`
	Number        string `json:"Numero"`
	Observation   string `json:"Observacao"`
	FileName      string `json:"NomeArquivo"`
	Content       string `json:"Conteudo"`
	AccessLevel   string `json:"NivelAcesso"`
}

// IncludeDocument submits a generated ("G") document into the host system.
func (c *Client) IncludeDocument(ctx context.Context, r IncludeDocumentRequest) error {
	r.SystemAcronym = c.env.SystemAcronym
	r.ServiceID = c.env.ServiceID
	r.Kind = "G"
	if r.SeriesID == "" {
		r.SeriesID = c.env.SeriesID
	}

	req, err := c.http.R(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetBody(r).Post("/incluir_documento")
	c.http.Finish(resp, err)
	if err != nil {
		return fmt.Errorf("include document: %w", err)
	}
	return c.http.CheckStatus("/incluir_documento", resp)
}
