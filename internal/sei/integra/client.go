// Package integra is a client for the SCPI integration service: catalog
// search, pending-integration queries, record capture and captured-document
// retrieval.
package integra

import (
	"context"
	"fmt"

	"github.com/dtidevpmj/seidev/internal/httpx"
)

// Client talks to the integration API.
type Client struct {
	http *httpx.Client
}

// New creates an integration API client.
func New(http *httpx.Client) *Client {
	return &Client{http: http}
}

type catalogRequest struct {
	CPF         string `json:"cpf"`
	Description string `json:"descricao"`
}

// ManagingUnits searches the managing-unit catalog by free text.
func (c *Client) ManagingUnits(ctx context.Context, cpf, query string) ([]ManagingUnit, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return nil, err
	}

	var out managingUnitsResult
	resp, err := req.
		SetBody(catalogRequest{CPF: cpf, Description: query}).
		SetResult(&out).
		Post("/unid_gestoras_list")
	c.http.Finish(resp, err)
	if err != nil {
		return nil, fmt.Errorf("managing units: %w", err)
	}
	if err := c.http.CheckStatus("/unid_gestoras_list", resp); err != nil {
		return nil, err
	}
	if len(out.Result) == 0 {
		return nil, nil
	}
	return out.Result[0].Units, nil
}

// DocumentTypes searches the document-type catalog by free text.
func (c *Client) DocumentTypes(ctx context.Context, cpf, query string) ([]DocumentType, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return nil, err
	}

	var out documentTypesResult
	resp, err := req.
		SetBody(catalogRequest{CPF: cpf, Description: query}).
		SetResult(&out).
		Post("/doctos_tipos_list")
	c.http.Finish(resp, err)
	if err != nil {
		return nil, fmt.Errorf("document types: %w", err)
	}
	if err := c.http.CheckStatus("/doctos_tipos_list", resp); err != nil {
		return nil, err
	}
	if len(out.Result) == 0 {
		return nil, nil
	}
	return out.Result[0].Types, nil
}

type integrationListRequest struct {
	CPFUser         string `json:"cpf_user"`
	ManagingUnit    string `json:"cd_unid_gestora"`
	DocTypeID       int    `json:"cd_tipo_docto"`
	IntegrationKind string `json:"cd_tipo_integracao"`
	// RefDate is dd/mm/yyyy; callers convert from ISO before reaching here.
	RefDate string `json:"data_ref"`
}

// ListIntegrations fetches the pending integration records for a managing
// unit, document type and reference date.
func (c *Client) ListIntegrations(ctx context.Context, cpf, managingUnit string, docTypeID int, refDate string) (*IntegrationList, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return nil, err
	}

	var out integrationListResult
	resp, err := req.
		SetBody(integrationListRequest{
			CPFUser:         cpf,
			ManagingUnit:    managingUnit,
			DocTypeID:       docTypeID,
			IntegrationKind: "1",
			RefDate:         refDate,
		}).
		SetResult(&out).
		Post("/integracao_scpi_list")
	c.http.Finish(resp, err)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	if err := c.http.CheckStatus("/integracao_scpi_list", resp); err != nil {
		return nil, err
	}
	if len(out.Result) == 0 {
		return nil, fmt.Errorf("list integrations: empty result envelope")
	}
	return &out.Result[0], nil
}

// InsertDocument captures one integration record into the host system and
// returns the assigned document id.
func (c *Client) InsertDocument(ctx context.Context, p InsertParams) (int, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return 0, err
	}

	var out insertResult
	resp, err := req.
		SetBody(newInsertEnvelope(p)).
		SetResult(&out).
		Put("/docto_view")
	c.http.Finish(resp, err)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	if err := c.http.CheckStatus("/docto_view", resp); err != nil {
		return 0, err
	}
	if len(out.Result) == 0 || out.Result[0].DocumentID == 0 {
		return 0, fmt.Errorf("insert document: no document id in response")
	}
	return out.Result[0].DocumentID, nil
}

type viewCapturedRequest struct {
	CPFUser    string `json:"cpf_user"`
	DocumentID int    `json:"cd_docto"`
	Version    string `json:"vr_docto"`
	OnlyBody   string `json:"only_body"`
}

// ViewCaptured fetches the rendered body of a captured document.
func (c *Client) ViewCaptured(ctx context.Context, cpf string, documentID int) (string, error) {
	req, err := c.http.R(ctx)
	if err != nil {
		return "", err
	}

	var out capturedResult
	resp, err := req.
		SetBody(viewCapturedRequest{
			CPFUser:    cpf,
			DocumentID: documentID,
			Version:    "1",
			OnlyBody:   "S",
		}).
		SetResult(&out).
		Post("/ver_doc_capturado")
	c.http.Finish(resp, err)
	if err != nil {
		return "", fmt.Errorf("view captured: %w", err)
	}
	if err := c.http.CheckStatus("/ver_doc_capturado", resp); err != nil {
		return "", err
	}
	if len(out.Result) == 0 {
		return "", fmt.Errorf("view captured: document %d not found or empty", documentID)
	}
	return out.Result[0].Content, nil
}
