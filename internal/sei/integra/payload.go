package integra

// The docto_view insert endpoint consumes a serialized Delphi record
// (uDTMBrowser.TRecDoctoWs). Most fields are constant for an integration
// capture; only the type, date, interested party and the nested integration
// block vary per record. The wire names and constants below must not drift
// from what the host system expects.

const (
	recDoctoType        = "uDTMBrowser.TRecDoctoWs"
	recDadosIntegraType = "uDTMBrowser.TRecDadosIntegracaoWs"
	actionInsert        = "Insert"
	integrationKindSCPI = 1
	captureUserCode     = "1"
	captureUserName     = "EQUIPE DE SUPORTE"
	captureModelCode    = 3
	captureModelVersion = 1
	captureContentType  = "HTML"
)

type insertEnvelope struct {
	Type   string       `json:"type"`
	ID     int          `json:"id"`
	Fields insertFields `json:"fields"`
}

type insertFields struct {
	DocumentID          int              `json:"FCdDocto"`
	DocumentVersion     int              `json:"FVrDocto"`
	Action              string           `json:"FAcaoWs"`
	Token               string           `json:"FTokenWs"`
	DocTypeID           int              `json:"FCdTipoDocto"`
	DocTypeDesc         *string          `json:"FDcTipoDocto"`
	Identification      *string          `json:"FIdentificacaoDocto"`
	Date                int64            `json:"FDataDocto"`
	UnitCode            *string          `json:"FCdUnidadeDocto"`
	UnitDesc            *string          `json:"FDcUnidadeDocto"`
	UnitAcronym         *string          `json:"FSgUnidadeDocto"`
	ProcessUnitCode     *string          `json:"FCdUnidadeProcessoDocto"`
	ProcessUnitDesc     *string          `json:"FDcUnidadeProcessoDocto"`
	ProcessUnitAcronym  *string          `json:"FSgUnidadeProcessoDocto"`
	ManagingUnitCode    *string          `json:"FCdUGDocto"`
	ManagingUnitDesc    *string          `json:"FDcUGDocto"`
	OrganCode           *string          `json:"FCdOrgaoDocto"`
	OrganDesc           *string          `json:"FDcOrgaoDocto"`
	OrganAcronym        *string          `json:"FSgOrgaoDocto"`
	InterestedPartyID   int              `json:"FCdInteressadoDocto"`
	InterestedPartyName string           `json:"FNmInteressadoDocto"`
	InterestedPartyDoc  string           `json:"FCpfCnpjInteressadoDocto"`
	SubjectCode         *string          `json:"FCdAssuntoDocto"`
	SubjectDesc         *string          `json:"FDcAssuntoDocto"`
	Summary             string           `json:"FSumulaDocto"`
	ProcessKey          *string          `json:"FPkProcessoDocto"`
	ProcessID           *string          `json:"FProcessoIdDocto"`
	External            string           `json:"FExternoDocto"`
	Digitized           string           `json:"FDigitalizadoDocto"`
	Integration         string           `json:"FIntegracaoDocto"`
	IntegrationData     integrationBlock `json:"FDadosIntegracaoWs"`
	Finalized           string           `json:"FFinalizadoDocto"`
	Canceled            string           `json:"FCanceladoDocto"`
	Signed              string           `json:"FAssinadoDocto"`
	Restricted          string           `json:"FRestritoDocto"`
	RestrictionTypeID   int              `json:"FCdTipoRestritoDocto"`
	RestrictionTypeDesc string           `json:"FDcTipoRestritoDocto"`
	UserCode            string           `json:"FCdUsuarioDocto"`
	UserName            string           `json:"FNmUsuarioDocto"`
	Portal              string           `json:"FPortalDocto"`
	ModelCode           int              `json:"FCdModeloDocto"`
	ModelDesc           *string          `json:"FDcModeloDocto"`
	ModelVersion        int              `json:"FVrModeloDocto"`
	Apocryphal          string           `json:"FApocrifoDocto"`
	CRC32               *string          `json:"FCRC32Docto"`
	Deadline            int              `json:"FPrazoDocto"`
	Content             string           `json:"FConteudoDocto"`
	ContentType         string           `json:"FTipoDocto"`
	Signs               *string          `json:"FDoctoSignsWs"`
	Awares              *string          `json:"FDoctoAwaresWs"`
}

type integrationBlock struct {
	Type   string            `json:"type"`
	ID     int               `json:"id"`
	Fields integrationFields `json:"fields"`
}

type integrationFields struct {
	Kind         int     `json:"FIntegracaoTipo"`
	Key          string  `json:"FIntegracaoChave"`
	Number       string  `json:"FIntegracaoNumero"`
	Year         int     `json:"FIntegracaoAno"`
	Sequence     int     `json:"FIntegracaoSequencia"`
	Date         int64   `json:"FIntegracaoData"`
	DueDate      int64   `json:"FIntegracaoVencto"`
	Value        float64 `json:"FIntegracaoValor"`
	Description  string  `json:"FIntegracaoDescricao"`
	ManagingUnit int     `json:"FIntegracaoUG"`
	Organ        int     `json:"FIntegracaoOrgao"`
	FpCompany    *string `json:"FIntegracaoFpEmpresa"`
	FpUnit       *string `json:"FIntegracaoFpUnidade"`
	FpRefType    *string `json:"FIntegracaoFpTipoRef"`
	TbCompany    *string `json:"FIntegracaoTbEmpresa"`
	TbModule     *string `json:"FIntegracaoTbModulo"`
	TbRegistry   *string `json:"FIntegracaoTbCadastro"`
}

// InsertParams carries the per-record inputs of an insert.
type InsertParams struct {
	DocTypeID          int
	InterestedPartyID  int
	InterestedPartyCPF string
	Record             Record
}

// newInsertEnvelope assembles the full insert payload for one record.
func newInsertEnvelope(p InsertParams) insertEnvelope {
	return insertEnvelope{
		Type: recDoctoType,
		ID:   1,
		Fields: insertFields{
			Action:              actionInsert,
			DocTypeID:           p.DocTypeID,
			Date:                p.Record.Date,
			InterestedPartyID:   p.InterestedPartyID,
			InterestedPartyName: p.Record.InterestedName,
			InterestedPartyDoc:  p.InterestedPartyCPF,
			External:            "N",
			Digitized:           "N",
			Integration:         "S",
			IntegrationData: integrationBlock{
				Type: recDadosIntegraType,
				ID:   2,
				Fields: integrationFields{
					Kind:         integrationKindSCPI,
					Key:          p.Record.Key,
					Number:       p.Record.Number,
					Year:         p.Record.Year,
					Sequence:     p.Record.Sequence,
					Date:         p.Record.Date,
					DueDate:      p.Record.DueDate,
					Value:        p.Record.Value,
					Description:  p.Record.Description,
					ManagingUnit: p.Record.ManagingUnit,
					// The organ is pinned to 1 regardless of the record's
					// own organ code; the target environment has a single
					// organ registered.
					Organ: 1,
				},
			},
			Finalized:    "N",
			Canceled:     "N",
			Signed:       "N",
			Restricted:   "N",
			UserCode:     captureUserCode,
			UserName:     captureUserName,
			Portal:       "S",
			ModelCode:    captureModelCode,
			ModelVersion: captureModelVersion,
			Apocryphal:   "N",
			ContentType:  captureContentType,
		},
	}
}
