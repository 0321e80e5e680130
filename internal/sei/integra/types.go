package integra

// ManagingUnit is one entry of the managing-unit catalog.
type ManagingUnit struct {
	Code        string `json:"cdUnidGestora"`
	Description string `json:"dcUnidGestora"`
}

// DocumentType is one entry of the document-type catalog.
type DocumentType struct {
	Code        string `json:"cdTipoDocto"`
	Description string `json:"dcTipoDocto"`
}

// Record is one pending integration record awaiting capture. Fields mirror
// the integration service's wire names.
type Record struct {
	Sequence       int     `json:"integracaoSequencia"`
	Year           int     `json:"integracaoAno"`
	Number         string  `json:"integracaoNumero"`
	Key            string  `json:"integracaoChave"`
	Description    string  `json:"integracaoDescricao"`
	Date           int64   `json:"integracaoData"`
	DueDate        int64   `json:"integracaoVencto"`
	Value          float64 `json:"integracaoValor"`
	ManagingUnit   int     `json:"integracaoUG"`
	Organ          int     `json:"integracaoOrgao"`
	Captured       string  `json:"integracaoCapturado"`
	InterestedName string  `json:"nmInteressado"`
	InterestedDoc  string  `json:"cnpjOrCpfInteressado"`
}

// IntegrationList is the result of a pending-integration query.
type IntegrationList struct {
	InterestedPartyID int      `json:"cdInteressado"`
	Records           []Record `json:"dadosIntegracoes"`
}

// wire envelope types: the integration service wraps every response body in
// a result array with a single element.

type managingUnitsResult struct {
	Result []struct {
		Units []ManagingUnit `json:"unidGestorasWs"`
	} `json:"result"`
}

type documentTypesResult struct {
	Result []struct {
		Types []DocumentType `json:"doctoTiposWs"`
	} `json:"result"`
}

type integrationListResult struct {
	Result []IntegrationList `json:"result"`
}

type insertResult struct {
	Result []struct {
		DocumentID int `json:"cdDocto"`
	} `json:"result"`
}

type capturedResult struct {
	Result []struct {
		Content string `json:"conteudoDocto"`
	} `json:"result"`
}
