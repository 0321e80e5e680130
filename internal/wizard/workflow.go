package wizard

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dtidevpmj/seidev/internal/hostpage"
	"github.com/dtidevpmj/seidev/internal/logging"
	"github.com/dtidevpmj/seidev/internal/sei/integra"
	"github.com/dtidevpmj/seidev/internal/sei/userapi"
	"github.com/dtidevpmj/seidev/internal/sei/ws"
)

// Workflow executes the capture steps against the SEI upstreams on behalf
// of a session.
type Workflow struct {
	users    *userapi.Client
	seiws    *ws.Client
	integra  *integra.Client
	sessions *Manager
	log      *logging.Logger
}

// New creates a workflow.
func New(users *userapi.Client, seiws *ws.Client, ic *integra.Client, sessions *Manager, log *logging.Logger) *Workflow {
	return &Workflow{
		users:    users,
		seiws:    seiws,
		integra:  ic,
		sessions: sessions,
		log:      log.Named("wizard"),
	}
}

// Sessions exposes the session manager.
func (w *Workflow) Sessions() *Manager {
	return w.sessions
}

// Open parses a host-page snapshot, creates a session and resolves the
// user's fiscal id. Identity failures do not fail the open: the session
// starts with an empty fiscal id and dependent operations return
// ErrIdentityPending until a later Open succeeds.
func (w *Workflow) Open(ctx context.Context, pageHTML string) (*Session, error) {
	page, err := hostpage.Parse(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sess := w.sessions.Create(page)

	if page.ShortName == "" {
		w.log.Warn("user label missing or unparsable; identity not resolved",
			zap.String("session", sess.ID),
			zap.String("user_label", page.UserLabel))
		return sess, nil
	}

	cpf, err := w.users.ResolveCPF(ctx, page.ShortName)
	if err != nil {
		w.log.Error("identity resolution failed",
			zap.String("session", sess.ID),
			zap.String("short_name", page.ShortName),
			zap.Error(err))
		return sess, nil
	}

	sess.mu.Lock()
	sess.cpf = cpf
	sess.mu.Unlock()

	w.log.Info("session opened",
		zap.String("session", sess.ID),
		zap.String("short_name", page.ShortName),
		zap.String("process_number", page.ProcessNumber))
	return sess, nil
}

// searchPrologue validates a catalog search and claims a sequence slot.
func searchPrologue(sess *Session, query string, seq *uint64) (cpf string, mySeq uint64, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.step != StepSearch {
		return "", 0, fmt.Errorf("%w: search requires step %q, session is at %q", ErrWrongStep, StepSearch, sess.step)
	}
	if sess.cpf == "" {
		return "", 0, ErrIdentityPending
	}
	if query == "" {
		return "", 0, fmt.Errorf("%w: search query", ErrMissingField)
	}
	*seq++
	return sess.cpf, *seq, nil
}

// SearchUnits searches the managing-unit catalog. Searches are sequenced:
// if a newer search is issued while this one is in flight, its result is
// discarded and ErrSupersededQuery is returned.
func (w *Workflow) SearchUnits(ctx context.Context, sess *Session, query string) ([]integra.ManagingUnit, error) {
	cpf, seq, err := searchPrologue(sess, query, &sess.unitSeq)
	if err != nil {
		return nil, err
	}

	units, err := w.integra.ManagingUnits(ctx, cpf, query)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.unitSeq != seq {
		return nil, ErrSupersededQuery
	}
	return units, nil
}

// SearchDocTypes searches the document-type catalog with the same
// sequencing rule as SearchUnits.
func (w *Workflow) SearchDocTypes(ctx context.Context, sess *Session, query string) ([]integra.DocumentType, error) {
	cpf, seq, err := searchPrologue(sess, query, &sess.docSeq)
	if err != nil {
		return nil, err
	}

	types, err := w.integra.DocumentTypes(ctx, cpf, query)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.docSeq != seq {
		return nil, ErrSupersededQuery
	}
	return types, nil
}

// QueryParams carries the integration query inputs.
type QueryParams struct {
	UnitCode    string `json:"unit_code"`
	UnitLabel   string `json:"unit_label"`
	DocTypeCode string `json:"doc_type_code"`
	DocTypeName string `json:"doc_type_name"`
	// RefDate is ISO yyyy-mm-dd.
	RefDate string `json:"ref_date"`
}

// Query fetches the pending integration records and advances the session
// to the selection step.
func (w *Workflow) Query(ctx context.Context, sess *Session, p QueryParams) (*integra.IntegrationList, error) {
	sess.mu.Lock()
	if sess.step != StepSearch {
		step := sess.step
		sess.mu.Unlock()
		return nil, fmt.Errorf("%w: query requires step %q, session is at %q", ErrWrongStep, StepSearch, step)
	}
	cpf := sess.cpf
	sess.mu.Unlock()

	if cpf == "" {
		return nil, ErrIdentityPending
	}
	if p.UnitCode == "" || p.DocTypeCode == "" || p.RefDate == "" {
		return nil, fmt.Errorf("%w: unit, document type and reference date are all required", ErrMissingField)
	}

	docTypeID, err := strconv.Atoi(p.DocTypeCode)
	if err != nil {
		return nil, fmt.Errorf("%w: document type %q is not numeric", ErrInvalidInput, p.DocTypeCode)
	}

	refDate, err := FormatRefDate(p.RefDate)
	if err != nil {
		return nil, err
	}

	list, err := w.integra.ListIntegrations(ctx, cpf, p.UnitCode, docTypeID, refDate)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.unitCode = p.UnitCode
	sess.unitLabel = p.UnitLabel
	sess.docTypeCode = p.DocTypeCode
	sess.docTypeName = p.DocTypeName
	sess.docTypeID = docTypeID
	sess.interestedPartyID = list.InterestedPartyID
	sess.records = list.Records
	sess.step = StepSelect
	sess.mu.Unlock()

	w.log.Info("integration query completed",
		zap.String("session", sess.ID),
		zap.String("unit", p.UnitCode),
		zap.Int("doc_type", docTypeID),
		zap.Int("records", len(list.Records)))
	return list, nil
}

// Submit captures the selected records, one concurrent insert per record.
// The document id of the first record in selection order becomes the
// session's document id; the upstream assigns the same id to every record
// of a batch. Repeating a submission creates a second remote batch - the
// upstream does not deduplicate.
func (w *Workflow) Submit(ctx context.Context, sess *Session, indices []int) (int, error) {
	sess.mu.Lock()
	// Submitting again from the metadata step is allowed and creates a
	// second remote batch; the upstream does not deduplicate.
	if sess.step != StepSelect && sess.step != StepMetadata {
		step := sess.step
		sess.mu.Unlock()
		return 0, fmt.Errorf("%w: submit requires step %q, session is at %q", ErrWrongStep, StepSelect, step)
	}
	if len(indices) == 0 {
		sess.mu.Unlock()
		return 0, ErrNoSelection
	}

	selected := make([]integra.Record, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(sess.records) {
			sess.mu.Unlock()
			return 0, fmt.Errorf("%w: index %d out of range (have %d records)", ErrInvalidInput, idx, len(sess.records))
		}
		selected = append(selected, sess.records[idx])
	}
	cpf := sess.cpf
	docTypeID := sess.docTypeID
	interested := sess.interestedPartyID
	unitLabel := sess.page.UnitLabel
	sess.mu.Unlock()

	if cpf == "" {
		return 0, ErrIdentityPending
	}

	ids := make([]int, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range selected {
		g.Go(func() error {
			id, err := w.integra.InsertDocument(gctx, integra.InsertParams{
				DocTypeID:          docTypeID,
				InterestedPartyID:  interested,
				InterestedPartyCPF: cpf,
				Record:             rec,
			})
			if err != nil {
				return fmt.Errorf("record %s/%d: %w", rec.Number, rec.Year, err)
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.log.Error("batch submission failed",
			zap.String("session", sess.ID),
			zap.Int("selected", len(selected)),
			zap.Error(err))
		return 0, err
	}

	documentID := ids[0]

	sess.mu.Lock()
	sess.documentID = documentID
	sess.step = StepMetadata
	sess.mu.Unlock()

	w.log.Info("batch submitted",
		zap.String("session", sess.ID),
		zap.Int("records", len(selected)),
		zap.Int("document_id", documentID))

	w.prefillDepartment(ctx, sess, unitLabel)

	return documentID, nil
}

// prefillDepartment resolves the host page's unit label into a department
// via the unit search and stores the first hit into the draft. Best effort:
// the user can still not submit without a department, but a lookup failure
// is not fatal here.
func (w *Workflow) prefillDepartment(ctx context.Context, sess *Session, unitLabel string) {
	if unitLabel == "" {
		w.log.Warn("unit label missing; department left empty", zap.String("session", sess.ID))
		return
	}

	units, err := w.seiws.ListUnits(ctx, unitLabel)
	if err != nil {
		w.log.Error("department lookup failed",
			zap.String("session", sess.ID),
			zap.String("unit_label", unitLabel),
			zap.Error(err))
		return
	}
	if len(units) == 0 {
		w.log.Warn("no department matched unit label",
			zap.String("session", sess.ID),
			zap.String("unit_label", unitLabel))
		return
	}

	sess.mu.Lock()
	sess.draft.DepartmentID = units[0].ID.IDUnidade
	sess.draft.DepartmentName = units[0].Description.Description
	sess.mu.Unlock()
}

// SearchDepartments searches SEI organizational units by free text, for
// overriding the prefilled department on the metadata screen.
func (w *Workflow) SearchDepartments(ctx context.Context, sess *Session, query string) ([]ws.Unit, error) {
	sess.mu.Lock()
	step := sess.step
	sess.mu.Unlock()

	if step != StepMetadata {
		return nil, fmt.Errorf("%w: department search requires step %q, session is at %q", ErrWrongStep, StepMetadata, step)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: search query", ErrMissingField)
	}
	return w.seiws.ListUnits(ctx, query)
}

// Finalize fetches the captured document's rendered body, strips the fixed
// letterhead fragment and includes the document into the host system with
// the draft metadata. Missing page context (procedure id, process number)
// is a surfaced error, not a silent abort.
func (w *Workflow) Finalize(ctx context.Context, sess *Session, draft Draft) error {
	sess.mu.Lock()
	if sess.step != StepMetadata {
		step := sess.step
		sess.mu.Unlock()
		return fmt.Errorf("%w: finalize requires step %q, session is at %q", ErrWrongStep, StepMetadata, step)
	}
	cpf := sess.cpf
	documentID := sess.documentID
	procedureID := sess.page.ProcedureID
	processNumber := sess.page.ProcessNumber
	if draft.DepartmentID == "" {
		draft.DepartmentID = sess.draft.DepartmentID
		draft.DepartmentName = sess.draft.DepartmentName
	}
	sess.mu.Unlock()

	if cpf == "" {
		return ErrIdentityPending
	}
	if documentID == 0 {
		return fmt.Errorf("%w: no captured document id", ErrMissingField)
	}
	if procedureID == "" {
		return fmt.Errorf("%w: procedure id not found on host page", ErrMissingField)
	}
	if processNumber == "" {
		return fmt.Errorf("%w: process number not found on host page", ErrMissingField)
	}
	if draft.DepartmentID == "" {
		return fmt.Errorf("%w: department", ErrMissingField)
	}
	if draft.AccessLevel == "" {
		draft.AccessLevel = AccessRestricted
	}
	if !draft.AccessLevel.Valid() {
		return fmt.Errorf("%w: access level %q", ErrInvalidInput, draft.AccessLevel)
	}

	content, err := w.integra.ViewCaptured(ctx, cpf, documentID)
	if err != nil {
		return err
	}
	content = StripBoilerplate(content)

	err = w.seiws.IncludeDocument(ctx, ws.IncludeDocumentRequest{
		UnitID:      draft.DepartmentID,
		ProcedureID: procedureID,
		Number:      processNumber,
		Observation: draft.Observation,
		FileName:    draft.FileName,
		Content:     content,
		AccessLevel: string(draft.AccessLevel),
	})
	if err != nil {
		return err
	}

	sess.mu.Lock()
	sess.draft = draft
	sess.content = content
	sess.step = StepFinalize
	sess.mu.Unlock()

	w.log.Info("document included",
		zap.String("session", sess.ID),
		zap.Int("document_id", documentID),
		zap.String("process_number", processNumber))
	return nil
}

// RecordNote captures the block id / annotation pair and closes the
// session. The note is logged but not transmitted anywhere; the host page
// reload that follows on the caller's side discards all remaining state.
func (w *Workflow) RecordNote(sess *Session, note Note) error {
	sess.mu.Lock()
	if sess.step != StepFinalize {
		step := sess.step
		sess.mu.Unlock()
		return fmt.Errorf("%w: note requires step %q, session is at %q", ErrWrongStep, StepFinalize, step)
	}
	sess.note = note
	sess.step = StepClosed
	sess.mu.Unlock()

	w.log.Info("finalization note recorded",
		zap.String("session", sess.ID),
		zap.String("block_id", note.BlockID),
		zap.String("annotation", note.Annotation))
	return nil
}

// Close moves the session to the terminal step and drops it from the
// manager. In-flight submissions are not canceled.
func (w *Workflow) Close(sess *Session) {
	sess.mu.Lock()
	sess.step = StepClosed
	sess.mu.Unlock()
	w.sessions.Remove(sess.ID)
}
