package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtidevpmj/seidev/internal/hostpage"
	"github.com/dtidevpmj/seidev/internal/sei/integra"
)

// AccessLevel is the document confidentiality classification attached at
// inclusion time.
type AccessLevel string

const (
	// AccessRestricted maps to the host system's "Restrito" level.
	AccessRestricted AccessLevel = "1"
	// AccessConfidential maps to the host system's "Sigiloso" level.
	AccessConfidential AccessLevel = "2"
)

// Valid reports whether a is a known access level.
func (a AccessLevel) Valid() bool {
	return a == AccessRestricted || a == AccessConfidential
}

// Draft is the metadata attached to the captured document before inclusion.
type Draft struct {
	DepartmentID   string      `json:"department_id"`
	DepartmentName string      `json:"department_name"`
	Observation    string      `json:"observation"`
	FileName       string      `json:"file_name"`
	AccessLevel    AccessLevel `json:"access_level"`
}

// Note is the block id / annotation pair captured on the finalize screen.
// It is recorded and logged but never transmitted; the host-page reload
// that follows discards it.
type Note struct {
	BlockID    string `json:"block_id"`
	Annotation string `json:"annotation"`
}

// Session is one user's pass through the wizard. All fields besides ID are
// guarded by mu; handlers operate on sessions through the Workflow methods.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu   sync.Mutex
	step Step

	page *hostpage.Page
	cpf  string

	// search step
	unitCode    string
	unitLabel   string
	docTypeCode string
	docTypeName string
	unitSeq     uint64
	docSeq      uint64

	// select step
	interestedPartyID int
	docTypeID         int
	records           []integra.Record

	// metadata step
	documentID int
	draft      Draft
	content    string

	// finalize step
	note Note
}

// Snapshot is a read-only projection of session state for API responses.
type Snapshot struct {
	ID                string           `json:"id"`
	Step              Step             `json:"step"`
	Page              *hostpage.Page   `json:"page"`
	CPFResolved       bool             `json:"cpf_resolved"`
	UnitCode          string           `json:"unit_code,omitempty"`
	DocTypeCode       string           `json:"doc_type_code,omitempty"`
	InterestedPartyID int              `json:"interested_party_id,omitempty"`
	Records           []integra.Record `json:"records,omitempty"`
	DocumentID        int              `json:"document_id,omitempty"`
	Draft             Draft            `json:"draft"`
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]integra.Record, len(s.records))
	copy(records, s.records)

	return Snapshot{
		ID:                s.ID,
		Step:              s.step,
		Page:              s.page,
		CPFResolved:       s.cpf != "",
		UnitCode:          s.unitCode,
		DocTypeCode:       s.docTypeCode,
		InterestedPartyID: s.interestedPartyID,
		Records:           records,
		DocumentID:        s.documentID,
		Draft:             s.draft,
	}
}

// Step returns the session's current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Manager owns the live sessions.
type Manager struct {
	sessions sync.Map
}

// NewManager creates a session manager.
func NewManager() *Manager {
	return &Manager{}
}

// Create registers a new session starting at the search step.
func (m *Manager) Create(page *hostpage.Page) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		step:      StepSearch,
		page:      page,
	}
	m.sessions.Store(s.ID, s)
	return s
}

// Get retrieves a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	val, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*Session), true
}

// Remove drops a session. In-flight remote calls it issued are not
// canceled; their completions simply have nothing left to update.
func (m *Manager) Remove(id string) {
	m.sessions.Delete(id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	n := 0
	m.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
