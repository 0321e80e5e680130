package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dtidevpmj/seidev/internal/httpx"
	"github.com/dtidevpmj/seidev/internal/logging"
	"github.com/dtidevpmj/seidev/internal/monitoring"
	"github.com/dtidevpmj/seidev/internal/wizard"
)

// handlers contains the wizard API handlers.
type handlers struct {
	workflow *wizard.Workflow
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

func newHandlers(workflow *wizard.Workflow, metrics *monitoring.Metrics, log *logging.Logger) *handlers {
	return &handlers{workflow: workflow, metrics: metrics, log: log}
}

// Root handles service info.
func (h *handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "seidev capture assistant",
		"version": "1.0.0",
	})
}

// session loads the session for the :id param, writing the error response
// itself when the session is unknown.
func (h *handlers) session(c *gin.Context) (*wizard.Session, bool) {
	sess, ok := h.workflow.Sessions().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": wizard.ErrSessionNotFound.Error()})
		return nil, false
	}
	return sess, true
}

// fail maps a workflow error onto an HTTP status.
func (h *handlers) fail(c *gin.Context, err error) {
	var remote *httpx.RemoteError

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, wizard.ErrMissingField),
		errors.Is(err, wizard.ErrInvalidInput),
		errors.Is(err, wizard.ErrNoSelection):
		status = http.StatusBadRequest
	case errors.Is(err, wizard.ErrWrongStep),
		errors.Is(err, wizard.ErrIdentityPending),
		errors.Is(err, wizard.ErrSupersededQuery):
		status = http.StatusConflict
	case errors.Is(err, wizard.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &remote):
		status = http.StatusBadGateway
	}

	if status == http.StatusBadGateway {
		h.log.Error("upstream failure", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type createSessionRequest struct {
	PageHTML string `json:"page_html" binding:"required"`
}

// CreateSession opens a wizard session from a host-page snapshot.
func (h *handlers) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_html is required"})
		return
	}

	sess, err := h.workflow.Open(c.Request.Context(), req.PageHTML)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.SessionsOpened.Inc()
	h.metrics.SessionsActive.Set(float64(h.workflow.Sessions().Count()))
	c.JSON(http.StatusCreated, sess.Snapshot())
}

// GetSession returns the session state.
func (h *handlers) GetSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// CloseSession drops a session. In-flight submissions are not aborted.
func (h *handlers) CloseSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.workflow.Close(sess)
	h.metrics.SessionsActive.Set(float64(h.workflow.Sessions().Count()))
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

type searchRequest struct {
	Query string `json:"query"`
}

// SearchUnits searches the managing-unit catalog.
func (h *handlers) SearchUnits(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	units, err := h.workflow.SearchUnits(c.Request.Context(), sess, req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

// SearchDocTypes searches the document-type catalog.
func (h *handlers) SearchDocTypes(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	types, err := h.workflow.SearchDocTypes(c.Request.Context(), sess, req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc_types": types})
}

// SearchDepartments searches SEI units for the metadata screen.
func (h *handlers) SearchDepartments(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	units, err := h.workflow.SearchDepartments(c.Request.Context(), sess, req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": units})
}

// Query fetches pending integration records.
func (h *handlers) Query(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var params wizard.QueryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.workflow.Query(c.Request.Context(), sess, params)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interested_party_id": list.InterestedPartyID,
		"records":             list.Records,
	})
}

type submitRequest struct {
	Indices []int `json:"indices"`
}

// Submit captures the selected records.
func (h *handlers) Submit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	documentID, err := h.workflow.Submit(c.Request.Context(), sess, req.Indices)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.RecordsSubmitted.Add(float64(len(req.Indices)))
	c.JSON(http.StatusOK, gin.H{"document_id": documentID})
}

// Finalize includes the captured document with its metadata.
func (h *handlers) Finalize(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var draft wizard.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.workflow.Finalize(c.Request.Context(), sess, draft); err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.DocumentsIncluded.Inc()
	c.JSON(http.StatusOK, gin.H{"included": true})
}

// Note records the block id / annotation pair and closes the wizard; the
// caller reloads the host page afterwards.
func (h *handlers) Note(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var note wizard.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.workflow.RecordNote(sess, note); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": true, "reload": true})
}
