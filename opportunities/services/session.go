package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"opportunity-admin-backend/config"
	"opportunity-admin-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpportunityCreator is the persistence surface the session needs for
// submission; the full repository satisfies it.
type OpportunityCreator interface {
	CreateOpportunity(opportunity *models.Opportunity) error
	LogBulkUploadErrors(rows []models.BulkUploadErrorOpportunity) error
}

// ReferenceLoader fetches the reference data one validation pass runs
// against. It is called once per pass, not per record.
type ReferenceLoader interface {
	LoadReferenceContext() (*ReferenceContext, error)
}

// UploadSession is the in-memory state of one operator's bulk upload, from
// file selection to submission or reset. The session exclusively owns its
// record list; all access goes through its methods under the mutex, and
// readers take a Snapshot rather than touching the fields directly.
type UploadSession struct {
	ID           uuid.UUID
	Step         BulkUploadStep
	FileName     string
	Records      []OpportunityWithValidation
	Processing   bool
	ErrorMessage string
	Stats        UploadStats
	Result       *BulkUploadResult

	reference    *ReferenceContext
	lastActivity time.Time
	mu           sync.Mutex
}

// SessionView is a point-in-time copy of a session's exported state. Handlers
// serialize the view, never the live session, since a validation pass may
// still be rewriting Records and Stats.
type SessionView struct {
	ID           uuid.UUID                   `json:"id"`
	Step         BulkUploadStep              `json:"currentStep"`
	FileName     string                      `json:"fileName,omitempty"`
	Records      []OpportunityWithValidation `json:"validatedData"`
	Processing   bool                        `json:"isProcessing"`
	ErrorMessage string                      `json:"error,omitempty"`
	Stats        UploadStats                 `json:"uploadStats"`
	Result       *BulkUploadResult           `json:"uploadResult,omitempty"`
}

// Snapshot copies the exported state under the session lock
func (s *UploadSession) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]OpportunityWithValidation, len(s.Records))
	copy(records, s.Records)

	view := SessionView{
		ID:           s.ID,
		Step:         s.Step,
		FileName:     s.FileName,
		Records:      records,
		Processing:   s.Processing,
		ErrorMessage: s.ErrorMessage,
		Stats:        s.Stats,
	}
	if s.Result != nil {
		result := *s.Result
		view.Result = &result
	}
	return view
}

// MarshalJSON serializes a consistent snapshot of the session
func (s *UploadSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// SessionStore holds the live upload sessions, one per operator flow
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*UploadSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]*UploadSession)}
}

func (st *SessionStore) Get(id uuid.UUID) (*UploadSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

func (st *SessionStore) add(session *UploadSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.ID] = session
}

func (st *SessionStore) Delete(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// EvictIdle drops sessions with no activity for longer than ttl. Intermediate
// upload state has no cross-session persistence, so eviction simply discards it.
func (st *SessionStore) EvictIdle(ttl time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for id, session := range st.sessions {
		session.mu.Lock()
		idle := time.Since(session.lastActivity) > ttl
		session.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// SessionService orchestrates the upload -> validation -> preview -> success
// flow over the session store
type SessionService struct {
	Store     *SessionStore
	Repo      OpportunityCreator
	Reference ReferenceLoader
}

func NewSessionService(store *SessionStore, repo OpportunityCreator, reference ReferenceLoader) *SessionService {
	return &SessionService{Store: store, Repo: repo, Reference: reference}
}

// StartSession parses the uploaded file and validates the full batch. Parse
// failure keeps the session at the upload step with the parser's message;
// a validator failure (as opposed to a validation finding) also routes back
// to upload rather than leaving the session stuck mid-flight.
func (ss *SessionService) StartSession(filePath, fileName string, registrationMode models.RegistrationMode) *UploadSession {
	session := &UploadSession{
		ID:           uuid.New(),
		Step:         UploadStep,
		FileName:     fileName,
		Records:      []OpportunityWithValidation{},
		lastActivity: time.Now(),
	}
	ss.Store.add(session)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.Processing = true

	parsed, err := ParseUploadedFile(filePath, registrationMode)
	if err != nil {
		session.Step = UploadStep
		session.Processing = false
		session.ErrorMessage = err.Error()
		config.Logger.Warn("Bulk upload parse failed",
			zap.String("sessionID", session.ID.String()),
			zap.String("fileName", fileName),
			zap.Error(err))
		return session
	}

	session.Step = ValidationStep

	reference, err := ss.Reference.LoadReferenceContext()
	if err != nil {
		session.Step = UploadStep
		session.Processing = false
		session.ErrorMessage = fmt.Sprintf("failed to load reference data: %v", err)
		config.Logger.Error("Reference data load failed", zap.Error(err))
		return session
	}
	session.reference = reference

	ss.validateLocked(session, parsed)
	return session
}

// validateLocked runs batch validation and moves the session to preview.
// The caller must hold the session mutex.
func (ss *SessionService) validateLocked(session *UploadSession, parsed []*ParsedOpportunity) {
	defer func() {
		if r := recover(); r != nil {
			session.Step = UploadStep
			session.Processing = false
			session.Records = []OpportunityWithValidation{}
			session.ErrorMessage = "validation failed"
			config.Logger.Error("Validator panicked",
				zap.String("sessionID", session.ID.String()),
				zap.Any("panic", r))
		}
	}()

	results := ValidateOpportunities(parsed, session.reference)

	records := make([]OpportunityWithValidation, len(parsed))
	for i, opportunity := range parsed {
		records[i] = OpportunityWithValidation{Opportunity: opportunity, Validation: results[i]}
	}

	session.Records = records
	session.Stats = computeStats(records)
	session.Step = PreviewStep
	session.Processing = false
	session.ErrorMessage = ""
	session.lastActivity = time.Now()
}

// EditRecord merges the revised record over the original (temp id, row
// number and raw data are preserved) and re-validates the entire batch.
// Re-validating everything instead of the one record keeps reference-data
// warnings consistent across rows after any edit.
func (ss *SessionService) EditRecord(sessionID uuid.UUID, tempID string, updated ParsedOpportunity) (*UploadSession, error) {
	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}
	if session.Step != PreviewStep {
		return nil, fmt.Errorf("records can only be edited in the preview step")
	}

	index := indexOfRecord(session.Records, tempID)
	if index < 0 {
		return nil, fmt.Errorf("record %s not found in session", tempID)
	}

	original := session.Records[index].Opportunity
	updated.TempID = original.TempID
	updated.RowNumber = original.RowNumber
	updated.RawData = original.RawData
	// Resolved master ids are recomputed by the validator
	updated.CategoryID = nil
	updated.OrganizerID = nil
	updated.OrganizerLogo = nil
	session.Records[index].Opportunity = &updated

	session.Processing = true
	parsed := make([]*ParsedOpportunity, len(session.Records))
	for i := range session.Records {
		parsed[i] = session.Records[i].Opportunity
	}
	ss.validateLocked(session, parsed)

	return session, nil
}

// DeleteRecord removes one record and recomputes the aggregate counts
func (ss *SessionService) DeleteRecord(sessionID uuid.UUID, tempID string) (*UploadSession, error) {
	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}
	if session.Step != PreviewStep {
		return nil, fmt.Errorf("records can only be deleted in the preview step")
	}

	index := indexOfRecord(session.Records, tempID)
	if index < 0 {
		return nil, fmt.Errorf("record %s not found in session", tempID)
	}

	session.Records = append(session.Records[:index], session.Records[index+1:]...)
	session.Stats = computeStats(session.Records)
	session.lastActivity = time.Now()
	return session, nil
}

// DeleteInvalid drops every record with errors. It is destructive and
// irreversible within the session, so the caller must confirm explicitly.
// Remaining rows keep their outcomes; no re-validation is needed.
func (ss *SessionService) DeleteInvalid(sessionID uuid.UUID, confirmed bool) (*UploadSession, error) {
	if !confirmed {
		return nil, fmt.Errorf("deleting all invalid rows requires confirmation")
	}

	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}
	if session.Step != PreviewStep {
		return nil, fmt.Errorf("invalid rows can only be deleted in the preview step")
	}

	kept := make([]OpportunityWithValidation, 0, len(session.Records))
	for _, record := range session.Records {
		if record.Validation.IsValid {
			kept = append(kept, record)
		}
	}

	session.Records = kept
	session.Stats = computeStats(kept)
	session.lastActivity = time.Now()
	return session, nil
}

// Submit sends the full record list to the persistence layer in one batch.
// It is only permitted when the invalid count is exactly zero. The record
// list is preserved on failure so the operator can retry without
// re-uploading the file.
func (ss *SessionService) Submit(sessionID uuid.UUID, createdBy string) (*UploadSession, error) {
	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}
	if session.Step != PreviewStep {
		return nil, fmt.Errorf("submission is only permitted from the preview step")
	}
	if len(session.Records) == 0 {
		return nil, fmt.Errorf("nothing to submit")
	}
	if session.Stats.InvalidRows > 0 {
		return nil, fmt.Errorf("please fix all errors before submitting: %d invalid rows remain", session.Stats.InvalidRows)
	}

	session.Processing = true
	defer func() { session.Processing = false }()

	result := BulkUploadResult{Errors: []RowError{}, IDs: []string{}}
	var errorRows []models.BulkUploadErrorOpportunity

	for _, record := range session.Records {
		opportunity, err := BuildOpportunityModel(record.Opportunity, createdBy)
		if err == nil {
			err = ss.Repo.CreateOpportunity(opportunity)
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				RowNumber: record.Opportunity.RowNumber,
				Error:     err.Error(),
			})
			errorRows = append(errorRows, models.BulkUploadErrorOpportunity{
				RowNumber: record.Opportunity.RowNumber,
				Title:     stringValue(record.Opportunity.Title),
				Category:  stringValue(record.Opportunity.Category),
				Organizer: stringValue(record.Opportunity.Organizer),
				Reason:    err.Error(),
				ErrorType: models.PersistenceErrorType,
				AddedVia:  models.BulkAddedViaType,
				CreatedBy: createdBy,
			})
			continue
		}
		result.CreatedCount++
		result.IDs = append(result.IDs, opportunity.ID.String())
	}

	if len(errorRows) > 0 {
		if err := ss.Repo.LogBulkUploadErrors(errorRows); err != nil {
			config.Logger.Warn("Failed to log bulk upload error rows", zap.Error(err))
		}
	}

	if result.CreatedCount == 0 && len(result.Errors) > 0 {
		session.ErrorMessage = "failed to upload opportunities"
		config.Logger.Error("Bulk submit created no rows",
			zap.String("sessionID", session.ID.String()),
			zap.Int("rejected", len(result.Errors)))
		return session, fmt.Errorf("failed to upload opportunities")
	}

	result.Success = true
	session.Result = &result
	session.Step = SuccessStep
	session.ErrorMessage = ""
	session.lastActivity = time.Now()

	config.Logger.Info("Bulk upload submitted",
		zap.String("sessionID", session.ID.String()),
		zap.Int("created", result.CreatedCount),
		zap.Int("rejected", len(result.Errors)))
	return session, nil
}

// Reset returns the session to a fresh upload step, discarding all records.
// Used both for "Re-upload File" from preview and "Upload More" from success.
func (ss *SessionService) Reset(sessionID uuid.UUID) (*UploadSession, error) {
	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}

	session.Step = UploadStep
	session.FileName = ""
	session.Records = []OpportunityWithValidation{}
	session.Stats = UploadStats{}
	session.ErrorMessage = ""
	session.Result = nil
	session.reference = nil
	session.lastActivity = time.Now()
	return session, nil
}

// RefreshReference re-fetches reference data on explicit operator request
// and re-validates the batch against it
func (ss *SessionService) RefreshReference(sessionID uuid.UUID) (*UploadSession, error) {
	session, ok := ss.Store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("upload session not found")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Processing {
		return nil, fmt.Errorf("another operation is still in progress")
	}
	if session.Step != PreviewStep {
		return nil, fmt.Errorf("reference data can only be refreshed in the preview step")
	}

	reference, err := ss.Reference.LoadReferenceContext()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	session.reference = reference

	session.Processing = true
	parsed := make([]*ParsedOpportunity, len(session.Records))
	for i := range session.Records {
		parsed[i] = session.Records[i].Opportunity
	}
	ss.validateLocked(session, parsed)
	return session, nil
}

// computeStats derives the aggregate counts from the record list. Valid
// means error-free and warning-free; invalid means at least one error;
// warning-only means error-free with warnings. total == valid + invalid +
// warningOnly always holds.
func computeStats(records []OpportunityWithValidation) UploadStats {
	stats := UploadStats{TotalRows: len(records)}
	for _, record := range records {
		switch {
		case !record.Validation.IsValid:
			stats.InvalidRows++
		case len(record.Validation.Warnings) > 0:
			stats.WarningRows++
		default:
			stats.ValidRows++
		}
	}
	return stats
}

func indexOfRecord(records []OpportunityWithValidation, tempID string) int {
	for i := range records {
		if records[i].Opportunity.TempID == tempID {
			return i
		}
	}
	return -1
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
