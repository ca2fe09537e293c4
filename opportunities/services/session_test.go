package services

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	created    []*models.Opportunity
	loggedRows []models.BulkUploadErrorOpportunity
	failTitles map[string]bool
}

func (f *fakeCreator) CreateOpportunity(opportunity *models.Opportunity) error {
	if f.failTitles[opportunity.Title] {
		return fmt.Errorf("insert failed")
	}
	f.created = append(f.created, opportunity)
	return nil
}

func (f *fakeCreator) LogBulkUploadErrors(rows []models.BulkUploadErrorOpportunity) error {
	f.loggedRows = append(f.loggedRows, rows...)
	return nil
}

type fakeReference struct {
	ctx *ReferenceContext
	err error
}

func (f *fakeReference) LoadReferenceContext() (*ReferenceContext, error) {
	return f.ctx, f.err
}

func newTestSessionService(creator *fakeCreator) *SessionService {
	return NewSessionService(NewSessionStore(), creator, &fakeReference{ctx: testReferenceContext()})
}

func startTestSession(t *testing.T, ss *SessionService, rows [][]string) *UploadSession {
	t.Helper()
	path := writeTestWorkbook(t, rows)
	session := ss.StartSession(path, "upload.xlsx", models.ExternalRegistrationMode)
	require.NotNil(t, session)
	return session
}

var sessionTestRows = [][]string{
	{"title", "category", "organizer", "gradeEligibility", "mode", "benefits", "eligibility"},
	{"Math Olympiad", "Olympiad", "MathSoc", "6-12", "online", "Medal", "Grades 6-12"},
	{"", "Olympiad", "MathSoc", "6-12", "online", "Medal", "Grades 6-12"},
	{"Science Fair", "Bootcamp", "MathSoc", "6-12", "online", "Medal", "Grades 6-12"},
}

func TestStartSessionMovesToPreview(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	assert.Equal(t, PreviewStep, session.Step)
	assert.False(t, session.Processing)
	assert.Empty(t, session.ErrorMessage)
	require.Len(t, session.Records, 3)

	// Row 2 clean, row 3 missing title, row 4 unknown category (warning only)
	stats := session.Stats
	assert.Equal(t, 3, stats.TotalRows)
	assert.Equal(t, 1, stats.ValidRows)
	assert.Equal(t, 1, stats.InvalidRows)
	assert.Equal(t, 1, stats.WarningRows)
	assert.Equal(t, stats.TotalRows, stats.ValidRows+stats.InvalidRows+stats.WarningRows)
}

func TestStartSessionParseFailureStaysAtUpload(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, [][]string{{"title"}})

	assert.Equal(t, UploadStep, session.Step)
	assert.Contains(t, session.ErrorMessage, "empty or has no data rows")
	assert.Empty(t, session.Records)
}

func TestStartSessionReferenceFailureStaysAtUpload(t *testing.T) {
	ss := NewSessionService(NewSessionStore(), &fakeCreator{}, &fakeReference{err: fmt.Errorf("db down")})
	session := startTestSession(t, ss, sessionTestRows)

	assert.Equal(t, UploadStep, session.Step)
	assert.Contains(t, session.ErrorMessage, "reference data")
}

func TestEditRecordRevalidatesWholeBatch(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	invalid := session.Records[1]
	assert.False(t, invalid.Validation.IsValid)

	updated := *invalid.Opportunity
	updated.Title = strPtr("Junior Olympiad")
	updated.TempID = "ignored"
	updated.RowNumber = 99

	got, err := ss.EditRecord(session.ID, invalid.Opportunity.TempID, updated)
	require.NoError(t, err)

	// Identity fields survive the merge
	record := got.Records[1]
	assert.Equal(t, invalid.Opportunity.TempID, record.Opportunity.TempID)
	assert.Equal(t, 3, record.Opportunity.RowNumber)
	assert.True(t, record.Validation.IsValid)

	assert.Equal(t, 0, got.Stats.InvalidRows)
	assert.Equal(t, 2, got.Stats.ValidRows)
	assert.Equal(t, 1, got.Stats.WarningRows)
}

func TestEditRecordUnknownTempID(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.EditRecord(session.ID, "missing", ParsedOpportunity{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteRecordRecomputesStats(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	invalidTempID := session.Records[1].Opportunity.TempID
	got, err := ss.DeleteRecord(session.ID, invalidTempID)
	require.NoError(t, err)

	assert.Len(t, got.Records, 2)
	assert.Equal(t, 2, got.Stats.TotalRows)
	assert.Equal(t, 0, got.Stats.InvalidRows)
}

func TestDeleteInvalidRequiresConfirmation(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.DeleteInvalid(session.ID, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmation")

	got, err := ss.DeleteInvalid(session.ID, true)
	require.NoError(t, err)
	assert.Len(t, got.Records, 2)
	assert.Equal(t, 0, got.Stats.InvalidRows)

	// Remaining rows keep their original outcomes
	assert.Equal(t, 1, got.Stats.WarningRows)
}

func TestSubmitBlockedWhileInvalidRowsRemain(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.Submit(session.ID, "ops@example.org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rows remain")
	assert.Equal(t, PreviewStep, session.Step)
}

func TestSubmitHappyPath(t *testing.T) {
	creator := &fakeCreator{}
	ss := newTestSessionService(creator)
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.DeleteInvalid(session.ID, true)
	require.NoError(t, err)

	got, err := ss.Submit(session.ID, "ops@example.org")
	require.NoError(t, err)

	assert.Equal(t, SuccessStep, got.Step)
	require.NotNil(t, got.Result)
	assert.True(t, got.Result.Success)
	assert.Equal(t, 2, got.Result.CreatedCount)
	assert.Empty(t, got.Result.Errors)
	assert.Len(t, got.Result.IDs, 2)

	require.Len(t, creator.created, 2)
	assert.Equal(t, "ops@example.org", creator.created[0].CreatedBy)
	assert.Equal(t, models.DraftStatus, creator.created[0].Status)
}

func TestSubmitPartialFailure(t *testing.T) {
	creator := &fakeCreator{failTitles: map[string]bool{"Science Fair": true}}
	ss := newTestSessionService(creator)
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.DeleteInvalid(session.ID, true)
	require.NoError(t, err)

	got, err := ss.Submit(session.ID, "ops@example.org")
	require.NoError(t, err)

	require.NotNil(t, got.Result)
	assert.True(t, got.Result.Success)
	assert.Equal(t, 1, got.Result.CreatedCount)
	require.Len(t, got.Result.Errors, 1)
	assert.Equal(t, 4, got.Result.Errors[0].RowNumber)

	// The rejected row is persisted for later review
	require.Len(t, creator.loggedRows, 1)
	assert.Equal(t, "Science Fair", creator.loggedRows[0].Title)
	assert.Equal(t, models.PersistenceErrorType, creator.loggedRows[0].ErrorType)
}

func TestSubmitAllRowsFailed(t *testing.T) {
	creator := &fakeCreator{failTitles: map[string]bool{"Math Olympiad": true, "Science Fair": true}}
	ss := newTestSessionService(creator)
	session := startTestSession(t, ss, sessionTestRows)

	_, err := ss.DeleteInvalid(session.ID, true)
	require.NoError(t, err)

	got, err := ss.Submit(session.ID, "ops@example.org")
	require.Error(t, err)
	require.NotNil(t, got)

	// The batch stays in preview so the operator can retry
	assert.Equal(t, PreviewStep, got.Step)
	assert.Len(t, got.Records, 2)
}

func TestResetClearsSession(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	got, err := ss.Reset(session.ID)
	require.NoError(t, err)

	assert.Equal(t, UploadStep, got.Step)
	assert.Empty(t, got.Records)
	assert.Equal(t, UploadStats{}, got.Stats)
	assert.Nil(t, got.Result)
}

func TestRefreshReferenceRevalidates(t *testing.T) {
	reference := &fakeReference{ctx: &ReferenceContext{}}
	ss := NewSessionService(NewSessionStore(), &fakeCreator{}, reference)
	session := startTestSession(t, ss, sessionTestRows)

	// With empty reference data every row warns about its category
	assert.Equal(t, 0, session.Stats.ValidRows)

	reference.ctx = testReferenceContext()
	got, err := ss.RefreshReference(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.ValidRows)
}

func TestSessionMarshalWhileEditing(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	tempID := session.Snapshot().Records[0].Opportunity.TempID

	// Re-validate the batch in the background while the session is being
	// serialized, as happens when the UI polls during an edit
	done := make(chan error, 1)
	go func() {
		for i := 0; i < 100; i++ {
			updated := ParsedOpportunity{Title: strPtr(fmt.Sprintf("Math Olympiad %d", i))}
			if _, err := ss.EditRecord(session.ID, tempID, updated); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 100; i++ {
		_, err := json.Marshal(session)
		assert.NoError(t, err)
	}
	require.NoError(t, <-done)
}

func TestSessionJSONFieldNames(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	for _, key := range []string{"id", "currentStep", "fileName", "validatedData", "isProcessing", "uploadStats"} {
		assert.Contains(t, payload, key)
	}
	assert.Equal(t, string(PreviewStep), payload["currentStep"])
}

func TestEvictIdleSessions(t *testing.T) {
	ss := newTestSessionService(&fakeCreator{})
	session := startTestSession(t, ss, sessionTestRows)

	assert.Equal(t, 0, ss.Store.EvictIdle(time.Hour))

	evicted := ss.Store.EvictIdle(0)
	assert.Equal(t, 1, evicted)
	_, ok := ss.Store.Get(session.ID)
	assert.False(t, ok)
}
