package services

import (
	"testing"

	"opportunity-admin-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeString(t *testing.T) {
	assert.Nil(t, NormalizeString(""))
	assert.Nil(t, NormalizeString("   "))

	got := NormalizeString("  Science Olympiad  ")
	require.NotNil(t, got)
	assert.Equal(t, "Science Olympiad", *got)
}

func TestNormalizeArrayField(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeArrayField(""))
	assert.Equal(t, []string{}, NormalizeArrayField("  "))

	assert.Equal(t,
		[]string{"Certificates", "Cash prize", "Mentorship"},
		NormalizeArrayField("Certificates, Cash prize; Mentorship"))

	assert.Equal(t,
		[]string{"a", "b", "c"},
		NormalizeArrayField("a|b|c"))

	// Empty tokens between delimiters are dropped
	assert.Equal(t, []string{"one", "two"}, NormalizeArrayField("one,, ,two"))
}

func TestNormalizeArrayFieldIsNeverNil(t *testing.T) {
	assert.NotNil(t, NormalizeArrayField(""))
}

func TestNormalizeBoolean(t *testing.T) {
	assert.True(t, NormalizeBoolean("true"))
	assert.True(t, NormalizeBoolean("TRUE"))
	assert.True(t, NormalizeBoolean(" Yes "))
	assert.True(t, NormalizeBoolean("1"))

	assert.False(t, NormalizeBoolean(""))
	assert.False(t, NormalizeBoolean("false"))
	assert.False(t, NormalizeBoolean("no"))
	assert.False(t, NormalizeBoolean("2"))
	assert.False(t, NormalizeBoolean("maybe"))
}

func TestNormalizeDate(t *testing.T) {
	assert.Nil(t, NormalizeDate(""))
	assert.Nil(t, NormalizeDate("not a date"))
	assert.Nil(t, NormalizeDate("2024-13-45"))

	got := NormalizeDate("2026-03-15")
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-15T00:00:00Z", *got)

	got = NormalizeDate("15/03/2026")
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-15T00:00:00Z", *got)

	// Already an instant, passes through in UTC
	got = NormalizeDate("2026-03-15T10:30:00+05:30")
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-15T05:00:00Z", *got)
}

func TestNormalizeDateIdempotent(t *testing.T) {
	first := NormalizeDate("Jan 2, 2026")
	require.NotNil(t, first)
	second := NormalizeDate(*first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestNormalizeMode(t *testing.T) {
	assert.Equal(t, "online", NormalizeMode(""))
	assert.Equal(t, "online", NormalizeMode("online"))
	assert.Equal(t, "online", NormalizeMode("virtual"))
	assert.Equal(t, "offline", NormalizeMode(" OFFLINE "))
	assert.Equal(t, "hybrid", NormalizeMode("Hybrid"))
}

func TestNormalizeEligibilityType(t *testing.T) {
	assert.Nil(t, NormalizeEligibilityType(""))
	assert.Nil(t, NormalizeEligibilityType("class"))

	got := NormalizeEligibilityType(" Grade ")
	require.NotNil(t, got)
	assert.Equal(t, "grade", *got)

	got = NormalizeEligibilityType("BOTH")
	require.NotNil(t, got)
	assert.Equal(t, "both", *got)
}

func TestNormalizeTimeline(t *testing.T) {
	assert.Equal(t, []models.TimelineEvent{}, NormalizeTimeline(""))

	timeline := NormalizeTimeline("2026-01-10|Registration opens|completed; 2026-02-01|Exam")
	require.Len(t, timeline, 2)
	assert.Equal(t, "2026-01-10", timeline[0].Date)
	assert.Equal(t, "Registration opens", timeline[0].Event)
	assert.Equal(t, models.CompletedTimelineStatus, timeline[0].Status)

	// Missing status defaults to upcoming
	assert.Equal(t, models.UpcomingTimelineStatus, timeline[1].Status)

	// Entries without both date and event are dropped
	timeline = NormalizeTimeline("2026-01-10|; |Exam; 2026-02-01|Results")
	require.Len(t, timeline, 1)
	assert.Equal(t, "Results", timeline[0].Event)
}

func TestNormalizeFeeAmount(t *testing.T) {
	assert.Nil(t, NormalizeFeeAmount("Free"))
	assert.Nil(t, NormalizeFeeAmount(""))

	got := NormalizeFeeAmount("INR 500 per team")
	require.NotNil(t, got)
	assert.Equal(t, "500", got.String())

	got = NormalizeFeeAmount("250.50")
	require.NotNil(t, got)
	assert.Equal(t, "250.5", got.String())
}
