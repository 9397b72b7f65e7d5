package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "Hello", DeriveTitle("Hello"))
	assert.Equal(t, strings.Repeat("a", 30), DeriveTitle(strings.Repeat("a", 30)))
	assert.Equal(t, strings.Repeat("a", 30)+"...", DeriveTitle(strings.Repeat("a", 31)))
	assert.Equal(t, strings.Repeat("ç", 30)+"...", DeriveTitle(strings.Repeat("ç", 40)))
}

func TestNewSession(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := NewSession("Olá, tudo bem?", at)
	b := NewSession("Olá, tudo bem?", at)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "Olá, tudo bem?", a.Title)
	assert.Equal(t, at, a.CreatedAt)
	assert.Empty(t, a.Messages)
}

func TestAppendExchangeKeepsPriorMessages(t *testing.T) {
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	s := NewSession("a", first)
	s.AppendExchange("a", "b", first)
	before := append([]Message(nil), s.Messages...)

	s.AppendExchange("c", "d", second)

	require.Len(t, s.Messages, 4)
	assert.Equal(t, before, s.Messages[:2])
	assert.Equal(t, Message{Role: RoleUser, Content: "c", Timestamp: second}, s.Messages[2])
	assert.Equal(t, Message{Role: RoleAssistant, Content: "d", Timestamp: second}, s.Messages[3])
}

func TestFindSession(t *testing.T) {
	sessions := []Session{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, FindSession(sessions, "b"))
	assert.Equal(t, -1, FindSession(sessions, "c"))
	assert.Equal(t, -1, FindSession(nil, "a"))
}

func TestProjectHistory(t *testing.T) {
	turns := ProjectHistory([]Message{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
		{Role: RoleUser, Content: "c"},
	})
	assert.Equal(t, []Turn{
		{Role: TurnRoleUser, Text: "a"},
		{Role: TurnRoleModel, Text: "b"},
		{Role: TurnRoleUser, Text: "c"},
	}, turns)

	assert.Empty(t, ProjectHistory(nil))
}

func TestValidationErrorIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &ValidationError{Violations: []string{"Message is required"}})
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Message is required"}, verr.Violations)
}

func TestNowHasMillisecondPrecision(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestJSONTimestampsKeepMilliseconds(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	session := NewSession("Hello", at)
	session.AppendExchange("Hello", "Hi", at.Add(120*time.Millisecond))

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt":"2024-05-01T10:00:00.000Z"`)
	assert.Contains(t, string(raw), `"timestamp":"2024-05-01T10:00:00.120Z"`)
	assert.Equal(t, 1, strings.Count(string(raw), `"createdAt"`))

	raw, err = json.Marshal(session.Summary())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"`+session.ID+`","title":"Hello","createdAt":"2024-05-01T10:00:00.000Z"}`, string(raw))

	var decoded Session
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, at.Equal(decoded.CreatedAt))

	local := time.Date(2024, 5, 1, 7, 0, 0, 5_000_000, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, "2024-05-01T10:00:00.005Z", FormatTimestamp(local))
}
