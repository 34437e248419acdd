package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestConfirmationCodes_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	codes := NewConfirmationCodes(testSecret, time.Hour).WithClock(fixedClock(now))
	user := testUser()

	code, err := codes.Make(user)
	require.NoError(t, err)
	assert.Contains(t, code, "-")

	assert.True(t, codes.Check(user, code))
}

func TestConfirmationCodes_Rejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	codes := NewConfirmationCodes(testSecret, time.Hour).WithClock(fixedClock(now))
	user := testUser()

	code, err := codes.Make(user)
	require.NoError(t, err)

	other := testUser()
	tampered := code[:len(code)-1] + "0"
	if strings.HasSuffix(code, "0") {
		tampered = code[:len(code)-1] + "1"
	}

	tests := []struct {
		name  string
		check func() bool
	}{
		{name: "empty", check: func() bool { return codes.Check(user, "") }},
		{name: "no separator", check: func() bool { return codes.Check(user, "abcdef") }},
		{name: "bad timestamp", check: func() bool { return codes.Check(user, "!!-abcdef") }},
		{name: "tampered mac", check: func() bool { return codes.Check(user, tampered) }},
		{name: "other user", check: func() bool { return codes.Check(other, code) }},
		{name: "nil user", check: func() bool { return codes.Check(nil, code) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.check())
		})
	}
}

func TestConfirmationCodes_Expires(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	codes := NewConfirmationCodes(testSecret, time.Hour).WithClock(fixedClock(issued))
	user := testUser()

	code, err := codes.Make(user)
	require.NoError(t, err)

	codes.WithClock(fixedClock(issued.Add(59 * time.Minute)))
	assert.True(t, codes.Check(user, code))

	codes.WithClock(fixedClock(issued.Add(61 * time.Minute)))
	assert.False(t, codes.Check(user, code))
}

func TestConfirmationCodes_SingleUseAfterLogin(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	codes := NewConfirmationCodes(testSecret, time.Hour).WithClock(fixedClock(now))
	user := testUser()

	first, err := codes.Make(user)
	require.NoError(t, err)
	second, err := codes.Make(user)
	require.NoError(t, err)
	assert.True(t, codes.Check(user, first))
	assert.True(t, codes.Check(user, second))

	login := now.Add(time.Minute)
	user.LastLogin = &login

	assert.False(t, codes.Check(user, first))
	assert.False(t, codes.Check(user, second))
}

func TestConfirmationCodes_SecretMatters(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	user := testUser()

	code, err := NewConfirmationCodes(testSecret, time.Hour).WithClock(fixedClock(now)).Make(user)
	require.NoError(t, err)

	other := NewConfirmationCodes("another-secret", time.Hour).WithClock(fixedClock(now))
	assert.False(t, other.Check(user, code))
}
