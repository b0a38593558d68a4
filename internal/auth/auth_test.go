package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests use a tiny round count; DefaultRounds would dominate the suite's runtime.
const testRounds = 16

func TestCheckPassword(t *testing.T) {
	creds, err := NewCredentials("hunter2", "1234", testRounds)
	require.NoError(t, err)

	assert.True(t, creds.CheckPassword("hunter2"))
	assert.False(t, creds.CheckPassword("hunter3"))
	assert.False(t, creds.CheckPassword(""))
}

func TestCheckPIN(t *testing.T) {
	creds, err := NewCredentials("hunter2", "1234", testRounds)
	require.NoError(t, err)

	assert.True(t, creds.CheckPIN("1234"))
	assert.False(t, creds.CheckPIN("4321"))
	assert.False(t, creds.CheckPIN("hunter2"), "password must not pass as PIN")
}

func TestSetPassword(t *testing.T) {
	creds, err := NewCredentials("old", "1234", testRounds)
	require.NoError(t, err)

	creds.SetPassword("new")
	assert.False(t, creds.CheckPassword("old"))
	assert.True(t, creds.CheckPassword("new"))
	assert.True(t, creds.CheckPIN("1234"), "PIN unaffected by password change")
}

func TestSetPIN(t *testing.T) {
	creds, err := NewCredentials("pw", "1111", testRounds)
	require.NoError(t, err)

	creds.SetPIN("2222")
	assert.False(t, creds.CheckPIN("1111"))
	assert.True(t, creds.CheckPIN("2222"))
}

func TestSaltUniquePerUser(t *testing.T) {
	a, err := NewCredentials("same", "0000", testRounds)
	require.NoError(t, err)
	b, err := NewCredentials("same", "0000", testRounds)
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}
