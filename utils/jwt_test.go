package utils_test

import (
	"testing"
	"time"

	"aarogya/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := utils.GenerateToken("patient-42", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := utils.ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "patient-42", subject)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := utils.GenerateToken("patient-42", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := utils.ExtractIDFromToken("not-a-jwt")
	assert.Error(t, err)
}
