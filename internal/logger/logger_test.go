package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"employee_email", "konklux@company.com",
		"sftp_pass", "hunter2",
		"url", "http://upstream/?q=lang@company.com",
		"count", 3,
		"dangling",
	})

	require.Len(t, out, 9)
	assert.Equal(t, "ko***@company.com", out[1])
	assert.Equal(t, "[REDACTED]", out[3])
	assert.Equal(t, "http://upstream/?q=la***@company.com", out[5])
	assert.Equal(t, 3, out[7])
	assert.Equal(t, "dangling", out[8])
}

func TestLoggerWritesSanitizedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With("component", "test")

	l.Info("created", "email", "jill.smith@company.com")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "ji***@company.com", fields["email"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		require.NoError(t, err)
		require.NotNil(t, l.SugaredLogger)
	}
	Nop().Info("discarded")
}
