package redact_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/task-api/internal/redact"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		mustNotHave []string
		mustHave    []string
	}{
		{
			name:        "postgres DSN",
			input:       "failed to connect to postgres://taskapi:hunter2@db:5432/tasks",
			mustNotHave: []string{"hunter2", "taskapi:"},
			mustHave:    []string{redact.RedactedCredentialPlaceholder},
		},
		{
			name:        "keyword DSN password",
			input:       "host=localhost user=app password=s3cr3t dbname=tasks",
			mustNotHave: []string{"s3cr3t"},
			mustHave:    []string{redact.RedactedCredentialPlaceholder},
		},
		{
			name:        "secret key",
			input:       "loaded SECRET_KEY=abcdefghijklmnop from env",
			mustNotHave: []string{"abcdefghijklmnop"},
			mustHave:    []string{redact.RedactedKeyPlaceholder},
		},
		{
			name:        "sql statement",
			input:       "query failed: UPDATE tasks SET title = $1 WHERE id = $2",
			mustNotHave: []string{"UPDATE tasks"},
			mustHave:    []string{redact.RedactedSQLPlaceholder},
		},
		{
			name:        "file path",
			input:       "open /etc/taskapi/config.yaml: permission denied",
			mustNotHave: []string{"/etc/taskapi"},
			mustHave:    []string{redact.RedactedPathPlaceholder, "permission denied"},
		},
		{
			name:        "host and port",
			input:       "dial tcp db.internal.example.com:5432: connection refused",
			mustNotHave: []string{"db.internal.example.com"},
			mustHave:    []string{redact.RedactedHostPlaceholder, "connection refused"},
		},
		{
			name:     "plain message is untouched",
			input:    "task not found",
			mustHave: []string{"task not found"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := redact.String(tt.input)
			for _, s := range tt.mustNotHave {
				assert.NotContains(t, got, s)
			}
			for _, s := range tt.mustHave {
				assert.Contains(t, got, s)
			}
		})
	}

	assert.Equal(t, "", redact.String(""))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", redact.Error(nil))

	err := fmt.Errorf("store: %w", errors.New("postgres://u:p@host/db unreachable"))
	got := redact.Error(err)
	assert.NotContains(t, got, "u:p@")
	assert.Contains(t, got, "store:")
}
