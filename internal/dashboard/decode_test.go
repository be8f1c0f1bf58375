package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/dashboard"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
		wantErr bool
	}{
		{name: "bare array", body: `[{"id":"a"},{"id":"b"}]`, wantIDs: []string{"a", "b"}},
		{name: "data envelope", body: `{"data":[{"id":"c"}],"total":1}`, wantIDs: []string{"c"}},
		{name: "empty array", body: `[]`, wantIDs: []string{}},
		{name: "null body", body: `null`, wantIDs: []string{}},
		{name: "empty body", body: "  \n", wantIDs: []string{}},
		{name: "null data", body: `{"data":null}`, wantIDs: []string{}},
		{name: "object without data", body: `{"items":[]}`, wantErr: true},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "malformed", body: `[{"id":}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dashboard.DecodeList[dashboard.Pipeline]([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDecodeList_NullableFields(t *testing.T) {
	body := `[{"id":"p1","last_run_at":"2026-01-02T03:04:05Z","owner":"ops"},{"id":"p2","last_run_at":null,"owner":null}]`

	got, err := dashboard.DecodeList[dashboard.Pipeline]([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].LastRunAt)
	assert.Equal(t, 2026, got[0].LastRunAt.Year())
	require.NotNil(t, got[0].Owner)
	assert.Equal(t, "ops", *got[0].Owner)
	assert.Nil(t, got[1].LastRunAt)
	assert.Nil(t, got[1].Owner)
}
