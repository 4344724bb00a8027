package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "RFC 3339",
			input: `"2026-08-29T01:05:00+08:00"`,
			want:  time.Date(2026, 8, 29, 1, 5, 0, 0, time.FixedZone("", 8*3600)),
		},
		{
			name:  "zone-less with microseconds",
			input: `"2026-08-29T01:05:00.123456"`,
			want:  time.Date(2026, 8, 29, 1, 5, 0, 123456000, time.Local),
		},
		{
			name:  "zone-less without fraction",
			input: `"2026-08-29T01:05:00"`,
			want:  time.Date(2026, 8, 29, 1, 5, 0, 0, time.Local),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.input), &ts))
			require.True(t, ts.Equal(tc.want), "got %v, want %v", ts.Time, tc.want)
		})
	}
}

func TestTimestamp_UnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	require.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestUserRecord_NullLastCheckinTime(t *testing.T) {
	var rec UserRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"username":"a","last_checkin_time":null}`), &rec))
	require.Nil(t, rec.LastCheckinTime)
}

func TestPayloadFromRecord_Defaults(t *testing.T) {
	rec := UserRecord{
		ID:        7,
		Username:  "bare",
		AccountID: "acc-7",
	}

	p := PayloadFromRecord(rec)

	require.Equal(t, DefaultChannel, p.Channel)
	require.Equal(t, DefaultBUCode, p.BUCode)
	require.Equal(t, DefaultRiskSource, p.DxriskSource)
	require.Empty(t, p.Token)
	require.Empty(t, p.Cookie)
}

func TestPayloadFromRecord_KeepsPresentValues(t *testing.T) {
	rec := UserRecord{
		Username:     "full",
		AccountID:    "acc-1",
		Channel:      "L9",
		BUCode:       "L12345",
		DxriskSource: "5",
		Token:        "tok",
	}

	p := PayloadFromRecord(rec)

	require.Equal(t, "L9", p.Channel)
	require.Equal(t, "L12345", p.BUCode)
	require.Equal(t, "5", p.DxriskSource)
	require.Equal(t, "tok", p.Token)
}

// The server keys some fields by HTTP header name; make sure they survive a
// round trip over the wire unchanged.
func TestUserPayload_WireFieldNames(t *testing.T) {
	p := UserPayload{Username: "u", AccountID: "a", IsActive: true, CheckinTime: "01:05"}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))

	for _, key := range []string{
		"username", "account_id", "is_active", "checkin_time",
		"token", "x-lf-usertoken", "cookie", "x-lf-dxrisk-token",
		"x-lf-channel", "x-lf-bu-code", "x-lf-dxrisk-source",
	} {
		require.Contains(t, wire, key)
	}
}
