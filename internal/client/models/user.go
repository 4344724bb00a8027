package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Defaults the server documents for new or partially filled records.
const (
	DefaultCheckinTime = "01:05"
	DefaultChannel     = "L0"
	DefaultBUCode      = "L00602"
	DefaultRiskSource  = "2"
)

// Timestamp accepts both RFC 3339 and the server's zone-less ISO form
// ("2006-01-02T15:04:05.999999"). Zone-less values are taken as local time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UserRecord is a server-owned check-in account. The console never mutates
// one in place: every change is submitted via the API and the list is
// re-fetched before the next render. The id is server-assigned and immutable.
type UserRecord struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	AccountID         string     `json:"account_id"`
	IsActive          bool       `json:"is_active"`
	CheckinTime       string     `json:"checkin_time"`
	LastCheckinTime   *Timestamp `json:"last_checkin_time"`
	LastCheckinStatus string     `json:"last_checkin_status"`

	Token        string `json:"token"`
	UserToken    string `json:"x-lf-usertoken"`
	Cookie       string `json:"cookie"`
	DxriskToken  string `json:"x-lf-dxrisk-token"`
	Channel      string `json:"x-lf-channel"`
	BUCode       string `json:"x-lf-bu-code"`
	DxriskSource string `json:"x-lf-dxrisk-source"`
}

// UserPayload is the complete editable field set submitted on create and
// update. Updates are full-field replaces: every field goes over the wire,
// blank or not, never a sparse patch.
type UserPayload struct {
	Username     string `json:"username"`
	AccountID    string `json:"account_id"`
	IsActive     bool   `json:"is_active"`
	CheckinTime  string `json:"checkin_time"`
	Token        string `json:"token"`
	UserToken    string `json:"x-lf-usertoken"`
	Cookie       string `json:"cookie"`
	DxriskToken  string `json:"x-lf-dxrisk-token"`
	Channel      string `json:"x-lf-channel"`
	BUCode       string `json:"x-lf-bu-code"`
	DxriskSource string `json:"x-lf-dxrisk-source"`
}

// PayloadFromRecord copies a record's editable fields, substituting the
// documented defaults for the three header fields when the record carries
// none. The other credential fields stay empty when absent.
func PayloadFromRecord(r UserRecord) UserPayload {
	return UserPayload{
		Username:     r.Username,
		AccountID:    r.AccountID,
		IsActive:     r.IsActive,
		CheckinTime:  r.CheckinTime,
		Token:        r.Token,
		UserToken:    r.UserToken,
		Cookie:       r.Cookie,
		DxriskToken:  r.DxriskToken,
		Channel:      orDefault(r.Channel, DefaultChannel),
		BUCode:       orDefault(r.BUCode, DefaultBUCode),
		DxriskSource: orDefault(r.DxriskSource, DefaultRiskSource),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
