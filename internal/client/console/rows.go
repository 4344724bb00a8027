package console

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/timmyz/newlongfor/internal/client/models"
)

// lastRunNever is shown for accounts whose check-in has never run.
const lastRunNever = "N/A"

const lastRunLayout = "2006-01-02 15:04:05"

// errorMarkers flag a check-in result as failed. Statuses are free text from
// the server, so this is plain substring classification.
var errorMarkers = []string{"失败", "异常"}

// Row is the computed display state for one user record.
type Row struct {
	ID          int64
	Username    string
	AccountID   string
	Active      bool
	CheckinTime string
	LastRun     string
	Status      string
	StatusErr   bool
}

// BuildRows derives table rows from a fetched user list. It is pure: the same
// list always yields the same rows, in fetch order. Each render replaces the
// previous table wholesale; nothing is diffed or patched.
func BuildRows(users []models.UserRecord) []Row {
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = Row{
			ID:          u.ID,
			Username:    u.Username,
			AccountID:   u.AccountID,
			Active:      u.IsActive,
			CheckinTime: u.CheckinTime,
			LastRun:     formatLastRun(u.LastCheckinTime),
			Status:      u.LastCheckinStatus,
			StatusErr:   statusIsError(u.LastCheckinStatus),
		}
	}
	return rows
}

func formatLastRun(t *models.Timestamp) string {
	if t == nil {
		return lastRunNever
	}
	return t.Local().Format(lastRunLayout)
}

func statusIsError(status string) bool {
	for _, m := range errorMarkers {
		if strings.Contains(status, m) {
			return true
		}
	}
	return false
}

// cell truncates s to w display columns and pads it right. Status texts are
// CJK, so width is measured in terminal cells, not runes.
func cell(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}
