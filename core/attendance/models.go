package attendance

import (
	"time"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
)

// StatusPresent is the only stored status: absence is the lack of a record.
const StatusPresent = "Present"

// Attendance records that a member was present on Date.
// At most one record exists per (MemberID, Date).
type Attendance struct {
	ID               string    `json:"_id" bson:"_id"`
	MemberID         string    `json:"memberId" bson:"memberId"`
	User             string    `json:"user" bson:"user"`
	Date             string    `json:"date" bson:"date"` // YYYY-MM-DD
	AttendanceStatus string    `json:"attendanceStatus" bson:"attendanceStatus"`
	CheckInTime      string    `json:"checkInTime" bson:"checkInTime"` // HH:MM
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`     // UTC
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`     // UTC
}

// MarkAttendance marks a member present on a day.
type MarkAttendance struct {
	MemberID         string `json:"memberId" validate:"required"`
	Date             string `json:"date" validate:"omitempty,date"`
	AttendanceStatus string `json:"attendanceStatus" validate:"omitempty,oneof=Present"`
	CheckInTime      string `json:"checkInTime" validate:"omitempty,clock"`
}

func (ma *MarkAttendance) Clean() {
	ma.MemberID = core.CleanString(ma.MemberID)
	ma.Date = core.CleanString(ma.Date)
	ma.CheckInTime = core.CleanString(ma.CheckInTime)
	if ma.AttendanceStatus == "" {
		ma.AttendanceStatus = StatusPresent
	}
}

// RosterEntry pairs a member with its record for the day, nil when not marked.
type RosterEntry struct {
	Member     member.View `json:"member"`
	Attendance *Attendance `json:"attendance"`
}

// QueryFilter narrows attendance listings. From and To are inclusive YYYY-MM-DD bounds.
type QueryFilter struct {
	MemberID string `query:"memberId"`
	Date     string `query:"date"`
	From     string `query:"from"`
	To       string `query:"to"`
}

func (f QueryFilter) validate() error {
	var flds []core.FieldError
	for _, fld := range []struct{ name, value string }{{"date", f.Date}, {"from", f.From}, {"to", f.To}} {
		if fld.value == "" {
			continue
		}
		if _, err := time.Parse(core.DateLayout, fld.value); err != nil {
			flds = append(flds, core.FieldError{Field: fld.name, Error: "must be a date formatted as YYYY-MM-DD"})
		}
	}
	if len(flds) == 0 && f.From != "" && f.To != "" && f.From > f.To {
		flds = append(flds, core.FieldError{Field: "to", Error: "must not precede from"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// Match reports whether a satisfies the date bounds of f.
func (f QueryFilter) Match(a Attendance) bool {
	if f.MemberID != "" && a.MemberID != f.MemberID {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	// YYYY-MM-DD compares lexically
	if f.From != "" && a.Date < f.From {
		return false
	}
	if f.To != "" && a.Date > f.To {
		return false
	}
	return true
}

// Summary counts the days a member was present within [From, To].
type Summary struct {
	MemberID    string   `json:"memberId"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	DaysPresent int      `json:"daysPresent"`
	TotalDays   int      `json:"totalDays"`
	Dates       []string `json:"dates"`
}
