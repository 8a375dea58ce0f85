package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
)

func Test_attendanceApi(t *testing.T) {
	app := setup(t)
	_, token := app.createUser(t, "Owner", "owner@gym.test")
	_, otherToken := app.createUser(t, "Other", "other@gym.test")
	ann := app.createMember(t, token, "Ann", nil)
	bob := app.createMember(t, token, "Bob", nil)

	mark := func(t *testing.T, tok string, body map[string]string) attendance.Attendance {
		t.Helper()
		rec := app.do(t, http.MethodPost, "/attendance", tok, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var a attendance.Attendance
		decode(t, rec, &a)
		return a
	}

	t.Run("mark", func(t *testing.T) {
		first := mark(t, token, map[string]string{"memberId": ann.ID, "date": "2024-03-01", "checkInTime": "07:05"})
		assert.Equal(t, attendance.StatusPresent, first.AttendanceStatus)
		assert.Equal(t, "07:05", first.CheckInTime)

		// marking again updates the same record
		again := mark(t, token, map[string]string{"memberId": ann.ID, "date": "2024-03-01", "checkInTime": "18:40"})
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "18:40", again.CheckInTime)

		mark(t, token, map[string]string{"memberId": ann.ID, "date": "2024-03-02"})
		today := mark(t, token, map[string]string{"memberId": bob.ID})
		assert.NotEmpty(t, today.Date)
		assert.Regexp(t, `^\d{2}:\d{2}$`, today.CheckInTime)
	})

	t.Run("mark errors", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/attendance", token, map[string]string{"memberId": ann.ID, "date": "2024-13-01", "checkInTime": "25:00"})
		res := requireError(t, rec, http.StatusBadRequest)
		assert.Contains(t, res.Fields, "date")
		assert.Contains(t, res.Fields, "checkInTime")

		rec = app.do(t, http.MethodPost, "/attendance", token, map[string]string{"memberId": ann.ID, "attendanceStatus": "Absent"})
		res = requireError(t, rec, http.StatusBadRequest)
		assert.Contains(t, res.Fields, "attendanceStatus")

		rec = app.do(t, http.MethodPost, "/attendance", otherToken, map[string]string{"memberId": ann.ID})
		requireError(t, rec, http.StatusUnauthorized)

		rec = app.do(t, http.MethodPost, "/attendance", token, map[string]string{"memberId": "unknown"})
		requireError(t, rec, http.StatusNotFound)
	})

	t.Run("roster", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/attendance?date=2024-03-01&ordering=name", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var roster []attendance.RosterEntry
		decode(t, rec, &roster)
		require.Len(t, roster, 2)
		assert.Equal(t, "Ann", roster[0].Member.Name)
		require.NotNil(t, roster[0].Attendance)
		assert.Equal(t, "18:40", roster[0].Attendance.CheckInTime)
		assert.Equal(t, "Bob", roster[1].Member.Name)
		assert.Nil(t, roster[1].Attendance)

		rec = app.do(t, http.MethodGet, "/attendance?date=yesterday", token, nil)
		res := requireError(t, rec, http.StatusBadRequest)
		assert.Contains(t, res.Fields, "date")

		rec = app.do(t, http.MethodGet, "/attendance?date=2024-03-01", otherToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &roster)
		assert.Empty(t, roster)
	})

	t.Run("query", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/attendance/all?memberId="+ann.ID+"&from=2024-03-01&to=2024-03-31", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var records []attendance.Attendance
		decode(t, rec, &records)
		require.Len(t, records, 2)
		assert.Equal(t, "2024-03-02", records[0].Date)
		assert.Equal(t, "2024-03-01", records[1].Date)

		rec = app.do(t, http.MethodGet, "/attendance/all?from=2024-03-31&to=2024-03-01", token, nil)
		res := requireError(t, rec, http.StatusBadRequest)
		assert.Contains(t, res.Fields, "to")
	})

	t.Run("summary", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/attendance/summary/"+ann.ID+"?from=2024-03-01&to=2024-03-31", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var sum attendance.Summary
		decode(t, rec, &sum)
		assert.Equal(t, 2, sum.DaysPresent)
		assert.Equal(t, 31, sum.TotalDays)
		assert.Equal(t, []string{"2024-03-01", "2024-03-02"}, sum.Dates)

		rec = app.do(t, http.MethodGet, "/attendance/summary/"+ann.ID, otherToken, nil)
		requireError(t, rec, http.StatusUnauthorized)
	})

	t.Run("unmark", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, "/attendance?memberId="+ann.ID+"&date=2024-03-01", token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.do(t, http.MethodDelete, "/attendance?memberId="+ann.ID+"&date=2024-03-01", token, nil)
		requireError(t, rec, http.StatusNotFound)

		rec = app.do(t, http.MethodDelete, "/attendance?memberId="+ann.ID, token, nil)
		res := requireError(t, rec, http.StatusBadRequest)
		assert.Contains(t, res.Fields, "date")

		rec = app.do(t, http.MethodGet, "/attendance?date=2024-03-01", token, nil)
		var roster []attendance.RosterEntry
		decode(t, rec, &roster)
		for _, entry := range roster {
			assert.Nil(t, entry.Attendance)
		}
	})

	t.Run("member deletion keeps history", func(t *testing.T) {
		rec := app.do(t, http.MethodDelete, "/user/members/"+ann.ID, token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = app.do(t, http.MethodGet, "/attendance/all?memberId="+ann.ID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var records []attendance.Attendance
		decode(t, rec, &records)
		assert.Len(t, records, 1)
	})
}
