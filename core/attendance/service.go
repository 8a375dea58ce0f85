package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("attendance")
	ErrAlreadyExist = errors.New("attendance already marked")
)

// summaryWindow is the default span of MemberSummary.
const summaryWindow = 30

type (
	Repository interface {
		// UpsertAttendance stores a, replacing the record of the same member and date
		// while keeping its ID and CreatedAt.
		UpsertAttendance(ctx context.Context, a Attendance) (Attendance, error)
		DeleteAttendance(ctx context.Context, ownerID, memberID, date string) error
		QueryAttendance(ctx context.Context, ownerID string, f QueryFilter) ([]Attendance, error)
	}

	// Members resolves the members attendance is taken for.
	Members interface {
		GetOwned(ctx context.Context, ownerID, id string) (member.Member, error)
		Query(ctx context.Context, ownerID string, f member.QueryFilter) ([]member.View, error)
	}

	Service struct {
		repo    Repository
		members Members
		now     core.Clock
	}
)

func NewService(repo Repository, members Members) *Service {
	return &Service{repo: repo, members: members}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, members Members, now core.Clock) *Service {
	return &Service{repo: repo, members: members, now: now}
}

func (svc *Service) today() string {
	return core.FormatDate(svc.now.Now().UTC())
}

// Mark records ma's member as present. Marking the same member and date again
// updates the existing record in place. ma must have been cleaned and validated.
func (svc *Service) Mark(ctx context.Context, ownerID string, ma MarkAttendance) (Attendance, error) {
	if _, err := svc.members.GetOwned(ctx, ownerID, ma.MemberID); err != nil {
		return Attendance{}, err
	}

	now := svc.now.Now().UTC()
	if ma.Date == "" {
		ma.Date = core.FormatDate(now)
	}
	if ma.CheckInTime == "" {
		ma.CheckInTime = now.Format("15:04")
	}

	a := Attendance{
		MemberID:         ma.MemberID,
		User:             ownerID,
		Date:             ma.Date,
		AttendanceStatus: ma.AttendanceStatus,
		CheckInTime:      ma.CheckInTime,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	a, err := svc.repo.UpsertAttendance(ctx, a)
	return a, errors.Wrap(err, "marking attendance")
}

// Unmark removes the record of memberID on date, which makes the member absent.
func (svc *Service) Unmark(ctx context.Context, ownerID, memberID, date string) error {
	if _, err := time.Parse(core.DateLayout, date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a date formatted as YYYY-MM-DD"})
	}
	if memberID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "memberId", Error: "this field is required"})
	}
	return svc.repo.DeleteAttendance(ctx, ownerID, memberID, date)
}

// Roster lists every member of ownerID with its record on date (today when empty).
func (svc *Service) Roster(ctx context.Context, ownerID, date string, mf member.QueryFilter) ([]RosterEntry, error) {
	if date == "" {
		date = svc.today()
	}
	if err := (QueryFilter{Date: date}).validate(); err != nil {
		return nil, err
	}

	members, err := svc.members.Query(ctx, ownerID, mf)
	if err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAttendance(ctx, ownerID, QueryFilter{Date: date})
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	byMember := make(map[string]Attendance, len(records))
	for _, a := range records {
		byMember[a.MemberID] = a
	}

	roster := make([]RosterEntry, len(members))
	for i, m := range members {
		roster[i] = RosterEntry{Member: m}
		if a, ok := byMember[m.ID]; ok {
			roster[i].Attendance = &a
		}
	}
	return roster, nil
}

// Query lists the owner's records matching f, newest first.
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]Attendance, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAttendance(ctx, ownerID, f)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CheckInTime > records[j].CheckInTime
	})
	return records, nil
}

// MemberSummary counts the days memberID was present between from and to.
// The window defaults to the last 30 days ending today.
func (svc *Service) MemberSummary(ctx context.Context, ownerID, memberID, from, to string) (Summary, error) {
	if _, err := svc.members.GetOwned(ctx, ownerID, memberID); err != nil {
		return Summary{}, err
	}
	if to == "" {
		to = svc.today()
	}
	if from == "" {
		if end, err := time.Parse(core.DateLayout, to); err == nil {
			from = core.FormatDate(end.AddDate(0, 0, -(summaryWindow - 1)))
		}
	}

	f := QueryFilter{MemberID: memberID, From: from, To: to}
	if err := f.validate(); err != nil {
		return Summary{}, err
	}
	records, err := svc.repo.QueryAttendance(ctx, ownerID, f)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying attendance")
	}

	dates := make([]string, 0, len(records))
	for _, a := range records {
		dates = append(dates, a.Date)
	}
	sort.Strings(dates)

	start, _ := time.Parse(core.DateLayout, from)
	end, _ := time.Parse(core.DateLayout, to)
	return Summary{
		MemberID:    memberID,
		From:        from,
		To:          to,
		DaysPresent: len(dates),
		TotalDays:   int(end.Sub(start).Hours()/24) + 1,
		Dates:       dates,
	}, nil
}
