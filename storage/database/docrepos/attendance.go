package docrepos

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

// upsertAttempts bounds the lookups retried after losing an insert race.
const upsertAttempts = 3

type AttendanceRepository struct {
	coll  collection[attendance.Attendance]
	mutex sync.Mutex // serializes upserts
}

var _ attendance.Repository = (*AttendanceRepository)(nil)

func NewAttendanceRepository(store docstore.Store) *AttendanceRepository {
	return &AttendanceRepository{
		coll: collection[attendance.Attendance]{store: store, name: docstore.Attendance, notFound: attendance.ErrNotFound},
	}
}

func (repo *AttendanceRepository) UpsertAttendance(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	key := docstore.Filter{"memberId": a.MemberID, "date": a.Date}
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		existing, err := repo.coll.get(ctx, key)
		switch {
		case err == nil:
			a.ID = existing.ID
			a.CreatedAt = existing.CreatedAt
			if err = repo.coll.replace(ctx, a.ID, a); err != nil {
				return attendance.Attendance{}, err
			}
			return a, nil

		case core.IsNotFound(err):
			a.ID = newID()
			err = repo.coll.insert(ctx, a.ID, a)
			if errors.Cause(err) == docstore.ErrDuplicate {
				continue // inserted by another process since the lookup
			}
			if err != nil {
				return attendance.Attendance{}, err
			}
			return a, nil

		default:
			return attendance.Attendance{}, err
		}
	}
	return attendance.Attendance{}, attendance.ErrAlreadyExist
}

func (repo *AttendanceRepository) DeleteAttendance(ctx context.Context, ownerID, memberID, date string) error {
	return repo.coll.deleteWhere(ctx, docstore.Filter{"user": ownerID, "memberId": memberID, "date": date})
}

func (repo *AttendanceRepository) QueryAttendance(ctx context.Context, ownerID string, f attendance.QueryFilter) ([]attendance.Attendance, error) {
	key := docstore.Filter{"user": ownerID}
	if f.MemberID != "" {
		key["memberId"] = f.MemberID
	}
	if f.Date != "" {
		key["date"] = f.Date
	}
	records, err := repo.coll.find(ctx, key)
	if err != nil {
		return nil, err
	}

	res := records[:0]
	for _, a := range records {
		if f.Match(a) {
			res = append(res, a)
		}
	}
	return res, nil
}
