package docrepos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memstore.New())

	usr, err := repo.CreateUser(ctx, user.User{Name: "Owner", Email: "owner@gym.test", PasswordHash: []byte("hash"), IsActive: true})
	require.NoError(t, err)
	require.NotEmpty(t, usr.ID)

	got, err := repo.GetUserByEmail(ctx, "owner@gym.test")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, got.ID)
	assert.Equal(t, []byte("hash"), got.PasswordHash)

	assert.Equal(t, user.ErrEmailExists, repo.CheckEmailUniqueness(ctx, "owner@gym.test"))
	assert.NoError(t, repo.CheckEmailUniqueness(ctx, "owner@gym.test", usr))
	assert.NoError(t, repo.CheckEmailUniqueness(ctx, "other@gym.test"))

	_, err = repo.GetUserByID(ctx, "missing")
	assert.Equal(t, user.ErrNotFound, err)
	assert.True(t, core.IsNotFound(err))

	usr.Members = []string{"m1"}
	_, err = repo.UpdateUser(ctx, usr)
	require.NoError(t, err)
	got, err = repo.GetUserByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, got.Members)

	_, err = repo.UpdateUser(ctx, user.User{ID: "missing"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestMemberRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemberRepository(memstore.New())

	joined := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	months := 1
	m, err := repo.CreateMember(ctx, member.Member{Name: "Ann", User: "u1", Status: member.StatusActive, JoiningDate: &joined, MonthsOfSubscription: &months})
	require.NoError(t, err)
	_, err = repo.CreateMember(ctx, member.Member{Name: "Bob", User: "u2", Status: member.StatusTrial})
	require.NoError(t, err)

	owned, err := repo.QueryMembersByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Ann", owned[0].Name)
	require.NotNil(t, owned[0].JoiningDate)
	assert.True(t, joined.Equal(*owned[0].JoiningDate))
	require.NotNil(t, owned[0].MonthsOfSubscription)
	assert.Equal(t, 1, *owned[0].MonthsOfSubscription)

	none, err := repo.QueryMembersByOwner(ctx, "u3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, repo.DeleteMemberByID(ctx, m.ID))
	assert.Equal(t, member.ErrNotFound, repo.DeleteMemberByID(ctx, m.ID))
	_, err = repo.GetMemberByID(ctx, m.ID)
	assert.Equal(t, member.ErrNotFound, err)
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(memstore.New())
	created := time.Date(2024, time.February, 10, 7, 0, 0, 0, time.UTC)

	first, err := repo.UpsertAttendance(ctx, attendance.Attendance{
		MemberID: "m1", User: "u1", Date: "2024-02-10", AttendanceStatus: attendance.StatusPresent,
		CheckInTime: "07:00", CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)

	second, err := repo.UpsertAttendance(ctx, attendance.Attendance{
		MemberID: "m1", User: "u1", Date: "2024-02-10", AttendanceStatus: attendance.StatusPresent,
		CheckInTime: "18:30", CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, created.Equal(second.CreatedAt))

	_, err = repo.UpsertAttendance(ctx, attendance.Attendance{MemberID: "m1", User: "u1", Date: "2024-02-11", AttendanceStatus: attendance.StatusPresent})
	require.NoError(t, err)

	records, err := repo.QueryAttendance(ctx, "u1", attendance.QueryFilter{Date: "2024-02-10"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "18:30", records[0].CheckInTime)

	records, err = repo.QueryAttendance(ctx, "u1", attendance.QueryFilter{MemberID: "m1", From: "2024-02-01", To: "2024-02-10"})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = repo.QueryAttendance(ctx, "u2", attendance.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, repo.DeleteAttendance(ctx, "u1", "m1", "2024-02-10"))
	assert.Equal(t, attendance.ErrNotFound, repo.DeleteAttendance(ctx, "u1", "m1", "2024-02-10"))
}

// racingStore plays another process that keeps inserting the record first.
type racingStore struct {
	docstore.Store
	inserts int
	hidden  bool // Get never sees the stored record
}

func (s *racingStore) Insert(ctx context.Context, coll, id string, doc interface{}) error {
	s.inserts++
	if s.inserts > 1 {
		return docstore.ErrDuplicate
	}
	if err := s.Store.Insert(ctx, coll, id, doc); err != nil {
		return err
	}
	return docstore.ErrDuplicate
}

func (s *racingStore) Get(ctx context.Context, coll string, f docstore.Filter, out interface{}) error {
	if s.hidden {
		return docstore.ErrNoDocument
	}
	return s.Store.Get(ctx, coll, f, out)
}

func TestAttendanceRepository_UpsertRace(t *testing.T) {
	ctx := context.Background()
	mark := attendance.Attendance{MemberID: "m1", User: "u1", Date: "2024-02-10", AttendanceStatus: attendance.StatusPresent, CheckInTime: "07:00"}

	t.Run("lost insert becomes a replace", func(t *testing.T) {
		store := &racingStore{Store: memstore.New(), }
		repo := NewAttendanceRepository(store)

		a, err := repo.UpsertAttendance(ctx, mark)
		require.NoError(t, err)
		assert.Equal(t, 1, store.inserts)

		records, err := repo.QueryAttendance(ctx, "u1", attendance.QueryFilter{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, a.ID, records[0].ID)
	})

	t.Run("gives up after repeated races", func(t *testing.T) {
		store := &racingStore{Store: memstore.New(), hidden: true}
		repo := NewAttendanceRepository(store)

		_, err := repo.UpsertAttendance(ctx, mark)
		assert.Equal(t, attendance.ErrAlreadyExist, err)
		assert.Equal(t, upsertAttempts, store.inserts)
	})
}
