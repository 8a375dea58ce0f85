package member_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database/docrepos"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
)

var now = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

type fakeOwners struct {
	mu      sync.Mutex
	members map[string][]string
}

func (o *fakeOwners) AddMember(_ context.Context, userID, memberID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.members[userID] = append(o.members[userID], memberID)
	return nil
}

func (o *fakeOwners) RemoveMember(_ context.Context, userID, memberID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := o.members[userID][:0]
	for _, id := range o.members[userID] {
		if id != memberID {
			ids = append(ids, id)
		}
	}
	o.members[userID] = ids
	return nil
}

func months(n int) *int { return &n }

func newTestService() (*member.Service, *fakeOwners) {
	owners := &fakeOwners{members: make(map[string][]string)}
	repo := docrepos.NewMemberRepository(memstore.New())
	svc := member.NewServiceMock(repo, owners, core.NewTestConfig(), func() time.Time { return now })
	return svc, owners
}

// seed creates four members for u1 (expired, expiring, active, trial) and one for u2.
func seed(t *testing.T, svc *member.Service) []member.View {
	t.Helper()
	ctx := context.Background()
	inputs := []struct {
		owner string
		nm    member.NewMember
	}{
		{"u1", member.NewMember{Name: "Ann", Email: "ann@gym.test", Phone: "100", Batch: member.BatchMorning, MembershipPlan: member.PlanBasic,
			Status: member.StatusActive, JoiningDate: "2024-01-01", MonthsOfSubscription: months(1)}},
		{"u1", member.NewMember{Name: "Bob", Email: "bob@gym.test", Phone: "200", Batch: member.BatchMorning, MembershipPlan: member.PlanPremium,
			Status: member.StatusActive, JoiningDate: "2024-02-05", MonthsOfSubscription: months(1)}},
		{"u1", member.NewMember{Name: "Cid", Email: "cid@gym.test", Phone: "300", Batch: member.BatchEvening, MembershipPlan: member.PlanVIP,
			Status: member.StatusActive, JoiningDate: "2024-02-20", MonthsOfSubscription: months(3)}},
		{"u1", member.NewMember{Name: "Dee", Email: "dee@gym.test", Phone: "400", Batch: member.BatchEvening, MembershipPlan: member.PlanBasic,
			Status: member.StatusTrial}},
		{"u2", member.NewMember{Name: "Eve", Email: "eve@gym.test", Phone: "500", Batch: member.BatchMorning, MembershipPlan: member.PlanBasic,
			Status: member.StatusActive, MonthsOfSubscription: months(6)}},
	}
	views := make([]member.View, 0, len(inputs))
	for _, in := range inputs {
		v, err := svc.Create(ctx, in.owner, in.nm)
		require.NoError(t, err)
		views = append(views, v)
	}
	return views
}

func names(views []member.View) []string {
	res := make([]string, len(views))
	for i, v := range views {
		res[i] = v.Name
	}
	return res
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Fields)
	assert.Equal(t, field, verr.Fields[0].Field)
}

func TestService_Create(t *testing.T) {
	svc, owners := newTestService()
	views := seed(t, svc)

	ann := views[0]
	assert.Equal(t, member.StatusInactive, ann.Status)
	assert.Equal(t, member.StatusActive, ann.StoredStatus)
	assert.Equal(t, member.StateExpired, ann.Subscription.State)
	require.NotNil(t, ann.Subscription.RemainingDays)
	assert.Equal(t, -29, *ann.Subscription.RemainingDays)

	bob := views[1]
	assert.Equal(t, member.StateExpiringSoon, bob.Subscription.State)
	assert.Equal(t, 4, *bob.Subscription.RemainingDays)

	eve := views[4]
	require.NotNil(t, eve.JoiningDate)
	assert.True(t, now.Equal(*eve.JoiningDate), "joiningDate defaults to today")

	assert.Len(t, owners.members["u1"], 4)
	assert.Equal(t, []string{eve.ID}, owners.members["u2"])

	_, err := svc.Create(context.Background(), "u1", member.NewMember{Name: "Fay", Status: member.StatusActive})
	requireFieldError(t, err, "monthsOfSubscription")
}

func TestService_GetOwned(t *testing.T) {
	svc, _ := newTestService()
	views := seed(t, svc)
	ctx := context.Background()

	m, err := svc.GetOwned(ctx, "u1", views[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", m.Name)

	_, err = svc.GetOwned(ctx, "u2", views[0].ID)
	assert.Equal(t, core.ErrNotOwner, err)

	_, err = svc.GetOwned(ctx, "u1", "missing")
	assert.True(t, core.IsNotFound(err))
}

func TestService_Query(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter member.QueryFilter
		want   []string
	}{
		{"owner scoped", member.QueryFilter{Ordering: "name"}, []string{"Ann", "Bob", "Cid", "Dee"}},
		{"descending name", member.QueryFilter{Ordering: "-name"}, []string{"Dee", "Cid", "Bob", "Ann"}},
		{"remaining days", member.QueryFilter{Ordering: "-remainingDays"}, []string{"Cid", "Bob", "Ann", "Dee"}},
		{"effective status", member.QueryFilter{Status: "inactive"}, []string{"Ann"}},
		{"active status", member.QueryFilter{Status: "active", Ordering: "name"}, []string{"Bob", "Cid"}},
		{"subscription", member.QueryFilter{Subscription: "expiring"}, []string{"Bob"}},
		{"batch", member.QueryFilter{Batch: "evening", Ordering: "name"}, []string{"Cid", "Dee"}},
		{"plan", member.QueryFilter{MembershipPlan: "vip"}, []string{"Cid"}},
		{"search", member.QueryFilter{Search: " BO "}, []string{"Bob"}},
		{"search phone", member.QueryFilter{Search: "400"}, []string{"Dee"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, err := svc.Query(ctx, "u1", tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(views))
		})
	}

	none, err := svc.Query(ctx, "u3", member.QueryFilter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.Query(ctx, "u1", member.QueryFilter{Ordering: "password"})
	requireFieldError(t, err, "ordering")
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService()
	seed(t, svc)

	stats, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[string]int{"active": 2, "inactive": 1, "trial": 1}, stats.ByStatus)
	assert.Equal(t, map[member.State]int{
		member.StateActive:        1,
		member.StateExpiringSoon:  1,
		member.StateExpired:       1,
		member.StateTrial:         1,
		member.StateInactive:      0,
		member.StateIndeterminate: 0,
	}, stats.BySubscription)
	assert.Equal(t, map[string]int{"morning": 2, "evening": 2}, stats.ByBatch)
	assert.Equal(t, map[string]int{"basic": 2, "premium": 1, "vip": 1}, stats.ByPlan)
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService()
	views := seed(t, svc)
	ctx := context.Background()

	dee, err := svc.GetOwned(ctx, "u1", views[3].ID)
	require.NoError(t, err)

	active := member.StatusActive
	_, err = svc.Update(ctx, dee, member.UpdateMember{Status: &active})
	requireFieldError(t, err, "monthsOfSubscription")

	v, err := svc.Update(ctx, dee, member.UpdateMember{Status: &active, MonthsOfSubscription: months(2)})
	require.NoError(t, err)
	assert.Equal(t, member.StateActive, v.Subscription.State)
	assert.Equal(t, 61, *v.Subscription.RemainingDays)

	// renewing an expired member
	ann, err := svc.GetOwned(ctx, "u1", views[0].ID)
	require.NoError(t, err)
	joined := "2024-02-08"
	v, err = svc.Update(ctx, ann, member.UpdateMember{JoiningDate: &joined})
	require.NoError(t, err)
	assert.Equal(t, member.StatusActive, v.Status)
	assert.Equal(t, member.StateExpiringSoon, v.Subscription.State)

	stored, err := svc.GetOwned(ctx, "u1", views[0].ID)
	require.NoError(t, err)
	assert.Equal(t, member.StatusActive, stored.Status, "derived status is never written back")
}

func TestService_Delete(t *testing.T) {
	svc, owners := newTestService()
	views := seed(t, svc)
	ctx := context.Background()

	bob, err := svc.GetOwned(ctx, "u1", views[1].ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, bob))

	_, err = svc.GetOwned(ctx, "u1", bob.ID)
	assert.True(t, core.IsNotFound(err))
	assert.NotContains(t, owners.members["u1"], bob.ID)
	assert.Len(t, owners.members["u1"], 3)
}

func TestValidators(t *testing.T) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	member.InitValidators(validate, translator)

	nm := member.NewMember{Name: "Ann", Email: "ann@gym.test", Phone: "1", Batch: "morning", MembershipPlan: "basic", Status: "active"}
	err := validate.Struct(nm)
	require.Error(t, err)
	verrs := err.(validator.ValidationErrors)
	require.Len(t, verrs, 1)
	assert.Equal(t, "monthsOfSubscription", verrs[0].Field())
	assert.Equal(t, "this field is required unless status is trial", verrs[0].Translate(translator))

	nm.Status = "trial"
	assert.NoError(t, validate.Struct(nm))

	nm.JoiningDate = "01/02/2024"
	err = validate.Struct(nm)
	require.Error(t, err)
	assert.Equal(t, "joiningDate", err.(validator.ValidationErrors)[0].Field())

	nm.JoiningDate = "2024-02-01T10:00:00Z"
	assert.NoError(t, validate.Struct(nm))
}
