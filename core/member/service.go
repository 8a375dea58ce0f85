package member

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("member")

	defaultOrdering = []core.Ordering{{Field: "createdAt", Ascending: false}}
)

type (
	Repository interface {
		CreateMember(ctx context.Context, m Member) (Member, error)
		GetMemberByID(ctx context.Context, id string) (Member, error)
		QueryMembersByOwner(ctx context.Context, ownerID string) ([]Member, error)
		UpdateMember(ctx context.Context, m Member) (Member, error)
		DeleteMemberByID(ctx context.Context, id string) error
	}

	// Owners keeps the owning User's list of member ids in step.
	Owners interface {
		AddMember(ctx context.Context, userID, memberID string) error
		RemoveMember(ctx context.Context, userID, memberID string) error
	}

	Service struct {
		repo             Repository
		owners           Owners
		now              core.Clock
		expiringSoonDays int
	}
)

func NewService(repo Repository, owners Owners, conf *core.Config) *Service {
	days := conf.ExpiringSoonDays
	if days <= 0 {
		days = DefaultExpiringSoonDays
	}
	return &Service{
		repo:             repo,
		owners:           owners,
		expiringSoonDays: days,
	}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, owners Owners, conf *core.Config, now core.Clock) *Service {
	svc := NewService(repo, owners, conf)
	svc.now = now
	return svc
}

// View annotates m with its subscription as of now.
func (svc *Service) View(m Member) View {
	sub := Derive(m, svc.now.Now(), svc.expiringSoonDays)
	return View{
		Member:       m,
		Status:       EffectiveStatus(m, sub),
		StoredStatus: m.Status,
		Subscription: sub,
	}
}

// Create adds a Member owned by ownerID. nm must have been cleaned and validated.
func (svc *Service) Create(ctx context.Context, ownerID string, nm NewMember) (View, error) {
	now := svc.now.Now().UTC()
	joiningDate := core.StartOfDay(now)
	if nm.JoiningDate != "" {
		jd, err := core.ParseDate(nm.JoiningDate)
		if err != nil {
			return View{}, core.NewValidationError(nil, core.FieldError{Field: "joiningDate", Error: joiningDateText})
		}
		joiningDate = core.StartOfDay(jd)
	}

	m := Member{
		Name:                 nm.Name,
		Email:                nm.Email,
		Phone:                nm.Phone,
		Address:              nm.Address,
		Age:                  nm.Age,
		Weight:               nm.Weight,
		Height:               nm.Height,
		Gender:               nm.Gender,
		Batch:                nm.Batch,
		MembershipPlan:       nm.MembershipPlan,
		Status:               nm.Status,
		JoiningDate:          &joiningDate,
		MonthsOfSubscription: nm.MonthsOfSubscription,
		User:                 ownerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := checkSubscription(m); err != nil {
		return View{}, err
	}

	m, err := svc.repo.CreateMember(ctx, m)
	if err != nil {
		return View{}, errors.Wrap(err, "creating member")
	}
	if err = svc.owners.AddMember(ctx, ownerID, m.ID); err != nil {
		return View{}, errors.Wrap(err, "registering member with owner")
	}
	return svc.View(m), nil
}

// GetOwned returns the Member with id if it belongs to ownerID.
func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Member, error) {
	m, err := svc.repo.GetMemberByID(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if m.User != ownerID {
		return Member{}, core.ErrNotOwner
	}
	return m, nil
}

// Query lists the owner's Members matching f, sorted by f.Ordering (newest first by default).
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]View, error) {
	ords := core.ParseOrderings(f.Ordering)
	if len(ords) == 0 {
		ords = defaultOrdering
	}
	for _, ord := range ords {
		if _, ok := orderingFields[ord.Field]; !ok {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "ordering",
				Error: fmt.Sprintf("cannot order by %q", ord.Field),
			})
		}
	}

	members, err := svc.repo.QueryMembersByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying members")
	}
	views := make([]View, 0, len(members))
	for _, m := range members {
		if v := svc.View(m); f.match(v) {
			views = append(views, v)
		}
	}
	sortViews(views, ords)
	return views, nil
}

// Update applies um to m. um must have been cleaned and validated.
func (svc *Service) Update(ctx context.Context, m Member, um UpdateMember) (View, error) {
	um.apply(&m)
	if err := checkSubscription(m); err != nil {
		return View{}, err
	}
	m.UpdatedAt = svc.now.Now().UTC()
	m, err := svc.repo.UpdateMember(ctx, m)
	if err != nil {
		return View{}, errors.Wrap(err, "updating member")
	}
	return svc.View(m), nil
}

// Delete removes m. Attendance records referencing it are left in place.
func (svc *Service) Delete(ctx context.Context, m Member) error {
	if err := svc.repo.DeleteMemberByID(ctx, m.ID); err != nil {
		return errors.Wrap(err, "deleting member")
	}
	return errors.Wrap(svc.owners.RemoveMember(ctx, m.User, m.ID), "unregistering member from owner")
}

// Stats counts the owner's Members per effective status, subscription state, batch and plan.
func (svc *Service) Stats(ctx context.Context, ownerID string) (Stats, error) {
	members, err := svc.repo.QueryMembersByOwner(ctx, ownerID)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying members")
	}

	stats := Stats{
		ByStatus:       map[string]int{StatusActive: 0, StatusInactive: 0, StatusTrial: 0},
		BySubscription: make(map[State]int, len(states)),
		ByBatch:        map[string]int{BatchMorning: 0, BatchEvening: 0},
		ByPlan:         map[string]int{PlanBasic: 0, PlanPremium: 0, PlanVIP: 0},
	}
	for _, s := range states {
		stats.BySubscription[s] = 0
	}
	for _, m := range members {
		v := svc.View(m)
		stats.Total++
		stats.ByStatus[v.Status]++
		stats.BySubscription[v.Subscription.State]++
		stats.ByBatch[v.Batch]++
		stats.ByPlan[v.MembershipPlan]++
	}
	return stats, nil
}

// ordering

var orderingFields = map[string]func(a, b View) int{
	"name": func(a, b View) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"email": func(a, b View) int {
		return strings.Compare(a.Email, b.Email)
	},
	"joiningDate": func(a, b View) int {
		return compareTimes(a.JoiningDate, b.JoiningDate)
	},
	"createdAt": func(a, b View) int {
		return compareTimes(&a.CreatedAt, &b.CreatedAt)
	},
	"remainingDays": func(a, b View) int {
		return compareInts(a.Subscription.RemainingDays, b.Subscription.RemainingDays)
	},
}

func sortViews(views []View, ords []core.Ordering) {
	sort.SliceStable(views, func(i, j int) bool {
		for _, ord := range ords {
			c := orderingFields[ord.Field](views[i], views[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

// compareTimes orders nil before any time.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	}
	return 0
}

// compareInts orders nil before any value.
func compareInts(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
