// Package plan manages the membership plans a gym offers.
package plan

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

const (
	TypeBasic   = "basic"
	TypePremium = "premium"
	TypeVIP     = "vip"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("membership plan")
)

type (
	Plan struct {
		ID             string          `json:"_id" bson:"_id"`
		Name           string          `json:"name" bson:"name"`
		PlanType       string          `json:"planType" bson:"planType"`
		Price          decimal.Decimal `json:"price" bson:"price"`
		DurationMonths int             `json:"durationMonths" bson:"durationMonths"`
		Features       []string        `json:"features" bson:"features"`
		Description    string          `json:"description" bson:"description"`
		IsActive       bool            `json:"isActive" bson:"isActive"`
		User           string          `json:"user" bson:"user"`
		CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"` // UTC
		UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	// PlanInput creates a plan or replaces all of its fields (PUT).
	PlanInput struct {
		Name           string          `json:"name" validate:"required,notblank,max=100"`
		PlanType       string          `json:"planType" validate:"required,oneof=basic premium vip"`
		Price          decimal.Decimal `json:"price" validate:"gte=0"`
		DurationMonths int             `json:"durationMonths" validate:"required,min=1,max=120"`
		Features       []string        `json:"features" validate:"max=50,dive,notblank,max=200"`
		Description    string          `json:"description" validate:"omitempty,max=1000"`
		IsActive       *bool           `json:"isActive"`
	}

	QueryFilter struct {
		PlanType string `query:"planType"`
		IsActive string `query:"isActive"` // "true" | "false"
	}

	Repository interface {
		CreatePlan(ctx context.Context, p Plan) (Plan, error)
		GetPlanByID(ctx context.Context, id string) (Plan, error)
		QueryPlansByOwner(ctx context.Context, ownerID string) ([]Plan, error)
		UpdatePlan(ctx context.Context, p Plan) (Plan, error)
		DeletePlanByID(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
		now  core.Clock
	}
)

// InitValidators lets validation tags compare decimal.Decimal values as numbers.
func InitValidators(validate *validator.Validate) {
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

func (in *PlanInput) Clean() {
	in.Name = core.CleanString(in.Name)
	in.PlanType = core.CleanString(in.PlanType, true)
	in.Description = core.CleanString(in.Description)
	features := make([]string, 0, len(in.Features))
	for _, f := range in.Features {
		if f = core.CleanString(f); f != "" {
			features = append(features, f)
		}
	}
	in.Features = features
}

func (in PlanInput) apply(p *Plan) {
	p.Name = in.Name
	p.PlanType = in.PlanType
	p.Price = in.Price.Round(2)
	p.DurationMonths = in.DurationMonths
	p.Features = in.Features
	p.Description = in.Description
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func (f QueryFilter) match(p Plan) bool {
	if f.PlanType != "" && !strings.EqualFold(f.PlanType, p.PlanType) {
		return false
	}
	switch strings.ToLower(f.IsActive) {
	case "true":
		return p.IsActive
	case "false":
		return !p.IsActive
	}
	return true
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, now core.Clock) *Service {
	return &Service{repo: repo, now: now}
}

// Create adds a plan for ownerID; it is active unless stated otherwise.
// in must have been cleaned and validated.
func (svc *Service) Create(ctx context.Context, ownerID string, in PlanInput) (Plan, error) {
	now := svc.now.Now().UTC()
	p := Plan{IsActive: true, User: ownerID, CreatedAt: now, UpdatedAt: now}
	in.apply(&p)
	p, err := svc.repo.CreatePlan(ctx, p)
	return p, errors.Wrap(err, "creating membership plan")
}

// Query lists the owner's plans matching f, cheapest first.
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]Plan, error) {
	plans, err := svc.repo.QueryPlansByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying membership plans")
	}
	res := make([]Plan, 0, len(plans))
	for _, p := range plans {
		if f.match(p) {
			res = append(res, p)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Price.LessThan(res[j].Price) })
	return res, nil
}

func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Plan, error) {
	p, err := svc.repo.GetPlanByID(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if p.User != ownerID {
		return Plan{}, core.ErrNotOwner
	}
	return p, nil
}

// Replace overwrites p's editable fields with in. in must have been cleaned and validated.
func (svc *Service) Replace(ctx context.Context, p Plan, in PlanInput) (Plan, error) {
	in.apply(&p)
	p.UpdatedAt = svc.now.Now().UTC()
	p, err := svc.repo.UpdatePlan(ctx, p)
	return p, errors.Wrap(err, "updating membership plan")
}

func (svc *Service) Delete(ctx context.Context, p Plan) error {
	return errors.Wrap(svc.repo.DeletePlanByID(ctx, p.ID), "deleting membership plan")
}
