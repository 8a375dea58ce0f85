package member

import (
	"strings"
	"time"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

const (
	BatchMorning = "morning"
	BatchEvening = "evening"

	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanVIP     = "vip"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusTrial    = "trial"

	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Member is a gym customer owned by a User.
type Member struct {
	ID                   string     `json:"_id" bson:"_id"`
	Name                 string     `json:"name" bson:"name"`
	Email                string     `json:"email" bson:"email"`
	Phone                string     `json:"phone" bson:"phone"`
	Address              string     `json:"address" bson:"address"`
	Age                  int        `json:"age" bson:"age"`
	Weight               float64    `json:"weight" bson:"weight"` // kg
	Height               float64    `json:"height" bson:"height"` // cm
	Gender               string     `json:"gender" bson:"gender"`
	Batch                string     `json:"batch" bson:"batch"`
	MembershipPlan       string     `json:"membershipPlan" bson:"membershipPlan"`
	Status               string     `json:"status" bson:"status"`
	JoiningDate          *time.Time `json:"joiningDate" bson:"joiningDate"`
	MonthsOfSubscription *int       `json:"monthsOfSubscription" bson:"monthsOfSubscription"`
	User                 string     `json:"user" bson:"user"`
	CreatedAt            time.Time  `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt            time.Time  `json:"updatedAt" bson:"updatedAt"` // UTC
}

// View is the representation of a Member returned to clients.
// Status shadows the stored one with the effective status.
type View struct {
	Member
	Status       string       `json:"status"`
	StoredStatus string       `json:"storedStatus"`
	Subscription Subscription `json:"subscription"`
}

// NewMember contains information needed to create a new Member.
type NewMember struct {
	Name                 string  `json:"name" validate:"required,notblank,max=100"`
	Email                string  `json:"email" validate:"required,email"`
	Phone                string  `json:"phone" validate:"required,max=20"`
	Address              string  `json:"address" validate:"omitempty,max=250"`
	Age                  int     `json:"age" validate:"omitempty,min=1,max=120"`
	Weight               float64 `json:"weight" validate:"omitempty,gt=0,max=500"`
	Height               float64 `json:"height" validate:"omitempty,gt=0,max=300"`
	Gender               string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Batch                string  `json:"batch" validate:"required,oneof=morning evening"`
	MembershipPlan       string  `json:"membershipPlan" validate:"required,oneof=basic premium vip"`
	Status               string  `json:"status" validate:"omitempty,oneof=active inactive trial"`
	JoiningDate          string  `json:"joiningDate"`
	MonthsOfSubscription *int    `json:"monthsOfSubscription" validate:"omitempty,min=0,max=120"`
}

// Clean normalizes the free text and enum fields. It runs before validation.
func (nm *NewMember) Clean() {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	nm.Address = core.CleanString(nm.Address)
	nm.Gender = core.CleanString(nm.Gender, true)
	nm.Batch = core.CleanString(nm.Batch, true)
	nm.MembershipPlan = core.CleanString(nm.MembershipPlan, true)
	nm.Status = core.CleanString(nm.Status, true)
	nm.JoiningDate = core.CleanString(nm.JoiningDate)
	if nm.Status == "" {
		nm.Status = StatusActive
	}
}

// UpdateMember defines what information may be provided to modify an existing Member.
// Nil fields are left unchanged.
type UpdateMember struct {
	Name                 *string  `json:"name" validate:"omitempty,notblank,max=100"`
	Email                *string  `json:"email" validate:"omitempty,email"`
	Phone                *string  `json:"phone" validate:"omitempty,max=20"`
	Address              *string  `json:"address" validate:"omitempty,max=250"`
	Age                  *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Weight               *float64 `json:"weight" validate:"omitempty,gt=0,max=500"`
	Height               *float64 `json:"height" validate:"omitempty,gt=0,max=300"`
	Gender               *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Batch                *string  `json:"batch" validate:"omitempty,oneof=morning evening"`
	MembershipPlan       *string  `json:"membershipPlan" validate:"omitempty,oneof=basic premium vip"`
	Status               *string  `json:"status" validate:"omitempty,oneof=active inactive trial"`
	JoiningDate          *string  `json:"joiningDate"`
	MonthsOfSubscription *int     `json:"monthsOfSubscription" validate:"omitempty,min=0,max=120"`
}

func (um *UpdateMember) Clean() {
	cleanPtr(um.Name, false)
	cleanPtr(um.Email, true)
	cleanPtr(um.Phone, false)
	cleanPtr(um.Address, false)
	cleanPtr(um.Gender, true)
	cleanPtr(um.Batch, true)
	cleanPtr(um.MembershipPlan, true)
	cleanPtr(um.Status, true)
	cleanPtr(um.JoiningDate, false)
}

func cleanPtr(s *string, lower bool) {
	if s != nil {
		*s = core.CleanString(*s, lower)
	}
}

// apply merges um into m. JoiningDate must have been validated.
func (um UpdateMember) apply(m *Member) {
	if um.Name != nil {
		m.Name = *um.Name
	}
	if um.Email != nil {
		m.Email = *um.Email
	}
	if um.Phone != nil {
		m.Phone = *um.Phone
	}
	if um.Address != nil {
		m.Address = *um.Address
	}
	if um.Age != nil {
		m.Age = *um.Age
	}
	if um.Weight != nil {
		m.Weight = *um.Weight
	}
	if um.Height != nil {
		m.Height = *um.Height
	}
	if um.Gender != nil {
		m.Gender = *um.Gender
	}
	if um.Batch != nil {
		m.Batch = *um.Batch
	}
	if um.MembershipPlan != nil {
		m.MembershipPlan = *um.MembershipPlan
	}
	if um.Status != nil {
		m.Status = *um.Status
	}
	if um.JoiningDate != nil {
		if jd, err := core.ParseDate(*um.JoiningDate); err == nil {
			jd = core.StartOfDay(jd)
			m.JoiningDate = &jd
		}
	}
	if um.MonthsOfSubscription != nil {
		months := *um.MonthsOfSubscription
		m.MonthsOfSubscription = &months
	}
}

// QueryFilter narrows a member listing. Empty fields match everything.
type QueryFilter struct {
	Search         string `query:"search"`
	Batch          string `query:"batch"`
	MembershipPlan string `query:"membershipPlan"`
	Status         string `query:"status"`       // effective status
	Subscription   string `query:"subscription"` // subscription State
	Ordering       string `query:"ordering"`
}

func (f QueryFilter) match(v View) bool {
	if f.Batch != "" && !strings.EqualFold(f.Batch, v.Batch) {
		return false
	}
	if f.MembershipPlan != "" && !strings.EqualFold(f.MembershipPlan, v.MembershipPlan) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(f.Status, v.Status) {
		return false
	}
	if f.Subscription != "" && !strings.EqualFold(f.Subscription, string(v.Subscription.State)) {
		return false
	}
	if search := core.CleanString(f.Search, true); search != "" {
		return strings.Contains(strings.ToLower(v.Name), search) ||
			strings.Contains(strings.ToLower(v.Email), search) ||
			strings.Contains(v.Phone, search)
	}
	return true
}

// Stats are the dashboard figures of a User's members.
type Stats struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"byStatus"`
	BySubscription map[State]int  `json:"bySubscription"`
	ByBatch        map[string]int `json:"byBatch"`
	ByPlan         map[string]int `json:"byPlan"`
}
