// Package maintenance tracks equipment issues reported by gym owners.
package maintenance

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("maintenance report")
)

type (
	Report struct {
		ID               string     `json:"_id" bson:"_id"`
		EquipmentName    string     `json:"equipmentName" bson:"equipmentName"`
		IssueDescription string     `json:"issueDescription" bson:"issueDescription"`
		Priority         string     `json:"priority" bson:"priority"`
		Status           string     `json:"status" bson:"status"`
		ReportedDate     time.Time  `json:"reportedDate" bson:"reportedDate"`
		ResolvedDate     *time.Time `json:"resolvedDate" bson:"resolvedDate"`
		User             string     `json:"user" bson:"user"`
		CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"` // UTC
		UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	NewReport struct {
		EquipmentName    string `json:"equipmentName" validate:"required,notblank,max=100"`
		IssueDescription string `json:"issueDescription" validate:"required,notblank,max=1000"`
		Priority         string `json:"priority" validate:"omitempty,oneof=low medium high"`
		Status           string `json:"status" validate:"omitempty,oneof=pending in-progress resolved"`
		ReportedDate     string `json:"reportedDate" validate:"omitempty,date"`
	}

	// UpdateReport leaves nil fields unchanged.
	UpdateReport struct {
		EquipmentName    *string `json:"equipmentName" validate:"omitempty,notblank,max=100"`
		IssueDescription *string `json:"issueDescription" validate:"omitempty,notblank,max=1000"`
		Priority         *string `json:"priority" validate:"omitempty,oneof=low medium high"`
		Status           *string `json:"status" validate:"omitempty,oneof=pending in-progress resolved"`
	}

	QueryFilter struct {
		Status   string `query:"status"`
		Priority string `query:"priority"`
	}

	Repository interface {
		CreateReport(ctx context.Context, r Report) (Report, error)
		GetReportByID(ctx context.Context, id string) (Report, error)
		QueryReportsByOwner(ctx context.Context, ownerID string) ([]Report, error)
		UpdateReport(ctx context.Context, r Report) (Report, error)
		DeleteReportByID(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
		now  core.Clock
	}
)

func (nr *NewReport) Clean() {
	nr.EquipmentName = core.CleanString(nr.EquipmentName)
	nr.IssueDescription = core.CleanString(nr.IssueDescription)
	nr.Priority = core.CleanString(nr.Priority, true)
	nr.Status = core.CleanString(nr.Status, true)
	if nr.Priority == "" {
		nr.Priority = PriorityMedium
	}
	if nr.Status == "" {
		nr.Status = StatusPending
	}
}

func (ur *UpdateReport) Clean() {
	for _, s := range []*string{ur.EquipmentName, ur.IssueDescription} {
		if s != nil {
			*s = core.CleanString(*s)
		}
	}
	for _, s := range []*string{ur.Priority, ur.Status} {
		if s != nil {
			*s = core.CleanString(*s, true)
		}
	}
}

func (f QueryFilter) match(r Report) bool {
	return (f.Status == "" || f.Status == r.Status) && (f.Priority == "" || f.Priority == r.Priority)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, now core.Clock) *Service {
	return &Service{repo: repo, now: now}
}

// setStatus stamps ResolvedDate when r becomes resolved and clears it otherwise.
func setStatus(r *Report, status string, now time.Time) {
	if status == StatusResolved && (r.Status != StatusResolved || r.ResolvedDate == nil) {
		r.ResolvedDate = &now
	} else if status != StatusResolved {
		r.ResolvedDate = nil
	}
	r.Status = status
}

// Create files a report for ownerID. nr must have been cleaned and validated.
func (svc *Service) Create(ctx context.Context, ownerID string, nr NewReport) (Report, error) {
	now := svc.now.Now().UTC()
	reported := now
	if nr.ReportedDate != "" {
		if d, err := time.Parse(core.DateLayout, nr.ReportedDate); err == nil {
			reported = d
		}
	}

	r := Report{
		EquipmentName:    nr.EquipmentName,
		IssueDescription: nr.IssueDescription,
		Priority:         nr.Priority,
		ReportedDate:     reported,
		User:             ownerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	setStatus(&r, nr.Status, now)
	r, err := svc.repo.CreateReport(ctx, r)
	return r, errors.Wrap(err, "creating maintenance report")
}

// Query lists the owner's reports matching f, most recently reported first.
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]Report, error) {
	reports, err := svc.repo.QueryReportsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying maintenance reports")
	}
	res := make([]Report, 0, len(reports))
	for _, r := range reports {
		if f.match(r) {
			res = append(res, r)
		}
	}
	sortByReportedDate(res)
	return res, nil
}

func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Report, error) {
	r, err := svc.repo.GetReportByID(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if r.User != ownerID {
		return Report{}, core.ErrNotOwner
	}
	return r, nil
}

// Update applies ur to r. ur must have been cleaned and validated.
func (svc *Service) Update(ctx context.Context, r Report, ur UpdateReport) (Report, error) {
	now := svc.now.Now().UTC()
	if ur.EquipmentName != nil {
		r.EquipmentName = *ur.EquipmentName
	}
	if ur.IssueDescription != nil {
		r.IssueDescription = *ur.IssueDescription
	}
	if ur.Priority != nil {
		r.Priority = *ur.Priority
	}
	if ur.Status != nil {
		setStatus(&r, *ur.Status, now)
	}
	r.UpdatedAt = now
	r, err := svc.repo.UpdateReport(ctx, r)
	return r, errors.Wrap(err, "updating maintenance report")
}

func (svc *Service) Delete(ctx context.Context, r Report) error {
	return errors.Wrap(svc.repo.DeleteReportByID(ctx, r.ID), "deleting maintenance report")
}

func sortByReportedDate(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].ReportedDate.After(reports[j].ReportedDate)
	})
}
