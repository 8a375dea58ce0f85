// Package certification keeps the trainer credentials a gym displays.
package certification

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("certification")
)

type (
	Certification struct {
		ID                  string     `json:"_id" bson:"_id"`
		Name                string     `json:"name" bson:"name"`
		IssuingOrganization string     `json:"issuingOrganization" bson:"issuingOrganization"`
		IssueDate           time.Time  `json:"issueDate" bson:"issueDate"`
		ExpiryDate          *time.Time `json:"expiryDate" bson:"expiryDate"`
		CredentialID        string     `json:"credentialId" bson:"credentialId"`
		User                string     `json:"user" bson:"user"`
		CreatedAt           time.Time  `json:"createdAt" bson:"createdAt"` // UTC
		UpdatedAt           time.Time  `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	// View adds the expiry state computed on read.
	View struct {
		Certification
		Expired bool `json:"expired"`
	}

	// CertificationInput creates a certification or replaces all of its fields (PUT).
	CertificationInput struct {
		Name                string `json:"name" validate:"required,notblank,max=150"`
		IssuingOrganization string `json:"issuingOrganization" validate:"required,notblank,max=150"`
		IssueDate           string `json:"issueDate" validate:"required,date"`
		ExpiryDate          string `json:"expiryDate" validate:"omitempty,date"`
		CredentialID        string `json:"credentialId" validate:"omitempty,max=100"`
	}

	Repository interface {
		CreateCertification(ctx context.Context, c Certification) (Certification, error)
		GetCertificationByID(ctx context.Context, id string) (Certification, error)
		QueryCertificationsByOwner(ctx context.Context, ownerID string) ([]Certification, error)
		UpdateCertification(ctx context.Context, c Certification) (Certification, error)
		DeleteCertificationByID(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
		now  core.Clock
	}
)

func (in *CertificationInput) Clean() {
	in.Name = core.CleanString(in.Name)
	in.IssuingOrganization = core.CleanString(in.IssuingOrganization)
	in.IssueDate = core.CleanString(in.IssueDate)
	in.ExpiryDate = core.CleanString(in.ExpiryDate)
	in.CredentialID = core.CleanString(in.CredentialID)
}

// apply copies in onto c. Dates must have been validated.
func (in CertificationInput) apply(c *Certification) error {
	issued, err := time.Parse(core.DateLayout, in.IssueDate)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "issueDate", Error: "must be a date formatted as YYYY-MM-DD"})
	}
	var expires *time.Time
	if in.ExpiryDate != "" {
		exp, err := time.Parse(core.DateLayout, in.ExpiryDate)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "expiryDate", Error: "must be a date formatted as YYYY-MM-DD"})
		}
		if exp.Before(issued) {
			return core.NewValidationError(nil, core.FieldError{Field: "expiryDate", Error: "must not precede issueDate"})
		}
		expires = &exp
	}

	c.Name = in.Name
	c.IssuingOrganization = in.IssuingOrganization
	c.IssueDate = issued
	c.ExpiryDate = expires
	c.CredentialID = in.CredentialID
	return nil
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, now core.Clock) *Service {
	return &Service{repo: repo, now: now}
}

// View reports c as expired once its expiry date has passed.
func (svc *Service) View(c Certification) View {
	today := core.StartOfDay(svc.now.Now().UTC())
	return View{
		Certification: c,
		Expired:       c.ExpiryDate != nil && c.ExpiryDate.Before(today),
	}
}

// Create adds a certification for ownerID. in must have been cleaned and validated.
func (svc *Service) Create(ctx context.Context, ownerID string, in CertificationInput) (View, error) {
	now := svc.now.Now().UTC()
	c := Certification{User: ownerID, CreatedAt: now, UpdatedAt: now}
	if err := in.apply(&c); err != nil {
		return View{}, err
	}
	c, err := svc.repo.CreateCertification(ctx, c)
	if err != nil {
		return View{}, errors.Wrap(err, "creating certification")
	}
	return svc.View(c), nil
}

// Query lists the owner's certifications, soonest expiring first; those without expiry come last.
func (svc *Service) Query(ctx context.Context, ownerID string) ([]View, error) {
	certs, err := svc.repo.QueryCertificationsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying certifications")
	}
	sort.SliceStable(certs, func(i, j int) bool {
		a, b := certs[i].ExpiryDate, certs[j].ExpiryDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	views := make([]View, len(certs))
	for i, c := range certs {
		views[i] = svc.View(c)
	}
	return views, nil
}

func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Certification, error) {
	c, err := svc.repo.GetCertificationByID(ctx, id)
	if err != nil {
		return Certification{}, err
	}
	if c.User != ownerID {
		return Certification{}, core.ErrNotOwner
	}
	return c, nil
}

// Replace overwrites c with in. in must have been cleaned and validated.
func (svc *Service) Replace(ctx context.Context, c Certification, in CertificationInput) (View, error) {
	if err := in.apply(&c); err != nil {
		return View{}, err
	}
	c.UpdatedAt = svc.now.Now().UTC()
	c, err := svc.repo.UpdateCertification(ctx, c)
	if err != nil {
		return View{}, errors.Wrap(err, "updating certification")
	}
	return svc.View(c), nil
}

func (svc *Service) Delete(ctx context.Context, c Certification) error {
	return errors.Wrap(svc.repo.DeleteCertificationByID(ctx, c.ID), "deleting certification")
}
