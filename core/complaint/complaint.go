// Package complaint handles complaints members submit to their gym, with optional evidence files.
package complaint

import (
	"context"
	"net/mail"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

const (
	CategoryEquipment   = "equipment"
	CategoryStaff       = "staff"
	CategoryCleanliness = "cleanliness"
	CategoryBilling     = "billing"
	CategoryOther       = "other"

	StatusPending   = "pending"
	StatusInReview  = "in-review"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("complaint")
	errUnknownGym = core.FieldError{Field: "gymId", Error: "no gym matches this id"}
)

type (
	Complaint struct {
		ID          string          `json:"_id" bson:"_id"`
		User        string          `json:"user" bson:"user"` // gym owner
		MemberName  string          `json:"memberName" bson:"memberName"`
		MemberEmail string          `json:"memberEmail" bson:"memberEmail"`
		Subject     string          `json:"subject" bson:"subject"`
		Description string          `json:"description" bson:"description"`
		Category    string          `json:"category" bson:"category"`
		Status      string          `json:"status" bson:"status"`
		Response    string          `json:"response" bson:"response"`
		Evidence    []core.Evidence `json:"evidence" bson:"evidence"`
		CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"` // UTC
		UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	// NewComplaint is submitted publicly, as JSON or multipart form.
	NewComplaint struct {
		GymID       string `json:"gymId" form:"gymId" validate:"required"`
		MemberName  string `json:"memberName" form:"memberName" validate:"required,notblank,max=100"`
		MemberEmail string `json:"memberEmail" form:"memberEmail" validate:"omitempty,email"`
		Subject     string `json:"subject" form:"subject" validate:"required,notblank,max=150"`
		Description string `json:"description" form:"description" validate:"required,notblank,max=2000"`
		Category    string `json:"category" form:"category" validate:"omitempty,oneof=equipment staff cleanliness billing other"`
	}

	// UpdateComplaint is the gym owner's handling of a complaint.
	UpdateComplaint struct {
		Status   *string `json:"status" validate:"omitempty,oneof=pending in-review resolved dismissed"`
		Response *string `json:"response" validate:"omitempty,max=2000"`
	}

	QueryFilter struct {
		Status   string `query:"status"`
		Category string `query:"category"`
	}

	Repository interface {
		CreateComplaint(ctx context.Context, c Complaint) (Complaint, error)
		GetComplaintByID(ctx context.Context, id string) (Complaint, error)
		QueryComplaintsByOwner(ctx context.Context, ownerID string) ([]Complaint, error)
		UpdateComplaint(ctx context.Context, c Complaint) (Complaint, error)
		DeleteComplaintByID(ctx context.Context, id string) error
	}

	// Gyms resolves the owner a public submission is addressed to.
	Gyms interface {
		GetByID(ctx context.Context, id string) (user.User, error)
	}

	Service struct {
		repo     Repository
		gyms     Gyms
		uploader core.EvidenceUploader
		mailSvc  core.EmailService
		now      core.Clock
	}
)

func (nc *NewComplaint) Clean() {
	nc.GymID = core.CleanString(nc.GymID)
	nc.MemberName = core.CleanString(nc.MemberName)
	nc.MemberEmail = core.CleanString(nc.MemberEmail, true /* lower */)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Description = core.CleanString(nc.Description)
	nc.Category = core.CleanString(nc.Category, true)
	if nc.Category == "" {
		nc.Category = CategoryOther
	}
}

func (uc *UpdateComplaint) Clean() {
	if uc.Status != nil {
		*uc.Status = core.CleanString(*uc.Status, true)
	}
	if uc.Response != nil {
		*uc.Response = core.CleanString(*uc.Response)
	}
}

func (f QueryFilter) match(c Complaint) bool {
	return (f.Status == "" || f.Status == c.Status) && (f.Category == "" || f.Category == c.Category)
}

func NewService(repo Repository, gyms Gyms, uploader core.EvidenceUploader, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, gyms: gyms, uploader: uploader, mailSvc: mailSvc}
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, gyms Gyms, uploader core.EvidenceUploader, mailSvc core.EmailService, now core.Clock) *Service {
	svc := NewService(repo, gyms, uploader, mailSvc)
	svc.now = now
	return svc
}

// Submit files a complaint with the gym nc.GymID and notifies its owner.
// nc must have been cleaned and validated.
func (svc *Service) Submit(ctx context.Context, nc NewComplaint, files []core.Upload) (Complaint, error) {
	gym, err := svc.gyms.GetByID(ctx, nc.GymID)
	if err != nil {
		if core.IsNotFound(err) {
			return Complaint{}, core.NewValidationError(nil, errUnknownGym)
		}
		return Complaint{}, errors.Wrap(err, "finding gym")
	}
	if !gym.IsActive {
		return Complaint{}, core.NewValidationError(nil, errUnknownGym)
	}

	evidence := make([]core.Evidence, 0)
	if len(files) > 0 {
		if evidence, err = svc.uploader.SaveEvidence(ctx, files); err != nil {
			return Complaint{}, err
		}
	}

	now := svc.now.Now().UTC()
	c := Complaint{
		User:        gym.ID,
		MemberName:  nc.MemberName,
		MemberEmail: nc.MemberEmail,
		Subject:     nc.Subject,
		Description: nc.Description,
		Category:    nc.Category,
		Status:      StatusPending,
		Evidence:    evidence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c, err = svc.repo.CreateComplaint(ctx, c); err != nil {
		svc.uploader.DeleteEvidence(ctx, evidence)
		return Complaint{}, errors.Wrap(err, "creating complaint")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: gym.Name, Address: gym.Email}},
		Subject:      "New complaint: " + c.Subject,
		TemplateName: "complaint_received",
		TemplateData: c,
	})
	return c, nil
}

// Query lists the complaints addressed to ownerID matching f, newest first.
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]Complaint, error) {
	complaints, err := svc.repo.QueryComplaintsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying complaints")
	}
	res := make([]Complaint, 0, len(complaints))
	for _, c := range complaints {
		if f.match(c) {
			res = append(res, c)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Complaint, error) {
	c, err := svc.repo.GetComplaintByID(ctx, id)
	if err != nil {
		return Complaint{}, err
	}
	if c.User != ownerID {
		return Complaint{}, core.ErrNotOwner
	}
	return c, nil
}

// Update applies uc to c. uc must have been cleaned and validated.
func (svc *Service) Update(ctx context.Context, c Complaint, uc UpdateComplaint) (Complaint, error) {
	if uc.Status != nil {
		c.Status = *uc.Status
	}
	if uc.Response != nil {
		c.Response = *uc.Response
	}
	c.UpdatedAt = svc.now.Now().UTC()
	c, err := svc.repo.UpdateComplaint(ctx, c)
	return c, errors.Wrap(err, "updating complaint")
}

// Delete removes c. Its evidence files are kept.
func (svc *Service) Delete(ctx context.Context, c Complaint) error {
	return errors.Wrap(svc.repo.DeleteComplaintByID(ctx, c.ID), "deleting complaint")
}
