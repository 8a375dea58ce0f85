// Package feedback handles ratings and comments members leave for their gym.
package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

const (
	CategoryGeneral  = "general"
	CategoryTrainer  = "trainer"
	CategoryFacility = "facility"
	CategoryClass    = "class"

	StatusNew      = "new"
	StatusReviewed = "reviewed"
	StatusArchived = "archived"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("feedback")
	errUnknownGym = core.FieldError{Field: "gymId", Error: "no gym matches this id"}
)

type (
	Feedback struct {
		ID         string          `json:"_id" bson:"_id"`
		User       string          `json:"user" bson:"user"` // gym owner
		MemberName string          `json:"memberName" bson:"memberName"`
		Rating     int             `json:"rating" bson:"rating"`
		Message    string          `json:"message" bson:"message"`
		Category   string          `json:"category" bson:"category"`
		Status     string          `json:"status" bson:"status"`
		Evidence   []core.Evidence `json:"evidence" bson:"evidence"`
		CreatedAt  time.Time       `json:"createdAt" bson:"createdAt"` // UTC
		UpdatedAt  time.Time       `json:"updatedAt" bson:"updatedAt"` // UTC
	}

	// NewFeedback is submitted publicly, as JSON or multipart form.
	NewFeedback struct {
		GymID      string `json:"gymId" form:"gymId" validate:"required"`
		MemberName string `json:"memberName" form:"memberName" validate:"required,notblank,max=100"`
		Rating     int    `json:"rating" form:"rating" validate:"required,min=1,max=5"`
		Message    string `json:"message" form:"message" validate:"omitempty,max=2000"`
		Category   string `json:"category" form:"category" validate:"omitempty,oneof=general trainer facility class"`
	}

	UpdateFeedback struct {
		Status *string `json:"status" validate:"omitempty,oneof=new reviewed archived"`
	}

	QueryFilter struct {
		Status   string `query:"status"`
		Category string `query:"category"`
		Rating   int    `query:"rating"`
	}

	// Summary aggregates the feedback of a gym.
	Summary struct {
		Count         int         `json:"count"`
		AverageRating float64     `json:"averageRating"`
		ByRating      map[int]int `json:"byRating"`
	}

	Repository interface {
		CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		GetFeedbackByID(ctx context.Context, id string) (Feedback, error)
		QueryFeedbackByOwner(ctx context.Context, ownerID string) ([]Feedback, error)
		UpdateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
		DeleteFeedbackByID(ctx context.Context, id string) error
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

func (nf *NewFeedback) Clean() {
	nf.GymID = core.CleanString(nf.GymID)
	nf.MemberName = core.CleanString(nf.MemberName)
	nf.Message = core.CleanString(nf.Message)
	nf.Category = core.CleanString(nf.Category, true)
	if nf.Category == "" {
		nf.Category = CategoryGeneral
	}
}

func (uf *UpdateFeedback) Clean() {
	if uf.Status != nil {
		*uf.Status = core.CleanString(*uf.Status, true)
	}
}

func (f QueryFilter) match(fb Feedback) bool {
	return (f.Status == "" || f.Status == fb.Status) &&
		(f.Category == "" || f.Category == fb.Category) &&
		(f.Rating == 0 || f.Rating == fb.Rating)
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

// Submit records feedback for the gym nf.GymID and notifies its owner.
// nf must have been cleaned and validated.
func (svc *Service) Submit(ctx context.Context, nf NewFeedback, files []core.Upload) (Feedback, error) {
	gym, err := svc.gyms.GetByID(ctx, nf.GymID)
	if err != nil {
		if core.IsNotFound(err) {
			return Feedback{}, core.NewValidationError(nil, errUnknownGym)
		}
		return Feedback{}, errors.Wrap(err, "finding gym")
	}
	if !gym.IsActive {
		return Feedback{}, core.NewValidationError(nil, errUnknownGym)
	}

	evidence := make([]core.Evidence, 0)
	if len(files) > 0 {
		if evidence, err = svc.uploader.SaveEvidence(ctx, files); err != nil {
			return Feedback{}, err
		}
	}

	now := svc.now.Now().UTC()
	fb := Feedback{
		User:       gym.ID,
		MemberName: nf.MemberName,
		Rating:     nf.Rating,
		Message:    nf.Message,
		Category:   nf.Category,
		Status:     StatusNew,
		Evidence:   evidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if fb, err = svc.repo.CreateFeedback(ctx, fb); err != nil {
		svc.uploader.DeleteEvidence(ctx, evidence)
		return Feedback{}, errors.Wrap(err, "creating feedback")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: gym.Name, Address: gym.Email}},
		Subject:      fmt.Sprintf("New %d/5 feedback from %s", fb.Rating, fb.MemberName),
		TemplateName: "feedback_received",
		TemplateData: fb,
	})
	return fb, nil
}

// Query lists the feedback addressed to ownerID matching f, newest first.
func (svc *Service) Query(ctx context.Context, ownerID string, f QueryFilter) ([]Feedback, error) {
	all, err := svc.repo.QueryFeedbackByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying feedback")
	}
	res := make([]Feedback, 0, len(all))
	for _, fb := range all {
		if f.match(fb) {
			res = append(res, fb)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

// Summary counts the owner's feedback and averages its ratings.
func (svc *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	all, err := svc.repo.QueryFeedbackByOwner(ctx, ownerID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying feedback")
	}

	sum := Summary{ByRating: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for _, fb := range all {
		sum.Count++
		sum.ByRating[fb.Rating]++
		total += fb.Rating
	}
	if sum.Count > 0 {
		sum.AverageRating = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

func (svc *Service) GetOwned(ctx context.Context, ownerID, id string) (Feedback, error) {
	fb, err := svc.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return Feedback{}, err
	}
	if fb.User != ownerID {
		return Feedback{}, core.ErrNotOwner
	}
	return fb, nil
}

// Update applies uf to fb. uf must have been cleaned and validated.
func (svc *Service) Update(ctx context.Context, fb Feedback, uf UpdateFeedback) (Feedback, error) {
	if uf.Status != nil {
		fb.Status = *uf.Status
	}
	fb.UpdatedAt = svc.now.Now().UTC()
	fb, err := svc.repo.UpdateFeedback(ctx, fb)
	return fb, errors.Wrap(err, "updating feedback")
}

func (svc *Service) Delete(ctx context.Context, fb Feedback) error {
	return errors.Wrap(svc.repo.DeleteFeedbackByID(ctx, fb.ID), "deleting feedback")
}
