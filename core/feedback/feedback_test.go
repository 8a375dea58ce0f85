package feedback_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database/docrepos"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
)

type gyms map[string]user.User

func (g gyms) GetByID(_ context.Context, id string) (user.User, error) {
	if usr, ok := g[id]; ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

type uploaderStub struct {
	saved   []core.Evidence
	deleted []core.Evidence
}

func (up *uploaderStub) SaveEvidence(_ context.Context, uploads []core.Upload) ([]core.Evidence, error) {
	evidence := make([]core.Evidence, len(uploads))
	for i, u := range uploads {
		evidence[i] = core.Evidence{Key: "key-" + u.Filename, Filename: u.Filename, MimeType: "video/mp4", Size: u.Size}
	}
	up.saved = append(up.saved, evidence...)
	return evidence, nil
}

func (up *uploaderStub) DeleteEvidence(_ context.Context, evidence []core.Evidence) {
	up.deleted = append(up.deleted, evidence...)
}

type mailStub struct{ messages []*core.EmailMessage }

func (m *mailStub) SendMessages(messages ...*core.EmailMessage) { m.messages = append(m.messages, messages...) }

// brokenRepo fails every write.
type brokenRepo struct{ feedback.Repository }

func (brokenRepo) CreateFeedback(context.Context, feedback.Feedback) (feedback.Feedback, error) {
	return feedback.Feedback{}, errors.New("connection reset")
}

func clip(name string) core.Upload {
	return core.Upload{Filename: name, Size: 4, Open: func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("data")), nil
	}}
}

var (
	owner = user.User{ID: "g1", Name: "Iron Gym", Email: "owner@gym.test", IsActive: true}
	clock = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }
)

func TestService_SubmitAndSummary(t *testing.T) {
	ctx := context.Background()
	up := &uploaderStub{}
	mailSvc := &mailStub{}
	svc := feedback.NewServiceMock(docrepos.NewFeedbackRepository(memstore.New()), gyms{"g1": owner}, up, mailSvc, clock)

	for _, rating := range []int{5, 4, 4} {
		nf := feedback.NewFeedback{GymID: "g1", MemberName: "Ann", Rating: rating}
		nf.Clean()
		fb, err := svc.Submit(ctx, nf, []core.Upload{clip("workout.mp4")})
		require.NoError(t, err)
		assert.Equal(t, feedback.CategoryGeneral, fb.Category)
		assert.Equal(t, feedback.StatusNew, fb.Status)
	}
	assert.Empty(t, up.deleted)
	assert.Len(t, mailSvc.messages, 3)

	sum, err := svc.Summary(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 13.0/3, sum.AverageRating, 1e-9)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, sum.ByRating)

	inactive := owner
	inactive.IsActive = false
	svc = feedback.NewServiceMock(docrepos.NewFeedbackRepository(memstore.New()), gyms{"g1": inactive}, up, mailSvc, clock)
	_, err = svc.Submit(ctx, feedback.NewFeedback{GymID: "g1", MemberName: "Ann", Rating: 3}, nil)
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "gymId", verr.Fields[0].Field)
}

func TestService_Submit_removesEvidenceWhenNotStored(t *testing.T) {
	up := &uploaderStub{}
	mailSvc := &mailStub{}
	svc := feedback.NewServiceMock(brokenRepo{}, gyms{"g1": owner}, up, mailSvc, clock)

	nf := feedback.NewFeedback{GymID: "g1", MemberName: "Ann", Rating: 2}
	nf.Clean()
	_, err := svc.Submit(context.Background(), nf, []core.Upload{clip("a.mp4")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating feedback")
	require.Len(t, up.saved, 1)
	assert.Equal(t, up.saved, up.deleted)
	assert.Empty(t, mailSvc.messages)
}
