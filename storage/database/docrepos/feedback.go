package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type FeedbackRepository struct {
	coll collection[feedback.Feedback]
}

var _ feedback.Repository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(store docstore.Store) *FeedbackRepository {
	return &FeedbackRepository{coll: collection[feedback.Feedback]{store: store, name: docstore.Feedback, notFound: feedback.ErrNotFound}}
}

func (repo *FeedbackRepository) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	fb.ID = newID()
	if err := repo.coll.insert(ctx, fb.ID, fb); err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

func (repo *FeedbackRepository) GetFeedbackByID(ctx context.Context, id string) (feedback.Feedback, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *FeedbackRepository) QueryFeedbackByOwner(ctx context.Context, ownerID string) ([]feedback.Feedback, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *FeedbackRepository) UpdateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	if err := repo.coll.replace(ctx, fb.ID, fb); err != nil {
		return feedback.Feedback{}, err
	}
	return fb, nil
}

func (repo *FeedbackRepository) DeleteFeedbackByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
