package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/complaint"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type ComplaintRepository struct {
	coll collection[complaint.Complaint]
}

var _ complaint.Repository = (*ComplaintRepository)(nil)

func NewComplaintRepository(store docstore.Store) *ComplaintRepository {
	return &ComplaintRepository{coll: collection[complaint.Complaint]{store: store, name: docstore.Complaints, notFound: complaint.ErrNotFound}}
}

func (repo *ComplaintRepository) CreateComplaint(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	c.ID = newID()
	if err := repo.coll.insert(ctx, c.ID, c); err != nil {
		return complaint.Complaint{}, err
	}
	return c, nil
}

func (repo *ComplaintRepository) GetComplaintByID(ctx context.Context, id string) (complaint.Complaint, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *ComplaintRepository) QueryComplaintsByOwner(ctx context.Context, ownerID string) ([]complaint.Complaint, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *ComplaintRepository) UpdateComplaint(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	if err := repo.coll.replace(ctx, c.ID, c); err != nil {
		return complaint.Complaint{}, err
	}
	return c, nil
}

func (repo *ComplaintRepository) DeleteComplaintByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
