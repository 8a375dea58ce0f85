package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/plan"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type PlanRepository struct {
	coll collection[plan.Plan]
}

var _ plan.Repository = (*PlanRepository)(nil)

func NewPlanRepository(store docstore.Store) *PlanRepository {
	return &PlanRepository{coll: collection[plan.Plan]{store: store, name: docstore.Plans, notFound: plan.ErrNotFound}}
}

func (repo *PlanRepository) CreatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	p.ID = newID()
	if err := repo.coll.insert(ctx, p.ID, p); err != nil {
		return plan.Plan{}, err
	}
	return p, nil
}

func (repo *PlanRepository) GetPlanByID(ctx context.Context, id string) (plan.Plan, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *PlanRepository) QueryPlansByOwner(ctx context.Context, ownerID string) ([]plan.Plan, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *PlanRepository) UpdatePlan(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	if err := repo.coll.replace(ctx, p.ID, p); err != nil {
		return plan.Plan{}, err
	}
	return p, nil
}

func (repo *PlanRepository) DeletePlanByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
