package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/maintenance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type MaintenanceRepository struct {
	coll collection[maintenance.Report]
}

var _ maintenance.Repository = (*MaintenanceRepository)(nil)

func NewMaintenanceRepository(store docstore.Store) *MaintenanceRepository {
	return &MaintenanceRepository{coll: collection[maintenance.Report]{store: store, name: docstore.Maintenance, notFound: maintenance.ErrNotFound}}
}

func (repo *MaintenanceRepository) CreateReport(ctx context.Context, r maintenance.Report) (maintenance.Report, error) {
	r.ID = newID()
	if err := repo.coll.insert(ctx, r.ID, r); err != nil {
		return maintenance.Report{}, err
	}
	return r, nil
}

func (repo *MaintenanceRepository) GetReportByID(ctx context.Context, id string) (maintenance.Report, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *MaintenanceRepository) QueryReportsByOwner(ctx context.Context, ownerID string) ([]maintenance.Report, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *MaintenanceRepository) UpdateReport(ctx context.Context, r maintenance.Report) (maintenance.Report, error) {
	if err := repo.coll.replace(ctx, r.ID, r); err != nil {
		return maintenance.Report{}, err
	}
	return r, nil
}

func (repo *MaintenanceRepository) DeleteReportByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
