package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/certification"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type CertificationRepository struct {
	coll collection[certification.Certification]
}

var _ certification.Repository = (*CertificationRepository)(nil)

func NewCertificationRepository(store docstore.Store) *CertificationRepository {
	return &CertificationRepository{coll: collection[certification.Certification]{store: store, name: docstore.Certifications, notFound: certification.ErrNotFound}}
}

func (repo *CertificationRepository) CreateCertification(ctx context.Context, c certification.Certification) (certification.Certification, error) {
	c.ID = newID()
	if err := repo.coll.insert(ctx, c.ID, c); err != nil {
		return certification.Certification{}, err
	}
	return c, nil
}

func (repo *CertificationRepository) GetCertificationByID(ctx context.Context, id string) (certification.Certification, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *CertificationRepository) QueryCertificationsByOwner(ctx context.Context, ownerID string) ([]certification.Certification, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *CertificationRepository) UpdateCertification(ctx context.Context, c certification.Certification) (certification.Certification, error) {
	if err := repo.coll.replace(ctx, c.ID, c); err != nil {
		return certification.Certification{}, err
	}
	return c, nil
}

func (repo *CertificationRepository) DeleteCertificationByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
