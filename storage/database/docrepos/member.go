package docrepos

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type MemberRepository struct {
	coll collection[member.Member]
}

var _ member.Repository = (*MemberRepository)(nil)

func NewMemberRepository(store docstore.Store) *MemberRepository {
	return &MemberRepository{coll: collection[member.Member]{store: store, name: docstore.Members, notFound: member.ErrNotFound}}
}

func (repo *MemberRepository) CreateMember(ctx context.Context, m member.Member) (member.Member, error) {
	m.ID = newID()
	if err := repo.coll.insert(ctx, m.ID, m); err != nil {
		return member.Member{}, err
	}
	return m, nil
}

func (repo *MemberRepository) GetMemberByID(ctx context.Context, id string) (member.Member, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *MemberRepository) QueryMembersByOwner(ctx context.Context, ownerID string) ([]member.Member, error) {
	return repo.coll.ownedBy(ctx, ownerID)
}

func (repo *MemberRepository) UpdateMember(ctx context.Context, m member.Member) (member.Member, error) {
	if err := repo.coll.replace(ctx, m.ID, m); err != nil {
		return member.Member{}, err
	}
	return m, nil
}

func (repo *MemberRepository) DeleteMemberByID(ctx context.Context, id string) error {
	return repo.coll.deleteByID(ctx, id)
}
