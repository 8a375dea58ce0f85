package docrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type UserRepository struct {
	coll collection[user.User]
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{coll: collection[user.User]{store: store, name: docstore.Users, notFound: user.ErrNotFound}}
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, excl := range excludedUsers {
		if usr.ID == excl.ID {
			return true
		}
	}
	return false
}

func (repo *UserRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	users, err := repo.coll.find(ctx, docstore.Filter{"email": email})
	if err != nil {
		return errors.Wrap(err, "finding users by email")
	}
	for _, usr := range users {
		if !isExcluded(usr, excludedUsers) {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = newID()
	if err := repo.coll.insert(ctx, usr.ID, usr); err != nil {
		if errors.Cause(err) == docstore.ErrDuplicate {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return usr, nil
}

func (repo *UserRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.coll.byID(ctx, id)
}

func (repo *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.coll.get(ctx, docstore.Filter{"email": email})
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.coll.replace(ctx, usr.ID, usr); err != nil {
		if errors.Cause(err) == docstore.ErrDuplicate {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, err
	}
	return usr, nil
}
