package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

// User is a gym owner account. Members, plans and reports are scoped to it.
type User struct {
	ID           string    `json:"_id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	GymName      string    `json:"gymName" bson:"gymName"`
	Address      string    `json:"address" bson:"address"`
	Members      []string  `json:"members" bson:"members"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	PasswordHash []byte    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"` // UTC
	LastLogin    time.Time `json:"lastLogin" bson:"lastLogin"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// OwnsMember reports whether id is listed among the user's members.
func (u *User) OwnsMember(id string) bool {
	for _, mid := range u.Members {
		if mid == id {
			return true
		}
	}
	return false
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	GymName         string `json:"gymName" validate:"omitempty,max=120"`
	Address         string `json:"address" validate:"omitempty,max=250"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Phone = core.CleanString(nu.Phone)
	nu.GymName = core.CleanString(nu.GymName)
	nu.Address = core.CleanString(nu.Address)
}

// UpdateProfile defines what information may be provided to modify an existing User.
// Empty fields are left unchanged.
type UpdateProfile struct {
	Name            string `json:"name"`
	Phone           string `json:"phone" validate:"omitempty,max=20"`
	GymName         string `json:"gymName" validate:"omitempty,max=120"`
	Address         string `json:"address" validate:"omitempty,max=250"`
	Password        string `json:"password" validate:"omitempty"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required_with=Password,eqfield=Password"`
}

// apply merges the provided fields into usr (name/email are needed by the password policy).
func (up *UpdateProfile) apply(usr *User) {
	if name := core.CleanString(up.Name); name != "" {
		usr.Name = name
	}
	if phone := core.CleanString(up.Phone); phone != "" {
		usr.Phone = phone
	}
	if gym := core.CleanString(up.GymName); gym != "" {
		usr.GymName = gym
	}
	if addr := core.CleanString(up.Address); addr != "" {
		usr.Address = addr
	}
	up.Name = usr.Name
}

type ResetUserPassword struct {
	Token           string `json:"token" validate:"required"`
	UID             string `json:"uid" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}
