package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

var (
	// errors
	ErrNotFound            = core.NewNotFoundError("user")
	ErrEmailExists         = errors.New("a user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDeactivated  = errors.New("account deactivated")
	ErrInvalidResetRequest = errors.New("invalid password reset link")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		tokenGen tokenGenerator
		now      core.Clock
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	svc := &Service{
		repo:    repo,
		mailSvc: mailSvc,
	}
	svc.tokenGen = tokenGenerator{
		secretKey: []byte(conf.SecretKey),
		timeout:   3 * 24 * time.Hour,
		now:       svc.now.Now,
	}
	return svc
}

// NewServiceMock returns a Service whose clock is fixed by the caller.
func NewServiceMock(repo Repository, mailSvc core.EmailService, conf *core.Config, now core.Clock) *Service {
	svc := NewService(repo, mailSvc, conf)
	svc.now = now
	svc.tokenGen.now = now.Now
	return svc
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Register creates a new active User and sends them a welcome email.
// nu must have been validated.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	if err := svc.checkUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}

	now := svc.now.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Phone:     nu.Phone,
		GymName:   nu.GymName,
		Address:   nu.Address,
		Members:   []string{},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome!",
		TemplateName: "welcome",
		TemplateData: usr,
	})
	return usr, nil
}

// Authenticate checks the credentials and stamps the User's last login.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return User{}, ErrAccountDeactivated
	}

	usr.LastLogin = svc.now.Now().UTC()
	usr, err = svc.repo.UpdateUser(ctx, usr)
	return usr, errors.Wrap(err, "setting lastLogin")
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// UpdateProfile applies up to usr. up must have been validated.
func (svc *Service) UpdateProfile(ctx context.Context, usr User, up UpdateProfile) (User, error) {
	up.apply(&usr)
	if up.Password != "" {
		if err := usr.SetPassword(up.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}
	usr.UpdatedAt = svc.now.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// PrepareProfileUpdate merges up into a copy of usr so that struct validation sees the final values.
func (svc *Service) PrepareProfileUpdate(usr User, up *UpdateProfile) {
	up.apply(&usr)
}

// SetPassword replaces the User's password without any policy check beyond the caller's.
func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = svc.now.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// AddMember records memberID among the User's members.
func (svc *Service) AddMember(ctx context.Context, userID, memberID string) error {
	usr, err := svc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	if usr.OwnsMember(memberID) {
		return nil
	}
	usr.Members = append(usr.Members, memberID)
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "updating user members")
}

// RemoveMember drops memberID from the User's members.
func (svc *Service) RemoveMember(ctx context.Context, userID, memberID string) error {
	usr, err := svc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}
	members := make([]string, 0, len(usr.Members))
	for _, id := range usr.Members {
		if id != memberID {
			members = append(members, id)
		}
	}
	usr.Members = members
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "updating user members")
}

// RequestPasswordReset emails a reset link to the active User owning email.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return ErrAccountDeactivated
	}

	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Password Reset",
		BodyStr: fmt.Sprintf(
			"Use the following to reset your password.\n\nuid: %s\ntoken: %s\n",
			EncodeUID(usr), svc.tokenGen.makeToken(usr),
		),
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}

// ResetPassword sets a new password if the uid/token pair is valid. rp must have been validated.
func (svc *Service) ResetPassword(ctx context.Context, rp ResetUserPassword) error {
	id, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(ErrInvalidResetRequest)
	}
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(ErrInvalidResetRequest)
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if err = svc.tokenGen.verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(ErrInvalidResetRequest)
	}
	_, err = svc.SetPassword(ctx, usr, rp.Password)
	return err
}
