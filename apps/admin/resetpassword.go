package main

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err = user.CheckPasswordPolicy(pwd, usr.Name, usr.Email); err != nil {
		return err
	}
	_, err = cli.usrSvc.SetPassword(ctx, usr, pwd)
	return err
}

// setActive toggles whether the owner may log in. Deactivated owners keep their data.
func (cli *commandLine) setActive(email string, active bool) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	usr.IsActive = active
	_, err = cli.usrRepo.UpdateUser(ctx, usr)
	return err
}
