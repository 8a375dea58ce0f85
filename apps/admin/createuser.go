package main

import (
	"context"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

// createUser registers an active owner account.
func (cli *commandLine) createUser(name, email, gymName, pwd string) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	if err := user.CheckPasswordPolicy(pwd, name, email, gymName); err != nil {
		return err
	}

	_, err := cli.usrSvc.Register(context.Background(), user.NewUser{
		Name:     name,
		Email:    email,
		GymName:  gymName,
		Password: pwd,
	})
	return err
}
