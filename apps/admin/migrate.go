package main

import (
	"context"
	"errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database"
)

var (
	gooseRunFunc = database.RunMigration // mockable

	errNoMigrations = errors.New("migrations only apply to the postgres engine")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil || cli.db.SQL == nil {
		return errNoMigrations
	}
	return gooseRunFunc(context.Background(), cli.db.SQL.DB, args[0], args[1:]...)
}
