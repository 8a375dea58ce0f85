package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
	emailsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/email"
	logsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/logger"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database/docrepos"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(false)

	// set up DB
	ctx := context.Background()
	db, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	// start CLI
	usrRepo := docrepos.NewUserRepository(db)
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo, emailsvc.NewConsoleService(conf, logger), conf),
	}
	err = cli.run(os.Args)
	_ = db.Close(ctx)
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("\nerror: %s\n", err), err)
		}
		os.Exit(1)
	}
}
