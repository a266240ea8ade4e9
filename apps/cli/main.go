package main

import (
	"context"
	"log"
	"os"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/ai"
	"github.com/unicrm/unicli/core/assignment"
	"github.com/unicrm/unicli/core/auth"
	"github.com/unicrm/unicli/core/course"
	"github.com/unicrm/unicli/core/dashboard"
	"github.com/unicrm/unicli/core/session"
	apisvc "github.com/unicrm/unicli/services/api"
	logsvc "github.com/unicrm/unicli/services/logger"
	realtimesvc "github.com/unicrm/unicli/services/realtime"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stderr, "UNICLI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if core.Conf.GetString("rollbarToken") != "" {
		logger = logsvc.NewRollbarLogger(std)
	} else {
		logger = logsvc.NewStdLogger(std)
	}
	notifier := logsvc.NewConsoleNotifier(os.Stdout)

	store, err := session.NewStore(core.Conf.GetString("stateDir"))
	if err != nil {
		std.Fatal(err)
	}

	api := apisvc.NewClient(core.Conf.GetString("apiBaseURL"), core.Conf.GetDuration("requestTimeout"), store, notifier, logger)
	channel := realtimesvc.NewChannel(core.Conf.GetString("wsBaseURL")+"/ws", notifier, logger)
	authSvc := auth.NewService(api, store, channel, notifier, logger)
	api.OnUnauthorized(channel.Disconnect)

	courseSvc := course.NewService(api, logger)
	assignSvc := assignment.NewService(api, logger)

	// restore a persisted session before running any command
	authSvc.Init(context.Background())

	cli := commandLine{
		out:         os.Stdout,
		auth:        authSvc,
		courses:     courseSvc,
		assignments: assignSvc,
		ai:          ai.NewService(api, logger),
		dashboards:  dashboard.NewService(api, courseSvc, assignSvc, logger),
		channel:     channel,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
