package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	realtimesvc "github.com/unicrm/unicli/services/realtime"
)

// listen streams realtime events to the terminal until interrupted. The
// channel itself was opened when the session was restored; the built-in
// notices already print, so only the structured payloads are shown here.
func (cli *commandLine) listen(room string) error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	if !cli.channel.Connected() {
		return fmt.Errorf("realtime channel is not connected")
	}

	if room != "" {
		if err := cli.channel.JoinRoom(room); err != nil {
			return err
		}
		defer func() { _ = cli.channel.LeaveRoom(room) }()
	}

	unsubGrade := cli.channel.OnGradeUpdated(func(ev realtimesvc.GradeUpdate) {
		fmt.Fprintf(cli.out, "grade: %s -> %.1f\n", ev.Assignment, ev.Grade)
	})
	defer unsubGrade()
	unsubEnroll := cli.channel.OnEnrollmentStatus(func(ev realtimesvc.EnrollmentUpdate) {
		fmt.Fprintf(cli.out, "enrollment: %s -> %s\n", ev.Course, ev.Status)
	})
	defer unsubEnroll()

	fmt.Fprintln(cli.out, "listening... (ctrl-c to stop)")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
