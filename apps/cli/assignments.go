package main

import (
	"context"
	"fmt"

	"github.com/unicrm/unicli/core/assignment"
)

// listAssignments shows the student's own submissions, or the submissions
// awaiting a grade for a lecturer.
func (cli *commandLine) listAssignments() error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}

	var assignments []assignment.Assignment
	if usr.IsLecturer() {
		assignments, err = cli.assignments.ToGrade(context.Background())
	} else {
		assignments, err = cli.assignments.My(context.Background())
	}
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		fmt.Fprintln(cli.out, "no assignments found")
		return nil
	}

	w := cli.tabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tGRADE")
	for _, a := range assignments {
		title := a.CourseID
		if a.Course != nil {
			title = a.Course.Title
		}
		grade := "-"
		if a.Graded() {
			grade = fmt.Sprintf("%.1f (%s)", *a.Grade, assignment.Letter(*a.Grade))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Title, title, grade)
	}
	return w.Flush()
}

func (cli *commandLine) submit(sub assignment.Submission) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	created, err := cli.assignments.Submit(context.Background(), usr, sub, cli.printProgress)
	if err != nil {
		return cli.printFieldErrors(err)
	}
	fmt.Fprintf(cli.out, "assignment %s submitted: %s\n", created.ID, created.Title)
	return nil
}

func (cli *commandLine) grade(in assignment.GradeInput) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	graded, err := cli.assignments.Grade(context.Background(), usr, in)
	if err != nil {
		return cli.printFieldErrors(err)
	}
	fmt.Fprintf(cli.out, "assignment %s graded: %.1f (%s)\n", graded.ID, in.Grade, assignment.Letter(in.Grade))
	return nil
}
