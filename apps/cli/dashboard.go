package main

import (
	"context"
	"fmt"

	"github.com/unicrm/unicli/core/assignment"
)

func (cli *commandLine) dashboard() error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	ctx := context.Background()

	switch {
	case usr.IsLecturer():
		dash, err := cli.dashboards.Lecturer(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Courses taught: %d\n", len(dash.Courses))
		fmt.Fprintf(cli.out, "Submissions to grade: %d\n", len(dash.ToGrade))
		cli.printCourses(dash.Courses)

	case usr.IsAdmin():
		dash, err := cli.dashboards.Admin(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Total courses: %d\n", dash.Stats.TotalCourses)
		fmt.Fprintf(cli.out, "Total students: %d\n", dash.Stats.TotalStudents)
		fmt.Fprintf(cli.out, "Pending enrollments: %d\n", dash.Stats.PendingEnrollments)
		fmt.Fprintf(cli.out, "Average grade: %.1f\n", dash.Stats.AverageGrade)

	default:
		dash, err := cli.dashboards.Student(ctx)
		if err != nil {
			return err
		}
		avg := "N/A"
		if dash.Average != nil {
			avg = fmt.Sprintf("%.1f (%s)", *dash.Average, assignment.Letter(*dash.Average))
		}
		fmt.Fprintf(cli.out, "Enrolled courses: %d\n", len(dash.Courses))
		fmt.Fprintf(cli.out, "Pending assignments: %d\n", dash.Pending)
		fmt.Fprintf(cli.out, "Average grade: %s\n", avg)
		cli.printCourses(dash.Courses)
	}
	return nil
}
