package main

import (
	"context"
	"fmt"

	"github.com/unicrm/unicli/core/course"
)

func (cli *commandLine) listCourses(page, limit int, search string) error {
	res, err := cli.courses.List(context.Background(), page, limit, search)
	if err != nil {
		return err
	}

	cli.printCourses(res.Items)
	if res.TotalPages > 1 {
		fmt.Fprintf(cli.out, "page %d of %d (%d courses)\n", res.Page, res.TotalPages, res.Total)
	}
	return nil
}

func (cli *commandLine) myCourses() error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	courses, err := cli.courses.Mine(context.Background())
	if err != nil {
		return err
	}
	cli.printCourses(courses)
	return nil
}

func (cli *commandLine) enrolledCourses() error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	courses, err := cli.courses.Enrolled(context.Background())
	if err != nil {
		return err
	}
	cli.printCourses(courses)
	return nil
}

func (cli *commandLine) printCourses(courses []course.Course) {
	if len(courses) == 0 {
		fmt.Fprintln(cli.out, "no courses found")
		return
	}
	w := cli.tabWriter()
	fmt.Fprintln(w, "ID\tTITLE\tCREDITS\tSTATUS\tENROLLED")
	for _, c := range courses {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", c.ID, c.Title, c.Credits, c.Status, c.EnrollmentCount)
	}
	_ = w.Flush()
}

func (cli *commandLine) listEnrollments() error {
	if _, err := cli.requireUser(); err != nil {
		return err
	}
	enrollments, err := cli.courses.MyEnrollments(context.Background())
	if err != nil {
		return err
	}
	if len(enrollments) == 0 {
		fmt.Fprintln(cli.out, "no enrollments found")
		return nil
	}

	w := cli.tabWriter()
	fmt.Fprintln(w, "ID\tCOURSE\tSTATUS\tSINCE")
	for _, e := range enrollments {
		title := e.CourseID
		if e.Course != nil {
			title = e.Course.Title
		}
		badge := course.StatusBadge(e.Status)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, title, badge.Label, e.EnrolledAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func (cli *commandLine) enroll(courseID string) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	enrollment, err := cli.courses.Enroll(context.Background(), usr, courseID)
	if err != nil {
		return cli.printFieldErrors(err)
	}
	badge := course.StatusBadge(enrollment.Status)
	fmt.Fprintf(cli.out, "enrollment %s created: %s\n", enrollment.ID, badge.Label)
	return nil
}

func (cli *commandLine) drop(enrollmentID string) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	if err := cli.courses.Drop(context.Background(), usr, enrollmentID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "enrollment %s dropped\n", enrollmentID)
	return nil
}

func (cli *commandLine) createCourse(nc course.NewCourse) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	created, err := cli.courses.Create(context.Background(), usr, nc)
	if err != nil {
		return cli.printFieldErrors(err)
	}
	fmt.Fprintf(cli.out, "course %s created: %s\n", created.ID, created.Title)
	return nil
}

func (cli *commandLine) uploadSyllabus(courseID, path string) error {
	usr, err := cli.requireUser()
	if err != nil {
		return err
	}
	url, err := cli.courses.UploadSyllabus(context.Background(), usr, courseID, path, cli.printProgress)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "syllabus uploaded: %s\n", url)
	return nil
}

func (cli *commandLine) printProgress(fraction float64) {
	fmt.Fprintf(cli.out, "\ruploading... %3.0f%%", fraction*100)
	if fraction >= 1 {
		fmt.Fprintln(cli.out)
	}
}
