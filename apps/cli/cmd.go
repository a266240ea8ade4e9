package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/ai"
	"github.com/unicrm/unicli/core/assignment"
	"github.com/unicrm/unicli/core/auth"
	"github.com/unicrm/unicli/core/course"
	"github.com/unicrm/unicli/core/dashboard"
	"github.com/unicrm/unicli/core/user"
	realtimesvc "github.com/unicrm/unicli/services/realtime"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errNotLoggedIn = errors.New("not logged in; run 'unicli login' first")
)

type commandLine struct {
	out io.Writer

	auth        *auth.Service
	courses     *course.Service
	assignments *assignment.Service
	ai          *ai.Service
	dashboards  *dashboard.Service
	channel     *realtimesvc.Channel
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL - log in; the password is prompted next")
	fmt.Println("  register -first NAME -last NAME -email EMAIL -role ROLE - create an account")
	fmt.Println("  logout - log out and clear the stored session")
	fmt.Println("  whoami - show the logged-in user")
	fmt.Println("  courses [-page N] [-limit N] [-search TEXT] - browse the course catalog")
	fmt.Println("  my-courses - list the courses you teach (lecturers)")
	fmt.Println("  enrolled - list the courses you are enrolled in (students)")
	fmt.Println("  my-enrollments - list your enrollment requests and statuses (students)")
	fmt.Println("  enroll -course ID - request enrollment into a course (students)")
	fmt.Println("  drop -enrollment ID - drop an enrollment (students)")
	fmt.Println("  create-course -title TITLE -credits N -semester SEM -year YYYY - create a course (lecturers)")
	fmt.Println("  upload-syllabus -course ID -file PATH - attach a syllabus file (lecturers)")
	fmt.Println("  assignments - list your assignments (students) or submissions to grade (lecturers)")
	fmt.Println("  submit -course ID -title TITLE [-content TEXT|-file PATH] - submit an assignment (students)")
	fmt.Println("  grade -assignment ID -grade N [-feedback TEXT] - grade a submission (lecturers)")
	fmt.Println("  dashboard - show your role's dashboard")
	fmt.Println("  recommend -interests TEXT - AI course recommendations")
	fmt.Println("  syllabus -topic TOPIC [-level LEVEL] [-duration DUR] [-save DIR] - AI syllabus generation")
	fmt.Println("  listen [-room ROOM] - stream realtime notifications until interrupted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		cmd := flag.NewFlagSet("login", flag.ExitOnError)
		email := cmd.String("email", "", "The account's email. The password will be prompted next.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *email == "" {
			cmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.login(*email, pwd)

	case "register":
		cmd := flag.NewFlagSet("register", flag.ExitOnError)
		first := cmd.String("first", "", "First name.")
		last := cmd.String("last", "", "Last name.")
		email := cmd.String("email", "", "Email address.")
		role := cmd.String("role", user.RoleStudent, "Account role: student, lecturer or admin.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *first == "" || *last == "" || *email == "" {
			cmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.register(*first, *last, *email, *role, pwd)

	case "logout":
		cli.auth.Logout()
		return nil

	case "whoami":
		return cli.whoami()

	case "courses":
		cmd := flag.NewFlagSet("courses", flag.ExitOnError)
		page := cmd.Int("page", 0, "Catalog page to fetch.")
		limit := cmd.Int("limit", 0, "Courses per page.")
		search := cmd.String("search", "", "Filter by title or description.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listCourses(*page, *limit, *search)

	case "my-courses":
		return cli.myCourses()

	case "enrolled":
		return cli.enrolledCourses()

	case "my-enrollments":
		return cli.listEnrollments()

	case "enroll":
		cmd := flag.NewFlagSet("enroll", flag.ExitOnError)
		courseID := cmd.String("course", "", "The course to enroll into.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.enroll(*courseID)

	case "drop":
		cmd := flag.NewFlagSet("drop", flag.ExitOnError)
		enrollmentID := cmd.String("enrollment", "", "The enrollment to drop.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollmentID == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.drop(*enrollmentID)

	case "create-course":
		cmd := flag.NewFlagSet("create-course", flag.ExitOnError)
		title := cmd.String("title", "", "Course title.")
		description := cmd.String("description", "", "Course description.")
		credits := cmd.Int("credits", 3, "Credit hours (1-6).")
		semester := cmd.String("semester", "", "Semester, e.g. Fall.")
		year := cmd.Int("year", 0, "Academic year.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *title == "" || *semester == "" || *year == 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.createCourse(course.NewCourse{
			Title:       *title,
			Description: *description,
			Credits:     *credits,
			Semester:    *semester,
			Year:        *year,
		})

	case "upload-syllabus":
		cmd := flag.NewFlagSet("upload-syllabus", flag.ExitOnError)
		courseID := cmd.String("course", "", "The course to attach the syllabus to.")
		file := cmd.String("file", "", "Path to the syllabus file.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == "" || *file == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.uploadSyllabus(*courseID, *file)

	case "assignments":
		return cli.listAssignments()

	case "submit":
		cmd := flag.NewFlagSet("submit", flag.ExitOnError)
		courseID := cmd.String("course", "", "The course the assignment belongs to.")
		title := cmd.String("title", "", "Submission title.")
		description := cmd.String("description", "", "Submission description.")
		content := cmd.String("content", "", "Text content; mutually exclusive with -file.")
		file := cmd.String("file", "", "File to upload; mutually exclusive with -content.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *courseID == "" || *title == "" || (*content == "" && *file == "") {
			cmd.Usage()
			return errHelp
		}
		return cli.submit(assignment.Submission{
			CourseID:    *courseID,
			Title:       *title,
			Description: *description,
			Content:     *content,
			FilePath:    *file,
		})

	case "grade":
		cmd := flag.NewFlagSet("grade", flag.ExitOnError)
		assignmentID := cmd.String("assignment", "", "The submission to grade.")
		grade := cmd.Float64("grade", -1, "Grade, 0 to 100.")
		feedback := cmd.String("feedback", "", "Feedback for the student.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *assignmentID == "" || *grade < 0 {
			cmd.Usage()
			return errHelp
		}
		return cli.grade(assignment.GradeInput{
			AssignmentID: *assignmentID,
			Grade:        *grade,
			Feedback:     *feedback,
		})

	case "dashboard":
		return cli.dashboard()

	case "recommend":
		cmd := flag.NewFlagSet("recommend", flag.ExitOnError)
		interests := cmd.String("interests", "", "Free-text interests or career goals.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.recommend(*interests)

	case "syllabus":
		cmd := flag.NewFlagSet("syllabus", flag.ExitOnError)
		topic := cmd.String("topic", "", "Course topic.")
		level := cmd.String("level", ai.LevelUndergraduate, "Course level: undergraduate, graduate or phd.")
		duration := cmd.String("duration", ai.DurationSemester, "Course duration: semester, quarter or summer.")
		courseID := cmd.String("course", "", "Existing course to link the syllabus to.")
		save := cmd.String("save", "", "Directory to save the Markdown export into.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		if *topic == "" {
			cmd.Usage()
			return errHelp
		}
		return cli.syllabus(ai.SyllabusRequest{
			Topic:    *topic,
			Level:    *level,
			Duration: *duration,
			CourseID: *courseID,
		}, *save)

	case "listen":
		cmd := flag.NewFlagSet("listen", flag.ExitOnError)
		room := cmd.String("room", "", "Room to join for broadcasts.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listen(*room)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) requireUser() (user.User, error) {
	snap := cli.auth.Current()
	if !snap.IsAuthenticated {
		return user.User{}, errNotLoggedIn
	}
	return *snap.User, nil
}

func (cli *commandLine) tabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
}

// printFieldErrors expands a validation failure into per-field lines; other
// errors pass through untouched.
func (cli *commandLine) printFieldErrors(err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for _, fld := range vErr.Fields {
			fmt.Fprintf(cli.out, "%s: %s\n", fld.Field, fld.Error)
		}
	}
	return err
}
