package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tutorspet/tutorspet/internal/application/command"
	"github.com/tutorspet/tutorspet/internal/application/query"
	"github.com/tutorspet/tutorspet/internal/domain/attendance"
	"github.com/tutorspet/tutorspet/internal/domain/lesson"
	"github.com/tutorspet/tutorspet/internal/domain/moduleclass"
	"github.com/tutorspet/tutorspet/internal/domain/shared"
	"github.com/tutorspet/tutorspet/internal/domain/student"
	"github.com/tutorspet/tutorspet/internal/infrastructure/export"
	"github.com/tutorspet/tutorspet/internal/infrastructure/persistence/postgres"
	"github.com/tutorspet/tutorspet/pkg/timeutil"
)

var errUsage = errors.New("invalid arguments")

type subcommand struct {
	usage      string
	summary    string
	needsModel bool
	run        func(ctx context.Context, a *App, args []string) error
}

var subcommands = map[string]subcommand{
	"summary":        {"", "Show the number of students and classes", true, runSummary},
	"list":           {"", "List students and classes with their indices", true, runList},
	"stats":          {"-class N -student N", "Show a student's attendance statistics in a class", true, runStats},
	"add-student":    {"-name NAME -phone PHONE -email EMAIL [-tags a,b]", "Add a student", true, runAddStudent},
	"delete-student": {"-student N", "Delete a student and their attendance", true, runDeleteStudent},
	"add-class":      {"-name NAME", "Add a module class", true, runAddClass},
	"link":           {"-class N -student N", "Add a student to a class", true, runLink},
	"unlink":         {"-class N -student N", "Remove a student from a class", true, runUnlink},
	"add-lesson":     {"-class N -day DAY -start HH:MM -end HH:MM -venue VENUE -weeks N", "Add a lesson to a class", true, runAddLesson},
	"attend":         {"-class N -lesson N -student N -week N -score N", "Record attendance", true, runAttend},
	"export":         {"-class NAME [-out PATH]", "Export a class's attendance to an xlsx workbook", true, runExport},
	"migrate":        {"[up|down|status]", "Manage the database schema", false, runMigrate},
	"revisions":      {"[-limit N]", "List stored revisions", false, runRevisions},
	"health":         {"", "Check that storage and cache are reachable", false, runHealth},
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "usage: tutorspet <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")

	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, subcommands[name].summary)
	}
	_ = w.Flush()
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func index(name string, oneBased int) (shared.Index, error) {
	idx, err := shared.IndexFromOneBased(oneBased)
	if err != nil {
		return shared.Index{}, fmt.Errorf("%w: -%s must be a positive number", errUsage, name)
	}
	return idx, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// READ-ONLY COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func runSummary(_ context.Context, a *App, _ []string) error {
	summary := query.NewGetSummaryHandler().Handle(a.manager.Current())
	fmt.Fprintln(a.out, summary.String())
	return nil
}

func runList(_ context.Context, a *App, _ []string) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENTS")
	for i, s := range a.manager.FilteredStudentList() {
		fmt.Fprintf(w, "%d.\t%s\n", i+1, s)
	}
	fmt.Fprintln(w, "CLASSES")
	for i, m := range a.manager.FilteredModuleClassList() {
		fmt.Fprintf(w, "%d.\t%s\t%d students\t%d lessons\n", i+1, m.Name(), len(m.StudentIDs()), len(m.Lessons()))
		for j, l := range m.Lessons() {
			fmt.Fprintf(w, "\t  %d. %s\n", j+1, l)
		}
	}
	return w.Flush()
}

func runStats(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("stats")
	classPos := fs.Int("class", 0, "class index")
	studentPos := fs.Int("student", 0, "student index")
	if err := parse(fs, args); err != nil {
		return err
	}

	classIdx, err := index("class", *classPos)
	if err != nil {
		return err
	}
	studentIdx, err := index("student", *studentPos)
	if err != nil {
		return err
	}

	stats, err := query.NewGetStudentStatisticsHandler(a.manager).Handle(query.GetStudentStatisticsQuery{
		ModuleClassIndex: classIdx,
		StudentIndex:     studentIdx,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, stats.String())
	return nil
}

func runExport(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("export")
	className := fs.String("class", "", "class name")
	outPath := fs.String("out", "", "output path")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *className == "" {
		return fmt.Errorf("%w: -class is required", errUsage)
	}

	current := a.manager.Current()
	m, err := export.ClassByName(current, *className)
	if err != nil {
		return err
	}

	path := *outPath
	if path == "" {
		name := strings.ReplaceAll(m.Name().String(), " ", "_") + ".xlsx"
		path = filepath.Join(a.cfg.Export.Dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	if err := export.NewAttendanceSheet(a.log).WriteFile(path, current, m); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %s to %s\n", m.Name(), path)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MUTATING COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

func runAddStudent(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("add-student")
	name := fs.String("name", "", "name")
	phone := fs.String("phone", "", "phone")
	email := fs.String("email", "", "email")
	tags := fs.String("tags", "", "comma separated tags")
	if err := parse(fs, args); err != nil {
		return err
	}

	p := student.NewStudentParams{}
	var err error
	if p.Name, err = shared.NewName(*name); err != nil {
		return err
	}
	if p.Phone, err = shared.NewPhone(*phone); err != nil {
		return err
	}
	if p.Email, err = shared.NewEmail(*email); err != nil {
		return err
	}
	for _, raw := range strings.Split(*tags, ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		tag, err := shared.NewTag(raw)
		if err != nil {
			return err
		}
		p.Tags = append(p.Tags, tag)
	}

	s, err := student.NewStudent(p)
	if err != nil {
		return err
	}
	cmd, err := command.NewAddStudentCommand(s)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func runDeleteStudent(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("delete-student")
	pos := fs.Int("student", 0, "student index")
	if err := parse(fs, args); err != nil {
		return err
	}
	idx, err := index("student", *pos)
	if err != nil {
		return err
	}
	cmd, err := command.NewDeleteStudentCommand(idx)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func runAddClass(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("add-class")
	name := fs.String("name", "", "class name")
	if err := parse(fs, args); err != nil {
		return err
	}
	n, err := shared.NewName(*name)
	if err != nil {
		return err
	}
	m, err := moduleclass.NewModuleClass(moduleclass.NewModuleClassParams{Name: n})
	if err != nil {
		return err
	}
	cmd, err := command.NewAddModuleClassCommand(m)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func classAndStudent(name string, args []string) (shared.Index, shared.Index, error) {
	fs := newFlagSet(name)
	classPos := fs.Int("class", 0, "class index")
	studentPos := fs.Int("student", 0, "student index")
	if err := parse(fs, args); err != nil {
		return shared.Index{}, shared.Index{}, err
	}
	classIdx, err := index("class", *classPos)
	if err != nil {
		return shared.Index{}, shared.Index{}, err
	}
	studentIdx, err := index("student", *studentPos)
	if err != nil {
		return shared.Index{}, shared.Index{}, err
	}
	return classIdx, studentIdx, nil
}

func runLink(_ context.Context, a *App, args []string) error {
	classIdx, studentIdx, err := classAndStudent("link", args)
	if err != nil {
		return err
	}
	cmd, err := command.NewLinkCommand(classIdx, studentIdx)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func runUnlink(_ context.Context, a *App, args []string) error {
	classIdx, studentIdx, err := classAndStudent("unlink", args)
	if err != nil {
		return err
	}
	cmd, err := command.NewUnlinkCommand(classIdx, studentIdx)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func runAddLesson(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("add-lesson")
	classPos := fs.Int("class", 0, "class index")
	day := fs.String("day", "", "day of week")
	start := fs.String("start", "", "start time")
	end := fs.String("end", "", "end time")
	venue := fs.String("venue", "", "venue")
	weeks := fs.Int("weeks", 0, "number of occurrences")
	if err := parse(fs, args); err != nil {
		return err
	}

	classIdx, err := index("class", *classPos)
	if err != nil {
		return err
	}
	p := lesson.NewLessonParams{}
	if p.Day, err = lesson.ParseDay(*day); err != nil {
		return err
	}
	if p.StartTime, err = lesson.ParseTime(*start); err != nil {
		return err
	}
	if p.EndTime, err = lesson.ParseTime(*end); err != nil {
		return err
	}
	if p.Venue, err = lesson.NewVenue(*venue); err != nil {
		return err
	}
	if p.Occurrences, err = lesson.NewNumberOfOccurrences(*weeks); err != nil {
		return err
	}
	l, err := lesson.NewLesson(p)
	if err != nil {
		return err
	}

	cmd, err := command.NewAddLessonCommand(classIdx, l)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func runAttend(_ context.Context, a *App, args []string) error {
	fs := newFlagSet("attend")
	classPos := fs.Int("class", 0, "class index")
	lessonPos := fs.Int("lesson", 0, "lesson index")
	studentPos := fs.Int("student", 0, "student index")
	week := fs.Int("week", 0, "week")
	score := fs.Int("score", -1, "participation score")
	if err := parse(fs, args); err != nil {
		return err
	}

	var target command.AttendanceTarget
	var err error
	if target.ModuleClassIndex, err = index("class", *classPos); err != nil {
		return err
	}
	if target.LessonIndex, err = index("lesson", *lessonPos); err != nil {
		return err
	}
	if target.StudentIndex, err = index("student", *studentPos); err != nil {
		return err
	}
	if target.Week, err = attendance.NewWeek(*week); err != nil {
		return err
	}
	participation, err := attendance.NewAttendance(*score)
	if err != nil {
		return err
	}

	cmd, err := command.NewAddAttendanceCommand(target, participation)
	if err != nil {
		return err
	}
	return a.report(a.execute(cmd))
}

func (a *App) report(res command.Result, err error) error {
	if res.Feedback != "" {
		fmt.Fprintln(a.out, res.Feedback)
	}
	return err
}

// ══════════════════════════════════════════════════════════════════════════════
// DATABASE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

var (
	errNeedsPostgres = errors.New("this command needs STORAGE_BACKEND=postgres")
	errUnhealthy     = errors.New("health check failed")
)

func runMigrate(ctx context.Context, a *App, args []string) error {
	if a.conn == nil {
		return errNeedsPostgres
	}
	migrator := postgres.NewMigrator(a.conn)

	action := "up"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "up":
		applied, err := migrator.Migrate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Applied %d migrations\n", applied)
	case "down":
		if err := migrator.Rollback(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Rolled back the last migration")
	case "status":
		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, m := range status {
			state := "pending"
			if m.IsApplied {
				state = "applied " + m.AppliedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%03d\t%s\t%s\n", m.Version, m.Name, state)
		}
		return w.Flush()
	default:
		return fmt.Errorf("%w: unknown migrate action %q", errUsage, action)
	}
	return nil
}

func runRevisions(ctx context.Context, a *App, args []string) error {
	if a.snapshots == nil {
		return errNeedsPostgres
	}
	fs := newFlagSet("revisions")
	limit := fs.Int("limit", 10, "number of revisions")
	if err := parse(fs, args); err != nil {
		return err
	}

	revisions, err := a.snapshots.Revisions(ctx, *limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	now := time.Now()
	fmt.Fprintln(w, "REVISION\tSAVED AT\t\tSTUDENTS\tCLASSES\tFINGERPRINT")
	for _, r := range revisions {
		fmt.Fprintf(w, "%d\t%s\t(%s)\t%d\t%d\t%s\n",
			r.Number, timeutil.FormatDateTimeStr(r.SavedAt), timeutil.FormatRelative(r.SavedAt, now),
			r.StudentCount, r.ModuleClassCount, r.Fingerprint[:12])
	}
	return w.Flush()
}

func runHealth(ctx context.Context, a *App, args []string) error {
	if err := parse(newFlagSet("health"), args); err != nil {
		return err
	}

	healthy := true
	switch {
	case a.conn != nil:
		status, err := a.conn.Health(ctx)
		if err != nil {
			return err
		}
		if !status.Healthy {
			healthy = false
			fmt.Fprintf(a.out, "storage: postgres unreachable: %s\n", status.Error)
			break
		}
		fmt.Fprintf(a.out, "storage: postgres ok (ping %s, %d/%d connections in use)\n",
			status.PingLatency.Round(time.Microsecond), status.AcquiredConns, status.MaxConns)
	default:
		path := absPath(a.cfg.Storage.Path)
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			fmt.Fprintf(a.out, "storage: file %s (not created yet)\n", path)
		} else {
			fmt.Fprintf(a.out, "storage: file %s ok\n", path)
		}
	}

	switch {
	case a.cache != nil:
		if err := a.cache.Ping(ctx); err != nil {
			healthy = false
			fmt.Fprintf(a.out, "cache: redis unreachable: %v\n", err)
		} else {
			fmt.Fprintf(a.out, "cache: redis %s ok\n", a.cache.Config().Addr())
		}
	case a.cfg.Redis.Enabled:
		healthy = false
		fmt.Fprintln(a.out, "cache: redis unreachable")
	default:
		fmt.Fprintln(a.out, "cache: disabled")
	}

	if !healthy {
		return errUnhealthy
	}
	return nil
}
