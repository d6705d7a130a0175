package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	formatter.SetColorEnabled(false)
	os.Exit(m.Run())
}

// testToday is the Monday every CLI test runs on.
var testToday = calendar.MustParse("2024-01-08")

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	activities := repository.NewSQLiteActivityRepo(database)
	completions := repository.NewSQLiteCompletionRepo(database)
	covers := repository.NewSQLiteCoverRepo(database)
	profiles := repository.NewSQLiteTrackerProfileRepo(database)
	uow := testutil.NewTestUoW(database)
	locks := service.NewActivityLocks()

	return &App{
		Activities: service.NewActivityService(activities, uow, locks),
		CheckIn:    service.NewCheckInService(completions, uow, locks),
		Analytics:  service.NewAnalyticsService(activities, completions, covers, profiles, locks),
		Profile:    service.NewProfileService(profiles),
		Covers:     service.NewCoverService(activities, covers),
		Import:     service.NewImportService(activities, completions, covers, uow),
		Now: func() time.Time {
			return time.Date(2024, time.January, 8, 9, 30, 0, 0, time.Local)
		},
	}
}

// seedActivity stores a weekday activity starting 2024-01-01 with ten
// occurrences and marks the given days complete.
func seedActivity(t *testing.T, a *App, name string, completed ...string) *domain.Activity {
	t.Helper()
	ctx := context.Background()
	act := testutil.NewTestActivity(name)
	require.NoError(t, a.Activities.Create(ctx, act))
	for _, d := range completed {
		_, err := a.CheckIn.MarkComplete(ctx, app.CheckInRequest{ActivityID: act.ID, Date: calendar.MustParse(d)})
		require.NoError(t, err)
	}
	return act
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	a := testApp(t)

	output, err := executeCmd(t, a)
	require.NoError(t, err)
	assert.Contains(t, output, "cadence")
	assert.Contains(t, output, "activity")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "frobnicate")
	assert.Error(t, err)
}

// --- activity ---

func TestActivityAdd_FromFlags(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "activity", "add",
		"--name", "Morning run", "--start", "2024-01-01", "--days", "mon,wed,fri",
		"--target", "6", "--category", "health", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Created activity Morning run")
	assert.Contains(t, out, "mon,wed,fri ×6 · 2024-01-01 → 2024-01-12")

	list, err := a.Activities.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.PriorityHigh, list[0].Priority)
	assert.Equal(t, "health", list[0].Category)
}

func TestActivityAdd_StartDefaultsToToday(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "activity", "add", "--name", "Read", "--days", "daily", "--target", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-08 → 2024-01-10")
}

func TestActivityAdd_MissingFlags(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "activity", "add", "--name", "Read")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"days", "target"`)
}

func TestActivityAdd_BadWeekday(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "activity", "add", "--name", "Read", "--days", "mon,funday", "--target", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weekday")
}

func TestActivityAdd_EmptyPatternIsInvalidSchedule(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "activity", "add", "--name", "Read", "--days", "", "--target", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	list, err := a.Activities.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list, "an invalid schedule blocks the save")
}

func TestActivityAdd_InteractiveNeedsTerminal(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "activity", "add", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a terminal")
}

func TestActivityList(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, "Run")
	archived := seedActivity(t, a, "Old habit")
	require.NoError(t, a.Activities.Archive(context.Background(), archived.ID))

	out, err := executeCmd(t, a, "activity", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Run")
	assert.NotContains(t, out, "Old habit")

	out, err = executeCmd(t, a, "activity", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Old habit")
}

func TestActivityList_Empty(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "activity", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No activities found.")
}

func TestActivityShow_ByPrefix(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")

	out, err := executeCmd(t, a, "activity", "show", act.DisplayID())
	require.NoError(t, err)
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "Completed 5 of 10 · 6 due so far · 1 missed")
	assert.Contains(t, out, "Streak 5 · best 5")
	assert.Contains(t, out, "Today 2024-01-08: due")
}

func TestActivityShow_TodayFlag(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-01")

	out, err := executeCmd(t, a, "activity", "show", act.ID, "--today", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Today 2024-01-01: done")
	assert.Contains(t, out, "100%")
}

func TestActivityShow_NotFound(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "activity", "show", "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityEdit(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "activity", "edit", act.ID, "--name", "Evening run", "--priority", "LOW")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated activity Evening run")

	got, err := a.Activities.GetByID(context.Background(), act.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening run", got.Name)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, act.Schedule, got.Schedule, "edit leaves the schedule alone")
}

func TestActivityReschedule_KeepsHistory(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-01", "2024-01-02")

	out, err := executeCmd(t, a, "activity", "reschedule", act.ID, "--target", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "mon,tue,wed,thu,fri ×5 · 2024-01-01 → 2024-01-05")

	history, err := a.CheckIn.History(context.Background(), act.ID)
	require.NoError(t, err)
	assert.True(t, history.IsComplete(calendar.MustParse("2024-01-02")))
}

func TestActivityReschedule_NothingToChange(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "activity", "reschedule", act.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestActivityDelete_RequiresArchive(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "activity", "delete", act.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived before deletion")

	_, err = executeCmd(t, a, "activity", "archive", act.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, a, "activity", "delete", act.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted activity Run")

	_, err = a.Activities.GetByID(context.Background(), act.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityDelete_Force(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "activity", "rm", act.ID, "--force")
	require.NoError(t, err)
}

// --- check-in writes ---

func TestMark_DefaultsToToday(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "mark", act.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 2024-01-08: done\n", out)
}

func TestMark_UnplannedDay(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "mark", act.ID, "--date", "2024-01-06")
	require.NoError(t, err)
	assert.Contains(t, out, "not a planned day")
}

func TestMark_StrictWindowRejectsUnplannedDay(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "profile", "set", "--strict", "true")
	require.NoError(t, err)

	_, err = executeCmd(t, a, "mark", act.ID, "--date", "2024-01-06")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDateNotPlanned)
}

func TestMark_BadDate(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "mark", act.ID, "--date", "01/08/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestToggle_Twice(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "toggle", act.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "done")

	out, err = executeCmd(t, a, "toggle", act.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run 2024-01-08: open\n", out)
}

func TestSkipAndUnskip(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "skip", act.ID, "--date", "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Run 2024-01-05: skipped\n", out)

	out, err = executeCmd(t, a, "unskip", act.ID, "--date", "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Run 2024-01-05: open\n", out)
}

func TestUnmark(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-05")

	out, err := executeCmd(t, a, "unmark", act.ID, "--date", "2024-01-05")
	require.NoError(t, err)
	assert.Contains(t, out, "open")
}

func TestNote_SetAndClear(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")
	ctx := context.Background()

	out, err := executeCmd(t, a, "note", act.ID, "--text", "knee felt fine")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved note for Run on 2024-01-08")

	history, err := a.CheckIn.History(ctx, act.ID)
	require.NoError(t, err)
	note, ok := history.Note(testToday)
	require.True(t, ok)
	assert.Equal(t, "knee felt fine", note)

	out, err = executeCmd(t, a, "note", act.ID, "--text", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared note")

	history, err = a.CheckIn.History(ctx, act.ID)
	require.NoError(t, err)
	_, ok = history.Note(testToday)
	assert.False(t, ok)
}

func TestNote_RequiresText(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "note", act.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text")
}

// --- analytics ---

func TestStatus(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, "Run", "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-08")

	out, err := executeCmd(t, a, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "ON TRACK")
	assert.Contains(t, out, "6/10")
	assert.Contains(t, out, "Today 2024-01-08: 1/1 done")
}

func TestStatus_Empty(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No activities yet")
}

func TestInsights(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-01", "2024-01-03")

	out, err := executeCmd(t, a, "insights", act.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "INSIGHTS")
	assert.Contains(t, out, "LAST 7 DAYS")
	assert.Contains(t, out, "LAST 30 DAYS")
	assert.Contains(t, out, "Best Wed (100%)")
}

func TestInsights_WindowSizesFromApp(t *testing.T) {
	a := testApp(t)
	a.TrendDays, a.HeatDays = 3, 14
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "insights", act.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "LAST 3 DAYS")
	assert.Contains(t, out, "LAST 14 DAYS")
}

func TestWindow(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run", "2024-01-05")

	out, err := executeCmd(t, a, "window", act.ID, "--days", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-01-05  Fri")
	assert.Contains(t, out, "2024-01-06  Sat")
	assert.Contains(t, out, "due today")
	assert.Contains(t, out, "2 planned · 1 done · 0 skipped · 0 missed")
}

func TestWindow_NegativeDays(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "window", act.ID, "--days", "-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestWindow_DaysTooLarge(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	_, err := executeCmd(t, a, "window", act.ID, "--days", "9223372036854775807")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.Contains(t, err.Error(), "invalid --days")
}

func TestDue(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, "Run", "2024-01-08")

	out, err := executeCmd(t, a, "due")
	require.NoError(t, err)
	assert.Contains(t, out, "MON JAN 8, 2024")
	assert.Contains(t, out, "1/1 done")

	out, err = executeCmd(t, a, "due", "--today", "2024-01-06")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing planned today.")
}

func TestCheckIn_NonInteractivePrintsList(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "checkin")
	require.NoError(t, err)
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "0/1 done")
}

// --- cover ---

func TestCover_SetAndGet(t *testing.T) {
	a := testApp(t)
	act := seedActivity(t, a, "Run")

	out, err := executeCmd(t, a, "cover", "get", act.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "No cover set for Run")

	_, err = executeCmd(t, a, "cover", "set", act.ID, "images/run.png")
	require.NoError(t, err)

	out, err = executeCmd(t, a, "cover", "get", act.ID)
	require.NoError(t, err)
	assert.Equal(t, "images/run.png\n", out)
}

// --- profile ---

func TestProfile_ShowAndSet(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "On-track tolerance:        2")

	out, err = executeCmd(t, a, "profile", "set", "--tolerance", "0", "--skip-preserves-streak", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "On-track tolerance:        0")
	assert.Contains(t, out, "Skip preserves streak:     no")

	p, err := a.Profile.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, p.OnTrackTolerance)
	assert.False(t, p.SkipPreservesStreak)
	assert.True(t, p.SkipExemptsPenalty)
}

func TestProfile_SetErrors(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "profile", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, err = executeCmd(t, a, "profile", "set", "--strict", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --strict")

	_, err = executeCmd(t, a, "profile", "set", "--tolerance", "-1")
	assert.Error(t, err)
}

// --- import / export ---

const importYAML = `activities:
  - name: Morning run
    category: health
    priority: high
    start_date: 2024-01-01
    weekdays: [mon, tue, wed, thu, fri]
    target_occurrences: 10
    completions: [2024-01-01, 2024-01-02]
    skips: [2024-01-03]
    notes: {2024-01-02: "felt good"}
`

func TestImportThenStatus(t *testing.T) {
	a := testApp(t)
	path := filepath.Join(t.TempDir(), "habits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importYAML), 0o644))

	out, err := executeCmd(t, a, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 activity (2 completions, 1 skips, 1 notes)")

	out, err = executeCmd(t, a, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Morning run")
}

func TestImport_InvalidFileWritesNothing(t *testing.T) {
	a := testApp(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("activities:\n  - name: \"\"\n    weekdays: [mon]\n"), 0o644))

	_, err := executeCmd(t, a, "import", path)
	require.Error(t, err)
	var verr *app.ValidationError
	assert.ErrorAs(t, err, &verr)

	list, err := a.Activities.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExport(t *testing.T) {
	a := testApp(t)
	seedActivity(t, a, "Run", "2024-01-02")

	out, err := executeCmd(t, a, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Run")
	assert.Contains(t, out, "2024-01-02")

	out, err = executeCmd(t, a, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"start_date"`)

	_, err = executeCmd(t, a, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestExport_ToFileRoundTrips(t *testing.T) {
	src := testApp(t)
	seedActivity(t, src, "Run", "2024-01-02", "2024-01-03")
	path := filepath.Join(t.TempDir(), "out.json")

	out, err := executeCmd(t, src, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 activities")

	dst := testApp(t)
	_, err = executeCmd(t, dst, "import", path)
	require.NoError(t, err)

	list, err := dst.Activities.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	history, err := dst.CheckIn.History(context.Background(), list[0].ID)
	require.NoError(t, err)
	assert.True(t, history.IsComplete(calendar.MustParse("2024-01-03")))
}
