package cli

import (
	"time"

	"github.com/alexanderramin/cadence/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Activities service.ActivityService
	CheckIn    service.CheckInService
	Analytics  service.AnalyticsService
	Profile    service.ProfileService
	Covers     service.CoverService
	Import     service.ImportService

	// Now reads the wall clock. Nil means time.Now.
	Now func() time.Time
	// Interactive is set when stdin and stdout are terminals.
	Interactive bool
	// TrendDays and HeatDays size the insights windows. Zero selects the
	// service defaults.
	TrendDays int
	HeatDays  int
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cadence",
		Short:         "Recurring activity tracker with streaks and progress analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newActivityCmd(app),
		newMarkCmd(app),
		newUnmarkCmd(app),
		newToggleCmd(app),
		newSkipCmd(app),
		newUnskipCmd(app),
		newNoteCmd(app),
		newStatusCmd(app),
		newInsightsCmd(app),
		newWindowCmd(app),
		newDueCmd(app),
		newCheckInCmd(app),
		newCoverCmd(app),
		newProfileCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
