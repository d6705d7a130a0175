package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// weekdaysValue is a pflag.Value accepting "mon,wed,fri", "weekdays",
// "weekends" or "daily".
type weekdaysValue struct {
	pattern *domain.WeekdayPattern
}

var _ pflag.Value = (*weekdaysValue)(nil)

func newWeekdaysValue(p *domain.WeekdayPattern) *weekdaysValue {
	return &weekdaysValue{pattern: p}
}

func (v *weekdaysValue) String() string {
	if v.pattern == nil {
		return ""
	}
	return v.pattern.String()
}

func (v *weekdaysValue) Set(s string) error {
	p, err := domain.ParseWeekdays(s)
	if err != nil {
		return err
	}
	*v.pattern = p
	return nil
}

func (v *weekdaysValue) Type() string { return "weekdays" }

// dateValue is a pflag.Value for a YYYY-MM-DD calendar date.
type dateValue struct {
	date *calendar.Date
}

var _ pflag.Value = (*dateValue)(nil)

func newDateValue(d *calendar.Date) *dateValue {
	return &dateValue{date: d}
}

func (v *dateValue) String() string {
	if v.date == nil || v.date.IsZero() {
		return ""
	}
	return v.date.String()
}

func (v *dateValue) Set(s string) error {
	d, err := calendar.Parse(s)
	if err != nil {
		return err
	}
	*v.date = d
	return nil
}

func (v *dateValue) Type() string { return "date" }

// addDateFlag registers a date flag. An unset flag leaves *d zero and is
// resolved against the clock by dayOrToday.
func addDateFlag(cmd *cobra.Command, d *calendar.Date, name, usage string) {
	cmd.Flags().Var(newDateValue(d), name, usage+" (YYYY-MM-DD, default today)")
}

// dayOrToday returns d, or the local calendar date read once from the
// app clock when d is unset.
func dayOrToday(app *App, d calendar.Date) calendar.Date {
	if !d.IsZero() {
		return d
	}
	return calendar.FromTime(app.now())
}

// parseBoolArg accepts the spellings strconv.ParseBool does plus yes/no
// and on/off.
func parseBoolArg(name, s string) (bool, error) {
	switch s {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid --%s %q: want true or false", name, s)
	}
	return v, nil
}
