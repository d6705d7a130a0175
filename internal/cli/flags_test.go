package cli

import (
	"testing"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaysValue(t *testing.T) {
	var p domain.WeekdayPattern
	v := newWeekdaysValue(&p)

	require.NoError(t, v.Set("Mon, Wed,fri"))
	assert.Equal(t, domain.WeekdayPattern{true, false, true, false, true, false, false}, p)
	assert.Equal(t, "mon,wed,fri", v.String())
	assert.Equal(t, "weekdays", v.Type())

	require.NoError(t, v.Set("weekends"))
	assert.Equal(t, domain.WeekdayPattern{5: true, 6: true}, p)

	assert.Error(t, v.Set("mon,someday"))
}

func TestDateValue(t *testing.T) {
	var d calendar.Date
	v := newDateValue(&d)
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("2024-02-29"))
	assert.Equal(t, calendar.MustParse("2024-02-29"), d)
	assert.Equal(t, "2024-02-29", v.String())

	assert.Error(t, v.Set("2023-02-29"))
}

func TestDayOrToday(t *testing.T) {
	a := testApp(t)

	assert.Equal(t, testToday, dayOrToday(a, calendar.Date{}))
	assert.Equal(t, calendar.MustParse("2024-03-01"), dayOrToday(a, calendar.MustParse("2024-03-01")))
}

func TestParseBoolArg(t *testing.T) {
	for _, s := range []string{"true", "1", "yes", "on", "T"} {
		v, err := parseBoolArg("x", s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "0", "no", "off"} {
		v, err := parseBoolArg("x", s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := parseBoolArg("strict", "maybe")
	assert.EqualError(t, err, `invalid --strict "maybe": want true or false`)
}

func TestActivityFormValues_ToActivity(t *testing.T) {
	vals := activityFormValues{
		Name:     "  Stretch ",
		Category: "health",
		Priority: "High",
		Start:    "2024-01-01",
		Weekdays: []int{0, 2, 4},
		Target:   " 12 ",
	}

	a, err := vals.toActivity()
	require.NoError(t, err)
	assert.Equal(t, "Stretch", a.Name)
	assert.Equal(t, domain.PriorityHigh, a.Priority)
	assert.Equal(t, calendar.MustParse("2024-01-01"), a.Schedule.StartDate)
	assert.Equal(t, domain.WeekdayPattern{true, false, true, false, true, false, false}, a.Schedule.Pattern)
	assert.Equal(t, 12, a.Schedule.TargetOccurrences)

	vals.Target = "twelve"
	_, err = vals.toActivity()
	assert.ErrorContains(t, err, "invalid target")

	vals.Target, vals.Start = "12", "Jan 1"
	_, err = vals.toActivity()
	assert.ErrorContains(t, err, "invalid date")
}

func TestFormValidators(t *testing.T) {
	assert.Error(t, validateRequired("name")("  "))
	assert.NoError(t, validateRequired("name")("Run"))
	assert.Error(t, validateDate("2024-13-01"))
	assert.NoError(t, validateDate("2024-12-01"))
	assert.Error(t, validateWeekdays(nil))
	assert.NoError(t, validateWeekdays([]int{6}))
	assert.Error(t, validateNonNegativeInt("-1"))
	assert.NoError(t, validateNonNegativeInt("0"))
}

func TestPatternIndexesRoundTrip(t *testing.T) {
	p := domain.WeekdayPattern{false, true, false, false, false, false, true}
	assert.Equal(t, []int{1, 6}, patternIndexes(p))
	assert.Equal(t, p, patternFromIndexes(patternIndexes(p)))
	assert.Equal(t, domain.WeekdayPattern{}, patternFromIndexes([]int{-1, 7}))
}

func TestActivityForm_Builds(t *testing.T) {
	vals := activityFormValues{}
	form := activityForm(&vals)
	require.NotNil(t, form)
	assert.Equal(t, string(domain.PriorityMedium), vals.Priority)
}
