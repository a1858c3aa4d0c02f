package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

func init() {
	rootCmd.AddCommand(hourCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(readingCmd)

	addSolarFlags(hourCmd)
	hourCmd.Flags().String("weekday", "", "Weekday (0-6 or name); with --hour, skips clock lookup")
	hourCmd.Flags().Int("hour", -1, "Hour index 0-23")

	addSolarFlags(readingCmd)
	readingCmd.Flags().StringP("mother", "m", "", "Mother's name")
	readingCmd.Flags().StringP("birth", "b", "", "Birth date (YYYY-MM-DD)")
}

func addSolarFlags(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Instant (RFC 3339, default now)")
	cmd.Flags().String("sunrise", "", "Sunrise of the planetary day (RFC 3339)")
	cmd.Flags().String("sunset", "", "Sunset of the planetary day (RFC 3339)")
	cmd.Flags().String("next-sunrise", "", "Following sunrise (RFC 3339)")
}

// solarFlags reads --at and the optional solar day.
func solarFlags(cmd *cobra.Command) (time.Time, *planetary.SolarDay, error) {
	get := func(name string) (time.Time, bool, error) {
		s, _ := cmd.Flags().GetString(name)
		if s == "" {
			return time.Time{}, false, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%w: --%s must be RFC 3339", domain.ErrInvalidInput, name)
		}
		return t, true, nil
	}

	at, ok, err := get("at")
	if err != nil {
		return at, nil, err
	}
	if !ok {
		at = time.Now()
	}

	var day planetary.SolarDay
	var set int
	for name, dst := range map[string]*time.Time{
		"sunrise": &day.Sunrise, "sunset": &day.Sunset, "next-sunrise": &day.NextSunrise,
	} {
		t, ok, err := get(name)
		if err != nil {
			return at, nil, err
		}
		if ok {
			*dst = t
			set++
		}
	}
	switch set {
	case 0:
		return at, nil, nil
	case 3:
		return at, &day, nil
	default:
		return at, nil, fmt.Errorf("%w: --sunrise, --sunset and --next-sunrise go together", domain.ErrInvalidInput)
	}
}

// ─── hour ───────────────────────────────────────────────────────────────────

var hourCmd = &cobra.Command{
	Use:   "hour",
	Short: "Show the planetary hour",
	Long: `Show the planetary hour now, at --at, or at an explicit --weekday/--hour.

Temporal mode (planetary.mode = "temporal") needs the solar day:
  asrar hour --at 2024-03-10T09:30:00Z \
    --sunrise 2024-03-10T06:00:00Z --sunset 2024-03-10T18:00:00Z \
    --next-sunrise 2024-03-11T06:00:00Z`,
	Args: cobra.NoArgs,
	RunE: runHour,
}

func runHour(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}

	var hr domain.PlanetaryHour
	if wd, _ := cmd.Flags().GetString("weekday"); wd != "" {
		weekday, err := parseWeekday(wd)
		if err != nil {
			return err
		}
		hour, _ := cmd.Flags().GetInt("hour")
		if hr, err = calc.PlanetaryHour(cmd.Context(), weekday, hour); err != nil {
			return err
		}
	} else {
		at, day, err := solarFlags(cmd)
		if err != nil {
			return err
		}
		if hr, err = calc.PlanetaryHourAt(cmd.Context(), at, day); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(cmd, hr)
	}
	printHour(cmd.OutOrStdout(), hr)
	return nil
}

func printHour(out io.Writer, hr domain.PlanetaryHour) {
	info := planetary.InfoOf(hr.Ruler)
	part := "day"
	if hr.Night {
		part = "night"
	}
	fmt.Fprintf(out, "%s, hour %d (%s): %s %s, %s\n",
		time.Weekday(hr.Weekday), hr.HourIndex, part, info.Arabic, hr.Ruler.Title(), info.Element)
	fmt.Fprintf(out, "Day ruler: %s\n", hr.DayRuler.Title())
	if hr.Start != nil && hr.End != nil {
		fmt.Fprintf(out, "From %s to %s (%s)\n",
			hr.Start.Format(time.Kitchen), hr.End.Format(time.Kitchen), hr.Duration().Round(time.Second))
	}
}

// ─── day ────────────────────────────────────────────────────────────────────

var dayCmd = &cobra.Command{
	Use:   "day WEEKDAY",
	Short: "List the 24 planetary hours of a weekday",
	Args:  cobra.ExactArgs(1),
	RunE:  runDay,
}

func runDay(cmd *cobra.Command, args []string) error {
	weekday, err := parseWeekday(args[0])
	if err != nil {
		return err
	}
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	hours, err := calc.PlanetaryDay(cmd.Context(), weekday)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, hours)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s, ruled by %s\n", time.Weekday(weekday), hours[0].DayRuler.Title())
	fmt.Fprintln(w, "HOUR\tRULER\tELEMENT")
	for _, hr := range hours {
		fmt.Fprintf(w, "%d\t%s\t%s\n", hr.HourIndex, hr.Ruler.Title(), planetary.ElementOf(hr.Ruler))
	}
	return w.Flush()
}

// ─── reading ────────────────────────────────────────────────────────────────

var readingCmd = &cobra.Command{
	Use:   "reading NAME...",
	Short: "Profile a name and weigh it against the current planetary hour",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReading,
}

func runReading(cmd *cobra.Command, args []string) error {
	mother, _ := cmd.Flags().GetString("mother")
	birthStr, _ := cmd.Flags().GetString("birth")
	birth, err := parseBirth(birthStr)
	if err != nil {
		return err
	}
	at, day, err := solarFlags(cmd)
	if err != nil {
		return err
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	p := calculator.Person{Name: strings.Join(args, " "), Mother: mother, Birth: birth, Variant: variant}
	r, err := calc.Reading(cmd.Context(), p, at, day)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, r)
	}

	out := cmd.OutOrStdout()
	printProfile(out, r.Profile)
	fmt.Fprintln(out)
	printHour(out, r.Hour)
	fmt.Fprintln(out)
	printBalance(out, "Against the day", r.DayBalance)
	printBalance(out, "Against the hour", r.HourBalance)
	return nil
}
