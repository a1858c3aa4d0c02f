package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

func init() {
	rootCmd.AddCommand(compatCmd)
	rootCmd.AddCommand(balanceCmd)

	compatCmd.Flags().String("mother1", "", "First person's mother")
	compatCmd.Flags().String("mother2", "", "Second person's mother")

	balanceCmd.Flags().String("weekday", "", "Weigh against the ruler of this weekday (0-6 or name)")
	balanceCmd.Flags().Int("hour", -1, "With --weekday, weigh against the ruler of this hour")
}

// ─── compat ─────────────────────────────────────────────────────────────────

var compatCmd = &cobra.Command{
	Use:   "compat NAME1 NAME2",
	Short: "Score the compatibility of two names",
	Long: `Score two names over four weighted layers: daily life, emotional
foundation (needs both mothers for full confidence), numeric resonance and
directional dynamic.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompat,
}

func runCompat(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a, err := calc.ComputeNumericProfile(ctx, args[0], variant)
	if err != nil {
		return err
	}
	b, err := calc.ComputeNumericProfile(ctx, args[1], variant)
	if err != nil {
		return err
	}
	var mothers [2]*domain.NumericProfile
	for i, flag := range []string{"mother1", "mother2"} {
		name, _ := cmd.Flags().GetString(flag)
		if name == "" {
			continue
		}
		p, err := calc.ComputeNumericProfile(ctx, name, variant)
		if err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		mothers[i] = &p
	}

	res, err := calc.ScoreCompatibility(ctx, a, b, mothers[0], mothers[1])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, res)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s (%s, %d) & %s (%s, %d)\n",
		a.SourceText, a.Element, a.Reduction.Number, b.SourceText, b.Element, b.Reduction.Number)
	fmt.Fprintln(w, "LAYER\tPERCENT\tWEIGHT\tDETAIL")
	for _, l := range res.Layers {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", l.Name, l.Percentage, l.Weight, l.Detail)
	}
	fmt.Fprintf(w, "Overall:\t%d\t\t%s, confidence %s\n", res.OverallScore, res.Tier, res.Confidence)
	return w.Flush()
}

// ─── balance ────────────────────────────────────────────────────────────────

var balanceCmd = &cobra.Command{
	Use:   "balance USER_ELEMENT [CONTEXT_ELEMENT]",
	Short: "Measure elemental balance and suggest a remedy",
	Long: `Measure a user element against a context element, or against the
ruler of a weekday (and hour).

Example:
  asrar balance fire water
  asrar balance water --weekday sunday --hour 3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	user, err := domain.ParseElement(args[0])
	if err != nil {
		return err
	}

	var against domain.Element
	wd, _ := cmd.Flags().GetString("weekday")
	switch {
	case len(args) == 2:
		if against, err = domain.ParseElement(args[1]); err != nil {
			return err
		}
	case wd != "":
		weekday, err := parseWeekday(wd)
		if err != nil {
			return err
		}
		if hour, _ := cmd.Flags().GetInt("hour"); hour >= 0 {
			against, err = planetary.HourElement(weekday, hour)
		} else {
			against, err = planetary.DayElement(weekday)
		}
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: give a context element or --weekday", domain.ErrInvalidInput)
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	st, err := calc.ComputeBalance(cmd.Context(), user, against)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, st)
	}
	printBalance(cmd.OutOrStdout(), "Balance", st)
	return nil
}

func printBalance(out io.Writer, title string, st domain.BalanceState) {
	fmt.Fprintf(out, "%s: %s in %s, %s, score %d (%s)\n",
		title, st.UserElement.Title(), st.ContextElement.Title(), st.Relation, st.Score, st.Severity)
	if st.RemedyMaxMinutes == 0 {
		return
	}
	mins := fmt.Sprintf("%d min", st.RemedyMinutes)
	if st.RemedyMaxMinutes != st.RemedyMinutes {
		mins = fmt.Sprintf("%d-%d min", st.RemedyMinutes, st.RemedyMaxMinutes)
	}
	fmt.Fprintf(out, "  Strengthen %s, %s: %s\n", st.DeficitElement.Title(), mins, st.Remedy)
}
