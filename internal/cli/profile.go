package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/numerology"
)

func init() {
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(elementCmd)
	rootCmd.AddCommand(variantsCmd)

	profileCmd.Flags().StringP("mother", "m", "", "Mother's name, for the combined profile")
	profileCmd.Flags().StringP("birth", "b", "", "Birth date (YYYY-MM-DD), for the life path")
}

// ─── profile ────────────────────────────────────────────────────────────────

var profileCmd = &cobra.Command{
	Use:   "profile NAME...",
	Short: "Compute the numeric profile of a name",
	Long: `Sum the abjad values of a name and derive its reduced number, element,
burj, planet and core numbers. Words are joined with spaces.

Example:
  asrar profile محمد
  asrar profile علي --mother فاطمة --birth 2000-01-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	mother, _ := cmd.Flags().GetString("mother")
	birthStr, _ := cmd.Flags().GetString("birth")
	birth, err := parseBirth(birthStr)
	if err != nil {
		return err
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	name := strings.Join(args, " ")

	prof, err := calc.ComputeNumericProfile(ctx, name, variant)
	if err != nil {
		return err
	}
	if birth != nil {
		if prof, err = numerology.WithLifePath(prof, *birth); err != nil {
			return err
		}
	}
	var comb *domain.NumericProfile
	if mother != "" {
		c, err := calc.CombinedProfile(ctx, name, mother, variant)
		if err != nil {
			return err
		}
		comb = &c
	}

	if jsonOut {
		return printJSON(cmd, map[string]interface{}{"profile": prof, "combined": comb})
	}
	out := cmd.OutOrStdout()
	printProfile(out, prof)
	if comb != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Combined with mother:")
		printProfile(out, *comb)
	}
	return nil
}

func printProfile(out io.Writer, p domain.NumericProfile) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s (%s)\n", p.SourceText, p.Variant)
	fmt.Fprintf(w, "Letters:\t%d\n", p.LetterCount)
	fmt.Fprintf(w, "Total:\t%d\n", p.RawTotal)
	fmt.Fprintf(w, "Reduced:\t%s\n", reductionLine(p.Reduction))
	q := element.QualityOf(p.Element)
	fmt.Fprintf(w, "Element:\t%s (%s, %s)\n", p.Element.Title(), q.Arabic, q.Temperament())
	fmt.Fprintf(w, "Burj:\t%s (%s)\n", p.Burj.Name, p.Burj.Arabic)
	fmt.Fprintf(w, "Planet:\t%s\n", p.Planet.Title())
	fmt.Fprintf(w, "Soul urge:\t%s\n", reductionLine(p.Numbers.SoulUrge))
	fmt.Fprintf(w, "Personality:\t%s\n", reductionLine(p.Numbers.Personality))
	if p.Numbers.LifePath != nil {
		fmt.Fprintf(w, "Life path:\t%s\n", reductionLine(*p.Numbers.LifePath))
	}
	fmt.Fprintf(w, "Letter elements:\t%s (dominant %s)\n", letterCounts(p.LetterElements), p.DominantLetters.Title())
	w.Flush()
}

func reductionLine(r domain.Reduction) string {
	if r.Empty {
		return "-"
	}
	s := strconv.Itoa(r.Number)
	if len(r.Chain) > 1 {
		s += "  (" + formatChain(r.Chain) + ")"
	}
	if r.Master {
		s += "  master"
	}
	if r.HasKarmicDebt() {
		s += fmt.Sprintf("  karmic debt %v", r.KarmicDebt)
	}
	return s
}

func letterCounts(m map[domain.Element]int) string {
	parts := make([]string, 0, 4)
	for _, e := range domain.Elements() {
		parts = append(parts, fmt.Sprintf("%s %d", e, m[e]))
	}
	return strings.Join(parts, ", ")
}

// ─── batch ──────────────────────────────────────────────────────────────────

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Profile one name per line of FILE (- for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	var texts []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read names: %w", err)
	}

	calc, err := newCalculator()
	if err != nil {
		return err
	}
	results := calc.ProfileBatch(cmd.Context(), texts, variant)
	if jsonOut {
		return printJSON(cmd, results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTOTAL\tREDUCED\tELEMENT\tPLANET")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s\terror: %s\t\t\t\n", r.Text, r.Error)
			continue
		}
		p := r.Profile
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", r.Text, p.RawTotal, p.Reduction.Number, p.Element, p.Planet)
	}
	return w.Flush()
}

// ─── element ────────────────────────────────────────────────────────────────

var elementCmd = &cobra.Command{
	Use:   "element TOTAL",
	Short: "Classify a raw total into its element",
	Args:  cobra.ExactArgs(1),
	RunE:  runElement,
}

func runElement(cmd *cobra.Command, args []string) error {
	total, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: total must be an integer", domain.ErrInvalidInput)
	}
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	e := calc.ClassifyElement(total)
	q := element.QualityOf(e)
	if jsonOut {
		return printJSON(cmd, map[string]interface{}{
			"total":     total,
			"remainder": element.Remainder(total),
			"element":   e,
			"quality":   q,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d mod 4 = %d → %s (%s, %s)\n",
		total, element.Remainder(total)%4, e.Title(), q.Arabic, q.Temperament())
	return nil
}

// ─── variants ───────────────────────────────────────────────────────────────

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List letter tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := newCalculator()
		if err != nil {
			return err
		}
		vs := calc.Variants()
		if jsonOut {
			return printJSON(cmd, vs)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tLETTERS\tDESCRIPTION")
		for _, v := range vs {
			name := v.Name
			if v.Default {
				name += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, v.Version, v.Letters, v.Description)
		}
		return w.Flush()
	},
}
