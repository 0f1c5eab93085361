package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/usecase"
)

func (r *runner) listCmd() *cobra.Command {
	var direction string
	var archived bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List active debts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if archived {
				debts := r.svc.SettledDebts()
				domain.SortByCreatedDesc(debts)
				return r.writeDebts(cmd.OutOrStdout(), debts)
			}

			var dir domain.Direction
			if direction != "" {
				var err error
				if dir, err = domain.ParseDirection(direction); err != nil {
					return err
				}
			}
			return r.writeDebts(cmd.OutOrStdout(), r.svc.ActiveByDirection(dir))
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "", "Only to (owed to me) or by (I owe)")
	cmd.Flags().BoolVar(&archived, "archived", false, "List settled debts instead")
	cmd.MarkFlagsMutuallyExclusive("direction", "archived")

	return cmd
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one debt in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debt, err := r.resolve(args[0])
			if err != nil {
				return err
			}
			return r.writeDebt(cmd.OutOrStdout(), debt)
		},
	}
}

func (r *runner) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			window := r.opts.UpcomingWindow
			st := r.svc.Statistics(window)
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), StatsFromUsecase(st, window))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Owed to me:\t%s\t(with interest %s)\n",
				r.format.Amount(st.TotalOwedToUser), r.format.Amount(st.TotalOwedToUserWithInterest))
			fmt.Fprintf(tw, "I owe:\t%s\t(with interest %s)\n",
				r.format.Amount(st.TotalOwedByUser), r.format.Amount(st.TotalOwedByUserWithInterest))
			fmt.Fprintf(tw, "Net balance:\t%s\n", r.format.Amount(st.NetBalance))
			fmt.Fprintf(tw, "Outstanding:\t%s\n", r.format.Amount(st.TotalOutstanding))
			fmt.Fprintf(tw, "Settled:\t%s\n", r.format.Amount(st.TotalSettled))
			fmt.Fprintf(tw, "Active debts:\t%d\n", st.ActiveCount)
			fmt.Fprintf(tw, "Settled debts:\t%d\n", st.SettledCount)
			fmt.Fprintf(tw, "Overdue:\t%d\n", st.OverdueCount)
			fmt.Fprintf(tw, "Due within %s:\t%d\n", windowLabel(window), st.UpcomingCount)
			return tw.Flush()
		},
	}
}

func (r *runner) overdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List active debts past their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.writeDebts(cmd.OutOrStdout(), r.svc.OverdueDebts())
		},
	}
}

func (r *runner) upcomingCmd() *cobra.Command {
	var within time.Duration

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List active debts falling due soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if within <= 0 {
				return fmt.Errorf("--within must be positive, got %s", within)
			}
			return r.writeDebts(cmd.OutOrStdout(), r.svc.UpcomingDebts(within))
		},
	}

	cmd.Flags().DurationVar(&within, "within", r.opts.UpcomingWindow, "Look-ahead window")

	return cmd
}

func (r *runner) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Summarise debts per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := r.svc.CategorySummaries()
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), CategoriesFromUsecase(summaries, r.now()))
			}

			if len(summaries) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No debts.")
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tACTIVE\tACTIVE TOTAL\tALL")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n",
					s.Category.Label(), s.ActiveCount, r.format.Amount(s.ActiveTotal), len(s.Debts))
			}
			return tw.Flush()
		},
	}
}

func (r *runner) recentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently added debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			return r.writeDebts(cmd.OutOrStdout(), r.svc.RecentDebts(limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", r.opts.RecentLimit, "Number of debts to show")

	return cmd
}

func (r *runner) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the saved ledger matches the loaded one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := r.svc.CheckConsistency(cmd.Context())
			if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
				return err
			}

			if r.jsonOut {
				if werr := writeJSON(cmd.OutOrStdout(), ConsistencyFromUsecase(report)); werr != nil {
					return werr
				}
				return err
			}

			out := cmd.OutOrStdout()
			if report.Consistent {
				fmt.Fprintf(out, "Consistency check PASSED\n")
			} else {
				fmt.Fprintf(out, "Consistency check FAILED\n")
			}
			fmt.Fprintf(out, "In memory: %d, saved: %d\n", report.InMemory, report.Persisted)
			for _, line := range []struct {
				label string
				ids   []string
			}{
				{"Unsaved", report.Unsaved},
				{"Changed", report.Changed},
				{"Stale", report.Stale},
			} {
				if len(line.ids) > 0 {
					fmt.Fprintf(out, "%s: %s\n", line.label, strings.Join(line.ids, ", "))
				}
			}
			return err
		},
	}
}
