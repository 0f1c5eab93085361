// Package cli is the command line presentation layer over the ledger store.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/infrastructure/clock"
	"github.com/iho/debtnet/internal/usecase"
)

// ErrNotSaved is returned when the ledger could not be written after a command.
var ErrNotSaved = errors.New("ledger changes were not saved")

// Options configures presentation.
type Options struct {
	CurrencySymbol string
	UpcomingWindow time.Duration
	RecentLimit    int
	Clock          usecase.Clock
	// Migrator is nil for backends without a schema.
	Migrator Migrator
}

type runner struct {
	svc     LedgerService
	opts    Options
	format  Formatter
	jsonOut bool
}

// NewRootCommand builds the debtnet command tree over svc.
func NewRootCommand(svc LedgerService, opts Options) *cobra.Command {
	if opts.UpcomingWindow <= 0 {
		opts.UpcomingWindow = usecase.DefaultUpcomingWindow
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = usecase.DefaultRecentLimit
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	r := &runner{
		svc:    svc,
		opts:   opts,
		format: Formatter{Currency: opts.CurrencySymbol},
	}

	rootCmd := &cobra.Command{
		Use:           "debtnet",
		Short:         "Personal debt ledger",
		Long:          `Track money owed to you and by you, with due dates, interest and repayments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return r.ensureSaved(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&r.jsonOut, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(
		r.addCmd(),
		r.editCmd(),
		r.deleteCmd(),
		r.payCmd(),
		r.toggleCmd(),
		r.clearCmd(),
		r.listCmd(),
		r.showCmd(),
		r.statsCmd(),
		r.overdueCmd(),
		r.upcomingCmd(),
		r.categoriesCmd(),
		r.recentCmd(),
		r.checkCmd(),
		r.migrateCmd(),
	)

	return rootCmd
}

// ensureSaved retries a failed write once more before reporting it.
func (r *runner) ensureSaved(cmd *cobra.Command) error {
	if !r.svc.Dirty() {
		return nil
	}
	if err := r.svc.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSaved, err)
	}
	return nil
}

func (r *runner) now() time.Time {
	return r.opts.Clock.Now()
}

// resolve finds a debt by exact ID or unique ID prefix.
func (r *runner) resolve(ref string) (domain.Debt, error) {
	if d, ok := r.svc.Get(ref); ok {
		return d, nil
	}

	var matches []domain.Debt
	needle := strings.ToUpper(strings.TrimSpace(ref))
	if needle != "" {
		for _, d := range r.svc.All() {
			if strings.HasPrefix(strings.ToUpper(d.ID), needle) {
				matches = append(matches, d)
			}
		}
	}

	switch len(matches) {
	case 0:
		return domain.Debt{}, fmt.Errorf("%w: %s", domain.ErrDebtNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Debt{}, fmt.Errorf("id prefix %q matches %d debts", ref, len(matches))
	}
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *runner) writeDebts(w io.Writer, debts []domain.Debt) error {
	now := r.now()
	if r.jsonOut {
		return writeJSON(w, DebtsFromDomain(debts, now))
	}

	if len(debts) == 0 {
		_, err := fmt.Fprintln(w, "No debts.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDIRECTION\tCATEGORY\tAMOUNT\tRATE\tREMAINING\tDUE\tSTATUS")
	for i := range debts {
		d := &debts[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.CounterpartyName,
			directionLabel(d.Direction),
			d.Category.Label(),
			r.format.Amount(d.Principal),
			r.format.Rate(d.InterestRatePercent),
			r.format.Amount(d.RemainingAmount()),
			r.format.Date(d.DueAt),
			statusLabel(d, now),
		)
	}
	return tw.Flush()
}

func (r *runner) writeDebt(w io.Writer, d domain.Debt) error {
	now := r.now()
	if r.jsonOut {
		return writeJSON(w, DebtFromDomain(d, now))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", d.ID)
	fmt.Fprintf(tw, "Counterparty:\t%s\n", d.CounterpartyName)
	fmt.Fprintf(tw, "Direction:\t%s\n", directionLabel(d.Direction))
	fmt.Fprintf(tw, "Category:\t%s\n", d.Category.Label())
	fmt.Fprintf(tw, "Principal:\t%s\n", r.format.Amount(d.Principal))
	if d.HasInterest() {
		fmt.Fprintf(tw, "Interest:\t%s\n", r.format.Rate(d.InterestRatePercent))
		fmt.Fprintf(tw, "With interest:\t%s\n", r.format.Amount(d.AmountWithInterest()))
	}
	fmt.Fprintf(tw, "Paid:\t%s\n", r.format.Amount(d.PaymentsMade))
	fmt.Fprintf(tw, "Remaining:\t%s\n", r.format.Amount(d.RemainingAmount()))
	fmt.Fprintf(tw, "Created:\t%s\n", d.CreatedAt.Format(domain.DueDateLayout))
	fmt.Fprintf(tw, "Due:\t%s\n", r.format.Date(d.DueAt))
	fmt.Fprintf(tw, "Status:\t%s\n", statusLabel(&d, now))
	if d.Note != "" {
		fmt.Fprintf(tw, "Note:\t%s\n", d.Note)
	}
	return tw.Flush()
}
