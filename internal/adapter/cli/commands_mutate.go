package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/debtnet/internal/domain"
	"github.com/iho/debtnet/internal/usecase"
)

func (r *runner) addCmd() *cobra.Command {
	var direction, category, rate, due, note string

	cmd := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record a new debt",
		Example: `  debtnet add Ivan 5000 --direction to --category friend --due 2026-11-01
  debtnet add Maria 15000 --direction by --rate 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidateCounterpartyName(args[0]); err != nil {
				return err
			}
			principal, err := domain.ParseAmount(args[1])
			if err != nil {
				return err
			}
			interest, err := domain.ParseInterestRate(rate)
			if err != nil {
				return err
			}
			dueAt, err := domain.ParseDueDate(due)
			if err != nil {
				return err
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			dir, err := domain.ParseDirection(direction)
			if err != nil {
				return err
			}

			debt, err := r.svc.Add(cmd.Context(), usecase.DebtInput{
				CounterpartyName:    strings.TrimSpace(args[0]),
				Principal:           principal,
				Note:                note,
				DueAt:               dueAt,
				Category:            cat,
				Direction:           dir,
				InterestRatePercent: interest,
			})
			if err != nil {
				return err
			}

			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), DebtFromDomain(debt, r.now()))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s %s\n",
				debt.ID, debt.CounterpartyName, directionLabel(debt.Direction), r.format.Amount(debt.Principal))
			return err
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.DirectionOwedToUser), "to (owed to me) or by (I owe)")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategoryOther), "personal, business, family, friend or other")
	cmd.Flags().StringVarP(&rate, "rate", "r", "", "Interest rate in percent")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD or RFC3339")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note")

	return cmd
}

func (r *runner) editCmd() *cobra.Command {
	var name, amount, direction, category, rate, due, note string
	var noDue bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debt, err := r.resolve(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				if err := domain.ValidateCounterpartyName(name); err != nil {
					return err
				}
				debt.CounterpartyName = strings.TrimSpace(name)
			}
			if flags.Changed("amount") {
				if debt.Principal, err = domain.ParseAmount(amount); err != nil {
					return err
				}
			}
			if flags.Changed("rate") {
				if debt.InterestRatePercent, err = domain.ParseInterestRate(rate); err != nil {
					return err
				}
			}
			if flags.Changed("due") {
				if debt.DueAt, err = domain.ParseDueDate(due); err != nil {
					return err
				}
			}
			if noDue {
				debt.DueAt = nil
			}
			if flags.Changed("category") {
				if debt.Category, err = domain.ParseCategory(category); err != nil {
					return err
				}
			}
			if flags.Changed("direction") {
				if debt.Direction, err = domain.ParseDirection(direction); err != nil {
					return err
				}
			}
			if flags.Changed("note") {
				debt.Note = note
			}

			if err := r.svc.Update(cmd.Context(), debt); err != nil {
				return err
			}

			updated, _ := r.svc.Get(debt.ID)
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), DebtFromDomain(updated, r.now()))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Counterparty name")
	cmd.Flags().StringVar(&amount, "amount", "", "Principal amount")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "to (owed to me) or by (I owe)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&rate, "rate", "r", "", "Interest rate in percent")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD or RFC3339")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the due date")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Free-form note")
	cmd.MarkFlagsMutuallyExclusive("due", "no-due")

	return cmd
}

func (r *runner) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a debt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debt, err := r.resolve(args[0])
			if err != nil {
				return err
			}
			if err := r.svc.Delete(cmd.Context(), debt.ID); err != nil {
				return err
			}
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": debt.ID})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", debt.ID, debt.CounterpartyName)
			return err
		},
	}
}

func (r *runner) payCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "pay ID [AMOUNT]",
		Short: "Record a repayment",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debt, err := r.resolve(args[0])
			if err != nil {
				return err
			}

			remaining := debt.RemainingAmount()
			var amount decimal.Decimal
			switch {
			case full && len(args) == 2:
				return errors.New("pass either AMOUNT or --full")
			case full:
				amount = remaining
			case len(args) == 2:
				if amount, err = domain.ParsePayment(args[1], remaining); err != nil {
					return err
				}
			default:
				return errors.New("AMOUNT is required unless --full is set")
			}

			if err := r.svc.ApplyPayment(cmd.Context(), debt.ID, amount); err != nil {
				return err
			}

			updated, _ := r.svc.Get(debt.ID)
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), DebtFromDomain(updated, r.now()))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Paid %s to %s, remaining %s\n",
				r.format.Amount(amount), updated.ID, r.format.Amount(updated.RemainingAmount()))
			return err
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Pay the whole remaining amount")

	return cmd
}

func (r *runner) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a debt settled, or reopen a settled one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debt, err := r.resolve(args[0])
			if err != nil {
				return err
			}
			if err := r.svc.ToggleSettled(cmd.Context(), debt.ID); err != nil {
				return err
			}

			updated, _ := r.svc.Get(debt.ID)
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), DebtFromDomain(updated, r.now()))
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.ID, statusLabel(&updated, r.now()))
			return err
		},
	}
}

func (r *runner) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every debt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the ledger without --yes")
			}
			count := len(r.svc.All())
			if err := r.svc.ClearAll(cmd.Context()); err != nil {
				return err
			}
			if r.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"cleared": count})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d debts\n", count)
			return err
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting everything")

	return cmd
}
