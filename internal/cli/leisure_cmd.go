package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/todoer/internal/cli/formatter"
	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
)

func newLeisureCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leisure",
		Aliases: []string{"shop"},
		Short:   "Spend leisure points on rewards",
	}
	cmd.AddCommand(
		newLeisureListCmd(e),
		newLeisureAddCmd(e),
		newLeisureRemoveCmd(e),
		newLeisureRedeemCmd(e),
		newLeisurePurchasesCmd(e),
		newLeisureRescheduleCmd(e),
		newLeisureUseCmd(e),
		newLeisureDeletePurchaseCmd(e),
	)
	return cmd
}

// resolveItem matches an item by name (case-insensitive) or ID.
func (e *env) resolveItem(ctx context.Context, ref string) (*domain.LeisureItem, error) {
	items, err := e.app.Leisure.Items(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, strings.TrimSpace(ref)) {
			return it, nil
		}
	}
	return resolveID(ref, items, func(it *domain.LeisureItem) string { return it.ID }, "leisure item")
}

func (e *env) resolvePurchase(ctx context.Context, ref string) (*domain.Purchase, error) {
	list, err := e.app.Leisure.Purchases(ctx)
	if err != nil {
		return nil, err
	}
	return resolveID(ref, list, func(p *domain.Purchase) string { return p.ID }, "purchase")
}

func newLeisureListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the reward catalogue and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			items, err := e.app.Leisure.Items(ctx)
			if err != nil {
				return err
			}
			balance, err := e.app.Leisure.Balance(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLeisureItems(items, balance))
			return nil
		},
	}
}

func newLeisureAddCmd(e *env) *cobra.Command {
	var name, icon, description string
	var cost float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reward to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			item := &domain.LeisureItem{Name: name, Cost: cost, Icon: icon, Description: description}
			if err := e.app.Leisure.AddItem(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s for %s\n", item.Name, formatter.Points(item.Cost))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Reward name")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Cost in points")
	cmd.Flags().StringVar(&icon, "icon", "🎁", "Icon")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cost")
	return cmd
}

func newLeisureRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ITEM",
		Aliases: []string{"rm"},
		Short:   "Remove a reward from the catalogue",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			item, err := e.resolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			if err := e.app.Leisure.DeleteItem(ctx, item.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", item.Name)
			return nil
		},
	}
}

func newLeisureRedeemCmd(e *env) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:     "redeem ITEM",
		Aliases: []string{"buy"},
		Short:   "Buy a reward and schedule when to enjoy it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			when, err := parseDateTime(at, e.now())
			if err != nil {
				return err
			}
			item, err := e.resolveItem(ctx, args[0])
			if err != nil {
				return err
			}
			resp, err := e.app.Leisure.Redeem(ctx, contract.RedeemRequest{ItemID: item.ID, ScheduledAt: when})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Redeemed %s %s for %s. Balance: %s\n",
				resp.Purchase.ItemIcon, resp.Purchase.ItemName,
				resp.Purchase.ScheduledAt.Format("Mon Jan 2 15:04"), formatter.Points(resp.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "When to enjoy it (\"YYYY-MM-DD HH:MM\" or \"HH:MM\")")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newLeisurePurchasesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "purchases",
		Short: "List redeemed rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.app.Leisure.Purchases(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPurchases(list, e.now()))
			return nil
		},
	}
}

func newLeisureRescheduleCmd(e *env) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "reschedule PURCHASE",
		Short: "Move a redeemed reward to another time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			when, err := parseDateTime(at, e.now())
			if err != nil {
				return err
			}
			p, err := e.resolvePurchase(ctx, args[0])
			if err != nil {
				return err
			}
			p, err = e.app.Leisure.Reschedule(ctx, p.ID, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s moved to %s\n", p.ItemName, p.ScheduledAt.Format("Mon Jan 2 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "New time (\"YYYY-MM-DD HH:MM\" or \"HH:MM\")")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newLeisureUseCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "use PURCHASE",
		Short: "Mark a redeemed reward as enjoyed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := e.resolvePurchase(ctx, args[0])
			if err != nil {
				return err
			}
			if p, err = e.app.Leisure.MarkUsed(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enjoy your %s!\n", p.ItemName)
			return nil
		},
	}
}

func newLeisureDeletePurchaseCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete-purchase PURCHASE",
		Aliases: []string{"cancel"},
		Short:   "Delete a purchase record; points are not refunded",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := e.resolvePurchase(ctx, args[0])
			if err != nil {
				return err
			}
			if err := e.app.Leisure.DeletePurchase(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted purchase of %s\n", p.ItemName)
			return nil
		},
	}
}

func newPointsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "points",
		Aliases: []string{"balance"},
		Short:   "Show the leisure point balance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := e.app.Leisure.Balance(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBalance(balance))
			return nil
		},
	}
}
