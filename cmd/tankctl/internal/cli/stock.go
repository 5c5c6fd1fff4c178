package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/tankops/internal/inventory"
	"github.com/MrJamesThe3rd/tankops/internal/ledger"
)

type stockView struct {
	TankID     uuid.UUID        `json:"tank_id"`
	Liters     decimal.Decimal  `json:"liters"`
	Source     inventory.Source `json:"source"`
	Baseline   decimal.Decimal  `json:"baseline"`
	BaselineAt *time.Time       `json:"baseline_at,omitempty"`
	Delivered  decimal.Decimal  `json:"delivered"`
	Sold       decimal.Decimal  `json:"sold"`
	Clamped    bool             `json:"clamped"`
	AsOf       time.Time        `json:"as_of"`
}

func toStockView(s *inventory.Stock) stockView {
	if s == nil {
		return stockView{}
	}

	return stockView{
		TankID:     s.TankID,
		Liters:     s.Liters,
		Source:     s.Source,
		Baseline:   s.Baseline,
		BaselineAt: s.BaselineAt,
		Delivered:  s.Delivered,
		Sold:       s.Sold,
		Clamped:    s.Clamped,
		AsOf:       s.AsOf,
	}
}

func printStock(w io.Writer, s stockView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "tank\t%s\n", s.TankID)
	fmt.Fprintf(tw, "stock\t%s L\n", s.Liters)
	fmt.Fprintf(tw, "source\t%s\n", s.Source)
	fmt.Fprintf(tw, "baseline\t%s L\n", s.Baseline)
	fmt.Fprintf(tw, "delivered\t+%s L\n", s.Delivered)
	fmt.Fprintf(tw, "sold\t-%s L\n", s.Sold)

	if s.Clamped {
		fmt.Fprintf(tw, "note\tcomputed stock was negative, reported as 0\n")
	}
}

func NewStockCommand(opts *RootOptions) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "stock <tank-id>",
		Short: "Show the reconciled stock of a tank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tankID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid tank id %q", args[0])
			}

			var at time.Time
			if asOf != "" {
				if at, err = time.Parse(time.RFC3339, asOf); err != nil {
					return fmt.Errorf("invalid --as-of %q: want RFC 3339", asOf)
				}
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var stock *inventory.Stock
			if at.IsZero() {
				stock, err = a.inventory.CurrentStock(cmd.Context(), tankID)
			} else {
				stock, err = a.inventory.StockAt(cmd.Context(), tankID, at)
			}

			return emit(cmd.OutOrStdout(), opts.Format, toStockView(stock), err, "stock computed", printStock)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "compute stock at this instant (RFC 3339)")

	return cmd
}

func printRemaining(w io.Writer, r ledger.Remaining) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ORDER\tDATE\tPURCHASED\tDELIVERED\tREMAINING")

	for _, o := range r.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.OrderDate.Format(time.DateOnly), o.PurchaseVolume, o.DeliveredVolume, o.Remaining())
	}

	fmt.Fprintf(tw, "total\t\t\t\t%s\n", r.Total)
}

func NewRemainingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remaining <station-id> <product-id>",
		Short: "List purchase orders with volume left, oldest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stationID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid station id %q", args[0])
			}

			productID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[1])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			remaining, err := a.ledger.Remaining(cmd.Context(), stationID, productID)

			return emit(cmd.OutOrStdout(), opts.Format, remaining, err, "remaining volume listed", printRemaining)
		},
	}
}

func printAllocations(w io.Writer, allocs []ledger.Allocation) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ORDER\tVOLUME\tUNIT PRICE")

	for _, a := range allocs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.OrderID, a.Volume, a.UnitPrice)
	}

	tw.Flush()

	fmt.Fprintf(w, "total: %s L costing %s\n", ledger.Volume(allocs), ledger.Cost(allocs).StringFixed(2))
}

func NewAllocationsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "allocations <unload-id>",
		Short: "Show which purchase orders an approved unload drew from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unloadID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid unload id %q", args[0])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			allocs, err := a.ledgerStore.ListAllocations(cmd.Context(), unloadID)
			if allocs == nil {
				allocs = []ledger.Allocation{}
			}

			return emit(cmd.OutOrStdout(), opts.Format, allocs, err, "allocations listed", printAllocations)
		},
	}
}
