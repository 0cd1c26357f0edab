package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leap/balance-engine/engine"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Compute hours owed or in surplus for a date range",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	in, err := gather(ctx)
	if err != nil {
		return err
	}

	breakdown, err := engine.ComputeBalance(in.rng.Start, in.rng.End, in.entries, in.schedule, in.ledger)
	if err != nil {
		return err
	}

	fmt.Printf("Period:          %s to %s\n", in.rng.Start, in.rng.End)
	fmt.Printf("Logged hours:    %s\n", breakdown.Logged)
	fmt.Printf("Expected hours:  %s\n", breakdown.Expected)
	fmt.Printf("Leave reduction: %s\n", breakdown.Reduction)
	fmt.Println("--------------------------------")

	switch {
	case breakdown.Balance.IsPositive():
		fmt.Printf("You are owed %s hours.\n", breakdown.Balance)
	case breakdown.Balance.IsNegative():
		fmt.Printf("You owe %s hours.\n", breakdown.Balance.Neg())
	default:
		fmt.Println("You are exactly on track. No hours owed or owing.")
	}
	return nil
}
