package cmd

import (
	"fmt"
	"io"

	"solana-lifecycle/internal/logic/workflow"

	"github.com/spf13/cobra"
)

var feesCmd = &cobra.Command{
	Use:   "fees",
	Short: "attach compute budget instructions to a transfer",
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "fixed unit limit and price",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := workflow.NewComputeBudget(cmd.Context(), setup()).Run()
		if err != nil {
			return err
		}
		printFees(cmd.OutOrStdout(), res)
		return nil
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "unit limit sized from a simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := workflow.NewOptimizeCompute(cmd.Context(), setup())
		if cmd.Flags().Changed("priority-fee") {
			l.PriorityFee, _ = cmd.Flags().GetUint64("priority-fee")
		}
		res, err := l.Run()
		if err != nil {
			return err
		}
		printFees(cmd.OutOrStdout(), res)
		return nil
	},
}

func printFees(out io.Writer, res *workflow.FeeResult) {
	fmt.Fprintf(out, "sender:       %s\n", res.Sender)
	fmt.Fprintf(out, "receiver:     %s\n", res.Receiver)
	if res.RawUnits > 0 {
		fmt.Fprintf(out, "simulated:    %d units\n", res.RawUnits)
	}
	fmt.Fprintf(out, "unit limit:   %d\n", res.UnitLimit)
	fmt.Fprintf(out, "unit price:   %d micro-lamports\n", res.PriorityFee)
	fmt.Fprintf(out, "signature:    %s\n", res.Signature)
}

func init() {
	rootCmd.AddCommand(feesCmd)
	feesCmd.AddCommand(budgetCmd, optimizeCmd)

	optimizeCmd.Flags().Uint64("priority-fee", 1, "micro-lamports per unit, overrides Compute.PriorityFee")
}
