package cmd

import (
	"fmt"

	"solana-lifecycle/internal/logic/workflow"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "transfer lamports and show balances before and after",
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, _ := cmd.Flags().GetUint64("lamports")
		to, _ := cmd.Flags().GetString("to")

		l := workflow.NewTransfer(cmd.Context(), setup())
		l.Lamports = lamports
		if to != "" {
			receiver, err := solana.PublicKeyFromBase58(to)
			if err != nil {
				return err
			}
			l.Receiver = receiver
		}
		res, err := l.Run()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sender:    %s (%d -> %d)\n", res.Sender, res.Before.Sender, res.After.Sender)
		fmt.Fprintf(out, "receiver:  %s (%d -> %d)\n", res.Receiver, res.Before.Receiver, res.After.Receiver)
		fmt.Fprintf(out, "signature: %s\n", res.Signature)
		return nil
	},
}

var multiTransferCmd = &cobra.Command{
	Use:   "multi-transfer",
	Short: "send three transfers in one transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		lamports, _ := cmd.Flags().GetUint64("lamports")
		withhold, _ := cmd.Flags().GetBool("withhold-signer")

		l := workflow.NewMultiTransfer(cmd.Context(), setup())
		l.Lamports = lamports
		l.WithholdSigner = withhold
		res, err := l.Run()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sender:    %s\n", res.Sender)
		fmt.Fprintf(out, "receiver:  %s\n", res.Receiver)
		fmt.Fprintf(out, "signers:   %v\n", res.Signers)
		fmt.Fprintf(out, "signature: %s\n", res.Signature)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd, multiTransferCmd)

	transferCmd.Flags().Uint64("lamports", workflow.DefaultTransferLamports, "amount to send")
	transferCmd.Flags().String("to", "", "receiver address, a fresh one when empty")
	multiTransferCmd.Flags().Uint64("lamports", workflow.DefaultTransferLamports, "amount per transfer")
	multiTransferCmd.Flags().Bool("withhold-signer", false, "leave the sender key out to show the missing signer error")
}
