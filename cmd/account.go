package cmd

import (
	"fmt"

	"solana-lifecycle/internal/logic/workflow"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "fund a fresh keypair and show the system account it creates",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := workflow.NewSystemAccount(cmd.Context(), setup()).Run()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "address:  %s\n", res.Address)
		fmt.Fprintf(out, "airdrop:  %s\n", res.Airdrop)
		fmt.Fprintf(out, "owner:    %s\n", res.Account.Owner)
		fmt.Fprintf(out, "lamports: %d\n", res.Account.Lamports)
		return nil
	},
}

var sysvarCmd = &cobra.Command{
	Use:   "sysvar",
	Short: "read the clock, rent and epoch schedule sysvars",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := workflow.NewSysvar(cmd.Context(), setup()).Run()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "clock (%s):\n%s", res.Clock.Account.Address, spew.Sdump(res.Clock.Value))
		fmt.Fprintf(out, "rent (%s):\n%s", res.Rent.Account.Address, spew.Sdump(res.Rent.Value))
		fmt.Fprintf(out, "epoch schedule (%s):\n%s", res.EpochSchedule.Account.Address, spew.Sdump(res.EpochSchedule.Value))
		return nil
	},
}

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "read an executable program account",
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := solana.PublicKeyFromBase58(cmd.Flag("program").Value.String())
		if err != nil {
			return err
		}
		l := workflow.NewProgramAccount(cmd.Context(), setup())
		l.Program = program
		acc, err := l.Run()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "program:    %s\n", acc.Address)
		fmt.Fprintf(out, "owner:      %s\n", acc.Owner)
		fmt.Fprintf(out, "executable: %t\n", acc.Executable)
		fmt.Fprintf(out, "data:       %d bytes\n", len(acc.Data))
		return nil
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "create a Token-2022 mint and the payer's token account",
	RunE: func(cmd *cobra.Command, args []string) error {
		decimals, err := cmd.Flags().GetUint8("decimals")
		if err != nil {
			return err
		}
		l := workflow.NewDataAccount(cmd.Context(), setup())
		l.Decimals = decimals
		res, err := l.Run()
		if res == nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "fee payer:     %s\n", res.Payer)
		fmt.Fprintf(out, "mint:          %s\n", res.Mint)
		fmt.Fprintf(out, "signature:     %s\n", res.Signature)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "token account: %s\n", res.TokenAccount)
		fmt.Fprintf(out, "signature:     %s\n", res.TokenAccountSignature)
		fmt.Fprint(out, spew.Sdump(res.State))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd, sysvarCmd, programCmd, mintCmd)

	programCmd.Flags().String("program", solana.TokenProgramID.String(), "program address")
	mintCmd.Flags().Uint8("decimals", 9, "mint decimals")
}
