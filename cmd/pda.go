package cmd

import (
	"fmt"

	"solana-lifecycle/internal/logic/workflow"
	"solana-lifecycle/internal/pda"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var pdaCmd = &cobra.Command{
	Use:   "pda",
	Short: "derive program addresses",
	Long: `Derive a program address from --seed values, or run the built-in
examples against the system program when no seed is given.

Seeds are written as str:<text>, pubkey:<base58>, b58:<base58> or hex:<hex>.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		programFlag, _ := cmd.Flags().GetString("program")
		raw, _ := cmd.Flags().GetStringArray("seed")
		program, err := solana.PublicKeyFromBase58(programFlag)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(raw) == 0 {
			l := workflow.NewDerivePDAs(cmd.Context(), setup())
			l.Program = program
			derivations, err := l.Run()
			if err != nil {
				return err
			}
			for _, d := range derivations {
				fmt.Fprintf(out, "%s %v\n  pda:  %s\n  bump: %d\n", d.Name, d.Seeds, d.Address, d.Bump)
			}
			return nil
		}

		seeds, err := pda.ParseSeeds(raw)
		if err != nil {
			return err
		}
		addr, bump, err := pda.FindAddress(seeds, program)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pda:  %s\nbump: %d\n", addr, bump)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pdaCmd)

	pdaCmd.Flags().String("program", solana.SystemProgramID.String(), "program address")
	pdaCmd.Flags().StringArray("seed", nil, "seed, repeatable")
}
