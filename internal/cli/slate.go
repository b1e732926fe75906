package cli

import (
	"fmt"

	"github.com/gateixeira/walletmon/internal/adapters/file"
	"github.com/gateixeira/walletmon/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	sendAmount       uint64
	sendFee          uint64
	sendHeight       uint64
	sendParticipants int
)

var sendCmd = &cobra.Command{
	Use:   "send <dest>",
	Short: "Write a new slate to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendParticipants < 2 {
			return wallet.NewError(wallet.KindArgument, "a slate needs at least 2 participants", nil)
		}

		slate := wallet.NewSlate(sendParticipants, sendAmount, sendFee, sendHeight)
		if err := file.NewAdapter().SendTxAsync(args[0], slate); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Slate %s written to %s\n", slate.ID, args[0])
		return nil
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive <path>",
	Short: "Read a slate file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slate, err := file.NewAdapter().ReceiveTxAsync(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), slate)
	},
}

func init() {
	sendCmd.Flags().Uint64Var(&sendAmount, "amount", 0, "amount in base units")
	sendCmd.Flags().Uint64Var(&sendFee, "fee", 0, "fee in base units")
	sendCmd.Flags().Uint64Var(&sendHeight, "height", 0, "current chain height")
	sendCmd.Flags().IntVar(&sendParticipants, "participants", 2, "number of participants")
	rootCmd.AddCommand(sendCmd, receiveCmd)
}
