package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/kpelzel/lms-timecode/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listenAddr string

	listenCmd = &cobra.Command{
		Use:   "listen",
		Short: "Print art-net timecode packets received on the network",
		Long:  "Listen for art-net timecode packets and print each decoded timecode",
		Run: func(cmd *cobra.Command, args []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err := internal.Listen(ctx, listenAddr, func(tc internal.Timecode) {
				logrus.Infof("timecode: %v", tc)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logrus.Fatalf("failed to listen on %v: %v", listenAddr, err)
			}
		},
	}
)

func init() {
	listenCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":6454", "address to listen on")
	RootCmd.AddCommand(listenCmd)
}
