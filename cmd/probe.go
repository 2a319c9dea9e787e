package cmd

import (
	"context"

	"github.com/kpelzel/lms-timecode/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Query the player once and print its timecode",
		Long:  "Log in to the media server, query the player's mode and position once and print the timecode that would be sent",
		Run: func(cmd *cobra.Command, args []string) {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			cfg, err := internal.LoadConfig(config)
			if err != nil {
				logrus.Fatalf("failed to load config: %v", err)
			}
			if err := internal.Probe(context.Background(), cfg, cmd.OutOrStdout()); err != nil {
				logrus.Fatalf("probe failed: %v", err)
			}
		},
	}
)

func init() {
	RootCmd.AddCommand(probeCmd)
}
