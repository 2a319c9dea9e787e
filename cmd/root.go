package cmd

import (
	"os"

	"github.com/kpelzel/lms-timecode/internal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debug  bool
	config string

	RootCmd = &cobra.Command{
		Use:   "lms-timecode",
		Short: "send art-net timecode for a media server player",
		Long:  "poll a media server player's playback position and send it as art-net timecode",
		Run: func(cmd *cobra.Command, args []string) {
			if err := internal.StartBridge(debug, config); err != nil {
				logrus.Fatalf("failed to run bridge: %v", err)
			}
		},
	}
)

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logrus.Errorf("failed to execute command: %v", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debugging")
	RootCmd.PersistentFlags().StringVarP(&config, "config", "c", "config.yaml", "config file location")
}
