package main

import "github.com/kpelzel/lms-timecode/cmd"

func main() {
	cmd.Execute()
}
