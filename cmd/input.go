package cmd

import "time"

// Input contains the flag values of the root command and its subcommands.
type Input struct {
	configPath string
	envFiles   []string
	verbose    bool
	logFormat  string

	workers   int
	maxNodes  int64
	timeLimit time.Duration
	start     int
	seedNN    bool

	output    string
	format    string
	canonical bool
}
