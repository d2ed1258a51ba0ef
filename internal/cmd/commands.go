package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/archivetools/petabox/internal/cmd/base"
	itemcmd "github.com/archivetools/petabox/internal/cmd/commands/item"
	taskcmd "github.com/archivetools/petabox/internal/cmd/commands/task"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	shared := &base.Command{UI: ui, Log: log}

	Commands = map[string]cli.CommandFactory{
		"task-search": func() (cli.Command, error) {
			return &taskcmd.SearchCommand{Command: shared}, nil
		},
		"task-log": func() (cli.Command, error) {
			return &taskcmd.LogCommand{Command: shared}, nil
		},
		"task-submit": func() (cli.Command, error) {
			return &taskcmd.SubmitCommand{Command: shared}, nil
		},
		"upload": func() (cli.Command, error) {
			return &itemcmd.UploadCommand{Command: shared}, nil
		},
		"download": func() (cli.Command, error) {
			return &itemcmd.DownloadCommand{Command: shared}, nil
		},
		"ls": func() (cli.Command, error) {
			return &itemcmd.ListCommand{Command: shared}, nil
		},
		"metadata": func() (cli.Command, error) {
			return &itemcmd.MetadataCommand{Command: shared}, nil
		},
	}
}
