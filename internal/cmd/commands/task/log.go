package task

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/tasks"
)

// LogCommand retrieves the plaintext log of a single task.
type LogCommand struct {
	*base.Command
}

func (c *LogCommand) Synopsis() string {
	return "Retrieve the log of a task"
}

func (c *LogCommand) Help() string {
	return `Usage: petabox task-log [options] <task-id>

  Retrieves the plaintext log of the given task. Task logs are only
  available to the owner of the associated item or to privileged users, so
  credentials are required.

Options:

  -config=<path>   HCL config file
`
}

func (c *LogCommand) Run(args []string) int {
	fs := flag.NewFlagSet("task-log", flag.ContinueOnError)
	c.ConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		c.UI.Error("exactly one task id is required")
		return 1
	}
	taskID, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid task id %q", fs.Arg(0)))
		return 1
	}

	cfg, creds, err := c.ClientConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if creds == nil {
		c.UI.Error("credentials are required to read task logs")
		return 1
	}

	client, err := tasks.NewClient(cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	log, err := client.Log(context.Background(), taskID, creds, "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(log)
	return 0
}
