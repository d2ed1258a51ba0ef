package task

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/tasks"
)

// SubmitCommand queues a new task.
type SubmitCommand struct {
	*base.Command

	flagIdentifier string
	flagCmd        string
	flagPriority   int
	flagComment    string
	flagArgs       argList
}

// argList collects repeatable -arg key=value flags.
type argList map[string]string

func (a argList) String() string { return "" }

func (a argList) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("argument %q is not of the form key=value", value)
	}
	a[key] = val
	return nil
}

func (c *SubmitCommand) Synopsis() string {
	return "Submit a new task"
}

func (c *SubmitCommand) Help() string {
	return `Usage: petabox task-submit [options]

  Queues a new task against an item. Credentials are required.

  Well-known commands (derive, bup, delete, make_dark, make_undark, rename,
  fixer) take their documented arguments via -arg; any other command name is
  passed through as-is.

Options:

  -config=<path>     HCL config file
  -identifier=<id>   Target item identifier (required)
  -cmd=<name>        Command name, e.g. derive.php (required)
  -priority=<n>      Task priority, -10 to 10 (default 0)
  -comment=<text>    Comment for make_dark/make_undark
  -arg key=value     Additional command argument (repeatable)
`
}

func (c *SubmitCommand) Run(args []string) int {
	fs := flag.NewFlagSet("task-submit", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagIdentifier, "identifier", "", "")
	fs.StringVar(&c.flagCmd, "cmd", "", "")
	fs.IntVar(&c.flagPriority, "priority", 0, "")
	fs.StringVar(&c.flagComment, "comment", "", "")
	c.flagArgs = argList{}
	fs.Var(c.flagArgs, "arg", "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if c.flagIdentifier == "" || c.flagCmd == "" {
		c.UI.Error("both -identifier and -cmd are required")
		return 1
	}

	cfg, creds, err := c.ClientConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if creds == nil {
		c.UI.Error("credentials are required to submit tasks")
		return 1
	}

	client, err := tasks.NewClient(cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	req := tasks.NewSubmitRequest(c.flagIdentifier, c.command()).
		WithCredentials(creds).
		WithPriority(c.flagPriority)

	resp, err := client.Submit(context.Background(), req)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if !resp.Success {
		c.UI.Error("task submission was not successful")
		return 1
	}
	c.UI.Info(fmt.Sprintf("queued task %d (%s)", resp.Value.TaskID, resp.Value.Log))
	return 0
}

// command maps the -cmd flag to the typed command set, falling back to a
// custom command for unrecognized names.
func (c *SubmitCommand) command() tasks.Command {
	switch strings.TrimSuffix(c.flagCmd, ".php") {
	case "archive":
		return tasks.ArchiveCommand{}
	case "bup":
		return tasks.BupCommand{}
	case "delete":
		return tasks.DeleteCommand{}
	case "derive":
		return tasks.DeriveCommand{RemoveDerived: c.flagArgs["remove_derived"]}
	case "fixer":
		return tasks.FixerCommand{Arguments: c.flagArgs}
	case "make_dark":
		return tasks.MakeDarkCommand{Comment: c.flagComment}
	case "make_undark":
		return tasks.MakeUndarkCommand{Comment: c.flagComment}
	case "modify_xml":
		return tasks.ModifyXMLCommand{}
	case "rename":
		return tasks.RenameCommand{NewIdentifier: c.flagArgs["new_identifier"]}
	default:
		return tasks.CustomCommand{CommandName: c.flagCmd, Arguments: c.flagArgs}
	}
}
