// Package task holds the CLI commands for the task-queue surface: search,
// log retrieval, and submission.
package task

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/archivetools/petabox/internal/cmd/base"
	"github.com/archivetools/petabox/pkg/archive"
	"github.com/archivetools/petabox/pkg/tasks"
)

// SearchCommand searches the task queue.
type SearchCommand struct {
	*base.Command

	flagIdentifier string
	flagTaskID     int64
	flagServer     string
	flagCmd        string
	flagSubmitter  string
	flagPriority   string
	flagState      string
	flagAfter      string
	flagBefore     string
	flagCatalog    bool
	flagHistory    bool
	flagNoSummary  bool
	flagLimit      int
	flagAll        bool
}

func (c *SearchCommand) Synopsis() string {
	return "Search the task queue"
}

func (c *SearchCommand) Help() string {
	return `Usage: petabox task-search [options]

  Searches the task queue. All supplied filters are AND-combined by the
  server. Filters accepting strings allow * and % wildcards.

  With -all, every page of results is fetched by following the pagination
  cursor; otherwise only the first page is printed.

Options:

  -config=<path>       HCL config file
  -identifier=<id>     Filter by item identifier
  -task-id=<n>         Filter by task id
  -server=<name>       Filter by server name
  -cmd=<name>          Filter by command name, e.g. derive.php
  -submitter=<email>   Filter by submitting user
  -priority=<n>        Filter by priority
  -state=<name>        Filter by state: queued, running, error, paused
  -after=<datetime>    Tasks submitted after the given date/time
  -before=<datetime>   Tasks submitted before the given date/time
  -catalog             Include the catalog of active tasks
  -history             Include the history of completed tasks
  -no-summary          Omit the summary counts
  -limit=<n>           Results per page (max 500)
  -all                 Follow the cursor through every page
`
}

func (c *SearchCommand) Run(args []string) int {
	fs := flag.NewFlagSet("task-search", flag.ContinueOnError)
	c.ConfigFlags(fs)
	fs.StringVar(&c.flagIdentifier, "identifier", "", "")
	fs.Int64Var(&c.flagTaskID, "task-id", -1, "")
	fs.StringVar(&c.flagServer, "server", "", "")
	fs.StringVar(&c.flagCmd, "cmd", "", "")
	fs.StringVar(&c.flagSubmitter, "submitter", "", "")
	fs.StringVar(&c.flagPriority, "priority", "", "")
	fs.StringVar(&c.flagState, "state", "", "")
	fs.StringVar(&c.flagAfter, "after", "", "")
	fs.StringVar(&c.flagBefore, "before", "", "")
	fs.BoolVar(&c.flagCatalog, "catalog", false, "")
	fs.BoolVar(&c.flagHistory, "history", false, "")
	fs.BoolVar(&c.flagNoSummary, "no-summary", false, "")
	fs.IntVar(&c.flagLimit, "limit", 50, "")
	fs.BoolVar(&c.flagAll, "all", false, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, creds, err := c.ClientConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	client, err := tasks.NewClient(cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	req, err := c.buildRequest(creds)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	if c.flagAll {
		pages := 0
		err = client.SearchPages(ctx, req, func(page *tasks.SearchResponse) error {
			pages++
			c.printPage(page)
			return nil
		})
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		c.UI.Info(fmt.Sprintf("fetched %d page(s)", pages))
		return 0
	}

	page, err := client.Search(ctx, req, "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.printPage(page)
	if page.Cursor != "" {
		c.UI.Info("more results available; re-run with -all to fetch every page")
	}
	return 0
}

func (c *SearchCommand) buildRequest(creds *archive.Credentials) (*tasks.SearchRequest, error) {
	req := tasks.NewSearchRequest().
		WithCredentials(creds).
		WithCategories(!c.flagNoSummary, c.flagCatalog, c.flagHistory).
		WithLimit(c.flagLimit)

	if c.flagIdentifier != "" {
		req.WithFilter(tasks.FilterIdentifier(c.flagIdentifier))
	}
	if c.flagTaskID >= 0 {
		req.WithFilter(tasks.FilterTaskID(c.flagTaskID))
	}
	if c.flagServer != "" {
		req.WithFilter(tasks.FilterServer(c.flagServer))
	}
	if c.flagCmd != "" {
		req.WithFilter(tasks.FilterCommandName(c.flagCmd))
	}
	if c.flagSubmitter != "" {
		req.WithFilter(tasks.FilterSubmitter(c.flagSubmitter))
	}
	if c.flagPriority != "" {
		priority, err := strconv.Atoi(c.flagPriority)
		if err != nil {
			return nil, fmt.Errorf("invalid -priority value: %w", err)
		}
		req.WithFilter(tasks.FilterPriority(priority))
	}
	if c.flagState != "" {
		status, err := parseState(c.flagState)
		if err != nil {
			return nil, err
		}
		req.WithFilter(tasks.FilterState(status))
	}
	if c.flagAfter != "" {
		normalized, err := tasks.NormalizeSubmitTime(c.flagAfter)
		if err != nil {
			return nil, fmt.Errorf("invalid -after value: %w", err)
		}
		req.WithFilter(tasks.FilterSubmittedAfter(normalized))
	}
	if c.flagBefore != "" {
		normalized, err := tasks.NormalizeSubmitTime(c.flagBefore)
		if err != nil {
			return nil, fmt.Errorf("invalid -before value: %w", err)
		}
		req.WithFilter(tasks.FilterSubmittedBefore(normalized))
	}

	return req, nil
}

func (c *SearchCommand) printPage(page *tasks.SearchResponse) {
	if page.Summary != nil {
		c.UI.Output(fmt.Sprintf("summary: queued=%d running=%d error=%d paused=%d",
			page.Summary.Queued, page.Summary.Running,
			page.Summary.Error, page.Summary.Paused))
	}
	for _, entry := range page.Catalog {
		c.UI.Output(fmt.Sprintf("%-10d %-8s %-20s %s",
			entry.TaskID, entry.Status, entry.Cmd, entry.Identifier))
	}
	for _, entry := range page.History {
		c.UI.Output(fmt.Sprintf("%-10d %-8s %-20s %s",
			entry.TaskID, "done", entry.Cmd, entry.Identifier))
	}
}

func parseState(name string) (tasks.Status, error) {
	switch strings.ToLower(name) {
	case "queued":
		return tasks.StatusQueued, nil
	case "running":
		return tasks.StatusRunning, nil
	case "error":
		return tasks.StatusError, nil
	case "paused":
		return tasks.StatusPaused, nil
	default:
		return 0, fmt.Errorf("unknown state %q (want queued, running, error, or paused)", name)
	}
}
