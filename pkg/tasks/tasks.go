// Package tasks implements the task-queue surface of the archival storage
// service: searching the catalog of queued and completed tasks, retrieving
// task logs, and submitting new tasks.
//
// Tasks are the underlying operations of the service. Most are queued
// automatically after actions such as uploading a file or modifying item
// metadata, but they can also be submitted explicitly with a Command.
//
// Search supports cursor-based pagination: each response may carry an opaque
// cursor token, and the caller feeds it back into the next call until the
// server omits it. SearchPages drives that loop for you.
package tasks

import "fmt"

// Command is one of the task commands understood by the service. The set of
// implementations is closed apart from CustomCommand, the caller-constructed
// escape hatch. Each command renders a wire name and an argument mapping for
// task submission.
type Command interface {
	// Name returns the wire name of the command, e.g. "derive.php".
	Name() string

	// Args returns the argument mapping included with the submission
	// payload.
	Args() map[string]string

	isCommand()
}

// ArchiveCommand schedules an archive task. Its arguments are undocumented.
type ArchiveCommand struct{}

func (ArchiveCommand) Name() string            { return "archive.php" }
func (ArchiveCommand) Args() map[string]string { return map[string]string{} }
func (ArchiveCommand) isCommand()              {}

// BookOpCommand performs book-related operations. Each operation is a
// numeral associated with some argument; the available operations are
// undocumented.
type BookOpCommand struct {
	Operations map[int]string
}

func (c BookOpCommand) Name() string { return "book_op.php" }

func (c BookOpCommand) Args() map[string]string {
	args := make(map[string]string, len(c.Operations))
	for op, val := range c.Operations {
		args[fmt.Sprintf("op%d", op)] = val
	}
	return args
}

func (BookOpCommand) isCommand() {}

// BupCommand backs up the primary copy of the item to its secondary server.
// Usually unnecessary, since every task performs this backup on completion.
type BupCommand struct{}

func (BupCommand) Name() string            { return "bup.php" }
func (BupCommand) Args() map[string]string { return map[string]string{} }
func (BupCommand) isCommand()              {}

// DeleteCommand deletes the item and all of its files. This cannot be
// reversed.
type DeleteCommand struct{}

func (DeleteCommand) Name() string            { return "delete.php" }
func (DeleteCommand) Args() map[string]string { return map[string]string{} }
func (DeleteCommand) isCommand()              {}

// DeriveCommand queues a derive on the item, producing secondary files from
// the uploaded originals. May take a long time to complete.
type DeriveCommand struct {
	// RemoveDerived names previously-derived files to remove before the
	// derive runs. Wildcards permitted using `*`. Files originally uploaded
	// to the item are never deleted even if their names match.
	RemoveDerived string
}

func (c DeriveCommand) Name() string { return "derive.php" }

func (c DeriveCommand) Args() map[string]string {
	return map[string]string{"remove_derived": c.RemoveDerived}
}

func (DeriveCommand) isCommand() {}

// FixerCommand runs a miscellaneous correction operation. Valid arguments
// are undocumented.
type FixerCommand struct {
	Arguments map[string]string
}

func (c FixerCommand) Name() string            { return "fixer.php" }
func (c FixerCommand) Args() map[string]string { return cloneArgs(c.Arguments) }
func (FixerCommand) isCommand()                {}

// MakeDarkCommand darks an item, making it unavailable to any user
// including the owner and the service's own subsystems.
type MakeDarkCommand struct {
	// Comment is a reasonable explanation for why the item is being darked.
	Comment string
}

func (c MakeDarkCommand) Name() string { return "make_dark.php" }

func (c MakeDarkCommand) Args() map[string]string {
	return map[string]string{"comment": c.Comment}
}

func (MakeDarkCommand) isCommand() {}

// MakeUndarkCommand makes a previously darked item available again.
type MakeUndarkCommand struct {
	Comment string
}

func (c MakeUndarkCommand) Name() string { return "make_undark.php" }

func (c MakeUndarkCommand) Args() map[string]string {
	return map[string]string{"comment": c.Comment}
}

func (MakeUndarkCommand) isCommand() {}

// ModifyXMLCommand schedules a modify_xml task. Its arguments are
// undocumented.
type ModifyXMLCommand struct{}

func (ModifyXMLCommand) Name() string            { return "modify_xml.php" }
func (ModifyXMLCommand) Args() map[string]string { return map[string]string{} }
func (ModifyXMLCommand) isCommand()              {}

// RenameCommand attempts to rename the item's identifier. If the new
// identifier collides with an existing item the server responds with a
// 409 Conflict.
type RenameCommand struct {
	NewIdentifier string
}

func (c RenameCommand) Name() string { return "rename.php" }

func (c RenameCommand) Args() map[string]string {
	return map[string]string{"new_identifier": c.NewIdentifier}
}

func (RenameCommand) isCommand() {}

// CustomCommand is a caller-constructed command not covered by the typed
// variants. Wildcards are permitted in the name using any number of `*`
// or `%` when the command is used as a search filter.
type CustomCommand struct {
	CommandName string
	Arguments   map[string]string
}

func (c CustomCommand) Name() string            { return c.CommandName }
func (c CustomCommand) Args() map[string]string { return cloneArgs(c.Arguments) }
func (CustomCommand) isCommand()                {}

func cloneArgs(args map[string]string) map[string]string {
	out := make(map[string]string, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
