package commands

import (
	"flag"
	"strings"

	"taskctl/internal/service"
)

// taskFlags are the task form fields settable from the command line.
type taskFlags struct {
	title       optString
	description optString
	status      optString
	priority    optString
	due         optString
}

func (f *taskFlags) register(fs *flag.FlagSet, withTitle bool) {
	*f = taskFlags{}
	if withTitle {
		fs.Var(&f.title, "title", "")
		fs.Var(&f.title, "t", "")
	}
	fs.Var(&f.description, "description", "")
	fs.Var(&f.description, "d", "")
	fs.Var(&f.status, "status", "")
	fs.Var(&f.priority, "priority", "")
	fs.Var(&f.priority, "p", "")
	fs.Var(&f.due, "due", "")
}

func (f *taskFlags) changed() bool {
	return f.title.set || f.description.set || f.status.set || f.priority.set || f.due.set
}

// apply overwrites the fields of in that were given on the command line.
// A due date of "none" clears it.
func (f *taskFlags) apply(in *service.TaskInput) error {
	if f.title.set {
		in.Title = f.title.value
	}
	if f.description.set {
		in.Description = f.description.value
	}
	if f.status.set {
		s, err := service.ParseStatus(f.status.value)
		if err != nil {
			return err
		}
		in.Status = s
	}
	if f.priority.set {
		p, err := service.ParsePriority(f.priority.value)
		if err != nil {
			return err
		}
		in.Priority = p
	}
	if f.due.set {
		if strings.EqualFold(strings.TrimSpace(f.due.value), "none") {
			in.DueDate = service.Date{}
		} else {
			d, err := service.ParseDate(f.due.value)
			if err != nil {
				return err
			}
			in.DueDate = d
		}
	}
	return nil
}
