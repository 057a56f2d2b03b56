// Package cli implements the eventsctl terminal client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"eventeditor/internal/domain"
	"eventeditor/internal/form"
	"eventeditor/internal/services"
)

// ErrUsage is returned for unknown commands and bad arguments.
var ErrUsage = errors.New("usage error")

const usage = `usage: eventsctl <command> [arguments]

commands:
  list                          list all events, newest first
  show <id>                     show one event
  new --type T --date YYYY-MM-DD --title T --speaker S --host H [--published]
                                create an event
  delete [--yes] <id>           delete an event after confirmation
  hash-password                 read a password on stdin and print its
                                EDITOR_PASSWORD_HASH value
`

// App runs one command against the editor.
type App struct {
	Editor *services.Editor
	Hasher domain.PasswordHasher
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.Err, usage)
		return ErrUsage
	}
	switch args[0] {
	case "list":
		return a.list(ctx)
	case "show":
		return a.show(ctx, args[1:])
	case "new":
		return a.create(ctx, args[1:])
	case "delete":
		return a.delete(ctx, args[1:])
	case "hash-password":
		return a.hashPassword()
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usage)
		return nil
	default:
		fmt.Fprintf(a.Err, "unknown command %q\n\n%s", args[0], usage)
		return ErrUsage
	}
}

func (a *App) list(ctx context.Context) error {
	if err := a.Editor.Load(ctx); err != nil {
		return err
	}
	events := a.Editor.Events().Snapshot()
	sort.SliceStable(events, func(i, j int) bool { return events[i].EventDate > events[j].EventDate })

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.EventDate, e.EventType, e.Title, yesNo(e.Published)})
	}
	return writeTable(a.Out, []string{"ID", "DATE", "TYPE", "TITLE", "PUBLISHED"}, rows)
}

func (a *App) show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprint(a.Err, usage)
		return err
	}
	if err := a.Editor.Load(ctx); err != nil {
		return err
	}
	e, ok := a.Editor.Events().Find(id)
	if !ok {
		fmt.Fprintln(a.Err, "Event not found")
		return domain.ErrNotFound
	}
	return writeTable(a.Out, []string{"FIELD", "VALUE"}, [][]string{
		{"id", strconv.FormatInt(e.ID, 10)},
		{domain.FieldEventType, e.EventType},
		{domain.FieldEventDate, e.EventDate},
		{domain.FieldTitle, e.Title},
		{domain.FieldSpeaker, e.Speaker},
		{domain.FieldHost, e.Host},
		{domain.FieldPublished, yesNo(e.Published)},
	})
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(a.Err)
	eventType := fs.String("type", "", "event type")
	date := fs.String("date", "", "event date (YYYY-MM-DD)")
	title := fs.String("title", "", "title")
	speaker := fs.String("speaker", "", "speaker")
	host := fs.String("host", "", "host")
	published := fs.Bool("published", false, "publish the event")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	f := form.New()
	f.Update(domain.FieldEventType, *eventType)
	f.Update(domain.FieldEventDate, *date)
	f.Update(domain.FieldTitle, *title)
	f.Update(domain.FieldSpeaker, *speaker)
	f.Update(domain.FieldHost, *host)
	f.Update(domain.FieldPublished, *published)

	var location string
	err := f.Submit(ctx, func(ctx context.Context, d domain.Draft) error {
		route, err := a.Editor.AddEvent(ctx, d)
		location = route.Path()
		return err
	})
	var verrs domain.ValidationError
	if errors.As(err, &verrs) {
		fmt.Fprintln(a.Err, "The following errors prohibited the event from being saved:")
		for _, m := range verrs.Messages() {
			fmt.Fprintf(a.Err, "  - %s\n", m)
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, location)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(a.Err)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	id, err := parseID(fs.Args())
	if err != nil {
		fmt.Fprint(a.Err, usage)
		return err
	}

	var confirm domain.Confirmer = promptConfirmer{in: a.In, out: a.Out}
	if *yes {
		confirm = domain.ConfirmFunc(func(context.Context, string) bool { return true })
	}
	_, deleted, err := a.Editor.DeleteEvent(ctx, id, confirm)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.Out, "Cancelled")
	}
	return nil
}

func (a *App) hashPassword() error {
	line, err := bufio.NewReader(a.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		fmt.Fprintln(a.Err, "empty password")
		return ErrUsage
	}
	hash, err := a.Hasher.Hash(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, hash)
	return nil
}

// promptConfirmer asks on the terminal; only y or yes confirms.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, ErrUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, args[0])
	}
	return id, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
