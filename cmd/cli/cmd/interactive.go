// Package cmd - interactive command
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"app-cost/core/catalog"
	"app-cost/core/output"
	"app-cost/core/session"
	"app-cost/core/types"
	"app-cost/internal/config"
	"app-cost/internal/errors"
	"app-cost/internal/logging"
)

var interactiveCatalog string

// interactiveCmd edits a selection line by line and reprices after each edit
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Edit a selection and watch the price update",
	Long: `Start from the catalog defaults and edit the selection one line at a time.

Commands:
  set <field> <value>   field is category, subcategory, complexity, team or timeline
  toggle <feature>      switch a feature on or off
  enable <feature>      switch a feature on
  disable <feature>     switch a feature off
  show                  print the current breakdown
  reset                 go back to the defaults
  help                  list commands
  quit                  leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCatalog(interactiveCatalog)
		if err != nil {
			return err
		}
		eng, err := newEngine(cfg)
		if err != nil {
			return err
		}
		s, err := session.New(eng, catalog.DefaultSelection(cfg), logging.Named("session"))
		if err != nil {
			return err
		}
		return newREPL(s, cmd.OutOrStdout(), config.Get().Output.Locale).run(cmd.InOrStdin())
	},
}

func init() {
	interactiveCmd.Flags().StringVar(&interactiveCatalog, "catalog", "", "catalog document (.hcl, .json, .yaml)")
}

type repl struct {
	session *session.Session
	initial types.SelectionState
	out     io.Writer
	locale  string
}

func newREPL(s *session.Session, out io.Writer, locale string) *repl {
	return &repl{
		session: s,
		initial: s.State(),
		out:     out,
		locale:  locale,
	}
}

func (r *repl) run(in io.Reader) error {
	r.show(nil)
	r.prompt()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			r.prompt()
			continue
		}
		done, err := r.exec(line)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if done {
			return nil
		}
		r.prompt()
	}
	return scanner.Err()
}

func (r *repl) prompt() {
	fmt.Fprint(r.out, "> ")
}

// exec runs one command line and reports whether the loop should stop
func (r *repl) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	verb, rest := strings.ToLower(fields[0]), fields[1:]
	logging.Debug("interactive command", zap.String("verb", verb), zap.Strings("args", rest))

	switch verb {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, "set <field> <value> | toggle|enable|disable <feature> | show | reset | quit")
		return false, nil
	case "show":
		r.show(nil)
		return false, nil
	case "reset":
		update, err := r.session.Replace(r.initial)
		if err != nil {
			return false, err
		}
		r.show(update)
		return false, nil
	case "set":
		if len(rest) < 2 {
			return false, errors.Input("usage: set <field> <value>")
		}
		return false, r.edit(rest[0], strings.Join(rest[1:], " "))
	case "toggle", "enable", "disable":
		if len(rest) != 1 {
			return false, errors.Newf(errors.TypeInput, "usage: %s <feature>", verb)
		}
		return false, r.edit(verb, rest[0])
	default:
		return false, errors.Newf(errors.TypeInput, "unknown command %q (try help)", verb)
	}
}

func (r *repl) edit(field, value string) error {
	edit, err := session.ParseEdit(field, value)
	if err != nil {
		return err
	}
	update, err := r.session.Apply(edit)
	if err != nil {
		logging.Warn("edit rejected", zap.Stringer("edit", edit), zap.Error(err))
		return err
	}
	r.show(update)
	return nil
}

func (r *repl) show(update *session.Update) {
	report := &output.Report{
		Config:    r.session.Config(),
		Selection: r.session.State(),
		Result:    r.session.Result(),
		Locale:    r.locale,
	}
	if update != nil {
		report.Diff = update.Diff
	}
	if err := output.NewCLIFormatter(config.Get().Output.NoColor).Render(r.out, report); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}
