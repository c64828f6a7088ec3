package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

// NewCheckCommand creates the check command, which validates words
// non-interactively. Words are checked in order against one round, so a
// repeated word is reported as already used.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "check [word...]",
		Short: "Check candidate words against a root word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := opts.loadLexicon()
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), lex, opts.cfg.Words.Locale, root, opts.Format, args)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "root word (random if empty)")

	return cmd
}

// checkLine is one JSON output line of the check command.
type checkLine struct {
	Root     string      `json:"root"`
	Word     string      `json:"word"`
	Accepted bool        `json:"accepted"`
	Reason   game.Reason `json:"reason,omitempty"`
	Title    string      `json:"title,omitempty"`
	Message  string      `json:"message,omitempty"`
	Score    int         `json:"score"`
}

func runCheck(out io.Writer, lex *words.Lexicon, locale, root, format string, candidates []string) error {
	if root == "" {
		root = lex.RandomRoot()
	}
	engine := game.NewEngine(lex, locale)
	sess := game.NewSession(uuid.NewString(), root, locale)
	enc := json.NewEncoder(out)

	for _, c := range candidates {
		v := sess.SubmitGuess(engine, c)
		if format == "json" {
			line := checkLine{
				Root:     sess.Root,
				Word:     v.Word,
				Accepted: v.Accepted(),
				Reason:   v.Reason,
				Title:    v.Reason.Title(),
				Message:  v.Reason.Message(sess.Root),
				Score:    sess.Score(),
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}
		if v.Accepted() {
			fmt.Fprintf(out, "%s\taccepted\n", v.Word)
		} else {
			fmt.Fprintf(out, "%s\t%s\t%s: %s\n", v.Word, v.Reason, v.Reason.Title(), v.Reason.Message(sess.Root))
		}
	}
	return nil
}
