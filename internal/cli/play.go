package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

// NewPlayCommand creates the play command: an interactive round on the terminal.
func NewPlayCommand(opts *RootOptions) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play in the terminal. Type one word per line.

Commands:
  :new    start over with a new root word
  :words  list the words found so far
  :quit   stop (end of input works too)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := opts.loadLexicon()
			if err != nil {
				return err
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), lex, opts.cfg.Words.Locale, root)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "root word for the first round (random if empty)")

	return cmd
}

// runPlay reads candidates from in until :quit or EOF and reports each verdict to out.
func runPlay(in io.Reader, out io.Writer, lex *words.Lexicon, locale, root string) error {
	if root == "" {
		root = lex.RandomRoot()
	}
	engine := game.NewEngine(lex, locale)
	sess := game.NewSession(uuid.NewString(), root, locale)
	log.Debug().Str("roundId", sess.ID).Str("root", sess.Root).Msg("round started")

	fmt.Fprintf(out, "Root word: %s\n", sess.Root)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":quit", ":q":
			fmt.Fprintf(out, "Final score: %d\n", sess.Score())
			return nil
		case ":new":
			sess.StartRound(lex.RandomRoot())
			log.Debug().Str("roundId", sess.ID).Str("root", sess.Root).Msg("round restarted")
			fmt.Fprintf(out, "Root word: %s\n", sess.Root)
		case ":words":
			if len(sess.Words) == 0 {
				fmt.Fprintln(out, "Words: (none)")
			} else {
				fmt.Fprintf(out, "Words: %s\n", strings.Join(sess.Words, ", "))
			}
		default:
			v := sess.SubmitGuess(engine, line)
			writeVerdict(out, sess, v)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Final score: %d\n", sess.Score())
	return nil
}

func writeVerdict(out io.Writer, sess *game.Session, v game.Verdict) {
	if v.Accepted() {
		fmt.Fprintf(out, "✓ %s (score %d)\n", v.Word, sess.Score())
		return
	}
	fmt.Fprintf(out, "✗ %s: %s\n", v.Reason.Title(), v.Reason.Message(sess.Root))
}
