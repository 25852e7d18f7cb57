package main

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/museboxapp/musebox/internal/config"
	"github.com/museboxapp/musebox/internal/errors"
	"github.com/museboxapp/musebox/internal/ops"
	"github.com/museboxapp/musebox/internal/store"
	"github.com/museboxapp/musebox/internal/web"
)

const (
	// maxBackupBytes limits backup documents read from stdin.
	maxBackupBytes = 10 << 20
	// maxNoteBytes limits note content read from stdin. Content length
	// is validated in characters downstream; this only bounds the read.
	maxNoteBytes = 1 << 20
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "musebox",
		Usage:   "Personal notes with reconciling backup import",
		Version: Version,
		Commands: []*cli.Command{
			importCmd(st, cfg),
			restoreCmd(st, cfg),
			verifyCmd(st),
			exportCmd(st, cfg),
			markdownCmd(st),
			addCmd(st, cfg),
			getCmd(st),
			deleteCmd(st),
			listCmd(st),
			themesCmd(st),
			searchCmd(st),
			statsCmd(st),
			webCmd(st, cfg),
			versionCmd(),
		},
	}
	// Don't exit on error; let Run return it so callers and tests can
	// handle it.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// importCmd creates the import command.
func importCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a backup file, merging it into the current collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Backup JSON file to import (default: read stdin)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Trace theme reconciliation decisions to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			input := ops.ImportBackupInput{Path: c.String("path")}
			if c.Bool("verbose") {
				input.Logger = verboseLogger()
			}
			if input.Path == "" {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("provide --path or pipe backup JSON on stdin"))
				}
				raw, err := readStdin(maxBackupBytes)
				if err != nil {
					return outputError(err)
				}
				input.Data = []byte(raw)
			}
			output, err := ops.ImportBackup(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// restoreCmd creates the restore command.
func restoreCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "restore",
		Usage: "Replace the entire collection with a backup file's contents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Backup JSON file to restore from",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip the confirmation prompt",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Trace theme reconciliation decisions to stderr",
			},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("force") {
				if !isTerminal() {
					return outputError(errors.NewInvalidRequest("restore deletes every existing note and theme; pass --force to confirm"))
				}
				ok, err := confirmRestore()
				if err != nil {
					return outputError(err)
				}
				if !ok {
					fmt.Fprintln(os.Stderr, "restore aborted")
					return nil
				}
			}
			input := ops.RestoreBackupInput{Path: c.String("path")}
			if c.Bool("verbose") {
				input.Logger = verboseLogger()
			}
			output, err := ops.RestoreBackup(c.Context, st, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// verifyCmd creates the verify command.
func verifyCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check referential integrity and counter accuracy",
		Action: func(c *cli.Context) error {
			output, err := ops.VerifyIntegrity(c.Context, st)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the collection to a backup JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Destination file (default: ~/.musebox/exports/)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Label used in the default filename",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Write the backup document to stdout instead of a file",
			},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ExportBackup(c.Context, st, cfg, ops.ExportBackupInput{
				Path:       c.String("path"),
				Name:       c.String("name"),
				NoFile:     c.Bool("stdout"),
				AppVersion: Version,
			})
			if err != nil {
				return outputError(err)
			}
			if c.Bool("stdout") {
				_, err := os.Stdout.Write(output.Raw)
				return err
			}
			return outputJSON(output)
		},
	}
}

// markdownCmd creates the markdown command.
func markdownCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "markdown",
		Usage: "Render the collection as a Markdown document on stdout",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Render a single theme",
			},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ExportMarkdown(c.Context, st, ops.ExportMarkdownInput{
				Theme: c.String("theme"),
			})
			if err != nil {
				return outputError(err)
			}
			fmt.Print(output.Markdown)
			return nil
		},
	}
}

// addCmd creates the add command.
func addCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a note",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Theme name (default from config)",
			},
		},
		Action: func(c *cli.Context) error {
			content := c.Args().First()
			if content == "" {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("provide note content as an argument or on stdin"))
				}
				var err error
				content, err = readStdin(maxNoteBytes)
				if err != nil {
					return outputError(err)
				}
			}
			output, err := ops.AddNote(c.Context, st, cfg, ops.AddNoteInput{
				Content: content,
				Theme:   c.String("theme"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a note by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.GetNote(c.Context, st, ops.GetNoteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a note by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.DeleteNote(c.Context, st, ops.DeleteNoteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Only notes in this theme",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 20,
				Usage: "Maximum notes to return",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Notes to skip",
			},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListNotes(c.Context, st, ops.ListNotesInput{
				Theme:  c.String("theme"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// themesCmd creates the themes command.
func themesCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "themes",
		Usage: "List themes with cached and actual note counts",
		Action: func(c *cli.Context) error {
			output, err := ops.ListThemes(c.Context, st)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search note content",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 20,
				Usage: "Maximum results to return",
			},
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Results to skip",
			},
		},
		Action: func(c *cli.Context) error {
			query := strings.Join(c.Args().Slice(), " ")
			output, err := ops.SearchNotes(c.Context, st, ops.SearchNotesInput{
				Query:  query,
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection totals and a per-theme breakdown",
		Action: func(c *cli.Context) error {
			output, err := ops.Stats(c.Context, st)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// webCmd creates the web command.
func webCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bind",
				Value: "127.0.0.1",
				Usage: "Address to bind",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 8787,
				Usage: "Port to listen on",
			},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(st, cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// versionCmd creates the version command.
func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(c *cli.Context) error {
			return outputJSON(struct {
				Version string `json:"version"`
			}{Version: Version})
		},
	}
}

// outputJSON prints the output as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats an error for CLI display and returns it as a
// non-zero exit.
func outputError(err error) error {
	var mbErr *errors.MuseboxError
	if stderrors.As(err, &mbErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", mbErr.Code, mbErr.Message), 1)
	}
	return cli.Exit(fmt.Sprintf("error: %v", err), 1)
}

// verboseLogger returns a logger that writes reconciliation traces to
// stderr without disturbing the JSON on stdout.
func verboseLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// confirmRestore asks for confirmation on the terminal before a restore
// wipes the store.
func confirmRestore() (bool, error) {
	fmt.Fprint(os.Stderr, "This will delete every existing note and theme. Continue? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// stdinHasData returns true if stdin has piped input.
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads stdin in full, enforcing a byte limit.
func readStdin(limit int) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, int64(limit)+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > limit {
		return "", fmt.Errorf("stdin input exceeds %d byte limit", limit)
	}
	return strings.TrimSpace(string(data)), nil
}
