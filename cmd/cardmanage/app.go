package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/urfave/cli/v3"

	"github.com/cardmanager/cardmanage/internal/card"
	cardcli "github.com/cardmanager/cardmanage/internal/cli"
	"github.com/cardmanager/cardmanage/internal/config"
	"github.com/cardmanager/cardmanage/internal/derrors"
	"github.com/cardmanager/cardmanage/internal/logger"
	"github.com/cardmanager/cardmanage/internal/trace"
	"github.com/cardmanager/cardmanage/pkg/version"
)

// requireArgs returns the positional arguments of cmd, which must be
// exactly as many as names
func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	if cmd.Args().Len() != len(names) {
		return nil, derrors.NewUsageError("", fmt.Sprintf("%s expects %d argument(s): %v, got %d",
			cmd.Name, len(names), names, cmd.Args().Len()))
	}
	return cmd.Args().Slice(), nil
}

// app holds the state command actions share once set up
type app struct {
	stdout, stderr io.Writer

	dispatcher *cardcli.Dispatcher
	cfg        *config.Config
	sources    []string
}

// setup wires the dispatcher. With loadConfig unset the built-in defaults
// are used and no config file is read.
func (a *app) setup(cmd *cli.Command, loadConfig bool) error {
	a.cfg = config.Default()
	if loadConfig {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		a.cfg, a.sources, err = config.Load(config.LoadOptions{
			WorkDir:      workDir,
			ExplicitPath: cmd.String("config"),
		})
		if err != nil {
			return err
		}
	}

	level := a.cfg.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	log := logger.New(level, a.stderr)
	log.Debug().Strs("sources", a.sources).Str("log_level", log.Level()).Msg("config loaded")

	a.dispatcher = cardcli.New(card.NewManager(a.cfg.ManagerConfig(), log), log, a.stdout)
	return nil
}

// action loads the config, then runs fn inside a trace region named
// after the command
func (a *app) action(fn cli.ActionFunc) cli.ActionFunc {
	return a.wrap(true, fn)
}

// standalone is action without config files, for commands that must
// still work when one of them is broken
func (a *app) standalone(fn cli.ActionFunc) cli.ActionFunc {
	return a.wrap(false, fn)
}

func (a *app) wrap(loadConfig bool, fn cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		defer trace.Region(ctx, cmd.FullName())()
		if err := a.setup(cmd, loadConfig); err != nil {
			return err
		}
		return fn(ctx, cmd)
	}
}

// destinationFlags are the -i/-o pair of commands that rewrite a card
func destinationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "in-place",
			Aliases: []string{"i"},
			Usage:   "Overwrite the input card",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the card to this file",
		},
	}
}

//nolint:gocyclo // Command tree wiring is long but flat
func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "cardmanage",
		Usage:     "Format, copy and compare data cards",
		Version:   version.String(),
		Writer:    stdout,
		ErrWriter: stderr,
		// errors are turned into exit codes by run
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   logger.DefaultLevel,
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("CARDMANAGE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Extra config file, loaded after global and local ones",
				Sources: cli.EnvVars("CARDMANAGE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "format",
				Usage:     "Rewrite a card in canonical layout",
				ArgsUsage: "<path>",
				Flags:     destinationFlags(),
				Description: heredoc.Doc(`
					Aligns every block into columns and normalizes separator lines.
					Exactly one of --in-place and --output must be given.
				`),
				Action: a.action(func(_ context.Context, cmd *cli.Command) error {
					args, err := requireArgs(cmd, "path")
					if err != nil {
						return err
					}
					return a.dispatcher.Format(cardcli.FormatParams{
						Path:    args[0],
						InPlace: cmd.Bool("in-place"),
						Output:  cmd.String("output"),
					})
				}),
			},
			{
				Name:      "copy",
				Usage:     "Copy a card, optionally with the workspace files it references",
				ArgsUsage: "<source_path> <target_path>",
				Description: heredoc.Doc(`
					When target_path is an existing directory the card keeps its file name.

					With --recursive the workspace files named in shapes lines are copied
					too. Relative references keep their layout under the target directory;
					absolute ones are copied next to the card and rewritten to the file name.
					Nothing is written when a referenced file is missing.
				`),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "recursive",
						Aliases: []string{"r"},
						Usage:   "Also copy referenced workspace files",
					},
					&cli.BoolFlag{
						Name:    "absolute-paths",
						Aliases: []string{"a"},
						Usage:   "Rewrite workspace references as absolute paths",
					},
				},
				Action: a.action(func(_ context.Context, cmd *cli.Command) error {
					args, err := requireArgs(cmd, "source_path", "target_path")
					if err != nil {
						return err
					}
					return a.dispatcher.Copy(cardcli.CopyParams{
						Source:        args[0],
						Target:        args[1],
						Recursive:     cmd.Bool("recursive"),
						AbsolutePaths: cmd.Bool("absolute-paths"),
					})
				}),
			},
			{
				Name:      "compare",
				Usage:     "Check whether two cards are equivalent",
				ArgsUsage: "<path1> <path2>",
				Description: heredoc.Doc(`
					Cards are equivalent when they match line by line after whitespace,
					separator widths and comments are normalized. Numbers match by value.

					Exits 0 when equivalent and 1 when not.
				`),
				Action: a.action(func(_ context.Context, cmd *cli.Command) error {
					args, err := requireArgs(cmd, "path1", "path2")
					if err != nil {
						return err
					}
					equivalent, err := a.dispatcher.Compare(cardcli.CompareParams{Path1: args[0], Path2: args[1]})
					if err != nil {
						return err
					}
					if !equivalent {
						return cli.Exit("", 1)
					}
					return nil
				}),
			},
			{
				Name:      "inspect",
				Usage:     "Show the structure of a card",
				ArgsUsage: "<path>",
				Action: a.action(func(_ context.Context, cmd *cli.Command) error {
					args, err := requireArgs(cmd, "path")
					if err != nil {
						return err
					}
					return a.dispatcher.Inspect(args[0])
				}),
			},
			{
				Name:      "set-effect",
				Usage:     "Change the effect of a nuisance on one process in one bin",
				ArgsUsage: "<path> <nuisance> <process> <bin> <value>",
				Flags:     destinationFlags(),
				Action: a.action(func(_ context.Context, cmd *cli.Command) error {
					args, err := requireArgs(cmd, "path", "nuisance", "process", "bin", "value")
					if err != nil {
						return err
					}
					return a.dispatcher.SetEffect(cardcli.SetEffectParams{
						Path:     args[0],
						Nuisance: args[1],
						Process:  args[2],
						Bin:      args[3],
						Value:    args[4],
						InPlace:  cmd.Bool("in-place"),
						Output:   cmd.String("output"),
					})
				}),
			},
			{
				Name:  "config",
				Usage: "Inspect cardmanage configuration",
				Commands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Print the effective configuration",
						Action: a.action(func(_ context.Context, _ *cli.Command) error {
							return a.dispatcher.ShowConfig(a.cfg, a.sources)
						}),
					},
					{
						Name:      "schema",
						Usage:     "Display or export the JSON Schema for configuration files",
						ArgsUsage: "[output-file]",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "output",
								Aliases: []string{"o"},
								Usage:   "Output file path (prints to stdout if not specified)",
							},
						},
						Action: a.standalone(func(_ context.Context, cmd *cli.Command) error {
							outputPath := cmd.String("output")
							if outputPath == "" && cmd.Args().Len() > 0 {
								outputPath = cmd.Args().Get(0)
							}
							return a.dispatcher.Schema(outputPath)
						}),
					},
					{
						Name:      "validate",
						Usage:     "Validate a configuration file",
						ArgsUsage: "<config-file>",
						Action: a.standalone(func(_ context.Context, cmd *cli.Command) error {
							args, err := requireArgs(cmd, "config-file")
							if err != nil {
								return err
							}
							return a.dispatcher.ValidateConfig(args[0])
						}),
					},
				},
			},
		},
	}
}
