package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cfq/codeforces"
	"cfq/internal/app"
	"cfq/internal/config"
	"cfq/internal/errx"
	"cfq/internal/output"
)

func main() {
	os.Exit(realMain(os.Args))
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	json       bool
	verbose    bool
	noColor    bool
	timeout    string
	baseURL    string
	configPath string
}

// cli holds what PersistentPreRunE builds for the command that runs.
type cli struct {
	flags   globalFlags
	stdout  io.Writer
	stderr  io.Writer
	printer *output.StdPrinter
	app     *app.App
}

func realMain(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	c.printer = output.NewStdPrinter(c.stdout, c.stderr, false)

	root := c.rootCmd()
	root.SetArgs(args[1:])
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		_ = c.printer.PrintError(ctx, err)
	}
	return errx.ExitCode(err)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "cfq",
		Short:             "cfq - query the Codeforces API from the terminal",
		SilenceErrors:     true,
		SilenceUsage:      true,
		Args:              noSubcommand,
		RunE:              missingSubcommand,
		PersistentPreRunE: c.setup,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errx.Usage("%v", err)
	})

	pf := root.PersistentFlags()
	pf.BoolVar(&c.flags.json, "json", false, "emit JSON output")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "log requests to stderr")
	pf.BoolVar(&c.flags.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&c.flags.timeout, "timeout", "", "per-request timeout, e.g. 10s (0 disables)")
	pf.StringVar(&c.flags.baseURL, "base-url", "", "Codeforces origin (default https://codeforces.com)")
	pf.StringVar(&c.flags.configPath, "config", "", "config file path (default $"+config.EnvConfigPath+" or the user config dir)")

	root.AddCommand(
		c.userCmd(),
		c.blogCmd(),
		c.contestCmd(),
		c.problemsetCmd(),
		c.recentActionsCmd(),
		c.configCmd(),
	)
	return root
}

// setup resolves configuration, then builds the logger, client, printer and app.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if c.flags.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetHandler(logcli.New(c.stderr))

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path := c.flags.configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
	}
	store := config.NewFileStore(path)

	cfg, err := config.Resolve(ctx, store, os.LookupEnv)
	if err != nil {
		return err
	}
	if c.flags.baseURL != "" {
		cfg.BaseURL = c.flags.baseURL
	}
	if c.flags.timeout != "" {
		d, err := parseTimeout(c.flags.timeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if c.flags.noColor {
		cfg.NoColor = true
	}
	log.WithFields(log.Fields{
		"config":   path,
		"base_url": cfg.BaseURL,
		"timeout":  cfg.Timeout,
	}).Debug("configuration resolved")

	if cfg.NoColor {
		color.NoColor = true
	}
	c.printer.JSON = c.flags.json
	c.printer.NoColor = cfg.NoColor

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = -1
	}
	client := codeforces.NewHttpClient(codeforces.HttpClientOptions{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   timeout,
		Logger:    log.Log,
	})

	c.app = app.New(app.App{
		ConfigStore: store,
		Config:      cfg,
		Client:      client,
		Output:      c.printer,
	})
	return nil
}

func (c *cli) userCmd() *cobra.Command {
	cmd := groupCmd("user", "Profiles, ratings and submissions of users")

	cmd.AddCommand(&cobra.Command{
		Use:   "info <handle>...",
		Short: "Show user profiles (user.info)",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UserInfo(cmd.Context(), args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rating <handle>",
		Short: "Show rating history (user.rating)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UserRating(cmd.Context(), args[0])
		},
	})

	var status app.UserStatusOptions
	statusCmd := &cobra.Command{
		Use:   "status <handle>",
		Short: "Show recent submissions (user.status)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status.Handle = args[0]
			return c.app.UserStatus(cmd.Context(), status)
		},
	}
	statusCmd.Flags().IntVar(&status.From, "from", 0, "1-based index of the first submission")
	statusCmd.Flags().IntVar(&status.Count, "count", 0, "number of submissions (default from config)")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "blogs <handle>",
		Short: "List blog entries (user.blogEntries)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UserBlogEntries(cmd.Context(), args[0])
		},
	})

	var rated app.RatedListOptions
	ratedCmd := &cobra.Command{
		Use:   "rated-list",
		Short: "List rated users by decreasing rating (user.ratedList)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UserRatedList(cmd.Context(), rated)
		},
	}
	ratedCmd.Flags().BoolVar(&rated.ActiveOnly, "active-only", true, "only users active in the last month")
	ratedCmd.Flags().BoolVar(&rated.IncludeRetired, "include-retired", false, "include users who have not logged in for a long time")
	ratedCmd.Flags().Int64Var(&rated.ContestID, "contest-id", 0, "only participants of this contest")
	ratedCmd.Flags().IntVar(&rated.Limit, "limit", 0, "print at most this many users")
	cmd.AddCommand(ratedCmd)

	return cmd
}

func (c *cli) blogCmd() *cobra.Command {
	cmd := groupCmd("blog", "Blog entries and comments")

	cmd.AddCommand(&cobra.Command{
		Use:   "view <id>",
		Short: "Show a blog entry (blogEntry.view)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("blog entry id", args[0])
			if err != nil {
				return err
			}
			return c.app.BlogView(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "comments <id>",
		Short: "Show the comments of a blog entry (blogEntry.comments)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("blog entry id", args[0])
			if err != nil {
				return err
			}
			return c.app.BlogComments(cmd.Context(), id)
		},
	})

	return cmd
}

func (c *cli) contestCmd() *cobra.Command {
	cmd := groupCmd("contest", "Contests, standings, hacks and rating changes")

	var list app.ContestListOptions
	var phase string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contests (contest.list)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list.Phase = codeforces.Phase(phase)
			return c.app.ContestList(cmd.Context(), list)
		},
	}
	listCmd.Flags().BoolVar(&list.Gym, "gym", false, "list gym contests instead of regular ones")
	listCmd.Flags().StringVar(&phase, "phase", "", "only contests in this phase, e.g. BEFORE or FINISHED")
	listCmd.Flags().IntVar(&list.Limit, "limit", 0, "print at most this many contests")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "hacks <contest-id>",
		Short: "List hacks (contest.hacks)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contest id", args[0])
			if err != nil {
				return err
			}
			return c.app.ContestHacks(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rating-changes <contest-id>",
		Short: "List rating changes (contest.ratingChanges)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contest id", args[0])
			if err != nil {
				return err
			}
			return c.app.ContestRatingChanges(cmd.Context(), id)
		},
	})

	var standings app.StandingsOptions
	standingsCmd := &cobra.Command{
		Use:   "standings <contest-id>",
		Short: "Show standings (contest.standings)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contest id", args[0])
			if err != nil {
				return err
			}
			standings.ContestID = id
			return c.app.ContestStandings(cmd.Context(), standings)
		},
	}
	standingsCmd.Flags().IntVar(&standings.From, "from", 0, "1-based index of the first row")
	standingsCmd.Flags().IntVar(&standings.Count, "count", 0, "number of rows")
	standingsCmd.Flags().StringSliceVar(&standings.Handles, "handles", nil, "only rows of these handles")
	standingsCmd.Flags().IntVar(&standings.Room, "room", 0, "only rows of this room")
	standingsCmd.Flags().BoolVar(&standings.ShowUnofficial, "unofficial", false, "include unofficial participants")
	cmd.AddCommand(standingsCmd)

	var status app.ContestStatusOptions
	statusCmd := &cobra.Command{
		Use:   "status <contest-id>",
		Short: "List submissions (contest.status)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("contest id", args[0])
			if err != nil {
				return err
			}
			status.ContestID = id
			return c.app.ContestStatus(cmd.Context(), status)
		},
	}
	statusCmd.Flags().StringVar(&status.Handle, "handle", "", "only submissions of this handle")
	statusCmd.Flags().IntVar(&status.From, "from", 0, "1-based index of the first submission")
	statusCmd.Flags().IntVar(&status.Count, "count", 0, "number of submissions")
	cmd.AddCommand(statusCmd)

	return cmd
}

func (c *cli) problemsetCmd() *cobra.Command {
	cmd := groupCmd("problemset", "Problems and recent submissions")

	var problems app.ProblemsOptions
	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "List problems (problemset.problems)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ProblemsetProblems(cmd.Context(), problems)
		},
	}
	problemsCmd.Flags().StringSliceVar(&problems.Tags, "tags", nil, "only problems with all of these tags")
	problemsCmd.Flags().StringVar(&problems.ProblemsetName, "problemset-name", "", "e.g. acmsguru")
	cmd.AddCommand(problemsCmd)

	var count int
	var name string
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent submissions (problemset.recentStatus)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ProblemsetRecentStatus(cmd.Context(), count, name)
		},
	}
	recentCmd.Flags().IntVar(&count, "count", 0, "number of submissions, at most 1000 (default from config)")
	recentCmd.Flags().StringVar(&name, "problemset-name", "", "e.g. acmsguru")
	cmd.AddCommand(recentCmd)

	return cmd
}

func (c *cli) recentActionsCmd() *cobra.Command {
	var maxCount int
	cmd := &cobra.Command{
		Use:   "recent-actions",
		Short: "List recent blog and comment activity (recentActions)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RecentActions(cmd.Context(), maxCount)
		},
	}
	cmd.Flags().IntVar(&maxCount, "max-count", 0, "number of actions, at most 100 (default from config)")
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	cmd := groupCmd("config", "Manage the cfq config file")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ConfigInit(cmd.Context(), force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ConfigShow(cmd.Context())
		},
	})

	return cmd
}

// groupCmd returns a command that only dispatches to subcommands.
func groupCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  noSubcommand,
		RunE:  missingSubcommand,
	}
}

func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errx.Usage("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func missingSubcommand(cmd *cobra.Command, args []string) error {
	cmd.SetOut(cmd.ErrOrStderr())
	_ = cmd.Help()
	return errx.Usage("%s: missing command", cmd.CommandPath())
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return errx.Usage("%s: %v", cmd.CommandPath(), err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return errx.Usage("%s: %v", cmd.CommandPath(), err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errx.Usage("%s: unexpected argument %q", cmd.CommandPath(), args[0])
	}
	return nil
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errx.Usage("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errx.Usage("--timeout must be a non-negative duration, got %q", s)
	}
	return d, nil
}
