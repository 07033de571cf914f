package projman

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/projman/internal/version"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/filesystem"
	"github.com/arthur-debert/projman/pkg/logging"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/shell"
	"github.com/arthur-debert/projman/pkg/templates"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "projman",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			// stdout is reserved for data such as the path printed by open
			pterm.SetDefaultOutput(os.Stderr)
			if opts.noColor || os.Getenv("NO_COLOR") != "" {
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", MsgFlagWorkspace)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "projects",
		Title: "PROJECTS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "templates",
		Title: "TEMPLATES:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newOpenCmd(opts))
	rootCmd.AddCommand(newCopyCmd(opts))
	rootCmd.AddCommand(newTargetCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newTemplateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newSnippetCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add",
		Short:   MsgAddShort,
		GroupID: "projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.AddCurrentProject())
		},
	}
}

func newOpenCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "open",
		Short:   MsgOpenShort,
		Long:    MsgOpenLong,
		GroupID: "projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.OpenProject())
		},
	}
}

func newCopyCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "copy",
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		GroupID: "projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.CopyProject())
		},
	}
}

func newTargetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "target",
		Short:   MsgTargetShort,
		GroupID: "projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.SelectTargetFolder())
		},
	}
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			list, err := a.projects.List()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}
			return r.Projects(list)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newSnippetCmd(opts *globalOptions) *cobra.Command {
	var (
		shellName string
		fn        string
		install   bool
	)
	cmd := &cobra.Command{
		Use:     "snippet",
		Short:   MsgSnippetShort,
		Long:    MsgSnippetLong,
		Example: MsgSnippetExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !install {
				snippet, err := shell.Snippet(shellName, fn)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), snippet)
				return err
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			written, err := shell.Install(a.fs, a.paths.DataDir(), fn)
			if err != nil {
				return err
			}
			a.host.NotifyInfo(fmt.Sprintf(MsgSnippetInstalled, strings.Join(written, ", ")))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), shell.SourceLine(shellName, a.paths.DataDir()))
			return err
		},
	}
	cmd.Flags().StringVarP(&shellName, "shell", "s", "bash", MsgFlagShell)
	cmd.Flags().StringVarP(&fn, "name", "n", shell.DefaultFunctionName, MsgFlagFunctionName)
	cmd.Flags().BoolVar(&install, "install", false, MsgFlagInstall)
	_ = cmd.RegisterFlagCompletionFunc("shell", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return shell.Shells, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "f", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// templateNamesCompletion completes the first argument with saved
// template names. It reads the registry directly so completion never
// prompts or writes.
func templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := paths.New()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	list, err := templates.New(filesystem.NewOS(), p.TemplatesFile()).List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, t := range list {
		if strings.HasPrefix(t.Name, toComplete) {
			names = append(names, t.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// errUsage marks bad invocations that are not operation failures
func errUsage(format string, args ...interface{}) error {
	return errors.Newf(errors.ErrInvalidInput, format, args...)
}
