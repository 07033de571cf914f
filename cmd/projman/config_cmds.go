package projman

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/projman/pkg/config"
	"github.com/arthur-debert/projman/pkg/output"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
	}
	cmd.AddCommand(newConfigListCmd(opts))
	cmd.AddCommand(newConfigGetCmd(opts))
	cmd.AddCommand(newConfigSetCmd(opts))
	return cmd
}

func newConfigListCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgConfigListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}
			return r.Settings(a.settings.All())
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newConfigGetCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:               "get <key>",
		Short:             MsgConfigGetShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: configKeysCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if err := checkKey(key); err != nil {
				return err
			}
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}
			return r.Value(key, a.settings.Get(key))
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             MsgConfigSetShort,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: configKeysCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := checkKey(key); err != nil {
				return err
			}
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if key == config.KeyTargetFolder && value != "" {
				if value, err = paths.ExpandAbs(value); err != nil {
					return err
				}
			}
			if err := a.settings.Set(key, value); err != nil {
				return err
			}
			a.host.NotifyInfo(fmt.Sprintf(MsgSettingUpdated, key, output.FormatValue(a.settings.Get(key))))
			return nil
		},
	}
}

func checkKey(key string) error {
	if !config.IsKnownKey(key) {
		return errUsage(MsgErrUnknownKey, key, strings.Join(config.Keys(), ", "))
	}
	return nil
}

func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var keys []string
	for _, key := range config.Keys() {
		if strings.HasPrefix(key, toComplete) {
			keys = append(keys, key)
		}
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
