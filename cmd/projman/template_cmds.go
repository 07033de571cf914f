package projman

import (
	"github.com/spf13/cobra"
)

func newTemplateCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   MsgTemplateShort,
		GroupID: "templates",
	}
	cmd.AddCommand(newTemplateSaveCmd(opts))
	cmd.AddCommand(newTemplateNewCmd(opts))
	cmd.AddCommand(newTemplateManageCmd(opts))
	cmd.AddCommand(newTemplateListCmd(opts))
	cmd.AddCommand(newTemplateShowCmd(opts))
	cmd.AddCommand(newTemplateDeleteCmd(opts))
	return cmd
}

func newTemplateSaveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: MsgTemplateSaveShort,
		Long:  MsgTemplateSaveLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.SaveAsTemplate())
		},
	}
}

func newTemplateNewCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "new",
		Aliases: []string{"create"},
		Short:   MsgTemplateNewShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.CreateFromTemplate())
		},
	}
}

func newTemplateManageCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: MsgTemplateManageShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.ManageTemplates())
		},
	}
}

func newTemplateListCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgTemplateListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			list, err := a.templates.List()
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}
			return r.Templates(list, a.sourceMissing)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newTemplateShowCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             MsgTemplateShowShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			t, err := a.templates.Get(args[0])
			if err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}
			return r.Template(*t, a.sourceMissing)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newTemplateDeleteCmd(opts *globalOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             MsgTemplateDeleteShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return finish(a.manager.DeleteTemplate(args[0], yes))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}
