package projman

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort             = "Keep track of projects and project templates"
	MsgAddShort              = "Register the current workspace as a project"
	MsgOpenShort             = "Pick a registered project and open it"
	MsgCopyShort             = "Copy the current workspace into the target folder"
	MsgTargetShort           = "Choose the folder copies and new projects go to"
	MsgListShort             = "List registered projects"
	MsgListLong              = "List shows every registered project whose folder still exists."
	MsgTemplateShort         = "Save, create from and manage project templates"
	MsgTemplateSaveShort     = "Save the current workspace as a template"
	MsgTemplateNewShort      = "Create a new project from a template"
	MsgTemplateManageShort   = "List or delete templates interactively"
	MsgTemplateListShort     = "List saved templates"
	MsgTemplateShowShort     = "Show a template and its description"
	MsgTemplateDeleteShort   = "Delete a template"
	MsgConfigShort           = "Read and write settings"
	MsgConfigListShort       = "Show every setting with its current value"
	MsgConfigGetShort        = "Show the value of one setting"
	MsgConfigSetShort        = "Change a setting in the user config file"
	MsgVersionShort          = "Print version information"
	MsgSnippetShort          = "Print the shell function that cds into a picked project"
	MsgSnippetInstalled      = "Shell integration installed to %s"
	MsgCompletionShort       = "Generate shell completion script"
	MsgVersionFormat         = "projman %s (commit %s, built %s)\n"
	MsgSettingUpdated        = "%s set to %s"
	MsgRunningWithWorkspace  = "Using workspace"
	MsgNoWorkspaceDetected   = "No workspace detected"
	MsgSkippingMissingSource = "Template source folder is missing"

	// Error messages
	MsgErrUnknownKey    = "unknown setting %q (known: %s)"
	MsgErrUnknownFormat = "unknown output format %q (auto, term, text, json, yaml)"
	MsgErrNoCommand     = "no command specified"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagWorkspace    = "Folder to act on (default: $PROJMAN_WORKSPACE, git root, or current directory)"
	MsgFlagNoColor      = "Disable colored output"
	MsgFlagFormat       = "Output format: auto, term, text, json or yaml"
	MsgFlagYes          = "Delete without asking for confirmation"
	MsgFlagShell        = "Shell type (bash, zsh, fish)"
	MsgFlagFunctionName = "Name of the shell function to define"
	MsgFlagInstall      = "Write the scripts to the data directory and print the line that sources them"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/examples.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/open-long.txt
	msgOpenLongRaw string
	MsgOpenLong    = strings.TrimSpace(msgOpenLongRaw)

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/template-save-long.txt
	msgTemplateSaveLongRaw string
	MsgTemplateSaveLong    = strings.TrimSpace(msgTemplateSaveLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/snippet-long.txt
	msgSnippetLongRaw string
	MsgSnippetLong    = strings.TrimSpace(msgSnippetLongRaw)

	//go:embed msgs/snippet-example.txt
	msgSnippetExampleRaw string
	MsgSnippetExample    = strings.TrimRight(msgSnippetExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
