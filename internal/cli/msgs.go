package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage timestamped release directories"
	MsgStatusShort     = "Report the state of the release tree"
	MsgCreateShort     = "Create a release directory and point a symlink at it"
	MsgCleanShort      = "Remove releases beyond the retention count"
	MsgTimestampShort  = "Print a sortable release timestamp"
	MsgConfigShort     = "Inspect and bootstrap configuration"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigInitShort = "Print or write a starter config file"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigWrittenFormat = "Wrote %s\n"
	MsgConfigExistsFormat  = "Config file %s already exists, leaving it alone\n"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun        = "Report what would change without touching the tree"
	MsgFlagFormat        = "Output format: auto, term, text or json"
	MsgFlagNoColor       = "Disable styled terminal output"
	MsgFlagConfigFile    = "Config file to load instead of searching for one"
	MsgFlagTheme         = "YAML style sheet overriding the built-in theme"
	MsgFlagPath          = "Base path of the release tree"
	MsgFlagPrefix        = "Prefix of release directory names"
	MsgFlagSubfolder     = "Directory under the base path holding the releases"
	MsgFlagSymlinks      = "Watched symlink names under the base path (comma separated)"
	MsgFlagSymlink       = "Symlink to point at the new release"
	MsgFlagKeep          = "How many of the newest releases to retain"
	MsgFlagKeepSymlinked = "Spare releases that watched symlinks point at"
	MsgFlagLayout        = "strftime format of the timestamp"
	MsgFlagTimezone      = "IANA timezone the timestamp is rendered in"
	MsgFlagWrite         = "Write the config file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimSpace(msgStatusExampleRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimSpace(msgCreateExampleRaw)

	//go:embed msgs/clean-long.txt
	msgCleanLongRaw string
	MsgCleanLong    = strings.TrimSpace(msgCleanLongRaw)

	//go:embed msgs/clean-example.txt
	msgCleanExampleRaw string
	MsgCleanExample    = strings.TrimSpace(msgCleanExampleRaw)

	//go:embed msgs/timestamp-long.txt
	msgTimestampLongRaw string
	MsgTimestampLong    = strings.TrimSpace(msgTimestampLongRaw)

	//go:embed msgs/timestamp-example.txt
	msgTimestampExampleRaw string
	MsgTimestampExample    = strings.TrimSpace(msgTimestampExampleRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
