package dotsync

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Track dotfiles and mirror them as links or copies"
	MsgListShort       = "List tracked files"
	MsgAddShort        = "Start tracking files under your home directory"
	MsgRmShort         = "Stop tracking files"
	MsgEditShort       = "Edit the tracked list in your editor"
	MsgLinkShort       = "Link tracked files from home into DIR"
	MsgCopyShort       = "Copy tracked files from home into DIR"
	MsgSyncShort       = "Link or copy tracked files from DIR into home"
	MsgSyncDirsShort   = "Link or copy tracked files from SRC into DEST"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgEmptyList      = "No files are tracked. Add some with: dotsync add PATH..."
	MsgNothingToTrack = "Nothing was added."

	// Error messages
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrEntriesFailed = "%d of %d tracked files failed"
	MsgErrNoCommand     = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Show what would be linked or copied without touching the filesystem"
	MsgFlagNoColor   = "Disable colored output"
	MsgFlagConfigDir = "Directory holding config.toml and the tracked list"
	MsgFlagAll       = "Remove every tracked file from the list"
	MsgFlagSymbolic  = "Create symbolic links instead of hard links"
	MsgFlagCopy      = "Copy files instead of linking them"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/rm-long.txt
	msgRmLongRaw string
	MsgRmLong    = strings.TrimSpace(msgRmLongRaw)

	//go:embed msgs/edit-long.txt
	msgEditLongRaw string
	MsgEditLong    = strings.TrimSpace(msgEditLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/sync-dirs-long.txt
	msgSyncDirsLongRaw string
	MsgSyncDirsLong    = strings.TrimSpace(msgSyncDirsLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
