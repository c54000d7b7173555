package list

import (
	"github.com/arthur-debert/dotsync/pkg/commands/internal"
	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/types"
	"github.com/spf13/afero"
)

// ListTrackedOptions defines the options for the ListTracked command.
type ListTrackedOptions struct {
	Config *config.Config
	// Fs allows injecting a filesystem for testing
	Fs afero.Fs
}

// ListTracked returns the tracked paths in manifest order, creating an empty
// manifest on first use.
func ListTracked(opts ListTrackedOptions) ([]types.TrackedPath, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListTracked").Msg("Executing command")

	entries, err := internal.OpenStore(opts.Config, opts.Fs).List()
	if err != nil {
		return nil, err
	}

	log.Info().Str("command", "ListTracked").Int("count", len(entries)).Msg("Command finished")
	return entries, nil
}
