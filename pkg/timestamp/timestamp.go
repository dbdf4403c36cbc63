// Package timestamp generates the release timestamps used to name
// release directories. Formats are strftime strings, so existing deploy
// configs can be carried over verbatim. The default format yields
// second-resolution stamps that sort lexicographically in time order,
// which the retention logic in pkg/releases relies on.
package timestamp

import (
	"time"

	// Timezone lookups must work on hosts without a system zoneinfo
	// database, so the Go copy is compiled in as a fallback.
	_ "time/tzdata"

	strftime "github.com/ncruces/go-strftime"

	"github.com/mbernath/releasedir/pkg/errors"
	"github.com/mbernath/releasedir/pkg/logging"
)

const (
	DefaultFormat   = "%Y%m%d%H%M%S"
	DefaultTimezone = "UTC"
)

// Options configures timestamp generation. Zero values mean the
// defaults above.
type Options struct {
	// Format is a strftime format string.
	Format string

	// Timezone is an IANA timezone name the current time is rendered
	// in, e.g. "Europe/Berlin".
	Timezone string

	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// Generate renders the current time as a release timestamp. An unknown
// timezone is a configuration error.
func Generate(opts Options) (string, error) {
	format := opts.Format
	if format == "" {
		format = DefaultFormat
	}
	zone := opts.Timezone
	if zone == "" {
		zone = DefaultTimezone
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "unknown timezone %q", zone)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	stamp := strftime.Format(format, now().In(loc))

	logger := logging.GetLogger("timestamp")
	logger.Debug().
		Str("format", format).
		Str("timezone", zone).
		Str("stamp", stamp).
		Msg("Generated timestamp")
	return stamp, nil
}
