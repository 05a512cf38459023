package group

import (
	"iter"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/themegroup/internal/colour"
	"github.com/jmylchreest/themegroup/internal/scan"
)

// Options controls how folders are grouped.
type Options struct {
	SignatureSize int // colours per signature, 0 = colour.DefaultSignatureSize
	Logger        hclog.Logger
}

// Stats summarises one aggregation pass.
type Stats struct {
	Folders int    // candidate folders seen
	Grouped int    // folders added to a group
	Skipped int    // folders whose marker file could not be read
	Bytes   uint64 // marker file bytes read
}

// String returns a short human-readable summary.
func (s Stats) String() string {
	return humanize.Comma(int64(s.Grouped)) + " grouped, " +
		humanize.Comma(int64(s.Skipped)) + " skipped, " +
		humanize.Bytes(s.Bytes) + " read"
}

// Build consumes folders and groups every readable one by its colour
// signature. Unreadable folders are skipped. The first error from the
// sequence stops the pass and is returned.
func Build(folders iter.Seq2[scan.Folder, error], opts Options) (*Groups, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	groups := New()
	var stats Stats

	for folder, err := range folders {
		if err != nil {
			return nil, stats, err
		}
		stats.Folders++

		if !folder.OK() {
			stats.Skipped++
			logger.Debug("skipped folder", "folder", folder.Name, "path", folder.Dir, "error", folder.Err)
			continue
		}

		stats.Bytes += uint64(len(folder.Content))
		signature := colour.SignatureOf(folder.Content, opts.SignatureSize)
		groups.Add(signature, folder.Name)
		stats.Grouped++

		logger.Trace("grouped folder", "folder", folder.Name, "signature", signature)
	}

	return groups, stats, nil
}
