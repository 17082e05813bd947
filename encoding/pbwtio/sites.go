package pbwtio

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// ReadSitesFile reads a projection scaffold: one site index per line,
// strictly increasing, blank lines and "#"-prefixed comments ignored.
// It is the format cmd/pbwt-match's -projection flag reads, feeding
// pbwt.ProjectedMatch.
func ReadSitesFile(ctx context.Context, path string) ([]int, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "pbwtio: open sites file %s", path)
	}
	defer func() { _ = f.Close(ctx) }() // nolint: errcheck

	var sites []int
	scanner := bufio.NewScanner(f.Reader(ctx))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		site, err := strconv.Atoi(line)
		if err != nil {
			return nil, errors.Wrapf(err, "pbwtio: %s line %d: not an integer: %q", path, lineNo, line)
		}
		sites = append(sites, site)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "pbwtio: %s", path)
	}
	vlog.VI(1).Infof("pbwtio: read %d projection sites from %s", len(sites), path)
	return sites, nil
}
