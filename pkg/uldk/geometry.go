package uldk

import (
	"encoding/hex"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// ParseGeometryResponse parses a geometry lookup response: the first line
// is a status code, each remaining non-empty line is a hex-encoded WKB
// blob. A status containing the service's -1 sentinel yields a
// NotFoundError. Each decoded geometry is reprojected to WGS84. The
// pipeline is all-or-nothing: a single bad blob fails the whole response
// with a DecodeError.
func ParseGeometryResponse(raw string) ([]geom.T, error) {
	lines := strings.Split(raw, "\n")

	status := strings.TrimSpace(lines[0])
	if strings.Contains(status, "-1") {
		return nil, &NotFoundError{Status: status}
	}

	geoms := make([]geom.T, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		blob, err := hex.DecodeString(line)
		if err != nil {
			return nil, &DecodeError{Line: i + 2, Err: err}
		}

		g, err := wkb.Unmarshal(blob)
		if err != nil {
			return nil, &DecodeError{Line: i + 2, Err: err}
		}

		geoms = append(geoms, ReprojectToWGS84(g))
	}
	return geoms, nil
}
