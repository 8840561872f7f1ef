package radio

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a firmware or SD card image version.
// "2.2V0018" and "2.2.18" both parse to {2, 2, 18}.
type Version struct {
	Major    int
	Minor    int
	Revision int
}

// ParseVersion parses "M.m", "M.m.r", "M.mVrrrr" and a leading "v".
func ParseVersion(s string) (Version, error) {
	raw := s
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}

	var rev string
	if i := strings.IndexAny(s, "Vv"); i >= 0 {
		s, rev = s[:i], s[i+1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 || (len(parts) == 3 && rev != "") {
		return Version{}, fmt.Errorf("invalid version %q", raw)
	}
	if len(parts) == 3 {
		rev = parts[2]
	}

	var v Version
	var err error
	if v.Major, err = atoi(parts[0]); err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if v.Minor, err = atoi(parts[1]); err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if rev != "" {
		if v.Revision, err = atoi(rev); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", raw, err)
		}
	}
	return v, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative component %d", n)
	}
	return n, nil
}

// Compare orders versions by major, then minor, then revision.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmp(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmp(v.Minor, o.Minor)
	default:
		return cmp(v.Revision, o.Revision)
	}
}

func cmp(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// String renders the SD card form, e.g. "2.2V0018".
func (v Version) String() string {
	return fmt.Sprintf("%d.%dV%04d", v.Major, v.Minor, v.Revision)
}

// IsZero reports whether the version is unset.
func (v Version) IsZero() bool { return v == Version{} }
