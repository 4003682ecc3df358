package editor

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/MrJamesThe3rd/invoi/internal/urlstate"
)

// Location is an in-memory address bar: a base URL plus a replaceable query.
type Location struct {
	base string

	mu    sync.Mutex
	query url.Values
}

var _ Navigator = (*Location)(nil)

// NewLocation parses a share link. Its query becomes the initial query.
func NewLocation(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing link: %w", err)
	}

	query := u.Query()

	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""

	return &Location{base: u.String(), query: query}, nil
}

func (l *Location) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()

	return cloneValues(l.query)
}

func (l *Location) ReplaceQuery(q url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query = cloneValues(q)
}

// URL is the full link for the current query.
func (l *Location) URL() string {
	return urlstate.ShareURL(l.base, l.Query())
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}

	return out
}
