package vine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// parsePath turns a dot-path expression like "user.address.city" into a
// getter that walks the scope's root data. Parsed segment lists are interned
// by xxhash of the source string, so many watchers over the same path share
// one parse.
func (rt *Runtime) parsePath(path string) (GetterFunc, error) {
	key := xxhash.Sum64String(path)
	segs, ok := rt.pathCache[key]
	if !ok {
		var err error
		segs, err = splitPath(path)
		if err != nil {
			return nil, err
		}
		rt.pathCache[key] = segs
	}

	return func(sc *Scope) any {
		var cur any = sc.Data()
		for _, seg := range segs {
			switch c := cur.(type) {
			case *Map:
				cur = c.Get(seg)
			case *Slice:
				idx, err := strconv.Atoi(seg)
				if err != nil {
					return nil
				}
				cur = c.Get(idx)
			default:
				return nil
			}
		}
		return cur
	}, nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadExpression)
	}
	for _, r := range path {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '$' {
			return nil, fmt.Errorf("%w: %q", ErrBadExpression, path)
		}
	}
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrBadExpression, path)
		}
	}
	return segs, nil
}
