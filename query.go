// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hyper

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query string limits, following the common qs defaults.
const (
	queryDepth      = 5    // bracket segments parsed per key
	queryArrayLimit = 20   // largest index that still builds an array
	queryParamLimit = 1000 // pairs parsed per query string
)

// queryList is an array under construction. Indices may arrive out of
// order or sparse; they are compacted when the query is finished.
type queryList struct {
	items map[int]any
	next  int
}

func (l *queryList) set(i int, v any) {
	l.items[i] = v
	if i >= l.next {
		l.next = i + 1
	}
}

func newQueryList(vs ...any) *queryList {
	l := &queryList{items: make(map[int]any, len(vs))}
	for _, v := range vs {
		l.set(l.next, v)
	}
	return l
}

// parseQuery parses raw, the part of a URL after '?'.
func parseQuery(raw string) map[string]any {
	root := map[string]any{}
	pairs := strings.Split(raw, "&")
	if len(pairs) > queryParamLimit {
		pairs = pairs[:queryParamLimit]
	}
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescapeQuery(key)
		if key == "" {
			continue
		}
		segs := splitQueryKey(key)
		root[segs[0]] = assignQuery(root[segs[0]], segs[1:], unescapeQuery(value))
	}
	for k, v := range root {
		root[k] = finishQuery(v)
	}
	return root
}

func unescapeQuery(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}

// splitQueryKey splits "a[b][]" into "a", "b", "". Text outside the
// brackets after the first segment is dropped. Segments past queryDepth
// stay together as one literal segment.
func splitQueryKey(key string) []string {
	open, end, ok := querySegment(key)
	if !ok {
		return []string{key}
	}
	segs := make([]string, 0, 4)
	if open > 0 {
		segs = append(segs, key[:open])
	}
	rest := key
	for depth := 0; ok; depth++ {
		if depth == queryDepth {
			segs = append(segs, rest[open:])
			break
		}
		segs = append(segs, rest[open+1:end])
		rest = rest[end+1:]
		open, end, ok = querySegment(rest)
	}
	return segs
}

// querySegment finds the first bracket pair in s with no '[' inside it.
func querySegment(s string) (open, end int, ok bool) {
	for base := 0; ; {
		e := strings.IndexByte(s[base:], ']')
		if e < 0 {
			return 0, 0, false
		}
		e += base
		if o := strings.LastIndexByte(s[base:e], '['); o >= 0 {
			return base + o, e, true
		}
		base = e + 1
	}
}

// queryIndex reports whether seg is a canonical array index small enough
// to build an array.
func queryIndex(seg string) (int, bool) {
	i, err := strconv.Atoi(seg)
	if err != nil || i < 0 || i > queryArrayLimit || strconv.Itoa(i) != seg {
		return 0, false
	}
	return i, true
}

// assignQuery stores value at segs below node and returns the new node.
func assignQuery(node any, segs []string, value string) any {
	if len(segs) == 0 {
		switch n := node.(type) {
		case nil:
			return value
		case *queryList:
			n.set(n.next, value)
			return n
		case map[string]any:
			n[strconv.Itoa(len(n))] = value
			return n
		default:
			return newQueryList(n, value)
		}
	}
	seg, rest := segs[0], segs[1:]
	switch n := node.(type) {
	case *queryList:
		if seg == "" {
			n.set(n.next, assignQuery(nil, rest, value))
			return n
		}
		if i, ok := queryIndex(seg); ok {
			n.set(i, assignQuery(n.items[i], rest, value))
			return n
		}
		m := listToMap(n)
		m[seg] = assignQuery(m[seg], rest, value)
		return m
	case map[string]any:
		if seg == "" {
			seg = strconv.Itoa(len(n))
		}
		n[seg] = assignQuery(n[seg], rest, value)
		return n
	case nil:
		if seg == "" {
			return newQueryList(assignQuery(nil, rest, value))
		}
		if i, ok := queryIndex(seg); ok {
			l := newQueryList()
			l.set(i, assignQuery(nil, rest, value))
			return l
		}
		return map[string]any{seg: assignQuery(nil, rest, value)}
	default:
		// A plain value followed by a nested key: both become elements.
		if _, ok := queryIndex(seg); ok || seg == "" {
			return newQueryList(n, assignQuery(nil, rest, value))
		}
		return newQueryList(n, map[string]any{seg: assignQuery(nil, rest, value)})
	}
}

// listToMap keys the compacted elements of l by position.
func listToMap(l *queryList) map[string]any {
	m := make(map[string]any, len(l.items))
	for i, v := range l.compact() {
		m[strconv.Itoa(i)] = v
	}
	return m
}

// compact returns the elements of l in index order, holes removed.
func (l *queryList) compact() []any {
	keys := make([]int, 0, len(l.items))
	for i := range l.items {
		keys = append(keys, i)
	}
	slices.Sort(keys)
	out := make([]any, 0, len(keys))
	for _, i := range keys {
		out = append(out, l.items[i])
	}
	return out
}

// finishQuery converts lists to compacted slices, recursively.
func finishQuery(node any) any {
	switch n := node.(type) {
	case *queryList:
		out := n.compact()
		for i, v := range out {
			out[i] = finishQuery(v)
		}
		return out
	case map[string]any:
		for k, v := range n {
			n[k] = finishQuery(v)
		}
		return n
	default:
		return n
	}
}
