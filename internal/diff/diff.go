// Package diff reconciles two independently captured grant snapshots of the
// same account.
package diff

import (
	"errors"
	"fmt"
	"time"

	"github.com/Snowflake-Labs/sfgrantreport-sub000/internal/grants"
	mapset "github.com/deckarep/golang-set/v2"
)

type Kind string

const (
	Different Kind = "DIFFERENT"
	Missing   Kind = "MISSING"
	Extra     Kind = "EXTRA"
)

// CreatedAtTolerance absorbs sub-second precision loss between the
// interactive and historical capture paths. Storage keeps full precision,
// only the comparison is tolerant.
const CreatedAtTolerance = time.Second

// ErrEmptySide aborts the whole comparison: partial output would be
// indistinguishable from a mass revocation.
var ErrEmptySide = errors.New("empty grant set")

// Difference is one comparison outcome. Left is nil for EXTRA, Right is nil
// for MISSING, both are set for DIFFERENT.
type Difference struct {
	Kind   Kind
	Fields []string // Differing non-key fields, for DIFFERENT.
	Left   *grants.Grant
	Right  *grants.Grant
}

// Grant returns the side carrying the compared key fields.
func (d Difference) Grant() grants.Grant {
	if d.Left != nil {
		return *d.Left
	}
	return *d.Right
}

// Compare classifies every grant of both sides in two passes: left against
// right, then right-only leftovers. Matching is by identity key; matched
// entries compare grantedBy, createdAt within tolerance and grant option.
// Output keeps insertion order of pass 1 then pass 2.
func Compare(left, right []grants.Grant) (out []Difference, err error) {
	if len(left) == 0 {
		return nil, fmt.Errorf("left: %w", ErrEmptySide)
	}
	if len(right) == 0 {
		return nil, fmt.Errorf("right: %w", ErrEmptySide)
	}

	byKey := make(map[string]*grants.Grant, len(right))
	for i := range right {
		g := &right[i]
		if _, ok := byKey[g.Key()]; !ok {
			byKey[g.Key()] = g
		}
	}

	consumed := mapset.NewThreadUnsafeSet[string]()
	for i := range left {
		l := &left[i]
		r, ok := byKey[l.Key()]
		if !ok {
			out = append(out, Difference{Kind: Missing, Left: l})
			continue
		}
		consumed.Add(l.Key())
		fields := compareFields(*l, *r)
		if len(fields) > 0 {
			out = append(out, Difference{Kind: Different, Fields: fields, Left: l, Right: r})
		}
	}

	for i := range right {
		g := &right[i]
		if consumed.Contains(g.Key()) {
			continue
		}
		out = append(out, Difference{Kind: Extra, Right: g})
	}
	return out, nil
}

// compareFields checks the fields of two grants matched by key. GrantedBy
// is checked even though the key carries it, so the result stays correct
// under a key scheme that drops it.
func compareFields(l, r grants.Grant) (fields []string) {
	if l.GrantedBy != "" && r.GrantedBy != "" && l.GrantedBy != r.GrantedBy {
		fields = append(fields, "GrantedBy")
	}
	if !l.CreatedAt.IsZero() && !r.CreatedAt.IsZero() {
		delta := l.CreatedAt.Sub(r.CreatedAt)
		if delta < 0 {
			delta = -delta
		}
		if delta > CreatedAtTolerance {
			fields = append(fields, "CreatedOn")
		}
	}
	if l.WithGrantOption != r.WithGrantOption {
		fields = append(fields, "WithGrantOption")
	}
	return
}
