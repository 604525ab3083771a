// Package views holds the REPL's in-memory view state.
package views

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/contracts"
)

// SearchView is the fetched contract list plus the user's current search
// term and sort toggle. Visible derives what to show; Stats always covers the
// whole list.
type SearchView struct {
	all          []contracts.Contract
	term         string
	sortByExpiry bool
}

func NewSearchView(list []contracts.Contract) *SearchView {
	v := &SearchView{}
	v.Replace(list)
	return v
}

// Replace swaps the whole list, keeping term and sort.
func (v *SearchView) Replace(list []contracts.Contract) {
	v.all = slices.Clone(list)
}

// Upsert replaces the contract with the same ID or appends c.
func (v *SearchView) Upsert(c contracts.Contract) {
	i := v.index(c.ID)
	if i < 0 {
		v.all = append(v.all, c)
		return
	}
	v.all[i] = c
}

// Remove evicts contract id and reports whether it was present.
func (v *SearchView) Remove(id string) bool {
	i := v.index(id)
	if i < 0 {
		return false
	}
	v.all = slices.Delete(v.all, i, i+1)
	return true
}

func (v *SearchView) Find(id string) (contracts.Contract, bool) {
	i := v.index(id)
	if i < 0 {
		return contracts.Contract{}, false
	}
	return v.all[i], true
}

func (v *SearchView) index(id string) int {
	return slices.IndexFunc(v.all, func(c contracts.Contract) bool { return c.ID == id })
}

func (v *SearchView) Len() int { return len(v.all) }

func (v *SearchView) SetTerm(term string) { v.term = term }

func (v *SearchView) Term() string { return v.term }

// ToggleSort flips expiry ordering and returns the new setting.
func (v *SearchView) ToggleSort() bool {
	v.sortByExpiry = !v.sortByExpiry
	return v.sortByExpiry
}

func (v *SearchView) SetSortByExpiry(on bool) { v.sortByExpiry = on }

func (v *SearchView) SortByExpiry() bool { return v.sortByExpiry }

// Visible is the filtered, optionally sorted list.
func (v *SearchView) Visible() []contracts.Contract {
	out := contracts.Filter(v.all, v.term)
	if v.sortByExpiry {
		out = contracts.SortByExpiry(out)
	}
	return out
}

// Stats aggregates over every contract, ignoring the search term.
func (v *SearchView) Stats(asOf time.Time) contracts.Stats {
	return contracts.Aggregate(v.all, asOf)
}
