package client

import (
	"context"
	"strings"

	"school-directory/models"
)

type LoadState int

const (
	Loading LoadState = iota
	Loaded
	Failed
)

// Filter is the search box plus the city and state selectors. Empty fields
// match everything.
type Filter struct {
	Term  string
	City  string
	State string
}

// Match reports whether s passes f: Term is a case-insensitive substring of
// name, address or city, and City/State equal ignoring case.
func (f Filter) Match(s models.School) bool {
	term := strings.ToLower(f.Term)
	matchesSearch := strings.Contains(strings.ToLower(s.Name), term) ||
		strings.Contains(strings.ToLower(s.Address), term) ||
		strings.Contains(strings.ToLower(s.City), term)
	matchesCity := f.City == "" || strings.EqualFold(s.City, f.City)
	matchesState := f.State == "" || strings.EqualFold(s.State, f.State)
	return matchesSearch && matchesCity && matchesState
}

func FilterSchools(schools []models.School, f Filter) []models.School {
	out := []models.School{}
	for _, s := range schools {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Listing holds the schools fetched once from the API and filters them in
// memory.
type Listing struct {
	client  *Client
	state   LoadState
	schools []models.School
	err     string

	Filter Filter
}

func NewListing(c *Client) *Listing {
	return &Listing{client: c, state: Loading}
}

// Load fetches every school. Filters are kept.
func (l *Listing) Load(ctx context.Context) error {
	l.state = Loading
	l.err = ""
	schools, err := l.client.ListSchools(ctx)
	if err != nil {
		l.state = Failed
		if IsAPIError(err) {
			l.err = "Failed to fetch schools"
		} else {
			l.err = "Error fetching schools"
		}
		return err
	}
	l.schools = schools
	l.state = Loaded
	return nil
}

// Retry is the "Try Again" action.
func (l *Listing) Retry(ctx context.Context) error {
	return l.Load(ctx)
}

func (l *Listing) State() LoadState { return l.state }

func (l *Listing) Err() string { return l.err }

// All returns the loaded schools unfiltered.
func (l *Listing) All() []models.School { return l.schools }

func (l *Listing) Results() []models.School {
	return FilterSchools(l.schools, l.Filter)
}

func (l *Listing) Count() int {
	return len(l.Results())
}

// Cities lists the distinct cities of the loaded schools in first-seen order.
func (l *Listing) Cities() []string {
	return distinct(l.schools, func(s models.School) string { return s.City })
}

func (l *Listing) States() []string {
	return distinct(l.schools, func(s models.School) string { return s.State })
}

func (l *Listing) ClearFilters() {
	l.Filter = Filter{}
}

func distinct(schools []models.School, key func(models.School) string) []string {
	seen := make(map[string]struct{}, len(schools))
	out := []string{}
	for _, s := range schools {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
