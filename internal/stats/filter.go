package stats

import (
	"iter"
	"strings"
	"time"
)

// allToken selects every module or company when used as a filter value.
const allToken = "all"

// FilterSet is the resolved query input. Order of each list determines the
// order of rows and column groups in the report.
type FilterSet struct {
	Project   string
	Releases  []string
	Modules   []string
	Companies []string
}

// Combination is one (release, module, company) triple drawn from a FilterSet.
type Combination struct {
	Release string
	Module  string
	Company string

	ReleaseIndex int
	ModuleIndex  int
	CompanyIndex int
}

// Window bounds the statistics to a date range. Zero values are not sent.
type Window struct {
	Since time.Time
	Until time.Time
}

// Params is the query string sent for one combination.
type Params struct {
	ProjectType string `url:"project_type"`
	Release     string `url:"release"`
	Module      string `url:"module"`
	Company     string `url:"company"`
	StartDate   int64  `url:"start_date,omitempty"`
	EndDate     int64  `url:"end_date,omitempty"`
}

// Total returns the number of combinations the set enumerates.
func (f FilterSet) Total() int {
	return len(f.Releases) * len(f.Modules) * len(f.Companies)
}

// Combinations yields every combination with release outermost and company
// innermost. The sequence can be ranged over more than once.
func (f FilterSet) Combinations() iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		for ri, release := range f.Releases {
			for mi, module := range f.Modules {
				for ci, company := range f.Companies {
					c := Combination{
						Release:      release,
						Module:       module,
						Company:      company,
						ReleaseIndex: ri,
						ModuleIndex:  mi,
						CompanyIndex: ci,
					}
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}

// Params maps a combination to its request parameters. Module and company
// "all" turn into an empty filter; release "all" is sent as is because the
// API treats it as a release name.
func (f FilterSet) Params(c Combination, w Window) Params {
	p := Params{
		ProjectType: strings.ToLower(f.Project),
		Release:     strings.ToLower(c.Release),
		Module:      filterValue(c.Module),
		Company:     filterValue(c.Company),
	}
	if !w.Since.IsZero() {
		p.StartDate = w.Since.Unix()
	}
	if !w.Until.IsZero() {
		p.EndDate = w.Until.Unix()
	}
	return p
}

func filterValue(s string) string {
	if strings.EqualFold(s, allToken) {
		return ""
	}
	return strings.ToLower(s)
}
