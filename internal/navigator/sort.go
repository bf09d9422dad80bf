package navigator

import (
	"cmp"

	"github.com/pixil98/go-buildsystem/internal/settings"
	"github.com/pixil98/go-buildsystem/internal/world"
	"golang.org/x/text/cases"
)

type comparator func(a, b world.Record) int

var comparators = map[settings.WorldSort]comparator{
	settings.SortNameAToZ: func(a, b world.Record) int {
		return byName(a, b)
	},
	settings.SortNameZToA: func(a, b world.Record) int {
		return cmp.Or(-compareFolded(a.Name, b.Name), cmp.Compare(a.Seq, b.Seq))
	},
	settings.SortProjectAToZ: func(a, b world.Record) int {
		return cmp.Or(compareFolded(a.Project, b.Project), byName(a, b))
	},
	settings.SortProjectZToA: func(a, b world.Record) int {
		return cmp.Or(-compareFolded(a.Project, b.Project), byName(a, b))
	},
	settings.SortStatusNotStarted: statusFirst(world.StatusNotStarted),
	settings.SortStatusFinished:   statusFirst(world.StatusFinished),
	settings.SortNewestFirst: func(a, b world.Record) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), byName(a, b))
	},
	settings.SortOldestFirst: func(a, b world.Record) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), byName(a, b))
	},
}

func comparatorFor(s settings.WorldSort) comparator {
	if c, ok := comparators[s]; ok {
		return c
	}
	return comparators[settings.SortNameAToZ]
}

// byName orders case-insensitively by name, then by registry order.
func byName(a, b world.Record) int {
	return cmp.Or(compareFolded(a.Name, b.Name), cmp.Compare(a.Seq, b.Seq))
}

// statusFirst moves worlds with the given status to the front and keeps
// registry order everywhere else.
func statusFirst(s world.Status) comparator {
	rank := func(r world.Record) int {
		if r.Status == s {
			return 0
		}
		return 1
	}
	return func(a, b world.Record) int {
		return cmp.Or(cmp.Compare(rank(a), rank(b)), cmp.Compare(a.Seq, b.Seq))
	}
}

func compareFolded(a, b string) int {
	fold := cases.Fold()
	return cmp.Compare(fold.String(a), fold.String(b))
}
