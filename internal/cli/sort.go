package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/greenden007/LOL-ProPlay-DraftAnalysis/internal/golgg"
)

// SortOrder represents the available orderings of patch statistics
type SortOrder string

const (
	SortByPage     SortOrder = "page"
	SortByPatch    SortOrder = "patch"
	SortByPresence SortOrder = "presence"
	SortByChampion SortOrder = "champion"
)

func (o SortOrder) valid() bool {
	switch o {
	case SortByPage, SortByPatch, SortByPresence, SortByChampion:
		return true
	}
	return false
}

// sortPatchStats orders stats in place. SortByPage keeps the page order.
func sortPatchStats(stats []golgg.PatchStat, order SortOrder) {
	switch order {
	case SortByPatch:
		sort.SliceStable(stats, func(i, j int) bool {
			if stats[i].Patch != stats[j].Patch {
				return comparePatch(stats[i].Patch, stats[j].Patch)
			}
			return comparePresence(stats[i], stats[j])
		})
	case SortByPresence:
		sort.SliceStable(stats, func(i, j int) bool {
			return comparePresence(stats[i], stats[j])
		})
	case SortByChampion:
		sort.SliceStable(stats, func(i, j int) bool {
			if stats[i].Champion != stats[j].Champion {
				return strings.ToLower(stats[i].Champion) < strings.ToLower(stats[j].Champion)
			}
			return comparePatch(stats[i].Patch, stats[j].Patch)
		})
	}
}

// comparePresence puts higher presence first and unknown presence last.
func comparePresence(i, j golgg.PatchStat) bool {
	if i.Percentage != nil && j.Percentage != nil {
		return *i.Percentage > *j.Percentage
	}
	return i.Percentage != nil && j.Percentage == nil
}

// comparePatch orders version labels numerically ("14.9" before "14.10").
// Labels that are not dotted numbers sort after those that are.
func comparePatch(a, b string) bool {
	pa, okA := parsePatch(a)
	pb, okB := parsePatch(b)

	if okA && okB {
		for k := 0; k < len(pa) && k < len(pb); k++ {
			if pa[k] != pb[k] {
				return pa[k] < pb[k]
			}
		}
		return len(pa) < len(pb)
	}
	if okA != okB {
		return okA
	}
	return a < b
}

func parsePatch(p string) ([]int, bool) {
	parts := strings.Split(p, ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}
