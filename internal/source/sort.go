package source

import (
	"sort"

	"github.com/maruel/natural"
)

// Sort method identifiers used by the settings file.
const (
	SortNatural = iota
	SortSimple
	SortEntryOrder
)

// SortStrategy orders a listing.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the settings-file name of the strategy
	Name() string
	// ID returns the numeric identifier
	ID() int
}

// NaturalSortStrategy orders "2.png" before "10.png".
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := clonePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].Path, result[j].Path)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "natural" }

func (s *NaturalSortStrategy) ID() int { return SortNatural }

// SimpleSortStrategy implements byte-wise lexicographical sorting.
type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(images []ImagePath) []ImagePath {
	result := clonePaths(images)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "simple" }

func (s *SimpleSortStrategy) ID() int { return SortSimple }

// EntryOrderSortStrategy preserves the enumeration order.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(images []ImagePath) []ImagePath {
	return clonePaths(images)
}

func (s *EntryOrderSortStrategy) Name() string { return "entry" }

func (s *EntryOrderSortStrategy) ID() int { return SortEntryOrder }

func clonePaths(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	return result
}

// GetSortStrategy returns the strategy for id, falling back to natural order.
func GetSortStrategy(id int) SortStrategy {
	switch id {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// SortByName looks a strategy up by its settings-file name.
func SortByName(name string) (SortStrategy, bool) {
	for _, s := range GetAllSortStrategies() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// GetAllSortStrategies returns all available sort strategies.
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&SimpleSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
