package parsing

import "strings"

// Section is the bucket a line is assigned to during segmentation.
type Section int

const (
	SectionSummary Section = iota
	SectionExperience
	SectionEducation
	SectionSkills
)

func (s Section) String() string {
	switch s {
	case SectionSummary:
		return "summary"
	case SectionExperience:
		return "experience"
	case SectionEducation:
		return "education"
	case SectionSkills:
		return "skills"
	default:
		return "unknown"
	}
}

// triggers are checked in order; the first match wins.
var triggers = []struct {
	keyword string
	section Section
}{
	{"experience", SectionExperience},
	{"education", SectionEducation},
	{"skill", SectionSkills},
}

// Trigger reports the section a heading line switches to. Matching is a
// case-insensitive substring test.
func Trigger(line string) (Section, bool) {
	lower := strings.ToLower(line)
	for _, t := range triggers {
		if strings.Contains(lower, t.keyword) {
			return t.section, true
		}
	}
	return SectionSummary, false
}

// Buckets holds the items assigned to each section, in input order.
type Buckets[T any] map[Section][]T

// Segment assigns items to sections in a single forward pass, starting in
// the summary section. Trigger lines switch the current section and are
// not kept.
func Segment[T any](items []T, text func(T) string) Buckets[T] {
	buckets := Buckets[T]{}
	current := SectionSummary
	for _, item := range items {
		if next, ok := Trigger(text(item)); ok {
			current = next
			continue
		}
		buckets[current] = append(buckets[current], item)
	}
	return buckets
}

// SegmentLines is Segment for plain lines.
func SegmentLines(lines []string) Buckets[string] {
	return Segment(lines, func(s string) string { return s })
}
