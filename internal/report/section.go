package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Section names a filterable part of the report.
type Section string

const (
	SectionMoon    Section = "moon"
	SectionPlanets Section = "planets"
	SectionISS     Section = "iss"
	SectionMeteors Section = "meteors"
	SectionEvents  Section = "events"
	SectionDeepSky Section = "deepsky"
)

// Sections lists every filterable section.
var Sections = []Section{SectionMoon, SectionPlanets, SectionISS, SectionMeteors, SectionEvents, SectionDeepSky}

var ErrUnknownSection = errors.New("unknown section")

func ParseSection(s string) (Section, error) {
	sec := Section(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Sections, sec) {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownSection, s, validSections())
	}
	return sec, nil
}

// ParseSectionList parses a comma-separated list. An empty string yields nil,
// meaning no filter.
func ParseSectionList(csv string) ([]Section, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var out []Section
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sec, err := ParseSection(part)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}

func validSections() string {
	names := make([]string, len(Sections))
	for i, s := range Sections {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
