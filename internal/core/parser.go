package core

// parser.go turns one free-form roster line into a Participant.
//
// Tokens carry no schema, so each field is found by a classification pass
// that claims tokens out of a shared pool. Pass order matters: every pass only
// sees what earlier passes left behind.
//
//  1. numbers        first = group id, second = id (one number = id)
//  2. gender         first exact 남/여
//  3. name           first 2-4 syllable Hangul word that is not a keyword
//  4. school         first token containing a school keyword
//  5. region/level   gazetteer match / exact level keyword
//  6. fallback       longest leftover = school, rest = name
//  7. defaults

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	namePattern   = regexp.MustCompile(`^[가-힣]{2,4}$`)

	// listMarker matches an enumeration prefix such as "1. " or "12)".
	listMarker = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)

	tokenSeparators = func(r rune) bool { return r == ',' || r == '\t' }
)

// ParseLine parses a single roster line. It never fails: anything the
// heuristics cannot recover is filled with a default, so every field of the
// result is non-empty.
func ParseLine(line string, lineIndex int) Participant {
	var p Participant

	pool, ordinal := tokenize(line)

	// Numbers and gender share one scan, like a person reading left to right.
	var numbers []string
	rest := make([]string, 0, len(pool))
	for _, tok := range pool {
		switch {
		case digitsPattern.MatchString(tok):
			numbers = append(numbers, tok)
		case (tok == GenderMale || tok == GenderFemale) && p.Gender == "":
			p.Gender = tok
		default:
			rest = append(rest, tok)
		}
	}
	pool = rest

	switch {
	case len(numbers) > 1:
		p.GroupID, p.ID = numbers[0], numbers[1]
	case len(numbers) == 1:
		p.ID = numbers[0]
	}

	if i := slices.IndexFunc(pool, isNameCandidate); i >= 0 {
		p.Name = pool[i]
		pool = slices.Delete(pool, i, i+1)
	}

	if i := slices.IndexFunc(pool, hasSchoolKeyword); i >= 0 {
		p.School = pool[i]
		pool = slices.Delete(pool, i, i+1)
	}

	var regionParts []string
	rest = make([]string, 0, len(pool))
	for _, tok := range pool {
		if isRegion(tok) {
			regionParts = append(regionParts, tok)
			continue
		}
		if lvl, ok := levelKeywords[tok]; ok && p.Level == "" {
			p.Level = lvl
			continue
		}
		rest = append(rest, tok)
	}
	pool = rest
	if len(regionParts) > 0 {
		p.Region = strings.Join(regionParts, " ")
	}

	if len(pool) > 0 {
		if p.School == "" {
			slices.SortStableFunc(pool, func(a, b string) int {
				return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
			})
			p.School, pool = pool[0], pool[1:]
		}
		if p.Name == "" && len(pool) > 0 {
			p.Name = strings.Join(pool, " ")
		}
	}

	applyDefaults(&p, ordinal, lineIndex)
	return p
}

// tokenize splits on commas and tabs, trims each piece, strips one pair of
// enclosing double quotes and drops empty pieces. A leading enumeration
// marker on the first token is split off and returned as ordinal.
func tokenize(line string) (tokens []string, ordinal string) {
	for _, raw := range strings.FieldsFunc(line, tokenSeparators) {
		tok := unquote(strings.TrimSpace(raw))
		if tok == "" {
			continue
		}
		if len(tokens) == 0 && ordinal == "" {
			if m := listMarker.FindStringSubmatch(tok); m != nil && !digitsPattern.MatchString(m[2]) {
				ordinal = m[1]
				tok = strings.TrimSpace(m[2])
				if tok == "" {
					continue
				}
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens, ordinal
}

func unquote(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return strings.TrimSpace(tok[1 : len(tok)-1])
	}
	return tok
}

func isNameCandidate(tok string) bool {
	if !namePattern.MatchString(tok) {
		return false
	}
	if _, ok := levelKeywords[tok]; ok {
		return false
	}
	if _, ok := provinceSet[tok]; ok {
		return false
	}
	_, ok := citySet[tok]
	return !ok
}

func hasSchoolKeyword(tok string) bool {
	for _, kw := range schoolKeywords {
		if strings.Contains(tok, kw) {
			return true
		}
	}
	return false
}

func isRegion(tok string) bool {
	for _, prov := range provinces {
		if strings.HasPrefix(tok, prov) {
			return true
		}
	}
	for _, city := range cities {
		if strings.Contains(tok, city) {
			return true
		}
	}
	return false
}

func applyDefaults(p *Participant, ordinal string, lineIndex int) {
	if p.ID == "" {
		if ordinal != "" {
			p.ID = ordinal
		} else {
			p.ID = strconv.Itoa(lineIndex + 1)
		}
	}
	if p.Level == "" && p.School != "" {
		p.Level = levelFromSchool(p.School)
	}
	if p.Level == "" {
		p.Level = LevelOther
	}
	if p.Region == "" {
		p.Region = Unclassified
	}
	if p.Name == "" {
		p.Name = placeholderNamePrefix + p.ID
	}
	if p.Gender == "" {
		p.Gender = GenderUnknown
	}
	if p.School == "" {
		p.School = Unclassified
	}
}

func levelFromSchool(school string) Level {
	for _, hint := range schoolLevelHints {
		if strings.Contains(school, hint.substr) {
			return hint.level
		}
	}
	return ""
}
