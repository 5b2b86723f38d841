// Package refdata loads the read-only reference tables: known skills, skill
// synonyms, academic majors and position requirements. Tables are loaded
// once at startup and never mutated, so they are safe for concurrent readers.
package refdata

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Abraxas-365/sift/pkg/errx"
)

// Default file names inside the reference data directory.
const (
	SkillsFile    = "skills.csv"
	SynonymsFile  = "skill_synonyms.csv"
	MajorsFile    = "majors.csv"
	PositionsFile = "positions.csv"
)

// Tables holds the loaded reference data behind read-only accessors.
type Tables struct {
	canonical map[string]string
	majors    []string
	positions map[string][]string
	roleNames map[string]string
}

// Load reads the four CSV tables from dir.
func Load(dir string) (*Tables, error) {
	skills, err := readList(filepath.Join(dir, SkillsFile))
	if err != nil {
		return nil, err
	}
	synonyms, err := readPairs(filepath.Join(dir, SynonymsFile))
	if err != nil {
		return nil, err
	}
	majors, err := readList(filepath.Join(dir, MajorsFile))
	if err != nil {
		return nil, err
	}
	positions, err := readPairs(filepath.Join(dir, PositionsFile))
	if err != nil {
		return nil, err
	}

	posMap := make(map[string][]string, len(positions))
	for _, p := range positions {
		posMap[p[0]] = splitSkills(p[1])
	}
	return New(skills, pairsToMap(synonyms), majors, posMap), nil
}

// New builds Tables from already-parsed data. Tests inject fixtures here.
// synonyms maps an alternate spelling to its primary one; positions maps a
// role name to its required skills.
func New(skills []string, synonyms map[string]string, majors []string, positions map[string][]string) *Tables {
	t := &Tables{
		canonical: make(map[string]string, len(skills)+len(synonyms)),
		majors:    majors,
		positions: make(map[string][]string, len(positions)),
		roleNames: make(map[string]string, len(positions)),
	}

	for _, s := range skills {
		key := strings.ToLower(s)
		if _, dup := t.canonical[key]; dup {
			continue
		}
		t.canonical[key] = s
	}
	for alt, primary := range synonyms {
		canon := primary
		if c, ok := t.canonical[strings.ToLower(primary)]; ok {
			canon = c
		} else {
			t.canonical[strings.ToLower(primary)] = primary
		}
		t.canonical[strings.ToLower(alt)] = canon
	}

	for role, required := range positions {
		key := strings.ToLower(role)
		t.roleNames[key] = role
		canonical := make([]string, 0, len(required))
		for _, s := range required {
			canonical = append(canonical, t.CanonicalSkill(s))
		}
		t.positions[key] = canonical
	}
	return t
}

// Skills returns every known spelling to match against, canonical entries
// plus synonyms, lowercased and sorted.
func (t *Tables) Skills() []string {
	out := make([]string, 0, len(t.canonical))
	for spelling := range t.canonical {
		out = append(out, spelling)
	}
	sort.Strings(out)
	return out
}

// CanonicalSkill maps any known spelling to the primary list's casing.
// Unknown skills pass through unchanged.
func (t *Tables) CanonicalSkill(s string) string {
	if canon, ok := t.canonical[strings.ToLower(strings.TrimSpace(s))]; ok {
		return canon
	}
	return strings.TrimSpace(s)
}

// IsKnownSkill reports whether s is in the skill list or its synonyms.
func (t *Tables) IsKnownSkill(s string) bool {
	_, ok := t.canonical[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Majors returns the academic majors list.
func (t *Tables) Majors() []string { return t.majors }

// SkillsForRole resolves a role name (case-insensitive) to its required
// skills in canonical casing.
func (t *Tables) SkillsForRole(role string) ([]string, bool) {
	skills, ok := t.positions[strings.ToLower(strings.TrimSpace(role))]
	return skills, ok
}

// Roles returns every role name in the position table, sorted.
func (t *Tables) Roles() []string {
	out := make([]string, 0, len(t.roleNames))
	for _, name := range t.roleNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// headerWords are first-cell values that mark a header row to skip.
var headerWords = map[string]struct{}{
	"major": {}, "skill": {}, "position": {}, "keywords": {},
	"name": {}, "title": {}, "synonym": {}, "role": {},
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errx.Wrap(err, "failed to open reference table "+filepath.Base(path), errx.TypeInternal)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errx.Wrap(err, "failed to parse reference table "+filepath.Base(path), errx.TypeInternal)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		if _, isHeader := headerWords[strings.ToLower(strings.TrimSpace(rows[0][0]))]; isHeader {
			rows = rows[1:]
		}
	}
	return rows, nil
}

func readList(path string) ([]string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			out = append(out, strings.TrimSpace(row[0]))
		}
	}
	return out, nil
}

func readPairs(path string) ([][2]string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	var out [][2]string
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		first, second := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if first != "" && second != "" {
			out = append(out, [2]string{first, second})
		}
	}
	return out, nil
}

func pairsToMap(pairs [][2]string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p[0]] = p[1]
	}
	return m
}

func splitSkills(joined string) []string {
	var out []string
	for _, s := range strings.Split(joined, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
