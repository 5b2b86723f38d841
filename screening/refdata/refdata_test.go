package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, SkillsFile, "skill\nPython\nSQL\nGo\n")
	writeTable(t, dir, SynonymsFile, "synonym,skill\nGolang,Go\nPostgres,PostgreSQL\n")
	writeTable(t, dir, MajorsFile, "major\nComputer Science\nMathematics\n")
	writeTable(t, dir, PositionsFile, "role,skills\nData Engineer,\"Python, SQL, Docker\"\n")

	tables, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, tables.IsKnownSkill("python"))
	assert.True(t, tables.IsKnownSkill("Golang"))
	assert.Equal(t, []string{"Computer Science", "Mathematics"}, tables.Majors())

	skills, ok := tables.SkillsForRole("data engineer")
	require.True(t, ok)
	assert.Equal(t, []string{"Python", "SQL", "Docker"}, skills)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestCanonicalSkill(t *testing.T) {
	tables := New(
		[]string{"Go", "Machine Learning"},
		map[string]string{"Golang": "Go", "ML": "Machine Learning", "Postgres": "PostgreSQL"},
		nil,
		nil,
	)

	t.Run("synonyms map to the primary spelling", func(t *testing.T) {
		assert.Equal(t, "Go", tables.CanonicalSkill("golang"))
		assert.Equal(t, "Machine Learning", tables.CanonicalSkill("ml"))
	})

	t.Run("primary spellings keep their casing", func(t *testing.T) {
		assert.Equal(t, "Go", tables.CanonicalSkill("GO"))
	})

	t.Run("synonym target absent from skill list is added", func(t *testing.T) {
		assert.Equal(t, "PostgreSQL", tables.CanonicalSkill("postgres"))
		assert.True(t, tables.IsKnownSkill("PostgreSQL"))
	})

	t.Run("unknown skills pass through trimmed", func(t *testing.T) {
		assert.Equal(t, "Fortran", tables.CanonicalSkill("  Fortran "))
	})
}

func TestSkillsSpellingsLowercasedSorted(t *testing.T) {
	tables := New([]string{"SQL", "Go"}, map[string]string{"Golang": "Go"}, nil, nil)
	assert.Equal(t, []string{"go", "golang", "sql"}, tables.Skills())
}

func TestSkillsForRoleCanonicalizesRequirements(t *testing.T) {
	tables := New(
		[]string{"Go"},
		map[string]string{"Golang": "Go"},
		nil,
		map[string][]string{"Backend Developer": {"Golang", "Docker"}},
	)

	skills, ok := tables.SkillsForRole("Backend Developer")
	require.True(t, ok)
	assert.Equal(t, []string{"Go", "Docker"}, skills)
}

func TestRolesSorted(t *testing.T) {
	tables := New(nil, nil, nil, map[string][]string{
		"QA Engineer":       {"Python"},
		"Backend Developer": {"Go"},
	})
	assert.Equal(t, []string{"Backend Developer", "QA Engineer"}, tables.Roles())
}

func TestUnknownRole(t *testing.T) {
	tables := New(nil, nil, nil, nil)
	_, ok := tables.SkillsForRole("Astronaut")
	assert.False(t, ok)
}

func TestDuplicateSkillsIgnored(t *testing.T) {
	tables := New([]string{"Python", "python"}, nil, nil, nil)
	assert.Equal(t, []string{"python"}, tables.Skills())
	assert.Equal(t, "Python", tables.CanonicalSkill("PYTHON"))
}
