package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillq/drillq/internal/spacedrep"
)

func scenario(id string) Scenario {
	return Scenario{
		ID:       id,
		Sport:    SportBaseball,
		Level:    LevelYouth,
		Category: "cutoffs",
		Prompt:   "prompt " + id,
		Best:     Option{Label: "best", Description: "best d", CoachingCue: "cue"},
		OK:       Option{Label: "ok", Description: "ok d"},
		Bad:      Option{Label: "bad", Description: "bad d"},
	}
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", c.Version())
	assert.Equal(t, 12, c.Len())

	for _, s := range c.Scenarios() {
		assert.True(t, s.Sport.Valid(), "scenario %s sport %q", s.ID, s.Sport)
		assert.True(t, s.Level.Valid(), "scenario %s level %q", s.ID, s.Level)
		assert.NotEmpty(t, s.Best.CoachingCue, "scenario %s best cue", s.ID)
	}
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New("v1.0.0", []Scenario{scenario("a"), scenario("b"), scenario("a")})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestGet(t *testing.T) {
	c, err := New("v1.0.0", []Scenario{scenario("a"), scenario("b")})
	require.NoError(t, err)

	s, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b", s.ID)
	assert.True(t, c.Has("a"))

	_, err = c.Get("zzz")
	assert.ErrorIs(t, err, ErrUnknownScenario)
	assert.False(t, c.Has("zzz"))
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Scenarios())
	_, err := c.Get("a")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestFilter(t *testing.T) {
	c := MustBuiltin()

	tests := []struct {
		name   string
		filter Filter
		check  func(Scenario) bool
	}{
		{"sport", Filter{Sport: SportSoftball}, func(s Scenario) bool { return s.Sport == SportSoftball }},
		{"level", Filter{Level: LevelCollege}, func(s Scenario) bool { return s.Level == LevelCollege }},
		{"category case-insensitive", Filter{Category: "Bunt Coverage"}, func(s Scenario) bool { return s.Category == "bunt coverage" }},
		{"position", Filter{Position: PositionCatcher}, func(s Scenario) bool { return s.Position == PositionCatcher }},
		{"combined", Filter{Sport: SportBaseball, Category: "cutoffs"}, func(s Scenario) bool {
			return s.Sport == SportBaseball && s.Category == "cutoffs"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.filter)
			want := 0
			for _, s := range c.Scenarios() {
				if tt.check(s) {
					want++
				}
			}
			require.Equal(t, want, got.Len())
			require.NotZero(t, got.Len())
			for _, s := range got.Scenarios() {
				assert.True(t, tt.check(s), "unexpected scenario %s", s.ID)
				assert.True(t, got.Has(s.ID))
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Softball ", "HIGH_SCHOOL", " cutoffs ", "ss")
	require.NoError(t, err)
	assert.Equal(t, Filter{Sport: SportSoftball, Level: LevelHighSchool, Category: "cutoffs", Position: PositionShortstop}, f)

	f, err = ParseFilter("", "", "", "")
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	for _, bad := range [][4]string{
		{"cricket", "", "", ""},
		{"", "pro", "", ""},
		{"", "", "", "DH"},
	} {
		_, err := ParseFilter(bad[0], bad[1], bad[2], bad[3])
		assert.Error(t, err, "%v", bad)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	c := MustBuiltin()
	got := c.Filter(Filter{Sport: SportBaseball})

	var want []string
	for _, s := range c.Scenarios() {
		if s.Sport == SportBaseball {
			want = append(want, s.ID)
		}
	}
	var ids []string
	for _, s := range got.Scenarios() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, want, ids)
	assert.Equal(t, c.Version(), got.Version())
}

func TestFilter_ZeroReturnsSame(t *testing.T) {
	c := MustBuiltin()
	assert.Same(t, c, c.Filter(Filter{}))
}

func TestCategories(t *testing.T) {
	c, err := New("v1.0.0", []Scenario{
		{ID: "a", Category: "cutoffs"},
		{ID: "b", Category: "bunts"},
		{ID: "c", Category: "cutoffs"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cutoffs", "bunts"}, c.Categories())
}

func TestCheckFilter(t *testing.T) {
	c := MustBuiltin()

	assert.NoError(t, c.CheckFilter(Filter{}))
	assert.NoError(t, c.CheckFilter(Filter{Category: "Cutoffs"}))

	err := c.CheckFilter(Filter{Category: "infield fly"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	assert.Contains(t, err.Error(), "bunt coverage")
}

const validDoc = `{
  "version": "v2.1.0",
  "scenarios": [
    {
      "id": "a",
      "sport": "softball",
      "level": "adult",
      "category": "steals",
      "prompt": "Runner goes.",
      "best": {"label": "Throw", "description": "Throw to second.", "coaching_cue": "Quick release."},
      "ok": {"label": "Look", "description": "Look the runner back."},
      "bad": {"label": "Hold", "description": "Hold the ball."}
    }
  ]
}`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(validDoc))
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", c.Version())
	require.Equal(t, 1, c.Len())

	s := c.Scenarios()[0]
	assert.Equal(t, SportSoftball, s.Sport)
	assert.Equal(t, Position(""), s.Position)
	assert.Equal(t, "Quick release.", s.Best.CoachingCue)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"missing version", `{"scenarios": []}`},
		{"bad semver", strings.Replace(validDoc, "v2.1.0", "2.1", 1)},
		{"unknown sport", strings.Replace(validDoc, `"softball"`, `"cricket"`, 1)},
		{"unknown position", strings.Replace(validDoc, `"category": "steals"`, `"category": "steals", "position": "DH"`, 1)},
		{"missing best cue", strings.Replace(validDoc, `, "coaching_cue": "Quick release."`, "", 1)},
		{"unknown field", strings.Replace(validDoc, `"prompt"`, `"extra": 1, "prompt"`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoad_DuplicateID(t *testing.T) {
	doc := strings.Replace(validDoc, "\n  ]", `,
    {
      "id": "a",
      "sport": "baseball",
      "level": "youth",
      "category": "steals",
      "prompt": "Again.",
      "best": {"label": "x", "description": "x", "coaching_cue": "x"},
      "ok": {"label": "y", "description": "y"},
      "bad": {"label": "z", "description": "z"}
    }
  ]`, 1)
	_, err := Load(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSameMajor(t *testing.T) {
	assert.True(t, SameMajor("v1.0.0", "v1.4.2"))
	assert.False(t, SameMajor("v1.0.0", "v2.0.0"))
	assert.True(t, SameMajor("", "v2.0.0"))
}

func TestChoices_StableAndComplete(t *testing.T) {
	s := scenario("rf-cutoff-r2-single")
	first := s.Choices()
	second := s.Choices()
	assert.Equal(t, first, second)

	seen := map[spacedrep.Quality]bool{}
	for i, c := range first {
		assert.Equal(t, letters[i], c.Letter)
		seen[c.Quality] = true
	}
	assert.Len(t, seen, 3)
	assert.True(t, seen[spacedrep.QualityBest])
	assert.True(t, seen[spacedrep.QualityOK])
	assert.True(t, seen[spacedrep.QualityBad])
}

func TestChoices_BestNotAlwaysFirst(t *testing.T) {
	slots := map[string]bool{}
	for _, s := range MustBuiltin().Scenarios() {
		for _, c := range s.Choices() {
			if c.Quality == spacedrep.QualityBest {
				slots[c.Letter] = true
			}
		}
	}
	assert.Greater(t, len(slots), 1, "best answer always in the same slot")
}

func TestQualityForLetter(t *testing.T) {
	s := scenario("x")
	for _, c := range s.Choices() {
		q, err := s.QualityForLetter(strings.ToLower(c.Letter))
		require.NoError(t, err)
		assert.Equal(t, c.Quality, q)
	}

	q, err := s.QualityForLetter("timeout")
	require.NoError(t, err)
	assert.Equal(t, spacedrep.QualityTimeout, q)

	_, err = s.QualityForLetter("D")
	assert.ErrorIs(t, err, spacedrep.ErrInvalidQuality)
}
