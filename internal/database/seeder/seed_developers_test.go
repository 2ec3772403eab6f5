package seeder

import (
	"testing"

	"dev-match/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDevelopers(t *testing.T) {
	devs := SampleDevelopers()
	require.NotEmpty(t, devs)

	emails := map[string]struct{}{}
	private := 0
	for _, d := range devs {
		_, dup := emails[d.Email]
		assert.False(t, dup, "duplicate email %s", d.Email)
		emails[d.Email] = struct{}{}

		if !d.Public {
			private++
		}

		start, err := schedule.Parse(d.AvailableFrom)
		require.NoError(t, err, d.Email)
		assert.False(t, start.IsZero(), d.Email)

		require.NotEmpty(t, d.Skills, d.Email)
		for _, s := range d.Skills {
			assert.True(t, s.Level.Valid(), "%s/%s", d.Email, s.Name)
		}
	}
	assert.Equal(t, 1, private)
}

func TestDefaultsOrder(t *testing.T) {
	names := []string{}
	for _, s := range Defaults() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"skills", "developers"}, names)
}
