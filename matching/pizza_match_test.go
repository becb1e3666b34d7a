package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-club-api/models"
)

func catalog(names ...string) []models.Pizza {
	out := make([]models.Pizza, len(names))
	for i, n := range names {
		out[i] = models.Pizza{ID: uint(i + 1), Name: n, IsActive: true}
	}
	return out
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Margherita", Normalize("  Margherita Pizza  "))
	assert.Equal(t, "MARGHERITA", Normalize("MARGHERITA PIZZA"))
	assert.Equal(t, "margherita", Normalize("margherita"))
	assert.Equal(t, "", Normalize("   pizza "))
	assert.Equal(t, "", Normalize(""))
}

func TestResolveExact(t *testing.T) {
	cat := catalog("Margherita", "Pepperoni")

	for _, q := range []string{"Margherita Pizza", "margherita", "MARGHERITA PIZZA"} {
		m, ok := Resolve(q, cat)
		require.True(t, ok, "query %q should resolve", q)
		assert.Equal(t, "Margherita", m.Pizza.Name)
		assert.Equal(t, StrategyExact, m.Strategy)
	}
}

func TestResolveContains(t *testing.T) {
	cat := catalog("Margherita di Bufala", "Pepperoni")

	m, ok := Resolve("bufala", cat)
	require.True(t, ok)
	assert.Equal(t, "Margherita di Bufala", m.Pizza.Name)
	assert.Equal(t, StrategyContains, m.Strategy)

	// Containment works in the other direction too: a verbose query around
	// a short catalog name.
	m, ok = Resolve("the pepperoni one", cat)
	require.True(t, ok)
	assert.Equal(t, "Pepperoni", m.Pizza.Name)
	assert.Equal(t, StrategyContains, m.Strategy)
}

func TestResolveFirstWord(t *testing.T) {
	cat := catalog("Quattro Formaggi", "Margherita")

	m, ok := Resolve("Quattro Stagioni", cat)
	require.True(t, ok)
	assert.Equal(t, "Quattro Formaggi", m.Pizza.Name)
	assert.Equal(t, StrategyFirstWord, m.Strategy)
}

func TestResolveExactBeatsContains(t *testing.T) {
	// "margherita" is contained in both names; the exact tier must pick the
	// plain one before the contains tier ever runs.
	cat := catalog("Margherita", "Margherita di Bufala")

	m, ok := Resolve("margherita", cat)
	require.True(t, ok)
	assert.Equal(t, "Margherita", m.Pizza.Name)
	assert.Equal(t, StrategyExact, m.Strategy)
}

func TestResolveNeverGuessesBetweenCandidates(t *testing.T) {
	cat := catalog("Margherita", "Margherita di Bufala")

	// "mar" is contained in both and matches neither first word exactly:
	// ambiguous at every tier, so no match at all.
	_, ok := Resolve("mar", cat)
	assert.False(t, ok)
}

func TestResolveMisspelling(t *testing.T) {
	cat := catalog("Margherita", "Pepperoni")

	_, ok := Resolve("Pepperonni", cat)
	assert.False(t, ok)
}

func TestResolveEmptyQuery(t *testing.T) {
	cat := catalog("Margherita")

	_, ok := Resolve("", cat)
	assert.False(t, ok)

	_, ok = Resolve("pizza", cat)
	assert.False(t, ok)
}
