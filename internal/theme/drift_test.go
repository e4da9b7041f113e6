package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareDocumentsIdentical(t *testing.T) {
	current := renderFixture(t)
	regenerated := renderFixture(t)

	drifts := CompareDocuments(current, regenerated)
	assert.Empty(t, drifts, "fresh regeneration must not drift")
}

func TestCompareDocumentsIgnoresFormatting(t *testing.T) {
	// A re-encoded copy differs only in bytes-on-disk, never structurally.
	current := renderFixture(t)
	recoded, err := Decode(Encode(current))
	require.NoError(t, err)

	assert.Empty(t, CompareDocuments(recoded, current))
}

func TestCompareDocumentsValueChange(t *testing.T) {
	current := renderFixture(t)
	regenerated := renderFixture(t)

	style := current.GetArray("themes")[0].(*Object).GetObject("style")
	style.GetObject("syntax").GetObject("keyword").Set("color", "#123456")

	drifts := CompareDocuments(current, regenerated)
	require.Len(t, drifts, 1)
	assert.Equal(t, "themes[0].style.syntax.keyword.color", drifts[0].Path)
	assert.Contains(t, drifts[0].Got, "#123456")
	assert.Contains(t, drifts[0].Want, "#fede5d")
}

func TestCompareDocumentsMissingAndExtraKeys(t *testing.T) {
	current := renderFixture(t)
	regenerated := renderFixture(t)

	style := current.GetArray("themes")[1].(*Object).GetObject("style")
	style.Set("hand.edited.key", "#ffffff")

	drifts := CompareDocuments(current, regenerated)
	require.Len(t, drifts, 1)
	assert.Equal(t, "themes[1].style.hand.edited.key", drifts[0].Path)
	assert.Equal(t, "(absent)", drifts[0].Want)
}

func TestCompareDocumentsArrayLength(t *testing.T) {
	current := renderFixture(t)
	regenerated := renderFixture(t)

	style := current.GetArray("themes")[2].(*Object).GetObject("style")
	players := style.GetArray("players")
	style.Set("players", players[:7])

	drifts := CompareDocuments(current, regenerated)
	require.Len(t, drifts, 1)
	assert.True(t, strings.HasPrefix(drifts[0].Path, "themes[2].style.players[7]"), drifts[0].Path)
	assert.Equal(t, "(absent)", drifts[0].Got)
}

func TestCompareDocumentsReportsAllDrifts(t *testing.T) {
	current := renderFixture(t)
	regenerated := renderFixture(t)

	classic := current.GetArray("themes")[0].(*Object).GetObject("style")
	classic.Set("background", "#000000")
	soft := current.GetArray("themes")[1].(*Object).GetObject("style")
	soft.Set("text", "#010101")

	drifts := CompareDocuments(current, regenerated)
	assert.Len(t, drifts, 2, "every drift is reported, not just the first")
}
