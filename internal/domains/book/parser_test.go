package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthors_SingleTwoPartName(t *testing.T) {
	names, err := ParseAuthors("Jane Austen")
	require.NoError(t, err)
	require.Len(t, names, 1)

	assert.Equal(t, "Jane", names[0].FirstName)
	assert.Equal(t, "Austen", names[0].Surname)
	assert.Nil(t, names[0].LastName)
}

func TestParseAuthors_ThreePartName(t *testing.T) {
	names, err := ParseAuthors("Gabriel Garcia Marquez")
	require.NoError(t, err)
	require.Len(t, names, 1)

	assert.Equal(t, "Gabriel", names[0].FirstName)
	assert.Equal(t, "Garcia", names[0].Surname)
	require.NotNil(t, names[0].LastName)
	assert.Equal(t, "Marquez", *names[0].LastName)
}

func TestParseAuthors_FourPartNameDropsMiddles(t *testing.T) {
	// first, second-to-last and last survive; "R." in the middle is dropped
	names, err := ParseAuthors("George R. R. Martin")
	require.NoError(t, err)
	require.Len(t, names, 1)

	assert.Equal(t, "George", names[0].FirstName)
	assert.Equal(t, "R.", names[0].Surname)
	require.NotNil(t, names[0].LastName)
	assert.Equal(t, "Martin", *names[0].LastName)
}

func TestParseAuthors_CommaSeparatedList(t *testing.T) {
	names, err := ParseAuthors("Jane Austen, Charles Dickens")
	require.NoError(t, err)
	require.Len(t, names, 2)

	assert.Equal(t, "Jane", names[0].FirstName)
	assert.Equal(t, "Charles", names[1].FirstName)
	assert.Equal(t, "Dickens", names[1].Surname)
}

func TestParseAuthors_AndSeparatedList(t *testing.T) {
	names, err := ParseAuthors("Terry Pratchett and Neil Gaiman")
	require.NoError(t, err)
	require.Len(t, names, 2)

	assert.Equal(t, "Pratchett", names[0].Surname)
	assert.Equal(t, "Gaiman", names[1].Surname)
}

func TestParseAuthors_MixedSeparators(t *testing.T) {
	names, err := ParseAuthors("Jane Austen, Terry Pratchett and Neil Gaiman")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestParseAuthors_WordContainingAndIsNotSplit(t *testing.T) {
	// "and" only separates when surrounded by whitespace
	names, err := ParseAuthors("Alexander Anderson")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Anderson", names[0].Surname)
}

func TestParseAuthors_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := ParseAuthors(input)
		assert.ErrorIs(t, err, ErrEmptyText, "input %q", input)
	}
}

func TestParseAuthors_SingleWordFails(t *testing.T) {
	_, err := ParseAuthors("Homer")
	assert.ErrorIs(t, err, ErrCannotParseAuthor)
}

func TestParseAuthors_OneBadTokenFailsTheWholeList(t *testing.T) {
	_, err := ParseAuthors("Jane Austen, Homer")
	assert.ErrorIs(t, err, ErrCannotParseAuthor)
}

func TestParseGenres_SplitAndTrim(t *testing.T) {
	genres := ParseGenres("  Fiction ,  Mystery and Romance ")
	assert.Equal(t, []string{"Fiction", "Mystery", "Romance"}, genres)
}

func TestParseGenres_SingleValue(t *testing.T) {
	assert.Equal(t, []string{"Horror"}, ParseGenres("Horror"))
}

func TestParseGenres_EmptyTokensDropped(t *testing.T) {
	assert.Empty(t, ParseGenres("  "))
	assert.Equal(t, []string{"Fiction"}, ParseGenres("Fiction, "))
}

func TestParseAuthors_FourPartsWithParticle(t *testing.T) {
	names, err := ParseAuthors("Ursula K. Le Guin")
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Ursula", names[0].FirstName)
	assert.Equal(t, "Le", names[0].Surname)
	require.NotNil(t, names[0].LastName)
	assert.Equal(t, "Guin", *names[0].LastName)
}
