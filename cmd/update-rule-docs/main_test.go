package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceBetweenMarkers(t *testing.T) {
	t.Parallel()

	content := "# Rules\n\n" + startMarker + "\nold\n" + endMarker + "\n\nfooter\n"
	updated, err := replaceBetweenMarkers(content, "new\n")
	require.NoError(t, err)
	assert.Equal(t, "# Rules\n\n"+startMarker+"\n\nnew\n\n"+endMarker+"\n\nfooter\n", updated)

	_, err = replaceBetweenMarkers("no markers", "new")
	require.Error(t, err)
}
