package levin

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	cl := &fakeTelegram{dialogs: stubDialogs(t)}

	var buf bytes.Buffer
	require.NoError(t, List(context.Background(), &buf, cl))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// sorted by title: Apples, Mangoes, Zed.
	assert.Contains(t, lines[0], "Apples")
	assert.Contains(t, lines[1], "Mangoes")
	assert.Contains(t, lines[2], "Zed")
}

func TestList_error(t *testing.T) {
	cl := &fakeTelegram{getErr: errBroken}
	err := List(context.Background(), &bytes.Buffer{}, cl)
	assert.ErrorIs(t, err, errBroken)
}
