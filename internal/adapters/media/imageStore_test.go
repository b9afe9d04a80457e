package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yatube/internal/core/apperr"

	"github.com/stretchr/testify/require"
)

// smallGIF is a 2x1 transparent GIF.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestImageStore_SaveGIF(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	rel, err := store.SaveReader(bytes.NewReader(smallGIF))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(rel, "posts/"))
	require.True(t, strings.HasSuffix(rel, ".gif"))

	written, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	require.Equal(t, smallGIF, written)
}

func TestImageStore_RejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store := NewImageStore(root)

	_, err := store.SaveReader(strings.NewReader("just some text"))
	require.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, statErr := os.Stat(filepath.Join(root, "posts"))
	require.True(t, os.IsNotExist(statErr))
}
