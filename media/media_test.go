package media

import (
	"os"
	"strings"
	"testing"

	"github.com/chirpnet/chirp/model"
	"github.com/stretchr/testify/require"
)

func TestTypeFromFileName(t *testing.T) {
	mediaType, ok := TypeFromFileName("photo.JPG")
	require.True(t, ok)
	require.Equal(t, model.MediaTypeImage, mediaType)

	mediaType, ok = TypeFromFileName("clip.mp4")
	require.True(t, ok)
	require.Equal(t, model.MediaTypeVideo, mediaType)

	_, ok = TypeFromFileName("document.pdf")
	require.False(t, ok)

	_, ok = TypeFromFileName("no-extension")
	require.False(t, ok)
}

func TestLocalFileStoreRoundTrip(t *testing.T) {
	fileStore, err := NewLocalFileStore("unittest")
	require.NoError(t, err)
	t.Cleanup(fileStore.CleanUp)

	key, err := fileStore.Store(strings.NewReader("payload"), "photo.jpg")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(key, ".jpg"))

	stored, err := os.ReadFile(fileStore.GetUrlFromKey(key))
	require.NoError(t, err)
	require.Equal(t, "payload", string(stored))
}

func TestFakeFileStoreRoundTrip(t *testing.T) {
	fileStore := &FakeFileStore{}

	key, err := fileStore.Store(strings.NewReader("payload"), "photo.jpg")
	require.NoError(t, err)
	require.Equal(t, "photo.jpg", key)
	require.Equal(t, "photo.jpg", fileStore.GetUrlFromKey(key))
}
