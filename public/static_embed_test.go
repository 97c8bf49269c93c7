package public

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticFSServesAssetsAtRoot(t *testing.T) {
	t.Parallel()

	content, err := StaticFS()
	require.NoError(t, err)

	for _, name := range []string{"catalog.css", "catalog.js"} {
		data, err := fs.ReadFile(content, name)
		require.NoError(t, err, name)
		require.NotEmpty(t, data, name)
	}
}
