package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewClampsInput(t *testing.T) {
	p := New(0, -5)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 0, p.Offset)

	p = New(3, 20)
	require.Equal(t, 40, p.Offset)

	p = New(1, 500)
	require.Equal(t, 100, p.Limit)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(2, 10, 25)
	require.Equal(t, int64(25), meta.Total)
	require.Equal(t, 3, meta.TotalPages)

	meta = BuildMeta(1, 10, 0)
	require.Equal(t, 0, meta.TotalPages)
}
