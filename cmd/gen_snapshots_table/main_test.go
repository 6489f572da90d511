package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSnapshots(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"key_wait.png", "bcd.png", "bcd_actual.png", "notes.txt", "glyph 2.PNG"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))

	items, err := collectSnapshots(dir)
	require.NoError(t, err)

	assert.Equal(t, []snapshot{
		{Name: "bcd", Encoded: "bcd.png"},
		{Name: "glyph 2", Encoded: "glyph%202.PNG"},
		{Name: "key_wait", Encoded: "key_wait.png"},
	}, items)
}

func TestCollectSnapshots_MissingDir(t *testing.T) {
	_, err := collectSnapshots(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRenderTable(t *testing.T) {
	items := []snapshot{{Name: "a", Encoded: "a.png"}, {Name: "b", Encoded: "b.png"}, {Name: "c", Encoded: "c.png"}}

	table := renderTable(items, "snaps", 2, 128)

	assert.Equal(t, "<table>\n"+
		"  <tr>\n"+
		"    <td align=\"center\"><img src=\"snaps/a.png\" width=\"128\" /><br><sub>a</sub></td>\n"+
		"    <td align=\"center\"><img src=\"snaps/b.png\" width=\"128\" /><br><sub>b</sub></td>\n"+
		"  </tr>\n"+
		"  <tr>\n"+
		"    <td align=\"center\"><img src=\"snaps/c.png\" width=\"128\" /><br><sub>c</sub></td>\n"+
		"    <td></td>\n"+
		"  </tr>\n"+
		"</table>\n", table)
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "replaces previous table",
			content: "intro\n" + startMarker + "\nold\n" + endMarker + "\nrest\n",
			want:    "intro\n" + startMarker + "\nTABLE\n" + endMarker + "\nrest\n",
		},
		{
			name:    "adjacent markers",
			content: startMarker + endMarker,
			want:    startMarker + "\nTABLE\n" + endMarker,
		},
		{
			name:    "missing end marker",
			content: startMarker + "\n",
			wantErr: true,
		},
		{
			name:    "markers out of order",
			content: endMarker + startMarker,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splice(tt.content, "TABLE\n")
			if tt.wantErr {
				assert.ErrorIs(t, err, errMarkersMissing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
