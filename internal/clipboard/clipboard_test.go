package clipboard

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/colorfinder/internal/binding"
	"github.com/jmylchreest/colorfinder/internal/palette"
	"github.com/jmylchreest/colorfinder/internal/prefs"
)

type staticPref struct {
	v   bool
	err error
}

func (p staticPref) CopyHashtag() (bool, error) { return p.v, p.err }

func captureClipboard(t *testing.T) *string {
	t.Helper()
	original := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = original })

	var written string
	clipboardWriteAll = func(text string) error {
		written = text
		return nil
	}
	return &written
}

func boundVibrant() binding.Binding {
	return binding.Binding{
		Label: binding.Label{Kind: palette.Vibrant, Prefix: "Vibrant:"},
		Bound: true,
		Hex:   "#AABBCC",
		Text:  "Vibrant: #AABBCC",
	}
}

func TestCopyHonoursPreference(t *testing.T) {
	tests := []struct {
		name     string
		pref     HashtagPreference
		wantText string
	}{
		{name: "hashtag on", pref: staticPref{v: true}, wantText: "#AABBCC"},
		{name: "hashtag off", pref: staticPref{v: false}, wantText: "AABBCC"},
		{name: "no preference", pref: nil, wantText: "#AABBCC"},
		{name: "preference error", pref: staticPref{err: errors.New("corrupt")}, wantText: "#AABBCC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written := captureClipboard(t)

			res, err := NewCopier(tt.pref).Copy(boundVibrant())
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantText, *written)
			assert.Equal(t, `Copied "`+tt.wantText+`" to clipboard.`, res.Message)
		})
	}
}

func TestCopyThroughPrefsStore(t *testing.T) {
	written := captureClipboard(t)
	store := prefs.Open(filepath.Join(t.TempDir(), prefs.FileName))
	c := NewCopier(store)

	_, err := c.Copy(boundVibrant())
	require.NoError(t, err)
	assert.Equal(t, "#AABBCC", *written)

	_, err = store.ToggleCopyHashtag()
	require.NoError(t, err)
	_, err = c.Copy(boundVibrant())
	require.NoError(t, err)
	assert.Equal(t, "AABBCC", *written)
}

func TestCopyUnbound(t *testing.T) {
	written := captureClipboard(t)
	b := binding.Binding{Label: binding.Label{Kind: palette.Muted, Prefix: "Muted:"}, Text: "Muted:"}

	_, err := NewCopier(nil).Copy(b)
	assert.ErrorIs(t, err, ErrUnbound)
	assert.Empty(t, *written, "nothing is written for an unbound label")
}

func TestCopyWriteError(t *testing.T) {
	original := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = original })
	clipboardWriteAll = func(string) error { return errors.New("no clipboard utility") }

	_, err := NewCopier(nil).CopyHex("#010203")
	assert.Error(t, err)
}

func TestCopyWithWriter(t *testing.T) {
	var got string
	c := NewCopier(staticPref{v: false}, WithWriter(func(text string) error {
		got = text
		return nil
	}))

	res, err := c.CopyHex("#0A0B0C")
	require.NoError(t, err)
	assert.Equal(t, "0A0B0C", got)
	assert.Equal(t, `Copied "0A0B0C" to clipboard.`, res.Message)
}
