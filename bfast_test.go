package bfast

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/document"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/internal/testutil"
	"github.com/arloliu/bfast/objectmodel"
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/source"
	"github.com/stretchr/testify/require"
)

func sample() []byte {
	pool := testutil.NewStringPool()

	return testutil.VIM{
		Header: map[string]string{"vim": "1.0.0"},
		Tables: []testutil.Table{
			{Name: objectmodel.Element, Columns: []testutil.Buffer{
				testutil.StringColumn("Name", pool.Indices("Level 1", "Level 2")...),
			}},
			{Name: objectmodel.Level, Columns: []testutil.Buffer{
				testutil.IndexColumn(objectmodel.Element, entity.ElementField, 0, 1),
				testutil.DoubleColumn("Elevation", 0, 12.5),
			}},
		},
		Strings: pool.Strings(),
	}.Bytes()
}

func checkSample(t *testing.T, doc *Document) {
	t.Helper()

	levels, ok := doc.Table(objectmodel.Level)
	require.True(t, ok)
	require.Equal(t, 2, levels.Len())

	second, _ := levels.Get(1)
	elevation, ok := second.Double("Elevation")
	require.True(t, ok)
	require.InDelta(t, 12.5, elevation, 1e-12)

	element, ok := second.Element()
	require.True(t, ok)
	name, _ := element.String("Name")
	require.Equal(t, "Level 2", name)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.vim")
	require.NoError(t, os.WriteFile(path, sample(), 0o600))

	doc, err := Open(path)
	require.NoError(t, err)
	checkSample(t, doc)
	require.NoError(t, doc.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.vim"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.vim")
	require.NoError(t, os.WriteFile(bad, bytes.Repeat([]byte{0xFF}, 64), 0o600))
	_, err = Open(bad)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestDecode(t *testing.T) {
	doc, err := Decode(source.NewBytes(sample()))
	require.NoError(t, err)
	checkSample(t, doc)

	doc, err = DecodeBytes(sample(), WithDuplicatePolicy(container.FirstWins), WithSchema(objectmodel.Schema()))
	require.NoError(t, err)
	require.Equal(t, "1.0.0", doc.Metadata()["vim"])

	_, err = DecodeBytes(sample(), WithLayoutPolicy(section.LayoutPolicy(3)))
	require.Error(t, err)

	var derr *document.DecodeError
	_, err = DecodeBytes(sample()[:40])
	require.ErrorAs(t, err, &derr)
}

func TestOpenURL(t *testing.T) {
	data := sample()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "sample.vim", time.Time{}, bytes.NewReader(data))
	}))
	defer srv.Close()

	doc, err := OpenURL(srv.URL + "/sample.vim")
	require.NoError(t, err)
	checkSample(t, doc)
	require.NoError(t, doc.Close())
}
