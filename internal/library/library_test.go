package library

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib := New(filepath.Join(t.TempDir(), "root"), zerolog.Nop())
	require.NoError(t, lib.EnsureRoot())
	return lib
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestEnsureRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	lib := New(root, zerolog.Nop())

	require.NoError(t, lib.EnsureRoot())
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is a no-op.
	require.NoError(t, lib.EnsureRoot())
}

func TestListReturnsOnlySubdirectories(t *testing.T) {
	lib := newTestLibrary(t)
	mkdir(t, filepath.Join(lib.Root(), "A"))
	mkdir(t, filepath.Join(lib.Root(), "B"))
	mkdir(t, filepath.Join(lib.Root(), "A", "nested"))
	touch(t, filepath.Join(lib.Root(), "readme.txt"))

	entries, err := lib.List()
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"A", "B"}, names)
}

func TestListEmptyRoot(t *testing.T) {
	lib := newTestLibrary(t)

	entries, err := lib.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMissingRoot(t *testing.T) {
	lib := New(filepath.Join(t.TempDir(), "missing"), zerolog.Nop())

	_, err := lib.List()
	assert.Error(t, err)
}

func TestListDetectsOptionalFiles(t *testing.T) {
	lib := newTestLibrary(t)
	full := filepath.Join(lib.Root(), "Full")
	bare := filepath.Join(lib.Root(), "Bare")
	mkdir(t, full)
	mkdir(t, bare)
	touch(t, filepath.Join(full, CoverFile))
	touch(t, filepath.Join(full, LauncherFile))
	touch(t, filepath.Join(full, GuideFile))

	entries, err := lib.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.True(t, byName["Full"].HasCover())
	assert.True(t, byName["Full"].HasLauncher())
	assert.True(t, byName["Full"].HasGuide())
	assert.Equal(t, filepath.Join(full, LauncherFile), byName["Full"].LauncherPath)

	assert.False(t, byName["Bare"].HasCover())
	assert.False(t, byName["Bare"].HasLauncher())
	assert.False(t, byName["Bare"].HasGuide())
}

func TestAddCreatesEmptyFolder(t *testing.T) {
	lib := newTestLibrary(t)
	source := filepath.Join(t.TempDir(), "Secret of the Old Clock")
	mkdir(t, source)
	touch(t, filepath.Join(source, "data.bin"))

	name, err := lib.Add(source)
	require.NoError(t, err)
	assert.Equal(t, "Secret of the Old Clock", name)

	dest := filepath.Join(lib.Root(), name)
	children, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, children, "source contents must not be copied")
}

func TestAddExistingNameLeavesFilesystemUntouched(t *testing.T) {
	lib := newTestLibrary(t)
	existing := filepath.Join(lib.Root(), "Game")
	mkdir(t, existing)
	touch(t, filepath.Join(existing, "save.dat"))

	source := filepath.Join(t.TempDir(), "Game")
	mkdir(t, source)

	_, err := lib.Add(source)
	require.ErrorIs(t, err, ErrAlreadyExists)

	children, err := os.ReadDir(existing)
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestAddRejectsEmptySource(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.Add(string(filepath.Separator))
	assert.Error(t, err)
}

func TestRemoveEmptyFolder(t *testing.T) {
	lib := newTestLibrary(t)
	target := filepath.Join(lib.Root(), "Old")
	mkdir(t, target)

	name, err := lib.Remove(target)
	require.NoError(t, err)
	assert.Equal(t, "Old", name)

	_, err = os.Stat(target)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRemoveNonEmptyFolderFails(t *testing.T) {
	lib := newTestLibrary(t)
	target := filepath.Join(lib.Root(), "Busy")
	mkdir(t, target)
	touch(t, filepath.Join(target, LauncherFile))

	_, err := lib.Remove(target)
	require.ErrorIs(t, err, ErrNotEmpty)

	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestRemoveOutsideRootFails(t *testing.T) {
	lib := newTestLibrary(t)
	outside := filepath.Join(t.TempDir(), "elsewhere")
	mkdir(t, outside)

	_, err := lib.Remove(outside)
	require.ErrorIs(t, err, ErrOutsideRoot)

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestRemoveRootItselfFails(t *testing.T) {
	lib := newTestLibrary(t)

	_, err := lib.Remove(lib.Root())
	require.ErrorIs(t, err, ErrOutsideRoot)
}

func TestRemoveFileFails(t *testing.T) {
	lib := newTestLibrary(t)
	file := filepath.Join(lib.Root(), "notes.txt")
	touch(t, file)

	_, err := lib.Remove(file)
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestRemoveThroughSymlinkedFolderFails(t *testing.T) {
	lib := newTestLibrary(t)
	outside := filepath.Join(t.TempDir(), "outside")
	victim := filepath.Join(outside, "victim")
	mkdir(t, victim)
	link := filepath.Join(lib.Root(), "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := lib.Remove(filepath.Join(link, "victim"))
	require.ErrorIs(t, err, ErrOutsideRoot)

	_, err = os.Stat(victim)
	assert.NoError(t, err)
}

func TestRemoveSymlinkInRootKeepsTarget(t *testing.T) {
	lib := newTestLibrary(t)
	outside := filepath.Join(t.TempDir(), "outside")
	mkdir(t, outside)
	link := filepath.Join(lib.Root(), "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := lib.Remove(link)
	require.ErrorIs(t, err, ErrNotDirectory)

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestContainsThroughSymlinkedRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	mkdir(t, filepath.Join(target, "game"))
	alias := filepath.Join(base, "alias")
	if err := os.Symlink(target, alias); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	lib := New(alias, zerolog.Nop())

	assert.True(t, lib.Contains(filepath.Join(target, "game")))
	assert.True(t, lib.Contains(filepath.Join(alias, "game")))
	assert.False(t, lib.Contains(target))
}

func TestContains(t *testing.T) {
	lib := newTestLibrary(t)
	root := lib.Root()
	mkdir(t, filepath.Join(root, "game"))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"child", filepath.Join(root, "game"), true},
		{"nested", filepath.Join(root, "game", "sub"), true},
		{"root", root, false},
		{"parent", filepath.Dir(root), false},
		{"sibling with shared prefix", root + "-other", false},
		{"escape via dotdot", filepath.Join(root, "..", "x"), false},
		{"missing parent", filepath.Join(root, "nope", "sub"), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lib.Contains(tt.path))
		})
	}
}

func TestGuide(t *testing.T) {
	lib := newTestLibrary(t)
	dir := filepath.Join(lib.Root(), "Guided")
	mkdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, GuideFile), []byte("# Walkthrough"), 0644))

	entries, err := lib.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	text, err := lib.Guide(entries[0])
	require.NoError(t, err)
	assert.Equal(t, "# Walkthrough", text)

	_, err = lib.Guide(Entry{Name: "none", Path: dir})
	assert.ErrorIs(t, err, ErrNoGuide)
}

func TestLoadCoverScalesDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), CoverFile)
	writeJPEG(t, path, 400, 200)

	img, err := LoadCover(path, 100)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy())
}

func TestLoadCoverKeepsSmallImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), CoverFile)
	writeJPEG(t, path, 40, 30)

	img, err := LoadCover(path, 100)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestLoadCoverRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), CoverFile)
	touch(t, path)

	_, err := LoadCover(path, 100)
	assert.Error(t, err)
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}
