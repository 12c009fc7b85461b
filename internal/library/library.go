package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Files a game folder may contain.
const (
	CoverFile    = "cover.jpg"
	LauncherFile = "game_launcher.exe"
	GuideFile    = "guide.md"
)

const DefaultDirPermissions = 0755

var (
	ErrAlreadyExists = errors.New("directory already exists")
	ErrOutsideRoot   = errors.New("folder is not inside the root directory")
	ErrNotDirectory  = errors.New("not a directory")
	ErrNotEmpty      = errors.New("directory is not empty")
	ErrNoGuide       = errors.New("no guide available")
)

// Entry is one game: an immediate subdirectory of the root. Optional files
// are left empty when missing.
type Entry struct {
	Name         string
	Path         string
	CoverPath    string
	LauncherPath string
	GuidePath    string
}

func (e Entry) HasCover() bool    { return e.CoverPath != "" }
func (e Entry) HasLauncher() bool { return e.LauncherPath != "" }
func (e Entry) HasGuide() bool    { return e.GuidePath != "" }

// Library manages the game folders under a single root directory.
// Nothing is cached; every call goes to the filesystem.
type Library struct {
	root string
	log  zerolog.Logger
}

// New creates a library rooted at root.
func New(root string, log zerolog.Logger) *Library {
	return &Library{
		root: filepath.Clean(root),
		log:  log.With().Str("component", "library").Logger(),
	}
}

// Root returns the root directory path.
func (l *Library) Root() string {
	return l.root
}

// EnsureRoot creates the root directory if it does not exist yet.
func (l *Library) EnsureRoot() error {
	if err := os.MkdirAll(l.root, DefaultDirPermissions); err != nil {
		return fmt.Errorf("create root directory %s: %w", l.root, err)
	}
	return nil
}

// List returns the immediate subdirectories of the root in the order the
// filesystem enumerates them.
func (l *Library) List() ([]Entry, error) {
	dir, err := os.Open(l.root)
	if err != nil {
		return nil, fmt.Errorf("open root directory: %w", err)
	}
	defer dir.Close()

	// File.ReadDir keeps directory order, unlike os.ReadDir which sorts.
	dirents, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("read root directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		path := filepath.Join(l.root, de.Name())
		if !isDir(de, path) {
			continue
		}
		entries = append(entries, l.entry(de.Name(), path))
	}
	return entries, nil
}

func (l *Library) entry(name, path string) Entry {
	e := Entry{Name: name, Path: path}
	if p := filepath.Join(path, CoverFile); isFile(p) {
		e.CoverPath = p
	}
	if p := filepath.Join(path, LauncherFile); isFile(p) {
		e.LauncherPath = p
	}
	if p := filepath.Join(path, GuideFile); isFile(p) {
		e.GuidePath = p
	}
	return e
}

// Add creates an empty folder under the root named after source. The
// contents of source are not copied. It returns the new folder name.
func (l *Library) Add(source string) (string, error) {
	name := filepath.Base(filepath.Clean(source))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid source folder %q", source)
	}

	dest := filepath.Join(l.root, name)
	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%s: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("check %s: %w", dest, err)
	}

	if err := os.Mkdir(dest, DefaultDirPermissions); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%s: %w", name, ErrAlreadyExists)
		}
		return "", fmt.Errorf("create %s: %w", dest, err)
	}

	l.log.Info().Str("name", name).Str("source", source).Msg("directory added")
	return name, nil
}

// Remove deletes folder if it lies under the root. Only empty directories
// can be removed.
func (l *Library) Remove(folder string) (string, error) {
	if !l.Contains(folder) {
		return "", fmt.Errorf("%s: %w", folder, ErrOutsideRoot)
	}

	info, err := os.Lstat(folder)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", folder, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", folder, ErrNotDirectory)
	}

	if err := os.Remove(folder); err != nil {
		if !isEmptyDir(folder) {
			return "", fmt.Errorf("remove %s: %w: %w", filepath.Base(folder), ErrNotEmpty, err)
		}
		return "", fmt.Errorf("remove %s: %w", folder, err)
	}

	name := filepath.Base(folder)
	l.log.Info().Str("name", name).Msg("directory removed")
	return name, nil
}

// Contains reports whether path lies strictly inside the root. Symlinks in
// the root and in the parent of path are resolved first; path itself is
// judged by name, so a symlink placed in the root counts as inside.
func (l *Library) Contains(path string) bool {
	if path == "" {
		return false
	}
	root, err := resolve(l.root)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	parent, err := resolve(filepath.Dir(abs))
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, filepath.Join(parent, filepath.Base(abs)))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Guide returns the contents of the entry's guide file.
func (l *Library) Guide(e Entry) (string, error) {
	if !e.HasGuide() {
		return "", ErrNoGuide
	}
	data, err := os.ReadFile(e.GuidePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoGuide
		}
		return "", fmt.Errorf("read guide: %w", err)
	}
	return string(data), nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func isDir(de fs.DirEntry, path string) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isEmptyDir(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	return errors.Is(err, io.EOF)
}
