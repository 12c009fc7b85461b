package catalog

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"game-portal/internal/library"
)

// cheatsDir is where archives ship their guide.
const cheatsDir = "cheats"

// Install downloads the archive of g and unpacks it into root/<title>. A
// guide shipped as cheats/guide.md is moved to the folder's guide.md, and
// when the archive has no cover the catalog icon is fetched in its place.
// It returns the name of the new folder.
func (c *Client) Install(ctx context.Context, g Game, root string) (string, error) {
	name, err := folderName(g.Title)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(root, name)
	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%s: %w", name, library.ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("check %s: %w", dest, err)
	}
	if g.DownloadURL == "" {
		return "", fmt.Errorf("%w: %s has no download URL", ErrDownloadFailed, name)
	}

	archive, err := os.CreateTemp("", "game-portal-*.zip")
	if err != nil {
		return "", err
	}
	archive.Close()
	defer os.Remove(archive.Name())

	c.log.Info().Str("game", name).Str("url", g.DownloadURL).Msg("downloading game")
	if err := c.save(ctx, g.DownloadURL, archive.Name()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	// Staging next to the destination keeps the final rename on one
	// filesystem.
	staging, err := os.MkdirTemp(root, ".download-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(staging)

	if err := extract(archive.Name(), staging); err != nil {
		return "", err
	}
	if err := os.Rename(gameDir(staging, name), dest); err != nil {
		return "", fmt.Errorf("install %s: %w", name, err)
	}

	if err := moveGuide(dest); err != nil {
		c.log.Warn().Err(err).Str("game", name).Msg("guide not moved")
	}
	c.fetchCover(ctx, g.Icon, dest)

	c.log.Info().Str("game", name).Str("path", dest).Msg("game installed")
	return name, nil
}

func folderName(title string) (string, error) {
	name := strings.TrimSpace(title)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	}
	return name, nil
}

// gameDir picks the folder inside an unpacked archive that holds the game:
// a directory named after the game, else a single top-level directory,
// else the archive root.
func gameDir(staging, name string) string {
	if info, err := os.Stat(filepath.Join(staging, name)); err == nil && info.IsDir() {
		return filepath.Join(staging, name)
	}
	entries, err := os.ReadDir(staging)
	if err == nil && len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(staging, entries[0].Name())
	}
	return staging
}

func extract(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("%w: open archive: %w", ErrDownloadFailed, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		rel, err := filepath.Rel(dir, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%w: %s", ErrUnsafeArchive, f.Name)
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, library.DefaultDirPermissions); err != nil {
				return err
			}
		case mode&fs.ModeSymlink != 0:
			return fmt.Errorf("%w: symlink %s", ErrUnsafeArchive, f.Name)
		default:
			if err := extractFile(f, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), library.DefaultDirPermissions); err != nil {
		return err
	}
	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDownloadFailed, f.Name, err)
	}
	defer in.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: %s: %w", ErrDownloadFailed, f.Name, err)
	}
	return out.Close()
}

// moveGuide promotes cheats/guide.md to the game's guide file. The cheats
// folder is dropped once it is empty.
func moveGuide(dest string) error {
	cheats := filepath.Join(dest, cheatsDir)
	src := filepath.Join(cheats, library.GuideFile)
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	target := filepath.Join(dest, library.GuideFile)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if err := os.Rename(src, target); err != nil {
		return err
	}
	os.Remove(cheats) //nolint:errcheck
	return nil
}

// fetchCover downloads icon as the cover image when the game has none.
// Failures only leave the game without a cover.
func (c *Client) fetchCover(ctx context.Context, icon, dest string) {
	if !strings.HasPrefix(icon, "http://") && !strings.HasPrefix(icon, "https://") {
		return
	}
	cover := filepath.Join(dest, library.CoverFile)
	if _, err := os.Stat(cover); err == nil {
		return
	}
	if err := c.save(ctx, icon, cover); err != nil {
		os.Remove(cover) //nolint:errcheck
		c.log.Warn().Err(err).Str("url", icon).Msg("cover not downloaded")
	}
}
