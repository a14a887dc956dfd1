package zip

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mholt/archiver"
	"github.com/pkg/errors"
)

// Archive walks sourceDir and writes every regular file found under it
// into a zip file at zipPath, deflate-compressed, named by its
// forward-slash path relative to sourceDir.
//
// Symbolic links, empty directories and special files produce no entry at
// all - only regular files make it into the archive.
//
// The archive is created (or overwritten) at zipPath; on any failure a
// partially written archive is removed so that a failed run never leaves
// a stale zip behind.
//
func Archive(ctx context.Context, sourceDir, zipPath string) (entries []Entry, err error) {
	_, err = os.Stat(sourceDir)
	if err != nil {
		err = errors.Wrapf(err,
			"failed stating source directory %s", sourceDir)
		return
	}

	out, err := os.Create(zipPath)
	if err != nil {
		err = errors.Wrapf(err,
			"failed creating archive file %s", zipPath)
		return
	}

	z := archiver.NewZip()
	z.SelectiveCompression = false

	err = z.Create(out)
	if err != nil {
		out.Close()
		os.Remove(zipPath)

		err = errors.Wrapf(err,
			"failed preparing zip writer for %s", zipPath)
		return
	}

	entries, err = writeTree(ctx, z, sourceDir)
	if err != nil {
		z.Close()
		out.Close()
		os.Remove(zipPath)

		err = errors.Wrapf(err,
			"failed archiving directory %s", sourceDir)
		return
	}

	err = z.Close()
	if err != nil {
		out.Close()
		os.Remove(zipPath)

		err = errors.Wrapf(err,
			"failed finishing archive %s", zipPath)
		return
	}

	err = out.Close()
	if err != nil {
		os.Remove(zipPath)

		err = errors.Wrapf(err,
			"failed closing archive file %s", zipPath)
		return
	}

	return
}

func writeTree(ctx context.Context, z *archiver.Zip, sourceDir string) (entries []Entry, err error) {
	err = filepath.Walk(sourceDir, func(file string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return errors.Wrapf(walkErr, "failed walking %s", file)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, file)
		if err != nil {
			return errors.Wrapf(err,
				"failed relativizing %s against %s", file, sourceDir)
		}

		arcname := filepath.ToSlash(rel)

		f, err := os.Open(file)
		if err != nil {
			return errors.Wrapf(err,
				"failed opening file %s", file)
		}

		err = z.Write(archiver.File{
			FileInfo: archiver.FileInfo{
				FileInfo:   info,
				CustomName: arcname,
			},
			ReadCloser: f,
		})
		f.Close()
		if err != nil {
			return errors.Wrapf(err,
				"failed writing %s into archive", arcname)
		}

		entries = append(entries, Entry{
			Name: arcname,
			Size: info.Size(),
			Path: file,
		})

		return nil
	})

	return
}
