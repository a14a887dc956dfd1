package zip

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const ManifestV1Kind = "archive/v1"

// Entry describes a single file that got written into an archive.
//
type Entry struct {
	// Name is the entry's path inside the archive, relative to the
	// source directory, always forward-slash separated.
	//
	Name string `yaml:"name"`

	// Size of the file's uncompressed content.
	//
	Size int64 `yaml:"size"`

	// Path to the original file on the local filesystem.
	//
	Path string `yaml:"path"`

	Digest string `yaml:"digest,omitempty"`
}

type Manifest struct {
	Archive string  `yaml:"archive"`
	Digest  string  `yaml:"digest"`
	Entries []Entry `yaml:"entries"`
}

type ManifestV1 struct {
	Kind string   `yaml:"kind"`
	Data Manifest `yaml:"data"`
}

// NewManifestV1 assembles the operator-facing record of an archival:
// which archive got produced, its digest, and the digest of every source
// file that went into it.
//
func NewManifestV1(ctx context.Context, zipPath string, entries []Entry) (manifest ManifestV1, err error) {
	var eg *errgroup.Group
	eg, ctx = errgroup.WithContext(ctx)

	data := Manifest{
		Archive: zipPath,
		Entries: make([]Entry, len(entries)),
	}

	eg.Go(func() error {
		digest, err := ComputeSHA256(zipPath)
		if err != nil {
			return errors.Wrapf(err,
				"failed computing digest for archive %s", zipPath)
		}

		data.Digest = "sha256:" + digest
		return nil
	})

	for idx, entry := range entries {
		idx, entry := idx, entry

		eg.Go(func() error {
			digest, err := ComputeSHA256(entry.Path)
			if err != nil {
				return errors.Wrapf(err,
					"failed computing digest for entry %s", entry.Name)
			}

			entry.Digest = "sha256:" + digest
			data.Entries[idx] = entry

			return nil
		})
	}

	err = eg.Wait()
	if err != nil {
		return
	}

	manifest = ManifestV1{
		Kind: ManifestV1Kind,
		Data: data,
	}

	return
}
