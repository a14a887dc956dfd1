package zip

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

func ComputeSHA256(filename string) (digest string, err error) {
	file, err := os.Open(filename)
	if err != nil {
		err = errors.Wrapf(err,
			"failed opening %s for digesting", filename)
		return
	}

	defer file.Close()

	hash := sha256.New()

	_, err = io.Copy(hash, file)
	if err != nil {
		err = errors.Wrapf(err,
			"failed reading %s for digesting", filename)
		return
	}

	digest = hex.EncodeToString(hash.Sum(nil))
	return
}
