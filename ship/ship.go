package ship

import (
	"context"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/pkg/errors"

	"github.com/cargueiro/cargueiro/config"
	"github.com/cargueiro/cargueiro/ftp"
	"github.com/cargueiro/cargueiro/zip"
)

var (
	logger = lager.NewLogger("cargueiro")
)

func init() {
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, lager.INFO))
}

// Ship runs the whole pipeline: archive the source directory, upload the
// resulting zip to the configured endpoint, remind the operator that
// remote unpacking is on them, then remove the local zip.
//
// There are no retries - the first failure terminates the run. A failure
// while uploading leaves the local archive in place so that the operator
// can inspect it and re-attempt with `cargueiro upload`.
//
func Ship(ctx context.Context, shipment config.Ship) (err error) {
	sess := logger.Session("ship", lager.Data{
		"name":    shipment.Name,
		"source":  shipment.Source,
		"archive": shipment.Archive,
	})

	sess.Info("zipping")

	_, err = zip.Archive(ctx, shipment.Source, shipment.Archive)
	if err != nil {
		err = errors.Wrapf(err,
			"failed archiving directory %s into %s",
			shipment.Source, shipment.Archive)
		return
	}

	sess.Info("uploading", lager.Data{
		"host":     shipment.Remote.Host,
		"dir":      shipment.Remote.Dir,
		"filename": shipment.Remote.Filename,
	})

	err = ftp.Upload(ctx, shipment.Archive,
		Endpoint(shipment.Remote), shipment.Remote.Filename)
	if err != nil {
		err = errors.Wrapf(err,
			"failed uploading archive %s to %s",
			shipment.Archive, shipment.Remote.Host)
		return
	}

	// unpacking is not automated - the operator has to unzip the
	// uploaded archive out-of-band (e.g. over a remote shell)
	sess.Info("unpack-manually", lager.Data{
		"dir":      shipment.Remote.Dir,
		"filename": shipment.Remote.Filename,
	})

	sess.Info("cleanup")

	err = os.Remove(shipment.Archive)
	if err != nil {
		err = errors.Wrapf(err,
			"failed removing local archive %s", shipment.Archive)
		return
	}

	return
}

// Endpoint translates a remote block into the transporter's endpoint.
//
func Endpoint(remote config.Remote) ftp.Endpoint {
	return ftp.Endpoint{
		Host:     remote.Host,
		Username: remote.Username,
		Password: remote.Password,
		Dir:      remote.Dir,
		Timeout:  time.Duration(remote.Timeout) * time.Second,
	}
}
