package ftp

import (
	"context"
	"net"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	goftp "github.com/jlaffaye/ftp"
	"github.com/pkg/errors"
)

var (
	logger = lager.NewLogger("cargueiro")
)

func init() {
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, lager.INFO))
}

// Endpoint locates the ftp server that archives get shipped to.
//
type Endpoint struct {
	// Host in `host` or `host:port` form - port 21 is assumed when
	// none is given.
	//
	Host string

	Username string
	Password string

	// Dir is the remote working directory selected before storing. It
	// must already exist on the server.
	//
	Dir string

	// Timeout for establishing the control connection; zero means no
	// timeout at all.
	//
	Timeout time.Duration
}

func (e Endpoint) addr() string {
	_, _, err := net.SplitHostPort(e.Host)
	if err != nil {
		return net.JoinHostPort(e.Host, "21")
	}

	return e.Host
}

// Upload streams the file at archivePath to the endpoint's working
// directory under remoteFileName, overwriting any remote file of that
// name.
//
// The call performs a strict sequence - dial, login, change directory,
// binary store - and fails with ConnectionError, AuthError or
// RemoteFSError depending on the step that broke. The control connection
// is released on every exit path.
//
func Upload(ctx context.Context, archivePath string, endpoint Endpoint, remoteFileName string) (err error) {
	sess := logger.Session("upload", lager.Data{
		"host":     endpoint.Host,
		"dir":      endpoint.Dir,
		"filename": remoteFileName,
	})

	file, err := os.Open(archivePath)
	if err != nil {
		err = errors.Wrapf(err,
			"failed opening archive %s for upload", archivePath)
		return
	}

	defer file.Close()

	addr := endpoint.addr()

	conn, err := goftp.Dial(addr,
		goftp.DialWithContext(ctx),
		goftp.DialWithTimeout(endpoint.Timeout),
	)
	if err != nil {
		err = &ConnectionError{Host: addr, Err: err}
		return
	}

	defer conn.Quit()

	err = conn.Login(endpoint.Username, endpoint.Password)
	if err != nil {
		err = &AuthError{Host: addr, Username: endpoint.Username, Err: err}
		return
	}

	err = conn.ChangeDir(endpoint.Dir)
	if err != nil {
		err = &RemoteFSError{Host: addr, Path: endpoint.Dir, Err: err}
		return
	}

	sess.Info("storing")

	err = conn.Stor(remoteFileName, file)
	if err != nil {
		err = &RemoteFSError{Host: addr, Path: remoteFileName, Err: err}
		return
	}

	return
}
