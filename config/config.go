package config

import (
	"path/filepath"

	"github.com/pkg/errors"
)

// DefaultTimeoutSeconds is applied to the remote dial when the `timeout`
// attribute is omitted (or set to zero) in the remote block.
const DefaultTimeoutSeconds = 30

// Config represents the whole shipment definition: which directory to
// archive, where to put the archive, and the remote endpoint that the
// archive gets shipped to.
//
type Config struct {
	Ships []Ship `hcl:"ship,block"`
}

// Ship describes a single archive-and-upload run.
//
// Example:
//
// ```
// ship "sounds" {
//   source  = "./dist/sounds"
//   archive = "./sounds.zip"
//
//   remote {
//     host     = "ftp.example.com"
//     username = user
//     password = pass
//     dir      = "/path/to/remote/dir"
//   }
// }
// ```
//
type Ship struct {
	Name string `hcl:"name,label"`

	// Source is the directory whose regular files end up in the archive.
	//
	Source string `hcl:"source"`

	// Archive is where the zip file gets written to locally.
	//
	Archive string `hcl:"archive"`

	Remote Remote `hcl:"remote,block"`
}

// Remote is the ftp endpoint that receives the archive.
//
type Remote struct {
	// Host of the ftp server - port 21 is assumed when none is given.
	//
	Host string `hcl:"host"`

	Username string `hcl:"username"`
	Password string `hcl:"password"`

	// Dir is the remote working directory that the archive is stored
	// into. It must already exist on the server.
	//
	Dir string `hcl:"dir"`

	// Filename under which the archive is stored remotely, defaulting
	// to the base name of the local archive path.
	//
	Filename string `hcl:"filename,optional"`

	// Timeout (in seconds) for establishing the control connection.
	//
	Timeout int `hcl:"timeout,optional"`
}

// Shipment retrieves the single ship block of a validated definition.
//
func (c *Config) Shipment() Ship {
	return c.Ships[0]
}

func (c *Config) validate() (err error) {
	if len(c.Ships) != 1 {
		err = errors.Errorf(
			"expected exactly one `ship` block, found %d", len(c.Ships))
		return
	}

	ship := &c.Ships[0]

	for field, value := range map[string]string{
		"source":   ship.Source,
		"archive":  ship.Archive,
		"host":     ship.Remote.Host,
		"username": ship.Remote.Username,
		"dir":      ship.Remote.Dir,
	} {
		if value == "" {
			err = errors.Errorf(
				"ship `%s`: `%s` must not be empty", ship.Name, field)
			return
		}
	}

	if ship.Remote.Filename == "" {
		ship.Remote.Filename = filepath.Base(ship.Archive)
	}

	if ship.Remote.Timeout <= 0 {
		ship.Remote.Timeout = DefaultTimeoutSeconds
	}

	return
}
