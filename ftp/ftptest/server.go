// Package ftptest provides a minimal in-process ftp server covering just
// the command sequence that shipping an archive exercises: USER/PASS,
// TYPE, CWD, EPSV and STOR. Stored files are kept in memory.
package ftptest

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"net"
	"path"
	"strings"
	"sync"
)

type Server struct {
	Username string
	Password string

	listener net.Listener

	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte
}

// NewServer starts a server on a random localhost port, accepting the
// given credentials and pretending that the given directories exist.
func NewServer(username, password string, dirs ...string) (s *Server, err error) {
	s = &Server{
		Username: username,
		Password: password,
		dirs:     map[string]bool{"/": true},
		files:    map[string][]byte{},
	}

	for _, dir := range dirs {
		s.dirs[dir] = true
	}

	s.listener, err = net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return
	}

	go s.acceptLoop()

	return
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Close() error {
	return s.listener.Close()
}

// File retrieves the content stored under an absolute remote path.
func (s *Server) File(name string) (content []byte, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, found = s.files[name]
	return
}

// Files lists every absolute remote path that has been stored.
func (s *Server) Files() (names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name := range s.files {
		names = append(names, name)
	}

	return
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	var (
		scanner  = bufio.NewScanner(conn)
		cwd      = "/"
		loggedIn bool
		user     string
		data     net.Listener
	)

	reply := func(code int, msg string) {
		fmt.Fprintf(conn, "%d %s\r\n", code, msg)
	}

	reply(220, "ftptest ready")

	for scanner.Scan() {
		verb, arg := splitCommand(scanner.Text())

		switch verb {
		case "USER":
			user = arg
			reply(331, "password required")
		case "PASS":
			if user == s.Username && arg == s.Password {
				loggedIn = true
				reply(230, "logged in")
			} else {
				reply(530, "login incorrect")
			}
		case "TYPE":
			reply(200, "type set")
		case "CWD":
			if !loggedIn {
				reply(530, "not logged in")
				continue
			}

			target := arg
			if !path.IsAbs(target) {
				target = path.Join(cwd, target)
			}

			if s.dirExists(target) {
				cwd = target
				reply(250, "directory changed")
			} else {
				reply(550, "no such directory")
			}
		case "EPSV":
			if !loggedIn {
				reply(530, "not logged in")
				continue
			}

			var err error
			data, err = net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				reply(425, "cannot open data connection")
				continue
			}

			_, port, _ := net.SplitHostPort(data.Addr().String())
			reply(229, fmt.Sprintf(
				"Entering Extended Passive Mode (|||%s|)", port))
		case "STOR":
			if !loggedIn {
				reply(530, "not logged in")
				continue
			}

			if data == nil {
				reply(425, "use EPSV first")
				continue
			}

			reply(150, "ok to send data")

			dataConn, err := data.Accept()
			data.Close()
			data = nil
			if err != nil {
				reply(426, "data connection failed")
				continue
			}

			content, err := ioutil.ReadAll(dataConn)
			dataConn.Close()
			if err != nil {
				reply(426, "transfer failed")
				continue
			}

			s.store(path.Join(cwd, arg), content)
			reply(226, "transfer complete")
		case "QUIT":
			reply(221, "bye")
			return
		default:
			reply(502, "command not implemented")
		}
	}
}

func (s *Server) dirExists(dir string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dirs[dir]
}

func (s *Server) store(name string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[name] = content
}

func splitCommand(line string) (verb, arg string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)

	verb = strings.ToUpper(parts[0])
	if len(parts) == 2 {
		arg = parts[1]
	}

	return
}
