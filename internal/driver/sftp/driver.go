package sftp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	pathpkg "path"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"gatekeeper/internal/config"
)

// Driver serves site content from a directory on an SFTP server.
type Driver struct {
	client *sftp.Client
	conn   *ssh.Client
	root   string
}

// NewDriver wraps an already connected client. Paths are resolved under root.
func NewDriver(client *sftp.Client, root string) *Driver {
	return &Driver{client: client, root: root}
}

// NewDriverWithConfig dials the SFTP server described by cfg.
func NewDriverWithConfig(cfg *config.Config) (*Driver, error) {
	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.FTPKnownHosts != "" {
		cb, err := knownhosts.New(cfg.FTPKnownHosts)
		if err != nil {
			return nil, fmt.Errorf("load known_hosts: %w", err)
		}
		hostKeyCallback = cb
	}
	sshConfig := &ssh.ClientConfig{
		User: cfg.FTPUsername,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.FTPPassword),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         10 * time.Second,
	}
	conn, err := ssh.Dial("tcp", cfg.FTPHost+":"+cfg.FTPPort, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("dial ssh: %w", err)
	}
	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session: %w", err)
	}
	d := NewDriver(client, cfg.SiteRoot)
	d.conn = conn
	return d, nil
}

func (d *Driver) Name() string {
	return "sftp"
}

func (d *Driver) fullPath(p string) string {
	return pathpkg.Join(d.root, pathpkg.Clean("/"+p))
}

func (d *Driver) GetContent(ctx context.Context, p string) ([]byte, error) {
	fp := d.fullPath(p)
	fi, err := d.client.Stat(fp)
	if err != nil {
		return nil, notExist(fp, err)
	}
	if fi.IsDir() {
		return nil, &os.PathError{Op: "read", Path: fp, Err: os.ErrNotExist}
	}
	f, err := d.client.Open(fp)
	if err != nil {
		return nil, notExist(fp, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (d *Driver) Close() error {
	err := d.client.Close()
	if d.conn != nil {
		if cerr := d.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// notExist maps SSH_FX_NO_SUCH_FILE onto os.ErrNotExist so callers can test
// for missing files the same way for every driver.
func notExist(p string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return &os.PathError{Op: "open", Path: p, Err: os.ErrNotExist}
	}
	var se *sftp.StatusError
	if errors.As(err, &se) && se.Code == uint32(sftp.ErrSSHFxNoSuchFile) {
		return &os.PathError{Op: "open", Path: p, Err: os.ErrNotExist}
	}
	return err
}
