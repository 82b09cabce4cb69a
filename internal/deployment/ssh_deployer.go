package deployment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"sync"

	"torn_flight_board/internal/config"
	"torn_flight_board/internal/domain/board"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SnapshotFilename is the name the board snapshot is uploaded as
const SnapshotFilename = "board.json"

const sshPort = "22"

// SSHDeployer uploads board snapshots to a remote host via SCP
type SSHDeployer struct {
	deployURL      string
	keyPath        string
	knownHostsPath string

	mutex  sync.Mutex
	client *ssh.Client
}

// NewSSHDeployer creates a deployer for a user@host:path target. When
// knownHostsPath is empty the host key is not verified.
func NewSSHDeployer(deployURL, keyPath, knownHostsPath string) *SSHDeployer {
	return &SSHDeployer{
		deployURL:      deployURL,
		keyPath:        keyPath,
		knownHostsPath: knownHostsPath,
	}
}

// Name identifies the publisher in logs
func (d *SSHDeployer) Name() string {
	return "ssh"
}

// Publish uploads the board as JSON
func (d *SSHDeployer) Publish(ctx context.Context, b board.Board) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode board snapshot: %w", err)
	}
	return d.DeployBytes(ctx, data, SnapshotFilename)
}

// parseDeployURL parses a deploy URL in format: user@host:path
func parseDeployURL(deployURL string) (user, host, remotePath string, err error) {
	if deployURL == "" {
		return "", "", "", fmt.Errorf("deploy URL is empty")
	}

	user, hostPath, ok := strings.Cut(deployURL, "@")
	if !ok || user == "" {
		return "", "", "", fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	host, remotePath, ok = strings.Cut(hostPath, ":")
	if !ok || host == "" || remotePath == "" {
		return "", "", "", fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	return user, host, remotePath, nil
}

func (d *SSHDeployer) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if d.knownHostsPath == "" {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	callback, err := knownhosts.New(d.knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts %s: %w", d.knownHostsPath, err)
	}
	return callback, nil
}

// connect establishes the SSH connection if there is none. Caller holds the mutex.
func (d *SSHDeployer) connect(ctx context.Context) error {
	if d.client != nil {
		return nil
	}

	user, host, _, err := parseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	keyData, err := os.ReadFile(d.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", d.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	hostKeyCallback, err := d.hostKeyCallback()
	if err != nil {
		return err
	}

	clientConfig := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         config.DeployDialTimeout,
	}

	addr := net.JoinHostPort(host, sshPort)
	dialer := net.Dialer{Timeout: config.DeployDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", host, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SSH handshake with %s failed: %w", host, err)
	}

	d.client = ssh.NewClient(sshConn, chans, reqs)
	log.Info().
		Str("host", host).
		Str("user", user).
		Msg("Connected to SSH server")

	return nil
}

// Disconnect closes the SSH connection
func (d *SSHDeployer) Disconnect() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.disconnect()
}

func (d *SSHDeployer) disconnect() error {
	if d.client == nil {
		return nil
	}
	err := d.client.Close()
	d.client = nil
	return err
}

// DeployBytes uploads data as filename into the remote directory. A failed
// upload drops the connection so the next call redials.
func (d *SSHDeployer) DeployBytes(ctx context.Context, data []byte, filename string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := d.connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	_, _, remotePath, err := parseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	remoteFilePath := path.Join(remotePath, filename)
	if err := d.scp(ctx, bytes.NewReader(data), int64(len(data)), filename, remoteFilePath); err != nil {
		_ = d.disconnect()
		return err
	}

	log.Debug().
		Str("remote_path", remoteFilePath).
		Int("size", len(data)).
		Msg("Deployed board snapshot via SCP")

	return nil
}

func (d *SSHDeployer) scp(ctx context.Context, content io.Reader, size int64, filename, remoteFilePath string) error {
	session, err := d.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	stop := context.AfterFunc(ctx, func() { session.Close() })
	defer stop()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start("scp -t " + remoteFilePath); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	if _, err := fmt.Fprintf(stdin, "C0644 %d %s\n", size, filename); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}
	if _, err := io.Copy(stdin, content); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	if _, err := stdin.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}
	return nil
}
