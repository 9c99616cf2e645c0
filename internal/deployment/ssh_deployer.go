package deployment

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	// DefaultKeyPath is the private key used when none is configured
	DefaultKeyPath = "deploy.pem"
	dialTimeout    = 30 * time.Second
)

// SSHDeployer uploads reports to a remote directory via SCP
type SSHDeployer struct {
	keyPath        string
	knownHostsPath string
	deployURL      string
	client         *ssh.Client
	connected      bool
	mutex          sync.Mutex
}

// NewSSHDeployer creates a new SSH deployer for a user@host:path target.
// An empty knownHostsPath skips host key verification.
func NewSSHDeployer(deployURL, keyPath, knownHostsPath string) *SSHDeployer {
	if keyPath == "" {
		keyPath = DefaultKeyPath
	}
	return &SSHDeployer{
		keyPath:        keyPath,
		knownHostsPath: knownHostsPath,
		deployURL:      deployURL,
	}
}

// Target is a parsed deploy URL
type Target struct {
	User       string
	Host       string
	Port       string
	RemotePath string
}

// ParseDeployURL parses a deploy URL in format user@host:path or user@host:port:path
func ParseDeployURL(deployURL string) (Target, error) {
	if deployURL == "" {
		return Target{}, fmt.Errorf("deploy URL is empty")
	}

	user, hostPath, ok := strings.Cut(deployURL, "@")
	if !ok || user == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	parts := strings.SplitN(hostPath, ":", 3)
	target := Target{User: user, Port: "22"}
	switch len(parts) {
	case 2:
		target.Host, target.RemotePath = parts[0], parts[1]
	case 3:
		target.Host, target.Port, target.RemotePath = parts[0], parts[1], parts[2]
	default:
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	if target.Host == "" || target.RemotePath == "" {
		return Target{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}
	return target, nil
}

// Connect establishes SSH connection
func (d *SSHDeployer) Connect() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.connectLocked()
}

func (d *SSHDeployer) connectLocked() error {
	if d.connected {
		return nil
	}

	target, err := ParseDeployURL(d.deployURL)
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

	config := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	d.client, err = ssh.Dial("tcp", net.JoinHostPort(target.Host, target.Port), config)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", target.Host, err)
	}

	d.connected = true
	log.Info().
		Str("host", target.Host).
		Str("user", target.User).
		Msg("Successfully connected to SSH server")

	return nil
}

func (d *SSHDeployer) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if d.knownHostsPath == "" {
		log.Warn().Msg("No known_hosts file configured - host key verification disabled")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	callback, err := knownhosts.New(d.knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts %s: %w", d.knownHostsPath, err)
	}
	return callback, nil
}

// Disconnect closes SSH connection
func (d *SSHDeployer) Disconnect() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.client != nil {
		err := d.client.Close()
		d.connected = false
		d.client = nil
		return err
	}
	return nil
}

// DeployFile uploads a local file via SCP
func (d *SSHDeployer) DeployFile(localPath, filename string) error {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read local file %s: %w", localPath, err)
	}
	return d.DeployBytes(content, filename)
}

// DeployBytes uploads content as filename in the remote directory via SCP.
// A broken connection is dropped so the next call reconnects.
func (d *SSHDeployer) DeployBytes(content []byte, filename string) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err := d.connectLocked(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	target, err := ParseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}
	remoteFilePath := path.Join(target.RemotePath, filename)

	if err := d.scp(bytes.NewReader(content), int64(len(content)), filename, remoteFilePath); err != nil {
		if d.client != nil {
			_ = d.client.Close()
		}
		d.client = nil
		d.connected = false
		return err
	}

	log.Info().
		Str("remote_path", remoteFilePath).
		Int("size", len(content)).
		Msg("Successfully deployed file via SCP")

	return nil
}

func (d *SSHDeployer) scp(content io.Reader, size int64, filename, remoteFilePath string) error {
	session, err := d.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	if _, err := io.WriteString(stdin, scpHeader(size, filename)); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(stdin, content); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	// end marker
	if _, err := stdin.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	return nil
}

// scpHeader is the SCP sink "C" record announcing a regular file
func scpHeader(size int64, filename string) string {
	return fmt.Sprintf("C0644 %d %s\n", size, path.Base(filename))
}
