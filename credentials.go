package vestaboard

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Credentials authenticate a Read/Write installable against the cloud API.
type Credentials struct {
	APIKey         string `toml:"api_key"`
	APISecret      string `toml:"api_secret"`
	SubscriptionID string `toml:"subscription_id"`
}

func (c Credentials) trimmed() Credentials {
	return Credentials{
		APIKey:         strings.TrimSpace(c.APIKey),
		APISecret:      strings.TrimSpace(c.APISecret),
		SubscriptionID: strings.TrimSpace(c.SubscriptionID),
	}
}

func (c Credentials) validate() error {
	switch {
	case c.APIKey == "":
		return ErrAPIKeyMissing
	case c.APISecret == "":
		return ErrAPISecretMissing
	case c.SubscriptionID == "":
		return ErrSubscriptionMissing
	}
	return nil
}

// LocalToken authenticates against the board's local API. IP may carry a port
// or be a full base URL; port 7000 is assumed otherwise.
type LocalToken struct {
	APIKey string `toml:"api_key"`
	IP     string `toml:"ip"`
}

func (t LocalToken) trimmed() LocalToken {
	return LocalToken{APIKey: strings.TrimSpace(t.APIKey), IP: strings.TrimSpace(t.IP)}
}

func (t LocalToken) validate() error {
	switch {
	case t.APIKey == "":
		return ErrAPIKeyMissing
	case t.IP == "":
		return ErrLocalIPMissing
	}
	return nil
}

func (t LocalToken) baseURL() string {
	if strings.Contains(t.IP, "://") {
		return t.IP
	}
	if _, _, err := net.SplitHostPort(t.IP); err == nil {
		return "http://" + t.IP
	}
	return "http://" + net.JoinHostPort(t.IP, strconv.Itoa(DefaultLocalPort))
}

// CredentialSource supplies credentials to client constructors.
// Implementations return ErrCredentialsNotFound when nothing is stored.
type CredentialSource interface {
	LoadCredentials() (Credentials, error)
	LoadLocalToken() (LocalToken, error)
}

// credentialFile is the on-disk layout of a FileStore.
type credentialFile struct {
	Cloud *Credentials `toml:"cloud,omitempty"`
	Local *LocalToken  `toml:"local,omitempty"`
}

// FileStore keeps credentials in a TOML file:
//
//	[cloud]
//	api_key = "..."
//	api_secret = "..."
//	subscription_id = "..."
//
//	[local]
//	api_key = "..."
//	ip = "192.168.0.10"
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path, or at DefaultCredentialsPath when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{Path: path}, nil
}

// DefaultCredentialsPath is credentials.toml under the user's config directory.
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("vestaboard: locate config dir: %w", err)
	}
	return filepath.Join(dir, "vestaboard", "credentials.toml"), nil
}

// LoadCredentials implements CredentialSource.
func (s *FileStore) LoadCredentials() (Credentials, error) {
	f, err := s.read()
	if err != nil {
		return Credentials{}, err
	}
	if f.Cloud == nil {
		return Credentials{}, ErrCredentialsNotFound
	}
	creds := f.Cloud.trimmed()
	if err := creds.validate(); err != nil {
		return Credentials{}, fmt.Errorf("vestaboard: saved credentials in %s are incomplete: %w", s.Path, err)
	}
	return creds, nil
}

// LoadLocalToken implements CredentialSource.
func (s *FileStore) LoadLocalToken() (LocalToken, error) {
	f, err := s.read()
	if err != nil {
		return LocalToken{}, err
	}
	if f.Local == nil {
		return LocalToken{}, ErrCredentialsNotFound
	}
	token := f.Local.trimmed()
	if err := token.validate(); err != nil {
		return LocalToken{}, fmt.Errorf("vestaboard: saved local token in %s is incomplete: %w", s.Path, err)
	}
	return token, nil
}

// SaveCredentials stores cloud credentials, keeping any saved local token.
func (s *FileStore) SaveCredentials(c Credentials) error {
	c = c.trimmed()
	if err := c.validate(); err != nil {
		return err
	}
	return s.update(func(f *credentialFile) { f.Cloud = &c })
}

// SaveLocalToken stores the local token, keeping any saved cloud credentials.
func (s *FileStore) SaveLocalToken(t LocalToken) error {
	t = t.trimmed()
	if err := t.validate(); err != nil {
		return err
	}
	return s.update(func(f *credentialFile) { f.Local = &t })
}

func (s *FileStore) read() (credentialFile, error) {
	var f credentialFile
	if _, err := toml.DecodeFile(s.Path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, ErrCredentialsNotFound
		}
		return f, fmt.Errorf("vestaboard: read credentials: %w", err)
	}
	return f, nil
}

func (s *FileStore) update(mutate func(*credentialFile)) error {
	f, err := s.read()
	if err != nil && !errors.Is(err, ErrCredentialsNotFound) {
		return err
	}
	mutate(&f)

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("vestaboard: create credentials dir: %w", err)
	}
	out, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("vestaboard: write credentials: %w", err)
	}
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		out.Close()
		return fmt.Errorf("vestaboard: encode credentials: %w", err)
	}
	return out.Close()
}
