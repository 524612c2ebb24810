package keyring

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jose "github.com/go-jose/go-jose/v4"

	"infisical/pkg/logging"
)

// DefaultConfigFile is the Infisical CLI configuration file, relative to the
// user's home directory.
const DefaultConfigFile = ".infisical/infisical-config.json"

// DefaultKeyringDir is the Infisical CLI's file-vault directory, relative to
// the user's home directory. It holds one encrypted blob per logged-in user.
const DefaultKeyringDir = "infisical-keyring"

// vaultBackendFile is the only vault backend type this store can decrypt.
const vaultBackendFile = "file"

// cliConfig mirrors the subset of infisical-config.json this store reads.
// The inconsistent key casing is the CLI's on-disk format.
type cliConfig struct {
	VaultBackendType       string `json:"vaultBackendType"`
	VaultBackendPassphrase string `json:"vaultBackendPassphrase"`
	LoggedInUserEmail      string `json:"loggedInUserEmail"`
	LoggedInUserDomain     string `json:"LoggedInUserDomain"`
}

// FileKeyring reads the session material the Infisical CLI persists after
// `infisical login`: a JSON config file plus a per-user token blob encrypted
// as a compact JWE (PBES2-HS256+A128KW key wrap, A256GCM content).
//
// All token lookups degrade to empty results when material is missing, so a
// machine without a CLI session simply contributes no credentials. The store
// is read-only; refreshed tokens are never written back.
type FileKeyring struct {
	configPath string
	keyringDir string

	loadOnce sync.Once
	config   cliConfig
	loaded   bool
}

// Config configures a FileKeyring.
type Config struct {
	// ConfigPath overrides the CLI config file location.
	// Defaults to ~/.infisical/infisical-config.json.
	ConfigPath string

	// KeyringDir overrides the encrypted blob directory.
	// Defaults to ~/infisical-keyring.
	KeyringDir string
}

// New creates a FileKeyring with the specified configuration.
func New(cfg Config) (*FileKeyring, error) {
	configPath := cfg.ConfigPath
	keyringDir := cfg.KeyringDir

	if configPath == "" || keyringDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(homeDir, DefaultConfigFile)
		}
		if keyringDir == "" {
			keyringDir = filepath.Join(homeDir, DefaultKeyringDir)
		}
	}

	return &FileKeyring{
		configPath: configPath,
		keyringDir: keyringDir,
	}, nil
}

// load reads and caches the CLI config. The config is read once for the
// lifetime of the FileKeyring; there is no hot-reload.
func (k *FileKeyring) load() *cliConfig {
	k.loadOnce.Do(func() {
		// #nosec G304 -- configPath is fixed at construction, not user input
		data, err := os.ReadFile(k.configPath)
		if err != nil {
			logging.Debug("Keyring", "No readable Infisical CLI config at %s", k.configPath)
			return
		}

		var cfg cliConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			logging.Debug("Keyring", "Ignoring malformed Infisical CLI config %s: %v", k.configPath, err)
			return
		}

		k.config = cfg
		k.loaded = true
	})
	return &k.config
}

// Token returns the logged-in user's session token, decrypted from the CLI's
// file vault. It returns an empty string whenever a usable token is absent:
// no config file, an unsupported vault backend, a missing passphrase or user
// email, a missing per-user blob, or material that fails to decrypt.
func (k *FileKeyring) Token() string {
	cfg := k.load()
	if !k.loaded {
		return ""
	}

	if cfg.VaultBackendType != vaultBackendFile {
		// Later CLI versions may grow other vault backends; only the file
		// vault is decryptable here.
		logging.Warn("Keyring", "Only the 'file' vault backend is supported, found %q", cfg.VaultBackendType)
		return ""
	}

	if cfg.VaultBackendPassphrase == "" || cfg.LoggedInUserEmail == "" {
		return ""
	}

	blobPath := filepath.Join(k.keyringDir, cfg.LoggedInUserEmail)
	// #nosec G304 -- path is rooted at the keyring dir fixed at construction
	raw, err := os.ReadFile(blobPath)
	if err != nil {
		logging.Debug("Keyring", "No keyring blob for %s", cfg.LoggedInUserEmail)
		return ""
	}

	passphrase, err := base64.StdEncoding.DecodeString(cfg.VaultBackendPassphrase)
	if err != nil {
		logging.Debug("Keyring", "Vault passphrase is not valid base64: %v", err)
		return ""
	}

	token, err := decryptSessionBlob(raw, passphrase)
	if err != nil {
		logging.Debug("Keyring", "Could not decrypt keyring blob for %s: %v", cfg.LoggedInUserEmail, err)
		return ""
	}

	return token
}

// URL returns the API endpoint the CLI session was issued against, with the
// CLI's trailing "/api" suffix removed. Unlike Token, a missing domain is an
// error: callers only ask for the URL after Token proved the config loaded.
func (k *FileKeyring) URL() (string, error) {
	cfg := k.load()
	if cfg.LoggedInUserDomain == "" {
		return "", fmt.Errorf("LoggedInUserDomain not set in %s", k.configPath)
	}
	return strings.TrimSuffix(cfg.LoggedInUserDomain, "/api"), nil
}

// decryptSessionBlob unwraps the CLI's encrypted session envelope. The
// plaintext is double-JSON-encoded (a JSON string containing escaped JSON)
// and the token key is misspelled "JTWToken"; both are part of the CLI's
// wire format and must not be normalized.
func decryptSessionBlob(raw, passphrase []byte) (string, error) {
	jwe, err := jose.ParseEncrypted(strings.TrimSpace(string(raw)),
		[]jose.KeyAlgorithm{jose.PBES2_HS256_A128KW},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse session blob: %w", err)
	}

	plaintext, err := jwe.Decrypt(passphrase)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt session blob: %w", err)
	}

	var inner string
	if err := json.Unmarshal(plaintext, &inner); err != nil {
		return "", fmt.Errorf("failed to decode session payload: %w", err)
	}

	var session struct {
		Token string `json:"JTWToken"`
	}
	if err := json.Unmarshal([]byte(inner), &session); err != nil {
		return "", fmt.Errorf("failed to decode session payload: %w", err)
	}

	return session.Token, nil
}
