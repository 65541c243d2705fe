package tunnelblick

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/logger"
)

const (
	// cdnBaseURL hosts the generated OpenVPN profiles.
	cdnBaseURL = "https://downloads.nordcdn.com"

	// archiveCDNPath is the full profile archive (roughly 40MB).
	archiveCDNPath = "/configs/archives/servers/ovpn.zip"

	// sharedConfigDir holds configurations installed for all users.
	sharedConfigDir = "/Library/Application Support/Tunnelblick/Shared"

	// tblkExt marks a Tunnelblick configuration bundle.
	tblkExt = ".tblk"

	// passFilePerm keeps the credentials file private.
	passFilePerm = 0o600

	// downloadTimeout bounds a single profile download.
	downloadTimeout = 30 * time.Second

	// archiveTimeout bounds the full archive download.
	archiveTimeout = 2 * time.Minute

	// registerTimeout bounds the wait for Tunnelblick to pick up a new
	// bundle after open.
	registerTimeout = 30 * time.Second

	// registerPollInterval is the re-check cadence while waiting for
	// registration.
	registerPollInterval = time.Second

	// installerRetryMax retries transport failures once, matching the
	// API client.
	installerRetryMax = 1

	installerRetryWaitMin = 500 * time.Millisecond
	installerRetryWaitMax = 2 * time.Second
)

// tunnelblickConfigDirs returns the directories Tunnelblick reads
// bundles from, user configurations first.
func tunnelblickConfigDirs() []string {
	dirs := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Library", "Application Support", "Tunnelblick", "Configurations"))
	}
	return append(dirs, sharedConfigDir)
}

// Ensure Installer implements the ProfileInstaller interface.
var _ driven.ProfileInstaller = (*Installer)(nil)

// Installer downloads OpenVPN profiles and hands them to Tunnelblick as
// .tblk bundles.
type Installer struct {
	http       *retryablehttp.Client
	runner     runner
	baseURL    string
	configDirs []string
	stagingDir string
}

// NewInstaller creates an installer using the default Tunnelblick
// directories and the NordVPN CDN. Bundles are assembled under
// stagingDir before being handed to Tunnelblick.
func NewInstaller(stagingDir string) *Installer {
	return &Installer{
		http:       newDownloadClient(),
		runner:     execRunner{},
		baseURL:    cdnBaseURL,
		configDirs: tunnelblickConfigDirs(),
		stagingDir: stagingDir,
	}
}

// newDownloadClient builds the HTTP client used for CDN downloads.
// Transport failures are retried once; HTTP errors are not.
func newDownloadClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = installerRetryMax
	client.RetryWaitMin = installerRetryWaitMin
	client.RetryWaitMax = installerRetryWaitMax
	client.Logger = nil // Disable retryablehttp logging
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if resp != nil {
			return false, nil
		}
		if err != nil {
			return true, nil //nolint:nilerr // retryablehttp handles the error
		}
		return false, nil
	}
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("download of %s failed, retrying (attempt %d of %d)",
				req.URL.Path, attempt+1, installerRetryMax+1)
		}
	}
	return client
}

// Installed returns the configuration names Tunnelblick knows about,
// read from its Configurations and Shared directories.
func (i *Installer) Installed(_ context.Context) ([]string, error) {
	var names []string
	for _, dir := range i.configDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), tblkExt) {
				names = append(names, strings.TrimSuffix(entry.Name(), tblkExt))
			}
		}
	}
	return names, nil
}

// IsInstalled reports whether the named configuration is installed.
func (i *Installer) IsInstalled(ctx context.Context, configName string) (bool, error) {
	installed, err := i.Installed(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range installed {
		if name == configName {
			return true, nil
		}
	}
	return false, nil
}

// Install downloads the server's profile, packages it with the
// credentials, hands it to Tunnelblick, and waits until Tunnelblick
// registers the configuration. Already-installed configurations are a
// no-op.
func (i *Installer) Install(ctx context.Context, hostname string, protocol domain.Protocol, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	hostname = domain.NormalizeHostname(hostname)
	configName := domain.ConfigNameForHostname(hostname, protocol)

	installed, err := i.IsInstalled(ctx, configName)
	if err != nil {
		return err
	}
	if installed {
		logger.Debug("configuration %s already installed", configName)
		return nil
	}

	profile, err := i.downloadProfile(ctx, hostname, protocol)
	if err != nil {
		return err
	}

	bundle, err := i.buildBundle(configName, profile, creds)
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.RemoveAll(filepath.Dir(bundle)); removeErr != nil {
			logger.Warn("failed to clean staging dir: %v", removeErr)
		}
	}()

	logger.Info("installing configuration %s", configName)
	if _, err := i.runner.run(ctx, "open", bundle); err != nil {
		return fmt.Errorf("open bundle: %w", err)
	}

	return i.waitRegistered(ctx, configName)
}

// profilePath returns the CDN path for a hostname and protocol.
func profilePath(hostname string, protocol domain.Protocol) string {
	suffix := protocol.ConfigSuffix()
	return fmt.Sprintf("/configs/files/ovpn_%s/servers/%s.%s.ovpn", suffix, hostname, suffix)
}

// downloadProfile fetches the OpenVPN profile body for a server.
func (i *Installer) downloadProfile(ctx context.Context, hostname string, protocol domain.Protocol) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	requestURL := i.baseURL + profilePath(hostname, protocol)
	logger.Debug("GET %s", requestURL)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := i.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download profile: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no %s profile for %s: %w", protocol, hostname, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download profile: unexpected status %d", resp.StatusCode)
	}

	profile, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return profile, nil
}

// buildBundle assembles a .tblk directory containing the profile, the
// credentials file, and the autoLogin marker. It returns the bundle
// path inside a fresh staging directory.
func (i *Installer) buildBundle(configName string, profile []byte, creds domain.Credentials) (string, error) {
	staging := filepath.Join(i.stagingDir, uuid.New().String())
	bundle := filepath.Join(staging, configName+tblkExt)
	if err := os.MkdirAll(bundle, 0o700); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(bundle, configName+".ovpn"), profile, 0o600); err != nil {
		return "", fmt.Errorf("write profile: %w", err)
	}

	// Username on the first line, password on the second. Tunnelblick
	// reads the sibling .pass file when autoLogin is present.
	pass := creds.Username + "\n" + creds.Password + "\n"
	if err := os.WriteFile(filepath.Join(bundle, configName+".pass"), []byte(pass), passFilePerm); err != nil {
		return "", fmt.Errorf("write credentials: %w", err)
	}

	if err := os.WriteFile(filepath.Join(bundle, "autoLogin"), nil, 0o600); err != nil {
		return "", fmt.Errorf("write autoLogin marker: %w", err)
	}

	return bundle, nil
}

// waitRegistered blocks until the configuration shows up in one of
// Tunnelblick's directories. It watches the directories when possible
// and re-checks on a timer either way, since the import may land in a
// directory fsnotify cannot watch.
func (i *Installer) waitRegistered(ctx context.Context, configName string) error {
	ctx, cancel := context.WithTimeout(ctx, registerTimeout)
	defer cancel()

	var events <-chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Debug("fsnotify unavailable, polling instead: %v", err)
	} else {
		defer func() {
			if closeErr := watcher.Close(); closeErr != nil {
				logger.Warn("failed to close watcher: %v", closeErr)
			}
		}()
		for _, dir := range i.configDirs {
			if addErr := watcher.Add(dir); addErr != nil {
				logger.Debug("cannot watch %s: %v", dir, addErr)
			}
		}
		events = watcher.Events
	}

	ticker := time.NewTicker(registerPollInterval)
	defer ticker.Stop()

	for {
		installed, err := i.IsInstalled(ctx, configName)
		if err != nil {
			return err
		}
		if installed {
			logger.Debug("configuration %s registered", configName)
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("tunnelblick did not register %s: %w", configName, ctx.Err())
		case event := <-events:
			logger.Debug("configuration dir event: %s", event)
		case <-ticker.C:
		}
	}
}

// DownloadArchive fetches the full NordVPN profile archive and extracts
// the UDP profiles into destDir, flattening the archive layout. A
// non-empty countryPrefix (e.g., "de") keeps only that country's
// profiles. Returns the number of profiles extracted.
func (i *Installer) DownloadArchive(ctx context.Context, destDir, countryPrefix string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("create destination dir: %w", err)
	}

	requestURL := i.baseURL + archiveCDNPath
	logger.Info("downloading profile archive from %s", requestURL)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := i.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download archive: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download archive: unexpected status %d", resp.StatusCode)
	}

	archive, err := os.CreateTemp("", "ovpn-*.zip")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if closeErr := archive.Close(); closeErr != nil {
			logger.Debug("failed to close archive: %v", closeErr)
		}
		if removeErr := os.Remove(archive.Name()); removeErr != nil {
			logger.Warn("failed to remove archive: %v", removeErr)
		}
	}()

	if _, err := io.Copy(archive, resp.Body); err != nil {
		return 0, fmt.Errorf("save archive: %w", err)
	}

	return extractUDPProfiles(archive.Name(), destDir, strings.ToLower(countryPrefix))
}

// extractUDPProfiles unpacks ovpn_udp/ entries from the archive into
// destDir.
func extractUDPProfiles(zipPath, destDir, countryPrefix string) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil {
			logger.Debug("failed to close archive reader: %v", closeErr)
		}
	}()

	prefix := "ovpn_udp/" + countryPrefix
	count := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}

		// Flatten: archive entries are ovpn_udp/<hostname>.udp.ovpn.
		name := filepath.Base(f.Name)
		if !strings.HasSuffix(name, ".ovpn") {
			continue
		}

		if err := extractFile(f, filepath.Join(destDir, name)); err != nil {
			return count, err
		}
		count++
	}

	logger.Debug("extracted %d profiles to %s", count, destDir)
	return count, nil
}

// extractFile writes a single archive entry to disk.
func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			logger.Debug("failed to close archive entry: %v", closeErr)
		}
	}()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logger.Debug("failed to close %s: %v", dest, closeErr)
		}
	}()

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // profiles are small text files
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
