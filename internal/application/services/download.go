package services

import (
	"errors"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"filetag-api/config"
	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/shortcut"
)

var (
	ErrKeyNotFound = errors.New("access key not found")
	// ErrNoAccess deliberately covers both a missing account and a
	// wrong sign-in key.
	ErrNoAccess = errors.New("no access")
	// ErrMalformedShortcut marks a stored shortcut this service can
	// not serve: empty or mis-shaped destination, unknown content
	// type. Always a server error, never the client's fault.
	ErrMalformedShortcut = errors.New("malformed shortcut")
)

// DownloadService validates access credentials and resolves shortcuts
// to retrievable payloads. It reads only from the shortcut and
// identity stores and is independent of the upload flow.
type DownloadService struct {
	shortcuts ports.ShortcutStore
	accounts  ports.IdentityStore
	mCounter  *prometheus.CounterVec
	cfg       config.Config
}

func NewDownloadService(
	shortcuts ports.ShortcutStore,
	accounts ports.IdentityStore,
	mCounter *prometheus.CounterVec,
	cfg config.Config,
) ports.DownloadResolver {
	return &DownloadService{
		shortcuts: shortcuts,
		accounts:  accounts,
		mCounter:  mCounter,
		cfg:       cfg,
	}
}

func (ds *DownloadService) Resolve(rawKey string) (*ports.Download, error) {
	sc := ds.shortcuts.GetByKey(rawKey)
	if sc == nil {
		return nil, ErrKeyNotFound
	}
	if sc.Destination == "" {
		return nil, ErrMalformedShortcut
	}

	paths := sc.Destinations()

	switch sc.ContentType {
	case shortcut.ContentTypeFile:
		if len(paths) != 1 {
			return nil, ErrMalformedShortcut
		}
		ds.mCounter.WithLabelValues("downloads_resolved_total").Inc()
		return &ports.Download{Shortcut: sc, FilePath: paths[0]}, nil

	case shortcut.ContentTypeArchive:
		if len(paths) < 2 {
			return nil, ErrMalformedShortcut
		}
		entries := make([]ports.ArchiveEntry, len(paths))
		for i, p := range paths {
			entries[i] = ports.ArchiveEntry{Path: p, Name: filepath.Base(p)}
		}
		ds.mCounter.WithLabelValues("downloads_resolved_total").Inc()
		return &ports.Download{Shortcut: sc, Entries: entries}, nil

	default:
		return nil, ErrMalformedShortcut
	}
}

// Browse lists a recipient's shortcuts behind the sign-in key. The
// failure mode hides whether the account exists at all.
func (ds *DownloadService) Browse(email, signInKey string) ([]ports.BrowseItem, error) {
	acc := ds.accounts.Get(email)
	if acc == nil || !ds.accounts.VerifySignInKey(email, signInKey) {
		return nil, ErrNoAccess
	}

	scs := ds.shortcuts.GetByOwner(acc.OwnerUserID)
	items := make([]ports.BrowseItem, 0, len(scs))
	for _, sc := range scs {
		items = append(items, ports.BrowseItem{
			OriginalName:  sc.OriginalName,
			Destination:   ds.cfg.DownloadURL(sc.ShortcutKey),
			CreatedDate:   sc.CreatedDate,
			ContentLength: sc.ContentLength,
		})
	}

	return items, nil
}
