package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filetag-api/config"
	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/account"
	"filetag-api/internal/domain/directory"
	"filetag-api/internal/domain/shortcut"
	"filetag-api/internal/infrastructure/mq"
)

// UploadService glues the stores together for each completed file
// part: resolve account, owner and directory, persist the assembled
// bytes, create the shortcut, advance the transaction and, when it
// closes, bundle and notify.
type UploadService struct {
	accounts     ports.IdentityStore
	users        ports.UserStore
	directories  ports.DirectoryStore
	shortcuts    ports.ShortcutStore
	transactions ports.TransactionTracker
	chunks       ports.ChunkReceiver
	files        ports.FileStore
	notifier     ports.Notifier
	logger       *zap.Logger
	mCounter     *prometheus.CounterVec
	cfg          config.Config
}

func NewUploadService(
	accounts ports.IdentityStore,
	users ports.UserStore,
	directories ports.DirectoryStore,
	shortcuts ports.ShortcutStore,
	transactions ports.TransactionTracker,
	chunks ports.ChunkReceiver,
	files ports.FileStore,
	notifier ports.Notifier,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	cfg config.Config,
) ports.UploadOrchestrator {
	return &UploadService{
		accounts:     accounts,
		users:        users,
		directories:  directories,
		shortcuts:    shortcuts,
		transactions: transactions,
		chunks:       chunks,
		files:        files,
		notifier:     notifier,
		logger:       logger,
		mCounter:     mCounter,
		cfg:          cfg,
	}
}

func (us *UploadService) HandleCompletedPart(ctx context.Context, part ports.UploadPart) error {
	us.transactions.SetExpected(part.TransactionID, part.TransactionLength)

	acc, err := us.accounts.GetOrCreate(ctx, part.Email)
	if err != nil {
		return err
	}

	ownerID, err := us.resolveOwner(ctx, part.Email)
	if err != nil {
		return err
	}

	dir, err := us.directories.GetOrCreate(ctx, part.SessionID, ownerID, directory.UsageTypeMail)
	if err != nil {
		return err
	}

	// On storage failure the part counts as not-yet-delivered: the
	// transaction counter stays where it was and the caller gets a
	// server error.
	if err = us.directories.EnsurePhysicalStorage(dir); err != nil {
		return err
	}

	dest := filepath.Join(dir.PhysicalPath, part.StoredName)
	if err = us.persistPart(part.Identifier, dest); err != nil {
		return err
	}

	if _, err = us.shortcuts.Create(ctx, shortcut.Shortcut{
		OwnerUserID:   ownerID,
		OriginalName:  sanitizeFileName(part.OriginalName),
		Destination:   dest,
		ContentType:   shortcut.ContentTypeFile,
		ContentLength: part.ContentLength,
		SessionID:     part.SessionID,
	}); err != nil {
		return err
	}

	us.chunks.Clean(part.Identifier)
	us.mCounter.WithLabelValues("upload_parts_total").Inc()

	us.logger.Info("part stored",
		zap.String("session_id", part.SessionID),
		zap.String("transaction_id", part.TransactionID),
		zap.Stringer("directory_id", dir.DirectoryID),
	)

	if us.transactions.CompleteOne(part.TransactionID) {
		us.finishTransaction(ctx, acc, dir, part.SessionID)
	}

	return nil
}

// resolveOwner binds the account to a durable user, creating one on
// the first upload for a still-anonymous account. The identity store
// does the check-and-bind atomically.
func (us *UploadService) resolveOwner(ctx context.Context, email string) (uuid.UUID, error) {
	return us.accounts.ResolveOwner(ctx, email, func(ctx context.Context) (uuid.UUID, error) {
		u, err := us.users.Create(ctx, email)
		if err != nil {
			return uuid.Nil, err
		}
		return u.UserID, nil
	})
}

func (us *UploadService) persistPart(identifier, dest string) error {
	w, err := us.files.CreateFile(dest)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", dest, err)
	}
	if err = us.chunks.Assemble(identifier, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("assemble part %s: %w", identifier, err)
	}

	return w.Close()
}

// finishTransaction runs once per transaction: it gathers the
// session's file shortcuts, synthesizes an archive shortcut when
// there is more than one, and hands the list to the notifier.
func (us *UploadService) finishTransaction(
	ctx context.Context,
	acc *account.Account,
	dir *directory.Directory,
	sessionID string,
) {
	var (
		members shortcut.Shortcuts
		dests   []string
		links   []mq.FileLink
		total   uint64
	)
	for _, sc := range us.shortcuts.GetBySession(sessionID) {
		if !sc.IsFile() {
			continue
		}
		members = append(members, sc)
		dests = append(dests, sc.Destination)
		total += sc.ContentLength
		links = append(links, mq.FileLink{
			URI:           us.cfg.DownloadURL(sc.ShortcutKey),
			Name:          sc.OriginalName,
			ContentLength: sc.ContentLength,
			CreatedDate:   sc.CreatedDate,
		})
	}
	if len(members) == 0 {
		us.logger.Error("transaction closed with no shortcuts", zap.String("session_id", sessionID))
		return
	}

	if len(members) > 1 {
		archive, err := us.shortcuts.Create(ctx, shortcut.Shortcut{
			OwnerUserID:   members[0].OwnerUserID,
			OriginalName:  archiveFileName(acc.Email),
			Destination:   strings.Join(dests, shortcut.DestinationDelimiter),
			ContentType:   shortcut.ContentTypeArchive,
			ContentLength: total,
			SessionID:     sessionID,
		})
		if err != nil {
			us.logger.Error("archive shortcut error", zap.String("session_id", sessionID), zap.Error(err))
		} else {
			links = append(links, mq.FileLink{
				URI:           us.cfg.DownloadURL(archive.ShortcutKey),
				Name:          archive.OriginalName,
				ContentLength: archive.ContentLength,
				CreatedDate:   archive.CreatedDate,
			})
			us.mCounter.WithLabelValues("archives_created_total").Inc()
		}
	}

	us.notifier.UploadCompleted(acc, links)
	us.mCounter.WithLabelValues("transactions_closed_total").Inc()

	if entries, err := us.directories.ListEntries(dir); err == nil {
		us.logger.Debug("session storage contents",
			zap.String("session_id", sessionID),
			zap.Strings("entries", entries),
		)
	}
}

func archiveFileName(email string) string {
	return email + "_" + time.Now().UTC().Format("2006-01-02_3-04-05") + ".zip"
}
