package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/progress"
	domain "excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/mq"
)

const maxBaseNameLen = 100

var windowsReserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

type UserFileService struct {
	logger             *zap.Logger
	storage            ports.BlobStorage
	codec              ports.SpreadsheetCodec
	userFileRepository domain.Repository
	notifier           ports.Notifier
	mq                 ports.EventPublisher
	mCounter           *prometheus.CounterVec
}

func NewUserFileService(
	logger *zap.Logger,
	storage ports.BlobStorage,
	codec ports.SpreadsheetCodec,
	userFileRepository domain.Repository,
	notifier ports.Notifier,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserFileService {
	return &UserFileService{
		logger:             logger,
		storage:            storage,
		codec:              codec,
		userFileRepository: userFileRepository,
		notifier:           notifier,
		mq:                 mq,
		mCounter:           mCounter,
	}
}

// Upload decodes the sheet, stores the bytes and upserts the record keyed by
// (owner, fileName), reporting each stage to the owner's room.
func (ufs *UserFileService) Upload(
	ctx context.Context,
	ownerID uuid.UUID,
	fileName, mimeType string,
	data []byte,
) (*domain.UserFile, error) {
	if ufs.notifier == nil {
		return nil, ErrServiceUnavailable
	}
	if strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return nil, ErrInvalidInput
	}

	room := ownerID.String()
	step := func(p int, msg string) {
		ufs.notifier.Emit(room, progress.FileProcessing, progress.Event{Progress: p, Message: msg})
	}
	fail := func(err error) (*domain.UserFile, error) {
		ufs.logger.Error("file upload failed",
			zap.String("user_id", room),
			zap.String("filename", fileName),
			zap.Error(err),
		)
		ufs.notifier.Emit(room, progress.ProcessingErr, progress.Event{
			Progress: 0,
			Message:  "Error processing file: " + err.Error(),
			Result:   err.Error(),
		})
		ufs.mCounter.WithLabelValues("user_files_upload_failed_total").Inc()

		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	step(5, "Starting file upload...")

	if err := ufs.storage.EnsureLocation(ctx, room); err != nil {
		return fail(err)
	}
	step(15, "Upload directory ensured.")

	// Decode before Put: a bad re-upload must not overwrite the blob the
	// existing record still points at.
	rows, err := ufs.codec.Decode(mimeType, fileName, data)
	if err != nil {
		return fail(err)
	}

	key := storageKey(ownerID, fileName)
	if err := ufs.storage.Put(ctx, key, data, mimeType); err != nil {
		return fail(err)
	}
	step(40, "File saved to server.")
	step(60, "Parsing spreadsheet data...")
	step(80, "Spreadsheet data parsed.")

	uf, err := ufs.userFileRepository.UpsertUserFile(ctx, &domain.UserFile{
		UserID:      ownerID,
		FileName:    fileName,
		StoragePath: key,
		MimeType:    mimeType,
		Data:        rows,
	})
	if err != nil {
		return fail(err)
	}
	step(95, "File metadata saved to database.")

	ufs.mq.Publish(mq.NewEvent(mq.FileUploaded, room, map[string]any{
		"file_id":  uf.UUID.String(),
		"filename": uf.FileName,
		"rows":     len(uf.Data),
	}))
	ufs.mCounter.WithLabelValues("user_files_uploaded_total").Inc()

	step(100, "File uploaded and processed successfully!")

	return uf, nil
}

func (ufs *UserFileService) FindUserFiles(ctx context.Context, userID uuid.UUID) (domain.UserFiles, error) {
	fls, err := ufs.userFileRepository.FetchUserFiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	return fls, nil
}

// DeleteUserFile removes the blob before the record; a blob that is already
// gone does not block the delete.
func (ufs *UserFileService) DeleteUserFile(ctx context.Context, userID, fileID uuid.UUID) error {
	uf, err := ufs.userFileRepository.FetchUserFile(ctx, userID, fileID)
	if err != nil {
		return err
	}
	if uf == nil {
		return ErrNotFound
	}

	if err = deleteBlob(ctx, ufs.logger, ufs.storage, uf); err != nil {
		return err
	}
	if err = ufs.userFileRepository.DeleteUserFile(ctx, uf.UUID); err != nil {
		return err
	}

	ufs.mq.Publish(mq.NewEvent(mq.FileDeleted, userID.String(), map[string]any{
		"file_id":  uf.UUID.String(),
		"filename": uf.FileName,
	}))
	ufs.mCounter.WithLabelValues("user_files_deleted_total").Inc()

	return nil
}

// storageKey is stable for (owner, fileName) so a re-upload overwrites the
// same blob. The name hash keeps names that sanitize alike apart.
func storageKey(ownerID uuid.UUID, fileName string) string {
	safe := sanitizeFileName(fileName)
	ext := path.Ext(safe)
	tag := uuid.NewSHA1(ownerID, []byte(fileName)).String()[:8]

	return fmt.Sprintf("%s/%s-%s%s", ownerID.String(), strings.TrimSuffix(safe, ext), tag, ext)
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, path.Ext(s))
	if !isSafeExt(ext) {
		ext = ""
	}

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isSafeExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
