package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/domain/user_file"
)

type fileKey struct {
	owner uuid.UUID
	name  string
}

type fileRecord struct {
	id uint64
	f  user_file.UserFile
	// jsonb stand-in: rows are stored encoded so callers never share maps
	data []byte
}

type UserFileRepository struct {
	mu     sync.RWMutex
	nextID uint64
	files  map[fileKey]*fileRecord
	users  user.Repository
	now    func() time.Time
}

// NewUserFileRepository resolves owner emails for admin listings through
// users.
func NewUserFileRepository(users user.Repository) *UserFileRepository {
	return &UserFileRepository{
		files: make(map[fileKey]*fileRecord),
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *UserFileRepository) FetchUserFiles(_ context.Context, userID uuid.UUID) (user_file.UserFiles, error) {
	return r.collect(func(rec *fileRecord) bool { return rec.f.UserID == userID })
}

func (r *UserFileRepository) FetchAllFiles(ctx context.Context) (user_file.UserFiles, error) {
	ufs, err := r.collect(func(*fileRecord) bool { return true })
	if err != nil {
		return nil, err
	}
	for _, uf := range ufs {
		owner, err := r.users.FetchUserByID(ctx, uf.UserID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			uf.OwnerEmail = owner.Email
		}
	}
	return ufs, nil
}

func (r *UserFileRepository) FetchUserFile(_ context.Context, userID, fileID uuid.UUID) (*user_file.UserFile, error) {
	ufs, err := r.collect(func(rec *fileRecord) bool {
		return rec.f.UserID == userID && rec.f.UUID == fileID
	})
	if err != nil || len(ufs) == 0 {
		return nil, err
	}
	return ufs[0], nil
}

func (r *UserFileRepository) FetchLatestUserFile(ctx context.Context, userID uuid.UUID) (*user_file.UserFile, error) {
	ufs, err := r.FetchUserFiles(ctx, userID)
	if err != nil || len(ufs) == 0 {
		return nil, err
	}
	return ufs[0], nil
}

func (r *UserFileRepository) UpsertUserFile(_ context.Context, req *user_file.UserFile) (*user_file.UserFile, error) {
	data, err := json.Marshal(nonNil(req.Data))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := fileKey{owner: req.UserID, name: req.FileName}
	rec, ok := r.files[key]
	if !ok {
		r.nextID++
		rec = &fileRecord{id: r.nextID}
		rec.f.UUID = uuid.New()
		rec.f.UserID = req.UserID
		rec.f.FileName = req.FileName
		r.files[key] = rec
	}
	rec.f.StoragePath = req.StoragePath
	rec.f.MimeType = req.MimeType
	rec.f.UploadedAt = r.now()
	rec.data = data

	return rec.decode()
}

func (r *UserFileRepository) DeleteUserFile(_ context.Context, fileID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.files {
		if rec.f.UUID == fileID {
			delete(r.files, key)
			return nil
		}
	}
	return nil
}

// collect returns matches ordered by upload time then insertion id, newest
// first.
func (r *UserFileRepository) collect(match func(*fileRecord) bool) (user_file.UserFiles, error) {
	r.mu.RLock()
	recs := make([]*fileRecord, 0)
	for _, rec := range r.files {
		if match(rec) {
			recs = append(recs, rec)
		}
	}

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.f.UploadedAt.Equal(b.f.UploadedAt) {
			return a.f.UploadedAt.After(b.f.UploadedAt)
		}
		return a.id > b.id
	})

	ufs := make(user_file.UserFiles, 0, len(recs))
	for _, rec := range recs {
		uf, err := rec.decode()
		if err != nil {
			r.mu.RUnlock()
			return nil, err
		}
		ufs = append(ufs, uf)
	}
	r.mu.RUnlock()

	return ufs, nil
}

func (rec *fileRecord) decode() (*user_file.UserFile, error) {
	uf := rec.f
	uf.Data = user_file.Rows{}
	if err := json.Unmarshal(rec.data, &uf.Data); err != nil {
		return nil, err
	}
	return &uf, nil
}

func nonNil(rows user_file.Rows) user_file.Rows {
	if rows == nil {
		return user_file.Rows{}
	}
	return rows
}
