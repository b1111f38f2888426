package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/mq"
)

func (f *fixture) adminService() ports.AdminService {
	return NewAdminService(f.logger, f.users, f.files, f.storage, f.publisher, f.counter)
}

func TestAdminService_DeleteSelf(t *testing.T) {
	for _, n := range []int{0, 2} {
		n := n
		t.Run(fmt.Sprintf("%d files", n), func(t *testing.T) {
			f := newFixture(t)
			admin := f.createUser(t, "root@example.com")
			for i := 0; i < n; i++ {
				_, err := f.userFileService(f.notifier).Upload(context.Background(), admin.UUID,
					fmt.Sprintf("f%d.csv", i), user_file.MimeCSV, []byte("a\n1\n"))
				require.NoError(t, err)
			}

			err := f.adminService().DeleteUser(context.Background(), admin.UUID, admin.UUID)
			assert.ErrorIs(t, err, ErrInvalidOperation)

			files, err := f.files.FetchUserFiles(context.Background(), admin.UUID)
			require.NoError(t, err)
			assert.Len(t, files, n)
		})
	}
}

func TestAdminService_DeleteUserCascade(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		n := n
		t.Run(fmt.Sprintf("%d files", n), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			admin := f.createUser(t, "root@example.com")
			target := f.createUser(t, "ann@example.com")
			bystander := f.createUser(t, "bob@example.com")

			upload := f.userFileService(f.notifier)
			var paths []string
			for i := 0; i < n; i++ {
				uf, err := upload.Upload(ctx, target.UUID, fmt.Sprintf("f%d.csv", i), user_file.MimeCSV, []byte("a\n1\n"))
				require.NoError(t, err)
				paths = append(paths, uf.StoragePath)
			}
			_, err := upload.Upload(ctx, bystander.UUID, "keep.csv", user_file.MimeCSV, []byte("a\n1\n"))
			require.NoError(t, err)

			require.NoError(t, f.adminService().DeleteUser(ctx, admin.UUID, target.UUID))

			files, err := f.files.FetchUserFiles(ctx, target.UUID)
			require.NoError(t, err)
			assert.Empty(t, files)
			for _, p := range paths {
				_, err = f.storage.Get(ctx, p)
				assert.ErrorIs(t, err, ports.ErrBlobNotFound)
			}

			u, err := f.users.FetchUserByID(ctx, target.UUID)
			require.NoError(t, err)
			assert.Nil(t, u)

			kept, err := f.files.FetchUserFiles(ctx, bystander.UUID)
			require.NoError(t, err)
			assert.Len(t, kept, 1)

			assert.Contains(t, f.publisher.actions(), mq.UserDeleted)
		})
	}
}

func TestAdminService_DeleteUser_MissingBlobTolerated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.createUser(t, "root@example.com")
	target := f.createUser(t, "ann@example.com")

	uf, err := f.userFileService(f.notifier).Upload(ctx, target.UUID, "q.csv", user_file.MimeCSV, []byte("a\n1\n"))
	require.NoError(t, err)
	require.NoError(t, f.storage.Delete(ctx, uf.StoragePath))

	require.NoError(t, f.adminService().DeleteUser(ctx, admin.UUID, target.UUID))
}

func TestAdminService_DeleteUnknown(t *testing.T) {
	f := newFixture(t)
	err := f.adminService().DeleteUser(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_Listings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ann := f.createUser(t, "ann@example.com")
	f.createUser(t, "bob@example.com")

	_, err := f.userFileService(f.notifier).Upload(ctx, ann.UUID, "q.csv", user_file.MimeCSV, []byte("a\n1\n"))
	require.NoError(t, err)

	svc := f.adminService()
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	files, err := svc.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ann@example.com", files[0].OwnerEmail)
}
