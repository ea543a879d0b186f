package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	domainRecord "github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/system/logger"
	"github.com/t-kuni/shoko/testUtil"
	"go.uber.org/mock/gomock"
)

func TestFileRepository_Read(t *testing.T) {
	t.Run("正常系: ファイルの内容がそのまま返されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "5.txt"), []byte("hello"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(fmt.Sprintf("Reading file %s", filepath.Join(space.Dir, "5.txt"))).Times(1)

		repo := NewFileRepository(space.Dir, mockLogger)

		contents, err := repo.Read(5)
		assert.NoError(t, err)
		assert.Equal(t, "hello", contents)
	})

	t.Run("ファイルが存在しないidの場合ErrNotFoundで失敗すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		_, err := repo.Read(42)
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)
	})

	t.Run("負のidの場合ErrInvalidIDで失敗しファイルシステムへアクセスしないこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		_, err := repo.Read(-1)
		assert.ErrorIs(t, err, domainRecord.ErrInvalidID)

		entries, err := os.ReadDir(space.Dir)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("購読順にリスナーへ読み込んだ内容が通知されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "1.txt"), []byte("notify me"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		var notified []string
		repo.SubscribeRead(func(contents string) {
			notified = append(notified, "first:"+contents)
		})
		repo.SubscribeRead(func(contents string) {
			notified = append(notified, "second:"+contents)
		})

		contents, err := repo.Read(1)
		assert.NoError(t, err)
		assert.Equal(t, "notify me", contents)
		assert.Equal(t, []string{"first:notify me", "second:notify me"}, notified)
	})
}

func TestFileRepository_Write(t *testing.T) {
	t.Run("正常系: 既存ファイルの内容が上書きされ読み込みで往復すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "7.txt"), []byte("old"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		err := repo.Write(7, "new contents")
		assert.NoError(t, err)

		contents, err := repo.Read(7)
		assert.NoError(t, err)
		assert.Equal(t, "new contents", contents)
	})

	t.Run("ファイルが存在しないidへの書き込みはErrNotFoundで失敗しファイルが作成されないこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		err := repo.Write(9, "never stored")
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)

		space.AssertNotExistPath(filepath.Join(space.Dir, "9.txt"))
	})

	t.Run("負のidの場合ErrInvalidIDで失敗すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		err := repo.Write(-5, "ignored")
		assert.ErrorIs(t, err, domainRecord.ErrInvalidID)
	})

	t.Run("リスナーへ通知しないこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "3.txt"), []byte("old"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		notifyCount := 0
		repo.SubscribeRead(func(contents string) {
			notifyCount++
		})

		err := repo.Write(3, "new")
		assert.NoError(t, err)
		assert.Equal(t, 0, notifyCount)
	})
}

func TestFileRepository_Delete(t *testing.T) {
	t.Run("正常系: 既存ファイルの削除はtrueを返しその後の読み込みはErrNotFoundで失敗すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "2.txt"), []byte("doomed"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		deleted, err := repo.Delete(2)
		assert.NoError(t, err)
		assert.True(t, deleted)

		space.AssertNotExistPath(filepath.Join(space.Dir, "2.txt"))

		_, err = repo.Read(2)
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)
	})

	t.Run("存在しないidの削除はtrueではなくErrNotFoundで失敗すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		deleted, err := repo.Delete(8)
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)
		assert.False(t, deleted)
	})

	t.Run("負のidの場合ErrInvalidIDで失敗すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		deleted, err := repo.Delete(-3)
		assert.ErrorIs(t, err, domainRecord.ErrInvalidID)
		assert.False(t, deleted)
	})
}

func TestFileRepository_UpdateFile(t *testing.T) {
	t.Run("書き込んだ内容でリスナーへ通知すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "4.txt"), []byte("old"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		var notified []string
		repo.SubscribeRead(func(contents string) {
			notified = append(notified, contents)
		})

		err := repo.UpdateFile(4, "updated")
		assert.NoError(t, err)
		assert.Equal(t, []string{"updated"}, notified)

		space.AssertFile(filepath.Join(space.Dir, "4.txt"), func(actual []byte) {
			assert.Equal(t, "updated", string(actual))
		})
	})

	t.Run("ファイルが存在しないidの場合ErrNotFoundで失敗し通知しないこと", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		notifyCount := 0
		repo.SubscribeRead(func(contents string) {
			notifyCount++
		})

		err := repo.UpdateFile(6, "never stored")
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)
		assert.Equal(t, 0, notifyCount)
	})
}

func TestFileRepository_List(t *testing.T) {
	t.Run("作業ディレクトリ内のレコードidが昇順で返されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "10.txt"), []byte("a"))
		space.WriteFile(filepath.Join(space.Dir, "2.txt"), []byte("b"))
		space.WriteFile(filepath.Join(space.Dir, "5.txt"), []byte("c"))
		space.WriteFile(filepath.Join(space.Dir, "notes.md"), []byte("not a record"))
		space.WriteFile(filepath.Join(space.Dir, "x.txt"), []byte("not a record either"))

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(space.Dir, mockLogger)

		ids, err := repo.List()
		assert.NoError(t, err)
		assert.Equal(t, []int{2, 5, 10}, ids)
	})

	t.Run("作業ディレクトリが存在しない場合エラーになること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		mockLogger := logger.NewMockILogger(mockCtrl)

		repo := NewFileRepository(filepath.Join(os.TempDir(), "shoko-no-such-dir"), mockLogger)

		_, err := repo.List()
		assert.Error(t, err)
	})
}

func TestFileRepository_Scenario(t *testing.T) {
	t.Run("読み込み、上書き、削除が一連の流れで動作すること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "5.txt"), []byte("hello"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		var notified []string
		repo.SubscribeRead(func(contents string) {
			notified = append(notified, contents)
		})

		contents, err := repo.Read(5)
		assert.NoError(t, err)
		assert.Equal(t, "hello", contents)
		assert.Equal(t, []string{"hello"}, notified)

		err = repo.Write(5, "world")
		assert.NoError(t, err)
		assert.Equal(t, []string{"hello"}, notified)

		contents, err = repo.Read(5)
		assert.NoError(t, err)
		assert.Equal(t, "world", contents)

		deleted, err := repo.Delete(5)
		assert.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.Read(5)
		assert.ErrorIs(t, err, domainRecord.ErrNotFound)
	})
}

func TestFactory(t *testing.T) {
	t.Run("作業ディレクトリに紐づいたリポジトリが生成されること", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "1.txt"), []byte("from factory"))

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		factory := NewFactory(mockLogger)
		repo := factory.Create(space.Dir)

		contents, err := repo.Read(1)
		assert.NoError(t, err)
		assert.Equal(t, "from factory", contents)
	})
}

func TestFileRepository_DeleteInternalError(t *testing.T) {
	t.Run("削除自体が失敗した場合InternalErrorで原因が保持されること", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("permission checks do not apply when running as root")
		}

		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()

		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile(filepath.Join(space.Dir, "1.txt"), []byte("locked"))

		// Removing the write bit on the directory makes os.Remove fail
		// after the existence check has already passed.
		err := os.Chmod(space.Dir, 0555)
		assert.NoError(t, err)
		defer os.Chmod(space.Dir, 0755)

		mockLogger := logger.NewMockILogger(mockCtrl)
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		repo := NewFileRepository(space.Dir, mockLogger)

		deleted, err := repo.Delete(1)
		assert.False(t, deleted)

		var internalErr *domainRecord.InternalError
		assert.True(t, errors.As(err, &internalErr))
		assert.Equal(t, "Could not delete file!", internalErr.UserMessage)
		assert.Error(t, errors.Unwrap(internalErr))
	})
}
