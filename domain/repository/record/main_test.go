package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	t.Run("idからファイル名が組み立てられること", func(t *testing.T) {
		fileName, err := FileName(5)
		assert.NoError(t, err)
		assert.Equal(t, "5.txt", fileName)
	})

	t.Run("idが0の場合も有効であること", func(t *testing.T) {
		fileName, err := FileName(0)
		assert.NoError(t, err)
		assert.Equal(t, "0.txt", fileName)
	})

	t.Run("負のidの場合ErrInvalidIDで失敗すること", func(t *testing.T) {
		_, err := FileName(-1)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestInternalError(t *testing.T) {
	t.Run("ユーザー向けメッセージのみが表示され原因はUnwrapで取得できること", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := NewInternalError("Could not delete file!", cause)

		assert.Equal(t, "Could not delete file!", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}
