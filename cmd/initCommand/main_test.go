package initCommand

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/t-kuni/shoko/infrastructure/repository/config"
	"github.com/t-kuni/shoko/testUtil"
)

func TestInitCommand(t *testing.T) {
	t.Run("shoko.ymlが作成されること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		configRepo := config.NewConfigRepository()

		initCmd := NewInitCommand(configRepo)

		cmd := &cobra.Command{}
		cmd.AddCommand(initCmd.CobraCommand)

		args := []string{"init"}
		cmd.SetArgs(args)

		err := initCmd.CobraCommand.Execute()
		assert.NoError(t, err)

		space.AssertFile("shoko.yml", func(actual []byte) {
			expect := `
working-directory: records
`
			assert.YAMLEq(t, expect, string(actual))
		})

		space.AssertExistPath("records")
		space.AssertExistPath(filepath.Join(".shoko", "history"))

		space.AssertFile(".gitignore", func(actual []byte) {
			expect := `/.shoko`
			assert.Contains(t, string(actual), expect)
		})
	})

	t.Run("shoko.ymlが既に存在する場合エラーになること", func(t *testing.T) {
		space := testUtil.BeginTestSpace(t)
		defer space.CleanUp()

		space.WriteFile("shoko.yml", []byte("working-directory: records\n"))

		configRepo := config.NewConfigRepository()

		initCmd := NewInitCommand(configRepo)

		cmd := &cobra.Command{}
		cmd.AddCommand(initCmd.CobraCommand)

		args := []string{"init"}
		cmd.SetArgs(args)

		err := initCmd.CobraCommand.Execute()
		assert.Error(t, err)
	})
}
