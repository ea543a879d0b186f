package initCommand

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/domain/repository/config"
)

const defaultWorkingDirectory = "records"

type InitCommand struct {
	CobraCommand *cobra.Command
}

func NewInitCommand(configRepository config.Repository) *InitCommand {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Shoko store",
		Long:  `Initialize a new Shoko store by creating a shoko.yml configuration file in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			currentDir, err := os.Getwd()
			if err != nil {
				return err
			}

			configPath := filepath.Join(currentDir, "shoko.yml")
			if _, err := os.Stat(configPath); err == nil {
				return eris.New("shoko.yml already exists in the current directory")
			}

			cfg := &config.Config{
				WorkingDirectory: defaultWorkingDirectory,
			}

			err = configRepository.Write(configPath, cfg)
			if err != nil {
				return eris.Wrap(err, "failed to write config file")
			}

			err = os.MkdirAll(filepath.Join(currentDir, defaultWorkingDirectory), 0755)
			if err != nil {
				return eris.Wrap(err, "failed to create working directory")
			}

			err = os.MkdirAll(filepath.Join(currentDir, ".shoko", "history"), 0755)
			if err != nil {
				return eris.Wrap(err, "failed to create history directory")
			}

			err = updateGitignore(currentDir)
			if err != nil {
				return eris.Wrap(err, "failed to update .gitignore")
			}

			fmt.Println("Initialized Shoko store. Created shoko.yml in the current directory.")
			return nil
		},
	}

	return &InitCommand{
		CobraCommand: cmd,
	}
}

func updateGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if strings.Contains(string(content), "/.shoko") {
		return nil
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}

	_, err = f.WriteString("/.shoko\n")
	return err
}
