package listCommand

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/domain/repository/config"
	"github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/service/configFindService"
)

type ListCommand struct {
	CobraCommand *cobra.Command
}

func NewListCommand(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
) *ListCommand {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List record ids in the working directory",
		Long:  `List the ids of all record files found in the working directory, ascending.`,
		Args:  cobra.NoArgs,
		RunE:  runList(configFindService, configRepository, recordFactory),
	}

	return &ListCommand{
		CobraCommand: cmd,
	}
}

func runList(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		configPath, err := configFindService.FindConfig()
		if err != nil {
			return eris.Wrap(err, "failed to find config file")
		}

		cfg, err := configRepository.Read(configPath)
		if err != nil {
			return eris.Wrap(err, "failed to read config file")
		}

		rootDir := configFindService.GetProjectRoot(configPath)
		repo := recordFactory.Create(resolveWorkingDirectory(rootDir, cfg))

		ids, err := repo.List()
		if err != nil {
			return eris.Wrap(err, "failed to list records")
		}

		fmt.Println("Records:")
		for _, id := range ids {
			fmt.Printf("- %d.txt (id %d)\n", id, id)
		}

		return nil
	}
}

func resolveWorkingDirectory(rootDir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.WorkingDirectory) {
		return cfg.WorkingDirectory
	}
	return filepath.Join(rootDir, cfg.WorkingDirectory)
}
