package rmCommand

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/domain/repository/config"
	"github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/service/configFindService"
	"github.com/t-kuni/shoko/domain/service/historySave"
)

type RmCommand struct {
	CobraCommand *cobra.Command
}

func NewRmCommand(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
	historySaveService *historySave.HistorySaveService,
) *RmCommand {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a record",
		Long:  `Delete the record file identified by id. Deleting a record that does not exist fails.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runRm(configFindService, configRepository, recordFactory, historySaveService),
	}

	return &RmCommand{
		CobraCommand: cmd,
	}
}

func runRm(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
	historySaveService *historySave.HistorySaveService,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Wrapf(err, "invalid record id: %s", args[0])
		}

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

		deleted, err := repo.Delete(id)
		if err != nil {
			return eris.Wrapf(err, "failed to delete record: %d", id)
		}

		if deleted {
			summary := fmt.Sprintf("Deleted record %d.", id)
			_, err = historySaveService.SaveEntry(rootDir, "rm", summary)
			if err != nil {
				return eris.Wrap(err, "failed to save history entry")
			}

			fmt.Printf("Deleted record %d\n", id)
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
