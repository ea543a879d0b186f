package getCommand

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/domain/repository/config"
	"github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/service/configFindService"
	"github.com/t-kuni/shoko/domain/system/logger"
)

type GetCommand struct {
	CobraCommand *cobra.Command
}

func NewGetCommand(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
	log logger.ILogger,
) *GetCommand {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Print the contents of a record",
		Long:  `Print the whole contents of the record file identified by id.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runGet(configFindService, configRepository, recordFactory, log),
	}

	return &GetCommand{
		CobraCommand: cmd,
	}
}

func runGet(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
	log logger.ILogger,
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

		repo.SubscribeRead(func(contents string) {
			log.Info(fmt.Sprintf("Read %d bytes", len(contents)))
		})

		contents, err := repo.Read(id)
		if err != nil {
			return eris.Wrapf(err, "failed to read record: %d", id)
		}

		fmt.Println(contents)
		return nil
	}
}

func resolveWorkingDirectory(rootDir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.WorkingDirectory) {
		return cfg.WorkingDirectory
	}
	return filepath.Join(rootDir, cfg.WorkingDirectory)
}
