package cmd

import (
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/cmd/getCommand"
	"github.com/t-kuni/shoko/cmd/initCommand"
	"github.com/t-kuni/shoko/cmd/listCommand"
	"github.com/t-kuni/shoko/cmd/putCommand"
	"github.com/t-kuni/shoko/cmd/rmCommand"
	"github.com/t-kuni/shoko/domain/service/configFindService"
	"github.com/t-kuni/shoko/domain/service/historySave"
	configRepo "github.com/t-kuni/shoko/infrastructure/repository/config"
	recordRepo "github.com/t-kuni/shoko/infrastructure/repository/record"
	"github.com/t-kuni/shoko/infrastructure/system/filesystem"
	infraKsuid "github.com/t-kuni/shoko/infrastructure/system/ksuid"
	infraLogger "github.com/t-kuni/shoko/infrastructure/system/logger"
	infraTimer "github.com/t-kuni/shoko/infrastructure/system/timer"
)

type RootCommand struct {
	CobraCommand *cobra.Command
}

func NewRootCommand() *RootCommand {
	cmd := &cobra.Command{
		Use:   "shoko",
		Short: "A file-based record store",
		Long:  `Shoko is a command-line tool for storing text records as numbered files in a working directory.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	log := infraLogger.NewZerologLogger()
	fileSystem := filesystem.NewOsFileSystem()
	configRepository := configRepo.NewConfigRepository()
	recordFactory := recordRepo.NewFactory(log)
	configFindSrv := configFindService.NewConfigFindService(fileSystem)
	historySaveSrv := historySave.NewHistorySaveService(infraTimer.NewTimer(), infraKsuid.NewKsuidGenerator())

	cmd.AddCommand(initCommand.NewInitCommand(configRepository).CobraCommand)
	cmd.AddCommand(getCommand.NewGetCommand(configFindSrv, configRepository, recordFactory, log).CobraCommand)
	cmd.AddCommand(putCommand.NewPutCommand(configFindSrv, configRepository, recordFactory, historySaveSrv).CobraCommand)
	cmd.AddCommand(rmCommand.NewRmCommand(configFindSrv, configRepository, recordFactory, historySaveSrv).CobraCommand)
	cmd.AddCommand(listCommand.NewListCommand(configFindSrv, configRepository, recordFactory).CobraCommand)

	return &RootCommand{
		CobraCommand: cmd,
	}
}
