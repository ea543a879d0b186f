package putCommand

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/t-kuni/shoko/domain/repository/config"
	"github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/service/configFindService"
	"github.com/t-kuni/shoko/domain/service/historySave"
)

type PutCommand struct {
	CobraCommand *cobra.Command
}

func NewPutCommand(
	configFindService *configFindService.ConfigFindService,
	configRepository config.Repository,
	recordFactory record.Factory,
	historySaveService *historySave.HistorySaveService,
) *PutCommand {
	var inputFlag bool
	var createFlag bool

	cmd := &cobra.Command{
		Use:   "put [id] [contents]",
		Short: "Overwrite the contents of a record",
		Long: `Overwrite the whole contents of the record file identified by id.
The record file must already exist unless --create is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runPut(&inputFlag, &createFlag, configFindService, configRepository,
			recordFactory, historySaveService),
	}

	cmd.Flags().BoolVarP(&inputFlag, "input", "i", false, "Read contents from stdin")
	cmd.Flags().BoolVarP(&createFlag, "create", "c", false, "Create the record file if it does not exist")

	return &PutCommand{
		CobraCommand: cmd,
	}
}

func runPut(
	inputFlag *bool,
	createFlag *bool,
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

		var contents string
		if *inputFlag {
			if len(args) == 2 {
				return eris.New("cannot use both a contents argument and the -i flag")
			}
			contents, err = readStdin()
			if err != nil {
				return eris.Wrap(err, "failed to read from stdin")
			}
		} else if len(args) == 2 {
			contents = args[1]
		} else {
			return eris.New("contents must be given as an argument or with the -i flag")
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
		workingDir := resolveWorkingDirectory(rootDir, cfg)

		if *createFlag {
			err = ensureRecordFile(workingDir, id)
			if err != nil {
				return eris.Wrapf(err, "failed to create record file for id: %d", id)
			}
		}

		repo := recordFactory.Create(workingDir)

		oldContents, err := repo.Read(id)
		if err != nil && !errors.Is(err, record.ErrNotFound) {
			return eris.Wrapf(err, "failed to read record: %d", id)
		}

		err = repo.Write(id, contents)
		if err != nil {
			return eris.Wrapf(err, "failed to write record: %d", id)
		}

		if oldContents != contents {
			printDiff(oldContents, contents)
		}

		summary := fmt.Sprintf("Wrote %d bytes to record %d.", len(contents), id)
		_, err = historySaveService.SaveEntry(rootDir, "put", summary)
		if err != nil {
			return eris.Wrap(err, "failed to save history entry")
		}

		fmt.Printf("Wrote record %d\n", id)
		return nil
	}
}

func readStdin() (string, error) {
	stdin, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdin)), nil
}

func ensureRecordFile(workingDir string, id int) error {
	fileName, err := record.FileName(id)
	if err != nil {
		return err
	}

	path := filepath.Join(workingDir, fileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func printDiff(oldContents, newContents string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldContents, newContents, false)
	fmt.Println(dmp.DiffPrettyText(diffs))
}

func resolveWorkingDirectory(rootDir string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.WorkingDirectory) {
		return cfg.WorkingDirectory
	}
	return filepath.Join(rootDir, cfg.WorkingDirectory)
}
