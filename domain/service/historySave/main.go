package historySave

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/t-kuni/shoko/domain/system/ksuid"
	"github.com/t-kuni/shoko/domain/system/timer"
)

type HistorySaveService struct {
	timer          timer.ITimer
	ksuidGenerator ksuid.IKsuid
}

func NewHistorySaveService(timer timer.ITimer, ksuidGenerator ksuid.IKsuid) *HistorySaveService {
	return &HistorySaveService{
		timer:          timer,
		ksuidGenerator: ksuidGenerator,
	}
}

// SaveEntry records one mutating operation under <rootDir>/.shoko/history/<ksuid>/.
// The entry holds an empty file named after the current time and an op.md summary.
func (s *HistorySaveService) SaveEntry(rootDir string, operation string, summary string) (string, error) {
	historyBaseDir := filepath.Join(rootDir, ".shoko", "history")
	err := os.MkdirAll(historyBaseDir, 0755)
	if err != nil {
		return "", eris.Wrap(err, "failed to create history base directory")
	}

	id := s.ksuidGenerator.New()
	historyDir := filepath.Join(historyBaseDir, id)
	err = os.Mkdir(historyDir, 0755)
	if err != nil {
		return "", eris.Wrap(err, "failed to create history directory")
	}

	timeFile := filepath.Join(historyDir, s.timer.Now().Format("2006-01-02T15:04:05"))
	_, err = os.Create(timeFile)
	if err != nil {
		return "", eris.Wrap(err, "failed to create time file")
	}

	body := fmt.Sprintf("# %s\n\n%s\n", operation, summary)
	err = os.WriteFile(filepath.Join(historyDir, "op.md"), []byte(body), 0644)
	if err != nil {
		return "", eris.Wrap(err, "failed to write operation summary")
	}

	return historyDir, nil
}
