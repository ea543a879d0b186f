//go:generate mockgen -source=$GOFILE -destination=${GOFILE}_mock.go -package=$GOPACKAGE

package configFindService

import (
	"errors"
	"os"
	"path/filepath"
)

type ConfigFindService struct {
	fileSystem FileSystem
}

type FileSystem interface {
	Getwd() (string, error)
}

func NewConfigFindService(fileSystem FileSystem) *ConfigFindService {
	return &ConfigFindService{
		fileSystem: fileSystem,
	}
}

// FindConfig walks up from the current directory until it finds
// shoko.yml or shoko.yaml.
func (s *ConfigFindService) FindConfig() (string, error) {
	currentDir, err := s.fileSystem.Getwd()
	if err != nil {
		return "", err
	}

	for {
		ymlPath := filepath.Join(currentDir, "shoko.yml")
		yamlPath := filepath.Join(currentDir, "shoko.yaml")

		if exists(ymlPath) {
			return ymlPath, nil
		}
		if exists(yamlPath) {
			return yamlPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", errors.New("shoko.yml or shoko.yaml not found")
}

func (s *ConfigFindService) GetProjectRoot(configPath string) string {
	return filepath.Dir(configPath)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
