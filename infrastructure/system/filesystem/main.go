package filesystem

import (
	"os"

	"github.com/t-kuni/shoko/domain/service/configFindService"
)

type OsFileSystem struct{}

func NewOsFileSystem() configFindService.FileSystem {
	return &OsFileSystem{}
}

func (f *OsFileSystem) Getwd() (string, error) {
	return os.Getwd()
}
