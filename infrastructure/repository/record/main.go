package record

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	domainRecord "github.com/t-kuni/shoko/domain/repository/record"
	"github.com/t-kuni/shoko/domain/system/logger"
)

// deleteFailedMessage is the fixed user-facing message for delete failures.
// The underlying cause stays attached for diagnostics only.
const deleteFailedMessage = "Could not delete file!"

const fileExtension = ".txt"

// FileRepository stores each record as <workingDirectory>/<id>.txt.
// It holds only immutable configuration after construction; no filesystem
// access happens until an operation is called.
type FileRepository struct {
	workingDirectory string
	log              logger.ILogger
	readListeners    []domainRecord.ReadListener
}

func NewFileRepository(workingDirectory string, log logger.ILogger) *FileRepository {
	return &FileRepository{
		workingDirectory: workingDirectory,
		log:              log,
	}
}

// Factory creates repositories bound to a working directory, sharing one
// logging sink. The working directory is only known after the config has
// been read, so commands receive a factory instead of a repository.
type Factory struct {
	log logger.ILogger
}

func NewFactory(log logger.ILogger) *Factory {
	return &Factory{
		log: log,
	}
}

func (f *Factory) Create(workingDirectory string) domainRecord.Repository {
	return NewFileRepository(workingDirectory, f.log)
}

// SubscribeRead registers a listener that receives the contents of every
// subsequent successful Read, synchronously, in subscription order.
// Subscribe at wiring time, before the repository is shared.
func (r *FileRepository) SubscribeRead(listener domainRecord.ReadListener) {
	r.readListeners = append(r.readListeners, listener)
}

func (r *FileRepository) Read(id int) (string, error) {
	path, err := r.resolveExisting(id)
	if err != nil {
		return "", err
	}

	r.log.Info(fmt.Sprintf("Reading file %s", path))

	content, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "failed to read record file: %s", path)
	}

	contents := string(content)
	for _, listener := range r.readListeners {
		listener(contents)
	}

	return contents, nil
}

// Write overwrites the whole record file. The file must already exist;
// writing to an id that was never created fails with ErrNotFound.
func (r *FileRepository) Write(id int, contents string) error {
	path, err := r.resolveExisting(id)
	if err != nil {
		return err
	}

	r.log.Info(fmt.Sprintf("Writing file %s", path))

	err = os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		return eris.Wrapf(err, "failed to write record file: %s", path)
	}

	return nil
}

// Delete removes the record file and returns true on success. An absent
// file fails with ErrNotFound at resolution time, it is not treated as an
// already-successful delete.
func (r *FileRepository) Delete(id int) (bool, error) {
	path, err := r.resolveExisting(id)
	if err != nil {
		return false, err
	}

	r.log.Info(fmt.Sprintf("Deleting file %s", path))

	err = os.Remove(path)
	if err != nil {
		return false, domainRecord.NewInternalError(deleteFailedMessage, err)
	}

	return true, nil
}

// Deprecated: UpdateFile is a legacy alias for Write that additionally
// notifies read listeners with the written contents. Use Write.
func (r *FileRepository) UpdateFile(id int, contents string) error {
	err := r.Write(id, contents)
	if err != nil {
		return err
	}

	for _, listener := range r.readListeners {
		listener(contents)
	}

	return nil
}

// List returns the ids of all record files in the working directory,
// ascending. Files that do not look like <id>.txt are skipped.
func (r *FileRepository) List() ([]int, error) {
	entries, err := os.ReadDir(r.workingDirectory)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read working directory: %s", r.workingDirectory)
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, fileExtension) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, fileExtension))
		if err != nil || id < 0 {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}

// resolvePath builds the record file path without touching the filesystem.
func (r *FileRepository) resolvePath(id int) (string, error) {
	fileName, err := domainRecord.FileName(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.workingDirectory, fileName), nil
}

// resolveExisting additionally requires the record file to exist.
func (r *FileRepository) resolveExisting(id int) (string, error) {
	path, err := r.resolvePath(id)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", eris.Wrapf(domainRecord.ErrNotFound, "path: %s", path)
	}

	return path, nil
}
