package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput writes one transcript file per HTTP exchange into a
// debug directory. The directory is emptied when the output is created
// so it only ever holds the current run.
type FilesystemOutput struct {
	dir string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to clear transcript directory", "dir", dir, "err", err)
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		panic(err)
	}
	return FilesystemOutput{dir: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	path := filepath.Join(o.dir, id)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		slog.Warn("failed to write transcript", "id", id, "err", err)
	}
}
