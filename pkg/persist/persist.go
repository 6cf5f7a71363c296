package persist

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/arthur-debert/xgappup/pkg/errors"
	"github.com/arthur-debert/xgappup/pkg/logging"
)

// DefaultBackupSuffix is appended to the original file name
const DefaultBackupSuffix = ".bak"

const tempSuffix = ".xgappup-tmp"

// Options controls a write
type Options struct {
	// BackupSuffix names the backup copy, DefaultBackupSuffix when empty
	BackupSuffix string
	// Force replaces an existing backup
	Force bool
	// DryRun reports what would happen without touching the disk
	DryRun bool
}

// Result describes a finished write
type Result struct {
	Path       string `json:"path" yaml:"path"`
	BackupPath string `json:"backup_path" yaml:"backup_path"`
	Bytes      int    `json:"bytes" yaml:"bytes"`
	Written    bool   `json:"written" yaml:"written"`
}

// Write backs up the file at path and replaces it with content
func Write(ctx context.Context, path string, content []byte, opts Options) (*Result, error) {
	logger := logging.GetLogger("persist").With().Str("path", path).Logger()

	target, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve path: %s", path)
	}
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "application file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is a directory", path)
	}

	suffix := opts.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	result := &Result{
		Path:       target,
		BackupPath: target + suffix,
		Bytes:      len(content),
	}

	if _, err := os.Lstat(result.BackupPath); err == nil {
		if !opts.Force {
			return nil, errors.Newf(errors.ErrBackup, "backup %s already exists (use --force to replace it)", result.BackupPath).
				WithDetail("backup", result.BackupPath)
		}
		if opts.DryRun {
			logger.Info().Str("backup", result.BackupPath).Msg("Would replace existing backup")
		} else {
			logger.Debug().Str("backup", result.BackupPath).Msg("Removing existing backup in force mode")
			if err := os.Remove(result.BackupPath); err != nil {
				return nil, errors.Wrapf(err, errors.ErrBackup, "failed to remove old backup %s", result.BackupPath)
			}
		}
	}

	if opts.DryRun {
		logger.Info().
			Str("backup", result.BackupPath).
			Int("contentLen", len(content)).
			Msg("Dry run, would back up and rewrite file")
		return result, nil
	}

	temp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+tempSuffix)
	if err := os.Remove(temp); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove stale %s", temp)
	}

	if err := runPipeline(ctx, target, result.BackupPath, temp, content, info.Mode().Perm()); err != nil {
		_ = os.Remove(temp)
		return nil, err
	}

	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", path).
			WithDetail("backup", result.BackupPath)
	}

	result.Written = true
	logger.Info().
		Str("backup", result.BackupPath).
		Int("bytes", len(content)).
		Msg("Wrote upgraded file")
	return result, nil
}

// runPipeline copies target to backup and stages content in temp
func runPipeline(ctx context.Context, target, backup, temp string, content []byte, mode fs.FileMode) error {
	logger := logging.GetLogger("persist")

	relTarget, err := filepath.Rel("/", target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}
	relBackup, err := filepath.Rel("/", backup)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", backup)
	}
	relTemp, err := filepath.Rel("/", temp)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", temp)
	}

	copyOp := operations.NewCopyOperation(core.OperationID(fmt.Sprintf("backup-%s", filepath.Base(target))), relBackup)
	copyOp.SetPaths(relTarget, relBackup)

	writeOp := operations.NewCreateFileOperation(core.OperationID(fmt.Sprintf("stage-%s", filepath.Base(target))), relTemp)
	writeOp.SetItem(&fileItem{
		path:    relTemp,
		content: content,
		mode:    mode,
	})

	pipeline := synthfs.NewMemPipeline()
	for _, op := range []synthfs.Operation{
		synthfs.NewOperationsPackageAdapter(copyOp),
		synthfs.NewOperationsPackageAdapter(writeOp),
	} {
		if err := pipeline.Add(op); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to add operation to pipeline")
		}
	}

	logger.Debug().Str("backup", backup).Str("temp", temp).Msg("Executing write pipeline")
	result := synthfs.NewExecutor().Run(ctx, pipeline, filesystem.NewOSFileSystem("/"))
	if err := result.GetError(); err != nil {
		logger.Error().Err(err).Msg("Write pipeline failed")
		if _, statErr := os.Stat(backup); statErr != nil {
			return errors.Wrapf(err, errors.ErrBackup, "failed to back up %s", target)
		}
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to stage new content for %s", target)
	}
	return nil
}

// fileItem is the item synthfs writes for a create-file operation
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }
