package resolver

import (
	"archive/zip"

	"github.com/arthur-debert/xgappup/pkg/errors"
)

// ProbeJar checks that the archive at path has marker at its root
func ProbeJar(path, marker string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrProbeFailed, "%s is not a readable jar", path).
			WithDetail("path", path)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		if f.Name == marker {
			return nil
		}
	}
	return errors.Newf(errors.ErrProbeFailed, "%s has no %s", path, marker).
		WithDetail("path", path).
		WithDetail("marker", marker)
}
