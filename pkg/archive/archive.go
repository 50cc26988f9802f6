// Package archive bundles a completed output tree into a single zip
// artifact. Archival failure is never fatal to a run; the uncompressed tree
// remains authoritative.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kubesnap/kubesnap/pkg/layout"
)

// Zip compresses the entire output tree into the sibling <root>.zip. Entries
// are rooted at the tree's base name so the archive unpacks to the same
// directory it was built from. Returns the archive path.
func Zip(tree *layout.Tree) (string, error) {
	target := tree.ArchiveFile()

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	base := filepath.Base(tree.Root)
	walkErr := filepath.Walk(tree.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}
		if path == tree.Root {
			return nil
		}

		relPath, err := filepath.Rel(tree.Root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to create file header: %w", err)
		}
		header.Name = filepath.ToSlash(filepath.Join(base, relPath))

		if info.IsDir() {
			header.Name += "/"
			_, headerErr := zw.CreateHeader(header)
			return headerErr
		}

		header.Method = zip.Deflate
		writer, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create zip entry: %w", err)
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		if err != nil {
			return fmt.Errorf("failed to copy file content: %w", err)
		}
		return nil
	})

	if closeErr := zw.Close(); walkErr == nil {
		walkErr = closeErr
	}
	if walkErr != nil {
		// Leave no half-written artifact next to the intact tree.
		os.Remove(target)
		return "", walkErr
	}
	return target, nil
}
