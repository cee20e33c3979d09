package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjwoodall/prediction-league/internal/domain/submission"
)

// DirSource serves submissions from a local directory tree laid out as
// <root>/<season>/gw<gameweek>/<name>.txt. Used for local runs and tests in
// place of the remote store.
type DirSource struct {
	root string
}

func NewDirSource(root string) (*DirSource, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("source dir is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path %s is not a directory", root)
	}
	return &DirSource{root: root}, nil
}

func (s *DirSource) List(_ context.Context, season string, gameweek int) ([]submission.Descriptor, error) {
	dir := filepath.Join(s.root, season, fmt.Sprintf("gw%d", gameweek))

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read submissions dir: %w", err)
	}

	out := make([]submission.Descriptor, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat submission %s: %w", entry.Name(), err)
		}
		out = append(out, submission.Descriptor{
			Name:         filepath.ToSlash(filepath.Join(season, fmt.Sprintf("gw%d", gameweek), entry.Name())),
			LastModified: info.ModTime(),
			Size:         info.Size(),
		})
	}

	return out, nil
}

func (s *DirSource) Download(_ context.Context, name string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid submission name %q", name)
	}

	body, err := os.ReadFile(filepath.Join(s.root, clean))
	if err != nil {
		return nil, fmt.Errorf("read submission %s: %w", name, err)
	}
	return body, nil
}
