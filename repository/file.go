package repository

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/beanbot-dev/beanbot/ast"
)

// FileStore appends entries to ledger files in a local directory. When the
// directory is a git repository and Commit is set, each entry is committed.
type FileStore struct {
	Dir    string
	Commit bool
}

// NewFileStore creates a store writing into dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

var _ Store = (*FileStore)(nil)

// Save appends the entry to {dir}/{year}.bean.
func (s *FileStore) Save(ctx context.Context, tx *ast.Transaction, entry string) error {
	path := filepath.Join(s.Dir, ledgerFile(tx))

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	content := appendEntry(string(existing), entry)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if s.Commit && isRepo(s.Dir) {
		message := fmt.Sprintf("Add transaction: %s %s", tx.Date.Format(), tx.Payee)
		if err := commitAll(ctx, s.Dir, message); err != nil {
			return err
		}
	}

	return nil
}

// isRepo reports whether dir is the root of a git repository.
func isRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// commitAll stages all files and creates a commit.
func commitAll(ctx context.Context, dir, message string) error {
	add := exec.CommandContext(ctx, "git", "add", "-A")
	add.Dir = dir
	if out, err := add.CombinedOutput(); err != nil {
		return fmt.Errorf("git add: %s: %w", strings.TrimSpace(string(out)), err)
	}

	commit := exec.CommandContext(ctx, "git", "commit", "-m", message)
	commit.Dir = dir
	if out, err := commit.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit: %s: %w", strings.TrimSpace(string(out)), err)
	}

	return nil
}
