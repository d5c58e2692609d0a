// file: internals/features/validation/drive/storage/storage.go
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStorage abstrait la source des fichiers scannés. En production les
// PDF proviennent d'un dépôt externe synchronisé sur disque ; les tests
// branchent un répertoire temporaire.
type FileStorage interface {
	// Open renvoie le contenu du fichier et sa taille en octets.
	Open(fileID string) (io.ReadCloser, int64, error)
}

// LocalStorage sert les fichiers depuis un répertoire local. L'identifiant
// de fichier est utilisé tel quel comme nom de fichier, après neutralisation
// de tout composant de chemin.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{Dir: dir}
}

func (s *LocalStorage) Open(fileID string) (io.ReadCloser, int64, error) {
	name := filepath.Base(fileID)
	if name == "." || name == ".." || name == "" {
		return nil, 0, fmt.Errorf("identifiant de fichier invalide: %q", fileID)
	}

	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}
