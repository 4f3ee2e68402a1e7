package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/config"
)

var _ usecase.ImageStore = (*DiskImageStore)(nil)

// DiskImageStore guarda imágenes de producto en disco local bajo <Dir><PublicPath>,
// con nombre <uuid>_<original> para evitar colisiones. La DB guarda solo la URL pública.
type DiskImageStore struct {
	dir        string
	publicPath string
}

// NewDiskImageStore construye el store con la configuración de uploads.
func NewDiskImageStore(cfg config.UploadsConfig) *DiskImageStore {
	return &DiskImageStore{dir: cfg.Dir, publicPath: cfg.PublicPath}
}

// Save escribe el archivo y devuelve su URL pública (/images/products/<archivo>).
func (s *DiskImageStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(filename))
	folder := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(s.publicPath, "/")))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de imágenes: %w", err)
	}

	f, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return "", fmt.Errorf("crear archivo de imagen: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	return s.publicPath + "/" + name, nil
}

// Remove borra el archivo físico de una URL pública. Un archivo ausente no es error.
func (s *DiskImageStore) Remove(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	path := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(publicURL, "/")))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}
