package usecase

import "io"

// ImageUpload es un archivo de imagen recibido por HTTP, ya abierto por el handler.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// ImageStore persiste archivos de imagen en disco y devuelve la URL pública.
// Remove acepta la URL pública tal como quedó guardada en la DB.
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(publicURL string) error
}
