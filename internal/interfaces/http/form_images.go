package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// openedImage es un archivo multipart ya abierto, listo para el ImageStore.
type openedImage struct {
	filename string
	file     multipart.File
}

// formImages abre los archivos del campo multipart "images".
// Una petición sin multipart o sin imágenes devuelve lista vacía, no error.
func formImages(c *fiber.Ctx) ([]openedImage, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	headers := form.File["images"]
	opened := make([]openedImage, 0, len(headers))
	for _, fh := range headers {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			closeImages(opened)
			return nil, err
		}
		opened = append(opened, openedImage{filename: fh.Filename, file: f})
	}
	return opened, nil
}

func toUploads(images []openedImage) []usecase.ImageUpload {
	uploads := make([]usecase.ImageUpload, 0, len(images))
	for _, img := range images {
		uploads = append(uploads, usecase.ImageUpload{Filename: img.filename, Reader: img.file})
	}
	return uploads
}

func closeImages(images []openedImage) {
	for _, img := range images {
		_ = img.file.Close()
	}
}
