package photos

import (
	"context"
	"io"
)

// Uploader comprime y sube una imagen; devuelve la URL pública que queda como referencia de la foto.
type Uploader interface {
	UploadPhoto(ctx context.Context, name string, r io.Reader) (string, error)
}
