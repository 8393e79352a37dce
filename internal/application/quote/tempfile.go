package quote

import (
	"fmt"

	"github.com/spf13/afero"
)

// withTempFile escribe data en un archivo temporal de dir, llama fn con su
// ruta y lo elimina siempre, falle o no fn.
func withTempFile(fs afero.Fs, dir, pattern string, data []byte, fn func(path string) error) error {
	f, err := afero.TempFile(fs, dir, pattern)
	if err != nil {
		return fmt.Errorf("archivo temporal: %w", err)
	}
	path := f.Name()
	defer fs.Remove(path) //nolint:errcheck

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("archivo temporal: escribir: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("archivo temporal: cerrar: %w", err)
	}
	return fn(path)
}
