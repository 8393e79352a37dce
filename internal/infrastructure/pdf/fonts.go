package pdf

import (
	"fmt"
	"path"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// face identifica una fuente registrada en el documento.
type face struct {
	family string
	style  string
}

// fontSet agrupa las tres caras que usa el layout. Si utf8 es falso se usan
// las fuentes core y el texto debe pasar por encode (cp1252).
type fontSet struct {
	regular face
	bold    face
	medium  face
	utf8    bool
	encode  func(string) string
}

var coreFonts = fontSet{
	regular: face{"Helvetica", ""},
	bold:    face{"Helvetica", "B"},
	medium:  face{"Helvetica", "B"},
}

// loadFonts busca Poppins en dir. La cara media cae en la negrita; si falta la
// regular o la negrita se usan Helvetica / Helvetica-Bold.
func loadFonts(doc *fpdf.Fpdf, fs afero.Fs, dir string, log zerolog.Logger) fontSet {
	core := coreFonts
	core.encode = doc.UnicodeTranslatorFromDescriptor("")

	regular := firstExisting(fs, path.Join(dir, "Poppins-Regular.ttf"))
	bold := firstExisting(fs, path.Join(dir, "Poppins-Bold.ttf"))
	if regular == "" || bold == "" {
		log.Warn().Str("dir", dir).Msg("pdf: fuentes Poppins no encontradas, usando Helvetica")
		return core
	}
	medium := firstExisting(fs, path.Join(dir, "Poppins-Medium.ttf"), bold)

	if err := registerUTF8(doc, fs, []fontFile{
		{face{"Poppins", ""}, regular},
		{face{"Poppins", "B"}, bold},
		{face{"PoppinsMedium", ""}, medium},
	}); err != nil {
		log.Warn().Err(err).Msg("pdf: fuentes Poppins inválidas, usando Helvetica")
		return core
	}

	return fontSet{
		regular: face{"Poppins", ""},
		bold:    face{"Poppins", "B"},
		medium:  face{"PoppinsMedium", ""},
		utf8:    true,
		encode:  func(s string) string { return s },
	}
}

// firstExisting devuelve el primer candidato que existe, o "".
func firstExisting(fs afero.Fs, candidates ...string) string {
	if fs == nil {
		return ""
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if ok, err := afero.Exists(fs, c); err == nil && ok {
			return c
		}
	}
	return ""
}

type fontFile struct {
	face face
	path string
}

// registerUTF8 registra en orden fijo; el orden determina los nombres de
// recurso del PDF.
func registerUTF8(doc *fpdf.Fpdf, fs afero.Fs, files []fontFile) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: registrar fuente: %v", r)
		}
		if err != nil {
			doc.ClearError()
		}
	}()
	for _, f := range files {
		data, rerr := afero.ReadFile(fs, f.path)
		if rerr != nil {
			return fmt.Errorf("pdf: leer fuente %s: %w", f.path, rerr)
		}
		doc.AddUTF8FontFromBytes(f.face.family, f.face.style, data)
		if !doc.Err() {
			// un TTF ilegible puede no marcar error; SetFont sí falla
			doc.SetFont(f.face.family, f.face.style, 10)
		}
		if doc.Err() {
			return fmt.Errorf("pdf: registrar fuente %s: %w", f.path, doc.Error())
		}
	}
	return nil
}
