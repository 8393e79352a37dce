package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jhoicas/devis-api/internal/domain/entity"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func lineItem(desc, qty, price string) entity.LineItem {
	r := decimal.NewFromInt(20)
	return entity.LineItem{Description: desc, Quantity: nd(qty), UnitPrice: nd(price), TaxRate: &r}
}

func sampleInput() Input {
	return Input{
		Quote: &entity.Quote{
			Reference:    "D2025-0001",
			DocumentType: entity.DocumentTypeQuote,
			IBAN:         "FR76 3000 6000 0112 3456 7890 189",
			FooterNotes:  "Devis valable 30 jours.",
			CreatedAt:    time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		Items: []entity.LineItem{lineItem("Pompe à chaleur air/eau", "2", "100.00")},
		Company: &entity.Company{
			Name:    "Thermique Services",
			Phone:   "01 23 45 67 89",
			Email:   "contact@thermique.fr",
			Address: "12 rue de la Paix, 75002 Paris",
			Theme:   entity.Theme{Primary: "#112233"},
		},
		Client: &entity.Client{Name: "Jean Dupont", Email: "jean@example.fr", Address: "3 allée des Pins, Lyon"},
	}
}

func newTestRenderer(fs afero.Fs) *Renderer {
	return NewRenderer(Options{Assets: fs, Logger: zerolog.Nop()})
}

// utf8Assets instala TTF reales con los nombres de Poppins para recorrer el
// camino UTF-8 (sin Poppins-Medium: la cara media cae en la negrita).
func utf8Assets(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/fonts/Poppins-Regular.ttf", goregular.TTF, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/fonts/Poppins-Bold.ttf", gobold.TTF, 0o644))
	return fs
}

func oneLineItems(n int) []entity.LineItem {
	items := make([]entity.LineItem, n)
	for i := range items {
		items[i] = lineItem(fmt.Sprintf("Partida %d", i+1), "1", "10")
	}
	return items
}

// ── Render ────────────────────────────────────────────────────────────────────

func TestRender_GeneraPDFCompleto(t *testing.T) {
	out, err := newTestRenderer(afero.NewMemMapFs()).Render(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.True(t, bytes.HasSuffix(bytes.TrimSpace(out), []byte("%%EOF")))
}

func TestRender_Deterministico(t *testing.T) {
	r := newTestRenderer(afero.NewMemMapFs())
	a, err := r.Render(context.Background(), sampleInput())
	require.NoError(t, err)
	b, err := r.Render(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_AyudasNilYVaciasSonIdenticas(t *testing.T) {
	r := newTestRenderer(afero.NewMemMapFs())

	withNil := sampleInput()
	withNil.Aides = nil
	withEmpty := sampleInput()
	withEmpty.Aides = []entity.Aide{}

	a, err := r.Render(context.Background(), withNil)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), withEmpty)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ea, err := r.layout(withNil)
	require.NoError(t, err)
	eb, err := r.layout(withEmpty)
	require.NoError(t, err)
	assert.Equal(t, ea.bodyEnd, eb.bodyEnd)
}

func TestRender_AyudasOcupanEspacio(t *testing.T) {
	r := newTestRenderer(afero.NewMemMapFs())
	base, err := r.layout(sampleInput())
	require.NoError(t, err)

	in := sampleInput()
	in.Aides = []entity.Aide{{Name: "MaPrimeRénov'", Description: "Prime énergie", Amount: nd("50")}}
	withAides, err := r.layout(in)
	require.NoError(t, err)

	// el pie está anclado; la diferencia se ve en el cursor antes del pie
	assert.Greater(t, withAides.bodyEnd, base.bodyEnd)
}

func TestRender_SinPresupuestoEsFatal(t *testing.T) {
	_, err := newTestRenderer(nil).Render(context.Background(), Input{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRender)
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestRenderer(nil).Render(ctx, sampleInput())
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_EmpresaYClienteAusentes(t *testing.T) {
	in := sampleInput()
	in.Company = nil
	in.Client = nil
	out, err := newTestRenderer(nil).Render(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_TextosConControlNoRompen(t *testing.T) {
	in := sampleInput()
	in.Client.Name = "\x00\x01\x1f"
	in.Items = []entity.LineItem{lineItem("Ligne\x07 avec\tcontrôle\u0085", "1", "10")}
	in.Quote.FooterNotes = "\x02\x03"
	_, err := newTestRenderer(nil).Render(context.Background(), in)
	require.NoError(t, err)
}

func TestRender_CampoSoloControlNoMueveElLayout(t *testing.T) {
	r := newTestRenderer(afero.NewMemMapFs())

	empty := sampleInput()
	empty.Client.Title = ""
	empty.Quote.FooterNotes = ""
	control := sampleInput()
	control.Client.Title = "\x00\x01"
	control.Quote.FooterNotes = "\x00\x01"

	ea, err := r.layout(empty)
	require.NoError(t, err)
	eb, err := r.layout(control)
	require.NoError(t, err)
	assert.Equal(t, ea.bodyEnd, eb.bodyEnd)
	assert.Equal(t, ea.placements, eb.placements)
	assert.Equal(t, ea.doc.PageNo(), eb.doc.PageNo())

	a, err := r.Render(context.Background(), empty)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), control)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ── Paginación ────────────────────────────────────────────────────────────────

func TestLayout_DescripcionDeDosLineas(t *testing.T) {
	e, err := newTestRenderer(nil).layout(sampleInput())
	require.NoError(t, err)
	e.setFont(e.fonts.regular, 8)

	cols := columnsFor(e.contentW)
	lines := e.wrap(strings.TrimSpace(strings.Repeat("mot ", 22)), cols.desc-2*rowPadding)
	assert.Len(t, lines, 2)
}

// assertPaginated comprueba que cada partida se dibuja una sola vez, en orden,
// sin cruzar el umbral y continuando arriba de la página siguiente.
func assertPaginated(t *testing.T, e *engine, n int) {
	t.Helper()
	require.Len(t, e.placements, n)
	assert.GreaterOrEqual(t, e.doc.PageNo(), 2)

	limit := e.pageH - bottomThreshold
	for i, p := range e.placements {
		assert.Equal(t, i, p.Item, "cada partida exactamente una vez y en orden")
		assert.LessOrEqual(t, p.Y+p.Height, limit, "fila %d sobrepasa el umbral", i)
		if i == 0 {
			continue
		}
		prev := e.placements[i-1]
		switch {
		case p.Page == prev.Page:
			assert.InDelta(t, prev.Y+prev.Height, p.Y, 0.001, "filas contiguas en la misma página")
		default:
			assert.Equal(t, prev.Page+1, p.Page)
			assert.Equal(t, margin, p.Y, "la fila que no cabe arranca arriba de la página nueva")
		}
	}
	assert.Equal(t, e.doc.PageNo(), e.placements[n-1].Page)
}

func fortyItems() Input {
	in := sampleInput()
	desc := strings.TrimSpace(strings.Repeat("mot ", 22))
	in.Items = make([]entity.LineItem, 40)
	for i := range in.Items {
		in.Items[i] = lineItem(desc, "1", "10")
	}
	return in
}

func TestLayout_CuarentaPartidasPaginanSinPerderNiRepetir(t *testing.T) {
	e, err := newTestRenderer(nil).layout(fortyItems())
	require.NoError(t, err)
	assertPaginated(t, e, 40)
}

func TestLayout_CuarentaPartidasConFuentesUTF8(t *testing.T) {
	e, err := newTestRenderer(utf8Assets(t)).layout(fortyItems())
	require.NoError(t, err)
	require.True(t, e.fonts.utf8)
	assertPaginated(t, e, 40)
}

func TestLayout_AyudasYTotalesNoSalenDeLaPagina(t *testing.T) {
	aides := []entity.Aide{
		{Name: "MaPrimeRénov'", Description: "Prime énergie", Amount: nd("50")},
		{Name: "CEE", Amount: nd("20")},
	}
	r := newTestRenderer(nil)

	for n := 10; n <= 24; n++ {
		t.Run(fmt.Sprintf("%d partidas", n), func(t *testing.T) {
			in := sampleInput()
			in.Items = oneLineItems(n)
			in.Aides = aides

			e, err := r.layout(in)
			require.NoError(t, err)
			assert.LessOrEqual(t, e.bodyEnd, e.pageH-bottomThreshold, "el recuadro de totales queda dentro de la página")
		})
	}
}

func TestLayout_MuchasAyudasPaginan(t *testing.T) {
	in := sampleInput()
	in.Items = oneLineItems(5)
	in.Aides = make([]entity.Aide, 30)
	for i := range in.Aides {
		in.Aides[i] = entity.Aide{Name: fmt.Sprintf("Aide %d", i+1), Description: "Prime", Amount: nd("10")}
	}

	e, err := newTestRenderer(nil).layout(in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, e.doc.PageNo(), 2)
	assert.LessOrEqual(t, e.bodyEnd, e.pageH-bottomThreshold)
	assert.Equal(t, 1, e.placements[len(e.placements)-1].Page, "las partidas caben en la primera página")
}

func TestLayout_FilaMinima(t *testing.T) {
	e, err := newTestRenderer(nil).layout(sampleInput())
	require.NoError(t, err)
	require.Len(t, e.placements, 1)
	assert.Equal(t, minRowHeight, e.placements[0].Height)
	assert.Equal(t, 1, e.placements[0].Page)
}

func TestColumnsFor_Truncados(t *testing.T) {
	c := columnsFor(595.28 - 2*margin)
	assert.Equal(t, 257.0, c.desc)
	assert.Equal(t, 51.0, c.qty)
	assert.Equal(t, 103.0, c.price)
	assert.Equal(t, 103.0, c.total)
}

// ── Fuentes y logo ────────────────────────────────────────────────────────────

func TestLoadFonts_SinPoppinsUsaHelvetica(t *testing.T) {
	e, err := newTestRenderer(afero.NewMemMapFs()).layout(sampleInput())
	require.NoError(t, err)
	assert.False(t, e.fonts.utf8)
	assert.Equal(t, "Helvetica", e.fonts.regular.family)
	assert.Equal(t, "B", e.fonts.medium.style)
}

func TestLoadFonts_PoppinsUTF8(t *testing.T) {
	e, err := newTestRenderer(utf8Assets(t)).layout(sampleInput())
	require.NoError(t, err)
	assert.True(t, e.fonts.utf8)
	assert.Equal(t, face{"Poppins", ""}, e.fonts.regular)
	assert.Equal(t, face{"PoppinsMedium", ""}, e.fonts.medium)
	assert.Equal(t, "Pompe à chaleur", e.fonts.encode("Pompe à chaleur"))

	e.setFont(e.fonts.regular, 8)
	cols := columnsFor(e.contentW)
	lines := e.wrap(strings.TrimSpace(strings.Repeat("chaudière ", 40)), cols.desc-2*rowPadding)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, e.doc.GetStringWidth(l), cols.desc-2*rowPadding+0.01)
	}
}

func TestLoadFonts_TTFInvalidaUsaHelvetica(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, n := range []string{"Poppins-Regular.ttf", "Poppins-Bold.ttf"} {
		require.NoError(t, afero.WriteFile(fs, "/fonts/"+n, []byte("no es una fuente"), 0o644))
	}
	out, err := newTestRenderer(fs).Render(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	e, err := newTestRenderer(fs).layout(sampleInput())
	require.NoError(t, err)
	assert.False(t, e.fonts.utf8)
}

func TestFirstExisting_OrdenDeCandidatos(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/fonts/b.ttf", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/fonts/c.ttf", []byte("x"), 0o644))

	assert.Equal(t, "/fonts/b.ttf", firstExisting(fs, "/fonts/a.ttf", "/fonts/b.ttf", "/fonts/c.ttf"))
	assert.Equal(t, "", firstExisting(fs, "/fonts/a.ttf"))
	assert.Equal(t, "", firstExisting(nil, "/fonts/b.ttf"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for x := 0; x < 40; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDrawLogo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/uploads/logos/logo.png", pngBytes(t), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/uploads/logos/roto.png", []byte("basura"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/uploads/logos/logo.bmp", []byte("BM"), 0o644))

	e, err := newTestRenderer(fs).layout(sampleInput())
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"ruta guardada", "/uploads/logos/logo.png", true},
		{"solo nombre de archivo", "otra/carpeta/logo.png", true},
		{"no existe", "/uploads/logos/nada.png", false},
		{"imagen corrupta", "/uploads/logos/roto.png", false},
		{"formato no soportado", "/uploads/logos/logo.bmp", false},
		{"vacío", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.drawLogo(tt.path, 50, 30, 160, 35))
			assert.False(t, e.doc.Err())
		})
	}
}

func TestRender_ConLogo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/uploads/logos/logo.png", pngBytes(t), 0o644))
	in := sampleInput()
	in.Company.LogoPath = "/uploads/logos/logo.png"

	out, err := newTestRenderer(fs).Render(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_ConLogoYFuentesUTF8(t *testing.T) {
	fs := utf8Assets(t)
	require.NoError(t, afero.WriteFile(fs, "/uploads/logos/logo.png", pngBytes(t), 0o644))
	in := sampleInput()
	in.Company.LogoPath = "/uploads/logos/logo.png"

	e, err := newTestRenderer(fs).layout(in)
	require.NoError(t, err)
	require.True(t, e.fonts.utf8)
	assert.True(t, e.drawLogo(in.Company.LogoPath, 50, 30, 160, 35))
	assert.False(t, e.doc.Err())

	out, err := newTestRenderer(fs).Render(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(bytes.TrimSpace(out), []byte("%%EOF")))
}

// ── Piezas de contenido ───────────────────────────────────────────────────────

func TestDocumentLabel(t *testing.T) {
	label, invoice := documentLabel(&entity.Quote{DocumentType: entity.DocumentTypeInvoice})
	assert.Equal(t, "FACTURE", label)
	assert.True(t, invoice)

	label, invoice = documentLabel(&entity.Quote{DocumentType: entity.DocumentTypeQuote})
	assert.Equal(t, "DEVIS", label)
	assert.False(t, invoice)
}

func TestPaymentLines_SoloCamposInformados(t *testing.T) {
	lines := paymentLines(&entity.Quote{IBAN: "FR76 1234", InstallerRef: "  ", CapacityAttestationNo: "A-42"})
	assert.Equal(t, []string{
		"Règlement par chèque ou par virement bancaire",
		"IBAN: FR76 1234",
		"Attestation de capacité n° A-42",
	}, lines)
}

func TestLogoCandidates(t *testing.T) {
	assert.Equal(t, []string{"/uploads/logos/a.png", "/uploads/logos/a.png"}, logoCandidates("uploads/logos/a.png"))
	assert.Equal(t, []string{"/etc/passwd", "/uploads/logos/passwd"}, logoCandidates("../../etc/passwd"))
}
