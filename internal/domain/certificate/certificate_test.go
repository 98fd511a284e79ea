package certificate

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"fnol_intake/internal/domain/branding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenRx = regexp.MustCompile(`[A-Z0-9]{8}-[A-Z0-9]{8}`)

func TestRenderAt_EmbedsHolderAndTheme(t *testing.T) {
	issued := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	doc, err := RenderAt(Holder{Name: "Jane Roe", Email: "jane@x.com"}, branding.Resolve("allianz"), issued, "ABCDEFGH-12345678")
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "Jane Roe")
	assert.Contains(t, html, "jane@x.com")
	assert.Contains(t, html, "ALLIANZ")
	assert.Contains(t, html, "Allianz Insurance Group")
	assert.Contains(t, html, "#003781")
	assert.Contains(t, html, "#FFFFFF")
	assert.Contains(t, html, "March 4, 2026")
	assert.Contains(t, html, "&copy; 2026")
	assert.Contains(t, html, "ABCDEFGH-12345678")
	assert.Contains(t, html, "not a digital signature")
}

func TestRenderAt_EscapesUserText(t *testing.T) {
	doc, err := RenderAt(Holder{Name: "<script>x</script>", Email: "a@b.c"}, branding.Resolve("<b>Evil</b>"), time.Now(), "AAAAAAAA-BBBBBBBB")
	require.NoError(t, err)

	html := string(doc)
	assert.NotContains(t, html, "<script>x</script>")
	assert.NotContains(t, html, "<b>Evil</b>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderAt_Deterministic(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := Holder{Name: "Jane Roe", Email: "jane@x.com"}

	a, err := RenderAt(h, branding.Generic(), issued, "AAAAAAAA-BBBBBBBB")
	require.NoError(t, err)
	b, err := RenderAt(h, branding.Generic(), issued, "AAAAAAAA-BBBBBBBB")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRender_DiffersOnlyInToken(t *testing.T) {
	h := Holder{Name: "Jane Roe", Email: "jane@x.com"}

	a, err := Render(h, branding.Generic())
	require.NoError(t, err)
	b, err := Render(h, branding.Generic())
	require.NoError(t, err)

	ta := tokenRx.FindString(string(a))
	tb := tokenRx.FindString(string(b))
	require.NotEmpty(t, ta)
	require.NotEmpty(t, tb)
	assert.NotEqual(t, ta, tb)

	// Same day: everything but the token is identical.
	assert.Equal(t, strings.Replace(string(a), ta, "TOKEN", 1), strings.Replace(string(b), tb, "TOKEN", 1))
}

func TestRender_InvalidInput(t *testing.T) {
	_, err := Render(Holder{Email: "jane@x.com"}, branding.Generic())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Render(Holder{Name: "Jane"}, branding.Generic())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewToken_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		tok := NewToken()
		assert.Regexp(t, `^[A-Z0-9]{8}-[A-Z0-9]{8}$`, tok)
	}
}
