package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFText_EmptyString(t *testing.T) {
	assert.Equal(t, "", PDFText(""))
}

func TestPDFText_PlainASCII(t *testing.T) {
	assert.Equal(t, "Built 3 services in Go", PDFText("Built 3 services in Go"))
}

func TestPDFText_SmartPunctuation(t *testing.T) {
	assert.Equal(t, `"Ship it" - it's done...`, PDFText("“Ship it” — it’s done…"))
}

func TestPDFText_Latin1Kept(t *testing.T) {
	assert.Equal(t, "Café Zürich", PDFText("Café Zürich"))
}

func TestPDFText_OutsideLatin1(t *testing.T) {
	assert.Equal(t, "Tokyo ??", PDFText("Tokyo 東京"))
}

func TestPDFText_Whitespace(t *testing.T) {
	assert.Equal(t, "a b c", PDFText("a\tb\nc"))
}
