package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReceiptNumberFormat(t *testing.T) {
	got := GenerateReceiptNumber()

	assert.True(t, strings.HasPrefix(got, "RCP-"), "got %q", got)
	parts := strings.Split(got, "-")
	assert.Len(t, parts, 3)
}

func TestLooksLikeReceiptNumber(t *testing.T) {
	assert.True(t, LooksLikeReceiptNumber(GenerateReceiptNumber()))
	assert.False(t, LooksLikeReceiptNumber(""))
	assert.False(t, LooksLikeReceiptNumber("RCP-"))
	assert.False(t, LooksLikeReceiptNumber("INV-123"))
}
