package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	for _, name := range []string{"report.pdf", "minutes.DOCX", "photo.jpeg", "ledger.xlsx", "list.csv"} {
		assert.True(t, AllowedFile(name), name)
	}
	for _, name := range []string{"script.sh", "binary.exe", "noext", "dot.", "archive.zip"} {
		assert.False(t, AllowedFile(name), name)
	}
}

func TestSecureFilename(t *testing.T) {
	assert.Equal(t, "budget_plan.pdf", SecureFilename("budget plan.pdf"))
	assert.Equal(t, "passwd", SecureFilename("../../etc/passwd"))
	assert.Equal(t, "report.docx", SecureFilename("..\\..\\report.docx"))
	assert.Equal(t, "resolution-03_final.pdf", SecureFilename("resolution-03 final.pdf"))
	assert.Equal(t, "file", SecureFilename("???"))
	assert.Equal(t, "file", SecureFilename("..."))
}
