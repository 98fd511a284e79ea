package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fnol_intake/internal/domain/certificate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCertificate_KnownInsurer(t *testing.T) {
	dir := t.TempDir()

	path, err := writeCertificate(dir, "mapfre", certificate.Holder{Name: "Jane Roe", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Certificate_MAPFRE.html"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Jane Roe")
	assert.Contains(t, string(body), "#E30613")
}

func TestWriteCertificate_GenericWhenEmpty(t *testing.T) {
	dir := t.TempDir()

	path, err := writeCertificate(dir, "", certificate.Holder{Name: "Jane Roe", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Certificate_Seguros Global.html", filepath.Base(path))
}

func TestWriteCertificate_InvalidHolder(t *testing.T) {
	dir := t.TempDir()

	_, err := writeCertificate(dir, "AXA", certificate.Holder{Name: " ", Email: "jane@example.com"})
	assert.ErrorIs(t, err, certificate.ErrInvalidInput)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCertificateCmd(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	cmd := certificateCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--insurer", "Allianz", "--name", "Jane Roe", "--email", "jane@example.com", "--out", dir})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, filepath.Join(dir, "Certificate_Allianz.html"), strings.TrimSpace(out.String()))
}

func TestCertificateCmd_RequiresHolder(t *testing.T) {
	cmd := certificateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--insurer", "AXA"})
	assert.Error(t, cmd.Execute())
}
