// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0640))
	return path
}

func TestRunFiles(t *testing.T) {
	bmp := writeTestFile(t, "image", append([]byte("BM"), make([]byte, 52)...))
	pdf := writeTestFile(t, "doc", []byte("%PDF-1.4\n%%EOF\n"))
	unknown := writeTestFile(t, "blob", []byte{0x01, 0x02, 0x03})

	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{bmp, pdf, unknown}, JSON: true, Parallel: 2, NoFallback: true}
	require.NoError(t, run(context.Background(), cli, strings.NewReader(""), &stdout, &stderr))

	var got []result
	dec := json.NewDecoder(&stdout)
	for dec.More() {
		var r result
		require.NoError(t, dec.Decode(&r))
		got = append(got, r)
	}

	assert.Equal(t, []result{
		{Input: bmp, Extension: "bmp", MediaType: "image/bmp"},
		{Input: pdf, Extension: "pdf", MediaType: "application/pdf"},
		{Input: unknown},
	}, got)
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{missing}, Parallel: 1, ContinueOnError: true}
	err := run(context.Background(), cli, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 inputs failed")
	assert.Contains(t, stdout.String(), missing+": error: cannot sniff")
}

func TestRunTee(t *testing.T) {
	input := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("0123456789"), 1000)...)

	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{"-"}, Tee: true, Parallel: 1}
	require.NoError(t, run(context.Background(), cli, bytes.NewReader(input), &stdout, &stderr))

	assert.Equal(t, input, stdout.Bytes())
	assert.Equal(t, "-: pdf application/pdf\n", stderr.String())
}

func TestRunTeeRequiresStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{"file"}, Tee: true}
	err := run(context.Background(), cli, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
}

func TestRunStdinTwice(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{"-", "-"}}
	err := run(context.Background(), cli, strings.NewReader("data"), &stdout, &stderr)
	require.Error(t, err)
}

func TestRunInvalidS3Location(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cli := CLI{Inputs: []string{"s3://bucket-only"}, Parallel: 1, ContinueOnError: true}
	err := run(context.Background(), cli, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, stdout.String(), `invalid s3 location "s3://bucket-only"`)
}
