package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeflow/internal/output"
	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// failingWriter implements io.Writer but always returns an error.
type failingWriter struct{}

func (failingWriter) Write(_ []byte) (n int, err error) {
	//nolint:err113 // Test error, not wrapped
	return 0, errors.New("write failed")
}

func unsupportedChain() error {
	return stakeerr.WithSuggestion(
		stakeerr.WithDetails(stakeerr.ErrUnsupportedChain, map[string]string{
			"chain_id": "1",
			"b":        "2",
			"a":        "3",
		}),
		"configured chains: 6900, 6911",
	)
}

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()

	for _, format := range []output.Format{output.FormatJSON, output.FormatText} {
		var buf bytes.Buffer
		require.NoError(t, output.FormatError(&buf, nil, format))
		assert.Empty(t, buf.String())
	}
}

func TestFormatError_StakeError_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, output.FormatError(&buf, unsupportedChain(), output.FormatJSON))

	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "UNSUPPORTED_CHAIN", result.Error.Code)
	assert.Equal(t, "1", result.Error.Details["chain_id"])
	assert.Equal(t, "configured chains: 6900, 6911", result.Error.Suggestion)
	assert.Equal(t, stakeerr.ExitNotFound, result.Error.ExitCode)
}

func TestFormatError_StakeError_Text(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	require.NoError(t, output.FormatError(&buf, unsupportedChain(), output.FormatText))

	want := "Error: " + stakeerr.ErrUnsupportedChain.Message + "\n" +
		"\nDetails:\n  a: 3\n  b: 2\n  chain_id: 1\n" +
		"\nSuggestion: configured chains: 6900, 6911\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatError_Generic(t *testing.T) {
	t.Parallel()
	//nolint:err113 // Test error, intentionally not wrapped
	err := errors.New("something went wrong")

	var text bytes.Buffer
	require.NoError(t, output.FormatError(&text, err, output.FormatText))
	assert.Equal(t, "Error: something went wrong\n", text.String())

	var js bytes.Buffer
	require.NoError(t, output.FormatError(&js, err, output.FormatJSON))
	var result output.ErrorOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &result))
	assert.Equal(t, "GENERAL_ERROR", result.Error.Code)
	assert.Equal(t, stakeerr.ExitGeneral, result.Error.ExitCode)
	assert.NotContains(t, js.String(), "details")
}

func TestFormatError_WriterError(t *testing.T) {
	t.Parallel()
	assert.Error(t, output.FormatError(failingWriter{}, unsupportedChain(), output.FormatText))
	assert.Error(t, output.FormatError(failingWriter{}, unsupportedChain(), output.FormatJSON))
}

func TestFormatSuccess(t *testing.T) {
	t.Parallel()

	var text bytes.Buffer
	require.NoError(t, output.FormatSuccess(&text, "Config written", output.FormatText))
	assert.Equal(t, "Config written\n", text.String())

	var js bytes.Buffer
	require.NoError(t, output.FormatSuccess(&js, "Config written", output.FormatJSON))
	var result map[string]string
	require.NoError(t, json.Unmarshal(js.Bytes(), &result))
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Config written", result["message"])
}
