package writer

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/pkg/model"
)

func sampleDocument() *model.ReportDocument {
	return &model.ReportDocument{
		Result: model.ResultCompletedSuccessfully,
		Sections: []model.Section{
			{Name: "target_overview", Title: "Target Overview", Body: &model.TargetReport{ProcessID: 4242}},
		},
	}
}

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter[*model.ReportDocument]()
	require.NoError(t, w.Write(sampleDocument(), &buf))

	var doc model.ReportDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, model.ResultCompletedSuccessfully, doc.Result)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "target_overview", doc.Sections[0].Name)
}

func TestPrettyJSONWriter_Indents(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrettyJSONWriter[*model.ReportDocument]()
	require.NoError(t, w.Write(sampleDocument(), &buf))

	assert.True(t, strings.Contains(buf.String(), "\n  "))
}

func TestJSONWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewJSONWriter[*model.ReportDocument]()
	require.NoError(t, w.WriteToFile(sampleDocument(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc model.ReportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, model.ResultCompletedSuccessfully, doc.Result)
}

func TestGzipWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewGzipWriter[*model.ReportDocument]()
	require.NoError(t, w.Write(sampleDocument(), &buf))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	defer gz.Close()

	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	var doc model.ReportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, model.ResultCompletedSuccessfully, doc.Result)
}

func TestGzipWriter_OutputIsSmallerOnRepetitiveData(t *testing.T) {
	doc := sampleDocument()
	for i := 0; i < 500; i++ {
		doc.Sections = append(doc.Sections, model.Section{
			Name: "loaded_modules", Title: "Loaded Modules",
			Body: &model.ModulesReport{},
		})
	}

	var plain, compressed bytes.Buffer
	require.NoError(t, NewJSONWriter[*model.ReportDocument]().Write(doc, &plain))
	require.NoError(t, NewGzipWriter[*model.ReportDocument]().Write(doc, &compressed))

	assert.Less(t, compressed.Len(), plain.Len())
}
