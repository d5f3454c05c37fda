package upload

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemereg/pkg/platform/modelstate"
	pkgtestutil "schemereg/pkg/testutil"
)

const field = "file"

func newValidator(limit int64) *Validator {
	return NewValidator(limit, NewMetrics(prometheus.NewRegistry()))
}

func rawPart(boundary, disposition, content string) string {
	return "--" + boundary + "\r\n" +
		"Content-Disposition: " + disposition + "\r\n" +
		"Content-Type: text/csv\r\n\r\n" +
		content + "\r\n--" + boundary + "--\r\n"
}

func TestProcessFile(t *testing.T) {
	const limit = 2 * bytesPerMB
	const boundary = "xYzBoundary"
	multipartCT := "multipart/form-data; boundary=" + boundary

	tests := []struct {
		name        string
		contentType string
		body        string
		wantMsg     string
	}{
		{
			name:        "not multipart",
			contentType: "application/json",
			body:        `{}`,
			wantMsg:     MsgSelectCSV,
		},
		{
			name:        "multipart without boundary",
			contentType: "multipart/form-data",
			body:        "",
			wantMsg:     MsgSelectCSV,
		},
		{
			name:        "unparseable content type",
			contentType: "multipart/form-data; boundary",
			body:        "",
			wantMsg:     MsgSelectCSV,
		},
		{
			name:        "no parts",
			contentType: multipartCT,
			body:        "garbage",
			wantMsg:     MsgInvalidUpload,
		},
		{
			name:        "malformed disposition",
			contentType: multipartCT,
			body:        rawPart(boundary, `form-data; name="file"; filename=`, "a,b"),
			wantMsg:     MsgInvalidUpload,
		},
		{
			name:        "attachment disposition",
			contentType: multipartCT,
			body:        rawPart(boundary, `attachment; filename="data.csv"`, "a,b"),
			wantMsg:     MsgSelectCSV,
		},
		{
			name:        "form field without file",
			contentType: multipartCT,
			body:        rawPart(boundary, `form-data; name="file"`, "a,b"),
			wantMsg:     MsgSelectCSV,
		},
		{
			name:        "wrong extension",
			contentType: multipartCT,
			body:        rawPart(boundary, `form-data; name="file"; filename="data.xlsx"`, "a,b"),
			wantMsg:     MsgMustBeCSV,
		},
		{
			name:        "csv in name but not extension",
			contentType: multipartCT,
			body:        rawPart(boundary, `form-data; name="file"; filename="data.csv.txt"`, "a,b"),
			wantMsg:     MsgMustBeCSV,
		},
		{
			name:        "empty file",
			contentType: multipartCT,
			body:        rawPart(boundary, `form-data; name="file"; filename="data.csv"`, ""),
			wantMsg:     MsgEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := modelstate.New()
			f := newValidator(limit).ProcessFile(context.Background(), tt.contentType, strings.NewReader(tt.body), field, ms)

			assert.True(t, f.IsEmpty())
			assert.Equal(t, 1, ms.Count())
			assert.Equal(t, []string{tt.wantMsg}, ms.Errors(field))
		})
	}
}

func TestProcessFileAcceptsCSV(t *testing.T) {
	for _, name := range []string{"data.csv", "DATA.CSV", "Data.Csv"} {
		t.Run(name, func(t *testing.T) {
			body, ct := pkgtestutil.MultipartBody(t, field, name, []byte("a,b\n1,2\n"))
			ms := modelstate.New()

			f := newValidator(bytesPerMB).ProcessFile(context.Background(), ct, bytes.NewReader(body), field, ms)

			assert.True(t, ms.IsValid())
			assert.Equal(t, name, f.Name)
			assert.Equal(t, "a,b\n1,2\n", string(f.Content))
		})
	}
}

func TestProcessFileStripsClientPath(t *testing.T) {
	body, ct := pkgtestutil.MultipartBody(t, field, `C:/Users/me/data.csv`, []byte("a"))
	f := newValidator(bytesPerMB).ProcessFile(context.Background(), ct, bytes.NewReader(body), field, modelstate.New())
	assert.Equal(t, "data.csv", f.Name)
}

func TestProcessFileRejectsFilesAtOrAboveLimit(t *testing.T) {
	const limit = 3 * bytesPerMB
	rng := rand.New(rand.NewPCG(7, 11))
	sizes := []int{limit, limit + 1, limit + 4096}
	for i := 0; i < 5; i++ {
		sizes = append(sizes, limit+rng.IntN(bytesPerMB))
	}

	for _, size := range sizes {
		body, ct := pkgtestutil.MultipartBody(t, field, "big.csv", bytes.Repeat([]byte("x"), size))
		ms := modelstate.New()

		f := newValidator(limit).ProcessFile(context.Background(), ct, bytes.NewReader(body), field, ms)

		require.True(t, f.IsEmpty(), "size %d", size)
		require.Equal(t, 1, ms.Count(), "size %d", size)
		assert.Equal(t, []string{"The selected file must be smaller than 3MB"}, ms.Errors(field))
	}
}

func TestProcessFileAcceptsJustBelowLimit(t *testing.T) {
	const limit = bytesPerMB
	body, ct := pkgtestutil.MultipartBody(t, field, "ok.csv", bytes.Repeat([]byte("x"), limit-1))
	ms := modelstate.New()

	f := newValidator(limit).ProcessFile(context.Background(), ct, bytes.NewReader(body), field, ms)

	assert.True(t, ms.IsValid())
	assert.Len(t, f.Content, limit-1)
}

func TestProcessFileMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	v := NewValidator(bytesPerMB, m)

	body, ct := pkgtestutil.MultipartBody(t, field, "ok.csv", []byte("a,b"))
	v.ProcessFile(context.Background(), ct, bytes.NewReader(body), field, modelstate.New())
	v.ProcessFile(context.Background(), "text/plain", strings.NewReader(""), field, modelstate.New())

	assert.InDelta(t, 1, testutil.ToFloat64(m.Accepted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rejected.WithLabelValues(ReasonNotMultipart)), 0)
}
