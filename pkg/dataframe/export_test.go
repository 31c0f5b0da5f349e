package dataframe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

// exportBody returns deterministic contents whose size is deliberately
// not a multiple of the chunk size.
func exportBody(size int) []byte {
	body := make([]byte, size)
	for i := range body {
		body[i] = byte('a' + i%26)
	}
	return body
}

func TestExportTableDataStreamsAllBytes(t *testing.T) {
	body := exportBody(10000)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nidataframe/v1/tables/t1/export-data", r.URL.Path)

		req := types.ExportTableDataRequest{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, types.ExportFormatCSV, req.ResponseFormat)

		w.Write(body)
	}))

	stream, err := client.ExportTableData(context.Background(), "t1", types.ExportTableDataRequest{
		ResponseFormat: types.ExportFormatCSV,
	})
	require.NoError(t, err)
	defer stream.Close()

	collected := []byte{}
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.LessOrEqual(t, len(chunk), 4096)
		require.NotEmpty(t, chunk)
		collected = append(collected, chunk...)
	}

	assert.Equal(t, body, collected)

	// The stream is single-pass; once exhausted it stays exhausted.
	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestExportReaderWriteTo(t *testing.T) {
	body := exportBody(4097)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))

	stream, err := client.ExportTableData(context.Background(), "t1", types.ExportTableDataRequest{
		ResponseFormat: types.ExportFormatCSV,
	})
	require.NoError(t, err)
	defer stream.Close()

	out := bytes.Buffer{}
	written, err := stream.WriteTo(&out)

	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), written)
	assert.Equal(t, body, out.Bytes())
}

func TestExportReaderEarlyClose(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(exportBody(100000))
	}))

	stream, err := client.ExportTableData(context.Background(), "t1", types.ExportTableDataRequest{
		ResponseFormat: types.ExportFormatCSV,
	})
	require.NoError(t, err)

	_, err = stream.Next()
	require.NoError(t, err)

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())

	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestExportReaderMidStreamFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are sent, then drop the connection.
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()

		fmt.Fprintf(buf, "HTTP/1.1 200 OK\r\nContent-Length: 9000\r\n\r\n")
		buf.Write(exportBody(4096))
		buf.Flush()
	}))

	stream, err := client.ExportTableData(context.Background(), "t1", types.ExportTableDataRequest{
		ResponseFormat: types.ExportFormatCSV,
	})
	require.NoError(t, err)
	defer stream.Close()

	chunk, err := stream.Next()
	require.NoError(t, err)
	assert.NotEmpty(t, chunk)

	for {
		_, err = stream.Next()
		if err != nil {
			break
		}
	}
	assert.NotEqual(t, io.EOF, err, "a dropped connection must surface as an error, not EOF")
}

func TestExportTableDataValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := client.ExportTableData(context.Background(), "", types.ExportTableDataRequest{
		ResponseFormat: types.ExportFormatCSV,
	})
	assert.Error(t, err)

	_, err = client.ExportTableData(context.Background(), "t1", types.ExportTableDataRequest{})
	assert.Error(t, err)
}
