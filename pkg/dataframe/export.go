package dataframe

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rbell517/systemlink-go/pkg/dataframe/types"
)

// exportChunkSize is how much of the response body one Next call reads.
const exportChunkSize = 4096

// ExportTableData exports rows matching a filter in the requested
// format. The returned reader streams the exported bytes; the caller
// must consume or close it to release the underlying connection.
//
// The retry policy applies to establishing the export only. A failure
// after the stream has started surfaces from the reader and the export
// must be restarted from scratch.
func (c *Client) ExportTableData(ctx context.Context, id string, req types.ExportTableDataRequest) (*ExportReader, error) {
	if id == "" {
		return nil, errors.New("table id is required")
	}
	if req.ResponseFormat == "" {
		return nil, errors.New("response format is required")
	}

	body, err := c.core.DoStream(ctx, http.MethodPost, "tables/"+url.PathEscape(id)+"/export-data", req)
	if err != nil {
		return nil, err
	}

	return newExportReader(body), nil
}

// ExportReader is a single-pass reader over an export's bytes. It is
// not restartable; once the body is consumed, subsequent reads return
// io.EOF.
type ExportReader struct {
	body   io.ReadCloser
	buf    []byte
	done   bool
	closed bool
}

func newExportReader(body io.ReadCloser) *ExportReader {
	return &ExportReader{
		body: body,
		buf:  make([]byte, exportChunkSize),
	}
}

// Next returns the next chunk of the export, at most exportChunkSize
// bytes, and io.EOF once the body is exhausted. The returned slice is
// only valid until the following call. The body is closed on EOF or
// error, so abandoning iteration early still requires Close.
func (r *ExportReader) Next() ([]byte, error) {
	if r.done || r.closed {
		return nil, io.EOF
	}

	n, err := r.body.Read(r.buf)
	if n > 0 {
		if err == io.EOF {
			r.finish()
		}
		return r.buf[:n], nil
	}

	if err == nil {
		err = io.EOF
	}
	if err == io.EOF {
		r.finish()
		return nil, io.EOF
	}

	// A mid-stream transport failure. The connection is no longer
	// usable.
	r.finish()
	return nil, errors.Wrap(err, "read export stream")
}

// Read implements io.Reader over the remaining export bytes.
func (r *ExportReader) Read(p []byte) (int, error) {
	if r.done || r.closed {
		return 0, io.EOF
	}

	n, err := r.body.Read(p)
	if err != nil {
		r.finish()
	}
	if err != nil && err != io.EOF {
		err = errors.Wrap(err, "read export stream")
	}

	return n, err
}

// WriteTo copies the remaining export to w chunk by chunk, without
// buffering the whole body.
func (r *ExportReader) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for {
		chunk, err := r.Next()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}

		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "write export chunk")
		}
	}
}

// Close releases the underlying connection. Close is idempotent and
// safe after the stream is exhausted.
func (r *ExportReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.done {
		return nil
	}
	r.done = true

	return r.body.Close()
}

func (r *ExportReader) finish() {
	if !r.done {
		r.done = true
		r.body.Close()
	}
}
