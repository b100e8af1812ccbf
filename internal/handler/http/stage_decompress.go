package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/pipeline"
)

const stageDecompressBody = "decompress-body"

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// decompressBodyStage inflates gzip request bodies so decode-body and the
// body limit see the plain JSON. Other encodings are refused.
func decompressBodyStage() pipeline.Stage {
	return pipeline.Func(stageDecompressBody, func(ex *pipeline.Exchange) pipeline.Result {
		r := ex.Request
		encoding := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
		if encoding == "" || encoding == "identity" || r.Body == nil || r.Body == http.NoBody {
			return pipeline.Proceed()
		}
		if encoding != "gzip" && encoding != "x-gzip" {
			return pipeline.Fail(pipeline.ValidationError(pipeline.Message{Message: "Unsupported Content-Encoding"}).
				WithStatus(http.StatusUnsupportedMediaType))
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			_ = r.Body.Close()
			logger.FromRequest(r).Debug().Err(err).Msg("invalid gzip body")
			return pipeline.Fail(pipeline.ValidationError(pipeline.Message{Message: "invalid gzip body"}))
		}

		r.Body = &gzipBody{Reader: gzipReader, src: r.Body}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		return pipeline.Proceed()
	})
}

// gzipBody returns its reader to the pool on the first Close.
type gzipBody struct {
	*gzip.Reader
	src    io.ReadCloser
	closed bool
}

func (b *gzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	_ = b.Reader.Close()
	gzipReaderPool.Put(b.Reader)
	return b.src.Close()
}
