package middleware

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzhttp"
)

const (
	encodingBrotli = "br"

	// Respostas menores que isso seguem sem gzip
	compressionMinSize = 512
)

type brotliResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

func (b *brotliResponseWriter) WriteHeader(code int) {
	b.ResponseWriter.Header().Del("Content-Length")
	b.ResponseWriter.WriteHeader(code)
}

func (b *brotliResponseWriter) Write(p []byte) (int, error) {
	return b.writer.Write(p)
}

// Compression usa brotli quando é a codificação preferida pelo cliente e gzip (gzhttp) nos demais casos
func Compression() func(http.Handler) http.Handler {
	gzipWrapper, err := gzhttp.NewWrapper(gzhttp.MinSize(compressionMinSize))
	if err != nil {
		gzipWrapper = gzhttp.GzipHandler
	}

	return func(next http.Handler) http.Handler {
		gzipped := gzipWrapper(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := w.Header()
			vary := header.Values("Vary")

			// HTTPCompressor só define cabeçalhos; nada é escrito antes do primeiro Write
			encoder := brotli.HTTPCompressor(w, r)
			if header.Get("Content-Encoding") != encodingBrotli {
				header.Del("Content-Encoding")
				restoreHeader(header, "Vary", vary)
				gzipped.ServeHTTP(w, r)
				return
			}
			defer encoder.Close()

			restoreHeader(header, "Vary", vary)
			header.Add("Vary", "Accept-Encoding")

			next.ServeHTTP(&brotliResponseWriter{ResponseWriter: w, writer: encoder}, r)
		})
	}
}

func restoreHeader(header http.Header, key string, values []string) {
	header.Del(key)
	for _, value := range values {
		header.Add(key, value)
	}
}
