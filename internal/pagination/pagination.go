// Package pagination implements hybrid pagination: small result sets
// are fetched in memory and wrapped in a page envelope, while sets
// past a count threshold are streamed to the client as a JSON array
// straight off the database cursor.
package pagination

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// Params are the client-requested page coordinates.
type Params struct {
	Page    int
	PerPage int
}

// Options bound the page size and set the stream threshold.
type Options struct {
	DefaultPerPage  int
	MaxPerPage      int
	StreamThreshold int64
}

// DefaultOptions mirror the service defaults.
var DefaultOptions = Options{
	DefaultPerPage:  20,
	MaxPerPage:      100,
	StreamThreshold: 10000,
}

// ParseParams reads page/per_page query values and clamps them.
func ParseParams(pageStr, perPageStr string, opts Options) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		perPage = opts.DefaultPerPage
	}
	if perPage > opts.MaxPerPage {
		perPage = opts.MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset returns the row offset for the params.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Source is the data access surface hybrid pagination needs. Page
// serves the in-memory half; Each serves the streaming half.
type Source[T any] interface {
	Count(ctx context.Context) (int64, error)
	Page(ctx context.Context, limit, offset int) ([]T, error)
	Each(ctx context.Context, fn func(T) error) error
}

// SourceFuncs adapts repository closures to a Source.
type SourceFuncs[T any] struct {
	CountFn func(ctx context.Context) (int64, error)
	PageFn  func(ctx context.Context, limit, offset int) ([]T, error)
	EachFn  func(ctx context.Context, fn func(T) error) error
}

func (s SourceFuncs[T]) Count(ctx context.Context) (int64, error) {
	return s.CountFn(ctx)
}

func (s SourceFuncs[T]) Page(ctx context.Context, limit, offset int) ([]T, error) {
	return s.PageFn(ctx, limit, offset)
}

func (s SourceFuncs[T]) Each(ctx context.Context, fn func(T) error) error {
	return s.EachFn(ctx, fn)
}

// Envelope is the response shape for the in-memory path.
type Envelope[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages computes the page count for a total under the params.
func (p Params) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Respond writes the hybrid-paginated result set to w. At or below
// the threshold it fetches one page and writes an Envelope; above it
// the full filtered set is streamed as a bare JSON array with the
// total carried in the X-Total-Count header. Errors before the first
// streamed row leave the response unwritten; once streaming has
// begun, errors abort the connection mid-body and the caller can
// only log them.
func Respond[T any](ctx context.Context, w http.ResponseWriter, src Source[T], p Params, opts Options) error {
	total, err := src.Count(ctx)
	if err != nil {
		return err
	}

	if total <= opts.StreamThreshold {
		data, err := src.Page(ctx, p.PerPage, p.Offset())
		if err != nil {
			return err
		}
		if data == nil {
			data = []T{}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		return json.NewEncoder(w).Encode(Envelope[T]{
			Data:       data,
			Page:       p.Page,
			PerPage:    p.PerPage,
			Total:      total,
			TotalPages: p.TotalPages(total),
		})
	}

	return stream(ctx, w, src, total)
}

func stream[T any](ctx context.Context, w http.ResponseWriter, src Source[T], total int64) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))

	// The opening bracket waits for the first row, so a cursor that
	// fails before producing anything leaves the response uncommitted
	// and the caller can still send a proper error.
	flusher, _ := w.(http.Flusher)
	first := true
	err := src.Each(ctx, func(item T) error {
		encoded, err := json.Marshal(item)
		if err != nil {
			return err
		}
		sep := []byte(",")
		if first {
			sep = []byte("[")
		}
		if _, err := w.Write(sep); err != nil {
			return err
		}
		first = false
		if _, err := w.Write(encoded); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if first {
		_, err = w.Write([]byte("[]"))
		return err
	}
	_, err = w.Write([]byte("]"))
	return err
}
