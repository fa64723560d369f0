package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParseParams(t *testing.T) {
	opts := Options{DefaultPerPage: 20, MaxPerPage: 100, StreamThreshold: 10000}

	tests := []struct {
		name        string
		page        string
		perPage     string
		wantPage    int
		wantPerPage int
	}{
		{name: "defaults on empty", page: "", perPage: "", wantPage: 1, wantPerPage: 20},
		{name: "explicit values", page: "3", perPage: "50", wantPage: 3, wantPerPage: 50},
		{name: "per_page clamped to max", page: "1", perPage: "500", wantPage: 1, wantPerPage: 100},
		{name: "zero page becomes one", page: "0", perPage: "10", wantPage: 1, wantPerPage: 10},
		{name: "negative values fall back", page: "-2", perPage: "-5", wantPage: 1, wantPerPage: 20},
		{name: "garbage falls back", page: "abc", perPage: "xyz", wantPage: 1, wantPerPage: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseParams(tt.page, tt.perPage, opts)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("ParseParams(%q, %q) = {%d %d}, want {%d %d}",
					tt.page, tt.perPage, p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestParams_Offset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset = %d, want 50", got)
	}
}

func TestParams_TotalPages(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		total   int64
		want    int
	}{
		{name: "exact division", perPage: 10, total: 100, want: 10},
		{name: "partial last page", perPage: 10, total: 101, want: 11},
		{name: "empty set", perPage: 10, total: 0, want: 0},
		{name: "single item", perPage: 10, total: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: 1, PerPage: tt.perPage}
			if got := p.TotalPages(tt.total); got != tt.want {
				t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

// intSource serves a fixed slice of ints through the Source surface.
func intSource(items []int) Source[int] {
	return SourceFuncs[int]{
		CountFn: func(ctx context.Context) (int64, error) {
			return int64(len(items)), nil
		},
		PageFn: func(ctx context.Context, limit, offset int) ([]int, error) {
			if offset >= len(items) {
				return nil, nil
			}
			end := offset + limit
			if end > len(items) {
				end = len(items)
			}
			return items[offset:end], nil
		},
		EachFn: func(ctx context.Context, fn func(int) error) error {
			for _, item := range items {
				if err := fn(item); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func TestRespond_EnvelopeBelowThreshold(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	opts := Options{DefaultPerPage: 3, MaxPerPage: 10, StreamThreshold: 100}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, intSource(items), Params{Page: 2, PerPage: 3}, opts)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	var env Envelope[int]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	if env.Total != 7 || env.Page != 2 || env.PerPage != 3 || env.TotalPages != 3 {
		t.Errorf("envelope meta = %+v", env)
	}
	if len(env.Data) != 3 || env.Data[0] != 4 {
		t.Errorf("envelope data = %v, want page 2 [4 5 6]", env.Data)
	}
}

func TestRespond_EmptyPageEncodesEmptyArray(t *testing.T) {
	opts := Options{DefaultPerPage: 3, MaxPerPage: 10, StreamThreshold: 100}

	rec := httptest.NewRecorder()
	if err := Respond(context.Background(), rec, intSource(nil), Params{Page: 1, PerPage: 3}, opts); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if string(raw["data"]) != "[]" {
		t.Errorf("data = %s, want [] not null", raw["data"])
	}
}

func TestRespond_StreamsAboveThreshold(t *testing.T) {
	items := []int{10, 20, 30, 40}
	opts := Options{DefaultPerPage: 2, MaxPerPage: 10, StreamThreshold: 3}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, intSource(items), Params{Page: 1, PerPage: 2}, opts)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if got := rec.Header().Get("X-Total-Count"); got != "4" {
		t.Errorf("X-Total-Count = %q, want 4", got)
	}

	// The streamed body is a bare array, not an envelope: pagination
	// params are ignored and the full set comes back.
	var streamed []int
	if err := json.Unmarshal(rec.Body.Bytes(), &streamed); err != nil {
		t.Fatalf("streamed body is not a JSON array: %v (%s)", err, rec.Body.String())
	}
	if len(streamed) != 4 || streamed[0] != 10 || streamed[3] != 40 {
		t.Errorf("streamed = %v, want all four items", streamed)
	}
}

func TestRespond_ThresholdBoundaryUsesEnvelope(t *testing.T) {
	items := []int{1, 2, 3}
	opts := Options{DefaultPerPage: 10, MaxPerPage: 10, StreamThreshold: 3}

	rec := httptest.NewRecorder()
	if err := Respond(context.Background(), rec, intSource(items), Params{Page: 1, PerPage: 10}, opts); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	// Exactly at the threshold still takes the envelope path.
	var env Envelope[int]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("expected envelope at threshold: %v", err)
	}
	if env.Total != 3 {
		t.Errorf("total = %d, want 3", env.Total)
	}
}

func TestRespond_StreamErrorAbortsMidBody(t *testing.T) {
	boom := errors.New("cursor failed")
	src := SourceFuncs[int]{
		CountFn: func(ctx context.Context) (int64, error) { return 100, nil },
		PageFn:  func(ctx context.Context, limit, offset int) ([]int, error) { return nil, nil },
		EachFn: func(ctx context.Context, fn func(int) error) error {
			if err := fn(10); err != nil {
				return err
			}
			if err := fn(20); err != nil {
				return err
			}
			return boom
		},
	}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, Source[int](src), Params{Page: 1, PerPage: 10},
		Options{DefaultPerPage: 10, MaxPerPage: 10, StreamThreshold: 3})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want cursor error", err)
	}

	// The rows served before the failure are already on the wire; the
	// array is left unterminated.
	if got := rec.Body.String(); got != "[10,20" {
		t.Errorf("partial body = %q, want [10,20", got)
	}
}

func TestRespond_StreamEarlyErrorLeavesBodyUnwritten(t *testing.T) {
	boom := errors.New("query failed")
	src := SourceFuncs[int]{
		CountFn: func(ctx context.Context) (int64, error) { return 100, nil },
		PageFn:  func(ctx context.Context, limit, offset int) ([]int, error) { return nil, nil },
		EachFn:  func(ctx context.Context, fn func(int) error) error { return boom },
	}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, Source[int](src), Params{Page: 1, PerPage: 10},
		Options{DefaultPerPage: 10, MaxPerPage: 10, StreamThreshold: 3})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want query error", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want nothing written so the caller can respond with the error", rec.Body.String())
	}
}

func TestRespond_StreamEmptySetEncodesEmptyArray(t *testing.T) {
	src := SourceFuncs[int]{
		CountFn: func(ctx context.Context) (int64, error) { return 100, nil },
		PageFn:  func(ctx context.Context, limit, offset int) ([]int, error) { return nil, nil },
		EachFn:  func(ctx context.Context, fn func(int) error) error { return nil },
	}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, Source[int](src), Params{Page: 1, PerPage: 10},
		Options{DefaultPerPage: 10, MaxPerPage: 10, StreamThreshold: 3})
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if got := rec.Body.String(); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestRespond_CountErrorPropagates(t *testing.T) {
	boom := errors.New("count failed")
	src := SourceFuncs[int]{
		CountFn: func(ctx context.Context) (int64, error) { return 0, boom },
		PageFn:  func(ctx context.Context, limit, offset int) ([]int, error) { return nil, nil },
		EachFn:  func(ctx context.Context, fn func(int) error) error { return nil },
	}

	rec := httptest.NewRecorder()
	err := Respond(context.Background(), rec, Source[int](src), Params{Page: 1, PerPage: 10}, DefaultOptions)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want count error", err)
	}
}
