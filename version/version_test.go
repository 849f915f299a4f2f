package version

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"1.2.3", Version{1, 2, 3, ""}},
		{"0.0.0-pre-release", Version{0, 0, 0, "pre-release"}},
		{"10.0.7-rc1", Version{10, 0, 7, "rc1"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "1.2", "1.2.x", "a.b.c", "1.2.3.4", "-1.0.0"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalid", in, err)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.1.1", "1.1.2", -1},
		{"1.0.0", "1.0.0-beta", 1},
		{"1.0.0-beta", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0-beta", "1.0.0-beta", 0},
		{"0.0.0-pre-release", "0.0.1", -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := Compare(MustParse(tt.a), MustParse(tt.b)); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
	if !IsOutdated(MustParse("0.9.0"), MustParse("1.0.0")) {
		t.Error("0.9.0 should be outdated against 1.0.0")
	}
	if IsOutdated(MustParse("1.0.0"), MustParse("1.0.0-rc1")) {
		t.Error("release should not be outdated against its rc")
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/current_version" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer anon" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"versions":{"major":1,"minor":4,"patch":2,"meta":null}}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", "anon", time.Second)
	v, err := f.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if v != (Version{1, 4, 2, ""}) {
		t.Errorf("latest = %+v", v)
	}

	f.APIKey = "wrong"
	if _, err := f.Latest(context.Background()); err == nil {
		t.Error("expected error on 401")
	}
}

type stubFetcher struct {
	v   Version
	err error
}

func (s stubFetcher) Latest(context.Context) (Version, error) { return s.v, s.err }

func TestCheckerFailClosed(t *testing.T) {
	tests := []struct {
		name     string
		checker  Checker
		outdated bool
		failed   bool
	}{
		{"up to date", Checker{Local: "1.0.0", Fetcher: stubFetcher{v: MustParse("1.0.0")}}, false, false},
		{"newer local", Checker{Local: "1.1.0", Fetcher: stubFetcher{v: MustParse("1.0.0")}}, false, false},
		{"outdated", Checker{Local: "0.0.0-pre-release", Fetcher: stubFetcher{v: MustParse("0.1.0")}}, true, false},
		{"fetch error", Checker{Local: "1.0.0", Fetcher: stubFetcher{err: errors.New("offline")}}, true, true},
		{"bad local", Checker{Local: "dev", Fetcher: stubFetcher{v: MustParse("1.0.0")}}, true, true},
		{"no fetcher", Checker{Local: "1.0.0"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.checker.Check(context.Background())
			if res.Outdated != tt.outdated {
				t.Errorf("outdated = %v, want %v", res.Outdated, tt.outdated)
			}
			if failed := errors.Is(res.Err, ErrCheckFailed); failed != tt.failed {
				t.Errorf("err = %v, want failed=%v", res.Err, tt.failed)
			}
			if tt.failed && res.Latest != "unknown" {
				t.Errorf("latest = %q, want unknown", res.Latest)
			}
		})
	}
}
