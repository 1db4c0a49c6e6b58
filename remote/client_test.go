package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tvoss/image-measure-go/domain/measure"
)

func TestClient_MeasurePayloadShape(t *testing.T) {
	var got MeasureRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/measure" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(MeasureResponse{Measurement: &measure.Measurement{TotalPixels: 20}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	req := MeasureRequest{
		Points: []measure.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		Closed: false,
		Scale:  ScalePayload{UnitName: "px", UnitsPerPixel: 1},
	}
	m, err := c.Measure(context.Background(), req)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if m.TotalPixels != 20 {
		t.Fatalf("expected total 20, got %v", m.TotalPixels)
	}
	if len(got.Points) != 3 || got.Points[1] != (measure.Point{X: 10, Y: 0}) || got.Closed {
		t.Fatalf("payload mismatch: %+v", got)
	}
	if got.Scale.UnitName != "px" || got.Scale.UnitsPerPixel != 1 {
		t.Fatalf("scale payload mismatch: %+v", got.Scale)
	}
}

func TestClient_MeasureErrorDetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"at least three points are required to close a path"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Measure(context.Background(), MeasureRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "at least three points are required to close a path" {
		t.Fatalf("detail not surfaced verbatim: %q", err.Error())
	}
}

func TestClient_MeasureMissingMeasurementIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"session_id":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	if _, err := c.Measure(context.Background(), MeasureRequest{}); err == nil {
		t.Fatalf("ostensibly successful response without measurement must fail")
	}
}

func TestClient_UploadSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		if hdr.Filename != "plan.png" {
			t.Errorf("unexpected filename %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(UploadResult{URL: "/uploads/abc.png", Filename: hdr.Filename})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	res, err := c.Upload(context.Background(), "plan.png", strings.NewReader("not-a-real-png"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.URL != "/uploads/abc.png" {
		t.Fatalf("unexpected url %q", res.URL)
	}
}

func TestClient_UploadFailureDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		w.Write([]byte(`{"detail":"bad file type"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Upload(context.Background(), "x.txt", strings.NewReader("nope"))
	if err == nil || err.Error() != "bad file type" {
		t.Fatalf("expected verbatim detail, got %v", err)
	}
}

func TestClient_UploadMissingAddressIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"filename":"plan.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	if _, err := c.Upload(context.Background(), "plan.png", strings.NewReader("x")); err == nil {
		t.Fatalf("success response without address must fail")
	}
}
