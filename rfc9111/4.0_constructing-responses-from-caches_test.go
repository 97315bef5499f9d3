package rfc9111

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestConstructResponse(t *testing.T) {
	now := time.Now()
	r := &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("Hello, world")),
		Request:    &http.Request{},
	}
	r.Header.Add("Test", "header")
	r.Header.Set("Date", now.UTC().Format(imfDateLayout))

	res := constructResponse(r, now, now)

	if res.StatusCode != 200 {
		t.Fatalf("Status code is %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Error reading body %v", err)
	}
	if string(body) != "Hello, world" {
		t.Fatalf("Body is %s", body)
	}
	if res.Header.Get("Test") != "header" {
		t.Fatalf("Test header is %s", res.Header.Get("Test"))
	}
	if res.Header.Get("Age") == "" {
		t.Fatalf("Age header was not set")
	}
}

func TestMustWriteThroughUnsafeMethod(t *testing.T) {
	req := &http.Request{Method: "POST"}
	res := &http.Response{Request: req}
	if !mustWriteThrough(req, res) {
		t.Fatal("expected unsafe method to require write-through")
	}
}

func TestMustWriteThroughSafeMethod(t *testing.T) {
	req := &http.Request{Method: "GET"}
	res := &http.Response{Request: req}
	if mustWriteThrough(req, res) {
		t.Fatal("expected safe method not to require write-through")
	}
}
