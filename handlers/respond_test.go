package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/models"
)

func TestDecodeJSON_SingleValue(t *testing.T) {
	cases := []struct {
		body string
		ok   bool
	}{
		{`{"name":"Roadmap"}`, true},
		{"{\"name\":\"Roadmap\"}\n  ", true},
		{`{"name":"Roadmap"} trailing`, false},
		{`{"name":"Roadmap"}{"name":"Other"}`, false},
		{`{"name":"Roadmap"} 5`, false},
		{``, false},
	}
	for _, c := range cases {
		var v struct {
			Name string `json:"name"`
		}
		req := httptest.NewRequest("POST", "/", strings.NewReader(c.body))
		err := decodeJSON(httptest.NewRecorder(), req, &v)
		if c.ok && err != nil {
			t.Fatalf("%q: expected no error, got %v", c.body, err)
		}
		if !c.ok && !errors.Is(err, models.ErrBadRequest) {
			t.Fatalf("%q: expected bad request, got %v", c.body, err)
		}
		if c.ok && v.Name != "Roadmap" {
			t.Fatalf("%q: expected name Roadmap, got %q", c.body, v.Name)
		}
	}
}
