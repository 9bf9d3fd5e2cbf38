package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/gram"
	"github.com/npillmayer/gram/server"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTracing(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.SyntaxTracer.SetTraceLevel(tracing.LevelInfo)
	return teardown
}

func sumGrammar() *gram.Grammar {
	g := gram.New("sum")
	g.Term("int", `[0-9]+`).As(func(text string) (any, error) {
		return strconv.Atoi(text)
	})
	g.Literal("+", "+").Prec(1).Assoc(gram.Left)
	g.Rule("expr").Add(gram.Symbol("int")).AsValue()
	g.Rule("expr").Add(gram.Symbol("expr"), gram.Symbol("+"), gram.Symbol("expr")).As(func(args []any) any {
		return args[0].(int) + args[2].(int)
	})
	g.Start("expr")
	return g
}

func TestHandleParse(t *testing.T) {
	defer setupTracing(t)()
	srv := server.New(sumGrammar())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/parse", "application/json", strings.NewReader(`{"input":"1+2+3"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var body struct {
		Result float64 `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Result != 6 {
		t.Fatalf("want 6, got %v", body.Result)
	}
}

func TestHandleParseError(t *testing.T) {
	defer setupTracing(t)()
	srv := server.New(sumGrammar())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/parse", "application/json", strings.NewReader(`{"input":"1+"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", resp.StatusCode)
	}
}
