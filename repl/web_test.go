package repl

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/coyove/l3"
	"github.com/valyala/fasthttp"
)

func post(h fasthttp.RequestHandler, form url.Values) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.Header.SetContentType("application/x-www-form-urlencoded")
	ctx.Request.SetBodyString(form.Encode())
	h(ctx)
	return ctx
}

func TestHandler(t *testing.T) {
	h := Handler(NewSession(l3.New()), "test")

	var res webResult
	ctx := post(h, url.Values{"cmd": {"(define sq (lambda (x) (* x x)))"}})
	if err := json.Unmarshal(ctx.Response.Body(), &res); err != nil || res.Result != "sq" || res.Error {
		t.Fatal(string(ctx.Response.Body()), err)
	}

	res = webResult{}
	ctx = post(h, url.Values{"cmd": {"(sq 12)"}})
	if err := json.Unmarshal(ctx.Response.Body(), &res); err != nil || res.Result != "144" {
		t.Fatal(string(ctx.Response.Body()), err)
	}

	res = webResult{}
	ctx = post(h, url.Values{"cmd": {"(car 1)"}})
	if err := json.Unmarshal(ctx.Response.Body(), &res); err != nil || !res.Error || !strings.HasPrefix(res.Result, "type mismatch") {
		t.Fatal(string(ctx.Response.Body()), err)
	}

	var keys []map[string]string
	ctx = post(h, url.Values{"all": {"1"}})
	if err := json.Unmarshal(ctx.Response.Body(), &keys); err != nil || len(keys) != len(l3.Builtins()) || keys[0]["key"] != "+" {
		t.Fatal(string(ctx.Response.Body()), err)
	}

	ctx = &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	h(ctx)
	if body := string(ctx.Response.Body()); !strings.Contains(body, "<title>REPL: test</title>") || !strings.Contains(body, "(eq? a b)") {
		t.Fatal(body)
	}

	ctx = &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodDelete)
	h(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Fatal(ctx.Response.StatusCode())
	}
}
