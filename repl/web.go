package repl

import (
	"bytes"
	"encoding/json"
	"html"

	"github.com/coyove/l3"
	"github.com/valyala/fasthttp"
)

type webResult struct {
	Result string
	Error  bool `json:",omitempty"`
}

// Handler serves s as a web page. GET renders an input form and the primitive
// table, POST with a cmd form value evaluates it and answers with JSON, and
// POST with all=1 lists the primitives.
func Handler(s *Session, title string) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if ctx.IsGet() {
			p := bytes.Buffer{}
			p.WriteString(`<!doctype html><html><meta charset="UTF-8"><title>REPL: ` + html.EscapeString(title) + `</title>
<style>
	body { font-size: 16px }
	* {box-sizing: border-box; font-family: monospace;}
	.results div:nth-child(even) {background: #eee}
	.results .result {margin-left:1em;white-space:pre-wrap}
	.results .error {color: #c00}
</style>
<form onsubmit="var _=this;post('',{cmd:this.querySelector('#cmd').value},function(obj, data){
	var el = document.createElement('div');
	el.innerHTML = '<b></b><div class=result></div>';
	el.firstChild.innerText = data.cmd;
	el.lastChild.innerText = obj.Result;
	if (obj.Error) el.lastChild.className += ' error';
	_.nextElementSibling.insertBefore(el,_.nextElementSibling.firstChild)
});return false;">
<input id=cmd style="width:100%;padding:0.5em;margin:0.5em 0;font-size:16px">
<input type=submit style="display:none">
</form>
<div class=results></div>
<script>
function post(url, data, cb) {
	var xml = new XMLHttpRequest(), q = "";
	xml.onreadystatechange = function() {
		if (xml.readyState == 4 && xml.status == 200) cb(JSON.parse(xml.responseText), data)
	}
	xml.open("POST", url, true);
	xml.setRequestHeader('Content-Type', 'application/x-www-form-urlencoded');
	for (var k in data) if (data.hasOwnProperty(k)) q += '&' + k + '=' + encodeURIComponent(data[k]);
	xml.send(q);
}
</script>
<pre>`)
			p.WriteString(html.EscapeString(Help + "\n\n" + l3.FormatBuiltins()))
			p.WriteString("</pre></html>")
			ctx.SetContentType("text/html; charset=utf-8")
			ctx.SetBody(p.Bytes())
			return
		}

		if !ctx.IsPost() {
			ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
			return
		}

		if len(ctx.FormValue("all")) > 0 {
			keys := []map[string]string{}
			for _, b := range l3.Builtins() {
				keys = append(keys, map[string]string{"key": b.Op.String(), "doc": b.Sig})
			}
			writeJSON(ctx, keys)
			return
		}

		res, err := s.Eval(string(ctx.FormValue("cmd")))
		if err == ErrQuit {
			res, err = "", nil
		}
		resp := webResult{Result: res}
		if err != nil {
			resp = webResult{Result: err.Error(), Error: true}
		}
		writeJSON(ctx, resp)
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	buf, _ := json.Marshal(v)
	ctx.SetContentType("application/json")
	ctx.SetBody(buf)
}

// ListenAndServe serves the web REPL at addr until the listener fails.
func ListenAndServe(addr string, s *Session, title string) error {
	return fasthttp.ListenAndServe(addr, Handler(s, title))
}
