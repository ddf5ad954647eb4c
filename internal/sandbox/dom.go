package sandbox

import (
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (e *env) setupGlobals() {
	vm := e.vm
	for _, name := range []string{"require", "process", "module", "exports"} {
		_ = vm.Set(name, goja.Undefined())
	}
	_ = vm.Set("window", vm.GlobalObject())

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(level, e.consoleFunc(level))
	}
	_ = vm.Set("console", console)

	_ = vm.Set("alert", func(call goja.FunctionCall) goja.Value {
		e.alerts = append(e.alerts, joinArgs(call.Arguments))
		return goja.Undefined()
	})
	inert := func(goja.FunctionCall) goja.Value { return vm.ToValue(0) }
	for _, name := range []string{"setTimeout", "setInterval", "clearTimeout", "clearInterval", "requestAnimationFrame"} {
		_ = vm.Set(name, inert)
	}

	_ = vm.Set("document", e.documentObject())
}

func (e *env) consoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		e.log(level, joinArgs(call.Arguments))
		return goja.Undefined()
	}
}

func joinArgs(args []goja.Value) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

func (e *env) documentObject() *goja.Object {
	vm := e.vm
	doc := vm.NewObject()
	root := e.doc.Selection

	_ = doc.Set("getElementById", func(id string) goja.Value {
		return e.first(root.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, _ := s.Attr("id")
			return v == id
		}))
	})
	_ = doc.Set("querySelector", func(sel string) goja.Value {
		return e.first(root.Find(sel))
	})
	_ = doc.Set("querySelectorAll", func(sel string) goja.Value {
		return e.all(root.Find(sel))
	})
	_ = doc.Set("getElementsByTagName", func(tag string) goja.Value {
		return e.all(root.Find(tag))
	})
	_ = doc.Set("getElementsByClassName", func(name string) goja.Value {
		return e.all(root.Find("." + name))
	})
	_ = doc.Set("createElement", func(tag string) goja.Value {
		tag = strings.ToLower(tag)
		n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
		return e.wrap(n)
	})
	_ = doc.Set("createTextNode", func(text string) goja.Value {
		return e.wrap(&html.Node{Type: html.TextNode, Data: text})
	})
	_ = doc.Set("addEventListener", e.listen)
	e.getter(doc, "body", func() goja.Value { return e.first(root.Find("body")) })
	e.getter(doc, "head", func() goja.Value { return e.first(root.Find("head")) })
	e.getter(doc, "documentElement", func() goja.Value { return e.first(root.Find("html")) })
	return doc
}

func (e *env) listen(goja.FunctionCall) goja.Value {
	e.listeners++
	return goja.Undefined()
}

func (e *env) first(s *goquery.Selection) goja.Value {
	if s.Length() == 0 {
		return goja.Null()
	}
	return e.wrap(s.Get(0))
}

func (e *env) all(s *goquery.Selection) goja.Value {
	out := make([]interface{}, 0, s.Length())
	for _, n := range s.Nodes {
		out = append(out, e.wrap(n))
	}
	return e.vm.NewArray(out...)
}

func (e *env) getter(o *goja.Object, name string, get func() goja.Value) {
	_ = o.DefineAccessorProperty(name, e.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return get()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

func (e *env) accessor(o *goja.Object, name string, get func() goja.Value, set func(string)) {
	_ = o.DefineAccessorProperty(name,
		e.vm.ToValue(func(goja.FunctionCall) goja.Value { return get() }),
		e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0).String())
			return goja.Undefined()
		}),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
}

// wrap returns the script object for n, creating it once per node so
// identity comparisons and style objects hold across lookups.
func (e *env) wrap(n *html.Node) *goja.Object {
	if o, ok := e.elems[n]; ok {
		return o
	}
	vm := e.vm
	o := vm.NewObject()
	e.elems[n] = o
	sel := func() *goquery.Selection { return goquery.NewDocumentFromNode(n).Selection }

	if n.Type == html.TextNode {
		e.accessor(o, "textContent", func() goja.Value { return vm.ToValue(n.Data) }, func(v string) { n.Data = v })
		return o
	}

	_ = o.Set("tagName", strings.ToUpper(n.Data))
	_ = o.Set("nodeName", strings.ToUpper(n.Data))
	e.accessor(o, "textContent", func() goja.Value { return vm.ToValue(sel().Text()) }, func(v string) { sel().SetText(v) })
	e.accessor(o, "innerText", func() goja.Value { return vm.ToValue(sel().Text()) }, func(v string) { sel().SetText(v) })
	e.accessor(o, "innerHTML", func() goja.Value {
		h, _ := sel().Html()
		return vm.ToValue(h)
	}, func(v string) { sel().SetHtml(v) })
	e.accessor(o, "id", func() goja.Value { return vm.ToValue(sel().AttrOr("id", "")) }, func(v string) { sel().SetAttr("id", v) })
	e.accessor(o, "className", func() goja.Value { return vm.ToValue(sel().AttrOr("class", "")) }, func(v string) { sel().SetAttr("class", v) })
	e.getter(o, "parentElement", func() goja.Value {
		if n.Parent == nil || n.Parent.Type != html.ElementNode {
			return goja.Null()
		}
		return e.wrap(n.Parent)
	})
	e.getter(o, "children", func() goja.Value { return e.all(sel().Children()) })

	style := vm.NewObject()
	e.styles[n] = style
	_ = o.Set("style", style)

	_ = o.Set("getAttribute", func(name string) goja.Value {
		if v, ok := sel().Attr(name); ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	})
	_ = o.Set("setAttribute", func(name, value string) { sel().SetAttr(name, value) })
	_ = o.Set("removeAttribute", func(name string) { sel().RemoveAttr(name) })
	_ = o.Set("querySelector", func(s string) goja.Value { return e.first(sel().Find(s)) })
	_ = o.Set("querySelectorAll", func(s string) goja.Value { return e.all(sel().Find(s)) })
	_ = o.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child, _ := call.Argument(0).(*goja.Object)
		c := e.nodeOf(child)
		if c == nil {
			panic(vm.NewTypeError("appendChild: argument is not a node"))
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
		return child
	})
	_ = o.Set("remove", func() {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	})
	_ = o.Set("addEventListener", e.listen)
	_ = o.Set("click", func() {})
	return o
}

func (e *env) nodeOf(o *goja.Object) *html.Node {
	if o == nil {
		return nil
	}
	for n, w := range e.elems {
		if w == o {
			return n
		}
	}
	return nil
}

// flushStyles copies style objects into style attributes.
func (e *env) flushStyles() {
	for n, style := range e.styles {
		keys := style.Keys()
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			v := style.Get(k)
			if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
				continue
			}
			b.WriteString(kebab(k))
			b.WriteString(":")
			b.WriteString(v.String())
			b.WriteString(";")
		}
		goquery.NewDocumentFromNode(n).SetAttr("style", b.String())
	}
}

func kebab(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
