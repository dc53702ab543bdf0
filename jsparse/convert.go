package jsparse

import (
	"strings"

	"github.com/chaifriendly/lint/estree"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/token"
	"github.com/go-sourcemap/sourcemap"
)

// converter builds estree nodes from a goja program. When sm is set, code is
// transpiled output and positions are mapped back into original.
type converter struct {
	base     int
	code     string
	gen      *lineIndex
	original string
	orig     *lineIndex
	sm       *sourcemap.Consumer
	unmapped map[*estree.Node]bool

	// generated offsets of each node, and the generated start of the
	// expression each folded import reference replaced
	genRange    map[*estree.Node][2]int
	importLeads map[*estree.Node]int
}

func newConverter(code string, sm *sourcemap.Consumer, original string) *converter {
	c := &converter{
		base:     1, // goja offsets are 1-based without a file set
		code:     code,
		gen:      newLineIndex(code),
		sm:       sm,
		unmapped: make(map[*estree.Node]bool),
	}
	if sm != nil {
		c.genRange = make(map[*estree.Node][2]int)
		c.importLeads = make(map[*estree.Node]int)
		c.original = original
		c.orig = newLineIndex(original)
	}
	return c
}

func (c *converter) node(typ estree.NodeType, idx0, idx1 file.Idx) *estree.Node {
	start := c.gen.clamp(int(idx0) - c.base)
	end := max(start, c.gen.clamp(int(idx1)-c.base))
	n := estree.NewNode(typ, start, end)

	if c.sm == nil {
		n.Loc = c.location(c.gen, start, end)
		return n
	}
	c.genRange[n] = [2]int{start, end}

	sl, sc, ok := c.mapPosition(start)
	if !ok {
		c.unmapped[n] = true
		return n
	}
	origStart := c.orig.offset(sl, sc)

	// Prefer the generated length when the text survived transpiling unchanged.
	length := end - start
	origEnd := -1
	if strings.HasPrefix(c.original[origStart:], c.code[start:end]) {
		origEnd = origStart + length
	} else if el, ec, ok := c.mapPosition(end); ok {
		if mapped := c.orig.offset(el, ec); mapped >= origStart {
			origEnd = mapped
		}
	}
	if origEnd < 0 {
		origEnd = c.orig.clamp(origStart + length)
	}

	n.Range = [2]int{origStart, origEnd}
	n.Loc = c.location(c.orig, origStart, origEnd)
	return n
}

func (c *converter) location(li *lineIndex, start, end int) *estree.SourceLocation {
	sl, sc := li.position(start)
	el, ec := li.position(end)
	return &estree.SourceLocation{
		Start: estree.Position{Line: sl, Column: sc},
		End:   estree.Position{Line: el, Column: ec},
	}
}

func (c *converter) mapPosition(offset int) (line, column int, ok bool) {
	gl, gc := c.gen.position(offset)
	_, _, line, column, ok = c.sm.Source(gl, gc)
	return line, column, ok
}

// importPrefix starts the names esbuild gives to CommonJS import namespaces.
const importPrefix = "import_"

// importRef recognizes esbuild's rewrite of an imported binding: import_mod.name,
// or (0, import_mod.name) in callee position.
func (c *converter) importRef(e ast.Expression) (*ast.DotExpression, bool) {
	if c.sm == nil {
		return nil, false
	}
	if seq, ok := e.(*ast.SequenceExpression); ok {
		if len(seq.Sequence) != 2 {
			return nil, false
		}
		if zero, ok := seq.Sequence[0].(*ast.NumberLiteral); !ok || zero.Literal != "0" {
			return nil, false
		}
		e = seq.Sequence[1]
	}
	dot, ok := e.(*ast.DotExpression)
	if !ok {
		return nil, false
	}
	ns, ok := dot.Left.(*ast.Identifier)
	if !ok || !strings.HasPrefix(ns.Name.String(), importPrefix) {
		return nil, false
	}
	return dot, true
}

// importIdentifier turns a rewritten import reference back into the identifier
// the original source used. ref is the whole rewritten expression.
func (c *converter) importIdentifier(ref ast.Expression, dot *ast.DotExpression) *estree.Node {
	n := c.node(estree.Identifier, dot.Idx0(), dot.Idx1())
	c.importLeads[n] = c.gen.clamp(int(ref.Idx0()) - c.base)

	name := dot.Identifier.Name.String()
	gl, gc := c.gen.position(int(dot.Idx0()) - c.base)
	if _, mapped, _, _, ok := c.sm.Source(gl, gc); ok && mapped != "" {
		name = mapped
	} else if name == "default" {
		name = strings.TrimPrefix(dot.Left.(*ast.Identifier).Name.String(), importPrefix)
	}
	n.Name = name

	if !c.unmapped[n] && strings.HasPrefix(c.original[n.Range[0]:], name) {
		n.Range[1] = n.Range[0] + len(name)
		n.Loc = c.location(c.orig, n.Range[0], n.Range[1])
	}
	return n
}

// alignImportStarts moves the start of every node that begins at a folded
// import reference onto that reference. esbuild maps the generated
// "(0, import_mod.name)" prefix to the import declaration, so an enclosing
// call or statement would otherwise point at the import line.
func (c *converter) alignImportStarts(n *estree.Node) {
	first := true
	var lead *estree.Node
	for _, key := range n.Keys() {
		children := n.Children(key)
		if child := n.Child(key); child != nil {
			children = []*estree.Node{child}
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			c.alignImportStarts(child)
			if first {
				lead, first = child, false
			}
		}
	}

	start, ok := c.importLeads[lead]
	if !ok || c.unmapped[lead] || c.genRange[n][0] != start {
		return
	}
	c.importLeads[n] = start

	end := n.Range[1]
	if c.unmapped[n] {
		end = lead.Range[1]
		if l, col, ok := c.mapPosition(c.genRange[n][1]); ok {
			end = max(end, c.orig.offset(l, col))
		}
		delete(c.unmapped, n)
	}
	n.Range = [2]int{lead.Range[0], max(lead.Range[0], end)}
	n.Loc = c.location(c.orig, n.Range[0], n.Range[1])
}

// dynamicImport recognizes esbuild's lowering of import(x), which goja cannot
// parse: Promise.resolve().then(() => require(x)), with the require call
// possibly wrapped in __toESM. It returns the require call.
func (c *converter) dynamicImport(e *ast.CallExpression) (*ast.CallExpression, bool) {
	if c.sm == nil || len(e.ArgumentList) != 1 {
		return nil, false
	}
	then, ok := e.Callee.(*ast.DotExpression)
	if !ok || then.Identifier.Name != "then" {
		return nil, false
	}
	resolve, ok := then.Left.(*ast.CallExpression)
	if !ok || len(resolve.ArgumentList) != 0 || !isDotName(resolve.Callee, "Promise", "resolve") {
		return nil, false
	}
	arrow, ok := e.ArgumentList[0].(*ast.ArrowFunctionLiteral)
	if !ok || arrow.ParameterList == nil || len(arrow.ParameterList.List) != 0 || arrow.ParameterList.Rest != nil {
		return nil, false
	}
	body, ok := arrow.Body.(*ast.ExpressionBody)
	if !ok {
		return nil, false
	}

	inner := body.Expression
	if wrap, ok := inner.(*ast.CallExpression); ok && len(wrap.ArgumentList) > 0 {
		if id, ok := wrap.Callee.(*ast.Identifier); ok && strings.HasPrefix(id.Name.String(), "__toESM") {
			inner = wrap.ArgumentList[0]
		}
	}
	req, ok := inner.(*ast.CallExpression)
	if !ok || len(req.ArgumentList) != 1 {
		return nil, false
	}
	if id, ok := req.Callee.(*ast.Identifier); !ok || (id.Name != "require" && id.Name != "__require") {
		return nil, false
	}

	// a literal Promise.resolve().then(...) in the source stays as written
	sl, sc, ok := c.mapPosition(c.gen.clamp(int(e.Idx0()) - c.base))
	if !ok || !strings.HasPrefix(c.original[c.orig.offset(sl, sc):], "import") {
		return nil, false
	}
	return req, true
}

func isDotName(e ast.Expression, object, property string) bool {
	dot, ok := e.(*ast.DotExpression)
	if !ok || dot.Identifier.Name.String() != property {
		return false
	}
	id, ok := dot.Left.(*ast.Identifier)
	return ok && id.Name.String() == object
}

// importExpression builds the ImportExpression a lowered import(x) came from.
func (c *converter) importExpression(e, req *ast.CallExpression) *estree.Node {
	n := c.node(estree.ImportExpression, e.Idx0(), e.Idx1()).
		SetChild(estree.KeySource, c.expr(req.ArgumentList[0]))
	if c.unmapped[n] {
		return n
	}

	// The generated call ends in several parentheses; the require call's own
	// parenthesis is the one mapped to the original import(...).
	l, col, ok := c.mapPosition(c.gen.clamp(int(req.RightParenthesis) - c.base))
	if !ok {
		return n
	}
	if end := c.orig.offset(l, col); end >= n.Range[0] && end < len(c.original) && c.original[end] == ')' {
		n.Range[1] = end + 1
		n.Loc = c.location(c.orig, n.Range[0], n.Range[1])
	}
	return n
}

func (c *converter) program(p *ast.Program) *estree.Node {
	text := c.code
	li := c.gen
	if c.sm != nil {
		text = c.original
		li = c.orig
	}
	root := estree.NewNode(estree.Program, 0, len(text))
	root.Loc = c.location(li, 0, len(text))

	body := c.statements(p.Body, true)
	if c.sm != nil {
		for _, stmt := range body {
			c.alignImportStarts(stmt)
		}
		kept := body[:0]
		for _, stmt := range body {
			if !c.unmapped[stmt] {
				kept = append(kept, stmt)
			}
		}
		body = kept
	}
	root.SetChildren(estree.KeyBody, body)
	return root
}

// statements converts a statement list. With directives set, the leading
// string-literal expression statements are marked as the directive prologue.
func (c *converter) statements(list []ast.Statement, directives bool) []*estree.Node {
	nodes := make([]*estree.Node, 0, len(list))
	prologue := directives
	for _, s := range list {
		n := c.statement(s)
		if n == nil {
			continue
		}
		if prologue {
			prologue = false
			if es, ok := s.(*ast.ExpressionStatement); ok {
				if lit, ok := es.Expression.(*ast.StringLiteral); ok && len(lit.Literal) >= 2 {
					n.SetDirective(lit.Literal[1 : len(lit.Literal)-1])
					prologue = true
				}
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (c *converter) block(b *ast.BlockStatement, directives bool) *estree.Node {
	if b == nil {
		return nil
	}
	n := c.node(estree.BlockStatement, b.Idx0(), b.Idx1())
	return n.SetChildren(estree.KeyBody, c.statements(b.List, directives))
}

func (c *converter) statement(s ast.Statement) *estree.Node {
	switch s := s.(type) {
	case nil:
		return nil
	case *ast.BlockStatement:
		return c.block(s, false)
	case *ast.BranchStatement:
		typ := estree.BreakStatement
		if s.Token == token.CONTINUE {
			typ = estree.ContinueStatement
		}
		n := c.node(typ, s.Idx0(), s.Idx1())
		if s.Label != nil {
			n.SetChild("label", c.ident(s.Label))
		}
		return n
	case *ast.DebuggerStatement:
		return c.node(estree.DebuggerStatement, s.Idx0(), s.Idx1())
	case *ast.DoWhileStatement:
		return c.node(estree.DoWhileStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyBody, c.statement(s.Body)).
			SetChild(estree.KeyTest, c.expr(s.Test))
	case *ast.EmptyStatement:
		return c.node(estree.EmptyStatement, s.Idx0(), s.Idx1())
	case *ast.ExpressionStatement:
		end := s.Idx1()
		if off := int(end) - c.base; off >= 0 && off < len(c.code) && c.code[off] == ';' {
			end++
		}
		return c.node(estree.ExpressionStatement, s.Idx0(), end).
			SetChild(estree.KeyExpression, c.expr(s.Expression))
	case *ast.ForInStatement:
		return c.node(estree.ForInStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyLeft, c.forInto(s.Into)).
			SetChild(estree.KeyRight, c.expr(s.Source)).
			SetChild(estree.KeyBody, c.statement(s.Body))
	case *ast.ForOfStatement:
		return c.node(estree.ForOfStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyLeft, c.forInto(s.Into)).
			SetChild(estree.KeyRight, c.expr(s.Source)).
			SetChild(estree.KeyBody, c.statement(s.Body))
	case *ast.ForStatement:
		return c.node(estree.ForStatement, s.Idx0(), s.Idx1()).
			SetChild("init", c.forInit(s.Initializer)).
			SetChild(estree.KeyTest, c.expr(s.Test)).
			SetChild("update", c.expr(s.Update)).
			SetChild(estree.KeyBody, c.statement(s.Body))
	case *ast.IfStatement:
		return c.node(estree.IfStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyTest, c.expr(s.Test)).
			SetChild(estree.KeyConsequent, c.statement(s.Consequent)).
			SetChild(estree.KeyAlternate, c.statement(s.Alternate))
	case *ast.LabelledStatement:
		return c.node(estree.LabeledStatement, s.Idx0(), s.Idx1()).
			SetChild("label", c.ident(s.Label)).
			SetChild(estree.KeyBody, c.statement(s.Statement))
	case *ast.ReturnStatement:
		return c.node(estree.ReturnStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyArgument, c.expr(s.Argument))
	case *ast.SwitchStatement:
		cases := make([]*estree.Node, 0, len(s.Body))
		for _, cs := range s.Body {
			cases = append(cases, c.switchCase(cs))
		}
		return c.node(estree.SwitchStatement, s.Idx0(), s.Idx1()).
			SetChild("discriminant", c.expr(s.Discriminant)).
			SetChildren("cases", cases)
	case *ast.ThrowStatement:
		return c.node(estree.ThrowStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyArgument, c.expr(s.Argument))
	case *ast.TryStatement:
		n := c.node(estree.TryStatement, s.Idx0(), s.Idx1()).
			SetChild("block", c.block(s.Body, false)).
			SetChild("finalizer", c.block(s.Finally, false))
		if s.Catch != nil {
			handler := c.node(estree.CatchClause, s.Catch.Idx0(), s.Catch.Idx1()).
				SetChild("body", c.block(s.Catch.Body, false))
			if s.Catch.Parameter != nil {
				handler.SetChild("param", c.pattern(s.Catch.Parameter))
			}
			n.SetChild("handler", handler)
		}
		return n
	case *ast.VariableStatement:
		return c.declaration("var", s.Idx0(), s.Idx1(), s.List)
	case *ast.LexicalDeclaration:
		return c.declaration(s.Token.String(), s.Idx0(), s.Idx1(), s.List)
	case *ast.WhileStatement:
		return c.node(estree.WhileStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyTest, c.expr(s.Test)).
			SetChild(estree.KeyBody, c.statement(s.Body))
	case *ast.WithStatement:
		return c.node(estree.WithStatement, s.Idx0(), s.Idx1()).
			SetChild(estree.KeyObject, c.expr(s.Object)).
			SetChild(estree.KeyBody, c.statement(s.Body))
	case *ast.FunctionDeclaration:
		return c.function(estree.FunctionDeclaration, s.Function)
	case *ast.ClassDeclaration:
		return c.class(estree.ClassDeclaration, s.Class)
	case *ast.BadStatement:
		return c.node(estree.EmptyStatement, s.From, s.To)
	}
	return nil
}

func (c *converter) switchCase(cs *ast.CaseStatement) *estree.Node {
	// CaseStatement.Idx1 indexes the last consequent, which may not exist.
	var end file.Idx
	switch {
	case len(cs.Consequent) > 0:
		end = cs.Consequent[len(cs.Consequent)-1].Idx1()
	case cs.Test != nil:
		end = cs.Test.Idx1() + 1
	default:
		end = cs.Case + file.Idx(len("default:"))
	}
	return c.node(estree.SwitchCase, cs.Case, end).
		SetChild(estree.KeyTest, c.expr(cs.Test)).
		SetChildren(estree.KeyConsequent, c.statements(cs.Consequent, false))
}

func (c *converter) declaration(kind string, idx0, idx1 file.Idx, list []*ast.Binding) *estree.Node {
	declarators := make([]*estree.Node, 0, len(list))
	for _, b := range list {
		declarators = append(declarators, c.node(estree.VariableDeclarator, b.Idx0(), b.Idx1()).
			SetChild("id", c.pattern(b.Target)).
			SetChild("init", c.expr(b.Initializer)))
	}
	n := c.node(estree.VariableDeclaration, idx0, idx1).SetChildren("declarations", declarators)
	n.Kind = kind
	return n
}

func (c *converter) forInit(init ast.ForLoopInitializer) *estree.Node {
	switch init := init.(type) {
	case *ast.ForLoopInitializerExpression:
		return c.expr(init.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		return c.declaration("var", init.Var, init.Idx1(), init.List)
	case *ast.ForLoopInitializerLexicalDecl:
		decl := init.LexicalDeclaration
		return c.declaration(decl.Token.String(), decl.Idx0(), decl.Idx1(), decl.List)
	}
	return nil
}

func (c *converter) forInto(into ast.ForInto) *estree.Node {
	switch into := into.(type) {
	case *ast.ForIntoVar:
		return c.declaration("var", into.Idx0(), into.Idx1(), []*ast.Binding{into.Binding})
	case *ast.ForDeclaration:
		kind := "let"
		if into.IsConst {
			kind = "const"
		}
		declarator := c.node(estree.VariableDeclarator, into.Target.Idx0(), into.Target.Idx1()).
			SetChild("id", c.pattern(into.Target))
		n := c.node(estree.VariableDeclaration, into.Idx0(), into.Idx1()).
			SetChildren("declarations", []*estree.Node{declarator})
		n.Kind = kind
		return n
	case *ast.ForIntoExpression:
		return c.pattern(into.Expression)
	}
	return nil
}

func (c *converter) ident(id *ast.Identifier) *estree.Node {
	if id == nil {
		return nil
	}
	n := c.node(estree.Identifier, id.Idx0(), id.Idx1())
	n.Name = id.Name.String()
	return n
}

func (c *converter) exprs(list []ast.Expression) []*estree.Node {
	nodes := make([]*estree.Node, 0, len(list))
	for _, e := range list {
		nodes = append(nodes, c.expr(e))
	}
	return nodes
}

func (c *converter) function(typ estree.NodeType, fn *ast.FunctionLiteral) *estree.Node {
	if fn == nil {
		return nil
	}
	return c.node(typ, fn.Idx0(), fn.Idx1()).
		SetChild("id", c.ident(fn.Name)).
		SetChildren("params", c.params(fn.ParameterList)).
		SetChild(estree.KeyBody, c.block(fn.Body, true))
}

func (c *converter) params(pl *ast.ParameterList) []*estree.Node {
	if pl == nil {
		return nil
	}
	params := make([]*estree.Node, 0, len(pl.List)+1)
	for _, b := range pl.List {
		params = append(params, c.binding(b))
	}
	if pl.Rest != nil {
		params = append(params, c.rest(pl.Rest))
	}
	return params
}

func (c *converter) binding(b *ast.Binding) *estree.Node {
	if b.Initializer == nil {
		return c.pattern(b.Target)
	}
	return c.node(estree.AssignmentPattern, b.Idx0(), b.Idx1()).
		SetChild(estree.KeyLeft, c.pattern(b.Target)).
		SetChild(estree.KeyRight, c.expr(b.Initializer))
}

func (c *converter) rest(e ast.Expression) *estree.Node {
	return c.node(estree.RestElement, e.Idx0()-file.Idx(len("...")), e.Idx1()).
		SetChild(estree.KeyArgument, c.pattern(e))
}

// pattern converts a binding or assignment target.
func (c *converter) pattern(e ast.Expression) *estree.Node {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return c.ident(e)
	case *ast.Binding:
		return c.binding(e)
	case *ast.AssignExpression:
		return c.node(estree.AssignmentPattern, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyLeft, c.pattern(e.Left)).
			SetChild(estree.KeyRight, c.expr(e.Right))
	case *ast.ObjectPattern:
		props := make([]*estree.Node, 0, len(e.Properties)+1)
		for _, p := range e.Properties {
			props = append(props, c.property(p, true))
		}
		if e.Rest != nil {
			props = append(props, c.rest(e.Rest))
		}
		return c.node(estree.ObjectPattern, e.Idx0(), e.Idx1()).SetChildren("properties", props)
	case *ast.ArrayPattern:
		elements := make([]*estree.Node, 0, len(e.Elements)+1)
		for _, el := range e.Elements {
			elements = append(elements, c.pattern(el))
		}
		if e.Rest != nil {
			elements = append(elements, c.rest(e.Rest))
		}
		return c.node(estree.ArrayPattern, e.Idx0(), e.Idx1()).SetChildren("elements", elements)
	}
	return c.expr(e)
}

func (c *converter) propertyKey(key ast.Expression, computed bool) *estree.Node {
	if lit, ok := key.(*ast.StringLiteral); ok && !computed && !isQuoted(lit.Literal) {
		n := c.node(estree.Identifier, lit.Idx0(), lit.Idx1())
		n.Name = lit.Value.String()
		return n
	}
	return c.expr(key)
}

func (c *converter) property(p ast.Property, inPattern bool) *estree.Node {
	value := c.expr
	if inPattern {
		value = c.pattern
	}

	switch p := p.(type) {
	case *ast.SpreadElement:
		if inPattern {
			return c.rest(p.Expression)
		}
		return c.spread(p)
	case *ast.PropertyShort:
		key := c.ident(&p.Name)
		var val *estree.Node
		if p.Initializer != nil {
			val = c.node(estree.AssignmentPattern, p.Idx0(), p.Idx1()).
				SetChild(estree.KeyLeft, c.ident(&p.Name)).
				SetChild(estree.KeyRight, c.expr(p.Initializer))
		} else {
			val = c.ident(&p.Name)
		}
		n := c.node(estree.Property, p.Idx0(), p.Idx1()).
			SetChild("key", key).
			SetChild("value", val)
		n.Kind = "init"
		return n
	case *ast.PropertyKeyed:
		n := c.node(estree.Property, p.Idx0(), p.Idx1()).
			SetChild("key", c.propertyKey(p.Key, p.Computed)).
			SetChild("value", value(p.Value))
		n.Computed = p.Computed
		switch p.Kind {
		case ast.PropertyKindGet, ast.PropertyKindSet:
			n.Kind = string(p.Kind)
		default:
			n.Kind = "init"
		}
		return n
	}
	return nil
}

func (c *converter) spread(s *ast.SpreadElement) *estree.Node {
	return c.node(estree.SpreadElement, s.Idx0()-file.Idx(len("...")), s.Idx1()).
		SetChild(estree.KeyArgument, c.expr(s.Expression))
}

func (c *converter) class(typ estree.NodeType, cl *ast.ClassLiteral) *estree.Node {
	if cl == nil {
		return nil
	}

	bodyStart := cl.RightBrace
	if len(cl.Body) > 0 {
		bodyStart = cl.Body[0].Idx0()
	}
	elements := make([]*estree.Node, 0, len(cl.Body))
	for _, el := range cl.Body {
		if n := c.classElement(el); n != nil {
			elements = append(elements, n)
		}
	}
	body := c.node(estree.ClassBody, bodyStart, cl.RightBrace+1).SetChildren(estree.KeyBody, elements)

	return c.node(typ, cl.Idx0(), cl.Idx1()).
		SetChild("id", c.ident(cl.Name)).
		SetChild("superClass", c.expr(cl.SuperClass)).
		SetChild(estree.KeyBody, body)
}

func (c *converter) classElement(el ast.ClassElement) *estree.Node {
	switch el := el.(type) {
	case *ast.MethodDefinition:
		key := c.propertyKey(el.Key, el.Computed)
		kind := string(el.Kind)
		if kind == string(ast.PropertyKindMethod) && !el.Static && !el.Computed && key != nil && key.Name == "constructor" {
			kind = "constructor"
		}
		n := c.node(estree.MethodDefinition, el.Idx0(), el.Idx1()).
			SetChild("key", key).
			SetChild("value", c.function(estree.FunctionExpression, el.Body))
		n.Kind = kind
		n.Computed = el.Computed
		return n
	case *ast.FieldDefinition:
		n := c.node(estree.PropertyDefinition, el.Idx0(), el.Idx1()).
			SetChild("key", c.propertyKey(el.Key, el.Computed)).
			SetChild("value", c.expr(el.Initializer))
		n.Computed = el.Computed
		return n
	case *ast.ClassStaticBlock:
		var list []ast.Statement
		if el.Block != nil {
			list = el.Block.List
		}
		return c.node(estree.StaticBlock, el.Idx0(), el.Idx1()).
			SetChildren(estree.KeyBody, c.statements(list, false))
	}
	return nil
}

// member converts a dot or bracket access. An Optional wrapper on the object
// marks this link of the chain as optional.
func (c *converter) member(left ast.Expression, idx0, idx1 file.Idx, property *estree.Node, computed bool) *estree.Node {
	object, optional := unwrapOptional(left)
	n := c.node(estree.MemberExpression, idx0, idx1).
		SetChild(estree.KeyObject, c.expr(object)).
		SetChild(estree.KeyProperty, property)
	n.Computed = computed
	n.Optional = optional
	return n
}

func unwrapOptional(e ast.Expression) (ast.Expression, bool) {
	if opt, ok := e.(*ast.Optional); ok {
		return opt.Expression, true
	}
	return e, false
}

func (c *converter) expr(e ast.Expression) *estree.Node {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return c.ident(e)
	case *ast.PrivateIdentifier:
		n := c.node(estree.PrivateIdentifier, e.Idx0(), e.Idx1())
		n.Name = e.Name.String()
		return n
	case *ast.ThisExpression:
		return c.node(estree.ThisExpression, e.Idx0(), e.Idx1())
	case *ast.SuperExpression:
		return c.node(estree.Super, e.Idx0(), e.Idx1())
	case *ast.StringLiteral:
		n := c.node(estree.Literal, e.Idx0(), e.Idx1())
		n.Value = e.Value.String()
		n.Raw = e.Literal
		return n
	case *ast.NumberLiteral:
		n := c.node(estree.Literal, e.Idx0(), e.Idx1())
		n.Raw = e.Literal
		switch v := e.Value.(type) {
		case int64:
			n.Value = float64(v)
		default:
			n.Value = v
		}
		return n
	case *ast.BooleanLiteral:
		n := c.node(estree.Literal, e.Idx0(), e.Idx1())
		n.Value = e.Value
		n.Raw = e.Literal
		return n
	case *ast.NullLiteral:
		n := c.node(estree.Literal, e.Idx0(), e.Idx1())
		n.Raw = "null"
		return n
	case *ast.RegExpLiteral:
		n := c.node(estree.Literal, e.Idx0(), e.Idx1())
		n.Raw = e.Literal
		return n
	case *ast.TemplateLiteral:
		quasi := c.template(e)
		if e.Tag == nil {
			return quasi
		}
		return c.node(estree.TaggedTemplateExpression, e.Tag.Idx0(), e.Idx1()).
			SetChild(estree.KeyTag, c.expr(e.Tag)).
			SetChild(estree.KeyQuasi, quasi)
	case *ast.ArrayLiteral:
		elements := make([]*estree.Node, 0, len(e.Value))
		for _, el := range e.Value {
			if sp, ok := el.(*ast.SpreadElement); ok {
				elements = append(elements, c.spread(sp))
				continue
			}
			elements = append(elements, c.expr(el))
		}
		return c.node(estree.ArrayExpression, e.Idx0(), e.Idx1()).SetChildren("elements", elements)
	case *ast.ObjectLiteral:
		props := make([]*estree.Node, 0, len(e.Value))
		for _, p := range e.Value {
			if n := c.property(p, false); n != nil {
				props = append(props, n)
			}
		}
		return c.node(estree.ObjectExpression, e.Idx0(), e.Idx1()).SetChildren("properties", props)
	case *ast.ObjectPattern, *ast.ArrayPattern, *ast.Binding:
		return c.pattern(e)
	case *ast.FunctionLiteral:
		return c.function(estree.FunctionExpression, e)
	case *ast.ArrowFunctionLiteral:
		n := c.node(estree.ArrowFunctionExpression, e.Idx0(), e.Idx1()).
			SetChildren("params", c.params(e.ParameterList))
		switch body := e.Body.(type) {
		case *ast.BlockStatement:
			n.SetChild(estree.KeyBody, c.block(body, true))
		case *ast.ExpressionBody:
			n.SetChild(estree.KeyBody, c.expr(body.Expression))
		}
		return n
	case *ast.ClassLiteral:
		return c.class(estree.ClassExpression, e)
	case *ast.AssignExpression:
		n := c.node(estree.AssignmentExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyLeft, c.pattern(e.Left)).
			SetChild(estree.KeyRight, c.expr(e.Right))
		n.Operator = "="
		if e.Operator != token.ASSIGN {
			n.Operator = e.Operator.String() + "="
		}
		return n
	case *ast.BinaryExpression:
		typ := estree.BinaryExpression
		switch e.Operator {
		case token.LOGICAL_AND, token.LOGICAL_OR, token.COALESCE:
			typ = estree.LogicalExpression
		}
		n := c.node(typ, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyLeft, c.expr(e.Left)).
			SetChild(estree.KeyRight, c.expr(e.Right))
		n.Operator = e.Operator.String()
		return n
	case *ast.UnaryExpression:
		if e.Operator == token.INCREMENT || e.Operator == token.DECREMENT {
			n := c.node(estree.UpdateExpression, e.Idx0(), e.Idx1()).
				SetChild(estree.KeyArgument, c.expr(e.Operand))
			n.Operator = e.Operator.String()
			n.Prefix = !e.Postfix
			return n
		}
		n := c.node(estree.UnaryExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyArgument, c.expr(e.Operand))
		n.Operator = e.Operator.String()
		n.Prefix = true
		return n
	case *ast.ConditionalExpression:
		return c.node(estree.ConditionalExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyTest, c.expr(e.Test)).
			SetChild(estree.KeyConsequent, c.expr(e.Consequent)).
			SetChild(estree.KeyAlternate, c.expr(e.Alternate))
	case *ast.SequenceExpression:
		if dot, ok := c.importRef(e); ok {
			return c.importIdentifier(e, dot)
		}
		return c.node(estree.SequenceExpression, e.Idx0(), e.Idx1()).
			SetChildren("expressions", c.exprs(e.Sequence))
	case *ast.DotExpression:
		if dot, ok := c.importRef(e); ok {
			return c.importIdentifier(e, dot)
		}
		return c.member(e.Left, e.Idx0(), e.Idx1(), c.ident(&e.Identifier), false)
	case *ast.PrivateDotExpression:
		prop := c.node(estree.PrivateIdentifier, e.Identifier.Idx0(), e.Identifier.Idx1())
		prop.Name = e.Identifier.Name.String()
		return c.member(e.Left, e.Idx0(), e.Idx1(), prop, false)
	case *ast.BracketExpression:
		return c.member(e.Left, e.Idx0(), e.Idx1(), c.expr(e.Member), true)
	case *ast.CallExpression:
		if req, ok := c.dynamicImport(e); ok {
			return c.importExpression(e, req)
		}
		callee, optional := unwrapOptional(e.Callee)
		n := c.node(estree.CallExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyCallee, c.expr(callee)).
			SetChildren(estree.KeyArguments, c.arguments(e.ArgumentList))
		n.Optional = optional
		return n
	case *ast.NewExpression:
		return c.node(estree.NewExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyCallee, c.expr(e.Callee)).
			SetChildren(estree.KeyArguments, c.arguments(e.ArgumentList))
	case *ast.OptionalChain:
		return c.node(estree.ChainExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyExpression, c.expr(e.Expression))
	case *ast.Optional:
		// only reachable when the wrapped link was not a member or call
		return c.expr(e.Expression)
	case *ast.SpreadElement:
		return c.spread(e)
	case *ast.YieldExpression:
		return c.node(estree.YieldExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyArgument, c.expr(e.Argument))
	case *ast.AwaitExpression:
		return c.node(estree.AwaitExpression, e.Idx0(), e.Idx1()).
			SetChild(estree.KeyArgument, c.expr(e.Argument))
	case *ast.MetaProperty:
		return c.node(estree.MetaProperty, e.Idx0(), e.Idx1()).
			SetChild("meta", c.ident(e.Meta)).
			SetChild(estree.KeyProperty, c.ident(e.Property))
	case *ast.BadExpression:
		return c.node(estree.Identifier, e.From, e.To)
	}
	return nil
}

func (c *converter) arguments(list []ast.Expression) []*estree.Node {
	args := make([]*estree.Node, 0, len(list))
	for _, a := range list {
		if sp, ok := a.(*ast.SpreadElement); ok {
			args = append(args, c.spread(sp))
			continue
		}
		args = append(args, c.expr(a))
	}
	return args
}

func (c *converter) template(t *ast.TemplateLiteral) *estree.Node {
	quasis := make([]*estree.Node, 0, len(t.Elements))
	for _, el := range t.Elements {
		q := c.node(estree.TemplateElement, el.Idx0(), el.Idx1())
		q.Raw = el.Literal
		q.Value = el.Parsed.String()
		quasis = append(quasis, q)
	}
	return c.node(estree.TemplateLiteral, t.OpenQuote, t.CloseQuote+1).
		SetChildren("quasis", quasis).
		SetChildren("expressions", c.exprs(t.Expressions))
}

func isQuoted(literal string) bool {
	return strings.HasPrefix(literal, `"`) || strings.HasPrefix(literal, `'`)
}
