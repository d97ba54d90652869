// Copyright 2026 The railguard Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package rubyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"railguard/internal/config"
)

// adapt lowers a tree-sitter node into the normalized model. Unrecognized
// kinds pass through with their children adapted; they never match a rule
// pattern, which is the expected no-match outcome for most nodes.
func adapt(n *sitter.Node, src []byte) *Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "comment":
		return nil

	case "program":
		return &Node{Kind: KindProgram, Range: nodeRange(n), Children: adaptChildren(n, src)}

	case "method":
		return adaptMethod(n, src, KindMethod)

	case "singleton_method":
		return adaptMethod(n, src, KindSingletonMethod)

	case "call", "method_call":
		return adaptCall(n, src)

	case "identifier":
		return leaf(n, src, KindIdent)

	case "constant":
		return leaf(n, src, KindConst)

	case "instance_variable":
		return leaf(n, src, KindIVar)

	case "class_variable":
		return leaf(n, src, KindCVar)

	case "global_variable":
		return leaf(n, src, KindGVar)

	case "self":
		return &Node{Kind: KindSelf, Range: nodeRange(n)}

	case "scope_resolution":
		scope := adapt(n.ChildByFieldName("scope"), src)
		name := content(n.ChildByFieldName("name"), src)

		return &Node{Kind: KindScopeRes, Text: name, Range: nodeRange(n), Children: []*Node{scope}}

	case "assignment":
		left := n.ChildByFieldName("left")
		right := adapt(n.ChildByFieldName("right"), src)

		if left != nil && left.Type() == "element_reference" {
			children := []*Node{adapt(left.ChildByFieldName("object"), src)}
			children = append(children, subscriptArgs(left, src)...)
			children = append(children, right)

			return &Node{Kind: KindIndexAsgn, Range: nodeRange(n), Children: children}
		}

		return &Node{Kind: KindAssign, Range: nodeRange(n), Children: []*Node{adapt(left, src), right}}

	case "operator_assignment":
		return &Node{
			Kind:  KindOpAssign,
			Text:  content(n.ChildByFieldName("operator"), src),
			Range: nodeRange(n),
			Children: []*Node{
				adapt(n.ChildByFieldName("left"), src),
				adapt(n.ChildByFieldName("right"), src),
			},
		}

	case "element_reference":
		children := []*Node{adapt(n.ChildByFieldName("object"), src)}
		children = append(children, subscriptArgs(n, src)...)

		return &Node{Kind: KindIndex, Range: nodeRange(n), Children: children}

	case "binary":
		return &Node{
			Kind:  KindBinary,
			Text:  content(n.ChildByFieldName("operator"), src),
			Range: nodeRange(n),
			Children: []*Node{
				adapt(n.ChildByFieldName("left"), src),
				adapt(n.ChildByFieldName("right"), src),
			},
		}

	case "unary":
		return &Node{
			Kind:     KindUnary,
			Text:     content(n.ChildByFieldName("operator"), src),
			Range:    nodeRange(n),
			Children: []*Node{adapt(n.ChildByFieldName("operand"), src)},
		}

	case "parenthesized_statements":
		return &Node{Kind: KindParen, Range: nodeRange(n), Children: adaptChildren(n, src)}

	case "array":
		return &Node{Kind: KindArray, Range: nodeRange(n), Children: adaptChildren(n, src)}

	case "hash":
		return &Node{Kind: KindHash, Range: nodeRange(n), Children: adaptChildren(n, src)}

	case "pair":
		return &Node{
			Kind:  KindPair,
			Range: nodeRange(n),
			Children: []*Node{
				adapt(n.ChildByFieldName("key"), src),
				adapt(n.ChildByFieldName("value"), src),
			},
		}

	case "simple_symbol", "hash_key_symbol", "symbol":
		return &Node{Kind: KindSymbol, Text: symbolName(content(n, src)), Range: nodeRange(n)}

	case "string":
		return leaf(n, src, KindString)

	case "integer":
		return leaf(n, src, KindInt)

	case "float":
		return leaf(n, src, KindFloat)

	case "nil":
		return &Node{Kind: KindNil, Range: nodeRange(n)}

	case "true":
		return &Node{Kind: KindTrue, Range: nodeRange(n)}

	case "false":
		return &Node{Kind: KindFalse, Range: nodeRange(n)}

	case "body_statement":
		// Spliced into the parent by adaptBody; reaching it elsewhere keeps
		// it as a passthrough wrapper.
		return &Node{Kind: Kind(n.Type()), Range: nodeRange(n), Children: adaptChildren(n, src)}

	default:
		node := &Node{Kind: Kind(n.Type()), Range: nodeRange(n), Children: adaptChildren(n, src)}
		if len(node.Children) == 0 {
			node.Text = content(n, src)
		}

		return node
	}
}

// adaptMethod lowers `def name(params) body end` into
// [params, bodyStmt...] with the name in Text.
func adaptMethod(n *sitter.Node, src []byte, kind Kind) *Node {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")

	paramsNode := adaptParams(params, src, KindMethodParams, nameEnd(n, name))
	children := append([]*Node{paramsNode}, adaptBody(n, src, name, params)...)

	return &Node{
		Kind:      kind,
		Text:      content(name, src),
		Range:     nodeRange(n),
		NameRange: nodeRange(name),
		Children:  children,
	}
}

// adaptCall lowers plain calls, safe-navigation calls and calls with attached
// blocks. A call with a block becomes KindBlock{call, params, body...}; the
// inner call's range excludes the block so rewrites can address the call head
// and the block separately.
func adaptCall(n *sitter.Node, src []byte) *Node {
	receiver := n.ChildByFieldName("receiver")
	method := n.ChildByFieldName("method")
	arguments := n.ChildByFieldName("arguments")
	block := n.ChildByFieldName("block")
	operator := n.ChildByFieldName("operator")

	callEnd := int(n.EndByte())
	switch {
	case arguments != nil:
		callEnd = int(arguments.EndByte())
	case method != nil:
		callEnd = int(method.EndByte())
	}

	call := &Node{
		Kind:     KindCall,
		Text:     content(method, src),
		Range:    Range{int(n.StartByte()), callEnd},
		Children: append([]*Node{adapt(receiver, src)}, adaptArgs(arguments, src)...),
	}

	if operator != nil && content(operator, src) == "&." {
		call.Flags = config.NewBitMask(FlagSafeNav)
	}

	if block == nil {
		return call
	}

	blockParams := block.ChildByFieldName("parameters")
	paramsNode := adaptParams(blockParams, src, KindBlockParams, int(block.StartByte()))

	lifted := &Node{
		Kind:     KindBlock,
		Range:    nodeRange(n),
		Children: append([]*Node{call, paramsNode}, adaptBody(block, src, nil, blockParams)...),
	}

	if block.Type() == "block" {
		lifted.Flags = config.NewBitMask(FlagBraceBlock)
	}

	return lifted
}

// adaptParams lowers a method_parameters / block_parameters wrapper. A nil
// wrapper yields an empty parameter list anchored at `at`.
func adaptParams(params *sitter.Node, src []byte, kind Kind, at int) *Node {
	if params == nil {
		return &Node{Kind: kind, Range: Range{at, at}}
	}

	node := &Node{Kind: kind, Range: nodeRange(params)}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		c := params.NamedChild(i)

		switch c.Type() {
		case "comment":
			continue

		case "identifier":
			node.Children = append(node.Children, leaf(c, src, KindReqParam))

		case "optional_parameter":
			node.Children = append(node.Children, &Node{
				Kind:     KindOptParam,
				Text:     content(c.ChildByFieldName("name"), src),
				Range:    nodeRange(c),
				Children: []*Node{adapt(c.ChildByFieldName("value"), src)},
			})

		case "keyword_parameter":
			node.Children = append(node.Children, &Node{
				Kind:     KindKeyParam,
				Text:     content(c.ChildByFieldName("name"), src),
				Range:    nodeRange(c),
				Children: []*Node{adapt(c.ChildByFieldName("value"), src)},
			})

		case "splat_parameter":
			node.Children = append(node.Children, namedParam(c, src, KindSplatParam))

		case "hash_splat_parameter":
			node.Children = append(node.Children, namedParam(c, src, KindHashSplatParam))

		case "block_parameter":
			node.Children = append(node.Children, namedParam(c, src, KindBlockParam))

		default:
			node.Children = append(node.Children, adapt(c, src))
		}
	}

	return node
}

// adaptArgs lowers an argument_list, distinguishing keyword arguments,
// splats and block-pass arguments from positional ones.
func adaptArgs(arguments *sitter.Node, src []byte) []*Node {
	if arguments == nil {
		return nil
	}

	var args []*Node

	for i := 0; i < int(arguments.NamedChildCount()); i++ {
		c := arguments.NamedChild(i)

		switch c.Type() {
		case "comment":
			continue

		case "pair":
			args = append(args, &Node{
				Kind:     KindKwArg,
				Text:     symbolName(content(c.ChildByFieldName("key"), src)),
				Range:    nodeRange(c),
				Children: []*Node{adapt(c.ChildByFieldName("value"), src)},
			})

		case "splat_argument":
			args = append(args, &Node{Kind: KindSplatArg, Range: nodeRange(c), Children: adaptChildren(c, src)})

		case "block_argument":
			args = append(args, &Node{Kind: KindBlockPass, Range: nodeRange(c), Children: adaptChildren(c, src)})

		default:
			args = append(args, adapt(c, src))
		}
	}

	return args
}

// adaptBody collects the statement children of a definition or block,
// unwrapping a body_statement wrapper when the grammar provides one and
// skipping the name/parameter nodes and comments.
func adaptBody(n *sitter.Node, src []byte, name, params *sitter.Node) []*Node {
	if body := n.ChildByFieldName("body"); body != nil {
		switch body.Type() {
		case "body_statement", "block_body":
			return adaptChildren(body, src)
		default:
			if stmt := adapt(body, src); stmt != nil {
				return []*Node{stmt}
			}

			return nil
		}
	}

	var stmts []*Node

	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if sameNode(c, name) || sameNode(c, params) || c.Type() == "comment" {
			continue
		}

		if c.Type() == "body_statement" || c.Type() == "block_body" {
			stmts = append(stmts, adaptChildren(c, src)...)

			continue
		}

		if stmt := adapt(c, src); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

func adaptChildren(n *sitter.Node, src []byte) []*Node {
	var children []*Node

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := adapt(n.NamedChild(i), src); c != nil {
			children = append(children, c)
		}
	}

	return children
}

// subscriptArgs adapts the subscript expressions of an element_reference,
// excluding its object.
func subscriptArgs(n *sitter.Node, src []byte) []*Node {
	object := n.ChildByFieldName("object")

	var args []*Node

	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if sameNode(c, object) || c.Type() == "comment" {
			continue
		}

		if a := adapt(c, src); a != nil {
			args = append(args, a)
		}
	}

	return args
}

func namedParam(c *sitter.Node, src []byte, kind Kind) *Node {
	name := content(c.ChildByFieldName("name"), src)
	if name == "" {
		// Anonymous splat; keep the token text without the sigil.
		name = strings.TrimLeft(content(c, src), "*&")
	}

	return &Node{Kind: kind, Text: name, Range: nodeRange(c)}
}

func leaf(n *sitter.Node, src []byte, kind Kind) *Node {
	return &Node{Kind: kind, Text: content(n, src), Range: nodeRange(n)}
}

func nodeRange(n *sitter.Node) Range {
	if n == nil {
		return Range{}
	}

	return Range{int(n.StartByte()), int(n.EndByte())}
}

func content(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}

	return string(src[n.StartByte():n.EndByte()])
}

// symbolName strips the colon from a symbol spelling, either leading (:foo)
// or trailing (foo: in keyword positions).
func symbolName(s string) string {
	s = strings.TrimPrefix(s, ":")

	return strings.TrimSuffix(s, ":")
}

func nameEnd(n, name *sitter.Node) int {
	if name != nil {
		return int(name.EndByte())
	}

	return int(n.StartByte())
}

func sameNode(a, b *sitter.Node) bool {
	return b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
