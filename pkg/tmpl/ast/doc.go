// Package ast defines the syntax tree produced by the template parser.
//
// A parsed template is a *Document whose children are *Literal and *Variable
// nodes in source order. A *Variable holds one or more path segments, each
// either an *Identifier or a nested *Variable:
//
//	Config: {{service.{{env}}.port}}
//
//	Document
//	├── Literal "Config: "
//	└── Variable service.{{env}}.port
//	    ├── Identifier service
//	    ├── Variable env
//	    │   └── Identifier env
//	    └── Identifier port
//
// The tree is a strict tree with no back-references and is never mutated by
// the parser after it is returned.
package ast
