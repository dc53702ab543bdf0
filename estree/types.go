package estree

// NodeType is the ESTree discriminator carried in every node's "type" field.
type NodeType string

const (
	Program NodeType = "Program"

	// Statements
	BlockStatement      NodeType = "BlockStatement"
	BreakStatement      NodeType = "BreakStatement"
	ContinueStatement   NodeType = "ContinueStatement"
	DebuggerStatement   NodeType = "DebuggerStatement"
	DoWhileStatement    NodeType = "DoWhileStatement"
	EmptyStatement      NodeType = "EmptyStatement"
	ExpressionStatement NodeType = "ExpressionStatement"
	ForInStatement      NodeType = "ForInStatement"
	ForOfStatement      NodeType = "ForOfStatement"
	ForStatement        NodeType = "ForStatement"
	IfStatement         NodeType = "IfStatement"
	LabeledStatement    NodeType = "LabeledStatement"
	ReturnStatement     NodeType = "ReturnStatement"
	SwitchStatement     NodeType = "SwitchStatement"
	SwitchCase          NodeType = "SwitchCase"
	ThrowStatement      NodeType = "ThrowStatement"
	TryStatement        NodeType = "TryStatement"
	CatchClause         NodeType = "CatchClause"
	WhileStatement      NodeType = "WhileStatement"
	WithStatement       NodeType = "WithStatement"

	// Declarations
	ClassDeclaration    NodeType = "ClassDeclaration"
	FunctionDeclaration NodeType = "FunctionDeclaration"
	VariableDeclaration NodeType = "VariableDeclaration"
	VariableDeclarator  NodeType = "VariableDeclarator"
	ImportDeclaration   NodeType = "ImportDeclaration"
	ExportNamedDecl     NodeType = "ExportNamedDeclaration"
	ExportDefaultDecl   NodeType = "ExportDefaultDeclaration"
	ExportAllDecl       NodeType = "ExportAllDeclaration"

	// Expressions
	ArrayExpression          NodeType = "ArrayExpression"
	ArrowFunctionExpression  NodeType = "ArrowFunctionExpression"
	AssignmentExpression     NodeType = "AssignmentExpression"
	AwaitExpression          NodeType = "AwaitExpression"
	BinaryExpression         NodeType = "BinaryExpression"
	CallExpression           NodeType = "CallExpression"
	ChainExpression          NodeType = "ChainExpression"
	ClassExpression          NodeType = "ClassExpression"
	ConditionalExpression    NodeType = "ConditionalExpression"
	FunctionExpression       NodeType = "FunctionExpression"
	Identifier               NodeType = "Identifier"
	ImportExpression         NodeType = "ImportExpression"
	Literal                  NodeType = "Literal"
	LogicalExpression        NodeType = "LogicalExpression"
	MemberExpression         NodeType = "MemberExpression"
	MetaProperty             NodeType = "MetaProperty"
	NewExpression            NodeType = "NewExpression"
	ObjectExpression         NodeType = "ObjectExpression"
	PrivateIdentifier        NodeType = "PrivateIdentifier"
	SequenceExpression       NodeType = "SequenceExpression"
	Super                    NodeType = "Super"
	TaggedTemplateExpression NodeType = "TaggedTemplateExpression"
	TemplateLiteral          NodeType = "TemplateLiteral"
	TemplateElement          NodeType = "TemplateElement"
	ThisExpression           NodeType = "ThisExpression"
	UnaryExpression          NodeType = "UnaryExpression"
	UpdateExpression         NodeType = "UpdateExpression"
	YieldExpression          NodeType = "YieldExpression"

	// Patterns and class members
	ArrayPattern       NodeType = "ArrayPattern"
	AssignmentPattern  NodeType = "AssignmentPattern"
	ObjectPattern      NodeType = "ObjectPattern"
	RestElement        NodeType = "RestElement"
	SpreadElement      NodeType = "SpreadElement"
	Property           NodeType = "Property"
	ClassBody          NodeType = "ClassBody"
	MethodDefinition   NodeType = "MethodDefinition"
	PropertyDefinition NodeType = "PropertyDefinition"
	StaticBlock        NodeType = "StaticBlock"

	// JSX
	JSXElement  NodeType = "JSXElement"
	JSXFragment NodeType = "JSXFragment"

	// TypeScript expression wrappers emitted by typescript-estree
	TSAsExpression            NodeType = "TSAsExpression"
	TSNonNullExpression       NodeType = "TSNonNullExpression"
	TSSatisfiesExpression     NodeType = "TSSatisfiesExpression"
	TSTypeAssertion           NodeType = "TSTypeAssertion"
	TSInstantiationExpression NodeType = "TSInstantiationExpression"
)

// Well-known child keys.
const (
	KeyAlternate  = "alternate"
	KeyArgument   = "argument"
	KeyArguments  = "arguments"
	KeyBody       = "body"
	KeyCallee     = "callee"
	KeyConsequent = "consequent"
	KeyExpression = "expression"
	KeyLeft       = "left"
	KeyObject     = "object"
	KeyProperty   = "property"
	KeyQuasi      = "quasi"
	KeyRight      = "right"
	KeySource     = "source"
	KeyTag        = "tag"
	KeyTest       = "test"
)
