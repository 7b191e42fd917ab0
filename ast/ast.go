// Package ast declares the types used to represent WebIDL syntax trees.
//
// Every production of the grammar has a concrete node type. Groups of
// alternatives (any type, any interface member, any default value, ...) are
// modelled as closed interfaces with unexported marker methods, so the set of
// nodes satisfying each of them is fixed by this package.
package ast

type Node interface {
	NodeBase() *Base
	Kind() string
}

// Base is embedded in every node.
type Base struct {
	Start    int          `json:"start"` // byte offset of the first token
	End      int          `json:"end"`   // byte offset past the last token
	Comments []string     `json:"comments,omitempty"`
	Errors   []*ErrorNode `json:"errors,omitempty"`
}

func (b *Base) NodeBase() *Base {
	return b
}

type ErrorKind int

const (
	// StructuralError is a missing or unexpected token.
	StructuralError ErrorKind = iota
	// LexicalError is input that matches no token class.
	LexicalError
)

func (k ErrorKind) String() string {
	if k == LexicalError {
		return "lexical"
	}
	return "structural"
}

// error occurred; value is text of error
type ErrorNode struct {
	Base
	ErrKind ErrorKind `json:"error_kind"`
	Message string    `json:"message"`
}

func (*ErrorNode) Kind() string { return "ERROR" }

// Supertypes.

type Definition interface {
	Node
	definitionNode()
}

type InterfaceMemberBody interface {
	Node
	interfaceMemberNode()
}

type MixinMemberBody interface {
	Node
	mixinMemberNode()
}

type PartialInterfaceMemberBody interface {
	Node
	partialInterfaceMemberNode()
}

type NamespaceMemberBody interface {
	Node
	namespaceMemberNode()
}

type StaticMemberBody interface {
	Node
	staticMemberNode()
}

// Operation is either a *RegularOperation or a *SpecialOperation.
type Operation interface {
	Node
	operationNode()
}

type Type interface {
	Node
	typeNode()
}

// SingleType is any type except unions and promises.
type SingleType interface {
	Type
	singleTypeNode()
}

type PrimitiveType interface {
	SingleType
	ConstType
	primitiveTypeNode()
}

// ConstType is a primitive type or a type name.
type ConstType interface {
	Node
	constTypeNode()
}

type DefaultValue interface {
	Node
	defaultValueNode()
}

type ConstValue interface {
	DefaultValue
	constValueNode()
}

type FloatLiteral interface {
	ConstValue
	floatLiteralNode()
}

type ExtendedAttribute interface {
	Node
	extendedAttributeNode()
}

// The file root node
type File struct {
	Base
	Definitions []Definition `json:"definitions,omitempty"`

	// Tokens holds every significant token consumed by the parser, in
	// source order. Whitespace and comments are not included.
	Tokens []Token `json:"-"`

	lines []int // offsets of line starts
}

func (*File) Kind() string { return "source" }

// Token is a leaf of the tree.
type Token struct {
	Value string
	Start int
	End   int
}

type Identifier struct {
	Base
	Name string `json:"name"`
}

func (*Identifier) Kind() string { return "identifier" }

// Definitions.

// callback interface Foo { ... };
type CallbackInterface struct {
	Base
	Attributes *ExtendedAttributeList    `json:"attributes,omitempty"`
	Name       *Identifier               `json:"name"`
	Body       *CallbackInterfaceMembers `json:"body"`
}

func (*CallbackInterface) Kind() string { return "callback_interface" }

// callback Foo = undefined (long x);
type CallbackFunction struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	ReturnType Type                   `json:"return_type"`
	Arguments  *ArgumentList          `json:"arguments"`
}

func (*CallbackFunction) Kind() string { return "callback_function" }

// interface Foo : Bar { ... };
type Interface struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Super      *Identifier            `json:"super,omitempty"`
	Body       *InterfaceMembers      `json:"body"`
}

func (*Interface) Kind() string { return "interface" }

// interface mixin Foo { ... };
type Mixin struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Body       *MixinMembers          `json:"body"`
}

func (*Mixin) Kind() string { return "mixin" }

type Namespace struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Members    []*NamespaceMember     `json:"members,omitempty"`
}

func (*Namespace) Kind() string { return "namespace" }

type PartialInterface struct {
	Base
	Attributes *ExtendedAttributeList    `json:"attributes,omitempty"`
	Name       *Identifier               `json:"name"`
	Members    []*PartialInterfaceMember `json:"members,omitempty"`
}

func (*PartialInterface) Kind() string { return "partial_interface" }

// partial interface mixin Foo { ... };
type PartialMixin struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Body       *MixinMembers          `json:"body"`
}

func (*PartialMixin) Kind() string { return "partial_mixin" }

type PartialNamespace struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Members    []*NamespaceMember     `json:"members,omitempty"`
}

func (*PartialNamespace) Kind() string { return "partial_namespace" }

type PartialDictionary struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Body       *DictionaryMembers     `json:"body"`
}

func (*PartialDictionary) Kind() string { return "partial_dictionary" }

type Dictionary struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Super      *Identifier            `json:"super,omitempty"`
	Body       *DictionaryMembers     `json:"body"`
}

func (*Dictionary) Kind() string { return "dictionary" }

// enum Foo { "a", "b" };
type Enum struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Name       *Identifier            `json:"name"`
	Values     []*String              `json:"values,omitempty"`
}

func (*Enum) Kind() string { return "enum" }

type Typedef struct {
	Base
	Attributes *ExtendedAttributeList      `json:"attributes,omitempty"`
	Type       *TypeWithExtendedAttributes `json:"type"`
	Name       *Identifier                 `json:"name"`
}

func (*Typedef) Kind() string { return "typedef" }

// Document includes DocumentOrShadowRoot;
type IncludesStatement struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Target     *Identifier            `json:"target"`
	Mixin      *Identifier            `json:"mixin"`
}

func (*IncludesStatement) Kind() string { return "includes_statement" }

// Window implements ECMA262Globals;
type ImplementsStatement struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Target     *Identifier            `json:"target"`
	Source     *Identifier            `json:"source"`
}

func (*ImplementsStatement) Kind() string { return "implements_statement" }

// Container bodies.

type InterfaceMembers struct {
	Base
	Members []*InterfaceMember `json:"members,omitempty"`
}

func (*InterfaceMembers) Kind() string { return "interface_members" }

type CallbackInterfaceMembers struct {
	Base
	Members []*InterfaceMember `json:"members,omitempty"`
}

func (*CallbackInterfaceMembers) Kind() string { return "callback_interface_members" }

type MixinMembers struct {
	Base
	Members []*MixinMember `json:"members,omitempty"`
}

func (*MixinMembers) Kind() string { return "mixin_members" }

type DictionaryMembers struct {
	Base
	Members []*DictionaryMember `json:"members,omitempty"`
}

func (*DictionaryMembers) Kind() string { return "dictionary_members" }

// Member wrappers.

type InterfaceMember struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Member     InterfaceMemberBody    `json:"member"`
}

func (*InterfaceMember) Kind() string { return "interface_member" }

type MixinMember struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Member     MixinMemberBody        `json:"member"`
}

func (*MixinMember) Kind() string { return "mixin_member" }

type PartialInterfaceMember struct {
	Base
	Attributes *ExtendedAttributeList     `json:"attributes,omitempty"`
	Member     PartialInterfaceMemberBody `json:"member"`
}

func (*PartialInterfaceMember) Kind() string { return "partial_interface_member" }

type NamespaceMember struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Member     NamespaceMemberBody    `json:"member"`
}

func (*NamespaceMember) Kind() string { return "namespace_member" }

// required DOMString name = "x";
type DictionaryMember struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Required   bool                   `json:"required,omitempty"`
	Type       Type                   `json:"type"`
	Name       *Identifier            `json:"name"`
	Default    DefaultValue           `json:"default,omitempty"`
}

func (*DictionaryMember) Kind() string { return "dictionary_member" }

// Members.

// const long FOO = 1;
type Const struct {
	Base
	Type  ConstType   `json:"type"`
	Name  *Identifier `json:"name"`
	Value ConstValue  `json:"value"`
}

func (*Const) Kind() string { return "const" }

// undefined foo(long x); the name is absent for anonymous special operations.
type RegularOperation struct {
	Base
	ReturnType Type          `json:"return_type"`
	Name       *Identifier   `json:"name,omitempty"`
	Arguments  *ArgumentList `json:"arguments"`
}

func (*RegularOperation) Kind() string { return "regular_operation" }

// getter any (DOMString name);
type SpecialOperation struct {
	Base
	Special   string            `json:"special"` // getter, setter or deleter
	Operation *RegularOperation `json:"operation"`
}

func (*SpecialOperation) Kind() string { return "special_operation" }

// Stringifier is a bare "stringifier;", or wraps an attribute or an
// operation. At most one of Attribute and Operation is set.
type Stringifier struct {
	Base
	Attribute *Attribute        `json:"attribute,omitempty"`
	Operation *RegularOperation `json:"operation,omitempty"`
}

func (*Stringifier) Kind() string { return "stringifier" }

type StaticMember struct {
	Base
	Member StaticMemberBody `json:"member"`
}

func (*StaticMember) Kind() string { return "static_member" }

// iterable<K, V>;
type Iterable struct {
	Base
	Type      Type `json:"type"`
	ValueType Type `json:"value_type,omitempty"`
}

func (*Iterable) Kind() string { return "iterable" }

// async iterable<K, V>(args);
type AsyncIterable struct {
	Base
	Type      Type          `json:"type"`
	ValueType Type          `json:"value_type,omitempty"`
	Arguments *ArgumentList `json:"arguments,omitempty"`
}

func (*AsyncIterable) Kind() string { return "async_iterable" }

// readonly attribute something name;
type Attribute struct {
	Base
	Inherit  bool                        `json:"inherit,omitempty"`
	Readonly bool                        `json:"readonly,omitempty"`
	Type     *TypeWithExtendedAttributes `json:"type"`
	Name     *Identifier                 `json:"name"`
}

func (*Attribute) Kind() string { return "attribute" }

type Maplike struct {
	Base
	Readonly  bool `json:"readonly,omitempty"`
	KeyType   Type `json:"key_type"`
	ValueType Type `json:"value_type"`
}

func (*Maplike) Kind() string { return "maplike" }

type Setlike struct {
	Base
	Readonly  bool `json:"readonly,omitempty"`
	ValueType Type `json:"value_type"`
}

func (*Setlike) Kind() string { return "setlike" }

type Constructor struct {
	Base
	Arguments *ArgumentList `json:"arguments"`
}

func (*Constructor) Kind() string { return "constructor" }

// Arguments.

type ArgumentList struct {
	Base
	Arguments []*Argument `json:"arguments,omitempty"`
}

func (*ArgumentList) Kind() string { return "argument_list" }

// optional any SomeArg = null
type Argument struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Optional   bool                   `json:"optional,omitempty"`
	Type       Type                   `json:"type"`
	Variadic   bool                   `json:"variadic,omitempty"`
	Name       *Identifier            `json:"name"`
	Default    DefaultValue           `json:"default,omitempty"`
}

func (*Argument) Kind() string { return "argument" }

// Extended attributes.

// [Exposed=Window, SecureContext]
type ExtendedAttributeList struct {
	Base
	Attributes []ExtendedAttribute `json:"attributes"`
}

func (*ExtendedAttributeList) Kind() string { return "extended_attribute_list" }

// [Replaceable]
type ExtendedAttributeNoArgs struct {
	Base
	Name *Identifier `json:"name"`
}

func (*ExtendedAttributeNoArgs) Kind() string { return "extended_attribute_no_args" }

// [Constructor(double x)]
type ExtendedAttributeArgList struct {
	Base
	Name      *Identifier   `json:"name"`
	Arguments *ArgumentList `json:"arguments"`
}

func (*ExtendedAttributeArgList) Kind() string { return "extended_attribute_arg_list" }

// [PutForwards=name]
type ExtendedAttributeIdent struct {
	Base
	Name  *Identifier `json:"name"`
	Value *Identifier `json:"value"`
}

func (*ExtendedAttributeIdent) Kind() string { return "extended_attribute_ident" }

// [Exposed=(Window,Worker)]
type ExtendedAttributeIdentList struct {
	Base
	Name   *Identifier   `json:"name"`
	Values []*Identifier `json:"values"`
}

func (*ExtendedAttributeIdentList) Kind() string { return "extended_attribute_ident_list" }

// [LegacyFactoryFunction=Image(DOMString src)]
type ExtendedAttributeNamedArgList struct {
	Base
	Name       *Identifier   `json:"name"`
	Identifier *Identifier   `json:"identifier"`
	Arguments  *ArgumentList `json:"arguments"`
}

func (*ExtendedAttributeNamedArgList) Kind() string { return "extended_attribute_named_arg_list" }

// [Exposed=*]
type ExtendedAttributeWildcard struct {
	Base
	Name *Identifier `json:"name"`
}

func (*ExtendedAttributeWildcard) Kind() string { return "extended_attribute_wildcard" }

// Types.

// [Clamp] long
type TypeWithExtendedAttributes struct {
	Base
	Attributes *ExtendedAttributeList `json:"attributes,omitempty"`
	Type       Type                   `json:"type"`
}

func (*TypeWithExtendedAttributes) Kind() string { return "type_with_extended_attributes" }

// unsigned long long
type IntegerType struct {
	Base
	Unsigned bool   `json:"unsigned,omitempty"`
	Name     string `json:"name"` // short, long or "long long"
}

func (*IntegerType) Kind() string { return "integer_type" }

// unrestricted double
type FloatType struct {
	Base
	Unrestricted bool   `json:"unrestricted,omitempty"`
	Name         string `json:"name"` // float or double
}

func (*FloatType) Kind() string { return "float_type" }

// boolean, byte, octet or bigint
type ScalarType struct {
	Base
	Name string `json:"name"`
}

func (*ScalarType) Kind() string { return "scalar_type" }

// object, symbol, any or undefined
type BuiltinType struct {
	Base
	Name string `json:"name"`
}

func (*BuiltinType) Kind() string { return "builtin_type" }

// ByteString, DOMString or USVString
type StringType struct {
	Base
	Name string `json:"name"`
}

func (*StringType) Kind() string { return "string_type" }

// ArrayBuffer, DataView, Uint8Array, ...
type BufferRelatedType struct {
	Base
	Name string `json:"name"`
}

func (*BufferRelatedType) Kind() string { return "buffer_related_type" }

type SequenceType struct {
	Base
	ElementType Type `json:"element_type"`
}

func (*SequenceType) Kind() string { return "sequence_type" }

type FrozenArrayType struct {
	Base
	ElementType Type `json:"element_type"`
}

func (*FrozenArrayType) Kind() string { return "frozen_array_type" }

type ObservableArrayType struct {
	Base
	ElementType Type `json:"element_type"`
}

func (*ObservableArrayType) Kind() string { return "observable_array_type" }

// record<DOMString, long>
type RecordType struct {
	Base
	KeyType   *StringType `json:"key_type"`
	ValueType Type        `json:"value_type"`
}

func (*RecordType) Kind() string { return "record_type" }

type PromiseType struct {
	Base
	ResolveType Type `json:"resolve_type"`
}

func (*PromiseType) Kind() string { return "promise_type" }

// T?
type NullableType struct {
	Base
	Type SingleType `json:"type"`
}

func (*NullableType) Kind() string { return "nullable_type" }

// (A or B)?
type UnionType struct {
	Base
	MemberTypes []Type `json:"member_types"`
	Nullable    bool   `json:"nullable,omitempty"`
}

func (*UnionType) Kind() string { return "union_type" }

// Literals.

type BooleanLiteral struct {
	Base
	Value bool `json:"value"`
}

func (*BooleanLiteral) Kind() string { return "boolean_literal" }

// Integer holds the literal as written, e.g. -0x1F.
type Integer struct {
	Base
	Value string `json:"value"`
}

func (*Integer) Kind() string { return "integer" }

type Decimal struct {
	Base
	Value string `json:"value"`
}

func (*Decimal) Kind() string { return "decimal" }

// Infinity, -Infinity or NaN
type FloatConstant struct {
	Base
	Value string `json:"value"`
}

func (*FloatConstant) Kind() string { return "float_constant" }

// String holds the literal content without the surrounding quotes.
type String struct {
	Base
	Value string `json:"value"`
}

func (*String) Kind() string { return "string" }

// []
type EmptySequence struct{ Base }

func (*EmptySequence) Kind() string { return "empty_sequence" }

// {}
type DefaultDictionary struct{ Base }

func (*DefaultDictionary) Kind() string { return "default_dictionary" }

type NullLiteral struct{ Base }

func (*NullLiteral) Kind() string { return "null" }

type UndefinedLiteral struct{ Base }

func (*UndefinedLiteral) Kind() string { return "undefined" }
