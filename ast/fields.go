package ast

import (
	"fmt"
	"reflect"
)

// Field is a named slot of a node. Exactly one of Nodes, Text or Flag is
// meaningful: child nodes, the text of a token-valued slot, or a keyword
// modifier that was present in the source. A leaf value, such as the name
// held by an Identifier, is reported as a Text field with an empty Name.
type Field struct {
	Name     string
	Nodes    []Node
	Text     string
	Flag     bool
	Repeated bool // Nodes holds a list slot, even when it has one element
}

type fieldList []Field

func (l *fieldList) node(name string, n Node) {
	if isNil(n) {
		return
	}
	*l = append(*l, Field{Name: name, Nodes: []Node{n}})
}

func (l *fieldList) text(name, s string) {
	*l = append(*l, Field{Name: name, Text: s})
}

func (l *fieldList) flag(name string, set bool) {
	if set {
		*l = append(*l, Field{Name: name, Flag: true})
	}
}

func listField[T Node](l *fieldList, name string, list []T) {
	var out []Node
	for _, n := range list {
		if !isNil(n) {
			out = append(out, n)
		}
	}
	if len(out) != 0 {
		*l = append(*l, Field{Name: name, Nodes: out, Repeated: true})
	}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Fields returns the named slots of n in source order. Absent optional
// slots are omitted.
func Fields(n Node) []Field {
	var l fieldList
	switch n := n.(type) {
	case *File:
		listField(&l, "definitions", n.Definitions)
	case *ErrorNode:
		l.text("", n.Message)
	case *Identifier:
		l.text("", n.Name)

	case *CallbackInterface:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("body", n.Body)
	case *CallbackFunction:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("return_type", n.ReturnType)
		l.node("arguments", n.Arguments)
	case *Interface:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("super", n.Super)
		l.node("body", n.Body)
	case *Mixin:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("body", n.Body)
	case *Namespace:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		listField(&l, "members", n.Members)
	case *PartialInterface:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		listField(&l, "members", n.Members)
	case *PartialMixin:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("body", n.Body)
	case *PartialNamespace:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		listField(&l, "members", n.Members)
	case *PartialDictionary:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("body", n.Body)
	case *Dictionary:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		l.node("super", n.Super)
		l.node("body", n.Body)
	case *Enum:
		l.node("attributes", n.Attributes)
		l.node("name", n.Name)
		listField(&l, "values", n.Values)
	case *Typedef:
		l.node("attributes", n.Attributes)
		l.node("type", n.Type)
		l.node("name", n.Name)
	case *IncludesStatement:
		l.node("attributes", n.Attributes)
		l.node("target", n.Target)
		l.node("mixin", n.Mixin)
	case *ImplementsStatement:
		l.node("attributes", n.Attributes)
		l.node("target", n.Target)
		l.node("source", n.Source)

	case *InterfaceMembers:
		listField(&l, "members", n.Members)
	case *CallbackInterfaceMembers:
		listField(&l, "members", n.Members)
	case *MixinMembers:
		listField(&l, "members", n.Members)
	case *DictionaryMembers:
		listField(&l, "members", n.Members)

	case *InterfaceMember:
		l.node("attributes", n.Attributes)
		l.node("member", n.Member)
	case *MixinMember:
		l.node("attributes", n.Attributes)
		l.node("member", n.Member)
	case *PartialInterfaceMember:
		l.node("attributes", n.Attributes)
		l.node("member", n.Member)
	case *NamespaceMember:
		l.node("attributes", n.Attributes)
		l.node("member", n.Member)
	case *DictionaryMember:
		l.node("attributes", n.Attributes)
		l.flag("required", n.Required)
		l.node("type", n.Type)
		l.node("name", n.Name)
		l.node("default", n.Default)

	case *Const:
		l.node("type", n.Type)
		l.node("name", n.Name)
		l.node("value", n.Value)
	case *RegularOperation:
		l.node("return_type", n.ReturnType)
		l.node("name", n.Name)
		l.node("arguments", n.Arguments)
	case *SpecialOperation:
		l.text("special", n.Special)
		l.node("operation", n.Operation)
	case *Stringifier:
		l.node("attribute", n.Attribute)
		l.node("operation", n.Operation)
	case *StaticMember:
		l.node("member", n.Member)
	case *Iterable:
		l.node("type", n.Type)
		l.node("value_type", n.ValueType)
	case *AsyncIterable:
		l.node("type", n.Type)
		l.node("value_type", n.ValueType)
		l.node("arguments", n.Arguments)
	case *Attribute:
		l.flag("inherit", n.Inherit)
		l.flag("readonly", n.Readonly)
		l.node("type", n.Type)
		l.node("name", n.Name)
	case *Maplike:
		l.flag("readonly", n.Readonly)
		l.node("key_type", n.KeyType)
		l.node("value_type", n.ValueType)
	case *Setlike:
		l.flag("readonly", n.Readonly)
		l.node("value_type", n.ValueType)
	case *Constructor:
		l.node("arguments", n.Arguments)

	case *ArgumentList:
		listField(&l, "arguments", n.Arguments)
	case *Argument:
		l.node("attributes", n.Attributes)
		l.flag("optional", n.Optional)
		l.node("type", n.Type)
		l.flag("variadic", n.Variadic)
		l.node("name", n.Name)
		l.node("default", n.Default)

	case *ExtendedAttributeList:
		listField(&l, "attributes", n.Attributes)
	case *ExtendedAttributeNoArgs:
		l.node("name", n.Name)
	case *ExtendedAttributeArgList:
		l.node("name", n.Name)
		l.node("arguments", n.Arguments)
	case *ExtendedAttributeIdent:
		l.node("name", n.Name)
		l.node("value", n.Value)
	case *ExtendedAttributeIdentList:
		l.node("name", n.Name)
		listField(&l, "values", n.Values)
	case *ExtendedAttributeNamedArgList:
		l.node("name", n.Name)
		l.node("identifier", n.Identifier)
		l.node("arguments", n.Arguments)
	case *ExtendedAttributeWildcard:
		l.node("name", n.Name)

	case *TypeWithExtendedAttributes:
		l.node("attributes", n.Attributes)
		l.node("type", n.Type)
	case *IntegerType:
		l.flag("unsigned", n.Unsigned)
		l.text("name", n.Name)
	case *FloatType:
		l.flag("unrestricted", n.Unrestricted)
		l.text("name", n.Name)
	case *ScalarType:
		l.text("", n.Name)
	case *BuiltinType:
		l.text("", n.Name)
	case *StringType:
		l.text("", n.Name)
	case *BufferRelatedType:
		l.text("", n.Name)
	case *SequenceType:
		l.node("element_type", n.ElementType)
	case *FrozenArrayType:
		l.node("element_type", n.ElementType)
	case *ObservableArrayType:
		l.node("element_type", n.ElementType)
	case *RecordType:
		l.node("key_type", n.KeyType)
		l.node("value_type", n.ValueType)
	case *PromiseType:
		l.node("resolve_type", n.ResolveType)
	case *NullableType:
		l.node("type", n.Type)
	case *UnionType:
		listField(&l, "member_types", n.MemberTypes)
		l.flag("nullable", n.Nullable)

	case *BooleanLiteral:
		if n.Value {
			l.text("", "true")
		} else {
			l.text("", "false")
		}
	case *Integer:
		l.text("", n.Value)
	case *Decimal:
		l.text("", n.Value)
	case *FloatConstant:
		l.text("", n.Value)
	case *String:
		l.text("", n.Value)
	case *EmptySequence, *DefaultDictionary, *NullLiteral, *UndefinedLiteral:
		// no slots
	default:
		panic(fmt.Sprintf("ast.Fields: unexpected node type %T", n))
	}
	return l
}

// Children returns the child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	for _, f := range Fields(n) {
		out = append(out, f.Nodes...)
	}
	return out
}
