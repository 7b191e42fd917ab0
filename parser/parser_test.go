package parser

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennwc/webidl/v2/ast"
	"github.com/dennwc/webidl/v2/grammar"
)

func TestParse(t *testing.T) {
	const testDir = "testdata"
	names, err := os.ReadDir(testDir)
	require.NoError(t, err)
	const (
		ext    = ".webidl"
		sufGot = "_got"
	)
	for _, entry := range names {
		fname := entry.Name()
		if !strings.HasSuffix(fname, ext) {
			continue
		}
		name := strings.TrimSuffix(fname, ext)
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(testDir, fname))
			require.NoError(t, err)

			f := Parse(string(data))
			require.Empty(t, ast.Errors(f), "%s", DumpString(ast.Errors(f)))

			var buf bytes.Buffer
			require.NoError(t, ast.Fprint(&buf, f))
			got := buf.String()

			ename := filepath.Join(testDir, name+".sexp")
			exp, err := os.ReadFile(ename)
			if os.IsNotExist(err) {
				os.WriteFile(ename, []byte(got), 0644)
				t.SkipNow()
			}
			require.NoError(t, err)
			if string(exp) != got {
				os.WriteFile(ename+sufGot, []byte(got), 0644)
				t.Fatalf("tree mismatch, see %s", ename+sufGot)
			} else {
				os.Remove(ename + sufGot)
			}
		})
	}
}

// parseOne parses input that must hold a single definition.
func parseOne(t *testing.T, input string) ast.Definition {
	t.Helper()
	f := Parse(input)
	require.Len(t, f.Definitions, 1, "%s", ast.Format(f))
	return f.Definitions[0]
}

func TestParseDefinitions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		exp   string
	}{
		{
			name:  "interface attribute",
			input: `interface Foo { attribute long x; };`,
			exp: `(interface name: (identifier "Foo") body: (interface_members members: (interface_member member: ` +
				`(attribute type: (type_with_extended_attributes type: (integer_type name: "long")) name: (identifier "x")))))`,
		},
		{
			name:  "dictionary",
			input: `dictionary D { required DOMString name; long age = 0; };`,
			exp: `(dictionary name: (identifier "D") body: (dictionary_members ` +
				`members: (dictionary_member required type: (string_type "DOMString") name: (identifier "name")) ` +
				`members: (dictionary_member type: (integer_type name: "long") name: (identifier "age") default: (integer "0"))))`,
		},
		{
			name:  "typedef union",
			input: `typedef (long or DOMString) NumberOrString;`,
			exp: `(typedef type: (type_with_extended_attributes type: (union_type ` +
				`member_types: (integer_type name: "long") member_types: (string_type "DOMString"))) ` +
				`name: (identifier "NumberOrString"))`,
		},
		{
			name:  "extended attribute and inheritance",
			input: `[Exposed=Window] interface A : B {};`,
			exp: `(interface attributes: (extended_attribute_list attributes: (extended_attribute_ident ` +
				`name: (identifier "Exposed") value: (identifier "Window"))) ` +
				`name: (identifier "A") super: (identifier "B") body: (interface_members))`,
		},
		{
			name:  "callback interface",
			input: `callback interface Listener { undefined handle(Event e); };`,
			exp: `(callback_interface name: (identifier "Listener") body: (callback_interface_members members: ` +
				`(interface_member member: (regular_operation return_type: (builtin_type "undefined") name: (identifier "handle") ` +
				`arguments: (argument_list arguments: (argument type: (identifier "Event") name: (identifier "e")))))))`,
		},
		{
			name:  "callback function",
			input: `callback Cb = Promise<any> (optional long x = 1, DOMString... rest);`,
			exp: `(callback_function name: (identifier "Cb") return_type: (promise_type resolve_type: (builtin_type "any")) ` +
				`arguments: (argument_list ` +
				`arguments: (argument optional type: (integer_type name: "long") name: (identifier "x") default: (integer "1")) ` +
				`arguments: (argument type: (string_type "DOMString") variadic name: (identifier "rest"))))`,
		},
		{
			name:  "mixin",
			input: `interface mixin M { readonly attribute boolean b; };`,
			exp: `(mixin name: (identifier "M") body: (mixin_members members: (mixin_member member: ` +
				`(attribute readonly type: (type_with_extended_attributes type: (scalar_type "boolean")) name: (identifier "b")))))`,
		},
		{
			name:  "partial interface",
			input: `partial interface Window { getter any (DOMString name); };`,
			exp: `(partial_interface name: (identifier "Window") members: (partial_interface_member member: ` +
				`(special_operation special: "getter" operation: (regular_operation return_type: (builtin_type "any") ` +
				`arguments: (argument_list arguments: (argument type: (string_type "DOMString") name: (identifier "name")))))))`,
		},
		{
			name:  "partial mixin",
			input: `partial interface mixin M { const double PI = 3.14; };`,
			exp: `(partial_mixin name: (identifier "M") body: (mixin_members members: (mixin_member member: ` +
				`(const type: (float_type name: "double") name: (identifier "PI") value: (decimal "3.14")))))`,
		},
		{
			name:  "namespace",
			input: `[Exposed=*] namespace console { undefined log(any... data); };`,
			exp: `(namespace attributes: (extended_attribute_list attributes: (extended_attribute_wildcard name: (identifier "Exposed"))) ` +
				`name: (identifier "console") members: (namespace_member member: (regular_operation ` +
				`return_type: (builtin_type "undefined") name: (identifier "log") ` +
				`arguments: (argument_list arguments: (argument type: (builtin_type "any") variadic name: (identifier "data"))))))`,
		},
		{
			name:  "partial namespace",
			input: `partial namespace N { readonly attribute long x; };`,
			exp: `(partial_namespace name: (identifier "N") members: (namespace_member member: ` +
				`(attribute readonly type: (type_with_extended_attributes type: (integer_type name: "long")) name: (identifier "x"))))`,
		},
		{
			name:  "partial dictionary",
			input: `partial dictionary D { sequence<long> list = []; };`,
			exp: `(partial_dictionary name: (identifier "D") body: (dictionary_members members: (dictionary_member ` +
				`type: (sequence_type element_type: (integer_type name: "long")) name: (identifier "list") default: (empty_sequence))))`,
		},
		{
			name:  "enum",
			input: `enum E { "a", "b c" };`,
			exp:   `(enum name: (identifier "E") values: (string "a") values: (string "b c"))`,
		},
		{
			name:  "includes",
			input: `Document includes DocumentOrShadowRoot;`,
			exp:   `(includes_statement target: (identifier "Document") mixin: (identifier "DocumentOrShadowRoot"))`,
		},
		{
			name:  "implements",
			input: `Window implements ECMA262Globals;`,
			exp:   `(implements_statement target: (identifier "Window") source: (identifier "ECMA262Globals"))`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := Parse(test.input)
			require.Empty(t, ast.Errors(f), "%s", ast.Format(f))
			require.Len(t, f.Definitions, 1)
			require.Equal(t, test.exp, ast.Format(f.Definitions[0]))
		})
	}
}

func TestParseMembers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		exp   string
	}{
		{"constructor", `constructor(long x);`,
			`(constructor arguments: (argument_list arguments: (argument type: (integer_type name: "long") name: (identifier "x"))))`},
		{"stringifier", `stringifier;`, `(stringifier)`},
		{"stringifier attribute", `stringifier attribute DOMString href;`,
			`(stringifier attribute: (attribute type: (type_with_extended_attributes type: (string_type "DOMString")) name: (identifier "href")))`},
		{"stringifier operation", `stringifier DOMString toString();`,
			`(stringifier operation: (regular_operation return_type: (string_type "DOMString") name: (identifier "toString") arguments: (argument_list)))`},
		{"static operation", `static Foo create();`,
			`(static_member member: (regular_operation return_type: (identifier "Foo") name: (identifier "create") arguments: (argument_list)))`},
		{"static attribute", `static readonly attribute long count;`,
			`(static_member member: (attribute readonly type: (type_with_extended_attributes type: (integer_type name: "long")) name: (identifier "count")))`},
		{"inherit attribute", `inherit attribute long x;`,
			`(attribute inherit type: (type_with_extended_attributes type: (integer_type name: "long")) name: (identifier "x"))`},
		{"iterable", `iterable<DOMString, long>;`,
			`(iterable type: (string_type "DOMString") value_type: (integer_type name: "long"))`},
		{"async iterable", `async iterable<long>(optional long start);`,
			`(async_iterable type: (integer_type name: "long") arguments: (argument_list arguments: ` +
				`(argument optional type: (integer_type name: "long") name: (identifier "start"))))`},
		{"maplike", `readonly maplike<DOMString, any>;`,
			`(maplike readonly key_type: (string_type "DOMString") value_type: (builtin_type "any"))`},
		{"setlike", `setlike<long>;`, `(setlike value_type: (integer_type name: "long"))`},
		{"setter", `setter undefined (unsigned long index, Node value);`,
			`(special_operation special: "setter" operation: (regular_operation return_type: (builtin_type "undefined") ` +
				`arguments: (argument_list arguments: (argument type: (integer_type unsigned name: "long") name: (identifier "index")) ` +
				`arguments: (argument type: (identifier "Node") name: (identifier "value")))))`},
		{"const infinity", `const unrestricted double INF = -Infinity;`,
			`(const type: (float_type unrestricted name: "double") name: (identifier "INF") value: (float_constant "-Infinity"))`},
		{"const hex", `const octet MASK = 0xFF;`,
			`(const type: (scalar_type "octet") name: (identifier "MASK") value: (integer "0xFF"))`},
		{"const boolean", `const boolean DEBUG = true;`,
			`(const type: (scalar_type "boolean") name: (identifier "DEBUG") value: (boolean_literal "true"))`},
		{"union return type", `(Node or DOMString)? pick();`,
			`(regular_operation return_type: (union_type member_types: (identifier "Node") member_types: (string_type "DOMString") nullable) ` +
				`name: (identifier "pick") arguments: (argument_list))`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			def := parseOne(t, "interface I { "+test.input+" };")
			require.Empty(t, ast.Errors(def), "%s", ast.Format(def))
			members := def.(*ast.Interface).Body.Members
			require.Len(t, members, 1)
			require.Equal(t, test.exp, ast.Format(members[0].Member))
		})
	}
}

func TestMemberAttributes(t *testing.T) {
	def := parseOne(t, `interface I { [CEReactions, SameObject] readonly attribute Node n; };`)
	require.Empty(t, ast.Errors(def))

	m := def.(*ast.Interface).Body.Members[0]
	require.NotNil(t, m.Attributes)
	require.Len(t, m.Attributes.Attributes, 2)
	require.Equal(t, `(extended_attribute_no_args name: (identifier "SameObject"))`, ast.Format(m.Attributes.Attributes[1]))

	attr := m.Member.(*ast.Attribute)
	require.True(t, attr.Readonly)
	require.False(t, attr.Inherit)
	require.Equal(t, "n", attr.Name.Name)
	require.Equal(t, len("interface I { "), m.Start)
}

func TestDictionaryMemberAttributes(t *testing.T) {
	def := parseOne(t, `dictionary D { [EnforceRange] required unsigned long long id; (long or boolean) opt = true; };`)
	require.Empty(t, ast.Errors(def), "%s", ast.Format(def))

	members := def.(*ast.Dictionary).Body.Members
	require.Len(t, members, 2)
	require.NotNil(t, members[0].Attributes)
	require.True(t, members[0].Required)
	require.Equal(t, `(integer_type unsigned name: "long long")`, ast.Format(members[0].Type))
	require.Nil(t, members[0].Default)

	require.False(t, members[1].Required)
	require.IsType(t, &ast.UnionType{}, members[1].Type)
	require.Equal(t, `(boolean_literal "true")`, ast.Format(members[1].Default))
}

func TestDefaultValues(t *testing.T) {
	tests := []struct {
		input string
		exp   string
	}{
		{`"str"`, `(string "str")`},
		{`""`, `(string "")`},
		{`[]`, `(empty_sequence)`},
		{`{}`, `(default_dictionary)`},
		{`null`, `(null)`},
		{`undefined`, `(undefined)`},
		{`-1.5e3`, `(decimal "-1.5e3")`},
		{`017`, `(integer "017")`},
		{`NaN`, `(float_constant "NaN")`},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			def := parseOne(t, "dictionary D { any v = "+test.input+"; };")
			require.Empty(t, ast.Errors(def), "%s", ast.Format(def))
			require.Equal(t, test.exp, ast.Format(def.(*ast.Dictionary).Body.Members[0].Default))
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		exp   string
	}{
		{"long", `(integer_type name: "long")`},
		{"unsigned long long", `(integer_type unsigned name: "long long")`},
		{"unsigned short", `(integer_type unsigned name: "short")`},
		{"unrestricted double", `(float_type unrestricted name: "double")`},
		{"float", `(float_type name: "float")`},
		{"bigint", `(scalar_type "bigint")`},
		{"USVString", `(string_type "USVString")`},
		{"Uint8Array", `(buffer_related_type "Uint8Array")`},
		{"object", `(builtin_type "object")`},
		{"symbol?", `(nullable_type type: (builtin_type "symbol"))`},
		{"Foo", `(identifier "Foo")`},
		{"sequence", `(identifier "sequence")`},
		{"sequence<long>?", `(nullable_type type: (sequence_type element_type: (integer_type name: "long")))`},
		{"sequence<long?>", `(sequence_type element_type: (nullable_type type: (integer_type name: "long")))`},
		{"sequence<sequence<long>>", `(sequence_type element_type: (sequence_type element_type: (integer_type name: "long")))`},
		{"FrozenArray<Foo>", `(frozen_array_type element_type: (identifier "Foo"))`},
		{"ObservableArray<any>", `(observable_array_type element_type: (builtin_type "any"))`},
		{"record<DOMString, sequence<long>>",
			`(record_type key_type: (string_type "DOMString") value_type: (sequence_type element_type: (integer_type name: "long")))`},
		{"Promise<undefined>", `(promise_type resolve_type: (builtin_type "undefined"))`},
		{"(long or DOMString?)?",
			`(union_type member_types: (integer_type name: "long") member_types: (nullable_type type: (string_type "DOMString")) nullable)`},
		{"(A or (B or C))",
			`(union_type member_types: (identifier "A") member_types: (union_type member_types: (identifier "B") member_types: (identifier "C")))`},
		{"sequence<[Clamp] octet>",
			`(sequence_type element_type: (type_with_extended_attributes attributes: (extended_attribute_list attributes: ` +
				`(extended_attribute_no_args name: (identifier "Clamp"))) type: (scalar_type "octet")))`},
		{"[AllowShared] ArrayBufferView",
			`(type_with_extended_attributes attributes: (extended_attribute_list attributes: ` +
				`(extended_attribute_no_args name: (identifier "AllowShared"))) type: (identifier "ArrayBufferView"))`},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			typ, errs := ParseType(test.input)
			require.Empty(t, errs)
			require.NotNil(t, typ)
			require.Equal(t, test.exp, ast.Format(typ))
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"unsigned unsigned long", "Duplicate unsigned modifier"},
		{"unrestricted unrestricted float", "Duplicate unrestricted modifier"},
		{"unsigned double", "Expected short or long"},
		{"unrestricted long", "Expected float or double"},
		{"long unsigned", `Unexpected keyword "unsigned" after type`},
		{"double unrestricted x", "Modifier unrestricted must precede the type"},
		{"Promise<long>?", "Type cannot be nullable here"},
		{"long??", "Type cannot be nullable here"},
		{"(long)", "Union types need at least two member types"},
		{"record<long, DOMString>", "Record keys must be ByteString, DOMString or USVString"},
		{"sequence<long", "Expected '>', found end of file"},
		{";", "Expected type, found ';'"},
		{"", "Expected type, found end of file"},
		{"long $", "unrecognized input"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, errs := ParseType(test.input)
			require.NotEmpty(t, errs)
			require.Contains(t, errorMessages(errs), test.err)
		})
	}
}

func errorMessages(errs []*ast.ErrorNode) string {
	var messages []string
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "\n")
}

func TestParseExtendedAttributeList(t *testing.T) {
	list, errs := ParseExtendedAttributeList(`[A, B(long x), C=D, E=(F, G), H=I(DOMString s), J=*]`)
	require.Empty(t, errs)
	require.Equal(t, `(extended_attribute_list `+
		`attributes: (extended_attribute_no_args name: (identifier "A")) `+
		`attributes: (extended_attribute_arg_list name: (identifier "B") arguments: (argument_list arguments: `+
		`(argument type: (integer_type name: "long") name: (identifier "x")))) `+
		`attributes: (extended_attribute_ident name: (identifier "C") value: (identifier "D")) `+
		`attributes: (extended_attribute_ident_list name: (identifier "E") values: (identifier "F") values: (identifier "G")) `+
		`attributes: (extended_attribute_named_arg_list name: (identifier "H") identifier: (identifier "I") arguments: `+
		`(argument_list arguments: (argument type: (string_type "DOMString") name: (identifier "s")))) `+
		`attributes: (extended_attribute_wildcard name: (identifier "J")))`, ast.Format(list))

	first := list.Attributes[0].NodeBase()
	require.Equal(t, 1, first.Start)
	require.Equal(t, 2, first.End)
	require.Equal(t, 0, list.Start)
	require.Equal(t, len(`[A, B(long x), C=D, E=(F, G), H=I(DOMString s), J=*]`), list.End)
}

func TestParseExtendedAttributeListErrors(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{"[]", "Extended attribute list cannot be empty"},
		{"[A,]", "Expected extended attribute, found ']'"},
		{"[A=]", "Expected identifier, identifier list or '*' after '='"},
		{"[A B]", "Expected ']', found identifier B"},
		{"[A=(B,)]", "Expected identifier, found ')'"},
		{"A", "Expected '[', found identifier A"},
		{"[A] B", "Unexpected identifier B after extended attribute list"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, errs := ParseExtendedAttributeList(test.input)
			require.NotEmpty(t, errs)
			require.Contains(t, errorMessages(errs), test.err)
		})
	}
}

func TestMissingSemicolonAfterBody(t *testing.T) {
	const input = `interface Foo { attribute long x; }`
	f := Parse(input)
	require.Len(t, f.Definitions, 1)

	iface, ok := f.Definitions[0].(*ast.Interface)
	require.True(t, ok)
	require.Equal(t, "Foo", iface.Name.Name)
	require.Len(t, iface.Body.Members, 1)
	require.Empty(t, iface.Errors)

	errs := ast.Errors(f)
	require.Len(t, errs, 1)
	require.Equal(t, iface.Body.Errors, errs)
	require.Equal(t, ast.StructuralError, errs[0].ErrKind)
	require.Equal(t, "Expected ';' after '}' closing interface, found end of file", errs[0].Message)
	require.Equal(t, len(input), errs[0].Start)
}

func TestMissingSemicolonKeepsNextDefinition(t *testing.T) {
	f := Parse("dictionary A {}\nenum B { \"x\" };\nnamespace C {}\ntypedef long D;")
	kinds := definitionKinds(f)
	require.Equal(t, []string{"dictionary", "enum", "namespace", "typedef"}, kinds)

	errs := ast.Errors(f)
	require.Len(t, errs, 2)
	require.Equal(t, f.Definitions[0].(*ast.Dictionary).Body.Errors[0], errs[0])
	require.Equal(t, f.Definitions[2].NodeBase().Errors[0], errs[1])
}

func definitionKinds(f *ast.File) []string {
	var kinds []string
	for _, def := range f.Definitions {
		kinds = append(kinds, def.Kind())
	}
	return kinds
}

func TestRecovery(t *testing.T) {
	t.Run("top level garbage", func(t *testing.T) {
		f := Parse(`interface A {}; garbage here; interface B {};`)
		require.Equal(t, []string{"interface", "ERROR", "interface"}, definitionKinds(f))

		e := f.Definitions[1].(*ast.ErrorNode)
		require.Equal(t, "Unexpected identifier garbage at top level", e.Message)
		require.Equal(t, `garbage here;`, `interface A {}; garbage here; interface B {};`[e.Start:e.End])
		require.Len(t, ast.Errors(f), 1)
	})

	t.Run("stray closing brace", func(t *testing.T) {
		f := Parse(`}; enum E { "a" };`)
		require.Equal(t, []string{"ERROR", "enum"}, definitionKinds(f))
	})

	t.Run("bad partial", func(t *testing.T) {
		f := Parse(`partial enum E { "a" }; typedef long L;`)
		require.Equal(t, []string{"ERROR", "enum", "typedef"}, definitionKinds(f))
		e := f.Definitions[0].(*ast.ErrorNode)
		require.Equal(t, `Expected interface, namespace or dictionary after partial, found keyword "enum"`, e.Message)
		require.Equal(t, 0, e.Start)
		require.Equal(t, len("partial"), e.End)
	})

	t.Run("broken member", func(t *testing.T) {
		def := parseOne(t, `interface A { attribute long; readonly attribute DOMString y; };`)
		members := def.(*ast.Interface).Body.Members
		require.Len(t, members, 2)
		require.Nil(t, members[0].Member.(*ast.Attribute).Name)
		require.Equal(t, "y", members[1].Member.(*ast.Attribute).Name.Name)

		errs := ast.Errors(def)
		require.Len(t, errs, 1)
		require.Equal(t, "Expected identifier, found ';'", errs[0].Message)
	})

	t.Run("member missing semicolon", func(t *testing.T) {
		def := parseOne(t, `interface A { attribute long x attribute long y; const long Z = 1; };`)
		members := def.(*ast.Interface).Body.Members
		require.Len(t, members, 3)
		require.Len(t, ast.Errors(def), 1)
	})

	t.Run("skip to semicolon", func(t *testing.T) {
		def := parseOne(t, `interface A { void f(long x y); attribute long z; };`)
		members := def.(*ast.Interface).Body.Members
		require.Len(t, members, 2)
		require.Equal(t, "z", members[1].Member.(*ast.Attribute).Name.Name)
	})

	t.Run("missing closing brace", func(t *testing.T) {
		def := parseOne(t, `interface A { attribute long x;`)
		iface := def.(*ast.Interface)
		require.Len(t, iface.Body.Members, 1)
		errs := ast.Errors(def)
		require.Len(t, errs, 1)
		require.Equal(t, "Expected '}', found end of file", errs[0].Message)
	})

	t.Run("bad enum value", func(t *testing.T) {
		f := Parse(`enum E { "a", b }; typedef long L;`)
		require.Equal(t, []string{"enum", "typedef"}, definitionKinds(f))
		require.Len(t, f.Definitions[0].(*ast.Enum).Values, 1)
		require.Equal(t, "Expected enum value, found identifier b", ast.Errors(f)[0].Message)
	})

	t.Run("lexical error", func(t *testing.T) {
		def := parseOne(t, `interface A { $ attribute long x; };`)
		require.Len(t, def.(*ast.Interface).Body.Members, 1)
		errs := ast.Errors(def)
		require.Len(t, errs, 1)
		require.Equal(t, ast.LexicalError, errs[0].ErrKind)
		require.Equal(t, 14, errs[0].Start)
		require.Equal(t, 15, errs[0].End)
	})

	t.Run("lexical error between definitions", func(t *testing.T) {
		const input = `interface A {}; $ interface B {};`
		f := Parse(input)
		require.Equal(t, []string{"interface", "interface"}, definitionKinds(f))
		require.Empty(t, ast.Errors(f.Definitions[0]))
		require.Empty(t, ast.Errors(f.Definitions[1]))
		require.Len(t, f.Errors, 1)
		require.Equal(t, ast.LexicalError, f.Errors[0].ErrKind)
		require.Equal(t, "$", input[f.Errors[0].Start:f.Errors[0].End])
	})

	t.Run("lexical error between members", func(t *testing.T) {
		def := parseOne(t, `interface A { attribute long x; $ attribute long y; };`)
		members := def.(*ast.Interface).Body.Members
		require.Len(t, members, 2)
		require.Empty(t, ast.Errors(members[1]))
		require.Len(t, def.(*ast.Interface).Body.Errors, 1)
	})

	t.Run("unterminated string", func(t *testing.T) {
		f := Parse(`enum E { "a };`)
		errs := ast.Errors(f)
		require.NotEmpty(t, errs)
		require.Equal(t, ast.LexicalError, errs[0].ErrKind)
		require.Equal(t, "unterminated string literal", errs[0].Message)
	})

	t.Run("trailing lexical error", func(t *testing.T) {
		f := Parse(`typedef long L; #`)
		require.Len(t, f.Definitions, 1)
		require.Len(t, f.Errors, 1)
		require.Equal(t, ast.LexicalError, f.Errors[0].ErrKind)
	})
}

func TestMembersNotAllowed(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{`interface mixin M { constructor(); attribute long x; };`, "Constructor is not allowed in mixin"},
		{`interface mixin M { iterable<long>; attribute long x; };`, "Iterable is not allowed in mixin"},
		{`partial interface P { constructor(); attribute long x; };`, "Constructor is not allowed in partial interface"},
		{`namespace N { stringifier; attribute long x; };`, "Stringifier is not allowed in namespace"},
		{`partial namespace N { setlike<long>; attribute long x; };`, "Setlike is not allowed in partial namespace"},
	}
	for _, test := range tests {
		t.Run(test.err, func(t *testing.T) {
			def := parseOne(t, test.input)
			errs := ast.Errors(def)
			require.Len(t, errs, 1)
			require.Equal(t, test.err, errs[0].Message)

			var members int
			ast.Inspect(def, func(n ast.Node) bool {
				if _, ok := n.(*ast.Attribute); ok {
					members++
				}
				return true
			})
			require.Equal(t, 1, members)
		})
	}

	t.Run("errors inside a dropped member", func(t *testing.T) {
		def := parseOne(t, `interface mixin M { constructor(long); attribute long x; };`)
		body := def.(*ast.Mixin).Body
		require.Len(t, body.Members, 1)
		msgs := errorMessages(ast.Errors(def))
		require.Contains(t, msgs, "Constructor is not allowed in mixin")
		require.Contains(t, msgs, "Expected identifier, found ')'")
		require.Equal(t, ast.Errors(def), ast.Errors(body))
	})
}

func TestInvalidCombinations(t *testing.T) {
	tests := []struct {
		input string
		err   string
	}{
		{`interface A { inherit readonly attribute long x; };`, "Inherited attributes cannot be readonly"},
		{`interface A { stringifier inherit attribute DOMString s; };`, "Stringifier attributes cannot be inherited"},
		{`interface A { static inherit attribute long x; };`, "Static attributes cannot be inherited"},
		{`interface mixin M : Base {};`, "Mixin cannot inherit"},
		{`partial interface P : Base {};`, "Partial interface cannot inherit"},
		{`interface A { undefined f(optional long... x); };`, "Optional arguments cannot be variadic"},
		{`interface A { undefined f(long x = 1); };`, "Only optional arguments can have a default value"},
		{`enum E {};`, "Enum must have at least one value"},
	}
	for _, test := range tests {
		t.Run(test.err, func(t *testing.T) {
			f := Parse(test.input)
			require.Len(t, f.Definitions, 1)
			errs := ast.Errors(f)
			require.Len(t, errs, 1, "%s", ast.Format(f))
			require.Equal(t, test.err, errs[0].Message)
		})
	}
}

func TestKeywordsAsIdentifiers(t *testing.T) {
	def := parseOne(t, `interface interface { attribute long attribute; undefined includes(DOMString required); };`)
	require.Empty(t, ast.Errors(def))
	require.Equal(t, `(interface name: (identifier "interface") body: (interface_members `+
		`members: (interface_member member: (attribute type: (type_with_extended_attributes type: (integer_type name: "long")) `+
		`name: (identifier "attribute"))) `+
		`members: (interface_member member: (regular_operation return_type: (builtin_type "undefined") name: (identifier "includes") `+
		`arguments: (argument_list arguments: (argument type: (string_type "DOMString") name: (identifier "required")))))))`,
		ast.Format(def))

	def = parseOne(t, `dictionary required { DOMString required; };`)
	require.Empty(t, ast.Errors(def))
	m := def.(*ast.Dictionary).Body.Members[0]
	require.False(t, m.Required)
	require.Equal(t, "required", m.Name.Name)

	def = parseOne(t, `interface A { attribute long unsigned; };`)
	require.Empty(t, ast.Errors(def))
	require.Equal(t, "unsigned", def.(*ast.Interface).Body.Members[0].Member.(*ast.Attribute).Name.Name)

	def = parseOne(t, `interface A { undefined f(long long); undefined g((short or long long) x, long long, optional long long = 1); };`)
	require.Empty(t, ast.Errors(def), "%s", ast.Format(def))
	members := def.(*ast.Interface).Body.Members
	require.Len(t, members, 2)
	f := members[0].Member.(*ast.RegularOperation).Arguments.Arguments
	require.Len(t, f, 1)
	require.Equal(t, `(argument type: (integer_type name: "long") name: (identifier "long"))`, ast.Format(f[0]))
	g := members[1].Member.(*ast.RegularOperation).Arguments.Arguments
	require.Len(t, g, 3)
	require.Equal(t, `(argument type: (union_type member_types: (integer_type name: "short") `+
		`member_types: (integer_type name: "long long")) name: (identifier "x"))`, ast.Format(g[0]))
	require.Equal(t, `(argument type: (integer_type name: "long") name: (identifier "long"))`, ast.Format(g[1]))
	require.Equal(t, `(argument optional type: (integer_type name: "long") name: (identifier "long") default: (integer "1"))`, ast.Format(g[2]))
}

func TestKeywordsMatchGrammar(t *testing.T) {
	g, err := grammar.Load()
	require.NoError(t, err)

	var kws []string
	for kw := range keywords {
		kws = append(kws, kw)
	}
	sort.Strings(kws)
	require.Equal(t, grammar.Keywords(g), kws)
}

func TestComments(t *testing.T) {
	f := Parse("// An element.\n[Exposed=Window]\ninterface A {\n  /* the x */\n  attribute long x;\n};\n")
	require.Empty(t, ast.Errors(f))

	iface := f.Definitions[0].(*ast.Interface)
	require.Equal(t, []string{"// An element."}, iface.Comments)
	require.Empty(t, iface.Attributes.Comments)

	m := iface.Body.Members[0]
	require.Equal(t, []string{"/* the x */"}, m.Comments)
	require.Empty(t, m.Member.NodeBase().Comments)
}

func TestPositions(t *testing.T) {
	const input = "interface A {\n  attribute long x;\n};\n"
	f := Parse(input)
	require.Empty(t, ast.Errors(f))
	require.Equal(t, 0, f.Start)
	require.Equal(t, len(input), f.End)

	iface := f.Definitions[0].(*ast.Interface)
	require.Equal(t, 0, iface.Start)
	require.Equal(t, len(input)-1, iface.End)
	require.Equal(t, "A", input[iface.Name.Start:iface.Name.End])

	m := iface.Body.Members[0]
	require.Equal(t, "attribute long x;", input[m.Start:m.End])
	require.Equal(t, "{\n  attribute long x;\n}", input[iface.Body.Start:iface.Body.End])

	pos := f.Position(m.Start)
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 3, pos.Column)
	require.Equal(t, "2:3", pos.String())

	require.Equal(t, []string{"attribute", "long", "x", ";"}, tokenValues(f.TokensIn(m)))
}

func TestOffset(t *testing.T) {
	f := ParseOptions("typedef long L;", Options{Offset: 100})
	require.Equal(t, 100, f.Start)
	require.Equal(t, 115, f.End)

	def := f.Definitions[0].(*ast.Typedef)
	require.Equal(t, 100, def.Start)
	require.Equal(t, 115, def.End)
	require.Equal(t, 113, def.Name.Start)
	require.Equal(t, ast.Token{Value: "typedef", Start: 100, End: 107}, f.Tokens[0])

	pos := f.Position(def.Name.Start)
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 14, pos.Column)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ParseOptions("interface A {}; ]", Options{Logger: logger})

	out := buf.String()
	assert.Contains(t, out, "msg=definition kind=interface")
	assert.Contains(t, out, "msg=\"syntax error\"")
	assert.Contains(t, out, "msg=parsed definitions=2")
}

// sampleParts are standalone definitions; sampleIDL is their concatenation.
var sampleParts = []string{
	"[Exposed=Window]\ninterface Node : EventTarget {\n" +
		"  const unsigned short ELEMENT_NODE = 1;\n" +
		"  [Pure] readonly attribute DOMString nodeName;\n" +
		"  attribute DOMString? textContent;\n" +
		"  Node appendChild(Node node);\n" +
		"  iterable<Node>;\n" +
		"};\n",
	"dictionary EventInit {\n  boolean bubbles = false;\n  required sequence<(DOMString or long)> names;\n};\n",
	"enum ScrollBehavior { \"auto\", \"smooth\" };\n",
	"callback EventHandler = undefined (Event event);\n",
	"interface mixin Slotable { readonly attribute HTMLSlotElement? assignedSlot; };\n",
	"Element includes Slotable;\n",
	"namespace CSS { boolean supports(CSSOMString property, CSSOMString value); };\n",
	"partial interface Window { [Replaceable] readonly attribute double devicePixelRatio; };\n",
	"typedef record<USVString, [Clamp] octet> Bytes;\n",
}

var sampleIDL = strings.Join(sampleParts, "")

func TestConcatenation(t *testing.T) {
	whole := Parse(sampleIDL)
	require.Empty(t, ast.Errors(whole), "%s", ast.Format(whole))

	require.Len(t, whole.Definitions, len(sampleParts))

	var (
		offset int
		defs   []ast.Definition
	)
	for _, part := range sampleParts {
		f := ParseOptions(part, Options{Offset: offset})
		require.Empty(t, ast.Errors(f), "%s", part)
		require.Len(t, f.Definitions, 1, "%s", part)
		defs = append(defs, f.Definitions...)
		offset += len(part)
	}
	require.Equal(t, defs, whole.Definitions)
}

func tokenValues(tokens []ast.Token) []string {
	var out []string
	for _, tok := range tokens {
		out = append(out, tok.Value)
	}
	return out
}

func TestTokenRoundTrip(t *testing.T) {
	input := "// leading\n" + sampleIDL + "/* trailing */\n"
	f := Parse(input)
	require.Empty(t, ast.Errors(f))

	stripped := input
	stripped = strings.ReplaceAll(stripped, "// leading", "")
	stripped = strings.ReplaceAll(stripped, "/* trailing */", "")
	require.Equal(t, strings.Join(strings.Fields(stripped), ""), strings.Join(tokenValues(f.Tokens), ""))

	for _, tok := range f.Tokens {
		require.Equal(t, tok.Value, input[tok.Start:tok.End])
	}
	for i := 1; i < len(f.Tokens); i++ {
		require.LessOrEqual(t, f.Tokens[i-1].End, f.Tokens[i].Start)
	}
}

func TestIdempotence(t *testing.T) {
	first := Parse(sampleIDL)
	require.Empty(t, ast.Errors(first))

	rendered := strings.Join(tokenValues(first.Tokens), " ")
	second := Parse(rendered)
	require.Empty(t, ast.Errors(second))

	require.Equal(t, ast.Format(first), ast.Format(second))
	require.Equal(t, tokenValues(first.Tokens), tokenValues(second.Tokens))
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n", "// just a comment\n", "/* block */"} {
		f := Parse(input)
		require.Empty(t, f.Definitions)
		require.Empty(t, ast.Errors(f))
		require.Empty(t, f.Tokens)
		require.Equal(t, len(input), f.End)
	}
}

func TestDump(t *testing.T) {
	typ, errs := ParseType("long")
	require.Empty(t, errs)
	out := DumpString(typ)
	require.Contains(t, out, "ast.IntegerType")
	require.Contains(t, out, `"long"`)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, typ))
	require.Equal(t, out, buf.String())

	f := Parse("typedef long L;")
	require.NotEmpty(t, f.Tokens)
	out = DumpString(f)
	require.Contains(t, out, "ast.Typedef")
	require.NotContains(t, out, "ast.Token{")
	require.NotEmpty(t, f.Tokens)

	require.Contains(t, DumpString(ast.Errors(Parse("typedef;"))), "ast.ErrorNode")
}
