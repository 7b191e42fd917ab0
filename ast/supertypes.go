package ast

func (*CallbackInterface) definitionNode() {}
func (*CallbackFunction) definitionNode() {}
func (*Interface) definitionNode() {}
func (*Mixin) definitionNode() {}
func (*Namespace) definitionNode() {}
func (*PartialInterface) definitionNode() {}
func (*PartialMixin) definitionNode() {}
func (*PartialNamespace) definitionNode() {}
func (*PartialDictionary) definitionNode() {}
func (*Dictionary) definitionNode() {}
func (*Enum) definitionNode() {}
func (*Typedef) definitionNode() {}
func (*IncludesStatement) definitionNode() {}
func (*ImplementsStatement) definitionNode() {}
func (*ErrorNode) definitionNode() {}

func (*Const) interfaceMemberNode() {}
func (*RegularOperation) interfaceMemberNode() {}
func (*SpecialOperation) interfaceMemberNode() {}
func (*Stringifier) interfaceMemberNode() {}
func (*StaticMember) interfaceMemberNode() {}
func (*Iterable) interfaceMemberNode() {}
func (*AsyncIterable) interfaceMemberNode() {}
func (*Attribute) interfaceMemberNode() {}
func (*Maplike) interfaceMemberNode() {}
func (*Setlike) interfaceMemberNode() {}
func (*Constructor) interfaceMemberNode() {}

func (*Const) mixinMemberNode() {}
func (*RegularOperation) mixinMemberNode() {}
func (*SpecialOperation) mixinMemberNode() {}
func (*Stringifier) mixinMemberNode() {}
func (*StaticMember) mixinMemberNode() {}
func (*Attribute) mixinMemberNode() {}
func (*Maplike) mixinMemberNode() {}
func (*Setlike) mixinMemberNode() {}

func (*Const) partialInterfaceMemberNode() {}
func (*RegularOperation) partialInterfaceMemberNode() {}
func (*SpecialOperation) partialInterfaceMemberNode() {}
func (*Stringifier) partialInterfaceMemberNode() {}
func (*StaticMember) partialInterfaceMemberNode() {}
func (*Iterable) partialInterfaceMemberNode() {}
func (*AsyncIterable) partialInterfaceMemberNode() {}
func (*Attribute) partialInterfaceMemberNode() {}
func (*Maplike) partialInterfaceMemberNode() {}
func (*Setlike) partialInterfaceMemberNode() {}

func (*RegularOperation) namespaceMemberNode() {}
func (*Attribute) namespaceMemberNode() {}
func (*Const) namespaceMemberNode() {}

func (*Attribute) staticMemberNode() {}
func (*RegularOperation) staticMemberNode() {}

func (*RegularOperation) operationNode() {}
func (*SpecialOperation) operationNode() {}

func (*IntegerType) typeNode() {}
func (*FloatType) typeNode() {}
func (*ScalarType) typeNode() {}
func (*BuiltinType) typeNode() {}
func (*StringType) typeNode() {}
func (*BufferRelatedType) typeNode() {}
func (*Identifier) typeNode() {}
func (*SequenceType) typeNode() {}
func (*FrozenArrayType) typeNode() {}
func (*ObservableArrayType) typeNode() {}
func (*RecordType) typeNode() {}
func (*NullableType) typeNode() {}
func (*UnionType) typeNode() {}
func (*PromiseType) typeNode() {}
func (*TypeWithExtendedAttributes) typeNode() {}

func (*IntegerType) singleTypeNode() {}
func (*FloatType) singleTypeNode() {}
func (*ScalarType) singleTypeNode() {}
func (*BuiltinType) singleTypeNode() {}
func (*StringType) singleTypeNode() {}
func (*BufferRelatedType) singleTypeNode() {}
func (*Identifier) singleTypeNode() {}
func (*SequenceType) singleTypeNode() {}
func (*FrozenArrayType) singleTypeNode() {}
func (*ObservableArrayType) singleTypeNode() {}
func (*RecordType) singleTypeNode() {}
func (*NullableType) singleTypeNode() {}

func (*IntegerType) primitiveTypeNode() {}
func (*FloatType) primitiveTypeNode() {}
func (*ScalarType) primitiveTypeNode() {}

func (*IntegerType) constTypeNode() {}
func (*FloatType) constTypeNode() {}
func (*ScalarType) constTypeNode() {}
func (*Identifier) constTypeNode() {}

func (*BooleanLiteral) defaultValueNode() {}
func (*Integer) defaultValueNode() {}
func (*Decimal) defaultValueNode() {}
func (*FloatConstant) defaultValueNode() {}
func (*String) defaultValueNode() {}
func (*EmptySequence) defaultValueNode() {}
func (*DefaultDictionary) defaultValueNode() {}
func (*NullLiteral) defaultValueNode() {}
func (*UndefinedLiteral) defaultValueNode() {}

func (*BooleanLiteral) constValueNode() {}
func (*Integer) constValueNode() {}
func (*Decimal) constValueNode() {}
func (*FloatConstant) constValueNode() {}

func (*Decimal) floatLiteralNode() {}
func (*FloatConstant) floatLiteralNode() {}

func (*ExtendedAttributeNoArgs) extendedAttributeNode() {}
func (*ExtendedAttributeArgList) extendedAttributeNode() {}
func (*ExtendedAttributeIdent) extendedAttributeNode() {}
func (*ExtendedAttributeIdentList) extendedAttributeNode() {}
func (*ExtendedAttributeNamedArgList) extendedAttributeNode() {}
func (*ExtendedAttributeWildcard) extendedAttributeNode() {}
