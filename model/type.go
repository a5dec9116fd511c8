package model

import "strings"

// ResolvedType identifies an underlying type, including its generic arguments.
// It is the identity used to bucket models for structural matching.
type ResolvedType struct {
	// Package is the declaring package or namespace (may be empty).
	Package string
	// Name is the simple type name, e.g. "Order" or "Page".
	Name string
	// Args are the generic type arguments, in declaration order.
	Args []ResolvedType
}

// NewType is shorthand for a ResolvedType with no package.
func NewType(name string, args ...ResolvedType) ResolvedType {
	return ResolvedType{Name: name, Args: args}
}

// IsZero reports whether t is the zero ResolvedType.
func (t ResolvedType) IsZero() bool {
	return t.Name == "" && t.Package == "" && len(t.Args) == 0
}

// IsGeneric reports whether t has type arguments.
func (t ResolvedType) IsGeneric() bool {
	return len(t.Args) > 0
}

// QualifiedName returns "package.Name" without generic arguments.
func (t ResolvedType) QualifiedName() string {
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Signature returns the full identity of t, e.g. "com.acme.Page<com.acme.Item>".
// Two types are the same type exactly when their signatures are equal.
func (t ResolvedType) Signature() string {
	var b strings.Builder
	t.writeSignature(&b)
	return b.String()
}

func (t ResolvedType) writeSignature(b *strings.Builder) {
	b.WriteString(t.QualifiedName())
	if len(t.Args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, arg := range t.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		arg.writeSignature(b)
	}
	b.WriteByte('>')
}

// String implements fmt.Stringer.
func (t ResolvedType) String() string {
	return t.Signature()
}

// Equal reports whether t and other denote the same type.
func (t ResolvedType) Equal(other ResolvedType) bool {
	if t.Package != other.Package || t.Name != other.Name || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}
