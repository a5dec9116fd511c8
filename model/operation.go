package model

// ResourceGroup partitions API operations, e.g. by controller or tag.
// The core only uses it as a partition key.
type ResourceGroup struct {
	Name        string
	Description string
}

// String implements fmt.Stringer.
func (g ResourceGroup) String() string {
	return g.Name
}

// Parameter is one input of an operation.
type Parameter struct {
	Name string
	// In is "body", "query", "path", "header" or "form".
	In       string
	Type     ResolvedType
	Required bool
}

// IsBody reports whether p is carried in the request body.
func (p Parameter) IsBody() bool {
	return p.In == "" || p.In == "body"
}

// Operation is the scanning context of one API operation.
type Operation struct {
	ID     string
	Method string
	Path   string
	Group  ResourceGroup
	// ReturnType is the response body type, nil when the operation
	// returns nothing.
	ReturnType *ResolvedType
	Parameters []Parameter
	// Ignorable lists wrapper or paging types that must never be expanded
	// into documented models.
	Ignorable []ResolvedType
}
