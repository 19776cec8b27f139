package ontology

// ParameterSigil is the syntactic marker distinguishing a Parameter
// (unbound variable) from an Entity (ground value) in the textual
// grammar (spec.md §3, §6).
const ParameterSigil = "?"

// Parameter is an unbound, typed variable.
type Parameter struct {
	Name string
	Type *Type
}

// NewParameter creates a parameter. Name should not include the sigil;
// String() adds it.
func NewParameter(name string, typ *Type) Parameter {
	return Parameter{Name: name, Type: typ}
}

// String implements fmt.Stringer, rendering the parameter with its sigil.
func (p Parameter) String() string {
	return ParameterSigil + p.Name
}

// AcceptsEntity reports whether e's type is compatible with p's declared
// type (p.Type is-a the entity's type, or vice versa via a common
// ancestor check degrading to a direct IsA test per spec.md §4.1).
func (p Parameter) AcceptsEntity(e Entity) bool {
	if e.IsAny() {
		return true
	}
	return IsA(e.Type(), p.Type) || IsA(p.Type, e.Type())
}
