package ontology

// Term is either a ground Entity or an unbound Parameter. Facts used
// inside Conditions/Modifications may carry Parameter terms (to be
// unified during planning); Facts stored in world state are always fully
// ground (every term is an Entity) — see fact.Fact.IsGround.
type Term interface {
	fmt() string
	isTerm()
}

func (e Entity) fmt() string   { return e.String() }
func (e Entity) isTerm()       {}
func (p Parameter) fmt() string { return p.String() }
func (p Parameter) isTerm()    {}

// TermString renders any Term using its natural String()/fmt form.
func TermString(t Term) string {
	return t.fmt()
}

// AsParameter type-asserts t as a Parameter, reporting ok=false if t is
// ground.
func AsParameter(t Term) (Parameter, bool) {
	p, ok := t.(Parameter)
	return p, ok
}

// AsEntity type-asserts t as an Entity, reporting ok=false if t is a
// Parameter.
func AsEntity(t Term) (Entity, bool) {
	e, ok := t.(Entity)
	return e, ok
}
