package model

// SnippetIDAllCode selects the entire submission
const SnippetIDAllCode = "ALL_CODE"

// ScopeKind identifies which structural level a snippet id resolved to
type ScopeKind string

const (
	ScopeUnit   ScopeKind = "unit"
	ScopeClass  ScopeKind = "class"
	ScopeMethod ScopeKind = "method"
)

// Scope is the result of resolving a snippet id against a SourceUnit.
// Exactly one of Class/Method is set for the class and method kinds;
// OwnerClass is set alongside Method.
type Scope struct {
	Kind       ScopeKind
	Unit       *SourceUnit
	Class      *ClassModel
	Method     *MethodModel
	OwnerClass *ClassModel
}

// Classes returns the classes covered by the scope
func (s Scope) Classes() []*ClassModel {
	switch s.Kind {
	case ScopeUnit:
		return s.Unit.Classes
	case ScopeClass:
		return []*ClassModel{s.Class}
	case ScopeMethod:
		return nil
	}
	return nil
}

// Methods returns the methods covered by the scope with their classes
func (s Scope) Methods() []MethodRef {
	switch s.Kind {
	case ScopeUnit:
		return s.Unit.AllMethods()
	case ScopeClass:
		var result []MethodRef
		for _, method := range s.Class.Methods {
			result = append(result, MethodRef{Class: s.Class, Method: method})
		}
		return result
	case ScopeMethod:
		return []MethodRef{{Class: s.OwnerClass, Method: s.Method}}
	}
	return nil
}
