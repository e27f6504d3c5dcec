package model

// SourceUnit is the structural model of one parsed submission.
// It is built once per submission by the code index and shared read-only
// across all checker evaluations; nothing mutates it after construction.
type SourceUnit struct {
	Language string
	Classes  []*ClassModel
}

// ClassModel holds the indexed structure of a single class declaration
type ClassModel struct {
	Namespace string
	Name      string
	Methods   []*MethodModel
	Fields    []*FieldModel

	// ReferencedTypes is the set of type names this class mentions in
	// field types, parameter types, return types and instantiations.
	// Used for coupling metrics.
	ReferencedTypes map[string]bool

	StartLine int
	EndLine   int
}

// MethodModel holds the control-flow and identifier data of one method
type MethodModel struct {
	Name       string
	Parameters []string

	// DecisionPoints counts branches found in the body (if, loop
	// conditions, case labels, ternary, catch, && and ||), so
	// cyclomatic complexity is DecisionPoints + 1.
	DecisionPoints int

	// Identifiers are the names declared or used inside the method:
	// parameters, locals and loop variables.
	Identifiers []string

	IsConstructor bool

	// Own-field accesses vs calls on other objects, collected for the
	// advisory stereotype ratio.
	OwnFieldAccesses int
	ExternalCalls    int

	StartLine int
	EndLine   int
}

// FieldModel is a field or property declaration on a class
type FieldModel struct {
	Name string
	Type string
}

// FullName returns the Namespace.Name address of the class
func (c *ClassModel) FullName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "." + c.Name
}

// GetNOM returns the number of methods, constructors excluded
func (c *ClassModel) GetNOM() int {
	count := 0
	for _, method := range c.Methods {
		if !method.IsConstructor {
			count++
		}
	}
	return count
}

// GetWMC returns the sum of cyclomatic complexity over the class's
// directly declared methods
func (c *ClassModel) GetWMC() int {
	total := 0
	for _, method := range c.Methods {
		total += method.Complexity()
	}
	return total
}

// GetMethodsByName returns all methods with the given name.
// More than one entry means the name is overloaded.
func (c *ClassModel) GetMethodsByName(name string) []*MethodModel {
	var result []*MethodModel
	for _, method := range c.Methods {
		if method.Name == name {
			result = append(result, method)
		}
	}
	return result
}

// Complexity returns the cyclomatic complexity of the method
func (m *MethodModel) Complexity() int {
	return m.DecisionPoints + 1
}

// GetClassesByFullName returns all classes matching a Namespace.Name
// address. More than one entry means the address is ambiguous.
func (u *SourceUnit) GetClassesByFullName(fullName string) []*ClassModel {
	var result []*ClassModel
	for _, class := range u.Classes {
		if class.FullName() == fullName {
			result = append(result, class)
		}
	}
	return result
}

// MethodRef pairs a method with its declaring class
type MethodRef struct {
	Class  *ClassModel
	Method *MethodModel
}

// Address returns the Namespace.Class.Method address of the method
func (r MethodRef) Address() string {
	return r.Class.FullName() + "." + r.Method.Name
}

// AllMethods returns every method in the submission with its declaring class
func (u *SourceUnit) AllMethods() []MethodRef {
	var result []MethodRef
	for _, class := range u.Classes {
		for _, method := range class.Methods {
			result = append(result, MethodRef{Class: class, Method: method})
		}
	}
	return result
}
