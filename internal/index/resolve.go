package index

import (
	"strings"

	"maintbot/internal/model"
)

// Resolve maps a snippet id to the narrowest structural element
// matching it: ALL_CODE selects the unit, Namespace.Class a class,
// Namespace.Class.Method a single method. Resolution is exact-match;
// an id matching nothing fails with UnknownSnippetError and an id
// matching more than one element (duplicate class address, overloaded
// method name) fails with AmbiguousSnippetError rather than guessing.
//
// Scope.Unit is always populated: coupling metrics need the full
// submission snapshot even when the scope is a single class.
func Resolve(unit *model.SourceUnit, snippetID string) (model.Scope, error) {
	if snippetID == model.SnippetIDAllCode {
		return model.Scope{Kind: model.ScopeUnit, Unit: unit}, nil
	}

	var methodMatches []model.MethodRef
	if idx := strings.LastIndex(snippetID, "."); idx > 0 {
		classAddr := snippetID[:idx]
		methodName := snippetID[idx+1:]
		for _, class := range unit.GetClassesByFullName(classAddr) {
			for _, method := range class.GetMethodsByName(methodName) {
				methodMatches = append(methodMatches, model.MethodRef{Class: class, Method: method})
			}
		}
	}

	classMatches := unit.GetClassesByFullName(snippetID)

	// A method is narrower than a class, so method matches win when the
	// id could name either.
	switch {
	case len(methodMatches) == 1:
		ref := methodMatches[0]
		return model.Scope{
			Kind:       model.ScopeMethod,
			Unit:       unit,
			Method:     ref.Method,
			OwnerClass: ref.Class,
		}, nil
	case len(methodMatches) > 1:
		return model.Scope{}, &AmbiguousSnippetError{SnippetID: snippetID, Matches: len(methodMatches)}
	case len(classMatches) == 1:
		return model.Scope{
			Kind:  model.ScopeClass,
			Unit:  unit,
			Class: classMatches[0],
		}, nil
	case len(classMatches) > 1:
		return model.Scope{}, &AmbiguousSnippetError{SnippetID: snippetID, Matches: len(classMatches)}
	}

	return model.Scope{}, &UnknownSnippetError{SnippetID: snippetID}
}
