package lexical

import (
	"strings"

	"maintbot/internal/model"
)

// Match records one banned word found inside one identifier
type Match struct {
	Word       string `json:"word"`
	Identifier string `json:"identifier"`
}

// CollectIdentifiers gathers every identifier visible in the scope:
// class names, method names, parameter names, locals and loop
// variables, field and property names. Identifiers come from the
// structural model, never from re-scanning raw source text, which keeps
// the substring matching below precise.
func CollectIdentifiers(scope model.Scope) []string {
	var result []string
	seen := make(map[string]bool)

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		result = append(result, name)
	}

	for _, class := range scope.Classes() {
		add(class.Name)
		for _, field := range class.Fields {
			add(field.Name)
		}
	}

	for _, ref := range scope.Methods() {
		if !ref.Method.IsConstructor {
			add(ref.Method.Name)
		}
		for _, ident := range ref.Method.Identifiers {
			add(ident)
		}
	}

	// A method scope still exposes its declaring class's field names;
	// the method body can reference them without declaring them.
	if scope.Kind == model.ScopeMethod && scope.OwnerClass != nil {
		for _, field := range scope.OwnerClass.Fields {
			add(field.Name)
		}
	}

	return result
}

// ContainsWord reports whether the identifier contains the word,
// case-insensitive and substring-based: identifier "certificateSet"
// matches word "set", and so does "Setup". The over-matching is
// deliberate, which is also why a match cannot pinpoint a location.
func ContainsWord(identifier, word string) bool {
	return strings.Contains(strings.ToLower(identifier), strings.ToLower(word))
}

// FindBanned returns every (word, identifier) pair where a banned word
// appears inside an identifier in scope
func FindBanned(identifiers []string, words []string) []Match {
	var matches []Match
	for _, word := range words {
		for _, ident := range identifiers {
			if ContainsWord(ident, word) {
				matches = append(matches, Match{Word: word, Identifier: ident})
			}
		}
	}
	return matches
}

// FindMissing returns the required words absent from every identifier
// in scope. The check is scope-wide, not placement-aware: a required
// word matching an unrelated identifier still satisfies it.
func FindMissing(identifiers []string, words []string) []string {
	var missing []string
	for _, word := range words {
		found := false
		for _, ident := range identifiers {
			if ContainsWord(ident, word) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, word)
		}
	}
	return missing
}
