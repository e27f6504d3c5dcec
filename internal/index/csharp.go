package index

import (
	"fmt"

	"maintbot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
)

// LanguageCSharp is the language key for C# submissions
const LanguageCSharp = "csharp"

func newCSharpParser() (*languageParser, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(csharp.Language())

	err := parser.SetLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("failed to set C# language: %w", err)
	}

	return &languageParser{
		name:    LanguageCSharp,
		parser:  parser,
		extract: extractCSharpClasses,
	}, nil
}

// csharpDecisionKinds are the node kinds counted as decision points.
// Each adds one independent path through the method.
var csharpDecisionKinds = map[string]bool{
	"if_statement":           true,
	"for_statement":          true,
	"for_each_statement":     true,
	"while_statement":        true,
	"do_statement":           true,
	"conditional_expression": true,
	"catch_clause":           true,
	"case_switch_label":      true,
	"switch_expression_arm":  true,
}

func extractCSharpClasses(root *tree_sitter.Node, source []byte) []*model.ClassModel {
	var classes []*model.ClassModel
	walkCSharpScope(root, source, "", &classes)
	return classes
}

// walkCSharpScope descends through namespace declarations, carrying the
// accumulated namespace down to each class declaration.
func walkCSharpScope(node *tree_sitter.Node, source []byte, namespace string, classes *[]*model.ClassModel) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		name := fieldText(node, "name", source)
		if namespace != "" && name != "" {
			name = namespace + "." + name
		} else if name == "" {
			name = namespace
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walkCSharpScope(node.Child(i), source, name, classes)
		}
		return
	case "class_declaration":
		*classes = append(*classes, buildCSharpClass(node, source, namespace))
		// Nested classes are indexed as their own entries
		if body := node.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				child := body.Child(i)
				if child.Kind() == "class_declaration" {
					walkCSharpScope(child, source, namespace, classes)
				}
			}
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walkCSharpScope(node.Child(i), source, namespace, classes)
	}
}

func buildCSharpClass(node *tree_sitter.Node, source []byte, namespace string) *model.ClassModel {
	startLine, endLine := nodeLines(node)
	class := &model.ClassModel{
		Namespace:       namespace,
		Name:            fieldText(node, "name", source),
		ReferencedTypes: make(map[string]bool),
		StartLine:       startLine,
		EndLine:         endLine,
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class
	}

	// Fields and properties first; methods need the field name set for
	// own-field access tracking.
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		switch member.Kind() {
		case "field_declaration":
			decl := firstChildOfKind(member, "variable_declaration")
			if decl == nil {
				continue
			}
			fieldType := fieldText(decl, "type", source)
			collectTypeIdentifiers(decl.ChildByFieldName("type"), source, class.ReferencedTypes)
			walkNodes(decl, func(n *tree_sitter.Node) {
				if n.Kind() == "variable_declarator" {
					if ident := firstChildOfKind(n, "identifier"); ident != nil {
						class.Fields = append(class.Fields, &model.FieldModel{
							Name: ident.Utf8Text(source),
							Type: fieldType,
						})
					}
				}
			})
		case "property_declaration":
			class.Fields = append(class.Fields, &model.FieldModel{
				Name: fieldText(member, "name", source),
				Type: fieldText(member, "type", source),
			})
			collectTypeIdentifiers(member.ChildByFieldName("type"), source, class.ReferencedTypes)
		}
	}

	fieldNames := make(map[string]bool)
	for _, field := range class.Fields {
		fieldNames[field.Name] = true
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		switch member.Kind() {
		case "method_declaration":
			collectTypeIdentifiers(member.ChildByFieldName("type"), source, class.ReferencedTypes)
			class.Methods = append(class.Methods, buildCSharpMethod(member, source, fieldNames, class.ReferencedTypes, false))
		case "constructor_declaration":
			class.Methods = append(class.Methods, buildCSharpMethod(member, source, fieldNames, class.ReferencedTypes, true))
		}
	}

	return class
}

func buildCSharpMethod(node *tree_sitter.Node, source []byte, fieldNames map[string]bool, refs map[string]bool, isConstructor bool) *model.MethodModel {
	startLine, endLine := nodeLines(node)
	method := &model.MethodModel{
		Name:          fieldText(node, "name", source),
		IsConstructor: isConstructor,
		StartLine:     startLine,
		EndLine:       endLine,
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			param := params.Child(i)
			if param.Kind() != "parameter" {
				continue
			}
			name := fieldText(param, "name", source)
			if name == "" {
				if ident := firstChildOfKind(param, "identifier"); ident != nil {
					name = ident.Utf8Text(source)
				}
			}
			if name != "" {
				method.Parameters = append(method.Parameters, name)
				method.Identifiers = append(method.Identifiers, name)
			}
			collectTypeIdentifiers(param.ChildByFieldName("type"), source, refs)
		}
	}

	walkNodes(node, func(n *tree_sitter.Node) {
		kind := n.Kind()

		if csharpDecisionKinds[kind] {
			method.DecisionPoints++
		}

		switch kind {
		case "binary_expression":
			op := fieldText(n, "operator", source)
			if op == "&&" || op == "||" {
				method.DecisionPoints++
			}
		case "variable_declaration":
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
			walkNodes(n, func(inner *tree_sitter.Node) {
				if inner.Kind() == "variable_declarator" {
					if ident := firstChildOfKind(inner, "identifier"); ident != nil {
						method.Identifiers = append(method.Identifiers, ident.Utf8Text(source))
					}
				}
			})
		case "for_each_statement":
			if left := n.ChildByFieldName("left"); left != nil && left.Kind() == "identifier" {
				method.Identifiers = append(method.Identifiers, left.Utf8Text(source))
			}
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
		case "object_creation_expression":
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
		case "member_access_expression":
			if expr := n.ChildByFieldName("expression"); expr != nil && expr.Kind() == "this_expression" {
				method.OwnFieldAccesses++
			}
		case "invocation_expression":
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Kind() == "member_access_expression" {
				expr := fn.ChildByFieldName("expression")
				if expr == nil || expr.Kind() == "this_expression" {
					return
				}
				if expr.Kind() == "identifier" && fieldNames[expr.Utf8Text(source)] {
					method.OwnFieldAccesses++
					return
				}
				method.ExternalCalls++
			}
		case "identifier":
			// Bare reference to a declared field counts as an own-field
			// access unless it is the member side of obj.Field.
			if parent := n.Parent(); parent != nil && parent.Kind() == "member_access_expression" {
				return
			}
			if fieldNames[n.Utf8Text(source)] {
				method.OwnFieldAccesses++
			}
		}
	})

	return method
}
