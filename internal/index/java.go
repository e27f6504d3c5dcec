package index

import (
	"fmt"
	"strings"

	"maintbot/internal/model"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// LanguageJava is the language key for Java submissions
const LanguageJava = "java"

func newJavaParser() (*languageParser, error) {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(java.Language())

	err := parser.SetLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("failed to set Java language: %w", err)
	}

	return &languageParser{
		name:    LanguageJava,
		parser:  parser,
		extract: extractJavaClasses,
	}, nil
}

var javaDecisionKinds = map[string]bool{
	"if_statement":           true,
	"for_statement":          true,
	"enhanced_for_statement": true,
	"while_statement":        true,
	"do_statement":           true,
	"ternary_expression":     true,
	"catch_clause":           true,
}

func extractJavaClasses(root *tree_sitter.Node, source []byte) []*model.ClassModel {
	// The package declaration plays the namespace role in snippet ids
	namespace := ""
	walkNodes(root, func(n *tree_sitter.Node) {
		if n.Kind() == "package_declaration" && namespace == "" {
			for i := uint(0); i < n.NamedChildCount(); i++ {
				child := n.NamedChild(i)
				if child.Kind() == "identifier" || child.Kind() == "scoped_identifier" {
					namespace = child.Utf8Text(source)
					break
				}
			}
		}
	})

	var classes []*model.ClassModel
	walkJavaScope(root, source, namespace, &classes)
	return classes
}

func walkJavaScope(node *tree_sitter.Node, source []byte, namespace string, classes *[]*model.ClassModel) {
	if node == nil {
		return
	}

	if node.Kind() == "class_declaration" {
		*classes = append(*classes, buildJavaClass(node, source, namespace))
		if body := node.ChildByFieldName("body"); body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				child := body.Child(i)
				if child.Kind() == "class_declaration" {
					walkJavaScope(child, source, namespace, classes)
				}
			}
		}
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		walkJavaScope(node.Child(i), source, namespace, classes)
	}
}

func buildJavaClass(node *tree_sitter.Node, source []byte, namespace string) *model.ClassModel {
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

	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member.Kind() != "field_declaration" {
			continue
		}
		fieldType := fieldText(member, "type", source)
		collectTypeIdentifiers(member.ChildByFieldName("type"), source, class.ReferencedTypes)
		walkNodes(member, func(n *tree_sitter.Node) {
			if n.Kind() == "variable_declarator" {
				name := fieldText(n, "name", source)
				if name != "" {
					class.Fields = append(class.Fields, &model.FieldModel{
						Name: name,
						Type: fieldType,
					})
				}
			}
		})
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
			class.Methods = append(class.Methods, buildJavaMethod(member, source, fieldNames, class.ReferencedTypes, false))
		case "constructor_declaration":
			class.Methods = append(class.Methods, buildJavaMethod(member, source, fieldNames, class.ReferencedTypes, true))
		}
	}

	return class
}

func buildJavaMethod(node *tree_sitter.Node, source []byte, fieldNames map[string]bool, refs map[string]bool, isConstructor bool) *model.MethodModel {
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
			if param.Kind() != "formal_parameter" && param.Kind() != "spread_parameter" {
				continue
			}
			name := fieldText(param, "name", source)
			if name != "" {
				method.Parameters = append(method.Parameters, name)
				method.Identifiers = append(method.Identifiers, name)
			}
			collectTypeIdentifiers(param.ChildByFieldName("type"), source, refs)
		}
	}

	walkNodes(node, func(n *tree_sitter.Node) {
		kind := n.Kind()

		if javaDecisionKinds[kind] {
			method.DecisionPoints++
		}

		switch kind {
		case "switch_label":
			// "default" falls through without a decision
			if strings.HasPrefix(n.Utf8Text(source), "case") {
				method.DecisionPoints++
			}
		case "binary_expression":
			op := fieldText(n, "operator", source)
			if op == "&&" || op == "||" {
				method.DecisionPoints++
			}
		case "local_variable_declaration":
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
			walkNodes(n, func(inner *tree_sitter.Node) {
				if inner.Kind() == "variable_declarator" {
					if name := fieldText(inner, "name", source); name != "" {
						method.Identifiers = append(method.Identifiers, name)
					}
				}
			})
		case "enhanced_for_statement":
			if name := fieldText(n, "name", source); name != "" {
				method.Identifiers = append(method.Identifiers, name)
			}
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
		case "object_creation_expression":
			collectTypeIdentifiers(n.ChildByFieldName("type"), source, refs)
		case "field_access":
			if obj := n.ChildByFieldName("object"); obj != nil && obj.Kind() == "this" {
				method.OwnFieldAccesses++
			}
		case "method_invocation":
			obj := n.ChildByFieldName("object")
			if obj == nil || obj.Kind() == "this" {
				return
			}
			if obj.Kind() == "identifier" && fieldNames[obj.Utf8Text(source)] {
				method.OwnFieldAccesses++
				return
			}
			method.ExternalCalls++
		case "identifier":
			if parent := n.Parent(); parent != nil && parent.Kind() == "field_access" {
				return
			}
			if fieldNames[n.Utf8Text(source)] {
				method.OwnFieldAccesses++
			}
		}
	})

	return method
}
