package lang

import "github.com/corey/symtree/internal/domain/model"

// Builtins returns the descriptor table compiled into the binary. Overlay
// files can replace any entry or add new ones.
//
// Rust impl blocks and Go type specs map to the class category so the
// functions inside them classify as methods. Ruby def nodes are "method"
// kinds in the grammar and keep that category even at top level.
func Builtins() []*Descriptor {
	return []*Descriptor{
		{
			Name:       "python",
			Extensions: []string{".py", ".pyw", ".pyi"},
			NameKinds:  []string{"identifier"},
			KindRules: []KindRule{
				{Kind: "function_definition", Category: model.CategoryFunction},
				{Kind: "class_definition", Category: model.CategoryClass},
			},
			Templates: map[model.SymbolCategory]string{
				model.CategoryFunction: "def {name}{params} {return_type}",
				model.CategoryMethod:   "def {name}{params} {return_type}",
				model.CategoryClass:    "class {name}",
			},
		},
		{
			Name:       "javascript",
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			NameKinds:  []string{"identifier", "property_identifier"},
			KindRules: []KindRule{
				{Kind: "function_declaration", Category: model.CategoryFunction},
				{Kind: "generator_function_declaration", Category: model.CategoryFunction},
				{Kind: "method_definition", Category: model.CategoryMethod},
				{Kind: "class_declaration", Category: model.CategoryClass},
			},
		},
		{
			Name:       "typescript",
			Extensions: []string{".ts", ".mts", ".cts"},
			NameKinds:  []string{"identifier", "property_identifier", "type_identifier"},
			KindRules:  typescriptKinds(),
			Templates:  typescriptTemplates(),
		},
		{
			Name:       "tsx",
			Grammar:    "tsx",
			Extensions: []string{".tsx"},
			NameKinds:  []string{"identifier", "property_identifier", "type_identifier"},
			KindRules:  typescriptKinds(),
			Templates:  typescriptTemplates(),
		},
		{
			Name:       "java",
			Extensions: []string{".java"},
			NameKinds:  []string{"identifier"},
			KindRules: []KindRule{
				{Kind: "method_declaration", Category: model.CategoryMethod},
				{Kind: "constructor_declaration", Category: model.CategoryMethod},
				{Kind: "class_declaration", Category: model.CategoryClass},
				{Kind: "interface_declaration", Category: model.CategoryInterface},
				{Kind: "enum_declaration", Category: model.CategoryClass},
				{Kind: "record_declaration", Category: model.CategoryClass},
			},
			Templates: map[model.SymbolCategory]string{
				model.CategoryMethod:    "{visibility} {return_type} {name}{params}",
				model.CategoryClass:     "{visibility} class {name}",
				model.CategoryInterface: "{visibility} interface {name}",
			},
		},
		{
			Name:       "go",
			Extensions: []string{".go"},
			NameKinds:  []string{"identifier", "field_identifier", "type_identifier"},
			KindRules: []KindRule{
				{Kind: "function_declaration", Category: model.CategoryFunction},
				{Kind: "method_declaration", Category: model.CategoryMethod},
				{Kind: "type_spec", Category: model.CategoryClass},
			},
			Templates: map[model.SymbolCategory]string{
				model.CategoryFunction: "func {name}{params} {return_type}",
				model.CategoryMethod:   "func {visibility} {name}{params} {return_type}",
				model.CategoryClass:    "type {name}",
			},
		},
		{
			Name:       "ruby",
			Extensions: []string{".rb", ".rake", ".gemspec"},
			Filenames:  []string{"Rakefile", "Gemfile"},
			NameKinds:  []string{"identifier", "constant"},
			KindRules: []KindRule{
				{Kind: "method", Category: model.CategoryMethod},
				{Kind: "singleton_method", Category: model.CategoryMethod},
				{Kind: "class", Category: model.CategoryClass},
				{Kind: "module", Category: model.CategoryClass},
			},
		},
		{
			Name:       "rust",
			Extensions: []string{".rs"},
			NameKinds:  []string{"identifier", "type_identifier"},
			KindRules: []KindRule{
				{Kind: "function_item", Category: model.CategoryFunction},
				{Kind: "struct_item", Category: model.CategoryClass},
				{Kind: "enum_item", Category: model.CategoryClass},
				{Kind: "impl_item", Category: model.CategoryClass},
				{Kind: "trait_item", Category: model.CategoryInterface},
			},
		},
		{
			Name:       "c",
			Extensions: []string{".c", ".h"},
			NameKinds:  []string{"identifier", "type_identifier", "field_identifier"},
			KindRules: []KindRule{
				{Kind: "function_definition", Category: model.CategoryFunction},
				{Kind: "struct_specifier", Category: model.CategoryClass},
			},
		},
		{
			Name:       "cpp",
			Extensions: []string{".cpp", ".hpp", ".cc", ".cxx", ".hxx"},
			NameKinds:  []string{"identifier", "type_identifier", "field_identifier"},
			KindRules: []KindRule{
				{Kind: "function_definition", Category: model.CategoryFunction},
				{Kind: "class_specifier", Category: model.CategoryClass},
				{Kind: "struct_specifier", Category: model.CategoryClass},
			},
		},
		{
			Name:       "csharp",
			Grammar:    "c_sharp",
			Extensions: []string{".cs"},
			NameKinds:  []string{"identifier"},
			KindRules: []KindRule{
				{Kind: "method_declaration", Category: model.CategoryMethod},
				{Kind: "class_declaration", Category: model.CategoryClass},
				{Kind: "interface_declaration", Category: model.CategoryInterface},
				{Kind: "struct_declaration", Category: model.CategoryClass},
			},
		},
		{
			Name:       "php",
			Extensions: []string{".php"},
			NameKinds:  []string{"name"},
			KindRules: []KindRule{
				{Kind: "function_definition", Category: model.CategoryFunction},
				{Kind: "method_declaration", Category: model.CategoryMethod},
				{Kind: "class_declaration", Category: model.CategoryClass},
				{Kind: "interface_declaration", Category: model.CategoryInterface},
				{Kind: "trait_declaration", Category: model.CategoryInterface},
			},
		},
		{
			Name:       "kotlin",
			Extensions: []string{".kt", ".kts"},
			NameKinds:  []string{"simple_identifier", "type_identifier"},
			KindRules: []KindRule{
				{Kind: "function_declaration", Category: model.CategoryFunction},
				{Kind: "class_declaration", Category: model.CategoryClass},
				{Kind: "object_declaration", Category: model.CategoryClass},
			},
		},
		{
			Name:       "bash",
			Extensions: []string{".sh", ".bash"},
			NameKinds:  []string{"word"},
			KindRules: []KindRule{
				{Kind: "function_definition", Category: model.CategoryFunction},
			},
		},
	}
}

func typescriptKinds() []KindRule {
	return []KindRule{
		{Kind: "function_declaration", Category: model.CategoryFunction},
		{Kind: "generator_function_declaration", Category: model.CategoryFunction},
		{Kind: "method_definition", Category: model.CategoryMethod},
		{Kind: "method_signature", Category: model.CategoryMethod},
		{Kind: "class_declaration", Category: model.CategoryClass},
		{Kind: "abstract_class_declaration", Category: model.CategoryClass},
		{Kind: "interface_declaration", Category: model.CategoryInterface},
		{Kind: "enum_declaration", Category: model.CategoryClass},
	}
}

func typescriptTemplates() map[model.SymbolCategory]string {
	return map[model.SymbolCategory]string{
		model.CategoryFunction:  "function {name}{params}{return_type}",
		model.CategoryMethod:    "{visibility} {name}{params}{return_type}",
		model.CategoryClass:     "class {name}",
		model.CategoryInterface: "interface {name}",
	}
}
