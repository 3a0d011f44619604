package plexity

import "github.com/panbanda/plexity/pkg/parser"

// Decision-point kinds per grammar. These are defaults only; callers
// replace or extend them through configuration.
var defaultKinds = map[parser.Language][]string{
	parser.LangPython: {
		"if_statement", "elif_clause",
		"for_statement", "while_statement",
		"except_clause", "with_statement",
		"assert_statement",
		"list_comprehension", "set_comprehension", "dictionary_comprehension",
		"boolean_operator",
	},
	parser.LangGo: {
		"if_statement", "for_statement",
		"expression_case", "type_case", "communication_case",
		"select_statement",
	},
	parser.LangRust: {
		"if_expression", "while_expression", "for_expression", "loop_expression",
		"match_arm", "if_let_expression",
	},
	parser.LangJavaScript: {
		"if_statement", "for_statement", "for_in_statement",
		"while_statement", "do_statement",
		"switch_case", "catch_clause", "ternary_expression",
	},
	parser.LangJava: {
		"if_statement", "for_statement", "enhanced_for_statement",
		"while_statement", "do_statement",
		"switch_label", "catch_clause", "ternary_expression",
		"assert_statement",
	},
	parser.LangC: {
		"if_statement", "for_statement", "while_statement", "do_statement",
		"case_statement", "conditional_expression",
	},
	parser.LangCSharp: {
		"if_statement", "for_statement", "for_each_statement",
		"while_statement", "do_statement",
		"switch_section", "catch_clause", "conditional_expression",
	},
	parser.LangRuby: {
		"if", "elsif", "unless", "while", "until", "for",
		"when", "rescue", "conditional",
	},
	parser.LangPHP: {
		"if_statement", "else_if_clause", "for_statement", "foreach_statement",
		"while_statement", "do_statement",
		"case_statement", "catch_clause", "conditional_expression",
	},
	parser.LangBash: {
		"if_statement", "elif_clause", "for_statement", "c_style_for_statement",
		"while_statement", "case_item",
	},
	parser.LangKotlin: {
		"if_expression", "for_statement", "while_statement", "do_while_statement",
		"when_entry", "catch_block",
	},
}

func init() {
	defaultKinds[parser.LangTypeScript] = defaultKinds[parser.LangJavaScript]
	defaultKinds[parser.LangTSX] = defaultKinds[parser.LangJavaScript]
	defaultKinds[parser.LangCPP] = append(append([]string{}, defaultKinds[parser.LangC]...), "for_range_loop", "catch_clause")
}

// DefaultKinds returns the built-in decision-point kinds for a language.
// Markup and data grammars (css, html, markdown, toml, yaml, dockerfile)
// have none, so their cyclomatic estimate is always 1.
func DefaultKinds(lang parser.Language) []string {
	kinds := defaultKinds[lang]
	out := make([]string, len(kinds))
	copy(out, kinds)
	return out
}

// KindResolver supplies the decision-point kinds for a language.
type KindResolver func(lang parser.Language) []string

// DefaultKindResolver resolves kinds from the built-in tables.
func DefaultKindResolver(lang parser.Language) []string {
	return DefaultKinds(lang)
}
