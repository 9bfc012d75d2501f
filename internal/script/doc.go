// Package script loads typing scripts and runs them against the tool
// registry.
//
// A script is an ordered list of tool calls written in YAML, JSON or TOML:
//
//	name: unit 3 quiz
//	target: quiz.hwp
//	steps:
//	  - tool: insert_text
//	    params: {text: "1. Solve"}
//	  - tool: insert_latex_equation
//	    params: {latex: "\\frac{a}{b}"}
//
// Tool names without a service prefix belong to the hwp service. Script
// files written by older editors are often EUC-KR or UTF-16; they are
// detected and decoded to UTF-8 before parsing.
package script
