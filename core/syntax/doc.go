// Package syntax classifies nestsh command text.
//
// Command text is never parsed into a persistent tree before it runs. Each
// level of the interpreter asks the scanner which operator appears at
// parenthesis depth zero, peels that operator off, and hands the remaining
// substrings back to the interpreter. The precedence, lowest binding first, is:
//
//	;        sequential batch
//	|        pipeline
//	< > >>   redirection
//	( ... )  subshell
//	cd exit  builtins
//	WORD...  simple command
package syntax
