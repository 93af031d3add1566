/*
Package langdef compiles textual grammar description to grammar.Grammar structure.

Grammar is described using simplified BNF. Self-definition of this language is:

	<grammar>     ::= <rule>+
	<rule>        ::= <rule-name> "::=" <alts>
	<alts>        ::= <alt> ("|" <alt>)*
	<alt>         ::= <item>+ | EMPTY | "<empty>"
	<item>        ::= <primary> ("?" | "*" | "+")? | "[" <alts> "]" | "{" <alts> "}"
	<primary>     ::= <rule-name> | <class> | <literal> | "(" <alts> ")"
	<rule-name>   ::= "<" <name> ">" | <name>
	<name>        ::= (ALPHA | "_") (ALNUM | "_" | "-")*

Description must be a valid UTF-8 text. Line breaks are insignificant except for comments,
a rule lasts until the next "name ::=" or the end of text, so long rules may span several lines:

	<digit> ::= "0" | "1" | "2" | "3" | "4"
	          | "5" | "6" | "7" | "8" | "9"

Description may contain line comments starting with # and ending with line feed.

Rule names are case-sensitive, angle brackets around rule names are optional.
Bare name refers to a rule if such rule is defined, to a terminal class otherwise.
Name in angle brackets always refers to a rule. Names EMPTY and empty are reserved.

Terminal classes match exactly one character:

	DIGIT     0-9
	LOWER     a-z
	UPPER     A-Z
	ALPHA     a-z A-Z
	ALNUM     a-z A-Z 0-9
	ALNUM_    a-z A-Z 0-9 _ @
	HEXDIGIT  0-9 a-f A-F
	SPACE     space, tab
	PUNCT     ASCII punctuation

Literal is a sequence of characters in double or single quotes. Double-quoted literals
may contain Go escape sequences (\", \\, \n, \t, \x41, \u0416 etc.),
single-quoted literals are taken as is. Empty literals are not allowed, use EMPTY.

Quantifiers ?, *, and + mean "zero or one", "zero or more", and "one or more" respectively.
[...] is the same as (...)? and {...} is the same as (...)*, these groups take no quantifiers.

The start rule is the one named "start" if defined, the first rule otherwise.

Compilation fails if a rule is defined twice, if a referenced rule is not defined,
or if a rule can reach itself without consuming input (left recursion).
Repeated items that can match empty string are allowed, each repetition must consume input.
EmptyRepeats lists such items.
*/
package langdef
