// Package markup reads tagl templates from HTML and writes rendered output as
// HTML.
//
// Templates are HTML fragments in which a handful of tag names are control
// tags. Tag names are matched case-insensitively:
//
//	<DEFN name arg...>body</DEFN>     define a function
//	<LET k=v ...>body</LET>           bind variables
//	<COND>...</COND>                  first matching IF or ELSE
//	<IF cond>body</IF>
//	<ELSE>body</ELSE>
//	<FOR x in $seq>body</FOR>         iterate
//	<DO fn arg...></DO>               call a function
//	<NB>values</NB>                   log values
//	<V literal></V>                   render a literal
//
// Any other element is copied to the output with its attributes, and text is
// copied verbatim. Attribute names are lowercased by the HTML parser, so
// variable and function names are best written in lowercase.
//
// A fragment consisting of a single <template> element is unwrapped: its
// content is the template.
package markup
